package interfaces

import (
	"context"

	"hposconfig/internal/config"
	domaintypes "hposconfig/internal/domain/types"
)

// ProvisionService builds new host configs.
type ProvisionService interface {
	Provision(ctx context.Context, req domaintypes.ProvisionRequest) (
		config.Config,
		domaintypes.Ed25519Public,
		error,
	)
}

// InspectService answers questions about an existing config. Calls that
// unlock a device bundle take its passphrase.
type InspectService interface {
	HoloportPublicKey(
		ctx context.Context,
		cfg config.Config,
		passphrase []byte,
	) (domaintypes.Ed25519Public, error)
	EncodedKeypair(ctx context.Context, cfg config.Config, passphrase []byte) (string, error)
	HostID(ctx context.Context, cfg config.Config, passphrase []byte) (string, error)
	DerivePublicKey(
		ctx context.Context,
		cfg config.Config,
		passphrase []byte,
		path domaintypes.DerivationPath,
	) (domaintypes.Ed25519Public, error)
	SignAdmin(ctx context.Context, cfg config.Config, req domaintypes.SignRequest) (string, error)
	Convert(cfg config.Config, to domaintypes.Version) (config.Config, error)
}
