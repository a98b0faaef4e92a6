package inspect

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"hposconfig/internal/config"
	"hposconfig/internal/domain"
	"hposconfig/internal/encoding"
	"hposconfig/internal/keys"
	"hposconfig/internal/seedbundle"
	"hposconfig/internal/services/worker"
)

// DefaultWindow is the time window length used when signing admin
// requests with a time-window signature.
const DefaultWindow = 5 * time.Minute

// Service implements domain.InspectService. It holds no state.
type Service struct {
	now func() time.Time
}

// New returns an inspect service.
func New() *Service { return &Service{now: time.Now} }

// HoloportPublicKey returns the host public key of cfg.
func (s *Service) HoloportPublicKey(
	ctx context.Context,
	cfg config.Config,
	passphrase []byte,
) (domain.Ed25519Public, error) {
	return worker.Do(ctx, func() (domain.Ed25519Public, error) {
		return config.HoloportPublicKey(cfg, passphrase)
	})
}

// EncodedKeypair returns the host keypair as a lair keystore blob.
func (s *Service) EncodedKeypair(ctx context.Context, cfg config.Config, passphrase []byte) (string, error) {
	return worker.Do(ctx, func() (string, error) {
		return config.EncodedKeypair(cfg, passphrase)
	})
}

// HostID returns the base36 host identifier of cfg.
func (s *Service) HostID(ctx context.Context, cfg config.Config, passphrase []byte) (string, error) {
	return worker.Do(ctx, func() (string, error) {
		return config.HostID(cfg, passphrase)
	})
}

// DerivePublicKey returns the public key of the sub-seed at path under the
// config's seed: the raw seed for V1, the device seed for V2 and V3.
func (s *Service) DerivePublicKey(
	ctx context.Context,
	cfg config.Config,
	passphrase []byte,
	path domain.DerivationPath,
) (domain.Ed25519Public, error) {
	log.WithFields(log.Fields{
		"version":         cfg.Version(),
		"derivation_path": path,
	}).Debug("deriving sub-key")

	return worker.Do(ctx, func() (domain.Ed25519Public, error) {
		parent, err := parentBundle(cfg, passphrase)
		if err != nil {
			return domain.Ed25519Public{}, err
		}
		defer parent.Wipe()

		child, err := parent.Derive(path)
		if err != nil {
			return domain.Ed25519Public{}, err
		}
		defer child.Wipe()
		return child.SignPublicKey(), nil
	})
}

func parentBundle(cfg config.Config, passphrase []byte) (*seedbundle.Unlocked, error) {
	if v1, ok := cfg.(*config.V1); ok {
		return seedbundle.New(v1.Seed), nil
	}
	b, err := config.DeviceBundle(cfg)
	if err != nil {
		return nil, err
	}
	return seedbundle.Unlock(b, passphrase)
}

// SignAdmin signs req.Message with the admin key of cfg, re-derived from
// req.Password. Without a window the signature is unpadded standard
// base64 over the message bytes. With one it is a time-window signature.
func (s *Service) SignAdmin(ctx context.Context, cfg config.Config, req domain.SignRequest) (string, error) {
	log.WithField("version", cfg.Version()).Debug("deriving admin key")

	return worker.Do(ctx, func() (string, error) {
		admin, err := config.AdminKeypair(cfg, req.Password, req.Passphrase)
		if err != nil {
			return "", err
		}
		defer admin.Wipe()

		if req.Window <= 0 {
			return encoding.B64(admin.Sign([]byte(req.Message))), nil
		}
		at := req.At
		if at.IsZero() {
			at = s.now()
		}
		return keys.SignWindow(admin, req.Message, at, req.Window)
	})
}

// Convert returns cfg in version to.
func (s *Service) Convert(cfg config.Config, to domain.Version) (config.Config, error) {
	return config.Convert(cfg, to)
}

// Compile-time assertion that Service implements domain.InspectService.
var _ domain.InspectService = (*Service)(nil)
