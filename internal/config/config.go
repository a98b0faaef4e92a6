package config

import (
	domaintypes "hposconfig/internal/domain/types"
)

// Config is a V1, V2 or V3 document. The set of implementations is closed.
type Config interface {
	Version() domaintypes.Version
	settings() Settings
}

// Admin identifies the host owner and their admin public key.
type Admin struct {
	Email     string
	PublicKey domaintypes.Ed25519Public
}

// Settings are shared by every version.
type Settings struct {
	Admin Admin
}

// V1 stores the host seed in the clear.
type V1 struct {
	Seed     domaintypes.Seed
	Settings Settings
}

// V2 stores the host seed in a locked device bundle.
type V2 struct {
	// DeviceBundle is the locked bundle in URL-safe unpadded base64.
	DeviceBundle string
	// DerivationPath is the decimal index the device seed was derived at.
	DerivationPath   string
	RegistrationCode string
	Settings         Settings
}

// V3 adds the revocation key and precomputed host identifiers to V2.
type V3 struct {
	DeviceBundle         string
	DeviceDerivationPath string
	RevocationPubKey     domaintypes.Ed25519Public
	// HoloportID is the base36 form of the host public key.
	HoloportID string
	// InitialHostPubKey is the agent address form of the same key.
	InitialHostPubKey string
	RegistrationCode  string
	Settings          Settings
}

func (*V1) Version() domaintypes.Version { return domaintypes.V1 }
func (*V2) Version() domaintypes.Version { return domaintypes.V2 }
func (*V3) Version() domaintypes.Version { return domaintypes.V3 }

func (c *V1) settings() Settings { return c.Settings }
func (c *V2) settings() Settings { return c.Settings }
func (c *V3) settings() Settings { return c.Settings }

// AdminPublicKey returns the stored admin public key.
func AdminPublicKey(c Config) domaintypes.Ed25519Public { return c.settings().Admin.PublicKey }

// Email returns the admin email.
func Email(c Config) string { return c.settings().Admin.Email }

// isNil reports whether c is nil or a nil *V1, *V2 or *V3.
func isNil(c Config) bool {
	switch c := c.(type) {
	case nil:
		return true
	case *V1:
		return c == nil
	case *V2:
		return c == nil
	case *V3:
		return c == nil
	}
	return false
}
