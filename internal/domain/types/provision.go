package types

import "time"

// ProvisionRequest describes a host config to generate.
type ProvisionRequest struct {
	Version          Version
	Email            string
	Password         string
	RegistrationCode string
	// Seed replaces the random master seed. For V1 it is the host seed.
	Seed *Seed
	// DevicePath selects the device seed under the master seed (V2, V3).
	DevicePath DerivationPath
	// Passphrase locks the device bundle (V2, V3).
	Passphrase []byte
	// Limits names the password hashing preset the bundle is locked with.
	Limits string
	// AppData is stored next to the bundle's ciphers.
	AppData []byte
	// DeviceBundle is an already-locked device bundle to use instead of
	// deriving a new one. It is unlocked with Passphrase.
	DeviceBundle string
	// RevocationKey replaces the key derived at RevocationPath (V3).
	RevocationKey *Ed25519Public
}

// ProvisionProfile is the on-disk form of the non-secret parts of a
// ProvisionRequest.
type ProvisionProfile struct {
	Version          string  `yaml:"version"`
	Email            string  `yaml:"email"`
	RegistrationCode string  `yaml:"registration_code"`
	DerivationPath   *uint32 `yaml:"derivation_path,omitempty"`
	Limits           string  `yaml:"limits,omitempty"`
	GenerateBy       string  `yaml:"generate_by,omitempty"`
	DeviceNumber     uint32  `yaml:"device_number,omitempty"`
}

// SignRequest asks for a message to be signed with a host's admin key.
type SignRequest struct {
	Password   string
	Passphrase []byte
	Message    string
	// Window, when non-zero, signs Message as the JSON payload of the time
	// window containing At.
	Window time.Duration
	At     time.Time
}
