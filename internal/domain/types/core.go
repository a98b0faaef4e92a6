package types

import (
	"fmt"
	"strconv"
)

// Fingerprint is a short identifier for public keys presented to users.
type Fingerprint string

// String returns the string form of the fingerprint.
func (f Fingerprint) String() string { return string(f) }

// DerivationPath selects one sub-seed of a master seed.
type DerivationPath uint32

// Conventional derivation paths.
const (
	RevocationPath    DerivationPath = 0
	HoloportIDPath    DerivationPath = 1
	DefaultDevicePath DerivationPath = 3
)

// String returns the decimal form stored in configs.
func (p DerivationPath) String() string { return strconv.FormatUint(uint64(p), 10) }

// ParseDerivationPath parses the decimal form of a derivation path.
func ParseDerivationPath(s string) (DerivationPath, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("derivation path %q: %w", s, err)
	}
	return DerivationPath(n), nil
}

// Version names a config schema version.
type Version string

// Known config versions.
const (
	V1 Version = "v1"
	V2 Version = "v2"
	V3 Version = "v3"
)

// String returns the string form of the version.
func (v Version) String() string { return string(v) }

// ParseVersion accepts "v1", "v2", "v3" and their bare numbers.
func ParseVersion(s string) (Version, error) {
	switch s {
	case "v1", "1":
		return V1, nil
	case "v2", "2":
		return V2, nil
	case "v3", "3":
		return V3, nil
	}
	return "", fmt.Errorf("unknown config version %q", s)
}
