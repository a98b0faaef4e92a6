package seedbundle

import (
	"fmt"
	"strings"
)

// Limits are the password hashing costs stored in a password-hash cipher.
// MemLimit is in bytes, as libsodium counts it.
type Limits struct {
	MemLimit uint32
	OpsLimit uint32
}

// libsodium crypto_pwhash presets.
var (
	LimitsMinimum     = Limits{MemLimit: 8192, OpsLimit: 1}
	LimitsInteractive = Limits{MemLimit: 64 << 20, OpsLimit: 2}
	LimitsModerate    = Limits{MemLimit: 256 << 20, OpsLimit: 3}
	LimitsSensitive   = Limits{MemLimit: 1 << 30, OpsLimit: 4}
)

// LimitsByName returns the preset called name.
func LimitsByName(name string) (Limits, error) {
	switch strings.ToLower(name) {
	case "minimum", "min":
		return LimitsMinimum, nil
	case "interactive", "":
		return LimitsInteractive, nil
	case "moderate":
		return LimitsModerate, nil
	case "sensitive":
		return LimitsSensitive, nil
	}
	return Limits{}, fmt.Errorf("unknown pwhash limits %q", name)
}

// validate bounds l between LimitsMinimum and LimitsSensitive. Limits are
// read from untrusted bundles and set the cost of every unlock.
func (l Limits) validate() error {
	if l.MemLimit < LimitsMinimum.MemLimit || l.OpsLimit < LimitsMinimum.OpsLimit {
		return fmt.Errorf("%w: pwhash limits below minimum (mem %d, ops %d)", ErrMalformed, l.MemLimit, l.OpsLimit)
	}
	if l.MemLimit > LimitsSensitive.MemLimit || l.OpsLimit > LimitsSensitive.OpsLimit {
		return fmt.Errorf("%w: pwhash limits above sensitive (mem %d, ops %d)", ErrMalformed, l.MemLimit, l.OpsLimit)
	}
	return nil
}

// memoryKiB converts MemLimit to Argon2 KiB.
func (l Limits) memoryKiB() uint32 { return l.MemLimit / 1024 }
