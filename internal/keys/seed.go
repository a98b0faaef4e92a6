package keys

import (
	"crypto/rand"
	"crypto/sha512"
	"io"

	domaintypes "hposconfig/internal/domain/types"
	"hposconfig/internal/encoding"
)

// NewSeed returns a seed read from the system CSPRNG.
func NewSeed() (domaintypes.Seed, error) {
	var s domaintypes.Seed
	if _, err := rand.Read(s[:]); err != nil {
		return s, err
	}
	return s, nil
}

// SeedFromEntropy hashes everything read from r down to a seed with SHA-512/256.
func SeedFromEntropy(r io.Reader) (domaintypes.Seed, error) {
	var s domaintypes.Seed
	h := sha512.New512_256()
	if _, err := io.Copy(h, r); err != nil {
		return s, err
	}
	h.Sum(s[:0])
	return s, nil
}

// SeedFromBytes copies b into a seed, failing with *encoding.BadLengthError
// unless b is exactly 32 bytes.
func SeedFromBytes(b []byte) (domaintypes.Seed, error) {
	if len(b) != domaintypes.SeedSize {
		return domaintypes.Seed{}, &encoding.BadLengthError{Field: "seed", Want: domaintypes.SeedSize, Got: len(b)}
	}
	return domaintypes.SeedFromBytes(b)
}
