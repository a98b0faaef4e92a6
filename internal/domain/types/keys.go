package types

import "fmt"

// SeedSize is the size of every seed.
const SeedSize = 32

// Seed is the 32 bytes of entropy a signing keypair is derived from.
type Seed [SeedSize]byte

// Slice returns the seed as a []byte.
func (s Seed) Slice() []byte { return s[:] }

// SeedFromBytes copies b into a Seed.
func SeedFromBytes(b []byte) (Seed, error) {
	var s Seed
	if len(b) != SeedSize {
		return s, fmt.Errorf("seed: want %d bytes, got %d", SeedSize, len(b))
	}
	copy(s[:], b)
	return s, nil
}

// Ed25519Public is an Ed25519 signing public key.
type Ed25519Public [32]byte

// Slice returns the key as a []byte.
func (p Ed25519Public) Slice() []byte { return p[:] }

// Ed25519PublicFromBytes copies b into an Ed25519Public.
func Ed25519PublicFromBytes(b []byte) (Ed25519Public, error) {
	var p Ed25519Public
	if len(b) != len(p) {
		return p, fmt.Errorf("ed25519 public key: want %d bytes, got %d", len(p), len(b))
	}
	copy(p[:], b)
	return p, nil
}

// MustEd25519Public is Ed25519PublicFromBytes for inputs already known to be 32 bytes.
func MustEd25519Public(b []byte) Ed25519Public {
	p, err := Ed25519PublicFromBytes(b)
	if err != nil {
		panic(err)
	}
	return p
}

// Ed25519Private is an Ed25519 signing private key (ed25519.PrivateKey layout).
type Ed25519Private [64]byte

// Slice returns the key as a []byte.
func (k Ed25519Private) Slice() []byte { return k[:] }

// Seed returns the 32-byte seed half of the key.
func (k Ed25519Private) Seed() Seed {
	var s Seed
	copy(s[:], k[:SeedSize])
	return s
}
