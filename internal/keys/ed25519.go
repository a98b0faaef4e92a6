package keys

import (
	"crypto/ed25519"

	domaintypes "hposconfig/internal/domain/types"
)

// Keypair is an Ed25519 signing keypair.
type Keypair struct {
	Public  domaintypes.Ed25519Public
	Private domaintypes.Ed25519Private
}

// FromSeed returns the keypair whose private scalar is expanded from seed.
// This is how the agent keypair of a host is derived.
func FromSeed(seed domaintypes.Seed) Keypair {
	sk := ed25519.NewKeyFromSeed(seed[:])
	defer Wipe(sk)

	var kp Keypair
	copy(kp.Private[:], sk)
	copy(kp.Public[:], sk[ed25519.SeedSize:])
	return kp
}

// Seed returns the seed the keypair was derived from.
func (k Keypair) Seed() domaintypes.Seed { return k.Private.Seed() }

// Sign signs msg with the private key.
func (k Keypair) Sign(msg []byte) []byte {
	return ed25519.Sign(ed25519.PrivateKey(k.Private[:]), msg)
}

// Wipe zeroes the private half of the keypair.
func (k *Keypair) Wipe() { Wipe(k.Private[:]) }

// VerifyEd25519 verifies sig over msg with pub.
func VerifyEd25519(pub domaintypes.Ed25519Public, msg, sig []byte) bool {
	return ed25519.Verify(ed25519.PublicKey(pub[:]), msg, sig)
}
