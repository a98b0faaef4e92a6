package keys

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"

	domaintypes "hposconfig/internal/domain/types"
	"hposconfig/internal/encoding"
)

// lairKeySize is 32 reserved bytes, the public key, then the seed.
const lairKeySize = 32 + 32 + domaintypes.SeedSize

// ErrLairMismatch is returned when a lair blob's public key does not match its seed.
var ErrLairMismatch = errors.New("lair keypair: public key does not match seed")

// EncodeLair encodes kp in the unencrypted keystore layout read by lair
// before v0.0.6: base64 of 32 zero bytes, the public key and the seed.
func EncodeLair(kp Keypair) string {
	buf := make([]byte, 32, lairKeySize)
	buf = append(buf, kp.Public[:]...)
	seed := kp.Seed()
	buf = append(buf, seed[:]...)
	defer Wipe(buf)
	return base64.StdEncoding.EncodeToString(buf)
}

// DecodeLair reverses EncodeLair.
func DecodeLair(s string) (Keypair, error) {
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return Keypair{}, fmt.Errorf("lair keypair: %w", err)
	}
	defer Wipe(raw)
	if len(raw) != lairKeySize {
		return Keypair{}, &encoding.BadLengthError{Field: "lair keypair", Want: lairKeySize, Got: len(raw)}
	}
	seed, err := SeedFromBytes(raw[64:])
	if err != nil {
		return Keypair{}, err
	}
	kp := FromSeed(seed)
	if !bytes.Equal(kp.Public[:], raw[32:64]) {
		return Keypair{}, ErrLairMismatch
	}
	return kp, nil
}
