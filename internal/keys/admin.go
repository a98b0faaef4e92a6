package keys

import (
	"crypto/sha512"
	"errors"
	"fmt"

	"hposconfig/internal/argon2"
	domaintypes "hposconfig/internal/domain/types"
)

// adminKeyData separates admin key derivation from every other use of Argon2id.
const adminKeyData = "holo-config admin ed25519 key v1"

// ErrDerivationFailed wraps failures of the underlying key derivation primitive.
var ErrDerivationFailed = errors.New("key derivation failed")

// adminKDF holds the fixed admin key cost parameters: 2 passes, 64 MiB, 4 lanes.
var adminKDF = argon2.Params{
	Time:    2,
	Memory:  64 * 1024,
	Threads: 4,
	KeyLen:  domaintypes.SeedSize,
}

// AdminKeypair derives the admin keypair of the host whose agent public key
// is agent, for the given email and password.
//
// The salt is SHA-512(email), so short addresses still give a full-size
// salt. The agent key enters Argon2id as its secret input, which makes the
// admin key unique per host even when email and password are reused.
func AdminKeypair(agent domaintypes.Ed25519Public, email, password string) (Keypair, error) {
	salt := sha512.Sum512([]byte(email))

	p := adminKDF
	p.Secret = agent[:]
	p.Data = []byte(adminKeyData)

	out, err := argon2.IDKey([]byte(password), salt[:], p)
	if err != nil {
		return Keypair{}, fmt.Errorf("%w: admin key: %v", ErrDerivationFailed, err)
	}
	defer Wipe(out)

	seed, err := SeedFromBytes(out)
	if err != nil {
		return Keypair{}, fmt.Errorf("%w: admin key: %v", ErrDerivationFailed, err)
	}
	return FromSeed(seed), nil
}
