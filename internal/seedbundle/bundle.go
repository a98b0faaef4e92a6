package seedbundle

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/dchest/blake2b"
	"github.com/vmihailenco/msgpack/v5"
	"golang.org/x/crypto/argon2"
	xblake2b "golang.org/x/crypto/blake2b"

	domaintypes "hposconfig/internal/domain/types"
	"hposconfig/internal/keys"
)

const (
	bundleTag  = "hcsb0"
	pwHashTag  = "pw"
	qaTag      = "qa"
	saltSize   = 16
	kdfContext = "SeedBndl"
)

// Unlocked is a seed bundle whose seed is in memory.
type Unlocked struct {
	seed    domaintypes.Seed
	sign    keys.Keypair
	appData []byte
}

// New wraps seed in an unlocked bundle with empty app data.
func New(seed domaintypes.Seed) *Unlocked {
	return &Unlocked{seed: seed, sign: keys.FromSeed(seed)}
}

// NewRandom returns a bundle around a fresh random seed.
func NewRandom() (*Unlocked, error) {
	seed, err := keys.NewSeed()
	if err != nil {
		return nil, err
	}
	return New(seed), nil
}

// Seed returns the bundle's seed.
func (u *Unlocked) Seed() domaintypes.Seed { return u.seed }

// SignPublicKey returns the Ed25519 public key of the seed.
func (u *Unlocked) SignPublicKey() domaintypes.Ed25519Public { return u.sign.Public }

// Keypair returns the Ed25519 keypair of the seed.
func (u *Unlocked) Keypair() keys.Keypair { return u.sign }

// AppData returns the opaque app data carried next to the ciphers.
func (u *Unlocked) AppData() []byte { return u.appData }

// SetAppData replaces the app data written by Lock.
func (u *Unlocked) SetAppData(b []byte) { u.appData = append([]byte(nil), b...) }

// Wipe zeroes the seed and private key.
func (u *Unlocked) Wipe() {
	keys.Wipe(u.seed[:])
	u.sign.Wipe()
}

// Derive returns the child bundle at index. Children are derived with
// libsodium's crypto_kdf construction: keyed BLAKE2b over the parent seed
// with the index as salt and "SeedBndl" as personalisation. The child
// starts with empty app data.
func (u *Unlocked) Derive(index domaintypes.DerivationPath) (*Unlocked, error) {
	var salt [16]byte
	binary.LittleEndian.PutUint64(salt[:8], uint64(index))

	h, err := blake2b.New(&blake2b.Config{
		Size:   domaintypes.SeedSize,
		Key:    u.seed[:],
		Salt:   salt[:],
		Person: []byte(kdfContext),
	})
	if err != nil {
		return nil, fmt.Errorf("derive %d: %w", index, err)
	}
	var child domaintypes.Seed
	h.Sum(child[:0])
	return New(child), nil
}

// Lock encrypts the seed under passphrase with a single password-hash
// cipher and returns the encoded bundle. Every call uses a fresh salt and
// header, so locking twice gives different bytes.
func (u *Unlocked) Lock(passphrase []byte, limits Limits) ([]byte, error) {
	if len(passphrase) == 0 {
		return nil, ErrPasswordRequired
	}
	if err := limits.validate(); err != nil {
		return nil, err
	}

	salt := make([]byte, saltSize)
	if _, err := randRead(salt); err != nil {
		return nil, err
	}
	key := pwHashKey(passphrase, salt, limits)
	defer keys.Wipe(key)

	header, ct, err := streamPush(key, u.seed[:], tagFinal)
	if err != nil {
		return nil, err
	}
	return encodeBundle(&PwHashCipher{
		salt:   salt,
		limits: limits,
		header: header,
		cipher: ct,
	}, u.appData)
}

// pwHashKey derives the secretstream key for a password-hash cipher.
func pwHashKey(passphrase, salt []byte, limits Limits) []byte {
	pre := xblake2b.Sum512(passphrase)
	defer keys.Wipe(pre[:])
	return argon2.IDKey(pre[:], salt, limits.OpsLimit, limits.memoryKiB(), 1, streamKeySize)
}

func encodeBundle(c *PwHashCipher, appData []byte) ([]byte, error) {
	if appData == nil {
		appData = []byte{}
	}
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)

	steps := []func() error{
		func() error { return enc.EncodeArrayLen(3) },
		func() error { return enc.EncodeString(bundleTag) },
		func() error { return enc.EncodeArrayLen(1) },
		func() error { return enc.EncodeArrayLen(6) },
		func() error { return enc.EncodeString(pwHashTag) },
		func() error { return enc.EncodeBytes(c.salt) },
		func() error { return enc.EncodeUint(uint64(c.limits.MemLimit)) },
		func() error { return enc.EncodeUint(uint64(c.limits.OpsLimit)) },
		func() error { return enc.EncodeBytes(c.header) },
		func() error { return enc.EncodeBytes(c.cipher) },
		func() error { return enc.EncodeBytes(appData) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}
