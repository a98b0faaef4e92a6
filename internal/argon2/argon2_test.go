package argon2_test

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	xargon2 "golang.org/x/crypto/argon2"

	"hposconfig/internal/argon2"
)

// RFC 9106 section 5.3.
func TestIDKey_RFC9106(t *testing.T) {
	out, err := argon2.IDKey(
		bytes.Repeat([]byte{0x01}, 32),
		bytes.Repeat([]byte{0x02}, 16),
		argon2.Params{
			Time:    3,
			Memory:  32,
			Threads: 4,
			KeyLen:  32,
			Secret:  bytes.Repeat([]byte{0x03}, 8),
			Data:    bytes.Repeat([]byte{0x04}, 12),
		},
	)
	require.NoError(t, err)
	assert.Equal(t, "0d640df58d78766c08c037a34a8b53c9d01ef0452d75b65eb52520e96b01e659", hex.EncodeToString(out))
}

func TestIDKey_MatchesXCrypto(t *testing.T) {
	cases := []struct {
		time, memory uint32
		threads      uint8
		keyLen       uint32
	}{
		{1, 64, 1, 32},
		{2, 256, 2, 32},
		{3, 128, 4, 64},
		{1, 512, 3, 100},
	}
	pw, salt := []byte("password"), []byte("somesaltsomesalt")
	for _, tc := range cases {
		want := xargon2.IDKey(pw, salt, tc.time, tc.memory, tc.threads, tc.keyLen)
		got, err := argon2.IDKey(pw, salt, argon2.Params{
			Time: tc.time, Memory: tc.memory, Threads: tc.threads, KeyLen: tc.keyLen,
		})
		require.NoError(t, err)
		assert.Equal(t, want, got, "t=%d m=%d p=%d", tc.time, tc.memory, tc.threads)
	}
}

func TestIDKey_SecretAndDataChangeOutput(t *testing.T) {
	base := argon2.Params{Time: 1, Memory: 64, Threads: 1, KeyLen: 32}
	pw, salt := []byte("pw"), []byte("saltsalt")

	plain, err := argon2.IDKey(pw, salt, base)
	require.NoError(t, err)

	withSecret := base
	withSecret.Secret = []byte("k")
	s, err := argon2.IDKey(pw, salt, withSecret)
	require.NoError(t, err)

	withData := base
	withData.Data = []byte("k")
	d, err := argon2.IDKey(pw, salt, withData)
	require.NoError(t, err)

	assert.NotEqual(t, plain, s)
	assert.NotEqual(t, plain, d)
	assert.NotEqual(t, s, d)
}

func TestIDKey_InvalidParams(t *testing.T) {
	good := argon2.Params{Time: 1, Memory: 64, Threads: 1, KeyLen: 32}
	salt := []byte("saltsalt")

	bad := []argon2.Params{
		{Time: 0, Memory: 64, Threads: 1, KeyLen: 32},
		{Time: 1, Memory: 64, Threads: 0, KeyLen: 32},
		{Time: 1, Memory: 7, Threads: 1, KeyLen: 32},
		{Time: 1, Memory: 64, Threads: 1, KeyLen: 3},
	}
	for _, p := range bad {
		_, err := argon2.IDKey(nil, salt, p)
		assert.ErrorIs(t, err, argon2.ErrInvalidParams)
	}
	_, err := argon2.IDKey(nil, []byte("short"), good)
	assert.ErrorIs(t, err, argon2.ErrInvalidParams)
}
