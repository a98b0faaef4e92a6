package keys_test

import (
	"bytes"
	"encoding/base64"
	"encoding/hex"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domaintypes "hposconfig/internal/domain/types"
	"hposconfig/internal/encoding"
	"hposconfig/internal/hcid"
	"hposconfig/internal/keys"
)

var (
	seed55       = domaintypes.Seed(bytes.Repeat([]byte{55}, 32))
	agent55Hex   = "2c848ad8664ee651e4896c13a84a89a2964aca5eb77a8b881e60ded5c81b4e9d"
	adminVector  = []byte{17, 243, 42, 222, 75, 47, 128, 87, 1, 252, 72, 56, 141, 216, 210, 251, 217, 95, 97, 62, 95, 112, 234, 31, 243, 73, 64, 160, 134, 92, 138, 97}
	adminHCID    = "HcAcIEqufMqexm6ak6a9zTbzsynof883m7ru6Y5r7iq9gTkaVcDF3cUBAdba4jz"
	lairVector55 = "AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAshIrYZk7mUeSJbBOoSomilkrKXrd6i4geYN7VyBtOnTc3Nzc3Nzc3Nzc3Nzc3Nzc3Nzc3Nzc3Nzc3Nzc3Nzc3"
)

func TestFromSeed_Deterministic(t *testing.T) {
	a := keys.FromSeed(seed55)
	b := keys.FromSeed(seed55)
	assert.Equal(t, a, b)
	assert.Equal(t, agent55Hex, hex.EncodeToString(a.Public[:]))
	assert.Equal(t, seed55, a.Seed())
}

func TestAdminKeypair_Vector(t *testing.T) {
	if testing.Short() {
		t.Skip("64 MiB Argon2id")
	}
	agent := keys.FromSeed(seed55)

	admin, err := keys.AdminKeypair(agent.Public, "pj@aa.pl", "password")
	require.NoError(t, err)
	assert.Equal(t, adminVector, admin.Public[:])

	id, err := hcid.Encode(hcid.KindAdmin, admin.Public[:])
	require.NoError(t, err)
	assert.Equal(t, adminHCID, id)

	again, err := keys.AdminKeypair(agent.Public, "pj@aa.pl", "password")
	require.NoError(t, err)
	assert.Equal(t, admin, again)

	otherEmail, err := keys.AdminKeypair(agent.Public, "pj@aa.pm", "password")
	require.NoError(t, err)
	assert.NotEqual(t, admin.Public, otherEmail.Public)

	otherPassword, err := keys.AdminKeypair(agent.Public, "pj@aa.pl", "passwore")
	require.NoError(t, err)
	assert.NotEqual(t, admin.Public, otherPassword.Public)

	otherHost := keys.FromSeed(domaintypes.Seed{1})
	otherPepper, err := keys.AdminKeypair(otherHost.Public, "pj@aa.pl", "password")
	require.NoError(t, err)
	assert.NotEqual(t, admin.Public, otherPepper.Public)
}

func TestSeedFromEntropy(t *testing.T) {
	s, err := keys.SeedFromEntropy(strings.NewReader("abc"))
	require.NoError(t, err)
	assert.Equal(t, "53048e2681941ef99b2e29b76b4c7dabe4c2d0c634fc6d46e0e2f13107e7af23", hex.EncodeToString(s[:]))
}

func TestSeedFromBytes_BadLength(t *testing.T) {
	_, err := keys.SeedFromBytes(make([]byte, 33))
	assert.ErrorIs(t, err, encoding.ErrBadLength)
}

func TestNewSeed_Random(t *testing.T) {
	a, err := keys.NewSeed()
	require.NoError(t, err)
	b, err := keys.NewSeed()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestLair_RoundTrip(t *testing.T) {
	kp := keys.FromSeed(seed55)
	blob := keys.EncodeLair(kp)
	assert.Equal(t, lairVector55, blob)

	back, err := keys.DecodeLair(blob)
	require.NoError(t, err)
	assert.Equal(t, kp, back)
}

func TestLair_Rejects(t *testing.T) {
	_, err := keys.DecodeLair(base64.StdEncoding.EncodeToString(make([]byte, 64)))
	assert.ErrorIs(t, err, encoding.ErrBadLength)

	raw, err := base64.StdEncoding.DecodeString(lairVector55)
	require.NoError(t, err)
	raw[40] ^= 1
	_, err = keys.DecodeLair(base64.StdEncoding.EncodeToString(raw))
	assert.ErrorIs(t, err, keys.ErrLairMismatch)

	_, err = keys.DecodeLair("%%%")
	assert.Error(t, err)
}

func TestAdminVerifier_Verify(t *testing.T) {
	kp := keys.FromSeed(domaintypes.Seed{9})
	msg := []byte("Of the increase of his government and peace there shall be no end")
	sig := base64.RawStdEncoding.EncodeToString(kp.Sign(msg))

	id, err := hcid.Encode(hcid.KindAdmin, kp.Public[:])
	require.NoError(t, err)
	b64, err := encoding.EncodeKey(kp.Public[:])
	require.NoError(t, err)

	for _, form := range []string{id, b64} {
		v, err := keys.ParseAdminVerifier(form)
		require.NoError(t, err)
		assert.Equal(t, kp.Public, v.PublicKey())

		ok, err := v.Verify(msg, sig)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = v.Verify([]byte("tampered"), sig)
		require.NoError(t, err)
		assert.False(t, ok)
	}

	v := keys.NewAdminVerifier(kp.Public)
	_, err = v.Verify(msg, "not base64!")
	assert.Error(t, err)
}

func TestAdminVerifier_Window(t *testing.T) {
	kp := keys.FromSeed(domaintypes.Seed{})
	v := keys.NewAdminVerifier(kp.Public)

	const payload = `"Hello, World"`
	delta := time.Hour
	now := time.Unix(35*365*24*60*60, 0)

	sig, err := keys.SignWindow(kp, payload, now.Add(5*time.Second), delta)
	require.NoError(t, err)

	cases := []struct {
		at   time.Time
		want bool
	}{
		{now.Add(10 * time.Second), true},
		{now.Add(-10 * time.Second), false},
		{now.Add(delta), true},
		{now.Add(2 * delta), false},
	}
	for _, tc := range cases {
		ok, err := v.VerifyWindow(payload, sig, tc.at, delta)
		require.NoError(t, err)
		assert.Equal(t, tc.want, ok, "at %s", tc.at)
	}

	_, err = v.VerifyWindow(payload, sig, now, 0)
	assert.Error(t, err)
}

func TestWipe(t *testing.T) {
	kp := keys.FromSeed(seed55)
	kp.Wipe()
	assert.Equal(t, domaintypes.Ed25519Private{}, kp.Private)
}

func TestFingerprint(t *testing.T) {
	fp := keys.Fingerprint(keys.FromSeed(seed55).Public)
	assert.Len(t, fp.String(), 20)
}
