package hcid_test

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hposconfig/internal/encoding"
	"hposconfig/internal/hcid"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func TestEncode_Vectors(t *testing.T) {
	cases := []struct {
		name string
		kind hcid.Kind
		key  string
		want string
	}{
		{"agent", hcid.KindAgent, "2c848ad8664ee651e4896c13a84a89a2964aca5eb77a8b881e60ded5c81b4e9d",
			"HcScIMeeSmNgnuygkhTIT5auWbfiuivxjMfF7O54sPeb6zg84yEBXUV7bf7z58z"},
		{"admin", hcid.KindAdmin, "11f32ade4b2f805701fc48388dd8d2fbd95f613e5f70ea1ff34940a0865c8a61",
			"HcAcIEqufMqexm6ak6a9zTbzsynof883m7ru6Y5r7iq9gTkaVcDF3cUBAdba4jz"},
		{"bundle", hcid.KindBundle, "ce03b21f7eb514a77d8cb7097e6f5ff56e1273e9bc547e9d70d8321fb56a5524",
			"HcBCjuRDXiQy7oivv78z3Ozjq3YW97mpcj38UQcVQ4PYbxbtd84XVWjebm7vvwi"},
		{"collection", hcid.KindCollection, "f136ff82982207083f2d47f5ba27b8e5f136ff82982207083f2d47f5ba27b8e5",
			"HcCCJ6jX98BJRIrhba9T4s9WYIu5S3Qsg59ZfgBCA6ed8mkh8X7CqpHfGZmxv8a"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			key := mustHex(t, tc.key)
			got, err := hcid.Encode(tc.kind, key)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.Len(t, got, hcid.EncodedLen)

			back, err := hcid.Decode(tc.kind, got)
			require.NoError(t, err)
			assert.Equal(t, key, back)
		})
	}
}

func TestDecode_SingleCase(t *testing.T) {
	id := "HcScIMeeSmNgnuygkhTIT5auWbfiuivxjMfF7O54sPeb6zg84yEBXUV7bf7z58z"
	want := mustHex(t, "2c848ad8664ee651e4896c13a84a89a2964aca5eb77a8b881e60ded5c81b4e9d")

	for _, s := range []string{strings.ToLower(id), strings.ToUpper(id)} {
		got, err := hcid.Decode(hcid.KindAgent, s)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestHolohostURL(t *testing.T) {
	key := mustHex(t, "2c848ad8664ee651e4896c13a84a89a2964aca5eb77a8b881e60ded5c81b4e9d")
	got, err := hcid.HolohostURL(key)
	require.NoError(t, err)
	assert.Equal(t, "https://hcscimeesmngnuygkhtit5auwbfiuivxjmff7o54speb6zg84yebxuv7bf7z58z.holohost.net/", got)

	_, err = hcid.HolohostURL(key[:31])
	assert.ErrorIs(t, err, encoding.ErrBadLength)
}

func TestDecode_Errors(t *testing.T) {
	agent := "HcScIMeeSmNgnuygkhTIT5auWbfiuivxjMfF7O54sPeb6zg84yEBXUV7bf7z58z"

	_, err := hcid.Decode(hcid.KindAdmin, agent)
	assert.ErrorIs(t, err, hcid.ErrKind)

	_, err = hcid.Decode(hcid.KindAgent, agent[:40])
	assert.ErrorIs(t, err, encoding.ErrBadLength)

	// 'l' is not in the alphabet.
	_, err = hcid.Decode(hcid.KindAgent, agent[:10]+"l"+agent[11:])
	assert.ErrorIs(t, err, hcid.ErrCharacter)

	// Transposed data characters break the base parity.
	swapped := agent[:20] + string(agent[21]) + string(agent[20]) + agent[22:]
	require.NotEqual(t, agent, swapped)
	_, err = hcid.Decode(hcid.KindAgent, swapped)
	assert.ErrorIs(t, err, hcid.ErrChecksum)

	// Flipped capitalisation breaks the case parity.
	flipped := []byte(agent)
	flipped[4] = 'i'
	_, err = hcid.Decode(hcid.KindAgent, string(flipped))
	assert.ErrorIs(t, err, hcid.ErrChecksum)

	_, err = hcid.Encode("xx", make([]byte, 32))
	assert.ErrorIs(t, err, hcid.ErrKind)
	_, err = hcid.Encode(hcid.KindAgent, make([]byte, 31))
	assert.ErrorIs(t, err, encoding.ErrBadLength)
}
