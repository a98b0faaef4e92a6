package commands

import (
	"bytes"
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hposconfig/internal/config"
	"hposconfig/internal/store"
)

const legacyV1 = `{"v1":{"seed":"Nzc3Nzc3Nzc3Nzc3Nzc3Nzc3Nzc3Nzc3Nzc3Nzc3Nzc","admin":{"email":"pj@aa.pl","public_key":"HcAcIEqufMqexm6ak6a9zTbzsynof883m7ru6Y5r7iq9gTkaVcDF3cUBAdba4jz"}}}`

const currentV1 = `{
  "v1": {
    "seed": "Nzc3Nzc3Nzc3Nzc3Nzc3Nzc3Nzc3Nzc3Nzc3Nzc3Nzc",
    "settings": {
      "admin": {
        "email": "pj@aa.pl",
        "public_key": "EfMq3ksvgFcB/Eg4jdjS+9lfYT5fcOof80lAoIZcimE"
      }
    }
  }
}
`

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv(envConfigPath, "")
	t.Setenv(envPassphrase, "")

	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--home", t.TempDir()}, args...))
	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func writeLegacy(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hpos-config.json")
	require.NoError(t, os.WriteFile(path, []byte(legacyV1), 0o600))
	return path
}

func TestPubkey_Formats(t *testing.T) {
	path := writeLegacy(t)
	cases := map[string]string{
		"base64":      "LISK2GZO5lHkiWwTqEqJopZKyl63eouIHmDe1cgbTp0",
		"agent":       "uhCAkLISK2GZO5lHkiWwTqEqJopZKyl63eouIHmDe1cgbTp1JhC2Q",
		"base36":      "13xzhbginuk901mjn0w7ntb24ocgeweq3pfw06z0mdwo0mnu71",
		"fingerprint": "6473da00b0eff640d08d",
		"hcid":        "HcScIMeeSmNgnuygkhTIT5auWbfiuivxjMfF7O54sPeb6zg84yEBXUV7bf7z58z",
		"legacy-url":  "https://hcscimeesmngnuygkhtit5auwbfiuivxjmff7o54speb6zg84yebxuv7bf7z58z.holohost.net/",
	}
	for format, want := range cases {
		t.Run(format, func(t *testing.T) {
			out, _, err := run(t, "", "pubkey", path, "--format", format)
			require.NoError(t, err)
			assert.Equal(t, want+"\n", out)
		})
	}

	out, _, err := run(t, "", "pubkey", path, "--format", "url")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "https://hcak"), out)
	assert.True(t, strings.HasSuffix(out, ".holohost.net\n"), out)

	_, _, err = run(t, "", "pubkey", path, "--format", "hex")
	assert.ErrorContains(t, err, "unknown key format")
}

func TestAdmin(t *testing.T) {
	path := writeLegacy(t)

	out, _, err := run(t, "", "admin", path)
	require.NoError(t, err)
	assert.Equal(t, "EfMq3ksvgFcB/Eg4jdjS+9lfYT5fcOof80lAoIZcimE\n", out)

	out, _, err = run(t, "", "admin", path, "-f", "hcid")
	require.NoError(t, err)
	assert.Equal(t, "HcAcIEqufMqexm6ak6a9zTbzsynof883m7ru6Y5r7iq9gTkaVcDF3cUBAdba4jz\n", out)
}

func TestBase36AndKeypair_Stdin(t *testing.T) {
	out, _, err := run(t, legacyV1, "base36-id", "-")
	require.NoError(t, err)
	assert.Equal(t, "13xzhbginuk901mjn0w7ntb24ocgeweq3pfw06z0mdwo0mnu71\n", out)

	out, _, err = run(t, legacyV1, "keypair", "-")
	require.NoError(t, err)
	assert.Equal(t, "AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAshIrYZk7mUeSJbBOoSomilkrKXrd6i4geYN7VyBtOnTc3Nzc3Nzc3Nzc3Nzc3Nzc3Nzc3Nzc3Nzc3Nzc3Nzc3\n", out)
}

func TestDerive(t *testing.T) {
	path := writeLegacy(t)

	out, _, err := run(t, "", "derive", path)
	require.NoError(t, err)
	assert.Equal(t, "Ao6Cx1uX+eM72TzQFWR2Ug9i/y1wIIWdqWMyufqKb6o\n", out)

	out, _, err = run(t, "", "derive", path, "--path", "3")
	require.NoError(t, err)
	assert.Equal(t, "+jG9MsiYvy7NXOuFJ6Xp/bK6Q0g2qwliXIIAdj8Oji4\n", out)
}

func TestConvertAndValidate(t *testing.T) {
	path := writeLegacy(t)

	out, _, err := run(t, "", "convert", path, "--to", "v1")
	require.NoError(t, err)
	assert.Equal(t, currentV1, out)

	_, _, err = run(t, "", "convert", path, "--to", "v2")
	assert.ErrorIs(t, err, config.ErrUnsupportedConversion)

	out, _, err = run(t, "", "validate", path)
	require.NoError(t, err)
	assert.Equal(t, "v1 config is valid\n", out)
}

func TestConfigResolution(t *testing.T) {
	path := writeLegacy(t)

	out, _, err := run(t, "", "--config", path, "base36-id")
	require.NoError(t, err)
	assert.Equal(t, "13xzhbginuk901mjn0w7ntb24ocgeweq3pfw06z0mdwo0mnu71\n", out)

	_, _, err = run(t, "", "base36-id")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestVerify_Invalid(t *testing.T) {
	path := writeLegacy(t)
	zero := base64.RawStdEncoding.EncodeToString(make([]byte, 64))

	_, _, err := run(t, "", "verify", path, "-m", "hello", "-s", zero)
	assert.ErrorIs(t, err, errInvalidSignature)

	_, _, err = run(t, "", "verify", path, "-m", "hello", "-s", "not base64!")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, errInvalidSignature)
}

func TestGenerateSignVerify_V1(t *testing.T) {
	if testing.Short() {
		t.Skip("admin key derivation is slow")
	}
	home := t.TempDir()
	path := filepath.Join(home, "out.json")

	out, stderr, err := run(t, "entropy", "generate", "--version", "v1", "--email", "pj@aa.pl",
		"--password", "password", "--seed-from", "-", "--save", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, stderr, "https://hcak")

	saved, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, string(saved), out)

	sig, _, err := run(t, "", "sign", path, "-m", "hello", "--password", "password")
	require.NoError(t, err)

	out, _, err = run(t, "", "verify", path, "-m", "hello", "-s", strings.TrimSpace(sig))
	require.NoError(t, err)
	assert.Equal(t, "valid\n", out)

	_, _, err = run(t, "", "sign", path, "-m", "hello", "--password", "wrong")
	assert.ErrorIs(t, err, config.ErrAdminKeyMismatch)
}

func TestGenerate_RequiresPassphrase(t *testing.T) {
	_, _, err := run(t, "", "generate", "--email", "pj@aa.pl", "--password", "password")
	assert.ErrorContains(t, err, "passphrase")
}
