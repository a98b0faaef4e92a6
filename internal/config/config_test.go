package config_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hposconfig/internal/config"
	domaintypes "hposconfig/internal/domain/types"
	"hposconfig/internal/encoding"
	"hposconfig/internal/seedbundle"
)

const legacyV1 = `{
  "v1": {
    "seed": "Nzc3Nzc3Nzc3Nzc3Nzc3Nzc3Nzc3Nzc3Nzc3Nzc3Nzc",
    "admin": {
      "email": "pj@aa.pl",
      "public_key": "HcAcIEqufMqexm6ak6a9zTbzsynof883m7ru6Y5r7iq9gTkaVcDF3cUBAdba4jz"
    }
  }
}`

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
}`

var adminVector = domaintypes.Ed25519Public{
	17, 243, 42, 222, 75, 47, 128, 87, 1, 252, 72, 56, 141, 216, 210, 251,
	217, 95, 97, 62, 95, 112, 234, 31, 243, 73, 64, 160, 134, 92, 138, 97,
}

func seed55() domaintypes.Seed {
	var s domaintypes.Seed
	for i := range s {
		s[i] = 55
	}
	return s
}

func TestUnmarshal_LegacyV1(t *testing.T) {
	c, err := config.Unmarshal([]byte(legacyV1))
	require.NoError(t, err)

	v1, ok := c.(*config.V1)
	require.True(t, ok)
	assert.Equal(t, seed55(), v1.Seed)
	assert.Equal(t, "pj@aa.pl", config.Email(c))
	assert.Equal(t, adminVector, config.AdminPublicKey(c))

	out, err := config.Marshal(c)
	require.NoError(t, err)
	assert.Equal(t, currentV1, string(out))

	again, err := config.Unmarshal(out)
	require.NoError(t, err)
	if diff := cmp.Diff(c, again); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestNewV1_Vector(t *testing.T) {
	if testing.Short() {
		t.Skip("admin key derivation is slow")
	}
	seed := seed55()
	c, host, err := config.NewV1("pj@aa.pl", "password", &seed)
	require.NoError(t, err)

	assert.Equal(t, adminVector, c.Settings.Admin.PublicKey)
	agent, err := encoding.EncodeAgent(host[:])
	require.NoError(t, err)
	assert.Equal(t, "uhCAkLISK2GZO5lHkiWwTqEqJopZKyl63eouIHmDe1cgbTp1JhC2Q", agent)

	out, err := config.Marshal(c)
	require.NoError(t, err)
	assert.Equal(t, currentV1, string(out))
	assert.NoError(t, config.Validate(c))
}

func TestUnmarshal_Errors(t *testing.T) {
	cases := map[string]struct {
		doc  string
		want error
	}{
		"no version":    {`{}`, config.ErrUnknownVersion},
		"two versions":  {`{"v1": {}, "v2": {}}`, config.ErrUnknownVersion},
		"unknown":       {`{"v9": {}}`, config.ErrUnknownVersion},
		"short seed":    {`{"v1": {"seed": "AAAA", "settings": {"admin": {"email": "a@b", "public_key": "EfMq3ksvgFcB/Eg4jdjS+9lfYT5fcOof80lAoIZcimE"}}}}`, encoding.ErrBadLength},
		"short admin":   {`{"v2": {"settings": {"admin": {"email": "a@b", "public_key": "AAAA"}}}}`, encoding.ErrBadLength},
		"short revoker": {`{"v3": {"revocation_pub_key": "AAAA", "settings": {"admin": {"email": "a@b", "public_key": "EfMq3ksvgFcB/Eg4jdjS+9lfYT5fcOof80lAoIZcimE"}}}}`, encoding.ErrBadLength},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := config.Unmarshal([]byte(tc.doc))
			assert.ErrorIs(t, err, tc.want)
		})
	}

	_, err := config.Unmarshal([]byte(`{"v1": {"seed": "AAAA", "settings": {"admin": {"email": "a@b", "public_key": ""}}}}`))
	var fe *config.FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "v1.seed", fe.Field)

	_, err = config.Unmarshal([]byte(`not json`))
	assert.Error(t, err)
}

func sampleV3() *config.V3 {
	key := func(b byte) domaintypes.Ed25519Public {
		var p domaintypes.Ed25519Public
		for i := range p {
			p[i] = b
		}
		return p
	}
	return &config.V3{
		DeviceBundle:         "bundle",
		DeviceDerivationPath: "2",
		RevocationPubKey:     key(1),
		HoloportID:           "host",
		InitialHostPubKey:    "uhCAk",
		RegistrationCode:     "registration-code",
		Settings: config.Settings{Admin: config.Admin{
			Email:     "joel@holo.host",
			PublicKey: key(2),
		}},
	}
}

func TestConvert(t *testing.T) {
	v3 := sampleV3()
	v2 := &config.V2{
		DeviceBundle:     v3.DeviceBundle,
		DerivationPath:   v3.DeviceDerivationPath,
		RegistrationCode: v3.RegistrationCode,
		Settings:         v3.Settings,
	}
	v1 := &config.V1{Seed: seed55(), Settings: v3.Settings}

	got, err := config.Convert(v3, domaintypes.V2)
	require.NoError(t, err)
	if diff := cmp.Diff(config.Config(v2), got); diff != "" {
		t.Fatalf("v3 to v2 (-want +got):\n%s", diff)
	}

	for _, c := range []config.Config{v1, v2, v3} {
		same, err := config.Convert(c, c.Version())
		require.NoError(t, err)
		assert.Same(t, c, same)
	}

	refused := []struct {
		from config.Config
		to   domaintypes.Version
	}{
		{v1, domaintypes.V2},
		{v1, domaintypes.V3},
		{v2, domaintypes.V1},
		{v2, domaintypes.V3},
		{v3, domaintypes.V1},
	}
	for _, tc := range refused {
		_, err := config.Convert(tc.from, tc.to)
		require.ErrorIs(t, err, config.ErrUnsupportedConversion, "%s to %s", tc.from.Version(), tc.to)

		var ce *config.ConversionError
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, tc.from.Version(), ce.From)
		assert.Equal(t, tc.to, ce.To)
	}

	_, err = config.Convert(v3, "v4")
	assert.ErrorIs(t, err, config.ErrUnknownVersion)
}

func TestNilConfig(t *testing.T) {
	for name, c := range map[string]config.Config{
		"nil":    nil,
		"nil v1": (*config.V1)(nil),
		"nil v2": (*config.V2)(nil),
		"nil v3": (*config.V3)(nil),
	} {
		t.Run(name, func(t *testing.T) {
			_, err := config.Convert(c, domaintypes.V2)
			assert.ErrorIs(t, err, config.ErrUnknownVersion)

			assert.ErrorIs(t, config.Validate(c), config.ErrUnknownVersion)

			_, err = config.Marshal(c)
			assert.ErrorIs(t, err, config.ErrUnknownVersion)
		})
	}
}

func TestConvert_V3ToV2KeepsJSONFields(t *testing.T) {
	v3 := sampleV3()
	v2, err := config.Convert(v3, domaintypes.V2)
	require.NoError(t, err)

	b, err := config.Marshal(v2)
	require.NoError(t, err)
	for _, want := range []string{
		`"device_bundle": "bundle"`,
		`"derivation_path": "2"`,
		`"registration_code": "registration-code"`,
		`"email": "joel@holo.host"`,
	} {
		assert.True(t, bytes.Contains(b, []byte(want)), "missing %s in %s", want, b)
	}
}

func TestValidate_CollectsAllFields(t *testing.T) {
	c := sampleV3()
	c.Settings.Admin.Email = "nobody"
	c.DeviceDerivationPath = "-1"

	err := config.Validate(c)
	require.Error(t, err)

	var merr *multierror.Error
	require.True(t, errors.As(err, &merr))

	var fields []string
	for _, e := range merr.Errors {
		var fe *config.FieldError
		require.ErrorAs(t, e, &fe)
		fields = append(fields, fe.Field)
	}
	assert.ElementsMatch(t, []string{
		"v3.settings.admin.email",
		"v3.device_bundle",
		"v3.device_derivation_path",
		"v3.holoport_id",
	}, fields)
}

func TestValidate_V3RevocationPath(t *testing.T) {
	c := sampleV3()
	c.DeviceDerivationPath = "0"

	err := config.Validate(c)
	assert.ErrorIs(t, err, config.ErrReservedPath)

	var merr *multierror.Error
	require.True(t, errors.As(err, &merr))
	var fields []string
	for _, e := range merr.Errors {
		var fe *config.FieldError
		require.ErrorAs(t, e, &fe)
		if errors.Is(fe, config.ErrReservedPath) {
			fields = append(fields, fe.Field)
		}
	}
	assert.Equal(t, []string{"v3.device_derivation_path"}, fields)
}

func TestNewV3_RevocationPathRejected(t *testing.T) {
	var revocation, host domaintypes.Ed25519Public
	revocation[0], host[0] = 1, 2

	_, _, err := config.NewV3("joel@holo.host", "password", "", revocation, "0", "", host)
	assert.ErrorIs(t, err, config.ErrReservedPath)
	var fe *config.FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "v3.device_derivation_path", fe.Field)
}

func TestValidate_V1ZeroSeed(t *testing.T) {
	c := &config.V1{Settings: config.Settings{Admin: config.Admin{Email: "a@b.c", PublicKey: adminVector}}}
	var fe *config.FieldError
	require.ErrorAs(t, config.Validate(c), &fe)
	assert.Equal(t, "v1.seed", fe.Field)
}

// Locked with passphrase "pass" by the host provisioning web tool.
const mockBundle = "k6VoY3NiMJGWonB3xBCZ0R47aR6ctMScaYsrOLwRzSAAAcQY58NsOmNCDbniGsLgUhj5UoHjBrapiiDGxDGAa5Wqzm0pVuXGN106iyMHRk4dOf0iGWj65oCeB8-ZYXJdeflsVDY-DOuJaadfPZQExCyCrWRldmljZV9udW1iZXIAq2dlbmVyYXRlX2J5r3F1aWNrc3RhcnQtdjIuMA"

func TestV2_HoloportPublicKey(t *testing.T) {
	mockPub, err := encoding.DecodeDNS("To4PzBU8BcVghpjGjnYjLQnP_mkT9uBJ2v969Cs7-xw")
	require.NoError(t, err)

	c := &config.V2{
		DeviceBundle:     mockBundle,
		DerivationPath:   "1",
		RegistrationCode: "registration-code",
		Settings:         config.Settings{Admin: config.Admin{Email: "jack@holo.host", PublicKey: adminVector}},
	}
	require.NoError(t, config.Validate(c))

	pub, err := config.HoloportPublicKey(c, []byte("pass"))
	require.NoError(t, err)
	assert.Equal(t, mockPub, pub[:])

	_, err = config.HoloportPublicKey(c, nil)
	assert.ErrorIs(t, err, config.ErrPasswordRequired)

	_, err = config.HoloportPublicKey(c, []byte("wrong"))
	assert.ErrorIs(t, err, seedbundle.ErrAuthenticationFailed)

	id, err := config.HostID(c, []byte("pass"))
	require.NoError(t, err)
	want, err := encoding.EncodeBase36(mockPub)
	require.NoError(t, err)
	assert.Equal(t, want, id)
}

func TestV3_Lifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("admin key derivation is slow")
	}
	passphrase := []byte("test-passphrase")

	master := seedbundle.New(seed55())
	revocation, err := master.Derive(domaintypes.RevocationPath)
	require.NoError(t, err)
	device, err := master.Derive(2)
	require.NoError(t, err)
	locked, err := device.Lock(passphrase, seedbundle.LimitsMinimum)
	require.NoError(t, err)
	holoport, err := device.Derive(domaintypes.HoloportIDPath)
	require.NoError(t, err)

	c, pub, err := config.NewV3(
		"joel@holo.host", "password", "registration-code",
		revocation.SignPublicKey(), "2", seedbundle.EncodeString(locked),
		holoport.SignPublicKey(),
	)
	require.NoError(t, err)
	assert.Equal(t, holoport.SignPublicKey(), pub)
	require.NoError(t, config.Validate(c))

	wantID, err := encoding.EncodeBase36(pub[:])
	require.NoError(t, err)
	assert.Equal(t, wantID, c.HoloportID)
	assert.Equal(t, byte('u'), c.InitialHostPubKey[0])

	t.Run("stored host key needs no passphrase", func(t *testing.T) {
		got, err := config.HoloportPublicKey(c, nil)
		require.NoError(t, err)
		assert.Equal(t, pub, got)
	})

	t.Run("host keypair unlocks the bundle", func(t *testing.T) {
		kp, err := config.HostKeypair(c, passphrase)
		require.NoError(t, err)
		assert.Equal(t, pub, kp.Public)

		_, err = config.HostKeypair(c, nil)
		assert.ErrorIs(t, err, config.ErrPasswordRequired)
		_, err = config.HostKeypair(c, []byte("nope"))
		assert.ErrorIs(t, err, seedbundle.ErrAuthenticationFailed)

		blob, err := config.EncodedKeypair(c, passphrase)
		require.NoError(t, err)
		assert.NotEmpty(t, blob)
	})

	t.Run("admin keypair", func(t *testing.T) {
		admin, err := config.AdminKeypair(c, "password", passphrase)
		require.NoError(t, err)
		assert.Equal(t, config.AdminPublicKey(c), admin.Public)

		_, err = config.AdminKeypair(c, "passw0rd", passphrase)
		assert.ErrorIs(t, err, config.ErrAdminKeyMismatch)
	})

	t.Run("json round trip", func(t *testing.T) {
		b, err := config.Marshal(c)
		require.NoError(t, err)
		back, err := config.Unmarshal(b)
		require.NoError(t, err)
		if diff := cmp.Diff(config.Config(c), back); diff != "" {
			t.Fatalf("(-want +got):\n%s", diff)
		}
	})

	t.Run("bad path rejected", func(t *testing.T) {
		_, _, err := config.NewV3("joel@holo.host", "password", "", revocation.SignPublicKey(), "two", "", pub)
		var fe *config.FieldError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, "v3.device_derivation_path", fe.Field)
	})
}
