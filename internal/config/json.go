package config

import (
	"encoding/json"
	"errors"
	"fmt"

	domaintypes "hposconfig/internal/domain/types"
	"hposconfig/internal/encoding"
	"hposconfig/internal/keys"
)

type adminJSON struct {
	Email     string `json:"email"`
	PublicKey string `json:"public_key"`
}

type settingsJSON struct {
	Admin adminJSON `json:"admin"`
}

type v1JSON struct {
	Seed     string        `json:"seed"`
	Settings *settingsJSON `json:"settings,omitempty"`
	// Admin is where the first V1 writers put the admin settings.
	Admin *adminJSON `json:"admin,omitempty"`
}

type v2JSON struct {
	DeviceBundle     string       `json:"device_bundle"`
	DerivationPath   string       `json:"derivation_path"`
	RegistrationCode string       `json:"registration_code"`
	Settings         settingsJSON `json:"settings"`
}

type v3JSON struct {
	DeviceBundle         string       `json:"device_bundle"`
	DeviceDerivationPath string       `json:"device_derivation_path"`
	RevocationPubKey     string       `json:"revocation_pub_key"`
	HoloportID           string       `json:"holoport_id"`
	InitialHostPubKey    string       `json:"initial_host_pub_key"`
	RegistrationCode     string       `json:"registration_code"`
	Settings             settingsJSON `json:"settings"`
}

// Marshal encodes c as an indented JSON document tagged with its version.
func Marshal(c Config) ([]byte, error) {
	if isNil(c) {
		return nil, fmt.Errorf("%w: nil config", ErrUnknownVersion)
	}
	var body any
	switch c := c.(type) {
	case *V1:
		s := encodeSettings(c.Settings)
		body = v1JSON{Seed: encoding.B64(c.Seed[:]), Settings: &s}
	case *V2:
		body = v2JSON{
			DeviceBundle:     c.DeviceBundle,
			DerivationPath:   c.DerivationPath,
			RegistrationCode: c.RegistrationCode,
			Settings:         encodeSettings(c.Settings),
		}
	case *V3:
		body = v3JSON{
			DeviceBundle:         c.DeviceBundle,
			DeviceDerivationPath: c.DeviceDerivationPath,
			RevocationPubKey:     encoding.B64(c.RevocationPubKey[:]),
			HoloportID:           c.HoloportID,
			InitialHostPubKey:    c.InitialHostPubKey,
			RegistrationCode:     c.RegistrationCode,
			Settings:             encodeSettings(c.Settings),
		}
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownVersion, c)
	}
	return json.MarshalIndent(map[string]any{c.Version().String(): body}, "", "  ")
}

// Unmarshal decodes a JSON document written by Marshal or by an older
// writer. Key fields are decoded and length checked; the remaining string
// fields are kept as written and checked by Validate.
func Unmarshal(b []byte) (Config, error) {
	var env map[string]json.RawMessage
	if err := json.Unmarshal(b, &env); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if len(env) != 1 {
		return nil, fmt.Errorf("%w: want exactly one version key, got %d", ErrUnknownVersion, len(env))
	}

	for tag, raw := range env {
		switch domaintypes.Version(tag) {
		case domaintypes.V1:
			return decodeV1(raw)
		case domaintypes.V2:
			return decodeV2(raw)
		case domaintypes.V3:
			return decodeV3(raw)
		}
		return nil, fmt.Errorf("%w: %q", ErrUnknownVersion, tag)
	}
	return nil, ErrUnknownVersion
}

func decodeV1(raw json.RawMessage) (*V1, error) {
	var j v1JSON
	if err := json.Unmarshal(raw, &j); err != nil {
		return nil, fmt.Errorf("config v1: %w", err)
	}

	seedBytes, err := encoding.UnB64(j.Seed)
	if err != nil {
		return nil, fieldErr("v1.seed", err)
	}
	defer keys.Wipe(seedBytes)
	seed, err := keys.SeedFromBytes(seedBytes)
	if err != nil {
		return nil, fieldErr("v1.seed", err)
	}

	var admin adminJSON
	switch {
	case j.Settings != nil:
		admin = j.Settings.Admin
	case j.Admin != nil:
		admin = *j.Admin
	default:
		return nil, fieldErr("v1.settings", errors.New("missing"))
	}
	settings, err := decodeSettings("v1", admin)
	if err != nil {
		return nil, err
	}
	return &V1{Seed: seed, Settings: settings}, nil
}

func decodeV2(raw json.RawMessage) (*V2, error) {
	var j v2JSON
	if err := json.Unmarshal(raw, &j); err != nil {
		return nil, fmt.Errorf("config v2: %w", err)
	}
	settings, err := decodeSettings("v2", j.Settings.Admin)
	if err != nil {
		return nil, err
	}
	return &V2{
		DeviceBundle:     j.DeviceBundle,
		DerivationPath:   j.DerivationPath,
		RegistrationCode: j.RegistrationCode,
		Settings:         settings,
	}, nil
}

func decodeV3(raw json.RawMessage) (*V3, error) {
	var j v3JSON
	if err := json.Unmarshal(raw, &j); err != nil {
		return nil, fmt.Errorf("config v3: %w", err)
	}
	settings, err := decodeSettings("v3", j.Settings.Admin)
	if err != nil {
		return nil, err
	}
	rev, err := encoding.DecodeKey("revocation_pub_key", j.RevocationPubKey)
	if err != nil {
		return nil, fieldErr("v3.revocation_pub_key", err)
	}
	return &V3{
		DeviceBundle:         j.DeviceBundle,
		DeviceDerivationPath: j.DeviceDerivationPath,
		RevocationPubKey:     domaintypes.MustEd25519Public(rev),
		HoloportID:           j.HoloportID,
		InitialHostPubKey:    j.InitialHostPubKey,
		RegistrationCode:     j.RegistrationCode,
		Settings:             settings,
	}, nil
}

func encodeSettings(s Settings) settingsJSON {
	return settingsJSON{Admin: adminJSON{
		Email:     s.Admin.Email,
		PublicKey: encoding.B64(s.Admin.PublicKey[:]),
	}}
}

func decodeSettings(version string, a adminJSON) (Settings, error) {
	pub, err := keys.ParseAdminPublicKey(a.PublicKey)
	if err != nil {
		return Settings{}, fieldErr(version+".settings.admin.public_key", err)
	}
	return Settings{Admin: Admin{Email: a.Email, PublicKey: pub}}, nil
}
