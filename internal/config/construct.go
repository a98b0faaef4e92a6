package config

import (
	"fmt"

	domaintypes "hposconfig/internal/domain/types"
	"hposconfig/internal/encoding"
	"hposconfig/internal/keys"
)

// NewV1 builds a V1 config around seed, or a fresh random seed when seed is
// nil. It returns the config and the host public key derived from the seed.
func NewV1(email, password string, seed *domaintypes.Seed) (*V1, domaintypes.Ed25519Public, error) {
	var s domaintypes.Seed
	if seed != nil {
		s = *seed
	} else {
		var err error
		if s, err = keys.NewSeed(); err != nil {
			return nil, domaintypes.Ed25519Public{}, err
		}
	}

	host := keys.FromSeed(s)
	defer host.Wipe()

	settings, err := newSettings(host.Public, email, password)
	if err != nil {
		return nil, domaintypes.Ed25519Public{}, err
	}
	return &V1{Seed: s, Settings: settings}, host.Public, nil
}

// NewV2 builds a V2 config. deviceBundle is the locked device bundle and
// devicePub the public key of the seed it holds; the admin key is derived
// from devicePub.
func NewV2(email, password, registrationCode, derivationPath, deviceBundle string, devicePub domaintypes.Ed25519Public) (*V2, domaintypes.Ed25519Public, error) {
	if _, err := domaintypes.ParseDerivationPath(derivationPath); err != nil {
		return nil, devicePub, fieldErr("v2.derivation_path", err)
	}
	settings, err := newSettings(devicePub, email, password)
	if err != nil {
		return nil, devicePub, err
	}
	return &V2{
		DeviceBundle:     deviceBundle,
		DerivationPath:   derivationPath,
		RegistrationCode: registrationCode,
		Settings:         settings,
	}, devicePub, nil
}

// NewV3 builds a V3 config. devicePub is the host key derived by the
// caller from the device bundle at HoloportIDPath; the admin key and both
// host identifiers are computed from it.
func NewV3(
	email, password, registrationCode string,
	revocationPub domaintypes.Ed25519Public,
	deviceDerivationPath, deviceBundle string,
	devicePub domaintypes.Ed25519Public,
) (*V3, domaintypes.Ed25519Public, error) {
	if err := validateDevicePath(deviceDerivationPath); err != nil {
		return nil, devicePub, fieldErr("v3.device_derivation_path", err)
	}

	settings, err := newSettings(devicePub, email, password)
	if err != nil {
		return nil, devicePub, err
	}
	hostID, err := encoding.EncodeBase36(devicePub[:])
	if err != nil {
		return nil, devicePub, err
	}
	agent, err := encoding.EncodeAgent(devicePub[:])
	if err != nil {
		return nil, devicePub, err
	}

	return &V3{
		DeviceBundle:         deviceBundle,
		DeviceDerivationPath: deviceDerivationPath,
		RevocationPubKey:     revocationPub,
		HoloportID:           hostID,
		InitialHostPubKey:    agent,
		RegistrationCode:     registrationCode,
		Settings:             settings,
	}, devicePub, nil
}

func newSettings(host domaintypes.Ed25519Public, email, password string) (Settings, error) {
	admin, err := keys.AdminKeypair(host, email, password)
	if err != nil {
		return Settings{}, fmt.Errorf("config: %w", err)
	}
	defer admin.Wipe()
	return Settings{Admin: Admin{Email: email, PublicKey: admin.Public}}, nil
}
