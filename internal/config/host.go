package config

import (
	"fmt"

	domaintypes "hposconfig/internal/domain/types"
	"hposconfig/internal/encoding"
	"hposconfig/internal/keys"
	"hposconfig/internal/seedbundle"
)

// HoloportPublicKey returns the host public key.
//
// V1 derives it from the stored seed and ignores passphrase. V2 unlocks the
// device bundle with passphrase. V3 reads the stored holoport_id and only
// falls back to unlocking the bundle when that field is empty.
func HoloportPublicKey(c Config, passphrase []byte) (domaintypes.Ed25519Public, error) {
	if v3, ok := c.(*V3); ok && v3.HoloportID != "" {
		raw, err := encoding.DecodeBase36(v3.HoloportID)
		if err != nil {
			return domaintypes.Ed25519Public{}, fieldErr("v3.holoport_id", err)
		}
		return domaintypes.MustEd25519Public(raw), nil
	}

	kp, err := HostKeypair(c, passphrase)
	if err != nil {
		return domaintypes.Ed25519Public{}, err
	}
	defer kp.Wipe()
	return kp.Public, nil
}

// HostKeypair returns the host signing keypair. For V3 this is the key at
// HoloportIDPath under the device seed.
func HostKeypair(c Config, passphrase []byte) (keys.Keypair, error) {
	switch c := c.(type) {
	case *V1:
		return keys.FromSeed(c.Seed), nil
	case *V2:
		device, err := unlockDevice("v2", c.DeviceBundle, passphrase)
		if err != nil {
			return keys.Keypair{}, err
		}
		defer device.Wipe()
		return device.Keypair(), nil
	case *V3:
		device, err := unlockDevice("v3", c.DeviceBundle, passphrase)
		if err != nil {
			return keys.Keypair{}, err
		}
		defer device.Wipe()
		host, err := device.Derive(domaintypes.HoloportIDPath)
		if err != nil {
			return keys.Keypair{}, err
		}
		defer host.Wipe()
		return host.Keypair(), nil
	}
	return keys.Keypair{}, fmt.Errorf("%w: %T", ErrUnknownVersion, c)
}

// EncodedKeypair returns the host keypair in the lair keystore blob form.
func EncodedKeypair(c Config, passphrase []byte) (string, error) {
	kp, err := HostKeypair(c, passphrase)
	if err != nil {
		return "", err
	}
	defer kp.Wipe()
	return keys.EncodeLair(kp), nil
}

// HostID returns the base36 host identifier.
func HostID(c Config, passphrase []byte) (string, error) {
	if v3, ok := c.(*V3); ok && v3.HoloportID != "" {
		return v3.HoloportID, nil
	}
	pub, err := HoloportPublicKey(c, passphrase)
	if err != nil {
		return "", err
	}
	return encoding.EncodeBase36(pub[:])
}

// AdminKeypair re-derives the admin keypair from the owner's password and
// checks it against the stored admin key.
func AdminKeypair(c Config, password string, passphrase []byte) (keys.Keypair, error) {
	host, err := HoloportPublicKey(c, passphrase)
	if err != nil {
		return keys.Keypair{}, err
	}
	admin, err := keys.AdminKeypair(host, Email(c), password)
	if err != nil {
		return keys.Keypair{}, err
	}
	if admin.Public != AdminPublicKey(c) {
		admin.Wipe()
		return keys.Keypair{}, ErrAdminKeyMismatch
	}
	return admin, nil
}

// DeviceBundle returns the decoded device bundle of a V2 or V3 config.
func DeviceBundle(c Config) ([]byte, error) {
	switch c := c.(type) {
	case *V2:
		return seedbundle.DecodeString(c.DeviceBundle)
	case *V3:
		return seedbundle.DecodeString(c.DeviceBundle)
	}
	return nil, fmt.Errorf("config %s has no device bundle", c.Version())
}

func unlockDevice(version, bundle string, passphrase []byte) (*seedbundle.Unlocked, error) {
	if len(passphrase) == 0 {
		return nil, ErrPasswordRequired
	}
	b, err := seedbundle.DecodeString(bundle)
	if err != nil {
		return nil, fieldErr(version+".device_bundle", err)
	}
	return seedbundle.Unlock(b, passphrase)
}
