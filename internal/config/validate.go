package config

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"

	domaintypes "hposconfig/internal/domain/types"
	"hposconfig/internal/encoding"
	"hposconfig/internal/seedbundle"
)

var errZeroKey = errors.New("key is all zeros")

// Validate checks every field of c that can be checked without a
// passphrase and returns all failures together, each as a *FieldError.
func Validate(c Config) error {
	if isNil(c) {
		return fmt.Errorf("%w: nil config", ErrUnknownVersion)
	}
	var result *multierror.Error
	add := func(field string, err error) {
		if err != nil {
			result = multierror.Append(result, fieldErr(field, err))
		}
	}

	v := c.Version().String()
	s := c.settings()
	add(v+".settings.admin.email", validateEmail(s.Admin.Email))
	add(v+".settings.admin.public_key", nonZero(s.Admin.PublicKey))

	switch c := c.(type) {
	case *V1:
		if c.Seed == (domaintypes.Seed{}) {
			add("v1.seed", errZeroKey)
		}
	case *V2:
		add("v2.device_bundle", validateBundle(c.DeviceBundle))
		add("v2.derivation_path", validatePath(c.DerivationPath))
	case *V3:
		add("v3.device_bundle", validateBundle(c.DeviceBundle))
		add("v3.device_derivation_path", validateDevicePath(c.DeviceDerivationPath))
		add("v3.revocation_pub_key", nonZero(c.RevocationPubKey))
		add("v3.holoport_id", validateHostIDs(c.HoloportID, c.InitialHostPubKey))
	default:
		return fmt.Errorf("%w: %T", ErrUnknownVersion, c)
	}
	return result.ErrorOrNil()
}

func validateEmail(email string) error {
	at := strings.IndexByte(email, '@')
	if at <= 0 || at == len(email)-1 {
		return fmt.Errorf("%q is not an email address", email)
	}
	return nil
}

func nonZero(pub domaintypes.Ed25519Public) error {
	if pub == (domaintypes.Ed25519Public{}) {
		return errZeroKey
	}
	return nil
}

func validatePath(s string) error {
	_, err := domaintypes.ParseDerivationPath(s)
	return err
}

// validateDevicePath parses a V3 device path and keeps it off the
// revocation path, whose seed must never sit in the device bundle.
func validateDevicePath(s string) error {
	p, err := domaintypes.ParseDerivationPath(s)
	if err != nil {
		return err
	}
	if p == domaintypes.RevocationPath {
		return ErrReservedPath
	}
	return nil
}

// validateBundle decodes the bundle and requires a cipher this package can
// unlock.
func validateBundle(s string) error {
	b, err := seedbundle.DecodeString(s)
	if err != nil {
		return err
	}
	ciphers, _, err := seedbundle.Decode(b)
	if err != nil {
		return err
	}
	for _, c := range ciphers {
		if _, ok := c.(*seedbundle.PwHashCipher); ok {
			return nil
		}
	}
	return seedbundle.ErrUnsupportedCipher
}

// validateHostIDs checks that both host identifiers decode and name the
// same key.
func validateHostIDs(hostID, agent string) error {
	fromID, err := encoding.DecodeBase36(hostID)
	if err != nil {
		return err
	}
	fromAgent, err := encoding.DecodeAgent(agent)
	if err != nil {
		return fmt.Errorf("initial_host_pub_key: %w", err)
	}
	if !bytes.Equal(fromID, fromAgent) {
		return errors.New("does not match initial_host_pub_key")
	}
	return nil
}
