package config

import (
	"fmt"

	domaintypes "hposconfig/internal/domain/types"
)

// Convert returns c in version to. Converting to c's own version returns c.
// V3 to V2 is the only cross-version conversion: every other direction
// would need data the source does not carry and fails with a
// *ConversionError.
func Convert(c Config, to domaintypes.Version) (Config, error) {
	switch to {
	case domaintypes.V1, domaintypes.V2, domaintypes.V3:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownVersion, to)
	}
	if isNil(c) {
		return nil, fmt.Errorf("%w: nil config", ErrUnknownVersion)
	}
	from := c.Version()
	if from == to {
		return c, nil
	}

	refuse := func(reason string) (Config, error) {
		return nil, &ConversionError{From: from, To: to, Reason: reason}
	}

	switch c := c.(type) {
	case *V1:
		return refuse("a V1 config has no device bundle")
	case *V2:
		if to == domaintypes.V1 {
			return refuse("the raw seed cannot be recovered from a bundle without its passphrase")
		}
		return refuse("a V2 config has no revocation key or host id")
	case *V3:
		if to == domaintypes.V1 {
			return refuse("the raw seed cannot be recovered from a bundle without its passphrase")
		}
		return &V2{
			DeviceBundle:     c.DeviceBundle,
			DerivationPath:   c.DeviceDerivationPath,
			RegistrationCode: c.RegistrationCode,
			Settings:         c.Settings,
		}, nil
	}
	return nil, fmt.Errorf("%w: %T", ErrUnknownVersion, c)
}
