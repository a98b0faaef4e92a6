package config

import (
	"errors"
	"fmt"

	domaintypes "hposconfig/internal/domain/types"
	"hposconfig/internal/seedbundle"
)

var (
	// ErrUnknownVersion is returned for a document or conversion target
	// naming no known schema version.
	ErrUnknownVersion = errors.New("config: unknown version")
	// ErrUnsupportedConversion is matched by every *ConversionError.
	ErrUnsupportedConversion = errors.New("config: unsupported conversion")
	// ErrPasswordRequired is returned when a bundled config is read without
	// the device bundle passphrase.
	ErrPasswordRequired = seedbundle.ErrPasswordRequired
	// ErrAdminKeyMismatch is returned when email and password do not
	// reproduce the admin key stored in the config.
	ErrAdminKeyMismatch = errors.New("config: admin key does not match email and password")
	// ErrReservedPath is returned when a V3 device derivation path is the
	// revocation path.
	ErrReservedPath = errors.New("config: derivation path is reserved for the revocation key")
)

// ConversionError reports a refused version conversion.
type ConversionError struct {
	From   domaintypes.Version
	To     domaintypes.Version
	Reason string
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("config: cannot convert %s to %s: %s", e.From, e.To, e.Reason)
}

// Is makes errors.Is(err, ErrUnsupportedConversion) hold.
func (e *ConversionError) Is(target error) bool { return target == ErrUnsupportedConversion }

// FieldError ties a validation failure to the JSON field it was found in.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string { return e.Field + ": " + e.Err.Error() }

func (e *FieldError) Unwrap() error { return e.Err }

func fieldErr(field string, err error) error {
	if err == nil {
		return nil
	}
	return &FieldError{Field: field, Err: err}
}
