package encoding

import (
	"errors"
	"fmt"
)

var (
	// ErrBadLength is matched by every *BadLengthError.
	ErrBadLength = errors.New("bad length")
	// ErrChecksum is returned when an embedded location checksum does not match the key.
	ErrChecksum = errors.New("location checksum mismatch")
	// ErrPrefix is returned when a string or byte prefix does not identify the expected form.
	ErrPrefix = errors.New("unexpected prefix")
)

// BadLengthError reports a decoded value of the wrong size.
type BadLengthError struct {
	Field string
	Want  int
	Got   int
}

func (e *BadLengthError) Error() string {
	return fmt.Sprintf("%s: bad length: want %d bytes, got %d", e.Field, e.Want, e.Got)
}

// Is makes errors.Is(err, ErrBadLength) hold for any *BadLengthError.
func (e *BadLengthError) Is(target error) bool { return target == ErrBadLength }

func checkLen(field string, b []byte, want int) error {
	if len(b) != want {
		return &BadLengthError{Field: field, Want: want, Got: len(b)}
	}
	return nil
}
