package encoding

import (
	"fmt"

	b36 "github.com/multiformats/go-base36"
)

// EncodeBase36 returns the lowercase base36 host identifier of key.
func EncodeBase36(key []byte) (string, error) {
	if err := checkLen("key", key, KeySize); err != nil {
		return "", err
	}
	return b36.EncodeToStringLc(key), nil
}

// DecodeBase36 parses a base36 host identifier.
func DecodeBase36(s string) ([]byte, error) {
	b, err := b36.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("base36: %w", err)
	}
	if err := checkLen("base36 id", b, KeySize); err != nil {
		return nil, err
	}
	return b, nil
}
