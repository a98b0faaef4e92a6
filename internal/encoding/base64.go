package encoding

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// EncodeDNS returns key as URL-safe base64 without padding.
func EncodeDNS(key []byte) (string, error) {
	if err := checkLen("key", key, KeySize); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(key), nil
}

// DecodeDNS parses a URL-safe unpadded base64 key.
func DecodeDNS(s string) ([]byte, error) {
	b, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("dns base64: %w", err)
	}
	if err := checkLen("dns key", b, KeySize); err != nil {
		return nil, err
	}
	return b, nil
}

// EncodeKey returns key as standard base64 without padding.
func EncodeKey(key []byte) (string, error) {
	if err := checkLen("key", key, KeySize); err != nil {
		return "", err
	}
	return B64(key), nil
}

// DecodeKey parses a standard base64 key. Trailing padding is tolerated.
func DecodeKey(field, s string) ([]byte, error) {
	b, err := UnB64(s)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", field, err)
	}
	if err := checkLen(field, b, KeySize); err != nil {
		return nil, err
	}
	return b, nil
}

// B64 returns standard base64 without padding or newlines.
func B64(b []byte) string { return base64.RawStdEncoding.EncodeToString(b) }

// UnB64 decodes standard base64, with or without padding.
func UnB64(s string) ([]byte, error) {
	return base64.RawStdEncoding.DecodeString(strings.TrimRight(s, "="))
}

// UnB64Any decodes base64 in either alphabet, with or without padding.
// Device bundles have been written in both forms.
func UnB64Any(s string) ([]byte, error) {
	s = strings.TrimRight(s, "=")
	if strings.ContainsAny(s, "+/") {
		return base64.RawStdEncoding.DecodeString(s)
	}
	return base64.RawURLEncoding.DecodeString(s)
}
