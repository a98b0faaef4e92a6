package seedbundle

import (
	"bytes"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"hposconfig/internal/encoding"
	"hposconfig/internal/keys"
)

var randRead = rand.Read

// Cipher is one entry of a locked bundle's cipher list.
type Cipher interface {
	// Tag is the cipher's wire tag, "pw" or "qa".
	Tag() string
}

// PwHashCipher is a seed locked under a passphrase.
type PwHashCipher struct {
	salt    []byte
	limits  Limits
	header  []byte
	cipher  []byte
	appData []byte
}

// Tag implements Cipher.
func (c *PwHashCipher) Tag() string { return pwHashTag }

// Limits returns the stored password hashing costs.
func (c *PwHashCipher) Limits() Limits { return c.limits }

// Unlock decrypts the seed with passphrase.
func (c *PwHashCipher) Unlock(passphrase []byte) (*Unlocked, error) {
	if len(passphrase) == 0 {
		return nil, ErrPasswordRequired
	}
	if err := c.limits.validate(); err != nil {
		return nil, err
	}
	key := pwHashKey(passphrase, c.salt, c.limits)
	defer keys.Wipe(key)

	seedBytes, _, err := streamPull(key, c.header, c.cipher)
	if err != nil {
		if errors.Is(err, ErrMalformed) {
			return nil, err
		}
		return nil, ErrAuthenticationFailed
	}
	defer keys.Wipe(seedBytes)

	seed, err := keys.SeedFromBytes(seedBytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	u := New(seed)
	u.appData = c.appData
	return u, nil
}

// SecurityQuestionsCipher is a seed locked under answers to three
// questions. It is recognised so callers can list it, but not unlocked.
type SecurityQuestionsCipher struct {
	Questions []string
}

// Tag implements Cipher.
func (c *SecurityQuestionsCipher) Tag() string { return qaTag }

// maxCiphers bounds the cipher list length read from untrusted input.
const maxCiphers = 8

// Decode parses an encoded bundle into its cipher list and app data.
// An empty input, an empty cipher list or an unknown cipher tag is
// ErrUnsupportedCipher.
func Decode(b []byte) ([]Cipher, []byte, error) {
	if len(b) == 0 {
		return nil, nil, ErrUnsupportedCipher
	}
	dec := msgpack.NewDecoder(bytes.NewReader(b))

	n, err := dec.DecodeArrayLen()
	if err != nil || n != 3 {
		return nil, nil, malformed("bundle", err)
	}
	tag, err := dec.DecodeString()
	if err != nil || tag != bundleTag {
		return nil, nil, malformed("bundle tag", err)
	}
	count, err := dec.DecodeArrayLen()
	if err != nil || count < 0 {
		return nil, nil, malformed("cipher list", err)
	}
	if count == 0 {
		return nil, nil, ErrUnsupportedCipher
	}
	if count > maxCiphers {
		return nil, nil, malformed(fmt.Sprintf("cipher list of %d entries", count), nil)
	}

	var ciphers []Cipher
	for i := 0; i < count; i++ {
		c, err := decodeCipher(dec)
		if err != nil {
			return nil, nil, err
		}
		ciphers = append(ciphers, c)
	}
	appData, err := dec.DecodeBytes()
	if err != nil {
		return nil, nil, malformed("app data", err)
	}
	for _, c := range ciphers {
		if pw, ok := c.(*PwHashCipher); ok {
			pw.appData = appData
		}
	}
	return ciphers, appData, nil
}

func decodeCipher(dec *msgpack.Decoder) (Cipher, error) {
	n, err := dec.DecodeArrayLen()
	if err != nil || n < 1 {
		return nil, malformed("cipher", err)
	}
	tag, err := dec.DecodeString()
	if err != nil {
		return nil, malformed("cipher tag", err)
	}

	switch tag {
	case pwHashTag:
		if n != 6 {
			return nil, malformed("pw cipher", nil)
		}
		return decodePwHash(dec)
	case qaTag:
		if n != 9 {
			return nil, malformed("qa cipher", nil)
		}
		return decodeQA(dec)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedCipher, tag)
}

func decodePwHash(dec *msgpack.Decoder) (*PwHashCipher, error) {
	c := &PwHashCipher{}
	var err error
	if c.salt, err = dec.DecodeBytes(); err != nil || len(c.salt) != saltSize {
		return nil, malformed("pw salt", err)
	}
	if c.limits.MemLimit, err = dec.DecodeUint32(); err != nil {
		return nil, malformed("pw mem limit", err)
	}
	if c.limits.OpsLimit, err = dec.DecodeUint32(); err != nil {
		return nil, malformed("pw ops limit", err)
	}
	if err := c.limits.validate(); err != nil {
		return nil, err
	}
	if c.header, err = dec.DecodeBytes(); err != nil || len(c.header) != streamHeaderSize {
		return nil, malformed("pw header", err)
	}
	if c.cipher, err = dec.DecodeBytes(); err != nil || len(c.cipher) < streamABytes {
		return nil, malformed("pw cipher", err)
	}
	return c, nil
}

// decodeQA reads ["qa", salt, mem, ops, q1, q2, q3, header, cipher].
func decodeQA(dec *msgpack.Decoder) (*SecurityQuestionsCipher, error) {
	for i := 0; i < 3; i++ {
		if err := dec.Skip(); err != nil {
			return nil, malformed("qa cipher", err)
		}
	}
	c := &SecurityQuestionsCipher{}
	for i := 0; i < 3; i++ {
		q, err := dec.DecodeString()
		if err != nil {
			return nil, malformed("qa question", err)
		}
		c.Questions = append(c.Questions, q)
	}
	for i := 0; i < 2; i++ {
		if err := dec.Skip(); err != nil {
			return nil, malformed("qa cipher", err)
		}
	}
	return c, nil
}

func malformed(what string, err error) error {
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformed, what, err)
	}
	return fmt.Errorf("%w: %s", ErrMalformed, what)
}

// Unlock decodes b and unlocks its password-hash cipher with passphrase.
func Unlock(b, passphrase []byte) (*Unlocked, error) {
	ciphers, _, err := Decode(b)
	if err != nil {
		return nil, err
	}
	for _, c := range ciphers {
		if pw, ok := c.(*PwHashCipher); ok {
			return pw.Unlock(passphrase)
		}
	}
	return nil, ErrUnsupportedCipher
}

// EncodeString returns the text form of a locked bundle: URL-safe base64
// without padding.
func EncodeString(b []byte) string { return base64.RawURLEncoding.EncodeToString(b) }

// DecodeString parses the text form of a locked bundle. Standard and
// padded base64 written by older tools are accepted too.
func DecodeString(s string) ([]byte, error) {
	b, err := encoding.UnB64Any(s)
	if err != nil {
		return nil, fmt.Errorf("device bundle: %w", err)
	}
	return b, nil
}

// UnlockString is Unlock on the text form of a bundle.
func UnlockString(s string, passphrase []byte) (*Unlocked, error) {
	b, err := DecodeString(s)
	if err != nil {
		return nil, err
	}
	return Unlock(b, passphrase)
}
