package hcid

import (
	"errors"
	"fmt"
	"strings"

	"hposconfig/internal/encoding"
)

// Kind is a four character HCID kind tag such as "hcs0".
type Kind string

const (
	// KindAgent tags agent signing public keys.
	KindAgent Kind = "hcs0"
	// KindAdmin tags admin public keys.
	KindAdmin Kind = "hca0"
	// KindBundle and KindCollection are accepted for interop with other holo tooling.
	KindBundle     Kind = "hcb0"
	KindCollection Kind = "hcc0"
)

const (
	alphabet   = "ABCDEFGHIJKMNOPQRSTUVWXYZ3456789"
	keySize    = encoding.KeySize
	baseParity = 4
	capParity  = 4
	rawSize    = 3 + keySize + baseParity
	// EncodedLen is the length of every HCID string.
	EncodedLen = (rawSize*8 + 4) / 5
	segmentLen = 15
)

var (
	// ErrKind is returned for malformed kind tags and for ids of another kind.
	ErrKind = errors.New("hcid: kind mismatch")
	// ErrChecksum is returned when parity bytes do not match the key.
	ErrChecksum = errors.New("hcid: checksum mismatch")
	// ErrCharacter is returned for characters outside the HCID alphabet.
	ErrCharacter = errors.New("hcid: invalid character")
)

// prefix returns the three leading bytes for kind. The first three base32
// characters of the result spell "HC" followed by the kind letter.
func (k Kind) prefix() ([3]byte, error) {
	var p [3]byte
	s := string(k)
	if len(s) != 4 || !strings.EqualFold(s[:2], "hc") || s[3] != '0' {
		return p, fmt.Errorf("%w: %q", ErrKind, s)
	}
	idx := strings.IndexByte(alphabet, upper(s[2]))
	if idx < 0 {
		return p, fmt.Errorf("%w: %q", ErrKind, s)
	}
	return [3]byte{0x38, byte(0x80 + 2*idx), 0x24}, nil
}

// Encode returns the mixed-case HCID of key.
func Encode(kind Kind, key []byte) (string, error) {
	pfx, err := kind.prefix()
	if err != nil {
		return "", err
	}
	if len(key) != keySize {
		return "", &encoding.BadLengthError{Field: "hcid key", Want: keySize, Got: len(key)}
	}
	par := parity(key, baseParity+capParity)

	raw := make([]byte, 0, rawSize)
	raw = append(raw, pfx[:]...)
	raw = append(raw, key...)
	raw = append(raw, par[:baseParity]...)

	out := []byte(strings.ToLower(b32Encode(raw)))
	// "HcS", "HcA": kind prefix is always capitalised 1-0-1.
	out[0], out[2] = upper(out[0]), upper(out[2])
	for i := 0; i < capParity; i++ {
		start := 3 + i*segmentLen
		capEncode(out[start:start+segmentLen], par[baseParity+i])
	}
	return string(out), nil
}

// HolohostURL returns the legacy host URL of an agent key: its lowercase
// hcs0 id under holohost.net.
func HolohostURL(key []byte) (string, error) {
	id, err := Encode(KindAgent, key)
	if err != nil {
		return "", err
	}
	return "https://" + strings.ToLower(id) + ".holohost.net/", nil
}

// Decode parses an HCID of the given kind and returns its key.
//
// Case is checked only when s is mixed case. All-lowercase and
// all-uppercase copies (host names, for example) are verified against
// the base parity alone.
func Decode(kind Kind, s string) ([]byte, error) {
	pfx, err := kind.prefix()
	if err != nil {
		return nil, err
	}
	if len(s) != EncodedLen {
		return nil, &encoding.BadLengthError{Field: "hcid", Want: EncodedLen, Got: len(s)}
	}
	raw, err := b32Decode(strings.ToUpper(s))
	if err != nil {
		return nil, err
	}
	if [3]byte(raw[:3]) != pfx {
		return nil, fmt.Errorf("%w: want %s", ErrKind, kind)
	}
	key := raw[3 : 3+keySize]
	par := parity(key, baseParity+capParity)
	for i := 0; i < baseParity; i++ {
		if raw[3+keySize+i] != par[i] {
			return nil, ErrChecksum
		}
	}
	if isMixedCase(s) {
		for i := 0; i < capParity; i++ {
			start := 3 + i*segmentLen
			b, ok := capDecode(s[start : start+segmentLen])
			if ok && b != par[baseParity+i] {
				return nil, ErrChecksum
			}
		}
	}
	return append([]byte(nil), key...), nil
}

func b32Encode(raw []byte) string {
	var sb strings.Builder
	sb.Grow(EncodedLen)
	var acc uint32
	bits := 0
	for _, b := range raw {
		acc = acc<<8 | uint32(b)
		bits += 8
		for bits >= 5 {
			bits -= 5
			sb.WriteByte(alphabet[(acc>>bits)&31])
		}
	}
	if bits > 0 {
		sb.WriteByte(alphabet[(acc<<(5-bits))&31])
	}
	return sb.String()
}

func b32Decode(s string) ([]byte, error) {
	out := make([]byte, 0, rawSize)
	var acc uint32
	bits := 0
	for i := 0; i < len(s); i++ {
		v := strings.IndexByte(alphabet, s[i])
		if v < 0 {
			return nil, fmt.Errorf("%w %q at %d", ErrCharacter, s[i], i)
		}
		acc = acc<<5 | uint32(v)
		bits += 5
		if bits >= 8 {
			bits -= 8
			out = append(out, byte(acc>>bits))
		}
	}
	return out[:rawSize], nil
}

// capEncode writes b, most significant bit first, into the case of the
// first eight letters of seg. Bits left over when seg has fewer than
// eight letters are dropped.
func capEncode(seg []byte, b byte) {
	bit := 7
	for i := range seg {
		if bit < 0 {
			return
		}
		if !isLetter(seg[i]) {
			continue
		}
		if b>>bit&1 == 1 {
			seg[i] = upper(seg[i])
		}
		bit--
	}
}

// capDecode reads a byte back from seg. ok is false when seg has fewer
// than eight letters.
func capDecode(seg string) (b byte, ok bool) {
	n := 0
	for i := 0; i < len(seg) && n < 8; i++ {
		c := seg[i]
		if !isLetter(c) {
			continue
		}
		b <<= 1
		if c >= 'A' && c <= 'Z' {
			b |= 1
		}
		n++
	}
	return b, n == 8
}

func isMixedCase(s string) bool {
	var hasLower, hasUpper bool
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c >= 'a' && c <= 'z':
			hasLower = true
		case c >= 'A' && c <= 'Z':
			hasUpper = true
		}
	}
	return hasLower && hasUpper
}

func isLetter(c byte) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}
