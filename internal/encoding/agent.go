package encoding

import (
	"bytes"
	"fmt"

	"github.com/multiformats/go-multibase"
)

// agentPrefix is the holochain multicodec prefix for an agent public key.
var agentPrefix = []byte{0x84, 0x20, 0x24}

const agentRawSize = 3 + KeySize + LocationSize

// EncodeAgent returns the "uhCAk…" agent address of key.
func EncodeAgent(key []byte) (string, error) {
	body, err := withLocation(key)
	if err != nil {
		return "", err
	}
	raw := make([]byte, 0, agentRawSize)
	raw = append(raw, agentPrefix...)
	raw = append(raw, body...)
	return multibase.Encode(multibase.Base64url, raw)
}

// DecodeAgent parses an agent address and verifies its location checksum.
func DecodeAgent(s string) ([]byte, error) {
	key, ok, err := DecodeAgentLenient(s)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrChecksum
	}
	return key, nil
}

// DecodeAgentLenient parses an agent address without failing on a checksum
// mismatch. checksumOK reports whether the embedded location matched.
//
// Only use this for addresses produced by legacy tooling that did not
// write a valid location.
func DecodeAgentLenient(s string) (key []byte, checksumOK bool, err error) {
	enc, raw, err := multibase.Decode(s)
	if err != nil {
		return nil, false, fmt.Errorf("agent address: %w", err)
	}
	if enc != multibase.Base64url {
		return nil, false, fmt.Errorf("agent address: %w: multibase %q", ErrPrefix, rune(enc))
	}
	if err := checkLen("agent address", raw, agentRawSize); err != nil {
		return nil, false, err
	}
	if !bytes.Equal(raw[:3], agentPrefix) {
		return nil, false, fmt.Errorf("agent address: %w: % x", ErrPrefix, raw[:3])
	}
	key = append([]byte(nil), raw[3:3+KeySize]...)
	loc, err := Location(key)
	if err != nil {
		return nil, false, err
	}
	return key, bytes.Equal(loc[:], raw[3+KeySize:]), nil
}
