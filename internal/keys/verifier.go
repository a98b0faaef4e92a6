package keys

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	domaintypes "hposconfig/internal/domain/types"
	"hposconfig/internal/encoding"
	"hposconfig/internal/hcid"
)

// AdminVerifier checks signatures made with a host's admin key.
type AdminVerifier struct {
	pub domaintypes.Ed25519Public
}

// NewAdminVerifier returns a verifier for pub.
func NewAdminVerifier(pub domaintypes.Ed25519Public) *AdminVerifier {
	return &AdminVerifier{pub: pub}
}

// ParseAdminVerifier accepts an admin key in any form ParseAdminPublicKey does.
func ParseAdminVerifier(s string) (*AdminVerifier, error) {
	pub, err := ParseAdminPublicKey(s)
	if err != nil {
		return nil, err
	}
	return NewAdminVerifier(pub), nil
}

// ParseAdminPublicKey accepts an admin key as an HCID ("HcA...") or as
// standard base64. Configs written before base64 keys were adopted carry
// the HCID form.
func ParseAdminPublicKey(s string) (domaintypes.Ed25519Public, error) {
	var (
		raw []byte
		err error
	)
	if len(s) == hcid.EncodedLen && strings.HasPrefix(strings.ToLower(s), "hca") {
		raw, err = hcid.Decode(hcid.KindAdmin, s)
	} else {
		raw, err = encoding.DecodeKey("admin public key", s)
	}
	if err != nil {
		return domaintypes.Ed25519Public{}, err
	}
	return domaintypes.MustEd25519Public(raw), nil
}

// PublicKey returns the admin public key.
func (v *AdminVerifier) PublicKey() domaintypes.Ed25519Public { return v.pub }

// Verify reports whether sig, base64 with or without padding, signs message.
func (v *AdminVerifier) Verify(message []byte, sig string) (bool, error) {
	raw, err := encoding.UnB64(sig)
	if err != nil {
		return false, fmt.Errorf("signature: %w", err)
	}
	return VerifyEd25519(v.pub, message, raw), nil
}

// VerifyWindow reports whether sig signs payload for the time window
// containing at or the one before it.
func (v *AdminVerifier) VerifyWindow(payload, sig string, at time.Time, window time.Duration) (bool, error) {
	cur, err := windowIndex(at, window)
	if err != nil {
		return false, err
	}
	if ok, err := v.Verify(WindowMessage(payload, cur), sig); err != nil || ok {
		return ok, err
	}
	if cur == 0 {
		return false, nil
	}
	return v.Verify(WindowMessage(payload, cur-1), sig)
}

// SignWindow signs payload for the time window containing at. The
// signature is standard padded base64.
func SignWindow(kp Keypair, payload string, at time.Time, window time.Duration) (string, error) {
	idx, err := windowIndex(at, window)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(kp.Sign(WindowMessage(payload, idx))), nil
}

// WindowMessage is the signed form of payload for window index idx:
// "[idx, payload]". payload is expected to be JSON.
func WindowMessage(payload string, idx uint64) []byte {
	return []byte(fmt.Sprintf("[%d, %s]", idx, payload))
}

func windowIndex(at time.Time, window time.Duration) (uint64, error) {
	secs := int64(window / time.Second)
	if secs <= 0 {
		return 0, fmt.Errorf("time window must be at least one second, got %s", window)
	}
	unix := at.Unix()
	if unix < 0 {
		return 0, fmt.Errorf("time %s is before the unix epoch", at)
	}
	return uint64(unix / secs), nil
}
