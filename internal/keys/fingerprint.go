package keys

import (
	"crypto/sha256"
	"encoding/hex"

	domaintypes "hposconfig/internal/domain/types"
)

// Fingerprint returns a short hex fingerprint of a public key for logs.
//
// It hashes with SHA-256 and truncates to 10 bytes (20 hex chars).
func Fingerprint(pub domaintypes.Ed25519Public) domaintypes.Fingerprint {
	sum := sha256.Sum256(pub[:])
	return domaintypes.Fingerprint(hex.EncodeToString(sum[:10]))
}
