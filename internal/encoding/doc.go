// Package encoding maps 32-byte Ed25519 public keys to their text forms.
//
// Forms
//
//   - Agent address: "u" + base64url(prefix || key || location), the
//     holochain agent pubkey form (EncodeAgent, DecodeAgent)
//   - Holohost URL: https://hcak<base32 multibase>.holohost.net (HolohostURL)
//   - Base36 host identifier, lowercase, no checksum (EncodeBase36)
//   - DNS/URL safe base64 without padding (EncodeDNS)
//   - Standard base64 without padding, the JSON field form (EncodeKey)
//
// The 4-byte location checksum (Location) is always computed here and never
// accepted from the caller. Decoders return *BadLengthError for inputs that
// do not carry exactly KeySize key bytes.
package encoding
