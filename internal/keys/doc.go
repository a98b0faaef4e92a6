// Package keys derives and handles the Ed25519 keypairs of a host.
//
// Contents
//
//   - Seeds: random, hashed from external entropy, or copied (NewSeed,
//     SeedFromEntropy, SeedFromBytes)
//   - Agent keypair straight from a seed (FromSeed)
//   - Admin keypair from (agent public key, email, password) through
//     Argon2id (AdminKeypair)
//   - Lair keystore blob encoding of a keypair (EncodeLair, DecodeLair)
//   - Admin signature checks, plain and time-windowed (AdminVerifier)
//   - Best-effort memory wiping (Wipe) and short fingerprints (Fingerprint)
//
// # Notes
//
// The admin Argon2id parameters are part of the key format. Changing any of
// them changes every admin key and needs a new config version.
package keys
