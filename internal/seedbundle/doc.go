// Package seedbundle reads and writes hc-seed-bundle containers.
//
// A locked bundle is a msgpack array
//
//	["hcsb0", [cipher, ...], app_data]
//
// where each cipher locks the same 32-byte seed. The password-hash cipher
//
//	["pw", salt, mem_limit, ops_limit, header, cipher]
//
// derives a key with Argon2id from BLAKE2b-512(passphrase) and seals the
// seed in a single-message XChaCha20-Poly1305 secretstream, so bundles
// interoperate with libsodium based tooling.
//
// An Unlocked bundle exposes its seed, the Ed25519 keypair of that seed,
// and derives child bundles by index (Derive).
package seedbundle
