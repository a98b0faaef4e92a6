// Package config models the persisted host credential document.
//
// A Config is one of three schema versions. V1 carries the host seed in the
// clear; V2 and V3 carry it inside a passphrase-locked seed bundle. All three
// carry the admin settings: the owner's email and the public half of the
// admin keypair derived from the host key, email and password.
//
// On disk a Config is a JSON object with a single "v1", "v2" or "v3" key.
// Older documents (a top-level V1 "admin" object, HCID admin keys) are
// accepted on read and written back in the current shape.
//
// Values are immutable once built. Conversion between versions is one-way
// and refuses to invent fields the source does not carry.
package config
