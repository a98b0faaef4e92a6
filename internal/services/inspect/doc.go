// Package inspect answers read-side questions about an existing host
// config: its host key and identifiers, the lair keypair blob, sub-key
// derivation, admin signatures and version conversion.
package inspect
