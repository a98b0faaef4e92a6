// Package hcid implements the HCID text encoding of 32-byte keys.
//
// An HCID is 63 base32 characters carrying a 3-byte kind prefix, the key
// and 4 Reed-Solomon parity bytes. Four more parity bytes are carried in
// the capitalisation of the letters, so the mixed-case form detects more
// transcription errors than an all-lowercase copy of it.
//
//	hcs0  agent (signing) public keys   "HcS..."
//	hca0  admin public keys             "HcA..."
package hcid
