package encoding

import "golang.org/x/crypto/blake2b"

const (
	// KeySize is the size of every key handled by this package.
	KeySize = 32
	// LocationSize is the size of the folded location checksum.
	LocationSize = 4
)

// Location returns the 4-byte location checksum of a 32-byte key.
//
// The key is hashed with a 16-byte BLAKE2b digest and the four 4-byte
// lanes of the digest are XOR-folded into one.
func Location(key []byte) ([LocationSize]byte, error) {
	var out [LocationSize]byte
	if err := checkLen("key", key, KeySize); err != nil {
		return out, err
	}
	h, err := blake2b.New(16, nil)
	if err != nil {
		return out, err
	}
	h.Write(key)
	sum := h.Sum(nil)

	copy(out[:], sum[:LocationSize])
	for i := LocationSize; i < len(sum); i += LocationSize {
		for j := 0; j < LocationSize; j++ {
			out[j] ^= sum[i+j]
		}
	}
	return out, nil
}

// withLocation returns key || Location(key).
func withLocation(key []byte) ([]byte, error) {
	loc, err := Location(key)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, KeySize+LocationSize)
	out = append(out, key...)
	return append(out, loc[:]...), nil
}
