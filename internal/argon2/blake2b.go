package argon2

import (
	"encoding/binary"
	"hash"

	"golang.org/x/crypto/blake2b"
)

// hashLong is the variable-length hash H' of RFC 9106 section 3.3.
func hashLong(out, in []byte) {
	var prefix [4]byte
	binary.LittleEndian.PutUint32(prefix[:], uint32(len(out)))

	if len(out) <= blake2b.Size {
		h := newHash(len(out))
		h.Write(prefix[:])
		h.Write(in)
		h.Sum(out[:0])
		return
	}

	var v [blake2b.Size]byte
	h := newHash(blake2b.Size)
	h.Write(prefix[:])
	h.Write(in)
	h.Sum(v[:0])

	r := (len(out)+31)/32 - 2
	n := copy(out, v[:32])
	for i := 1; i < r; i++ {
		v = blake2b.Sum512(v[:])
		n += copy(out[n:], v[:32])
	}
	last := newHash(len(out) - 32*r)
	last.Write(v[:])
	last.Sum(out[n:n])
}

func newHash(size int) hash.Hash {
	h, err := blake2b.New(size, nil)
	if err != nil {
		panic("argon2: " + err.Error())
	}
	return h
}
