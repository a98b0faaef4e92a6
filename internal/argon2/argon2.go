// Package argon2 implements Argon2id as specified in RFC 9106, including
// the optional secret key (K) and associated data (X) inputs.
//
// golang.org/x/crypto/argon2 covers the common case but does not accept
// K or X; admin key derivation mixes the host's agent public key in as K
// and a domain-separation string as X, so it needs this package.
//
// The implementation is single threaded. Lanes are still laid out and
// referenced exactly as the RFC requires, so the output matches any
// conforming parallel implementation.
package argon2

import (
	"encoding/binary"
	"errors"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// Version is the Argon2 version number implemented (0x13).
const Version = 0x13

const (
	modeID      = 2
	blockWords  = 128
	blockBytes  = blockWords * 8
	syncPoints  = 4
	minSaltSize = 8
)

// ErrInvalidParams is returned for parameters outside RFC 9106 limits.
var ErrInvalidParams = errors.New("argon2: invalid parameters")

// Params holds the cost parameters and optional inputs of one derivation.
type Params struct {
	Time    uint32 // passes over memory
	Memory  uint32 // KiB
	Threads uint8  // lanes
	KeyLen  uint32
	Secret  []byte // K
	Data    []byte // X
}

type block [blockWords]uint64

// IDKey derives a key from password and salt using Argon2id.
func IDKey(password, salt []byte, p Params) ([]byte, error) {
	if err := p.validate(salt); err != nil {
		return nil, err
	}
	threads := uint32(p.Threads)
	memory := p.Memory / (syncPoints * threads) * (syncPoints * threads)
	if memory < 2*syncPoints*threads {
		memory = 2 * syncPoints * threads
	}

	h0 := initialHash(password, salt, p)
	B := initBlocks(&h0, memory, threads)
	fill(B, p.Time, memory, threads)
	return finalize(B, memory, threads, p.KeyLen), nil
}

func (p Params) validate(salt []byte) error {
	switch {
	case p.Time < 1:
		return fmt.Errorf("%w: time must be at least 1", ErrInvalidParams)
	case p.Threads < 1:
		return fmt.Errorf("%w: threads must be at least 1", ErrInvalidParams)
	case p.Memory < 8*uint32(p.Threads):
		return fmt.Errorf("%w: memory must be at least 8*threads KiB", ErrInvalidParams)
	case p.KeyLen < 4:
		return fmt.Errorf("%w: key length must be at least 4", ErrInvalidParams)
	case len(salt) < minSaltSize:
		return fmt.Errorf("%w: salt must be at least %d bytes", ErrInvalidParams, minSaltSize)
	}
	return nil
}

// initialHash computes H0 with 8 spare bytes for the block and lane index.
func initialHash(password, salt []byte, p Params) [blake2b.Size + 8]byte {
	var h0 [blake2b.Size + 8]byte
	var word [4]byte

	b2, _ := blake2b.New512(nil)
	put := func(v uint32) {
		binary.LittleEndian.PutUint32(word[:], v)
		b2.Write(word[:])
	}
	putBytes := func(b []byte) {
		put(uint32(len(b)))
		b2.Write(b)
	}

	put(uint32(p.Threads))
	put(p.KeyLen)
	put(p.Memory)
	put(p.Time)
	put(Version)
	put(modeID)
	putBytes(password)
	putBytes(salt)
	putBytes(p.Secret)
	putBytes(p.Data)

	b2.Sum(h0[:0])
	return h0
}

func initBlocks(h0 *[blake2b.Size + 8]byte, memory, threads uint32) []block {
	var buf [blockBytes]byte
	B := make([]block, memory)
	laneLen := memory / threads
	for lane := uint32(0); lane < threads; lane++ {
		j := lane * laneLen
		binary.LittleEndian.PutUint32(h0[blake2b.Size+4:], lane)

		binary.LittleEndian.PutUint32(h0[blake2b.Size:], 0)
		hashLong(buf[:], h0[:])
		B[j].load(&buf)

		binary.LittleEndian.PutUint32(h0[blake2b.Size:], 1)
		hashLong(buf[:], h0[:])
		B[j+1].load(&buf)
	}
	return B
}

func fill(B []block, time, memory, threads uint32) {
	laneLen := memory / threads
	segLen := laneLen / syncPoints
	for pass := uint32(0); pass < time; pass++ {
		for slice := uint32(0); slice < syncPoints; slice++ {
			for lane := uint32(0); lane < threads; lane++ {
				fillSegment(B, pass, slice, lane, time, memory, threads, laneLen, segLen)
			}
		}
	}
}

func fillSegment(B []block, pass, slice, lane, time, memory, threads, laneLen, segLen uint32) {
	var addresses, input, zero block

	independent := pass == 0 && slice < syncPoints/2
	if independent {
		input[0] = uint64(pass)
		input[1] = uint64(lane)
		input[2] = uint64(slice)
		input[3] = uint64(memory)
		input[4] = uint64(time)
		input[5] = modeID
	}
	nextAddresses := func() {
		input[6]++
		compress(&addresses, &zero, &input, false)
		compress(&addresses, &zero, &addresses, false)
	}

	index := uint32(0)
	if pass == 0 && slice == 0 {
		index = 2
		if independent {
			nextAddresses()
		}
	}

	offset := lane*laneLen + slice*segLen + index
	for ; index < segLen; index, offset = index+1, offset+1 {
		prev := offset - 1
		if index == 0 && slice == 0 {
			prev += laneLen
		}

		var rnd uint64
		if independent {
			if index%blockWords == 0 {
				nextAddresses()
			}
			rnd = addresses[index%blockWords]
		} else {
			rnd = B[prev][0]
		}

		ref := referenceIndex(rnd, pass, slice, lane, index, threads, laneLen, segLen)
		compress(&B[offset], &B[prev], &B[ref], pass > 0)
	}
}

// referenceIndex maps the pseudo-random value of one block to the block it
// is compressed with.
func referenceIndex(rnd uint64, pass, slice, lane, index, threads, laneLen, segLen uint32) uint32 {
	refLane := uint32(rnd>>32) % threads
	if pass == 0 && slice == 0 {
		refLane = lane
	}
	sameLane := refLane == lane

	// area is the number of blocks that may be referenced, start the
	// position of the first of them within the reference lane.
	var area, start uint32
	if pass == 0 {
		area = slice * segLen
		if sameLane {
			area += index
		}
	} else {
		area = laneLen - segLen
		if sameLane {
			area += index
		}
		start = ((slice + 1) % syncPoints) * segLen
	}
	if index == 0 || sameLane {
		area--
	}

	j1 := rnd & 0xffffffff
	x := (j1 * j1) >> 32
	y := (uint64(area) * x) >> 32
	rel := uint64(area) - 1 - y
	return refLane*laneLen + uint32((uint64(start)+rel)%uint64(laneLen))
}

func finalize(B []block, memory, threads, keyLen uint32) []byte {
	laneLen := memory / threads
	acc := B[laneLen-1]
	for lane := uint32(1); lane < threads; lane++ {
		last := &B[lane*laneLen+laneLen-1]
		for i := range acc {
			acc[i] ^= last[i]
		}
	}
	var buf [blockBytes]byte
	acc.store(&buf)
	out := make([]byte, keyLen)
	hashLong(out, buf[:])
	return out
}

func (b *block) load(buf *[blockBytes]byte) {
	for i := range b {
		b[i] = binary.LittleEndian.Uint64(buf[i*8:])
	}
}

func (b *block) store(buf *[blockBytes]byte) {
	for i, w := range b {
		binary.LittleEndian.PutUint64(buf[i*8:], w)
	}
}
