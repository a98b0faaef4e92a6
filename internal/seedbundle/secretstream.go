package seedbundle

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/binary"

	"golang.org/x/crypto/chacha20"
	"golang.org/x/crypto/poly1305"
)

// Single-message crypto_secretstream_xchacha20poly1305 push and pull.
const (
	streamKeySize    = chacha20.KeySize
	streamHeaderSize = chacha20.NonceSizeX
	streamABytes     = 1 + poly1305.TagSize
	tagFinal         = 0x03
)

type streamState struct {
	key   []byte
	nonce [chacha20.NonceSize]byte
}

func newStreamState(key, header []byte) (*streamState, error) {
	k, err := chacha20.HChaCha20(key, header[:16])
	if err != nil {
		return nil, err
	}
	st := &streamState{key: k}
	binary.LittleEndian.PutUint32(st.nonce[:4], 1)
	copy(st.nonce[4:], header[16:streamHeaderSize])
	return st, nil
}

// keystream XORs dst with the chacha20 keystream starting at block counter.
func (st *streamState) keystream(dst []byte, counter uint32) error {
	c, err := chacha20.NewUnauthenticatedCipher(st.key, st.nonce[:])
	if err != nil {
		return err
	}
	if counter > 0 {
		c.SetCounter(counter)
	}
	c.XORKeyStream(dst, dst)
	return nil
}

func (st *streamState) mac(block, body []byte) ([poly1305.TagSize]byte, error) {
	var polyKey [32]byte
	var tag [poly1305.TagSize]byte
	if err := st.keystream(polyKey[:], 0); err != nil {
		return tag, err
	}
	var pad [16]byte
	var lens [16]byte
	binary.LittleEndian.PutUint64(lens[:8], 0) // no associated data
	binary.LittleEndian.PutUint64(lens[8:], uint64(len(block)+len(body)))

	m := poly1305.New(&polyKey)
	m.Write(block)
	m.Write(body)
	// libsodium pads by (16 - 64 + mlen) & 15, not to a 16-byte boundary.
	m.Write(pad[:(0x10-len(block)+len(body))&0xf])
	m.Write(lens[:])
	m.Sum(tag[:0])
	return tag, nil
}

// streamPush seals msg under key with a fresh random header.
func streamPush(key, msg []byte, tag byte) (header, out []byte, err error) {
	header = make([]byte, streamHeaderSize)
	if _, err := rand.Read(header); err != nil {
		return nil, nil, err
	}
	st, err := newStreamState(key, header)
	if err != nil {
		return nil, nil, err
	}

	var block [64]byte
	block[0] = tag
	if err := st.keystream(block[:], 1); err != nil {
		return nil, nil, err
	}

	out = make([]byte, 1+len(msg)+poly1305.TagSize)
	out[0] = block[0]
	body := out[1 : 1+len(msg)]
	copy(body, msg)
	if err := st.keystream(body, 2); err != nil {
		return nil, nil, err
	}
	mac, err := st.mac(block[:], body)
	if err != nil {
		return nil, nil, err
	}
	copy(out[1+len(msg):], mac[:])
	return header, out, nil
}

// streamPull opens one message sealed by streamPush. Any MAC failure is
// ErrAuthenticationFailed.
func streamPull(key, header, in []byte) (msg []byte, tag byte, err error) {
	if len(header) != streamHeaderSize || len(in) < streamABytes {
		return nil, 0, ErrMalformed
	}
	st, err := newStreamState(key, header)
	if err != nil {
		return nil, 0, err
	}

	var block [64]byte
	block[0] = in[0]
	if err := st.keystream(block[:], 1); err != nil {
		return nil, 0, err
	}
	tag = block[0]
	block[0] = in[0]

	mlen := len(in) - streamABytes
	body := in[1 : 1+mlen]
	want, err := st.mac(block[:], body)
	if err != nil {
		return nil, 0, err
	}
	if subtle.ConstantTimeCompare(want[:], in[1+mlen:]) != 1 {
		return nil, 0, ErrAuthenticationFailed
	}

	msg = make([]byte, mlen)
	copy(msg, body)
	if err := st.keystream(msg, 2); err != nil {
		return nil, 0, err
	}
	return msg, tag, nil
}
