package argon2

import "math/bits"

// compress computes out = G(x, y) per RFC 9106 section 3.5. When xor is
// set the result is XORed into out, as passes after the first require.
func compress(out, x, y *block, xor bool) {
	var r, q block
	for i := range r {
		r[i] = x[i] ^ y[i]
	}
	q = r

	for i := 0; i < 8; i++ {
		o := 16 * i
		permute(&q,
			o, o+1, o+2, o+3, o+4, o+5, o+6, o+7,
			o+8, o+9, o+10, o+11, o+12, o+13, o+14, o+15)
	}
	for i := 0; i < 8; i++ {
		o := 2 * i
		permute(&q,
			o, o+1, o+16, o+17, o+32, o+33, o+48, o+49,
			o+64, o+65, o+80, o+81, o+96, o+97, o+112, o+113)
	}

	if xor {
		for i := range out {
			out[i] ^= r[i] ^ q[i]
		}
		return
	}
	for i := range out {
		out[i] = r[i] ^ q[i]
	}
}

// permute is the BLAKE2b round P applied to sixteen words of b.
func permute(b *block, v0, v1, v2, v3, v4, v5, v6, v7, v8, v9, v10, v11, v12, v13, v14, v15 int) {
	mix(b, v0, v4, v8, v12)
	mix(b, v1, v5, v9, v13)
	mix(b, v2, v6, v10, v14)
	mix(b, v3, v7, v11, v15)
	mix(b, v0, v5, v10, v15)
	mix(b, v1, v6, v11, v12)
	mix(b, v2, v7, v8, v13)
	mix(b, v3, v4, v9, v14)
}

func mix(v *block, a, b, c, d int) {
	v[a] = fBlaMka(v[a], v[b])
	v[d] = bits.RotateLeft64(v[d]^v[a], -32)
	v[c] = fBlaMka(v[c], v[d])
	v[b] = bits.RotateLeft64(v[b]^v[c], -24)
	v[a] = fBlaMka(v[a], v[b])
	v[d] = bits.RotateLeft64(v[d]^v[a], -16)
	v[c] = fBlaMka(v[c], v[d])
	v[b] = bits.RotateLeft64(v[b]^v[c], -63)
}

func fBlaMka(x, y uint64) uint64 {
	return x + y + 2*uint64(uint32(x))*uint64(uint32(y))
}
