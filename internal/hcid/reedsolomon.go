package hcid

// GF(2^8) with primitive polynomial x^8+x^4+x^3+x^2+1.
const gfPrimitive = 0x11d

var gfExp, gfLog = gfTables()

func gfTables() (exp [512]byte, log [256]byte) {
	x := 1
	for i := 0; i < 255; i++ {
		exp[i] = byte(x)
		log[x] = byte(i)
		x <<= 1
		if x&0x100 != 0 {
			x ^= gfPrimitive
		}
	}
	for i := 255; i < 512; i++ {
		exp[i] = exp[i-255]
	}
	return exp, log
}

func gfMul(a, b byte) byte {
	if a == 0 || b == 0 {
		return 0
	}
	return gfExp[int(gfLog[a])+int(gfLog[b])]
}

// generator returns the coefficients, highest degree first, of
// (x - a^0)(x - a^1)...(x - a^(n-1)).
func generator(n int) []byte {
	g := []byte{1}
	for i := 0; i < n; i++ {
		next := make([]byte, len(g)+1)
		for j, c := range g {
			next[j] ^= c
			next[j+1] ^= gfMul(c, gfExp[i])
		}
		g = next
	}
	return g
}

// parity returns n Reed-Solomon parity bytes for msg.
func parity(msg []byte, n int) []byte {
	g := generator(n)
	r := make([]byte, len(msg)+n)
	copy(r, msg)
	for i := range msg {
		c := r[i]
		if c == 0 {
			continue
		}
		for j := 1; j < len(g); j++ {
			r[i+j] ^= gfMul(g[j], c)
		}
	}
	return r[len(msg):]
}
