package utils

// XORBytes returns a XOR b over the length of the shorter slice.
func XORBytes(a, b []byte) []byte {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[i] = a[i] ^ b[i]
	}
	return out
}

// XOR3Into writes a[i]^b[i]^c[i] into dst for every i < len(dst).
// All inputs must be at least len(dst) long.
func XOR3Into(dst, a, b, c []byte) {
	if len(dst) == 0 {
		return
	}
	_ = a[len(dst)-1:]
	_ = b[len(dst)-1:]
	_ = c[len(dst)-1:]
	for i := range dst {
		dst[i] = a[i] ^ b[i] ^ c[i]
	}
}
