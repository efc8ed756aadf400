package utils

import (
	"golang.org/x/crypto/sha3"
)

// DigestSize is the output size of every digest in this package.
const DigestSize = 32

// SHA3256 computes the SHA3-256 cryptographic hash of the input.
// It returns a 32-byte hash.
func SHA3256(input []byte) []byte {
	h := sha3.New256()
	h.Write(input)
	return h.Sum(nil)
}

// Digest computes SHA3-256 over the plain concatenation of parts.
// Unlike a length-prefixed encoding, Digest(a, b) == Digest(a||b).
func Digest(parts ...[]byte) [DigestSize]byte {
	h := sha3.New256()
	for _, p := range parts {
		h.Write(p)
	}
	var out [DigestSize]byte
	h.Sum(out[:0])
	return out
}
