package sharing

import (
	"bytes"
	"testing"

	trishare "github.com/BackendStack21/trishare-go"
)

// FuzzSplitReconstruct checks the round trip on both dispatch paths
func FuzzSplitReconstruct(f *testing.F) {
	f.Add([]byte("A"), uint16(1))
	f.Add(bytes.Repeat([]byte{0xff}, 100), uint16(16))
	f.Add(bytes.Repeat([]byte{0x00}, 1000), uint16(3))

	f.Fuzz(func(t *testing.T, secret []byte, block uint16) {
		if len(secret) == 0 {
			return
		}
		cfg := trishare.SharingConfig{Parallel: block%2 == 0, ParallelThreshold: 0, BlockSize: int(block) + 1}
		s := New(cfg)
		shares, err := s.Split(secret)
		if err != nil {
			t.Fatal(err)
		}
		out, err := s.Reconstruct(shares)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(out, secret) {
			t.Fatal("round trip mismatch")
		}
	})
}

// FuzzReconstructShares feeds arbitrary share bytes to Reconstruct
func FuzzReconstructShares(f *testing.F) {
	f.Add([]byte{}, []byte{}, []byte{})
	f.Add(make([]byte, 16), make([]byte, 16), make([]byte, 16))
	f.Add(make([]byte, 16), make([]byte, 32), make([]byte, 16))

	f.Fuzz(func(t *testing.T, a, b, c []byte) {
		// Should not panic
		_, _ = NewDefault().Reconstruct([]*Share{NewShare(a, 0), NewShare(b, 1), NewShare(c, 2)})
	})
}
