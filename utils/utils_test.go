package utils

import (
	"bytes"
	"encoding/hex"
	"errors"
	"math"
	"testing"
	"time"
)

type errorReader struct{}

func (errorReader) Read([]byte) (int, error) { return 0, errors.New("entropy unavailable") }

// shortReader returns at most one byte per Read call.
type shortReader struct{ b byte }

func (r *shortReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	r.b++
	p[0] = r.b
	return 1, nil
}

func TestSecureRandomBytes(t *testing.T) {
	b, err := SecureRandomBytes(32)
	if err != nil {
		t.Fatalf("SecureRandomBytes failed: %v", err)
	}
	if len(b) != 32 {
		t.Errorf("Expected 32 bytes, got %d", len(b))
	}

	b2, _ := SecureRandomBytes(32)
	if bytes.Equal(b, b2) {
		t.Error("SecureRandomBytes returned duplicate values")
	}
}

func TestSecureRandomBytes_Zero(t *testing.T) {
	b, err := SecureRandomBytes(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(b) != 0 {
		t.Error("expected empty slice")
	}
}

func TestSecureRandomBytes_RandError(t *testing.T) {
	old := RandReader
	RandReader = errorReader{}
	defer func() { RandReader = old }()

	if _, err := SecureRandomBytes(32); err == nil {
		t.Error("expected error from rand failure")
	}
}

func TestFillRandom_ShortReads(t *testing.T) {
	old := RandReader
	RandReader = &shortReader{}
	defer func() { RandReader = old }()

	buf := make([]byte, 5)
	if err := FillRandom(buf); err != nil {
		t.Fatalf("FillRandom failed: %v", err)
	}
	if !bytes.Equal(buf, []byte{1, 2, 3, 4, 5}) {
		t.Errorf("FillRandom did not fill the whole buffer: %v", buf)
	}
}

func TestConstantTimeEqual(t *testing.T) {
	a := []byte{1, 2, 3}
	b := []byte{1, 2, 3}
	c := []byte{1, 2, 4}

	if !ConstantTimeEqual(a, b) {
		t.Error("ConstantTimeEqual failed for equal slices")
	}
	if ConstantTimeEqual(a, c) {
		t.Error("ConstantTimeEqual passed for unequal slices")
	}
	if ConstantTimeEqual(a, a[:2]) {
		t.Error("ConstantTimeEqual passed for different lengths")
	}
	if !ConstantTimeEqual(nil, []byte{}) {
		t.Error("ConstantTimeEqual failed for empty slices")
	}
}

func TestZeroize(t *testing.T) {
	b := []byte{1, 2, 3}
	Zeroize(b)
	for _, v := range b {
		if v != 0 {
			t.Error("Zeroize failed")
		}
	}
}

func TestSHA3(t *testing.T) {
	// SHA3-256("abc") from FIPS 202 test vectors.
	want := "3a985da74fe225b2045c172d6bd390bd855f086e3e9d525b46bfe24511431532"
	if got := hex.EncodeToString(SHA3256([]byte("abc"))); got != want {
		t.Errorf("SHA3256(abc) = %s, want %s", got, want)
	}

	d1 := Digest([]byte("a"), []byte("bc"))
	d2 := Digest([]byte("abc"))
	if d1 != d2 {
		t.Error("Digest should hash the plain concatenation")
	}
	if hex.EncodeToString(d1[:]) != want {
		t.Error("Digest disagrees with SHA3256")
	}
}

func TestXORBytes(t *testing.T) {
	a := []byte{1, 2, 3, 4}
	b := []byte{5, 6, 7, 8}
	if got := XORBytes(a, b); !bytes.Equal(got, []byte{4, 4, 4, 12}) {
		t.Errorf("XORBytes = %v", got)
	}

	// XOR with itself should yield zeros
	for _, v := range XORBytes(a, a) {
		if v != 0 {
			t.Fatal("XOR with itself should be zero")
		}
	}

	if got := XORBytes(a, b[:2]); len(got) != 2 {
		t.Errorf("XORBytes should truncate to the shorter input, got %d bytes", len(got))
	}
}

func TestXOR3Into(t *testing.T) {
	a := []byte{0xff, 0x00, 0x0f}
	b := []byte{0x0f, 0xf0, 0x00}
	c := []byte{0x01, 0x01, 0x01}
	dst := make([]byte, 3)
	XOR3Into(dst, a, b, c)
	if !bytes.Equal(dst, []byte{0xf1, 0xf1, 0x0e}) {
		t.Errorf("XOR3Into = %x", dst)
	}

	XOR3Into(nil, nil, nil, nil)
}

func TestEnforceDelay(t *testing.T) {
	start := time.Now()
	delay := 30 * time.Millisecond
	EnforceDelay(start, delay)
	if elapsed := time.Since(start); elapsed < delay {
		t.Errorf("EnforceDelay returned after %v, want >= %v", elapsed, delay)
	}

	// Already elapsed: must not sleep again.
	past := time.Now().Add(-time.Second)
	before := time.Now()
	EnforceDelay(past, delay)
	if time.Since(before) > delay {
		t.Error("EnforceDelay slept although the delay had passed")
	}
}

func TestSafeAdd(t *testing.T) {
	if r, err := SafeAdd(10, 20); err != nil || r != 30 {
		t.Errorf("SafeAdd(10, 20) = %d, %v; want 30, nil", r, err)
	}
	if _, err := SafeAdd(-1, 10); !errors.Is(err, ErrInvalidLength) {
		t.Errorf("SafeAdd(-1, 10) error = %v", err)
	}
	if _, err := SafeAdd(math.MaxInt, 1); !errors.Is(err, ErrOverflow) {
		t.Errorf("SafeAdd overflow error = %v", err)
	}
}

func TestAlignUp(t *testing.T) {
	tests := []struct{ n, unit, want int }{
		{0, 16, 0},
		{1, 16, 16},
		{16, 16, 16},
		{17, 16, 32},
		{1000, 16, 1008},
	}
	for _, tt := range tests {
		got, err := AlignUp(tt.n, tt.unit)
		if err != nil || got != tt.want {
			t.Errorf("AlignUp(%d, %d) = %d, %v; want %d", tt.n, tt.unit, got, err, tt.want)
		}
	}

	if _, err := AlignUp(10, 0); err == nil {
		t.Error("AlignUp with zero unit should error")
	}
	if _, err := AlignUp(math.MaxInt, 16); err == nil {
		t.Error("AlignUp near MaxInt should overflow")
	}
}
