// Package padding implements the length-prefixed, block-aligned encoding
// shared by the splitter and its callers.
//
// A padded buffer is laid out as
//
//	| len(data) as uint64 LE (8) | data | random filler |
//
// and its total length is always a multiple of Alignment.
package padding

import (
	"encoding/binary"
	"math"

	trishare "github.com/BackendStack21/trishare-go"
	"github.com/BackendStack21/trishare-go/utils"
)

const (
	// Alignment is the block size every padded buffer is rounded up to.
	Alignment = trishare.Alignment
	// LengthPrefixSize is the size of the little-endian length prefix.
	LengthPrefixSize = 8

	// MaxInputSize is the largest input whose padded size fits in an int.
	MaxInputSize = math.MaxInt - LengthPrefixSize - (Alignment - 1)
)

// PaddedSize returns the padded length for an input of n bytes.
// n must not exceed MaxInputSize.
func PaddedSize(n int) int {
	return (n + LengthPrefixSize + Alignment - 1) / Alignment * Alignment
}

// Pad prefixes data with its length and fills up to the next Alignment
// boundary with random bytes. The empty input pads to exactly one block.
func Pad(data []byte) ([]byte, error) {
	if len(data) > MaxInputSize {
		return nil, trishare.InvalidInput("input too large: %d bytes", len(data))
	}

	size := PaddedSize(len(data))
	padded := make([]byte, size)
	binary.LittleEndian.PutUint64(padded, uint64(len(data)))
	copy(padded[LengthPrefixSize:], data)

	if err := utils.FillRandom(padded[LengthPrefixSize+len(data):]); err != nil {
		return nil, trishare.IOError(err)
	}
	return padded, nil
}

// Unpad validates the length prefix and returns a copy of the original bytes.
func Unpad(padded []byte) ([]byte, error) {
	if len(padded) < LengthPrefixSize {
		return nil, trishare.InvalidInput("invalid padded data length: %d", len(padded))
	}

	n := binary.LittleEndian.Uint64(padded)
	// Compare against the room left after the prefix so a huge prefix cannot
	// overflow the addition.
	if n > uint64(len(padded)-LengthPrefixSize) {
		return nil, trishare.InvalidInput("invalid length prefix %d for %d byte buffer", n, len(padded))
	}

	out := make([]byte, int(n))
	copy(out, padded[LengthPrefixSize:])
	return out, nil
}

// PadToBlockSize appends random bytes to data until its length is a
// multiple of blockSize. There is no length prefix; callers must track the
// original length themselves.
func PadToBlockSize(data []byte, blockSize int) ([]byte, error) {
	if blockSize <= 0 {
		return nil, trishare.InvalidInput("block size must be positive, got %d", blockSize)
	}
	size, err := utils.AlignUp(len(data), blockSize)
	if err != nil {
		return nil, trishare.InvalidInput("cannot align %d bytes: %v", len(data), err)
	}

	padded := make([]byte, size)
	copy(padded, data)
	if err := utils.FillRandom(padded[len(data):]); err != nil {
		return nil, trishare.IOError(err)
	}
	return padded, nil
}
