// Package utils provides utility functions for trishare.
// This file contains safe arithmetic helpers to prevent integer overflow
// when sizing padded buffers.

package utils

import (
	"errors"
	"math"
)

var (
	// ErrOverflow indicates an integer overflow occurred.
	ErrOverflow = errors.New("integer overflow")

	// ErrInvalidLength indicates an invalid length value.
	ErrInvalidLength = errors.New("invalid length")
)

// SafeAdd adds two non-negative integers and returns an error if overflow occurs.
func SafeAdd(a, b int) (int, error) {
	if a < 0 || b < 0 {
		return 0, ErrInvalidLength
	}
	if a > math.MaxInt-b {
		return 0, ErrOverflow
	}
	return a + b, nil
}

// AlignUp rounds n up to the next multiple of unit.
func AlignUp(n, unit int) (int, error) {
	if err := CheckPositive(unit, "alignment unit"); err != nil {
		return 0, err
	}
	sum, err := SafeAdd(n, unit-1)
	if err != nil {
		return 0, err
	}
	return sum / unit * unit, nil
}

// CheckPositive validates that value is > 0.
func CheckPositive(value int, name string) error {
	if value <= 0 {
		return errors.New(name + " must be positive")
	}
	return nil
}
