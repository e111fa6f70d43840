// Package safemath implements overflow-checked unsigned arithmetic.
package safemath

import (
	"errors"
	"math/bits"
)

var ErrOverflow = errors.New("number overflow")

// Add64 returns a+b and whether the addition did not overflow.
func Add64(a, b uint64) (uint64, bool) {
	v, carry := bits.Add64(a, b, 0)
	return v, carry == 0
}

// Sub64 returns a-b and whether the subtraction did not underflow.
func Sub64(a, b uint64) (uint64, bool) {
	v, borrow := bits.Sub64(a, b, 0)
	return v, borrow == 0
}

// CheckedAdd64 is Add64 reporting overflow as ErrOverflow.
func CheckedAdd64(a, b uint64) (uint64, error) {
	v, ok := Add64(a, b)
	if !ok {
		return 0, ErrOverflow
	}
	return v, nil
}
