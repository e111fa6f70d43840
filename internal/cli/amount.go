package cli

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// LamportsPerSOL is the number of lamports in one SOL.
const LamportsPerSOL = 1_000_000_000

var (
	ErrNegativeAmount  = errors.New("amount must not be negative")
	ErrFractionLamport = errors.New("amount has more precision than one lamport")
	ErrAmountTooLarge  = errors.New("amount does not fit in 64 bits of lamports")
)

var (
	lamportsPerSOL = decimal.NewFromInt(LamportsPerSOL)
	maxLamports    = decimal.NewFromUint64(math.MaxUint64)
)

// ParseSOL converts a decimal SOL amount such as "1.5" into lamports without rounding.
func ParseSOL(s string) (uint64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", s, err)
	}
	if d.IsNegative() {
		return 0, ErrNegativeAmount
	}
	lamports := d.Mul(lamportsPerSOL)
	if !lamports.Equal(lamports.Truncate(0)) {
		return 0, fmt.Errorf("%w: %s", ErrFractionLamport, s)
	}
	if lamports.GreaterThan(maxLamports) {
		return 0, fmt.Errorf("%w: %s", ErrAmountTooLarge, s)
	}
	return lamports.BigInt().Uint64(), nil
}

// FormatSOL renders lamports as SOL with trailing zeros dropped.
func FormatSOL(lamports uint64) string {
	return decimal.NewFromUint64(lamports).DivRound(lamportsPerSOL, 9).String()
}
