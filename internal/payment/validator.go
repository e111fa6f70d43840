package payment

import (
	"unicode/utf8"

	"github.com/gagliardetto/solana-go"
)

// Params is everything the validator looks at.
type Params struct {
	Sender        solana.PublicKey
	Receiver      solana.PublicKey
	Amount        uint64
	SenderBalance uint64
	ReceiverOwner solana.PublicKey
	Memo          string
}

// Validate decides whether a payment may proceed. Checks run in a fixed order and the
// first failure is returned, so callers always see the same error for the same input.
func Validate(p Params) error {
	if p.Amount == 0 {
		return ErrInvalidAmount
	}
	if p.Sender.Equals(p.Receiver) {
		return ErrSelfPayment
	}
	if utf8.RuneCountInString(p.Memo) > MaxMemoLength {
		return ErrMemoTooLong
	}
	if p.SenderBalance < p.Amount {
		return ErrInsufficientBalance
	}
	if !p.ReceiverOwner.Equals(solana.SystemProgramID) {
		return ErrInvalidReceiver
	}
	return nil
}
