package payment

import (
	"errors"
	"fmt"
)

// ErrorCode is the stable numeric identifier of a program error.
type ErrorCode uint32

// Error is a program error surfaced to the caller verbatim.
type Error struct {
	Code ErrorCode
	Name string
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (%d): %s", e.Name, e.Code, e.Msg)
}

func newError(code ErrorCode, name, msg string) *Error {
	return &Error{Code: code, Name: name, Msg: msg}
}

// Payment errors.
var (
	ErrMemoTooLong         = newError(6000, "MemoTooLong", "Memo cannot be longer than 200 characters.")
	ErrOverflow            = newError(6001, "Overflow", "Operation overflowed.")
	ErrInvalidAmount       = newError(6002, "InvalidAmount", "Payment amount must be greater than zero.")
	ErrSelfPayment         = newError(6003, "SelfPayment", "Sender and receiver cannot be the same account.")
	ErrInsufficientBalance = newError(6004, "InsufficientBalance", "Sender does not have sufficient balance for this transaction.")
	ErrInvalidReceiver     = newError(6005, "InvalidReceiver", "Receiver account is not valid for receiving lamports (must be system-owned).")
	ErrAlreadyInitialized  = newError(6006, "AlreadyInitialized", "Program state has already been initialized.")
)

// Instruction and account constraint errors.
var (
	ErrInstructionMissing           = newError(100, "InstructionMissing", "8 byte instruction identifier not provided")
	ErrInstructionFallbackNotFound  = newError(101, "InstructionFallbackNotFound", "Fallback functions are not supported")
	ErrInstructionDidNotDeserialize = newError(102, "InstructionDidNotDeserialize", "The program could not deserialize the given instruction")
	ErrConstraintSeeds              = newError(2006, "ConstraintSeeds", "A seeds constraint was violated")
	ErrAccountDiscriminatorMismatch = newError(3002, "AccountDiscriminatorMismatch", "Account discriminator did not match what was expected")
	ErrAccountDidNotDeserialize     = newError(3003, "AccountDidNotDeserialize", "Failed to deserialize the account")
	ErrNotEnoughAccountKeys         = newError(3005, "AccountNotEnoughKeys", "Not enough account keys given to the instruction")
	ErrAccountOwnedByWrongProgram   = newError(3007, "AccountOwnedByWrongProgram", "The given account is owned by a different program than expected")
	ErrAccountNotSigner             = newError(3010, "AccountNotSigner", "The given account did not sign")
	ErrAccountNotInitialized        = newError(3012, "AccountNotInitialized", "The program expected this account to be already initialized")
)

// CodeOf extracts the program error code from err, if err wraps a program error.
func CodeOf(err error) (ErrorCode, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Code, true
	}
	return 0, false
}
