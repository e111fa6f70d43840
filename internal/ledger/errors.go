package ledger

import "errors"

var (
	ErrBadSignature                = errors.New("transaction signature verification failed")
	ErrSignerMismatch              = errors.New("private key does not match transaction signer")
	ErrDuplicateTransaction        = errors.New("transaction already processed")
	ErrUnknownProgram              = errors.New("program not registered")
	ErrMissingSignature            = errors.New("debited account did not sign the transaction")
	ErrTransferFromNonSystem       = errors.New("transfer source must be a system account without data")
	ErrInsufficientFunds           = errors.New("insufficient lamports for transfer")
	ErrLamportsOverflow            = errors.New("lamports overflow")
	ErrAccountInUse                = errors.New("account already in use")
	ErrInvalidSpace                = errors.New("requested account space exceeds the limit")
	ErrAccountDataTooSmall         = errors.New("account data too small for write")
	ErrExternalAccountDataModified = errors.New("program modified data of an account it does not own")
)
