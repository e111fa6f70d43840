package payment

import (
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/eigerco/ledgerpay/internal/ledger"
	"github.com/eigerco/ledgerpay/internal/state"
	"github.com/eigerco/ledgerpay/internal/store"
)

// Reader reads committed accounts.
type Reader interface {
	Account(addr solana.PublicKey) (state.Account, error)
}

// ReadState loads the counter singleton of programID.
func ReadState(r Reader, programID solana.PublicKey) (Counter, error) {
	addr, _, err := StateAddress(programID)
	if err != nil {
		return Counter{}, fmt.Errorf("derive state address: %w", err)
	}
	acc, err := r.Account(addr)
	if errors.Is(err, store.ErrAccountNotFound) {
		return Counter{}, ErrAccountNotInitialized
	}
	if err != nil {
		return Counter{}, err
	}
	if !acc.Owner.Equals(programID) {
		return Counter{}, ErrAccountOwnedByWrongProgram
	}
	st, err := DecodeProgramState(acc.Data)
	if err != nil {
		return Counter{}, err
	}
	return Counter{Address: addr, State: st}, nil
}

// ReadRecord loads the record sender created with the given sequence number.
func ReadRecord(r Reader, programID, sender solana.PublicKey, sequence uint64) (TransactionRecord, solana.PublicKey, error) {
	addr, _, err := RecordAddress(programID, sender, sequence)
	if err != nil {
		return TransactionRecord{}, solana.PublicKey{}, fmt.Errorf("derive record address: %w", err)
	}
	acc, err := r.Account(addr)
	if err != nil {
		return TransactionRecord{}, addr, err
	}
	if !acc.Owner.Equals(programID) {
		return TransactionRecord{}, addr, ErrAccountOwnedByWrongProgram
	}
	rec, err := DecodeTransactionRecord(acc.Data)
	if err != nil {
		return TransactionRecord{}, addr, err
	}
	return rec, addr, nil
}

// InitializeStateInstruction builds the initialize_state instruction paid for by payer.
func InitializeStateInstruction(programID, payer solana.PublicKey) (ledger.Instruction, error) {
	addr, _, err := StateAddress(programID)
	if err != nil {
		return ledger.Instruction{}, fmt.Errorf("derive state address: %w", err)
	}
	return ledger.Instruction{
		ProgramID: programID,
		Accounts:  []solana.PublicKey{addr, payer},
		Data:      append([]byte(nil), initializeStateDiscriminator[:]...),
	}, nil
}

// SendPaymentInstruction builds a send_payment instruction targeting the record address
// for sequence. If another payment commits first the instruction fails with
// ErrConstraintSeeds and must be rebuilt against the new counter value.
func SendPaymentInstruction(programID, sender, receiver solana.PublicKey, sequence uint64, args SendPaymentArgs) (ledger.Instruction, error) {
	stateAddr, _, err := StateAddress(programID)
	if err != nil {
		return ledger.Instruction{}, fmt.Errorf("derive state address: %w", err)
	}
	record, _, err := RecordAddress(programID, sender, sequence)
	if err != nil {
		return ledger.Instruction{}, fmt.Errorf("derive record address: %w", err)
	}
	body, err := encodeBorsh(args)
	if err != nil {
		return ledger.Instruction{}, fmt.Errorf("encode send_payment: %w", err)
	}
	return ledger.Instruction{
		ProgramID: programID,
		Accounts:  []solana.PublicKey{sender, receiver, record, stateAddr},
		Data:      append(append([]byte(nil), sendPaymentDiscriminator[:]...), body...),
	}, nil
}

// NewInitializeStateTransaction returns a signed initialize_state transaction.
func NewInitializeStateTransaction(programID solana.PublicKey, payer solana.PrivateKey) (ledger.Transaction, error) {
	ix, err := InitializeStateInstruction(programID, payer.PublicKey())
	if err != nil {
		return ledger.Transaction{}, err
	}
	return signed(ix, payer)
}

// NewSendPaymentTransaction reads the current counter and returns a signed send_payment
// transaction against it.
func NewSendPaymentTransaction(r Reader, programID solana.PublicKey, sender solana.PrivateKey, receiver solana.PublicKey, amount uint64, memo string) (ledger.Transaction, error) {
	counter, err := ReadState(r, programID)
	if err != nil {
		return ledger.Transaction{}, err
	}
	ix, err := SendPaymentInstruction(programID, sender.PublicKey(), receiver, counter.State.TotalTransactions, SendPaymentArgs{
		Amount: amount,
		Memo:   memo,
	})
	if err != nil {
		return ledger.Transaction{}, err
	}
	return signed(ix, sender)
}

func signed(ix ledger.Instruction, key solana.PrivateKey) (ledger.Transaction, error) {
	nonce, err := ledger.NewNonce()
	if err != nil {
		return ledger.Transaction{}, err
	}
	tx := ledger.Transaction{Instruction: ix, Signer: key.PublicKey(), Nonce: nonce}
	if err := tx.Sign(key); err != nil {
		return ledger.Transaction{}, err
	}
	return tx, nil
}
