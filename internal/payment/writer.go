package payment

import (
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/eigerco/ledgerpay/internal/safemath"
)

// Host is the part of the ledger runtime the program writes through. Every call is
// staged; the runtime commits all of them or none.
type Host interface {
	Transfer(from, to solana.PublicKey, lamports uint64) error
	CreateAccount(addr, owner solana.PublicKey, space uint64) error
	WriteData(addr solana.PublicKey, data []byte) error
	UnixTimestamp() int64
	Logf(format string, args ...interface{})
}

// Payment is a validated transfer request.
type Payment struct {
	Sender   solana.PublicKey
	Receiver solana.PublicKey
	Amount   uint64
	Memo     string
}

// Counter is a loaded handle on the counter singleton.
type Counter struct {
	Address solana.PublicKey
	State   ProgramState
}

// Commit executes a payment the validator approved: it moves the lamports, writes a new
// record at the address derived from the current counter value and advances the counter.
// On error the caller must discard the host's staged writes; Commit never undoes anything.
func Commit(host Host, programID solana.PublicKey, p Payment, counter *Counter) (TransactionRecord, solana.PublicKey, error) {
	if err := host.Transfer(p.Sender, p.Receiver, p.Amount); err != nil {
		return TransactionRecord{}, solana.PublicKey{}, fmt.Errorf("transfer: %w", err)
	}
	host.Logf("Payment Sent: %d lamports from %s to %s with memo: %s", p.Amount, p.Sender, p.Receiver, p.Memo)

	sequence := counter.State.TotalTransactions
	addr, _, err := RecordAddress(programID, p.Sender, sequence)
	if err != nil {
		return TransactionRecord{}, solana.PublicKey{}, fmt.Errorf("derive record address: %w", err)
	}

	record := TransactionRecord{
		Sender:    p.Sender,
		Receiver:  p.Receiver,
		Amount:    p.Amount,
		Timestamp: host.UnixTimestamp(),
		Memo:      p.Memo,
	}
	if err := writeAccount(host, programID, addr, TransactionRecordLen, record); err != nil {
		return TransactionRecord{}, solana.PublicKey{}, fmt.Errorf("record %d: %w", sequence, err)
	}

	next, ok := safemath.Add64(sequence, 1)
	if !ok {
		return TransactionRecord{}, solana.PublicKey{}, ErrOverflow
	}
	updated := ProgramState{TotalTransactions: next}
	b, err := updated.Bytes()
	if err != nil {
		return TransactionRecord{}, solana.PublicKey{}, err
	}
	if err := host.WriteData(counter.Address, b); err != nil {
		return TransactionRecord{}, solana.PublicKey{}, fmt.Errorf("store counter: %w", err)
	}
	counter.State = updated

	host.Logf("Transaction recorded. Total transactions: %d", next)
	return record, addr, nil
}

type encodable interface {
	Bytes() ([]byte, error)
}

func writeAccount(host Host, programID, addr solana.PublicKey, space uint64, v encodable) error {
	if err := host.CreateAccount(addr, programID, space); err != nil {
		return err
	}
	b, err := v.Bytes()
	if err != nil {
		return err
	}
	return host.WriteData(addr, b)
}
