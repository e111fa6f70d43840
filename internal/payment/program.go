// Package payment is a peer-to-peer payment program. Each payment moves lamports from
// the signer to a plain receiver account and leaves an immutable record at an address
// derived from the sender and a global, overflow-checked transaction counter.
package payment

import (
	"fmt"
	"unicode/utf8"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"

	"github.com/eigerco/ledgerpay/internal/ledger"
)

// DefaultProgramID is the id the program is deployed under unless configured otherwise.
var DefaultProgramID = solana.MustPublicKeyFromBase58("Fg6PaFpoGXkYsidMpWTK6W2BeZ7FEfcYkg476zPFsLnS")

// Account positions of each instruction.
const (
	sendPaymentSender = iota
	sendPaymentReceiver
	sendPaymentRecord
	sendPaymentState
	sendPaymentAccounts
)

const (
	initializeStateState = iota
	initializeStatePayer
	initializeStateAccounts
)

var _ ledger.Program = (*Program)(nil)

type Program struct {
	id solana.PublicKey
}

func NewProgram(id solana.PublicKey) *Program {
	return &Program{id: id}
}

func (p *Program) ID() solana.PublicKey {
	return p.id
}

// Process dispatches on the 8-byte instruction discriminator.
func (p *Program) Process(ic *ledger.InvokeContext) error {
	if len(ic.Data) < discriminatorLength {
		return ErrInstructionMissing
	}
	var d discriminator
	copy(d[:], ic.Data)

	switch d {
	case sendPaymentDiscriminator:
		var args SendPaymentArgs
		if err := bin.NewBorshDecoder(ic.Data[discriminatorLength:]).Decode(&args); err != nil {
			return fmt.Errorf("%w: %v", ErrInstructionDidNotDeserialize, err)
		}
		if !utf8.ValidString(args.Memo) {
			return fmt.Errorf("%w: memo is not valid UTF-8", ErrInstructionDidNotDeserialize)
		}
		return p.sendPayment(ic, args)
	case initializeStateDiscriminator:
		return p.initializeState(ic)
	default:
		return ErrInstructionFallbackNotFound
	}
}

func (p *Program) sendPayment(ic *ledger.InvokeContext, args SendPaymentArgs) error {
	if len(ic.Accounts) < sendPaymentAccounts {
		return ErrNotEnoughAccountKeys
	}
	sender := ic.Accounts[sendPaymentSender]
	receiver := ic.Accounts[sendPaymentReceiver]

	if !sender.Equals(ic.Signer) {
		return fmt.Errorf("%w: sender %s", ErrAccountNotSigner, sender)
	}
	counter, err := p.loadCounter(ic.Txn, ic.Accounts[sendPaymentState])
	if err != nil {
		return err
	}
	expected, _, err := RecordAddress(p.id, sender, counter.State.TotalTransactions)
	if err != nil {
		return fmt.Errorf("derive record address: %w", err)
	}
	if record := ic.Accounts[sendPaymentRecord]; !record.Equals(expected) {
		return fmt.Errorf("%w: record %s, expected %s for sequence %d", ErrConstraintSeeds, record, expected, counter.State.TotalTransactions)
	}

	senderAcc, err := ic.Txn.Account(sender)
	if err != nil {
		return err
	}
	receiverAcc, err := ic.Txn.Account(receiver)
	if err != nil {
		return err
	}
	err = Validate(Params{
		Sender:        sender,
		Receiver:      receiver,
		Amount:        args.Amount,
		SenderBalance: senderAcc.Lamports,
		ReceiverOwner: receiverAcc.Owner,
		Memo:          args.Memo,
	})
	if err != nil {
		return err
	}

	_, addr, err := Commit(ic.Txn, p.id, Payment{
		Sender:   sender,
		Receiver: receiver,
		Amount:   args.Amount,
		Memo:     args.Memo,
	}, &counter)
	if err != nil {
		return err
	}

	result, err := SendPaymentResult{Record: addr, TotalTransactions: counter.State.TotalTransactions}.Bytes()
	if err != nil {
		return err
	}
	ic.Txn.SetReturnData(result)
	return nil
}

func (p *Program) initializeState(ic *ledger.InvokeContext) error {
	if len(ic.Accounts) < initializeStateAccounts {
		return ErrNotEnoughAccountKeys
	}
	if payer := ic.Accounts[initializeStatePayer]; !payer.Equals(ic.Signer) {
		return fmt.Errorf("%w: payer %s", ErrAccountNotSigner, payer)
	}
	expected, _, err := StateAddress(p.id)
	if err != nil {
		return fmt.Errorf("derive state address: %w", err)
	}
	if addr := ic.Accounts[initializeStateState]; !addr.Equals(expected) {
		return fmt.Errorf("%w: state %s, expected %s", ErrConstraintSeeds, addr, expected)
	}

	_, err = InitializeState(ic.Txn, p.id)
	return err
}

// loadCounter checks that addr is the initialized counter singleton of this program.
func (p *Program) loadCounter(txn *ledger.Txn, addr solana.PublicKey) (Counter, error) {
	expected, _, err := StateAddress(p.id)
	if err != nil {
		return Counter{}, fmt.Errorf("derive state address: %w", err)
	}
	if !addr.Equals(expected) {
		return Counter{}, fmt.Errorf("%w: state %s, expected %s", ErrConstraintSeeds, addr, expected)
	}

	acc, err := txn.Account(addr)
	if err != nil {
		return Counter{}, err
	}
	if acc.IsSystemOwned() && len(acc.Data) == 0 {
		return Counter{}, ErrAccountNotInitialized
	}
	if !acc.Owner.Equals(p.id) {
		return Counter{}, ErrAccountOwnedByWrongProgram
	}
	st, err := DecodeProgramState(acc.Data)
	if err != nil {
		return Counter{}, err
	}
	return Counter{Address: addr, State: st}, nil
}
