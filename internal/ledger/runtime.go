// Package ledger is a minimal host runtime for account-based programs. It verifies the
// signer, serializes transitions, runs one program instruction against a staged unit of
// work and commits every resulting account write in a single batch, or none of them.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/gagliardetto/solana-go"

	"github.com/eigerco/ledgerpay/internal/crypto"
	"github.com/eigerco/ledgerpay/internal/safemath"
	"github.com/eigerco/ledgerpay/internal/state"
	"github.com/eigerco/ledgerpay/internal/store"
	"github.com/eigerco/ledgerpay/pkg/log"
)

// Receipt describes a processed transaction.
type Receipt struct {
	ID         crypto.Hash
	Logs       []string
	ReturnData []byte
}

type Option func(*Runtime)

// WithClock replaces the wall clock.
func WithClock(c Clock) Option {
	return func(r *Runtime) { r.clock = c }
}

// Runtime executes transactions one at a time.
type Runtime struct {
	accounts *store.Accounts
	clock    Clock
	programs map[solana.PublicKey]Program

	// mu serializes execution and commit, so no two transitions ever interleave.
	mu sync.Mutex
}

func NewRuntime(accounts *store.Accounts, opts ...Option) *Runtime {
	r := &Runtime{
		accounts: accounts,
		clock:    SystemClock,
		programs: make(map[solana.PublicKey]Program),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register makes a program invocable by its id.
func (r *Runtime) Register(p Program) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.programs[p.ID()] = p
}

// Execute runs tx to completion. On error nothing is persisted; the receipt still carries
// the id and any log lines produced before the failure.
func (r *Runtime) Execute(ctx context.Context, tx Transaction) (Receipt, error) {
	if err := ctx.Err(); err != nil {
		return Receipt{}, err
	}

	id, err := tx.Verify()
	if err != nil {
		return Receipt{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	seen, err := r.accounts.HasTransaction(id)
	if err != nil {
		return Receipt{}, err
	}
	if seen {
		return Receipt{ID: id}, fmt.Errorf("%w: %s", ErrDuplicateTransaction, id)
	}

	program, ok := r.programs[tx.Instruction.ProgramID]
	if !ok {
		return Receipt{ID: id}, fmt.Errorf("%w: %s", ErrUnknownProgram, tx.Instruction.ProgramID)
	}

	txn := newTxn(r.accounts, program.ID(), tx.Signer, r.clock.Now())
	err = program.Process(&InvokeContext{
		Txn:      txn,
		Signer:   tx.Signer,
		Accounts: tx.Instruction.Accounts,
		Data:     tx.Instruction.Data,
	})
	receipt := Receipt{ID: id, Logs: txn.logs, ReturnData: txn.returnData}
	r.emitLogs(id, receipt.Logs)
	if err != nil {
		log.Ledger.Debug().
			Str("tx", id.String()).
			Str("program", program.ID().String()).
			Err(err).
			Msg("transaction failed, write set discarded")
		return receipt, err
	}

	processed := &store.ProcessedTransaction{
		ID:         id,
		Signer:     tx.Signer,
		Program:    program.ID(),
		Logs:       receipt.Logs,
		ReturnData: receipt.ReturnData,
	}
	if err := r.accounts.Apply(txn.writes(), processed); err != nil {
		return receipt, fmt.Errorf("commit transaction %s: %w", id, err)
	}

	log.Ledger.Info().
		Str("tx", id.String()).
		Str("program", program.ID().String()).
		Str("signer", tx.Signer.String()).
		Int("accounts_written", len(txn.order)).
		Msg("transaction committed")
	return receipt, nil
}

func (r *Runtime) emitLogs(id crypto.Hash, lines []string) {
	for _, line := range lines {
		log.Program.Debug().Str("tx", id.String()).Msg(line)
	}
}

// Credit mints lamports into addr outside of any program. It is how balances enter a
// fresh ledger.
func (r *Runtime) Credit(ctx context.Context, addr solana.PublicKey, lamports uint64) (state.Account, error) {
	if err := ctx.Err(); err != nil {
		return state.Account{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	acc, err := r.accounts.GetAccount(addr)
	if errors.Is(err, store.ErrAccountNotFound) {
		acc = state.NewSystemAccount(0)
	} else if err != nil {
		return state.Account{}, err
	}

	acc.Lamports, err = safemath.CheckedAdd64(acc.Lamports, lamports)
	if err != nil {
		return state.Account{}, fmt.Errorf("credit %s: %w", addr, ErrLamportsOverflow)
	}
	if err := r.accounts.Apply([]store.AccountWrite{{Address: addr, Account: acc}}, nil); err != nil {
		return state.Account{}, err
	}

	log.Ledger.Info().Str("account", addr.String()).Uint64("lamports", lamports).Msg("account credited")
	return acc, nil
}

// Account returns the committed image of addr or store.ErrAccountNotFound.
func (r *Runtime) Account(addr solana.PublicKey) (state.Account, error) {
	return r.accounts.GetAccount(addr)
}

// Transaction returns a committed transaction or store.ErrTransactionNotFound.
func (r *Runtime) Transaction(id crypto.Hash) (store.ProcessedTransaction, error) {
	return r.accounts.GetTransaction(id)
}

// Balance returns the committed balance of addr, zero for unknown addresses.
func (r *Runtime) Balance(addr solana.PublicKey) (uint64, error) {
	acc, err := r.accounts.GetAccount(addr)
	if errors.Is(err, store.ErrAccountNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return acc.Lamports, nil
}

// Close closes the underlying store.
func (r *Runtime) Close() error {
	return r.accounts.Close()
}
