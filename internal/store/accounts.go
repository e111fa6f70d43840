package store

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/gagliardetto/solana-go"

	"github.com/eigerco/ledgerpay/internal/crypto"
	"github.com/eigerco/ledgerpay/internal/state"
	"github.com/eigerco/ledgerpay/pkg/db"
	"github.com/eigerco/ledgerpay/pkg/log"
)

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrStoreClosed     = errors.New("account store is closed")
)

// AccountWrite is one account image produced by a committed transition.
type AccountWrite struct {
	Address solana.PublicKey
	Account state.Account
}

// Accounts persists committed account images and processed transaction ids.
type Accounts struct {
	db     db.KVStore
	closed atomic.Bool
}

// NewAccounts creates a new account store using KVStore
func NewAccounts(db db.KVStore) *Accounts {
	return &Accounts{db: db}
}

// GetAccount returns the committed image of addr, or ErrAccountNotFound.
func (a *Accounts) GetAccount(addr solana.PublicKey) (state.Account, error) {
	if a.closed.Load() {
		return state.Account{}, ErrStoreClosed
	}

	b, err := a.db.Get(prefixAccount.key(addr[:]))
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return state.Account{}, ErrAccountNotFound
		}
		return state.Account{}, fmt.Errorf("get account %s: %w", addr, err)
	}

	return state.AccountFromBytes(b)
}

// Apply writes every account image and, when tx is not nil, records tx as processed,
// all in a single batch. Either everything is persisted or nothing is.
func (a *Accounts) Apply(writes []AccountWrite, tx *ProcessedTransaction) error {
	if a.closed.Load() {
		return ErrStoreClosed
	}

	batch := a.db.NewBatch()
	defer batch.Close() //nolint:errcheck

	for _, w := range writes {
		b, err := w.Account.Bytes()
		if err != nil {
			return err
		}
		if err := batch.Put(prefixAccount.key(w.Address[:]), b); err != nil {
			return fmt.Errorf("store account %s: %w", w.Address, err)
		}
	}
	var id crypto.Hash
	if tx != nil {
		id = tx.ID
		b, err := tx.Bytes()
		if err != nil {
			return err
		}
		if err := batch.Put(prefixTransaction.key(id[:]), b); err != nil {
			return fmt.Errorf("store transaction %s: %w", id, err)
		}
	}

	if err := batch.Commit(); err != nil {
		return fmt.Errorf(ErrFailedBatchCommit, err)
	}

	log.Store.Debug().
		Str("tx", id.String()).
		Int("accounts", len(writes)).
		Msg("applied write set")
	return nil
}

// Close closes the account store
func (a *Accounts) Close() error {
	if !a.closed.CompareAndSwap(false, true) {
		return nil
	}
	return a.db.Close()
}
