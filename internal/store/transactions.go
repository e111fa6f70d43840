package store

import (
	"bytes"
	"errors"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"

	"github.com/eigerco/ledgerpay/internal/crypto"
	"github.com/eigerco/ledgerpay/pkg/db"
)

var ErrTransactionNotFound = errors.New("transaction not found")

// ProcessedTransaction is what is kept about a committed transaction. Its presence under
// the id is also what rejects a replay.
type ProcessedTransaction struct {
	ID         crypto.Hash
	Signer     solana.PublicKey
	Program    solana.PublicKey
	Logs       []string
	ReturnData []byte
}

func (tx ProcessedTransaction) Bytes() ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := bin.NewBorshEncoder(buf).Encode(tx); err != nil {
		return nil, fmt.Errorf("encode transaction: %w", err)
	}
	return buf.Bytes(), nil
}

// GetTransaction retrieves a committed transaction by id.
func (a *Accounts) GetTransaction(id crypto.Hash) (ProcessedTransaction, error) {
	if a.closed.Load() {
		return ProcessedTransaction{}, ErrStoreClosed
	}

	b, err := a.db.Get(prefixTransaction.key(id[:]))
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return ProcessedTransaction{}, ErrTransactionNotFound
		}
		return ProcessedTransaction{}, fmt.Errorf("get transaction %s: %w", id, err)
	}

	var tx ProcessedTransaction
	if err := bin.NewBorshDecoder(b).Decode(&tx); err != nil {
		return ProcessedTransaction{}, fmt.Errorf("decode transaction %s: %w", id, err)
	}
	return tx, nil
}

// HasTransaction reports whether a transaction id was already committed.
func (a *Accounts) HasTransaction(id crypto.Hash) (bool, error) {
	if a.closed.Load() {
		return false, ErrStoreClosed
	}

	_, err := a.db.Get(prefixTransaction.key(id[:]))
	if errors.Is(err, db.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get transaction %s: %w", id, err)
	}
	return true, nil
}
