package store

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eigerco/ledgerpay/internal/crypto"
	"github.com/eigerco/ledgerpay/internal/state"
	"github.com/eigerco/ledgerpay/pkg/db/pebble"
)

func newStore(t *testing.T) *Accounts {
	kv, err := pebble.NewKVStore()
	require.NoError(t, err)
	accounts := NewAccounts(kv)
	t.Cleanup(func() { _ = accounts.Close() })
	return accounts
}

func Test_GetAccountNotFound(t *testing.T) {
	accounts := newStore(t)
	_, err := accounts.GetAccount(solana.NewWallet().PublicKey())
	require.ErrorIs(t, err, ErrAccountNotFound)
}

func Test_ApplyAndGet(t *testing.T) {
	accounts := newStore(t)
	sender := solana.NewWallet().PublicKey()
	receiver := solana.NewWallet().PublicKey()
	id := crypto.HashData([]byte("tx-1"))

	err := accounts.Apply([]AccountWrite{
		{Address: sender, Account: state.NewSystemAccount(700)},
		{Address: receiver, Account: state.NewSystemAccount(300)},
	}, &ProcessedTransaction{ID: id, Signer: sender, Logs: []string{"moved 300"}, ReturnData: []byte{1}})
	require.NoError(t, err)

	got, err := accounts.GetAccount(sender)
	require.NoError(t, err)
	assert.Equal(t, uint64(700), got.Lamports)
	assert.True(t, got.IsSystemOwned())

	got, err = accounts.GetAccount(receiver)
	require.NoError(t, err)
	assert.Equal(t, uint64(300), got.Lamports)

	seen, err := accounts.HasTransaction(id)
	require.NoError(t, err)
	assert.True(t, seen)

	seen, err = accounts.HasTransaction(crypto.HashData([]byte("tx-2")))
	require.NoError(t, err)
	assert.False(t, seen)

	tx, err := accounts.GetTransaction(id)
	require.NoError(t, err)
	assert.Equal(t, id, tx.ID)
	assert.Equal(t, sender, tx.Signer)
	assert.Equal(t, []string{"moved 300"}, tx.Logs)
	assert.Equal(t, []byte{1}, tx.ReturnData)

	_, err = accounts.GetTransaction(crypto.HashData([]byte("tx-2")))
	require.ErrorIs(t, err, ErrTransactionNotFound)
}

func Test_ApplyWithoutTransaction(t *testing.T) {
	accounts := newStore(t)
	addr := solana.NewWallet().PublicKey()

	require.NoError(t, accounts.Apply([]AccountWrite{
		{Address: addr, Account: state.NewSystemAccount(1)},
	}, nil))

	seen, err := accounts.HasTransaction(crypto.Hash{})
	require.NoError(t, err)
	assert.False(t, seen)
}

func Test_Closed(t *testing.T) {
	accounts := newStore(t)
	require.NoError(t, accounts.Close())
	// Closing a closed store should have no effect/error
	require.NoError(t, accounts.Close())

	_, err := accounts.GetAccount(solana.PublicKey{})
	require.ErrorIs(t, err, ErrStoreClosed)
	_, err = accounts.HasTransaction(crypto.Hash{})
	require.ErrorIs(t, err, ErrStoreClosed)
	require.ErrorIs(t, accounts.Apply(nil, nil), ErrStoreClosed)
	_, err = accounts.GetTransaction(crypto.Hash{})
	require.ErrorIs(t, err, ErrStoreClosed)
}

func TestPrefix(t *testing.T) {
	assert.Equal(t, "account", prefixAccount.String())
	assert.Equal(t, "transaction", prefixTransaction.String())
	assert.Equal(t, "unknown", prefix(0xff).String())

	assert.Equal(t, []byte{1, 0xaa, 0xbb}, prefixAccount.key([]byte{0xaa, 0xbb}))
}
