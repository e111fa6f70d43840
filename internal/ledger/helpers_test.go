package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"

	"github.com/eigerco/ledgerpay/internal/store"
	"github.com/eigerco/ledgerpay/pkg/db/pebble"
)

var testNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

// funcProgram runs an arbitrary function as a program.
type funcProgram struct {
	id solana.PublicKey
	fn func(ic *InvokeContext) error
}

func (p funcProgram) ID() solana.PublicKey             { return p.id }
func (p funcProgram) Process(ic *InvokeContext) error { return p.fn(ic) }

func newTestRuntime(t *testing.T) (*Runtime, *store.Accounts) {
	kv, err := pebble.NewKVStore()
	require.NoError(t, err)
	accounts := store.NewAccounts(kv)
	rt := NewRuntime(accounts, WithClock(ClockFunc(func() time.Time { return testNow })))
	t.Cleanup(func() { _ = rt.Close() })
	return rt, accounts
}

func fund(t *testing.T, rt *Runtime, addr solana.PublicKey, lamports uint64) {
	_, err := rt.Credit(context.Background(), addr, lamports)
	require.NoError(t, err)
}

func signedTx(t *testing.T, key solana.PrivateKey, program solana.PublicKey, data []byte, accounts ...solana.PublicKey) Transaction {
	tx := Transaction{
		Instruction: Instruction{ProgramID: program, Accounts: accounts, Data: data},
		Signer:      key.PublicKey(),
	}
	require.NoError(t, tx.Sign(key))
	return tx
}
