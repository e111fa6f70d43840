package payment

import (
	"context"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eigerco/ledgerpay/internal/ledger"
	"github.com/eigerco/ledgerpay/internal/store"
	"github.com/eigerco/ledgerpay/pkg/db/pebble"
)

const testUnixTime = 1700000000

type testEnv struct {
	rt       *ledger.Runtime
	accounts *store.Accounts
	payer    solana.PrivateKey
}

func newTestEnv(t *testing.T) *testEnv {
	kv, err := pebble.NewKVStore()
	require.NoError(t, err)
	accounts := store.NewAccounts(kv)
	rt := ledger.NewRuntime(accounts, ledger.WithClock(ledger.ClockFunc(func() time.Time {
		return time.Unix(testUnixTime, 0)
	})))
	rt.Register(NewProgram(DefaultProgramID))
	t.Cleanup(func() { _ = rt.Close() })

	env := &testEnv{rt: rt, accounts: accounts, payer: solana.NewWallet().PrivateKey}
	env.fund(t, env.payer.PublicKey(), 1_000_000)
	return env
}

func (e *testEnv) initialize(t *testing.T) {
	tx, err := NewInitializeStateTransaction(DefaultProgramID, e.payer)
	require.NoError(t, err)
	_, err = e.rt.Execute(context.Background(), tx)
	require.NoError(t, err)
}

func (e *testEnv) fund(t *testing.T, addr solana.PublicKey, lamports uint64) {
	_, err := e.rt.Credit(context.Background(), addr, lamports)
	require.NoError(t, err)
}

func (e *testEnv) pay(sender solana.PrivateKey, receiver solana.PublicKey, amount uint64, memo string) (ledger.Receipt, error) {
	tx, err := NewSendPaymentTransaction(e.rt, DefaultProgramID, sender, receiver, amount, memo)
	if err != nil {
		return ledger.Receipt{}, err
	}
	return e.rt.Execute(context.Background(), tx)
}

func (e *testEnv) balance(t *testing.T, addr solana.PublicKey) uint64 {
	b, err := e.rt.Balance(addr)
	require.NoError(t, err)
	return b
}

func (e *testEnv) total(t *testing.T) uint64 {
	c, err := ReadState(e.rt, DefaultProgramID)
	require.NoError(t, err)
	return c.State.TotalTransactions
}

// snapshot captures everything a failed payment must leave untouched.
type snapshot struct {
	sender, receiver uint64
	total            uint64
}

func (e *testEnv) snapshot(t *testing.T, sender, receiver solana.PublicKey) snapshot {
	return snapshot{
		sender:   e.balance(t, sender),
		receiver: e.balance(t, receiver),
		total:    e.total(t),
	}
}

func (e *testEnv) requireUnchanged(t *testing.T, before snapshot, sender, receiver solana.PublicKey) {
	after := e.snapshot(t, sender, receiver)
	assert.Equal(t, before, after)

	_, _, err := ReadRecord(e.rt, DefaultProgramID, sender, before.total)
	assert.ErrorIs(t, err, store.ErrAccountNotFound)
}
