package ledger

import (
	"errors"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"

	"github.com/eigerco/ledgerpay/internal/safemath"
	"github.com/eigerco/ledgerpay/internal/state"
	"github.com/eigerco/ledgerpay/internal/store"
)

// MaxAccountDataSize bounds a single allocation.
const MaxAccountDataSize = 10 * 1024 * 1024

// Txn is the unit of work of one transition. Writes are staged in memory and only reach
// the store when the runtime commits them; a failed transition simply drops the Txn.
type Txn struct {
	accounts *store.Accounts
	program  solana.PublicKey
	signer   solana.PublicKey
	now      time.Time

	staged     map[solana.PublicKey]state.Account
	order      []solana.PublicKey
	logs       []string
	returnData []byte
}

func newTxn(accounts *store.Accounts, program, signer solana.PublicKey, now time.Time) *Txn {
	return &Txn{
		accounts: accounts,
		program:  program,
		signer:   signer,
		now:      now,
		staged:   make(map[solana.PublicKey]state.Account),
	}
}

// load returns the latest image of addr and whether it exists.
// Addresses never written read as empty system accounts.
func (t *Txn) load(addr solana.PublicKey) (state.Account, bool, error) {
	if acc, ok := t.staged[addr]; ok {
		return acc, true, nil
	}
	acc, err := t.accounts.GetAccount(addr)
	if errors.Is(err, store.ErrAccountNotFound) {
		return state.NewSystemAccount(0), false, nil
	}
	if err != nil {
		return state.Account{}, false, err
	}
	return acc, true, nil
}

func (t *Txn) stage(addr solana.PublicKey, acc state.Account) {
	if _, ok := t.staged[addr]; !ok {
		t.order = append(t.order, addr)
	}
	t.staged[addr] = acc
}

// Account returns a copy of the current image of addr.
func (t *Txn) Account(addr solana.PublicKey) (state.Account, error) {
	acc, _, err := t.load(addr)
	if err != nil {
		return state.Account{}, err
	}
	return acc.Clone(), nil
}

// Transfer moves lamports between two accounts. The source must have signed the
// transaction and be a plain system account.
func (t *Txn) Transfer(from, to solana.PublicKey, lamports uint64) error {
	if !from.Equals(t.signer) {
		return fmt.Errorf("%w: %s", ErrMissingSignature, from)
	}
	src, _, err := t.load(from)
	if err != nil {
		return err
	}
	if !src.IsSystemOwned() || len(src.Data) > 0 {
		return fmt.Errorf("%w: %s", ErrTransferFromNonSystem, from)
	}
	debited, ok := safemath.Sub64(src.Lamports, lamports)
	if !ok {
		return fmt.Errorf("%w: have %d, need %d", ErrInsufficientFunds, src.Lamports, lamports)
	}
	if from.Equals(to) {
		return nil
	}

	dst, _, err := t.load(to)
	if err != nil {
		return err
	}
	credited, ok := safemath.Add64(dst.Lamports, lamports)
	if !ok {
		return fmt.Errorf("%w: %s", ErrLamportsOverflow, to)
	}

	src = src.Clone()
	src.Lamports = debited
	dst = dst.Clone()
	dst.Lamports = credited
	t.stage(from, src)
	t.stage(to, dst)
	return nil
}

// CreateAccount allocates space zeroed bytes at addr and assigns it to owner.
// It fails with ErrAccountInUse unless addr is an empty system account, so a
// second creation at the same address can never succeed.
func (t *Txn) CreateAccount(addr, owner solana.PublicKey, space uint64) error {
	if space > MaxAccountDataSize {
		return fmt.Errorf("%w: %d bytes", ErrInvalidSpace, space)
	}
	acc, _, err := t.load(addr)
	if err != nil {
		return err
	}
	if !acc.IsSystemOwned() || len(acc.Data) > 0 {
		return fmt.Errorf("%w: %s", ErrAccountInUse, addr)
	}

	t.stage(addr, state.Account{
		Lamports: acc.Lamports,
		Owner:    owner,
		Data:     make([]byte, space),
	})
	return nil
}

// WriteData overwrites the data of an account owned by the running program.
// Bytes past len(data) are zeroed.
func (t *Txn) WriteData(addr solana.PublicKey, data []byte) error {
	acc, _, err := t.load(addr)
	if err != nil {
		return err
	}
	if !acc.Owner.Equals(t.program) {
		return fmt.Errorf("%w: %s owned by %s", ErrExternalAccountDataModified, addr, acc.Owner)
	}
	if len(data) > len(acc.Data) {
		return fmt.Errorf("%w: %d > %d", ErrAccountDataTooSmall, len(data), len(acc.Data))
	}

	acc = acc.Clone()
	n := copy(acc.Data, data)
	clear(acc.Data[n:])
	t.stage(addr, acc)
	return nil
}

// UnixTimestamp is the host clock reading taken when the transaction started.
func (t *Txn) UnixTimestamp() int64 {
	return t.now.Unix()
}

// Logf appends a program log line to the receipt.
func (t *Txn) Logf(format string, args ...interface{}) {
	t.logs = append(t.logs, fmt.Sprintf(format, args...))
}

// SetReturnData replaces the instruction return data.
func (t *Txn) SetReturnData(b []byte) {
	t.returnData = append([]byte(nil), b...)
}

func (t *Txn) writes() []store.AccountWrite {
	writes := make([]store.AccountWrite, 0, len(t.order))
	for _, addr := range t.order {
		writes = append(writes, store.AccountWrite{Address: addr, Account: t.staged[addr]})
	}
	return writes
}
