package state

import (
	"bytes"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// SystemProgramID owns every plain balance-holding account.
var SystemProgramID = solana.SystemProgramID

// Account is the host's view of one address: a balance, an owning program and opaque data
// that only the owner may modify.
type Account struct {
	Lamports uint64           // balance in the smallest value unit
	Owner    solana.PublicKey // program allowed to debit the balance and write Data
	Data     []byte           // allocated storage, zero-filled at creation
}

// NewSystemAccount is what an address that was never written looks like.
func NewSystemAccount(lamports uint64) Account {
	return Account{Lamports: lamports, Owner: SystemProgramID}
}

// IsSystemOwned reports whether the account is a plain balance holder.
func (a Account) IsSystemOwned() bool {
	return a.Owner.Equals(SystemProgramID)
}

// Clone returns a deep copy so staged writes never alias committed bytes.
func (a Account) Clone() Account {
	a.Data = bytes.Clone(a.Data)
	return a
}

// Bytes serializes the account (borsh).
func (a Account) Bytes() ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := bin.NewBorshEncoder(buf).Encode(a); err != nil {
		return nil, fmt.Errorf("encode account: %w", err)
	}
	return buf.Bytes(), nil
}

// AccountFromBytes is the inverse of Account.Bytes.
func AccountFromBytes(b []byte) (Account, error) {
	var a Account
	if err := bin.NewBorshDecoder(b).Decode(&a); err != nil {
		return Account{}, fmt.Errorf("decode account: %w", err)
	}
	return a, nil
}
