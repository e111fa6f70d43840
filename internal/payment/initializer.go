package payment

import (
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/eigerco/ledgerpay/internal/ledger"
)

// InitializeState creates the counter singleton with zero transactions. The host refuses
// to allocate an address twice, which is what rejects a second initialization.
func InitializeState(host Host, programID solana.PublicKey) (Counter, error) {
	addr, _, err := StateAddress(programID)
	if err != nil {
		return Counter{}, fmt.Errorf("derive state address: %w", err)
	}

	counter := Counter{Address: addr}
	if err := writeAccount(host, programID, addr, ProgramStateLen, counter.State); err != nil {
		if errors.Is(err, ledger.ErrAccountInUse) {
			return Counter{}, ErrAlreadyInitialized
		}
		return Counter{}, err
	}

	host.Logf("Program state initialized. Total transactions: %d", counter.State.TotalTransactions)
	return counter, nil
}
