package ledger

import "github.com/gagliardetto/solana-go"

// Program is a state-transition function hosted by the runtime.
type Program interface {
	ID() solana.PublicKey
	Process(ic *InvokeContext) error
}

// InvokeContext is everything a program sees for one instruction.
type InvokeContext struct {
	Txn      *Txn
	Signer   solana.PublicKey
	Accounts []solana.PublicKey
	Data     []byte
}
