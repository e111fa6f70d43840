package store

const ErrFailedBatchCommit = "failed to commit batch: %w"

// prefix namespaces the keys of one record kind within the shared KV store.
type prefix byte

const (
	prefixAccount     prefix = iota + 1 // address -> borsh(state.Account)
	prefixTransaction                   // transaction id -> borsh(ProcessedTransaction)
)

func (p prefix) String() string {
	switch p {
	case prefixAccount:
		return "account"
	case prefixTransaction:
		return "transaction"
	default:
		return "unknown"
	}
}

// key returns the prefixed storage key of id.
func (p prefix) key(id []byte) []byte {
	k := make([]byte, 1+len(id))
	k[0] = byte(p)
	copy(k[1:], id)
	return k
}
