package pebble

import (
	"sync/atomic"

	"github.com/cockroachdb/pebble"

	"github.com/eigerco/ledgerpay/pkg/db"
)

// Batch is a pebble write batch. Commit syncs to disk before returning.
type Batch struct {
	store *KVStore
	b     *pebble.Batch
	done  atomic.Bool
}

func (p *KVStore) NewBatch() db.Batch {
	return &Batch{store: p, b: p.db.NewBatch()}
}

func (b *Batch) Put(key, value []byte) error {
	if b.done.Load() {
		return ErrBatchDone
	}
	return b.b.Set(key, value, nil)
}

func (b *Batch) Delete(key []byte) error {
	if b.done.Load() {
		return ErrBatchDone
	}
	return b.b.Delete(key, nil)
}

func (b *Batch) Commit() error {
	if !b.done.CompareAndSwap(false, true) {
		return ErrBatchDone
	}
	defer b.b.Close() //nolint:errcheck

	b.store.mu.RLock()
	defer b.store.mu.RUnlock()
	if b.store.closed {
		return ErrClosed
	}
	return b.b.Commit(pebble.Sync)
}

func (b *Batch) Close() error {
	if !b.done.CompareAndSwap(false, true) {
		return nil
	}
	return b.b.Close()
}
