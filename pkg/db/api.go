// Package db defines the key-value storage the ledger persists accounts in. Backends live
// in subpackages and share ErrNotFound and the conformance suite in dbtest.
package db

import "errors"

// ErrNotFound is returned by every backend when a key is absent.
var ErrNotFound = errors.New("kv-store: key not found")

// Reader is the read side of a store.
type Reader interface {
	// Get returns a copy of the value stored under key, or ErrNotFound.
	Get(key []byte) ([]byte, error)
	// NewIterator walks keys in [start, end) in ascending order.
	NewIterator(start, end []byte) (Iterator, error)
}

// Writer mutates keys directly or as part of a Batch.
type Writer interface {
	Put(key, value []byte) error
	Delete(key []byte) error
}

// KVStore is a durable, ordered key-value store.
type KVStore interface {
	Reader
	Writer
	// NewBatch starts an atomic write set.
	NewBatch() Batch
	Close() error
}

// Batch stages writes that become visible together on Commit or not at all.
// Close after Commit is a no-op; Close without Commit discards the writes.
type Batch interface {
	Writer
	Commit() error
	Close() error
}

// Iterator must be advanced with Next before the first Key or Value and closed after use.
type Iterator interface {
	Next() bool
	Key() []byte
	Value() ([]byte, error)
	Valid() bool
	Close() error
}
