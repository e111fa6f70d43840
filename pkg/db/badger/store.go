// Package badger provides a db.KVStore backed by badger, selectable in place of pebble.
package badger

import (
	"bytes"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/dgraph-io/badger/v4"

	"github.com/eigerco/ledgerpay/pkg/db"
)

var (
	ErrClosed          = errors.New("badger-store: database is closed")
	ErrBatchDone       = errors.New("badger-store: batch already committed or closed")
	ErrIteratorInvalid = errors.New("badger-store: iterator is not positioned")
)

var _ db.KVStore = (*KVStore)(nil)

type KVStore struct {
	db     *badger.DB
	closed bool
	mu     sync.RWMutex
}

// NewInMemory opens a store that keeps everything in memory.
func NewInMemory() (*KVStore, error) {
	return open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
}

// Open opens (or creates) an on-disk store in dir.
func Open(dir string) (*KVStore, error) {
	return open(badger.DefaultOptions(dir).WithLogger(nil))
}

func open(opts badger.Options) (*KVStore, error) {
	bdb, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &KVStore{db: bdb}, nil
}

func (s *KVStore) Get(key []byte) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrClosed
	}

	var value []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, db.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

func (s *KVStore) Put(key, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, value)
	})
}

func (s *KVStore) Delete(key []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key)
	})
}

func (s *KVStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

// Batch stages writes in a single badger update transaction.
type Batch struct {
	txn  *badger.Txn
	done atomic.Bool
}

func (s *KVStore) NewBatch() db.Batch {
	return &Batch{txn: s.db.NewTransaction(true)}
}

func (b *Batch) Put(key, value []byte) error {
	if b.done.Load() {
		return ErrBatchDone
	}
	// badger keeps references to the slices until commit
	return b.txn.Set(bytes.Clone(key), bytes.Clone(value))
}

func (b *Batch) Delete(key []byte) error {
	if b.done.Load() {
		return ErrBatchDone
	}
	return b.txn.Delete(bytes.Clone(key))
}

func (b *Batch) Commit() error {
	if !b.done.CompareAndSwap(false, true) {
		return ErrBatchDone
	}
	return b.txn.Commit()
}

func (b *Batch) Close() error {
	if !b.done.CompareAndSwap(false, true) {
		return nil
	}
	b.txn.Discard()
	return nil
}

// Iterator walks [start, end) inside a read-only transaction.
type Iterator struct {
	txn     *badger.Txn
	iter    *badger.Iterator
	start   []byte
	end     []byte
	started bool
}

func (s *KVStore) NewIterator(start, end []byte) (db.Iterator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrClosed
	}

	txn := s.db.NewTransaction(false)
	return &Iterator{
		txn:   txn,
		iter:  txn.NewIterator(badger.DefaultIteratorOptions),
		start: start,
		end:   end,
	}, nil
}

func (it *Iterator) Next() bool {
	if !it.started {
		it.started = true
		it.iter.Seek(it.start)
	} else if it.iter.Valid() {
		it.iter.Next()
	}
	return it.Valid()
}

func (it *Iterator) Key() []byte {
	return it.iter.Item().KeyCopy(nil)
}

func (it *Iterator) Value() ([]byte, error) {
	if !it.Valid() {
		return nil, ErrIteratorInvalid
	}
	return it.iter.Item().ValueCopy(nil)
}

func (it *Iterator) Valid() bool {
	if !it.started || !it.iter.Valid() {
		return false
	}
	return it.end == nil || bytes.Compare(it.iter.Item().Key(), it.end) < 0
}

func (it *Iterator) Close() error {
	it.iter.Close()
	it.txn.Discard()
	return nil
}
