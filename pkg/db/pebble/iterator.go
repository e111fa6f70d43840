package pebble

import (
	"bytes"
	"fmt"

	"github.com/cockroachdb/pebble"

	"github.com/eigerco/ledgerpay/pkg/db"
)

// Iterator is a bounded pebble iterator over a consistent view of the store.
type Iterator struct {
	it      *pebble.Iterator
	started bool
}

func (p *KVStore) NewIterator(start, end []byte) (db.Iterator, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return nil, ErrClosed
	}

	it, err := p.db.NewIter(&pebble.IterOptions{LowerBound: start, UpperBound: end})
	if err != nil {
		return nil, fmt.Errorf(ErrInIteratorCreation, err)
	}
	return &Iterator{it: it}, nil
}

func (i *Iterator) Next() bool {
	if i.started {
		return i.it.Next()
	}
	i.started = true
	return i.it.First()
}

func (i *Iterator) Key() []byte {
	return bytes.Clone(i.it.Key())
}

func (i *Iterator) Value() ([]byte, error) {
	if !i.it.Valid() {
		return nil, ErrIteratorInvalid
	}
	v, err := i.it.ValueAndErr()
	if err != nil {
		return nil, fmt.Errorf(ErrIteratorValue, err)
	}
	return bytes.Clone(v), nil
}

func (i *Iterator) Valid() bool {
	return i.it.Valid()
}

func (i *Iterator) Close() error {
	return i.it.Close()
}
