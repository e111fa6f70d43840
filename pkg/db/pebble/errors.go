package pebble

import (
	"errors"

	"github.com/eigerco/ledgerpay/pkg/db"
)

var (
	ErrClosed          = errors.New("kv-store: database is closed")
	ErrNotFound        = db.ErrNotFound
	ErrBatchDone       = errors.New("kv-store: batch already committed or closed")
	ErrIteratorInvalid = errors.New("kv-store: iterator is not positioned")

	ErrInIteratorCreation = "kv-store: create iterator: %w"
	ErrIteratorValue      = "kv-store: iterator value: %w"
)
