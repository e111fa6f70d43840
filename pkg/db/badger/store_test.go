package badger

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/eigerco/ledgerpay/pkg/db"
	"github.com/eigerco/ledgerpay/pkg/db/dbtest"
)

func TestKVStore(t *testing.T) {
	dbtest.Run(t, func(t *testing.T) db.KVStore {
		store, err := NewInMemory()
		require.NoError(t, err)
		return store
	}, ErrClosed)
}

func TestOpenPersists(t *testing.T) {
	dir := t.TempDir()

	store, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, store.Put([]byte("state"), []byte{7}))
	require.NoError(t, store.Close())

	store, err = Open(dir)
	require.NoError(t, err)
	defer store.Close() //nolint:errcheck

	value, err := store.Get([]byte("state"))
	require.NoError(t, err)
	require.Equal(t, []byte{7}, value)
}
