package pebble

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eigerco/ledgerpay/pkg/db"
	"github.com/eigerco/ledgerpay/pkg/db/dbtest"
	"github.com/eigerco/ledgerpay/pkg/log"
)

func TestKVStore(t *testing.T) {
	dbtest.Run(t, func(t *testing.T) db.KVStore {
		store, err := NewKVStore()
		require.NoError(t, err)
		return store
	}, ErrClosed)
}

func TestOpenPersists(t *testing.T) {
	dir := t.TempDir()

	store, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, store.Put([]byte("state"), []byte{1, 2, 3}))
	require.NoError(t, store.Close())

	store, err = Open(dir)
	require.NoError(t, err)
	defer store.Close() //nolint:errcheck

	value, err := store.Get([]byte("state"))
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3}, value)
}

func TestEngineLogsGoToStoreLogger(t *testing.T) {
	dir := t.TempDir()
	store, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, store.Put([]byte("state"), []byte{1}))
	require.NoError(t, store.Close())

	buf := &bytes.Buffer{}
	log.Init(log.Options{LogLevel: zerolog.DebugLevel, Type: log.JSONLogger, Output: buf})
	t.Cleanup(func() { log.Init(log.Options{LogLevel: zerolog.Disabled, Type: log.JSONLogger, Output: &bytes.Buffer{}}) })

	// Reopening replays the WAL written above.
	store, err = Open(dir)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	assert.Contains(t, buf.String(), `"component":"store"`)
	assert.Contains(t, buf.String(), `"engine":"pebble"`)
}

func TestLoggerTrimsNewline(t *testing.T) {
	assert.Equal(t, "[JOB 1] replayed", message("[JOB %d] replayed\n", []interface{}{1}))
}
