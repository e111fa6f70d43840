// Package dbtest holds behaviour tests shared by every db.KVStore backend.
package dbtest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eigerco/ledgerpay/pkg/db"
)

// Factory opens a fresh, empty store.
type Factory func(t *testing.T) db.KVStore

// Run exercises store, batch and iterator semantics against stores made by newStore.
// closedErr is the backend's error for operations on a closed store.
func Run(t *testing.T, newStore Factory, closedErr error) {
	tests := []struct {
		name string
		fn   func(t *testing.T, store db.KVStore)
	}{
		{name: "basic_put_get", fn: testBasicPutGet},
		{name: "delete_operations", fn: testDelete},
		{name: "store_closure", fn: func(t *testing.T, store db.KVStore) { testStoreClosure(t, store, closedErr) }},
		{name: "basic_batch_operations", fn: testBasicBatchOperations},
		{name: "batch_discarded_on_close", fn: testBatchDiscardedOnClose},
		{name: "multiple_batches", fn: testMultipleBatches},
		{name: "bounded_range_iteration", fn: testBoundedRangeIteration},
		{name: "iterator_validity", fn: testIteratorValidity},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := newStore(t)
			defer store.Close() //nolint:errcheck

			tc.fn(t, store)
		})
	}
}

func testBasicPutGet(t *testing.T, store db.KVStore) {
	key := []byte("account-key")
	value := []byte("account-value")

	err := store.Put(key, value)
	require.NoError(t, err)

	retrieved, err := store.Get(key)
	require.NoError(t, err)
	assert.Equal(t, value, retrieved)

	// Test non-existent key
	_, err = store.Get([]byte("non-existent"))
	assert.ErrorIs(t, err, db.ErrNotFound)
}

func testDelete(t *testing.T, store db.KVStore) {
	key := []byte("delete-test")

	err := store.Put(key, []byte("to-be-deleted"))
	require.NoError(t, err)

	err = store.Delete(key)
	require.NoError(t, err)

	_, err = store.Get(key)
	assert.ErrorIs(t, err, db.ErrNotFound)

	// Delete non-existent key should not error
	err = store.Delete([]byte("non-existent"))
	assert.NoError(t, err)
}

func testStoreClosure(t *testing.T, store db.KVStore, closedErr error) {
	err := store.Close()
	require.NoError(t, err)

	_, err = store.Get([]byte("key"))
	assert.ErrorIs(t, err, closedErr)

	err = store.Put([]byte("key"), []byte("value"))
	assert.ErrorIs(t, err, closedErr)

	err = store.Delete([]byte("key"))
	assert.ErrorIs(t, err, closedErr)

	// Double close should not error
	err = store.Close()
	assert.NoError(t, err)
}

func testBasicBatchOperations(t *testing.T, store db.KVStore) {
	batch := store.NewBatch()
	defer batch.Close() //nolint:errcheck

	keys := [][]byte{[]byte("key1"), []byte("key2"), []byte("key3")}
	values := [][]byte{[]byte("value1"), []byte("value2"), []byte("value3")}

	for i := range keys {
		require.NoError(t, batch.Put(keys[i], values[i]))
	}

	// Nothing is visible before commit
	_, err := store.Get(keys[0])
	assert.ErrorIs(t, err, db.ErrNotFound)

	// Delete one key in the same batch
	require.NoError(t, batch.Delete(keys[1]))
	require.NoError(t, batch.Commit())

	val1, err := store.Get(keys[0])
	require.NoError(t, err)
	assert.Equal(t, values[0], val1)

	_, err = store.Get(keys[1])
	assert.ErrorIs(t, err, db.ErrNotFound)

	val3, err := store.Get(keys[2])
	require.NoError(t, err)
	assert.Equal(t, values[2], val3)

	// Second commit should fail
	assert.Error(t, batch.Commit())
	assert.Error(t, batch.Put([]byte("key4"), []byte("value4")))
}

func testBatchDiscardedOnClose(t *testing.T, store db.KVStore) {
	batch := store.NewBatch()
	require.NoError(t, batch.Put([]byte("staged"), []byte("value")))

	require.NoError(t, batch.Close())
	// Double close should not error
	require.NoError(t, batch.Close())

	_, err := store.Get([]byte("staged"))
	assert.ErrorIs(t, err, db.ErrNotFound)
}

func testMultipleBatches(t *testing.T, store db.KVStore) {
	batch1 := store.NewBatch()
	batch2 := store.NewBatch()
	defer batch1.Close() //nolint:errcheck
	defer batch2.Close() //nolint:errcheck

	require.NoError(t, batch1.Put([]byte("key1"), []byte("batch1")))
	require.NoError(t, batch2.Put([]byte("key2"), []byte("batch2")))

	require.NoError(t, batch1.Commit())
	require.NoError(t, batch2.Commit())

	val1, err := store.Get([]byte("key1"))
	require.NoError(t, err)
	assert.Equal(t, []byte("batch1"), val1)

	val2, err := store.Get([]byte("key2"))
	require.NoError(t, err)
	assert.Equal(t, []byte("batch2"), val2)
}

func testBoundedRangeIteration(t *testing.T, store db.KVStore) {
	data := map[string]string{
		"a": "value-a",
		"b": "value-b",
		"c": "value-c",
		"d": "value-d",
		"e": "value-e",
	}
	for k, v := range data {
		require.NoError(t, store.Put([]byte(k), []byte(v)))
	}

	// Test bounded range iteration (b to d)
	iter, err := store.NewIterator([]byte("b"), []byte("e"))
	require.NoError(t, err)
	defer iter.Close() //nolint:errcheck

	var keys []string
	for iter.Next() {
		value, err := iter.Value()
		require.NoError(t, err)
		assert.Equal(t, data[string(iter.Key())], string(value))
		keys = append(keys, string(iter.Key()))
	}
	assert.Equal(t, []string{"b", "c", "d"}, keys)
}

func testIteratorValidity(t *testing.T, store db.KVStore) {
	testData := map[string]string{
		"key1": "value1",
		"key2": "value2",
	}
	for k, v := range testData {
		require.NoError(t, store.Put([]byte(k), []byte(v)))
	}

	iter, err := store.NewIterator(nil, nil)
	require.NoError(t, err)
	defer iter.Close() //nolint:errcheck

	// Initial state - iterator is not positioned
	assert.False(t, iter.Valid())

	assert.True(t, iter.Next())
	assert.True(t, iter.Valid())
	assert.Equal(t, "key1", string(iter.Key()))

	assert.True(t, iter.Next())
	val, err := iter.Value()
	require.NoError(t, err)
	assert.Equal(t, "value2", string(val))

	// No more elements
	assert.False(t, iter.Next())
	assert.False(t, iter.Valid())

	_, err = iter.Value()
	assert.Error(t, err)
}
