package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLiteStore(t *testing.T) *SQLiteSlotStore {
	t.Helper()
	store, err := NewSQLiteSlotStore(filepath.Join(t.TempDir(), "slots.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteSlotStore_GetMissing(t *testing.T) {
	store := newTestSQLiteStore(t)

	_, err := store.Get(context.Background(), "goal-storage")
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestSQLiteSlotStore_PutAdvancesVersion(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()

	v1, err := store.Put(ctx, "goal-storage", []byte(`{"streak":1}`), 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), v1)

	v2, err := store.Put(ctx, "goal-storage", []byte(`{"streak":2}`), v1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), v2)

	_, err = store.Put(ctx, "other", []byte(`{}`), 0)
	require.NoError(t, err)

	got, err := store.Get(ctx, "goal-storage")
	require.NoError(t, err)
	assert.JSONEq(t, `{"streak":2}`, string(got.Value))
	assert.Equal(t, int64(2), got.Version)
}

func TestSQLiteSlotStore_StaleWriteConflicts(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()

	v1, err := store.Put(ctx, "k", []byte(`"first"`), 0)
	require.NoError(t, err)
	_, err = store.Put(ctx, "k", []byte(`"second"`), v1)
	require.NoError(t, err)

	_, err = store.Put(ctx, "k", []byte(`"stale"`), v1)
	assert.ErrorIs(t, err, ErrVersionConflict)

	_, err = store.Put(ctx, "k", []byte(`"again"`), 0)
	assert.ErrorIs(t, err, ErrVersionConflict)

	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `"second"`, string(got.Value))
}

func TestSQLiteSlotStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slots.db")
	ctx := context.Background()

	first, err := NewSQLiteSlotStore(path)
	require.NoError(t, err)
	_, err = first.Put(ctx, "k", []byte(`[1,2,3]`), 0)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := NewSQLiteSlotStore(path)
	require.NoError(t, err)
	defer second.Close()

	got, err := second.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `[1,2,3]`, string(got.Value))
	assert.Equal(t, int64(1), got.Version)
}
