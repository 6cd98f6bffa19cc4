package storage

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/saulo-duarte/accountability-buddy/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySlotStore_CopiesValues(t *testing.T) {
	store := NewMemorySlotStore()
	ctx := context.Background()

	value := []byte(`{"a":1}`)
	_, err := store.Put(ctx, "k", value, 0)
	require.NoError(t, err)
	value[2] = 'b'

	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(got.Value))

	_, err = store.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestMemorySlotStore_CompareAndSwap(t *testing.T) {
	store := NewMemorySlotStore()
	ctx := context.Background()

	v1, err := store.Put(ctx, "k", []byte(`1`), 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), v1)

	_, err = store.Put(ctx, "k", []byte(`x`), 0)
	assert.ErrorIs(t, err, ErrVersionConflict)

	v2, err := store.Put(ctx, "k", []byte(`2`), v1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), v2)

	_, err = store.Put(ctx, "k", []byte(`stale`), v1)
	assert.ErrorIs(t, err, ErrVersionConflict)

	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, Record{Value: []byte(`2`), Version: 2}, got)
}

func TestEncryptedSlotStore_RoundTrip(t *testing.T) {
	t.Setenv("CRYPTO_KEY", "01234567890123456789012345678901")
	config.InitCrypto()

	inner := NewMemorySlotStore()
	store := NewEncryptedSlotStore(inner)
	ctx := context.Background()

	plain := `{"goals":[{"title":"Run 5k"}],"streak":3}`
	version, err := store.Put(ctx, "goal-storage", []byte(plain), 0)
	require.NoError(t, err)

	raw, err := inner.Get(ctx, "goal-storage")
	require.NoError(t, err)
	assert.NotContains(t, string(raw.Value), "Run 5k")

	var sealed string
	require.NoError(t, json.Unmarshal(raw.Value, &sealed), "sealed value must be a JSON string")

	got, err := store.Get(ctx, "goal-storage")
	require.NoError(t, err)
	assert.Equal(t, plain, string(got.Value))
	assert.Equal(t, version, got.Version)

	_, err = store.Put(ctx, "goal-storage", []byte(plain), 0)
	assert.ErrorIs(t, err, ErrVersionConflict)
}

func TestEncryptedSlotStore_MissingPassesThrough(t *testing.T) {
	store := NewEncryptedSlotStore(NewMemorySlotStore())

	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrSlotNotFound)
}
