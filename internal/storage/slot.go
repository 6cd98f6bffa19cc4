// Package storage provides durable key-value slots. Each slot holds one
// JSON document under a fixed key, guarded by a version number.
package storage

import (
	"context"
	"errors"
	"sync"
)

var (
	ErrSlotNotFound    = errors.New("slot not found")
	ErrVersionConflict = errors.New("slot was written by someone else")
)

// Record is a stored value and its version. The first write of a key
// produces version 1; every later write adds one.
type Record struct {
	Value   []byte
	Version int64
}

type SlotStore interface {
	Get(ctx context.Context, key string) (Record, error)
	// Put stores value only if the slot is still at version expected (0 when
	// the slot must not exist yet) and returns the new version. Otherwise it
	// fails with ErrVersionConflict and leaves the slot untouched.
	Put(ctx context.Context, key string, value []byte, expected int64) (int64, error)
}

type MemorySlotStore struct {
	mu    sync.RWMutex
	slots map[string]Record
}

func NewMemorySlotStore() *MemorySlotStore {
	return &MemorySlotStore{slots: make(map[string]Record)}
}

func (m *MemorySlotStore) Get(_ context.Context, key string) (Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.slots[key]
	if !ok {
		return Record{}, ErrSlotNotFound
	}
	return Record{Value: append([]byte(nil), rec.Value...), Version: rec.Version}, nil
}

func (m *MemorySlotStore) Put(_ context.Context, key string, value []byte, expected int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.slots[key].Version != expected {
		return 0, ErrVersionConflict
	}
	next := expected + 1
	m.slots[key] = Record{Value: append([]byte(nil), value...), Version: next}
	return next, nil
}
