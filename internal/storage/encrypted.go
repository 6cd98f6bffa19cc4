package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/saulo-duarte/accountability-buddy/internal/config"
)

// EncryptedSlotStore seals values with the configured crypto key before
// handing them to the inner store. The sealed value is stored as a JSON
// string so jsonb columns accept it.
type EncryptedSlotStore struct {
	inner SlotStore
}

func NewEncryptedSlotStore(inner SlotStore) *EncryptedSlotStore {
	return &EncryptedSlotStore{inner: inner}
}

func (s *EncryptedSlotStore) Get(ctx context.Context, key string) (Record, error) {
	rec, err := s.inner.Get(ctx, key)
	if err != nil {
		return Record{}, err
	}
	var sealed string
	if err := json.Unmarshal(rec.Value, &sealed); err != nil {
		return Record{}, fmt.Errorf("decode sealed slot %s: %w", key, err)
	}
	plain, err := config.Decrypt(sealed)
	if err != nil {
		return Record{}, fmt.Errorf("decrypt slot %s: %w", key, err)
	}
	return Record{Value: []byte(plain), Version: rec.Version}, nil
}

func (s *EncryptedSlotStore) Put(ctx context.Context, key string, value []byte, expected int64) (int64, error) {
	sealed, err := config.Encrypt(string(value))
	if err != nil {
		return 0, fmt.Errorf("encrypt slot %s: %w", key, err)
	}
	raw, err := json.Marshal(sealed)
	if err != nil {
		return 0, err
	}
	return s.inner.Put(ctx, key, raw, expected)
}
