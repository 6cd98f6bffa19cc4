package goal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/saulo-duarte/accountability-buddy/internal/storage"
)

const DefaultNamespace = "goal-storage"

type Repository interface {
	// Load returns the stored snapshot and its version, or an empty snapshot
	// at version 0 when nothing was saved yet.
	Load(ctx context.Context) (Snapshot, int64, error)
	// Save writes snap over version expected and returns the new version.
	// A concurrent writer makes it fail with storage.ErrVersionConflict.
	Save(ctx context.Context, snap Snapshot, expected int64) (int64, error)
}

type repository struct {
	slots     storage.SlotStore
	namespace string
}

func NewRepository(slots storage.SlotStore, namespace string) Repository {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &repository{slots: slots, namespace: namespace}
}

func (r *repository) Load(ctx context.Context) (Snapshot, int64, error) {
	rec, err := r.slots.Get(ctx, r.namespace)
	if err != nil {
		if errors.Is(err, storage.ErrSlotNotFound) {
			return Snapshot{Goals: []Goal{}}, 0, nil
		}
		return Snapshot{}, 0, fmt.Errorf("load %s: %w", r.namespace, err)
	}

	var snap Snapshot
	if err := json.Unmarshal(rec.Value, &snap); err != nil {
		return Snapshot{}, 0, fmt.Errorf("decode %s: %w", r.namespace, err)
	}
	return snap, rec.Version, nil
}

func (r *repository) Save(ctx context.Context, snap Snapshot, expected int64) (int64, error) {
	raw, err := json.Marshal(snap)
	if err != nil {
		return 0, fmt.Errorf("encode %s: %w", r.namespace, err)
	}
	version, err := r.slots.Put(ctx, r.namespace, raw, expected)
	if err != nil {
		return 0, fmt.Errorf("save %s: %w", r.namespace, err)
	}
	return version, nil
}
