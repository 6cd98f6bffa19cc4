package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Slot struct {
	Key       string         `gorm:"primaryKey;type:text"`
	Value     datatypes.JSON `gorm:"type:jsonb;not null"`
	Version   int64          `gorm:"not null;default:1"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
}

func (Slot) TableName() string {
	return "kv_slots"
}

// GormSlotStore keeps slots in the kv_slots table.
type GormSlotStore struct {
	db *gorm.DB
}

func NewGormSlotStore(db *gorm.DB) (*GormSlotStore, error) {
	if err := db.AutoMigrate(&Slot{}); err != nil {
		return nil, fmt.Errorf("migrate kv_slots: %w", err)
	}
	return &GormSlotStore{db: db}, nil
}

func (s *GormSlotStore) Get(ctx context.Context, key string) (Record, error) {
	var slot Slot
	if err := s.db.WithContext(ctx).First(&slot, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Record{}, ErrSlotNotFound
		}
		return Record{}, err
	}
	return Record{Value: []byte(slot.Value), Version: slot.Version}, nil
}

func (s *GormSlotStore) Put(ctx context.Context, key string, value []byte, expected int64) (int64, error) {
	db := s.db.WithContext(ctx)

	var res *gorm.DB
	if expected == 0 {
		slot := Slot{
			Key:       key,
			Value:     datatypes.JSON(value),
			Version:   1,
			UpdatedAt: time.Now(),
		}
		res = db.Clauses(clause.OnConflict{DoNothing: true}).Create(&slot)
	} else {
		res = db.Model(&Slot{}).
			Where("key = ? AND version = ?", key, expected).
			Updates(map[string]interface{}{
				"value":      datatypes.JSON(value),
				"version":    gorm.Expr("version + 1"),
				"updated_at": time.Now(),
			})
	}
	if res.Error != nil {
		return 0, fmt.Errorf("write slot %s: %w", key, res.Error)
	}
	if res.RowsAffected == 0 {
		return 0, ErrVersionConflict
	}
	return expected + 1, nil
}
