package kvstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/pathakanu/healthAI/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore keeps entries in the entries table of a GORM database.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore wraps an already migrated database.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Get(ctx context.Context, key string) ([]byte, error) {
	var entry model.Entry
	err := s.db.WithContext(ctx).Where(&model.Entry{Key: key}).Take(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("kvstore: get %q: %w", key, err)
	}
	return entry.Value, nil
}

func (s *GormStore) Put(ctx context.Context, key string, value []byte) error {
	entry := model.Entry{Key: key, Value: value}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("kvstore: put %q: %w", key, err)
	}
	return nil
}

var _ Store = (*GormStore)(nil)
