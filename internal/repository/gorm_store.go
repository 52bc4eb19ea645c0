package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Eursukkul/hotel-reservation/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore keeps records of one kind in the records table, one row per key.
type GormStore struct {
	db   *gorm.DB
	kind models.RecordKind
}

var _ RecordStore = (*GormStore)(nil)

func NewGormStore(db *gorm.DB, kind models.RecordKind) *GormStore {
	return &GormStore{db: db, kind: kind}
}

func (s *GormStore) Create(ctx context.Context, key string, fields Fields) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	doc, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	rec := &models.Record{Kind: s.kind, Key: key, Fields: string(doc)}

	// Create overwrites: upsert on the (kind, key) unique index.
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "kind"}, {Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"fields", "updated_at"}),
	}).Create(rec).Error
}

func (s *GormStore) Read(ctx context.Context, key string) (Fields, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	rec, err := s.find(ctx, s.db, key)
	if err != nil {
		return nil, err
	}
	fields := Fields{}
	if err := json.Unmarshal([]byte(rec.Fields), &fields); err != nil {
		return nil, fmt.Errorf("parse %s: %w", key, err)
	}
	return fields, nil
}

func (s *GormStore) Update(ctx context.Context, key string, fields Fields) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rec, err := s.find(ctx, tx.Clauses(clause.Locking{Strength: "UPDATE"}), key)
		if err != nil {
			return err
		}
		current := Fields{}
		if err := json.Unmarshal([]byte(rec.Fields), &current); err != nil {
			return fmt.Errorf("parse %s: %w", key, err)
		}
		current.Merge(fields)
		doc, err := json.Marshal(current)
		if err != nil {
			return fmt.Errorf("encode %s: %w", key, err)
		}
		return tx.WithContext(ctx).
			Model(&models.Record{}).
			Where("id = ?", rec.ID).
			Update("fields", string(doc)).Error
	})
}

func (s *GormStore) Delete(ctx context.Context, key string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	result := s.db.WithContext(ctx).
		Where("kind = ? AND key = ?", s.kind, key).
		Delete(&models.Record{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notFound(key)
	}
	return nil
}

func (s *GormStore) Exists(ctx context.Context, key string) (bool, error) {
	if err := ValidateKey(key); err != nil {
		return false, err
	}
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Record{}).
		Where("kind = ? AND key = ?", s.kind, key).
		Count(&count).Error
	return count > 0, err
}

func (s *GormStore) find(ctx context.Context, db *gorm.DB, key string) (*models.Record, error) {
	var rec models.Record
	err := db.WithContext(ctx).
		Where("kind = ? AND key = ?", s.kind, key).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound(key)
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
