package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/sangkips/shop-pos/internal/domain/entity"
	domainRepo "github.com/sangkips/shop-pos/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type stateRepository struct {
	db *gorm.DB
}

// NewStateRepository creates a new state repository
func NewStateRepository(db *gorm.DB) domainRepo.StateRepository {
	return &stateRepository{db: db}
}

func (r *stateRepository) Load(ctx context.Context) (*entity.State, error) {
	var records []entity.StateRecord
	if err := r.db.WithContext(ctx).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to load state: %w", err)
	}
	return decodeState(records)
}

func (r *stateRepository) Save(ctx context.Context, state *entity.State, keys ...string) error {
	records, err := encodeState(state, keys, time.Now())
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range records {
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "key"}},
				DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
			}).Create(&records[i]).Error
			if err != nil {
				return fmt.Errorf("failed to save %s: %w", records[i].Key, err)
			}
		}
		return nil
	})
}
