package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sangkips/shop-pos/internal/domain/entity"
	domainRepo "github.com/sangkips/shop-pos/internal/domain/repository"
	"gorm.io/gorm"
)

type idempotencyRepository struct {
	db *gorm.DB
}

// NewIdempotencyRepository creates a new idempotency repository
func NewIdempotencyRepository(db *gorm.DB) domainRepo.IdempotencyRepository {
	return &idempotencyRepository{db: db}
}

func (r *idempotencyRepository) GetByKey(ctx context.Context, key, endpoint string) (*entity.IdempotencyKey, error) {
	var ikey entity.IdempotencyKey
	err := r.db.WithContext(ctx).
		Where(&entity.IdempotencyKey{Key: key, Endpoint: endpoint}).
		First(&ikey).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &ikey, err
}

func (r *idempotencyRepository) Create(ctx context.Context, ikey *entity.IdempotencyKey) error {
	return r.db.WithContext(ctx).Create(ikey).Error
}

func (r *idempotencyRepository) DeleteExpired(ctx context.Context, before time.Time) error {
	return r.db.WithContext(ctx).
		Where("expires_at < ?", before).
		Delete(&entity.IdempotencyKey{}).Error
}

type memoryIdempotencyRepository struct {
	mu   sync.Mutex
	keys map[string]entity.IdempotencyKey
}

// NewMemoryIdempotencyRepository creates an idempotency repository held in memory
func NewMemoryIdempotencyRepository() domainRepo.IdempotencyRepository {
	return &memoryIdempotencyRepository{keys: make(map[string]entity.IdempotencyKey)}
}

func (r *memoryIdempotencyRepository) GetByKey(ctx context.Context, key, endpoint string) (*entity.IdempotencyKey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ikey, ok := r.keys[endpoint+" "+key]
	if !ok {
		return nil, nil
	}
	return &ikey, nil
}

func (r *memoryIdempotencyRepository) Create(ctx context.Context, ikey *entity.IdempotencyKey) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := ikey.Endpoint + " " + ikey.Key
	if _, exists := r.keys[id]; exists {
		return errors.New("idempotency key already exists")
	}
	if ikey.CreatedAt.IsZero() {
		ikey.CreatedAt = time.Now()
	}
	r.keys[id] = *ikey
	return nil
}

func (r *memoryIdempotencyRepository) DeleteExpired(ctx context.Context, before time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, ikey := range r.keys {
		if ikey.ExpiresAt.Before(before) {
			delete(r.keys, id)
		}
	}
	return nil
}
