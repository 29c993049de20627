package repository

import (
	"context"
	"sync"
	"time"

	"github.com/sangkips/shop-pos/internal/domain/entity"
	domainRepo "github.com/sangkips/shop-pos/internal/domain/repository"
)

// MemoryStateRepository keeps the encoded records in process memory.
// Used by STORE_DRIVER=memory and by service tests.
type MemoryStateRepository struct {
	mu      sync.RWMutex
	records map[string]entity.StateRecord
	saves   int
}

var _ domainRepo.StateRepository = (*MemoryStateRepository)(nil)

// NewMemoryStateRepository creates an empty in-memory state repository
func NewMemoryStateRepository() *MemoryStateRepository {
	return &MemoryStateRepository{records: make(map[string]entity.StateRecord)}
}

func (r *MemoryStateRepository) Load(ctx context.Context) (*entity.State, error) {
	r.mu.RLock()
	records := make([]entity.StateRecord, 0, len(r.records))
	for _, rec := range r.records {
		records = append(records, rec)
	}
	r.mu.RUnlock()
	return decodeState(records)
}

func (r *MemoryStateRepository) Save(ctx context.Context, state *entity.State, keys ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	records, err := encodeState(state, keys, time.Now())
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range records {
		r.records[rec.Key] = rec
	}
	r.saves++
	return nil
}

// Raw returns the stored JSON for key and whether it exists
func (r *MemoryStateRepository) Raw(key string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.records[key]
	return rec.Value, ok
}

// Saves returns how many successful saves happened
func (r *MemoryStateRepository) Saves() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.saves
}
