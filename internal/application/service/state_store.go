package service

import (
	"context"
	"sync"

	"github.com/sangkips/shop-pos/internal/domain/entity"
	"github.com/sangkips/shop-pos/internal/domain/repository"
)

// StateStore serializes every read-modify-write cycle on the shop state.
// Services never talk to the StateRepository directly.
type StateStore struct {
	mu   sync.Mutex
	repo repository.StateRepository
}

// NewStateStore creates a new state store
func NewStateStore(repo repository.StateRepository) *StateStore {
	return &StateStore{repo: repo}
}

// Read returns a private copy of the current state.
func (s *StateStore) Read(ctx context.Context) (*entity.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.Load(ctx)
}

// Update loads the state and hands it to fn. fn returns the record keys it
// changed; those are saved in one transaction. When fn fails, or returns no
// keys, nothing is written.
func (s *StateStore) Update(ctx context.Context, fn func(state *entity.State) ([]string, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}

	keys, err := fn(state)
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return s.repo.Save(ctx, state, keys...)
}
