package repository

import (
	"context"

	"github.com/sangkips/shop-pos/internal/domain/entity"
)

// StateRepository persists the shop state as independent records
// (products, transactions, settings) behind one transactional boundary.
type StateRepository interface {
	// Load reads every record. Missing records come back as their empty defaults.
	Load(ctx context.Context) (*entity.State, error)
	// Save writes the given record keys of state in a single transaction.
	// With no keys every record is written.
	Save(ctx context.Context, state *entity.State, keys ...string) error
}
