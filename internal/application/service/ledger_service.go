package service

import (
	"context"
	"sort"
	"time"

	"github.com/sangkips/shop-pos/internal/domain/entity"
	"github.com/sangkips/shop-pos/pkg/apperror"
	"github.com/sangkips/shop-pos/pkg/pagination"
)

// LedgerService exposes the append-only transaction history
type LedgerService struct {
	store *StateStore
}

// NewLedgerService creates a new ledger service
func NewLedgerService(store *StateStore) *LedgerService {
	return &LedgerService{store: store}
}

// TransactionFilter narrows ledger listings. From is inclusive, To exclusive.
type TransactionFilter struct {
	From       *time.Time
	To         *time.Time
	Pagination *pagination.PaginationParams
}

// Append adds a completed sale to the ledger of a state that is being
// updated. It returns the record key that must be saved.
func (s *LedgerService) Append(state *entity.State, tx entity.Transaction) string {
	state.Transactions = append(state.Transactions, tx)
	return entity.StateKeyTransactions
}

// ListTransactions returns transactions newest first
func (s *LedgerService) ListTransactions(ctx context.Context, filter TransactionFilter) (*pagination.PaginatedResult[entity.Transaction], error) {
	state, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]entity.Transaction, 0, len(state.Transactions))
	for _, tx := range state.Transactions {
		if filter.From != nil && tx.Timestamp.Before(*filter.From) {
			continue
		}
		if filter.To != nil && !tx.Timestamp.Before(*filter.To) {
			continue
		}
		matched = append(matched, tx)
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Timestamp.After(matched[j].Timestamp)
	})

	return pagination.Slice(matched, filter.Pagination), nil
}

// GetTransaction retrieves a transaction by its ID or receipt number
func (s *LedgerService) GetTransaction(ctx context.Context, id string) (*entity.Transaction, error) {
	state, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}
	for i := range state.Transactions {
		if state.Transactions[i].ID == id || state.Transactions[i].ReceiptNo == id {
			tx := state.Transactions[i]
			return &tx, nil
		}
	}
	return nil, apperror.NewNotFoundError("Transaction")
}
