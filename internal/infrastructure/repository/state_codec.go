package repository

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/sangkips/shop-pos/internal/domain/entity"
)

// encodeState serializes the requested keys of state into records.
// An empty key list selects every record.
func encodeState(state *entity.State, keys []string, now time.Time) ([]entity.StateRecord, error) {
	if len(keys) == 0 {
		keys = entity.StateKeys
	}

	records := make([]entity.StateRecord, 0, len(keys))
	seen := make(map[string]bool, len(keys))
	for _, key := range keys {
		if seen[key] {
			continue
		}
		seen[key] = true

		var value interface{}
		switch key {
		case entity.StateKeyProducts:
			value = nonNilProducts(state.Products)
		case entity.StateKeyTransactions:
			value = nonNilTransactions(state.Transactions)
		case entity.StateKeySettings:
			value = state.Settings
		default:
			return nil, fmt.Errorf("unknown state key %q", key)
		}

		data, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s: %w", key, err)
		}
		records = append(records, entity.StateRecord{Key: key, Value: string(data), UpdatedAt: now})
	}
	return records, nil
}

// decodeState rebuilds the shop from stored records. Unknown keys are ignored.
func decodeState(records []entity.StateRecord) (*entity.State, error) {
	state := entity.NewState()
	for _, rec := range records {
		var err error
		switch rec.Key {
		case entity.StateKeyProducts:
			err = json.Unmarshal([]byte(rec.Value), &state.Products)
			state.Products = nonNilProducts(state.Products)
		case entity.StateKeyTransactions:
			err = json.Unmarshal([]byte(rec.Value), &state.Transactions)
			state.Transactions = nonNilTransactions(state.Transactions)
		case entity.StateKeySettings:
			err = json.Unmarshal([]byte(rec.Value), &state.Settings)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", rec.Key, err)
		}
	}
	return state, nil
}

func nonNilProducts(p []entity.Product) []entity.Product {
	if p == nil {
		return []entity.Product{}
	}
	return p
}

func nonNilTransactions(t []entity.Transaction) []entity.Transaction {
	if t == nil {
		return []entity.Transaction{}
	}
	return t
}
