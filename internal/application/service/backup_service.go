package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sangkips/shop-pos/internal/domain/entity"
	"github.com/sangkips/shop-pos/pkg/apperror"
	"github.com/sangkips/shop-pos/pkg/logger"
	"github.com/sirupsen/logrus"
)

// BackupService exports and restores the whole shop as one JSON document
type BackupService struct {
	store *StateStore
	log   *logrus.Logger
}

// NewBackupService creates a new backup service
func NewBackupService(store *StateStore, log *logrus.Logger) *BackupService {
	if log == nil {
		log = logger.Discard()
	}
	return &BackupService{store: store, log: log}
}

// ImportSummary reports which records a restore replaced
type ImportSummary struct {
	Keys         []string `json:"keys"`
	Products     int      `json:"products"`
	Transactions int      `json:"transactions"`
	Settings     bool     `json:"settings"`
}

// Export returns products, transactions and settings as a JSON document
func (s *BackupService) Export(ctx context.Context) ([]byte, error) {
	state, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode backup: %w", err)
	}
	return data, nil
}

// Import restores a backup document. Every record present in the document
// replaces the stored one; absent records are left untouched. A malformed
// or inconsistent document is rejected as a whole with ErrInvalidBackup.
func (s *BackupService) Import(ctx context.Context, data []byte) (*ImportSummary, error) {
	restored, keys, err := parseBackup(data)
	if err != nil {
		s.log.WithError(err).Warn("backup rejected")
		return nil, apperror.ErrInvalidBackup
	}

	err = s.store.Update(ctx, func(state *entity.State) ([]string, error) {
		for _, key := range keys {
			switch key {
			case entity.StateKeyProducts:
				state.Products = restored.Products
			case entity.StateKeyTransactions:
				state.Transactions = restored.Transactions
			case entity.StateKeySettings:
				state.Settings = restored.Settings
			}
		}
		return keys, nil
	})
	if err != nil {
		return nil, err
	}

	summary := &ImportSummary{Keys: keys}
	for _, key := range keys {
		switch key {
		case entity.StateKeyProducts:
			summary.Products = len(restored.Products)
		case entity.StateKeyTransactions:
			summary.Transactions = len(restored.Transactions)
		case entity.StateKeySettings:
			summary.Settings = true
		}
	}

	s.log.WithFields(logrus.Fields{"keys": strings.Join(keys, ","), "products": summary.Products, "transactions": summary.Transactions}).Info("backup restored")
	return summary, nil
}

// parseBackup decodes and checks a backup document, returning the decoded
// state and the keys it carries.
func parseBackup(data []byte) (*entity.State, []string, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, nil, err
	}
	if raw == nil {
		return nil, nil, fmt.Errorf("document is not an object")
	}

	state := entity.NewState()
	keys := []string{}

	if msg, ok := raw[entity.StateKeyProducts]; ok {
		if err := strictDecode(msg, &state.Products); err != nil {
			return nil, nil, fmt.Errorf("products: %w", err)
		}
		if err := checkProducts(state.Products); err != nil {
			return nil, nil, err
		}
		keys = append(keys, entity.StateKeyProducts)
	}
	if msg, ok := raw[entity.StateKeyTransactions]; ok {
		if err := strictDecode(msg, &state.Transactions); err != nil {
			return nil, nil, fmt.Errorf("transactions: %w", err)
		}
		for i, tx := range state.Transactions {
			if strings.TrimSpace(tx.ID) == "" {
				return nil, nil, fmt.Errorf("transaction %d has no id", i)
			}
		}
		keys = append(keys, entity.StateKeyTransactions)
	}
	if msg, ok := raw[entity.StateKeySettings]; ok {
		if bytes.Equal(bytes.TrimSpace(msg), []byte("null")) {
			return nil, nil, fmt.Errorf("settings is null")
		}
		if err := json.Unmarshal(msg, &state.Settings); err != nil {
			return nil, nil, fmt.Errorf("settings: %w", err)
		}
		if state.Settings.TaxPct < 0 || state.Settings.TaxPct > 100 {
			return nil, nil, fmt.Errorf("settings: tax_pct %v out of range", state.Settings.TaxPct)
		}
		if !entity.ValidPaperWidth(state.Settings.PaperWidth) {
			return nil, nil, fmt.Errorf("settings: unsupported paper_width %d", state.Settings.PaperWidth)
		}
		keys = append(keys, entity.StateKeySettings)
	}

	if len(keys) == 0 {
		return nil, nil, fmt.Errorf("document has no products, transactions or settings")
	}
	return state, keys, nil
}

// strictDecode rejects null in place of a list
func strictDecode(msg json.RawMessage, v interface{}) error {
	if bytes.Equal(bytes.TrimSpace(msg), []byte("null")) {
		return fmt.Errorf("value is null")
	}
	return json.Unmarshal(msg, v)
}

func checkProducts(products []entity.Product) error {
	seen := make(map[string]bool, len(products))
	for i, p := range products {
		switch {
		case strings.TrimSpace(p.ID) == "":
			return fmt.Errorf("product %d has no id", i)
		case seen[p.ID]:
			return fmt.Errorf("duplicate product id %s", p.ID)
		case strings.TrimSpace(p.Name) == "":
			return fmt.Errorf("product %s has no name", p.ID)
		case p.Price < 0 || p.Cost < 0 || p.Stock < 0:
			return fmt.Errorf("product %s has a negative price, cost or stock", p.ID)
		}
		seen[p.ID] = true
	}
	return nil
}
