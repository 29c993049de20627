package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/sangkips/shop-pos/internal/domain/entity"
	"github.com/sangkips/shop-pos/pkg/apperror"
)

func seedShop(t *testing.T, store *StateStore) {
	t.Helper()
	seedState(t, store, func(state *entity.State) {
		state.Products = []entity.Product{coffee(7)}
		state.Transactions = []entity.Transaction{
			sale("1", time.Date(2024, 5, 15, 9, 0, 0, 0, time.UTC), 19800, 1800, 2000, 0, 6000, soldItem("coffee", "Iced Coffee", 2, 6000, 18000)),
		}
		state.Settings.ShopName = "Kedai"
		state.Settings.TaxPct = 10
	})
}

func TestBackupRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	seedShop(t, store)
	svc := NewBackupService(store, nil)
	ctx := context.Background()

	data, err := svc.Export(ctx)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	fresh, _ := newTestStore(t)
	summary, err := NewBackupService(fresh, nil).Import(ctx, data)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if summary.Products != 1 || summary.Transactions != 1 || !summary.Settings || len(summary.Keys) != 3 {
		t.Fatalf("unexpected summary %+v", summary)
	}

	got := readState(t, fresh)
	if got.Products[0].Stock != 7 || got.Settings.ShopName != "Kedai" || got.Transactions[0].GrandTotal != 19800 {
		t.Fatalf("restored state differs: %+v", got)
	}
}

func TestBackupImportPartialDocument(t *testing.T) {
	store, _ := newTestStore(t)
	seedShop(t, store)
	svc := NewBackupService(store, nil)

	doc := `{"settings": {"shop_name": "Renamed", "tax_pct": 11, "paper_width": 48, "currency": "IDR"}}`
	summary, err := svc.Import(context.Background(), []byte(doc))
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if len(summary.Keys) != 1 || summary.Keys[0] != entity.StateKeySettings {
		t.Fatalf("expected only settings restored, got %+v", summary)
	}

	got := readState(t, store)
	if got.Settings.ShopName != "Renamed" || got.Settings.PaperWidth != 48 {
		t.Fatalf("settings not restored: %+v", got.Settings)
	}
	if len(got.Products) != 1 || len(got.Transactions) != 1 {
		t.Fatalf("records absent from the document must be kept, got %d products %d transactions", len(got.Products), len(got.Transactions))
	}
}

func TestBackupImportRejectsBadDocuments(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not json", `products: []`},
		{"array", `[1, 2]`},
		{"null", `null`},
		{"empty object", `{}`},
		{"null products", `{"products": null}`},
		{"product without id", `{"products": [{"name": "Tea", "price": 5000}]}`},
		{"duplicate product", `{"products": [{"id": "a", "name": "Tea"}, {"id": "a", "name": "Tea"}]}`},
		{"negative price", `{"products": [{"id": "a", "name": "Tea", "price": -1}]}`},
		{"transaction without id", `{"transactions": [{"grand_total": 100}]}`},
		{"tax out of range", `{"settings": {"shop_name": "x", "tax_pct": 150}}`},
		{"paper width", `{"settings": {"shop_name": "x", "paper_width": 80}}`},
		{"valid products but bad settings", `{"products": [], "settings": {"tax_pct": -1}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, repo := newTestStore(t)
			seedShop(t, store)
			saves := repo.Saves()

			_, err := NewBackupService(store, nil).Import(context.Background(), []byte(tt.doc))
			if !errors.Is(err, apperror.ErrInvalidBackup) {
				t.Fatalf("expected ErrInvalidBackup, got %v", err)
			}
			if repo.Saves() != saves {
				t.Fatal("rejected backup must not write anything")
			}
			got := readState(t, store)
			if len(got.Products) != 1 || got.Settings.ShopName != "Kedai" {
				t.Fatalf("state changed after rejected import: %+v", got)
			}
		})
	}
}

func TestBackupExportIsJSONObject(t *testing.T) {
	store, _ := newTestStore(t)
	data, err := NewBackupService(store, nil).Export(context.Background())
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("export is not a JSON object: %v", err)
	}
	for _, key := range entity.StateKeys {
		if _, ok := doc[key]; !ok {
			t.Errorf("export is missing %q", key)
		}
	}
}
