package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/sangkips/shop-pos/internal/domain/entity"
	domainRepo "github.com/sangkips/shop-pos/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&entity.StateRecord{}, &entity.IdempotencyKey{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func stateRepositories(t *testing.T) map[string]domainRepo.StateRepository {
	return map[string]domainRepo.StateRepository{
		"gorm":   NewStateRepository(newTestDB(t)),
		"memory": NewMemoryStateRepository(),
	}
}

func TestStateRepositoryLoadEmpty(t *testing.T) {
	for name, repo := range stateRepositories(t) {
		t.Run(name, func(t *testing.T) {
			state, err := repo.Load(context.Background())
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if state.Products == nil || state.Transactions == nil {
				t.Fatal("expected non-nil empty slices")
			}
			if state.Settings.PaperWidth != 32 {
				t.Errorf("expected default settings, got %+v", state.Settings)
			}
		})
	}
}

func TestStateRepositorySaveSubset(t *testing.T) {
	ctx := context.Background()
	for name, repo := range stateRepositories(t) {
		t.Run(name, func(t *testing.T) {
			state := entity.NewState()
			state.Products = []entity.Product{{ID: "p1", Name: "Coffee", Price: 15000, Stock: 4}}
			state.Transactions = []entity.Transaction{{ID: "t1", GrandTotal: 15000}}
			if err := repo.Save(ctx, state); err != nil {
				t.Fatalf("Save all: %v", err)
			}

			state.Products[0].Stock = 3
			state.Settings.ShopName = "Kedai Kopi"
			state.Transactions = nil
			if err := repo.Save(ctx, state, entity.StateKeyProducts, entity.StateKeySettings); err != nil {
				t.Fatalf("Save subset: %v", err)
			}

			loaded, err := repo.Load(ctx)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if len(loaded.Products) != 1 || loaded.Products[0].Stock != 3 {
				t.Errorf("expected updated product, got %+v", loaded.Products)
			}
			if len(loaded.Transactions) != 1 || loaded.Transactions[0].ID != "t1" {
				t.Errorf("transactions should be untouched, got %+v", loaded.Transactions)
			}
			if loaded.Settings.ShopName != "Kedai Kopi" {
				t.Errorf("expected saved shop name, got %q", loaded.Settings.ShopName)
			}
		})
	}
}

func TestStateRepositoryRejectsUnknownKey(t *testing.T) {
	for name, repo := range stateRepositories(t) {
		t.Run(name, func(t *testing.T) {
			err := repo.Save(context.Background(), entity.NewState(), entity.StateKeyProducts, "customers")
			if err == nil {
				t.Fatal("expected error for unknown key")
			}
			state, _ := repo.Load(context.Background())
			if len(state.Products) != 0 {
				t.Fatal("nothing should be written when a key is invalid")
			}
		})
	}
}

func TestSettingsKeepDefaultsForMissingFields(t *testing.T) {
	state, err := decodeState([]entity.StateRecord{{Key: entity.StateKeySettings, Value: `{"shop_name":"Warung"}`}})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if state.Settings.ShopName != "Warung" || state.Settings.PaperWidth != 32 {
		t.Fatalf("unexpected settings %+v", state.Settings)
	}
}

func TestIdempotencyRepository(t *testing.T) {
	ctx := context.Background()
	repos := map[string]domainRepo.IdempotencyRepository{
		"gorm":   NewIdempotencyRepository(newTestDB(t)),
		"memory": NewMemoryIdempotencyRepository(),
	}

	for name, repo := range repos {
		t.Run(name, func(t *testing.T) {
			now := time.Now()
			key := &entity.IdempotencyKey{
				Key:          "abc",
				Endpoint:     "POST /api/v1/checkout",
				ResponseCode: 201,
				ResponseBody: `{"success":true}`,
				ExpiresAt:    now.Add(time.Hour),
			}
			if err := repo.Create(ctx, key); err != nil {
				t.Fatalf("Create: %v", err)
			}
			if err := repo.Create(ctx, &entity.IdempotencyKey{Key: "abc", Endpoint: "POST /api/v1/checkout", ExpiresAt: now}); err == nil {
				t.Error("expected duplicate key to be rejected")
			}

			got, err := repo.GetByKey(ctx, "abc", "POST /api/v1/checkout")
			if err != nil || got == nil {
				t.Fatalf("GetByKey: %v %v", got, err)
			}
			if got.ResponseCode != 201 {
				t.Errorf("unexpected response code %d", got.ResponseCode)
			}

			missing, err := repo.GetByKey(ctx, "abc", "POST /api/v1/backup/import")
			if err != nil || missing != nil {
				t.Errorf("expected no key for another endpoint, got %v %v", missing, err)
			}

			if err := repo.DeleteExpired(ctx, now.Add(2*time.Hour)); err != nil {
				t.Fatalf("DeleteExpired: %v", err)
			}
			gone, _ := repo.GetByKey(ctx, "abc", "POST /api/v1/checkout")
			if gone != nil {
				t.Error("expected expired key to be deleted")
			}
		})
	}
}
