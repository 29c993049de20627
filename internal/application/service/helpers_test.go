package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sangkips/shop-pos/internal/domain/entity"
	infraRepo "github.com/sangkips/shop-pos/internal/infrastructure/repository"
	"github.com/sangkips/shop-pos/pkg/apperror"
)

func newTestStore(t *testing.T) (*StateStore, *infraRepo.MemoryStateRepository) {
	t.Helper()
	repo := infraRepo.NewMemoryStateRepository()
	return NewStateStore(repo), repo
}

func seedState(t *testing.T, store *StateStore, fn func(state *entity.State)) {
	t.Helper()
	err := store.Update(context.Background(), func(state *entity.State) ([]string, error) {
		fn(state)
		return entity.StateKeys, nil
	})
	if err != nil {
		t.Fatalf("seed state: %v", err)
	}
}

func readState(t *testing.T, store *StateStore) *entity.State {
	t.Helper()
	state, err := store.Read(context.Background())
	if err != nil {
		t.Fatalf("read state: %v", err)
	}
	return state
}

func assertStatus(t *testing.T, err error, code int) *apperror.AppError {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with status %d, got nil", code)
	}
	appErr := apperror.GetAppError(err)
	if appErr.Code != code {
		t.Fatalf("expected status %d, got %d (%v)", code, appErr.Code, err)
	}
	return appErr
}

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

type recordingRenderer struct {
	receipts []*entity.Receipt
	err      error
}

func (r *recordingRenderer) Render(ctx context.Context, receipt *entity.Receipt) error {
	r.receipts = append(r.receipts, receipt)
	return r.err
}

var errPrinterOffline = errors.New("printer offline")
