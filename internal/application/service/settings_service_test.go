package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/sangkips/shop-pos/internal/domain/entity"
	"github.com/sangkips/shop-pos/pkg/apperror"
	"github.com/sangkips/shop-pos/pkg/utils"
)

func strPtr(s string) *string    { return &s }
func intPtr(i int) *int          { return &i }
func floatPtr(f float64) *float64 { return &f }

func TestGetSettingsDefaults(t *testing.T) {
	store, _ := newTestStore(t)
	svc := NewSettingsService(store, nil)

	st, err := svc.GetSettings(context.Background())
	if err != nil {
		t.Fatalf("GetSettings: %v", err)
	}
	if *st != entity.DefaultSettings() {
		t.Fatalf("expected default settings, got %+v", st)
	}
}

func TestUpdateSettingsPartial(t *testing.T) {
	store, repo := newTestStore(t)
	svc := NewSettingsService(store, nil)
	ctx := context.Background()

	st, err := svc.UpdateSettings(ctx, &UpdateSettingsInput{
		ShopName: strPtr("  Kedai Kopi  "),
		TaxPct:   floatPtr(11),
		Currency: strPtr("usd"),
	})
	if err != nil {
		t.Fatalf("UpdateSettings: %v", err)
	}
	if st.ShopName != "Kedai Kopi" || st.TaxPct != 11 || st.Currency != "USD" {
		t.Fatalf("unexpected settings %+v", st)
	}
	if st.PaperWidth != 32 || st.LowStockThreshold != 5 {
		t.Fatalf("untouched fields changed: %+v", st)
	}
	if _, ok := repo.Raw(entity.StateKeySettings); !ok {
		t.Fatal("expected settings record to be saved")
	}

	st, _ = svc.UpdateSettings(ctx, &UpdateSettingsInput{TaxPct: floatPtr(0)})
	if st.TaxPct != 0 || st.ShopName != "Kedai Kopi" {
		t.Fatalf("expected tax cleared and name kept, got %+v", st)
	}
}

func TestUpdateSettingsValidation(t *testing.T) {
	store, _ := newTestStore(t)
	svc := NewSettingsService(store, nil)

	tests := []struct {
		name  string
		input UpdateSettingsInput
		field string
	}{
		{"tax above 100", UpdateSettingsInput{TaxPct: floatPtr(101)}, "tax_pct"},
		{"negative tax", UpdateSettingsInput{TaxPct: floatPtr(-1)}, "tax_pct"},
		{"paper width", UpdateSettingsInput{PaperWidth: intPtr(40)}, "paper_width"},
		{"blank shop name", UpdateSettingsInput{ShopName: strPtr("   ")}, "shop_name"},
		{"negative threshold", UpdateSettingsInput{LowStockThreshold: intPtr(-2)}, "low_stock_threshold"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := assertStatus(t, func() error {
				_, err := svc.UpdateSettings(context.Background(), &tt.input)
				return err
			}(), http.StatusUnprocessableEntity)
			if len(appErr.Errors) != 1 || appErr.Errors[0].Field != tt.field {
				t.Fatalf("expected error on %s, got %+v", tt.field, appErr.Errors)
			}
		})
	}

	st := readState(t, store).Settings
	if st != entity.DefaultSettings() {
		t.Fatalf("rejected updates must not change settings, got %+v", st)
	}
}

func TestManagerPINLogin(t *testing.T) {
	store, _ := newTestStore(t)
	settings := NewSettingsService(store, nil)
	auth := NewAuthService(store, utils.NewJWTManager("test-secret", time.Hour, "shop-pos"))
	ctx := context.Background()

	_, err := auth.Login(ctx, "1234")
	assertStatus(t, err, http.StatusBadRequest)
	if locked, _ := auth.Locked(ctx); locked {
		t.Fatal("expected unlocked back office without a PIN")
	}

	err = settings.SetManagerPIN(ctx, &SetManagerPINInput{PIN: "12a4"})
	assertStatus(t, err, http.StatusUnprocessableEntity)

	if err := settings.SetManagerPIN(ctx, &SetManagerPINInput{PIN: "4321"}); err != nil {
		t.Fatalf("SetManagerPIN: %v", err)
	}
	stored := readState(t, store).Settings.ManagerPINHash
	if stored == "" || stored == "4321" {
		t.Fatalf("expected a hashed PIN, got %q", stored)
	}
	if locked, _ := auth.Locked(ctx); !locked {
		t.Fatal("expected back office locked once a PIN is set")
	}

	if _, err := auth.Login(ctx, "0000"); !errors.Is(err, apperror.ErrInvalidPIN) {
		t.Fatalf("expected ErrInvalidPIN, got %v", err)
	}

	out, err := auth.Login(ctx, "4321")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if out.TokenType != "Bearer" || out.Role != utils.RoleManager {
		t.Fatalf("unexpected login output %+v", out)
	}
	claims, err := auth.ValidateToken(out.AccessToken)
	if err != nil || claims.Role != utils.RoleManager {
		t.Fatalf("expected valid manager token, got %+v %v", claims, err)
	}
	if _, err := auth.ValidateToken(out.AccessToken + "x"); !errors.Is(err, apperror.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for a tampered token, got %v", err)
	}

	if err := settings.SetManagerPIN(ctx, &SetManagerPINInput{}); err != nil {
		t.Fatalf("clear PIN: %v", err)
	}
	if locked, _ := auth.Locked(ctx); locked {
		t.Fatal("expected unlocked back office after clearing the PIN")
	}
}

func TestManagerPINLoginBackoff(t *testing.T) {
	store, _ := newTestStore(t)
	settings := NewSettingsService(store, nil)
	auth := NewAuthService(store, utils.NewJWTManager("test-secret", time.Hour, "shop-pos"))
	clock := time.Date(2024, 5, 15, 9, 0, 0, 0, time.UTC)
	auth.now = func() time.Time { return clock }
	ctx := context.Background()

	if err := settings.SetManagerPIN(ctx, &SetManagerPINInput{PIN: "4321"}); err != nil {
		t.Fatalf("SetManagerPIN: %v", err)
	}

	for i := 0; i < FreePINAttempts; i++ {
		if _, err := auth.Login(ctx, "0000"); !errors.Is(err, apperror.ErrInvalidPIN) {
			t.Fatalf("attempt %d: expected ErrInvalidPIN, got %v", i+1, err)
		}
	}

	// even the right PIN waits out the pause
	_, err := auth.Login(ctx, "4321")
	appErr := assertStatus(t, err, http.StatusTooManyRequests)
	if appErr.RetryAfter != MinPINLockout {
		t.Fatalf("expected a %v pause, got %v", MinPINLockout, appErr.RetryAfter)
	}

	clock = clock.Add(MinPINLockout)
	if _, err := auth.Login(ctx, "0000"); !errors.Is(err, apperror.ErrInvalidPIN) {
		t.Fatalf("expected the PIN to be checked after the pause, got %v", err)
	}
	_, err = auth.Login(ctx, "4321")
	appErr = assertStatus(t, err, http.StatusTooManyRequests)
	if appErr.RetryAfter != 2*MinPINLockout {
		t.Fatalf("expected the pause to double, got %v", appErr.RetryAfter)
	}

	clock = clock.Add(2 * MinPINLockout)
	if _, err := auth.Login(ctx, "4321"); err != nil {
		t.Fatalf("expected login after the pause, got %v", err)
	}
	if _, err := auth.Login(ctx, "0000"); !errors.Is(err, apperror.ErrInvalidPIN) {
		t.Fatalf("expected the failure count to reset after a good login, got %v", err)
	}
}

func TestPINLockoutGrowth(t *testing.T) {
	tests := []struct {
		failures int
		want     time.Duration
	}{
		{FreePINAttempts, MinPINLockout},
		{FreePINAttempts + 1, 2 * MinPINLockout},
		{FreePINAttempts + 3, 8 * MinPINLockout},
		{FreePINAttempts + 50, MaxPINLockout},
	}
	for _, tt := range tests {
		if got := pinLockout(tt.failures); got != tt.want {
			t.Errorf("pinLockout(%d) = %v, want %v", tt.failures, got, tt.want)
		}
	}
}
