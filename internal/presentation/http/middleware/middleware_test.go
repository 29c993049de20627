package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/shop-pos/pkg/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeSessions struct {
	locked bool
	role   string
}

func (f *fakeSessions) Locked(ctx context.Context) (bool, error) { return f.locked, nil }

func (f *fakeSessions) ValidateToken(token string) (*utils.JWTClaims, error) {
	if token != "good" {
		return nil, errors.New("invalid token")
	}
	return &utils.JWTClaims{Role: f.role}, nil
}

func serve(r *gin.Engine, method, path, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestManagerAuth(t *testing.T) {
	tests := []struct {
		name   string
		locked bool
		role   string
		auth   string
		code   int
	}{
		{"unlocked without token", false, "", "", http.StatusOK},
		{"locked without token", true, utils.RoleManager, "", http.StatusUnauthorized},
		{"malformed header", true, utils.RoleManager, "Token good", http.StatusUnauthorized},
		{"bad token", true, utils.RoleManager, "Bearer bad", http.StatusUnauthorized},
		{"wrong role", true, "cashier", "Bearer good", http.StatusForbidden},
		{"manager", true, utils.RoleManager, "Bearer good", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(ManagerAuth(&fakeSessions{locked: tt.locked, role: tt.role}))
			r.GET("/settings", func(c *gin.Context) { c.Status(http.StatusOK) })

			if w := serve(r, http.MethodGet, "/settings", tt.auth); w.Code != tt.code {
				t.Fatalf("expected %d, got %d", tt.code, w.Code)
			}
		})
	}
}

func TestClientRateLimiter(t *testing.T) {
	rl := NewClientRateLimiter(RateLimiterConfig{
		RequestsPerSecond: 0.001,
		BurstSize:         2,
		CleanupInterval:   time.Minute,
		EntryTTL:          time.Minute,
	})
	defer rl.Stop()

	r := gin.New()
	r.Use(rl.Middleware())
	r.GET("/cart", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 2; i++ {
		if w := serve(r, http.MethodGet, "/cart", ""); w.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, w.Code)
		}
	}
	w := serve(r, http.MethodGet, "/cart", "")
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", w.Code)
	}
	// one token every 1000s
	if got := w.Header().Get("Retry-After"); got != "1000" {
		t.Errorf("expected Retry-After 1000, got %q", got)
	}
	if n := rl.ActiveClients(); n != 1 {
		t.Fatalf("expected one tracked client, got %d", n)
	}
}

func TestRateLimiterConfigFromWindow(t *testing.T) {
	cfg := RateLimiterConfigFromWindow(120, 60)
	if cfg.RequestsPerSecond != 2 || cfg.BurstSize != 120 {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if def := RateLimiterConfigFromWindow(0, 60); def != DefaultRateLimiterConfig() {
		t.Fatalf("expected defaults for an empty window, got %+v", def)
	}
}

func TestWithRequiredHeaders(t *testing.T) {
	got := withRequired([]string{"authorization", "X-Custom"}, requiredHeaders)
	want := []string{"authorization", "X-Custom", "Content-Type", IdempotencyHeader}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("header %d: expected %q, got %q", i, want[i], got[i])
		}
	}

	if got := orDefault(nil, defaultOrigins); len(got) != len(defaultOrigins) {
		t.Errorf("expected default origins, got %v", got)
	}
}
