package utils

import (
	"strings"
	"testing"
	"time"
)

func TestJWTRoundTrip(t *testing.T) {
	m := NewJWTManager("secret", time.Hour, "shop-pos")

	token, expiresAt, err := m.GenerateToken(RoleManager)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !expiresAt.After(time.Now()) {
		t.Errorf("expected expiry in the future, got %v", expiresAt)
	}

	claims, err := m.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.Role != RoleManager {
		t.Errorf("expected role %q, got %q", RoleManager, claims.Role)
	}
}

func TestJWTRejectsForeignSecretAndExpiry(t *testing.T) {
	token, _, _ := NewJWTManager("other", time.Hour, "shop-pos").GenerateToken(RoleManager)
	if _, err := NewJWTManager("secret", time.Hour, "shop-pos").ValidateToken(token); err == nil {
		t.Error("expected token signed with a different secret to be rejected")
	}

	expired, _, _ := NewJWTManager("secret", -time.Minute, "shop-pos").GenerateToken(RoleManager)
	if _, err := NewJWTManager("secret", time.Hour, "shop-pos").ValidateToken(expired); err == nil {
		t.Error("expected expired token to be rejected")
	}
}

func TestGenerateReceiptNo(t *testing.T) {
	at := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	no := GenerateReceiptNo(at)
	if !strings.HasPrefix(no, "TRX-20260315-") || len(no) != len("TRX-20260315-")+8 {
		t.Fatalf("unexpected receipt number %q", no)
	}
}
