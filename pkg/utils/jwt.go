package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// RoleManager is granted to sessions opened with the manager PIN
const RoleManager = "manager"

// JWTClaims represents the claims in a session token
type JWTClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// JWTManager handles JWT token generation and validation
type JWTManager struct {
	secretKey   []byte
	tokenExpiry time.Duration
	issuer      string
}

// NewJWTManager creates a new JWT manager
func NewJWTManager(secret string, expiry time.Duration, issuer string) *JWTManager {
	return &JWTManager{
		secretKey:   []byte(secret),
		tokenExpiry: expiry,
		issuer:      issuer,
	}
}

// GenerateToken generates a new session token for the given role
func (m *JWTManager) GenerateToken(role string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(m.tokenExpiry)
	claims := &JWTClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    m.issuer,
			Subject:   role,
			ID:        NewID(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secretKey)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ValidateToken validates a session token and returns the claims
func (m *JWTManager) ValidateToken(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secretKey, nil
	})

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}
