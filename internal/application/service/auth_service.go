package service

import (
	"context"
	"sync"
	"time"

	"github.com/sangkips/shop-pos/pkg/apperror"
	"github.com/sangkips/shop-pos/pkg/utils"
)

// Failed PIN attempts allowed before logins are paused, and the pause
// bounds. Each further failure doubles the pause.
const (
	FreePINAttempts = 5
	MinPINLockout   = 30 * time.Second
	MaxPINLockout   = 15 * time.Minute
)

// AuthService opens manager sessions with the manager PIN
type AuthService struct {
	store      *StateStore
	jwtManager *utils.JWTManager
	now        func() time.Time

	mu          sync.Mutex
	failures    int
	lockedUntil time.Time
}

// NewAuthService creates a new auth service
func NewAuthService(store *StateStore, jwtManager *utils.JWTManager) *AuthService {
	return &AuthService{store: store, jwtManager: jwtManager, now: time.Now}
}

// LoginOutput represents the login output
type LoginOutput struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
	Role        string    `json:"role"`
}

// Login checks the manager PIN and returns a session token. After
// FreePINAttempts wrong PINs in a row every attempt is refused with 429
// until the pause is over, even with the right PIN.
func (s *AuthService) Login(ctx context.Context, pin string) (*LoginOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if wait := s.lockedUntil.Sub(now); wait > 0 {
		return nil, apperror.NewTooManyAttemptsError("Too many wrong PIN attempts, try again later", wait)
	}

	state, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}
	if !state.Settings.HasManagerPIN() {
		return nil, apperror.NewBadRequestError("Manager PIN is not set")
	}
	if !utils.CheckSecret(state.Settings.ManagerPINHash, pin) {
		s.failures++
		if s.failures >= FreePINAttempts {
			s.lockedUntil = now.Add(pinLockout(s.failures))
		}
		return nil, apperror.ErrInvalidPIN
	}
	s.failures = 0
	s.lockedUntil = time.Time{}

	token, expiresAt, err := s.jwtManager.GenerateToken(utils.RoleManager)
	if err != nil {
		return nil, err
	}
	return &LoginOutput{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
		Role:        utils.RoleManager,
	}, nil
}

// pinLockout is MinPINLockout at the last free attempt, doubling per failure
func pinLockout(failures int) time.Duration {
	d := MinPINLockout
	for i := FreePINAttempts; i < failures && d < MaxPINLockout; i++ {
		d *= 2
	}
	return min(d, MaxPINLockout)
}

// Locked reports whether back-office routes need a manager session
func (s *AuthService) Locked(ctx context.Context) (bool, error) {
	state, err := s.store.Read(ctx)
	if err != nil {
		return false, err
	}
	return state.Settings.HasManagerPIN(), nil
}

// ValidateToken checks a session token
func (s *AuthService) ValidateToken(token string) (*utils.JWTClaims, error) {
	claims, err := s.jwtManager.ValidateToken(token)
	if err != nil {
		return nil, apperror.ErrInvalidToken
	}
	return claims, nil
}
