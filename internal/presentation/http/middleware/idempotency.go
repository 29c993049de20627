package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/shop-pos/internal/domain/entity"
	"github.com/sangkips/shop-pos/internal/domain/repository"
	"github.com/sangkips/shop-pos/internal/presentation/http/dto/response"
	"github.com/sirupsen/logrus"
)

const (
	// IdempotencyHeader carries the client chosen key of a retryable request
	IdempotencyHeader = "Idempotency-Key"
	// ReplayedHeader marks a response served from the idempotency cache
	ReplayedHeader = "X-Idempotency-Replayed"
	// IdempotencyKeyTTL is how long keys are valid
	IdempotencyKeyTTL = 24 * time.Hour
)

// IdempotencyConfig holds configuration for the idempotency middleware
type IdempotencyConfig struct {
	Repo repository.IdempotencyRepository
	Log  *logrus.Logger
	Now  func() time.Time
}

// responseWriter wraps gin.ResponseWriter to capture the response body
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// keyLocks serializes requests that share an idempotency key so a retry that
// races the first attempt waits for it and then replays its response.
type keyLocks struct {
	mu   sync.Mutex
	held map[string]*keyLock
}

type keyLock struct {
	mu   sync.Mutex
	refs int
}

func (l *keyLocks) lock(key string) (unlock func()) {
	l.mu.Lock()
	kl, ok := l.held[key]
	if !ok {
		kl = &keyLock{}
		l.held[key] = kl
	}
	kl.refs++
	l.mu.Unlock()

	kl.mu.Lock()
	return func() {
		kl.mu.Unlock()
		l.mu.Lock()
		if kl.refs--; kl.refs == 0 {
			delete(l.held, key)
		}
		l.mu.Unlock()
	}
}

// Idempotency replays the stored response of a request that was already
// completed with the same Idempotency-Key. Requests without the header are
// processed normally. Only 2xx responses are stored, so a rejected checkout
// can be retried with the same key.
func Idempotency(config IdempotencyConfig) gin.HandlerFunc {
	now := config.Now
	if now == nil {
		now = time.Now
	}
	locks := &keyLocks{held: make(map[string]*keyLock)}

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost && c.Request.Method != http.MethodPut {
			c.Next()
			return
		}

		idempotencyKey := c.GetHeader(IdempotencyHeader)
		if idempotencyKey == "" {
			c.Next()
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			response.BadRequest(c, "Failed to read request body")
			c.Abort()
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))
		sum := sha256.Sum256(body)
		requestHash := hex.EncodeToString(sum[:])
		endpoint := c.Request.Method + " " + c.FullPath()

		unlock := locks.lock(endpoint + "\x00" + idempotencyKey)
		defer unlock()

		existing, err := config.Repo.GetByKey(c.Request.Context(), idempotencyKey, endpoint)
		if err != nil {
			response.InternalServerError(c, "Failed to check idempotency key")
			c.Abort()
			return
		}

		if existing != nil && !existing.IsExpired(now()) {
			if existing.RequestHash != "" && existing.RequestHash != requestHash {
				response.ErrorWithCode(c, http.StatusUnprocessableEntity, "Idempotency-Key was already used with a different request")
				c.Abort()
				return
			}
			c.Header(ReplayedHeader, "true")
			c.Data(existing.ResponseCode, "application/json; charset=utf-8", []byte(existing.ResponseBody))
			c.Abort()
			return
		}

		blw := &responseWriter{body: bytes.NewBufferString(""), ResponseWriter: c.Writer}
		c.Writer = blw

		c.Next()

		if c.Writer.Status() >= 200 && c.Writer.Status() < 300 {
			ikey := &entity.IdempotencyKey{
				Key:          idempotencyKey,
				Endpoint:     endpoint,
				RequestHash:  requestHash,
				ResponseCode: c.Writer.Status(),
				ResponseBody: blw.body.String(),
				ExpiresAt:    now().Add(IdempotencyKeyTTL),
			}

			if err := config.Repo.Create(c.Request.Context(), ikey); err != nil && config.Log != nil {
				config.Log.WithError(err).WithField("endpoint", endpoint).Warn("failed to store idempotency key")
			}
		}
	}
}
