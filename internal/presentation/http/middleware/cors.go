package middleware

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sangkips/shop-pos/internal/config"
)

var (
	// the till UI is normally served by a local dev server or the same host
	defaultOrigins = []string{"http://localhost:3000", "http://127.0.0.1:3000", "http://localhost:5173"}

	defaultMethods = []string{
		http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions,
	}

	defaultHeaders = []string{"Accept", "Authorization", "Content-Type", "Origin", "X-Request-ID"}

	// headers the till relies on regardless of configuration
	requiredHeaders = []string{"Authorization", "Content-Type", IdempotencyHeader}

	exposedHeaders = []string{"Content-Disposition", "Content-Length", "Content-Type", "X-Request-ID", ReplayedHeader}
)

// CORSMiddleware lets the browser based till call the API.
func CORSMiddleware(cfg *config.CORSConfig) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     orDefault(cfg.AllowedOrigins, defaultOrigins),
		AllowMethods:     orDefault(cfg.AllowedMethods, defaultMethods),
		AllowHeaders:     withRequired(orDefault(cfg.AllowedHeaders, defaultHeaders), requiredHeaders),
		ExposeHeaders:    exposedHeaders,
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}

func orDefault(values, fallback []string) []string {
	if len(values) == 0 {
		return append([]string{}, fallback...)
	}
	return values
}

func withRequired(headers, required []string) []string {
	out := append([]string{}, headers...)
	for _, r := range required {
		found := false
		for _, h := range out {
			if http.CanonicalHeaderKey(h) == http.CanonicalHeaderKey(r) {
				found = true
				break
			}
		}
		if !found {
			out = append(out, r)
		}
	}
	return out
}
