package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/shop-pos/internal/presentation/http/dto/response"
	"github.com/sangkips/shop-pos/pkg/utils"
)

// SessionValidator reports whether the back office is locked and checks session tokens
type SessionValidator interface {
	Locked(ctx context.Context) (bool, error)
	ValidateToken(token string) (*utils.JWTClaims, error)
}

// ManagerAuth guards back-office routes. While no manager PIN is set the
// routes stay open; once one is set a manager session token is required.
func ManagerAuth(sessions SessionValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		locked, err := sessions.Locked(c.Request.Context())
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}
		if !locked {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := sessions.ValidateToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}
		if claims.Role != utils.RoleManager {
			response.Forbidden(c, "Manager session required")
			c.Abort()
			return
		}

		c.Set("role", claims.Role)
		c.Next()
	}
}
