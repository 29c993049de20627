package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/shop-pos/internal/application/service"
	"github.com/sangkips/shop-pos/internal/presentation/http/dto/request"
	"github.com/sangkips/shop-pos/internal/presentation/http/dto/response"
)

// AuthHandler handles manager session requests
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login handles manager PIN login
func (h *AuthHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	output, err := h.authService.Login(c.Request.Context(), req.PIN)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Login successful", output)
}

// Status reports whether back-office routes require a manager session
func (h *AuthHandler) Status(c *gin.Context) {
	locked, err := h.authService.Locked(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Auth status retrieved", gin.H{"locked": locked})
}
