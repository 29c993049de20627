package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/shop-pos/internal/application/service"
	"github.com/sangkips/shop-pos/internal/presentation/http/dto/request"
	"github.com/sangkips/shop-pos/internal/presentation/http/dto/response"
)

// SettingsHandler handles settings-related HTTP requests
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// GetSettings retrieves the shop settings
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	settings, err := h.settingsService.GetSettings(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Settings retrieved successfully", response.NewSettingsResponse(settings))
}

// UpdateSettings updates the fields present in the body
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var input service.UpdateSettingsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	settings, err := h.settingsService.UpdateSettings(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Settings updated successfully", response.NewSettingsResponse(settings))
}

// SetPIN sets or clears the manager PIN
func (h *SettingsHandler) SetPIN(c *gin.Context) {
	var req request.SetPINRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.settingsService.SetManagerPIN(c.Request.Context(), &service.SetManagerPINInput{PIN: req.PIN}); err != nil {
		response.Error(c, err)
		return
	}

	message := "Manager PIN set"
	if req.PIN == "" {
		message = "Manager PIN removed"
	}
	response.OK(c, message, gin.H{"pin_set": req.PIN != ""})
}
