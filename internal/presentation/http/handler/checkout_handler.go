package handler

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/shop-pos/internal/application/service"
	"github.com/sangkips/shop-pos/internal/presentation/http/dto/request"
	"github.com/sangkips/shop-pos/internal/presentation/http/dto/response"
)

// CheckoutHandler completes sales
type CheckoutHandler struct {
	checkoutService *service.CheckoutService
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkoutService *service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

// Checkout sells the open cart. The body is optional; without it the
// payment stored on the cart is used. A stock shortfall is answered with
// 409 and the shortfall details until the request sets confirm_shortfall.
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	var req request.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.CheckoutInput{
		Paid:          req.Paid,
		PaymentMethod: req.PaymentMethod,
	}
	if req.ConfirmShortfall {
		input.Confirm = service.ConfirmAlways
	}

	result, err := h.checkoutService.Checkout(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Checkout completed", result)
}
