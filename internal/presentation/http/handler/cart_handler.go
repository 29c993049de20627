package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/shop-pos/internal/application/service"
	"github.com/sangkips/shop-pos/internal/domain/entity"
	"github.com/sangkips/shop-pos/internal/presentation/http/dto/request"
	"github.com/sangkips/shop-pos/internal/presentation/http/dto/response"
)

// CartHandler handles the open sale of the register
type CartHandler struct {
	cartService *service.CartService
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService *service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// Get returns the cart with its totals
func (h *CartHandler) Get(c *gin.Context) {
	totals, err := h.cartService.Totals(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cart retrieved successfully", response.CartResponse{
		Cart:   h.cartService.GetCart(),
		Totals: &totals,
	})
}

// Totals returns the priced totals of the cart
func (h *CartHandler) Totals(c *gin.Context) {
	totals, err := h.cartService.Totals(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cart totals computed", totals)
}

// Clear empties the cart
func (h *CartHandler) Clear(c *gin.Context) {
	response.OK(c, "Cart cleared", response.CartResponse{Cart: h.cartService.Clear()})
}

// AddItem puts a product in the cart
func (h *CartHandler) AddItem(c *gin.Context) {
	var req request.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if req.Qty == 0 {
		req.Qty = 1
	}

	cart, err := h.cartService.AddProduct(c.Request.Context(), req.ProductID, req.Qty)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item added to cart", response.CartResponse{Cart: cart})
}

// UpdateItem changes quantity, discount or note of a line
func (h *CartHandler) UpdateItem(c *gin.Context) {
	var req request.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	cart, err := h.cartService.UpdateLine(c.Param("id"), &service.UpdateLineInput{
		Qty:         req.Qty,
		DiscountPct: req.DiscountPct,
		Note:        req.Note,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cart item updated", response.CartResponse{Cart: cart})
}

// RemoveItem deletes a line from the cart
func (h *CartHandler) RemoveItem(c *gin.Context) {
	cart, err := h.cartService.RemoveLine(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cart item removed", response.CartResponse{Cart: cart})
}

// SetDiscount replaces the order discount
func (h *CartHandler) SetDiscount(c *gin.Context) {
	var req request.OrderDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	cart, err := h.cartService.SetOrderDiscount(entity.OrderDiscount{Type: req.Type, Value: req.Value})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order discount updated", response.CartResponse{Cart: cart})
}

// SetPayment records the tendered amount and payment method
func (h *CartHandler) SetPayment(c *gin.Context) {
	var req request.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	cart, err := h.cartService.SetPayment(req.Paid, req.PaymentMethod)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment updated", response.CartResponse{Cart: cart})
}
