package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/sangkips/shop-pos/internal/domain/entity"
	"github.com/sangkips/shop-pos/internal/domain/enum"
	"github.com/sangkips/shop-pos/internal/domain/pricing"
	"github.com/sangkips/shop-pos/pkg/apperror"
	"github.com/sangkips/shop-pos/pkg/utils"
)

// MaxCartLines is the number of distinct lines one sale may carry
const MaxCartLines = 500

func qtyTooLarge() error {
	return apperror.NewFieldError("qty", fmt.Sprintf("qty must be at most %d per line", pricing.MaxQty))
}

// CartService holds the open sale of the register.
// The cart lives in memory only; it is not part of the persisted state.
type CartService struct {
	mu    sync.Mutex
	cart  *entity.Cart
	store *StateStore
}

// NewCartService creates a new cart service with an empty cart
func NewCartService(store *StateStore) *CartService {
	return &CartService{cart: entity.NewCart(), store: store}
}

// UpdateLineInput carries the optional fields of a line update
type UpdateLineInput struct {
	Qty         *int     `json:"qty" validate:"omitnil,min=1,max=10000"`
	DiscountPct *float64 `json:"discount_pct" validate:"omitnil,gte=0,lte=100"`
	Note        *string  `json:"note" validate:"omitempty,max=255"`
}

// GetCart returns a copy of the cart
func (s *CartService) GetCart() entity.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Clone()
}

// AddProduct puts qty units of a catalog product in the cart. Units merge
// into an existing line of the same product unless that line has a note.
func (s *CartService) AddProduct(ctx context.Context, productID string, qty int) (entity.Cart, error) {
	if qty < 1 {
		return entity.Cart{}, apperror.NewFieldError("qty", "qty must be at least 1")
	}
	if qty > pricing.MaxQty {
		return entity.Cart{}, qtyTooLarge()
	}

	state, err := s.store.Read(ctx)
	if err != nil {
		return entity.Cart{}, err
	}
	idx := state.FindProduct(productID)
	if idx < 0 {
		return entity.Cart{}, apperror.NewNotFoundError("Product")
	}
	product := state.Products[idx]

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.cart.Items {
		line := &s.cart.Items[i]
		if line.ProductID == product.ID && line.Note == "" {
			if line.Qty > pricing.MaxQty-qty {
				return entity.Cart{}, qtyTooLarge()
			}
			line.Qty += qty
			return s.cart.Clone(), nil
		}
	}
	if len(s.cart.Items) >= MaxCartLines {
		return entity.Cart{}, apperror.NewFieldError("product_id", fmt.Sprintf("cart cannot hold more than %d lines", MaxCartLines))
	}

	s.cart.Items = append(s.cart.Items, entity.LineItem{
		ID:        utils.NewID(),
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		Cost:      product.Cost,
		Qty:       qty,
	})
	return s.cart.Clone(), nil
}

// UpdateLine changes quantity, discount or note of a cart line
func (s *CartService) UpdateLine(lineID string, input *UpdateLineInput) (entity.Cart, error) {
	if err := validateStruct(input); err != nil {
		return entity.Cart{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.cart.FindLine(lineID)
	if idx < 0 {
		return entity.Cart{}, apperror.NewNotFoundError("Cart line")
	}
	line := &s.cart.Items[idx]
	if input.Qty != nil {
		line.Qty = *input.Qty
	}
	if input.DiscountPct != nil {
		line.DiscountPct = *input.DiscountPct
	}
	if input.Note != nil {
		line.Note = strings.TrimSpace(*input.Note)
	}
	return s.cart.Clone(), nil
}

// RemoveLine deletes a line from the cart
func (s *CartService) RemoveLine(lineID string) (entity.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.cart.FindLine(lineID)
	if idx < 0 {
		return entity.Cart{}, apperror.NewNotFoundError("Cart line")
	}
	s.cart.Items = append(s.cart.Items[:idx], s.cart.Items[idx+1:]...)
	return s.cart.Clone(), nil
}

// Clear empties the cart and resets discount and payment
func (s *CartService) Clear() entity.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Reset()
	return s.cart.Clone()
}

// SetOrderDiscount replaces the order-level discount
func (s *CartService) SetOrderDiscount(d entity.OrderDiscount) (entity.Cart, error) {
	if d.Type == "" {
		d.Type = enum.DiscountTypeNone
	}
	if !d.Type.IsValid() {
		return entity.Cart{}, apperror.NewFieldError("type", "type must be one of [none percent amount]")
	}
	if d.Value < 0 {
		return entity.Cart{}, apperror.NewFieldError("value", "value must be greater than or equal to 0")
	}
	if d.Type == enum.DiscountTypePercent && d.Value > 100 {
		return entity.Cart{}, apperror.NewFieldError("value", "value must be less than or equal to 100")
	}
	if d.Type == enum.DiscountTypeAmount && d.Value > float64(pricing.MaxOrderDiscount) {
		return entity.Cart{}, apperror.NewFieldError("value", fmt.Sprintf("value must be less than or equal to %d", pricing.MaxOrderDiscount))
	}
	if d.Type == enum.DiscountTypeNone {
		d.Value = 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.OrderDiscount = d
	return s.cart.Clone(), nil
}

// SetPayment records the tendered amount and payment method
func (s *CartService) SetPayment(paid int64, method enum.PaymentMethod) (entity.Cart, error) {
	if paid < 0 {
		return entity.Cart{}, apperror.NewFieldError("paid", "paid must be greater than or equal to 0")
	}
	if method == "" {
		method = enum.PaymentMethodCash
	}
	if !method.IsValid() {
		return entity.Cart{}, apperror.NewFieldError("payment_method", "payment_method must be one of [cash card qris transfer other]")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Paid = paid
	s.cart.PaymentMethod = method
	return s.cart.Clone(), nil
}

// Totals prices the current cart with the shop tax rate
func (s *CartService) Totals(ctx context.Context) (pricing.OrderTotals, error) {
	state, err := s.store.Read(ctx)
	if err != nil {
		return pricing.OrderTotals{}, err
	}
	cart := s.GetCart()
	return pricing.ComputeOrderTotals(cart.Items, cart.OrderDiscount, state.Settings.TaxPct, cart.Paid), nil
}

// Commit runs fn with a copy of the cart while holding the cart lock, so no
// line can change mid-checkout. The cart is reset only when fn succeeds.
func (s *CartService) Commit(fn func(cart entity.Cart) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := fn(s.cart.Clone()); err != nil {
		return err
	}
	s.cart.Reset()
	return nil
}
