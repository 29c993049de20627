package service

import (
	"context"
	"time"

	"github.com/sangkips/shop-pos/internal/domain/entity"
	"github.com/sangkips/shop-pos/internal/domain/enum"
	"github.com/sangkips/shop-pos/internal/domain/pricing"
	"github.com/sangkips/shop-pos/pkg/apperror"
	"github.com/sangkips/shop-pos/pkg/logger"
	"github.com/sangkips/shop-pos/pkg/utils"
	"github.com/sirupsen/logrus"
)

// ConfirmFunc asks the operator whether to sell despite missing stock.
type ConfirmFunc func(ctx context.Context, shortfalls []entity.StockShortfall) bool

// ConfirmAlways approves every shortfall.
func ConfirmAlways(context.Context, []entity.StockShortfall) bool { return true }

// CheckoutService turns the cart into a ledger transaction
type CheckoutService struct {
	cart     *CartService
	store    *StateStore
	ledger   *LedgerService
	renderer ReceiptRenderer
	loc      *time.Location
	log      *logrus.Logger
	now      func() time.Time
}

// NewCheckoutService creates a new checkout service. renderer may be nil.
func NewCheckoutService(
	cart *CartService,
	store *StateStore,
	ledger *LedgerService,
	renderer ReceiptRenderer,
	loc *time.Location,
	log *logrus.Logger,
) *CheckoutService {
	if loc == nil {
		loc = time.Local
	}
	if log == nil {
		log = logger.Discard()
	}
	return &CheckoutService{
		cart:     cart,
		store:    store,
		ledger:   ledger,
		renderer: renderer,
		loc:      loc,
		log:      log,
		now:      time.Now,
	}
}

// CheckoutInput represents the checkout input. Paid and PaymentMethod
// override the values stored on the cart when set.
type CheckoutInput struct {
	Paid          *int64
	PaymentMethod enum.PaymentMethod
	Confirm       ConfirmFunc
}

// CheckoutResult is the outcome of a committed sale
type CheckoutResult struct {
	Transaction  *entity.Transaction     `json:"transaction"`
	Shortfalls   []entity.StockShortfall `json:"shortfalls,omitempty"`
	Receipt      *entity.Receipt         `json:"receipt"`
	PrintWarning string                  `json:"print_warning,omitempty"`
}

// Checkout validates the cart, commits the sale and resets the cart.
//
// Nothing is written when the cart is empty, the payment does not cover
// the grand total, or a stock shortfall is not confirmed. Stock of every
// sold product is decremented, clamping at zero, and the products and the
// new transaction are saved together. The receipt is rendered after the
// commit; a rendering failure is only reported as a warning.
func (s *CheckoutService) Checkout(ctx context.Context, input *CheckoutInput) (*CheckoutResult, error) {
	if input == nil {
		input = &CheckoutInput{}
	}
	if input.PaymentMethod != "" && !input.PaymentMethod.IsValid() {
		return nil, apperror.NewFieldError("payment_method", "payment_method must be one of [cash card qris transfer other]")
	}

	var (
		tx         entity.Transaction
		shortfalls []entity.StockShortfall
		settings   entity.Settings
	)

	err := s.cart.Commit(func(cart entity.Cart) error {
		if cart.IsEmpty() {
			return apperror.ErrEmptyCart
		}

		paid := cart.Paid
		if input.Paid != nil {
			paid = *input.Paid
		}
		method := cart.PaymentMethod
		if input.PaymentMethod != "" {
			method = input.PaymentMethod
		}
		if method == "" {
			method = enum.PaymentMethodCash
		}

		return s.store.Update(ctx, func(state *entity.State) ([]string, error) {
			totals := pricing.ComputeOrderTotals(cart.Items, cart.OrderDiscount, state.Settings.TaxPct, paid)
			if totals.IsUnderpaid() {
				return nil, apperror.ErrInsufficientPayment
			}

			shortfalls = findShortfalls(state, cart.Items)
			if len(shortfalls) > 0 {
				if input.Confirm == nil || !input.Confirm(ctx, shortfalls) {
					return nil, apperror.NewStockShortfallError(shortfalls)
				}
			}

			for _, item := range cart.Items {
				if idx := state.FindProduct(item.ProductID); idx >= 0 {
					state.Products[idx].DecrementStock(item.Qty)
				}
			}

			now := s.now()
			tx = buildTransaction(cart, totals, method, now)
			settings = state.Settings
			return []string{entity.StateKeyProducts, s.ledger.Append(state, tx)}, nil
		})
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"transaction_id": tx.ID,
		"receipt_no":     tx.ReceiptNo,
		"grand_total":    tx.GrandTotal,
		"items":          len(tx.Items),
		"shortfalls":     len(shortfalls),
	}).Info("checkout completed")

	result := &CheckoutResult{
		Transaction: &tx,
		Shortfalls:  shortfalls,
		Receipt:     BuildReceipt(&tx, &settings, s.loc),
	}

	if s.renderer != nil {
		if err := s.renderer.Render(ctx, result.Receipt); err != nil {
			logger.LogError(s.log, "checkout", "Render", tx.ReceiptNo, err)
			result.PrintWarning = err.Error()
		}
	}
	return result, nil
}

// findShortfalls sums the cart quantity per product and compares it with
// the catalog stock. Lines whose product no longer exists are ignored.
func findShortfalls(state *entity.State, items []entity.LineItem) []entity.StockShortfall {
	requested := make(map[string]int)
	order := []string{}
	for _, item := range items {
		if _, seen := requested[item.ProductID]; !seen {
			order = append(order, item.ProductID)
		}
		requested[item.ProductID] += item.Qty
	}

	var shortfalls []entity.StockShortfall
	for _, id := range order {
		idx := state.FindProduct(id)
		if idx < 0 {
			continue
		}
		p := state.Products[idx]
		if requested[id] > p.Stock {
			shortfalls = append(shortfalls, entity.StockShortfall{
				ProductID: p.ID,
				Name:      p.Name,
				Requested: requested[id],
				Available: p.Stock,
			})
		}
	}
	return shortfalls
}

func buildTransaction(cart entity.Cart, totals pricing.OrderTotals, method enum.PaymentMethod, now time.Time) entity.Transaction {
	items := make([]entity.TransactionItem, len(cart.Items))
	for i, item := range cart.Items {
		line := totals.Lines[i]
		items[i] = entity.TransactionItem{
			ProductID:         item.ProductID,
			Name:              item.Name,
			Price:             item.Price,
			Cost:              item.Cost,
			Qty:               item.Qty,
			DiscountPct:       item.DiscountPct,
			Note:              item.Note,
			Gross:             line.Gross,
			DiscountAmount:    line.DiscountAmount,
			Net:               line.Net,
			AllocatedDiscount: line.AllocatedDiscount,
			Profit:            line.NetProfit,
		}
	}

	discountType := cart.OrderDiscount.Type
	if discountType == "" {
		discountType = enum.DiscountTypeNone
	}

	return entity.Transaction{
		ID:                 utils.NewID(),
		ReceiptNo:          utils.GenerateReceiptNo(now),
		Timestamp:          now,
		Items:              items,
		Subtotal:           totals.Subtotal,
		ItemDiscountTotal:  totals.ItemDiscountTotal,
		OrderDiscountType:  discountType,
		OrderDiscountValue: cart.OrderDiscount.Value,
		OrderDiscountTotal: totals.OrderDiscountTotal,
		TaxableBase:        totals.TaxableBase,
		TaxPct:             totals.TaxPct,
		TaxAmount:          totals.TaxAmount,
		GrandTotal:         totals.GrandTotal,
		Paid:               totals.Paid,
		Change:             totals.Change,
		PaymentMethod:      method,
		Profit:             totals.DistributedProfit,
	}
}
