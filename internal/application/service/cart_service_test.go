package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/sangkips/shop-pos/internal/domain/entity"
	"github.com/sangkips/shop-pos/internal/domain/enum"
	"github.com/sangkips/shop-pos/internal/domain/pricing"
)

func newTestCart(t *testing.T) *CartService {
	t.Helper()
	store, _ := newTestStore(t)
	seedState(t, store, func(state *entity.State) {
		state.Products = []entity.Product{coffee(10)}
		state.Settings.TaxPct = 10
	})
	return NewCartService(store)
}

func TestAddProductMergesLines(t *testing.T) {
	svc := newTestCart(t)
	ctx := context.Background()

	if _, err := svc.AddProduct(ctx, "coffee", 1); err != nil {
		t.Fatalf("AddProduct: %v", err)
	}
	c, _ := svc.AddProduct(ctx, "coffee", 2)
	if len(c.Items) != 1 || c.Items[0].Qty != 3 {
		t.Fatalf("expected one merged line of 3, got %+v", c.Items)
	}
	if c.Items[0].Price != 10000 || c.Items[0].Name != "Iced Coffee" {
		t.Fatalf("expected product data copied into the line, got %+v", c.Items[0])
	}

	note := "no ice"
	if _, err := svc.UpdateLine(c.Items[0].ID, &UpdateLineInput{Note: &note}); err != nil {
		t.Fatalf("UpdateLine: %v", err)
	}
	c, _ = svc.AddProduct(ctx, "coffee", 1)
	if len(c.Items) != 2 {
		t.Fatalf("noted line must not be merged, got %+v", c.Items)
	}

	_, err := svc.AddProduct(ctx, "missing", 1)
	assertStatus(t, err, http.StatusNotFound)
	_, err = svc.AddProduct(ctx, "coffee", 0)
	assertStatus(t, err, http.StatusUnprocessableEntity)
}

func TestUpdateLineValidation(t *testing.T) {
	svc := newTestCart(t)
	c, _ := svc.AddProduct(context.Background(), "coffee", 1)
	lineID := c.Items[0].ID

	zero := 0
	_, err := svc.UpdateLine(lineID, &UpdateLineInput{Qty: &zero})
	assertStatus(t, err, http.StatusUnprocessableEntity)

	tooMuch := 120.0
	_, err = svc.UpdateLine(lineID, &UpdateLineInput{DiscountPct: &tooMuch})
	assertStatus(t, err, http.StatusUnprocessableEntity)

	_, err = svc.UpdateLine("missing", &UpdateLineInput{})
	assertStatus(t, err, http.StatusNotFound)

	qty, pct := 4, 25.0
	c, err = svc.UpdateLine(lineID, &UpdateLineInput{Qty: &qty, DiscountPct: &pct})
	if err != nil {
		t.Fatalf("UpdateLine: %v", err)
	}
	if c.Items[0].Qty != 4 || c.Items[0].DiscountPct != 25 {
		t.Fatalf("unexpected line %+v", c.Items[0])
	}

	c, _ = svc.RemoveLine(lineID)
	if !c.IsEmpty() {
		t.Fatal("expected empty cart after removing the only line")
	}
}

func TestOrderDiscountAndPaymentValidation(t *testing.T) {
	svc := newTestCart(t)

	tests := []struct {
		name     string
		discount entity.OrderDiscount
		ok       bool
	}{
		{"percent", entity.OrderDiscount{Type: enum.DiscountTypePercent, Value: 15}, true},
		{"percent above 100", entity.OrderDiscount{Type: enum.DiscountTypePercent, Value: 101}, false},
		{"negative amount", entity.OrderDiscount{Type: enum.DiscountTypeAmount, Value: -1}, false},
		{"amount past int64", entity.OrderDiscount{Type: enum.DiscountTypeAmount, Value: 1.5e19}, false},
		{"amount above ceiling", entity.OrderDiscount{Type: enum.DiscountTypeAmount, Value: float64(pricing.MaxOrderDiscount) * 2}, false},
		{"unknown type", entity.OrderDiscount{Type: "bogo", Value: 1}, false},
		{"empty type means none", entity.OrderDiscount{Value: 50}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SetOrderDiscount(tt.discount)
			if tt.ok && err != nil {
				t.Fatalf("unexpected error %v", err)
			}
			if !tt.ok {
				assertStatus(t, err, http.StatusUnprocessableEntity)
			}
		})
	}
	if d := svc.GetCart().OrderDiscount; d.Type != enum.DiscountTypeNone || d.Value != 0 {
		t.Fatalf("expected none discount with zero value, got %+v", d)
	}

	_, err := svc.SetPayment(-1, enum.PaymentMethodCash)
	assertStatus(t, err, http.StatusUnprocessableEntity)
	_, err = svc.SetPayment(1000, "cheque")
	assertStatus(t, err, http.StatusUnprocessableEntity)
	c, err := svc.SetPayment(1000, "")
	if err != nil || c.PaymentMethod != enum.PaymentMethodCash {
		t.Fatalf("expected cash default, got %+v %v", c, err)
	}
}

func TestCartTotalsUseShopTax(t *testing.T) {
	svc := newTestCart(t)
	ctx := context.Background()
	c, _ := svc.AddProduct(ctx, "coffee", 2)
	pct := 10.0
	svc.UpdateLine(c.Items[0].ID, &UpdateLineInput{DiscountPct: &pct})
	svc.SetPayment(20000, enum.PaymentMethodCash)

	totals, err := svc.Totals(ctx)
	if err != nil {
		t.Fatalf("Totals: %v", err)
	}
	if totals.GrandTotal != 19800 || totals.Change != 200 {
		t.Fatalf("unexpected totals %+v", totals)
	}

	cleared := svc.Clear()
	if !cleared.IsEmpty() || cleared.Paid != 0 {
		t.Fatalf("expected cleared cart, got %+v", cleared)
	}
}

func TestCartQuantityLimits(t *testing.T) {
	svc := newTestCart(t)
	ctx := context.Background()

	_, err := svc.AddProduct(ctx, "coffee", pricing.MaxQty+1)
	assertStatus(t, err, http.StatusUnprocessableEntity)

	c, err := svc.AddProduct(ctx, "coffee", pricing.MaxQty-1)
	if err != nil {
		t.Fatalf("AddProduct: %v", err)
	}
	if _, err := svc.AddProduct(ctx, "coffee", 1); err != nil {
		t.Fatalf("expected merge up to the limit, got %v", err)
	}
	_, err = svc.AddProduct(ctx, "coffee", 1)
	assertStatus(t, err, http.StatusUnprocessableEntity)
	if got := svc.GetCart().Items[0].Qty; got != pricing.MaxQty {
		t.Fatalf("expected qty to stay at %d, got %d", pricing.MaxQty, got)
	}

	tooMany := pricing.MaxQty + 1
	_, err = svc.UpdateLine(c.Items[0].ID, &UpdateLineInput{Qty: &tooMany})
	assertStatus(t, err, http.StatusUnprocessableEntity)
}
