package pricing

import (
	"context"
	"fmt"
	"testing"

	"github.com/cucumber/godog"
	"github.com/sangkips/shop-pos/internal/domain/entity"
	"github.com/sangkips/shop-pos/internal/domain/enum"
)

type pricingTestContext struct {
	items    []entity.LineItem
	discount entity.OrderDiscount
	taxPct   float64
	totals   OrderTotals
}

func (c *pricingTestContext) reset() {
	c.items = nil
	c.discount = entity.NoDiscount()
	c.taxPct = 0
	c.totals = OrderTotals{}
}

func (c *pricingTestContext) anEmptyCart() error {
	c.reset()
	return nil
}

func (c *pricingTestContext) aLine(price, cost, qty int, pct float64) error {
	c.items = append(c.items, entity.LineItem{
		ID:          fmt.Sprintf("line-%d", len(c.items)+1),
		ProductID:   fmt.Sprintf("product-%d", len(c.items)+1),
		Price:       int64(price),
		Cost:        int64(cost),
		Qty:         qty,
		DiscountPct: pct,
	})
	return nil
}

func (c *pricingTestContext) aTaxRate(pct float64) error {
	c.taxPct = pct
	return nil
}

func (c *pricingTestContext) anOrderDiscountAmount(value float64) error {
	c.discount = entity.OrderDiscount{Type: enum.DiscountTypeAmount, Value: value}
	return nil
}

func (c *pricingTestContext) anOrderDiscountPercent(value float64) error {
	c.discount = entity.OrderDiscount{Type: enum.DiscountTypePercent, Value: value}
	return nil
}

func (c *pricingTestContext) theCartIsPriced(paid int) error {
	c.totals = ComputeOrderTotals(c.items, c.discount, c.taxPct, int64(paid))
	return nil
}

func expect(field string, got int64, want int) error {
	if got != int64(want) {
		return fmt.Errorf("expected %s %d, got %d", field, want, got)
	}
	return nil
}

func (c *pricingTestContext) theSubtotalIs(v int) error {
	return expect("subtotal", c.totals.Subtotal, v)
}

func (c *pricingTestContext) theTaxableBaseIs(v int) error {
	return expect("taxable base", c.totals.TaxableBase, v)
}

func (c *pricingTestContext) theTaxAmountIs(v int) error {
	return expect("tax amount", c.totals.TaxAmount, v)
}

func (c *pricingTestContext) theGrandTotalIs(v int) error {
	return expect("grand total", c.totals.GrandTotal, v)
}

func (c *pricingTestContext) theChangeIs(v int) error {
	return expect("change", c.totals.Change, v)
}

func (c *pricingTestContext) theDistributedProfitIs(v int) error {
	return expect("distributed profit", c.totals.DistributedProfit, v)
}

func (c *pricingTestContext) theAllocatedDiscountsAddUpTo(v int) error {
	var sum int64
	for _, l := range c.totals.Lines {
		sum += l.AllocatedDiscount
	}
	return expect("allocated discount", sum, v)
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &pricingTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^an empty cart$`, tc.anEmptyCart)
	ctx.Step(`^a line priced (\d+) costing (\d+) with quantity (\d+) and (\d+(?:\.\d+)?) percent off$`, tc.aLine)
	ctx.Step(`^a tax rate of (\d+(?:\.\d+)?) percent$`, tc.aTaxRate)
	ctx.Step(`^an order discount of (\d+(?:\.\d+)?) percent$`, tc.anOrderDiscountPercent)
	ctx.Step(`^an order discount of (\d+(?:\.\d+)?)$`, tc.anOrderDiscountAmount)

	// When steps
	ctx.Step(`^the cart is priced with (\d+) paid$`, tc.theCartIsPriced)

	// Then steps
	ctx.Step(`^the subtotal is (\d+)$`, tc.theSubtotalIs)
	ctx.Step(`^the taxable base is (\d+)$`, tc.theTaxableBaseIs)
	ctx.Step(`^the tax amount is (\d+)$`, tc.theTaxAmountIs)
	ctx.Step(`^the grand total is (\d+)$`, tc.theGrandTotalIs)
	ctx.Step(`^the change is (\d+)$`, tc.theChangeIs)
	ctx.Step(`^the distributed profit is (-?\d+)$`, tc.theDistributedProfitIs)
	ctx.Step(`^the allocated discounts add up to (\d+)$`, tc.theAllocatedDiscountsAddUpTo)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
