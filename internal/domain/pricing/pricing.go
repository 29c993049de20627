// Package pricing turns a cart into order totals.
//
// All money is in the smallest currency unit. Every intermediate amount is
// rounded half-to-even to a whole unit, per line first and then aggregated.
// The engine never fails: out of range inputs are clamped and callers
// validate before checkout.
package pricing

import (
	"math"

	"github.com/sangkips/shop-pos/internal/domain/entity"
	"github.com/sangkips/shop-pos/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// Input ceilings. Values past them are rejected by the services and
// clamped here, which keeps every total inside int64.
const (
	MaxAmount        int64 = 100_000_000_000
	MaxQty                 = 10_000
	MaxOrderDiscount int64 = 1_000_000_000_000_000
	MaxTaxPct              = 100
)

var (
	hundred  = decimal.NewFromInt(100)
	maxInt64 = decimal.NewFromInt(math.MaxInt64)
	minInt64 = decimal.NewFromInt(math.MinInt64)
)

// LineTotals is the priced view of one cart line
type LineTotals struct {
	LineID            string `json:"line_id"`
	ProductID         string `json:"product_id"`
	Gross             int64  `json:"gross"`
	DiscountAmount    int64  `json:"discount_amount"`
	Net               int64  `json:"net"`
	COGS              int64  `json:"cogs"`
	Profit            int64  `json:"profit"`
	AllocatedDiscount int64  `json:"allocated_discount"`
	NetProfit         int64  `json:"net_profit"`
}

// OrderTotals is the full breakdown of a priced cart
type OrderTotals struct {
	Lines              []LineTotals `json:"lines"`
	Subtotal           int64        `json:"subtotal"`
	ItemDiscountTotal  int64        `json:"item_discount_total"`
	OrderDiscountTotal int64        `json:"order_discount_total"`
	TaxableBase        int64        `json:"taxable_base"`
	TaxPct             float64      `json:"tax_pct"`
	TaxAmount          int64        `json:"tax_amount"`
	GrandTotal         int64        `json:"grand_total"`
	Paid               int64        `json:"paid"`
	Change             int64        `json:"change"`
	DistributedProfit  int64        `json:"distributed_profit"`
}

// IsUnderpaid reports whether paid does not cover the grand total
func (t *OrderTotals) IsUnderpaid() bool {
	return t.Paid < t.GrandTotal
}

// ComputeOrderTotals prices items with the order discount and tax rate applied.
func ComputeOrderTotals(items []entity.LineItem, discount entity.OrderDiscount, taxPct float64, paid int64) OrderTotals {
	totals := OrderTotals{
		Lines:  make([]LineTotals, len(items)),
		TaxPct: clampPct(taxPct, MaxTaxPct),
		Paid:   paid,
	}

	for i, item := range items {
		qty := int64(min(max(item.Qty, 0), MaxQty))
		gross := clampAmount(item.Price, MaxAmount) * qty
		discountAmt := percentOf(gross, clampPct(item.DiscountPct, 100))
		net := gross - discountAmt
		cogs := clampAmount(item.Cost, MaxAmount) * qty

		totals.Lines[i] = LineTotals{
			LineID:         item.ID,
			ProductID:      item.ProductID,
			Gross:          gross,
			DiscountAmount: discountAmt,
			Net:            net,
			COGS:           cogs,
			Profit:         net - cogs,
		}
		totals.Subtotal = addCapped(totals.Subtotal, net)
		totals.ItemDiscountTotal = addCapped(totals.ItemDiscountTotal, discountAmt)
	}

	totals.OrderDiscountTotal = orderDiscountTotal(totals.Subtotal, discount)

	totals.TaxableBase = totals.Subtotal - totals.OrderDiscountTotal
	if totals.TaxableBase < 0 {
		totals.TaxableBase = 0
	}
	totals.TaxAmount = percentOf(totals.TaxableBase, totals.TaxPct)

	totals.GrandTotal = addCapped(totals.TaxableBase, totals.TaxAmount)

	allocate(&totals)

	totals.Change = paid - totals.GrandTotal
	if totals.Change < 0 {
		totals.Change = 0
	}
	return totals
}

func orderDiscountTotal(subtotal int64, d entity.OrderDiscount) int64 {
	switch d.Type {
	case enum.DiscountTypePercent:
		return percentOf(subtotal, clampPct(d.Value, 100))
	case enum.DiscountTypeAmount:
		// a fixed discount may exceed the subtotal but never the larger of
		// the subtotal and MaxOrderDiscount
		ceiling := max(subtotal, MaxOrderDiscount)
		v := decimal.NewFromFloat(clampPct(d.Value, math.MaxFloat64))
		if v.GreaterThan(decimal.NewFromInt(ceiling)) {
			return ceiling
		}
		return round(v)
	}
	return 0
}

// allocate spreads the effective order discount over the lines by their
// share of the subtotal. Rounding residue lands on the last line with a
// non-zero net so the shares always add up to the discount taken.
func allocate(t *OrderTotals) {
	taken := t.OrderDiscountTotal
	if taken > t.Subtotal {
		taken = t.Subtotal
	}

	denom := t.Subtotal
	if denom == 0 {
		denom = 1
	}
	takenDec := decimal.NewFromInt(taken)
	denomDec := decimal.NewFromInt(denom)

	var allocated int64
	last := -1
	for i := range t.Lines {
		line := &t.Lines[i]
		if line.Net != 0 {
			last = i
		}
		line.AllocatedDiscount = round(takenDec.Mul(decimal.NewFromInt(line.Net)).Div(denomDec))
		allocated += line.AllocatedDiscount
	}
	if last >= 0 {
		t.Lines[last].AllocatedDiscount += taken - allocated
	}

	t.DistributedProfit = 0
	for i := range t.Lines {
		line := &t.Lines[i]
		line.NetProfit = line.Net - line.AllocatedDiscount - line.COGS
		t.DistributedProfit += line.NetProfit
	}
}

func percentOf(amount int64, pct float64) int64 {
	return round(decimal.NewFromInt(amount).Mul(decimal.NewFromFloat(pct)).Div(hundred))
}

// round saturates at the int64 range instead of wrapping
func round(d decimal.Decimal) int64 {
	d = d.RoundBank(0)
	switch {
	case d.GreaterThan(maxInt64):
		return math.MaxInt64
	case d.LessThan(minInt64):
		return math.MinInt64
	}
	return d.IntPart()
}

// addCapped adds two non-negative amounts, stopping at math.MaxInt64
func addCapped(a, b int64) int64 {
	if b > 0 && a > math.MaxInt64-b {
		return math.MaxInt64
	}
	return a + b
}

func clampAmount(v, ceiling int64) int64 {
	return min(nonNegative(v), ceiling)
}

// clampPct maps NaN and negatives to 0 and caps the value at max
func clampPct(v, max float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}

func nonNegative(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}
