package service

import (
	"context"
	"sort"
	"time"

	"github.com/sangkips/shop-pos/internal/domain/entity"
	"github.com/sangkips/shop-pos/internal/domain/enum"
	"github.com/sangkips/shop-pos/pkg/apperror"
)

const topProductsLimit = 10

// ReportService aggregates the ledger into sales reports
type ReportService struct {
	store *StateStore
	loc   *time.Location
	now   func() time.Time
}

// NewReportService creates a new report service. Range boundaries are
// computed in loc.
func NewReportService(store *StateStore, loc *time.Location) *ReportService {
	if loc == nil {
		loc = time.Local
	}
	return &ReportService{store: store, loc: loc, now: time.Now}
}

// Aggregate sums every transaction at or after start.
func Aggregate(transactions []entity.Transaction, start time.Time) entity.SalesSummary {
	summary := entity.SalesSummary{Start: start}
	for i := range transactions {
		tx := &transactions[i]
		if tx.Timestamp.Before(start) {
			continue
		}
		summary.Revenue += tx.GrandTotal
		summary.Tax += tx.TaxAmount
		summary.Discount += tx.DiscountTotal()
		summary.COGS += tx.COGS()
		summary.Profit += tx.Profit
		summary.Count++
	}
	return summary
}

// SalesReport builds the summary, best sellers and daily series of a range
func (s *ReportService) SalesReport(ctx context.Context, rng enum.ReportRange) (*entity.SalesReport, error) {
	rng, err := normalizeRange(rng)
	if err != nil {
		return nil, err
	}

	state, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}

	start := rng.Start(s.now().In(s.loc))
	inRange := transactionsSince(state.Transactions, start)

	summary := Aggregate(inRange, start)
	summary.Range = rng

	return &entity.SalesReport{
		Summary:     summary,
		TopProducts: topProducts(inRange, topProductsLimit),
		Daily:       dailySales(inRange, s.loc),
	}, nil
}

func normalizeRange(rng enum.ReportRange) (enum.ReportRange, error) {
	if rng == "" {
		return enum.ReportRangeToday, nil
	}
	if !rng.IsValid() {
		return "", apperror.NewFieldError("range", "range must be one of [today week month all]")
	}
	return rng, nil
}

func transactionsSince(transactions []entity.Transaction, start time.Time) []entity.Transaction {
	out := make([]entity.Transaction, 0, len(transactions))
	for _, tx := range transactions {
		if !tx.Timestamp.Before(start) {
			out = append(out, tx)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out
}

func topProducts(transactions []entity.Transaction, limit int) []entity.TopProduct {
	byProduct := make(map[string]*entity.TopProduct)
	for _, tx := range transactions {
		for _, item := range tx.Items {
			key := item.ProductID
			if key == "" {
				key = item.Name
			}
			tp, ok := byProduct[key]
			if !ok {
				tp = &entity.TopProduct{ProductID: item.ProductID, Name: item.Name}
				byProduct[key] = tp
			}
			tp.Qty += item.Qty
			tp.Revenue += item.Net
		}
	}

	out := make([]entity.TopProduct, 0, len(byProduct))
	for _, tp := range byProduct {
		out = append(out, *tp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Qty != out[j].Qty {
			return out[i].Qty > out[j].Qty
		}
		if out[i].Revenue != out[j].Revenue {
			return out[i].Revenue > out[j].Revenue
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func dailySales(transactions []entity.Transaction, loc *time.Location) []entity.DailySales {
	days := []entity.DailySales{}
	index := make(map[string]int)
	for _, tx := range transactions {
		day := tx.Timestamp.In(loc).Format("2006-01-02")
		i, ok := index[day]
		if !ok {
			i = len(days)
			index[day] = i
			days = append(days, entity.DailySales{Date: day})
		}
		days[i].Revenue += tx.GrandTotal
		days[i].Profit += tx.Profit
		days[i].Count++
	}
	sort.SliceStable(days, func(i, j int) bool {
		return days[i].Date < days[j].Date
	})
	return days
}

func startLabel(start time.Time) string {
	if start.IsZero() {
		return "beginning"
	}
	return start.Format("2006-01-02")
}
