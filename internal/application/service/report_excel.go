package service

import (
	"context"
	"fmt"

	"github.com/sangkips/shop-pos/internal/domain/enum"
	"github.com/xuri/excelize/v2"
)

// ExportSalesReport writes the report of a range to an xlsx workbook with a
// Summary sheet and a Transactions sheet.
func (s *ReportService) ExportSalesReport(ctx context.Context, rng enum.ReportRange) ([]byte, error) {
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

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Summary"
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, err
	}
	rows := [][]interface{}{
		{"Range", rng.String()},
		{"From", startLabel(summary.Start)},
		{"Transactions", summary.Count},
		{"Revenue", summary.Revenue},
		{"Tax", summary.Tax},
		{"Discount", summary.Discount},
		{"COGS", summary.COGS},
		{"Profit", summary.Profit},
	}
	for i := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheetName, cell, &rows[i]); err != nil {
			return nil, err
		}
	}

	txSheet := "Transactions"
	if _, err := f.NewSheet(txSheet); err != nil {
		return nil, err
	}
	headings := []string{"Receipt No", "Time", "Items", "Subtotal", "Discount", "DPP", "Tax", "Grand Total", "Paid", "Change", "Payment", "Profit"}
	if err := f.SetSheetRow(txSheet, "A1", &headings); err != nil {
		return nil, err
	}
	for i, tx := range inRange {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{
			tx.ReceiptNo,
			tx.Timestamp.In(s.loc).Format("2006-01-02 15:04:05"),
			tx.ItemCount(),
			tx.Subtotal,
			tx.DiscountTotal(),
			tx.TaxableBase,
			tx.TaxAmount,
			tx.GrandTotal,
			tx.Paid,
			tx.Change,
			tx.PaymentMethod.String(),
			tx.Profit,
		}
		if err := f.SetSheetRow(txSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write report workbook: %w", err)
	}
	return buf.Bytes(), nil
}
