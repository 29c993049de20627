package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/sangkips/shop-pos/internal/domain/entity"
	"github.com/sangkips/shop-pos/internal/domain/enum"
	"github.com/sangkips/shop-pos/pkg/logger"
	"github.com/sangkips/shop-pos/pkg/printer"
	"github.com/sirupsen/logrus"
)

// ReceiptRenderer outputs a finished receipt, e.g. to a thermal printer.
type ReceiptRenderer interface {
	Render(ctx context.Context, receipt *entity.Receipt) error
}

// PrinterService handles receipt formatting and thermal printing.
type PrinterService struct {
	printer     printer.Printer
	printerType string
	store       *StateStore
	ledger      *LedgerService
	loc         *time.Location
	log         *logrus.Logger
}

// NewPrinterService creates a new printer service.
func NewPrinterService(
	p printer.Printer,
	printerType string,
	store *StateStore,
	ledger *LedgerService,
	loc *time.Location,
	log *logrus.Logger,
) *PrinterService {
	if loc == nil {
		loc = time.Local
	}
	if log == nil {
		log = logger.Discard()
	}
	return &PrinterService{
		printer:     p,
		printerType: printerType,
		store:       store,
		ledger:      ledger,
		loc:         loc,
		log:         log,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus() *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != printer.TypeNone && s.printerType != "",
		Connected:  s.printer.IsConnected(),
		Type:       s.printerType,
	}
}

// Render sends the receipt to the printer as ESC/POS.
func (s *PrinterService) Render(ctx context.Context, receipt *entity.Receipt) error {
	if err := s.printer.Print(ctx, FormatReceipt(receipt)); err != nil {
		return fmt.Errorf("failed to print receipt: %w", err)
	}
	return nil
}

// TestPrint sends a test page to the printer.
// Returns the receipt data so the handler can return it as JSON when printer is disabled.
func (s *PrinterService) TestPrint(ctx context.Context) (*entity.Receipt, error) {
	state, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}

	receipt := &entity.Receipt{
		Header: entity.ReceiptHeader{
			ShopName: state.Settings.ShopName,
			Address:  state.Settings.Address,
			Phone:    state.Settings.Phone,
		},
		ReceiptNo:     "TEST-001",
		Date:          time.Now().In(s.loc).Format("2006-01-02 15:04"),
		PaymentMethod: enum.PaymentMethodCash.Label(),
		Items: []entity.ReceiptItem{
			{Name: "Test Item 1", Quantity: 1, UnitPrice: 1000, Total: 1000},
			{Name: "Test Item 2", Quantity: 2, UnitPrice: 500, Total: 1000},
		},
		SubTotal:    2000,
		TaxableBase: 2000,
		Total:       2000,
		Paid:        2000,
		Footer:      "PRINTER TEST",
		Width:       state.Settings.PaperWidth,
	}

	if err := s.Render(ctx, receipt); err != nil {
		return receipt, fmt.Errorf("test print failed: %w", err)
	}
	return receipt, nil
}

// ReceiptForTransaction builds the receipt of a ledger transaction with the
// current shop settings.
func (s *PrinterService) ReceiptForTransaction(ctx context.Context, id string) (*entity.Receipt, error) {
	tx, err := s.ledger.GetTransaction(ctx, id)
	if err != nil {
		return nil, err
	}
	state, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}
	return BuildReceipt(tx, &state.Settings, s.loc), nil
}

// PrintTransaction reprints the receipt of a ledger transaction.
func (s *PrinterService) PrintTransaction(ctx context.Context, id string) (*entity.Receipt, error) {
	receipt, err := s.ReceiptForTransaction(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.Render(ctx, receipt); err != nil {
		logger.LogError(s.log, "printer", "PrintTransaction", id, err)
		return receipt, err
	}
	return receipt, nil
}

// BuildReceipt composes the printable receipt of a transaction.
func BuildReceipt(tx *entity.Transaction, settings *entity.Settings, loc *time.Location) *entity.Receipt {
	if loc == nil {
		loc = time.Local
	}

	receipt := &entity.Receipt{
		Header: entity.ReceiptHeader{
			ShopName: settings.ShopName,
			Address:  settings.Address,
			Phone:    settings.Phone,
		},
		ReceiptNo:     tx.ReceiptNo,
		Date:          tx.Timestamp.In(loc).Format("2006-01-02 15:04"),
		PaymentMethod: tx.PaymentMethod.Label(),
		Currency:      settings.Currency,
		Items:         make([]entity.ReceiptItem, 0, len(tx.Items)),
		SubTotal:      tx.Subtotal,
		ItemDiscount:  tx.ItemDiscountTotal,
		OrderDiscount: tx.OrderDiscountTotal,
		TaxableBase:   tx.TaxableBase,
		TaxPct:        tx.TaxPct,
		Tax:           tx.TaxAmount,
		Total:         tx.GrandTotal,
		Paid:          tx.Paid,
		Change:        tx.Change,
		Footer:        settings.Footer,
		Width:         settings.PaperWidth,
	}

	switch tx.OrderDiscountType {
	case enum.DiscountTypePercent:
		receipt.DiscountLabel = "Discount (" + formatPct(tx.OrderDiscountValue) + "%):"
	case enum.DiscountTypeAmount:
		receipt.DiscountLabel = "Discount:"
	}

	for _, item := range tx.Items {
		receipt.Items = append(receipt.Items, entity.ReceiptItem{
			Name:           item.Name,
			Quantity:       item.Qty,
			UnitPrice:      item.Price,
			DiscountPct:    item.DiscountPct,
			DiscountAmount: item.DiscountAmount,
			Total:          item.Net,
			Note:           item.Note,
		})
	}
	return receipt
}

// FormatReceipt converts a Receipt into ESC/POS bytes.
func FormatReceipt(r *entity.Receipt) []byte {
	doc := printer.NewDocument(r.Width)
	writeReceipt(doc, r)
	return doc.Bytes()
}

// FormatReceiptText renders a Receipt as plain monospace text.
func FormatReceiptText(r *entity.Receipt) string {
	doc := printer.NewTextDocument(r.Width)
	writeReceipt(doc, r)
	return doc.String()
}

func writeReceipt(doc *printer.Document, r *entity.Receipt) {
	// Header
	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(r.Header.ShopName).
		SetFontSize(printer.FontNormal).
		SetBold(false)

	if r.Header.Address != "" {
		doc.Text(r.Header.Address)
	}
	if r.Header.Phone != "" {
		doc.Text(r.Header.Phone)
	}

	doc.SetAlign(printer.AlignLeft).
		Separator('-')

	// Receipt info
	doc.KeyValue("Receipt:", r.ReceiptNo).
		KeyValue("Date:", r.Date)
	if r.PaymentMethod != "" {
		doc.KeyValue("Payment:", r.PaymentMethod)
	}

	doc.Separator('-')

	// Items
	for _, item := range r.Items {
		doc.ItemLine(item.Quantity, item.Name, FormatMoney(item.Total))
		if item.Quantity > 1 {
			doc.TextF("  @ %s each", FormatMoney(item.UnitPrice))
		}
		if item.DiscountAmount > 0 {
			doc.TextF("  Disc %s%% -%s", formatPct(item.DiscountPct), FormatMoney(item.DiscountAmount))
		}
		if item.Note != "" {
			doc.TextF("  * %s", item.Note)
		}
	}

	doc.Separator('-')

	// Totals
	doc.KeyValue("Subtotal:", FormatMoney(r.SubTotal))
	if r.ItemDiscount > 0 {
		doc.KeyValue("Item discount:", "-"+FormatMoney(r.ItemDiscount))
	}
	if r.OrderDiscount > 0 {
		label := r.DiscountLabel
		if label == "" {
			label = "Discount:"
		}
		doc.KeyValue(label, "-"+FormatMoney(r.OrderDiscount))
	}
	if r.TaxPct > 0 || r.Tax > 0 {
		doc.KeyValue("DPP:", FormatMoney(r.TaxableBase)).
			KeyValue("Tax ("+formatPct(r.TaxPct)+"%):", FormatMoney(r.Tax))
	}
	doc.SetBold(true).
		KeyValue("TOTAL:", FormatMoney(r.Total)).
		SetBold(false)

	doc.KeyValue("Paid:", FormatMoney(r.Paid)).
		KeyValue("Change:", FormatMoney(r.Change))

	doc.Separator('-')

	// Footer
	if r.Footer != "" {
		doc.SetAlign(printer.AlignCenter).
			Text(r.Footer).
			SetAlign(printer.AlignLeft)
	}

	doc.Finish()
}

// FormatMoney renders an amount with thousands separators, e.g. 19800 -> "19,800".
func FormatMoney(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	digits := strconv.FormatInt(amount, 10)
	if len(digits) <= 3 {
		return sign + digits
	}

	out := make([]byte, 0, len(digits)+len(digits)/3)
	lead := len(digits) % 3
	if lead > 0 {
		out = append(out, digits[:lead]...)
	}
	for i := lead; i < len(digits); i += 3 {
		if len(out) > 0 {
			out = append(out, ',')
		}
		out = append(out, digits[i:i+3]...)
	}
	return sign + string(out)
}

func formatPct(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
