package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sangkips/shop-pos/internal/domain/entity"
	"github.com/sangkips/shop-pos/pkg/apperror"
	"github.com/sangkips/shop-pos/pkg/utils"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

const catalogSheet = "Products"

var catalogHeadings = []string{"Name", "Category", "Price", "Cost", "Stock", "SKU", "Low Stock Alert"}

// ImportRowError reports a spreadsheet row that could not be imported
type ImportRowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ImportResult summarizes a catalog spreadsheet import
type ImportResult struct {
	Created int              `json:"created"`
	Updated int              `json:"updated"`
	Errors  []ImportRowError `json:"errors"`
}

// ExportProducts writes the catalog to an xlsx workbook
func (s *CatalogService) ExportProducts(ctx context.Context) ([]byte, error) {
	state, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}
	products := append([]entity.Product{}, state.Products...)
	sortProducts(products)

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", catalogSheet); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(catalogSheet, "A1", &catalogHeadings); err != nil {
		return nil, err
	}

	for i, p := range products {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{p.Name, p.Category, p.Price, p.Cost, p.Stock, p.SKU, p.LowStockAlert}
		if err := f.SetSheetRow(catalogSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write catalog workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// ImportProducts reads products from the first sheet of an xlsx workbook.
// The first row holds the headings; Name and Price are required columns.
// Rows with a SKU that already exists update that product, all other rows
// create new products. Invalid rows are skipped and reported.
func (s *CatalogService) ImportProducts(ctx context.Context, r io.Reader) (*ImportResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, apperror.NewBadRequestError("Invalid spreadsheet file")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperror.NewBadRequestError("Spreadsheet has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, apperror.NewBadRequestError("Invalid spreadsheet file")
	}
	if len(rows) == 0 {
		return nil, apperror.NewBadRequestError("Spreadsheet is empty")
	}

	columns := headingIndex(rows[0])
	if _, ok := columns["name"]; !ok {
		return nil, apperror.NewBadRequestError("Spreadsheet is missing the Name column")
	}
	if _, ok := columns["price"]; !ok {
		return nil, apperror.NewBadRequestError("Spreadsheet is missing the Price column")
	}

	result := &ImportResult{Errors: []ImportRowError{}}
	inputs := make([]ProductInput, 0, len(rows)-1)
	rowNumbers := make([]int, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rowNo := i + 2
		if isBlankRow(row) {
			continue
		}
		input, err := parseProductRow(row, columns)
		if err == nil {
			input.normalize()
			err = validateStruct(input)
		}
		if err != nil {
			result.Errors = append(result.Errors, ImportRowError{Row: rowNo, Message: rowErrorMessage(err)})
			continue
		}
		inputs = append(inputs, *input)
		rowNumbers = append(rowNumbers, rowNo)
	}

	err = s.store.Update(ctx, func(state *entity.State) ([]string, error) {
		now := s.now()
		for i := range inputs {
			in := &inputs[i]
			if in.SKU != "" {
				if idx := findBySKU(state.Products, in.SKU); idx >= 0 {
					in.apply(&state.Products[idx])
					state.Products[idx].UpdatedAt = now
					result.Updated++
					continue
				}
			}
			p := entity.Product{ID: utils.NewID(), CreatedAt: now, UpdatedAt: now}
			in.apply(&p)
			state.Products = append(state.Products, p)
			result.Created++
		}
		if result.Created+result.Updated == 0 {
			return nil, nil
		}
		return []string{entity.StateKeyProducts}, nil
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"created": result.Created,
		"updated": result.Updated,
		"skipped": len(result.Errors),
		"rows":    len(rowNumbers),
	}).Info("catalog imported")
	return result, nil
}

func headingIndex(header []string) map[string]int {
	columns := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		key = strings.ReplaceAll(key, " ", "_")
		if _, dup := columns[key]; !dup {
			columns[key] = i
		}
	}
	return columns
}

func parseProductRow(row []string, columns map[string]int) (*ProductInput, error) {
	cell := func(name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	input := &ProductInput{
		Name:     cell("name"),
		Category: cell("category"),
		SKU:      cell("sku"),
	}

	var err error
	if input.Price, err = parseAmount("price", cell("price")); err != nil {
		return nil, err
	}
	if input.Cost, err = parseAmount("cost", cell("cost")); err != nil {
		return nil, err
	}
	stock, err := parseAmount("stock", cell("stock"))
	if err != nil {
		return nil, err
	}
	input.Stock = int(stock)
	alert, err := parseAmount("low_stock_alert", cell("low_stock_alert"))
	if err != nil {
		return nil, err
	}
	input.LowStockAlert = int(alert)
	return input, nil
}

// parseAmount accepts whole numbers with optional thousands separators.
func parseAmount(field, v string) (int64, error) {
	if v == "" {
		return 0, nil
	}
	v = strings.NewReplacer(",", "", "_", "", " ", "").Replace(v)
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		f, ferr := strconv.ParseFloat(v, 64)
		if ferr != nil || f != float64(int64(f)) {
			return 0, apperror.NewFieldError(field, field+" must be a whole number")
		}
		n = int64(f)
	}
	return n, nil
}

func rowErrorMessage(err error) string {
	if appErr := apperror.GetAppError(err); len(appErr.Errors) > 0 {
		msgs := make([]string, 0, len(appErr.Errors))
		for _, fe := range appErr.Errors {
			msgs = append(msgs, fe.Message)
		}
		return strings.Join(msgs, "; ")
	}
	return err.Error()
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func findBySKU(products []entity.Product, sku string) int {
	for i := range products {
		if strings.EqualFold(products[i].SKU, sku) {
			return i
		}
	}
	return -1
}
