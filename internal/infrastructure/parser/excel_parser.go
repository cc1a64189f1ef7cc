// Package parser loads the product catalog from a local Excel
// workbook, for dev and offline deployments where the Google Sheet is
// not reachable.
package parser

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/yourusername/line-shop-bot/internal/domain/entity"
)

// FileCatalog is a CatalogSource that re-reads an .xlsx on every Fetch,
// so edits to the file show up without a restart.
type FileCatalog struct {
	path string
}

// NewFileCatalog points a catalog source at an .xlsx path.
func NewFileCatalog(path string) *FileCatalog {
	return &FileCatalog{path: path}
}

// Fetch re-reads the workbook.
func (f *FileCatalog) Fetch(ctx context.Context) ([]entity.Product, error) {
	wb, err := excelize.OpenFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open excel file: %w", err)
	}
	defer wb.Close()

	return parseWorkbook(wb)
}

// ParseProductsFromBytes parses a workbook already held in memory.
func ParseProductsFromBytes(data []byte) ([]entity.Product, error) {
	wb, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open excel from bytes: %w", err)
	}
	defer wb.Close()

	return parseWorkbook(wb)
}

func parseWorkbook(wb *excelize.File) ([]entity.Product, error) {
	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("excel file has no sheets")
	}

	rows, err := wb.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("excel file is empty")
	}

	cols, startRow := mapColumns(rows)

	var products []entity.Product
	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if p, ok := rowToProduct(row, cols); ok {
			products = append(products, p)
		}
	}
	return products, nil
}

// columnMap holds the resolved column index per field; -1 means absent.
type columnMap struct {
	code, name, price, stock, eta, remarks int
}

var defaultColumns = columnMap{code: 0, name: 1, price: 2, stock: 3, eta: 4, remarks: 5}

// headerNames maps recognized header cells to fields. Catalog files
// come from different hands, so a few synonyms per column.
var headerNames = map[string]string{
	"code": "code", "id": "code", "sku": "code",
	"name": "name", "product": "name", "item": "name",
	"price": "price", "cost": "price", "amount": "price",
	"stock": "stock", "qty": "stock", "quantity": "stock", "have": "stock",
	"eta": "eta", "restock": "eta", "restock eta": "eta", "arrival": "eta",
	"remarks": "remarks", "notes": "remarks", "note": "remarks",
}

// mapColumns reads the first row as a header when it looks like one
// (no parseable price cell), otherwise assumes the default layout with
// data starting at row 0.
func mapColumns(rows [][]string) (columnMap, int) {
	first := rows[0]
	for _, cell := range first {
		if _, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(cell), ",", ""), 64); err == nil {
			// A numeric cell in row 0 means there is no header.
			return defaultColumns, 0
		}
	}

	cols := columnMap{code: -1, name: -1, price: -1, stock: -1, eta: -1, remarks: -1}
	matched := false
	for idx, cell := range first {
		field, ok := headerNames[strings.ToLower(strings.TrimSpace(cell))]
		if !ok {
			continue
		}
		matched = true
		switch field {
		case "code":
			cols.code = idx
		case "name":
			cols.name = idx
		case "price":
			cols.price = idx
		case "stock":
			cols.stock = idx
		case "eta":
			cols.eta = idx
		case "remarks":
			cols.remarks = idx
		}
	}

	if !matched || cols.name == -1 {
		return defaultColumns, 1
	}
	return cols, 1
}

func rowToProduct(row []string, cols columnMap) (entity.Product, bool) {
	name := cell(row, cols.name)
	if name == "" {
		return entity.Product{}, false
	}

	return entity.Product{
		Code:       cell(row, cols.code),
		Name:       name,
		Price:      parsePrice(cell(row, cols.price)),
		Stock:      cell(row, cols.stock),
		RestockEta: cell(row, cols.eta),
		Remarks:    cell(row, cols.remarks),
	}, true
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parsePrice(s string) float64 {
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(strings.TrimLeft(s, "$"))
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}
