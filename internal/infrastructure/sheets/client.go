// Package sheets backs the catalog and the order ledger with a Google
// Sheets spreadsheet: one tab of catalog rows, one append-only tab of
// orders.
package sheets

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/yourusername/line-shop-bot/internal/domain/entity"
)

// Catalog column order: code, name, price, stock, restock eta, remarks.
const catalogColumns = 6

// Client reads the catalog tab and appends to the order tab.
type Client struct {
	svc           *sheetsapi.Service
	spreadsheetID string
	catalogSheet  string
	orderSheet    string
}

// NewClient builds a Sheets client from a service-account credentials
// file.
func NewClient(ctx context.Context, credentialsFile, spreadsheetID, catalogSheet, orderSheet string) (*Client, error) {
	svc, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		catalogSheet:  catalogSheet,
		orderSheet:    orderSheet,
	}, nil
}

// Fetch reads the whole catalog tab (minus the header row) as a
// snapshot, in sheet order. Rows without a name are skipped.
func (c *Client) Fetch(ctx context.Context) ([]entity.Product, error) {
	readRange := fmt.Sprintf("%s!A2:F", c.catalogSheet)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog range: %w", err)
	}

	products := make([]entity.Product, 0, len(resp.Values))
	for _, row := range resp.Values {
		p, ok := rowToProduct(row)
		if !ok {
			continue
		}
		products = append(products, p)
	}
	return products, nil
}

// Append writes one order row to the ledger tab.
func (c *Client) Append(ctx context.Context, order entity.Order) error {
	vr := &sheetsapi.ValueRange{Values: [][]interface{}{orderToRow(order)}}
	_, err := c.svc.Spreadsheets.Values.
		Append(c.spreadsheetID, fmt.Sprintf("%s!A:I", c.orderSheet), vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to append order row: %w", err)
	}
	return nil
}

// rowToProduct maps one sheet row onto a Product. Sheets trims trailing
// empty cells from the API response, so short rows are padded.
func rowToProduct(row []interface{}) (entity.Product, bool) {
	cells := make([]string, catalogColumns)
	for i := 0; i < catalogColumns && i < len(row); i++ {
		cells[i] = strings.TrimSpace(fmt.Sprint(row[i]))
	}

	if cells[1] == "" {
		return entity.Product{}, false
	}

	return entity.Product{
		Code:       cells[0],
		Name:       cells[1],
		Price:      parsePrice(cells[2]),
		Stock:      cells[3],
		RestockEta: cells[4],
		Remarks:    cells[5],
	}, true
}

// parsePrice tolerates thousands separators and currency residue; an
// unparseable cell yields zero rather than failing the whole snapshot.
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

func orderToRow(order entity.Order) []interface{} {
	return []interface{}{
		order.CreatedAt.Format(time.RFC3339),
		order.ID,
		order.UserID,
		order.DisplayName,
		order.ProductCode,
		order.ProductName,
		order.Qty,
		order.Price,
		order.Status,
	}
}
