package sheets

import (
	"testing"
	"time"

	"github.com/yourusername/line-shop-bot/internal/domain/entity"
)

func TestRowToProduct(t *testing.T) {
	t.Run("full row", func(t *testing.T) {
		p, ok := rowToProduct([]interface{}{"A123", "Fish Tank Kit", "45.50", "have", "", "display model"})
		if !ok {
			t.Fatal("row rejected")
		}
		if p.Code != "A123" || p.Name != "Fish Tank Kit" || p.Price != 45.50 {
			t.Errorf("unexpected product: %+v", p)
		}
		if p.Stock != "have" || p.Remarks != "display model" {
			t.Errorf("unexpected stock/remarks: %+v", p)
		}
	})

	t.Run("short row padded", func(t *testing.T) {
		p, ok := rowToProduct([]interface{}{"B1", "Calendar"})
		if !ok {
			t.Fatal("row rejected")
		}
		if p.Price != 0 || p.Stock != "" {
			t.Errorf("unexpected defaults: %+v", p)
		}
	})

	t.Run("nameless row skipped", func(t *testing.T) {
		if _, ok := rowToProduct([]interface{}{"C1", "", "12"}); ok {
			t.Error("row without name must be skipped")
		}
	})

	t.Run("whitespace trimmed", func(t *testing.T) {
		p, _ := rowToProduct([]interface{}{" A1 ", " Mug ", " 3 "})
		if p.Code != "A1" || p.Name != "Mug" || p.Price != 3 {
			t.Errorf("cells not trimmed: %+v", p)
		}
	})
}

func TestParsePrice(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"45.50", 45.50},
		{"1,200", 1200},
		{"$12", 12},
		{"", 0},
		{"n/a", 0},
		{"-5", 0},
	}
	for _, tc := range cases {
		if got := parsePrice(tc.in); got != tc.want {
			t.Errorf("parsePrice(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestOrderToRow(t *testing.T) {
	ts := time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)
	order := entity.Order{
		ID:          "ord-1",
		UserID:      "U42",
		DisplayName: "Mya",
		ProductCode: "A123",
		ProductName: "Fish Tank Kit",
		Qty:         2,
		Price:       45.50,
		Status:      entity.OrderStatusPending,
		CreatedAt:   ts,
	}

	row := orderToRow(order)
	if len(row) != 9 {
		t.Fatalf("row length = %d, want 9", len(row))
	}
	if row[0] != "2026-03-01T10:30:00Z" {
		t.Errorf("timestamp cell = %v", row[0])
	}
	if row[1] != "ord-1" || row[6] != 2 || row[8] != entity.OrderStatusPending {
		t.Errorf("unexpected row: %v", row)
	}
}
