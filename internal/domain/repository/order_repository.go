package repository

import (
	"context"

	"github.com/yourusername/line-shop-bot/internal/domain/entity"
)

// OrderLedger appends confirmed orders to the external order sheet.
type OrderLedger interface {
	Append(ctx context.Context, order entity.Order) error
}

// OrderStore mirrors orders locally for recent-order queries.
type OrderStore interface {
	Save(ctx context.Context, order entity.Order) error

	// Recent returns up to limit orders, newest first.
	Recent(ctx context.Context, limit int) ([]entity.Order, error)

	Close() error
}
