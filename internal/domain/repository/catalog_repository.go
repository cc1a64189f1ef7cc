package repository

import (
	"context"

	"github.com/yourusername/line-shop-bot/internal/domain/entity"
)

// CatalogSource supplies a full catalog snapshot for a request.
type CatalogSource interface {
	// Fetch returns every catalog row in sheet order.
	Fetch(ctx context.Context) ([]entity.Product, error)
}
