package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/yourusername/line-shop-bot/internal/domain/entity"
	"github.com/yourusername/line-shop-bot/internal/domain/repository"
)

// snapshotCache is the optional maintenance surface of a caching
// catalog source.
type snapshotCache interface {
	Invalidate()
	Info() (count int, fetchedAt time.Time)
}

// CatalogUseCase hands request handlers their catalog snapshot and
// gives the operator surface refresh and snapshot metadata.
type CatalogUseCase struct {
	source repository.CatalogSource
	cache  snapshotCache
	name   string
}

// NewCatalogUseCase wires the catalog source. A source that also
// implements the cache surface gains Refresh and a real fetch
// timestamp on snapshots.
func NewCatalogUseCase(source repository.CatalogSource, sourceName string) *CatalogUseCase {
	u := &CatalogUseCase{source: source, name: sourceName}
	if c, ok := source.(snapshotCache); ok {
		u.cache = c
	}
	return u
}

// Snapshot fetches the catalog for one request. An empty catalog is
// not an error; resolution just finds nothing.
func (u *CatalogUseCase) Snapshot(ctx context.Context) (entity.ProductCatalog, error) {
	products, err := u.source.Fetch(ctx)
	if err != nil {
		return entity.ProductCatalog{}, fmt.Errorf("failed to fetch catalog: %w", err)
	}

	snap := entity.ProductCatalog{
		Products:  products,
		UpdatedAt: time.Now(),
		Source:    u.name,
	}
	if u.cache != nil {
		_, snap.UpdatedAt = u.cache.Info()
	}
	return snap, nil
}

// Refresh drops the cached snapshot and fetches a fresh one.
func (u *CatalogUseCase) Refresh(ctx context.Context) (entity.ProductCatalog, error) {
	if u.cache != nil {
		u.cache.Invalidate()
	}
	return u.Snapshot(ctx)
}
