package storage

import (
	"context"
	"sync"
	"time"

	"github.com/yourusername/line-shop-bot/internal/domain/entity"
	"github.com/yourusername/line-shop-bot/internal/domain/repository"
)

// CatalogCache decorates a CatalogSource with a TTL snapshot so every
// webhook event sees one consistent catalog without refetching the
// sheet per message. A zero TTL disables caching.
type CatalogCache struct {
	mu        sync.RWMutex
	source    repository.CatalogSource
	ttl       time.Duration
	products  []entity.Product
	fetchedAt time.Time
}

// NewCatalogCache wraps source with a snapshot held for ttl.
func NewCatalogCache(source repository.CatalogSource, ttl time.Duration) *CatalogCache {
	return &CatalogCache{source: source, ttl: ttl}
}

// Fetch returns the cached snapshot, refreshing from the source when
// stale. Callers get a copy and can hold it across a whole request.
func (c *CatalogCache) Fetch(ctx context.Context) ([]entity.Product, error) {
	c.mu.RLock()
	if c.products != nil && time.Since(c.fetchedAt) < c.ttl {
		snapshot := c.snapshotLocked()
		c.mu.RUnlock()
		return snapshot, nil
	}
	c.mu.RUnlock()

	products, err := c.source.Fetch(ctx)
	if err != nil {
		// Serve a stale snapshot rather than failing the request.
		c.mu.RLock()
		defer c.mu.RUnlock()
		if c.products != nil {
			return c.snapshotLocked(), nil
		}
		return nil, err
	}

	c.mu.Lock()
	c.products = products
	c.fetchedAt = time.Now()
	snapshot := c.snapshotLocked()
	c.mu.Unlock()
	return snapshot, nil
}

// Invalidate forces the next Fetch to hit the source.
func (c *CatalogCache) Invalidate() {
	c.mu.Lock()
	c.products = nil
	c.mu.Unlock()
}

// Info describes the held snapshot.
func (c *CatalogCache) Info() (count int, fetchedAt time.Time) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.products), c.fetchedAt
}

func (c *CatalogCache) snapshotLocked() []entity.Product {
	out := make([]entity.Product, len(c.products))
	copy(out, c.products)
	return out
}
