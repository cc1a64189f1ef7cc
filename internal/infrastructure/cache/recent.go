// Package cache holds the per-user recency cache of last-matched
// products. It is a capability handed to the query orchestrator, never
// ambient state.
package cache

import (
	"sync"

	"github.com/yourusername/line-shop-bot/internal/domain/entity"
)

// DefaultPerUser is the per-user entry cap.
const DefaultPerUser = 10

// RecentMatches remembers, per user, the products their queries last
// resolved to. Bounded: at most max entries per user, oldest evicted
// first.
type RecentMatches struct {
	mu   sync.RWMutex
	max  int
	data map[string][]entity.Product
}

// NewRecentMatches creates the cache. Non-positive max falls back to
// DefaultPerUser.
func NewRecentMatches(max int) *RecentMatches {
	if max <= 0 {
		max = DefaultPerUser
	}
	return &RecentMatches{
		max:  max,
		data: make(map[string][]entity.Product),
	}
}

// Record notes a resolved product for a user, evicting the oldest entry
// once the cap is reached.
func (c *RecentMatches) Record(userID string, p entity.Product) {
	if userID == "" {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	items := c.data[userID]
	items = append(items, p)
	if len(items) > c.max {
		items = items[len(items)-c.max:]
	}
	c.data[userID] = items
}

// Last returns the user's most recent match.
func (c *RecentMatches) Last(userID string) (entity.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	items := c.data[userID]
	if len(items) == 0 {
		return entity.Product{}, false
	}
	return items[len(items)-1], true
}

// All returns the user's recent matches, oldest first.
func (c *RecentMatches) All(userID string) []entity.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()

	items := c.data[userID]
	out := make([]entity.Product, len(items))
	copy(out, items)
	return out
}

// Clear drops a user's entries.
func (c *RecentMatches) Clear(userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, userID)
}
