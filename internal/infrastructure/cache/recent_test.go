package cache

import (
	"fmt"
	"testing"

	"github.com/yourusername/line-shop-bot/internal/domain/entity"
)

func TestRecentMatchesEviction(t *testing.T) {
	c := NewRecentMatches(10)

	for i := 0; i < 15; i++ {
		c.Record("u1", entity.Product{Code: fmt.Sprintf("P%d", i)})
	}

	all := c.All("u1")
	if len(all) != 10 {
		t.Fatalf("len = %d, want 10", len(all))
	}
	// Oldest evicted first: P5..P14 remain.
	if all[0].Code != "P5" {
		t.Errorf("oldest remaining = %v, want P5", all[0].Code)
	}

	last, ok := c.Last("u1")
	if !ok || last.Code != "P14" {
		t.Errorf("Last = %v/%v, want P14/true", last.Code, ok)
	}
}

func TestRecentMatchesIsolatedPerUser(t *testing.T) {
	c := NewRecentMatches(0) // default cap

	c.Record("u1", entity.Product{Code: "A"})
	c.Record("u2", entity.Product{Code: "B"})

	if last, _ := c.Last("u1"); last.Code != "A" {
		t.Errorf("u1 last = %v, want A", last.Code)
	}
	if last, _ := c.Last("u2"); last.Code != "B" {
		t.Errorf("u2 last = %v, want B", last.Code)
	}

	c.Clear("u1")
	if _, ok := c.Last("u1"); ok {
		t.Error("u1 should be empty after Clear")
	}
	if _, ok := c.Last("u2"); !ok {
		t.Error("u2 must survive u1's Clear")
	}
}

func TestRecentMatchesEmptyUser(t *testing.T) {
	c := NewRecentMatches(5)
	c.Record("", entity.Product{Code: "A"})
	if _, ok := c.Last(""); ok {
		t.Error("empty user id must not be recorded")
	}
}
