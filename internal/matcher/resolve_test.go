package matcher

import (
	"fmt"
	"testing"

	"github.com/yourusername/line-shop-bot/internal/domain/entity"
)

func testCatalog() []entity.Product {
	return []entity.Product{
		{Code: "A123", Name: "Fish Tank Kit", Price: 45},
		{Code: "B1", Name: "Calendar", Price: 3},
		{Code: "B2", Name: "Calendar Deluxe", Price: 7},
		{Code: "C1", Name: "Curious Frog", Price: 12},
	}
}

func TestResolveEmptyKeyword(t *testing.T) {
	r := NewResolver(0)
	for _, kw := range []string{"", "   ", "\t\n"} {
		if out := r.Resolve(testCatalog(), kw); out.Kind != NoMatch {
			t.Errorf("Resolve(catalog, %q).Kind = %v, want NoMatch", kw, out.Kind)
		}
	}
}

func TestResolveEmptyCatalog(t *testing.T) {
	r := NewResolver(0)
	if out := r.Resolve(nil, "anything"); out.Kind != NoMatch {
		t.Errorf("empty catalog: Kind = %v, want NoMatch", out.Kind)
	}
}

func TestResolveExactCodeWins(t *testing.T) {
	r := NewResolver(0)

	out := r.Resolve(testCatalog(), "a123")
	if out.Kind != SingleMatch {
		t.Fatalf("Kind = %v, want SingleMatch", out.Kind)
	}
	if out.Product.Name != "Fish Tank Kit" {
		t.Errorf("Product = %q, want Fish Tank Kit", out.Product.Name)
	}

	// Exact code beats substring hits on other entries' names.
	catalog := []entity.Product{
		{Code: "X9", Name: "calendar b1 special"},
		{Code: "B1", Name: "Calendar"},
	}
	out = r.Resolve(catalog, "B1")
	if out.Kind != SingleMatch || out.Product.Code != "B1" {
		t.Errorf("exact-code tier did not win: %+v", out)
	}
}

func TestResolveSubstringTier(t *testing.T) {
	r := NewResolver(0)

	out := r.Resolve(testCatalog(), "calendar")
	if out.Kind != MultiMatch {
		t.Fatalf("Kind = %v, want MultiMatch", out.Kind)
	}
	if len(out.Candidates) != 2 {
		t.Fatalf("candidates = %d, want 2", len(out.Candidates))
	}
	// Catalog order preserved in the substring tier.
	if out.Candidates[0].Code != "B1" || out.Candidates[1].Code != "B2" {
		t.Errorf("candidate order = %v / %v, want B1 / B2", out.Candidates[0].Code, out.Candidates[1].Code)
	}
}

func TestResolveSubstringOnCode(t *testing.T) {
	r := NewResolver(0)
	out := r.Resolve(testCatalog(), "b1")
	// "b1" equals code B1 exactly, so the code tier takes it.
	if out.Kind != SingleMatch || out.Product.Code != "B1" {
		t.Fatalf("want SingleMatch B1, got %+v", out)
	}

	catalog := []entity.Product{
		{Code: "ZZ-10", Name: "Widget"},
		{Code: "ZZ-11", Name: "Widget Pro"},
	}
	out = r.Resolve(catalog, "zz-1")
	if out.Kind != MultiMatch || len(out.Candidates) != 2 {
		t.Fatalf("code substring: want MultiMatch of 2, got %+v", out)
	}
}

func TestResolveSimilarityTier(t *testing.T) {
	r := NewResolver(0.5)

	out := r.Resolve(testCatalog(), "curius frog")
	if out.Kind != SingleMatch {
		t.Fatalf("Kind = %v, want SingleMatch via similarity", out.Kind)
	}
	if out.Product.Code != "C1" {
		t.Errorf("Product = %v, want C1", out.Product.Code)
	}
}

func TestResolveSimilarityBelowThreshold(t *testing.T) {
	r := NewResolver(0.5)
	if out := r.Resolve(testCatalog(), "zzzzzzzz"); out.Kind != NoMatch {
		t.Errorf("Kind = %v, want NoMatch", out.Kind)
	}
}

func TestResolveSimilarityRanking(t *testing.T) {
	r := NewResolver(0.4)
	catalog := []entity.Product{
		{Code: "P1", Name: "calendor"},  // distance 2 from "calender"
		{Code: "P2", Name: "calenders"}, // distance 1
	}
	out := r.Resolve(catalog, "calender qq") // no substring hit
	if out.Kind != MultiMatch {
		t.Fatalf("Kind = %v, want MultiMatch", out.Kind)
	}
	// P2 is one edit away, P1 two; score descending puts P2 first.
	if out.Candidates[0].Code != "P2" || out.Candidates[1].Code != "P1" {
		t.Errorf("ranking = %v / %v, want P2 / P1", out.Candidates[0].Code, out.Candidates[1].Code)
	}
}

func TestResolveMultiMatchCap(t *testing.T) {
	var catalog []entity.Product
	for i := 0; i < 9; i++ {
		catalog = append(catalog, entity.Product{
			Code: fmt.Sprintf("M%d", i),
			Name: fmt.Sprintf("Mega Mug %d", i),
		})
	}

	r := NewResolver(0)
	out := r.Resolve(catalog, "mega mug")
	if out.Kind != MultiMatch {
		t.Fatalf("Kind = %v, want MultiMatch", out.Kind)
	}
	if len(out.Candidates) > 5 {
		t.Errorf("candidates = %d, want <= 5", len(out.Candidates))
	}
	if len(out.Candidates) < 2 {
		t.Errorf("candidates = %d, want >= 2", len(out.Candidates))
	}
	// First five in catalog order.
	for i, c := range out.Candidates {
		if want := fmt.Sprintf("M%d", i); c.Code != want {
			t.Errorf("candidate %d = %v, want %v", i, c.Code, want)
		}
	}
}

func TestResolveCaseFoldedCode(t *testing.T) {
	r := NewResolver(0)
	catalog := []entity.Product{{Code: "AbC1", Name: "Mixed"}}
	if out := r.Resolve(catalog, "aBc1"); out.Kind != SingleMatch {
		t.Errorf("mixed-case code: Kind = %v, want SingleMatch", out.Kind)
	}
}

func TestResolveEmptyCodeSkipped(t *testing.T) {
	r := NewResolver(0)
	catalog := []entity.Product{
		{Code: "", Name: "Plain Mug"},
		{Code: "", Name: "Plain Plate"},
	}
	out := r.Resolve(catalog, "plain")
	if out.Kind != MultiMatch || len(out.Candidates) != 2 {
		t.Fatalf("want MultiMatch of 2 name hits, got %+v", out)
	}
}

func TestNewResolverDefaultThreshold(t *testing.T) {
	if r := NewResolver(0); r.threshold != DefaultThreshold {
		t.Errorf("threshold = %v, want %v", r.threshold, DefaultThreshold)
	}
	if r := NewResolver(-1); r.threshold != DefaultThreshold {
		t.Errorf("threshold = %v, want %v", r.threshold, DefaultThreshold)
	}
	if r := NewResolver(0.6); r.threshold != 0.6 {
		t.Errorf("threshold = %v, want 0.6", r.threshold)
	}
}
