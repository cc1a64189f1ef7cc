package matcher

import (
	"sort"
	"strings"

	"github.com/yourusername/line-shop-bot/internal/domain/entity"
)

// DefaultThreshold is the similarity acceptance threshold used when the
// deployment does not configure one.
const DefaultThreshold = 0.5

// maxCandidates caps a MultiMatch candidate list.
const maxCandidates = 5

// Kind tags a resolution outcome.
type Kind int

const (
	NoMatch Kind = iota
	SingleMatch
	MultiMatch
)

// Outcome is the result of resolving one keyword against a catalog
// snapshot. Product is set only for SingleMatch; Candidates only for
// MultiMatch, ranked by tier order and never shorter than 2 or longer
// than 5.
type Outcome struct {
	Kind       Kind
	Product    entity.Product
	Candidates []entity.Product
}

// Resolver matches keywords against a catalog snapshot using a fixed
// tier policy: exact code, substring, then similarity. The first tier
// producing candidates wins.
type Resolver struct {
	threshold float64
}

// NewResolver creates a resolver with the given similarity threshold.
// Non-positive values fall back to DefaultThreshold.
func NewResolver(threshold float64) *Resolver {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Resolver{threshold: threshold}
}

// Resolve returns the outcome for one keyword. An empty or
// whitespace-only keyword is an input guard: NoMatch without scanning.
func (r *Resolver) Resolve(catalog []entity.Product, keyword string) Outcome {
	if strings.TrimSpace(keyword) == "" {
		return Outcome{Kind: NoMatch}
	}

	norm := Normalize(keyword)
	if norm == "" {
		return Outcome{Kind: NoMatch}
	}

	// Tier 1: exact code. Equality short-circuits every other tier.
	for _, p := range catalog {
		if p.Code != "" && strings.ToLower(strings.TrimSpace(p.Code)) == norm {
			return Outcome{Kind: SingleMatch, Product: p}
		}
	}

	// Tier 2: substring over code and normalized name, catalog order.
	var candidates []entity.Product
	for _, p := range catalog {
		code := strings.ToLower(strings.TrimSpace(p.Code))
		if code != "" && strings.Contains(code, norm) {
			candidates = append(candidates, p)
			continue
		}
		if strings.Contains(Normalize(p.Name), norm) {
			candidates = append(candidates, p)
		}
	}

	// Tier 3: similarity, only when the substring tier found nothing.
	if len(candidates) == 0 {
		candidates = r.bySimilarity(catalog, norm)
	}

	return collapse(candidates)
}

// bySimilarity keeps catalog entries whose normalized name scores at or
// above the threshold, sorted by score descending. Ties keep catalog
// order (stable sort).
func (r *Resolver) bySimilarity(catalog []entity.Product, norm string) []entity.Product {
	type scored struct {
		product entity.Product
		score   float64
	}

	var hits []scored
	for _, p := range catalog {
		s := Similarity(Normalize(p.Name), norm)
		if s >= r.threshold {
			hits = append(hits, scored{product: p, score: s})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].score > hits[j].score
	})

	out := make([]entity.Product, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.product)
	}
	return out
}

// collapse turns a ranked candidate set into the tagged outcome.
func collapse(candidates []entity.Product) Outcome {
	switch len(candidates) {
	case 0:
		return Outcome{Kind: NoMatch}
	case 1:
		return Outcome{Kind: SingleMatch, Product: candidates[0]}
	}
	if len(candidates) > maxCandidates {
		candidates = candidates[:maxCandidates]
	}
	return Outcome{Kind: MultiMatch, Candidates: candidates}
}
