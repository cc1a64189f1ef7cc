package usecase

import (
	"fmt"
	"strings"

	"github.com/yourusername/line-shop-bot/internal/domain/entity"
	"github.com/yourusername/line-shop-bot/internal/infrastructure/cache"
	"github.com/yourusername/line-shop-bot/internal/matcher"
)

// Reply texts assembled by the orchestrator.
const (
	msgNoKeyword = "Please tell me which product you are asking about, e.g. \"price Fish Tank Kit\"."
	msgPickOne   = "Which one do you mean? Reply with the code."
)

// QueryUseCase is the batch query orchestrator: it splits a raw
// message into keywords, resolves each against the catalog snapshot
// and formats one reply block per keyword.
type QueryUseCase struct {
	resolver *matcher.Resolver
	recent   *cache.RecentMatches
}

// NewQueryUseCase wires the resolver and the per-user recency cache.
// The cache is optional; a nil cache just disables recording.
func NewQueryUseCase(resolver *matcher.Resolver, recent *cache.RecentMatches) *QueryUseCase {
	return &QueryUseCase{resolver: resolver, recent: recent}
}

// ResolveBatch answers a raw query message. Blocks come back joined by
// a blank line, ready for the transport to chunk. wantsPrice/wantsStock
// narrow the single-match block; neither set means both are shown.
func (u *QueryUseCase) ResolveBatch(catalog []entity.Product, userID, rawText string, wantsPrice, wantsStock bool) string {
	keywords := matcher.SplitKeywords(rawText)
	if len(keywords) == 0 {
		return msgNoKeyword
	}

	// Default-both policy.
	if !wantsPrice && !wantsStock {
		wantsPrice = true
		wantsStock = true
	}

	blocks := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		outcome := u.resolver.Resolve(catalog, kw)
		blocks = append(blocks, u.formatOutcome(userID, kw, outcome, wantsPrice, wantsStock))
	}
	return strings.Join(blocks, "\n\n")
}

// ResolveCode answers a code-lookup message: same resolution, but the
// reply leads with the product code.
func (u *QueryUseCase) ResolveCode(catalog []entity.Product, userID, rawText string) string {
	keywords := matcher.SplitKeywords(rawText)
	if len(keywords) == 0 {
		return msgNoKeyword
	}

	blocks := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		outcome := u.resolver.Resolve(catalog, kw)
		switch outcome.Kind {
		case matcher.SingleMatch:
			u.record(userID, outcome.Product)
			code := outcome.Product.Code
			if code == "" {
				code = "(no code)"
			}
			blocks = append(blocks, fmt.Sprintf("%s - %s", code, outcome.Product.Name))
		case matcher.MultiMatch:
			blocks = append(blocks, formatCandidates(kw, outcome.Candidates))
		default:
			blocks = append(blocks, notFound(kw))
		}
	}
	return strings.Join(blocks, "\n\n")
}

// Resolve exposes single-keyword resolution for the order flow.
func (u *QueryUseCase) Resolve(catalog []entity.Product, keyword string) matcher.Outcome {
	return u.resolver.Resolve(catalog, keyword)
}

// LastMatch returns the user's most recent single match, for bare
// "order" messages.
func (u *QueryUseCase) LastMatch(userID string) (entity.Product, bool) {
	if u.recent == nil {
		return entity.Product{}, false
	}
	return u.recent.Last(userID)
}

// RememberMatch records a resolved product for the user.
func (u *QueryUseCase) RememberMatch(userID string, p entity.Product) {
	u.record(userID, p)
}

func (u *QueryUseCase) record(userID string, p entity.Product) {
	if u.recent != nil {
		u.recent.Record(userID, p)
	}
}

func (u *QueryUseCase) formatOutcome(userID, keyword string, outcome matcher.Outcome, wantsPrice, wantsStock bool) string {
	switch outcome.Kind {
	case matcher.SingleMatch:
		u.record(userID, outcome.Product)
		return formatProduct(outcome.Product, wantsPrice, wantsStock)
	case matcher.MultiMatch:
		return formatCandidates(keyword, outcome.Candidates)
	default:
		return notFound(keyword)
	}
}

// notFound names the failed keyword verbatim, not normalized.
func notFound(keyword string) string {
	return fmt.Sprintf("Sorry, I could not find \"%s\" in the catalog.", keyword)
}

func formatProduct(p entity.Product, wantsPrice, wantsStock bool) string {
	var sb strings.Builder
	sb.WriteString(p.Name)

	if wantsPrice {
		sb.WriteString(fmt.Sprintf("\nPrice: %s", formatPrice(p.Price)))
	}
	if wantsStock {
		sb.WriteString(fmt.Sprintf("\nStock: %s", formatStock(p)))
	}
	if p.Remarks != "" {
		sb.WriteString(fmt.Sprintf("\nNote: %s", p.Remarks))
	}
	return sb.String()
}

func formatCandidates(keyword string, candidates []entity.Product) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("I found several matches for \"%s\":\n", keyword))
	for _, c := range candidates {
		if c.Code != "" {
			sb.WriteString(fmt.Sprintf("- [%s] %s\n", c.Code, c.Name))
		} else {
			sb.WriteString(fmt.Sprintf("- %s\n", c.Name))
		}
	}
	sb.WriteString(msgPickOne)
	return sb.String()
}

func formatPrice(v float64) string {
	if v == 0 {
		return "ask staff"
	}
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.2f", v)
}

// formatStock renders the stock column: presence markers become
// friendly text, counts and free-text statuses pass through, and the
// restock ETA is added when the item is out.
func formatStock(p entity.Product) string {
	switch {
	case p.Stock == entity.StockHave:
		return "in stock"
	case p.Stock == entity.StockNone || p.Stock == "" || p.Stock == "0":
		if p.RestockEta != "" {
			return fmt.Sprintf("out of stock (restock %s)", p.RestockEta)
		}
		return "out of stock"
	case p.InStock():
		return fmt.Sprintf("%s left", p.Stock)
	default:
		// Free-text status, shown as written in the sheet.
		return p.Stock
	}
}
