// Package intent classifies inbound messages by their leading intent
// marker and parses the order syntax. It sits upstream of the matcher:
// the matcher only ever sees keyword text.
package intent

import "strings"

// Kind is the recognized message intent.
type Kind int

const (
	// KindLookup is a plain product query with no marker.
	KindLookup Kind = iota
	KindPrice
	KindStock
	KindCode
	KindOrder
)

// Intent is what the classifier hands the orchestrator.
type Intent struct {
	Kind       Kind
	WantsPrice bool
	WantsStock bool

	// Keyword is the message text with the leading marker removed,
	// still raw (the splitter and normalizer run later).
	Keyword string

	// Qty is the parsed order quantity. 1 when the order syntax names
	// none, 0 when an explicit quantity failed validation.
	Qty int
}

// prefixTable maps leading markers to intents. Checked longest-first so
// "price check" wins over "price".
var prefixTable = []struct {
	marker string
	kind   Kind
}{
	{"price check", KindPrice},
	{"check price", KindPrice},
	{"price-check", KindPrice},
	{"stock check", KindStock},
	{"check stock", KindStock},
	{"stock-check", KindStock},
	{"code check", KindCode},
	{"check code", KindCode},
	{"code-check", KindCode},
	{"order", KindOrder},
	{"price", KindPrice},
	{"stock", KindStock},
	{"code", KindCode},
}

// Classify derives the intent from a raw message. A message with no
// recognized leading marker is a plain lookup with both flags unset;
// the orchestrator then applies its default-both policy.
func Classify(text string) Intent {
	trimmed := strings.TrimSpace(text)
	lower := strings.ToLower(trimmed)

	for _, entry := range prefixTable {
		if !strings.HasPrefix(lower, entry.marker) {
			continue
		}
		rest := trimmed[len(entry.marker):]
		if rest != "" && !startsWithBoundary(rest) {
			continue // marker is a prefix of a longer word
		}

		it := Intent{Kind: entry.kind, Keyword: strings.TrimSpace(rest), Qty: 1}
		switch entry.kind {
		case KindPrice:
			it.WantsPrice = true
		case KindStock:
			it.WantsStock = true
		case KindOrder:
			it.Keyword, it.Qty = parseOrder(it.Keyword)
		}
		return it
	}

	return Intent{Kind: KindLookup, Keyword: trimmed, Qty: 1}
}

func startsWithBoundary(s string) bool {
	switch s[0] {
	case ' ', '\t', '\n', '\r', ',', ';', ':', '-', '?', '!':
		return true
	}
	return false
}

// parseOrder handles "<name> x <qty>" by an explicit check on the two
// trailing tokens. No trailing pair means quantity 1; a malformed or
// non-positive quantity comes back as 0 for the caller to answer with
// guidance text.
func parseOrder(rest string) (keyword string, qty int) {
	fields := strings.Fields(rest)
	if len(fields) < 3 {
		return rest, 1
	}

	sep := strings.ToLower(fields[len(fields)-2])
	last := fields[len(fields)-1]
	if sep != "x" && sep != "*" {
		return rest, 1
	}

	n, ok := parseCount(last)
	keyword = strings.Join(fields[:len(fields)-2], " ")
	if !ok || n <= 0 {
		return keyword, 0
	}
	return keyword, n
}

func parseCount(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
		if n > 1_000_000 {
			return 0, false
		}
	}
	return n, true
}
