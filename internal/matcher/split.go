package matcher

import (
	"strings"
	"unicode"
)

// intentMarkers are the fixed intent-prefix tokens stripped from a raw
// message before splitting. Customers repeat them per line, so every
// occurrence is removed, not only the leading one. Longer markers come
// first so "price check" is not half-eaten by "price".
var intentMarkers = []string{
	"price check",
	"check price",
	"price-check",
	"stock check",
	"check stock",
	"stock-check",
	"code check",
	"check code",
	"code-check",
	"order",
	"price",
	"stock",
	"code",
}

var lineBreaks = strings.NewReplacer(
	"\r\n", "\n",
	"\r", "\n",
	"\u2028", "\n",
	"\u2029", "\n",
)

// separators is the fixed class of segment separators: comma (ASCII and
// full-width), ideographic comma, semicolon (ASCII and full-width).
// Newlines are unified beforehand.
var separators = strings.NewReplacer(
	",", "\n",
	"，", "\n",
	"、", "\n",
	";", "\n",
	"；", "\n",
)

// SplitKeywords segments a raw message into query keywords, in order,
// duplicates preserved. Empty or all-separator input yields nil, which
// callers must answer as "no keyword supplied".
func SplitKeywords(raw string) []string {
	text := stripMarkers(raw)
	text = lineBreaks.Replace(text)
	text = separators.Replace(text)

	var keywords []string
	for _, seg := range strings.Split(text, "\n") {
		// Collapse interior whitespace runs; keep multi-word names whole.
		seg = strings.Join(strings.Fields(seg), " ")
		if seg == "" {
			continue
		}
		keywords = append(keywords, seg)
	}
	return keywords
}

// stripMarkers removes recognized intent markers wherever they occur,
// case-insensitively, without touching words that merely contain one.
// Works on runes, folded rune-by-rune, so case folding cannot shift
// match offsets (strings.ToLower can change a rune's byte length).
func stripMarkers(text string) string {
	runes := []rune(text)
	lower := make([]rune, len(runes))
	for i, r := range runes {
		lower[i] = unicode.ToLower(r)
	}

	for _, marker := range intentMarkers {
		m := []rune(marker)
		for {
			i := indexToken(lower, m)
			if i < 0 {
				break
			}
			runes = append(runes[:i], runes[i+len(m):]...)
			lower = append(lower[:i], lower[i+len(m):]...)
		}
	}
	return string(runes)
}

// indexToken finds marker in s at a word boundary on both sides.
func indexToken(s, marker []rune) int {
	for i := 0; i+len(marker) <= len(s); i++ {
		if !runesAt(s, marker, i) {
			continue
		}
		end := i + len(marker)
		leftOK := i == 0 || isBoundary(s[i-1])
		rightOK := end == len(s) || isBoundary(s[end])
		if leftOK && rightOK {
			return i
		}
	}
	return -1
}

func runesAt(s, marker []rune, at int) bool {
	for j, r := range marker {
		if s[at+j] != r {
			return false
		}
	}
	return true
}

// isBoundary covers whitespace plus the punctuation a marker can
// legally touch, full-width separator forms included.
func isBoundary(r rune) bool {
	if unicode.IsSpace(r) {
		return true
	}
	switch r {
	case ',', ';', ':', '-', '?', '!', '，', '、', '；':
		return true
	}
	return false
}
