package matcher

import (
	"strings"
	"unicode"
)

// fillerParticles are politeness particles customers append in chat
// ("RTX 3060 ma", "calendar de"). Stripped from the tail of a query
// after whitespace removal. Fixed set, not derived at runtime.
var fillerParticles = []string{"de", "le", "ma", "ne"}

// Normalize lower-cases s, removes all whitespace and strips trailing
// filler particles. Pure; empty input yields empty output.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(r)
	}
	out := b.String()

	for stripped := true; stripped; {
		stripped = false
		for _, p := range fillerParticles {
			// Never strip the whole query down to nothing.
			if len(out) > len(p) && strings.HasSuffix(out, p) {
				out = out[:len(out)-len(p)]
				stripped = true
			}
		}
	}
	return out
}
