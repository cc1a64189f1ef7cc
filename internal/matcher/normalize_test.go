package matcher

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"lower-cases", "RTX 3060", "rtx3060"},
		{"strips whitespace runs", "  fish \t tank\nkit ", "fishtankkit"},
		{"strips trailing particle", "calendar ne", "calendar"},
		{"strips stacked particles", "calendar ne ma", "calendar"},
		{"keeps interior particle letters", "needle holder", "needleholder"},
		{"full-width space", "fish　tank", "fishtank"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Normalize(tc.in); got != tc.want {
				t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestNormalizeNeverEmptiesParticleOnlyInput(t *testing.T) {
	// A query that IS a particle must not normalize to nothing.
	if got := Normalize("ne"); got != "ne" {
		t.Errorf("Normalize(%q) = %q, want %q", "ne", got, "ne")
	}
}
