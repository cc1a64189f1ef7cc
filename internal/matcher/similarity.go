package matcher

// Similarity is the edit-distance ratio between a and b in [0,1]:
// (maxLen - levenshtein(a,b)) / maxLen over runes. Symmetric, pure,
// and defined as 1.0 for two empty strings. Callers normalize both
// inputs first; no normalization happens here.
func Similarity(a, b string) float64 {
	ra := []rune(a)
	rb := []rune(b)

	maxLen := len(ra)
	if len(rb) > maxLen {
		maxLen = len(rb)
	}
	if maxLen == 0 {
		return 1.0
	}

	return float64(maxLen-levenshtein(ra, rb)) / float64(maxLen)
}

// levenshtein is the classic insert/delete/substitute edit distance,
// computed with two rows instead of the full matrix.
func levenshtein(r1, r2 []rune) int {
	if len(r1) == 0 {
		return len(r2)
	}
	if len(r2) == 0 {
		return len(r1)
	}

	n := len(r2)
	prev := make([]int, n+1)
	curr := make([]int, n+1)

	for j := 0; j <= n; j++ {
		prev[j] = j
	}

	for i := 1; i <= len(r1); i++ {
		curr[0] = i
		for j := 1; j <= n; j++ {
			cost := 0
			if r1[i-1] != r2[j-1] {
				cost = 1
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[n]
}
