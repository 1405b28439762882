package reconcile

import "strings"

// Distance returns the Levenshtein edit distance between a and b. Both
// strings are trimmed and case-folded before comparison, so "  Mike " and
// "mike" are identical. The full dynamic-programming matrix is always
// computed; there is deliberately no length-based short circuit.
func Distance(a, b string) int {
	ra := []rune(normalize(a))
	rb := []rune(normalize(b))

	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := 0; j <= len(rb); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

// bestDistance returns the minimum edit distance between the scanned name and
// any of the participant's stored names (primary name plus aliases). Aliases
// accumulate across rounds, so the best match is often a nickname rather than
// the primary name.
func bestDistance(p Participant, scanned string) int {
	best := Distance(p.Name, scanned)
	for _, alias := range p.Aliases {
		if d := Distance(alias, scanned); d < best {
			best = d
		}
	}
	return best
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
