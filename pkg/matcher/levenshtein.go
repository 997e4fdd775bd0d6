package matcher

// Distance returns the Levenshtein edit distance between a and b, counting
// single-rune insertions, deletions and substitutions at cost 1.
// It runs in O(len(a)*len(b)) time and keeps two rows of the shorter string.
func Distance(a, b string) int {
	if a == b {
		return 0
	}

	long, short := []rune(a), []rune(b)
	if len(long) < len(short) {
		long, short = short, long
	}
	if len(short) == 0 {
		return len(long)
	}

	prev := make([]int, len(short)+1)
	curr := make([]int, len(short)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(long); i++ {
		curr[0] = i
		for j := 1; j <= len(short); j++ {
			cost := 1
			if long[i-1] == short[j-1] {
				cost = 0
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}
	return prev[len(short)]
}
