package textutil

// SequenceSimilarity scores how closely two token sequences match, as
// 1 - (word-level Levenshtein distance / longer sequence length).
// Identical sequences score 1.0; every insertion, deletion, or substitution
// lowers the score. The function is pure and deterministic.
func SequenceSimilarity(a, b []string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1
	}
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	longer := len(a)
	if len(b) > longer {
		longer = len(b)
	}
	dist := levenshtein(a, b)
	return 1 - float64(dist)/float64(longer)
}

// levenshtein computes edit distance over whole words using two rolling rows.
func levenshtein(a, b []string) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = minInt(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

// JaccardSimilarity returns |a∩b| / |a∪b| for two keyword sets.
// Returns 0 when either set is empty.
func JaccardSimilarity(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	intersection := 0
	for token := range a {
		if _, ok := b[token]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

func minInt(values ...int) int {
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}
