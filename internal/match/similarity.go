// Package match computes weighted compatibility scores between job postings
// and candidate profiles, and ranks candidate sets by those scores.
package match

import "strings"

// Similarity returns a normalized similarity between two short text tokens
// in [0, 1]. Case-insensitive exact matches score 1.0, substring containment
// in either direction scores a deliberately coarse 0.9 ("react" vs
// "react native" counts as near-identical), and everything else falls back
// to a Levenshtein ratio against the longer string.
func Similarity(a, b string) float64 {
	a = strings.ToLower(a)
	b = strings.ToLower(b)

	if a == b {
		return 1.0
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return 0.9
	}

	longer, shorter := a, b
	if len([]rune(b)) > len([]rune(a)) {
		longer, shorter = b, a
	}
	longerLen := len([]rune(longer))
	if longerLen == 0 {
		return 1.0
	}

	distance := levenshtein(longer, shorter)
	return float64(longerLen-distance) / float64(longerLen)
}

// levenshtein computes the edit distance between two strings using a
// single-row DP table.
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	la, lb := len(ra), len(rb)
	if la == 0 {
		return lb
	}
	if lb == 0 {
		return la
	}

	prev := make([]int, lb+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= la; i++ {
		curr := make([]int, lb+1)
		curr[0] = i
		for j := 1; j <= lb; j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev = curr
	}
	return prev[lb]
}
