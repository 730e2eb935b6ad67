package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimilarity_ExactMatch(t *testing.T) {
	assert.Equal(t, 1.0, Similarity("react", "react"))
	assert.Equal(t, 1.0, Similarity("React", "react"))
	assert.Equal(t, 1.0, Similarity("PYTHON", "python"))
}

func TestSimilarity_Substring(t *testing.T) {
	assert.Equal(t, 0.9, Similarity("react", "react native"))
	assert.Equal(t, 0.9, Similarity("node.js developer", "node.js"))
	assert.Equal(t, 0.9, Similarity("Java", "JavaScript"))
}

func TestSimilarity_LevenshteinFallback(t *testing.T) {
	// kitten -> sitting: distance 3, longer length 7.
	assert.InDelta(t, 4.0/7.0, Similarity("kitten", "sitting"), 1e-9)
	assert.Equal(t, 0.0, Similarity("go", "react"))
}

func TestSimilarity_Symmetric(t *testing.T) {
	pairs := [][2]string{
		{"react", "react native"},
		{"kitten", "sitting"},
		{"golang", "go"},
		{"typescript", "javascript"},
	}
	for _, p := range pairs {
		assert.Equal(t, Similarity(p[0], p[1]), Similarity(p[1], p[0]), "pair %v", p)
	}
}

func TestSimilarity_Bounds(t *testing.T) {
	pairs := [][2]string{
		{"", ""},
		{"a", ""},
		{"abc", "xyz"},
		{"postgresql", "mysql"},
	}
	for _, p := range pairs {
		s := Similarity(p[0], p[1])
		assert.GreaterOrEqual(t, s, 0.0, "pair %v", p)
		assert.LessOrEqual(t, s, 1.0, "pair %v", p)
	}
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
		{"go", "go", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, levenshtein(tt.a, tt.b), "%q vs %q", tt.a, tt.b)
	}
}
