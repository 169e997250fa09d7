package tfidf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenizer_Tokens(t *testing.T) {
	tok := NewTokenizer(DefaultStopwords())

	assert.Equal(t,
		[]string{"pump", "p101", "failed", "2024", "see", "inspection"},
		tok.Tokens("The PUMP p101 failed (2024) -- see inspection, a x."),
	)
	assert.Empty(t, tok.Tokens("  ,.;  "))
}

func TestTokenizer_CustomStopwords(t *testing.T) {
	tok := NewTokenizer([]string{"Pump"})
	assert.Equal(t, []string{"the", "valve"}, tok.Tokens("the pump valve"))
}

func TestTokenizer_Counts(t *testing.T) {
	tok := NewTokenizer(nil)
	assert.Equal(t, map[string]int{"go": 2, "gopher": 1}, tok.Counts("Go go gopher"))
}

func TestSparseVector_Dot(t *testing.T) {
	a := SparseVector{Terms: []int{0, 2, 5}, Weights: []float64{1, 2, 3}}
	b := SparseVector{Terms: []int{2, 3, 5}, Weights: []float64{4, 9, 1}}
	assert.InDelta(t, 11.0, a.Dot(b), 1e-12)
	assert.Zero(t, a.Dot(SparseVector{}))
}
