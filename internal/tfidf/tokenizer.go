package tfidf

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const minTokenLength = 2

// Tokenizer lowercases text, splits it on anything that is not a letter or
// digit, and drops stopwords and single-character tokens.
type Tokenizer struct {
	stopwords map[string]struct{}
}

// NewTokenizer builds a tokenizer with exactly the given stopwords.
func NewTokenizer(stopwords []string) *Tokenizer {
	m := make(map[string]struct{}, len(stopwords))
	for _, w := range stopwords {
		m[strings.ToLower(w)] = struct{}{}
	}
	return &Tokenizer{stopwords: m}
}

// Tokens returns the retained tokens of text in order.
func (t *Tokenizer) Tokens(text string) []string {
	raw := strings.FieldsFunc(strings.ToLower(text), isSeparator)
	out := raw[:0]
	for _, tok := range raw {
		if utf8.RuneCountInString(tok) < minTokenLength {
			continue
		}
		if _, isStop := t.stopwords[tok]; isStop {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// Counts returns raw term frequencies for text.
func (t *Tokenizer) Counts(text string) map[string]int {
	tf := make(map[string]int)
	for _, tok := range t.Tokens(text) {
		tf[tok]++
	}
	return tf
}

func isSeparator(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

// DefaultStopwords returns the built-in English stopword list.
func DefaultStopwords() []string {
	return []string{
		"a", "an", "the", "and", "or", "but", "if", "then", "else", "for", "to", "of", "in", "on", "at", "by", "with", "as", "is", "are", "was", "were", "be", "been", "being", "it", "its", "this", "that", "these", "those", "from", "up", "down", "over", "under", "again", "further", "than", "so", "such", "into", "about", "between", "through", "during", "before", "after", "above", "below", "out", "off", "own", "same", "too", "very", "can", "will", "just", "don", "should", "now",
		"i", "me", "my", "we", "our", "you", "your", "he", "him", "his", "she", "her", "they", "them", "their", "what", "which", "who", "whom", "has", "have", "had", "do", "does", "did", "not", "no", "nor", "all", "any", "both", "each", "few", "more", "most", "other", "some", "only", "how", "when", "where", "why", "here", "there", "would", "could",
	}
}
