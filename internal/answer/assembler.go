// Package answer composes grounded answers from ranked retrieval results.
package answer

import (
	"strings"

	"docqa/internal/domain"
)

// NoMatchText is the answer text when nothing was retrieved.
const NoMatchText = "No matching content found in documents."

// Default budgets, in runes.
const (
	DefaultConcatLimit  = 3000
	DefaultSnippetLimit = 500
)

const partSeparator = "\n\n"

// Assemble concatenates ranked chunk texts into an answer of at most
// concatLimit runes (separators excluded) and records a reference for every
// result it considers. Each reference snippet is cut to snippetLimit runes
// independently of the answer budget. Iteration ends at the first result that
// finds the answer budget already spent; that result still gets a reference.
func Assemble(results []domain.RetrievalResult, concatLimit, snippetLimit int) (domain.Answer, error) {
	if err := domain.RequirePositive("concat_limit", concatLimit); err != nil {
		return domain.Answer{}, err
	}
	if err := domain.RequirePositive("snippet_limit", snippetLimit); err != nil {
		return domain.Answer{}, err
	}
	if len(results) == 0 {
		return domain.Answer{Text: NoMatchText, References: []domain.Reference{}}, nil
	}

	var parts []string
	refs := make([]domain.Reference, 0, len(results))
	used := 0
	for _, r := range results {
		text := []rune(strings.TrimSpace(r.Chunk.Text))
		remaining := concatLimit - used
		if remaining > 0 {
			add := text[:min(len(text), remaining)]
			if len(add) > 0 {
				parts = append(parts, string(add))
				used += len(add)
			}
		}
		refs = append(refs, domain.Reference{
			DocumentID: r.Chunk.DocumentID,
			ChunkID:    r.Chunk.ID,
			Pages:      append([]int{}, r.Chunk.Pages...),
			Snippet:    string(text[:min(len(text), snippetLimit)]),
			Score:      r.Score,
		})
		if remaining <= 0 {
			break
		}
	}
	return domain.Answer{Text: strings.Join(parts, partSeparator), References: refs}, nil
}
