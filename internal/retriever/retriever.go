package retriever

import (
	"sort"

	"docqa/internal/domain"
	"docqa/internal/tfidf"
)

// Retrieve ranks the chunks of index by cosine similarity to query and
// returns at most topK results. Both sides are unit vectors, so the score is
// a plain dot product, accumulated only over the postings of query terms.
// Ties keep corpus order. A query with no known terms yields no results.
func Retrieve(index *tfidf.Index, query string, topK int) ([]domain.RetrievalResult, error) {
	if index == nil {
		return nil, domain.ErrNoIndex
	}
	if err := domain.RequirePositive("top_k", topK); err != nil {
		return nil, err
	}
	if index.Len() == 0 {
		return nil, nil
	}
	q := index.Vectorize(query)
	if q.IsZero() {
		return nil, nil
	}

	scores := make([]float64, index.Len())
	for k, term := range q.Terms {
		for _, p := range index.Postings(term) {
			scores[p.Chunk] += q.Weights[k] * p.Weight
		}
	}

	ranked := rank(scores, topK)
	results := make([]domain.RetrievalResult, len(ranked))
	for i, ord := range ranked {
		results[i] = domain.RetrievalResult{Chunk: index.Chunk(ord), Ordinal: ord, Score: scores[ord]}
	}
	return results, nil
}

// rank orders positive scores descending with ascending ordinal on ties, then
// pads with zero-score chunks in corpus order.
func rank(scores []float64, topK int) []int {
	var hits []int
	for ord, s := range scores {
		if s > 0 {
			hits = append(hits, ord)
		}
	}
	sort.Slice(hits, func(i, j int) bool {
		a, b := hits[i], hits[j]
		if scores[a] != scores[b] {
			return scores[a] > scores[b]
		}
		return a < b
	})
	if len(hits) >= topK {
		return hits[:topK]
	}
	out := append(make([]int, 0, min(topK, len(scores))), hits...)
	for ord := 0; ord < len(scores) && len(out) < topK; ord++ {
		if scores[ord] <= 0 {
			out = append(out, ord)
		}
	}
	return out
}
