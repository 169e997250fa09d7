package tfidf

import (
	"math"
	"sort"

	"docqa/internal/domain"
)

// SparseVector holds non-zero weights keyed by term id, sorted by term id.
type SparseVector struct {
	Terms   []int
	Weights []float64
}

// Len returns the number of non-zero entries.
func (v SparseVector) Len() int { return len(v.Terms) }

// IsZero reports whether the vector has no non-zero entries.
func (v SparseVector) IsZero() bool { return len(v.Terms) == 0 }

// Dot computes the inner product by merging the two sorted term lists.
func (v SparseVector) Dot(o SparseVector) float64 {
	sum := 0.0
	i, j := 0, 0
	for i < len(v.Terms) && j < len(o.Terms) {
		switch {
		case v.Terms[i] < o.Terms[j]:
			i++
		case v.Terms[i] > o.Terms[j]:
			j++
		default:
			sum += v.Weights[i] * o.Weights[j]
			i++
			j++
		}
	}
	return sum
}

// Norm returns the L2 norm.
func (v SparseVector) Norm() float64 {
	sum := 0.0
	for _, w := range v.Weights {
		sum += w * w
	}
	return math.Sqrt(sum)
}

func (v SparseVector) clone() SparseVector {
	return SparseVector{
		Terms:   append([]int(nil), v.Terms...),
		Weights: append([]float64(nil), v.Weights...),
	}
}

// Posting is one chunk's weight for a term.
type Posting struct {
	Chunk  int
	Weight float64
}

// Index is an immutable TF-IDF index over one corpus snapshot.
// It is safe for concurrent readers.
type Index struct {
	id         string
	tokenizer  *Tokenizer
	vocabulary map[string]int
	idf        []float64
	vectors    []SparseVector
	postings   [][]Posting
	chunks     []domain.Chunk
}

// ID identifies the build that produced the index.
func (x *Index) ID() string { return x.id }

// Len returns the number of indexed chunks.
func (x *Index) Len() int { return len(x.chunks) }

// VocabularySize returns the number of retained terms.
func (x *Index) VocabularySize() int { return len(x.idf) }

// TermID looks up a term in the fixed vocabulary.
func (x *Index) TermID(term string) (int, bool) {
	id, ok := x.vocabulary[term]
	return id, ok
}

// IDF returns the inverse document frequency of a term id.
func (x *Index) IDF(termID int) float64 { return x.idf[termID] }

// Chunk returns the chunk at corpus position i.
func (x *Index) Chunk(i int) domain.Chunk { return x.chunks[i] }

// Chunks returns a copy of the indexed corpus in insertion order.
func (x *Index) Chunks() []domain.Chunk {
	return append([]domain.Chunk(nil), x.chunks...)
}

// Vector returns a copy of the unit-length vector of chunk i.
func (x *Index) Vector(i int) SparseVector { return x.vectors[i].clone() }

// Postings returns the chunks containing termID in ascending corpus order.
// The returned slice is shared and must not be modified.
func (x *Index) Postings(termID int) []Posting { return x.postings[termID] }

// Vectorize weights text against the fixed vocabulary and idf table and
// normalizes it to unit length. Unknown terms are ignored.
func (x *Index) Vectorize(text string) SparseVector {
	if x.tokenizer == nil {
		return SparseVector{}
	}
	return weigh(x.tokenizer.Counts(text), x.vocabulary, x.idf)
}

// weigh builds tf*idf weights in term id order and L2-normalizes them.
// Summing in a fixed order keeps results bit-identical across runs.
func weigh(tf map[string]int, vocabulary map[string]int, idf []float64) SparseVector {
	terms := make([]int, 0, len(tf))
	counts := make(map[int]int, len(tf))
	for tok, n := range tf {
		id, ok := vocabulary[tok]
		if !ok {
			continue
		}
		terms = append(terms, id)
		counts[id] = n
	}
	if len(terms) == 0 {
		return SparseVector{}
	}
	sort.Ints(terms)
	v := SparseVector{Terms: terms, Weights: make([]float64, len(terms))}
	for i, id := range terms {
		v.Weights[i] = float64(counts[id]) * idf[id]
	}
	norm := v.Norm()
	if norm > 0 {
		for i := range v.Weights {
			v.Weights[i] /= norm
		}
	}
	return v
}
