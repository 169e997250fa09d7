package tfidf

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"

	"docqa/internal/domain"
)

// DefaultVocabularyCap bounds the number of retained terms.
const DefaultVocabularyCap = 20000

type builder struct {
	vocabularyCap int
	workers       int
	tokenizer     *Tokenizer
}

// Option configures Build.
type Option func(*builder)

// WithVocabularyCap keeps only the n most frequent terms across the corpus.
func WithVocabularyCap(n int) Option {
	return func(b *builder) { b.vocabularyCap = n }
}

// WithWorkers sets how many chunks are processed concurrently.
// Zero or less means GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(b *builder) { b.workers = n }
}

// WithTokenizer replaces the default tokenizer.
func WithTokenizer(t *Tokenizer) Option {
	return func(b *builder) {
		if t != nil {
			b.tokenizer = t
		}
	}
}

// Build indexes chunks. Per-chunk work runs on a worker pool; the vocabulary
// and idf table are reduced in corpus order, so the result does not depend on
// the number of workers. ctx is checked before each chunk is processed.
func Build(ctx context.Context, chunks []domain.Chunk, opts ...Option) (*Index, error) {
	b := &builder{
		vocabularyCap: DefaultVocabularyCap,
		tokenizer:     NewTokenizer(DefaultStopwords()),
	}
	for _, opt := range opts {
		opt(b)
	}
	if err := domain.RequirePositive("vocabulary_cap", b.vocabularyCap); err != nil {
		return nil, err
	}
	if len(chunks) == 0 {
		return nil, domain.ErrEmptyCorpus
	}
	workers := b.workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	counts := make([]map[string]int, len(chunks))
	err = forEach(ctx, pool, len(chunks), func(i int) {
		counts[i] = b.tokenizer.Counts(chunks[i].Text)
	})
	if err != nil {
		return nil, fmt.Errorf("tokenize chunks: %w", err)
	}

	df := make(map[string]int)
	total := make(map[string]int)
	for _, tf := range counts {
		for term, n := range tf {
			df[term]++
			total[term] += n
		}
	}
	terms := selectVocabulary(total, b.vocabularyCap)

	vocabulary := make(map[string]int, len(terms))
	idf := make([]float64, len(terms))
	n := float64(len(chunks))
	for id, term := range terms {
		vocabulary[term] = id
		idf[id] = math.Log((1+n)/(1+float64(df[term]))) + 1.0
	}

	vectors := make([]SparseVector, len(chunks))
	err = forEach(ctx, pool, len(chunks), func(i int) {
		vectors[i] = weigh(counts[i], vocabulary, idf)
	})
	if err != nil {
		return nil, fmt.Errorf("vectorize chunks: %w", err)
	}

	postings := make([][]Posting, len(terms))
	for i, v := range vectors {
		for k, id := range v.Terms {
			postings[id] = append(postings[id], Posting{Chunk: i, Weight: v.Weights[k]})
		}
	}

	return &Index{
		id:         uuid.NewString(),
		tokenizer:  b.tokenizer,
		vocabulary: vocabulary,
		idf:        idf,
		vectors:    vectors,
		postings:   postings,
		chunks:     append([]domain.Chunk(nil), chunks...),
	}, nil
}

// selectVocabulary returns at most limit terms ranked by corpus frequency
// (ties by term), sorted lexically so term ids are stable.
func selectVocabulary(total map[string]int, limit int) []string {
	terms := make([]string, 0, len(total))
	for term := range total {
		terms = append(terms, term)
	}
	if len(terms) > limit {
		sort.Slice(terms, func(i, j int) bool {
			if total[terms[i]] != total[terms[j]] {
				return total[terms[i]] > total[terms[j]]
			}
			return terms[i] < terms[j]
		})
		terms = terms[:limit]
	}
	sort.Strings(terms)
	return terms
}

// forEach runs fn(0..n-1) on pool and waits. Cancellation is checked before
// each submission and again inside each task.
func forEach(ctx context.Context, pool *ants.Pool, n int, fn func(i int)) error {
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			wg.Wait()
			return err
		}
		i := i
		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()
			if ctx.Err() != nil {
				return
			}
			fn(i)
		})
		if err != nil {
			wg.Done()
			wg.Wait()
			return err
		}
	}
	wg.Wait()
	return ctx.Err()
}
