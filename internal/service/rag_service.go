package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"docqa/internal/answer"
	"docqa/internal/domain"
	"docqa/internal/ingest"
	"docqa/internal/retriever"
	"docqa/internal/tfidf"
)

// Options holds the retrieval and answer settings of an Engine.
type Options struct {
	TopK          int
	ConcatLimit   int
	SnippetLimit  int
	VocabularyCap int
	Workers       int
	Stopwords     []string
}

func (o Options) validate() error {
	for _, check := range []struct {
		field string
		value int
	}{
		{"top_k", o.TopK},
		{"concat_limit", o.ConcatLimit},
		{"snippet_limit", o.SnippetLimit},
		{"vocabulary_cap", o.VocabularyCap},
	} {
		if err := domain.RequirePositive(check.field, check.value); err != nil {
			return err
		}
	}
	return nil
}

// Stats describes the active index.
type Stats struct {
	BuildID        string
	Documents      int
	Chunks         int
	VocabularySize int
	BuiltAt        time.Time
}

type snapshot struct {
	index *tfidf.Index
	stats Stats
}

// Engine answers questions against the active index. Rebuilds construct a
// fresh index and swap it in only on success, so readers never see a partial
// index and need no locking.
type Engine struct {
	chunker   domain.Chunker
	loader    *ingest.Loader
	tokenizer *tfidf.Tokenizer
	opts      Options
	log       logrus.FieldLogger
	active    atomic.Pointer[snapshot]
}

// NewEngine validates opts and creates an engine with no index.
func NewEngine(chunker domain.Chunker, loader *ingest.Loader, opts Options, log logrus.FieldLogger) (*Engine, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Engine{
		chunker:   chunker,
		loader:    loader,
		tokenizer: tfidf.NewTokenizer(opts.Stopwords),
		opts:      opts,
		log:       log,
	}, nil
}

// IngestPaths loads plain-text files and rebuilds the index from them.
// It returns the loader's per-file messages.
func (s *Engine) IngestPaths(ctx context.Context, paths []string) ([]string, error) {
	if s.loader == nil {
		return nil, fmt.Errorf("ingest: no loader configured")
	}
	docs, msgs, err := s.loader.Load(paths)
	if err != nil {
		return msgs, err
	}
	if _, err := s.Rebuild(ctx, docs); err != nil {
		return msgs, err
	}
	return msgs, nil
}

// Chunk splits documents into one corpus, in document order.
func (s *Engine) Chunk(docs []domain.Document) ([]domain.Chunk, error) {
	var corpus []domain.Chunk
	for _, d := range docs {
		chunks, err := s.chunker.Chunk(d)
		if err != nil {
			return nil, fmt.Errorf("chunk %s: %w", d.ID, err)
		}
		corpus = append(corpus, chunks...)
	}
	return corpus, nil
}

// Rebuild chunks and indexes docs and makes the result the active index.
// On error or cancellation the previous index stays active.
func (s *Engine) Rebuild(ctx context.Context, docs []domain.Document) (Stats, error) {
	start := time.Now()
	corpus, err := s.Chunk(docs)
	if err != nil {
		return Stats{}, err
	}
	idx, err := tfidf.Build(ctx, corpus,
		tfidf.WithVocabularyCap(s.opts.VocabularyCap),
		tfidf.WithWorkers(s.opts.Workers),
		tfidf.WithTokenizer(s.tokenizer),
	)
	if err != nil {
		s.log.WithError(err).WithField("documents", len(docs)).Warn("index build failed; keeping previous index")
		return Stats{}, fmt.Errorf("build index: %w", err)
	}
	stats := Stats{
		BuildID:        idx.ID(),
		Documents:      len(docs),
		Chunks:         idx.Len(),
		VocabularySize: idx.VocabularySize(),
		BuiltAt:        time.Now(),
	}
	s.active.Store(&snapshot{index: idx, stats: stats})
	s.log.WithFields(logrus.Fields{
		"build_id":  stats.BuildID,
		"documents": stats.Documents,
		"chunks":    stats.Chunks,
		"terms":     stats.VocabularySize,
		"duration":  time.Since(start).String(),
	}).Info("index swapped in")
	return stats, nil
}

// Index returns the active index, or nil before the first successful build.
func (s *Engine) Index() *tfidf.Index {
	if snap := s.active.Load(); snap != nil {
		return snap.index
	}
	return nil
}

// Stats describes the active index. ok is false if there is none.
func (s *Engine) Stats() (Stats, bool) {
	snap := s.active.Load()
	if snap == nil {
		return Stats{}, false
	}
	return snap.stats, true
}

// Query ranks chunks for query. It fails with domain.ErrNoIndex before the
// first successful build; an empty result means no hits.
func (s *Engine) Query(query string, topK int) ([]domain.RetrievalResult, error) {
	return retriever.Retrieve(s.Index(), query, topK)
}

// Ask retrieves with the configured top_k and assembles a grounded answer.
func (s *Engine) Ask(query string) (domain.Answer, error) {
	results, err := s.Query(query, s.opts.TopK)
	if err != nil {
		return domain.Answer{}, err
	}
	ans, err := answer.Assemble(results, s.opts.ConcatLimit, s.opts.SnippetLimit)
	if err != nil {
		return domain.Answer{}, err
	}
	s.log.WithFields(logrus.Fields{
		"hits":       len(results),
		"references": len(ans.References),
	}).Debug("answered query")
	return ans, nil
}
