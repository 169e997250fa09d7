// Package ingest turns plain-text files into documents carrying [PAGE n] markers.
package ingest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"docqa/internal/domain"
)

// ErrNoDocuments is returned when no supported file could be loaded.
var ErrNoDocuments = errors.New("no supported documents found")

var supportedExt = map[string]bool{".txt": true, ".text": true, ".md": true}

// Loader reads plain-text files. Form feeds separate pages.
type Loader struct {
	cache *TextCache
	log   logrus.FieldLogger
}

// NewLoader creates a loader. cache may be nil to disable caching.
func NewLoader(cache *TextCache, log logrus.FieldLogger) *Loader {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Loader{cache: cache, log: log}
}

// Load expands globs and directories (one level) and returns one document per
// supported file in the order the paths were given, plus a line per file
// describing what happened to it.
func (l *Loader) Load(paths []string) ([]domain.Document, []string, error) {
	files, msgs := expand(paths)
	seen := make(map[string]bool, len(files))
	var docs []domain.Document
	for _, f := range files {
		if seen[f] {
			continue
		}
		seen[f] = true
		base := filepath.Base(f)
		if isTempFile(base) {
			msgs = append(msgs, "Skipping temp file: "+base)
			continue
		}
		if !supportedExt[strings.ToLower(filepath.Ext(f))] {
			msgs = append(msgs, "Ignored file (unsupported): "+base)
			continue
		}
		text, err := l.read(f)
		if err != nil {
			l.log.WithError(err).WithField("path", f).Warn("failed to read document")
			msgs = append(msgs, fmt.Sprintf("Error reading %s: %v", base, err))
			continue
		}
		docs = append(docs, domain.Document{ID: f, Text: text})
		msgs = append(msgs, "Loaded: "+base)
	}
	if len(docs) == 0 {
		return nil, msgs, ErrNoDocuments
	}
	l.log.WithField("documents", len(docs)).Debug("documents loaded")
	return docs, msgs, nil
}

func (l *Loader) read(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if l.cache != nil {
		if text, ok := l.cache.Get(path, info); ok {
			l.log.WithField("path", path).Debug("text cache hit")
			return text, nil
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	text := Stitch(SplitPages(string(data)))
	if l.cache != nil {
		l.cache.Put(path, info, text)
	}
	return text, nil
}

// SplitPages splits raw text on form feeds. A trailing empty page is dropped.
func SplitPages(raw string) []string {
	pages := strings.Split(raw, "\f")
	if len(pages) > 1 && strings.TrimSpace(pages[len(pages)-1]) == "" {
		pages = pages[:len(pages)-1]
	}
	return pages
}

// Stitch joins pages into one text, each preceded by its [PAGE n] marker.
func Stitch(pages []string) string {
	parts := make([]string, len(pages))
	for i, p := range pages {
		parts[i] = fmt.Sprintf("[PAGE %d]\n%s\n", i+1, p)
	}
	return strings.Join(parts, "\n")
}

func expand(paths []string) ([]string, []string) {
	var files, msgs []string
	for _, p := range paths {
		matches, _ := filepath.Glob(p)
		if matches == nil {
			matches = []string{p}
		}
		for _, m := range matches {
			m = filepath.Clean(m)
			info, err := os.Stat(m)
			if err != nil {
				msgs = append(msgs, fmt.Sprintf("Not found: %s", m))
				continue
			}
			if !info.IsDir() {
				files = append(files, m)
				continue
			}
			entries, err := os.ReadDir(m)
			if err != nil {
				msgs = append(msgs, fmt.Sprintf("Error listing %s: %v", m, err))
				continue
			}
			for _, e := range entries {
				if e.Type().IsRegular() {
					files = append(files, filepath.Join(m, e.Name()))
				}
			}
		}
	}
	return files, msgs
}

func isTempFile(base string) bool {
	return strings.HasPrefix(base, "~$") || strings.HasSuffix(strings.ToLower(base), ".tmp")
}
