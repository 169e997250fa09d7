package chunker

import (
	"sort"
	"strconv"
	"strings"

	"docqa/internal/domain"
)

// Default window settings.
const (
	DefaultChunkSize = 1000
	DefaultOverlap   = 200
)

// WindowChunker splits documents into fixed-size, overlapping character windows
// and tags each window with the pages it touches.
type WindowChunker struct {
	chunkSize int
	overlap   int
}

// NewWindowChunker validates the window settings up front.
func NewWindowChunker(chunkSize, overlap int) (*WindowChunker, error) {
	if err := domain.ValidateWindow(chunkSize, overlap); err != nil {
		return nil, err
	}
	return &WindowChunker{chunkSize: chunkSize, overlap: overlap}, nil
}

// Chunk normalizes the document text and splits it.
func (c *WindowChunker) Chunk(document domain.Document) ([]domain.Chunk, error) {
	return Split(Normalize(document.Text), document.ID, c.chunkSize, c.overlap)
}

// Split slides a chunkSize window over text, stepping by chunkSize-overlap.
// Offsets count runes. Windows that are empty once markers and surrounding
// whitespace are removed produce no chunk and consume no sequence number.
func Split(text, documentID string, chunkSize, overlap int) ([]domain.Chunk, error) {
	if err := domain.ValidateWindow(chunkSize, overlap); err != nil {
		return nil, err
	}
	runes := []rune(text)
	n := len(runes)
	if n == 0 {
		return nil, nil
	}
	markers := ScanMarkers(text)

	chunks := make([]domain.Chunk, 0, n/(chunkSize-overlap)+1)
	seq := 0
	for start := 0; start < n; {
		end := min(n, start+chunkSize)
		pages, clean := cleanWindow(runes, markers, start, end)
		if clean != "" {
			seq++
			chunks = append(chunks, domain.Chunk{
				ID:         documentID + "::chunk_" + strconv.Itoa(seq),
				DocumentID: documentID,
				Start:      start,
				End:        end,
				Pages:      pages,
				Text:       clean,
			})
		}
		if end == n {
			break
		}
		start = end - overlap
	}
	return chunks, nil
}

// cleanWindow strips every marker fragment inside [start,end) and collects the
// pages of markers whose closing bracket falls inside the window.
func cleanWindow(runes []rune, markers []Marker, start, end int) ([]int, string) {
	first := sort.Search(len(markers), func(i int) bool { return markers[i].End > start })

	var pages []int
	var b strings.Builder
	pos := start
	for _, m := range markers[first:] {
		if m.Start >= end {
			break
		}
		cutFrom := max(m.Start, start)
		cutTo := min(m.End, end)
		if cutFrom > pos {
			b.WriteString(string(runes[pos:cutFrom]))
		}
		pos = cutTo
		if m.End <= end && !containsInt(pages, m.Page) {
			pages = append(pages, m.Page)
		}
	}
	if pos < end {
		b.WriteString(string(runes[pos:end]))
	}
	if pages == nil {
		pages = []int{}
	}
	return pages, strings.TrimSpace(b.String())
}

func containsInt(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}
