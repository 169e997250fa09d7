package domain

// Document is one source file's stitched text. Page boundaries are marked
// in-line with [PAGE n] markers in source order.
type Document struct {
	ID   string
	Text string
}

// Chunk is a bounded window of a normalized document.
// Start and End are rune offsets into the normalized text, markers included.
type Chunk struct {
	ID         string `json:"id"`
	DocumentID string `json:"document_id"`
	Start      int    `json:"start"`
	End        int    `json:"end"`
	Pages      []int  `json:"pages"`
	Text       string `json:"text"`
}

// RetrievalResult is a ranked chunk. Ordinal is the chunk's position in the corpus.
type RetrievalResult struct {
	Chunk   Chunk
	Ordinal int
	Score   float64
}

// Reference points an answer back at the chunk it was built from.
type Reference struct {
	DocumentID string  `json:"document_id"`
	ChunkID    string  `json:"chunk_id"`
	Pages      []int   `json:"pages"`
	Snippet    string  `json:"snippet"`
	Score      float64 `json:"score"`
}

// Answer is a grounded response composed only of retrieved text.
type Answer struct {
	Text       string      `json:"answer"`
	References []Reference `json:"references"`
}

// Chunker splits documents into chunks suitable for retrieval indexing.
type Chunker interface {
	Chunk(document Document) ([]Chunk, error)
}
