package chunker

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docqa/internal/domain"
)

func TestNewWindowChunker_RejectsInvalidWindow(t *testing.T) {
	cases := []struct {
		name      string
		chunkSize int
		overlap   int
		field     string
	}{
		{"zero size", 0, 0, "chunk_size"},
		{"negative size", -5, 0, "chunk_size"},
		{"negative overlap", 10, -1, "overlap"},
		{"overlap equals size", 10, 10, "overlap"},
		{"overlap exceeds size", 10, 15, "overlap"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := NewWindowChunker(tc.chunkSize, tc.overlap)
			require.Error(t, err)
			assert.Nil(t, c)
			assert.True(t, errors.Is(err, domain.ErrInvalidConfig))

			var cfgErr *domain.ConfigError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tc.field, cfgErr.Field)
		})
	}
}

func TestSplit_InvalidWindowFailsBeforeWork(t *testing.T) {
	chunks, err := Split("", "doc", 5, 5)
	require.ErrorIs(t, err, domain.ErrInvalidConfig)
	assert.Nil(t, chunks)
}

func TestSplit_MarkerExtraction(t *testing.T) {
	chunks, err := Split("[PAGE 1]AAA[PAGE 2]BBB", "doc", 100, 0)
	require.NoError(t, err)
	require.Len(t, chunks, 1)

	assert.Equal(t, []int{1, 2}, chunks[0].Pages)
	assert.Equal(t, "AAABBB", chunks[0].Text)
	assert.Equal(t, "doc::chunk_1", chunks[0].ID)
	assert.Equal(t, "doc", chunks[0].DocumentID)
	assert.Equal(t, 0, chunks[0].Start)
	assert.Equal(t, 22, chunks[0].End)
}

func TestSplit_DuplicatePagesKeepFirstAppearanceOrder(t *testing.T) {
	chunks, err := Split("[PAGE 3] x [page 1] y [PAGE 3] z", "doc", 100, 0)
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, []int{3, 1}, chunks[0].Pages)
	assert.Equal(t, "x  y  z", chunks[0].Text)
}

func TestSplit_ShortTextIsSingleChunk(t *testing.T) {
	chunks, err := Split("  hello world  ", "d", 1000, 200)
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "hello world", chunks[0].Text)
	assert.Equal(t, 0, chunks[0].Start)
	assert.Equal(t, 15, chunks[0].End)
	assert.Empty(t, chunks[0].Pages)
}

func TestSplit_EmptyAndMarkerOnlyTextYieldNoChunks(t *testing.T) {
	for _, text := range []string{"", "   \n\t ", "[PAGE 1]\n\n[PAGE 2]\n"} {
		chunks, err := Split(text, "d", 4, 1)
		require.NoError(t, err)
		assert.Empty(t, chunks, "text %q", text)
	}
}

func TestSplit_CoverageAndOverlap(t *testing.T) {
	text := strings.Repeat("abcdefghij", 23) + "xyz"
	windows := []struct{ size, overlap int }{
		{10, 0}, {10, 3}, {7, 6}, {50, 10}, {1, 0}, {300, 299}, {1000, 200},
	}
	for _, w := range windows {
		chunks, err := Split(text, "d", w.size, w.overlap)
		require.NoError(t, err)
		require.NotEmpty(t, chunks)

		assert.Equal(t, 0, chunks[0].Start)
		assert.Equal(t, len(text), chunks[len(chunks)-1].End)
		for i := 1; i < len(chunks); i++ {
			prev, cur := chunks[i-1], chunks[i]
			assert.Equal(t, w.overlap, prev.End-cur.Start, "size=%d overlap=%d chunk=%d", w.size, w.overlap, i)
			assert.LessOrEqual(t, cur.Start, prev.End)
			assert.LessOrEqual(t, cur.End-cur.Start, w.size)
		}
	}
}

func TestSplit_DroppedWindowsConsumeNoSequence(t *testing.T) {
	text := "aaaa" + strings.Repeat(" ", 8) + "bbbb"
	chunks, err := Split(text, "d", 4, 0)
	require.NoError(t, err)
	require.Len(t, chunks, 2)
	assert.Equal(t, "d::chunk_1", chunks[0].ID)
	assert.Equal(t, "d::chunk_2", chunks[1].ID)
	assert.Equal(t, 12, chunks[1].Start)
}

func TestSplit_MarkerStraddlingWindowEdge(t *testing.T) {
	// "abcd[PAGE 2]efgh": the marker spans runes 4..12.
	text := "abcd[PAGE 2]efgh"
	chunks, err := Split(text, "d", 8, 0)
	require.NoError(t, err)
	require.Len(t, chunks, 2)

	assert.Equal(t, "abcd", chunks[0].Text)
	assert.Empty(t, chunks[0].Pages)

	assert.Equal(t, "efgh", chunks[1].Text)
	assert.Equal(t, []int{2}, chunks[1].Pages)
}

func TestSplit_CountsRunes(t *testing.T) {
	text := "héllo wörld ünïcode"
	chunks, err := Split(text, "d", 6, 0)
	require.NoError(t, err)
	require.NotEmpty(t, chunks)
	assert.Equal(t, "héllo", chunks[0].Text)
	assert.Equal(t, len([]rune(text)), chunks[len(chunks)-1].End)
}

func TestWindowChunker_NormalizesBeforeSplitting(t *testing.T) {
	c, err := NewWindowChunker(100, 10)
	require.NoError(t, err)

	chunks, err := c.Chunk(domain.Document{ID: "a.txt", Text: "[PAGE 1]\r\nline one\r\n\r\n\r\n\r\nline two"})
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "line one\n\nline two", chunks[0].Text)
	assert.Equal(t, []int{1}, chunks[0].Pages)
	assert.Equal(t, len([]rune("[PAGE 1]\nline one\n\nline two")), chunks[0].End)
}
