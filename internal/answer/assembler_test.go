package answer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docqa/internal/domain"
)

func result(id, text string, score float64, pages ...int) domain.RetrievalResult {
	return domain.RetrievalResult{
		Chunk: domain.Chunk{ID: id, DocumentID: "manual.txt", Text: text, Pages: pages},
		Score: score,
	}
}

func TestAssemble_NoResults(t *testing.T) {
	ans, err := Assemble(nil, 100, 10)
	require.NoError(t, err)
	assert.Equal(t, NoMatchText, ans.Text)
	assert.NotNil(t, ans.References)
	assert.Empty(t, ans.References)
}

func TestAssemble_BudgetAccounting(t *testing.T) {
	ranked := []domain.RetrievalResult{
		result("c1", "HELLOWORLD", 0.9, 1),
		result("c2", "SECONDSECOND", 0.4, 2),
		result("c3", "THIRD", 0.1, 3),
	}
	ans, err := Assemble(ranked, 10, 500)
	require.NoError(t, err)

	assert.Equal(t, "HELLOWORLD", ans.Text)
	require.Len(t, ans.References, 2)
	assert.Equal(t, "c2", ans.References[1].ChunkID)
	assert.Equal(t, 0.4, ans.References[1].Score)
	assert.Equal(t, "SECONDSECOND", ans.References[1].Snippet)
	assert.Equal(t, []int{2}, ans.References[1].Pages)
}

func TestAssemble_PartialContribution(t *testing.T) {
	ranked := []domain.RetrievalResult{
		result("c1", "  abcdef  ", 0.9),
		result("c2", "ghijkl", 0.5),
		result("c3", "mnopqr", 0.2),
	}
	ans, err := Assemble(ranked, 8, 3)
	require.NoError(t, err)

	assert.Equal(t, "abcdef\n\ngh", ans.Text)
	require.Len(t, ans.References, 3)
	assert.Equal(t, "abc", ans.References[0].Snippet)
	assert.Equal(t, "ghi", ans.References[1].Snippet)
	assert.Equal(t, "mno", ans.References[2].Snippet)
}

func TestAssemble_SnippetLimitIndependentOfBudget(t *testing.T) {
	ranked := []domain.RetrievalResult{result("c1", "short", 1)}
	ans, err := Assemble(ranked, 2, 100)
	require.NoError(t, err)
	assert.Equal(t, "sh", ans.Text)
	assert.Equal(t, "short", ans.References[0].Snippet)
}

func TestAssemble_UnderBudgetKeepsAllResults(t *testing.T) {
	ranked := []domain.RetrievalResult{
		result("c1", "first", 0.9),
		result("c2", "second", 0.5),
	}
	ans, err := Assemble(ranked, 3000, 500)
	require.NoError(t, err)
	assert.Equal(t, "first\n\nsecond", ans.Text)
	assert.Len(t, ans.References, 2)
	assert.Equal(t, "manual.txt", ans.References[0].DocumentID)
}

func TestAssemble_CountsRunes(t *testing.T) {
	ans, err := Assemble([]domain.RetrievalResult{result("c1", "žluťoučký kůň", 1)}, 5, 3)
	require.NoError(t, err)
	assert.Equal(t, "žluťo", ans.Text)
	assert.Equal(t, "žlu", ans.References[0].Snippet)
}

func TestAssemble_InvalidLimits(t *testing.T) {
	_, err := Assemble(nil, 0, 10)
	require.ErrorIs(t, err, domain.ErrInvalidConfig)
	_, err = Assemble(nil, 10, -1)
	require.ErrorIs(t, err, domain.ErrInvalidConfig)
}
