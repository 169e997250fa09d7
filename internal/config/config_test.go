package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docqa/internal/domain"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte("chunker:\n  overlap: 0\nretrieval:\n  top_k: 3\n"), 0o644))

	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, 1000, cfg.Chunker.ChunkSize)
	assert.Equal(t, 0, cfg.Chunker.Overlap, "explicit zero overlap is honored")
	assert.Equal(t, 3, cfg.Retrieval.TopK)
	assert.Equal(t, 3000, cfg.Answer.ConcatLimit)
}

func TestLoad_RejectsInvalidWindow(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte("chunker:\n  chunk_size: 100\n  overlap: 100\n"), 0o644))

	_, err := Load(p)
	require.ErrorIs(t, err, domain.ErrInvalidConfig)
}

func TestLoad_RejectsUnknownKeys(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte("retrieval:\n  topk: 3\n"), 0o644))

	_, err := Load(p)
	require.Error(t, err)
}

func TestValidate_ReportsEveryField(t *testing.T) {
	cfg := Default()
	cfg.Retrieval.TopK = 0
	cfg.Answer.SnippetLimit = -1
	cfg.Index.VocabularyCap = 0

	err := cfg.Validate()
	require.ErrorIs(t, err, domain.ErrInvalidConfig)
	for _, field := range []string{"top_k", "snippet_limit", "vocabulary_cap"} {
		assert.Contains(t, err.Error(), field)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	p := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.Index.Stopwords = []string{"pump"}
	require.NoError(t, Save(p, cfg))

	loaded, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestStopwordList(t *testing.T) {
	cfg := Default()
	cfg.Index.Stopwords = []string{"valve"}
	assert.Contains(t, cfg.StopwordList(), "the")
	assert.Contains(t, cfg.StopwordList(), "valve")

	cfg.Index.DisableDefaultStopwords = true
	assert.Equal(t, []string{"valve"}, cfg.StopwordList())
}

func TestLoadDefault_UsesEnvPath(t *testing.T) {
	p := filepath.Join(t.TempDir(), "env.yaml")
	require.NoError(t, os.WriteFile(p, []byte("answer:\n  concat_limit: 42\n"), 0o644))
	t.Setenv(EnvConfigPath, p)

	cfg, used, err := LoadDefault()
	require.NoError(t, err)
	assert.Equal(t, p, used)
	assert.Equal(t, 42, cfg.Answer.ConcatLimit)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvLogLevel, "debug")
	cfg := Default()
	ApplyEnv(cfg)
	assert.Equal(t, "debug", cfg.Log.Level)
}
