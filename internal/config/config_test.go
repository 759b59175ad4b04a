package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bull/semsearch/internal/chunking"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Qdrant.Host)
	assert.Equal(t, 6334, cfg.Qdrant.Port)
	assert.Equal(t, "document_vectors", cfg.Qdrant.Collection)
	assert.Equal(t, 768, cfg.Qdrant.Dimensions)
	assert.Equal(t, chunking.DefaultMaxChunkSize, cfg.Chunking.MaxChunkSize)
	assert.Equal(t, chunking.DefaultOverlap, cfg.Chunking.Overlap)
	assert.Equal(t, chunking.DefaultSimilarityThreshold, cfg.Chunking.SimilarityThreshold)
	assert.Equal(t, string(chunking.GranularityParagraph), cfg.Chunking.Granularity)
	assert.Equal(t, "text-embedding-3-small", cfg.Embedding.Model)
	assert.Equal(t, "gpt-4o-mini", cfg.Chat.Model)
	assert.Equal(t, 8000, cfg.Indexing.MaxContentChars)
	assert.Equal(t, 1500, cfg.Hyde.MaxHypothesisChars)
}

func TestLoad_PartialFileKeepsDefaultsForOmittedFields(t *testing.T) {
	path := writeConfig(t, `
qdrant:
  host: qdrant.internal
  collection: handbook
chunking:
  max_chunk_size: 2000
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "qdrant.internal", cfg.Qdrant.Host)
	assert.Equal(t, "handbook", cfg.Qdrant.Collection)
	assert.Equal(t, 6334, cfg.Qdrant.Port)
	assert.Equal(t, 2000, cfg.Chunking.MaxChunkSize)
	assert.Equal(t, chunking.DefaultOverlap, cfg.Chunking.Overlap)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "qdrant: [not a mapping")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_OverlapMustBeSmallerThanChunkSize(t *testing.T) {
	path := writeConfig(t, `
chunking:
  max_chunk_size: 100
  overlap: 100
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "overlap")
}

func TestLoad_NegativeDimensions(t *testing.T) {
	path := writeConfig(t, `
qdrant:
  dimensions: -1
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "negative")
}

func TestLoad_ZeroDimensionsDefaulted(t *testing.T) {
	path := writeConfig(t, `
qdrant:
  dimensions: 0
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 768, cfg.Qdrant.Dimensions)
}

func TestLoad_UnknownGranularity(t *testing.T) {
	path := writeConfig(t, `
chunking:
  granularity: word
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "granularity")
}

func TestChunkingOptions(t *testing.T) {
	cfg := Default()
	cfg.Chunking.Granularity = string(chunking.GranularitySentence)

	opts := cfg.ChunkingOptions()
	assert.Equal(t, chunking.GranularitySentence, opts.Granularity)
	assert.Equal(t, chunking.DefaultMaxChunkSize, opts.MaxChunkSize)
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}
