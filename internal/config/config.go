// Package config loads the application configuration from a YAML file into
// an explicit Config value constructed once at startup and passed to every
// component that needs it.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/bull/semsearch/internal/chunking"
)

// QdrantConfig contains connection details for the vector store.
type QdrantConfig struct {
	Host       string `yaml:"host"`
	Port       int    `yaml:"port"`
	Collection string `yaml:"collection"`
	Dimensions int    `yaml:"dimensions"`
}

// ChunkingConfig configures how documents are split into chunks.
type ChunkingConfig struct {
	MaxChunkSize        int     `yaml:"max_chunk_size"`
	Overlap             int     `yaml:"overlap"`
	SimilarityThreshold float64 `yaml:"similarity_threshold"`
	Granularity         string  `yaml:"granularity"`
}

// EmbeddingConfig selects the embedding model. Dimensions follow the Qdrant
// collection configuration.
type EmbeddingConfig struct {
	Model string `yaml:"model"`
}

// ChatConfig selects the chat model used for HyDE and answering.
type ChatConfig struct {
	Model string `yaml:"model"`
}

// IndexingConfig bounds per-chunk content sent to the embedding service.
type IndexingConfig struct {
	MaxContentChars int `yaml:"max_content_chars"`
}

// HydeConfig bounds hypothesis length.
type HydeConfig struct {
	MaxHypothesisChars int `yaml:"max_hypothesis_chars"`
}

// Config is the root application configuration.
type Config struct {
	Qdrant    QdrantConfig    `yaml:"qdrant"`
	Chunking  ChunkingConfig  `yaml:"chunking"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Chat      ChatConfig      `yaml:"chat"`
	Indexing  IndexingConfig  `yaml:"indexing"`
	Hyde      HydeConfig      `yaml:"hyde"`
}

// Load reads a config from path. A missing file returns the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return &cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// ChunkingOptions maps the chunking section onto chunking.Options.
func (c *Config) ChunkingOptions() chunking.Options {
	return chunking.Options{
		MaxChunkSize:        c.Chunking.MaxChunkSize,
		Overlap:             c.Chunking.Overlap,
		SimilarityThreshold: c.Chunking.SimilarityThreshold,
		Granularity:         chunking.Granularity(c.Chunking.Granularity),
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Qdrant.Host == "" {
		cfg.Qdrant.Host = "localhost"
	}
	if cfg.Qdrant.Port == 0 {
		cfg.Qdrant.Port = 6334
	}
	if cfg.Qdrant.Collection == "" {
		cfg.Qdrant.Collection = "document_vectors"
	}
	if cfg.Qdrant.Dimensions == 0 {
		cfg.Qdrant.Dimensions = 768
	}
	if cfg.Chunking.MaxChunkSize == 0 {
		cfg.Chunking.MaxChunkSize = chunking.DefaultMaxChunkSize
	}
	if cfg.Chunking.Overlap == 0 {
		cfg.Chunking.Overlap = chunking.DefaultOverlap
	}
	if cfg.Chunking.SimilarityThreshold == 0 {
		cfg.Chunking.SimilarityThreshold = chunking.DefaultSimilarityThreshold
	}
	if cfg.Chunking.Granularity == "" {
		cfg.Chunking.Granularity = string(chunking.GranularityParagraph)
	}
	if cfg.Embedding.Model == "" {
		cfg.Embedding.Model = "text-embedding-3-small"
	}
	if cfg.Chat.Model == "" {
		cfg.Chat.Model = "gpt-4o-mini"
	}
	if cfg.Indexing.MaxContentChars == 0 {
		cfg.Indexing.MaxContentChars = 8000
	}
	if cfg.Hyde.MaxHypothesisChars == 0 {
		cfg.Hyde.MaxHypothesisChars = 1500
	}
}

func validate(cfg *Config) error {
	if cfg.Chunking.Overlap >= cfg.Chunking.MaxChunkSize {
		return fmt.Errorf("chunking overlap %d must be smaller than max_chunk_size %d",
			cfg.Chunking.Overlap, cfg.Chunking.MaxChunkSize)
	}
	if cfg.Qdrant.Dimensions < 0 {
		return fmt.Errorf("qdrant dimensions must not be negative, got %d", cfg.Qdrant.Dimensions)
	}

	switch chunking.Granularity(cfg.Chunking.Granularity) {
	case chunking.GranularityParagraph, chunking.GranularitySentence:
	default:
		return fmt.Errorf("unknown chunking granularity %q", cfg.Chunking.Granularity)
	}
	return nil
}
