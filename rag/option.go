package rag

import (
	"github.com/rs/zerolog"
)

type Option func(c *WorkflowConfig)

// NewWorkflowConfig returns the default ingest settings with opts applied.
func NewWorkflowConfig(opts ...Option) *WorkflowConfig {
	nop := zerolog.Nop()
	c := &WorkflowConfig{
		ChunkSize:    DefaultChunkSize,
		ChunkOverlap: DefaultChunkOverlap,
		Separators:   DefaultSeparators,
		Splitter:     SplitterCharacter,
		BatchSize:    16,
		Logger:       &nop,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func WithChunkSize(size int) Option {
	return func(c *WorkflowConfig) {
		c.ChunkSize = size
	}
}

func WithChunkOverlap(overlap int) Option {
	return func(c *WorkflowConfig) {
		c.ChunkOverlap = overlap
	}
}

func WithSeparators(separators []string) Option {
	return func(c *WorkflowConfig) {
		c.Separators = separators
	}
}

func WithSplitter(strategy string) Option {
	return func(c *WorkflowConfig) {
		if strategy != "" {
			c.Splitter = strategy
		}
	}
}

func WithEmbedder(embedder Embedder) Option {
	return func(c *WorkflowConfig) {
		c.Embedder = embedder
	}
}

func WithBatchSize(size int) Option {
	return func(c *WorkflowConfig) {
		if size > 0 {
			c.BatchSize = size
		}
	}
}

func WithStorage(storage Storage) Option {
	return func(c *WorkflowConfig) {
		c.Storage = storage
	}
}

func WithLogger(logger *zerolog.Logger) Option {
	return func(c *WorkflowConfig) {
		if logger != nil {
			c.Logger = logger
		}
	}
}
