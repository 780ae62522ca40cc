package llm

import (
	"context"
)

// StreamingFunc receives every content delta while a completion streams.
type StreamingFunc func(ctx context.Context, chunk []byte) error

// GenerateOptions holds the per-call sampling settings.
type GenerateOptions struct {
	Temperature      float32
	N                int
	MaxTokens        int
	StopWords        []string
	Seed             int
	FrequencyPenalty float32
	PresencePenalty  float32
	JSONMode         bool
	Metadata         map[string]string

	StreamingFunc          StreamingFunc
	ReasoningStreamingFunc StreamingFunc
}

type GenerateOption func(*GenerateOptions)

func DefaultGenerateOption() *GenerateOptions {
	return &GenerateOptions{}
}

func WithTemperature(temperature float32) GenerateOption {
	return func(o *GenerateOptions) {
		o.Temperature = temperature
	}
}

func WithN(n int) GenerateOption {
	return func(o *GenerateOptions) {
		o.N = n
	}
}

func WithMaxTokens(maxTokens int) GenerateOption {
	return func(o *GenerateOptions) {
		o.MaxTokens = maxTokens
	}
}

func WithStopWords(stopWords []string) GenerateOption {
	return func(o *GenerateOptions) {
		o.StopWords = stopWords
	}
}

func WithSeed(seed int) GenerateOption {
	return func(o *GenerateOptions) {
		o.Seed = seed
	}
}

func WithFrequencyPenalty(penalty float32) GenerateOption {
	return func(o *GenerateOptions) {
		o.FrequencyPenalty = penalty
	}
}

func WithPresencePenalty(penalty float32) GenerateOption {
	return func(o *GenerateOptions) {
		o.PresencePenalty = penalty
	}
}

// WithJSONMode asks the provider for a json_object response format.
func WithJSONMode() GenerateOption {
	return func(o *GenerateOptions) {
		o.JSONMode = true
	}
}

func WithMetadata(metadata map[string]string) GenerateOption {
	return func(o *GenerateOptions) {
		o.Metadata = metadata
	}
}

func WithStreamingFunc(fn StreamingFunc) GenerateOption {
	return func(o *GenerateOptions) {
		o.StreamingFunc = fn
	}
}

func WithReasoningStreamingFunc(fn StreamingFunc) GenerateOption {
	return func(o *GenerateOptions) {
		o.ReasoningStreamingFunc = fn
	}
}
