package query

import (
	"github.com/antgroup/ragqa/llm"
	"github.com/antgroup/ragqa/rag"
	"github.com/rs/zerolog"
)

// DefaultTopK is the number of chunks placed into the prompt.
const DefaultTopK = 4

// TokenCounter counts prompt tokens for the context window check.
type TokenCounter interface {
	Count(text string) int
}

type Config struct {
	LLM             llm.LLM
	Retriever       rag.Retriever
	TopK            int
	MaxAttempts     int
	GenerateOptions []llm.GenerateOption
	Counter         TokenCounter
	ContextWindow   int
	OnPrompt        func(prompt string)
	OnRetry         func(attempt int, failed AnswerResult)
	Logger          *zerolog.Logger
}

type Option func(*Config)

func WithLLM(l llm.LLM) Option {
	return func(c *Config) {
		c.LLM = l
	}
}

func WithRetriever(r rag.Retriever) Option {
	return func(c *Config) {
		c.Retriever = r
	}
}

func WithTopK(k int) Option {
	return func(c *Config) {
		c.TopK = k
	}
}

// WithMaxAttempts bounds how often a retryable answer failure is re-requested.
// Values below 1 mean a single attempt.
func WithMaxAttempts(n int) Option {
	return func(c *Config) {
		c.MaxAttempts = n
	}
}

func WithGenerateOptions(opts ...llm.GenerateOption) Option {
	return func(c *Config) {
		c.GenerateOptions = append(c.GenerateOptions, opts...)
	}
}

// WithContextWindow logs a warning when a prompt is longer than window tokens.
func WithContextWindow(counter TokenCounter, window int) Option {
	return func(c *Config) {
		c.Counter = counter
		c.ContextWindow = window
	}
}

// WithOnPrompt registers fn to see every prompt before it is sent.
func WithOnPrompt(fn func(prompt string)) Option {
	return func(c *Config) {
		c.OnPrompt = fn
	}
}

// WithOnRetry registers fn to run before every repeated answer request.
// attempt is the number of the request about to be sent, failed is the
// outcome of the previous one. Streaming callers use it to drop the partial
// output of the failed request.
func WithOnRetry(fn func(attempt int, failed AnswerResult)) Option {
	return func(c *Config) {
		c.OnRetry = fn
	}
}

func WithLogger(logger *zerolog.Logger) Option {
	return func(c *Config) {
		if logger != nil {
			c.Logger = logger
		}
	}
}
