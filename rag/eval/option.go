package eval

import (
	"github.com/rs/zerolog"
)

const DefaultStrictness = 3

// PromptSet holds the prompts used by the metrics. Nil fields keep the default.
type PromptSet struct {
	Statements         *Prompt
	NLIStatements      *Prompt
	QuestionGeneration *Prompt
	ContextPrecision   *Prompt
}

// DefaultPrompts returns the Chinese prompts.
func DefaultPrompts() PromptSet {
	return PromptSet{
		Statements:         LongFormAnswerZh,
		NLIStatements:      NLIStatementsZh,
		QuestionGeneration: QuestionGenerationZh,
		ContextPrecision:   ContextPrecisionZh,
	}
}

func (s PromptSet) all() []*Prompt {
	return []*Prompt{s.Statements, s.NLIStatements, s.QuestionGeneration, s.ContextPrecision}
}

type Options struct {
	Metrics    []string
	Strictness int
	MaxRetries int
	Segmenter  Segmenter
	Filter     *SentenceFilter
	Prompts    PromptSet
	Logger     *zerolog.Logger
}

type Option func(*Options)

// WithMetrics selects the metrics to run. They still run in the order of AllMetrics.
func WithMetrics(names ...string) Option {
	return func(o *Options) {
		o.Metrics = names
	}
}

// WithStrictness sets how many questions answer relevancy generates.
func WithStrictness(n int) Option {
	return func(o *Options) {
		o.Strictness = n
	}
}

// WithMaxRetries sets how often unparseable output is sent back for repair.
func WithMaxRetries(n int) Option {
	return func(o *Options) {
		o.MaxRetries = n
	}
}

// WithSegmenter replaces the rule segmenter. nil keeps the default.
func WithSegmenter(s Segmenter) Option {
	return func(o *Options) {
		if s != nil {
			o.Segmenter = s
		}
	}
}

// WithSentenceFilter replaces the default "。" filter. nil keeps the default;
// a filter without terminators keeps every sentence.
func WithSentenceFilter(f *SentenceFilter) Option {
	return func(o *Options) {
		if f != nil {
			o.Filter = f
		}
	}
}

func WithPrompts(prompts PromptSet) Option {
	return func(o *Options) {
		if prompts.Statements != nil {
			o.Prompts.Statements = prompts.Statements
		}
		if prompts.NLIStatements != nil {
			o.Prompts.NLIStatements = prompts.NLIStatements
		}
		if prompts.QuestionGeneration != nil {
			o.Prompts.QuestionGeneration = prompts.QuestionGeneration
		}
		if prompts.ContextPrecision != nil {
			o.Prompts.ContextPrecision = prompts.ContextPrecision
		}
	}
}

func WithLogger(logger *zerolog.Logger) Option {
	return func(o *Options) {
		if logger != nil {
			o.Logger = logger
		}
	}
}
