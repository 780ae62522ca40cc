package eval

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/antgroup/ragqa/llm"
	"github.com/antgroup/ragqa/rag"
	"github.com/antgroup/ragqa/utils/logger"
	"github.com/thoas/go-funk"
)

// Evaluator scores records with the configured metrics, one after another.
type Evaluator struct {
	options *Options
	metrics []Metric
}

func NewEvaluator(l llm.LLM, embedder rag.Embedder, opts ...Option) (*Evaluator, error) {
	if l == nil {
		return nil, errors.New("llm is not set")
	}
	options := &Options{
		Metrics:    AllMetrics,
		Strictness: DefaultStrictness,
		MaxRetries: 1,
		Segmenter:  NewRuleSegmenter(),
		Filter:     NewSentenceFilter(),
		Prompts:    DefaultPrompts(),
		Logger:     logger.Nop(),
	}
	for _, opt := range opts {
		opt(options)
	}
	if options.Strictness < 1 {
		return nil, fmt.Errorf("strictness must be positive, got %d", options.Strictness)
	}
	for _, p := range options.Prompts.all() {
		if err := p.Validate(); err != nil {
			return nil, err
		}
	}
	for _, name := range options.Metrics {
		if !funk.ContainsString(AllMetrics, name) {
			return nil, fmt.Errorf("unknown metric %q", name)
		}
	}
	if funk.ContainsString(options.Metrics, MetricAnswerRelevancy) && embedder == nil {
		return nil, errors.New("answer relevancy needs an embedder")
	}

	gen := &generator{llm: l, maxRetries: options.MaxRetries, logger: options.Logger}
	e := &Evaluator{options: options}
	for _, name := range AllMetrics {
		if !funk.ContainsString(options.Metrics, name) {
			continue
		}
		switch name {
		case MetricFaithfulness:
			e.metrics = append(e.metrics, &Faithfulness{
				gen:             gen,
				statementPrompt: options.Prompts.Statements,
				nliPrompt:       options.Prompts.NLIStatements,
				segmenter:       options.Segmenter,
				filter:          options.Filter,
			})
		case MetricAnswerRelevancy:
			e.metrics = append(e.metrics, &AnswerRelevancy{
				gen:        gen,
				embedder:   embedder,
				prompt:     options.Prompts.QuestionGeneration,
				strictness: options.Strictness,
			})
		case MetricContextUtilization:
			e.metrics = append(e.metrics, &ContextUtilization{
				gen:    gen,
				prompt: options.Prompts.ContextPrecision,
			})
		}
	}
	return e, nil
}

// Metrics returns the names of the metrics in evaluation order.
func (e *Evaluator) Metrics() []string {
	names := make([]string, len(e.metrics))
	for i, m := range e.metrics {
		names[i] = m.Name()
	}
	return names
}

// Evaluate stops at the first metric whose model or embedding call fails.
func (e *Evaluator) Evaluate(ctx context.Context, record Record) (*Report, error) {
	if err := record.Validate(); err != nil {
		return nil, err
	}
	report := &Report{
		Record:  record,
		Scores:  make(map[string]Score, len(e.metrics)),
		Metrics: e.Metrics(),
	}
	for _, m := range e.metrics {
		start := time.Now()
		score, err := m.Score(ctx, record)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", m.Name(), err)
		}
		report.Scores[m.Name()] = score
		e.options.Logger.Debug().Str("metric", m.Name()).
			Str("score", score.String()).
			Dur("elapsed", time.Since(start)).
			Msg("metric done")
	}
	return report, nil
}
