package query

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/antgroup/ragqa/rag/eval"
	"github.com/antgroup/ragqa/utils/logger"
)

var ErrEmptyQuery = errors.New("query is empty")

// RAG answers questions from the chunks its retriever returns.
type RAG struct {
	*Config
}

// Result keeps the contexts exactly as they were placed into the prompt.
type Result struct {
	Question string       `json:"question"`
	Contexts []string     `json:"contexts"`
	Prompt   string       `json:"prompt"`
	Answer   AnswerResult `json:"answer"`
	Attempts int          `json:"attempts"`
}

// Record returns the evaluation record of this answer.
func (r *Result) Record() eval.Record {
	return eval.Record{
		Question: r.Question,
		Answer:   r.Answer.Answer,
		Contexts: r.Contexts,
	}
}

func New(opts ...Option) (*RAG, error) {
	config := &Config{
		TopK:        DefaultTopK,
		MaxAttempts: 1,
	}
	for _, opt := range opts {
		opt(config)
	}
	if config.LLM == nil {
		return nil, errors.New("llm is not set")
	}
	if config.Retriever == nil {
		return nil, errors.New("retriever is not set")
	}
	if config.TopK <= 0 {
		return nil, fmt.Errorf("top k must be positive, got %d", config.TopK)
	}
	if config.MaxAttempts < 1 {
		config.MaxAttempts = 1
	}
	if config.Logger == nil {
		config.Logger = logger.Nop()
	}
	return &RAG{Config: config}, nil
}

// Ask retrieves context for question, builds the prompt and requests an
// answer. Only retrieval failures are returned as errors; answer failures are
// reported in Result.Answer.
func (r *RAG) Ask(ctx context.Context, question string) (*Result, error) {
	if strings.TrimSpace(question) == "" {
		return nil, ErrEmptyQuery
	}

	contexts, err := r.Retriever.Query(ctx, question, r.TopK)
	if err != nil {
		return nil, fmt.Errorf("retrieve contexts: %w", err)
	}
	r.Logger.Debug().Int("contexts", len(contexts)).Msg("retrieved contexts")

	prompt := BuildPrompt(question, FormatContext(contexts))
	r.checkWindow(prompt)
	if r.OnPrompt != nil {
		r.OnPrompt(prompt)
	}

	result := &Result{
		Question: question,
		Contexts: contexts,
		Prompt:   prompt,
	}
	for attempt := 1; attempt <= r.MaxAttempts; attempt++ {
		result.Attempts = attempt
		result.Answer = RequestAnswer(ctx, r.LLM, prompt, r.GenerateOptions...)
		if result.Answer.OK() || !result.Answer.Retryable() || ctx.Err() != nil {
			break
		}
		r.Logger.Warn().Err(result.Answer.Err).
			Str("reason", string(result.Answer.Reason)).
			Int("attempt", attempt).
			Msg("answer request failed")
		if attempt < r.MaxAttempts && r.OnRetry != nil {
			r.OnRetry(attempt+1, result.Answer)
		}
	}
	if !result.Answer.OK() {
		r.Logger.Error().Err(result.Answer.Err).
			Str("reason", string(result.Answer.Reason)).
			Msg("no answer")
	}
	return result, nil
}

func (r *RAG) checkWindow(prompt string) {
	if r.Counter == nil {
		return
	}
	tokens := r.Counter.Count(prompt)
	r.Logger.Debug().Int("tokens", tokens).Msg("prompt built")
	if r.ContextWindow > 0 && tokens > r.ContextWindow {
		r.Logger.Warn().Int("tokens", tokens).Int("context_window", r.ContextWindow).
			Msg("prompt exceeds the model context window")
	}
}
