package llm

import (
	"context"
	"fmt"
)

// Waiter blocks until the caller may issue the next request.
type Waiter interface {
	Wait(ctx context.Context) error
}

type limited struct {
	llm    LLM
	waiter Waiter
}

// Limit gates every call of l behind w. A nil waiter returns l unchanged.
func Limit(l LLM, w Waiter) LLM {
	if w == nil {
		return l
	}
	return &limited{llm: l, waiter: w}
}

func (l *limited) Generate(ctx context.Context, prompt string, options ...GenerateOption) (*Generation, error) {
	if err := l.waiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("wait for rate limit: %w", err)
	}
	return l.llm.Generate(ctx, prompt, options...)
}

func (l *limited) GenerateContent(ctx context.Context, messages []Message, options ...GenerateOption) (*Generation, error) {
	if err := l.waiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("wait for rate limit: %w", err)
	}
	return l.llm.GenerateContent(ctx, messages, options...)
}
