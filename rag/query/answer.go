package query

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"

	"github.com/antgroup/ragqa/llm"
	goopenai "github.com/sashabaranov/go-openai"
)

// Reason tells why an answer request produced no answer.
type Reason string

const (
	ReasonNone        Reason = ""
	ReasonRateLimited Reason = "rate_limited"
	ReasonAuth        Reason = "auth"
	ReasonServer      Reason = "server"
	ReasonNetwork     Reason = "network"
	ReasonTimeout     Reason = "timeout"
	ReasonCanceled    Reason = "canceled"
	ReasonMalformed   Reason = "malformed"
	ReasonEmpty       Reason = "empty"
	ReasonUnknown     Reason = "unknown"
)

var ErrEmptyAnswer = errors.New("model returned an empty answer")

// AnswerResult is the outcome of one answer request. Answer is empty whenever
// Reason is not ReasonNone.
type AnswerResult struct {
	Answer string `json:"answer"`
	Err    error  `json:"-"`
	Reason Reason `json:"reason,omitempty"`
}

func (r AnswerResult) OK() bool {
	return r.Reason == ReasonNone
}

// Retryable reports whether asking again may succeed.
func (r AnswerResult) Retryable() bool {
	switch r.Reason {
	case ReasonRateLimited, ReasonServer, ReasonNetwork, ReasonTimeout, ReasonEmpty:
		return true
	}
	return false
}

// RequestAnswer sends prompt as a single user message and returns the reply.
// Failures never escape as errors; they are classified into the result.
func RequestAnswer(ctx context.Context, l llm.LLM, prompt string, options ...llm.GenerateOption) AnswerResult {
	generation, err := l.GenerateContent(ctx, []llm.Message{
		llm.NewUserMessage("", prompt),
	}, options...)
	if err != nil {
		return AnswerResult{Err: err, Reason: Classify(err)}
	}
	if generation == nil || strings.TrimSpace(generation.Content) == "" {
		return AnswerResult{Err: ErrEmptyAnswer, Reason: ReasonEmpty}
	}
	return AnswerResult{Answer: generation.Content}
}

// Classify maps a completion error to a Reason.
func Classify(err error) Reason {
	if err == nil {
		return ReasonNone
	}
	if errors.Is(err, context.Canceled) {
		return ReasonCanceled
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ReasonTimeout
	}

	var apiErr *goopenai.APIError
	if errors.As(err, &apiErr) {
		return classifyStatus(apiErr.HTTPStatusCode)
	}
	var reqErr *goopenai.RequestError
	if errors.As(err, &reqErr) {
		return classifyStatus(reqErr.HTTPStatusCode)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return ReasonTimeout
		}
		return ReasonNetwork
	}
	return ReasonUnknown
}

func classifyStatus(code int) Reason {
	switch {
	case code == http.StatusTooManyRequests:
		return ReasonRateLimited
	case code == http.StatusUnauthorized, code == http.StatusForbidden:
		return ReasonAuth
	case code == http.StatusBadRequest, code == http.StatusUnprocessableEntity:
		return ReasonMalformed
	case code >= http.StatusInternalServerError:
		return ReasonServer
	}
	return ReasonUnknown
}
