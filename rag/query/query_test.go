package query

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/antgroup/ragqa/llm"
	"github.com/antgroup/ragqa/llm/mocks"
	goopenai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fakeRetriever struct {
	chunks []string
	err    error
	limit  int
}

func (f *fakeRetriever) Query(_ context.Context, _ string, limit int) ([]string, error) {
	f.limit = limit
	if f.err != nil {
		return nil, f.err
	}
	return f.chunks, nil
}

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestFormatContext(t *testing.T) {
	assert.Equal(t, "\nA\n\nB", FormatContext([]string{"A", "B"}))
	assert.Equal(t, "\nA", FormatContext([]string{"A"}))
	assert.Equal(t, "\n", FormatContext(nil))
}

func TestBuildPrompt(t *testing.T) {
	p := BuildPrompt("开放时间?", "\n周末九点开门")
	assert.Contains(t, p, "【文档】: \n周末九点开门\n【问题】: 开放时间?\n")
	assert.NotContains(t, p, "###文档###")
	assert.NotContains(t, p, "###问题###")
	assert.Contains(t, p, "那请你回答不知道")
}

func TestBuildPromptSinglePass(t *testing.T) {
	p := BuildPrompt("Q", "正文里有###问题###字样")
	assert.Contains(t, p, "【文档】: 正文里有###问题###字样\n【问题】: Q")
}

func TestRequestAnswer(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := mocks.NewMockLLM(ctrl)
	m.EXPECT().GenerateContent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, messages []llm.Message, _ ...llm.GenerateOption) (*llm.Generation, error) {
			require.Len(t, messages, 1)
			assert.Equal(t, llm.RoleUser, messages[0].Role)
			assert.Equal(t, "prompt", messages[0].Content)
			return &llm.Generation{Content: "九点开门。"}, nil
		})

	res := RequestAnswer(context.Background(), m, "prompt")
	assert.True(t, res.OK())
	assert.Equal(t, "九点开门。", res.Answer)
	assert.NoError(t, res.Err)
}

func TestRequestAnswerEmpty(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := mocks.NewMockLLM(ctrl)
	m.EXPECT().GenerateContent(gomock.Any(), gomock.Any()).Return(&llm.Generation{Content: "  "}, nil)

	res := RequestAnswer(context.Background(), m, "prompt")
	assert.False(t, res.OK())
	assert.Equal(t, ReasonEmpty, res.Reason)
	assert.Empty(t, res.Answer)
	assert.True(t, res.Retryable())
}

func TestClassify(t *testing.T) {
	cases := []struct {
		err    error
		reason Reason
	}{
		{nil, ReasonNone},
		{&goopenai.APIError{HTTPStatusCode: http.StatusTooManyRequests}, ReasonRateLimited},
		{&goopenai.APIError{HTTPStatusCode: http.StatusUnauthorized}, ReasonAuth},
		{&goopenai.APIError{HTTPStatusCode: http.StatusForbidden}, ReasonAuth},
		{&goopenai.APIError{HTTPStatusCode: http.StatusBadGateway}, ReasonServer},
		{&goopenai.APIError{HTTPStatusCode: http.StatusBadRequest}, ReasonMalformed},
		{&goopenai.RequestError{HTTPStatusCode: http.StatusServiceUnavailable}, ReasonServer},
		{fmt.Errorf("wrapped: %w", &goopenai.RequestError{HTTPStatusCode: http.StatusUnprocessableEntity}), ReasonMalformed},
		{context.Canceled, ReasonCanceled},
		{fmt.Errorf("call: %w", context.DeadlineExceeded), ReasonTimeout},
		{timeoutErr{}, ReasonTimeout},
		{errors.New("boom"), ReasonUnknown},
	}
	for _, c := range cases {
		assert.Equal(t, c.reason, Classify(c.err), "%v", c.err)
	}
}

func TestRetryable(t *testing.T) {
	assert.True(t, AnswerResult{Reason: ReasonRateLimited}.Retryable())
	assert.True(t, AnswerResult{Reason: ReasonServer}.Retryable())
	assert.False(t, AnswerResult{Reason: ReasonAuth}.Retryable())
	assert.False(t, AnswerResult{Reason: ReasonMalformed}.Retryable())
	assert.False(t, AnswerResult{Reason: ReasonCanceled}.Retryable())
	assert.False(t, AnswerResult{}.Retryable())
}

func TestNewValidation(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := mocks.NewMockLLM(ctrl)

	_, err := New(WithRetriever(&fakeRetriever{}))
	assert.Error(t, err)
	_, err = New(WithLLM(m))
	assert.Error(t, err)
	_, err = New(WithLLM(m), WithRetriever(&fakeRetriever{}), WithTopK(0))
	assert.Error(t, err)

	r, err := New(WithLLM(m), WithRetriever(&fakeRetriever{}), WithMaxAttempts(0))
	require.NoError(t, err)
	assert.Equal(t, DefaultTopK, r.TopK)
	assert.Equal(t, 1, r.MaxAttempts)
}

func TestAsk(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := mocks.NewMockLLM(ctrl)
	retriever := &fakeRetriever{chunks: []string{"周末九点开门。", "周一闭馆。"}}

	var sent string
	m.EXPECT().GenerateContent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, messages []llm.Message, _ ...llm.GenerateOption) (*llm.Generation, error) {
			sent = messages[0].Content
			return &llm.Generation{Content: "周末九点开门。"}, nil
		})

	r, err := New(WithLLM(m), WithRetriever(retriever))
	require.NoError(t, err)

	res, err := r.Ask(context.Background(), "周末几点开门?")
	require.NoError(t, err)
	assert.Equal(t, DefaultTopK, retriever.limit)
	assert.Equal(t, sent, res.Prompt)
	assert.Equal(t, BuildPrompt("周末几点开门?", "\n周末九点开门。\n\n周一闭馆。"), res.Prompt)
	assert.True(t, res.Answer.OK())

	record := res.Record()
	assert.Equal(t, "周末几点开门?", record.Question)
	assert.Equal(t, "周末九点开门。", record.Answer)
	assert.Equal(t, retriever.chunks, record.Contexts)
}

func TestAskEmptyQuery(t *testing.T) {
	ctrl := gomock.NewController(t)
	r, err := New(WithLLM(mocks.NewMockLLM(ctrl)), WithRetriever(&fakeRetriever{}))
	require.NoError(t, err)

	_, err = r.Ask(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrEmptyQuery)
}

func TestAskRetrievalError(t *testing.T) {
	ctrl := gomock.NewController(t)
	r, err := New(WithLLM(mocks.NewMockLLM(ctrl)), WithRetriever(&fakeRetriever{err: errors.New("store offline")}))
	require.NoError(t, err)

	_, err = r.Ask(context.Background(), "问题")
	assert.ErrorContains(t, err, "store offline")
}

func TestAskRetriesRetryableFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := mocks.NewMockLLM(ctrl)
	gomock.InOrder(
		m.EXPECT().GenerateContent(gomock.Any(), gomock.Any()).
			Return(nil, &goopenai.APIError{HTTPStatusCode: http.StatusTooManyRequests}),
		m.EXPECT().GenerateContent(gomock.Any(), gomock.Any()).
			Return(&llm.Generation{Content: "好的"}, nil),
	)

	r, err := New(WithLLM(m), WithRetriever(&fakeRetriever{chunks: []string{"c"}}), WithMaxAttempts(3))
	require.NoError(t, err)

	res, err := r.Ask(context.Background(), "问题")
	require.NoError(t, err)
	assert.True(t, res.Answer.OK())
	assert.Equal(t, 2, res.Attempts)
}

func TestAskCallsOnRetryBeforeEachRepeat(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := mocks.NewMockLLM(ctrl)
	m.EXPECT().GenerateContent(gomock.Any(), gomock.Any()).
		Return(nil, &goopenai.APIError{HTTPStatusCode: http.StatusBadGateway}).Times(3)

	var attempts []int
	var reasons []Reason
	r, err := New(WithLLM(m), WithRetriever(&fakeRetriever{chunks: []string{"c"}}), WithMaxAttempts(3),
		WithOnRetry(func(attempt int, failed AnswerResult) {
			attempts = append(attempts, attempt)
			reasons = append(reasons, failed.Reason)
		}))
	require.NoError(t, err)

	res, err := r.Ask(context.Background(), "问题")
	require.NoError(t, err)
	assert.False(t, res.Answer.OK())
	assert.Equal(t, 3, res.Attempts)
	assert.Equal(t, []int{2, 3}, attempts)
	assert.Equal(t, []Reason{ReasonServer, ReasonServer}, reasons)
}

func TestAskDoesNotRetryAuthFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := mocks.NewMockLLM(ctrl)
	m.EXPECT().GenerateContent(gomock.Any(), gomock.Any()).
		Return(nil, &goopenai.APIError{HTTPStatusCode: http.StatusUnauthorized}).Times(1)

	r, err := New(WithLLM(m), WithRetriever(&fakeRetriever{chunks: []string{"c"}}), WithMaxAttempts(3))
	require.NoError(t, err)

	res, err := r.Ask(context.Background(), "问题")
	require.NoError(t, err)
	assert.False(t, res.Answer.OK())
	assert.Equal(t, ReasonAuth, res.Answer.Reason)
	assert.Empty(t, res.Record().Answer)
}

type runeCounter struct{}

func (runeCounter) Count(text string) int { return len([]rune(text)) }

func TestAskWithContextWindow(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := mocks.NewMockLLM(ctrl)
	m.EXPECT().GenerateContent(gomock.Any(), gomock.Any()).Return(&llm.Generation{Content: "a"}, nil)

	r, err := New(WithLLM(m), WithRetriever(&fakeRetriever{chunks: []string{"c"}}),
		WithContextWindow(runeCounter{}, 10))
	require.NoError(t, err)

	res, err := r.Ask(context.Background(), "问题")
	require.NoError(t, err)
	assert.True(t, res.Answer.OK())
}

func TestAskOnPrompt(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := mocks.NewMockLLM(ctrl)
	var order []string
	m.EXPECT().GenerateContent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, []llm.Message, ...llm.GenerateOption) (*llm.Generation, error) {
			order = append(order, "llm")
			return &llm.Generation{Content: "a"}, nil
		})

	r, err := New(WithLLM(m), WithRetriever(&fakeRetriever{chunks: []string{"c"}}),
		WithOnPrompt(func(p string) { order = append(order, p) }))
	require.NoError(t, err)

	res, err := r.Ask(context.Background(), "问题")
	require.NoError(t, err)
	assert.Equal(t, []string{res.Prompt, "llm"}, order)
}
