package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/antgroup/ragqa/llm"
	goopenai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *LLM {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	opts = append([]Option{
		WithToken("test-key"),
		WithModel("qwen-long"),
		WithBaseURL(server.URL),
	}, opts...)
	client, err := New(opts...)
	require.NoError(t, err)
	return client
}

func streamHandler(t *testing.T, captured *goopenai.ChatCompletionRequest, chunks ...string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, captured))

		w.Header().Set("Content-Type", "text/event-stream")
		for _, chunk := range chunks {
			_, _ = fmt.Fprintf(w, "data: %s\n\n", chunk)
		}
		_, _ = fmt.Fprint(w, "data: [DONE]\n\n")
	}
}

func TestNewMissingToken(t *testing.T) {
	_, err := New(WithModel("qwen-long"))
	assert.Error(t, err)
}

func TestGenerateStream(t *testing.T) {
	t.Parallel()

	var captured goopenai.ChatCompletionRequest
	client := newTestClient(t, streamHandler(t, &captured,
		`{"choices":[{"index":0,"delta":{"role":"assistant","content":"猫是"}}]}`,
		`{"choices":[{"index":0,"delta":{"content":"一种哺乳动物。"},"finish_reason":"stop"}]}`,
		`{"choices":[],"usage":{"prompt_tokens":12,"completion_tokens":8,"total_tokens":20}}`,
	))

	var streamed string
	gen, err := client.Generate(context.Background(), "猫是什么动物？",
		llm.WithTemperature(0.3),
		llm.WithStreamingFunc(func(_ context.Context, chunk []byte) error {
			streamed += string(chunk)
			return nil
		}))
	require.NoError(t, err)

	assert.Equal(t, "猫是一种哺乳动物。", gen.Content)
	assert.Equal(t, "assistant", gen.Role)
	assert.Equal(t, "stop", gen.StopReason)
	assert.Equal(t, 20, gen.Usage.TotalTokens)
	assert.Equal(t, gen.Content, streamed)

	require.Len(t, captured.Messages, 1)
	assert.Equal(t, "user", captured.Messages[0].Role)
	assert.Equal(t, "猫是什么动物？", captured.Messages[0].Content)
	assert.Equal(t, "qwen-long", captured.Model)
	assert.True(t, captured.Stream)
	assert.InDelta(t, 0.3, captured.Temperature, 1e-6)
}

func TestGenerateWithoutStream(t *testing.T) {
	t.Parallel()

	var captured goopenai.ChatCompletionRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &captured)
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprint(w, `{"choices":[{"index":0,"message":{"role":"assistant","content":"{\"verdict\":1}"},"finish_reason":"stop"}],"usage":{"total_tokens":5}}`)
	}, WithoutStream())

	gen, err := client.GenerateContent(context.Background(),
		[]llm.Message{llm.NewUserMessage("", "judge")}, llm.WithJSONMode())
	require.NoError(t, err)
	assert.Equal(t, `{"verdict":1}`, gen.Content)
	assert.False(t, captured.Stream)
	require.NotNil(t, captured.ResponseFormat)
	assert.Equal(t, goopenai.ChatCompletionResponseFormatTypeJSONObject, captured.ResponseFormat.Type)
}

func TestGenerateAPIError(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = fmt.Fprint(w, `{"error":{"message":"rate limited","type":"requests","code":"Throttling"}}`)
	})

	_, err := client.Generate(context.Background(), "hi")
	require.Error(t, err)

	var apiErr *goopenai.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusTooManyRequests, apiErr.HTTPStatusCode)
}

func TestGenerateEmptyStream(t *testing.T) {
	t.Parallel()

	var captured goopenai.ChatCompletionRequest
	client := newTestClient(t, streamHandler(t, &captured))

	_, err := client.Generate(context.Background(), "hi")
	assert.ErrorIs(t, err, ErrNoChoices)
}
