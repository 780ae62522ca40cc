package openai

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/antgroup/ragqa/llm"
	goopenai "github.com/sashabaranov/go-openai"
)

type LLM struct {
	client         *goopenai.Client
	model          string
	stream         bool
	ResponseFormat *goopenai.ChatCompletionResponseFormat
}

var (
	_ llm.LLM = (*LLM)(nil)

	_defaultModel = "gpt-4o"
)

// newClient creates an instance of the internal client.
func newClient(opt *options) (*goopenai.Client, error) {
	if len(opt.token) == 0 {
		return nil, errors.New("missing the API key, set llm.api_key in config or the provider key in the environment")
	}

	config := goopenai.DefaultConfig(opt.token)
	if opt.apiType == goopenai.APITypeAzure {
		config = goopenai.DefaultAzureConfig(
			opt.token, opt.baseURL)
	}
	if opt.baseURL != "" {
		config.BaseURL = opt.baseURL
	}
	config.OrgID = opt.organization

	if opt.httpClient != nil {
		config.HTTPClient = opt.httpClient
	}
	if opt.apiVersion != "" {
		config.APIVersion = opt.apiVersion
	}

	return goopenai.NewClientWithConfig(config), nil
}

// New returns a chat client for any OpenAI compatible endpoint.
func New(opts ...Option) (*LLM, error) {
	option := &options{
		apiType:    goopenai.APITypeOpenAI,
		httpClient: http.DefaultClient,
		model:      _defaultModel,
	}

	for _, opt := range opts {
		opt(option)
	}
	c, err := newClient(option)
	if err != nil {
		return nil, err
	}
	return &LLM{
		client: c,
		model:  option.model,
		stream: !option.disableStream,
	}, nil
}

// Model returns the chat model the client sends requests for.
func (l *LLM) Model() string {
	return l.model
}

// GenerateContent implements the llm.LLM interface.
func (l *LLM) GenerateContent(ctx context.Context, messages []llm.Message, options ...llm.GenerateOption) (*llm.Generation, error) {
	opts := llm.DefaultGenerateOption()
	for _, opt := range options {
		opt(opts)
	}

	req := l.buildRequest(messages, opts)
	if !l.stream {
		return l.generate(ctx, req)
	}
	return l.generateStream(ctx, req, opts)
}

func (l *LLM) Generate(ctx context.Context, prompt string, options ...llm.GenerateOption) (*llm.Generation, error) {
	message := llm.NewUserMessage("", prompt)
	return l.GenerateContent(ctx, []llm.Message{message}, options...)
}

func (l *LLM) buildRequest(messages []llm.Message, opts *llm.GenerateOptions) goopenai.ChatCompletionRequest {
	msgs := make([]goopenai.ChatCompletionMessage, 0, len(messages))
	for _, mc := range messages {
		msgs = append(msgs, goopenai.ChatCompletionMessage{
			Role:    string(mc.Role),
			Name:    mc.Name,
			Content: mc.Content,
		})
	}
	req := goopenai.ChatCompletionRequest{
		Model:            l.model,
		Stop:             opts.StopWords,
		Messages:         msgs,
		Temperature:      opts.Temperature,
		N:                opts.N,
		FrequencyPenalty: opts.FrequencyPenalty,
		PresencePenalty:  opts.PresencePenalty,

		MaxTokens: opts.MaxTokens,
		Metadata:  opts.Metadata,
	}
	if opts.Seed != 0 {
		req.Seed = &opts.Seed
	}
	if l.stream {
		req.Stream = true
		req.StreamOptions = &goopenai.StreamOptions{
			IncludeUsage: true,
		}
	}

	if opts.JSONMode {
		req.ResponseFormat = &goopenai.ChatCompletionResponseFormat{
			Type: goopenai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	// if l.ResponseFormat is set, use it for the request
	if l.ResponseFormat != nil {
		req.ResponseFormat = l.ResponseFormat
	}
	return req
}

func (l *LLM) generate(ctx context.Context, req goopenai.ChatCompletionRequest) (*llm.Generation, error) {
	resp, err := l.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, ErrNoChoices
	}
	choice := resp.Choices[0]
	return &llm.Generation{
		Role:             choice.Message.Role,
		Content:          choice.Message.Content,
		ReasoningContent: choice.Message.ReasoningContent,
		StopReason:       string(choice.FinishReason),
		Usage: &llm.Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}, nil
}

func (l *LLM) generateStream(ctx context.Context, req goopenai.ChatCompletionRequest, opts *llm.GenerateOptions) (*llm.Generation, error) {
	streamer, err := l.client.CreateChatCompletionStream(ctx, req)
	if err != nil {
		return nil, err
	}
	defer streamer.Close()

	var response = &llm.Generation{
		Usage: &llm.Usage{},
	}

	received := false
	for {
		recv, err := streamer.Recv()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		if len(recv.Choices) > 0 {
			received = true
			delta := recv.Choices[0].Delta
			if recv.Choices[0].FinishReason != "" {
				response.StopReason = fmt.Sprint(recv.Choices[0].FinishReason)
			}
			if delta.Role != "" {
				response.Role = delta.Role
			}
			response.Content += delta.Content
			response.ReasoningContent += delta.ReasoningContent
			if opts.ReasoningStreamingFunc != nil && delta.ReasoningContent != "" {
				_ = opts.ReasoningStreamingFunc(ctx, []byte(delta.ReasoningContent))
			}
			if opts.StreamingFunc != nil && delta.Content != "" {
				_ = opts.StreamingFunc(ctx, []byte(delta.Content))
			}
		}
		if recv.Usage != nil {
			response.Usage.PromptTokens = recv.Usage.PromptTokens
			response.Usage.TotalTokens = recv.Usage.TotalTokens
			response.Usage.CompletionTokens = recv.Usage.CompletionTokens
		}
	}
	if !received {
		return nil, ErrNoChoices
	}

	return response, nil
}
