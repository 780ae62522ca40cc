package openai

import (
	"net/http"

	goopenai "github.com/sashabaranov/go-openai"
)

type options struct {
	token         string
	model         string
	baseURL       string
	organization  string
	apiType       goopenai.APIType
	apiVersion    string
	httpClient    *http.Client
	disableStream bool
}

// Option is a functional option for the OpenAI compatible client.
type Option func(*options)

// WithToken passes the API key to the client.
func WithToken(token string) Option {
	return func(opts *options) {
		opts.token = token
	}
}

// WithModel sets the chat model, gpt-4o when not set.
func WithModel(model string) Option {
	return func(opts *options) {
		if model != "" {
			opts.model = model
		}
	}
}

// WithBaseURL points the client at an OpenAI compatible endpoint. The
// official https://api.openai.com/v1 is used when empty.
func WithBaseURL(baseURL string) Option {
	return func(opts *options) {
		opts.baseURL = baseURL
	}
}

func WithOrganization(organization string) Option {
	return func(opts *options) {
		opts.organization = organization
	}
}

// WithAPIType switches between openai and azure style endpoints.
func WithAPIType(apiType goopenai.APIType) Option {
	return func(opts *options) {
		opts.apiType = apiType
	}
}

func WithAPIVersion(apiVersion string) Option {
	return func(opts *options) {
		opts.apiVersion = apiVersion
	}
}

func WithHttpClient(httpClient *http.Client) Option {
	return func(opts *options) {
		opts.httpClient = httpClient
	}
}

// WithoutStream makes GenerateContent use a single non-streaming request.
func WithoutStream() Option {
	return func(opts *options) {
		opts.disableStream = true
	}
}
