package qwen

import (
	"net/http"
)

type options struct {
	token      string
	model      string
	baseURL    string
	stream     bool
	httpClient *http.Client
}

// Option is a functional option for the QWen client.
type Option func(*options)

// WithToken passes the DashScope API key to the client.
func WithToken(token string) Option {
	return func(opts *options) {
		opts.token = token
	}
}

// WithModel passes the QWen model to the client, qwen-long when not set.
func WithModel(model string) Option {
	return func(opts *options) {
		if model != "" {
			opts.model = model
		}
	}
}

// WithBaseURL overrides the DashScope compatible-mode endpoint, e.g. for the
// international region.
func WithBaseURL(baseURL string) Option {
	return func(opts *options) {
		if baseURL != "" {
			opts.baseURL = baseURL
		}
	}
}

// WithStream toggles streamed completions, enabled by default.
func WithStream(stream bool) Option {
	return func(opts *options) {
		opts.stream = stream
	}
}

// WithHttpClient passes the QWen http client to the client.
func WithHttpClient(httpClient *http.Client) Option {
	return func(opts *options) {
		opts.httpClient = httpClient
	}
}
