package bge

import (
	"net/http"

	"github.com/rs/zerolog"
)

type Options struct {
	ProviderUrl string
	Model       string
	Device      string
	Normalize   bool
	BatchSize   int
	HTTPClient  *http.Client
	Logger      *zerolog.Logger
}

type Option func(*Options)

func WithProviderUrl(url string) Option {
	return func(o *Options) {
		o.ProviderUrl = url
	}
}

// WithModel sets the model identifier, usually <model_path>/<model_name>.
func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

func WithDevice(device string) Option {
	return func(o *Options) {
		if device != "" {
			o.Device = device
		}
	}
}

func WithNormalize(normalize bool) Option {
	return func(o *Options) {
		o.Normalize = normalize
	}
}

func WithBatchSize(size int) Option {
	return func(o *Options) {
		o.BatchSize = size
	}
}

func WithHTTPClient(client *http.Client) Option {
	return func(o *Options) {
		o.HTTPClient = client
	}
}

func WithLogger(logger *zerolog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}
