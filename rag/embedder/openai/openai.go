package openai

import (
	"context"
	"fmt"
	"net/http"

	"github.com/antgroup/ragqa/rag"
	"github.com/antgroup/ragqa/rag/embedder"
	"github.com/antgroup/ragqa/utils/counter"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	goopenai "github.com/sashabaranov/go-openai"
)

const (
	_defaultModel     = "text-embedding-v3"
	_defaultBatchSize = 10
)

// Embedder 通过 OpenAI 兼容接口计算向量
type Embedder struct {
	client     *goopenai.Client
	model      string
	dimensions int
	normalize  bool
	batchSize  int
	logger     *zerolog.Logger
}

var _ rag.Embedder = (*Embedder)(nil)

type Options struct {
	Token      string
	BaseURL    string
	Model      string
	Dimensions int
	Normalize  bool
	BatchSize  int
	HTTPClient *http.Client
	Logger     *zerolog.Logger
}

type Option func(*Options)

func WithToken(token string) Option {
	return func(o *Options) { o.Token = token }
}

func WithBaseURL(url string) Option {
	return func(o *Options) { o.BaseURL = url }
}

func WithModel(model string) Option {
	return func(o *Options) {
		if model != "" {
			o.Model = model
		}
	}
}

func WithDimensions(dimensions int) Option {
	return func(o *Options) { o.Dimensions = dimensions }
}

func WithNormalize(normalize bool) Option {
	return func(o *Options) { o.Normalize = normalize }
}

// WithBatchSize caps the inputs per request. DashScope accepts at most 10.
func WithBatchSize(size int) Option {
	return func(o *Options) {
		if size > 0 {
			o.BatchSize = size
		}
	}
}

func WithHTTPClient(client *http.Client) Option {
	return func(o *Options) { o.HTTPClient = client }
}

func WithLogger(logger *zerolog.Logger) Option {
	return func(o *Options) { o.Logger = logger }
}

func New(opts ...Option) (*Embedder, error) {
	options := &Options{
		Model:     _defaultModel,
		BatchSize: _defaultBatchSize,
	}
	for _, opt := range opts {
		opt(options)
	}
	if options.Token == "" {
		return nil, errors.New("embedding api key is required")
	}
	if options.Logger == nil {
		nop := zerolog.Nop()
		options.Logger = &nop
	}

	config := goopenai.DefaultConfig(options.Token)
	if options.BaseURL != "" {
		config.BaseURL = options.BaseURL
	}
	if options.HTTPClient != nil {
		config.HTTPClient = options.HTTPClient
	}

	return &Embedder{
		client:     goopenai.NewClientWithConfig(config),
		model:      options.Model,
		dimensions: options.Dimensions,
		normalize:  options.Normalize,
		batchSize:  options.BatchSize,
		logger:     options.Logger,
	}, nil
}

func (e *Embedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}
	progress := counter.NewCounter(counter.WithTotal(len(texts)),
		counter.WithDesc("embed documents"), counter.WithLogger(e.logger))

	vectors := make([][]float32, 0, len(texts))
	for _, batch := range embedder.Batches(texts, e.batchSize) {
		got, err := e.embed(ctx, batch)
		if err != nil {
			return nil, err
		}
		vectors = append(vectors, got...)
		progress.Add(len(batch))
	}
	return vectors, nil
}

func (e *Embedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	vectors, err := e.embed(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

func (e *Embedder) embed(ctx context.Context, texts []string) ([][]float32, error) {
	resp, err := e.client.CreateEmbeddings(ctx, goopenai.EmbeddingRequest{
		Input:      texts,
		Model:      goopenai.EmbeddingModel(e.model),
		Dimensions: e.dimensions,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create embeddings: %w", err)
	}
	if len(resp.Data) != len(texts) {
		return nil, errors.Errorf("embedding api returned %d vectors for %d texts",
			len(resp.Data), len(texts))
	}

	results := make([][]float32, len(texts))
	for _, data := range resp.Data {
		if data.Index < 0 || data.Index >= len(results) {
			return nil, errors.Errorf("embedding index %d out of range", data.Index)
		}
		if e.normalize {
			embedder.Normalize(data.Embedding)
		}
		results[data.Index] = data.Embedding
	}
	return results, nil
}
