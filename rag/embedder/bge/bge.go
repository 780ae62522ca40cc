package bge

import (
	"context"
	"fmt"
	"net/http"

	"github.com/antgroup/ragqa/rag"
	"github.com/antgroup/ragqa/rag/embedder"
	"github.com/antgroup/ragqa/utils/counter"
	"github.com/antgroup/ragqa/utils/request"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Embedder 调用本地部署的句向量模型服务
type Embedder struct {
	providerUrl string
	model       string
	device      string
	normalize   bool
	batchSize   int
	client      *http.Client
	logger      *zerolog.Logger
}

var _ rag.Embedder = (*Embedder)(nil)

func New(opts ...Option) (*Embedder, error) {
	options := &Options{
		Device:    "cpu",
		BatchSize: 32,
	}

	for _, opt := range opts {
		opt(options)
	}
	if options.ProviderUrl == "" {
		return nil, errors.New("bge: provider url is required")
	}
	if options.Model == "" {
		return nil, errors.New("bge: model is required")
	}
	if options.HTTPClient == nil {
		options.HTTPClient = http.DefaultClient
	}
	if options.Logger == nil {
		nop := zerolog.Nop()
		options.Logger = &nop
	}

	return &Embedder{
		providerUrl: options.ProviderUrl,
		model:       options.Model,
		device:      options.Device,
		normalize:   options.Normalize,
		batchSize:   options.BatchSize,
		client:      options.HTTPClient,
		logger:      options.Logger,
	}, nil
}

type EmbedRequest struct {
	Model        string         `json:"model"`
	Texts        []string       `json:"texts"`
	ModelKwargs  map[string]any `json:"model_kwargs"`
	EncodeKwargs map[string]any `json:"encode_kwargs"`
}

type EmbedResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    [][]float32 `json:"data"`
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
	if text == "" {
		return nil, fmt.Errorf("text is empty")
	}
	vectors, err := e.embed(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

func (e *Embedder) embed(ctx context.Context, texts []string) ([][]float32, error) {
	req := EmbedRequest{
		Model:        e.model,
		Texts:        texts,
		ModelKwargs:  map[string]any{"device": e.device},
		EncodeKwargs: map[string]any{"normalize_embeddings": e.normalize},
	}

	var response EmbedResponse
	err := request.PostJSON(ctx, e.client, e.providerUrl, req, &response)
	if err != nil {
		return nil, errors.Wrap(err, "request bge failed")
	}
	if !response.Success {
		return nil, errors.Errorf("bge returned failure: %s", response.Message)
	}
	if len(response.Data) != len(texts) {
		return nil, errors.Errorf("bge returned %d vectors for %d texts",
			len(response.Data), len(texts))
	}
	if e.normalize {
		for _, v := range response.Data {
			embedder.Normalize(v)
		}
	}
	return response.Data, nil
}
