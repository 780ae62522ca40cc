package retriever

import (
	"context"
	"fmt"

	"github.com/antgroup/ragqa/rag"
	"github.com/rs/zerolog"
)

// Vector 先计算查询向量，再从向量库中召回最近的片段
type Vector struct {
	embedder rag.Embedder
	storage  rag.VectorStorage
	logger   *zerolog.Logger
}

var _ rag.Retriever = (*Vector)(nil)

type Option func(*Vector)

func WithLogger(logger *zerolog.Logger) Option {
	return func(v *Vector) {
		if logger != nil {
			v.logger = logger
		}
	}
}

func NewVector(embedder rag.Embedder, storage rag.VectorStorage, opts ...Option) *Vector {
	nop := zerolog.Nop()
	v := &Vector{
		embedder: embedder,
		storage:  storage,
		logger:   &nop,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Query 返回片段文本，顺序与相似度排名一致
func (v *Vector) Query(ctx context.Context, text string, limit int) ([]string, error) {
	if text == "" {
		return nil, fmt.Errorf("text is empty")
	}
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive, got %d", limit)
	}

	vector, err := v.embedder.EmbedQuery(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	hits, err := v.storage.Search(ctx, vector, limit)
	if err != nil {
		return nil, fmt.Errorf("search vector store: %w", err)
	}

	chunks := make([]string, len(hits))
	for i, hit := range hits {
		chunks[i] = hit.TextUnit.Text
		v.logger.Debug().Int("rank", i).Str("id", hit.TextUnit.Id).
			Strs("headings", hit.TextUnit.Headings).Float64("distance", hit.Distance).
			Msg("retrieved chunk")
	}
	return chunks, nil
}
