package rag

import (
	"context"
)

// Embedder is the interface for creating vector embeddings from texts.
type Embedder interface {
	// EmbedDocuments 批量计算文本向量，返回顺序与输入一致
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)
	// EmbedQuery 计算单条查询文本的向量
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}
