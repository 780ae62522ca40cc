package rag

import (
	"context"
)

// Retriever returns the chunks most similar to a query.
type Retriever interface {
	// Query 根据查询文本，召回最相关的limit个片段，按相似度从高到低排列
	Query(ctx context.Context, text string, limit int) ([]string, error)
}
