package rag

import (
	"context"
)

type Storage interface {
	// Load loads the workflow context from the storage
	Load(ctx context.Context, wfCtx *WorkflowContext) error
	// Save saves the workflow context to the storage
	Save(ctx context.Context, wfCtx *WorkflowContext) error
}

// Hit is one ranked search result.
type Hit struct {
	TextUnit *TextUnit
	Distance float64
}

// VectorStorage is a Storage that can also rank text units by vector distance.
type VectorStorage interface {
	Storage
	// Search 返回与 vector 距离最近的 k 个片段，距离相同时保持写入顺序
	Search(ctx context.Context, vector []float32, k int) ([]Hit, error)
}
