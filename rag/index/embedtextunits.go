package index

import (
	"context"
	"fmt"

	"github.com/antgroup/ragqa/rag"
)

// EmbedTextUnits 为所有片段计算向量，顺序与 TextUnits 一致
func EmbedTextUnits(ctx context.Context, args *rag.WorkflowContext) error {
	if len(args.TextUnits) == 0 {
		return nil
	}
	texts := make([]string, len(args.TextUnits))
	for i, unit := range args.TextUnits {
		texts[i] = unit.Text
	}

	vectors, err := args.Config.Embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		return fmt.Errorf("embed text units: %w", err)
	}
	if len(vectors) != len(texts) {
		return fmt.Errorf("embedder returned %d vectors for %d text units", len(vectors), len(texts))
	}
	for i, unit := range args.TextUnits {
		unit.Embedding = vectors[i]
	}
	return nil
}
