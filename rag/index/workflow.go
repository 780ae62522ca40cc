package index

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/antgroup/ragqa/rag"
)

type Workflow struct {
	nodes  []rag.Progress
	config *rag.WorkflowConfig
}

// NewWorkflow 初始化一个 index workflow, 在最后可以加一个存储的 progress，便于将数据存储到数据库
func NewWorkflow(nodes []rag.Progress, opts ...rag.Option) (*Workflow, error) {
	w := &Workflow{
		nodes:  nodes,
		config: rag.NewWorkflowConfig(opts...),
	}
	if w.config.Embedder == nil {
		return nil, errors.New("embedder is required")
	}
	if w.config.ChunkOverlap >= w.config.ChunkSize {
		return nil, fmt.Errorf("chunk overlap %d must be smaller than chunk size %d",
			w.config.ChunkOverlap, w.config.ChunkSize)
	}
	return w, nil
}

func DefaultNodes() []rag.Progress {
	return []rag.Progress{
		BaseDocuments,
		BaseTextUnits,
		EmbedTextUnits,
		SaveToStorage,
	}
}

func (w *Workflow) Run(ctx context.Context, wfCtx *rag.WorkflowContext) error {
	wfCtx.Config = w.config
	logger := w.config.Logger

	start := time.Now()
	for i, process := range w.nodes {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := process(ctx, wfCtx); err != nil {
			return fmt.Errorf("index step %d: %w", i+1, err)
		}
		logger.Debug().Int("step", i+1).Int("steps", len(w.nodes)).
			Int("documents", len(wfCtx.Documents)).
			Int("text_units", len(wfCtx.TextUnits)).
			Msg("index step done")
	}
	logger.Info().Str("path", wfCtx.BasePath).
		Int("documents", len(wfCtx.Documents)).
		Int("text_units", len(wfCtx.TextUnits)).
		Dur("elapsed", time.Since(start)).
		Msg("index finished")
	return nil
}

func id(s string) string {
	hash := sha256.New()
	hash.Write([]byte(s))
	return hex.EncodeToString(hash.Sum(nil))
}
