package index

import (
	"context"

	"github.com/antgroup/ragqa/rag"
)

func SaveToStorage(ctx context.Context, wfCtx *rag.WorkflowContext) error {
	if wfCtx.Config.Storage == nil {
		return nil
	}
	return wfCtx.Config.Storage.Save(ctx, wfCtx)
}
