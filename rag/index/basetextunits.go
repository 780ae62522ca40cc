package index

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/antgroup/ragqa/rag"
	"github.com/antgroup/ragqa/rag/index/textsplitter"
)

// BaseTextUnits 切分文档。带标题大纲的文档逐节切分，每个片段保留所在章节的标题
func BaseTextUnits(_ context.Context, args *rag.WorkflowContext) error {
	splitter, err := newSplitter(args.Config)
	if err != nil {
		return err
	}
	sections := textsplitter.NewSectionSplitter(splitter)

	tk, err := textsplitter.NewTokenCounter(rag.DefaultTokenEncoding)
	if err != nil {
		args.Config.Logger.Warn().Err(err).Msg("token counter unavailable, num_token left at 0")
	}

	for _, document := range args.Documents {
		chunks, err := splitDocument(document, splitter, sections)
		if err != nil {
			return fmt.Errorf("split %s: %w", document.Title, err)
		}
		for i, chunk := range chunks {
			unit := &rag.TextUnit{
				Id:          id(fmt.Sprintf("%s:%d", document.Id, i)),
				Text:        chunk.Text,
				DocumentIds: []string{document.Id},
				Headings:    chunk.Headings,
			}
			if tk != nil {
				unit.NumToken = tk.Count(chunk.Text)
			}
			document.TextUnitIds = append(document.TextUnitIds, unit.Id)
			args.TextUnits = append(args.TextUnits, unit)
		}
	}
	return nil
}

func splitDocument(document *rag.Document, splitter textsplitter.TextSplitter,
	sections *textsplitter.SectionSplitter) ([]textsplitter.Chunk, error) {
	if len(document.Sections) > 0 {
		return sections.Split(document.Sections)
	}
	pieces, err := splitter.SplitText(document.Content)
	if err != nil {
		return nil, err
	}
	chunks := make([]textsplitter.Chunk, 0, len(pieces))
	for _, piece := range pieces {
		if strings.TrimSpace(piece) != "" {
			chunks = append(chunks, textsplitter.Chunk{Text: piece})
		}
	}
	return chunks, nil
}

func newSplitter(config *rag.WorkflowConfig) (textsplitter.TextSplitter, error) {
	opts := []textsplitter.Option{
		textsplitter.WithChunkSize(config.ChunkSize),
		textsplitter.WithChunkOverlap(config.ChunkOverlap),
		textsplitter.WithLogger(config.Logger),
	}
	if len(config.Separators) > 0 {
		opts = append(opts, textsplitter.WithSeparators(config.Separators))
	}

	switch config.Splitter {
	case rag.SplitterCharacter, "":
		return textsplitter.NewRecursiveCharacter(opts...), nil
	case rag.SplitterToken:
		return textsplitter.NewTokenSplitter(opts...), nil
	default:
		return nil, fmt.Errorf("unknown splitter %q", config.Splitter)
	}
}

func lowerExt(path string) string {
	return strings.ToLower(filepath.Ext(path))
}
