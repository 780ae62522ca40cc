package index

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/antgroup/ragqa/rag"
	"github.com/antgroup/ragqa/rag/loader"
	"github.com/antgroup/ragqa/rag/storage/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type lengthEmbedder struct {
	calls int
	err   error
}

func (e *lengthEmbedder) EmbedDocuments(_ context.Context, texts []string) ([][]float32, error) {
	e.calls++
	if e.err != nil {
		return nil, e.err
	}
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vectors[i] = []float32{float32(len([]rune(text))), 1}
	}
	return vectors, nil
}

func (e *lengthEmbedder) EmbedQuery(_ context.Context, text string) ([]float32, error) {
	return []float32{float32(len([]rune(text))), 1}, nil
}

func writeDoc(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNewWorkflowValidation(t *testing.T) {
	_, err := NewWorkflow(DefaultNodes())
	assert.Error(t, err)

	_, err = NewWorkflow(DefaultNodes(), rag.WithEmbedder(&lengthEmbedder{}),
		rag.WithChunkSize(50), rag.WithChunkOverlap(50))
	assert.Error(t, err)
}

func TestWorkflowRun(t *testing.T) {
	dir := t.TempDir()
	paragraph := strings.Repeat("检索增强生成会先召回相关片段。", 10)
	path := writeDoc(t, dir, "rag.txt", paragraph+"\n\n"+paragraph)

	storage, err := db.Open(filepath.Join(dir, "chroma"), true)
	require.NoError(t, err)
	defer storage.Close()

	embedder := &lengthEmbedder{}
	w, err := NewWorkflow(DefaultNodes(),
		rag.WithEmbedder(embedder),
		rag.WithStorage(storage))
	require.NoError(t, err)

	wfCtx := rag.NewWorkflowContext()
	wfCtx.Id = 1
	wfCtx.BasePath = path
	require.NoError(t, w.Run(context.Background(), wfCtx))

	require.Len(t, wfCtx.Documents, 1)
	assert.Equal(t, path, wfCtx.Documents[0].Source)
	require.NotEmpty(t, wfCtx.TextUnits)
	assert.Len(t, wfCtx.Documents[0].TextUnitIds, len(wfCtx.TextUnits))
	for _, unit := range wfCtx.TextUnits {
		assert.LessOrEqual(t, len([]rune(unit.Text)), rag.DefaultChunkSize)
		assert.Len(t, unit.Embedding, 2)
		assert.Equal(t, []string{wfCtx.Documents[0].Id}, unit.DocumentIds)
	}
	assert.Equal(t, 1, embedder.calls)

	loaded := rag.NewWorkflowContext()
	loaded.Id = 1
	require.NoError(t, storage.Load(context.Background(), loaded))
	assert.Len(t, loaded.TextUnits, len(wfCtx.TextUnits))
}

func TestBaseDocumentsDirectorySkipsUnsupported(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "a.txt", "甲")
	writeDoc(t, dir, "b.md", "# 乙\n\n内容")
	writeDoc(t, dir, "c.csv", "x,y")

	wfCtx := rag.NewWorkflowContext()
	wfCtx.Config = rag.NewWorkflowConfig()
	wfCtx.BasePath = dir
	require.NoError(t, BaseDocuments(context.Background(), wfCtx))
	assert.Len(t, wfCtx.Documents, 2)
}

func TestBaseDocumentsPattern(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "a.txt", "甲")
	writeDoc(t, dir, "b.txt", "乙")
	writeDoc(t, dir, "c.md", "丙")

	wfCtx := rag.NewWorkflowContext()
	wfCtx.Config = rag.NewWorkflowConfig()
	wfCtx.BasePath = filepath.Join(dir, "*.txt")
	require.NoError(t, BaseDocuments(context.Background(), wfCtx))
	require.Len(t, wfCtx.Documents, 2)
	assert.Equal(t, "甲", wfCtx.Documents[0].Content)
	assert.NotEqual(t, wfCtx.Documents[0].Id, wfCtx.Documents[1].Id)
}

func TestBaseDocumentsUnsupportedFile(t *testing.T) {
	dir := t.TempDir()
	wfCtx := rag.NewWorkflowContext()
	wfCtx.Config = rag.NewWorkflowConfig()
	wfCtx.BasePath = writeDoc(t, dir, "c.csv", "x,y")

	err := BaseDocuments(context.Background(), wfCtx)
	assert.ErrorIs(t, err, loader.ErrUnsupportedFormat)
}

func TestBaseTextUnitsMarkdownKeepsHeaders(t *testing.T) {
	wfCtx := rag.NewWorkflowContext()
	wfCtx.Config = rag.NewWorkflowConfig()
	wfCtx.Documents = append(wfCtx.Documents, &rag.Document{
		Id:      "d",
		Source:  "guide.md",
		Content: "# 安装\n下载安装包。\n# 使用\n运行程序。",
		Sections: []rag.Section{
			{Headings: []rag.Heading{{Level: 1, Title: "安装"}}, Text: "下载安装包。"},
			{Headings: []rag.Heading{{Level: 1, Title: "使用"}}, Text: "运行程序。"},
		},
	})
	require.NoError(t, BaseTextUnits(context.Background(), wfCtx))

	require.Len(t, wfCtx.TextUnits, 2)
	assert.Equal(t, "# 安装\n下载安装包。", wfCtx.TextUnits[0].Text)
	assert.Equal(t, []string{"安装"}, wfCtx.TextUnits[0].Headings)
	assert.Equal(t, "# 使用\n运行程序。", wfCtx.TextUnits[1].Text)
	assert.Equal(t, []string{"使用"}, wfCtx.TextUnits[1].Headings)
}

func TestBaseTextUnitsPlainDocumentHasNoHeadings(t *testing.T) {
	wfCtx := rag.NewWorkflowContext()
	wfCtx.Config = rag.NewWorkflowConfig()
	wfCtx.Documents = append(wfCtx.Documents, &rag.Document{Id: "d", Content: "# 不是大纲\n正文。"})
	require.NoError(t, BaseTextUnits(context.Background(), wfCtx))

	require.Len(t, wfCtx.TextUnits, 1)
	assert.Equal(t, "# 不是大纲\n正文。", wfCtx.TextUnits[0].Text)
	assert.Nil(t, wfCtx.TextUnits[0].Headings)
}

func TestBaseTextUnitsUnknownSplitter(t *testing.T) {
	wfCtx := rag.NewWorkflowContext()
	wfCtx.Config = rag.NewWorkflowConfig(rag.WithSplitter("semantic"))
	assert.Error(t, BaseTextUnits(context.Background(), wfCtx))
}

func TestEmbedTextUnitsError(t *testing.T) {
	wfCtx := rag.NewWorkflowContext()
	wfCtx.Config = rag.NewWorkflowConfig(rag.WithEmbedder(&lengthEmbedder{err: errors.New("offline")}))
	wfCtx.TextUnits = append(wfCtx.TextUnits, &rag.TextUnit{Text: "甲"})
	assert.ErrorContains(t, EmbedTextUnits(context.Background(), wfCtx), "offline")
}
