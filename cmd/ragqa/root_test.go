package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/antgroup/ragqa/rag/eval"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootFlagDefaults(t *testing.T) {
	cmd := newRootCmd(strings.NewReader(""), &bytes.Buffer{})
	flags := cmd.PersistentFlags()

	for name, want := range map[string]string{
		"file_path":         "doc",
		"file_name":         "",
		"model_path":        "embedding_model",
		"model_name":        "",
		"persist_directory": "chroma",
		"stream":            "false",
	} {
		f := flags.Lookup(name)
		require.NotNil(t, f, name)
		assert.Equal(t, want, f.DefValue, name)
	}

	names := make([]string, 0)
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.Subset(t, names, []string{"ask", "index", "evaluate", "mcp"})
}

func TestRootRequiresFileName(t *testing.T) {
	cmd := newRootCmd(strings.NewReader(""), &bytes.Buffer{})
	cmd.SetArgs([]string{"--model_name", "bge-large-zh-v1.5"})
	cmd.SetErr(&bytes.Buffer{})
	assert.ErrorContains(t, cmd.Execute(), "file_name")
}

func TestOptionsPaths(t *testing.T) {
	o := &options{filePath: "doc", fileName: "*.pdf", modelPath: "embedding_model", modelName: "bge"}
	assert.Equal(t, filepath.Join("doc", "*.pdf"), o.docPath())
	assert.Equal(t, filepath.Join("embedding_model", "bge"), o.modelID())
	assert.NoError(t, o.requireFile())
	assert.NoError(t, o.requireModel())

	assert.Error(t, (&options{}).requireFile())
	assert.Error(t, (&options{}).requireModel())
}

func TestReadRecord(t *testing.T) {
	record, err := readRecord("", strings.NewReader(`{"question":"几点开门?","answer":"九点。","contexts":["周末九点开门。"]}`))
	require.NoError(t, err)
	assert.Equal(t, eval.Record{Question: "几点开门?", Answer: "九点。", Contexts: []string{"周末九点开门。"}}, record)

	path := filepath.Join(t.TempDir(), "record.yaml")
	require.NoError(t, os.WriteFile(path, []byte("question: 几点开门?\nanswer: 九点。\ncontexts:\n  - 周末九点开门。\n"), 0o644))
	fromFile, err := readRecord(path, nil)
	require.NoError(t, err)
	assert.Equal(t, record, fromFile)

	_, err = readRecord("", strings.NewReader("{"))
	assert.ErrorContains(t, err, "decode record")

	_, err = readRecord(filepath.Join(t.TempDir(), "missing.json"), nil)
	assert.ErrorContains(t, err, "read record")
}

func TestWriteReport(t *testing.T) {
	out := &bytes.Buffer{}
	report := &eval.Report{
		Record: eval.Record{Question: "问", Answer: "答", Contexts: []string{"文"}},
		Scores: map[string]eval.Score{
			eval.MetricFaithfulness:    0.5,
			eval.MetricAnswerRelevancy: eval.NaN(),
		},
	}
	require.NoError(t, writeReport(out, report, false))

	text := out.String()
	assert.Contains(t, text, `"faithfulness": 0.5`)
	assert.Contains(t, text, `"answer_relevancy": null`)
	assert.Contains(t, text, `"question": "问"`)
	assert.True(t, strings.HasSuffix(text, "\n"))
}
