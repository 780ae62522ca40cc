package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/antgroup/ragqa/rag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadText(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.txt", "第一段。\n\n第二段。")

	docs, err := Load(path)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "第一段。\n\n第二段。", docs[0].Content)
	assert.Equal(t, path, docs[0].Source)
	assert.Equal(t, "a.txt", docs[0].Title)
	assert.Zero(t, docs[0].Page)
}

func TestLoadTextInvalidUTF8(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "gbk.txt", string([]byte{0xc4, 0xe3, 0xba, 0xc3, 0xff}))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadUnsupported(t *testing.T) {
	_, err := Load("notes.csv")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Load("README")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLoadExtensionCaseInsensitive(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "A.TXT", "hello")

	docs, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", docs[0].Content)
}

func TestLoadMarkdown(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "guide.md", "# 使用说明\n\n第一段 **加粗** 文本。\n\n- 项一\n- 项二\n")

	docs, err := Load(path)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "使用说明", docs[0].Title)
	assert.Contains(t, docs[0].Content, "# 使用说明\n第一段 加粗 文本。")
	assert.Contains(t, docs[0].Content, "- 项一\n- 项二")
	assert.NotContains(t, docs[0].Content, "**")
}

func TestLoadMarkdownSections(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "rules.md", "前言。\n\n# 总则\n\n第一条。\n\n## 适用范围\n\n第二条。\n\n"+
		"```\n# 不是标题\n```\n\n# 附则\n\n## 空节\n\n# 生效\n\n第三条。\n")

	docs, err := Load(path)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "总则", docs[0].Title)

	sections := docs[0].Sections
	require.Len(t, sections, 4)
	assert.Empty(t, sections[0].Headings)
	assert.Equal(t, "前言。", sections[0].Text)
	assert.Equal(t, []rag.Heading{{Level: 1, Title: "总则"}}, sections[1].Headings)
	assert.Equal(t, "第一条。", sections[1].Text)
	assert.Equal(t, []rag.Heading{{Level: 1, Title: "总则"}, {Level: 2, Title: "适用范围"}}, sections[2].Headings)
	assert.Contains(t, sections[2].Text, "第二条。")
	assert.Contains(t, sections[2].Text, "# 不是标题")
	assert.Equal(t, []rag.Heading{{Level: 1, Title: "生效"}}, sections[3].Headings)
	assert.Equal(t, "第三条。", sections[3].Text)
}

func TestLoadHTML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "page.html", `<html><head><title>公告</title>
<script>var x = 1;</script></head>
<body><p>图书馆周末开放时间为上午九点到下午五点。</p></body></html>`)

	docs, err := Load(path)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Contains(t, docs[0].Content, "图书馆周末开放时间为上午九点到下午五点。")
	assert.NotContains(t, docs[0].Content, "var x")
}

func TestLoadSheet(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scores.xlsx")

	f := excelize.NewFile()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "姓名"))
	require.NoError(t, f.SetCellValue("Sheet1", "B1", "分数"))
	require.NoError(t, f.SetCellValue("Sheet1", "A2", "张明"))
	require.NoError(t, f.SetCellValue("Sheet1", "B2", 95))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	docs, err := Load(path)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "Sheet1", docs[0].Title)
	assert.Equal(t, 1, docs[0].Page)
	assert.Equal(t, "姓名\t分数\n张明\t95", docs[0].Content)
}

func TestWithReader(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "notes.csv", "a,b")

	l := New(WithReader(".CSV", ReaderFunc(readText)))
	docs, err := l.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "a,b", docs[0].Content)
	assert.Contains(t, l.Supported(), ".csv")
}

func TestMatch(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.pdf", "")
	writeFile(t, dir, "a.pdf", "")
	writeFile(t, dir, "c.txt", "")

	paths, err := Match(dir, "*.pdf")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.pdf"), filepath.Join(dir, "b.pdf")}, paths)

	paths, err = Match(dir, "c.txt")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "c.txt")}, paths)

	_, err = Match(dir, "*.docx")
	assert.Error(t, err)
}
