package loader

import (
	"fmt"
	"strings"

	"github.com/antgroup/ragqa/rag"
	"github.com/unidoc/unioffice/document"
	"github.com/unidoc/unioffice/presentation"
)

// readDocx 段落按换行拼接，表格逐行输出，单元格以制表符分隔
func readDocx(path string) ([]*rag.Document, error) {
	doc, err := document.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open docx: %w", err)
	}
	defer doc.Close()

	lines := make([]string, 0)
	for _, para := range doc.Paragraphs() {
		lines = append(lines, paragraphText(para))
	}
	for _, table := range doc.Tables() {
		for _, row := range table.Rows() {
			cells := make([]string, 0)
			for _, cell := range row.Cells() {
				parts := make([]string, 0)
				for _, para := range cell.Paragraphs() {
					parts = append(parts, paragraphText(para))
				}
				cells = append(cells, strings.Join(parts, " "))
			}
			lines = append(lines, strings.Join(cells, "\t"))
		}
	}
	return []*rag.Document{{Content: strings.Join(lines, "\n")}}, nil
}

func paragraphText(para document.Paragraph) string {
	var text strings.Builder
	for _, run := range para.Runs() {
		text.WriteString(run.Text())
	}
	return text.String()
}

// readPptx 每页幻灯片对应一个文档
func readPptx(path string) ([]*rag.Document, error) {
	pres, err := presentation.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pptx: %w", err)
	}
	defer pres.Close()

	docs := make([]*rag.Document, 0)
	for i, slide := range pres.Slides() {
		lines := make([]string, 0)
		for _, ph := range slide.PlaceHolders() {
			sp := ph.X()
			if sp == nil || sp.TxBody == nil {
				continue
			}
			for _, p := range sp.TxBody.P {
				var line strings.Builder
				for _, run := range p.EG_TextRun {
					if run.R != nil {
						line.WriteString(run.R.T)
					}
				}
				lines = append(lines, line.String())
			}
		}
		text := strings.Join(lines, "\n")
		if strings.TrimSpace(text) == "" {
			continue
		}
		docs = append(docs, &rag.Document{
			Content: text,
			Page:    i + 1,
		})
	}
	return docs, nil
}
