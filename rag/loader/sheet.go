package loader

import (
	"fmt"
	"strings"

	"github.com/antgroup/ragqa/rag"
	"github.com/xuri/excelize/v2"
)

// readSheet 每个工作表对应一个文档，行内单元格以制表符分隔
func readSheet(path string) ([]*rag.Document, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	docs := make([]*rag.Document, 0)
	for i, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
		}
		lines := make([]string, 0, len(rows))
		for _, row := range rows {
			lines = append(lines, strings.Join(row, "\t"))
		}
		text := strings.Join(lines, "\n")
		if strings.TrimSpace(text) == "" {
			continue
		}
		docs = append(docs, &rag.Document{
			Title:   sheet,
			Content: text,
			Page:    i + 1,
		})
	}
	return docs, nil
}
