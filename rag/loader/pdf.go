package loader

import (
	"fmt"
	"strings"

	"github.com/antgroup/ragqa/rag"
	"github.com/ledongthuc/pdf"
)

// readPDF 每个有文本的页面对应一个文档，Page 从 1 开始
func readPDF(path string) ([]*rag.Document, error) {
	file, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer file.Close()

	docs := make([]*rag.Document, 0, reader.NumPage())
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("read page %d: %w", i, err)
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		docs = append(docs, &rag.Document{
			Content: text,
			Page:    i,
		})
	}
	return docs, nil
}
