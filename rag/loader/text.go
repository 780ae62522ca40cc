package loader

import (
	"errors"
	"os"
	"unicode/utf8"

	"github.com/antgroup/ragqa/rag"
)

func readText(path string) ([]*rag.Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(content) {
		return nil, errors.New("file is not valid utf-8")
	}
	return []*rag.Document{{Content: string(content)}}, nil
}
