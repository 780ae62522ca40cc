package loader

import (
	"bytes"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/antgroup/ragqa/rag"
	"github.com/go-shiori/go-readability"
)

// readHTML 优先提取正文，正文为空时退回到整页文本
func readHTML(path string) ([]*rag.Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	abs, _ := filepath.Abs(path)
	pageURL := &url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	article, err := readability.FromReader(bytes.NewReader(content), pageURL)
	if err == nil && strings.TrimSpace(article.TextContent) != "" {
		return []*rag.Document{{
			Title:   strings.TrimSpace(article.Title),
			Content: strings.TrimSpace(article.TextContent),
		}}, nil
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	doc.Find("script, style, noscript").Remove()
	return []*rag.Document{{
		Title:   strings.TrimSpace(doc.Find("title").First().Text()),
		Content: strings.TrimSpace(doc.Find("body").Text()),
	}}, nil
}

func htmlText(fragment []byte) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(fragment))
	if err != nil {
		return string(fragment)
	}
	return doc.Text()
}
