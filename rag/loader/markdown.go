package loader

import (
	"os"
	"strings"

	"github.com/antgroup/ragqa/rag"
	"github.com/russross/blackfriday/v2"
)

// readMarkdown 去掉行内标记，保留 "#" 标题行，并按标题记录章节
func readMarkdown(path string) ([]*rag.Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	w := walkMarkdown(content)
	return []*rag.Document{{
		Title:    w.title,
		Content:  strings.TrimSpace(w.out.String()),
		Sections: w.sections,
	}}, nil
}

// markdownWalker renders markdown as plain text. Heading text goes to the
// outline; everything else goes to the body of the current section.
type markdownWalker struct {
	out      strings.Builder
	body     strings.Builder
	head     *strings.Builder
	title    string
	outline  []rag.Heading
	sections []rag.Section
}

func walkMarkdown(content []byte) *markdownWalker {
	md := blackfriday.New(blackfriday.WithExtensions(blackfriday.CommonExtensions))
	w := &markdownWalker{}
	md.Parse(content).Walk(w.visit)
	w.flush()
	return w
}

func (w *markdownWalker) write(s string) {
	w.out.WriteString(s)
	if w.head != nil {
		w.head.WriteString(s)
	} else {
		w.body.WriteString(s)
	}
}

// flush closes the current section. Headings without body text leave no section.
func (w *markdownWalker) flush() {
	text := strings.TrimSpace(w.body.String())
	w.body.Reset()
	if text == "" {
		return
	}
	w.sections = append(w.sections, rag.Section{
		Headings: append([]rag.Heading(nil), w.outline...),
		Text:     text,
	})
}

func (w *markdownWalker) enterHeading(level int) {
	w.flush()
	w.out.WriteString(strings.Repeat("#", level) + " ")
	w.head = &strings.Builder{}
}

func (w *markdownWalker) leaveHeading(level int) {
	title := strings.TrimSpace(w.head.String())
	w.head = nil
	w.out.WriteString("\n")
	if w.title == "" {
		w.title = title
	}
	for len(w.outline) > 0 && w.outline[len(w.outline)-1].Level >= level {
		w.outline = w.outline[:len(w.outline)-1]
	}
	w.outline = append(w.outline, rag.Heading{Level: level, Title: title})
}

func (w *markdownWalker) visit(node *blackfriday.Node, entering bool) blackfriday.WalkStatus {
	switch node.Type {
	case blackfriday.Heading:
		if entering {
			w.enterHeading(node.HeadingData.Level)
		} else {
			w.leaveHeading(node.HeadingData.Level)
		}
	case blackfriday.Text, blackfriday.Code:
		w.write(string(node.Literal))
	case blackfriday.CodeBlock:
		w.write(string(node.Literal) + "\n")
	case blackfriday.HTMLBlock, blackfriday.HTMLSpan:
		w.write(htmlText(node.Literal))
	case blackfriday.Softbreak, blackfriday.Hardbreak:
		w.write("\n")
	case blackfriday.Item:
		if entering {
			w.write("- ")
		}
	case blackfriday.Paragraph:
		if !entering {
			if tightItem(node.Parent) {
				w.write("\n")
			} else {
				w.write("\n\n")
			}
		}
	case blackfriday.TableCell:
		if !entering && node.Next != nil {
			w.write("\t")
		}
	case blackfriday.TableRow, blackfriday.List, blackfriday.Table:
		if !entering {
			w.write("\n")
		}
	}
	return blackfriday.GoToNext
}

func tightItem(node *blackfriday.Node) bool {
	if node == nil || node.Type != blackfriday.Item {
		return false
	}
	return node.ListData.Tight || (node.Parent != nil && node.Parent.ListData.Tight)
}
