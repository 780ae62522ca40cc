package textsplitter

import (
	"strings"

	"github.com/antgroup/ragqa/rag"
)

// Chunk is one piece of a section body, prefixed with its heading lines.
type Chunk struct {
	Text     string
	Headings []string
}

// SectionSplitter chunks markdown section by section, so no chunk spans two
// headings. The heading lines are not counted against the chunk size.
type SectionSplitter struct {
	body TextSplitter
}

func NewSectionSplitter(body TextSplitter) *SectionSplitter {
	return &SectionSplitter{body: body}
}

// Split 逐节切分正文，空节跳过
func (s *SectionSplitter) Split(sections []rag.Section) ([]Chunk, error) {
	chunks := make([]Chunk, 0, len(sections))
	for _, section := range sections {
		body := strings.TrimSpace(section.Text)
		if body == "" {
			continue
		}
		pieces, err := s.body.SplitText(body)
		if err != nil {
			return nil, err
		}

		prefix, titles := outline(section.Headings)
		for _, piece := range pieces {
			if strings.TrimSpace(piece) == "" {
				continue
			}
			chunks = append(chunks, Chunk{Text: prefix + piece, Headings: titles})
		}
	}
	return chunks, nil
}

func outline(headings []rag.Heading) (string, []string) {
	if len(headings) == 0 {
		return "", nil
	}
	var prefix strings.Builder
	titles := make([]string, len(headings))
	for i, h := range headings {
		prefix.WriteString(strings.Repeat("#", h.Level))
		prefix.WriteString(" ")
		prefix.WriteString(h.Title)
		prefix.WriteString("\n")
		titles[i] = h.Title
	}
	return prefix.String(), titles
}
