package rag

import (
	"context"

	"github.com/rs/zerolog"
)

const (
	DefaultTokenEncoding = "cl100k_base"

	DefaultChunkSize    = 200
	DefaultChunkOverlap = 50
)

// DefaultSeparators are tried in order by the recursive splitter.
var DefaultSeparators = []string{"\n\n", "\n", " ", ""}

// Splitter strategies.
const (
	SplitterCharacter = "character"
	SplitterToken     = "token"
)

type WorkflowConfig struct {
	ChunkSize    int
	ChunkOverlap int
	Separators   []string
	// Splitter is SplitterCharacter (rune length) or SplitterToken.
	Splitter  string
	Embedder  Embedder
	BatchSize int
	Storage   Storage
	Logger    *zerolog.Logger
}

type WorkflowContext struct {
	Id       int64
	BasePath string
	// config for index
	Config    *WorkflowConfig
	Documents []*Document
	TextUnits []*TextUnit
}

func NewWorkflowContext() *WorkflowContext {
	ctx := &WorkflowContext{}
	ctx.Documents = make([]*Document, 0)
	ctx.TextUnits = make([]*TextUnit, 0)
	return ctx
}

type Progress func(ctx context.Context, args *WorkflowContext) error

type Document struct {
	Id          string   `json:"id"`
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	TextUnitIds []string `json:"text_unit_ids"`
	// Source is the file the document was read from.
	Source string `json:"source"`
	// Page is the 1-based page, sheet or slide number, 0 when the format has none.
	Page int `json:"page"`
	// Sections is the heading outline of markdown documents. It is only kept
	// while indexing.
	Sections []Section `json:"-"`
}

// Heading is one level of a markdown outline.
type Heading struct {
	Level int    `json:"level"`
	Title string `json:"title"`
}

// Section is the body text under a heading path, outermost heading first.
type Section struct {
	Headings []Heading `json:"headings"`
	Text     string    `json:"text"`
}

type TextUnit struct {
	Id          string    `json:"id"`
	Text        string    `json:"text"`
	DocumentIds []string  `json:"document_ids"`
	NumToken    int       `json:"num_token"`
	// Headings are the titles of the section the text was cut from.
	Headings  []string  `json:"headings,omitempty"`
	Embedding []float32 `json:"-"`
}
