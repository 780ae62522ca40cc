package textsplitter

import (
	"unicode/utf8"

	"github.com/antgroup/ragqa/rag"
	"github.com/rs/zerolog"
)

// TextSplitter splits one text into chunks.
type TextSplitter interface {
	SplitText(text string) ([]string, error)
}

// LenFunc measures a chunk. The splitters compare its result with ChunkSize.
type LenFunc func(string) int

// RuneLen counts characters, so a Chinese character weighs the same as a letter.
func RuneLen(s string) int {
	return utf8.RuneCountInString(s)
}

// Options is a struct that contains options for a text splitter.
type Options struct {
	ChunkSize    int
	ChunkOverlap int
	Separators   []string
	LenFunc      LenFunc
	EncodingName string
	Logger       *zerolog.Logger
}

// DefaultOptions returns the default options for all text splitter.
func DefaultOptions() Options {
	nop := zerolog.Nop()
	return Options{
		ChunkSize:    rag.DefaultChunkSize,
		ChunkOverlap: rag.DefaultChunkOverlap,
		Separators:   rag.DefaultSeparators,
		LenFunc:      RuneLen,

		EncodingName: rag.DefaultTokenEncoding,
		Logger:       &nop,
	}
}

// Option is a function that can be used to set options for a text splitter.
type Option func(*Options)

// WithChunkSize sets the chunk size for a text splitter.
func WithChunkSize(chunkSize int) Option {
	return func(o *Options) {
		o.ChunkSize = chunkSize
	}
}

// WithChunkOverlap sets the chunk overlap for a text splitter.
func WithChunkOverlap(chunkOverlap int) Option {
	return func(o *Options) {
		o.ChunkOverlap = chunkOverlap
	}
}

// WithSeparators sets the separators for a text splitter.
func WithSeparators(separators []string) Option {
	return func(o *Options) {
		o.Separators = separators
	}
}

// WithLenFunc replaces the length measure, RuneLen by default.
func WithLenFunc(fn LenFunc) Option {
	return func(o *Options) {
		if fn != nil {
			o.LenFunc = fn
		}
	}
}

// WithEncodingName sets the encoding name for a text splitter.
func WithEncodingName(encodingName string) Option {
	return func(o *Options) {
		o.EncodingName = encodingName
	}
}

func WithLogger(logger *zerolog.Logger) Option {
	return func(o *Options) {
		if logger != nil {
			o.Logger = logger
		}
	}
}
