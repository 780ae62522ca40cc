package textsplitter

import (
	"errors"
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

// TokenSplitter is a text splitter that will split texts by tokens.
type TokenSplitter struct {
	ChunkSize    int
	ChunkOverlap int
	EncodingName string
}

var _ TextSplitter = TokenSplitter{}

func NewTokenSplitter(opts ...Option) TokenSplitter {
	options := DefaultOptions()
	for _, o := range opts {
		o(&options)
	}

	return TokenSplitter{
		ChunkSize:    options.ChunkSize,
		ChunkOverlap: options.ChunkOverlap,
		EncodingName: options.EncodingName,
	}
}

// SplitText splits a text into multiple text.
func (s TokenSplitter) SplitText(text string) ([]string, error) {
	if s.EncodingName == "" {
		return nil, errors.New("tiktoken.EncodingName cannot be blank")
	}
	if s.ChunkOverlap >= s.ChunkSize {
		return nil, fmt.Errorf("chunk overlap %d must be smaller than chunk size %d",
			s.ChunkOverlap, s.ChunkSize)
	}
	tk, err := tiktoken.GetEncoding(s.EncodingName)
	if err != nil {
		return nil, fmt.Errorf("tiktoken.GetEncoding: %w", err)
	}
	return s.splitText(text, tk), nil
}

func (s TokenSplitter) splitText(text string, tk *tiktoken.Tiktoken) []string {
	splits := make([]string, 0)
	inputIds := tk.Encode(text, nil, nil)

	startIdx := 0
	curIdx := len(inputIds)
	if startIdx+s.ChunkSize < curIdx {
		curIdx = startIdx + s.ChunkSize
	}
	for startIdx < len(inputIds) {
		chunkIds := inputIds[startIdx:curIdx]
		splits = append(splits, tk.Decode(chunkIds))
		startIdx += s.ChunkSize - s.ChunkOverlap
		curIdx = startIdx + s.ChunkSize
		if curIdx > len(inputIds) {
			curIdx = len(inputIds)
		}
	}
	return splits
}

// TokenCounter counts tokens with a tiktoken encoding.
type TokenCounter struct {
	tk *tiktoken.Tiktoken
}

func NewTokenCounter(encodingName string) (*TokenCounter, error) {
	tk, err := tiktoken.GetEncoding(encodingName)
	if err != nil {
		return nil, fmt.Errorf("tiktoken.GetEncoding: %w", err)
	}
	return &TokenCounter{tk: tk}, nil
}

func (c *TokenCounter) Count(text string) int {
	return len(c.tk.Encode(text, nil, nil))
}
