package textsplitter

import (
	"strings"

	"github.com/rs/zerolog"
)

// RecursiveCharacter is a text splitter that will split texts recursively by different
// characters.
type RecursiveCharacter struct {
	Separators   []string
	ChunkSize    int
	ChunkOverlap int
	// LenFunc 为 nil 时按字符数计算
	LenFunc LenFunc

	logger *zerolog.Logger
}

var _ TextSplitter = RecursiveCharacter{}

// NewRecursiveCharacter creates a new recursive character splitter with default values. By
// default the separators used are "\n\n", "\n", " " and "", chunks hold at most 200
// characters and neighbouring chunks overlap by 50.
func NewRecursiveCharacter(opts ...Option) RecursiveCharacter {
	options := DefaultOptions()
	for _, o := range opts {
		o(&options)
	}

	return RecursiveCharacter{
		Separators:   options.Separators,
		ChunkSize:    options.ChunkSize,
		ChunkOverlap: options.ChunkOverlap,
		LenFunc:      options.LenFunc,
		logger:       options.Logger,
	}
}

// SplitText splits a text into multiple text.
func (s RecursiveCharacter) SplitText(text string) ([]string, error) {
	finalChunks := make([]string, 0)
	length := s.length()

	// Find the appropriate separator
	separator := s.Separators[len(s.Separators)-1]
	for _, s := range s.Separators {
		if s == "" {
			separator = s
			break
		}

		if strings.Contains(text, s) {
			separator = s
			break
		}
	}

	splits := strings.Split(text, separator)
	goodSplits := make([]string, 0)

	// Merge the splits, recursively splitting larger texts.
	for _, split := range splits {
		if length(split) < s.ChunkSize || split == text {
			goodSplits = append(goodSplits, split)
			continue
		}

		if len(goodSplits) > 0 {
			finalChunks = append(finalChunks, s.mergeSplits(goodSplits, separator)...)
			goodSplits = make([]string, 0)
		}

		otherInfo, err := s.SplitText(split)
		if err != nil {
			return nil, err
		}
		finalChunks = append(finalChunks, otherInfo...)
	}

	if len(goodSplits) > 0 {
		finalChunks = append(finalChunks, s.mergeSplits(goodSplits, separator)...)
	}

	return finalChunks, nil
}

func (s RecursiveCharacter) length() LenFunc {
	if s.LenFunc == nil {
		return RuneLen
	}
	return s.LenFunc
}

// joinDocs comines two documents with the separator used to split them.
func joinDocs(docs []string, separator string) string {
	return strings.TrimSpace(strings.Join(docs, separator))
}

// mergeSplits merges smaller splits into splits that are closer to the chunkSize.
func (s RecursiveCharacter) mergeSplits(splits []string, separator string) []string { //nolint:cyclop
	length := s.length()
	chunkSize, chunkOverlap := s.ChunkSize, s.ChunkOverlap
	sepLen := length(separator)

	docs := make([]string, 0)
	currentDoc := make([]string, 0)
	total := 0

	for _, split := range splits {
		splitLen := length(split)
		totalWithSplit := total + splitLen
		if len(currentDoc) != 0 {
			totalWithSplit += sepLen
		}

		if total > chunkSize && s.logger != nil {
			s.logger.Warn().Int("size", total).Int("chunk_size", chunkSize).
				Msg("created a chunk longer than the chunk size")
		}
		if totalWithSplit > chunkSize && len(currentDoc) > 0 {
			doc := joinDocs(currentDoc, separator)
			if doc != "" {
				docs = append(docs, doc)
			}

			for shouldPop(chunkOverlap, chunkSize, total, splitLen, sepLen, len(currentDoc)) {
				total -= length(currentDoc[0]) //nolint:gosec
				if len(currentDoc) > 1 {
					total -= sepLen
				}
				currentDoc = currentDoc[1:] //nolint:gosec
			}
		}

		currentDoc = append(currentDoc, split)
		total += splitLen
		if len(currentDoc) > 1 {
			total += sepLen
		}
	}

	doc := joinDocs(currentDoc, separator)
	if doc != "" {
		docs = append(docs, doc)
	}

	return docs
}

// Keep popping if:
//   - the chunk is larger then the chunk overlap
//   - or if there are any chunks and the length is long
func shouldPop(chunkOverlap, chunkSize, total, splitLen, separatorLen, currentDocLen int) bool {
	docsNeededToAddSep := 2
	if currentDocLen < docsNeededToAddSep {
		separatorLen = 0
	}

	return currentDocLen > 0 && (total > chunkOverlap || (total+splitLen+separatorLen > chunkSize && total > 0))
}
