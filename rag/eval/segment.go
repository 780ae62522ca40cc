package eval

import (
	"strconv"
	"strings"
	"unicode"
)

// Segmenter splits an answer into sentences.
type Segmenter interface {
	Segment(text string) []string
}

const (
	defaultSentenceEnds = "。！？!?；;"
	closingMarks        = "”’\"'）)》」』】"
)

// RuleSegmenter splits after sentence-ending punctuation and at line breaks.
// Closing quotes and brackets stay with the sentence they close. A period is
// an end only when followed by whitespace or the end of the text.
type RuleSegmenter struct {
	Ends string
}

func NewRuleSegmenter() *RuleSegmenter {
	return &RuleSegmenter{Ends: defaultSentenceEnds}
}

func (s *RuleSegmenter) Segment(text string) []string {
	ends := s.Ends
	if ends == "" {
		ends = defaultSentenceEnds
	}
	runes := []rune(text)
	sentences := make([]string, 0)
	add := func(part []rune) {
		if sentence := strings.TrimSpace(string(part)); sentence != "" {
			sentences = append(sentences, sentence)
		}
	}

	start := 0
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r == '\n' {
			add(runes[start:i])
			start = i + 1
			continue
		}
		if !isSentenceEnd(runes, i, ends) {
			continue
		}
		end := i + 1
		for end < len(runes) && (isSentenceEnd(runes, end, ends) || strings.ContainsRune(closingMarks, runes[end])) {
			end++
		}
		add(runes[start:end])
		start = end
		i = end - 1
	}
	add(runes[start:])
	return sentences
}

func isSentenceEnd(runes []rune, i int, ends string) bool {
	r := runes[i]
	if r == '.' {
		return i+1 == len(runes) || unicode.IsSpace(runes[i+1])
	}
	return strings.ContainsRune(ends, r)
}

// DefaultSentenceTerminators keeps only sentences ending with a Chinese full stop.
var DefaultSentenceTerminators = []string{"。"}

// SentenceFilter keeps sentences whose trimmed text ends with one of its
// terminators. An empty terminator list keeps every sentence.
type SentenceFilter struct {
	Terminators []string
}

func NewSentenceFilter(terminators ...string) *SentenceFilter {
	if len(terminators) == 0 {
		terminators = DefaultSentenceTerminators
	}
	return &SentenceFilter{Terminators: terminators}
}

func (f *SentenceFilter) Keep(sentence string) bool {
	if len(f.Terminators) == 0 {
		return true
	}
	trimmed := strings.TrimSpace(sentence)
	for _, t := range f.Terminators {
		if t != "" && strings.HasSuffix(trimmed, t) {
			return true
		}
	}
	return false
}

func (f *SentenceFilter) Filter(sentences []string) []string {
	kept := make([]string, 0, len(sentences))
	for _, sentence := range sentences {
		if f.Keep(sentence) {
			kept = append(kept, sentence)
		}
	}
	return kept
}

// NumberSentences renders sentences as "{index}:{sentence}" lines, indexed from 0.
func NumberSentences(sentences []string) string {
	lines := make([]string, len(sentences))
	for i, sentence := range sentences {
		lines[i] = strconv.Itoa(i) + ":" + sentence
	}
	return strings.Join(lines, "\n")
}
