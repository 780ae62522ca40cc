package query

import (
	"strings"

	"github.com/antgroup/ragqa/rag/prompts"
)

func answerReplacer(query, context string) *strings.Replacer {
	return strings.NewReplacer(
		prompts.DocumentPlaceholder, context,
		prompts.QuestionPlaceholder, query,
	)
}

// FormatContext joins the retrieved chunks in rank order, separated by a
// blank line, after a leading newline.
func FormatContext(chunks []string) string {
	return "\n" + strings.Join(chunks, "\n\n")
}

// BuildPrompt fills the answer template. Both placeholders are substituted in
// one pass, so placeholder text inside query or context is kept verbatim.
func BuildPrompt(query, formattedContext string) string {
	return answerReplacer(query, formattedContext).Replace(prompts.Answer)
}
