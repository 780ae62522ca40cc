package eval

import (
	"strings"

	"github.com/antgroup/ragqa/utils/json"
	"github.com/invopop/jsonschema"
)

// Statements is the analysis of one numbered answer sentence.
type Statements struct {
	SentenceIndex     int      `json:"sentence_index" jsonschema_description:"Index of the sentence from the statement list"`
	SimplerStatements []string `json:"simpler_statements" jsonschema_description:"the simpler statements"`
}

type StatementsAnswers []Statements

type StatementFaithfulness struct {
	Statement string `json:"statement" jsonschema_description:"the original statement, word-by-word"`
	Reason    string `json:"reason" jsonschema_description:"the reason of the verdict"`
	Verdict   int    `json:"verdict" jsonschema_description:"the verdict(0/1) of the faithfulness."`
}

type StatementFaithfulnessAnswers []StatementFaithfulness

type AnswerRelevanceClassification struct {
	Question     string `json:"question"`
	Noncommittal int    `json:"noncommittal"`
}

type ContextPrecisionVerification struct {
	Reason  string `json:"reason" jsonschema_description:"Reason for verification"`
	Verdict int    `json:"verdict" jsonschema_description:"Binary (0/1) verdict of verification"`
}

const jsonFormatInstructions = "Output JSON according to the schema.\n\n" +
	"The output should be a well-formatted JSON instance that conforms to the JSON schema below.\n\n" +
	`As an example, for the schema {"properties": {"foo": {"title": "Foo", "description": "a list of strings", "type": "array", "items": {"type": "string"}}}, "required": ["foo"]}` + "\n" +
	`the object {"foo": ["bar", "baz"]} is a well-formatted instance of the schema. The object {"properties": {"foo": ["bar", "baz"]}} is not well-formatted.` + "\n\n" +
	"Here is the output JSON schema:\n```\n{schema}\n```\n\n" +
	"Do not return any preamble or explanations, return only a pure JSON string surrounded by triple backticks (```)."

// JSONFormatInstructions describes the JSON shape of v for the model.
func JSONFormatInstructions(v any) string {
	r := &jsonschema.Reflector{
		Anonymous:      true,
		DoNotReference: true,
	}
	s := r.Reflect(v)
	s.Version = ""
	schema, err := json.MarshalString(s)
	if err != nil {
		panic(err)
	}
	return strings.Replace(jsonFormatInstructions, "{schema}", schema, 1)
}

var (
	statementsOutputInstructions   = JSONFormatInstructions(StatementsAnswers{})
	faithfulnessOutputInstructions = JSONFormatInstructions(StatementFaithfulnessAnswers{})
	questionOutputInstructions     = JSONFormatInstructions(&AnswerRelevanceClassification{})
	verificationOutputInstructions = JSONFormatInstructions(&ContextPrecisionVerification{})
)
