package eval

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/antgroup/ragqa/prompt"
	"github.com/antgroup/ragqa/utils/json"
	"github.com/thoas/go-funk"
)

type OutputType string

const (
	OutputText OutputType = "text"
	OutputJSON OutputType = "json"
)

// Example is one few-shot demonstration keyed by input and output names.
type Example map[string]any

// Prompt is a few-shot instruction prompt for one evaluation step. Its
// rendered layout is shared with the evaluation library the metrics follow,
// so prompts can be swapped per language without touching the parsers.
type Prompt struct {
	Name                    string     `json:"name"`
	Instruction             string     `json:"instruction"`
	OutputFormatInstruction string     `json:"output_format_instruction"`
	Examples                []Example  `json:"examples"`
	InputKeys               []string   `json:"input_keys"`
	OutputKey               string     `json:"output_key"`
	OutputType              OutputType `json:"output_type"`
	Language                string     `json:"language"`
}

// String returns the template text with {{.key}} placeholders for the inputs.
func (p *Prompt) String() string {
	var sb strings.Builder
	sb.WriteString(prompt.Escape(p.Instruction))
	if p.OutputFormatInstruction != "" {
		sb.WriteString("\n\n")
		sb.WriteString(prompt.Escape(p.OutputFormatInstruction))
	}
	sb.WriteString("\n")

	if len(p.Examples) > 0 {
		sb.WriteString("\nExamples:\n")
		for _, example := range p.Examples {
			for _, key := range p.InputKeys {
				sb.WriteString("\n" + key + ": " + prompt.Escape(exampleValue(example[key])))
			}
			if p.OutputKey != "" {
				sb.WriteString("\n" + p.OutputKey + ": ```" + prompt.Escape(exampleValue(example[p.OutputKey])) + "```")
			}
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\nYour actual task:\n")
	for _, key := range p.InputKeys {
		sb.WriteString("\n" + key + ": {{." + key + "}}")
	}
	if p.OutputKey != "" {
		sb.WriteString("\n" + p.OutputKey + ": \n")
	}
	return sb.String()
}

func (p *Prompt) Template() (*prompt.PromptTemplate, error) {
	return prompt.NewPromptTemplate(p.String())
}

// Format renders the prompt. Strings are written as JSON string literals and
// every other value as JSON, both without ASCII escaping.
func (p *Prompt) Format(inputs map[string]any) (string, error) {
	if err := p.checkInputs(inputs); err != nil {
		return "", err
	}
	t, err := p.Template()
	if err != nil {
		return "", fmt.Errorf("prompt %s: %w", p.Name, err)
	}
	values := make(map[string]any, len(inputs))
	for key, value := range inputs {
		encoded, err := json.MarshalString(value)
		if err != nil {
			return "", fmt.Errorf("prompt %s: encode %s: %w", p.Name, key, err)
		}
		values[key] = encoded
	}
	return t.Format(values)
}

// Validate checks that examples and placeholders agree with the declared keys.
func (p *Prompt) Validate() error {
	if p.Name == "" {
		return errors.New("prompt name is empty")
	}
	if p.Instruction == "" {
		return fmt.Errorf("prompt %s: instruction is empty", p.Name)
	}
	if p.OutputKey == "" {
		return fmt.Errorf("prompt %s: output key is empty", p.Name)
	}
	if len(funk.UniqString(p.InputKeys)) != len(p.InputKeys) {
		return fmt.Errorf("prompt %s: duplicated input keys", p.Name)
	}
	if funk.ContainsString(p.InputKeys, p.OutputKey) {
		return fmt.Errorf("prompt %s: output key %q is also an input key", p.Name, p.OutputKey)
	}

	want := append(append([]string{}, p.InputKeys...), p.OutputKey)
	sort.Strings(want)
	for i, example := range p.Examples {
		keys := make([]string, 0, len(example))
		for key := range example {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		if !funk.Equal(keys, want) {
			return fmt.Errorf("prompt %s: example %d has keys %v, want %v", p.Name, i, keys, want)
		}
		if p.OutputType == OutputJSON {
			if _, err := json.MarshalString(example[p.OutputKey]); err != nil {
				return fmt.Errorf("prompt %s: example %d output: %w", p.Name, i, err)
			}
		}
	}

	t, err := p.Template()
	if err != nil {
		return fmt.Errorf("prompt %s: %w", p.Name, err)
	}
	inputs := append([]string{}, p.InputKeys...)
	sort.Strings(inputs)
	if vars := t.Variables(); !funk.Equal(vars, inputs) {
		return fmt.Errorf("prompt %s: placeholders %v do not match input keys %v", p.Name, vars, inputs)
	}
	return nil
}

func (p *Prompt) checkInputs(inputs map[string]any) error {
	for _, key := range p.InputKeys {
		if _, ok := inputs[key]; !ok {
			return fmt.Errorf("prompt %s: missing input %q", p.Name, key)
		}
	}
	if len(inputs) != len(p.InputKeys) {
		return fmt.Errorf("prompt %s: got %d inputs, want %v", p.Name, len(inputs), p.InputKeys)
	}
	return nil
}

func exampleValue(v any) string {
	switch value := v.(type) {
	case string:
		return value
	case nil:
		return ""
	}
	s, err := json.MarshalString(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return s
}
