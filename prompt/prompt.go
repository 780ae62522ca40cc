package prompt

import (
	"errors"
	"sort"
	"strings"
	"text/template"
	"text/template/parse"
)

// Template renders a prompt from named inputs.
type Template interface {
	Format(inputs map[string]any) (string, error)
	Variables() []string
}

type PromptTemplate struct {
	text string
	tmpl *template.Template
}

var _ Template = (*PromptTemplate)(nil)

var ErrMissingVariable = errors.New("missing prompt variable")

// NewPromptTemplate parses text written with {{.name}} placeholders.
func NewPromptTemplate(text string) (*PromptTemplate, error) {
	tmpl, err := template.New("prompt").Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, err
	}
	return &PromptTemplate{text: text, tmpl: tmpl}, nil
}

func (p *PromptTemplate) Format(inputs map[string]any) (string, error) {
	for _, name := range p.Variables() {
		if _, ok := inputs[name]; !ok {
			return "", errors.Join(ErrMissingVariable, errors.New(name))
		}
	}
	var sb strings.Builder
	if err := p.tmpl.Execute(&sb, inputs); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Variables 返回模板中引用的顶层变量名，按字母序
func (p *PromptTemplate) Variables() []string {
	seen := map[string]struct{}{}
	if p.tmpl.Tree != nil {
		walk(p.tmpl.Tree.Root, seen)
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (p *PromptTemplate) String() string {
	return p.text
}

// Escape quotes template delimiters so s renders literally.
func Escape(s string) string {
	return strings.ReplaceAll(s, "{{", `{{"{{"}}`)
}

func walk(node parse.Node, seen map[string]struct{}) {
	switch n := node.(type) {
	case nil:
	case *parse.ListNode:
		if n == nil {
			return
		}
		for _, child := range n.Nodes {
			walk(child, seen)
		}
	case *parse.ActionNode:
		walkPipe(n.Pipe, seen)
	case *parse.IfNode:
		walkBranch(&n.BranchNode, seen)
	case *parse.RangeNode:
		walkBranch(&n.BranchNode, seen)
	case *parse.WithNode:
		walkBranch(&n.BranchNode, seen)
	}
}

func walkBranch(b *parse.BranchNode, seen map[string]struct{}) {
	walkPipe(b.Pipe, seen)
	walk(b.List, seen)
	walk(b.ElseList, seen)
}

func walkPipe(pipe *parse.PipeNode, seen map[string]struct{}) {
	if pipe == nil {
		return
	}
	for _, cmd := range pipe.Cmds {
		for _, arg := range cmd.Args {
			if field, ok := arg.(*parse.FieldNode); ok && len(field.Ident) > 0 {
				seen[field.Ident[0]] = struct{}{}
			}
		}
	}
}
