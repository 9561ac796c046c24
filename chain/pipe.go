package chain

import (
	"context"
	"errors"
	"fmt"
	"strings"

	apperrors "github.com/kbukum/promptserve/errors"
	"github.com/kbukum/promptserve/prompt"
)

// Piped renders a prompt template from the input mapping and passes the
// text to the next Runnable.
type Piped struct {
	name     string
	template *prompt.Template
	next     Runnable
}

var _ Runnable = (*Piped)(nil)

// Pipe returns a Runnable named name that formats t and invokes next with
// the rendered prompt as a single user message.
func Pipe(name string, t *prompt.Template, next Runnable) *Piped {
	return &Piped{name: name, template: t, next: next}
}

// Name returns the pipeline name.
func (p *Piped) Name() string { return p.name }

// Template returns the prompt template.
func (p *Piped) Template() *prompt.Template { return p.template }

// Render formats the template against input, which must be a mapping
// holding every template variable.
func (p *Piped) Render(input any) (string, error) {
	vars, ok := input.(map[string]any)
	if !ok {
		if input == nil {
			return "", apperrors.MissingField("input")
		}
		return "", apperrors.InvalidInput("input",
			fmt.Sprintf("expected an object with fields %s, got %T", strings.Join(p.template.Variables(), ", "), input))
	}
	text, err := p.template.Format(vars)
	if err != nil {
		var mv *prompt.MissingVariableError
		if errors.As(err, &mv) {
			return "", apperrors.MissingField(mv.Name).WithCause(err)
		}
		return "", apperrors.InvalidInput("input", err.Error())
	}
	return text, nil
}

// Invoke renders the prompt and invokes the next Runnable.
func (p *Piped) Invoke(ctx context.Context, input any) (any, error) {
	text, err := p.Render(input)
	if err != nil {
		return nil, err
	}
	return p.next.Invoke(ctx, text)
}

// Stream renders the prompt and streams the next Runnable.
func (p *Piped) Stream(ctx context.Context, input any) (<-chan Chunk, error) {
	text, err := p.Render(input)
	if err != nil {
		return nil, err
	}
	return p.next.Stream(ctx, text)
}

// InputSchema lists the template variables as required string fields.
func (p *Piped) InputSchema() Schema {
	vars := p.template.Variables()
	props := make(Schema, len(vars))
	for _, v := range vars {
		props[v] = Schema{"title": titleCase(v), "type": "string"}
	}
	return Schema{
		"title":      titleCase(p.name) + "Input",
		"type":       "object",
		"properties": props,
		"required":   vars,
	}
}

// OutputSchema is the next Runnable's output schema under this pipeline's title.
func (p *Piped) OutputSchema() Schema {
	src := p.next.OutputSchema()
	s := make(Schema, len(src)+1)
	for k, v := range src {
		s[k] = v
	}
	s["title"] = titleCase(p.name) + "Output"
	return s
}

func titleCase(s string) string {
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == '_' || r == '-' || r == ' ' })
	for i, part := range parts {
		parts[i] = strings.ToUpper(part[:1]) + part[1:]
	}
	return strings.Join(parts, "")
}
