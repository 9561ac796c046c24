package prompt

import (
	"fmt"
	"slices"
	"strings"
)

// Template is a parsed prompt template. It is immutable and safe for
// concurrent use.
type Template struct {
	text     string
	segments []segment
	vars     []string
}

// segment is either literal text or a variable reference.
type segment struct {
	literal  string
	variable string
}

// SyntaxError reports a malformed template.
type SyntaxError struct {
	Pos int
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("prompt: %s at offset %d", e.Msg, e.Pos)
}

// MissingVariableError is returned by Format when the input lacks a variable.
type MissingVariableError struct {
	Name string
}

func (e *MissingVariableError) Error() string {
	return fmt.Sprintf("prompt: missing variable %q", e.Name)
}

// Parse parses text into a Template.
func Parse(text string) (*Template, error) {
	t := &Template{text: text}
	var lit strings.Builder
	seen := map[string]bool{}

	for i := 0; i < len(text); i++ {
		c := text[i]
		switch c {
		case '{':
			if i+1 < len(text) && text[i+1] == '{' {
				lit.WriteByte('{')
				i++
				continue
			}
			end := strings.IndexByte(text[i+1:], '}')
			if end < 0 {
				return nil, &SyntaxError{Pos: i, Msg: "unclosed '{'"}
			}
			name := text[i+1 : i+1+end]
			if err := checkName(name, i); err != nil {
				return nil, err
			}
			if lit.Len() > 0 {
				t.segments = append(t.segments, segment{literal: lit.String()})
				lit.Reset()
			}
			t.segments = append(t.segments, segment{variable: name})
			if !seen[name] {
				seen[name] = true
				t.vars = append(t.vars, name)
			}
			i += end + 1
		case '}':
			if i+1 < len(text) && text[i+1] == '}' {
				lit.WriteByte('}')
				i++
				continue
			}
			return nil, &SyntaxError{Pos: i, Msg: "unmatched '}'"}
		default:
			lit.WriteByte(c)
		}
	}
	if lit.Len() > 0 {
		t.segments = append(t.segments, segment{literal: lit.String()})
	}
	slices.Sort(t.vars)
	return t, nil
}

func checkName(name string, pos int) error {
	if name == "" {
		return &SyntaxError{Pos: pos, Msg: "empty variable name"}
	}
	for _, r := range name {
		if r != '_' && (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return &SyntaxError{Pos: pos, Msg: fmt.Sprintf("invalid variable name %q", name)}
		}
	}
	return nil
}

// MustParse is like Parse but panics on error.
func MustParse(text string) *Template {
	t, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return t
}

// String returns the source text.
func (t *Template) String() string { return t.text }

// Variables returns the sorted, unique variable names.
func (t *Template) Variables() []string {
	return slices.Clone(t.vars)
}

// Format substitutes vars into the template. Non-string values are
// printed with fmt; nil renders as the empty string. Extra keys are ignored.
func (t *Template) Format(vars map[string]any) (string, error) {
	var b strings.Builder
	b.Grow(len(t.text))
	for _, s := range t.segments {
		if s.variable == "" {
			b.WriteString(s.literal)
			continue
		}
		v, ok := vars[s.variable]
		if !ok {
			return "", &MissingVariableError{Name: s.variable}
		}
		switch v := v.(type) {
		case nil:
		case string:
			b.WriteString(v)
		default:
			fmt.Fprint(&b, v)
		}
	}
	return b.String(), nil
}
