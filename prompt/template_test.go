package prompt

import (
	"errors"
	"slices"
	"testing"
)

func TestParse_Variables(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"none", "plain text", nil},
		{"one", "Write about {topic}.", []string{"topic"}},
		{"sorted unique", "{b} and {a} and {b}", []string{"a", "b"}},
		{"escaped braces", "{{not_a_var}} {topic}", []string{"topic"}},
		{"only escapes", "{{}}", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tpl, err := Parse(tt.text)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.text, err)
			}
			if got := tpl.Variables(); !slices.Equal(got, tt.want) {
				t.Errorf("Variables() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		text string
		pos  int
	}{
		{"unclosed", "about {topic", 6},
		{"unmatched close", "about topic}", 11},
		{"empty name", "about {}", 6},
		{"space in name", "about {a b}", 6},
		{"nested", "{a{b}}", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.text)
			var se *SyntaxError
			if !errors.As(err, &se) {
				t.Fatalf("expected *SyntaxError, got %v", err)
			}
			if se.Pos != tt.pos {
				t.Errorf("Pos = %d, want %d", se.Pos, tt.pos)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		text string
		vars map[string]any
		want string
	}{
		{"essay", "Write a 100-word essay about {topic}.", map[string]any{"topic": "rivers"}, "Write a 100-word essay about rivers."},
		{
			"poem",
			"Write a 100-word poem about {topic} suitable for a 5-year-old child.",
			map[string]any{"topic": "the sea"},
			"Write a 100-word poem about the sea suitable for a 5-year-old child.",
		},
		{"repeated", "{x}-{x}", map[string]any{"x": "a"}, "a-a"},
		{"number", "n={n}", map[string]any{"n": 42}, "n=42"},
		{"nil", "[{v}]", map[string]any{"v": nil}, "[]"},
		{"escapes", "{{json}} {k}", map[string]any{"k": "v"}, "{json} v"},
		{"extra keys ignored", "{a}", map[string]any{"a": "1", "b": "2"}, "1"},
		{"empty value", "about {topic}", map[string]any{"topic": ""}, "about "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MustParse(tt.text).Format(tt.vars)
			if err != nil {
				t.Fatalf("Format() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Format() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormat_MissingVariable(t *testing.T) {
	_, err := MustParse("about {topic}").Format(map[string]any{"subject": "x"})

	var mv *MissingVariableError
	if !errors.As(err, &mv) {
		t.Fatalf("expected *MissingVariableError, got %v", err)
	}
	if mv.Name != "topic" {
		t.Errorf("Name = %q, want topic", mv.Name)
	}
}

func TestMustParse_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	MustParse("{")
}

func TestVariables_ReturnsCopy(t *testing.T) {
	tpl := MustParse("{a}")
	tpl.Variables()[0] = "changed"
	if tpl.Variables()[0] != "a" {
		t.Error("Variables() must not expose internal state")
	}
}

func TestString(t *testing.T) {
	text := "about {topic}"
	if got := MustParse(text).String(); got != text {
		t.Errorf("String() = %q", got)
	}
}
