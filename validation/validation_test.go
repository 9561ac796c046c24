package validation

import (
	"strings"
	"testing"

	"github.com/kbukum/promptserve/errors"
)

func TestValidatorRequired(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"present", "the sea", false},
		{"empty", "", true},
		{"whitespace only", "   \t\n", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v := New().Required("topic", tc.value)
			if v.HasErrors() != tc.wantErr {
				t.Errorf("Required(%q) errors = %v, wantErr %v", tc.value, v.Errors(), tc.wantErr)
			}
		})
	}
}

func TestValidatorMaxLength(t *testing.T) {
	if New().MaxLength("topic", "héllo", 5).HasErrors() {
		t.Error("expected rune count, not bytes")
	}
	v := New().MaxLength("topic", "too long", 3)
	if !v.HasErrors() || v.Errors()[0].Message != "must be at most 3 characters" {
		t.Errorf("unexpected errors %v", v.Errors())
	}
}

func TestValidatorValidate(t *testing.T) {
	if appErr := New().Required("topic", "sea").Validate(); appErr != nil {
		t.Error("expected nil for valid input")
	}

	appErr := New().Required("topic", "").Required("input", "").Validate()
	if appErr == nil {
		t.Fatal("expected error")
	}
	if appErr.Code != errors.ErrCodeInvalidInput {
		t.Errorf("expected INVALID_INPUT, got %s", appErr.Code)
	}
	fields, ok := appErr.Details["fields"].([]FieldError)
	if !ok || len(fields) != 2 {
		t.Fatalf("expected two field errors in details, got %v", appErr.Details)
	}
	if appErr.Message != "topic: is required; input: is required" {
		t.Errorf("unexpected message %q", appErr.Message)
	}
}

func TestValidatorChaining(t *testing.T) {
	v := New()
	if v.Required("topic", "sea").MaxLength("topic", "sea", 100) != v {
		t.Error("expected chaining to return same validator")
	}
	if v.HasErrors() {
		t.Error("expected no errors for valid chained validation")
	}
}

func TestStructValidateValid(t *testing.T) {
	type request struct {
		Input any    `json:"input" validate:"required"`
		Model string `json:"model" validate:"omitempty,oneof=gemini poem"`
	}
	if err := Validate(request{Input: map[string]any{"topic": "sea"}}); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}

func TestStructValidateInvalid(t *testing.T) {
	type request struct {
		Input   any    `json:"input" validate:"required"`
		BaseURL string `json:"base_url" validate:"required,url"`
	}

	err := Validate(request{BaseURL: "not a url"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	appErr, ok := errors.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %T", err)
	}
	if !strings.Contains(appErr.Message, "input: is required") {
		t.Errorf("expected input field in message, got %q", appErr.Message)
	}
	if !strings.Contains(appErr.Message, "base_url: must be a valid URL") {
		t.Errorf("expected url message, got %q", appErr.Message)
	}
}

func TestStructValidateConfigTags(t *testing.T) {
	type cfg struct {
		Port    int    `mapstructure:"port" validate:"gt=0,lte=65535"`
		APIKey  string `validate:"required"`
		Dialect string `mapstructure:"dialect" validate:"oneof=gemini ollama"`
	}
	if err := Validate(cfg{Port: 8000, APIKey: "k", Dialect: "ollama"}); err != nil {
		t.Errorf("expected valid, got %v", err)
	}

	err := Validate(cfg{Port: 70000, Dialect: "openai"})
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{
		"port: must be at most 65535",
		"api_key: is required",
		"dialect: must be one of: gemini ollama",
	} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected %q in %q", want, err.Error())
		}
	}
}

func TestStructValidateMinMax(t *testing.T) {
	type body struct {
		Inputs []any  `json:"inputs" validate:"min=1"`
		Name   string `json:"name" validate:"max=3"`
	}
	err := Validate(body{Name: "toolong"})
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"inputs: must be at least 1 items", "name: must be at most 3 characters"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected %q in %q", want, err.Error())
		}
	}
}

func TestToSnakeCase(t *testing.T) {
	for in, want := range map[string]string{
		"Input":     "input",
		"BaseURL":   "base_url",
		"APIKey":    "api_key",
		"MaxTokens": "max_tokens",
	} {
		if got := toSnakeCase(in); got != want {
			t.Errorf("toSnakeCase(%q) = %q, want %q", in, got, want)
		}
	}
}
