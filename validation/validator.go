package validation

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/kbukum/promptserve/errors"
)

// FieldError is one failed check.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Validator accumulates checks on form values; every check returns the
// receiver so calls chain.
type Validator struct {
	errs []FieldError
}

func New() *Validator { return &Validator{} }

func (v *Validator) add(field, message string) *Validator {
	v.errs = append(v.errs, FieldError{Field: field, Message: message})
	return v
}

// Required fails for empty or whitespace-only values.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		return v.add(field, "is required")
	}
	return v
}

// MaxLength counts runes, not bytes.
func (v *Validator) MaxLength(field, value string, limit int) *Validator {
	if utf8.RuneCountInString(value) > limit {
		return v.add(field, "must be at most "+strconv.Itoa(limit)+" characters")
	}
	return v
}

func (v *Validator) HasErrors() bool { return len(v.errs) > 0 }

func (v *Validator) Errors() []FieldError { return v.errs }

// Validate folds the collected failures into one INVALID_INPUT error, or
// returns nil.
func (v *Validator) Validate() *errors.AppError {
	if !v.HasErrors() {
		return nil
	}
	return toAppError(v.errs)
}

func toAppError(fields []FieldError) *errors.AppError {
	msgs := make([]string, len(fields))
	for i, f := range fields {
		msgs[i] = f.Field + ": " + f.Message
	}
	return errors.Validation(strings.Join(msgs, "; ")).WithDetail("fields", fields)
}
