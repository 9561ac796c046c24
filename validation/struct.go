package validation

import (
	stderrors "errors"
	"reflect"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/kbukum/promptserve/errors"
)

var structValidator = sync.OnceValue(func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(fieldName)
	return v
})

// fieldName reports a struct field by the name users write it under: the
// json tag for request bodies, the mapstructure tag for config.
func fieldName(f reflect.StructField) string {
	for _, key := range []string{"json", "mapstructure"} {
		name, _, _ := strings.Cut(f.Tag.Get(key), ",")
		if name != "" && name != "-" {
			return name
		}
	}
	return toSnakeCase(f.Name)
}

// Validate checks s against its `validate` struct tags. Failures come back
// as one INVALID_INPUT *errors.AppError listing every field.
func Validate(s any) error {
	err := structValidator().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return errors.Validation("validation failed").WithCause(err)
	}
	fields := make([]FieldError, len(verrs))
	for i, fe := range verrs {
		fields[i] = FieldError{Field: fe.Field(), Message: describe(fe)}
	}
	return toAppError(fields)
}

var tagMessages = map[string]string{
	"required":      "is required",
	"url":           "must be a valid URL",
	"hostname_port": "must be a host:port address",
}

var tagPrefixes = map[string]string{
	"gt":    "must be greater than ",
	"gte":   "must be at least ",
	"lte":   "must be at most ",
	"oneof": "must be one of: ",
}

func describe(fe validator.FieldError) string {
	if msg, ok := tagMessages[fe.Tag()]; ok {
		return msg
	}
	if prefix, ok := tagPrefixes[fe.Tag()]; ok {
		return prefix + fe.Param()
	}
	switch fe.Tag() {
	case "min":
		return "must be at least " + fe.Param() + unit(fe.Kind())
	case "max":
		return "must be at most " + fe.Param() + unit(fe.Kind())
	}
	return "is invalid"
}

func unit(k reflect.Kind) string {
	switch k {
	case reflect.String:
		return " characters"
	case reflect.Slice, reflect.Array, reflect.Map:
		return " items"
	}
	return ""
}

// toSnakeCase keeps acronyms together: BaseURL -> base_url, APIKey -> api_key.
func toSnakeCase(s string) string {
	runes := []rune(s)
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) && i > 0 {
			prevLower := !unicode.IsUpper(runes[i-1])
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if prevLower || nextLower {
				b.WriteByte('_')
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
