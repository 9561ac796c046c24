// Package validation checks request bodies, config structs and form values,
// reporting failures as INVALID_INPUT errors.
//
// # Struct Tag Validation
//
//	type invokeRequest struct {
//	    Input any `json:"input" validate:"required"`
//	}
//	err := validation.Validate(req)
//
// # Programmatic Validation
//
//	v := validation.New().Required("topic", topic).MaxLength("topic", topic, 500)
//	if err := v.Validate(); err != nil { ... }
package validation
