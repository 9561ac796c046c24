// Package prompt renders single-brace prompt templates.
//
// A template names its inputs in braces; doubled braces are literal:
//
//	t := prompt.MustParse("Write a 100-word essay about {topic}.")
//	t.Variables()                               // ["topic"]
//	t.Format(map[string]any{"topic": "rivers"}) // "Write a 100-word essay about rivers."
//
// Formatting with a variable absent from the input fails with a
// *MissingVariableError.
package prompt
