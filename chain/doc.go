// Package chain composes prompt templates and model backends into named
// pipelines that the serve package exposes over HTTP.
//
// A pipeline is a Runnable. Model calls a backend once per invocation;
// Pipe renders a prompt template from the input mapping and hands the
// text to the next Runnable:
//
//	gemini := chain.NewModel("gemini", geminiAdapter, chain.ModeChat)
//	essay := chain.Pipe("essay", prompt.MustParse("Write a 100-word essay about {topic}."), gemini)
//
//	out, err := essay.Invoke(ctx, map[string]any{"topic": "rivers"})
//
// Chat-mode models return a Message; text-mode models return a string.
// Middleware adds tracing, metrics and logging around any Runnable.
package chain
