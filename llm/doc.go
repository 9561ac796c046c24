// Package llm provides a config-driven LLM adapter built on the httpclient
// and httpclient/rest packages.
//
// The adapter works with any provider via the Dialect pattern, similar to
// how database/sql works with driver packages:
//
//   - Universal types: [CompletionRequest], [CompletionResponse], [StreamChunk], [Message], [Usage]
//   - [Dialect]: maps universal types to/from a provider's HTTP format
//   - [Adapter]: composes the REST client and a Dialect into a complete client
//   - [Component]: lifecycle and health reporting for the bootstrap registry
//
// Dialect packages register themselves on import:
//
//	import (
//	    "github.com/kbukum/promptserve/llm"
//	    _ "github.com/kbukum/promptserve/llm/ollama"
//	)
//
//	adapter, err := llm.New(llm.Config{Dialect: "ollama", Model: "llama3.2"})
//
//	resp, err := adapter.Execute(ctx, llm.CompletionRequest{
//	    Messages: []llm.Message{{Role: llm.RoleUser, Content: "Hello!"}},
//	})
package llm
