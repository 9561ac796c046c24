package chain

import (
	"fmt"

	apperrors "github.com/kbukum/promptserve/errors"
	"github.com/kbukum/promptserve/llm"
)

// ToMessages converts a direct-pipeline input to chat messages. Accepted
// shapes:
//
//   - a string: one user message
//   - a mapping with "content" and optional "role" or "type": one message
//   - a list of strings or such mappings
//   - llm.Message or []llm.Message
//
// Anything else, including a mapping without "content", is INVALID_INPUT.
func ToMessages(input any) ([]llm.Message, error) {
	switch v := input.(type) {
	case string:
		return []llm.Message{{Role: llm.RoleUser, Content: v}}, nil
	case llm.Message:
		return []llm.Message{withRole(v)}, nil
	case []llm.Message:
		if len(v) == 0 {
			return nil, apperrors.InvalidInput("input", "at least one message is required")
		}
		out := make([]llm.Message, len(v))
		for i, m := range v {
			out[i] = withRole(m)
		}
		return out, nil
	case map[string]any:
		m, err := mappingToMessage(v, "input")
		if err != nil {
			return nil, err
		}
		return []llm.Message{m}, nil
	case []any:
		if len(v) == 0 {
			return nil, apperrors.InvalidInput("input", "at least one message is required")
		}
		out := make([]llm.Message, 0, len(v))
		for i, item := range v {
			field := fmt.Sprintf("input[%d]", i)
			switch item := item.(type) {
			case string:
				out = append(out, llm.Message{Role: llm.RoleUser, Content: item})
			case map[string]any:
				m, err := mappingToMessage(item, field)
				if err != nil {
					return nil, err
				}
				out = append(out, m)
			default:
				return nil, apperrors.InvalidInput(field, fmt.Sprintf("expected a string or message object, got %T", item))
			}
		}
		return out, nil
	case nil:
		return nil, apperrors.MissingField("input")
	default:
		return nil, apperrors.InvalidInput("input", fmt.Sprintf("expected a string, message object or list of messages, got %T", input))
	}
}

func mappingToMessage(m map[string]any, field string) (llm.Message, error) {
	raw, ok := m["content"]
	if !ok {
		return llm.Message{}, apperrors.MissingField(field + ".content")
	}
	content, ok := raw.(string)
	if !ok {
		return llm.Message{}, apperrors.InvalidInput(field+".content", "content must be a string")
	}

	role := llm.RoleUser
	if r, ok := m["role"].(string); ok && r != "" {
		role = r
	} else if t, ok := m["type"].(string); ok && t != "" {
		r, known := roleForType(t)
		if !known {
			return llm.Message{}, apperrors.InvalidInput(field+".type", fmt.Sprintf("unknown message type %q", t))
		}
		role = r
	}
	return llm.Message{Role: role, Content: content}, nil
}

func roleForType(t string) (string, bool) {
	switch t {
	case TypeHuman, "user":
		return llm.RoleUser, true
	case TypeAI, TypeAIChunk, "assistant":
		return llm.RoleAssistant, true
	case TypeSystem:
		return llm.RoleSystem, true
	}
	return "", false
}

func withRole(m llm.Message) llm.Message {
	if m.Role == "" {
		m.Role = llm.RoleUser
	}
	return m
}
