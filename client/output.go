package client

import (
	"bytes"
	"encoding/json"
)

// Kind tells which shape an invoke output had.
type Kind int

const (
	// KindOther is anything that is neither a string nor an object,
	// including null and an absent field.
	KindOther Kind = iota
	// KindText is a plain string.
	KindText
	// KindMessage is an object; its "content" string is the text.
	KindMessage
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindMessage:
		return "message"
	default:
		return "other"
	}
}

// Output is the decoded "output" field of an invoke response.
type Output struct {
	Kind Kind
	text string
	raw  json.RawMessage
}

// UnmarshalJSON classifies data. It only fails on invalid JSON.
func (o *Output) UnmarshalJSON(data []byte) error {
	*o = Output{raw: append(json.RawMessage(nil), data...)}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil
	}

	switch trimmed[0] {
	case '"':
		if err := json.Unmarshal(trimmed, &o.text); err != nil {
			return err
		}
		o.Kind = KindText
	case '{':
		var m map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &m); err != nil {
			return err
		}
		o.Kind = KindMessage
		if c, ok := m["content"]; ok {
			// Non-string content counts as absent.
			_ = json.Unmarshal(c, &o.text)
		}
	}
	return nil
}

// MarshalJSON writes the output back as received.
func (o Output) MarshalJSON() ([]byte, error) {
	if len(o.raw) == 0 {
		return []byte("null"), nil
	}
	return o.raw, nil
}

// Text returns the display string: the string itself for KindText, the
// content for KindMessage, "" otherwise.
func (o Output) Text() string {
	switch o.Kind {
	case KindText, KindMessage:
		return o.text
	default:
		return ""
	}
}

// Raw returns the undecoded JSON, or nil when the field was absent.
func (o Output) Raw() json.RawMessage { return o.raw }

// TextOutput builds a KindText output.
func TextOutput(s string) Output {
	raw, _ := json.Marshal(s)
	return Output{Kind: KindText, text: s, raw: raw}
}

// Response is the invoke response envelope.
type Response struct {
	Output   Output         `json:"output"`
	Metadata map[string]any `json:"metadata,omitempty"`
}
