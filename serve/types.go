package serve

// InvokeRequest is the body of POST {path}/invoke and {path}/stream.
type InvokeRequest struct {
	Input  any            `json:"input" validate:"required"`
	Config map[string]any `json:"config,omitempty"`
	Kwargs map[string]any `json:"kwargs,omitempty"`
}

// InvokeResponse is the body of a successful invoke.
type InvokeResponse struct {
	Output   any      `json:"output"`
	Metadata Metadata `json:"metadata"`
}

// Metadata identifies one run.
type Metadata struct {
	RunID string `json:"run_id"`
}

// BatchRequest is the body of POST {path}/batch.
type BatchRequest struct {
	Inputs []any          `json:"inputs" validate:"required,min=1,max=32"`
	Config map[string]any `json:"config,omitempty"`
	Kwargs map[string]any `json:"kwargs,omitempty"`
}

// BatchResponse is the body of a successful batch; Output[i] answers Inputs[i].
type BatchResponse struct {
	Output   []any         `json:"output"`
	Metadata BatchMetadata `json:"metadata"`
}

// BatchMetadata holds one run id per input.
type BatchMetadata struct {
	RunIDs []string `json:"run_ids"`
}
