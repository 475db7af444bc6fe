package copywriter

import "context"

// SchemaSpec names the closed JSON schema the provider must emit.
type SchemaSpec struct {
	Name       string
	Definition map[string]any
}

// Prompt is one structured-output request. ImageURL, when set, attaches
// a data URL to the user message as visual input. Followup carries the
// single repair instruction on the corrective call.
type Prompt struct {
	System          string
	User            string
	ImageURL        string
	Followup        string
	Temperature     float64
	MaxOutputTokens int64
	Schema          *SchemaSpec
}

// LLMClient abstracts the provider so it can be swapped or mocked.
type LLMClient interface {
	Complete(ctx context.Context, prompt Prompt) (string, error)
}

// LLMSettings is the base configuration for concrete clients.
type LLMSettings struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string
}
