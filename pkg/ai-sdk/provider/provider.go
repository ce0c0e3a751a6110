package provider

import (
	"context"

	"github.com/flowbaker/flowbaker-opencode/pkg/ai-sdk/types"
)

// LanguageModel defines the interface that all LLM providers must implement
type LanguageModel interface {
	// Generate produces a complete response (blocking)
	Generate(ctx context.Context, req GenerateRequest) (*types.GenerateResponse, error)

	// ID returns the unique identifier for this model
	ID() string

	// Capabilities returns the capabilities of this model
	Capabilities() Capabilities
}

// GenerateRequest contains all parameters for generating text
type GenerateRequest struct {
	// Messages is the conversation history
	Messages []types.Message `json:"messages"`

	// System is an optional system prompt
	System string `json:"system,omitempty"`

	// Tools is a list of tools available to the model
	Tools []types.Tool `json:"tools,omitempty"`
}

// Capabilities describes what a model can do
type Capabilities struct {
	// SupportsTools indicates if the model supports function/tool calling
	// through a native protocol (as opposed to a text convention)
	SupportsTools bool `json:"supports_tools"`

	// SupportsStreaming indicates if the model supports streaming responses
	SupportsStreaming bool `json:"supports_streaming"`
}
