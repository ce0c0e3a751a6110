// Package opencode implements the LanguageModel interface on top of an
// OpenCode server. The server exposes a session/message API rather than a
// chat-completion one, so each generation runs inside a session (ephemeral
// by default) and tool calling is a text convention, not a native protocol.
package opencode

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/flowbaker/flowbaker-opencode/pkg/ai-sdk/provider"
	"github.com/flowbaker/flowbaker-opencode/pkg/ai-sdk/types"
	opencodeclient "github.com/flowbaker/flowbaker-opencode/pkg/clients/opencode"
)

// Provider implements the LanguageModel interface for OpenCode
type Provider struct {
	client opencodeclient.ClientInterface
	config Config
	parser ToolCallParser
}

// Config holds OpenCode-specific configuration
type Config struct {
	ProviderID string
	ModelID    string

	// Agent selects the server-side agent profile; empty uses the default.
	Agent string

	// SessionID pins all generations to one session. When empty, every
	// generation runs in an ephemeral session that is deleted afterwards.
	SessionID string

	// SessionTitle names ephemeral sessions.
	SessionTitle string

	// Timeout aborts a generation client-side. Zero means no client-side
	// deadline beyond the underlying HTTP client's.
	Timeout time.Duration

	// Parser extracts tool calls from reply text. Defaults to
	// NewJSONTextParser.
	Parser ToolCallParser
}

// New creates a new OpenCode provider for the given model
func New(client opencodeclient.ClientInterface, providerID, modelID string) *Provider {
	return NewWithConfig(client, Config{
		ProviderID: providerID,
		ModelID:    modelID,
	})
}

// NewWithConfig creates a new OpenCode provider with custom configuration
func NewWithConfig(client opencodeclient.ClientInterface, config Config) *Provider {
	parser := config.Parser
	if parser == nil {
		parser = NewJSONTextParser()
	}

	return &Provider{
		client: client,
		config: config,
		parser: parser,
	}
}

// ID returns the model identifier
func (p *Provider) ID() string {
	return fmt.Sprintf("opencode:%s/%s", p.config.ProviderID, p.config.ModelID)
}

// Capabilities returns the model's capabilities. Tool support is a text
// convention (see ToolCallParser), so native tool calling is reported false.
func (p *Provider) Capabilities() provider.Capabilities {
	return provider.Capabilities{
		SupportsTools:     false,
		SupportsStreaming: false,
	}
}

// Generate implements the Generate method of the LanguageModel interface
func (p *Provider) Generate(ctx context.Context, req provider.GenerateRequest) (*types.GenerateResponse, error) {
	if len(req.Messages) == 0 {
		return nil, types.ErrInvalidMessage
	}

	cancel := func() {}
	if p.config.Timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, p.config.Timeout)
	}
	defer cancel()

	input := &opencodeclient.ChatInput{
		Parts:  opencodeclient.TextParts(flattenMessages(req.Messages)),
		System: p.systemPrompt(req),
		Agent:  p.config.Agent,
	}

	if p.config.ProviderID != "" && p.config.ModelID != "" {
		input.Model = &opencodeclient.ModelRef{
			ProviderID: p.config.ProviderID,
			ModelID:    p.config.ModelID,
		}
	}

	var response *opencodeclient.ChatResponse

	err := p.client.WithSession(ctx, p.sessionScope(), func(ctx context.Context, sessionID string) error {
		var sendErr error
		response, sendErr = p.client.SendMessage(ctx, sessionID, input)
		return sendErr
	})
	if err != nil {
		if ctx.Err() != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w after %s", opencodeclient.ErrRequestTimeout, p.config.Timeout)
		}

		return nil, err
	}

	content := opencodeclient.TextOf(response.Parts, true)
	if content == "" {
		return nil, types.ErrEmptyResponse
	}

	toolCalls := p.parser.Parse(content)

	finishReason := types.FinishReasonStop
	if len(toolCalls) > 0 {
		finishReason = types.FinishReasonToolCalls
	}

	result := &types.GenerateResponse{
		Content:      content,
		ToolCalls:    toolCalls,
		FinishReason: finishReason,
		Model:        response.Info.ModelID,
	}

	if response.Info.Tokens != nil {
		result.Usage = types.Usage{
			PromptTokens:     int(response.Info.Tokens.Input),
			CompletionTokens: int(response.Info.Tokens.Output),
			TotalTokens:      int(response.Info.Tokens.Input + response.Info.Tokens.Output),
			ReasoningTokens:  int(response.Info.Tokens.Reasoning),
		}
	}

	return result, nil
}

func (p *Provider) sessionScope() opencodeclient.SessionScope {
	if p.config.SessionID != "" {
		return opencodeclient.SessionScope{
			Mode:      opencodeclient.SessionModeExisting,
			SessionID: p.config.SessionID,
		}
	}

	return opencodeclient.SessionScope{
		Mode:  opencodeclient.SessionModeTemporary,
		Title: p.config.SessionTitle,
	}
}

func (p *Provider) systemPrompt(req provider.GenerateRequest) string {
	sections := []string{}

	if req.System != "" {
		sections = append(sections, req.System)
	}

	if len(req.Tools) > 0 {
		sections = append(sections, toolInstructions(req.Tools))
	}

	return strings.Join(sections, "\n\n")
}

// flattenMessages folds the conversation into one text block, prefixing each
// message with its role. The OpenCode message API accepts a single prompt,
// not a role-tagged history.
func flattenMessages(messages []types.Message) string {
	blocks := make([]string, 0, len(messages))

	for _, message := range messages {
		if message.Content == "" {
			continue
		}

		blocks = append(blocks, fmt.Sprintf("%s: %s", message.Role, message.Content))
	}

	return strings.Join(blocks, "\n\n")
}
