package opencodeintegration

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/flowbaker/flowbaker-opencode/pkg/ai-sdk/tool"
	"github.com/flowbaker/flowbaker-opencode/pkg/clients/opencode"
)

const (
	defaultToolName        = "opencode"
	defaultToolDescription = "Delegates a task to an OpenCode coding assistant and returns its text reply."
)

// ToolConfig configures the agent-facing tool wrapper.
type ToolConfig struct {
	Name        string
	Description string

	// Model is a composite selector (provider::model). Empty uses the
	// server default.
	Model string

	Agent string

	// SessionID pins calls to one session; empty runs each call in an
	// ephemeral session.
	SessionID    string
	SessionTitle string
}

// AsTool wraps the send message operation as an agent tool. The tool accepts
// either a raw text argument or a JSON object with an "input" field, and
// returns the assistant's flattened text reply.
func AsTool(client opencode.ClientInterface, config ToolConfig) (tool.Tool, error) {
	model, err := DecodeModelSelector(config.Model)
	if err != nil {
		return nil, fmt.Errorf("invalid model selector: %w", err)
	}

	name := config.Name
	if name == "" {
		name = defaultToolName
	}

	description := config.Description
	if description == "" {
		description = defaultToolDescription
	}

	parameters := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"input": map[string]any{
				"type":        "string",
				"description": "The task or question to hand to the assistant",
			},
		},
		"required": []string{"input"},
	}

	return tool.Define(name, description, parameters, func(ctx context.Context, args string) (string, error) {
		input := &opencode.ChatInput{
			Parts: opencode.TextParts(toolPrompt(args)),
			Model: model,
			Agent: config.Agent,
		}

		scope := opencode.SessionScope{
			Mode:  opencode.SessionModeTemporary,
			Title: config.SessionTitle,
		}
		if config.SessionID != "" {
			scope = opencode.SessionScope{
				Mode:      opencode.SessionModeExisting,
				SessionID: config.SessionID,
			}
		}

		var text string

		err := client.WithSession(ctx, scope, func(ctx context.Context, sessionID string) error {
			response, err := client.SendMessage(ctx, sessionID, input)
			if err != nil {
				return err
			}

			text = opencode.TextOf(response.Parts, true)

			return nil
		})

		return text, err
	}), nil
}

// toolPrompt accepts both calling conventions agents use: a JSON object with
// an "input" field, or the raw prompt text itself.
func toolPrompt(args string) string {
	trimmed := strings.TrimSpace(args)

	var payload struct {
		Input string `json:"input"`
	}

	if err := json.Unmarshal([]byte(trimmed), &payload); err == nil && payload.Input != "" {
		return payload.Input
	}

	return trimmed
}
