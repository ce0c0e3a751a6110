package opencode

import (
	"context"
	"fmt"
)

// ListProviders lists the configured model providers and their models.
func (c *Client) ListProviders(ctx context.Context) ([]Provider, error) {
	resp, err := c.doRequest(ctx, "GET", "/config/providers", nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list providers: %w", err)
	}

	var result providersResponse
	if err := c.handleResponse(resp, &result); err != nil {
		return nil, fmt.Errorf("failed to process list providers response: %w", err)
	}

	return result.Providers, nil
}

// ListAgents lists the agent profiles configured on the server.
func (c *Client) ListAgents(ctx context.Context) ([]Agent, error) {
	resp, err := c.doRequest(ctx, "GET", "/agent", nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list agents: %w", err)
	}

	var agents []Agent
	if err := c.handleResponse(resp, &agents); err != nil {
		return nil, fmt.Errorf("failed to process list agents response: %w", err)
	}

	return agents, nil
}

// ListCommands lists the user-defined commands configured on the server.
func (c *Client) ListCommands(ctx context.Context) ([]Command, error) {
	resp, err := c.doRequest(ctx, "GET", "/command", nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list commands: %w", err)
	}

	var commands []Command
	if err := c.handleResponse(resp, &commands); err != nil {
		return nil, fmt.Errorf("failed to process list commands response: %w", err)
	}

	return commands, nil
}
