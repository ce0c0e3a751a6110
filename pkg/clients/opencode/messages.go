package opencode

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// SendMessage sends a message to a session and waits for the assistant reply.
func (c *Client) SendMessage(ctx context.Context, sessionID string, req *ChatInput) (*ChatResponse, error) {
	if sessionID == "" {
		return nil, ErrSessionRequired
	}

	path := fmt.Sprintf("/session/%s/message", url.PathEscape(sessionID))

	resp, err := c.doRequest(ctx, "POST", path, nil, req)
	if err != nil {
		return nil, fmt.Errorf("failed to send message: %w", err)
	}

	var chatResponse ChatResponse
	if err := c.handleResponse(resp, &chatResponse); err != nil {
		return nil, fmt.Errorf("failed to process send message response: %w", err)
	}

	return &chatResponse, nil
}

// SendMessageAsync enqueues a message without waiting for the reply. The
// response body is ignored (fire-and-forget).
func (c *Client) SendMessageAsync(ctx context.Context, sessionID string, req *ChatInput) error {
	if sessionID == "" {
		return ErrSessionRequired
	}

	path := fmt.Sprintf("/session/%s/prompt_async", url.PathEscape(sessionID))

	resp, err := c.doRequest(ctx, "POST", path, nil, req)
	if err != nil {
		return fmt.Errorf("failed to send async message: %w", err)
	}

	if err := c.handleResponse(resp, nil); err != nil {
		return fmt.Errorf("failed to process send async message response: %w", err)
	}

	return nil
}

// RunCommand executes a server-side command in a session.
func (c *Client) RunCommand(ctx context.Context, sessionID string, req *CommandInput) (*ChatResponse, error) {
	if sessionID == "" {
		return nil, ErrSessionRequired
	}

	path := fmt.Sprintf("/session/%s/command", url.PathEscape(sessionID))

	resp, err := c.doRequest(ctx, "POST", path, nil, req)
	if err != nil {
		return nil, fmt.Errorf("failed to run command: %w", err)
	}

	var chatResponse ChatResponse
	if err := c.handleResponse(resp, &chatResponse); err != nil {
		return nil, fmt.Errorf("failed to process run command response: %w", err)
	}

	return &chatResponse, nil
}

// RunShell executes a shell command in a session.
func (c *Client) RunShell(ctx context.Context, sessionID string, req *ShellInput) (*ChatResponse, error) {
	if sessionID == "" {
		return nil, ErrSessionRequired
	}

	path := fmt.Sprintf("/session/%s/shell", url.PathEscape(sessionID))

	resp, err := c.doRequest(ctx, "POST", path, nil, req)
	if err != nil {
		return nil, fmt.Errorf("failed to run shell command: %w", err)
	}

	var chatResponse ChatResponse
	if err := c.handleResponse(resp, &chatResponse); err != nil {
		return nil, fmt.Errorf("failed to process run shell response: %w", err)
	}

	return &chatResponse, nil
}

// ListMessages lists messages of a session, newest last. A limit of 0 lists
// the server default.
func (c *Client) ListMessages(ctx context.Context, sessionID string, limit int) ([]Message, error) {
	if sessionID == "" {
		return nil, ErrSessionRequired
	}

	path := fmt.Sprintf("/session/%s/message", url.PathEscape(sessionID))

	var query url.Values
	if limit > 0 {
		query = url.Values{"limit": []string{strconv.Itoa(limit)}}
	}

	resp, err := c.doRequest(ctx, "GET", path, query, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	var messages []Message
	if err := c.handleResponse(resp, &messages); err != nil {
		return nil, fmt.Errorf("failed to process list messages response: %w", err)
	}

	return messages, nil
}

// GetMessage fetches a single message of a session.
func (c *Client) GetMessage(ctx context.Context, sessionID, messageID string) (*Message, error) {
	if sessionID == "" {
		return nil, ErrSessionRequired
	}

	path := fmt.Sprintf("/session/%s/message/%s", url.PathEscape(sessionID), url.PathEscape(messageID))

	resp, err := c.doRequest(ctx, "GET", path, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get message: %w", err)
	}

	var message Message
	if err := c.handleResponse(resp, &message); err != nil {
		return nil, fmt.Errorf("failed to process get message response: %w", err)
	}

	return &message, nil
}
