package opencode

import (
	"context"
	"fmt"
	"net/url"
)

// ListSessions lists all sessions on the server.
func (c *Client) ListSessions(ctx context.Context) ([]Session, error) {
	resp, err := c.doRequest(ctx, "GET", "/session", nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	var sessions []Session
	if err := c.handleResponse(resp, &sessions); err != nil {
		return nil, fmt.Errorf("failed to process list sessions response: %w", err)
	}

	return sessions, nil
}

// GetSession fetches a single session by id.
func (c *Client) GetSession(ctx context.Context, sessionID string) (*Session, error) {
	if sessionID == "" {
		return nil, ErrSessionRequired
	}

	path := fmt.Sprintf("/session/%s", url.PathEscape(sessionID))

	resp, err := c.doRequest(ctx, "GET", path, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var session Session
	if err := c.handleResponse(resp, &session); err != nil {
		return nil, fmt.Errorf("failed to process get session response: %w", err)
	}

	return &session, nil
}

// CreateSession creates a new session.
func (c *Client) CreateSession(ctx context.Context, req *CreateSessionRequest) (*Session, error) {
	resp, err := c.doRequest(ctx, "POST", "/session", nil, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	var session Session
	if err := c.handleResponse(resp, &session); err != nil {
		return nil, fmt.Errorf("failed to process create session response: %w", err)
	}

	return &session, nil
}

// DeleteSession deletes a session by id. The response body is ignored.
func (c *Client) DeleteSession(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return ErrSessionRequired
	}

	path := fmt.Sprintf("/session/%s", url.PathEscape(sessionID))

	resp, err := c.doRequest(ctx, "DELETE", path, nil, nil)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	if err := c.handleResponse(resp, nil); err != nil {
		return fmt.Errorf("failed to process delete session response: %w", err)
	}

	return nil
}

// AbortSession aborts the session's in-flight work. Servers may reply with an
// empty body, in which case a success record is synthesized.
func (c *Client) AbortSession(ctx context.Context, sessionID string) (map[string]any, error) {
	if sessionID == "" {
		return nil, ErrSessionRequired
	}

	path := fmt.Sprintf("/session/%s/abort", url.PathEscape(sessionID))

	resp, err := c.doRequest(ctx, "POST", path, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to abort session: %w", err)
	}

	var body any
	if err := c.handleResponse(resp, &body); err != nil {
		return nil, fmt.Errorf("failed to process abort session response: %w", err)
	}

	// Some server versions reply with a bare boolean or nothing at all.
	if record, ok := body.(map[string]any); ok && len(record) > 0 {
		return record, nil
	}

	return map[string]any{"aborted": true, "sessionID": sessionID}, nil
}
