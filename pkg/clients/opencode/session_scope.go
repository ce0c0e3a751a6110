package opencode

import (
	"context"
	"fmt"
	"time"
)

// SessionMode selects whether an action runs against an existing session or
// an ephemeral one created and deleted around the call.
type SessionMode string

const (
	SessionModeExisting  SessionMode = "existing"
	SessionModeTemporary SessionMode = "temporary"
)

// DefaultTemporaryTitle names temporary sessions when no title is given.
const DefaultTemporaryTitle = "Temporary Session"

// SessionScope describes how to resolve the session an action runs in.
type SessionScope struct {
	Mode SessionMode

	// SessionID is required in existing mode.
	SessionID string

	// Title names the temporary session; DefaultTemporaryTitle when empty.
	Title string
}

// SessionFunc runs against the resolved session id.
type SessionFunc func(ctx context.Context, sessionID string) error

// WithSession runs fn against the session described by scope.
//
// In existing mode the session must already be known; nothing is created or
// deleted. In temporary mode a session is created first and deleted after fn
// returns, whether fn succeeded or not. Exactly one delete attempt is made
// per created session; a delete failure is logged and swallowed so it never
// masks fn's own outcome. Orphaned sessions are possible if that attempt
// fails.
func (c *Client) WithSession(ctx context.Context, scope SessionScope, fn SessionFunc) error {
	switch scope.Mode {
	case SessionModeExisting, "":
		if scope.SessionID == "" {
			return ErrSessionRequired
		}

		return fn(ctx, scope.SessionID)

	case SessionModeTemporary:
		title := scope.Title
		if title == "" {
			title = DefaultTemporaryTitle
		}

		session, err := c.CreateSession(ctx, &CreateSessionRequest{Title: title})
		if err != nil {
			return fmt.Errorf("failed to create temporary session: %w", err)
		}

		defer func() {
			// Clean up even when ctx is already canceled or expired.
			cleanupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 15*time.Second)
			defer cancel()

			if err := c.DeleteSession(cleanupCtx, session.ID); err != nil {
				c.config.Logger.Warn().
					Err(err).
					Str("session_id", session.ID).
					Msg("failed to delete temporary session")
			}
		}()

		return fn(ctx, session.ID)

	default:
		return fmt.Errorf("unknown session mode: %s", scope.Mode)
	}
}
