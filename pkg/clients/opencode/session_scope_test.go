package opencode

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sessionScopeServer struct {
	created []string
	deleted []string
}

func (s *sessionScopeServer) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == "POST" && r.URL.Path == "/session":
			var req CreateSessionRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

			s.created = append(s.created, req.Title)
			json.NewEncoder(w).Encode(Session{ID: "tmp1", Title: req.Title})
		case r.Method == "DELETE":
			s.deleted = append(s.deleted, r.URL.Path)
			w.Write([]byte("true"))
		default:
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
	}
}

func newScopeClient(t *testing.T, server *sessionScopeServer) *Client {
	t.Helper()

	ts := httptest.NewServer(server.handler(t))
	t.Cleanup(ts.Close)

	return NewClient(WithBaseURL(ts.URL))
}

func TestWithSession_ExistingMode(t *testing.T) {
	client := NewClient()

	var gotSessionID string

	err := client.WithSession(context.Background(), SessionScope{
		Mode:      SessionModeExisting,
		SessionID: "ses_1",
	}, func(ctx context.Context, sessionID string) error {
		gotSessionID = sessionID
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ses_1", gotSessionID)
}

func TestWithSession_ExistingModeRequiresID(t *testing.T) {
	client := NewClient()

	err := client.WithSession(context.Background(), SessionScope{Mode: SessionModeExisting}, func(ctx context.Context, sessionID string) error {
		t.Fatal("action must not run without a session id")
		return nil
	})

	assert.ErrorIs(t, err, ErrSessionRequired)
}

func TestWithSession_TemporaryDeletesOnSuccess(t *testing.T) {
	server := &sessionScopeServer{}
	client := newScopeClient(t, server)

	var gotSessionID string

	err := client.WithSession(context.Background(), SessionScope{Mode: SessionModeTemporary}, func(ctx context.Context, sessionID string) error {
		gotSessionID = sessionID
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, "tmp1", gotSessionID)
	assert.Equal(t, []string{DefaultTemporaryTitle}, server.created)
	assert.Equal(t, []string{"/session/tmp1"}, server.deleted)
}

func TestWithSession_TemporaryDeletesOnFailure(t *testing.T) {
	server := &sessionScopeServer{}
	client := newScopeClient(t, server)

	boom := errors.New("send failed")

	err := client.WithSession(context.Background(), SessionScope{
		Mode:  SessionModeTemporary,
		Title: "scratch",
	}, func(ctx context.Context, sessionID string) error {
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"scratch"}, server.created)
	assert.Equal(t, []string{"/session/tmp1"}, server.deleted)
}

func TestWithSession_DeleteFailureIsSwallowed(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case "POST":
			json.NewEncoder(w).Encode(Session{ID: "tmp1"})
		case "DELETE":
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	t.Cleanup(ts.Close)

	client := NewClient(WithBaseURL(ts.URL))

	err := client.WithSession(context.Background(), SessionScope{Mode: SessionModeTemporary}, func(ctx context.Context, sessionID string) error {
		return nil
	})

	assert.NoError(t, err)
}

func TestWithSession_CreateFailureSkipsAction(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(ts.Close)

	client := NewClient(WithBaseURL(ts.URL))

	ran := false

	err := client.WithSession(context.Background(), SessionScope{Mode: SessionModeTemporary}, func(ctx context.Context, sessionID string) error {
		ran = true
		return nil
	})

	require.Error(t, err)
	assert.True(t, IsRequestError(err))
	assert.False(t, ran)
}
