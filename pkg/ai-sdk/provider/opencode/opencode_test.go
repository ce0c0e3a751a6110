package opencode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowbaker/flowbaker-opencode/pkg/ai-sdk/provider"
	"github.com/flowbaker/flowbaker-opencode/pkg/ai-sdk/tool"
	"github.com/flowbaker/flowbaker-opencode/pkg/ai-sdk/types"
	opencodeclient "github.com/flowbaker/flowbaker-opencode/pkg/clients/opencode"
)

type fakeServer struct {
	*httptest.Server

	lastChatInput opencodeclient.ChatInput
	messaged      []string
	deleted       []string
	replyText     string
	replyDelay    time.Duration
}

func newFakeServer(t *testing.T) *fakeServer {
	t.Helper()

	fs := &fakeServer{replyText: "hello"}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /session", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(opencodeclient.Session{ID: "tmp1", Title: "Temporary Session"})
	})
	mux.HandleFunc("DELETE /session/{id}", func(w http.ResponseWriter, r *http.Request) {
		fs.deleted = append(fs.deleted, r.PathValue("id"))
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("POST /session/{id}/message", func(w http.ResponseWriter, r *http.Request) {
		fs.messaged = append(fs.messaged, r.PathValue("id"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&fs.lastChatInput))

		if fs.replyDelay > 0 {
			time.Sleep(fs.replyDelay)
		}

		json.NewEncoder(w).Encode(opencodeclient.ChatResponse{
			Info: opencodeclient.MessageInfo{
				ID:        "msg1",
				SessionID: r.PathValue("id"),
				Role:      "assistant",
				ModelID:   "claude-sonnet-4-5",
				Tokens:    &opencodeclient.TokenUsage{Input: 12, Output: 3},
			},
			Parts: []opencodeclient.Part{{Type: "text", Text: fs.replyText}},
		})
	})

	fs.Server = httptest.NewServer(mux)
	t.Cleanup(fs.Close)

	return fs
}

func (fs *fakeServer) client() *opencodeclient.Client {
	return opencodeclient.NewClient(opencodeclient.WithBaseURL(fs.URL))
}

func TestProvider_Generate(t *testing.T) {
	server := newFakeServer(t)
	server.replyText = "4"

	p := New(server.client(), "anthropic", "claude-sonnet-4-5")

	resp, err := p.Generate(context.Background(), provider.GenerateRequest{
		System: "Answer tersely.",
		Messages: []types.Message{
			{Role: types.RoleUser, Content: "What is 2+2?"},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "4", resp.Content)
	assert.Empty(t, resp.ToolCalls)
	assert.Equal(t, types.FinishReasonStop, resp.FinishReason)
	assert.Equal(t, "claude-sonnet-4-5", resp.Model)
	assert.Equal(t, types.Usage{PromptTokens: 12, CompletionTokens: 3, TotalTokens: 15}, resp.Usage)

	require.Len(t, server.lastChatInput.Parts, 1)
	assert.Equal(t, "user: What is 2+2?", server.lastChatInput.Parts[0].Text)
	assert.Equal(t, "Answer tersely.", server.lastChatInput.System)
	require.NotNil(t, server.lastChatInput.Model)
	assert.Equal(t, "anthropic", server.lastChatInput.Model.ProviderID)

	// The ephemeral session is torn down after the generation.
	assert.Equal(t, []string{"tmp1"}, server.deleted)
}

func TestProvider_Generate_FlattensConversation(t *testing.T) {
	server := newFakeServer(t)

	p := New(server.client(), "anthropic", "claude-sonnet-4-5")

	_, err := p.Generate(context.Background(), provider.GenerateRequest{
		Messages: []types.Message{
			{Role: types.RoleUser, Content: "hi"},
			{Role: types.RoleAssistant, Content: "hello"},
			{Role: types.RoleUser, Content: "bye"},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "user: hi\n\nassistant: hello\n\nuser: bye", server.lastChatInput.Parts[0].Text)
}

func TestProvider_Generate_ToolConvention(t *testing.T) {
	server := newFakeServer(t)
	server.replyText = `{"tool": "calculator", "args": {"expression": "2+2"}}`

	p := New(server.client(), "anthropic", "claude-sonnet-4-5")

	calculator := tool.Define(
		"calculator",
		"Evaluates arithmetic expressions",
		map[string]any{"type": "object"},
		func(ctx context.Context, args string) (string, error) { return "4", nil },
	)

	resp, err := p.Generate(context.Background(), provider.GenerateRequest{
		Messages: []types.Message{{Role: types.RoleUser, Content: "compute 2+2"}},
		Tools:    []types.Tool{tool.ToTypesTool(calculator)},
	})

	require.NoError(t, err)
	require.Len(t, resp.ToolCalls, 1)
	assert.Equal(t, "calculator", resp.ToolCalls[0].Name)
	assert.Equal(t, map[string]any{"expression": "2+2"}, resp.ToolCalls[0].Arguments)
	assert.Equal(t, types.FinishReasonToolCalls, resp.FinishReason)

	assert.Contains(t, server.lastChatInput.System, "calculator")
	assert.Contains(t, server.lastChatInput.System, `{"tool": "name", "args": {...}}`)
}

func TestProvider_Generate_PinnedSession(t *testing.T) {
	server := newFakeServer(t)

	p := NewWithConfig(server.client(), Config{
		ProviderID: "anthropic",
		ModelID:    "claude-sonnet-4-5",
		SessionID:  "pinned",
	})

	resp, err := p.Generate(context.Background(), provider.GenerateRequest{
		Messages: []types.Message{{Role: types.RoleUser, Content: "hi"}},
	})

	require.NoError(t, err)
	assert.Equal(t, "hello", resp.Content)
	assert.Equal(t, []string{"pinned"}, server.messaged)
	assert.Empty(t, server.deleted, "pinned sessions must not be deleted")
}

func TestProvider_Generate_Timeout(t *testing.T) {
	server := newFakeServer(t)
	server.replyDelay = 500 * time.Millisecond

	p := NewWithConfig(server.client(), Config{
		ProviderID: "anthropic",
		ModelID:    "claude-sonnet-4-5",
		Timeout:    50 * time.Millisecond,
	})

	_, err := p.Generate(context.Background(), provider.GenerateRequest{
		Messages: []types.Message{{Role: types.RoleUser, Content: "slow"}},
	})

	require.ErrorIs(t, err, opencodeclient.ErrRequestTimeout)
}

func TestProvider_Generate_NoMessages(t *testing.T) {
	server := newFakeServer(t)

	p := New(server.client(), "anthropic", "claude-sonnet-4-5")

	_, err := p.Generate(context.Background(), provider.GenerateRequest{})

	require.ErrorIs(t, err, types.ErrInvalidMessage)
}

func TestProvider_ID(t *testing.T) {
	p := New(nil, "anthropic", "claude-sonnet-4-5")

	assert.Equal(t, fmt.Sprintf("opencode:%s/%s", "anthropic", "claude-sonnet-4-5"), p.ID())
	assert.False(t, p.Capabilities().SupportsTools)
	assert.False(t, p.Capabilities().SupportsStreaming)
}
