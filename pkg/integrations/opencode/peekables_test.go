package opencodeintegration

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowbaker/flowbaker-opencode/pkg/clients/opencode"
	"github.com/flowbaker/flowbaker-opencode/pkg/domain"
	"github.com/flowbaker/flowbaker-opencode/pkg/expressions"
)

func TestPeekSessions(t *testing.T) {
	server := newOpenCodeServer(t)

	integration := newTestIntegration(t, server)

	result, err := integration.Peek(context.Background(), domain.PeekParams{PeekableType: OpenCodePeekable_Sessions})
	require.NoError(t, err)
	require.Len(t, result.Result, 1)
	assert.Equal(t, "s1", result.Result[0].Value)
	assert.Equal(t, "First", result.Result[0].Content)
}

func TestPeekModels(t *testing.T) {
	server := newOpenCodeServer(t)

	integration := newTestIntegration(t, server)

	result, err := integration.Peek(context.Background(), domain.PeekParams{PeekableType: OpenCodePeekable_Models})
	require.NoError(t, err)
	require.Len(t, result.Result, 1)
	assert.Equal(t, "anthropic::claude-sonnet-4-5", result.Result[0].Value)
	assert.Equal(t, "Anthropic / Claude Sonnet 4.5", result.Result[0].Content)
}

func TestPeekAgents(t *testing.T) {
	server := newOpenCodeServer(t)

	integration := newTestIntegration(t, server)

	result, err := integration.Peek(context.Background(), domain.PeekParams{PeekableType: OpenCodePeekable_Agents})
	require.NoError(t, err)
	require.Len(t, result.Result, 2)
	assert.Equal(t, "build", result.Result[0].Value)
	assert.Equal(t, "build (primary)", result.Result[0].Content)
}

func TestPeekCommands(t *testing.T) {
	server := newOpenCodeServer(t)

	integration := newTestIntegration(t, server)

	result, err := integration.Peek(context.Background(), domain.PeekParams{PeekableType: OpenCodePeekable_Commands})
	require.NoError(t, err)
	require.Len(t, result.Result, 1)
	assert.Equal(t, "review", result.Result[0].Value)
	assert.Equal(t, "review - Review the current change", result.Result[0].Content)
}

func TestPeekSessions_LimitClampsRows(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /session", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]opencode.Session{
			{ID: "s1", Title: "First"},
			{ID: "s2", Title: "Second"},
			{ID: "s3", Title: "Third"},
		})
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	client := opencode.NewClient(opencode.WithBaseURL(server.URL))
	integration := NewOpenCodeIntegrationWithClient(client, OpenCodeIntegrationDependencies{
		ParameterBinder: expressions.NewBinder(expressions.DefaultBinderOptions()),
	})

	t.Run("limit truncates and flags more", func(t *testing.T) {
		result, err := integration.Peek(context.Background(), domain.PeekParams{
			PeekableType: OpenCodePeekable_Sessions,
			Pagination:   domain.PaginationParams{Limit: 2},
		})

		require.NoError(t, err)
		require.Len(t, result.Result, 2)
		assert.Equal(t, "s1", result.Result[0].Value)
		assert.Equal(t, "s2", result.Result[1].Value)
		assert.True(t, result.Pagination.HasMore)
	})

	t.Run("no limit returns all rows", func(t *testing.T) {
		result, err := integration.Peek(context.Background(), domain.PeekParams{
			PeekableType: OpenCodePeekable_Sessions,
		})

		require.NoError(t, err)
		assert.Len(t, result.Result, 3)
		assert.False(t, result.Pagination.HasMore)
	})
}

func TestPeek_ServerFailureReturnsSentinel(t *testing.T) {
	server := newOpenCodeServer(t)
	server.failPaths["GET /session"] = http.StatusInternalServerError
	server.failPaths["GET /config/providers"] = http.StatusInternalServerError

	integration := newTestIntegration(t, server)

	for _, peekable := range []domain.IntegrationPeekableType{
		OpenCodePeekable_Sessions,
		OpenCodePeekable_Models,
	} {
		result, err := integration.Peek(context.Background(), domain.PeekParams{PeekableType: peekable})

		require.NoError(t, err, "peek failures surface as sentinel rows, not errors")
		require.Len(t, result.Result, 1)
		assert.Equal(t, "none", result.Result[0].Key)
		assert.NotEmpty(t, result.Result[0].Content)
	}
}

func TestPeekSkills(t *testing.T) {
	server := newOpenCodeServer(t)

	t.Run("lists configured skills", func(t *testing.T) {
		root := t.TempDir()
		writeSkill(t, root, "code-review", `---
name: code-review
description: Reviews a diff
---

Review it.
`)

		integration := newTestIntegration(t, server, root)

		result, err := integration.Peek(context.Background(), domain.PeekParams{PeekableType: OpenCodePeekable_Skills})
		require.NoError(t, err)
		require.Len(t, result.Result, 1)
		assert.Equal(t, "code-review", result.Result[0].Value)
		assert.Equal(t, "code-review - Reviews a diff", result.Result[0].Content)
	})

	t.Run("sentinel when no skills exist", func(t *testing.T) {
		integration := newTestIntegration(t, server, t.TempDir())

		result, err := integration.Peek(context.Background(), domain.PeekParams{PeekableType: OpenCodePeekable_Skills})
		require.NoError(t, err)
		require.Len(t, result.Result, 1)
		assert.Equal(t, "none", result.Result[0].Key)
	})
}
