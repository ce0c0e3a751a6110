package opencodeintegration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowbaker/flowbaker-opencode/pkg/domain"
)

func TestConnectionTester(t *testing.T) {
	server := newOpenCodeServer(t)

	tester := NewOpenCodeConnectionTester(domain.IntegrationDeps{})

	t.Run("reachable server", func(t *testing.T) {
		ok, err := tester.TestConnection(context.Background(), domain.TestConnectionParams{
			Credential: domain.Credential{
				DecryptedPayload: map[string]any{"base_url": server.URL},
			},
		})

		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("missing base url", func(t *testing.T) {
		ok, err := tester.TestConnection(context.Background(), domain.TestConnectionParams{
			Credential: domain.Credential{DecryptedPayload: map[string]any{}},
		})

		require.Error(t, err)
		assert.False(t, ok)
	})

	t.Run("unreachable server", func(t *testing.T) {
		ok, err := tester.TestConnection(context.Background(), domain.TestConnectionParams{
			Credential: domain.Credential{
				DecryptedPayload: map[string]any{"base_url": "http://127.0.0.1:1"},
			},
		})

		require.Error(t, err)
		assert.False(t, ok)
	})
}
