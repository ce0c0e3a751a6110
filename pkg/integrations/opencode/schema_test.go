package opencodeintegration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowbaker/flowbaker-opencode/pkg/clients/opencode"
	"github.com/flowbaker/flowbaker-opencode/pkg/domain"
	"github.com/flowbaker/flowbaker-opencode/pkg/expressions"
)

// TestSchemaMatchesDispatch makes sure the published schema and the runtime
// dispatch tables cannot drift apart: every advertised action has a registered
// handler, every registered handler is advertised, and every peekable property
// points at a registered peek func.
func TestSchemaMatchesDispatch(t *testing.T) {
	client := opencode.NewClient()
	integration := NewOpenCodeIntegrationWithClient(client, OpenCodeIntegrationDependencies{
		ParameterBinder: expressions.NewBinder(expressions.DefaultBinderOptions()),
	})

	assert.Equal(t, domain.IntegrationType_OpenCode, OpenCodeSchema.ID)
	assert.True(t, OpenCodeSchema.CanTestConnection)

	registered := func(actionType domain.IntegrationActionType) bool {
		if _, ok := integration.actionManager.Get(actionType); ok {
			return true
		}
		if _, ok := integration.actionManager.GetPerItem(actionType); ok {
			return true
		}
		_, ok := integration.actionManager.GetPerItemMulti(actionType)
		return ok
	}

	seen := make(map[domain.IntegrationActionType]bool)

	for _, action := range OpenCodeSchema.Actions {
		require.NotEmpty(t, action.ID)
		require.NotEmpty(t, action.ActionType)
		assert.False(t, seen[action.ActionType], "duplicate action type %s", action.ActionType)
		seen[action.ActionType] = true

		assert.True(t, registered(action.ActionType), "action %s has no handler", action.ActionType)

		for _, property := range action.Properties {
			if !property.Peekable {
				continue
			}

			require.NotEmpty(t, property.PeekableType, "peekable property %s of %s has no type", property.Key, action.ID)
			_, ok := integration.peekFuncs[property.PeekableType]
			assert.True(t, ok, "peekable type %s of %s has no peek func", property.PeekableType, action.ID)
		}
	}

	allActionTypes := []domain.IntegrationActionType{
		OpenCodeActionType_ListSessions,
		OpenCodeActionType_GetSession,
		OpenCodeActionType_CreateSession,
		OpenCodeActionType_DeleteSession,
		OpenCodeActionType_AbortSession,
		OpenCodeActionType_SendMessage,
		OpenCodeActionType_SendMessageAsync,
		OpenCodeActionType_RunCommand,
		OpenCodeActionType_RunShell,
		OpenCodeActionType_RunSkill,
		OpenCodeActionType_ListMessages,
		OpenCodeActionType_GetMessage,
		OpenCodeActionType_ListProviders,
		OpenCodeActionType_ListAgents,
		OpenCodeActionType_ListCommands,
	}

	for _, actionType := range allActionTypes {
		assert.True(t, seen[actionType], "registered action %s missing from schema", actionType)
	}

	for peekableType := range integration.peekFuncs {
		found := false
		for _, action := range OpenCodeSchema.Actions {
			for _, property := range action.Properties {
				if property.Peekable && property.PeekableType == peekableType {
					found = true
				}
			}
		}

		assert.True(t, found, "peekable type %s not referenced by any schema property", peekableType)
	}
}
