package domain

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func inputWithItems(t *testing.T, actionType IntegrationActionType, items []any) IntegrationInput {
	t.Helper()

	payload, err := json.Marshal(items)
	require.NoError(t, err)

	return IntegrationInput{
		ActionType: actionType,
		PayloadByInputID: map[string]Payload{
			"input-0": payload,
		},
	}
}

func outputItems(t *testing.T, output IntegrationOutput) []map[string]any {
	t.Helper()

	require.Len(t, output.ResultJSONByOutputID, 1)

	var items []map[string]any
	require.NoError(t, json.Unmarshal(output.ResultJSONByOutputID[0], &items))

	return items
}

func TestIntegrationActionManager_RunPerItem(t *testing.T) {
	manager := NewIntegrationActionManager().
		AddPerItem("echo", func(ctx context.Context, params IntegrationInput, item Item) (Item, error) {
			return map[string]any{"echoed": item}, nil
		})

	input := inputWithItems(t, "echo", []any{
		map[string]any{"n": 1.0},
		map[string]any{"n": 2.0},
	})

	output, err := manager.Run(context.Background(), "echo", input)
	require.NoError(t, err)

	items := outputItems(t, output)
	assert.Len(t, items, 2)
}

func TestIntegrationActionManager_UnknownAction(t *testing.T) {
	manager := NewIntegrationActionManager()

	_, err := manager.Run(context.Background(), "nope", IntegrationInput{})
	assert.ErrorIs(t, err, ErrActionNotFound)
}

func TestIntegrationActionManager_ErrorAborts(t *testing.T) {
	boom := errors.New("boom")

	calls := 0

	manager := NewIntegrationActionManager().
		AddPerItem("fail_first", func(ctx context.Context, params IntegrationInput, item Item) (Item, error) {
			calls++
			if calls == 1 {
				return nil, boom
			}
			return map[string]any{"ok": true}, nil
		})

	input := inputWithItems(t, "fail_first", []any{
		map[string]any{"n": 1.0},
		map[string]any{"n": 2.0},
	})

	_, err := manager.Run(context.Background(), "fail_first", input)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
}

func TestIntegrationActionManager_ContinueOnFail(t *testing.T) {
	calls := 0

	manager := NewIntegrationActionManager().
		AddPerItem("fail_first", func(ctx context.Context, params IntegrationInput, item Item) (Item, error) {
			calls++
			if calls == 1 {
				return nil, errors.New("boom")
			}
			return map[string]any{"ok": true}, nil
		})

	input := inputWithItems(t, "fail_first", []any{
		map[string]any{"n": 1.0},
		map[string]any{"n": 2.0},
	})
	input.ContinueOnFail = true

	output, err := manager.Run(context.Background(), "fail_first", input)
	require.NoError(t, err)

	items := outputItems(t, output)
	require.Len(t, items, 2)
	assert.Equal(t, "boom", items[0]["error"])
	assert.Equal(t, true, items[1]["ok"])
	assert.Equal(t, 2, calls)
}

func TestIntegrationActionManager_SkipsEmptyItems(t *testing.T) {
	manager := NewIntegrationActionManager().
		AddPerItemMulti("expand", func(ctx context.Context, params IntegrationInput, item Item) ([]Item, error) {
			return []Item{
				nil,
				map[string]any{},
				map[string]any{"kept": true},
			}, nil
		})

	input := inputWithItems(t, "expand", []any{map[string]any{"n": 1.0}})

	output, err := manager.Run(context.Background(), "expand", input)
	require.NoError(t, err)

	items := outputItems(t, output)
	require.Len(t, items, 1)
	assert.Equal(t, true, items[0]["kept"])
}
