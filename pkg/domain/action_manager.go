package domain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
)

var ErrActionNotFound = errors.New("action not found")

type ActionFunc func(ctx context.Context, params IntegrationInput) (IntegrationOutput, error)
type ActionFuncPerItem func(ctx context.Context, params IntegrationInput, item Item) (Item, error)
type ActionFuncPerItemMulti func(ctx context.Context, params IntegrationInput, item Item) ([]Item, error)
type PeekFunc func(ctx context.Context, params PeekParams) (PeekResult, error)

type IntegrationActionManager struct {
	mtx                     sync.RWMutex
	actionFuncs             map[IntegrationActionType]ActionFunc
	actionFuncsPerItem      map[IntegrationActionType]ActionFuncPerItem
	actionFuncsPerItemMulti map[IntegrationActionType]ActionFuncPerItemMulti
}

func NewIntegrationActionManager() *IntegrationActionManager {
	return &IntegrationActionManager{
		actionFuncs:             make(map[IntegrationActionType]ActionFunc),
		actionFuncsPerItem:      make(map[IntegrationActionType]ActionFuncPerItem),
		actionFuncsPerItemMulti: make(map[IntegrationActionType]ActionFuncPerItemMulti),
	}
}

func (m *IntegrationActionManager) Add(actionType IntegrationActionType, actionFunc ActionFunc) *IntegrationActionManager {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	m.actionFuncs[actionType] = actionFunc

	return m
}

func (m *IntegrationActionManager) Get(actionType IntegrationActionType) (ActionFunc, bool) {
	m.mtx.RLock()
	defer m.mtx.RUnlock()

	actionFunc, ok := m.actionFuncs[actionType]
	return actionFunc, ok
}

func (m *IntegrationActionManager) AddPerItem(actionType IntegrationActionType, actionFunc ActionFuncPerItem) *IntegrationActionManager {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	m.actionFuncsPerItem[actionType] = actionFunc

	return m
}

func (m *IntegrationActionManager) GetPerItem(actionType IntegrationActionType) (ActionFuncPerItem, bool) {
	m.mtx.RLock()
	defer m.mtx.RUnlock()

	actionFunc, ok := m.actionFuncsPerItem[actionType]
	return actionFunc, ok
}

func (m *IntegrationActionManager) AddPerItemMulti(actionType IntegrationActionType, actionFunc ActionFuncPerItemMulti) *IntegrationActionManager {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	m.actionFuncsPerItemMulti[actionType] = actionFunc

	return m
}

func (m *IntegrationActionManager) GetPerItemMulti(actionType IntegrationActionType) (ActionFuncPerItemMulti, bool) {
	m.mtx.RLock()
	defer m.mtx.RUnlock()

	actionFunc, ok := m.actionFuncsPerItemMulti[actionType]
	return actionFunc, ok
}

func (m *IntegrationActionManager) Run(ctx context.Context, actionType IntegrationActionType, params IntegrationInput) (IntegrationOutput, error) {
	if _, ok := m.GetPerItem(actionType); ok {
		return m.RunPerItem(ctx, actionType, params)
	}

	if _, ok := m.GetPerItemMulti(actionType); ok {
		return m.RunPerItemMulti(ctx, actionType, params)
	}

	actionFunc, ok := m.Get(actionType)
	if !ok {
		return IntegrationOutput{}, fmt.Errorf("%w: %s", ErrActionNotFound, actionType)
	}

	return actionFunc(ctx, params)
}

func (m *IntegrationActionManager) RunPerItem(ctx context.Context, actionType IntegrationActionType, params IntegrationInput) (IntegrationOutput, error) {
	actionFuncPerItem, ok := m.GetPerItem(actionType)
	if !ok {
		return IntegrationOutput{}, fmt.Errorf("%w: %s", ErrActionNotFound, actionType)
	}

	allItems, err := params.GetAllItems()
	if err != nil {
		return IntegrationOutput{}, err
	}

	outputs := make([]Item, 0)

	for _, item := range allItems {
		output, err := actionFuncPerItem(ctx, params, item)
		if err != nil {
			if params.ContinueOnFail {
				log.Warn().Err(err).Str("action_type", string(actionType)).Msg("item failed, continuing")

				outputs = append(outputs, map[string]any{"error": err.Error()})
				continue
			}

			return IntegrationOutput{}, err
		}

		if isEmptyItem(output) {
			continue
		}

		outputs = append(outputs, output)
	}

	return marshalOutputs(outputs)
}

func (m *IntegrationActionManager) RunPerItemMulti(ctx context.Context, actionType IntegrationActionType, params IntegrationInput) (IntegrationOutput, error) {
	actionFuncPerItemMulti, ok := m.GetPerItemMulti(actionType)
	if !ok {
		return IntegrationOutput{}, fmt.Errorf("%w: %s", ErrActionNotFound, actionType)
	}

	allItems, err := params.GetAllItems()
	if err != nil {
		return IntegrationOutput{}, err
	}

	outputs := make([]Item, 0)

	for _, item := range allItems {
		outputItems, err := actionFuncPerItemMulti(ctx, params, item)
		if err != nil {
			if params.ContinueOnFail {
				log.Warn().Err(err).Str("action_type", string(actionType)).Msg("item failed, continuing")

				outputs = append(outputs, map[string]any{"error": err.Error()})
				continue
			}

			return IntegrationOutput{}, err
		}

		for _, outputItem := range outputItems {
			if isEmptyItem(outputItem) {
				continue
			}

			outputs = append(outputs, outputItem)
		}
	}

	return marshalOutputs(outputs)
}

func isEmptyItem(item Item) bool {
	if item == nil {
		return true
	}

	if array, isArray := item.([]any); isArray {
		return len(array) == 0
	}

	if object, isObject := item.(map[string]any); isObject {
		return len(object) == 0
	}

	return false
}

func marshalOutputs(outputs []Item) (IntegrationOutput, error) {
	resultJSON, err := json.Marshal(outputs)
	if err != nil {
		return IntegrationOutput{}, err
	}

	return IntegrationOutput{
		ResultJSONByOutputID: []Payload{
			resultJSON,
		},
	}, nil
}
