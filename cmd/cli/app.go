package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/flowbaker/flowbaker-opencode/pkg/domain"
	"github.com/flowbaker/flowbaker-opencode/pkg/expressions"
	opencodeintegration "github.com/flowbaker/flowbaker-opencode/pkg/integrations/opencode"
)

const defaultCredentialID = "default"

// App wires the integration stack for CLI use: a static credential built from
// the config, the expression binder, and the registered OpenCode integration.
type App struct {
	Config   *Config
	Selector domain.IntegrationSelector
	Executor domain.IntegrationExecutor
	Peeker   domain.IntegrationPeeker
}

func NewApp(ctx context.Context) (*App, error) {
	config, err := LoadConfig()
	if err != nil {
		return nil, err
	}

	credentialManager := domain.NewStaticCredentialManager()
	credentialManager.SetCredential(defaultCredentialID, map[string]any{
		"base_url": config.BaseURL,
		"username": config.Username,
		"password": config.Password,
	})

	deps := domain.IntegrationDeps{
		ParameterBinder:   expressions.NewBinder(expressions.DefaultBinderOptions()),
		CredentialManager: credentialManager,
		SkillDirectories:  config.SkillDirectories,
	}

	creator := opencodeintegration.NewOpenCodeIntegrationCreator(deps)

	executor, err := creator.CreateIntegration(ctx, domain.CreateIntegrationParams{
		CredentialID: defaultCredentialID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenCode integration: %w", err)
	}

	selector := domain.NewIntegrationSelector()
	selector.RegisterCreator(domain.IntegrationType_OpenCode, creator)
	selector.RegisterIntegration(domain.IntegrationType_OpenCode, executor)
	selector.RegisterConnectionTester(domain.IntegrationType_OpenCode, opencodeintegration.NewOpenCodeConnectionTester(deps))

	peeker, _ := executor.(domain.IntegrationPeeker)

	return &App{
		Config:   config,
		Selector: selector,
		Executor: executor,
		Peeker:   peeker,
	}, nil
}

// runAction executes one integration action over a single empty item and
// prints the result items as JSON.
func (a *App) runAction(ctx context.Context, actionType domain.IntegrationActionType, settings map[string]any) error {
	output, err := a.Executor.Execute(ctx, domain.IntegrationInput{
		ActionType:        actionType,
		PayloadByInputID:  map[string]domain.Payload{"input-0": domain.Payload(`[{}]`)},
		IntegrationParams: domain.IntegrationParams{Settings: settings},
	})
	if err != nil {
		return err
	}

	if len(output.ResultJSONByOutputID) == 0 {
		return nil
	}

	var items []map[string]any
	if err := json.Unmarshal(output.ResultJSONByOutputID[0], &items); err != nil {
		return fmt.Errorf("failed to decode action output: %w", err)
	}

	return printJSON(items)
}

func (a *App) peek(ctx context.Context, peekableType domain.IntegrationPeekableType) error {
	if a.Peeker == nil {
		return fmt.Errorf("integration does not support peeking")
	}

	result, err := a.Peeker.Peek(ctx, domain.PeekParams{PeekableType: peekableType})
	if err != nil {
		return err
	}

	return printJSON(result.Result)
}

func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	return encoder.Encode(v)
}
