package cli

import (
	"github.com/spf13/cobra"

	opencodeintegration "github.com/flowbaker/flowbaker-opencode/pkg/integrations/opencode"
)

// NewCatalogCommands lists what the server has on offer: providers with their
// models, agent profiles, and slash commands.
func NewCatalogCommands(app *App) []*cobra.Command {
	providersCmd := &cobra.Command{
		Use:   "providers",
		Short: "List the configured model providers and their models",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runAction(cmd.Context(), opencodeintegration.OpenCodeActionType_ListProviders, nil)
		},
	}

	agentsCmd := &cobra.Command{
		Use:   "agents",
		Short: "List the agent profiles configured on the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runAction(cmd.Context(), opencodeintegration.OpenCodeActionType_ListAgents, nil)
		},
	}

	commandsCmd := &cobra.Command{
		Use:   "commands",
		Short: "List the slash commands configured on the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runAction(cmd.Context(), opencodeintegration.OpenCodeActionType_ListCommands, nil)
		},
	}

	return []*cobra.Command{providersCmd, agentsCmd, commandsCmd}
}
