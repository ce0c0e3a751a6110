package cli

import (
	"github.com/spf13/cobra"

	opencodeintegration "github.com/flowbaker/flowbaker-opencode/pkg/integrations/opencode"
)

func NewShellCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shell <command>",
		Short: "Run a shell command through the assistant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := chatSettings(cmd)
			settings["command"] = args[0]

			return app.runAction(cmd.Context(), opencodeintegration.OpenCodeActionType_RunShell, settings)
		},
	}

	addChatFlags(cmd, app)

	return cmd
}
