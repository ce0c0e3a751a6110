package cli

import (
	"strings"

	"github.com/spf13/cobra"

	opencodeintegration "github.com/flowbaker/flowbaker-opencode/pkg/integrations/opencode"
)

func NewCommandCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "command <name> [arguments...]",
		Short: "Run a server-side slash command",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := chatSettings(cmd)
			settings["command"] = args[0]

			if len(args) > 1 {
				settings["command_arguments"] = strings.Join(args[1:], " ")
			}

			return app.runAction(cmd.Context(), opencodeintegration.OpenCodeActionType_RunCommand, settings)
		},
	}

	addChatFlags(cmd, app)

	return cmd
}
