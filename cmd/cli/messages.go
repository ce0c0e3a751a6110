package cli

import (
	"github.com/spf13/cobra"

	opencodeintegration "github.com/flowbaker/flowbaker-opencode/pkg/integrations/opencode"
)

func NewMessagesCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "messages <session-id>",
		Short: "List the messages of a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")

			if messageID, _ := cmd.Flags().GetString("message"); messageID != "" {
				return app.runAction(cmd.Context(), opencodeintegration.OpenCodeActionType_GetMessage, map[string]any{
					"session_id": args[0],
					"message_id": messageID,
				})
			}

			return app.runAction(cmd.Context(), opencodeintegration.OpenCodeActionType_ListMessages, map[string]any{
				"session_id": args[0],
				"limit":      limit,
			})
		},
	}

	cmd.Flags().Int("limit", 0, "Maximum number of messages to return")
	cmd.Flags().String("message", "", "Show only this message")

	return cmd
}
