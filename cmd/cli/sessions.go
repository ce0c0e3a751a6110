package cli

import (
	"github.com/spf13/cobra"

	opencodeintegration "github.com/flowbaker/flowbaker-opencode/pkg/integrations/opencode"
)

func NewSessionsCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Manage sessions on the OpenCode server",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List all sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runAction(cmd.Context(), opencodeintegration.OpenCodeActionType_ListSessions, nil)
		},
	}

	getCmd := &cobra.Command{
		Use:   "get <session-id>",
		Short: "Show a single session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runAction(cmd.Context(), opencodeintegration.OpenCodeActionType_GetSession, map[string]any{
				"session_id": args[0],
			})
		},
	}

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new session",
		RunE: func(cmd *cobra.Command, args []string) error {
			title, _ := cmd.Flags().GetString("title")

			return app.runAction(cmd.Context(), opencodeintegration.OpenCodeActionType_CreateSession, map[string]any{
				"title": title,
			})
		},
	}
	createCmd.Flags().String("title", "", "Title of the new session")

	deleteCmd := &cobra.Command{
		Use:   "delete <session-id>",
		Short: "Delete a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runAction(cmd.Context(), opencodeintegration.OpenCodeActionType_DeleteSession, map[string]any{
				"session_id": args[0],
			})
		},
	}

	abortCmd := &cobra.Command{
		Use:   "abort <session-id>",
		Short: "Abort the in-flight run of a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runAction(cmd.Context(), opencodeintegration.OpenCodeActionType_AbortSession, map[string]any{
				"session_id": args[0],
			})
		},
	}

	cmd.AddCommand(listCmd, getCmd, createCmd, deleteCmd, abortCmd)

	return cmd
}
