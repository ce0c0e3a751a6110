package cli

import (
	"github.com/spf13/cobra"

	opencodeintegration "github.com/flowbaker/flowbaker-opencode/pkg/integrations/opencode"
)

// addChatFlags registers the flags shared by every command that talks to the
// assistant inside a session.
func addChatFlags(cmd *cobra.Command, app *App) {
	cmd.Flags().String("session", "", "Run in this existing session instead of a temporary one")
	cmd.Flags().String("model", app.Config.DefaultModel, "Model selector (providerID::modelID)")
	cmd.Flags().String("agent", app.Config.DefaultAgent, "Agent profile to use")
	cmd.Flags().Bool("full", false, "Print the full response record instead of just the reply text")
	cmd.Flags().Bool("no-trim", false, "Keep surrounding whitespace in the reply text")
}

// chatSettings translates the shared flags into action settings. Temporary
// sessions are the default; naming a session switches to existing mode.
func chatSettings(cmd *cobra.Command) map[string]any {
	sessionID, _ := cmd.Flags().GetString("session")
	model, _ := cmd.Flags().GetString("model")
	agent, _ := cmd.Flags().GetString("agent")
	full, _ := cmd.Flags().GetBool("full")
	noTrim, _ := cmd.Flags().GetBool("no-trim")

	settings := map[string]any{
		"session_mode":    "temporary",
		"model":           model,
		"agent":           agent,
		"simple_response": !full,
		"trim_response":   !noTrim,
	}

	if sessionID != "" {
		settings["session_mode"] = "existing"
		settings["session_id"] = sessionID
	}

	return settings
}

func NewSendCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "send <prompt>",
		Short: "Send a prompt to the assistant and print its reply",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := chatSettings(cmd)
			settings["prompt"] = args[0]

			if system, _ := cmd.Flags().GetString("system"); system != "" {
				settings["system_prompt"] = system
			}

			actionType := opencodeintegration.OpenCodeActionType_SendMessage

			if async, _ := cmd.Flags().GetBool("async"); async {
				actionType = opencodeintegration.OpenCodeActionType_SendMessageAsync
				delete(settings, "simple_response")
				delete(settings, "trim_response")
			}

			return app.runAction(cmd.Context(), actionType, settings)
		},
	}

	addChatFlags(cmd, app)
	cmd.Flags().String("system", "", "System prompt overriding the agent default")
	cmd.Flags().Bool("async", false, "Queue the prompt without waiting for the reply")

	return cmd
}
