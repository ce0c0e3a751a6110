package cli

import (
	"github.com/spf13/cobra"

	opencodeintegration "github.com/flowbaker/flowbaker-opencode/pkg/integrations/opencode"
)

func NewSkillCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "skill",
		Short: "Run and list local skills",
	}

	runCmd := &cobra.Command{
		Use:   "run <name>",
		Short: "Run a skill, optionally with extra input",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := chatSettings(cmd)
			settings["skill"] = args[0]

			if input, _ := cmd.Flags().GetString("input"); input != "" {
				settings["input"] = input
			}

			return app.runAction(cmd.Context(), opencodeintegration.OpenCodeActionType_RunSkill, settings)
		},
	}
	addChatFlags(runCmd, app)
	runCmd.Flags().String("input", "", "Input text appended to the skill instructions")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the skills found in the configured skill directories",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.peek(cmd.Context(), opencodeintegration.OpenCodePeekable_Skills)
		},
	}

	cmd.AddCommand(runCmd, listCmd)

	return cmd
}
