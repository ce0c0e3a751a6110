package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "opencode-plugin",
		Short: "OpenCode integration CLI",
		Long: `Run OpenCode integration actions against an OpenCode server: send prompts,
run commands and shell tasks in sessions, and inspect the server's catalog of
providers, agents, commands and local skills.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			zerolog.SetGlobalLevel(zerolog.InfoLevel)

			if debug, _ := cmd.Flags().GetBool("debug"); debug {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
		},
	}

	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")

	app, err := NewApp(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}

	rootCmd.AddCommand(NewSessionsCommand(app))
	rootCmd.AddCommand(NewSendCommand(app))
	rootCmd.AddCommand(NewShellCommand(app))
	rootCmd.AddCommand(NewCommandCommand(app))
	rootCmd.AddCommand(NewSkillCommand(app))
	rootCmd.AddCommand(NewMessagesCommand(app))
	rootCmd.AddCommand(NewCatalogCommands(app)...)
	rootCmd.AddCommand(NewTestConnectionCommand(app))
	rootCmd.AddCommand(NewDescribeCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
