package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/flowbaker/flowbaker-opencode/pkg/domain"
)

func NewTestConnectionCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "test-connection",
		Short: "Verify that the configured OpenCode server is reachable",
		RunE: func(cmd *cobra.Command, args []string) error {
			tester, err := app.Selector.SelectConnectionTester(cmd.Context(), domain.SelectIntegrationParams{
				IntegrationType: domain.IntegrationType_OpenCode,
			})
			if err != nil {
				return err
			}

			ok, err := tester.TestConnection(cmd.Context(), domain.TestConnectionParams{
				Credential: domain.Credential{
					IntegrationType: domain.IntegrationType_OpenCode,
					DecryptedPayload: map[string]any{
						"base_url": app.Config.BaseURL,
						"username": app.Config.Username,
						"password": app.Config.Password,
					},
				},
			})
			if err != nil {
				return err
			}

			if !ok {
				return fmt.Errorf("connection test failed")
			}

			fmt.Printf("Connected to %s\n", app.Config.BaseURL)

			return nil
		},
	}
}
