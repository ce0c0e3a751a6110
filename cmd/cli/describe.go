package cli

import (
	"github.com/spf13/cobra"

	opencodeintegration "github.com/flowbaker/flowbaker-opencode/pkg/integrations/opencode"
)

// NewDescribeCommand prints the integration schema: credential properties,
// actions and their node properties, as JSON.
func NewDescribeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "describe",
		Short: "Print the integration schema as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printJSON(opencodeintegration.OpenCodeSchema)
		},
	}
}
