package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/syssam/blueprint/schema"
)

// NewDialectsCommand creates the dialects command.
func NewDialectsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dialects",
		Short: "List the supported SQL dialects",
		Run: func(cmd *cobra.Command, _ []string) {
			for _, name := range schema.Dialects() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
		},
	}
}
