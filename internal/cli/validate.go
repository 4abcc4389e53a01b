package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/syssam/blueprint/schema"
	"github.com/syssam/blueprint/schemafile"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <schema-file>...",
		Short: "Validate schema files without compiling",
		Long: `Check schema files for structural problems: duplicate columns,
invalid types, dangling column references and incomplete foreign keys.
All files are checked as one batch so cross-file foreign keys resolve.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var tables []*schema.Table
			for _, path := range args {
				doc, err := schemafile.Load(path)
				if err != nil {
					return err
				}
				built, err := doc.Build()
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				tables = append(tables, built...)
			}
			result := schema.ValidateTables(tables)
			fmt.Fprintln(cmd.OutOrStdout(), result)
			if result.HasErrors() {
				return fmt.Errorf("%d validation error(s)", len(result.Errors))
			}
			return nil
		},
	}
}
