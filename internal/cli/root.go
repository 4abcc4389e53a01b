// Package cli provides the blueprint command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"

	"github.com/spf13/cobra"
)

// Version information (set at build time).
var Version = "0.1.0"

var cfgFile string

// configKey is used to store config in context.
type configKey struct{}

// loggerKey is used to store the logger in context.
type loggerKey struct{}

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "blueprint",
		Short: "Blueprint - dialect-neutral DDL compiler",
		Long: `Blueprint compiles abstract table descriptions into DDL statements
for MySQL, PostgreSQL, SQLite and SQL Server.

Tables, columns and structural commands are described once in a YAML
schema file; blueprint renders the dialect-correct CREATE, ALTER and
index statements for the target you pick.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}
			cfg, err := LoadConfig(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}
			level := slog.LevelInfo
			if cfg.Verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

			ctx := context.WithValue(cmd.Context(), configKey{}, cfg)
			ctx = context.WithValue(ctx, loggerKey{}, logger)
			cmd.SetContext(ctx)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./blueprint.yaml)")
	rootCmd.PersistentFlags().StringP("dialect", "d", "", "target SQL dialect (mysql|postgres|sqlite|sqlserver)")
	rootCmd.PersistentFlags().StringP("output", "o", "", "write statements to file instead of stdout")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")

	_ = rootCmd.RegisterFlagCompletionFunc("dialect", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"mysql", "postgres", "sqlite", "sqlserver"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(NewCompileCommand())
	rootCmd.AddCommand(NewValidateCommand())
	rootCmd.AddCommand(NewDialectsCommand())
	rootCmd.AddCommand(NewVersionCommand(Version))

	return rootCmd
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	rootCmd := NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// GetConfig retrieves the config from the command context.
func GetConfig(ctx context.Context) *Config {
	if c, ok := ctx.Value(configKey{}).(*Config); ok {
		return c
	}
	return &Config{Dialect: DefaultDialect}
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(math.MaxInt)}))
}
