package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/syssam/blueprint/schema"
	"github.com/syssam/blueprint/schemafile"
)

// NewCompileCommand creates the compile command.
func NewCompileCommand() *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "compile <schema-file>...",
		Short: "Compile schema files to DDL statements",
		Long: `Compile one or more YAML schema files into DDL statements for the
configured dialect. Files are compiled in argument order; statements
are written to stdout or to the file given with --output.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := GetConfig(cmd.Context())
			logger := GetLogger(cmd.Context())

			if err := compileFiles(cmd.Context(), cfg, logger, args, cmd.OutOrStdout()); err != nil {
				if !watch {
					return err
				}
				logger.Error("compilation failed", "error", err)
			}
			if watch {
				return watchFiles(cmd.Context(), cfg, logger, args, cmd.OutOrStdout())
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "recompile when schema files change")
	return cmd
}

// compileFiles compiles every schema file for the configured dialect
// and writes the statements out. Files are loaded and compiled
// concurrently; output stays in argument order.
func compileFiles(ctx context.Context, cfg *Config, logger *slog.Logger, paths []string, stdout io.Writer) error {
	g, err := schema.Lookup(cfg.Dialect)
	if err != nil {
		return err
	}

	results := make([][]string, len(paths))
	eg, _ := errgroup.WithContext(ctx)
	for i, path := range paths {
		i, path := i, path
		eg.Go(func() error {
			stmts, err := compileFile(g, path)
			if err != nil {
				return err
			}
			results[i] = stmts
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	var sb strings.Builder
	total := 0
	for _, stmts := range results {
		for _, stmt := range stmts {
			sb.WriteString(stmt)
			sb.WriteString(";\n")
			total++
		}
	}
	logger.Debug("compiled schema files", "files", len(paths), "dialect", cfg.Dialect, "statements", total)

	if cfg.Output != "" {
		return os.WriteFile(cfg.Output, []byte(sb.String()), 0o644)
	}
	_, err = io.WriteString(stdout, sb.String())
	return err
}

// compileFile loads, validates and compiles one schema file.
func compileFile(g schema.Grammar, path string) ([]string, error) {
	doc, err := schemafile.Load(path)
	if err != nil {
		return nil, err
	}
	tables, err := doc.Build()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if result := schema.ValidateTables(tables); result.HasErrors() {
		return nil, fmt.Errorf("%s:\n%s", path, result)
	}
	stmts, err := schema.CompileTables(g, tables...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return stmts, nil
}

// watchFiles recompiles the schema files whenever one of them changes.
// A failed recompilation is logged and watching continues.
func watchFiles(ctx context.Context, cfg *Config, logger *slog.Logger, paths []string, stdout io.Writer) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Watch the parent directories; editors replace files on save and
	// a watch on the file itself is lost with the old inode.
	watched := make(map[string]bool, len(paths))
	for _, path := range paths {
		watched[filepath.Clean(path)] = true
		dir := filepath.Dir(path)
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}
	logger.Info("watching schema files", "files", len(paths))

	// Debounce timer; editors emit bursts of events per save.
	var debounce *time.Timer
	recompile := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if !watched[filepath.Clean(event.Name)] {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(100*time.Millisecond, func() {
				select {
				case recompile <- struct{}{}:
				default:
				}
			})
		case <-recompile:
			logger.Info("schema changed, recompiling")
			if err := compileFiles(ctx, cfg, logger, paths, stdout); err != nil {
				logger.Error("compilation failed", "error", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watch error", "error", err)
		}
	}
}
