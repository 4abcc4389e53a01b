package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/syssam/blueprint/dialect"
)

// Config holds the CLI configuration options.
type Config struct {
	// Dialect is the target SQL dialect to compile for.
	Dialect string `koanf:"dialect"`
	// Output is the file statements are written to. Empty means stdout.
	Output string `koanf:"output"`
	// Verbose enables debug logging.
	Verbose bool `koanf:"verbose"`
}

// Default configuration values.
const (
	DefaultDialect = dialect.MySQL
)

// findConfigFile finds the config file to use.
// Priority: explicit path > blueprint.yaml > blueprint.yml
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if _, err := os.Stat("blueprint.yaml"); err == nil {
		return "blueprint.yaml"
	}
	if _, err := os.Stat("blueprint.yml"); err == nil {
		return "blueprint.yml"
	}
	return ""
}

// LoadConfig loads configuration from file, environment variables and
// flags. Precedence (highest to lowest): flags > env vars > config
// file > defaults.
func LoadConfig(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]interface{}{
		"dialect": DefaultDialect,
		"output":  "",
		"verbose": false,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if used := findConfigFile(cfgFile); used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", used, err)
		}
	}

	// BLUEPRINT_DIALECT -> dialect
	if err := k.Load(env.Provider("BLUEPRINT_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "BLUEPRINT_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if !dialect.Valid(cfg.Dialect) {
		return nil, fmt.Errorf("unknown dialect %q (supported: %s)", cfg.Dialect, strings.Join(dialect.All(), ", "))
	}
	return &cfg, nil
}
