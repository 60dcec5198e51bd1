// Package config loads the eltool configuration: embedded defaults,
// overridden by an eltool.toml in the project directory, overridden by
// ELTOOL_* environment variables.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/MaratAhmetzyanov83/ElTool-sub000/pkg/errors"
)

const envPrefix = "ELTOOL_"

// Config is the typed view of the merged configuration.
type Config struct {
	Layout LayoutConfig `koanf:"layout"`
	Output OutputConfig `koanf:"output"`
}

// LayoutConfig controls the placement engine.
type LayoutConfig struct {
	// ModulesPerRow is the slot capacity of one DIN rail
	ModulesPerRow int `koanf:"modules_per_row"`

	// Strict turns the silent drop of unidentifiable blocks into a
	// diagnostic
	Strict bool `koanf:"strict"`
}

// OutputConfig controls terminal output.
type OutputConfig struct {
	// Color is "auto", "always" or "never"
	Color string `koanf:"color"`
}

// Load builds the merged configuration for a project directory. Pass ""
// to use the current directory.
func Load(dir string) (*Config, error) {
	if dir == "" {
		dir = "."
	}

	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load default configuration")
	}

	for _, filename := range []string{".eltool.toml", "eltool.toml"} {
		path := filepath.Join(dir, filename)
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load configuration from %s", path)
			}
			break
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment overrides")
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to decode configuration")
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envKey maps ELTOOL_LAYOUT__MODULES_PER_ROW to layout.modules_per_row.
// A double underscore separates sections so key names can keep their own
// underscores.
func envKey(key string) string {
	key = strings.TrimPrefix(key, envPrefix)
	key = strings.ToLower(key)
	return strings.ReplaceAll(key, "__", ".")
}

func validate(cfg *Config) error {
	switch cfg.Output.Color {
	case "auto", "always", "never":
	default:
		return errors.Newf(errors.ErrConfigValid, "output.color must be auto, always or never, got %q", cfg.Output.Color)
	}
	if cfg.Layout.ModulesPerRow < 0 {
		return errors.Newf(errors.ErrConfigValid, "layout.modules_per_row must not be negative, got %d", cfg.Layout.ModulesPerRow)
	}
	return nil
}
