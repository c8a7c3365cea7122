// Package config provides configuration loading functionality.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/pelletier/go-toml/v2"
	"github.com/runoshun/nh/internal/domain"
)

// Ensure Loader implements domain.ConfigLoader.
var _ domain.ConfigLoader = (*Loader)(nil)

// Loader loads configuration from a TOML file.
type Loader struct {
	getenv  func(string) string
	confDir string // Path to config directory (e.g., ~/.config/nh)
}

// NewLoader creates a new Loader reading from the default config directory.
func NewLoader() *Loader {
	return &Loader{
		confDir: defaultConfigDir(),
		getenv:  os.Getenv,
	}
}

// NewLoaderWithDir creates a new Loader with a custom config directory and environment.
// This is useful for testing.
func NewLoaderWithDir(confDir string, getenv func(string) string) *Loader {
	if getenv == nil {
		getenv = func(string) string { return "" }
	}
	return &Loader{
		confDir: confDir,
		getenv:  getenv,
	}
}

// defaultConfigDir returns the default config directory.
func defaultConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return domain.GlobalConfigDir(configHome)
}

// Path returns the path of the config file, or "" if no config directory is known.
func (l *Loader) Path() string {
	if l.confDir == "" {
		return ""
	}
	return filepath.Join(l.confDir, domain.ConfigFileName)
}

// Load returns the effective configuration.
// Precedence: default <- config file <- NH_FLAKE.
func (l *Loader) Load() (*domain.Config, error) {
	cfg := domain.NewDefaultConfig()

	if path := l.Path(); path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			var raw map[string]any
			if err := toml.Unmarshal(data, &raw); err != nil {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
			applyRaw(cfg, raw)
		}
	}

	if flake := l.getenv(domain.FlakeEnvVar); flake != "" {
		cfg.Flake = flake
	}
	return cfg, nil
}

// applyRaw copies known keys from the raw map into cfg and collects warnings.
func applyRaw(cfg *domain.Config, raw map[string]any) {
	var warnings []string

	for section, value := range raw {
		switch section {
		case "flake":
			if s, ok := value.(string); ok {
				cfg.Flake = s
			} else {
				warnings = append(warnings, "flake must be a string")
			}
		case "build":
			if m, ok := value.(map[string]any); ok {
				for k, v := range m {
					switch k {
					case "tool":
						if s, ok := v.(string); ok && s != "" {
							cfg.Build.Tool = s
						}
					case "formatter":
						if s, ok := v.(string); ok && s != "" {
							cfg.Build.Formatter = s
						}
					case "nom":
						if b, ok := v.(bool); ok {
							cfg.Build.Nom = b
						}
					default:
						warnings = append(warnings, fmt.Sprintf("unknown key in [build]: %s", k))
					}
				}
			}
		case "diff":
			if m, ok := value.(map[string]any); ok {
				for k, v := range m {
					switch k {
					case "command":
						if s, ok := v.(string); ok {
							cfg.Diff.Command = s
						}
					default:
						warnings = append(warnings, fmt.Sprintf("unknown key in [diff]: %s", k))
					}
				}
			}
		case "log":
			if m, ok := value.(map[string]any); ok {
				for k, v := range m {
					switch k {
					case "level":
						if s, ok := v.(string); ok {
							cfg.Log.Level = s
						}
					default:
						warnings = append(warnings, fmt.Sprintf("unknown key in [log]: %s", k))
					}
				}
			}
		default:
			warnings = append(warnings, fmt.Sprintf("unknown section: %s", section))
		}
	}

	sort.Strings(warnings)
	cfg.Warnings = append(cfg.Warnings, warnings...)
}

// fileConfig is the on-disk layout of the config file.
type fileConfig struct {
	Flake string `toml:"flake,omitempty"`
	Build struct {
		Tool      string `toml:"tool"`
		Formatter string `toml:"formatter"`
		Nom       bool   `toml:"nom"`
	} `toml:"build"`
	Diff struct {
		Command string `toml:"command"`
	} `toml:"diff"`
	Log struct {
		Level string `toml:"level"`
	} `toml:"log"`
}

// Marshal renders cfg in config file format.
func Marshal(cfg *domain.Config) ([]byte, error) {
	var fc fileConfig
	fc.Flake = cfg.Flake
	fc.Build.Tool = cfg.Build.Tool
	fc.Build.Formatter = cfg.Build.Formatter
	fc.Build.Nom = cfg.Build.Nom
	fc.Diff.Command = cfg.Diff.Command
	fc.Log.Level = cfg.Log.Level
	return toml.Marshal(fc)
}
