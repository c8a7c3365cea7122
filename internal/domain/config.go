package domain

import "path/filepath"

// ConfigFileName is the name of the configuration file.
const ConfigFileName = "config.toml"

// FlakeEnvVar overrides the configured default flake.
const FlakeEnvVar = "NH_FLAKE"

// EditorEnvVar names the editor program.
const EditorEnvVar = "EDITOR"

// Config represents the application configuration.
type Config struct {
	Flake    string      // Default flake reference
	Build    BuildConfig // [build] settings
	Diff     DiffConfig  // [diff] settings
	Log      LogConfig   // [log] settings
	Warnings []string    // Problems found while loading, e.g. unknown keys
}

// BuildConfig holds build settings from [build] section.
type BuildConfig struct {
	Tool      string // Build tool program
	Formatter string // Log formatter program
	Nom       bool   // Pipe build logs through the formatter
}

// Tools returns the programs a BuildCommand runs.
func (c BuildConfig) Tools() BuildTools {
	return BuildTools{Tool: c.Tool, Formatter: c.Formatter}
}

// DiffConfig holds closure diff settings from [diff] section.
type DiffConfig struct {
	Command string // Program invoked as `<command> diff <old> <new>`
}

// LogConfig holds logging settings from [log] section.
type LogConfig struct {
	Level string // Log level: debug, info, warn, error
}

// NewDefaultConfig returns a new Config with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Build: BuildConfig{
			Tool:      DefaultBuildTool,
			Formatter: DefaultFormatter,
			Nom:       true,
		},
		Diff: DiffConfig{
			Command: DefaultDiffTool,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// GlobalConfigDir returns the nh configuration directory under configHome.
func GlobalConfigDir(configHome string) string {
	return filepath.Join(configHome, "nh")
}

// GlobalConfigPath returns the path of the configuration file under configHome.
func GlobalConfigPath(configHome string) string {
	return filepath.Join(GlobalConfigDir(configHome), ConfigFileName)
}
