package domain

// CommandExecutor spawns external processes.
// A non-zero exit is reported through ExitStatus, not as an error;
// errors are reserved for processes that could not be started or waited on.
type CommandExecutor interface {
	// Run starts the command, waits for it and returns how it terminated.
	Run(cmd *ExecCommand) (ExitStatus, error)

	// Capture runs the command and returns everything it wrote to stdout.
	Capture(cmd *ExecCommand) ([]byte, ExitStatus, error)

	// Pipeline runs the stages concurrently, each stage's stdout feeding the
	// next stage's stdin. It returns one status per stage, in order.
	Pipeline(stages ...*ExecCommand) ([]ExitStatus, error)
}

// ConfigLoader loads configuration from files.
type ConfigLoader interface {
	// Load returns the effective configuration (defaults <- file <- environment).
	Load() (*Config, error)
}

// FlakeInspector looks at the version control state of a local flake.
type FlakeInspector interface {
	// UntrackedFiles lists files in the work tree containing dir that git does not track.
	UntrackedFiles(dir string) ([]string, error)
}

// Prompter asks the user questions.
type Prompter interface {
	// Confirm asks a yes/no question. The default answer is no.
	Confirm(question string) (bool, error)
}

// ConfigManager manages the configuration file.
type ConfigManager interface {
	// Info returns the location of the configuration file and whether it exists.
	Info() ConfigInfo

	// Init writes a configuration file with default values.
	// It fails with ErrConfigExists unless overwrite is set.
	Init(overwrite bool) (string, error)
}

// ConfigInfo describes a configuration file.
type ConfigInfo struct {
	Path   string
	Exists bool
}
