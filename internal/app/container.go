// Package app provides the dependency injection container for the application.
package app

import (
	"log/slog"
	"os"
	"os/user"

	"github.com/runoshun/nh/internal/domain"
	"github.com/runoshun/nh/internal/infra/config"
	"github.com/runoshun/nh/internal/infra/executor"
	"github.com/runoshun/nh/internal/infra/git"
	"github.com/runoshun/nh/internal/infra/logging"
	"github.com/runoshun/nh/internal/infra/prompt"
	"github.com/runoshun/nh/internal/usecase"
)

// Env holds facts about the process environment.
type Env struct {
	LookupEnv func(string) (string, bool)
	Hostname  func() (string, error)
	Username  func() (string, error)
	HomeDir   string
	TempDir   string // "" means the system default
	IsRoot    bool
}

// NewEnv returns the environment of the running process.
func NewEnv() Env {
	home, _ := os.UserHomeDir()
	return Env{
		LookupEnv: os.LookupEnv,
		Hostname:  os.Hostname,
		Username:  currentUsername,
		HomeDir:   home,
		IsRoot:    os.Geteuid() == 0,
	}
}

func currentUsername() (string, error) {
	u, err := user.Current()
	if err != nil {
		return "", err
	}
	return u.Username, nil
}

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for use cases.
type Container struct {
	// Ports (interfaces bound to implementations)
	Executor      domain.CommandExecutor
	Inspector     domain.FlakeInspector
	Prompter      domain.Prompter
	ConfigLoader  domain.ConfigLoader
	ConfigManager domain.ConfigManager

	// Pointer fields
	Logger   *slog.Logger
	LogLevel *slog.LevelVar
	Config   *domain.Config

	Env Env
}

// New creates a new Container bound to the real process environment.
// A configuration file that fails to load is reported as a warning and defaults are used.
func New() *Container {
	configLoader := config.NewLoader()

	cfg, err := configLoader.Load()
	if err != nil {
		cfg = domain.NewDefaultConfig()
		cfg.Warnings = append(cfg.Warnings, err.Error())
	}

	level := new(slog.LevelVar)
	level.Set(logging.ParseLevel(cfg.Log.Level))
	logger := logging.New(os.Stderr, level)

	return &Container{
		Executor:      executor.NewClient(),
		Inspector:     git.NewClient(),
		Prompter:      prompt.NewPrompter(),
		ConfigLoader:  configLoader,
		ConfigManager: config.NewManager(configLoader),
		Logger:        logger,
		LogLevel:      level,
		Config:        cfg,
		Env:           NewEnv(),
	}
}

// NewWithDeps creates a new Container with custom dependencies for testing.
func NewWithDeps(
	exec domain.CommandExecutor,
	inspector domain.FlakeInspector,
	prompter domain.Prompter,
	configLoader domain.ConfigLoader,
	configManager domain.ConfigManager,
	logger *slog.Logger,
	env Env,
) *Container {
	cfg, err := configLoader.Load()
	if err != nil {
		cfg = domain.NewDefaultConfig()
		cfg.Warnings = append(cfg.Warnings, err.Error())
	}
	return &Container{
		Executor:      exec,
		Inspector:     inspector,
		Prompter:      prompter,
		ConfigLoader:  configLoader,
		ConfigManager: configManager,
		Logger:        logger,
		LogLevel:      new(slog.LevelVar),
		Config:        cfg,
		Env:           env,
	}
}

// SetVerbose switches the logger to debug level.
func (c *Container) SetVerbose() {
	c.LogLevel.Set(slog.LevelDebug)
}

func (c *Container) rebuildEnv() usecase.RebuildEnv {
	return usecase.RebuildEnv{
		Hostname:     c.Env.Hostname,
		Username:     c.Env.Username,
		DefaultFlake: domain.FlakeRef(c.Config.Flake),
		DiffTool:     c.Config.Diff.Command,
		HomeDir:      c.Env.HomeDir,
		TempDir:      c.Env.TempDir,
		UseFormatter: c.Config.Build.Nom,
		IsRoot:       c.Env.IsRoot,
	}
}

// UseCase factory methods

// RunCommandUseCase returns a new RunCommand use case.
func (c *Container) RunCommandUseCase() *usecase.RunCommand {
	return usecase.NewRunCommand(c.Executor, c.Logger)
}

// RunBuildUseCase returns a new RunBuild use case using the configured build tools.
func (c *Container) RunBuildUseCase() *usecase.RunBuild {
	return usecase.NewRunBuild(c.Executor, c.Logger, c.Config.Build.Tools())
}

// EditFlakeUseCase returns a new EditFlake use case.
func (c *Container) EditFlakeUseCase() *usecase.EditFlake {
	return usecase.NewEditFlake(c.Executor, c.Logger, c.Env.LookupEnv)
}

// RebuildOSUseCase returns a new RebuildOS use case.
func (c *Container) RebuildOSUseCase() *usecase.RebuildOS {
	return usecase.NewRebuildOS(
		c.RunCommandUseCase(),
		c.RunBuildUseCase(),
		c.Inspector,
		c.Prompter,
		c.Logger,
		c.rebuildEnv(),
	)
}

// RebuildHomeUseCase returns a new RebuildHome use case.
func (c *Container) RebuildHomeUseCase() *usecase.RebuildHome {
	return usecase.NewRebuildHome(
		c.RunCommandUseCase(),
		c.RunBuildUseCase(),
		c.Inspector,
		c.Prompter,
		c.Logger,
		c.rebuildEnv(),
	)
}

// ShowConfigUseCase returns a new ShowConfig use case.
func (c *Container) ShowConfigUseCase() *usecase.ShowConfig {
	return usecase.NewShowConfig(c.ConfigManager, c.ConfigLoader)
}

// InitConfigUseCase returns a new InitConfig use case.
func (c *Container) InitConfigUseCase() *usecase.InitConfig {
	return usecase.NewInitConfig(c.ConfigManager)
}
