package usecase

import (
	"context"
	"log/slog"

	"github.com/runoshun/nh/internal/domain"
)

// EditFlakeInput contains the parameters for opening a flake in an editor.
type EditFlakeInput struct {
	FlakeRef domain.FlakeRef // Flake whose directory is opened (required)
	Editor   string          // Editor program; read from $EDITOR when empty
}

// EditFlakeOutput contains the result of editing a flake.
type EditFlakeOutput struct {
	Dir string // Directory the editor was started in
}

// EditFlake is the use case for opening a flake's directory in the user's editor.
type EditFlake struct {
	executor  domain.CommandExecutor
	logger    *slog.Logger
	lookupEnv func(string) (string, bool)
}

// NewEditFlake creates a new EditFlake use case.
// lookupEnv is consulted once per Execute, only when no editor is given.
func NewEditFlake(
	executor domain.CommandExecutor,
	logger *slog.Logger,
	lookupEnv func(string) (string, bool),
) *EditFlake {
	return &EditFlake{
		executor:  executor,
		logger:    logger,
		lookupEnv: lookupEnv,
	}
}

// Execute runs `<editor> .` in the flake's directory and waits for the editor to exit.
// The editor's exit code is not checked.
func (uc *EditFlake) Execute(_ context.Context, in EditFlakeInput) (*EditFlakeOutput, error) {
	editor := in.Editor
	if editor == "" {
		value, ok := uc.lookupEnv(domain.EditorEnvVar)
		if !ok || value == "" {
			return nil, domain.ErrEditorNotSet
		}
		editor = value
	}

	dir, err := in.FlakeRef.Dir()
	if err != nil {
		return nil, err
	}

	cmd := domain.NewExecCommand(editor, []string{"."}, dir)
	uc.logger.Debug(cmd.String(), "dir", dir)
	if _, err := uc.executor.Run(cmd); err != nil {
		return nil, err
	}
	return &EditFlakeOutput{Dir: dir}, nil
}
