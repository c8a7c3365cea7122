package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/runoshun/nh/internal/domain"
)

// RunCommand executes a single domain.Command.
type RunCommand struct {
	executor domain.CommandExecutor
	logger   *slog.Logger
}

// NewRunCommand creates a new RunCommand use case.
func NewRunCommand(executor domain.CommandExecutor, logger *slog.Logger) *RunCommand {
	return &RunCommand{
		executor: executor,
		logger:   logger,
	}
}

// Execute runs the command with stdout and stderr inherited and waits for it.
// A dry command is only logged. The child's exit code is not checked:
// only failures to start or wait on the process are returned.
func (uc *RunCommand) Execute(_ context.Context, cmd *domain.Command) error {
	execCmd, err := cmd.ExecCommand()
	if err != nil {
		return err
	}
	uc.announce(cmd, execCmd)

	if cmd.Dry() {
		return nil
	}
	if _, err := uc.executor.Run(execCmd); err != nil {
		return withMessage(cmd, err)
	}
	return nil
}

// Capture runs the command with stderr discarded and returns its stdout.
// A dry command is only logged and yields nil, so "not run" can be told
// apart from "printed nothing".
func (uc *RunCommand) Capture(_ context.Context, cmd *domain.Command) (*string, error) {
	execCmd, err := cmd.CaptureCommand()
	if err != nil {
		return nil, err
	}
	uc.announce(cmd, execCmd)

	if cmd.Dry() {
		return nil, nil
	}
	out, _, err := uc.executor.Capture(execCmd)
	if err != nil {
		return nil, withMessage(cmd, err)
	}
	if !utf8.Valid(out) {
		return nil, withMessage(cmd, domain.ErrInvalidOutput)
	}
	s := string(out)
	return &s, nil
}

func (uc *RunCommand) announce(cmd *domain.Command, execCmd *domain.ExecCommand) {
	if msg, ok := cmd.Message(); ok {
		uc.logger.Info(msg)
	}
	uc.logger.Debug(execCmd.String())
}

// withMessage attaches the command's message, if any, as context to err.
func withMessage(cmd *domain.Command, err error) error {
	if msg, ok := cmd.Message(); ok {
		return fmt.Errorf("%s: %w", msg, err)
	}
	return err
}
