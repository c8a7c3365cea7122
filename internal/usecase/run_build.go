package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/runoshun/nh/internal/domain"
)

// RunBuild executes a domain.BuildCommand, directly or through the log formatter.
type RunBuild struct {
	executor domain.CommandExecutor
	logger   *slog.Logger
	tools    domain.BuildTools
}

// NewRunBuild creates a new RunBuild use case.
func NewRunBuild(executor domain.CommandExecutor, logger *slog.Logger, tools domain.BuildTools) *RunBuild {
	return &RunBuild{
		executor: executor,
		logger:   logger,
		tools:    tools,
	}
}

// Execute runs the build and waits for every stage to finish.
// The build succeeds only if every stage exits with code 0. Otherwise the
// first failing stage, in pipeline order, is reported as a *domain.ExitError,
// so a failed build is not hidden by a formatter that exited cleanly.
func (uc *RunBuild) Execute(_ context.Context, cmd *domain.BuildCommand) error {
	uc.logger.Info(cmd.Message())

	stages := cmd.Stages(uc.tools)
	for _, stage := range stages {
		uc.logger.Debug(stage.String())
	}

	var statuses []domain.ExitStatus
	var err error
	if len(stages) == 1 {
		var status domain.ExitStatus
		status, err = uc.executor.Run(stages[0])
		statuses = []domain.ExitStatus{status}
	} else {
		statuses, err = uc.executor.Pipeline(stages...)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", cmd.Message(), err)
	}

	for i, status := range statuses {
		if !status.Success() {
			return fmt.Errorf("%s: %w", cmd.Message(), &domain.ExitError{
				Program: stages[i].Program,
				Status:  status,
			})
		}
	}
	return nil
}
