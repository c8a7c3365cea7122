package domain

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
)

// Domain errors.
var (
	ErrEmptyArgs          = errors.New("args was length 0")
	ErrEmptyMessage       = errors.New("message cannot be empty")
	ErrEmptyFlakeRef      = errors.New("flake reference cannot be empty")
	ErrEmptyPipeline      = errors.New("pipeline has no stages")
	ErrInvalidOutput      = errors.New("command output is not valid UTF-8")
	ErrEditorNotSet       = errors.New("EDITOR not set")
	ErrNoFlake            = errors.New("no flake given (use --flake, NH_FLAKE or 'flake' in config)")
	ErrUserRejected       = errors.New("user rejected the new configuration")
	ErrHomeConfigNotFound = errors.New("home-manager configuration not found")
	ErrInvalidAction      = errors.New("invalid action")
	ErrConfigExists       = errors.New("config file already exists")
)

// SpawnError reports that a process could not be started or waited on.
type SpawnError struct {
	Err     error
	Op      string // "start" or "wait"
	Program string
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Program, e.Err)
}

func (e *SpawnError) Unwrap() error {
	return e.Err
}

// NotFound reports whether the program does not exist.
func (e *SpawnError) NotFound() bool {
	if errors.Is(e.Err, exec.ErrNotFound) {
		return true
	}
	var pathErr *os.PathError
	return errors.As(e.Err, &pathErr) && errors.Is(pathErr.Err, os.ErrNotExist)
}

// ExitError reports that a process terminated with a non-success status.
type ExitError struct {
	Program string
	Status  ExitStatus
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("command %s exited with status %s", e.Program, e.Status)
}
