package domain

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExitStatus(t *testing.T) {
	assert.True(t, ExitStatus{}.Success())
	assert.False(t, ExitStatus{Code: 2}.Success())
	assert.False(t, ExitStatus{Code: -1, Signal: "killed"}.Success())

	assert.Equal(t, "exit code 2", ExitStatus{Code: 2}.String())
	assert.Equal(t, "signal killed", ExitStatus{Code: -1, Signal: "killed"}.String())
}

func TestExitError(t *testing.T) {
	var err error = &ExitError{Program: "nix", Status: ExitStatus{Code: 1}}
	wrapped := fmt.Errorf("Building NixOS configuration: %w", err)

	assert.Equal(t, "Building NixOS configuration: command nix exited with status exit code 1", wrapped.Error())

	var exitErr *ExitError
	require.True(t, errors.As(wrapped, &exitErr))
	assert.Equal(t, 1, exitErr.Status.Code)
}

func TestSpawnError(t *testing.T) {
	notFound := &SpawnError{Op: "start", Program: "nope", Err: &exec.Error{Name: "nope", Err: exec.ErrNotFound}}
	assert.True(t, notFound.NotFound())
	assert.ErrorIs(t, notFound, exec.ErrNotFound)
	assert.Contains(t, notFound.Error(), "start nope")

	missingPath := &SpawnError{Op: "start", Program: "/nope", Err: &os.PathError{Op: "fork/exec", Path: "/nope", Err: os.ErrNotExist}}
	assert.True(t, missingPath.NotFound())

	denied := &SpawnError{Op: "start", Program: "/etc", Err: &os.PathError{Op: "fork/exec", Path: "/etc", Err: os.ErrPermission}}
	assert.False(t, denied.NotFound())
}
