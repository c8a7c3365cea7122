// Package executor provides command execution functionality.
package executor

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"syscall"

	"github.com/runoshun/nh/internal/domain"
)

// Client implements domain.CommandExecutor interface.
type Client struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// NewClient creates a command executor bound to the process's own stdio.
func NewClient() *Client {
	return NewClientWithIO(os.Stdin, os.Stdout, os.Stderr)
}

// NewClientWithIO creates a command executor with custom streams.
// Inherited streams of child processes are connected to these.
func NewClientWithIO(stdin io.Reader, stdout, stderr io.Writer) *Client {
	return &Client{
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
	}
}

// Ensure Client implements domain.CommandExecutor interface.
var _ domain.CommandExecutor = (*Client)(nil)

// Run starts the command with its streams routed per cmd and waits for it.
func (c *Client) Run(cmd *domain.ExecCommand) (domain.ExitStatus, error) {
	execCmd := c.command(cmd, c.stdin)
	c.route(execCmd, cmd, c.stdout)
	if err := execCmd.Start(); err != nil {
		return domain.ExitStatus{}, &domain.SpawnError{Op: "start", Program: cmd.Program, Err: err}
	}
	return wait(execCmd, cmd.Program)
}

// Capture runs the command and collects its stdout. Stderr follows cmd.Stderr.
func (c *Client) Capture(cmd *domain.ExecCommand) ([]byte, domain.ExitStatus, error) {
	var stdout bytes.Buffer
	execCmd := c.command(cmd, c.stdin)
	c.route(execCmd, cmd, &stdout)
	execCmd.Stdout = &stdout
	if err := execCmd.Start(); err != nil {
		return nil, domain.ExitStatus{}, &domain.SpawnError{Op: "start", Program: cmd.Program, Err: err}
	}
	status, err := wait(execCmd, cmd.Program)
	if err != nil {
		return nil, status, err
	}
	return stdout.Bytes(), status, nil
}

// Pipeline connects the stages with OS pipes and runs them concurrently.
// Every stage is started before any is waited on. If a stage fails to start,
// later stages are not started; the stages already running are still waited on.
func (c *Client) Pipeline(stages ...*domain.ExecCommand) ([]domain.ExitStatus, error) {
	if len(stages) == 0 {
		return nil, domain.ErrEmptyPipeline
	}

	cmds := make([]*exec.Cmd, len(stages))
	// Parent-side pipe ends; closed once the children hold their own copies.
	var ends []*os.File
	var input io.Reader = c.stdin
	for i, stage := range stages {
		execCmd := c.command(stage, input)
		if i == len(stages)-1 {
			c.route(execCmd, stage, c.stdout)
		} else {
			r, w, err := os.Pipe()
			if err != nil {
				closeAll(ends)
				return nil, fmt.Errorf("create pipe: %w", err)
			}
			ends = append(ends, r, w)
			c.route(execCmd, stage, w)
			execCmd.Stdout = w
			input = r
		}
		cmds[i] = execCmd
	}

	var startErr error
	started := 0
	for i, execCmd := range cmds {
		if err := execCmd.Start(); err != nil {
			startErr = &domain.SpawnError{Op: "start", Program: stages[i].Program, Err: err}
			break
		}
		started++
	}
	closeAll(ends)

	statuses := make([]domain.ExitStatus, len(stages))
	var waitErr error
	for i := 0; i < started; i++ {
		status, err := wait(cmds[i], stages[i].Program)
		statuses[i] = status
		if err != nil && waitErr == nil {
			waitErr = err
		}
	}
	if startErr != nil {
		return statuses, startErr
	}
	return statuses, waitErr
}

func (c *Client) command(cmd *domain.ExecCommand, stdin io.Reader) *exec.Cmd {
	// #nosec G204 - cmd.Program and cmd.Args come from trusted UseCase code
	execCmd := exec.Command(cmd.Program, cmd.Args...)
	if cmd.Dir != "" {
		execCmd.Dir = cmd.Dir
	}
	execCmd.Stdin = stdin
	return execCmd
}

// route connects stdout to the given sink and stderr according to cmd.
// A nil stream is connected to the null device by os/exec.
func (c *Client) route(execCmd *exec.Cmd, cmd *domain.ExecCommand, stdout io.Writer) {
	switch cmd.Stdout {
	case domain.RedirectNull:
		execCmd.Stdout = nil
	default:
		execCmd.Stdout = stdout
	}

	switch cmd.Stderr {
	case domain.RedirectNull:
		execCmd.Stderr = nil
	case domain.RedirectMerge:
		execCmd.Stderr = execCmd.Stdout
	default:
		execCmd.Stderr = c.stderr
	}
}

// wait waits for the process. Exiting with a non-zero code is not an error.
func wait(execCmd *exec.Cmd, program string) (domain.ExitStatus, error) {
	err := execCmd.Wait()
	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		return exitStatus(execCmd.ProcessState), &domain.SpawnError{Op: "wait", Program: program, Err: err}
	}
	return exitStatus(execCmd.ProcessState), nil
}

func exitStatus(state *os.ProcessState) domain.ExitStatus {
	if state == nil {
		return domain.ExitStatus{Code: -1}
	}
	status := domain.ExitStatus{Code: state.ExitCode()}
	if ws, ok := state.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		status.Signal = ws.Signal().String()
	}
	return status
}

func closeAll(files []*os.File) {
	for _, f := range files {
		_ = f.Close()
	}
}
