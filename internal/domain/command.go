package domain

import (
	"strings"
)

// Redirect selects where a child process stream is sent.
type Redirect int

// Stream redirections.
const (
	// RedirectInherit sends the stream to the caller's own stream.
	RedirectInherit Redirect = iota
	// RedirectNull discards the stream.
	RedirectNull
	// RedirectMerge sends stderr to wherever stdout goes. Only valid for Stderr.
	RedirectMerge
)

// ExecCommand represents an external command to be executed.
// This type is used to pass command information between layers
// without exposing implementation details.
// Fields are ordered to minimize memory padding.
type ExecCommand struct {
	Program string
	Dir     string
	Args    []string
	Stdout  Redirect
	Stderr  Redirect
}

// NewExecCommand creates an ExecCommand with inherited output streams.
func NewExecCommand(program string, args []string, dir string) *ExecCommand {
	return &ExecCommand{
		Program: program,
		Args:    args,
		Dir:     dir,
	}
}

// Argv returns the program followed by its arguments.
func (c *ExecCommand) Argv() []string {
	argv := make([]string, 0, len(c.Args)+1)
	argv = append(argv, c.Program)
	return append(argv, c.Args...)
}

// String renders the command line with shell quoting, for logs only.
func (c *ExecCommand) String() string {
	return JoinArgs(c.Argv())
}

// Command is a single external program invocation.
// It is immutable once built; use CommandBuilder to create one.
type Command struct {
	message    string
	args       []string
	dry        bool
	hasMessage bool
}

// Args returns a copy of the argument vector. The first element is the program.
func (c *Command) Args() []string {
	return append([]string(nil), c.args...)
}

// Message returns the human-readable description, if one was set.
func (c *Command) Message() (string, bool) {
	return c.message, c.hasMessage
}

// Dry reports whether the command is only logged and never spawned.
func (c *Command) Dry() bool {
	return c.dry
}

// ExecCommand splits the arguments into program and arguments.
// Output streams are inherited.
func (c *Command) ExecCommand() (*ExecCommand, error) {
	if len(c.args) == 0 {
		return nil, ErrEmptyArgs
	}
	return NewExecCommand(c.args[0], append([]string(nil), c.args[1:]...), ""), nil
}

// CaptureCommand is like ExecCommand but discards stderr.
// Stdout is left to the executor to collect.
func (c *Command) CaptureCommand() (*ExecCommand, error) {
	cmd, err := c.ExecCommand()
	if err != nil {
		return nil, err
	}
	cmd.Stderr = RedirectNull
	return cmd, nil
}

// CommandBuilder accumulates the fields of a Command.
type CommandBuilder struct {
	cmd Command
}

// NewCommandBuilder returns a builder with dry=false and no message.
func NewCommandBuilder() *CommandBuilder {
	return &CommandBuilder{}
}

// Args appends arguments. It may be called several times; order is preserved.
func (b *CommandBuilder) Args(args ...string) *CommandBuilder {
	b.cmd.args = append(b.cmd.args, args...)
	return b
}

// Message sets the description that is logged and attached to errors.
func (b *CommandBuilder) Message(message string) *CommandBuilder {
	b.cmd.message = message
	b.cmd.hasMessage = true
	return b
}

// Dry sets whether the command is only logged.
func (b *CommandBuilder) Dry(dry bool) *CommandBuilder {
	b.cmd.dry = dry
	return b
}

// Build validates and returns the command.
// The builder can keep being used; the returned value does not share state with it.
func (b *CommandBuilder) Build() (*Command, error) {
	if len(b.cmd.args) == 0 {
		return nil, ErrEmptyArgs
	}
	cmd := b.cmd
	cmd.args = append([]string(nil), b.cmd.args...)
	return &cmd, nil
}

// Quote quotes s for display in a POSIX shell, leaving simple words untouched.
func Quote(s string) string {
	if s == "" {
		return "''"
	}
	if strings.IndexFunc(s, needsQuote) < 0 {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// JoinArgs quotes and joins arguments into a single command line.
func JoinArgs(args []string) string {
	quoted := make([]string, len(args))
	for i, arg := range args {
		quoted[i] = Quote(arg)
	}
	return strings.Join(quoted, " ")
}

func needsQuote(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return false
	}
	return !strings.ContainsRune("-_./:=@+,#%", r)
}
