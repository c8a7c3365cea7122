package domain

// Default programs used by BuildCommand.
const (
	DefaultBuildTool = "nix"
	DefaultFormatter = "nom"
)

// BuildTools names the programs a BuildCommand runs.
type BuildTools struct {
	Tool      string // Build tool, invoked as `<tool> build <flakeref>`
	Formatter string // Log formatter, invoked as `<formatter> --json`
}

// DefaultBuildTools returns nix and nom.
func DefaultBuildTools() BuildTools {
	return BuildTools{
		Tool:      DefaultBuildTool,
		Formatter: DefaultFormatter,
	}
}

// BuildCommand is a `nix build` invocation, optionally piped through a log formatter.
// It is immutable once built; use BuildCommandBuilder to create one.
type BuildCommand struct {
	message      string
	flakeRef     string
	extraArgs    []string
	useFormatter bool
}

// Message returns the description logged before the build starts.
func (c *BuildCommand) Message() string {
	return c.message
}

// FlakeRef returns the installable passed to the build tool.
func (c *BuildCommand) FlakeRef() string {
	return c.flakeRef
}

// ExtraArgs returns a copy of the arguments appended to the build invocation.
func (c *BuildCommand) ExtraArgs() []string {
	return append([]string(nil), c.extraArgs...)
}

// UseFormatter reports whether the build output goes through the formatter.
func (c *BuildCommand) UseFormatter() bool {
	return c.useFormatter
}

// Stages returns the processes to run, in pipeline order.
// Without the formatter there is one stage whose stderr is merged into its inherited stdout.
// With it, the build's stdout and stderr both feed the formatter's stdin.
func (c *BuildCommand) Stages(tools BuildTools) []*ExecCommand {
	if tools.Tool == "" {
		tools.Tool = DefaultBuildTool
	}
	if tools.Formatter == "" {
		tools.Formatter = DefaultFormatter
	}

	args := []string{"build", c.flakeRef}
	if !c.useFormatter {
		args = append(args, c.extraArgs...)
		return []*ExecCommand{{
			Program: tools.Tool,
			Args:    args,
			Stderr:  RedirectMerge,
		}}
	}

	args = append(args, "--log-format", "internal-json", "--verbose")
	args = append(args, c.extraArgs...)
	return []*ExecCommand{
		{
			Program: tools.Tool,
			Args:    args,
			Stderr:  RedirectMerge,
		},
		{
			Program: tools.Formatter,
			Args:    []string{"--json"},
		},
	}
}

// BuildCommandBuilder accumulates the fields of a BuildCommand.
type BuildCommandBuilder struct {
	cmd BuildCommand
}

// NewBuildCommandBuilder returns an empty builder.
func NewBuildCommandBuilder() *BuildCommandBuilder {
	return &BuildCommandBuilder{}
}

// Message sets the required description.
func (b *BuildCommandBuilder) Message(message string) *BuildCommandBuilder {
	b.cmd.message = message
	return b
}

// FlakeRef sets the required installable to build.
func (b *BuildCommandBuilder) FlakeRef(ref string) *BuildCommandBuilder {
	b.cmd.flakeRef = ref
	return b
}

// ExtraArgs appends arguments for the build tool. Order is preserved across calls.
func (b *BuildCommandBuilder) ExtraArgs(args ...string) *BuildCommandBuilder {
	b.cmd.extraArgs = append(b.cmd.extraArgs, args...)
	return b
}

// UseFormatter selects the pipeline through the log formatter.
func (b *BuildCommandBuilder) UseFormatter(use bool) *BuildCommandBuilder {
	b.cmd.useFormatter = use
	return b
}

// Build validates and returns the command.
func (b *BuildCommandBuilder) Build() (*BuildCommand, error) {
	if b.cmd.message == "" {
		return nil, ErrEmptyMessage
	}
	if b.cmd.flakeRef == "" {
		return nil, ErrEmptyFlakeRef
	}
	cmd := b.cmd
	cmd.extraArgs = append([]string(nil), b.cmd.extraArgs...)
	return &cmd, nil
}
