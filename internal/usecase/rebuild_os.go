package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/runoshun/nh/internal/domain"
	"github.com/runoshun/nh/internal/usecase/shared"
)

// RebuildOSInput contains the parameters for rebuilding a NixOS system.
// Fields are ordered to minimize memory padding.
type RebuildOSInput struct {
	Action    domain.Action   // switch, boot, test or build (required)
	Flake     domain.FlakeRef // Flake to build; falls back to the configured flake
	Hostname  string          // nixosConfigurations attribute; falls back to the fragment, then the host name
	ExtraArgs []string        // Passed through to the build tool
	Dry       bool            // Evaluate and show what would happen without changing anything
	Ask       bool            // Confirm before activating
	NoNom     bool            // Do not pipe the build log through the formatter
}

// RebuildOSOutput contains the result of a NixOS rebuild.
type RebuildOSOutput struct {
	Hostname string // Configuration that was built
	Toplevel string // Installable that was built
}

// RebuildEnv holds the host facts and settings shared by the rebuild use cases.
type RebuildEnv struct {
	Hostname     func() (string, error) // Host name of the running machine
	Username     func() (string, error) // Name of the invoking user
	DefaultFlake domain.FlakeRef        // Configured flake (NH_FLAKE or config file)
	DiffTool     string                 // Closure differ, invoked as `<tool> diff <old> <new>`
	HomeDir      string                 // Home directory of the invoking user
	TempDir      string                 // Parent of out-link directories; "" means the system default
	UseFormatter bool                   // Pipe build logs through the formatter
	IsRoot       bool                   // Running as root; privileged commands skip sudo
}

func (e RebuildEnv) diffTool() string {
	if e.DiffTool == "" {
		return domain.DefaultDiffTool
	}
	return e.DiffTool
}

// RebuildOS is the use case for building and activating a NixOS configuration.
type RebuildOS struct {
	commands  *RunCommand
	builds    *RunBuild
	inspector domain.FlakeInspector
	prompter  domain.Prompter
	logger    *slog.Logger
	env       RebuildEnv
}

// NewRebuildOS creates a new RebuildOS use case.
func NewRebuildOS(
	commands *RunCommand,
	builds *RunBuild,
	inspector domain.FlakeInspector,
	prompter domain.Prompter,
	logger *slog.Logger,
	env RebuildEnv,
) *RebuildOS {
	return &RebuildOS{
		commands:  commands,
		builds:    builds,
		inspector: inspector,
		prompter:  prompter,
		logger:    logger,
		env:       env,
	}
}

// Execute builds the system closure, shows the difference to the running
// system and, depending on the action, activates it.
func (uc *RebuildOS) Execute(ctx context.Context, in RebuildOSInput) (*RebuildOSOutput, error) {
	if !slices.Contains(domain.AllOSActions(), in.Action) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidAction, in.Action)
	}

	flake, err := shared.ResolveFlake(in.Flake, uc.env.DefaultFlake)
	if err != nil {
		return nil, err
	}
	path, fragment := flake.Split()

	hostname := in.Hostname
	if hostname == "" {
		hostname = fragment
	}
	if hostname == "" {
		hostname, err = uc.env.Hostname()
		if err != nil {
			return nil, fmt.Errorf("get hostname: %w", err)
		}
	}

	shared.WarnUntracked(uc.inspector, uc.logger, flake)

	tmp, err := shared.OutLinkDir(uc.env.TempDir, "nh-os-")
	if err != nil {
		return nil, err
	}
	defer func() { _ = os.RemoveAll(tmp) }()
	outLink := filepath.Join(tmp, "result")

	toplevel := domain.NixOSToplevel(path, hostname)
	builder := domain.NewBuildCommandBuilder().
		Message("Building NixOS configuration").
		FlakeRef(toplevel).
		ExtraArgs("--out-link", outLink).
		UseFormatter(uc.env.UseFormatter && !in.NoNom)
	if in.Dry {
		builder.ExtraArgs("--dry-run")
	}
	build, err := builder.ExtraArgs(in.ExtraArgs...).Build()
	if err != nil {
		return nil, err
	}
	if err := uc.builds.Execute(ctx, build); err != nil {
		return nil, err
	}

	out := &RebuildOSOutput{Hostname: hostname, Toplevel: toplevel}

	diff, err := domain.NewCommandBuilder().
		Args(uc.env.diffTool(), "diff", domain.CurrentSystemPath, outLink).
		Message("Comparing changes").
		Dry(in.Dry).
		Build()
	if err != nil {
		return nil, err
	}
	if err := uc.commands.Execute(ctx, diff); err != nil {
		return nil, err
	}

	if in.Action == domain.ActionBuild {
		return out, nil
	}

	if in.Ask && !in.Dry {
		if err := shared.Confirm(uc.prompter, "Apply the new configuration?"); err != nil {
			return nil, err
		}
	}

	if in.Action.SetsProfile() {
		setProfile, err := domain.NewCommandBuilder().
			Args(shared.Privileged(uc.env.IsRoot, "nix-env", "--profile", domain.SystemProfilePath, "--set", outLink)...).
			Message("Setting system profile").
			Dry(in.Dry).
			Build()
		if err != nil {
			return nil, err
		}
		if err := uc.commands.Execute(ctx, setProfile); err != nil {
			return nil, err
		}
	}

	activate, err := domain.NewCommandBuilder().
		Args(shared.Privileged(uc.env.IsRoot, filepath.Join(outLink, "bin", "switch-to-configuration"), string(in.Action))...).
		Message("Activating configuration").
		Dry(in.Dry).
		Build()
	if err != nil {
		return nil, err
	}
	if err := uc.commands.Execute(ctx, activate); err != nil {
		return nil, err
	}

	return out, nil
}
