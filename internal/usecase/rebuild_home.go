package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/runoshun/nh/internal/domain"
	"github.com/runoshun/nh/internal/usecase/shared"
)

// RebuildHomeInput contains the parameters for rebuilding a home-manager configuration.
// Fields are ordered to minimize memory padding.
type RebuildHomeInput struct {
	Action        domain.Action   // switch or build (required)
	Flake         domain.FlakeRef // Flake to build; falls back to the configured flake
	Configuration string          // homeConfigurations attribute; falls back to the fragment, then user@host or user
	ExtraArgs     []string        // Passed through to the build tool
	Dry           bool            // Evaluate and show what would happen without changing anything
	Ask           bool            // Confirm before activating
	NoNom         bool            // Do not pipe the build log through the formatter
}

// RebuildHomeOutput contains the result of a home-manager rebuild.
type RebuildHomeOutput struct {
	Configuration string // Configuration that was built
}

// RebuildHome is the use case for building and activating a home-manager configuration.
type RebuildHome struct {
	commands  *RunCommand
	builds    *RunBuild
	inspector domain.FlakeInspector
	prompter  domain.Prompter
	logger    *slog.Logger
	env       RebuildEnv
}

// NewRebuildHome creates a new RebuildHome use case.
func NewRebuildHome(
	commands *RunCommand,
	builds *RunBuild,
	inspector domain.FlakeInspector,
	prompter domain.Prompter,
	logger *slog.Logger,
	env RebuildEnv,
) *RebuildHome {
	return &RebuildHome{
		commands:  commands,
		builds:    builds,
		inspector: inspector,
		prompter:  prompter,
		logger:    logger,
		env:       env,
	}
}

// Execute builds the activation package, shows the difference to the current
// generation and, for switch, activates it.
func (uc *RebuildHome) Execute(ctx context.Context, in RebuildHomeInput) (*RebuildHomeOutput, error) {
	if !slices.Contains(domain.AllHomeActions(), in.Action) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidAction, in.Action)
	}

	flake, err := shared.ResolveFlake(in.Flake, uc.env.DefaultFlake)
	if err != nil {
		return nil, err
	}
	path, fragment := flake.Split()

	name := in.Configuration
	if name == "" {
		name = fragment
	}
	if name == "" {
		name, err = uc.findConfiguration(ctx, path)
		if err != nil {
			return nil, err
		}
	}

	shared.WarnUntracked(uc.inspector, uc.logger, flake)

	tmp, err := shared.OutLinkDir(uc.env.TempDir, "nh-home-")
	if err != nil {
		return nil, err
	}
	defer func() { _ = os.RemoveAll(tmp) }()
	outLink := filepath.Join(tmp, "result")

	builder := domain.NewBuildCommandBuilder().
		Message("Building home-manager configuration").
		FlakeRef(domain.HomeActivationPackage(path, name)).
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

	out := &RebuildHomeOutput{Configuration: name}

	diff, err := domain.NewCommandBuilder().
		Args(uc.env.diffTool(), "diff", domain.HomeProfilePath(uc.env.HomeDir), outLink).
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

	activate, err := domain.NewCommandBuilder().
		Args(filepath.Join(outLink, "activate")).
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

// findConfiguration evaluates the flake's homeConfigurations attribute names
// and picks the first candidate for the current user that exists.
// Evaluation is read-only, so it runs in dry mode too.
func (uc *RebuildHome) findConfiguration(ctx context.Context, flakePath string) (string, error) {
	username, err := uc.env.Username()
	if err != nil {
		return "", fmt.Errorf("get username: %w", err)
	}
	hostname, err := uc.env.Hostname()
	if err != nil {
		uc.logger.Debug("hostname unavailable", "error", err)
	}

	tool := uc.builds.tools.Tool
	if tool == "" {
		tool = domain.DefaultBuildTool
	}
	eval, err := domain.NewCommandBuilder().
		Args(tool, "eval", domain.HomeConfigurationsAttr(flakePath)).
		Args("--apply", "builtins.attrNames", "--json").
		Build()
	if err != nil {
		return "", err
	}
	stdout, err := uc.commands.Capture(ctx, eval)
	if err != nil {
		return "", fmt.Errorf("list home configurations: %w", err)
	}

	var names []string
	if stdout != nil {
		if err := json.Unmarshal([]byte(*stdout), &names); err != nil {
			return "", fmt.Errorf("parse home configurations: %w", err)
		}
	}

	candidates := domain.HomeConfigurationCandidates(username, hostname)
	for _, c := range candidates {
		if slices.Contains(names, c) {
			uc.logger.Debug("found home configuration", "name", c)
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", domain.ErrHomeConfigNotFound, strings.Join(candidates, ", "))
}
