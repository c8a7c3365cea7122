package shared

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/runoshun/nh/internal/domain"
)

// ResolveFlake returns the flake given on the command line, or the configured one.
func ResolveFlake(flag, configured domain.FlakeRef) (domain.FlakeRef, error) {
	if flag != "" {
		return flag, nil
	}
	if configured != "" {
		return configured, nil
	}
	return "", domain.ErrNoFlake
}

// WarnUntracked logs a warning when a local flake's git work tree has untracked files.
// Nix copies only tracked files of a git flake into the store, so such files are
// silently missing from the build. Inspection failures are logged at debug level.
func WarnUntracked(inspector domain.FlakeInspector, logger *slog.Logger, ref domain.FlakeRef) {
	if !ref.IsLocal() {
		logger.Debug("skipping untracked file check for remote flake", "flake", string(ref))
		return
	}
	dir := ref.LocalPath()
	files, err := inspector.UntrackedFiles(dir)
	if err != nil {
		logger.Debug("skipping untracked file check", "dir", dir, "error", err)
		return
	}
	for _, f := range files {
		logger.Warn("untracked file is ignored by nix", "file", f)
	}
}

// Privileged prefixes args with sudo unless the process already runs as root.
func Privileged(isRoot bool, args ...string) []string {
	if isRoot {
		return args
	}
	return append([]string{"sudo"}, args...)
}

// Confirm asks the question and returns domain.ErrUserRejected unless the answer is yes.
func Confirm(prompter domain.Prompter, question string) error {
	ok, err := prompter.Confirm(question)
	if err != nil {
		return fmt.Errorf("confirm: %w", err)
	}
	if !ok {
		return domain.ErrUserRejected
	}
	return nil
}

// OutLinkDir creates a temporary directory to hold a build's out-link.
// The caller removes it when done.
func OutLinkDir(base, pattern string) (string, error) {
	dir, err := os.MkdirTemp(base, pattern)
	if err != nil {
		return "", fmt.Errorf("create out-link directory: %w", err)
	}
	return dir, nil
}
