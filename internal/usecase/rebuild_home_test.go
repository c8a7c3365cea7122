package usecase_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/runoshun/nh/internal/domain"
	"github.com/runoshun/nh/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRebuildHome_Execute(t *testing.T) {
	t.Run("switch finds user@host, builds, diffs and activates", func(t *testing.T) {
		f := newRebuildFixture(t)
		f.executor.CaptureOutput = []byte(`["alice","alice@thishost","bob"]`)

		out, err := f.rebuildHome().Execute(context.Background(), usecase.RebuildHomeInput{
			Action: domain.ActionSwitch,
			Flake:  "/home/alice/dots",
		})

		require.NoError(t, err)
		assert.Equal(t, "alice@thishost", out.Configuration)

		require.Len(t, f.executor.Captures, 1)
		assert.Equal(t, []string{
			"nix", "eval", "/home/alice/dots#homeConfigurations",
			"--apply", "builtins.attrNames", "--json",
		}, f.executor.Captures[0].Argv())

		require.Len(t, f.executor.Runs, 3)
		build := f.executor.Runs[0]
		outLink := outLinkOf(t, build)
		assert.Equal(t, `/home/alice/dots#homeConfigurations."alice@thishost".activationPackage`, build.Args[1])
		assert.Equal(t, []string{
			"nvd", "diff", "/home/alice/.local/state/nix/profiles/home-manager", outLink,
		}, f.executor.Runs[1].Argv())
		assert.Equal(t, []string{filepath.Join(outLink, "activate")}, f.executor.Runs[2].Argv())
	})

	t.Run("falls back to the bare user name", func(t *testing.T) {
		f := newRebuildFixture(t)
		f.executor.CaptureOutput = []byte(`["alice"]`)

		out, err := f.rebuildHome().Execute(context.Background(), usecase.RebuildHomeInput{
			Action: domain.ActionBuild,
			Flake:  "/home/alice/dots",
		})

		require.NoError(t, err)
		assert.Equal(t, "alice", out.Configuration)
		assert.Len(t, f.executor.Runs, 2)
	})

	t.Run("fails when no candidate exists", func(t *testing.T) {
		f := newRebuildFixture(t)
		f.executor.CaptureOutput = []byte(`["bob"]`)

		_, err := f.rebuildHome().Execute(context.Background(), usecase.RebuildHomeInput{
			Action: domain.ActionSwitch,
			Flake:  "/home/alice/dots",
		})

		require.ErrorIs(t, err, domain.ErrHomeConfigNotFound)
		assert.Contains(t, err.Error(), "alice@thishost, alice")
		assert.Empty(t, f.executor.Runs)
	})

	t.Run("fails on malformed evaluation output", func(t *testing.T) {
		f := newRebuildFixture(t)
		f.executor.CaptureOutput = []byte(`error: flake has no homeConfigurations`)

		_, err := f.rebuildHome().Execute(context.Background(), usecase.RebuildHomeInput{
			Action: domain.ActionSwitch,
			Flake:  "/home/alice/dots",
		})

		require.ErrorContains(t, err, "parse home configurations")
	})

	t.Run("fragment skips evaluation", func(t *testing.T) {
		f := newRebuildFixture(t)

		out, err := f.rebuildHome().Execute(context.Background(), usecase.RebuildHomeInput{
			Action: domain.ActionBuild,
			Flake:  "/home/alice/dots#work",
		})

		require.NoError(t, err)
		assert.Equal(t, "work", out.Configuration)
		assert.Empty(t, f.executor.Captures)
	})

	t.Run("configuration flag overrides the fragment", func(t *testing.T) {
		f := newRebuildFixture(t)

		out, err := f.rebuildHome().Execute(context.Background(), usecase.RebuildHomeInput{
			Action:        domain.ActionBuild,
			Flake:         "/home/alice/dots#work",
			Configuration: "play",
		})

		require.NoError(t, err)
		assert.Equal(t, "play", out.Configuration)
	})

	t.Run("dry run still evaluates but does not activate", func(t *testing.T) {
		f := newRebuildFixture(t)
		f.executor.CaptureOutput = []byte(`["alice"]`)

		_, err := f.rebuildHome().Execute(context.Background(), usecase.RebuildHomeInput{
			Action: domain.ActionSwitch,
			Flake:  "/home/alice/dots",
			Dry:    true,
		})

		require.NoError(t, err)
		assert.Len(t, f.executor.Captures, 1)
		require.Len(t, f.executor.Runs, 1)
		assert.Contains(t, f.executor.Runs[0].Args, "--dry-run")
	})

	t.Run("user rejection stops before activation", func(t *testing.T) {
		f := newRebuildFixture(t)

		_, err := f.rebuildHome().Execute(context.Background(), usecase.RebuildHomeInput{
			Action: domain.ActionSwitch,
			Flake:  "/home/alice/dots#alice",
			Ask:    true,
		})

		require.ErrorIs(t, err, domain.ErrUserRejected)
		assert.Len(t, f.executor.Runs, 2)
	})

	t.Run("boot is not a home action", func(t *testing.T) {
		f := newRebuildFixture(t)

		_, err := f.rebuildHome().Execute(context.Background(), usecase.RebuildHomeInput{
			Action: domain.ActionBoot,
			Flake:  "/home/alice/dots#alice",
		})

		require.ErrorIs(t, err, domain.ErrInvalidAction)
	})

	t.Run("username lookup failure is returned", func(t *testing.T) {
		f := newRebuildFixture(t)
		f.env.Username = func() (string, error) { return "", errors.New("no passwd entry") }

		_, err := f.rebuildHome().Execute(context.Background(), usecase.RebuildHomeInput{
			Action: domain.ActionSwitch,
			Flake:  "/home/alice/dots",
		})

		require.ErrorContains(t, err, "no passwd entry")
	})
}
