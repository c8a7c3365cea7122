package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCommandBuilder_Validation(t *testing.T) {
	_, err := NewBuildCommandBuilder().FlakeRef(".#foo").Build()
	assert.ErrorIs(t, err, ErrEmptyMessage)

	_, err = NewBuildCommandBuilder().Message("Building").Build()
	assert.ErrorIs(t, err, ErrEmptyFlakeRef)

	cmd, err := NewBuildCommandBuilder().Message("Building").FlakeRef(".#foo").Build()
	require.NoError(t, err)
	assert.Equal(t, "Building", cmd.Message())
	assert.Equal(t, ".#foo", cmd.FlakeRef())
	assert.Empty(t, cmd.ExtraArgs())
	assert.False(t, cmd.UseFormatter())
}

func TestBuildCommand_Stages_Direct(t *testing.T) {
	cmd, err := NewBuildCommandBuilder().
		Message("Building").
		FlakeRef(".#foo").
		ExtraArgs("--out-link", "/tmp/result").
		ExtraArgs("--impure").
		Build()
	require.NoError(t, err)

	stages := cmd.Stages(DefaultBuildTools())
	require.Len(t, stages, 1)
	assert.Equal(t, "nix", stages[0].Program)
	assert.Equal(t, []string{"build", ".#foo", "--out-link", "/tmp/result", "--impure"}, stages[0].Args)
	assert.Equal(t, RedirectInherit, stages[0].Stdout)
	assert.Equal(t, RedirectMerge, stages[0].Stderr)
}

func TestBuildCommand_Stages_Pipeline(t *testing.T) {
	cmd, err := NewBuildCommandBuilder().
		Message("Building").
		FlakeRef(".#foo").
		ExtraArgs("--impure").
		UseFormatter(true).
		Build()
	require.NoError(t, err)

	stages := cmd.Stages(BuildTools{Tool: "/bin/nix", Formatter: "/bin/nom"})
	require.Len(t, stages, 2)

	assert.Equal(t, "/bin/nix", stages[0].Program)
	assert.Equal(t, []string{"build", ".#foo", "--log-format", "internal-json", "--verbose", "--impure"}, stages[0].Args)
	assert.Equal(t, RedirectMerge, stages[0].Stderr)

	assert.Equal(t, "/bin/nom", stages[1].Program)
	assert.Equal(t, []string{"--json"}, stages[1].Args)
	assert.Equal(t, RedirectInherit, stages[1].Stdout)
}

func TestBuildCommand_Stages_EmptyToolsFallBackToDefaults(t *testing.T) {
	cmd, err := NewBuildCommandBuilder().Message("m").FlakeRef("r").UseFormatter(true).Build()
	require.NoError(t, err)

	stages := cmd.Stages(BuildTools{})
	assert.Equal(t, DefaultBuildTool, stages[0].Program)
	assert.Equal(t, DefaultFormatter, stages[1].Program)
}
