package config

import (
	"path/filepath"
	"testing"

	"github.com/runoshun/nh/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_Init(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nh")
	loader := NewLoaderWithDir(dir, nil)
	manager := NewManager(loader)

	assert.False(t, manager.Info().Exists)

	path, err := manager.Init(false)
	require.NoError(t, err)
	assert.Equal(t, loader.Path(), path)
	assert.True(t, manager.Info().Exists)

	// The written file loads back to the defaults.
	cfg, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, domain.NewDefaultConfig(), cfg)
}

func TestManager_Init_Exists(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `flake = "/etc/nixos"`)
	manager := NewManager(NewLoaderWithDir(dir, nil))

	_, err := manager.Init(false)
	assert.ErrorIs(t, err, domain.ErrConfigExists)

	_, err = manager.Init(true)
	require.NoError(t, err)
}

func TestManager_Info_NoDir(t *testing.T) {
	manager := NewManager(NewLoaderWithDir("", nil))
	assert.Equal(t, domain.ConfigInfo{}, manager.Info())

	_, err := manager.Init(false)
	assert.Error(t, err)
}
