package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/runoshun/nh/internal/domain"
)

// Ensure Manager implements domain.ConfigManager.
var _ domain.ConfigManager = (*Manager)(nil)

// Manager manages the configuration file.
type Manager struct {
	loader *Loader
}

// NewManager creates a new Manager for the file the loader reads.
func NewManager(loader *Loader) *Manager {
	return &Manager{loader: loader}
}

// Info returns information about the config file.
func (m *Manager) Info() domain.ConfigInfo {
	path := m.loader.Path()
	if path == "" {
		return domain.ConfigInfo{}
	}
	_, err := os.Stat(path)
	return domain.ConfigInfo{
		Path:   path,
		Exists: err == nil,
	}
}

// Init writes the default configuration to the config file.
func (m *Manager) Init(overwrite bool) (string, error) {
	path := m.loader.Path()
	if path == "" {
		return "", errors.New("cannot determine config directory")
	}
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return path, domain.ErrConfigExists
		}
	}

	data, err := Marshal(domain.NewDefaultConfig())
	if err != nil {
		return "", fmt.Errorf("render config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return "", fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("write config: %w", err)
	}
	return path, nil
}
