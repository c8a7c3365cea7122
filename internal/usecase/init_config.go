// Package usecase contains the application use cases.
package usecase

import (
	"context"

	"github.com/runoshun/nh/internal/domain"
)

// InitConfigInput contains the input for the InitConfig use case.
type InitConfigInput struct {
	Force bool // Overwrite an existing config file
}

// InitConfigOutput contains the output of the InitConfig use case.
type InitConfigOutput struct {
	Path string // Path to the created config file
}

// InitConfig writes a configuration file with default values.
type InitConfig struct {
	configManager domain.ConfigManager
}

// NewInitConfig creates a new InitConfig use case.
func NewInitConfig(configManager domain.ConfigManager) *InitConfig {
	return &InitConfig{
		configManager: configManager,
	}
}

// Execute creates the configuration file.
func (uc *InitConfig) Execute(_ context.Context, in InitConfigInput) (*InitConfigOutput, error) {
	path, err := uc.configManager.Init(in.Force)
	if err != nil {
		return nil, err
	}
	return &InitConfigOutput{Path: path}, nil
}
