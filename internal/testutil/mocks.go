// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"io"
	"log/slog"

	"github.com/runoshun/nh/internal/domain"
)

// NewDiscardLogger returns a logger that drops every record.
func NewDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// MockCommandExecutor is a test double for domain.CommandExecutor.
// It records every request and never spawns anything.
// Fields are ordered to minimize memory padding.
type MockCommandExecutor struct {
	RunStatuses      map[string]domain.ExitStatus // Keyed by program; missing means success
	RunErr           error
	CaptureErr       error
	PipelineErr      error
	Runs             []*domain.ExecCommand
	Captures         []*domain.ExecCommand
	Pipelines        [][]*domain.ExecCommand
	Calls            []string // Command lines of every request, in order
	CaptureOutput    []byte
	PipelineStatuses []domain.ExitStatus // Missing entries mean success
	CaptureStatus    domain.ExitStatus
}

// NewMockCommandExecutor creates a new MockCommandExecutor where every process succeeds.
func NewMockCommandExecutor() *MockCommandExecutor {
	return &MockCommandExecutor{
		RunStatuses: make(map[string]domain.ExitStatus),
	}
}

// Ensure MockCommandExecutor implements domain.CommandExecutor interface.
var _ domain.CommandExecutor = (*MockCommandExecutor)(nil)

// Run records the command and returns the configured status or error.
func (m *MockCommandExecutor) Run(cmd *domain.ExecCommand) (domain.ExitStatus, error) {
	m.Runs = append(m.Runs, cmd)
	m.Calls = append(m.Calls, cmd.String())
	if m.RunErr != nil {
		return domain.ExitStatus{}, m.RunErr
	}
	return m.RunStatuses[cmd.Program], nil
}

// Capture records the command and returns the configured output.
func (m *MockCommandExecutor) Capture(cmd *domain.ExecCommand) ([]byte, domain.ExitStatus, error) {
	m.Captures = append(m.Captures, cmd)
	m.Calls = append(m.Calls, cmd.String())
	if m.CaptureErr != nil {
		return nil, domain.ExitStatus{}, m.CaptureErr
	}
	return m.CaptureOutput, m.CaptureStatus, nil
}

// Pipeline records the stages and returns one status per stage.
func (m *MockCommandExecutor) Pipeline(stages ...*domain.ExecCommand) ([]domain.ExitStatus, error) {
	m.Pipelines = append(m.Pipelines, stages)
	for _, s := range stages {
		m.Calls = append(m.Calls, s.String())
	}
	if m.PipelineErr != nil {
		return nil, m.PipelineErr
	}
	statuses := make([]domain.ExitStatus, len(stages))
	copy(statuses, m.PipelineStatuses)
	return statuses, nil
}

// SpawnCount returns how many processes were requested.
func (m *MockCommandExecutor) SpawnCount() int {
	n := len(m.Runs) + len(m.Captures)
	for _, p := range m.Pipelines {
		n += len(p)
	}
	return n
}

// MockFlakeInspector is a test double for domain.FlakeInspector.
type MockFlakeInspector struct {
	Err       error
	Untracked []string
	Dirs      []string
}

// Ensure MockFlakeInspector implements domain.FlakeInspector interface.
var _ domain.FlakeInspector = (*MockFlakeInspector)(nil)

// UntrackedFiles records the directory and returns the configured files or error.
func (m *MockFlakeInspector) UntrackedFiles(dir string) ([]string, error) {
	m.Dirs = append(m.Dirs, dir)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Untracked, nil
}

// MockPrompter is a test double for domain.Prompter.
type MockPrompter struct {
	Err       error
	Questions []string
	Answer    bool
}

// Ensure MockPrompter implements domain.Prompter interface.
var _ domain.Prompter = (*MockPrompter)(nil)

// Confirm records the question and returns the configured answer.
func (m *MockPrompter) Confirm(question string) (bool, error) {
	m.Questions = append(m.Questions, question)
	if m.Err != nil {
		return false, m.Err
	}
	return m.Answer, nil
}

// MockConfigLoader is a test double for domain.ConfigLoader.
type MockConfigLoader struct {
	Config  *domain.Config
	LoadErr error
}

// NewMockConfigLoader creates a new MockConfigLoader with default config.
func NewMockConfigLoader() *MockConfigLoader {
	return &MockConfigLoader{
		Config: domain.NewDefaultConfig(),
	}
}

// Ensure MockConfigLoader implements domain.ConfigLoader interface.
var _ domain.ConfigLoader = (*MockConfigLoader)(nil)

// Load returns the configured config or error.
func (m *MockConfigLoader) Load() (*domain.Config, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return m.Config, nil
}

// MockConfigManager is a test double for domain.ConfigManager.
// Fields are ordered to minimize memory padding.
type MockConfigManager struct {
	InitErr       error
	ConfigInfo    domain.ConfigInfo
	InitCalled    bool
	InitOverwrite bool
}

// NewMockConfigManager creates a new MockConfigManager.
func NewMockConfigManager() *MockConfigManager {
	return &MockConfigManager{
		ConfigInfo: domain.ConfigInfo{
			Path:   "/home/test/.config/nh/config.toml",
			Exists: false,
		},
	}
}

// Ensure MockConfigManager implements domain.ConfigManager interface.
var _ domain.ConfigManager = (*MockConfigManager)(nil)

// Info returns the configured config info.
func (m *MockConfigManager) Info() domain.ConfigInfo {
	return m.ConfigInfo
}

// Init records the call and returns the config path or the configured error.
func (m *MockConfigManager) Init(overwrite bool) (string, error) {
	m.InitCalled = true
	m.InitOverwrite = overwrite
	if m.InitErr != nil {
		return "", m.InitErr
	}
	return m.ConfigInfo.Path, nil
}
