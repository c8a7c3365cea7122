package domain

import (
	"fmt"
	"path/filepath"
)

// Action is what a rebuild does with the built configuration.
type Action string

// Rebuild actions.
const (
	ActionSwitch Action = "switch" // Build, activate and make it the boot default
	ActionBoot   Action = "boot"   // Build and make it the boot default
	ActionTest   Action = "test"   // Build and activate without touching the boot default
	ActionBuild  Action = "build"  // Build only
)

// AllOSActions returns the actions supported for NixOS.
func AllOSActions() []Action {
	return []Action{ActionSwitch, ActionBoot, ActionTest, ActionBuild}
}

// AllHomeActions returns the actions supported for home-manager.
func AllHomeActions() []Action {
	return []Action{ActionSwitch, ActionBuild}
}

// Activates reports whether the action changes the running system.
func (a Action) Activates() bool {
	return a == ActionSwitch || a == ActionTest
}

// SetsProfile reports whether the action updates the system profile.
func (a Action) SetsProfile() bool {
	return a == ActionSwitch || a == ActionBoot
}

// Well-known NixOS paths.
const (
	CurrentSystemPath = "/run/current-system"
	SystemProfilePath = "/nix/var/nix/profiles/system"
	DefaultDiffTool   = "nvd"
)

// NixOSToplevel returns the installable of a host's system closure.
func NixOSToplevel(flakePath, hostname string) string {
	return fmt.Sprintf("%s#nixosConfigurations.%s.config.system.build.toplevel", flakePath, hostname)
}

// HomeConfigurationsAttr returns the attribute holding all home-manager configurations.
func HomeConfigurationsAttr(flakePath string) string {
	return flakePath + "#homeConfigurations"
}

// HomeActivationPackage returns the installable of a home-manager configuration.
func HomeActivationPackage(flakePath, name string) string {
	return fmt.Sprintf("%s#homeConfigurations.%q.activationPackage", flakePath, name)
}

// HomeProfilePath returns the home-manager profile link under the user's home.
func HomeProfilePath(homeDir string) string {
	return filepath.Join(homeDir, ".local", "state", "nix", "profiles", "home-manager")
}

// HomeConfigurationCandidates returns the names tried, in order, when none is given.
func HomeConfigurationCandidates(username, hostname string) []string {
	if hostname == "" {
		return []string{username}
	}
	return []string{username + "@" + hostname, username}
}
