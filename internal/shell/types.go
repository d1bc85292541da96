// Package shell renders AWS_PROFILE assignments for the supported shells and
// manages the hook block that keeps AWS_PROFILE in sync with the state file.
package shell

import (
	"fmt"
	"strings"
)

// Shell is a supported shell dialect.
type Shell string

const (
	Bash       Shell = "bash"
	Zsh        Shell = "zsh"
	Fish       Shell = "fish"
	Nushell    Shell = "nu"
	PowerShell Shell = "powershell"
)

// Supported returns all supported shells.
func Supported() []Shell {
	return []Shell{Bash, Zsh, Fish, Nushell, PowerShell}
}

// SupportedNames returns the supported shell names.
func SupportedNames() []string {
	shells := Supported()
	names := make([]string, len(shells))
	for i, s := range shells {
		names[i] = string(s)
	}
	return names
}

// Parse maps a shell name or executable name to a Shell.
func Parse(name string) (Shell, error) {
	if name == "" {
		return "", fmt.Errorf("%w: shell cannot be empty", ErrShellNotSupported)
	}
	normalized := Shell(normalizeShellName(name))
	for _, s := range Supported() {
		if s == normalized {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: '%s' (supported: %s)", ErrShellNotSupported, name, strings.Join(SupportedNames(), ", "))
}

// normalizeShellName converts shell executable names to standard shell names
func normalizeShellName(shellName string) string {
	shellName = strings.TrimSuffix(strings.ToLower(shellName), ".exe")

	switch shellName {
	case "zsh", "zsh5":
		return string(Zsh)
	case "bash", "bash4", "bash5", "sh", "dash", "ksh":
		return string(Bash)
	case "fish":
		return string(Fish)
	case "nu", "nushell":
		return string(Nushell)
	case "powershell", "pwsh":
		return string(PowerShell)
	default:
		return shellName
	}
}
