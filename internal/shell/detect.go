package shell

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Detect guesses the user's shell from the environment.
func Detect() (Shell, error) {
	return detect(os.Getenv)
}

// DetectOr returns the detected shell, or fallback when detection fails.
func DetectOr(fallback Shell) Shell {
	if s, err := Detect(); err == nil {
		return s
	}
	return fallback
}

func detect(getenv func(string) string) (Shell, error) {
	if shellPath := getenv("SHELL"); shellPath != "" {
		if s, err := Parse(filepath.Base(shellPath)); err == nil {
			return s, nil
		}
	}

	if s := detectShellFromEnvVars(getenv); s != "" {
		return s, nil
	}

	if runtime.GOOS == "windows" && detectPowerShell(getenv) {
		return PowerShell, nil
	}

	return "", ErrShellDetectionFailed
}

// detectShellFromEnvVars checks shell-specific environment variables
func detectShellFromEnvVars(getenv func(string) string) Shell {
	if getenv("NU_VERSION") != "" {
		return Nushell
	}
	if getenv("FISH_VERSION") != "" {
		return Fish
	}
	if getenv("ZSH_VERSION") != "" || getenv("ZSH_NAME") != "" {
		return Zsh
	}
	if getenv("BASH_VERSION") != "" {
		return Bash
	}
	return ""
}

// detectPowerShell checks for PowerShell-specific environment indicators
func detectPowerShell(getenv func(string) string) bool {
	if getenv("PSModulePath") != "" || getenv("PSHOME") != "" {
		return true
	}
	return strings.Contains(strings.ToLower(getenv("PATH")), "powershell")
}
