package shell

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

var (
	// ErrShellNotSupported is returned when an unsupported shell is specified
	ErrShellNotSupported = errors.New("shell not supported")

	// ErrShellDetectionFailed is returned when automatic shell detection fails
	ErrShellDetectionFailed = errors.New("shell detection failed")

	// ErrAlreadyInstalled is returned when the hook block is already present
	ErrAlreadyInstalled = errors.New("hook already installed")

	// ErrNotInstalled is returned when removing a hook that is not there
	ErrNotInstalled = errors.New("hook not installed")

	// ErrInvalidShellConfig is returned when the rc file holds a damaged hook block
	ErrInvalidShellConfig = errors.New("invalid shell configuration")

	// ErrBackupFailed is returned when creating a backup fails
	ErrBackupFailed = errors.New("backup creation failed")
)

// HookError is a hook management error with context for the user.
type HookError struct {
	Shell       string
	Op          string // operation being performed
	Err         error
	Message     string
	Suggestions []string
}

func (e *HookError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("hook %s for %s: %s (%v)", e.Op, e.Shell, e.Message, e.Err)
	}
	return fmt.Sprintf("hook %s for %s: %v", e.Op, e.Shell, e.Err)
}

func (e *HookError) Unwrap() error {
	return e.Err
}

// UserFriendlyMessage returns the error with numbered suggestions.
func (e *HookError) UserFriendlyMessage() string {
	var msg strings.Builder

	fmt.Fprintf(&msg, "Failed to %s hook for %s", e.Op, e.Shell)
	if e.Message != "" {
		fmt.Fprintf(&msg, ": %s", e.Message)
	}

	if len(e.Suggestions) > 0 {
		msg.WriteString("\n\nSuggested solutions:")
		for i, suggestion := range e.Suggestions {
			fmt.Fprintf(&msg, "\n  %d. %s", i+1, suggestion)
		}
	}

	return msg.String()
}

// NewHookError creates a HookError with suggestions matching err.
func NewHookError(shell, op string, err error, message string) *HookError {
	return &HookError{
		Shell:       shell,
		Op:          op,
		Err:         err,
		Message:     message,
		Suggestions: generateSuggestions(shell, err),
	}
}

func generateSuggestions(shell string, err error) []string {
	var suggestions []string

	switch {
	case errors.Is(err, os.ErrPermission):
		suggestions = append(suggestions,
			"Check that you have write permissions to your home directory",
			fmt.Sprintf("Check the permissions of your %s configuration file", shell),
		)
	case errors.Is(err, ErrShellNotSupported), errors.Is(err, ErrShellDetectionFailed):
		suggestions = append(suggestions,
			"Specify the shell explicitly: awsps init <shell>",
			"Supported shells: "+strings.Join(SupportedNames(), ", "),
			"Check your SHELL environment variable: echo $SHELL",
		)
	case errors.Is(err, ErrAlreadyInstalled):
		suggestions = append(suggestions,
			"Use --force to reinstall: awsps init --install --force "+shell,
			"Check installation status: awsps init --status",
		)
	case errors.Is(err, ErrNotInstalled):
		suggestions = append(suggestions,
			"Install the hook first: awsps init --install "+shell,
			"Check installation status: awsps init --status",
		)
	case errors.Is(err, ErrInvalidShellConfig):
		suggestions = append(suggestions,
			"Remove the lines between '"+blockStart+"' and '"+blockEnd+"' by hand",
			"Then reinstall: awsps init --install "+shell,
		)
	}

	if len(suggestions) == 0 {
		suggestions = append(suggestions,
			"Verify your shell configuration files are not corrupted",
			"Print the hook and add it manually: awsps init "+shell,
		)
	}
	return suggestions
}
