package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"awsps/internal/aws"
	"awsps/internal/config"
	"awsps/internal/logger"
	"awsps/internal/shell"
	"awsps/internal/state"
	"awsps/internal/tui"
	"awsps/internal/util"

	"github.com/spf13/cobra"
)

var errNoSelection = errors.New("no profile selected")

// silentError wraps an error whose message was already shown to the user.
type silentError struct {
	err error
}

func (e silentError) Error() string { return e.err.Error() }
func (e silentError) Unwrap() error { return e.err }

type action int

const (
	actionSelect action = iota
	actionActivate
	actionNew
	actionDeactivate
)

// resolveAction applies flag precedence: deactivate, then new, then activate,
// then the interactive selector.
func resolveAction(deactivate bool, newName, activateName string) (action, string) {
	switch {
	case deactivate:
		return actionDeactivate, ""
	case newName != "":
		return actionNew, newName
	case activateName != "":
		return actionActivate, activateName
	default:
		return actionSelect, ""
	}
}

// openTerminal returns the terminal the selector runs on: keys from stdin,
// drawing on stderr.
var openTerminal = func() (tui.Terminal, error) {
	return tui.OpenTTY(os.Stdin, os.Stderr)
}

func runRoot(cmd *cobra.Command, args []string) error {
	act, name := resolveAction(deactivateFlag, newFlag, activateFlag)
	return runAction(cmd, act, name)
}

func runAction(cmd *cobra.Command, act action, name string) error {
	log := logger.Component("cmd")
	store := state.New(config.StateFile())
	log.Debug("running", "action", int(act), "name", name, "state", store.Path(), "current", currentFlag)

	switch act {
	case actionDeactivate:
		return deactivate(cmd, store)
	case actionNew:
		return activate(cmd, store, name)
	}

	path, err := configPath()
	if err != nil {
		return err
	}
	profiles := loadProfiles(cmd, path)

	if act == actionActivate {
		if _, err := aws.Find(profiles, name); err != nil {
			printNotFound(cmd.ErrOrStderr(), name, profiles)
			return silentError{err}
		}
		return activate(cmd, store, name)
	}

	if len(profiles) == 0 {
		util.WarnColor.Fprintf(cmd.ErrOrStderr(), "No AWS profiles found in %s\n", path)
	}

	outcome, err := selectProfile(profiles)
	if err != nil {
		return err
	}
	if outcome.State != tui.Selected {
		fmt.Fprintln(messageWriter(cmd), "No profile selected")
		return silentError{errNoSelection}
	}
	return activate(cmd, store, outcome.Name)
}

// loadProfiles reads the AWS config. A broken file is reported and treated
// as having no profiles.
func loadProfiles(cmd *cobra.Command, path string) []aws.Profile {
	profiles, err := aws.LoadProfiles(path)
	if err != nil {
		util.WarnColor.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
		logger.Component("cmd").Warn("failed to load profiles", "path", path, "error", err)
		return nil
	}
	return profiles
}

func selectProfile(profiles []aws.Profile) (tui.Outcome, error) {
	t, err := openTerminal()
	if err != nil {
		return tui.Outcome{}, err
	}

	selector := tui.New(t, tui.Options{
		Prompt:   config.Prompt(),
		PageSize: config.PageSize(),
		Logger:   logger.Component("selector"),
	})
	return selector.Run(candidates(profiles, config.MatchAnnotations()))
}

// candidates turns profiles into selector entries. With annotations the
// query also matches account, region and role.
func candidates(profiles []aws.Profile, annotations bool) []tui.Candidate {
	cands := make([]tui.Candidate, len(profiles))
	for i, p := range profiles {
		c := tui.NewCandidate(p.Name, p.Display())
		if annotations {
			c.Key = c.Display
		}
		cands[i] = c
	}
	return cands
}

func activate(cmd *cobra.Command, store *state.Store, name string) error {
	if currentFlag {
		sh, err := outputShell()
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), shell.ExportCommand(sh, name))
		return nil
	}

	if err := store.Set(name); err != nil {
		return fmt.Errorf("failed to save active profile: %w", err)
	}
	util.SuccessColor.Fprintf(cmd.OutOrStdout(), "AWS profile activated: %s\n", name)
	return nil
}

func deactivate(cmd *cobra.Command, store *state.Store) error {
	if currentFlag {
		sh, err := outputShell()
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), shell.UnsetCommand(sh))
		return nil
	}

	wasActive, err := store.Clear()
	if err != nil {
		return fmt.Errorf("failed to deactivate profile: %w", err)
	}
	if wasActive {
		util.SuccessColor.Fprintln(cmd.OutOrStdout(), "AWS profile deactivated")
	} else {
		util.InfoColor.Fprintln(cmd.OutOrStdout(), "No active AWS profile to deactivate")
	}
	return nil
}

// outputShell picks the dialect for --current: --shell, then the config
// file, then detection, then POSIX.
func outputShell() (shell.Shell, error) {
	if shellFlag != "" {
		return shell.Parse(shellFlag)
	}
	if name := config.Shell(); name != "" {
		return shell.Parse(name)
	}
	return shell.DetectOr(shell.Bash), nil
}

// messageWriter keeps stdout clean for eval when --current is set.
func messageWriter(cmd *cobra.Command) io.Writer {
	if currentFlag {
		return cmd.ErrOrStderr()
	}
	return cmd.OutOrStdout()
}

func printNotFound(w io.Writer, name string, profiles []aws.Profile) {
	util.ErrorColor.Fprintf(w, "Profile '%s' not found in AWS config\n", name)
	fmt.Fprintln(w, "Available profiles:")
	for _, p := range profiles {
		fmt.Fprintf(w, "  %s\n", p.Name)
	}
}
