/*
AWSM - AWS Manager
Copyright (c) 2024 Alessandro Gallo. All rights reserved.

Licensed under the Business Source License 1.1.
See LICENSE file for full terms.
*/

package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"awsps/internal/config"
	"awsps/internal/shell"
	"awsps/internal/util"

	"github.com/spf13/cobra"
)

var (
	installFlag   bool
	uninstallFlag bool
	statusFlag    bool
	forceFlag     bool
	jsonOutput    bool
	allShells     bool
)

var newInstaller = shell.NewInstaller

var initCmd = &cobra.Command{
	Use:   "init [shell]",
	Short: "Print or install the shell hook that exports AWS_PROFILE",
	Long: `Print a shell hook that reads ~/.aws/current-profile before each prompt and
exports its content as AWS_PROFILE, so a profile picked with awsps is active in
every open shell. The hook only unsets AWS_PROFILE if it exported it itself.

Supported shells: bash, zsh, fish, nu, powershell

Examples:
  # Load the hook for the current session
  eval "$(awsps init zsh)"

  # Add the hook to your shell configuration file (auto-detected shell)
  awsps init --install

  # Show installation status for all shells
  awsps init --status

  # Remove the hook from a specific shell
  awsps init --uninstall fish

  # Replace an existing installation
  awsps init --install --force bash`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: shellNames(),
	PreRunE:   validateInitFlags,
	RunE:      runInitCommand,
}

func validateInitFlags(cmd *cobra.Command, args []string) error {
	modes := 0
	for _, set := range []bool{installFlag, uninstallFlag, statusFlag} {
		if set {
			modes++
		}
	}
	if modes > 1 {
		return fmt.Errorf("only one of --install, --uninstall and --status can be used")
	}
	if jsonOutput && !statusFlag {
		return fmt.Errorf("--json flag can only be used with --status")
	}
	if forceFlag && !installFlag {
		return fmt.Errorf("--force flag can only be used with --install")
	}
	if allShells && !installFlag && !uninstallFlag {
		return fmt.Errorf("--all flag can only be used with --install or --uninstall")
	}
	if allShells && len(args) > 0 {
		return fmt.Errorf("cannot specify shell when using --all flag")
	}
	return nil
}

func runInitCommand(cmd *cobra.Command, args []string) error {
	if !installFlag && !uninstallFlag && !statusFlag {
		sh, err := determineShell(args)
		if err != nil {
			return handleHookError(cmd, err, "could not determine shell")
		}
		fmt.Fprint(cmd.OutOrStdout(), shell.Hook(sh, config.StateFile()))
		return nil
	}

	installer, err := newInstaller()
	if err != nil {
		return err
	}

	switch {
	case statusFlag:
		return handleStatusCommand(cmd.OutOrStdout(), installer)
	case uninstallFlag:
		if allShells {
			return uninstallAllShells(cmd.OutOrStdout(), installer)
		}
		return handleUninstallCommand(cmd, installer, args)
	default:
		if allShells {
			return installAllShells(cmd.OutOrStdout(), installer)
		}
		return handleInstallCommand(cmd, installer, args)
	}
}

func handleStatusCommand(w io.Writer, installer *shell.Installer) error {
	statuses := installer.Status()

	if jsonOutput {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(statuses)
	}

	fmt.Fprintln(w)
	util.InfoColor.Fprintln(w, "awsps Shell Hook Installation Status")
	util.InfoColor.Fprintln(w, "════════════════════════════════════")
	fmt.Fprintln(w)

	for _, status := range statuses {
		fmt.Fprintf(w, "Shell: %s\n", status.Shell)
		switch {
		case status.Error != "":
			fmt.Fprintf(w, "  Status: %s\n", util.ErrorColor.Sprint("Error"))
			fmt.Fprintf(w, "  Error:  %s\n", status.Error)
		case status.Installed:
			fmt.Fprintf(w, "  Status: %s\n", util.SuccessColor.Sprint("Installed"))
		default:
			fmt.Fprintf(w, "  Status: %s\n", util.WarnColor.Sprint("Not Installed"))
		}
		fmt.Fprintf(w, "  Path:   %s\n", status.Path)
		fmt.Fprintln(w)
	}
	return nil
}

func handleInstallCommand(cmd *cobra.Command, installer *shell.Installer, args []string) error {
	sh, err := determineShell(args)
	if err != nil {
		return handleHookError(cmd, err, "could not determine shell")
	}

	opts := shell.InstallOptions{
		Shell:     sh,
		StatePath: config.StateFile(),
		Force:     forceFlag,
		Backup:    true,
	}
	if err := installer.Install(opts); err != nil {
		return handleHookError(cmd, err, "installation failed")
	}

	w := cmd.OutOrStdout()
	util.SuccessColor.Fprintf(w, "✓ Installed the awsps hook for %s in %s\n", sh, installer.ConfigFile(sh))
	fmt.Fprintln(w)
	util.InfoColor.Fprintln(w, "To activate the hook:")
	fmt.Fprintf(w, "  %s\n", util.BoldColor.Sprint(reloadHint(sh)))
	fmt.Fprintln(w, "  or restart your terminal")
	return nil
}

func handleUninstallCommand(cmd *cobra.Command, installer *shell.Installer, args []string) error {
	sh, err := determineShell(args)
	if err != nil {
		return handleHookError(cmd, err, "could not determine shell")
	}

	if err := installer.Uninstall(sh); err != nil {
		return handleHookError(cmd, err, "uninstallation failed")
	}

	w := cmd.OutOrStdout()
	util.SuccessColor.Fprintf(w, "✓ Removed the awsps hook for %s from %s\n", sh, installer.ConfigFile(sh))
	fmt.Fprintln(w, "AWS_PROFILE stays set in open shells until they are restarted.")
	return nil
}

func installAllShells(w io.Writer, installer *shell.Installer) error {
	var failures []string
	var installed []string

	for _, sh := range shell.Supported() {
		opts := shell.InstallOptions{
			Shell:     sh,
			StatePath: config.StateFile(),
			Force:     forceFlag,
			Backup:    true,
		}
		if err := installer.Install(opts); err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", sh, err))
		} else {
			installed = append(installed, string(sh))
		}
	}

	if len(installed) > 0 {
		util.SuccessColor.Fprintf(w, "✓ Successfully installed the hook for: %s\n", strings.Join(installed, ", "))
	}
	if len(failures) > 0 {
		fmt.Fprintln(w)
		util.WarnColor.Fprintln(w, "Some installations failed:")
		for _, f := range failures {
			fmt.Fprintf(w, "  • %s\n", f)
		}
	}
	if len(installed) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Please restart your shells or source their configuration files to apply changes.")
	}
	return nil
}

func uninstallAllShells(w io.Writer, installer *shell.Installer) error {
	var failures []string
	var removed []string

	for _, sh := range shell.Supported() {
		if installed, err := installer.IsInstalled(sh); err == nil && !installed {
			continue
		}
		if err := installer.Uninstall(sh); err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", sh, err))
		} else {
			removed = append(removed, string(sh))
		}
	}

	if len(removed) > 0 {
		util.SuccessColor.Fprintf(w, "✓ Successfully removed the hook from: %s\n", strings.Join(removed, ", "))
	}
	if len(failures) > 0 {
		fmt.Fprintln(w)
		util.WarnColor.Fprintln(w, "Some uninstallations failed:")
		for _, f := range failures {
			fmt.Fprintf(w, "  • %s\n", f)
		}
	}
	if len(removed) == 0 && len(failures) == 0 {
		util.InfoColor.Fprintln(w, "No hook installations found to remove.")
	}
	return nil
}

func determineShell(args []string) (shell.Shell, error) {
	if len(args) > 0 {
		sh, err := shell.Parse(args[0])
		if err != nil {
			return "", shell.NewHookError(args[0], "validate", err, "invalid shell specified")
		}
		return sh, nil
	}
	if name := config.Shell(); name != "" {
		return shell.Parse(name)
	}

	sh, err := shell.Detect()
	if err != nil {
		return "", shell.NewHookError("unknown", "detect", err, "automatic shell detection failed")
	}
	return sh, nil
}

func shellNames() []string {
	return shell.SupportedNames()
}

func reloadHint(sh shell.Shell) string {
	switch sh {
	case shell.Zsh:
		return "source ~/.zshrc"
	case shell.Bash:
		return "source ~/.bashrc"
	case shell.Fish:
		return "exec fish"
	case shell.Nushell:
		return "exec nu"
	case shell.PowerShell:
		return ". $PROFILE"
	default:
		return "restart your shell"
	}
}

// handleHookError prints the suggestions carried by a HookError and returns
// a short error for the exit status.
func handleHookError(cmd *cobra.Command, err error, context string) error {
	var hookErr *shell.HookError
	if !errors.As(err, &hookErr) {
		return fmt.Errorf("%s: %w", context, err)
	}

	w := cmd.ErrOrStderr()
	util.ErrorColor.Fprintf(w, "✗ %s\n", context)
	fmt.Fprintln(w)
	fmt.Fprintln(w, hookErr.UserFriendlyMessage())
	fmt.Fprintln(w)
	fmt.Fprintln(w, "For additional help:")
	fmt.Fprintln(w, "  • Run 'awsps init --status' to check current installation status")
	fmt.Fprintln(w, "  • Use 'awsps init --help' for usage information")

	return silentError{err}
}

func init() {
	initCmd.Flags().BoolVar(&installFlag, "install", false, "Add the hook to the shell configuration file")
	initCmd.Flags().BoolVar(&uninstallFlag, "uninstall", false, "Remove the hook from the shell configuration file")
	initCmd.Flags().BoolVar(&statusFlag, "status", false, "Show installation status for all shells")
	initCmd.Flags().BoolVar(&forceFlag, "force", false, "Replace an existing hook installation")
	initCmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output status in JSON format (only with --status)")
	initCmd.Flags().BoolVar(&allShells, "all", false, "Install/uninstall the hook for all supported shells")

	rootCmd.AddCommand(initCmd)
}
