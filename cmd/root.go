/*
AWSM - AWS Manager
Copyright (c) 2024 Alessandro Gallo. All rights reserved.

Licensed under the Business Source License 1.1.
See LICENSE file for full terms.
*/

package cmd

import (
	"errors"
	"fmt"
	"os"

	"awsps/internal/aws"
	"awsps/internal/config"
	"awsps/internal/logger"
	"awsps/internal/util"

	"github.com/spf13/cobra"
)

var (
	version string
	commit  string
	date    string
)

var (
	activateFlag   string
	newFlag        string
	deactivateFlag bool
	currentFlag    bool
	shellFlag      string
	configFlag     string
	debugFlag      bool
)

var rootCmd = &cobra.Command{
	Use:   "awsps",
	Short: "Pick the active AWS profile with an inline fuzzy selector",
	Long: `awsps (AWS Profile Selector) lists the profiles in your AWS config file and lets
you pick one by typing a few characters. The choice is saved to
~/.aws/current-profile, which the shell hook installed by 'awsps init' exports as
AWS_PROFILE before each prompt.

Examples:
  # Pick a profile interactively
  awsps

  # Activate a known profile without the selector
  awsps -a prod-admin

  # Set AWS_PROFILE in the current shell only
  eval "$(awsps -c)"

  # Forget the active profile
  awsps -d`,
	Version:           version,
	Args:              cobra.NoArgs,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupLogging,
	RunE:              runRoot,
}

func Execute() {
	err := rootCmd.Execute()
	logger.Close()
	if err != nil {
		var reported silentError
		if !errors.As(err, &reported) {
			util.ErrorColor.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, date: %s)", version, commit, date)
}

func setupLogging(cmd *cobra.Command, args []string) error {
	if err := logger.Init(config.LogFile(), debugFlag || config.Debug()); err != nil {
		util.WarnColor.Fprintf(cmd.ErrOrStderr(), "Warning: debug logging disabled: %v\n", err)
	}
	return nil
}

// configPath resolves the AWS config file from --config, AWS_CONFIG_FILE or
// the default location.
func configPath() (string, error) {
	return aws.ConfigPath(configFlag)
}

func init() {
	rootCmd.Flags().StringVarP(&activateFlag, "activate", "a", "", "Activate a specific profile by name (skips interactive selection)")
	rootCmd.Flags().StringVarP(&newFlag, "new", "n", "", "Set a profile name that is not available in the list")
	rootCmd.Flags().BoolVarP(&deactivateFlag, "deactivate", "d", false, "Deactivate AWS_PROFILE")

	rootCmd.PersistentFlags().BoolVarP(&currentFlag, "current", "c", false, "Print a shell command for the current shell instead of saving the profile")
	rootCmd.PersistentFlags().StringVar(&shellFlag, "shell", "", "Shell syntax for --current output (bash, zsh, fish, nu, powershell)")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Path to the AWS config file (default: $AWS_CONFIG_FILE or ~/.aws/config)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Write debug logs to the awsps log file")

	rootCmd.RegisterFlagCompletionFunc("activate", aws.CompleteProfiles(configPath))
	rootCmd.RegisterFlagCompletionFunc("shell", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return shellNames(), cobra.ShellCompDirectiveNoFileComp
	})
}
