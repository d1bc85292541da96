package cmd

import (
	"fmt"
	"os"
	"os/exec"

	"awsps/internal/aws"
	"awsps/internal/util"

	"github.com/spf13/cobra"
)

var execCmd = &cobra.Command{
	Use:   "exec <profile> -- <command> [args...]",
	Short: "Execute a command with AWS_PROFILE set to a profile",
	Long: `Runs a command with AWS_PROFILE set to the given profile, without changing
the active profile.

Example:
  awsps exec prod-admin -- aws s3 ls`,
	Args:              cobra.MinimumNArgs(1),
	ValidArgsFunction: aws.CompleteProfiles(configPath),
	RunE: func(cmd *cobra.Command, args []string) error {
		dash := cmd.ArgsLenAtDash()
		if dash != 1 {
			return fmt.Errorf("usage: awsps exec <profile> -- <command> [args...]")
		}
		profileName := args[0]
		commandAndArgs := args[1:]
		if len(commandAndArgs) == 0 {
			return fmt.Errorf("no command provided to execute")
		}

		path, err := configPath()
		if err != nil {
			return err
		}
		profiles, err := aws.LoadProfiles(path)
		if err != nil {
			return err
		}
		if _, err := aws.Find(profiles, profileName); err != nil {
			return err
		}

		command := exec.CommandContext(cmd.Context(), commandAndArgs[0], commandAndArgs[1:]...)
		command.Stdout = cmd.OutOrStdout()
		command.Stderr = cmd.ErrOrStderr()
		command.Stdin = os.Stdin
		command.Env = append(os.Environ(), "AWS_PROFILE="+profileName)

		util.SuccessColor.Fprintf(cmd.ErrOrStderr(), "Executing '%s' with profile '%s'...\n\n", commandAndArgs[0], profileName)
		return command.Run()
	},
}

func init() {
	rootCmd.AddCommand(execCmd)
}
