package cmd

import (
	"github.com/spf13/cobra"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the active profile",
	Long: `Removes ~/.aws/current-profile, same as 'awsps -d'. With --current it prints the
command that unsets AWS_PROFILE instead.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAction(cmd, actionDeactivate, "")
	},
}

func init() {
	rootCmd.AddCommand(clearCmd)
}
