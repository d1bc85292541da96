package cmd

import (
	"github.com/spf13/cobra"
)

var selectCmd = &cobra.Command{
	Use:     "select",
	Short:   "Interactively select and activate an AWS profile",
	Long:    `Opens the inline profile selector. Type to filter, arrows to move, enter to activate, esc to cancel.`,
	Aliases: []string{"s"},
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAction(cmd, actionSelect, "")
	},
}

func init() {
	rootCmd.AddCommand(selectCmd)
}
