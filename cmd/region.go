package cmd

import (
	"fmt"
	"maps"
	"slices"

	"awsps/internal/aws"
	"awsps/internal/tui"

	"github.com/spf13/cobra"
)

var regionCmd = &cobra.Command{
	Use:     "region",
	Short:   "Show AWS regions known to awsps",
	Aliases: []string{"r"},
}

var regionListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List the AWS regions used to validate profile settings",
	Aliases: []string{"ls"},
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		regions := slices.Sorted(maps.Keys(aws.AWSRegions))

		fmt.Fprintln(cmd.OutOrStdout(), tui.InfoStyle.Render("Known AWS Regions:"))
		for _, region := range regions {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", region)
		}
		return nil
	},
}

func init() {
	regionCmd.AddCommand(regionListCmd)
	rootCmd.AddCommand(regionCmd)
}
