package cmd

import (
	"fmt"

	"awsps/internal/aws"
	"awsps/internal/browser"
	"awsps/internal/config"
	"awsps/internal/state"
	"awsps/internal/tui"
	"awsps/internal/util"

	"github.com/spf13/cobra"
)

var chromeProfile string

var openURL = browser.OpenURL

var profileCmd = &cobra.Command{
	Use:     "profile",
	Short:   "Inspect AWS profiles",
	Aliases: []string{"p"},
}

var profileListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List all available AWS profiles",
	Aliases: []string{"ls"},
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := configPath()
		if err != nil {
			return err
		}
		profiles, err := aws.LoadProfiles(path)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(profiles) == 0 {
			util.WarnColor.Fprintf(out, "No profiles found in %s.\n", path)
			return nil
		}

		active, err := state.New(config.StateFile()).Current()
		if err != nil {
			util.WarnColor.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
		}

		util.InfoColor.Fprintln(out, "Available AWS Profiles:")
		var data [][]string
		for _, p := range profiles {
			name := p.Name
			if p.Name == active {
				name = tui.ProfileActiveStyle.Render(p.Name + " *")
			}
			data = append(data, []string{name, renderType(p.Type), p.AccountID, p.Region, p.RoleName})
		}

		util.PrintTable(out, []string{"Profile", "Type", "Account", "Region", "Role"}, data)
		return nil
	},
}

func renderType(t aws.ProfileType) string {
	switch t {
	case aws.ProfileTypeSSO:
		return tui.ProfileSSO.Render(string(t))
	case aws.ProfileTypeIAM:
		return tui.ProfileRole.Render(string(t))
	default:
		return string(t)
	}
}

var profileCurrentCmd = &cobra.Command{
	Use:   "current",
	Short: "Show the currently active profile name",
	Long:  `Display the profile name saved in the state file (~/.aws/current-profile).`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		profileName, err := state.New(config.StateFile()).Current()
		if err != nil {
			return err
		}
		if profileName == "" {
			return fmt.Errorf("no active profile found")
		}
		fmt.Fprintln(cmd.OutOrStdout(), profileName)
		return nil
	},
}

var profileShowCmd = &cobra.Command{
	Use:               "show <profile>",
	Short:             "Show the resolved settings of a profile",
	Long:              `Resolve a profile from the AWS config file, following sso-session sections. Nothing is sent to AWS.`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: aws.CompleteProfiles(configPath),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := configPath()
		if err != nil {
			return err
		}
		settings, err := aws.Resolve(cmd.Context(), path, args[0])
		if err != nil {
			return err
		}

		var data [][]string
		var unknownRegion string
		for _, s := range settings {
			data = append(data, []string{s.Key, s.Value})
			if s.Key == "region" && !aws.IsValidRegion(s.Value) {
				unknownRegion = s.Value
			}
		}
		util.PrintTable(cmd.OutOrStdout(), []string{"Setting", "Value"}, data)

		if unknownRegion != "" {
			util.WarnColor.Fprintf(cmd.ErrOrStderr(), "Warning: '%s' is not a known AWS region\n", unknownRegion)
		}
		return nil
	},
}

var profileOpenCmd = &cobra.Command{
	Use:               "open <profile>",
	Short:             "Open the SSO start page of a profile in the browser",
	Long:              `Open the SSO start URL of a profile, optionally in a specific Chrome profile (aliases come from [chrome_profiles] in the awsps config).`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: aws.CompleteProfiles(configPath),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := configPath()
		if err != nil {
			return err
		}
		profiles, err := aws.LoadProfiles(path)
		if err != nil {
			return err
		}
		profile, err := aws.Find(profiles, args[0])
		if err != nil {
			return err
		}
		if profile.SSOStartURL == "" {
			return fmt.Errorf("profile '%s' has no SSO start URL", profile.Name)
		}

		util.InfoColor.Fprintf(cmd.ErrOrStderr(), "Opening %s\n", profile.SSOStartURL)
		if err := openURL(profile.SSOStartURL, chromeProfile); err != nil {
			return fmt.Errorf("failed to open browser: %w", err)
		}
		return nil
	},
}

func init() {
	profileOpenCmd.Flags().StringVar(&chromeProfile, "chrome-profile", "", "Chrome profile alias or directory to open the page in")

	profileCmd.AddCommand(profileListCmd)
	profileCmd.AddCommand(profileCurrentCmd)
	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileOpenCmd)
	rootCmd.AddCommand(profileCmd)
}
