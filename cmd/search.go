package cmd

import (
	"fmt"
	"io"
	"slices"

	"awsps/internal/aws"
	"awsps/internal/fuzzy"
	"awsps/internal/tui"

	"github.com/spf13/cobra"
)

var (
	searchAccountID bool
	searchProfile   bool
	searchSSO       bool
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Fuzzy search AWS profiles by name, account ID or SSO session",
	Long: `Search the AWS config file with the same fuzzy matcher as the selector.

By default, searches profile names, account IDs and SSO sessions.
Use specific flags to limit search scope.

Examples:
  awsps search prd                   # Matches prod, prod-admin, ...
  awsps search --account 1234        # Search only account IDs
  awsps search --sso corp            # Search only SSO session names`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

// SearchResult is one profile that matched, with the field it matched on.
type SearchResult struct {
	Field   string
	Score   int
	Profile aws.Profile
}

func runSearch(cmd *cobra.Command, args []string) error {
	path, err := configPath()
	if err != nil {
		return err
	}
	profiles, err := aws.LoadProfiles(path)
	if err != nil {
		return fmt.Errorf("failed to list profiles: %w", err)
	}

	results := searchProfiles(profiles, args[0])
	if len(results) == 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "No results found for query: %s\n", args[0])
		return nil
	}

	displayResults(cmd.OutOrStdout(), results, args[0])
	return nil
}

// searchProfiles ranks profiles by their best scoring field. Each profile
// appears at most once.
func searchProfiles(profiles []aws.Profile, query string) []SearchResult {
	// If no specific flags are set, search everything
	everything := !searchProfile && !searchAccountID && !searchSSO

	type field struct {
		name    string
		enabled bool
		value   func(aws.Profile) string
	}
	fields := []field{
		{"Profile", searchProfile || everything, func(p aws.Profile) string { return p.Name }},
		{"Account ID", searchAccountID || everything, func(p aws.Profile) string { return p.AccountID }},
		{"SSO Session", searchSSO || everything, func(p aws.Profile) string { return p.SSOSession }},
	}

	best := make(map[int]SearchResult)
	for _, f := range fields {
		if !f.enabled {
			continue
		}
		keys := make([]string, len(profiles))
		for i, p := range profiles {
			keys[i] = f.value(p)
		}
		for _, m := range fuzzy.Rank(keys, query) {
			if keys[m.Index] == "" {
				continue
			}
			if r, ok := best[m.Index]; ok && r.Score >= m.Score {
				continue
			}
			best[m.Index] = SearchResult{Field: f.name, Score: m.Score, Profile: profiles[m.Index]}
		}
	}

	results := make([]SearchResult, 0, len(best))
	for i := range profiles {
		if r, ok := best[i]; ok {
			results = append(results, r)
		}
	}
	// Equal scores keep config order.
	slices.SortStableFunc(results, func(a, b SearchResult) int {
		return b.Score - a.Score
	})
	return results
}

func displayResults(w io.Writer, results []SearchResult, query string) {
	fmt.Fprintf(w, "%s Found %d result(s) for '%s':\n\n",
		tui.SuccessStyle.Render("✓"), len(results), query)

	for i, result := range results {
		if i > 0 {
			fmt.Fprintln(w)
		}
		p := result.Profile

		style := tui.InfoStyle
		switch p.Type {
		case aws.ProfileTypeSSO:
			style = tui.ProfileSSO
		case aws.ProfileTypeIAM:
			style = tui.ProfileRole
		}
		fmt.Fprintf(w, "%s %s %s\n", style.Render("●"), style.Render(p.Name),
			tui.MutedStyle.Render("("+result.Field+")"))

		details := [][2]string{
			{"Account:", p.AccountID},
			{"Region:", p.Region},
			{"Type:", string(p.Type)},
			{"SSO Session:", p.SSOSession},
			{"Role:", p.RoleName},
			{"Role ARN:", p.RoleARN},
			{"Source:", p.SourceProfile},
			{"Start URL:", p.SSOStartURL},
		}
		for _, d := range details {
			if d[1] != "" {
				fmt.Fprintf(w, "  %s %s\n", tui.MutedStyle.Render(d[0]), d[1])
			}
		}
	}
}

func init() {
	searchCmd.Flags().BoolVarP(&searchAccountID, "account", "a", false, "Search only account IDs")
	searchCmd.Flags().BoolVarP(&searchProfile, "profile", "p", false, "Search only profile names")
	searchCmd.Flags().BoolVarP(&searchSSO, "sso", "s", false, "Search only SSO session names")

	rootCmd.AddCommand(searchCmd)
}
