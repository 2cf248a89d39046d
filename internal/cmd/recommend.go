package cmd

import (
	"fmt"
	"io"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/buildadvisor/internal/advisor"
	"github.com/buildadvisor/internal/config"
)

var recommendJSON bool

var recommendCmd = &cobra.Command{
	Use:   "recommend <champion> [opponent]",
	Short: "Recommend an item build for a champion",
	Long: `Recommend prints the general build for a champion next to the build
learned against a specific lane opponent. The matchup can also be written as
a single argument, e.g. "Garen vs Darius".`,
	Example: `  buildadvisor recommend Garen
  buildadvisor recommend Garen Darius
  buildadvisor recommend "Garen vs Darius"`,
	Args: cobra.RangeArgs(1, 3),
	RunE: runRecommend,
}

func init() {
	recommendCmd.Flags().BoolVar(&recommendJSON, "json", false, "Print the result as JSON")
	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := newApp(ctx, config.SurfaceTrain)
	if err != nil {
		return err
	}
	defer a.Close()

	adv, err := a.loadAdvisor(ctx)
	if err != nil {
		return err
	}

	champion, opponent := matchupArgs(args)
	champion = adv.ResolveChampion(champion)
	opponent = adv.ResolveChampion(opponent)

	general, specific := adv.Compare(champion, opponent)
	if recommendJSON {
		return writeComparisonJSON(cmd.OutOrStdout(), general, specific)
	}
	writeComparison(cmd.OutOrStdout(), general, specific)
	return nil
}

// matchupArgs accepts "Garen Darius", "Garen vs Darius" split by the shell,
// or the whole matchup in one argument.
func matchupArgs(args []string) (champion, opponent string) {
	if len(args) == 2 {
		return strings.TrimSpace(args[0]), strings.TrimSpace(args[1])
	}
	return advisor.ParseMatchup(strings.Join(args, " "))
}

func writeComparison(w io.Writer, general, specific advisor.Recommendation) {
	if !general.Found() {
		fmt.Fprintf(w, "No data for %s.\n", general.Champion)
		return
	}

	fmt.Fprintf(w, "General build for %s:\n", general.Champion)
	writeItems(w, general.Items)

	if specific.Opponent == "" {
		return
	}
	fmt.Fprintln(w)
	if !specific.Found() {
		fmt.Fprintf(w, "No games of %s against %s, use the general build.\n", specific.Champion, specific.Opponent)
		return
	}
	fmt.Fprintf(w, "Build for %s vs %s:\n", specific.Champion, specific.Opponent)
	writeItems(w, specific.Items)
}

func writeItems(w io.Writer, items []advisor.RecommendedItem) {
	if len(items) == 0 {
		fmt.Fprintln(w, "  (no completed items recorded)")
		return
	}
	for i, it := range items {
		fmt.Fprintf(w, "  %d. %s (%.1f)\n", i+1, it.Name, it.Score)
	}
}

func writeComparisonJSON(w io.Writer, general, specific advisor.Recommendation) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]advisor.Recommendation{
		"general":  general,
		"specific": specific,
	})
}
