package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/buildadvisor/internal/advisor"
	"github.com/buildadvisor/internal/config"
)

var trainNoSave bool

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Learn transition tables from the match corpus",
	Long: `Train reads every match file under MATCHES_DIR, builds the general and
matchup transition tables and writes the snapshot to SNAPSHOT_FILE (and to
Redis when REDIS_URL is set).`,
	Args: cobra.NoArgs,
	RunE: runTrain,
}

func init() {
	trainCmd.Flags().BoolVar(&trainNoSave, "no-save", false, "Train without writing a snapshot")
	rootCmd.AddCommand(trainCmd)
}

func runTrain(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := newApp(ctx, config.SurfaceTrain)
	if err != nil {
		return err
	}
	defer a.Close()

	var (
		tables *advisor.Tables
		report *advisor.TrainReport
	)
	if trainNoSave {
		tables, report, err = advisor.Train(ctx, a.corpus, a.catalog)
	} else {
		tables, report, err = a.retrain(ctx)
	}
	if tables == nil {
		return fmt.Errorf("training failed: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Trained %d champions in %s\n", len(tables.Champions()), report.Duration.Round(time.Millisecond))
	fmt.Fprintf(out, "  %s\n", report)
	if err != nil {
		return fmt.Errorf("snapshot not saved: %w", err)
	}
	return nil
}
