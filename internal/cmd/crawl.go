package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/buildadvisor/internal/config"
	"github.com/buildadvisor/internal/corpus"
	"github.com/buildadvisor/internal/crawler"
	"github.com/buildadvisor/internal/services/riot"
	"github.com/buildadvisor/internal/storage"
)

var (
	crawlTier     string
	crawlDivision string
	crawlPage     int
	crawlPlayers  int
	crawlMatches  int
	crawlTrain    bool
)

var crawlCmd = &cobra.Command{
	Use:   "crawl",
	Short: "Collect ranked matches from the Riot API into the corpus",
	Long: `Crawl lists one page of a ranked league division, fetches each player's
recent matches with their timelines and saves them as match files under
MATCHES_DIR. Matches already on disk are skipped. Interrupt to stop early;
everything saved so far is kept.`,
	Args: cobra.NoArgs,
	RunE: runCrawl,
}

func init() {
	crawlCmd.Flags().StringVar(&crawlTier, "tier", "", "League tier (default CRAWL_TIER)")
	crawlCmd.Flags().StringVar(&crawlDivision, "division", "", "League division (default CRAWL_DIVISION)")
	crawlCmd.Flags().IntVar(&crawlPage, "page", 1, "League entries page")
	crawlCmd.Flags().IntVar(&crawlPlayers, "players", 0, "Players to crawl (default CRAWL_PLAYERS)")
	crawlCmd.Flags().IntVar(&crawlMatches, "matches", 0, "Matches per player (default CRAWL_MATCHES_PER_PLAYER)")
	crawlCmd.Flags().BoolVar(&crawlTrain, "train", false, "Retrain the tables when the crawl finishes")
	rootCmd.AddCommand(crawlCmd)
}

// crawlConfig builds the crawler settings from config, with flags on top.
func crawlConfig(cfg *config.Config) crawler.Config {
	cc := crawler.Config{
		Queue:            cfg.CrawlQueue,
		Tier:             cfg.CrawlTier,
		Division:         cfg.CrawlDivision,
		Page:             crawlPage,
		QueueID:          cfg.CrawlQueueID,
		MaxPlayers:       cfg.CrawlPlayers,
		MatchesPerPlayer: cfg.CrawlMatchesPerPlayer,
		Sleep:            cfg.CrawlSleep,
	}
	if crawlTier != "" {
		cc.Tier = crawlTier
	}
	if crawlDivision != "" {
		cc.Division = crawlDivision
	}
	if crawlPlayers > 0 {
		cc.MaxPlayers = crawlPlayers
	}
	if crawlMatches > 0 {
		cc.MatchesPerPlayer = crawlMatches
	}
	return cc
}

func runCrawl(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(config.SurfaceCrawl)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	redis := storage.NewRedisClient(ctx, cfg.RedisURL)
	defer redis.Close()

	c, err := crawler.New(riot.NewClient(cfg, redis), corpus.NewStore(cfg.MatchesDir), crawlConfig(cfg))
	if err != nil {
		return err
	}

	stats, err := c.Run(ctx)
	if stats != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "Crawl finished: %s\n", stats)
	}
	if err != nil && ctx.Err() == nil {
		return err
	}

	if !crawlTrain || ctx.Err() != nil || stats == nil || stats.Saved == 0 {
		return nil
	}

	a, err := newApp(ctx, config.SurfaceTrain)
	if err != nil {
		return err
	}
	defer a.Close()

	tables, report, err := a.retrain(ctx)
	if tables == nil {
		return fmt.Errorf("training failed: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Trained %d champions: %s\n", len(tables.Champions()), report)
	return err
}
