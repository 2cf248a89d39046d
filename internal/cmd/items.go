package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/buildadvisor/internal/advisor"
	"github.com/buildadvisor/internal/config"
	"github.com/buildadvisor/internal/data"
	"github.com/buildadvisor/internal/storage"
)

var itemsVersion string

var itemsCmd = &cobra.Command{
	Use:   "items",
	Short: "Manage the item catalog",
}

var itemsFetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download item.json from Data Dragon",
	Long: `Fetch downloads the item catalog for a patch (the latest by default) and
replaces the local copy under DATA_DIR and the Redis copy when REDIS_URL is
set. Retrain afterwards so item names and final-item rules follow the patch.`,
	Args: cobra.NoArgs,
	RunE: runItemsFetch,
}

func init() {
	itemsFetchCmd.Flags().StringVar(&itemsVersion, "version", "", "Patch version, e.g. 14.23.1 (default DDRAGON_VERSION or latest)")
	itemsCmd.AddCommand(itemsFetchCmd)
	rootCmd.AddCommand(itemsCmd)
}

func runItemsFetch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(config.SurfaceTrain)
	if err != nil {
		return err
	}
	version := cfg.DDragonVersion
	if itemsVersion != "" {
		version = itemsVersion
	}

	redis := storage.NewRedisClient(ctx, cfg.RedisURL)
	defer redis.Close()

	fetcher := data.NewFetcher(cfg.DDragonBaseURL, cfg.DDragonLocale, redis, cfg.RedisKeyItems)
	catalog, err := fetcher.Refresh(ctx, cfg.ItemDataPath(), version)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Saved %d items (v%s, %d final) to %s\n",
		catalog.Len(), catalog.Version(), countFinalItems(catalog), cfg.ItemDataPath())
	return nil
}

// countFinalItems reports how many catalog items a build can contain.
func countFinalItems(catalog *data.Catalog) int {
	n := 0
	for _, id := range catalog.IDs() {
		if advisor.IsFinalItem(catalog, id) {
			n++
		}
	}
	return n
}
