package cmd

import (
	"context"
	"fmt"

	"github.com/buildadvisor/internal/advisor"
	"github.com/buildadvisor/internal/config"
	"github.com/buildadvisor/internal/corpus"
	"github.com/buildadvisor/internal/data"
	"github.com/buildadvisor/internal/storage"
)

// app bundles what every surface needs: config, the optional Redis cache,
// the item catalog, the match corpus and the snapshot stores.
type app struct {
	cfg     *config.Config
	redis   *storage.RedisClient
	catalog *data.Catalog
	corpus  *corpus.Store
	stores  []advisor.SnapshotStore
}

func loadConfig(surface config.Surface) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}
	if err := cfg.ValidateFor(surface); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newApp loads config for surface, connects Redis and loads the item catalog.
func newApp(ctx context.Context, surface config.Surface) (*app, error) {
	cfg, err := loadConfig(surface)
	if err != nil {
		return nil, err
	}

	redis := storage.NewRedisClient(ctx, cfg.RedisURL)

	fetcher := data.NewFetcher(cfg.DDragonBaseURL, cfg.DDragonLocale, redis, cfg.RedisKeyItems)
	catalog, err := fetcher.LoadOrFetch(ctx, cfg.ItemDataPath(), cfg.DDragonVersion)
	if err != nil {
		redis.Close()
		return nil, fmt.Errorf("item catalog: %w", err)
	}

	// The local file is read first; Redis is a shared fallback.
	stores := []advisor.SnapshotStore{storage.NewFileSnapshotStore(cfg.SnapshotPath())}
	if redis.Enabled() {
		stores = append(stores, storage.NewRedisSnapshotStore(redis, cfg.RedisKeySnapshot))
	}

	return &app{
		cfg:     cfg,
		redis:   redis,
		catalog: catalog,
		corpus:  corpus.NewStore(cfg.MatchesDir),
		stores:  stores,
	}, nil
}

// retrain trains from the corpus and persists to every store.
func (a *app) retrain(ctx context.Context) (*advisor.Tables, *advisor.TrainReport, error) {
	return advisor.Retrain(ctx, a.corpus, a.catalog, a.stores...)
}

// loadAdvisor returns an advisor over the persisted tables, training first if
// no snapshot exists.
func (a *app) loadAdvisor(ctx context.Context) (*advisor.Advisor, error) {
	tables, err := advisor.LoadOrTrain(ctx, a.corpus, a.catalog, a.stores...)
	if err != nil {
		return nil, err
	}
	return advisor.NewAdvisor(a.catalog, tables), nil
}

func (a *app) Close() error {
	return a.redis.Close()
}
