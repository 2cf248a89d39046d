package config

import (
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("MATCHES_DIR", "")
	t.Setenv("CRAWL_PLAYERS", "")
	t.Setenv("CRAWL_SLEEP", "")
	t.Setenv("DDRAGON_VERSION", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.MatchesDir != "parsed_matches" {
		t.Errorf("Expected default matches dir, got %q", cfg.MatchesDir)
	}
	if cfg.CrawlPlayers != 1000 {
		t.Errorf("Expected 1000 crawl players, got %d", cfg.CrawlPlayers)
	}
	if cfg.CrawlSleep != time.Second {
		t.Errorf("Expected 1s crawl sleep, got %s", cfg.CrawlSleep)
	}
	if cfg.DDragonVersion != "" {
		t.Errorf("Expected empty Data Dragon version (latest), got %q", cfg.DDragonVersion)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("CRAWL_PLAYERS", "25")
	t.Setenv("CRAWL_SLEEP", "250ms")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test")

	cfg, _ := Load()

	if cfg.CrawlPlayers != 25 {
		t.Errorf("Expected 25 crawl players, got %d", cfg.CrawlPlayers)
	}
	if cfg.CrawlSleep != 250*time.Millisecond {
		t.Errorf("Expected 250ms, got %s", cfg.CrawlSleep)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "http://b.test" {
		t.Errorf("Unexpected CORS origins: %v", cfg.CORSOrigins)
	}
}

func TestLoad_InvalidNumberFallsBack(t *testing.T) {
	t.Setenv("CRAWL_MATCHES_PER_PLAYER", "lots")

	cfg, _ := Load()
	if cfg.CrawlMatchesPerPlayer != 3 {
		t.Errorf("Expected fallback of 3, got %d", cfg.CrawlMatchesPerPlayer)
	}
}

func TestValidateFor(t *testing.T) {
	base := func() *Config {
		return &Config{
			MatchesDir:            "parsed_matches",
			SnapshotFile:          "ai_brain.json",
			HTTPAddr:              ":8081",
			CrawlPlayers:          10,
			CrawlMatchesPerPlayer: 3,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		surface Surface
		wantErr bool
	}{
		{"train needs nothing extra", func(c *Config) {}, SurfaceTrain, false},
		{"bot without token", func(c *Config) {}, SurfaceBot, true},
		{"bot with token", func(c *Config) { c.DiscordToken = "x" }, SurfaceBot, false},
		{"crawl without key", func(c *Config) {}, SurfaceCrawl, true},
		{"crawl with key", func(c *Config) { c.RiotAPIKey = "RGAPI-x" }, SurfaceCrawl, false},
		{"crawl zero players", func(c *Config) { c.RiotAPIKey = "RGAPI-x"; c.CrawlPlayers = 0 }, SurfaceCrawl, true},
		{"missing matches dir", func(c *Config) { c.MatchesDir = "" }, SurfaceTrain, true},
		{"serve without addr", func(c *Config) { c.HTTPAddr = "" }, SurfaceServe, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := cfg.ValidateFor(tt.surface)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFor(%s) error = %v, wantErr %v", tt.surface, err, tt.wantErr)
			}
		})
	}
}

func TestSnapshotPath(t *testing.T) {
	cfg := &Config{DataDir: "data", SnapshotFile: "ai_brain.json"}
	if got := cfg.SnapshotPath(); got != filepath.Join("data", "ai_brain.json") {
		t.Errorf("Unexpected snapshot path %q", got)
	}

	abs := filepath.Join(t.TempDir(), "brain.json")
	cfg.SnapshotFile = abs
	if got := cfg.SnapshotPath(); got != abs {
		t.Errorf("Absolute snapshot path should be kept, got %q", got)
	}

	if got := cfg.ItemDataPath(); got != filepath.Join("data", "item.json") {
		t.Errorf("Unexpected item path %q", got)
	}
}
