// Package config provides configuration management for the build advisor.
package config

import (
	"errors"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Surface names a runnable part of the application. Each surface has its own
// set of required settings.
type Surface string

const (
	SurfaceTrain Surface = "train"
	SurfaceCrawl Surface = "crawl"
	SurfaceServe Surface = "serve"
	SurfaceBot   Surface = "bot"
)

// Config holds all configuration values for the application.
type Config struct {
	// Discord
	DiscordToken string

	// Riot API
	RiotAPIKey          string
	RiotBaseURLMatch    string // regional routing (europe.api.riotgames.com)
	RiotBaseURLPlatform string // platform routing for league/summoner APIs (euw1.api.riotgames.com)

	// Redis
	RedisURL         string
	RedisKeySnapshot string
	RedisKeyItems    string

	// Data Dragon
	DDragonBaseURL string
	DDragonVersion string // empty means "latest"
	DDragonLocale  string

	// Paths
	DataDir      string
	MatchesDir   string
	SnapshotFile string

	// HTTP
	HTTPAddr    string
	HealthAddr  string
	CORSOrigins []string

	// Crawler
	CrawlQueue            string
	CrawlTier             string
	CrawlDivision         string
	CrawlQueueID          int
	CrawlPlayers          int
	CrawlMatchesPerPlayer int
	CrawlSleep            time.Duration
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	cfg := &Config{
		// Discord
		DiscordToken: os.Getenv("DISCORD_TOKEN"),

		// Riot API
		RiotAPIKey:          os.Getenv("RIOT_API_KEY"),
		RiotBaseURLMatch:    getEnvOrDefault("RIOT_BASE_URL_MATCH", "https://europe.api.riotgames.com"),
		RiotBaseURLPlatform: getEnvOrDefault("RIOT_BASE_URL_PLATFORM", "https://euw1.api.riotgames.com"),

		// Redis
		RedisURL:         os.Getenv("REDIS_URL"),
		RedisKeySnapshot: getEnvOrDefault("REDIS_KEY_SNAPSHOT", "buildadvisor:snapshot"),
		RedisKeyItems:    getEnvOrDefault("REDIS_KEY_ITEMS", "buildadvisor:items"),

		// Data Dragon
		DDragonBaseURL: getEnvOrDefault("DDRAGON_BASE_URL", "https://ddragon.leagueoflegends.com"),
		DDragonVersion: os.Getenv("DDRAGON_VERSION"),
		DDragonLocale:  getEnvOrDefault("DDRAGON_LOCALE", "en_US"),

		// Paths
		DataDir:      getEnvOrDefault("DATA_DIR", "data"),
		MatchesDir:   getEnvOrDefault("MATCHES_DIR", "parsed_matches"),
		SnapshotFile: getEnvOrDefault("SNAPSHOT_FILE", "ai_brain.json"),

		// HTTP
		HTTPAddr:    getEnvOrDefault("HTTP_ADDR", ":8081"),
		HealthAddr:  getEnvOrDefault("HEALTH_ADDR", ":8080"),
		CORSOrigins: splitList(getEnvOrDefault("CORS_ORIGINS", "*")),

		// Crawler
		CrawlQueue:            getEnvOrDefault("CRAWL_QUEUE", "RANKED_SOLO_5x5"),
		CrawlTier:             getEnvOrDefault("CRAWL_TIER", "PLATINUM"),
		CrawlDivision:         getEnvOrDefault("CRAWL_DIVISION", "IV"),
		CrawlQueueID:          getEnvInt("CRAWL_QUEUE_ID", 420),
		CrawlPlayers:          getEnvInt("CRAWL_PLAYERS", 1000),
		CrawlMatchesPerPlayer: getEnvInt("CRAWL_MATCHES_PER_PLAYER", 3),
		CrawlSleep:            getEnvDuration("CRAWL_SLEEP", time.Second),
	}

	return cfg, nil
}

// ValidateFor checks that every value the given surface needs is set.
func (c *Config) ValidateFor(surface Surface) error {
	var errs []string

	switch surface {
	case SurfaceBot:
		if c.DiscordToken == "" {
			errs = append(errs, "DISCORD_TOKEN is missing")
		}
	case SurfaceCrawl:
		if c.RiotAPIKey == "" {
			errs = append(errs, "RIOT_API_KEY is missing")
		}
		if c.CrawlPlayers <= 0 {
			errs = append(errs, "CRAWL_PLAYERS must be positive")
		}
		if c.CrawlMatchesPerPlayer <= 0 {
			errs = append(errs, "CRAWL_MATCHES_PER_PLAYER must be positive")
		}
	case SurfaceServe:
		if c.HTTPAddr == "" {
			errs = append(errs, "HTTP_ADDR is missing")
		}
	}

	if c.MatchesDir == "" {
		errs = append(errs, "MATCHES_DIR is missing")
	}
	if c.SnapshotFile == "" {
		errs = append(errs, "SNAPSHOT_FILE is missing")
	}

	if len(errs) > 0 {
		log.Println("Config errors:")
		for _, e := range errs {
			log.Printf("  - %s", e)
		}
		return errors.New("configuration validation failed")
	}

	return nil
}

// ItemDataPath returns the full path to the cached item.json
func (c *Config) ItemDataPath() string {
	return filepath.Join(c.DataDir, "item.json")
}

// SnapshotPath returns the full path to the persisted transition tables.
func (c *Config) SnapshotPath() string {
	if filepath.IsAbs(c.SnapshotFile) {
		return c.SnapshotFile
	}
	return filepath.Join(c.DataDir, c.SnapshotFile)
}

// getEnvOrDefault returns the environment variable value or a default.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Invalid %s=%q, using %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Invalid %s=%q, using %s", key, value, defaultValue)
		return defaultValue
	}
	return d
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
