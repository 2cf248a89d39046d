// Package crawler collects ranked matches from the Riot API into the match
// record store.
package crawler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/bits-and-blooms/bloom/v3"

	"github.com/buildadvisor/internal/corpus"
	"github.com/buildadvisor/internal/services/riot"
)

// PUUIDs are 78 characters; anything shorter is a legacy summoner ID.
const minPUUIDLength = 70

// MatchAPI is the part of the Riot client the crawler uses.
type MatchAPI interface {
	GetLeagueEntries(ctx context.Context, queue, tier, division string, page int) ([]riot.LeagueEntry, error)
	GetPUUIDBySummonerID(ctx context.Context, summonerID string) (string, error)
	GetMatchIDsByPUUID(ctx context.Context, puuid string, queueID, count int) ([]string, error)
	GetMatchDetails(ctx context.Context, matchID string) (*riot.MatchResponse, error)
	GetMatchTimeline(ctx context.Context, matchID string) (*riot.TimelineResponse, error)
}

// Sink stores parsed records and reports which matches it already holds.
type Sink interface {
	Save(rec *corpus.MatchRecord, prefix string) (string, error)
	MatchIDs() ([]string, error)
}

// Config holds configuration for the crawler.
type Config struct {
	Queue            string
	Tier             string
	Division         string
	Page             int
	QueueID          int
	MaxPlayers       int
	MatchesPerPlayer int
	// Sleep is the pause after every API call on top of client rate limiting.
	Sleep time.Duration
}

// Stats summarizes a crawl.
type Stats struct {
	Players       int
	PlayersFailed int
	Matches       int
	Saved         int
	Duplicates    int
	NoTimeline    int
	Failed        int
	Duration      time.Duration
}

func (s Stats) String() string {
	return fmt.Sprintf("%d players (%d failed), %d matches seen: %d saved, %d duplicates, %d without timeline, %d failed",
		s.Players, s.PlayersFailed, s.Matches, s.Saved, s.Duplicates, s.NoTimeline, s.Failed)
}

// Crawler walks one league division: players, their recent matches, and each
// match with its timeline.
type Crawler struct {
	api  MatchAPI
	sink Sink
	cfg  Config
	rng  *rand.Rand

	// Deduplication (bloom filters for memory efficiency)
	visitedMatches *bloom.BloomFilter
	visitedPUUIDs  *bloom.BloomFilter
}

// New creates a crawler. Matches already in sink are never fetched again.
func New(api MatchAPI, sink Sink, cfg Config) (*Crawler, error) {
	if cfg.Page <= 0 {
		cfg.Page = 1
	}
	if cfg.MatchesPerPlayer <= 0 {
		cfg.MatchesPerPlayer = 3
	}

	c := &Crawler{
		api:            api,
		sink:           sink,
		cfg:            cfg,
		rng:            rand.New(rand.NewSource(time.Now().UnixNano())),
		visitedMatches: bloom.NewWithEstimates(500000, 0.001),
		visitedPUUIDs:  bloom.NewWithEstimates(100000, 0.001),
	}

	known, err := sink.MatchIDs()
	if err != nil {
		return nil, fmt.Errorf("failed to list stored matches: %w", err)
	}
	for _, id := range known {
		c.visitedMatches.AddString(id)
	}
	if len(known) > 0 {
		log.Printf("Crawler: %d matches already stored", len(known))
	}

	return c, nil
}

// Run crawls until the player budget is spent or ctx is cancelled. Errors on
// single players or matches are logged and counted; only failing to list
// the league aborts the crawl.
func (c *Crawler) Run(ctx context.Context) (*Stats, error) {
	start := time.Now()
	stats := &Stats{}
	rank := fmt.Sprintf("%s %s", c.cfg.Tier, c.cfg.Division)

	log.Printf("Crawler: listing %s %s (%s)", c.cfg.Tier, c.cfg.Division, c.cfg.Queue)
	entries, err := c.api.GetLeagueEntries(ctx, c.cfg.Queue, c.cfg.Tier, c.cfg.Division, c.cfg.Page)
	if err != nil {
		return stats, fmt.Errorf("failed to list league entries: %w", err)
	}
	if len(entries) == 0 {
		log.Println("Crawler: no players found")
		return stats, nil
	}

	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		if id := e.PlayerID(); id != "" {
			ids = append(ids, id)
		}
	}
	c.rng.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })
	if c.cfg.MaxPlayers > 0 && len(ids) > c.cfg.MaxPlayers {
		ids = ids[:c.cfg.MaxPlayers]
	}

	for i, id := range ids {
		if err := ctx.Err(); err != nil {
			stats.Duration = time.Since(start)
			return stats, err
		}

		if err := c.crawlPlayer(ctx, id, rank, stats); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				stats.Duration = time.Since(start)
				return stats, err
			}
			stats.PlayersFailed++
			log.Printf("Crawler: player %d/%d failed: %v", i+1, len(ids), err)
		}
	}

	stats.Duration = time.Since(start)
	log.Printf("Crawler: done in %s: %s", stats.Duration.Round(time.Second), stats)
	return stats, nil
}

func (c *Crawler) crawlPlayer(ctx context.Context, id, rank string, stats *Stats) error {
	puuid := id
	if len(id) < minPUUIDLength {
		resolved, err := c.api.GetPUUIDBySummonerID(ctx, id)
		c.pause(ctx)
		if err != nil {
			return fmt.Errorf("failed to resolve summoner: %w", err)
		}
		puuid = resolved
	}
	if puuid == "" || c.visitedPUUIDs.TestString(puuid) {
		return nil
	}
	c.visitedPUUIDs.AddString(puuid)
	stats.Players++

	matchIDs, err := c.api.GetMatchIDsByPUUID(ctx, puuid, c.cfg.QueueID, c.cfg.MatchesPerPlayer)
	c.pause(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch match history: %w", err)
	}

	for _, matchID := range matchIDs {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		stats.Matches++
		if c.visitedMatches.TestString(matchID) {
			stats.Duplicates++
			continue
		}

		saved, err := c.crawlMatch(ctx, matchID, rank)
		switch {
		case err != nil:
			stats.Failed++
			log.Printf("Crawler: match %s failed: %v", matchID, err)
		case !saved:
			stats.NoTimeline++
			c.visitedMatches.AddString(matchID)
		default:
			stats.Saved++
			c.visitedMatches.AddString(matchID)
		}
	}
	return nil
}

// crawlMatch fetches, parses and stores one match. It reports false when the
// match has no timeline and so nothing to learn from.
func (c *Crawler) crawlMatch(ctx context.Context, matchID, rank string) (bool, error) {
	match, err := c.api.GetMatchDetails(ctx, matchID)
	c.pause(ctx)
	if err != nil {
		return false, err
	}

	timeline, err := c.api.GetMatchTimeline(ctx, matchID)
	c.pause(ctx)
	if err != nil {
		return false, err
	}
	if timeline == nil {
		return false, nil
	}

	rec := riot.ParseMatchRecord(match, timeline, rank)
	if rec == nil {
		return false, nil
	}
	if rec.MatchID == "" {
		rec.MatchID = matchID
	}

	path, err := c.sink.Save(rec, riot.FilePrefix(rec.GameMode))
	if err != nil {
		return false, err
	}
	log.Printf("Crawler: saved %s (%s)", path, rec.GameDate)
	return true, nil
}

func (c *Crawler) pause(ctx context.Context) {
	if c.cfg.Sleep <= 0 {
		return
	}
	t := time.NewTimer(c.cfg.Sleep)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
