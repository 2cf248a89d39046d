// Package riot provides a rate-limited Riot API client for the match crawler.
package riot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	json "github.com/goccy/go-json"

	"github.com/buildadvisor/internal/config"
)

// ErrNotFound is returned when Riot answers 404.
var ErrNotFound = errors.New("not found")

// Development key limits, kept a little under the real 20/s and 100/2min.
const (
	defaultPerSecond  = 15
	defaultPerTwoMins = 90
	maxRetries        = 3
)

// Cache is an optional key/value store used to remember summoner ID lookups.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// Client is a client for Riot Games API.
type Client struct {
	apiKey          string
	baseURLMatch    string
	baseURLPlatform string
	httpClient      *http.Client
	cache           Cache

	// Rate limiting
	mu          sync.Mutex
	perSecond   int
	perTwoMins  int
	shortWindow []time.Time
	longWindow  []time.Time
}

// NewClient creates a new Riot API client. cache may be nil.
func NewClient(cfg *config.Config, cache Cache) *Client {
	// Reuse connections for efficiency
	transport := &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 5,
		IdleConnTimeout:     90 * time.Second,
	}

	return &Client{
		apiKey:          cfg.RiotAPIKey,
		baseURLMatch:    cfg.RiotBaseURLMatch,
		baseURLPlatform: cfg.RiotBaseURLPlatform,
		httpClient: &http.Client{
			Timeout:   15 * time.Second,
			Transport: transport,
		},
		cache:      cache,
		perSecond:  defaultPerSecond,
		perTwoMins: defaultPerTwoMins,
	}
}

// waitForRateLimit blocks until another request fits in both windows.
func (c *Client) waitForRateLimit(ctx context.Context) error {
	for {
		c.mu.Lock()
		now := time.Now()
		c.shortWindow = prune(c.shortWindow, now.Add(-time.Second))
		c.longWindow = prune(c.longWindow, now.Add(-2*time.Minute))

		var wait time.Duration
		switch {
		case len(c.shortWindow) >= c.perSecond:
			wait = c.shortWindow[0].Add(time.Second).Sub(now)
		case len(c.longWindow) >= c.perTwoMins:
			wait = c.longWindow[0].Add(2 * time.Minute).Sub(now)
			log.Printf("Rate limit: %d requests in 2min, waiting %.1fs", len(c.longWindow), wait.Seconds())
		default:
			c.shortWindow = append(c.shortWindow, now)
			c.longWindow = append(c.longWindow, now)
			c.mu.Unlock()
			return nil
		}
		c.mu.Unlock()

		if err := sleep(ctx, wait+50*time.Millisecond); err != nil {
			return err
		}
	}
}

func prune(window []time.Time, cutoff time.Time) []time.Time {
	i := 0
	for i < len(window) && !window[i].After(cutoff) {
		i++
	}
	return window[i:]
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// doRequest makes a rate-limited GET and decodes the JSON body into result.
// 429 answers are retried after Retry-After.
func (c *Client) doRequest(ctx context.Context, reqURL string, result interface{}) error {
	for attempt := 0; ; attempt++ {
		if err := c.waitForRateLimit(ctx); err != nil {
			return err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("X-Riot-Token", c.apiKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("request failed: %w", err)
		}
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return fmt.Errorf("failed to read response: %w", err)
		}

		switch {
		case resp.StatusCode == http.StatusOK:
			if err := json.Unmarshal(body, result); err != nil {
				return fmt.Errorf("failed to parse response: %w", err)
			}
			return nil
		case resp.StatusCode == http.StatusNotFound:
			return ErrNotFound
		case resp.StatusCode == http.StatusTooManyRequests && attempt < maxRetries:
			wait := 10 * time.Second
			if s, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil {
				wait = time.Duration(s) * time.Second
			}
			log.Printf("Rate limited by Riot, waiting %s", wait)
			if err := sleep(ctx, wait); err != nil {
				return err
			}
		case resp.StatusCode == http.StatusForbidden:
			return fmt.Errorf("API error 403: check that RIOT_API_KEY is valid")
		default:
			return fmt.Errorf("API error %d: %s", resp.StatusCode, string(body))
		}
	}
}

// GetLeagueEntries lists ranked players of one queue, tier and division.
func (c *Client) GetLeagueEntries(ctx context.Context, queue, tier, division string, page int) ([]LeagueEntry, error) {
	reqURL := fmt.Sprintf("%s/lol/league/v4/entries/%s/%s/%s?page=%d",
		c.baseURLPlatform,
		url.PathEscape(queue),
		url.PathEscape(tier),
		url.PathEscape(division),
		page,
	)

	var entries []LeagueEntry
	if err := c.doRequest(ctx, reqURL, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// GetPUUIDBySummonerID resolves a legacy summoner ID.
// Uses the cache to avoid repeated API calls.
func (c *Client) GetPUUIDBySummonerID(ctx context.Context, summonerID string) (string, error) {
	cacheKey := "puuid:summoner:" + summonerID

	if c.cache != nil {
		if cached, err := c.cache.Get(ctx, cacheKey); err == nil && cached != "" {
			return cached, nil
		}
	}

	reqURL := fmt.Sprintf("%s/lol/summoner/v4/summoners/%s", c.baseURLPlatform, url.PathEscape(summonerID))

	var resp SummonerResponse
	if err := c.doRequest(ctx, reqURL, &resp); err != nil {
		return "", err
	}

	if c.cache != nil && resp.PUUID != "" {
		if err := c.cache.Set(ctx, cacheKey, resp.PUUID); err != nil {
			log.Printf("Failed to cache PUUID: %v", err)
		}
	}
	return resp.PUUID, nil
}

// GetMatchIDsByPUUID gets the most recent match IDs of a player in one queue.
func (c *Client) GetMatchIDsByPUUID(ctx context.Context, puuid string, queueID, count int) ([]string, error) {
	params := url.Values{}
	params.Set("start", "0")
	params.Set("count", strconv.Itoa(count))
	if queueID > 0 {
		params.Set("queue", strconv.Itoa(queueID))
	}
	reqURL := fmt.Sprintf("%s/lol/match/v5/matches/by-puuid/%s/ids?%s",
		c.baseURLMatch, url.PathEscape(puuid), params.Encode())

	var matchIDs []string
	if err := c.doRequest(ctx, reqURL, &matchIDs); err != nil {
		return nil, err
	}
	return matchIDs, nil
}

// GetMatchDetails gets full details of a match.
func (c *Client) GetMatchDetails(ctx context.Context, matchID string) (*MatchResponse, error) {
	reqURL := fmt.Sprintf("%s/lol/match/v5/matches/%s", c.baseURLMatch, url.PathEscape(matchID))

	var resp MatchResponse
	if err := c.doRequest(ctx, reqURL, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetMatchTimeline gets timeline data for a match. A match without a timeline
// returns (nil, nil).
func (c *Client) GetMatchTimeline(ctx context.Context, matchID string) (*TimelineResponse, error) {
	reqURL := fmt.Sprintf("%s/lol/match/v5/matches/%s/timeline", c.baseURLMatch, url.PathEscape(matchID))

	var resp TimelineResponse
	if err := c.doRequest(ctx, reqURL, &resp); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &resp, nil
}
