package data

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	json "github.com/goccy/go-json"
)

// Cache is an optional key/value store for the raw item.json payload.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// Fetcher downloads the item catalog from Data Dragon.
type Fetcher struct {
	baseURL    string
	locale     string
	httpClient *http.Client
	cache      Cache
	cacheKey   string
}

// NewFetcher creates a Data Dragon fetcher. cache may be nil.
func NewFetcher(baseURL, locale string, cache Cache, cacheKey string) *Fetcher {
	if locale == "" {
		locale = "en_US"
	}
	return &Fetcher{
		baseURL:    baseURL,
		locale:     locale,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		cache:      cache,
		cacheKey:   cacheKey,
	}
}

// LatestVersion returns the newest patch listed in versions.json.
func (f *Fetcher) LatestVersion(ctx context.Context) (string, error) {
	body, err := f.get(ctx, f.baseURL+"/api/versions.json")
	if err != nil {
		return "", fmt.Errorf("failed to fetch versions: %w", err)
	}

	var versions []string
	if err := json.Unmarshal(body, &versions); err != nil {
		return "", fmt.Errorf("failed to parse versions: %w", err)
	}
	if len(versions) == 0 {
		return "", fmt.Errorf("no versions available")
	}
	return versions[0], nil
}

// FetchRaw downloads item.json for a patch (latest when version is empty).
func (f *Fetcher) FetchRaw(ctx context.Context, version string) ([]byte, error) {
	if version == "" {
		v, err := f.LatestVersion(ctx)
		if err != nil {
			return nil, err
		}
		version = v
	}

	itemURL := fmt.Sprintf("%s/cdn/%s/data/%s/item.json", f.baseURL, version, f.locale)
	body, err := f.get(ctx, itemURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch items: %w", err)
	}
	return body, nil
}

// Fetch downloads and parses item.json.
func (f *Fetcher) Fetch(ctx context.Context, version string) (*Catalog, error) {
	raw, err := f.FetchRaw(ctx, version)
	if err != nil {
		return nil, err
	}
	return ParseItems(raw)
}

// LoadOrFetch returns the catalog from the local file if present, then the
// cache, and finally Data Dragon. Fresh downloads are written back to both.
func (f *Fetcher) LoadOrFetch(ctx context.Context, path, version string) (*Catalog, error) {
	if catalog, err := LoadItems(path); err == nil {
		log.Printf("Loaded %d items from %s (v%s)", catalog.Len(), path, catalog.Version())
		return catalog, nil
	}

	if f.cache != nil && f.cacheKey != "" {
		if cached, err := f.cache.Get(ctx, f.cacheKey); err == nil && cached != "" {
			if catalog, err := ParseItems([]byte(cached)); err == nil {
				log.Printf("Item cache hit (%d items, v%s)", catalog.Len(), catalog.Version())
				return catalog, nil
			}
		}
	}

	return f.Refresh(ctx, path, version)
}

// Refresh downloads item.json from Data Dragon and writes it back to the local
// file and the cache.
func (f *Fetcher) Refresh(ctx context.Context, path, version string) (*Catalog, error) {
	raw, err := f.FetchRaw(ctx, version)
	if err != nil {
		return nil, err
	}
	catalog, err := ParseItems(raw)
	if err != nil {
		return nil, err
	}
	log.Printf("Loaded %d items from Data Dragon (v%s)", catalog.Len(), catalog.Version())

	if err := writeFile(path, raw); err != nil {
		log.Printf("Failed to cache item data at %s: %v", path, err)
	}
	if f.cache != nil && f.cacheKey != "" {
		if err := f.cache.Set(ctx, f.cacheKey, string(raw)); err != nil {
			log.Printf("Failed to cache item data: %v", err)
		}
	}

	return catalog, nil
}

func (f *Fetcher) get(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("data dragon returned status %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

func writeFile(path string, raw []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0644)
}
