package corpus

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	json "github.com/goccy/go-json"
)

// WalkFunc receives each record in order. A non-nil err means the record at
// path could not be read; returning an error stops the walk.
type WalkFunc func(path string, rec *MatchRecord, err error) error

// Source is anything that can replay a match corpus in a fixed order.
type Source interface {
	Walk(ctx context.Context, fn WalkFunc) error
}

// Store is a directory of match record files (one JSON document per game).
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir. The directory is created on first
// write.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the store directory.
func (s *Store) Dir() string {
	return s.dir
}

// Files returns the record file paths in sorted order.
func (s *Store) Files() ([]string, error) {
	files, err := filepath.Glob(filepath.Join(s.dir, "*.json"))
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// Walk reads every record in file-name order. Unreadable or malformed files
// are reported to fn with a non-nil error instead of aborting the walk.
func (s *Store) Walk(ctx context.Context, fn WalkFunc) error {
	files, err := s.Files()
	if err != nil {
		return fmt.Errorf("failed to list match files: %w", err)
	}

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return err
		}

		rec, readErr := ReadRecord(path)
		if err := fn(path, rec, readErr); err != nil {
			return err
		}
	}
	return nil
}

// MatchIDs returns the IDs of all stored matches, taken from the file names.
func (s *Store) MatchIDs() ([]string, error) {
	files, err := s.Files()
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(files))
	for _, path := range files {
		name := strings.TrimSuffix(filepath.Base(path), ".json")
		// "<MODE>_<matchId>"; match IDs themselves look like EUW1_123
		if strings.Count(name, "_") > 1 {
			name = name[strings.Index(name, "_")+1:]
		}
		ids = append(ids, name)
	}
	return ids, nil
}

// Save writes a record as "<prefix><matchId>.json" and returns its path.
func (s *Store) Save(rec *MatchRecord, prefix string) (string, error) {
	if rec.MatchID == "" {
		return "", fmt.Errorf("match record has no matchId")
	}
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", s.dir, err)
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal record: %w", err)
	}

	path := filepath.Join(s.dir, prefix+rec.MatchID+".json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write record: %w", err)
	}
	return path, nil
}

// ReadRecord decodes a single match record file.
func ReadRecord(path string) (*MatchRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var rec MatchRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	if rec.Participants == nil {
		return nil, fmt.Errorf("%s has no participants", filepath.Base(path))
	}
	return &rec, nil
}

// Records is an in-memory corpus, replayed in slice order.
type Records []*MatchRecord

// Walk implements Source.
func (r Records) Walk(ctx context.Context, fn WalkFunc) error {
	for i, rec := range r {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(fmt.Sprintf("memory:%d", i), rec, nil); err != nil {
			return err
		}
	}
	return nil
}
