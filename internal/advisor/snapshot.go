package advisor

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/buildadvisor/internal/corpus"
)

// ErrNoSnapshot is returned by a SnapshotStore that holds nothing yet.
var ErrNoSnapshot = errors.New("no snapshot")

// SnapshotStore persists serialized tables.
type SnapshotStore interface {
	ReadSnapshot(ctx context.Context) ([]byte, error)
	WriteSnapshot(ctx context.Context, data []byte) error
}

// SaveSnapshot writes tables to every store given. It stops at the first
// failure.
func SaveSnapshot(ctx context.Context, tables *Tables, stores ...SnapshotStore) error {
	raw, err := tables.Encode()
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	for _, store := range stores {
		if err := store.WriteSnapshot(ctx, raw); err != nil {
			return fmt.Errorf("failed to write snapshot: %w", err)
		}
	}
	return nil
}

// LoadSnapshot reads tables from the first store that has a valid snapshot.
// A missing, unreadable or corrupt snapshot is treated as no snapshot.
func LoadSnapshot(ctx context.Context, stores ...SnapshotStore) (*Tables, bool) {
	for _, store := range stores {
		raw, err := store.ReadSnapshot(ctx)
		if err != nil {
			if !errors.Is(err, ErrNoSnapshot) {
				log.Printf("Snapshot read failed: %v", err)
			}
			continue
		}

		tables, err := DecodeTables(raw)
		if err != nil {
			log.Printf("Snapshot corrupt, ignoring: %v", err)
			continue
		}
		return tables, true
	}
	return nil, false
}

// Retrain trains from scratch and persists the result.
func Retrain(ctx context.Context, source corpus.Source, catalog Catalog, stores ...SnapshotStore) (*Tables, *TrainReport, error) {
	tables, report, err := Train(ctx, source, catalog)
	if err != nil {
		return nil, report, err
	}
	log.Printf("Training done in %s: %s", report.Duration.Round(time.Millisecond), report)

	if err := SaveSnapshot(ctx, tables, stores...); err != nil {
		return tables, report, err
	}
	return tables, report, nil
}

// LoadOrTrain returns the persisted tables if any store has them, and trains
// (then persists) otherwise. With neither a snapshot nor a readable match it
// returns empty tables, so every query answers with no recommendation.
func LoadOrTrain(ctx context.Context, source corpus.Source, catalog Catalog, stores ...SnapshotStore) (*Tables, error) {
	if tables, ok := LoadSnapshot(ctx, stores...); ok {
		log.Printf("Loaded snapshot (%d champions)", len(tables.Champions()))
		return tables, nil
	}

	log.Println("No snapshot found, training from corpus...")
	tables, _, err := Retrain(ctx, source, catalog, stores...)
	if errors.Is(err, ErrEmptyCorpus) {
		log.Println("No snapshot and no match data, serving empty tables")
		return NewTables(), nil
	}
	if tables == nil {
		return nil, err
	}
	if err != nil {
		log.Printf("Trained tables are in memory only: %v", err)
	}
	return tables, nil
}
