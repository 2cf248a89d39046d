package advisor

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/buildadvisor/internal/corpus"
)

// ErrEmptyCorpus is returned when training finds no readable match.
var ErrEmptyCorpus = errors.New("no readable matches in corpus")

// TrainReport summarizes a training pass.
type TrainReport struct {
	Matches      int
	Unreadable   int
	Participants int
	Observations int
	Skipped      map[SkipReason]int
	Duration     time.Duration
}

// SkippedTotal returns the number of participants that were not used.
func (r *TrainReport) SkippedTotal() int {
	total := 0
	for _, n := range r.Skipped {
		total += n
	}
	return total
}

// String renders a one-line summary for logs.
func (r *TrainReport) String() string {
	reasons := make([]string, 0, len(r.Skipped))
	for reason, n := range r.Skipped {
		reasons = append(reasons, fmt.Sprintf("%s=%d", reason, n))
	}
	sort.Strings(reasons)

	s := fmt.Sprintf("%d matches (%d unreadable), %d/%d participants used",
		r.Matches, r.Unreadable, r.Observations, r.Participants)
	if len(reasons) > 0 {
		s += ", skipped: " + strings.Join(reasons, " ")
	}
	return s
}

// Train builds fresh tables from the whole corpus. Records that cannot be read
// and participants that cannot be used are counted in the report; only a
// corpus with no readable match at all is an error.
func Train(ctx context.Context, source corpus.Source, catalog Catalog) (*Tables, *TrainReport, error) {
	start := time.Now()
	tables := NewTables()
	report := &TrainReport{Skipped: make(map[SkipReason]int)}

	err := source.Walk(ctx, func(path string, rec *corpus.MatchRecord, err error) error {
		if err != nil {
			report.Unreadable++
			log.Printf("Skipping %s: %v", path, err)
			return nil
		}

		report.Matches++
		report.Participants += len(rec.Participants)

		skipped := ScanMatch(rec, func(obs Observation) {
			report.Observations++
			seq := BuildSequence(obs.Purchases, catalog)
			tables.Observe(obs.Champion, obs.Opponent, obs.Win, seq)
		})
		for reason, n := range skipped {
			report.Skipped[reason] += n
		}
		return nil
	})
	report.Duration = time.Since(start)

	if err != nil {
		return nil, report, fmt.Errorf("training aborted: %w", err)
	}
	if report.Matches == 0 {
		return nil, report, ErrEmptyCorpus
	}

	return tables, report, nil
}
