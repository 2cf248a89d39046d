package advisor

import (
	"fmt"
	"sort"

	json "github.com/goccy/go-json"

	"github.com/buildadvisor/internal/data"
)

// Outcome weights applied to every transition of a build.
const (
	WinWeight  = 3.0
	LossWeight = 0.5
)

// OutcomeWeight returns the reinforcement weight for a match result.
func OutcomeWeight(win bool) float64 {
	if win {
		return WinWeight
	}
	return LossWeight
}

// TransitionTable maps a node to the items bought right after it, with their
// accumulated weight.
type TransitionTable map[string]map[string]float64

// Add accumulates weight on the from -> to edge, creating it if needed.
func (t TransitionTable) Add(from, to string, weight float64) {
	next, ok := t[from]
	if !ok {
		next = make(map[string]float64)
		t[from] = next
	}
	next[to] += weight
}

// Weight returns the accumulated weight of an edge (0 if absent).
func (t TransitionTable) Weight(from, to string) float64 {
	return t[from][to]
}

// HasStart reports whether at least one edge leaves START.
func (t TransitionTable) HasStart() bool {
	return len(t[StartNode]) > 0
}

// Edge is a weighted successor.
type Edge struct {
	To     string
	Weight float64
}

// Successors returns the edges leaving from, heaviest first. Equal weights
// are ordered by item identifier so the result is deterministic.
func (t TransitionTable) Successors(from string) []Edge {
	next := t[from]
	edges := make([]Edge, 0, len(next))
	for to, w := range next {
		edges = append(edges, Edge{To: to, Weight: w})
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].Weight != edges[j].Weight {
			return edges[i].Weight > edges[j].Weight
		}
		return data.CompareIDs(edges[i].To, edges[j].To) < 0
	})
	return edges
}

// Tables holds the learned transitions. Its JSON form is the persisted
// snapshot: {"specific": {...}, "general": {...}}.
type Tables struct {
	Specific map[string]map[string]TransitionTable `json:"specific"`
	General  map[string]TransitionTable            `json:"general"`
}

// NewTables returns empty tables.
func NewTables() *Tables {
	return &Tables{
		Specific: make(map[string]map[string]TransitionTable),
		General:  make(map[string]TransitionTable),
	}
}

// Observe folds one build sequence into the general table of champion and
// the specific table of champion vs opponent. It is additive: observing the
// same build twice counts it twice.
func (t *Tables) Observe(champion, opponent string, win bool, seq []string) {
	if len(seq) < 2 {
		return
	}
	weight := OutcomeWeight(win)

	general := t.general(champion)
	specific := t.specific(champion, opponent)
	for i := 0; i < len(seq)-1; i++ {
		general.Add(seq[i], seq[i+1], weight)
		specific.Add(seq[i], seq[i+1], weight)
	}
}

func (t *Tables) general(champion string) TransitionTable {
	table, ok := t.General[champion]
	if !ok {
		table = make(TransitionTable)
		t.General[champion] = table
	}
	return table
}

func (t *Tables) specific(champion, opponent string) TransitionTable {
	byOpponent, ok := t.Specific[champion]
	if !ok {
		byOpponent = make(map[string]TransitionTable)
		t.Specific[champion] = byOpponent
	}
	table, ok := byOpponent[opponent]
	if !ok {
		table = make(TransitionTable)
		byOpponent[opponent] = table
	}
	return table
}

// GeneralTable returns the table for champion, or nil.
func (t *Tables) GeneralTable(champion string) TransitionTable {
	return t.General[champion]
}

// SpecificTable returns the table for champion vs opponent, or nil.
func (t *Tables) SpecificTable(champion, opponent string) TransitionTable {
	return t.Specific[champion][opponent]
}

// Champions returns every champion with general data, sorted.
func (t *Tables) Champions() []string {
	out := make([]string, 0, len(t.General))
	for champ, table := range t.General {
		if table.HasStart() {
			out = append(out, champ)
		}
	}
	sort.Strings(out)
	return out
}

// Opponents returns every opponent champion has specific data against, sorted.
func (t *Tables) Opponents(champion string) []string {
	byOpponent := t.Specific[champion]
	out := make([]string, 0, len(byOpponent))
	for opp, table := range byOpponent {
		if table.HasStart() {
			out = append(out, opp)
		}
	}
	sort.Strings(out)
	return out
}

// Encode serializes the tables. Map keys are written in sorted order, so equal
// tables always encode to identical bytes.
func (t *Tables) Encode() ([]byte, error) {
	return json.Marshal(t)
}

// DecodeTables parses a serialized snapshot.
func DecodeTables(raw []byte) (*Tables, error) {
	var t Tables
	if err := json.Unmarshal(raw, &t); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot: %w", err)
	}
	if t.General == nil || t.Specific == nil {
		return nil, fmt.Errorf("snapshot is missing tables")
	}
	return &t, nil
}
