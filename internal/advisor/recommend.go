package advisor

import (
	"sort"
	"strings"
	"sync"
	"unicode"
)

// MaxBuildItems caps the length of a recommended build.
const MaxBuildItems = 6

// Mode tells which table answered a query.
type Mode string

const (
	ModeSpecific Mode = "specific"
	ModeGeneral  Mode = "general"
	ModeNone     Mode = "none"
)

// RecommendedItem is one step of a greedy build.
type RecommendedItem struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// Recommendation is the answer to a build query. Mode is ModeNone with no
// items when nothing is known about the champion.
type Recommendation struct {
	Champion string            `json:"champion"`
	Opponent string            `json:"opponent,omitempty"`
	Mode     Mode              `json:"mode"`
	Items    []RecommendedItem `json:"items"`
}

// Names returns the display names of the recommended items in order.
func (r Recommendation) Names() []string {
	names := make([]string, len(r.Items))
	for i, it := range r.Items {
		names[i] = it.Name
	}
	return names
}

// Found reports whether any data answered the query.
func (r Recommendation) Found() bool {
	return r.Mode != ModeNone
}

// Advisor serves build queries from a set of trained tables. Tables can be
// replaced at any time; queries in flight keep the set they started with.
type Advisor struct {
	mu      sync.RWMutex
	tables  *Tables
	catalog Catalog
}

// NewAdvisor creates an advisor. tables may be nil until the first SetTables.
func NewAdvisor(catalog Catalog, tables *Tables) *Advisor {
	if tables == nil {
		tables = NewTables()
	}
	return &Advisor{tables: tables, catalog: catalog}
}

// SetTables installs a freshly trained table set.
func (a *Advisor) SetTables(t *Tables) {
	a.mu.Lock()
	a.tables = t
	a.mu.Unlock()
}

// Tables returns the current table set.
func (a *Advisor) Tables() *Tables {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.tables
}

// Catalog returns the item catalog used to name items.
func (a *Advisor) Catalog() Catalog {
	return a.catalog
}

// Recommend returns the greedy build for champion, using the matchup table
// against opponent when it has data and the champion's general table
// otherwise. Pass an empty opponent for the general build.
func (a *Advisor) Recommend(champion, opponent string) Recommendation {
	tables := a.Tables()
	rec := Recommendation{Champion: champion, Opponent: opponent, Mode: ModeNone, Items: []RecommendedItem{}}

	if opponent != "" {
		if table := tables.SpecificTable(champion, opponent); table.HasStart() {
			rec.Mode = ModeSpecific
			rec.Items = a.greedyPath(table)
			return rec
		}
	}

	if table := tables.GeneralTable(champion); table.HasStart() {
		rec.Mode = ModeGeneral
		rec.Items = a.greedyPath(table)
	}
	return rec
}

// Compare returns the general reference build next to the matchup build.
// The specific result has ModeNone when the matchup was never observed.
func (a *Advisor) Compare(champion, opponent string) (general, specific Recommendation) {
	tables := a.Tables()

	general = a.Recommend(champion, "")
	specific = Recommendation{Champion: champion, Opponent: opponent, Mode: ModeNone, Items: []RecommendedItem{}}
	if table := tables.SpecificTable(champion, opponent); table.HasStart() {
		specific.Mode = ModeSpecific
		specific.Items = a.greedyPath(table)
	}
	return general, specific
}

// Champions lists champions with general data.
func (a *Advisor) Champions() []string {
	return a.Tables().Champions()
}

// Opponents lists the opponents champion has matchup data against.
func (a *Advisor) Opponents(champion string) []string {
	return a.Tables().Opponents(champion)
}

// ResolveChampion maps user input such as "miss fortune" or "kaisa" to the
// champion key used in the tables. Unknown names come back trimmed but
// otherwise unchanged.
func (a *Advisor) ResolveChampion(name string) string {
	name = strings.TrimSpace(name)
	want := championKey(name)
	if want == "" {
		return name
	}

	tables := a.Tables()
	if _, ok := tables.General[name]; ok {
		return name
	}
	for _, champ := range tables.Champions() {
		if championKey(champ) == want {
			return champ
		}
	}

	// Champions that only ever appear as opponents.
	champs := make([]string, 0, len(tables.Specific))
	for champ := range tables.Specific {
		champs = append(champs, champ)
	}
	sort.Strings(champs)
	for _, champ := range champs {
		for _, opp := range tables.Opponents(champ) {
			if championKey(opp) == want {
				return opp
			}
		}
	}
	return name
}

// ParseMatchup splits "Garen vs Darius" (or "Garen/Darius") into champion and
// opponent. Input without a separator is a champion alone.
func ParseMatchup(input string) (champion, opponent string) {
	input = strings.TrimSpace(input)
	lower := strings.ToLower(input)
	for _, sep := range []string{" vs. ", " vs ", "/"} {
		if i := strings.Index(lower, sep); i >= 0 {
			return strings.TrimSpace(input[:i]), strings.TrimSpace(input[i+len(sep):])
		}
	}
	return input, ""
}

// championKey folds case and drops spaces and punctuation.
func championKey(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// greedyPath walks the table from START, taking the heaviest successor not yet
// visited, for at most MaxBuildItems steps. The visited set makes cycles
// impossible, so the walk always ends.
func (a *Advisor) greedyPath(table TransitionTable) []RecommendedItem {
	visited := map[string]bool{StartNode: true}
	path := make([]RecommendedItem, 0, MaxBuildItems)

	current := StartNode
	for len(path) < MaxBuildItems {
		next, ok := bestUnvisited(table, current, visited)
		if !ok {
			break
		}

		path = append(path, RecommendedItem{
			ID:    next.To,
			Name:  a.catalog.Name(next.To),
			Score: next.Weight,
		})
		visited[next.To] = true
		current = next.To
	}
	return path
}

func bestUnvisited(table TransitionTable, from string, visited map[string]bool) (Edge, bool) {
	for _, e := range table.Successors(from) {
		if !visited[e.To] {
			return e, true
		}
	}
	return Edge{}, false
}
