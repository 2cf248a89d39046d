package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"

	"github.com/buildadvisor/internal/advisor"
	"github.com/buildadvisor/internal/config"
	"github.com/buildadvisor/internal/data"
)

func TestMatchupArgs(t *testing.T) {
	tests := []struct {
		args         []string
		wantChampion string
		wantOpponent string
	}{
		{[]string{"Garen"}, "Garen", ""},
		{[]string{"Garen", "Darius"}, "Garen", "Darius"},
		{[]string{"Garen vs Darius"}, "Garen", "Darius"},
		{[]string{"Garen", "vs", "Darius"}, "Garen", "Darius"},
		{[]string{"Garen/Darius"}, "Garen", "Darius"},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.args, "_"), func(t *testing.T) {
			champion, opponent := matchupArgs(tt.args)
			if champion != tt.wantChampion || opponent != tt.wantOpponent {
				t.Errorf("matchupArgs(%q) = (%q, %q), want (%q, %q)",
					tt.args, champion, opponent, tt.wantChampion, tt.wantOpponent)
			}
		})
	}
}

func recommendation(champion, opponent string, mode advisor.Mode, names ...string) advisor.Recommendation {
	rec := advisor.Recommendation{Champion: champion, Opponent: opponent, Mode: mode, Items: []advisor.RecommendedItem{}}
	for i, name := range names {
		rec.Items = append(rec.Items, advisor.RecommendedItem{ID: name, Name: name, Score: float64(len(names) - i)})
	}
	return rec
}

func TestWriteComparison(t *testing.T) {
	general := recommendation("Garen", "", advisor.ModeGeneral, "Stridebreaker", "Plated Steelcaps")

	tests := []struct {
		name     string
		general  advisor.Recommendation
		specific advisor.Recommendation
		want     []string
		notWant  []string
	}{
		{
			name:     "general only",
			general:  general,
			specific: recommendation("Garen", "", advisor.ModeNone),
			want:     []string{"General build for Garen", "1. Stridebreaker (2.0)", "2. Plated Steelcaps"},
			notWant:  []string{" vs "},
		},
		{
			name:     "matchup",
			general:  general,
			specific: recommendation("Garen", "Darius", advisor.ModeSpecific, "Black Cleaver"),
			want:     []string{"General build for Garen", "Build for Garen vs Darius", "1. Black Cleaver"},
		},
		{
			name:     "unseen matchup",
			general:  general,
			specific: recommendation("Garen", "Sett", advisor.ModeNone),
			want:     []string{"No games of Garen against Sett"},
		},
		{
			name:     "unknown champion",
			general:  recommendation("Zoe", "", advisor.ModeNone),
			specific: recommendation("Zoe", "", advisor.ModeNone),
			want:     []string{"No data for Zoe."},
			notWant:  []string{"General build"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			writeComparison(&buf, tt.general, tt.specific)
			out := buf.String()
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("Expected %q in output:\n%s", w, out)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(out, w) {
					t.Errorf("Did not expect %q in output:\n%s", w, out)
				}
			}
		})
	}
}

func TestWriteComparisonJSON(t *testing.T) {
	var buf bytes.Buffer
	err := writeComparisonJSON(&buf,
		recommendation("Garen", "", advisor.ModeGeneral, "Stridebreaker"),
		recommendation("Garen", "Darius", advisor.ModeSpecific, "Black Cleaver"),
	)
	if err != nil {
		t.Fatalf("writeComparisonJSON failed: %v", err)
	}

	var got map[string]advisor.Recommendation
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if got["specific"].Mode != advisor.ModeSpecific || got["specific"].Items[0].Name != "Black Cleaver" {
		t.Errorf("Unexpected specific: %+v", got["specific"])
	}
	if got["general"].Mode != advisor.ModeGeneral {
		t.Errorf("Unexpected general: %+v", got["general"])
	}
}

func TestCrawlConfig(t *testing.T) {
	cfg := &config.Config{
		CrawlQueue:            "RANKED_SOLO_5x5",
		CrawlTier:             "PLATINUM",
		CrawlDivision:         "IV",
		CrawlQueueID:          420,
		CrawlPlayers:          1000,
		CrawlMatchesPerPlayer: 3,
		CrawlSleep:            time.Second,
	}

	cc := crawlConfig(cfg)
	if cc.Tier != "PLATINUM" || cc.Division != "IV" || cc.MaxPlayers != 1000 || cc.MatchesPerPlayer != 3 {
		t.Errorf("Expected config values, got %+v", cc)
	}

	crawlTier, crawlDivision, crawlPlayers, crawlMatches = "GOLD", "II", 10, 5
	t.Cleanup(func() { crawlTier, crawlDivision, crawlPlayers, crawlMatches = "", "", 0, 0 })

	cc = crawlConfig(cfg)
	if cc.Tier != "GOLD" || cc.Division != "II" || cc.MaxPlayers != 10 || cc.MatchesPerPlayer != 5 {
		t.Errorf("Expected flag overrides, got %+v", cc)
	}
	if cc.QueueID != 420 || cc.Sleep != time.Second {
		t.Errorf("Unflagged values changed: %+v", cc)
	}
}

func TestCommandTree(t *testing.T) {
	for _, path := range [][]string{
		{"train"}, {"recommend"}, {"crawl"}, {"serve"}, {"bot"}, {"items", "fetch"}, {"health"}, {"version"},
	} {
		cmd, _, err := rootCmd.Find(path)
		if err != nil || cmd.Name() != path[len(path)-1] {
			t.Errorf("Missing command %q", strings.Join(path, " "))
		}
	}
}

func TestVersionCommand(t *testing.T) {
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.Contains(buf.String(), "buildadvisor version dev") {
		t.Errorf("Unexpected output: %q", buf.String())
	}
}

func TestReadiness(t *testing.T) {
	var state readiness
	if state.check() == nil {
		t.Error("Expected not ready before tables load")
	}
	state.ready.Store(true)
	if err := state.check(); err != nil {
		t.Errorf("Expected ready, got %v", err)
	}
}

func TestLocalURL(t *testing.T) {
	tests := map[string]string{
		":8080":          "http://localhost:8080",
		"127.0.0.1:9000": "http://127.0.0.1:9000",
	}
	for addr, want := range tests {
		if got := localURL(addr); got != want {
			t.Errorf("localURL(%q) = %q, want %q", addr, got, want)
		}
	}
}

func TestRecommendCommand_NoData(t *testing.T) {
	dir := t.TempDir()
	items := `{"version":"14.23.1","data":{"3071":{"name":"Black Cleaver","gold":{"total":3000}}}}`
	if err := os.WriteFile(filepath.Join(dir, "item.json"), []byte(items), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DATA_DIR", dir)
	t.Setenv("MATCHES_DIR", filepath.Join(dir, "missing"))
	t.Setenv("SNAPSHOT_FILE", "snapshot.json")
	t.Setenv("REDIS_URL", "")

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"recommend", "Garen"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("recommend without data should not fail: %v", err)
	}
	if !strings.Contains(buf.String(), "No data for Garen.") {
		t.Errorf("Unexpected output: %q", buf.String())
	}
	if _, err := os.Stat(filepath.Join(dir, "snapshot.json")); !os.IsNotExist(err) {
		t.Errorf("Empty tables should not be written, stat err = %v", err)
	}
}

func TestCountFinalItems(t *testing.T) {
	catalog, err := data.ParseItems([]byte(`{"version":"14.23.1","data":{
		"1001": {"name": "Boots", "tags": ["Boots"], "into": ["3006"], "gold": {"total": 300}},
		"3006": {"name": "Berserker's Greaves", "tags": ["Boots"], "gold": {"total": 1100}},
		"1036": {"name": "Long Sword", "into": ["3071"], "gold": {"total": 350}},
		"3071": {"name": "Black Cleaver", "gold": {"total": 3000}},
		"2003": {"name": "Health Potion", "gold": {"total": 50}}
	}}`))
	if err != nil {
		t.Fatal(err)
	}
	if got := countFinalItems(catalog); got != 2 {
		t.Errorf("Expected 2 final items, got %d", got)
	}
}
