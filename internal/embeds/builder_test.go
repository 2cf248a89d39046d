package embeds

import (
	"strings"
	"testing"

	"github.com/buildadvisor/internal/advisor"
	"github.com/buildadvisor/internal/data"
)

func rec(champ, opp string, mode advisor.Mode, names ...string) advisor.Recommendation {
	r := advisor.Recommendation{Champion: champ, Opponent: opp, Mode: mode}
	for _, n := range names {
		r.Items = append(r.Items, advisor.RecommendedItem{Name: n})
	}
	return r
}

func TestBuild_GeneralOnly(t *testing.T) {
	embed := Build(rec("Garen", "", advisor.ModeGeneral, "Black Cleaver", "Plated Steelcaps"), rec("Garen", "", advisor.ModeNone))

	if len(embed.Fields) != 1 {
		t.Fatalf("Expected one field, got %d", len(embed.Fields))
	}
	if !strings.Contains(embed.Fields[0].Value, "`1.` **Black Cleaver**") {
		t.Errorf("Unexpected item list: %s", embed.Fields[0].Value)
	}
}

func TestBuild_Matchup(t *testing.T) {
	embed := Build(
		rec("Garen", "", advisor.ModeGeneral, "Black Cleaver"),
		rec("Garen", "Darius", advisor.ModeSpecific, "Sterak's Gage"),
	)

	if len(embed.Fields) != 2 || !strings.Contains(embed.Fields[0].Name, "Darius") {
		t.Errorf("Expected matchup field first, got %+v", embed.Fields)
	}
	if embed.Color != ColorMatchup {
		t.Errorf("Expected matchup color")
	}
}

func TestBuild_UnseenMatchup(t *testing.T) {
	embed := Build(rec("Garen", "", advisor.ModeGeneral, "Black Cleaver"), rec("Garen", "Sett", advisor.ModeNone))

	if !strings.Contains(embed.Description, "Sett") || len(embed.Fields) != 1 {
		t.Errorf("Expected fallback note, got %q with %d fields", embed.Description, len(embed.Fields))
	}
}

func TestItem(t *testing.T) {
	item := data.Item{ID: "3071", ItemDetail: data.ItemDetail{
		Name:        "Black Cleaver",
		Plaintext:   "Shreds armor",
		Description: "<mainText><stats><attention>40</attention> Attack Damage<br><attention>400</attention> Health</stats><br><br><passive>Carve</passive></mainText>",
		Gold:        data.Gold{Total: 3000},
	}}

	embed := Item(item, "https://example.com/3071.png")
	if embed.Title != "Black Cleaver" || embed.Fields[0].Value != "3000 gold" {
		t.Errorf("Unexpected embed: %+v", embed)
	}
	if len(embed.Fields) < 2 || !strings.Contains(embed.Fields[1].Value, "40 Attack Damage") {
		t.Errorf("Expected stats field, got %+v", embed.Fields)
	}
}

func TestGetChampionIcon(t *testing.T) {
	tests := map[string]string{
		"Kai'Sa":     "Kaisa",
		"Lee Sin":    "LeeSin",
		"Dr. Mundo":  "DrMundo",
		"MonkeyKing": "MonkeyKing",
		"Garen":      "Garen",
	}
	for name, key := range tests {
		if got := GetChampionIcon(name); !strings.HasSuffix(got, "/"+key+".png") {
			t.Errorf("GetChampionIcon(%q) = %s, want key %s", name, got, key)
		}
	}
}

func TestSimpleEmbeds(t *testing.T) {
	if e := Error("boom", ""); e.Title != "❌ Error" || e.Color != ColorError {
		t.Errorf("Unexpected error embed: %+v", e)
	}
	if e := Warning("careful", "Custom"); e.Title != "Custom" || e.Description != "careful" {
		t.Errorf("Unexpected warning embed: %+v", e)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("abcdef", 4); got != "abc…" {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("abc", 4); got != "abc" {
		t.Errorf("truncate = %q", got)
	}
}
