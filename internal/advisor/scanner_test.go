package advisor

import (
	"testing"

	"github.com/buildadvisor/internal/corpus"
)

func TestScanMatch_PairsLaneOpponents(t *testing.T) {
	match := &corpus.MatchRecord{
		MatchID: "EUW1_1",
		Participants: []corpus.Participant{
			{ChampionName: "Garen", TeamID: 100, Lane: "TOP", Win: true, ItemPurchases: purchases(3001)},
			{ChampionName: "Ahri", TeamID: 100, Lane: "MIDDLE", Win: true, ItemPurchases: purchases(3003)},
			{ChampionName: "Darius", TeamID: 200, Lane: "TOP", ItemPurchases: purchases(3004)},
			{ChampionName: "Syndra", TeamID: 200, Lane: "MIDDLE", ItemPurchases: purchases(3005)},
		},
	}

	got := make(map[string]Observation)
	skipped := ScanMatch(match, func(obs Observation) {
		got[obs.Champion] = obs
	})

	if len(skipped) != 0 {
		t.Errorf("Expected no skips, got %v", skipped)
	}

	want := map[string]string{"Garen": "Darius", "Darius": "Garen", "Ahri": "Syndra", "Syndra": "Ahri"}
	for champ, opp := range want {
		obs, ok := got[champ]
		if !ok {
			t.Errorf("Missing observation for %s", champ)
			continue
		}
		if obs.Opponent != opp {
			t.Errorf("%s: expected opponent %s, got %s", champ, opp, obs.Opponent)
		}
		if obs.MatchID != "EUW1_1" {
			t.Errorf("%s: expected match ID to be carried", champ)
		}
	}
	if !got["Garen"].Win || got["Darius"].Win {
		t.Error("Win flags not carried through")
	}
}

func TestScanMatch_FirstOpponentInRecordOrderWins(t *testing.T) {
	match := &corpus.MatchRecord{
		Participants: []corpus.Participant{
			{ChampionName: "Garen", TeamID: 100, Lane: "TOP", ItemPurchases: purchases(3001)},
			{ChampionName: "Darius", TeamID: 200, Lane: "TOP"},
			{ChampionName: "Sett", TeamID: 200, Lane: "TOP"},
		},
	}

	var opp string
	ScanMatch(match, func(obs Observation) {
		if obs.Champion == "Garen" {
			opp = obs.Opponent
		}
	})
	if opp != "Darius" {
		t.Errorf("Expected first opponent Darius, got %q", opp)
	}
}

func TestScanMatch_SkipReasons(t *testing.T) {
	match := &corpus.MatchRecord{
		Participants: []corpus.Participant{
			{ChampionName: "Garen", TeamID: 100, Lane: "NONE", ItemPurchases: purchases(3001)},
			{ChampionName: "", TeamID: 100, Lane: "JUNGLE", ItemPurchases: purchases(3001)},
			{ChampionName: "Ahri", TeamID: 100, Lane: "MIDDLE"},
			{ChampionName: "Jinx", TeamID: 100, Lane: "BOTTOM", ItemPurchases: purchases(3001)},
			{ChampionName: "Lulu", TeamID: 100, Lane: "UTILITY", ItemPurchases: purchases(3001)},
			{ChampionName: "Nami", TeamID: 200, Lane: "UTILITY", ItemPurchases: purchases(3001)},
		},
	}

	emitted := 0
	skipped := ScanMatch(match, func(Observation) { emitted++ })

	if emitted != 2 {
		t.Errorf("Expected 2 observations (Lulu, Nami), got %d", emitted)
	}
	want := map[SkipReason]int{
		SkipUnknownLane:     1,
		SkipMissingChampion: 1,
		SkipNoPurchases:     1,
		SkipNoOpponent:      1,
	}
	for reason, n := range want {
		if skipped[reason] != n {
			t.Errorf("Skip %s: expected %d, got %d", reason, n, skipped[reason])
		}
	}
}

func TestScanMatch_SameTeamSameLaneIsNotOpponent(t *testing.T) {
	match := &corpus.MatchRecord{
		Participants: []corpus.Participant{
			{ChampionName: "Garen", TeamID: 100, Lane: "TOP", ItemPurchases: purchases(3001)},
			{ChampionName: "Teemo", TeamID: 100, Lane: "TOP", ItemPurchases: purchases(3001)},
		},
	}

	emitted := 0
	skipped := ScanMatch(match, func(Observation) { emitted++ })
	if emitted != 0 || skipped[SkipNoOpponent] != 2 {
		t.Errorf("Expected both skipped for no opponent, got emitted=%d skipped=%v", emitted, skipped)
	}
}
