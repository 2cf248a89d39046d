package advisor

import (
	"github.com/buildadvisor/internal/corpus"
	"github.com/buildadvisor/internal/data"
)

// testCatalog holds one component (1000 -> 3001), three finished items and a
// pair of boots (basic 1001 -> 3006).
func testCatalog() *data.Catalog {
	return data.NewCatalog(&data.ItemData{
		Version: "14.23.1",
		Data: map[string]data.ItemDetail{
			"1000": {Name: "C1000", Into: []string{"3001"}, Gold: data.Gold{Total: 900}},
			"1001": {Name: "Boots", Tags: []string{"Boots"}, Into: []string{"3006"}, Gold: data.Gold{Total: 300}},
			"3001": {Name: "F1", Gold: data.Gold{Total: 1800}},
			"3002": {Name: "F2", Tags: []string{"Boots"}, Gold: data.Gold{Total: 1100}},
			"3003": {Name: "F3", Gold: data.Gold{Total: 2000}},
			"3004": {Name: "F4", Gold: data.Gold{Total: 2600}},
			"3005": {Name: "F5", Gold: data.Gold{Total: 3000}},
			"3006": {Name: "Greaves", Tags: []string{"Boots"}, Gold: data.Gold{Total: 1100}},
			"3007": {Name: "F7", Gold: data.Gold{Total: 3100}},
			"3008": {Name: "F8", Gold: data.Gold{Total: 3200}},
			"2003": {Name: "Health Potion", Gold: data.Gold{Total: 50}},
		},
	})
}

func purchases(ids ...int) []corpus.PurchaseEvent {
	events := make([]corpus.PurchaseEvent, len(ids))
	for i, id := range ids {
		events[i] = corpus.PurchaseEvent{Type: corpus.ItemPurchased, Timestamp: int64((i + 1) * 60000), ItemID: id}
	}
	return events
}

// laneMatch builds a two-player TOP lane match.
func laneMatch(id, champ, opp string, win bool, items ...int) *corpus.MatchRecord {
	return &corpus.MatchRecord{
		MatchID: id,
		Participants: []corpus.Participant{
			{ParticipantID: 1, ChampionName: champ, TeamID: 100, Lane: "TOP", Win: win, ItemPurchases: purchases(items...)},
			{ParticipantID: 6, ChampionName: opp, TeamID: 200, Lane: "TOP", Win: !win},
		},
	}
}

// garenCorpus is the Garen vs Darius scenario: one win buying
// [C1000, F1, F2] and one loss buying [F1, F3].
func garenCorpus() corpus.Records {
	return corpus.Records{
		laneMatch("EUW1_A", "Garen", "Darius", true, 1000, 3001, 3002),
		laneMatch("EUW1_B", "Garen", "Darius", false, 3001, 3003),
	}
}
