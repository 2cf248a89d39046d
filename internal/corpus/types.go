// Package corpus provides the parsed match record store.
package corpus

// EventType is the kind of item event recorded on a match timeline.
type EventType string

const (
	ItemPurchased EventType = "ITEM_PURCHASED"
	ItemSold      EventType = "ITEM_SOLD"
	ItemDestroyed EventType = "ITEM_DESTROYED"
	ItemUndo      EventType = "ITEM_UNDO"
)

// Lanes are the positions used to pair a participant with a direct opponent.
var Lanes = []string{"TOP", "JUNGLE", "MIDDLE", "BOTTOM", "UTILITY"}

// IsLane reports whether lane is one of the five standard positions.
func IsLane(lane string) bool {
	for _, l := range Lanes {
		if l == lane {
			return true
		}
	}
	return false
}

// MatchRecord is one parsed game as stored on disk.
type MatchRecord struct {
	MatchID           string        `json:"matchId"`
	GameDate          string        `json:"gameDate,omitempty"`
	Rank              string        `json:"rank,omitempty"`
	GameMode          string        `json:"gameMode,omitempty"`
	GameDuration      int64         `json:"gameDuration,omitempty"`
	TimestampsMinutes []float64     `json:"timestamps_minutes,omitempty"`
	Participants      []Participant `json:"participants"`
}

// Participant is one player's slice of a match record.
type Participant struct {
	ParticipantID int             `json:"participantId"`
	ChampionName  string          `json:"championName"`
	TeamID        int             `json:"teamId"`
	Win           bool            `json:"win"`
	Lane          string          `json:"lane"`
	GoldCurve     []int           `json:"gold_curve,omitempty"`
	ItemPurchases []PurchaseEvent `json:"item_purchases"`
	FinalItems    []int           `json:"final_items,omitempty"`
}

// PurchaseEvent is one item acquisition (or sale, destruction, undo).
type PurchaseEvent struct {
	Type      EventType `json:"type"`
	Timestamp int64     `json:"timestamp"`
	ItemID    int       `json:"itemId"`
}
