package advisor

import (
	"github.com/buildadvisor/internal/corpus"
)

// SkipReason says why a participant did not contribute to training.
type SkipReason string

const (
	SkipUnknownLane     SkipReason = "unknown_lane"
	SkipMissingChampion SkipReason = "missing_champion"
	SkipNoPurchases     SkipReason = "no_purchases"
	SkipNoOpponent      SkipReason = "no_opponent"
)

// Observation is one participant's build, paired with their lane opponent.
type Observation struct {
	MatchID   string
	Champion  string
	Opponent  string
	Win       bool
	Purchases []corpus.PurchaseEvent
}

// ScanMatch emits an observation for every usable participant of a match and
// returns the skip counts for the rest. It never modifies the record.
func ScanMatch(match *corpus.MatchRecord, emit func(Observation)) map[SkipReason]int {
	skipped := make(map[SkipReason]int)

	for i := range match.Participants {
		p := &match.Participants[i]

		if !corpus.IsLane(p.Lane) {
			skipped[SkipUnknownLane]++
			continue
		}
		if p.ChampionName == "" {
			skipped[SkipMissingChampion]++
			continue
		}
		if len(p.ItemPurchases) == 0 {
			skipped[SkipNoPurchases]++
			continue
		}

		opponent := directOpponent(match.Participants, i)
		if opponent == nil || opponent.ChampionName == "" {
			skipped[SkipNoOpponent]++
			continue
		}

		emit(Observation{
			MatchID:   match.MatchID,
			Champion:  p.ChampionName,
			Opponent:  opponent.ChampionName,
			Win:       p.Win,
			Purchases: p.ItemPurchases,
		})
	}

	return skipped
}

// directOpponent returns the first participant on the other team in the same
// lane, in record order.
func directOpponent(participants []corpus.Participant, self int) *corpus.Participant {
	me := &participants[self]
	for j := range participants {
		if j == self {
			continue
		}
		other := &participants[j]
		if other.TeamID != me.TeamID && other.Lane == me.Lane {
			return other
		}
	}
	return nil
}
