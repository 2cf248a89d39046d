package riot

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/buildadvisor/internal/corpus"
)

// GameDateLayout is how match creation time is written to records.
const GameDateLayout = "2006-01-02 15:04:05"

// ParseMatchRecord converts a match and its timeline into a corpus record.
// It returns nil when the match carries no participants.
func ParseMatchRecord(match *MatchResponse, timeline *TimelineResponse, rank string) *corpus.MatchRecord {
	if match == nil || len(match.Info.Participants) == 0 {
		return nil
	}
	info := match.Info

	events := itemEventsByParticipant(timeline)
	timestamps, gold := goldCurves(timeline)

	participants := make([]corpus.Participant, 0, len(info.Participants))
	for _, p := range info.Participants {
		participants = append(participants, corpus.Participant{
			ParticipantID: p.ParticipantID,
			ChampionName:  p.ChampionName,
			TeamID:        p.TeamID,
			Win:           p.Win,
			Lane:          p.Position(),
			GoldCurve:     gold[p.ParticipantID],
			ItemPurchases: events[p.ParticipantID],
			FinalItems:    p.Items(),
		})
	}

	var gameDate string
	if info.GameCreation > 0 {
		gameDate = time.UnixMilli(info.GameCreation).UTC().Format(GameDateLayout)
	}

	return &corpus.MatchRecord{
		MatchID:           match.Metadata.MatchID,
		GameDate:          gameDate,
		Rank:              rank,
		GameMode:          info.GameMode,
		GameDuration:      info.GameDuration,
		TimestampsMinutes: timestamps,
		Participants:      participants,
	}
}

// FilePrefix returns the record file prefix for a game mode: its first three
// letters upper-cased, then "_".
func FilePrefix(gameMode string) string {
	if gameMode == "" {
		gameMode = "UNK"
	}
	if len(gameMode) > 3 {
		gameMode = gameMode[:3]
	}
	return strings.ToUpper(gameMode) + "_"
}

func itemEventsByParticipant(timeline *TimelineResponse) map[int][]corpus.PurchaseEvent {
	out := make(map[int][]corpus.PurchaseEvent)
	if timeline == nil {
		return out
	}

	for _, frame := range timeline.Info.Frames {
		for _, ev := range frame.Events {
			switch corpus.EventType(ev.Type) {
			case corpus.ItemPurchased, corpus.ItemSold, corpus.ItemDestroyed, corpus.ItemUndo:
			default:
				continue
			}
			if ev.ParticipantID == 0 {
				continue
			}

			itemID := ev.ItemID
			if itemID == 0 {
				itemID = ev.AfterID
			}
			if itemID == 0 {
				itemID = ev.BeforeID
			}

			out[ev.ParticipantID] = append(out[ev.ParticipantID], corpus.PurchaseEvent{
				Type:      corpus.EventType(ev.Type),
				Timestamp: ev.Timestamp,
				ItemID:    itemID,
			})
		}
	}

	for pid := range out {
		evs := out[pid]
		sort.SliceStable(evs, func(i, j int) bool {
			return evs[i].Timestamp < evs[j].Timestamp
		})
	}
	return out
}

// goldCurves returns frame times in minutes and each participant's total gold
// per frame.
func goldCurves(timeline *TimelineResponse) ([]float64, map[int][]int) {
	gold := make(map[int][]int)
	if timeline == nil {
		return nil, gold
	}

	timestamps := make([]float64, 0, len(timeline.Info.Frames))
	for _, frame := range timeline.Info.Frames {
		timestamps = append(timestamps, float64(frame.Timestamp)/60000)
		for key, pf := range frame.ParticipantFrames {
			pid, err := strconv.Atoi(key)
			if err != nil || pid < 1 || pid > 10 {
				continue
			}
			gold[pid] = append(gold[pid], pf.TotalGold)
		}
	}
	return timestamps, gold
}
