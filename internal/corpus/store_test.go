package corpus

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func sampleRecord(id string) *MatchRecord {
	return &MatchRecord{
		MatchID:  id,
		GameMode: "CLASSIC",
		Participants: []Participant{
			{
				ParticipantID: 1,
				ChampionName:  "Garen",
				TeamID:        100,
				Win:           true,
				Lane:          "TOP",
				ItemPurchases: []PurchaseEvent{
					{Type: ItemPurchased, Timestamp: 1000, ItemID: 1054},
				},
			},
		},
	}
}

func TestStore_SaveAndWalkInOrder(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "parsed_matches"))

	for _, id := range []string{"EUW1_3", "EUW1_1", "EUW1_2"} {
		if _, err := store.Save(sampleRecord(id), "CLA_"); err != nil {
			t.Fatalf("Save(%s) failed: %v", id, err)
		}
	}

	var seen []string
	err := store.Walk(context.Background(), func(path string, rec *MatchRecord, err error) error {
		if err != nil {
			t.Errorf("Unexpected read error for %s: %v", path, err)
			return nil
		}
		seen = append(seen, rec.MatchID)
		return nil
	})
	if err != nil {
		t.Fatalf("Walk failed: %v", err)
	}

	want := []string{"EUW1_1", "EUW1_2", "EUW1_3"}
	if len(seen) != len(want) {
		t.Fatalf("Expected %d records, got %d", len(want), len(seen))
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("Record %d: expected %s, got %s", i, want[i], seen[i])
		}
	}
}

func TestStore_RoundTripFields(t *testing.T) {
	store := NewStore(t.TempDir())
	path, err := store.Save(sampleRecord("EUW1_9"), "")
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	rec, err := ReadRecord(path)
	if err != nil {
		t.Fatalf("ReadRecord failed: %v", err)
	}
	p := rec.Participants[0]
	if p.ChampionName != "Garen" || p.Lane != "TOP" || !p.Win {
		t.Errorf("Unexpected participant: %+v", p)
	}
	if len(p.ItemPurchases) != 1 || p.ItemPurchases[0].Type != ItemPurchased {
		t.Errorf("Unexpected purchases: %+v", p.ItemPurchases)
	}
}

func TestStore_WalkReportsBadFiles(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)
	store.Save(sampleRecord("EUW1_1"), "")
	os.WriteFile(filepath.Join(dir, "EUW1_0.json"), []byte("{broken"), 0644)
	os.WriteFile(filepath.Join(dir, "EUW1_5.json"), []byte(`{"matchId":"EUW1_5"}`), 0644)

	var good, bad int
	store.Walk(context.Background(), func(path string, rec *MatchRecord, err error) error {
		if err != nil {
			bad++
			return nil
		}
		good++
		return nil
	})

	if good != 1 || bad != 2 {
		t.Errorf("Expected 1 good and 2 bad records, got %d/%d", good, bad)
	}
}

func TestStore_WalkStopsOnCallbackError(t *testing.T) {
	store := NewStore(t.TempDir())
	store.Save(sampleRecord("EUW1_1"), "")
	store.Save(sampleRecord("EUW1_2"), "")

	stop := errors.New("stop")
	calls := 0
	err := store.Walk(context.Background(), func(string, *MatchRecord, error) error {
		calls++
		return stop
	})
	if !errors.Is(err, stop) || calls != 1 {
		t.Errorf("Expected walk to stop after first record, got err=%v calls=%d", err, calls)
	}
}

func TestStore_WalkMissingDir(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "missing"))
	calls := 0
	if err := store.Walk(context.Background(), func(string, *MatchRecord, error) error {
		calls++
		return nil
	}); err != nil {
		t.Fatalf("Walk on missing dir should not fail: %v", err)
	}
	if calls != 0 {
		t.Errorf("Expected no records, got %d", calls)
	}
}

func TestStore_MatchIDs(t *testing.T) {
	store := NewStore(t.TempDir())
	store.Save(sampleRecord("EUW1_100"), "CLA_")
	store.Save(sampleRecord("EUW1_200"), "")

	ids, err := store.MatchIDs()
	if err != nil {
		t.Fatalf("MatchIDs failed: %v", err)
	}
	if len(ids) != 2 {
		t.Errorf("Unexpected IDs: %v", ids)
	}
	for _, id := range ids {
		if id != "EUW1_100" && id != "EUW1_200" {
			t.Errorf("Unexpected match ID %q", id)
		}
	}
}

func TestStore_SaveRequiresID(t *testing.T) {
	store := NewStore(t.TempDir())
	if _, err := store.Save(&MatchRecord{}, ""); err == nil {
		t.Error("Expected error for record without matchId")
	}
}

func TestIsLane(t *testing.T) {
	for _, lane := range Lanes {
		if !IsLane(lane) {
			t.Errorf("Expected %s to be a lane", lane)
		}
	}
	for _, lane := range []string{"", "NONE", "Invalid", "top"} {
		if IsLane(lane) {
			t.Errorf("Expected %q not to be a lane", lane)
		}
	}
}

func TestRecords_Walk(t *testing.T) {
	recs := Records{sampleRecord("A"), sampleRecord("B")}
	var ids []string
	recs.Walk(context.Background(), func(_ string, rec *MatchRecord, err error) error {
		ids = append(ids, rec.MatchID)
		return nil
	})
	if len(ids) != 2 || ids[0] != "A" || ids[1] != "B" {
		t.Errorf("Unexpected walk order: %v", ids)
	}
}
