// Package advisor learns outcome-weighted item transition tables from a match
// corpus and recommends greedy build orders from them.
package advisor

import (
	"sort"
	"strconv"

	"github.com/buildadvisor/internal/corpus"
	"github.com/buildadvisor/internal/data"
)

// StartNode is the synthetic first node of every build sequence.
const StartNode = "START"

// MinFinalItemGold is the cheapest total cost a non-boots item may have and
// still count as a finished item.
const MinFinalItemGold = 1600

// Catalog is the item lookup the advisor needs. *data.Catalog satisfies it.
type Catalog interface {
	Item(id string) (data.Item, bool)
	Name(id string) string
}

// IsFinalItem reports whether an item is worth tracking in a build order:
// upgraded boots, or any non-upgradable item costing at least
// MinFinalItemGold. Items the catalog does not know are never final.
func IsFinalItem(catalog Catalog, itemID string) bool {
	item, ok := catalog.Item(itemID)
	if !ok {
		return false
	}
	if item.Upgradable() {
		return false
	}
	if item.HasTag("Boots") {
		return true
	}
	return item.Gold.Total >= MinFinalItemGold
}

// BuildSequence turns a participant's events into START followed by the
// distinct final items they purchased, in purchase order. Only purchases
// count; a repeated item keeps its first position.
func BuildSequence(purchases []corpus.PurchaseEvent, catalog Catalog) []string {
	events := make([]corpus.PurchaseEvent, len(purchases))
	copy(events, purchases)
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp < events[j].Timestamp
	})

	seq := []string{StartNode}
	seen := make(map[string]bool)
	for _, ev := range events {
		if ev.Type != corpus.ItemPurchased {
			continue
		}
		id := strconv.Itoa(ev.ItemID)
		if seen[id] || !IsFinalItem(catalog, id) {
			continue
		}
		seen[id] = true
		seq = append(seq, id)
	}
	return seq
}
