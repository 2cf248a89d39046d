// Package data provides the Data Dragon item catalog.
package data

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// ItemData represents the structure of item.json
type ItemData struct {
	Type    string                `json:"type"`
	Version string                `json:"version"`
	Data    map[string]ItemDetail `json:"data"`
}

// ItemDetail represents a single item's data
type ItemDetail struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Plaintext   string   `json:"plaintext"`
	Tags        []string `json:"tags"`
	Into        []string `json:"into,omitempty"`
	From        []string `json:"from,omitempty"`
	Gold        Gold     `json:"gold"`
}

// Gold is the price block of an item.
type Gold struct {
	Base        int  `json:"base"`
	Total       int  `json:"total"`
	Sell        int  `json:"sell"`
	Purchasable bool `json:"purchasable"`
}

// Item is a catalog entry keyed by its Data Dragon identifier.
type Item struct {
	ID string
	ItemDetail
}

// HasTag reports whether the item carries the given Data Dragon tag.
func (it Item) HasTag(tag string) bool {
	for _, t := range it.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Upgradable reports whether the item builds into something else.
func (it Item) Upgradable() bool {
	return len(it.Into) > 0
}

// Catalog is an immutable snapshot of the item data. It is loaded once and
// handed to whoever needs it; it never refreshes itself.
type Catalog struct {
	version string
	items   map[string]Item
	order   []string
}

// NewCatalog builds a catalog from parsed item.json data.
func NewCatalog(d *ItemData) *Catalog {
	c := &Catalog{items: make(map[string]Item)}
	if d == nil {
		return c
	}

	c.version = d.Version
	for id, detail := range d.Data {
		c.items[id] = Item{ID: id, ItemDetail: detail}
		c.order = append(c.order, id)
	}
	sort.Slice(c.order, func(i, j int) bool {
		return CompareIDs(c.order[i], c.order[j]) < 0
	})

	return c
}

// ParseItems decodes an item.json payload into a catalog.
func ParseItems(raw []byte) (*Catalog, error) {
	var d ItemData
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("failed to parse item data: %w", err)
	}
	if len(d.Data) == 0 {
		return nil, fmt.Errorf("item data has no entries")
	}
	return NewCatalog(&d), nil
}

// LoadItems loads item data from the JSON file
func LoadItems(filePath string) (*Catalog, error) {
	raw, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	return ParseItems(raw)
}

// Version returns the Data Dragon patch the catalog was built from.
func (c *Catalog) Version() string {
	return c.version
}

// Len returns the number of items in the catalog.
func (c *Catalog) Len() int {
	return len(c.items)
}

// Item looks up an item by identifier.
func (c *Catalog) Item(id string) (Item, bool) {
	it, ok := c.items[id]
	return it, ok
}

// Name returns the display name for an item ID, or a placeholder carrying the
// raw identifier when the catalog does not know it.
func (c *Catalog) Name(id string) string {
	if it, ok := c.items[id]; ok && it.Name != "" {
		return it.Name
	}
	return "Item #" + id
}

// FindByName returns the first item (in catalog order) whose name matches,
// ignoring case.
func (c *Catalog) FindByName(name string) (Item, bool) {
	name = strings.TrimSpace(name)
	for _, id := range c.order {
		if it := c.items[id]; strings.EqualFold(it.Name, name) {
			return it, true
		}
	}
	return Item{}, false
}

// IDs returns all item identifiers in catalog order.
func (c *Catalog) IDs() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// GetItemIconURL returns the Data Dragon URL for an item icon
func (c *Catalog) GetItemIconURL(itemID string) string {
	version := c.version
	if version == "" {
		version = "14.24.1" // fallback version
	}
	return fmt.Sprintf("https://ddragon.leagueoflegends.com/cdn/%s/img/item/%s.png", version, itemID)
}

// CompareIDs orders item identifiers numerically when both parse as integers
// and lexically otherwise. Data Dragon lists items in this order.
func CompareIDs(a, b string) int {
	ai, aErr := strconv.Atoi(a)
	bi, bErr := strconv.Atoi(b)
	if aErr == nil && bErr == nil {
		switch {
		case ai < bi:
			return -1
		case ai > bi:
			return 1
		}
		return 0
	}
	return strings.Compare(a, b)
}
