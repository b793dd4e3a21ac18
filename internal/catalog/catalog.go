// Package catalog loads card catalogs once per color/mode selection and
// serves filtered views over them.
package catalog

import (
	"slices"

	"github.com/arcanaland/deckseer/internal/card"
)

// Catalog is an immutable, sorted card list for one Key
type Catalog struct {
	key   Key
	cards []card.Card
}

// New sorts a copy of cards and wraps it as a catalog
func New(key Key, cards []card.Card) *Catalog {
	sorted := slices.Clone(cards)
	slices.SortStableFunc(sorted, card.CompareCards)
	return &Catalog{key: key, cards: sorted}
}

// Key returns the selection this catalog was loaded for
func (c *Catalog) Key() Key {
	return c.key
}

// Len returns the number of cards
func (c *Catalog) Len() int {
	return len(c.cards)
}

// Cards returns a deep copy of the sorted card list
func (c *Catalog) Cards() []card.Card {
	return cloneAll(c.cards)
}

// Filter returns copies of the cards matching f, in catalog order
func (c *Catalog) Filter(f card.Filter) []card.Card {
	return cloneAll(f.Apply(c.cards))
}

// ByIDs returns copies of the cards whose id is in ids and which match f
func (c *Catalog) ByIDs(ids []int, f card.Filter) []card.Card {
	wanted := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}

	matched := make([]card.Card, 0, len(wanted))
	for _, cd := range c.cards {
		if _, ok := wanted[cd.ID]; ok {
			matched = append(matched, cd)
		}
	}
	return cloneAll(f.Apply(matched))
}

// One returns the card with the given id. When ids repeat, the last one
// in catalog order wins.
func (c *Catalog) One(id int) (card.Card, bool) {
	for i := len(c.cards) - 1; i >= 0; i-- {
		if c.cards[i].ID == id {
			return c.cards[i].Clone(), true
		}
	}
	return card.Card{}, false
}

// cloneAll deep-copies cards so callers cannot reach cached data
func cloneAll(cards []card.Card) []card.Card {
	out := make([]card.Card, len(cards))
	for i, cd := range cards {
		out[i] = cd.Clone()
	}
	return out
}
