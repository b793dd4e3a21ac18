package card

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
)

// Card represents a card in the catalog
type Card struct {
	ID                     int                                    // multiverseid
	Name                   string                                 // Printed name
	ManaCost               string                                 // Mana cost string, e.g. {1}{R}
	Colors                 []string                               // Empty means colorless
	SecondaryColors        []string                               // Optional
	Types                  []string                               // Type tags (Creature, Instant, ...)
	ItemRecommendations    map[string]map[string][]Recommendation // mode -> color key -> recommendations
	ContentRecommendations []Recommendation                       // Text similarity recommendations
}

// Recommendation points at another card with its similarity scores.
// Either score may be absent in the exported data.
type Recommendation struct {
	ID                int      `json:"multiverseid"`
	ItemSimilarity    *float64 `json:"itemSimilarity"`
	ContentSimilarity *float64 `json:"contentSimilarity"`
}

// IsColorless reports whether the card has no colors
func (c *Card) IsColorless() bool {
	return len(c.Colors) == 0
}

// Clone returns a deep copy of c that shares no slices or maps with it
func (c *Card) Clone() Card {
	out := *c
	out.Colors = slices.Clone(c.Colors)
	out.SecondaryColors = slices.Clone(c.SecondaryColors)
	out.Types = slices.Clone(c.Types)
	out.ContentRecommendations = slices.Clone(c.ContentRecommendations)
	if c.ItemRecommendations != nil {
		out.ItemRecommendations = make(map[string]map[string][]Recommendation, len(c.ItemRecommendations))
		for mode, byColor := range c.ItemRecommendations {
			out.ItemRecommendations[mode] = maps.Clone(byColor)
			for key, recs := range byColor {
				out.ItemRecommendations[mode][key] = slices.Clone(recs)
			}
		}
	}
	return out
}

// record is the wire shape of a card. Pointer fields tell a missing field
// apart from an empty one.
type record struct {
	ID                     *int                                   `json:"multiverseid"`
	Name                   *string                                `json:"name"`
	ManaCost               string                                 `json:"manaCost"`
	Colors                 *[]string                              `json:"colors"`
	SecondaryColors        []string                               `json:"secondaryColors"`
	Types                  *[]string                              `json:"types"`
	ItemRecommendations    map[string]map[string][]Recommendation `json:"itemRecommendations"`
	ContentRecommendations []Recommendation                       `json:"contentRecommendations"`
}

// ValidationError reports a malformed record found while decoding a catalog
type ValidationError struct {
	Index int    // Position of the record in the file
	Field string // JSON field name
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("record %d: %s %s", e.Index, e.Field, e.Msg)
}

// DecodeCards decodes a JSON array of card records. The first malformed
// record fails the whole decode with a *ValidationError.
func DecodeCards(data []byte) ([]Card, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("error decoding cards: %w", err)
	}

	cards := make([]Card, 0, len(raw))
	for i, r := range raw {
		c, err := DecodeCard(i, r)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}

	return cards, nil
}

// DecodeCard decodes and checks a single record found at index
func DecodeCard(index int, data []byte) (Card, error) {
	var r record
	if err := json.Unmarshal(data, &r); err != nil {
		return Card{}, &ValidationError{Index: index, Field: "record", Msg: err.Error()}
	}
	return r.toCard(index)
}

// toCard checks the required fields and builds a Card
func (r record) toCard(index int) (Card, error) {
	switch {
	case r.ID == nil:
		return Card{}, &ValidationError{Index: index, Field: "multiverseid", Msg: "is required"}
	case *r.ID <= 0:
		return Card{}, &ValidationError{Index: index, Field: "multiverseid", Msg: fmt.Sprintf("must be positive, got %d", *r.ID)}
	case r.Name == nil || *r.Name == "":
		return Card{}, &ValidationError{Index: index, Field: "name", Msg: "is required"}
	case r.Colors == nil:
		return Card{}, &ValidationError{Index: index, Field: "colors", Msg: "is required"}
	case r.Types == nil:
		return Card{}, &ValidationError{Index: index, Field: "types", Msg: "is required"}
	}

	return Card{
		ID:                     *r.ID,
		Name:                   *r.Name,
		ManaCost:               r.ManaCost,
		Colors:                 *r.Colors,
		SecondaryColors:        r.SecondaryColors,
		Types:                  *r.Types,
		ItemRecommendations:    r.ItemRecommendations,
		ContentRecommendations: r.ContentRecommendations,
	}, nil
}
