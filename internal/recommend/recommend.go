// Package recommend projects a card's precomputed recommendations.
// Nothing here does I/O; a missing mode or color yields an empty result.
package recommend

import (
	"maps"
	"slices"

	"github.com/arcanaland/deckseer/internal/card"
)

// ColorGroup holds the recommendations computed for one color key
type ColorGroup struct {
	Color           string
	Recommendations []card.Recommendation
}

// ForMode returns the card's recommendations for mode, grouped by color key
// in canonical color order with colorless last
func ForMode(c card.Card, mode string) []ColorGroup {
	byColor, ok := c.ItemRecommendations[mode]
	if !ok {
		return []ColorGroup{}
	}

	colors := slices.SortedFunc(maps.Keys(byColor), card.CompareColorKeys)
	groups := make([]ColorGroup, 0, len(colors))
	for _, color := range colors {
		groups = append(groups, ColorGroup{Color: color, Recommendations: byColor[color]})
	}
	return groups
}

// ForModeAndColor returns the recommendations for an exact mode and color key
func ForModeAndColor(c card.Card, mode, color string) []card.Recommendation {
	recs := c.ItemRecommendations[mode][color]
	if recs == nil {
		return []card.Recommendation{}
	}
	return recs
}

// Modes lists the modes the card has recommendations for, sorted
func Modes(c card.Card) []string {
	return slices.Sorted(maps.Keys(c.ItemRecommendations))
}

// Content returns the card's text-similarity recommendations
func Content(c card.Card) []card.Recommendation {
	if c.ContentRecommendations == nil {
		return []card.Recommendation{}
	}
	return c.ContentRecommendations
}

// Resolved pairs a recommendation with the card it points at
type Resolved struct {
	card.Recommendation
	Card card.Card
}

// Resolve looks up each recommended card, dropping ids lookup cannot find
func Resolve(recs []card.Recommendation, lookup func(id int) (card.Card, bool)) []Resolved {
	out := make([]Resolved, 0, len(recs))
	for _, r := range recs {
		if c, ok := lookup(r.ID); ok {
			out = append(out, Resolved{Recommendation: r, Card: c})
		}
	}
	return out
}
