package card

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/cases"
)

// CompareCards orders cards by name, then by id. Catalogs are sorted with
// this once at load time.
func CompareCards(a, b Card) int {
	if c := strings.Compare(a.Name, b.Name); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

// Filter selects cards by color, type, name and secondary color.
// An empty field places no constraint on its dimension.
type Filter struct {
	Colors          []string
	Types           []string
	Name            string
	SecondaryColors []string
}

// IsEmpty reports whether the filter accepts every card
func (f Filter) IsEmpty() bool {
	return len(f.Colors) == 0 && len(f.Types) == 0 && f.Name == "" && len(f.SecondaryColors) == 0
}

// Matches reports whether c satisfies every non-empty dimension of f
func (f Filter) Matches(c Card) bool {
	return f.prepare().matches(c)
}

// Apply returns the cards matching f in their original order.
// The input slice is never modified.
func (f Filter) Apply(cards []Card) []Card {
	p := f.prepare()
	out := make([]Card, 0, len(cards))
	for _, c := range cards {
		if p.matches(c) {
			out = append(out, c)
		}
	}
	return out
}

// prepared is a filter with its name query folded once for a pass over
// many cards. A caser keeps state, so each pass gets its own.
type prepared struct {
	Filter
	fold cases.Caser
	name string
}

func (f Filter) prepare() *prepared {
	p := &prepared{Filter: f}
	if f.Name != "" {
		p.fold = cases.Fold()
		p.name = p.fold.String(f.Name)
	}
	return p
}

func (p *prepared) matches(c Card) bool {
	if len(p.Colors) > 0 && !matchColors(c.Colors, p.Colors) {
		return false
	}
	if len(p.SecondaryColors) > 0 && !matchColors(c.SecondaryColors, p.SecondaryColors) {
		return false
	}
	if len(p.Types) > 0 && !intersects(c.Types, p.Types) {
		return false
	}
	if p.Filter.Name != "" && !strings.Contains(p.fold.String(c.Name), p.name) {
		return false
	}
	return true
}

// matchColors treats an empty color list as the colorless sentinel
func matchColors(colors, filter []string) bool {
	if len(colors) == 0 {
		return slices.Contains(filter, NoColor)
	}
	return intersects(colors, filter)
}

func intersects(a, b []string) bool {
	for _, x := range a {
		if slices.Contains(b, x) {
			return true
		}
	}
	return false
}
