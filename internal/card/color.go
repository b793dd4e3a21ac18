package card

import (
	"slices"
	"strings"
)

// Color represents a card color
type Color struct {
	Name string
}

// NoColor is the color key used for colorless cards
const NoColor = "No_Color"

// BaseColors lists the five colors in canonical order
var BaseColors = []string{"Black", "Blue", "Green", "Red", "White"}

// Colors returns every selectable color, colorless last
func Colors() []Color {
	colors := make([]Color, 0, len(BaseColors)+1)
	for _, name := range BaseColors {
		colors = append(colors, Color{Name: name})
	}
	return append(colors, Color{Name: NoColor})
}

// IsKnownColor reports whether name is a base color or the colorless sentinel
func IsKnownColor(name string) bool {
	return name == NoColor || slices.Contains(BaseColors, name)
}

// colorRank positions a single color name. Unknown names rank after the
// base colors and are ordered among themselves by name.
func colorRank(name string) int {
	if i := slices.Index(BaseColors, name); i >= 0 {
		return i
	}
	return len(BaseColors)
}

// CompareColors orders two single color names canonically
func CompareColors(a, b string) int {
	if a == b {
		return 0
	}
	if a == NoColor {
		return 1
	}
	if b == NoColor {
		return -1
	}
	ra, rb := colorRank(a), colorRank(b)
	if ra != rb {
		if ra < rb {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}

// SplitColorKey splits a color key like Blue_Red into its colors.
// The colorless sentinel is returned whole.
func SplitColorKey(key string) []string {
	if key == NoColor || key == "" {
		return []string{key}
	}
	return strings.Split(key, "_")
}

// JoinColorKey builds a color key from a set of colors in canonical order.
// An empty set yields the colorless sentinel.
func JoinColorKey(colors []string) string {
	sorted := slices.DeleteFunc(slices.Clone(colors), func(c string) bool {
		return c == NoColor || c == ""
	})
	if len(sorted) == 0 {
		return NoColor
	}
	slices.SortFunc(sorted, CompareColors)
	return strings.Join(slices.Compact(sorted), "_")
}

// CompareColorKeys orders recommendation color keys: colorless last,
// everything else element-wise by canonical color order, prefixes first.
func CompareColorKeys(a, b string) int {
	if a == b {
		return 0
	}
	if a == NoColor {
		return 1
	}
	if b == NoColor {
		return -1
	}
	return slices.CompareFunc(SplitColorKey(a), SplitColorKey(b), CompareColors)
}
