package catalog

import (
	"fmt"
	"slices"
	"strings"

	"github.com/arcanaland/deckseer/internal/card"
)

// Key identifies one catalog file: a mode plus a color selection
type Key struct {
	Mode   string
	Colors []string
}

// NewKey builds a key with its colors in canonical order and deduplicated
func NewKey(mode string, colors ...string) Key {
	normalized := slices.Clone(colors)
	slices.SortFunc(normalized, card.CompareColors)
	return Key{Mode: mode, Colors: slices.Compact(normalized)}
}

// Validate checks that the key can name a catalog file
func (k Key) Validate() error {
	if k.Mode == "" {
		return fmt.Errorf("catalog mode is required")
	}
	if strings.ContainsAny(k.Mode, "/\\") {
		return fmt.Errorf("invalid catalog mode: %s", k.Mode)
	}
	for _, c := range k.Colors {
		if !card.IsKnownColor(c) {
			return fmt.Errorf("unknown color: %s", c)
		}
	}
	return nil
}

// Filename returns the catalog file name, e.g. catalog_standard_Blue_Red.json
func (k Key) Filename() string {
	return "catalog_" + k.Mode + "_" + strings.Join(k.Colors, "_") + ".json"
}

func (k Key) String() string {
	return k.Mode + "/" + strings.Join(k.Colors, "_")
}
