package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/arcanaland/deckseer/internal/card"
)

// catalogName matches catalog_<mode>_<colors>.json
var catalogName = regexp.MustCompile(`^catalog_[^_/\\]+_[A-Za-z_]*\.json$`)

type ValidationResults struct {
	Errors   []string
	Warnings []string
	Cards    int
}

type Validator struct {
	CatalogPath string
	Results     ValidationResults
}

func NewValidator(catalogPath string) *Validator {
	return &Validator{
		CatalogPath: catalogPath,
		Results:     ValidationResults{},
	}
}

// Validate checks a catalog file. The returned error is only set when the
// file cannot be read or is not a JSON array at all.
func (v *Validator) Validate() (ValidationResults, error) {
	data, err := os.ReadFile(v.CatalogPath)
	if err != nil {
		return v.Results, fmt.Errorf("error reading catalog: %w", err)
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return v.Results, fmt.Errorf("error parsing catalog: %w", err)
	}

	v.validateFileName()
	cards := v.validateRecords(raw)
	v.Results.Cards = len(cards)
	v.validateIDs(cards)
	v.validateColors(cards)
	v.validateRecommendations(cards)

	return v.Results, nil
}

func (v *Validator) errorf(format string, args ...any) {
	v.Results.Errors = append(v.Results.Errors, fmt.Sprintf(format, args...))
}

func (v *Validator) warnf(format string, args ...any) {
	v.Results.Warnings = append(v.Results.Warnings, fmt.Sprintf(format, args...))
}

// validateFileName checks the catalog naming convention
func (v *Validator) validateFileName() {
	name := filepath.Base(v.CatalogPath)
	if !catalogName.MatchString(name) {
		v.warnf("file name %s does not follow catalog_<mode>_<colors>.json", name)
	}
}

// validateRecords decodes every record, reporting each malformed one
func (v *Validator) validateRecords(raw []json.RawMessage) []card.Card {
	if len(raw) == 0 {
		v.warnf("catalog is empty")
	}

	cards := make([]card.Card, 0, len(raw))
	for i, r := range raw {
		c, err := card.DecodeCard(i, r)
		if err != nil {
			var verr *card.ValidationError
			if errors.As(err, &verr) {
				v.errorf("%s", verr)
			} else {
				v.errorf("record %d: %v", i, err)
			}
			continue
		}
		cards = append(cards, c)
	}
	return cards
}

// validateIDs warns about duplicate ids; lookups keep the last one
func (v *Validator) validateIDs(cards []card.Card) {
	seen := make(map[int]string, len(cards))
	for _, c := range cards {
		if prev, ok := seen[c.ID]; ok {
			v.warnf("duplicate multiverseid %d (%s, %s): the last record wins", c.ID, prev, c.Name)
		}
		seen[c.ID] = c.Name
	}
}

// validateColors warns about color names outside the known set
func (v *Validator) validateColors(cards []card.Card) {
	for _, c := range cards {
		for _, color := range c.Colors {
			if !card.IsKnownColor(color) || color == card.NoColor {
				v.warnf("card %d (%s): unexpected color %q", c.ID, c.Name, color)
			}
		}
		for _, color := range c.SecondaryColors {
			if !card.IsKnownColor(color) {
				v.warnf("card %d (%s): unknown secondary color %q", c.ID, c.Name, color)
			}
		}
	}
}

// validateRecommendations checks recommendation keys and targets
func (v *Validator) validateRecommendations(cards []card.Card) {
	ids := make(map[int]bool, len(cards))
	for _, c := range cards {
		ids[c.ID] = true
	}

	for _, c := range cards {
		for _, mode := range slices.Sorted(maps.Keys(c.ItemRecommendations)) {
			byColor := c.ItemRecommendations[mode]
			for _, key := range slices.SortedFunc(maps.Keys(byColor), card.CompareColorKeys) {
				recs := byColor[key]
				for _, color := range card.SplitColorKey(key) {
					if !card.IsKnownColor(color) {
						v.warnf("card %d: unknown color key %q in mode %s", c.ID, key, mode)
						break
					}
				}
				if len(recs) == 0 {
					v.warnf("card %d: empty recommendation list for %s/%s", c.ID, mode, key)
				}
				v.checkTargets(c, ids, recs, mode+"/"+key)
			}
		}
		v.checkTargets(c, ids, c.ContentRecommendations, "content")
	}
}

func (v *Validator) checkTargets(c card.Card, ids map[int]bool, recs []card.Recommendation, where string) {
	var missing []string
	for _, r := range recs {
		if !ids[r.ID] {
			missing = append(missing, fmt.Sprint(r.ID))
		}
	}
	if len(missing) > 0 {
		v.warnf("card %d: %s recommends cards not in this catalog: %s", c.ID, where, strings.Join(missing, ", "))
	}
}
