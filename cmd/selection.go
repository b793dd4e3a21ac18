package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arcanaland/deckseer/internal/card"
	"github.com/arcanaland/deckseer/internal/catalog"
	"github.com/arcanaland/deckseer/internal/config"
	"github.com/arcanaland/deckseer/internal/deck"
)

// addSelectionFlags registers the flags choosing which catalog to load
func addSelectionFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceP("colors", "c", nil, "Catalog colors, e.g. Blue,Red")
	cmd.Flags().StringP("mode", "m", "", "Catalog mode (defaults to default_mode)")
	cmd.Flags().StringP("deck", "d", "", "Use the colors and mode of a deck from your deck library")
}

// addFilterFlags registers the card filter flags
func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringSlice("color", nil, "Only cards with one of these colors (No_Color for colorless)")
	cmd.Flags().StringSlice("type", nil, "Only cards with one of these types")
	cmd.Flags().String("name", "", "Only cards whose name contains this text")
	cmd.Flags().StringSlice("secondary", nil, "Only cards with one of these secondary colors")
}

// selectionKey resolves the catalog key from the selection flags
func selectionKey(cmd *cobra.Command, cfg *config.Config) (catalog.Key, error) {
	deckName, _ := cmd.Flags().GetString("deck")
	colors, _ := cmd.Flags().GetStringSlice("colors")
	mode, _ := cmd.Flags().GetString("mode")
	return resolveKey(cfg, deckName, colors, mode)
}

// resolveKey picks the catalog from a deck, explicit colors and mode, or
// the default deck, in that order. An explicit mode replaces a deck's mode.
func resolveKey(cfg *config.Config, deckName string, colors []string, mode string) (catalog.Key, error) {
	if deckName == "" && len(colors) == 0 && mode == "" {
		deckName = cfg.DefaultDeck
	}

	if deckName != "" {
		d, err := loadDeckByName(deckName)
		if err != nil {
			return catalog.Key{}, err
		}
		if mode == "" {
			return d.Key(), nil
		}
		colors = d.Colors
	}

	if mode == "" {
		mode = cfg.DefaultMode
	}
	key := catalog.NewKey(mode, colors...)
	if err := key.Validate(); err != nil {
		return catalog.Key{}, err
	}
	return key, nil
}

// filterFromFlags builds a card filter from the filter flags
func filterFromFlags(cmd *cobra.Command) card.Filter {
	colors, _ := cmd.Flags().GetStringSlice("color")
	types, _ := cmd.Flags().GetStringSlice("type")
	name, _ := cmd.Flags().GetString("name")
	secondary, _ := cmd.Flags().GetStringSlice("secondary")

	return card.Filter{
		Colors:          colors,
		Types:           types,
		Name:            name,
		SecondaryColors: secondary,
	}
}

// loadDeckByName finds a deck in the library or at a relative path
func loadDeckByName(name string) (*deck.Deck, error) {
	deckPath, err := config.GetDeckPath(name)
	if err != nil {
		return nil, err
	}

	d, err := deck.LoadDeck(deckPath)
	if err != nil {
		return nil, fmt.Errorf("error loading deck: %w", err)
	}
	return d, nil
}
