package cmd

import (
	"fmt"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/deckseer/internal/catalog"
	"github.com/arcanaland/deckseer/internal/config"
)

var cardsCmd = &cobra.Command{
	Use:   "cards",
	Short: "List and filter the cards of a catalog",
	Long: `Cards loads the catalog for a color and mode selection and lists its cards,
sorted by name. Repeat --mode to list several catalogs for the same colors.

Examples:
  deckseer cards --colors Blue,Red --mode standard
  deckseer cards --colors Red --color No_Color --type Artifact
  deckseer cards --deck izzet --name bolt
  deckseer cards --colors Green --mode standard --mode modern`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}

		keys, err := cardsKeys(cmd, cfg)
		if err != nil {
			return err
		}

		cache := newCache(cfg)
		catalogs, err := cache.Preload(cmd.Context(), keys...)
		if err != nil {
			return fmt.Errorf("error loading catalog: %w", err)
		}

		filter := filterFromFlags(cmd)
		limit, _ := cmd.Flags().GetInt("limit")

		for i, cat := range catalogs {
			if len(catalogs) > 1 {
				if i > 0 {
					fmt.Println()
				}
				fmt.Println(colorize.CyanString("Mode: ") + colorize.HiWhiteString(cat.Key().Mode))
			}

			cards := cat.Filter(filter)
			shown := cards
			if limit > 0 && len(shown) > limit {
				shown = shown[:limit]
			}
			for _, c := range shown {
				fmt.Println(cardLine(c))
			}
			fmt.Printf("%d of %d cards (%s)\n", len(cards), cat.Len(), cat.Key().Filename())
		}

		return nil
	},
}

// cardsKeys expands repeated --mode flags into one key per mode. The colors
// come from --deck, --colors or the default deck, in that order.
func cardsKeys(cmd *cobra.Command, cfg *config.Config) ([]catalog.Key, error) {
	deckName, _ := cmd.Flags().GetString("deck")
	colors, _ := cmd.Flags().GetStringSlice("colors")
	modes, _ := cmd.Flags().GetStringArray("mode")

	if len(modes) == 0 {
		key, err := resolveKey(cfg, deckName, colors, "")
		if err != nil {
			return nil, err
		}
		return []catalog.Key{key}, nil
	}

	if deckName == "" && len(colors) == 0 {
		deckName = cfg.DefaultDeck
	}
	if deckName != "" {
		d, err := loadDeckByName(deckName)
		if err != nil {
			return nil, err
		}
		colors = d.Colors
	}

	keys := make([]catalog.Key, 0, len(modes))
	for _, mode := range modes {
		key := catalog.NewKey(mode, colors...)
		if err := key.Validate(); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, nil
}

// addCardsFlags registers the cards command's selection and filter flags
func addCardsFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceP("colors", "c", nil, "Catalog colors, e.g. Blue,Red")
	cmd.Flags().StringArrayP("mode", "m", nil, "Catalog mode; repeat to list several modes")
	cmd.Flags().StringP("deck", "d", "", "Use the colors and mode of a deck from your deck library")
	cmd.Flags().Int("limit", 0, "Show at most this many cards per catalog")
	addFilterFlags(cmd)
}

func init() {
	RootCmd.AddCommand(cardsCmd)
	addCardsFlags(cardsCmd)
}
