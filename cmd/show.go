package cmd

import (
	"fmt"
	"strconv"
	"strings"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/deckseer/internal/card"
	"github.com/arcanaland/deckseer/internal/catalog"
	"github.com/arcanaland/deckseer/internal/config"
	"github.com/arcanaland/deckseer/internal/recommend"
)

var showCmd = &cobra.Command{
	Use:   "show [multiverseid]",
	Short: "Display a card and its recommendations",
	Long: `Show displays a card from the selected catalog together with the cards
recommended for it in the catalog's mode, grouped by color.

The catalog is chosen with --colors and --mode, or with --deck. If neither is
given, the default deck from your config is used.

Examples:
  deckseer show 409574 --colors Red --mode standard
  deckseer show 409574 --deck izzet --rec-mode modern`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid multiverseid: %s", args[0])
		}

		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}

		key, err := selectionKey(cmd, cfg)
		if err != nil {
			return err
		}

		cache := newCache(cfg)
		cat, err := cache.Load(cmd.Context(), key)
		if err != nil {
			return fmt.Errorf("error loading catalog: %w", err)
		}

		c, err := cache.One(cmd.Context(), id)
		if err != nil {
			return err
		}

		mode, _ := cmd.Flags().GetString("rec-mode")
		if mode == "" {
			mode = key.Mode
		}

		displayCard(c, cat, mode)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(showCmd)

	addSelectionFlags(showCmd)
	showCmd.Flags().String("rec-mode", "", "Recommendation mode (defaults to the catalog mode)")
}

// displayCard prints card details followed by its recommendations
func displayCard(c card.Card, cat *catalog.Catalog, mode string) {
	width := terminalWidth() - 8

	fmt.Println()
	fmt.Println("  " + colorize.CyanString("Card:   ") + colorize.HiWhiteString("%s", c.Name))
	fmt.Println("  " + colorize.CyanString("ID:     ") + colorize.HiWhiteString("%d", c.ID))
	if c.ManaCost != "" {
		fmt.Println("  " + colorize.CyanString("Cost:   ") + colorize.YellowString("%s", c.ManaCost))
	}
	fmt.Println("  " + colorize.CyanString("Colors: ") + colorBadges(c.Colors))
	if len(c.SecondaryColors) > 0 {
		fmt.Println("  " + colorize.CyanString("Second: ") + colorBadges(c.SecondaryColors))
	}
	for i, line := range wrapText(strings.Join(c.Types, " · "), width) {
		label := "        "
		if i == 0 {
			label = "Types:  "
		}
		fmt.Println("  " + colorize.CyanString(label) + line)
	}

	groups := recommend.ForMode(c, mode)
	fmt.Println()
	if len(groups) == 0 {
		fmt.Printf("  No %s recommendations", mode)
		if modes := recommend.Modes(c); len(modes) > 0 {
			fmt.Printf(" (available: %s)", strings.Join(modes, ", "))
		}
		fmt.Println()
	} else {
		fmt.Println("  " + colorize.CyanString("Recommendations (%s):", mode))
		for _, g := range groups {
			fmt.Println("    " + colorKeyBadges(g.Color))
			printRecommendations(g.Recommendations, cat)
		}
	}

	if content := recommend.Content(c); len(content) > 0 {
		fmt.Println()
		fmt.Println("  " + colorize.CyanString("Similar text:"))
		printRecommendations(content, cat)
	}

	fmt.Println()
}

// printRecommendations prints recommendations, resolving names from cat
func printRecommendations(recs []card.Recommendation, cat *catalog.Catalog) {
	resolved := recommend.Resolve(recs, cat.One)
	for _, r := range resolved {
		fmt.Printf("      %8d  %-32s item %s  content %s\n",
			r.ID, r.Card.Name, formatScore(r.ItemSimilarity), formatScore(r.ContentSimilarity))
	}

	// Recommendations can point outside the loaded catalog
	if missing := len(recs) - len(resolved); missing > 0 {
		fmt.Printf("      (%d not in this catalog)\n", missing)
	}
}
