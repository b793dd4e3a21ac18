package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/arcanaland/deckseer/internal/card"
	"github.com/arcanaland/deckseer/internal/config"
	"github.com/arcanaland/deckseer/internal/recommend"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend [multiverseid]",
	Short: "List the recommendations of a card for a mode and color",
	Long: `Recommend lists the cards recommended for a card. With --rec-color only the
recommendations for that color key are printed; otherwise every color key of
the mode is printed, colorless last. --content lists text-similarity
recommendations instead.

Examples:
  deckseer recommend 409574 --colors Red --rec-color Red
  deckseer recommend 409574 --deck izzet --rec-mode modern
  deckseer recommend 409574 --colors Red --content`,
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

		if content, _ := cmd.Flags().GetBool("content"); content {
			printRecommendations(recommend.Content(c), cat)
			return nil
		}

		mode, _ := cmd.Flags().GetString("rec-mode")
		if mode == "" {
			mode = key.Mode
		}

		color, _ := cmd.Flags().GetString("rec-color")
		if color != "" {
			printRecommendations(recommend.ForModeAndColor(c, mode, card.JoinColorKey(card.SplitColorKey(color))), cat)
			return nil
		}

		for _, g := range recommend.ForMode(c, mode) {
			fmt.Println("    " + colorKeyBadges(g.Color))
			printRecommendations(g.Recommendations, cat)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(recommendCmd)

	addSelectionFlags(recommendCmd)
	recommendCmd.Flags().String("rec-mode", "", "Recommendation mode (defaults to the catalog mode)")
	recommendCmd.Flags().String("rec-color", "", "Recommendation color key, e.g. Red or Blue_Red")
	recommendCmd.Flags().Bool("content", false, "List text-similarity recommendations")
}
