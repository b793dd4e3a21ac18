package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/arcanaland/deckseer/internal/config"
	"github.com/arcanaland/deckseer/internal/deck"
	"github.com/spf13/cobra"
)

// deckCmd represents the deck command group
var deckCmd = &cobra.Command{
	Use:   "deck",
	Short: "Manage decks in your deck library",
	Long:  `Commands for managing decks in your deck library. A deck is a color and mode selection plus the cards you picked from its catalog.`,
}

// deckListCmd represents the deck list command
var deckListCmd = &cobra.Command{
	Use:   "ls",
	Short: "List available decks in your deck library",
	Run: func(cmd *cobra.Command, args []string) {
		libraryPath := config.GetDeckLibraryPath()

		// Check if deck library exists
		if _, err := os.Stat(libraryPath); os.IsNotExist(err) {
			fmt.Printf("Deck library at %s does not exist.\n", libraryPath)
			fmt.Println("Run 'deckseer deck init' to create it.")
			return
		}

		libraryPath, err := filepath.EvalSymlinks(libraryPath)
		if err != nil {
			fmt.Printf("Error resolving symbolic link: %v\n", err)
			return
		}

		// Get default deck
		defaultDeck, err := config.GetDefaultDeck()
		if err != nil {
			fmt.Printf("Error getting default deck: %v\n", err)
			return
		}

		// Read the deck library directory
		entries, err := os.ReadDir(libraryPath)
		if err != nil {
			fmt.Printf("Error reading deck library: %v\n", err)
			return
		}

		if len(entries) == 0 {
			fmt.Println("No decks found in your deck library.")
			fmt.Println("Create one with 'deckseer deck create'.")
			return
		}

		for _, entry := range entries {
			// Resolve the symbolic link or regular entry
			entryPath := filepath.Join(libraryPath, entry.Name())
			fileInfo, err := os.Stat(entryPath)
			if err != nil {
				fmt.Printf("Error resolving entry %s: %v\n", entry.Name(), err)
				continue
			}

			if !fileInfo.IsDir() {
				continue
			}

			d, err := deck.LoadDeck(entryPath)
			if err != nil {
				// Not a valid deck, skip
				continue
			}

			marker := " "
			suffix := ""
			if entry.Name() == defaultDeck {
				marker, suffix = "*", " [DEFAULT]"
			}
			fmt.Printf("%s %s (%s, %s, %d cards)%s\n", marker, entry.Name(), d.Name, d.Key(), len(d.CardIDs), suffix)
		}
	},
}

// deckSetDefaultCmd represents the deck set-default command
var deckSetDefaultCmd = &cobra.Command{
	Use:   "set-default [deck_name]",
	Short: "Set the default deck",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		deckName := args[0]

		// Try to load the deck to make sure it's valid
		if _, err := loadDeckByName(deckName); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		if err := config.SetDefaultDeck(deckName); err != nil {
			fmt.Printf("Error setting default deck: %v\n", err)
			return
		}

		fmt.Printf("Default deck set to: %s\n", deckName)
	},
}

// deckInitCmd represents the deck init command
var deckInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the deck library",
	Run: func(cmd *cobra.Command, args []string) {
		libraryPath := config.GetDeckLibraryPath()

		// Create the deck library directory if it doesn't exist
		if err := os.MkdirAll(libraryPath, 0755); err != nil {
			fmt.Printf("Error creating deck library: %v\n", err)
			return
		}

		fmt.Println("Deck library initialized at:", libraryPath)

		// Initialize config
		if _, err := config.LoadConfig(); err != nil {
			fmt.Printf("Error initializing config: %v\n", err)
			return
		}

		fmt.Println("Config file initialized at:", config.GetConfigFilePath())
	},
}

// deckCreateCmd represents the deck create command
var deckCreateCmd = &cobra.Command{
	Use:     "create [deck_name]",
	Short:   "Create a deck for a color and mode selection",
	Example: `  deckseer deck create izzet --colors Blue,Red --mode standard`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}

		colors, _ := cmd.Flags().GetStringSlice("colors")
		mode, _ := cmd.Flags().GetString("mode")
		if mode == "" {
			mode = cfg.DefaultMode
		}

		deckPath := filepath.Join(config.GetDeckLibraryPath(), args[0])
		if _, err := os.Stat(deckPath); err == nil {
			return fmt.Errorf("deck already exists: %s", deckPath)
		}

		d := deck.CreateDeck(args[0], colors, mode)
		if err := d.Save(deckPath); err != nil {
			return fmt.Errorf("error creating deck: %w", err)
		}

		fmt.Printf("Created deck %s for catalog %s\n", d.ID, d.Key().Filename())
		return nil
	},
}

// deckAddCmd represents the deck add command
var deckAddCmd = &cobra.Command{
	Use:   "add [deck_name] [multiverseid...]",
	Short: "Add cards from the deck's catalog to a deck",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, ids, err := deckAndIDs(args)
		if err != nil {
			return err
		}

		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}

		// Only cards from the deck's own catalog may be added
		cache := newCache(cfg)
		if _, err := cache.Load(cmd.Context(), d.Key()); err != nil {
			return fmt.Errorf("error loading catalog: %w", err)
		}

		for _, id := range ids {
			c, err := cache.One(cmd.Context(), id)
			if err != nil {
				return err
			}
			if d.AddCard(id) {
				fmt.Printf("Added %s (%d)\n", c.Name, id)
			} else {
				fmt.Printf("%s (%d) is already in the deck\n", c.Name, id)
			}
		}

		return d.Save(d.Path)
	},
}

// deckRemoveCmd represents the deck remove command
var deckRemoveCmd = &cobra.Command{
	Use:   "rm [deck_name] [multiverseid...]",
	Short: "Remove cards from a deck",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, ids, err := deckAndIDs(args)
		if err != nil {
			return err
		}

		for _, id := range ids {
			if !d.RemoveCard(id) {
				fmt.Printf("%d is not in the deck\n", id)
			}
		}

		return d.Save(d.Path)
	},
}

// deckShowCmd represents the deck show command
var deckShowCmd = &cobra.Command{
	Use:   "show [deck_name]",
	Short: "List the cards of a deck",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}

		deckName := cfg.DefaultDeck
		if len(args) == 1 {
			deckName = args[0]
		}
		if deckName == "" {
			return fmt.Errorf("no deck given and no default deck set")
		}

		d, err := loadDeckByName(deckName)
		if err != nil {
			return err
		}

		cards, err := d.Cards(cmd.Context(), newCache(cfg), filterFromFlags(cmd))
		if err != nil {
			return fmt.Errorf("error loading deck cards: %w", err)
		}

		fmt.Printf("%s (%s)\n", d.Name, d.Key())
		if d.Description != "" {
			for _, line := range wrapText(d.Description, terminalWidth()-2) {
				fmt.Println(line)
			}
		}
		for _, c := range cards {
			fmt.Println(cardLine(c))
		}
		fmt.Printf("%d of %d cards\n", len(cards), len(d.CardIDs))
		return nil
	},
}

// deckAndIDs loads the deck named by args[0] and parses the remaining ids
func deckAndIDs(args []string) (*deck.Deck, []int, error) {
	d, err := loadDeckByName(args[0])
	if err != nil {
		return nil, nil, err
	}

	ids := make([]int, 0, len(args)-1)
	for _, arg := range args[1:] {
		id, err := strconv.Atoi(strings.TrimSpace(arg))
		if err != nil {
			return nil, nil, fmt.Errorf("invalid multiverseid: %s", arg)
		}
		ids = append(ids, id)
	}
	return d, ids, nil
}

func init() {
	RootCmd.AddCommand(deckCmd)
	deckCmd.AddCommand(deckListCmd)
	deckCmd.AddCommand(deckSetDefaultCmd)
	deckCmd.AddCommand(deckInitCmd)
	deckCmd.AddCommand(deckCreateCmd)
	deckCmd.AddCommand(deckAddCmd)
	deckCmd.AddCommand(deckRemoveCmd)
	deckCmd.AddCommand(deckShowCmd)

	deckCreateCmd.Flags().StringSliceP("colors", "c", nil, "Deck colors, e.g. Blue,Red")
	deckCreateCmd.Flags().StringP("mode", "m", "", "Deck mode (defaults to default_mode)")
	addFilterFlags(deckShowCmd)
}
