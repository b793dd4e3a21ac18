package deck

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/BurntSushi/toml"

	"github.com/arcanaland/deckseer/internal/card"
	"github.com/arcanaland/deckseer/internal/catalog"
)

// Deck represents a color and mode selection with the cards picked for it
type Deck struct {
	ID          string
	Name        string
	Author      string
	Description string
	Mode        string
	Colors      []string
	CardIDs     []int
	Path        string
}

// LoadDeck loads a deck from a directory containing deck.toml
func LoadDeck(deckPath string) (*Deck, error) {
	// Check if deck.toml exists
	deckTomlPath := filepath.Join(deckPath, "deck.toml")
	if _, err := os.Stat(deckTomlPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("deck.toml not found in %s", deckPath)
	}

	// Decode deck.toml
	var config DeckConfig
	if _, err := toml.DecodeFile(deckTomlPath, &config); err != nil {
		return nil, fmt.Errorf("error parsing deck.toml: %w", err)
	}

	d := &Deck{
		ID:          config.Deck.ID,
		Name:        config.Deck.Name,
		Author:      config.Deck.Author,
		Description: config.Deck.Description,
		Mode:        config.Deck.Mode,
		Colors:      config.Deck.Colors,
		CardIDs:     config.Deck.Cards,
		Path:        deckPath,
	}

	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("invalid deck %s: %w", deckPath, err)
	}

	return d, nil
}

// CreateDeck builds a new deck for a color selection and mode
func CreateDeck(id string, colors []string, mode string) *Deck {
	key := catalog.NewKey(mode, colors...)
	return &Deck{
		ID:     id,
		Name:   id,
		Mode:   key.Mode,
		Colors: key.Colors,
	}
}

// Validate checks the fields needed to load the deck's catalog
func (d *Deck) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("deck.id is required")
	}
	if err := d.Key().Validate(); err != nil {
		return err
	}
	for _, id := range d.CardIDs {
		if id <= 0 {
			return fmt.Errorf("invalid card id: %d", id)
		}
	}
	return nil
}

// Key returns the catalog selection for this deck
func (d *Deck) Key() catalog.Key {
	return catalog.NewKey(d.Mode, d.Colors...)
}

// AddCard adds a card id unless it is already in the deck
func (d *Deck) AddCard(id int) bool {
	if slices.Contains(d.CardIDs, id) {
		return false
	}
	d.CardIDs = append(d.CardIDs, id)
	return true
}

// RemoveCard removes a card id, reporting whether it was present
func (d *Deck) RemoveCard(id int) bool {
	i := slices.Index(d.CardIDs, id)
	if i < 0 {
		return false
	}
	d.CardIDs = slices.Delete(d.CardIDs, i, i+1)
	return true
}

// Cards loads the deck's catalog and returns the deck's cards matching f
func (d *Deck) Cards(ctx context.Context, cache *catalog.Cache, f card.Filter) ([]card.Card, error) {
	if _, err := cache.Load(ctx, d.Key()); err != nil {
		return nil, err
	}
	return cache.ByIDs(ctx, d.CardIDs, f)
}

// Save writes the deck to deckPath/deck.toml, creating the directory
func (d *Deck) Save(deckPath string) error {
	if err := d.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(deckPath, 0755); err != nil {
		return fmt.Errorf("error creating deck directory: %w", err)
	}

	file, err := os.Create(filepath.Join(deckPath, "deck.toml"))
	if err != nil {
		return fmt.Errorf("error creating deck.toml: %w", err)
	}
	defer file.Close()

	config := DeckConfig{Deck: DeckSection{
		ID:          d.ID,
		Name:        d.Name,
		Author:      d.Author,
		Description: d.Description,
		Mode:        d.Mode,
		Colors:      d.Colors,
		Cards:       d.CardIDs,
	}}
	if err := toml.NewEncoder(file).Encode(config); err != nil {
		return fmt.Errorf("error encoding deck.toml: %w", err)
	}

	d.Path = deckPath
	return nil
}

// Deck configuration structures
type DeckConfig struct {
	Deck DeckSection `toml:"deck"`
}

type DeckSection struct {
	ID          string   `toml:"id"`
	Name        string   `toml:"name"`
	Author      string   `toml:"author,omitempty"`
	Description string   `toml:"description,omitempty"`
	Mode        string   `toml:"mode"`
	Colors      []string `toml:"colors"`
	Cards       []int    `toml:"cards"`
}
