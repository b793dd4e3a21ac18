package card

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	bolt  = Card{ID: 1, Name: "Lightning Bolt", Colors: []string{"Red"}, Types: []string{"Instant"}}
	wisp  = Card{ID: 2, Name: "Wisp", Colors: []string{}, Types: []string{"Creature"}}
	charm = Card{ID: 3, Name: "Izzet Charm", Colors: []string{"Blue", "Red"}, SecondaryColors: []string{"Blue"}, Types: []string{"Instant"}}
	elf   = Card{ID: 4, Name: "Llanowar Elves", Colors: []string{"Green"}, Types: []string{"Creature", "Elf"}}
)

func ids(cards []Card) []int {
	out := make([]int, 0, len(cards))
	for _, c := range cards {
		out = append(out, c.ID)
	}
	return out
}

func TestFilterMatches(t *testing.T) {
	all := []Card{bolt, wisp, charm, elf}

	tests := []struct {
		name   string
		filter Filter
		want   []int
	}{
		{"empty filter", Filter{}, []int{1, 2, 3, 4}},
		{"red", Filter{Colors: []string{"Red"}}, []int{1, 3}},
		{"colorless", Filter{Colors: []string{NoColor}}, []int{2}},
		{"green or colorless", Filter{Colors: []string{"Green", NoColor}}, []int{2, 4}},
		{"instant", Filter{Types: []string{"Instant"}}, []int{1, 3}},
		{"elf or instant", Filter{Types: []string{"Elf", "Instant"}}, []int{1, 3, 4}},
		{"name case insensitive", Filter{Name: "bOlT"}, []int{1}},
		{"name substring", Filter{Name: "ar"}, []int{3, 4}},
		{"secondary", Filter{SecondaryColors: []string{"Blue"}}, []int{3}},
		{"all dimensions", Filter{Colors: []string{"Red"}, Types: []string{"Instant"}, Name: "charm", SecondaryColors: []string{"Blue"}}, []int{3}},
		{"no match", Filter{Colors: []string{"White"}}, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(tt.filter.Apply(all)))
		})
	}
}

func TestFilterColorlessSentinel(t *testing.T) {
	filters := [][]string{
		nil,
		{NoColor},
		{"Red"},
		{"Red", NoColor},
		{"Black", "Blue", "Green", "Red", "White"},
	}

	for _, colors := range filters {
		f := Filter{Colors: colors}
		want := len(colors) == 0 || slices.Contains(colors, NoColor)
		assert.Equal(t, want, f.Matches(wisp), "filter %v", colors)
	}
}

func TestFilterApplyIdempotent(t *testing.T) {
	all := []Card{bolt, wisp, charm, elf}
	f := Filter{Colors: []string{"Red", NoColor}}

	once := f.Apply(all)
	twice := f.Apply(once)

	assert.Equal(t, once, twice)
	assert.Equal(t, []int{1, 2, 3, 4}, ids(all), "input must not be modified")
}

func TestFilterIsEmpty(t *testing.T) {
	assert.True(t, Filter{}.IsEmpty())
	assert.True(t, Filter{Colors: []string{}}.IsEmpty())
	assert.False(t, Filter{Name: "x"}.IsEmpty())
}

func TestFilterNameFoldedOncePerPass(t *testing.T) {
	aether := Card{ID: 5, Name: "Æther Vial", Colors: []string{}, Types: []string{"Artifact"}}
	strasse := Card{ID: 6, Name: "Straße Sentry", Colors: []string{"White"}, Types: []string{"Creature"}}
	all := []Card{bolt, aether, strasse, charm}

	f := Filter{Name: "æTHER"}
	assert.Equal(t, []int{5}, ids(f.Apply(all)))

	// A reused filter gives the same answer on every pass
	assert.Equal(t, ids(f.Apply(all)), ids(f.Apply(all)))

	// Apply and Matches agree card by card
	for _, query := range []string{"STRASSE", "straße", "izzet", "VIAL"} {
		f := Filter{Name: query}
		want := []int{}
		for _, c := range all {
			if f.Matches(c) {
				want = append(want, c.ID)
			}
		}
		assert.Equal(t, want, ids(f.Apply(all)), query)
	}
}
