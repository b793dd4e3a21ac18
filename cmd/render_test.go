package cmd

import (
	"strings"
	"testing"

	colorize "github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/arcanaland/deckseer/internal/card"
)

func TestWrapText(t *testing.T) {
	assert.Equal(t, []string{""}, wrapText("", 20))
	assert.Equal(t, []string{"Creature Elf", "Druid"}, wrapText("Creature Elf Druid", 12))
	assert.Equal(t, []string{"averyveryverylongword"}, wrapText("averyveryverylongword", 10))
}

func TestColorBadge(t *testing.T) {
	old := colorize.NoColor
	defer func() { colorize.NoColor = old }()

	colorize.NoColor = true
	assert.Equal(t, "Red", colorBadge("Red"))
	assert.Equal(t, card.NoColor, colorBadges(nil))

	colorize.NoColor = false
	badge := colorBadge("Red")
	assert.True(t, strings.HasPrefix(badge, "\x1b[38;2;"), badge)
	assert.Contains(t, badge, "48;2;211;32;42m")
	assert.Contains(t, badge, " Red ")
	assert.Equal(t, "Purple", colorBadge("Purple"))
}

func TestFormatScore(t *testing.T) {
	v := 0.12345
	assert.Equal(t, "0.123", formatScore(&v))
	assert.Equal(t, "-", formatScore(nil))
}

func TestColorKeyBadges(t *testing.T) {
	old := colorize.NoColor
	defer func() { colorize.NoColor = old }()
	colorize.NoColor = true

	assert.Equal(t, "Blue Red", colorKeyBadges("Blue_Red"))
	assert.Equal(t, card.NoColor, colorKeyBadges(card.NoColor))
}
