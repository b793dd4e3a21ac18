package cmd

import (
	"fmt"
	"os"
	"strings"

	colorize "github.com/fatih/color"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/term"

	"github.com/arcanaland/deckseer/internal/card"
)

// manaHex holds the swatch used for each color badge
var manaHex = map[string]string{
	"Black":      "#a69f9d",
	"Blue":       "#0e68ab",
	"Green":      "#00733e",
	"Red":        "#d3202a",
	"White":      "#f8e7b9",
	card.NoColor: "#cbc2bf",
}

// colorBadge renders a color name on its swatch. Unknown colors and
// non-terminal output get the plain name.
func colorBadge(name string) string {
	hex, ok := manaHex[name]
	if !ok || colorize.NoColor {
		return name
	}

	bg, err := colorful.Hex(hex)
	if err != nil {
		return name
	}

	// Dark text on light swatches
	fg := colorful.Color{R: 1, G: 1, B: 1}
	if _, _, l := bg.Hcl(); l > 0.7 {
		fg = colorful.Color{R: 0, G: 0, B: 0}
	}

	return ansiColorString(" "+name+" ", fg, bg)
}

// colorBadges renders a card's colors, or the colorless badge
func colorBadges(colors []string) string {
	if len(colors) == 0 {
		return colorBadge(card.NoColor)
	}
	badges := make([]string, 0, len(colors))
	for _, c := range colors {
		badges = append(badges, colorBadge(c))
	}
	return strings.Join(badges, " ")
}

// colorKeyBadges renders a recommendation color key such as Blue_Red
func colorKeyBadges(key string) string {
	return colorBadges(card.SplitColorKey(key))
}

// ansiColorString formats text with 24-bit ANSI foreground and background colors
func ansiColorString(text string, fg, bg colorful.Color) string {
	r1, g1, b1 := fg.RGB255()
	r2, g2, b2 := bg.RGB255()
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm%s\x1b[0m",
		r1, g1, b1, r2, g2, b2, text)
}

// formatScore prints a similarity score, or a dash when absent
func formatScore(score *float64) string {
	if score == nil {
		return "-"
	}
	return fmt.Sprintf("%.3f", *score)
}

// terminalWidth returns the width of stdout, or 80 when unknown
func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// wrapText wraps text to a specified width
func wrapText(text string, width int) []string {
	// Ensure width is reasonable
	if width < 10 {
		width = 40
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}

	var result []string
	var currentLine string
	for _, word := range words {
		switch {
		case currentLine == "":
			currentLine = word
		case len(currentLine)+1+len(word) <= width:
			currentLine += " " + word
		default:
			result = append(result, currentLine)
			currentLine = word
		}
	}

	return append(result, currentLine)
}

// cardLine renders a one-line summary of a card
func cardLine(c card.Card) string {
	line := fmt.Sprintf("%8d  %s", c.ID, colorize.HiWhiteString("%s", c.Name))
	if c.ManaCost != "" {
		line += " " + colorize.YellowString("%s", c.ManaCost)
	}
	line += "  " + colorBadges(c.Colors)
	if len(c.Types) > 0 {
		line += "  " + colorize.CyanString("%s", strings.Join(c.Types, " "))
	}
	return line
}
