// Package render draws the player's view of the table as terminal text.
package render

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	colorize "github.com/fatih/color"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/term"

	"github.com/arcanaland/eights/internal/card"
	"github.com/arcanaland/eights/internal/config"
	"github.com/arcanaland/eights/internal/engine"
)

type Renderer struct {
	Width      int
	Color      bool
	PlayerName string

	red    colorful.Color
	black  colorful.Color
	accent colorful.Color
	legal  colorful.Color
}

// New builds a renderer from the configured theme.
func New(cfg *config.Config, width int) (*Renderer, error) {
	r := &Renderer{
		Width:      width,
		Color:      cfg.Color,
		PlayerName: cfg.PlayerName,
	}
	for _, c := range []struct {
		hex string
		dst *colorful.Color
	}{
		{cfg.Theme.Red, &r.red},
		{cfg.Theme.Black, &r.black},
		{cfg.Theme.Accent, &r.accent},
		{cfg.Theme.Legal, &r.legal},
	} {
		col, err := colorful.Hex(c.hex)
		if err != nil {
			return nil, fmt.Errorf("invalid theme colour %q: %w", c.hex, err)
		}
		*c.dst = col
	}
	if r.PlayerName == "" {
		r.PlayerName = "You"
	}
	return r, nil
}

// TerminalWidth returns the width of stdout, or 80 when it is not a terminal.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// Board renders the whole table.
func (r *Renderer) Board(v engine.View) string {
	var b strings.Builder

	if v.Status == engine.StatusWaiting {
		b.WriteString("\n  " + r.bold("Crazy Eights") + "\n\n")
		b.WriteString("  " + v.Message + "\n")
		b.WriteString("  Type " + r.key("start") + " to deal.\n\n")
		return b.String()
	}

	b.WriteString("\n")
	b.WriteString("  " + colorize.CyanString("Opponent: ") + colorize.HiWhiteString("%s", r.backs(v.OpponentCount)) +
		fmt.Sprintf(" (%d)", v.OpponentCount))
	b.WriteString("    " + colorize.CyanString("Deck: ") + colorize.HiWhiteString("%d left", v.DeckCount) + "\n\n")

	b.WriteString("  " + colorize.CyanString("Discard: "))
	if v.Top != nil {
		b.WriteString(r.Card(*v.Top, false))
	}
	if v.ForcedSuit != card.NoSuit {
		b.WriteString("   " + colorize.CyanString("Suit: ") + r.suit(v.ForcedSuit))
	}
	b.WriteString("\n\n")

	b.WriteString("  " + colorize.CyanString("%s (%d):", r.PlayerName, len(v.Hand)) + "\n")
	for _, line := range r.hand(v) {
		b.WriteString("  " + line + "\n")
	}
	b.WriteString("\n")

	for _, line := range wrapText(v.Message, r.Width-4) {
		b.WriteString("  " + r.status(v, line) + "\n")
	}
	b.WriteString("  " + r.hint(v) + "\n")
	return b.String()
}

// Card renders one card, highlighted when legal.
func (r *Renderer) Card(c card.Card, legal bool) string {
	text := c.String()
	if !r.Color {
		if legal {
			return "[" + text + "]"
		}
		return " " + text + " "
	}

	col := r.black
	if c.Suit.IsRed() {
		col = r.red
	}
	if legal {
		return "[" + ansiColorString(text, col.BlendLab(r.legal, 0.35), true) + "]"
	}
	return " " + ansiColorString(text, col, false) + " "
}

func (r *Renderer) hand(v engine.View) []string {
	cells := make([]string, len(v.Hand))
	for i, c := range v.Hand {
		cells[i] = fmt.Sprintf("%2d)%s", i+1, r.Card(c, v.IsLegal(c.ID)))
	}

	var lines []string
	var current string
	for _, cell := range cells {
		switch {
		case current == "":
			current = cell
		case visibleWidth(current)+1+visibleWidth(cell) <= r.Width-2:
			current += " " + cell
		default:
			lines = append(lines, current)
			current = cell
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}

func (r *Renderer) hint(v engine.View) string {
	switch {
	case v.Status == engine.StatusGameOver:
		return "Type " + r.key("restart") + " for a new game or " + r.key("quit") + " to leave."
	case v.Status == engine.StatusChoosingSuit:
		return "Choose a suit: " + r.key("suit hearts") + ", " + r.key("suit diamonds") + ", " +
			r.key("suit clubs") + " or " + r.key("suit spades") + "."
	case v.Turn == engine.Opponent:
		return "Waiting for the opponent..."
	case len(v.LegalIDs) == 0:
		return "Nothing to play. Type " + r.key("draw") + "."
	default:
		return "Play a card by number or name (e.g. " + r.key("1") + ", " + r.key(v.LegalIDs[0]) + "), or " + r.key("draw") + "."
	}
}

func (r *Renderer) status(v engine.View, line string) string {
	if v.Status != engine.StatusGameOver {
		return colorize.HiWhiteString("» %s", line)
	}
	if v.Winner == engine.Player {
		return colorize.New(colorize.FgHiGreen, colorize.Bold).Sprint("★ " + line)
	}
	return colorize.New(colorize.FgHiRed, colorize.Bold).Sprint("✗ " + line)
}

func (r *Renderer) suit(s card.Suit) string {
	text := s.Symbol() + " " + strings.ToUpper(string(s))
	if !r.Color {
		return text
	}
	col := r.black
	if s.IsRed() {
		col = r.red
	}
	return ansiColorString(text, col, true)
}

func (r *Renderer) backs(n int) string {
	return strings.Repeat("▮", n)
}

func (r *Renderer) key(s string) string {
	if !r.Color {
		return "'" + s + "'"
	}
	return ansiColorString(s, r.accent, true)
}

func (r *Renderer) bold(s string) string {
	return colorize.New(colorize.Bold).Sprint(s)
}

// ansiColorString wraps text in a 24-bit foreground colour
func ansiColorString(text string, c colorful.Color, bold bool) string {
	red, green, blue := c.Clamped().RGB255()
	weight := ""
	if bold {
		weight = "\x1b[1m"
	}
	return fmt.Sprintf("%s\x1b[38;2;%d;%d;%dm%s\x1b[0m", weight, red, green, blue, text)
}

// wrapText wraps text to a specified width
func wrapText(text string, width int) []string {
	// Ensure width is reasonable
	if width < 10 {
		width = 40
	}

	var result []string
	var currentLine string
	words := strings.Fields(text)

	if len(words) == 0 {
		return []string{""}
	}

	for _, word := range words {
		if len(currentLine) == 0 {
			currentLine = word
		} else if len(currentLine)+1+len(word) <= width {
			currentLine += " " + word
		} else {
			result = append(result, currentLine)
			currentLine = word
		}
	}

	if currentLine != "" {
		result = append(result, currentLine)
	}

	return result
}

// visibleWidth counts the runes left once escape sequences are removed
func visibleWidth(s string) int {
	return utf8.RuneCountInString(stripAnsi(s))
}

// stripAnsi removes ANSI escape sequences from a string
func stripAnsi(s string) string {
	var result strings.Builder
	inEscape := false
	for _, c := range s {
		if inEscape {
			if c == 'm' {
				inEscape = false
			}
		} else if c == '\033' {
			inEscape = true
		} else {
			result.WriteRune(c)
		}
	}
	return result.String()
}
