package cmd

import (
	"fmt"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"
)

const rulesText = `Each side is dealt 8 cards. The last card of the deck is turned up to start
the discard pile and the rest form the draw pile.

On your turn, play one card that matches the top of the discard pile by suit
or by rank. Eights are wild: an 8 can be played on anything, and whoever plays
it names the suit the next card must follow. While a suit is named, only that
suit or another 8 may be played.

If you cannot or do not want to play, draw one card; your turn ends. When the
draw pile is empty, drawing passes the turn.

The first side to empty its hand wins.`

const promptHelp = `Commands:
  start, restart      deal a new game
  <card>              play a card by hand number (3), id (q-hearts) or short form (qh, 10s)
  play <card>         same as above
  draw                draw a card, or pass when the deck is empty
  suit <suit>         name the suit after your 8 (hearts, diamonds, clubs, spades, or h/d/c/s)
  help                show this help
  quit                leave the game`

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Print the rules of Crazy Eights",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, colorize.New(colorize.Bold).Sprint("Crazy Eights"))
		fmt.Fprintln(out)
		fmt.Fprintln(out, rulesText)
		fmt.Fprintln(out)
		fmt.Fprintln(out, promptHelp)
	},
}
