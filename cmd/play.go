package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	colorize "github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/arcanaland/eights/internal/card"
	"github.com/arcanaland/eights/internal/deck"
	"github.com/arcanaland/eights/internal/engine"
	"github.com/arcanaland/eights/internal/render"
	"github.com/arcanaland/eights/internal/table"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start an interactive game against the computer",
	Long: `Play opens a table in the terminal. Type 'start' to deal, then play cards by
their number in your hand, their id or a short form, and 'draw' when you
cannot or will not play. Type 'help' at the prompt for every command.

Examples:
  eights play
  eights play --seed 7 --delay 0s
  eights play --no-color`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("delay") {
			delay, _ := cmd.Flags().GetDuration("delay")
			if delay < 0 {
				return fmt.Errorf("--delay must not be negative")
			}
			cfg.OpponentDelay.Duration = delay
		}
		if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
			cfg.Color = false
		}
		if !isTerminal(os.Stdout) {
			cfg.Color = false
		}
		colorize.NoColor = !cfg.Color

		logger, err := newLogger(cfg)
		if err != nil {
			return err
		}
		defer logger.Sync()

		r, err := render.New(cfg, render.TerminalWidth())
		if err != nil {
			return err
		}

		src := deck.RandomSource()
		if seed, _ := cmd.Flags().GetUint64("seed"); cmd.Flags().Changed("seed") {
			src = deck.NewSource(seed)
		}

		tb := table.New(table.Options{
			Source: src,
			Delay:  cfg.OpponentDelay.Duration,
			Logger: logger.With(zap.String("mode", "play")),
		})
		defer tb.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		p := &prompt{
			table:  tb,
			render: r,
			out:    cmd.OutOrStdout(),
			echo:   isTerminal(os.Stdin),
		}
		return p.run(ctx, cmd.InOrStdin())
	},
}

func init() {
	playCmd.Flags().Uint64("seed", 0, "Shuffle seed, for replaying a deal")
	playCmd.Flags().Duration("delay", 0, "Opponent thinking time (overrides opponent_delay)")
	playCmd.Flags().Bool("no-color", false, "Disable colours")
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// prompt reads commands line by line and redraws the board whenever the
// table changes.
type prompt struct {
	table  *table.Table
	render *render.Renderer
	out    io.Writer
	echo   bool
}

func (p *prompt) run(ctx context.Context, in io.Reader) error {
	changed := make(chan struct{}, 1)
	p.table.Subscribe(func(engine.View) {
		select {
		case changed <- struct{}{}:
		default:
		}
	})

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
		close(lines)
	}()

	p.draw()
	for {
		select {
		case <-ctx.Done():
			fmt.Fprintln(p.out)
			return nil
		case <-changed:
			p.draw()
		case line, ok := <-lines:
			if !ok {
				if err := <-readErr; err != nil {
					return fmt.Errorf("error reading input: %w", err)
				}
				return nil
			}
			quit, reply, applied := p.dispatch(line)
			if reply != "" {
				fmt.Fprintln(p.out, reply)
			}
			if quit {
				return nil
			}
			// An applied action redraws the board through the listener.
			if !applied {
				p.showPrompt()
			}
		}
	}
}

func (p *prompt) draw() {
	fmt.Fprint(p.out, p.render.Board(p.table.View()))
	p.showPrompt()
}

func (p *prompt) showPrompt() {
	if p.echo {
		fmt.Fprint(p.out, "> ")
	}
}

// dispatch runs one command line and reports whether the table accepted an
// action. Actions the table rejects are dropped silently; only input that
// cannot be understood gets a reply.
func (p *prompt) dispatch(line string) (quit bool, reply string, applied bool) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return false, "", false
	}
	verb, rest := fields[0], strings.Join(fields[1:], " ")

	// A bare suit answers a pending suit choice before any other command.
	if len(fields) == 1 && p.table.View().Status == engine.StatusChoosingSuit {
		if s, err := card.ParseSuit(verb); err == nil {
			return false, "", p.table.ChooseSuit(s)
		}
	}

	switch verb {
	case "quit", "exit", "q":
		return true, "Bye!", false
	case "help", "h", "?":
		return false, promptHelp, false
	case "start", "restart", "new":
		p.table.Start()
		return false, "", true
	case "draw":
		return false, "", p.table.Draw()
	case "suit":
		if rest == "" {
			return false, "Which suit? hearts, diamonds, clubs or spades.", false
		}
		s, err := card.ParseSuit(rest)
		if err != nil {
			return false, err.Error(), false
		}
		return false, "", p.table.ChooseSuit(s)
	case "play":
		if rest == "" {
			return false, "Which card?", false
		}
		return p.play(rest)
	}

	return p.play(strings.TrimSpace(line))
}

func (p *prompt) play(input string) (bool, string, bool) {
	id, err := resolveCard(input, p.table.View().Hand)
	if err != nil {
		return false, fmt.Sprintf("%v. Type 'help' for commands.", err), false
	}
	return false, "", p.table.Play(id)
}

// resolveCard turns a 1-based hand position, a card id or a short form into
// the id of a card in hand.
func resolveCard(input string, hand []card.Card) (string, error) {
	if n, err := strconv.Atoi(input); err == nil {
		if n < 1 || n > len(hand) {
			return "", fmt.Errorf("no card number %d in your hand", n)
		}
		return hand[n-1].ID, nil
	}
	c, err := card.Parse(input)
	if err != nil {
		return "", err
	}
	for _, h := range hand {
		if h.ID == c.ID {
			return c.ID, nil
		}
	}
	return "", fmt.Errorf("%s is not in your hand", c.Name())
}
