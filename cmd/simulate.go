package cmd

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/arcanaland/eights/internal/sim"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Play games between two copies of the scripted opponent",
	Long: `Simulate deals games seeded --seed, --seed+1, ... and lets the scripted policy
play both sides. Every step is checked for card conservation; the first broken
game stops the run and prints its last actions.

Games in which the deck runs out and neither side can play never end; they are
cut off after --max-steps and counted as stalled.

Examples:
  eights simulate
  eights simulate --games 5000 --seed 42`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		games, _ := cmd.Flags().GetInt("games")
		seed, _ := cmd.Flags().GetUint64("seed")
		maxSteps, _ := cmd.Flags().GetInt("max-steps")
		if games <= 0 {
			return fmt.Errorf("--games must be positive, got %d", games)
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logger, err := newLogger(cfg)
		if err != nil {
			return err
		}
		defer logger.Sync()

		runner := sim.NewRunner(logger.With(zap.String("mode", "simulate")))
		if maxSteps > 0 {
			runner.MaxSteps = maxSteps
		}

		spinner, _ := pterm.DefaultSpinner.Start(fmt.Sprintf("Playing %d games...", games))
		summary, err := runner.Run(seed, games)
		if err != nil {
			if spinner != nil {
				spinner.Fail("Simulation stopped")
			}
			return fmt.Errorf("simulation failed after %d games: %w", summary.Games, err)
		}
		if spinner != nil {
			spinner.Success(fmt.Sprintf("Played %d games", summary.Games))
		}

		data := pterm.TableData{
			{"Games", "Player wins", "Opponent wins", "Stalled", "Avg turns", "Longest (seed)"},
			{
				fmt.Sprint(summary.Games),
				fmt.Sprint(summary.PlayerWins),
				fmt.Sprint(summary.OpponentWins),
				fmt.Sprint(summary.Stalled),
				fmt.Sprintf("%.1f", summary.AverageTurns()),
				fmt.Sprintf("%d (%d)", summary.LongestGame, summary.LongestSeed),
			},
		}
		return pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data).Render()
	},
}

func init() {
	simulateCmd.Flags().IntP("games", "n", 100, "Number of games to play")
	simulateCmd.Flags().Uint64P("seed", "s", 1, "Seed of the first game")
	simulateCmd.Flags().Int("max-steps", sim.DefaultMaxSteps, "Steps after which a game counts as stalled")
}
