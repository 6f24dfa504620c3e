package cmd

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/they4kman/hexfield/game"
)

var (
	directorName string
	solveSeed    int64
	solveWatch   bool
	solveDelay   time.Duration
	solveSteps   int
)

var solveCmd = &cobra.Command{
	Use:   "solve <stage>",
	Short: "Let the computer play a stage",
	Long: `Let a director play a stage to the end and report how it went.

The constraint director deduces moves from numbers and edge hints and only
guesses when stuck; the random director opens cells in a shuffled order.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := resolveStage(args[0])

		gameConfig := game.NewGameConfig()
		gameConfig.StagePath = path
		gameConfig.Sink = logEvent
		gameConfig.SavedSnapshotsDir = cfg.SavedSnapshotsDir
		gameConfig.Director = directors[directorName](solveSeed)
		gameConfig.MaxSteps = solveSteps

		board, err := gameConfig.CreateBoard()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		renderer := Renderer{Color: cfg.Color}

		var steps int
		if solveWatch {
			steps = watch(board, gameConfig, renderer, cmd)
			if _, err := gameConfig.OnGameEnd(board); err != nil {
				logrus.WithError(err).Warn("Could not save snapshot")
			}
		} else {
			if steps, err = gameConfig.Play(board); err != nil {
				logrus.WithError(err).Warn("Could not save snapshot")
			}
			renderer.Render(out, board)
		}

		result := "gave up"
		if board.IsWin() {
			result = "cleared"
		}
		fmt.Fprintf(out, "%s: %s by %s in %d steps with %d mistakes\n",
			gameConfig.Label(), result, directorName, steps, board.Mistakes())
		return nil
	},
}

// watch plays one director step per tick, drawing the board after each.
func watch(board *game.Board, gameConfig game.GameConfig, renderer Renderer, cmd *cobra.Command) int {
	director := gameConfig.Director
	director.Init(board)
	defer director.End()

	out := cmd.OutOrStdout()
	renderer.Render(out, board)

	tick := time.NewTicker(max(solveDelay, time.Millisecond))
	defer tick.Stop()

	steps := 0
	for steps < gameConfig.MaxSteps && !board.IsGameOver() {
		select {
		case <-cmd.Context().Done():
			return steps
		case <-tick.C:
		}

		if !director.Act() {
			break
		}
		steps++
		fmt.Fprintf(out, "step %d\n", steps)
		renderer.Render(out, board)
	}
	return steps
}

func init() {
	solveCmd.Flags().Var(newDirectorValue("constraint", &directorName), "director", "Director to play with: constraint or random")
	solveCmd.Flags().Int64Var(&solveSeed, "seed", 1, "Seed for the director's guesses")
	solveCmd.Flags().BoolVar(&solveWatch, "watch", false, "Draw the board after every step")
	solveCmd.Flags().DurationVar(&solveDelay, "delay", 500*time.Millisecond, "Pause between steps with --watch")
	solveCmd.Flags().IntVar(&solveSteps, "max-steps", 10000, "Give up after this many steps")
	rootCmd.AddCommand(solveCmd)
}
