package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/faiface/pixel"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/they4kman/hexfield/game"
	"github.com/they4kman/hexfield/hexmath"
)

var (
	showCoords  bool
	ignoreLocks bool
	freshReplay bool
)

const playHelp = `Commands:
  r Q R   reveal the cell at axial (Q, R)
  f Q R   flag or unflag the cell at (Q, R)
  p X Y   reveal the cell under pixel (X, Y), relative to the centre of (0, 0)
  e X Y   toggle the helper line of the edge hint label under pixel (X, Y)
  h I     toggle the helper line of edge hint I
  d I     toggle dimming of edge hint I
  c       toggle coordinates on covered cells
  ?       show this help
  q       quit`

var playCmd = &cobra.Command{
	Use:   "play <stage>",
	Short: "Play a stage in the terminal",
	Long: `Play a stage, given by number (looked up in the stage directory) or by
file path. Saved snapshots can be played too; pass --fresh to start them
over from their bare layout.

` + playHelp,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		path, number := resolveStage(args[0])

		tracker, closeProgress, err := openProgress(ctx)
		if err != nil {
			return err
		}
		defer closeProgress()

		if number > 0 && !ignoreLocks && !tracker.IsUnlocked(number) {
			return fmt.Errorf("stage %d is locked; clear stage %d first", number, tracker.Progress().MaxUnlockedStage)
		}

		gameConfig := game.NewGameConfig()
		gameConfig.StagePath = path
		gameConfig.Sink = logEvent
		gameConfig.SavedSnapshotsDir = cfg.SavedSnapshotsDir
		if freshReplay {
			in, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			if gameConfig.Stage, err = game.LoadSnapshot(string(in), true); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
		}

		board, err := gameConfig.CreateBoard()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, gameConfig.Label())

		session := &session{
			board:    board,
			renderer: Renderer{Color: cfg.Color, Coords: showCoords},
			size:     cfg.HexSize,
			out:      out,
		}
		session.run(cmd.InOrStdin())

		if snapshotPath, err := gameConfig.OnGameEnd(board); err != nil {
			logrus.WithError(err).Warn("Could not save snapshot")
		} else if snapshotPath != "" {
			logrus.WithField("path", snapshotPath).Info("Saved snapshot")
		}

		if !board.IsWin() {
			return nil
		}
		fmt.Fprintf(out, "Cleared %s with %d mistakes\n", gameConfig.Label(), board.Mistakes())

		if number > 0 {
			if _, err := tracker.Unlock(ctx, number, cfg.TotalStages); err != nil {
				logrus.WithError(err).Warn("Could not save progress")
			}
		}
		if next := game.NextStagePath(path); next != path {
			if _, err := os.Stat(next); err == nil {
				fmt.Fprintf(out, "Next stage: %s\n", next)
			}
		}
		return nil
	},
}

// session reads player commands and applies them to a board.
type session struct {
	board    *game.Board
	renderer Renderer
	size     float64
	out      io.Writer
}

func (session *session) run(in io.Reader) {
	session.renderer.Render(session.out, session.board)

	scanner := bufio.NewScanner(in)
	for !session.board.IsGameOver() {
		fmt.Fprint(session.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(session.out)
			return
		}

		quit, err := session.exec(scanner.Text())
		if err != nil {
			fmt.Fprintln(session.out, err)
			continue
		}
		if quit {
			return
		}
		session.renderer.Render(session.out, session.board)
	}
}

// exec applies one command line. It reports whether the player asked to quit.
func (session *session) exec(line string) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}

	board := session.board
	switch fields[0] {
	case "q", "quit":
		return true, nil

	case "?", "help":
		fmt.Fprintln(session.out, playHelp)

	case "c":
		session.renderer.Coords = !session.renderer.Coords

	case "r", "f":
		args, err := intArgs(fields, 2)
		if err != nil {
			return false, err
		}
		pos := hexmath.A(args[0], args[1])
		if fields[0] == "r" {
			session.report(pos, board.Reveal(pos))
		} else {
			session.report(pos, board.ToggleFlag(pos))
		}

	case "p":
		point, err := pointArgs(fields)
		if err != nil {
			return false, err
		}
		pos := hexmath.PixelToAxial(point, session.size)
		session.report(pos, board.Reveal(pos))

	case "e":
		point, err := pointArgs(fields)
		if err != nil {
			return false, err
		}
		i, ok := board.EdgeHintAt(point, session.size, session.size*0.6)
		if !ok {
			return false, fmt.Errorf("no edge hint label near %v", point)
		}
		board.ToggleHelper(i)

	case "h", "d":
		args, err := intArgs(fields, 1)
		if err != nil {
			return false, err
		}
		toggle := board.ToggleHelper
		if fields[0] == "d" {
			toggle = board.ToggleDimmed
		}
		if !toggle(args[0]) {
			return false, fmt.Errorf("no edge hint %d", args[0])
		}

	default:
		return false, fmt.Errorf("unknown command %q (? for help)", fields[0])
	}
	return false, nil
}

func (session *session) report(pos hexmath.Axial, outcome game.Outcome) {
	switch outcome {
	case game.Mistake:
		fmt.Fprintf(session.out, "Mistake at %s (%d so far)\n", pos, session.board.Mistakes())
	case game.Rejected:
		fmt.Fprintf(session.out, "The flag at %s is locked\n", pos)
	case game.Ignored:
		fmt.Fprintf(session.out, "Nothing to do at %s\n", pos)
	}
	if session.board.IsWin() {
		fmt.Fprintln(session.out, "Stage cleared!")
	}
}

func intArgs(fields []string, n int) ([]int, error) {
	if len(fields) != n+1 {
		return nil, fmt.Errorf("%s takes %d numbers", fields[0], n)
	}
	out := make([]int, n)
	for i, field := range fields[1:] {
		value, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("%s: %q is not a number", fields[0], field)
		}
		out[i] = value
	}
	return out, nil
}

func pointArgs(fields []string) (pixel.Vec, error) {
	if len(fields) != 3 {
		return pixel.ZV, fmt.Errorf("%s takes an x and a y", fields[0])
	}
	x, errX := strconv.ParseFloat(fields[1], 64)
	y, errY := strconv.ParseFloat(fields[2], 64)
	if errX != nil || errY != nil {
		return pixel.ZV, fmt.Errorf("%s: bad pixel position", fields[0])
	}
	return pixel.V(x, y), nil
}

func init() {
	playCmd.Flags().BoolVar(&showCoords, "coords", false, "Show coordinates on covered cells")
	playCmd.Flags().BoolVar(&ignoreLocks, "ignore-locks", false, "Play a stage even if it is not unlocked yet")
	playCmd.Flags().BoolVar(&freshReplay, "fresh", false, "Start a saved snapshot over from its bare layout")
	rootCmd.AddCommand(playCmd)
}
