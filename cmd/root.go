package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/they4kman/hexfield/config"
	"github.com/they4kman/hexfield/director/constraint"
	"github.com/they4kman/hexfield/director/random"
	"github.com/they4kman/hexfield/game"
	"github.com/they4kman/hexfield/progress"
)

var (
	cfg       config.Config
	configErr error
)

var rootCmd = &cobra.Command{
	Use:   "hexfield",
	Short: "Play hexagonal Minesweeper puzzle stages",
	Long: `hexfield is a hexagonal Minesweeper puzzle game. Stages are
hand-authored boards with blocked cells, styled number hints and
edge hints counting the mines along a line.

Play a stage by number, from the stage directory
	hexfield play 1

Let the computer solve a stage file
	hexfield solve stages/004.json --director constraint
`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if configErr != nil {
			return configErr
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		level, _ := cfg.Level()
		logrus.SetLevel(level)
		logrus.SetOutput(cmd.ErrOrStderr())
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// logEvent is the board event sink used by every command.
func logEvent(event game.Event) {
	entry := logrus.WithFields(logrus.Fields{
		"kind": event.Kind,
		"q":    event.Pos.Q,
		"r":    event.Pos.R,
	})

	switch event.Kind {
	case game.EventMistake:
		entry.Info("Mistake")
	case game.EventWon:
		logrus.Info("Stage cleared")
	case game.EventRevealed:
		entry.WithField("opened", len(event.Opened)).Debug("Revealed")
	default:
		entry.Debug("Flag changed")
	}
}

// resolveStage turns a command argument into a stage file path. A bare number
// is looked up in the stage directory.
func resolveStage(arg string) (string, int) {
	if n, err := strconv.Atoi(arg); err == nil {
		return game.StagePath(cfg.StageDir, n), n
	}
	n, _ := game.StageNumber(arg)
	return arg, n
}

// openProgress opens the configured progress store. The returned closer must
// be called when done.
func openProgress(ctx context.Context) (*progress.Tracker, func() error, error) {
	var store progress.Store
	closer := func() error { return nil }

	switch cfg.ProgressBackend {
	case config.BackendSQLite:
		sqliteStore, err := progress.OpenSQLite(sqlitePath(cfg.SavePath))
		if err != nil {
			return nil, nil, err
		}
		store, closer = sqliteStore, sqliteStore.Close
	default:
		store = progress.NewFileStore(cfg.SavePath)
	}

	tracker, err := progress.NewTracker(ctx, store)
	if err != nil {
		_ = closer()
		return nil, nil, err
	}
	return tracker, closer, nil
}

// sqlitePath swaps a text save file extension for .sqlite, so switching
// backends does not overwrite the YAML save.
func sqlitePath(path string) string {
	switch ext := filepath.Ext(path); strings.ToLower(ext) {
	case ".yaml", ".yml", ".json":
		return strings.TrimSuffix(path, ext) + ".sqlite"
	}
	return path
}

type directorValue string

func newDirectorValue(val string, p *string) *directorValue {
	*p = val
	return (*directorValue)(p)
}

var directors = map[string]func(seed int64) game.Director{
	"constraint": func(seed int64) game.Director { return constraint.New(seed) },
	"random":     func(seed int64) game.Director { return random.New(seed) },
}

func (directorVal *directorValue) String() string {
	return string(*directorVal)
}

func (directorVal *directorValue) Set(value string) error {
	if _, isValid := directors[value]; isValid {
		*directorVal = directorValue(value)
		return nil
	} else {
		return fmt.Errorf("invalid director (expected constraint or random)")
	}
}

func (directorVal *directorValue) Type() string {
	return "director"
}

func init() {
	if loaded, err := config.Load(); err != nil {
		configErr = err
	} else {
		cfg = loaded
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfg.StageDir, "stage-dir", cfg.StageDir, "Directory holding numbered stage files")
	flags.StringVar(&cfg.SavePath, "save-path", cfg.SavePath, "Where unlock progress is saved")
	flags.StringVar(&cfg.ProgressBackend, "progress-backend", cfg.ProgressBackend, "Progress storage: file or sqlite")
	flags.IntVar(&cfg.TotalStages, "total-stages", cfg.TotalStages, "Number of stages in the campaign")
	flags.Float64Var(&cfg.HexSize, "hex-size", cfg.HexSize, "Hex radius in pixels, for pixel commands and label placement")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	flags.BoolVar(&cfg.Color, "color", cfg.Color, "Colour the board with ANSI escapes")
	flags.StringVar(&cfg.SavedSnapshotsDir, "save-snapshots", cfg.SavedSnapshotsDir, "Directory to save final board snapshots to")
}
