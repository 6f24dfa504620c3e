package game

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

type GameConfig struct {
	// Stage file the board is created from
	StagePath string
	// Already parsed stage; loaded from StagePath when nil
	Stage *Stage

	Director Director
	// Upper bound on director steps for a single game
	MaxSteps int

	Sink EventSink

	// Path to directory where final snapshots of boards should be saved
	SavedSnapshotsDir string
}

func NewGameConfig() GameConfig {
	return GameConfig{
		Director: nil,
		Stage:    nil,
		MaxSteps: 10000,
	}
}

// Label names the configured stage for display.
func (config GameConfig) Label() string {
	return StageLabel(config.Stage, config.StagePath)
}

// CreateBoard loads the stage if needed and lays out a fresh board for it.
func (config *GameConfig) CreateBoard() (*Board, error) {
	if config.Stage == nil {
		if config.StagePath == "" {
			return nil, fmt.Errorf("no stage configured")
		}
		stage, err := LoadStage(config.StagePath)
		if err != nil {
			return nil, err
		}
		config.Stage = stage
	}

	var opts []Option
	if config.Sink != nil {
		opts = append(opts, WithEventSink(config.Sink))
	}
	return config.Stage.Build(opts...)
}

// Play lets the configured director play board, then finishes the game.
func (config GameConfig) Play(board *Board) (int, error) {
	if config.Director == nil {
		return 0, fmt.Errorf("no director configured")
	}
	steps := Direct(board, config.Director, config.MaxSteps)
	_, err := config.OnGameEnd(board)
	return steps, err
}

// OnGameEnd saves the final snapshot of board, if snapshots are enabled. It
// returns the path written.
func (config GameConfig) OnGameEnd(board *Board) (string, error) {
	return config.saveSnapshot(board, time.Now())
}

func (config GameConfig) saveSnapshot(board *Board, t time.Time) (string, error) {
	if config.SavedSnapshotsDir == "" {
		return "", nil
	}

	stat, err := os.Stat(config.SavedSnapshotsDir)
	if err != nil {
		if !os.IsNotExist(err) {
			return "", err
		}
		if err := os.MkdirAll(config.SavedSnapshotsDir, 0777); err != nil {
			return "", err
		}
	} else if !stat.Mode().IsDir() {
		return "", fmt.Errorf("%s is not a directory; cannot save snapshots to it", config.SavedSnapshotsDir)
	}

	path := filepath.Join(config.SavedSnapshotsDir, config.generateSnapshotFilename(board, t))
	snapshot := board.Snapshot(config.Label())
	if err := os.WriteFile(path, []byte(snapshot.Serialize()), 0666); err != nil {
		return "", err
	}
	return path, nil
}

func (config GameConfig) generateSnapshotFilename(board *Board, t time.Time) string {
	filenameBuilder := strings.Builder{}

	filenameBuilder.WriteString(t.Format("20060102_150405_"))

	if n, ok := StageNumber(config.StagePath); ok {
		filenameBuilder.WriteString(fmt.Sprintf("%03d_", n))
	}

	var stateStr string
	switch {
	case board.IsWin():
		stateStr = "win"
	case board.Mistakes() > 0:
		stateStr = "mistakes"
	default:
		stateStr = "other"
	}
	filenameBuilder.WriteString(stateStr)

	filenameBuilder.WriteString(".yaml")

	return filenameBuilder.String()
}
