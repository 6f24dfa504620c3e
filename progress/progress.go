// Package progress remembers which stages a player has unlocked.
package progress

import (
	"context"
	"fmt"
)

const DefaultTotalStages = 37

// Progress is the saved unlock state. Stages 1 through MaxUnlockedStage are
// playable.
type Progress struct {
	MaxUnlockedStage int `yaml:"max_unlocked_stage"`
}

func Default() Progress {
	return Progress{MaxUnlockedStage: 1}
}

type Store interface {
	Load(ctx context.Context) (Progress, error)
	Save(ctx context.Context, progress Progress) error
}

// Tracker applies unlock rules on top of a Store.
type Tracker struct {
	store   Store
	current Progress
}

// NewTracker loads the current progress from store.
func NewTracker(ctx context.Context, store Store) (*Tracker, error) {
	current, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load progress: %w", err)
	}
	if current.MaxUnlockedStage < 1 {
		current = Default()
	}
	return &Tracker{store: store, current: current}, nil
}

func (tracker *Tracker) Progress() Progress {
	return tracker.current
}

func (tracker *Tracker) IsUnlocked(stage int) bool {
	return stage >= 1 && stage <= tracker.current.MaxUnlockedStage
}

// Unlock records that stage cleared was won and opens the stage after it.
// Clearing an older stage changes nothing; clearing the last stage keeps it
// as the highest unlocked. It reports whether the progress changed.
func (tracker *Tracker) Unlock(ctx context.Context, cleared, total int) (bool, error) {
	if cleared < 1 || cleared < tracker.current.MaxUnlockedStage {
		return false, nil
	}

	next := cleared + 1
	if cleared >= total {
		next = cleared
	}
	next = max(tracker.current.MaxUnlockedStage, next)

	changed := next != tracker.current.MaxUnlockedStage
	tracker.current.MaxUnlockedStage = next
	if err := tracker.store.Save(ctx, tracker.current); err != nil {
		return changed, fmt.Errorf("save progress: %w", err)
	}
	return changed, nil
}

// Reset leaves only the first stage unlocked.
func (tracker *Tracker) Reset(ctx context.Context) error {
	tracker.current = Default()
	if err := tracker.store.Save(ctx, tracker.current); err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}
