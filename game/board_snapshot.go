package game

import (
	"github.com/they4kman/hexfield/grid"
)

// Snapshot describes the board's current position as a stage: playing the
// snapshot starts where this board is now. Mistakes are not carried over.
func (board *Board) Snapshot(name string) *Stage {
	stage := &Stage{
		Name: name,
		Spec: grid.Explicit(board.grid.Cells()...),
	}

	layout := &stage.Layout
	for _, pos := range board.grid.Cells() {
		tile := board.tiles[pos]
		if tile.state == Blocked {
			layout.Blocked = append(layout.Blocked, pos)
			continue
		}
		if tile.isMine {
			layout.Mines = append(layout.Mines, pos)
		}
		switch tile.state {
		case Revealed:
			layout.StartRevealed = append(layout.StartRevealed, pos)
		case Flagged:
			layout.StartFlagged = append(layout.StartFlagged, pos)
		}
		switch board.numberHint[pos] {
		case StyleTight:
			layout.HintTight = append(layout.HintTight, pos)
		case StyleLoose:
			layout.HintLoose = append(layout.HintLoose, pos)
		case StyleUnknown:
			layout.HintUnknown = append(layout.HintUnknown, pos)
		}
	}

	for _, hint := range board.edgeHints {
		entry := EdgeHintEntry{
			Pos:        hint.Pos,
			Dir:        hint.Dir,
			LabelPos:   hint.Placement.Pos,
			LabelDir:   hint.Placement.Dir,
			LabelDist:  hint.Placement.Dist,
			LabelAngle: hint.Placement.Angle,
		}
		switch hint.Style {
		case StyleTight:
			layout.EdgeHintTight = append(layout.EdgeHintTight, entry)
		case StyleLoose:
			layout.EdgeHintLoose = append(layout.EdgeHintLoose, entry)
		default:
			layout.EdgeHintNormal = append(layout.EdgeHintNormal, entry)
		}
	}

	return stage
}

// LoadSnapshot parses a snapshot written by Serialize. With fresh set, the
// saved position is dropped and the board starts from its bare layout.
func LoadSnapshot(in string, fresh bool) (*Stage, error) {
	stage, err := ParseStage([]byte(in))
	if err != nil {
		return nil, err
	}
	if fresh {
		stage.StartRevealed = nil
		stage.StartFlagged = nil
	}
	return stage, nil
}
