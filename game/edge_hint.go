package game

import (
	"github.com/they4kman/hexfield/hexmath"
)

// EdgeHintEntry is one authored edge hint, as written in a stage file.
type EdgeHintEntry struct {
	Pos hexmath.Axial `yaml:"pos"`
	Dir int           `yaml:"dir"`

	LabelPos   *hexmath.Axial `yaml:"label_pos,omitempty"`
	LabelDir   *int           `yaml:"label_dir,omitempty"`
	LabelDist  *float64       `yaml:"label_dist,omitempty"`
	LabelAngle *float64       `yaml:"label_angle,omitempty"`
}

// LabelOverrides are optional placement settings for an edge hint's label.
// They are carried through for the renderer and never affect play.
type LabelOverrides struct {
	Pos   *hexmath.Axial
	Dir   *int
	Dist  *float64
	Angle *float64
}

// EdgeHint counts the mines on a ray of cells starting at Pos and heading in
// direction Dir.
type EdgeHint struct {
	Pos       hexmath.Axial
	Dir       int
	Count     int
	Style     Style
	Placement LabelOverrides

	// Player scratch notes
	HelperOn bool
	Dimmed   bool
}

// lineCells walks from pos in direction dir and returns the in-grid cells
// passed through. A start outside the grid steps in once before walking.
func (board *Board) lineCells(pos hexmath.Axial, dir int) []hexmath.Axial {
	step := hexmath.Direction(dir)
	if !board.grid.Contains(pos) {
		pos = pos.Add(step)
	}

	var path []hexmath.Axial
	for board.grid.Contains(pos) {
		path = append(path, pos)
		pos = pos.Add(step)
	}
	return path
}

// playableLine is lineCells without blocked cells.
func (board *Board) playableLine(pos hexmath.Axial, dir int) []hexmath.Axial {
	var path []hexmath.Axial
	for _, cell := range board.lineCells(pos, dir) {
		if board.tiles[cell].playable() {
			path = append(path, cell)
		}
	}
	return path
}

func (board *Board) buildEdgeHints(entries []EdgeHintEntry, style Style) {
	for _, entry := range entries {
		dir := ((entry.Dir % 6) + 6) % 6

		count := 0
		for _, cell := range board.playableLine(entry.Pos, dir) {
			if board.tiles[cell].isMine {
				count++
			}
		}

		board.edgeHints = append(board.edgeHints, EdgeHint{
			Pos:   entry.Pos,
			Dir:   dir,
			Count: count,
			Style: style,
			Placement: LabelOverrides{
				Pos:   entry.LabelPos,
				Dir:   entry.LabelDir,
				Dist:  entry.LabelDist,
				Angle: entry.LabelAngle,
			},
		})
	}
}

// EdgeHints returns a copy of the edge hints in authored order: normal,
// then tight, then loose.
func (board *Board) EdgeHints() []EdgeHint {
	return append([]EdgeHint(nil), board.edgeHints...)
}

// HelperLine returns the non-blocked cells covered by edge hint i.
func (board *Board) HelperLine(i int) []hexmath.Axial {
	if i < 0 || i >= len(board.edgeHints) {
		return nil
	}
	hint := board.edgeHints[i]
	return board.playableLine(hint.Pos, hint.Dir)
}

// SetHelper turns the helper line of edge hint i on or off. Scratch notes
// are allowed at any time and have no effect on the count or the win.
func (board *Board) SetHelper(i int, on bool) bool {
	if i < 0 || i >= len(board.edgeHints) {
		return false
	}
	board.edgeHints[i].HelperOn = on
	return true
}

func (board *Board) SetDimmed(i int, dimmed bool) bool {
	if i < 0 || i >= len(board.edgeHints) {
		return false
	}
	board.edgeHints[i].Dimmed = dimmed
	return true
}

func (board *Board) ToggleHelper(i int) bool {
	if i < 0 || i >= len(board.edgeHints) {
		return false
	}
	return board.SetHelper(i, !board.edgeHints[i].HelperOn)
}

func (board *Board) ToggleDimmed(i int) bool {
	if i < 0 || i >= len(board.edgeHints) {
		return false
	}
	return board.SetDimmed(i, !board.edgeHints[i].Dimmed)
}
