package game

import (
	"math"
	"strconv"

	"github.com/faiface/pixel"
	"github.com/they4kman/hexfield/hexmath"
)

func styledNumber(n int, style Style) string {
	switch style {
	case StyleTight:
		return "{" + strconv.Itoa(n) + "}"
	case StyleLoose:
		return "-" + strconv.Itoa(n) + "-"
	}
	return strconv.Itoa(n)
}

// Label is the text shown for the hint's count.
func (hint EdgeHint) Label() string {
	return styledNumber(hint.Count, hint.Style)
}

// NumberLabel is the text shown on a cell. Only revealed safe cells carry a
// label; zeros stay blank unless the cell is styled unknown.
func (board *Board) NumberLabel(pos hexmath.Axial) string {
	tile, ok := board.tiles[pos]
	if !ok || tile.state != Revealed || tile.isMine {
		return ""
	}

	style := board.NumberHint(pos)
	if style == StyleUnknown {
		return "?"
	}
	if tile.number == 0 {
		return ""
	}
	return styledNumber(tile.number, style)
}

// firstLineCell is where an edge hint's ray first enters the grid, or the
// anchor itself when the ray misses the grid entirely.
func (board *Board) firstLineCell(hint EdgeHint) hexmath.Axial {
	if line := board.lineCells(hint.Pos, hint.Dir); len(line) > 0 {
		return line[0]
	}
	return hint.Pos
}

// EdgeLabelCenter places the label of edge hint i, in pixels relative to the
// centre of cell (0, 0). Without overrides the label sits outside the first
// cell of the ray, opposite to the ray's direction.
func (board *Board) EdgeLabelCenter(i int, size float64) (pixel.Vec, bool) {
	if i < 0 || i >= len(board.edgeHints) {
		return pixel.ZV, false
	}
	hint := board.edgeHints[i]

	anchor := board.firstLineCell(hint)
	if hint.Placement.Pos != nil {
		anchor = *hint.Placement.Pos
	}

	offsetDir := hint.Dir + 3
	if hint.Placement.Dir != nil {
		offsetDir = *hint.Placement.Dir
	}

	dist := DefaultLabelDist
	if hint.Placement.Dist != nil {
		dist = *hint.Placement.Dist
	}
	offset := math.Max(minLabelOffset, math.Trunc(size*dist))

	direction := hexmath.DirectionVec(offsetDir, size).Unit()
	return hexmath.AxialToPixel(anchor, size).Add(direction.Scaled(offset)), true
}

// EdgeLabelAngle is the label rotation in degrees. Without an override the
// label follows the ray, kept within [-90, 90] so it never reads upside down.
func (board *Board) EdgeLabelAngle(i int, size float64) float64 {
	if i < 0 || i >= len(board.edgeHints) {
		return 0
	}
	hint := board.edgeHints[i]
	if hint.Placement.Angle != nil {
		return *hint.Placement.Angle
	}

	d := hexmath.DirectionVec(hint.Dir, size)
	angle := math.Atan2(-d.Y, d.X) * 180 / math.Pi
	if angle > 90 {
		angle -= 180
	} else if angle < -90 {
		angle += 180
	}
	return angle
}

// EdgeHintAt returns the index of the first edge hint whose label lies within
// radius of point.
func (board *Board) EdgeHintAt(point pixel.Vec, size, radius float64) (int, bool) {
	for i := range board.edgeHints {
		center, _ := board.EdgeLabelCenter(i, size)
		if point.Sub(center).Len() <= radius {
			return i, true
		}
	}
	return -1, false
}
