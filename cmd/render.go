package cmd

import (
	"fmt"
	"image/color"
	"io"
	"sort"
	"strings"

	"github.com/they4kman/hexfield/game"
	"github.com/they4kman/hexfield/hexmath"
	"github.com/they4kman/hexfield/util/collections"
	"golang.org/x/image/colornames"
)

var styleColors = map[game.Style]color.RGBA{
	game.StyleNormal:  colornames.White,
	game.StyleTight:   colornames.Dodgerblue,
	game.StyleLoose:   colornames.Orange,
	game.StyleUnknown: colornames.Violet,
}

var (
	coveredColor = colornames.Slategray
	flagColor    = colornames.Crimson
	helperColor  = colornames.Gold
	dimmedColor  = colornames.Dimgray
)

// Renderer draws a board as text. Cells sharing a column have the same q;
// each column is shifted half a row from its neighbours, like flat-top hexes
// on screen.
type Renderer struct {
	Color bool
	// Print coordinates on covered cells instead of a plain marker
	Coords bool
}

func (renderer Renderer) paint(c color.RGBA, s string) string {
	if !renderer.Color {
		return s
	}
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm%s\x1b[0m", c.R, c.G, c.B, s)
}

func (renderer Renderer) cellWidth() int {
	if renderer.Coords {
		return 6
	}
	return 3
}

func (renderer Renderer) cellText(board *game.Board, pos hexmath.Axial, helper collections.Set[hexmath.Axial]) (string, color.RGBA) {
	tile, _ := board.Tile(pos)
	switch tile.State() {
	case game.Blocked:
		return "", colornames.Black
	case game.Flagged:
		return "F", flagColor
	case game.Covered:
		c := coveredColor
		if helper.Contains(pos) {
			c = helperColor
		}
		if renderer.Coords {
			return fmt.Sprintf("%d,%d", pos.Q, pos.R), c
		}
		if helper.Contains(pos) {
			return "*", c
		}
		return "#", c
	}

	label := board.NumberLabel(pos)
	if label == "" {
		label = "."
	}
	return label, styleColors[board.NumberHint(pos)]
}

func center(s string, width int) string {
	if len(s) >= width {
		return s
	}
	left := (width - len(s)) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-len(s)-left)
}

// Render writes the board, the edge hints and a status line to w.
func (renderer Renderer) Render(w io.Writer, board *game.Board) {
	helper := make(collections.Set[hexmath.Axial])
	for i, hint := range board.EdgeHints() {
		if hint.HelperOn {
			for _, pos := range board.HelperLine(i) {
				helper.Add(pos)
			}
		}
	}

	lo, hi := board.Grid().Bounds()
	width := renderer.cellWidth()
	step := width + 1

	// Rows are in half-cell units: row 2r+q puts each column half a cell
	// below its left neighbour.
	rows := make(map[int][]hexmath.Axial)
	minRow, maxRow := 2*hi.R+hi.Q, 2*lo.R+lo.Q
	for _, pos := range board.Grid().Cells() {
		row := 2*pos.R + pos.Q
		minRow, maxRow = min(minRow, row), max(maxRow, row)
		rows[row] = append(rows[row], pos)
	}
	for _, cells := range rows {
		sort.Slice(cells, func(i, j int) bool { return cells[i].Q < cells[j].Q })
	}

	for row := minRow; row <= maxRow; row++ {
		cells := rows[row]
		if len(cells) == 0 {
			continue
		}

		var line strings.Builder
		column := 0
		for _, pos := range cells {
			x := (pos.Q - lo.Q) * step
			if x > column {
				line.WriteString(strings.Repeat(" ", x-column))
				column = x
			}
			text, c := renderer.cellText(board, pos, helper)
			line.WriteString(renderer.paint(c, center(text, width)))
			column += width
		}
		fmt.Fprintln(w, strings.TrimRight(line.String(), " "))
	}

	for i, hint := range board.EdgeHints() {
		var notes []string
		if hint.HelperOn {
			notes = append(notes, "helper")
		}
		if hint.Dimmed {
			notes = append(notes, "dimmed")
		}

		c := styleColors[hint.Style]
		if hint.Dimmed {
			c = dimmedColor
		}
		text := fmt.Sprintf("edge %d: %s dir %d = %s", i, hint.Pos, hint.Dir, hint.Label())
		if len(notes) > 0 {
			text += " (" + strings.Join(notes, ", ") + ")"
		}
		fmt.Fprintln(w, renderer.paint(c, text))
	}

	fmt.Fprintf(w, "mines left %d  mistakes %d  revealed %d/%d\n",
		board.MinesLeft(), board.Mistakes(), board.RevealedCount(), board.TotalCells()-board.TotalMines())
}
