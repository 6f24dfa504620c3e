package game

import (
	"github.com/they4kman/hexfield/grid"
	"github.com/they4kman/hexfield/hexmath"
	"github.com/they4kman/hexfield/util/collections"
)

// Layout is the authored content of a stage, everything except its shape.
// Coordinates outside the grid are ignored.
type Layout struct {
	Blocked       []hexmath.Axial `yaml:"blocked,omitempty"`
	Mines         []hexmath.Axial `yaml:"mines,omitempty"`
	StartRevealed []hexmath.Axial `yaml:"start_revealed,omitempty"`
	StartFlagged  []hexmath.Axial `yaml:"start_flagged,omitempty"`

	HintTight   []hexmath.Axial `yaml:"hint_tight,omitempty"`
	HintLoose   []hexmath.Axial `yaml:"hint_loose,omitempty"`
	HintUnknown []hexmath.Axial `yaml:"hint_unknown,omitempty"`

	EdgeHintNormal []EdgeHintEntry `yaml:"edge_hint_normal,omitempty"`
	EdgeHintTight  []EdgeHintEntry `yaml:"edge_hint_tight,omitempty"`
	EdgeHintLoose  []EdgeHintEntry `yaml:"edge_hint_loose,omitempty"`
}

type Board struct {
	grid  *grid.Grid
	tiles map[hexmath.Axial]*Tile

	mistakes    int
	lockedFlags collections.Set[hexmath.Axial]
	numberHint  map[hexmath.Axial]Style
	edgeHints   []EdgeHint

	isGameOver, isWin bool
	lastFloodOpen     []hexmath.Axial

	totalCells, totalMines   int
	flagCount, revealedCount int

	sink EventSink
}

// NewBoard lays out a board on g. Conflicting layout entries are resolved
// in favour of blocked cells: they are never mines, flags or revealed.
func NewBoard(g *grid.Grid, layout Layout, opts ...Option) *Board {
	board := &Board{
		grid:        g,
		tiles:       make(map[hexmath.Axial]*Tile, g.Len()),
		lockedFlags: make(collections.Set[hexmath.Axial]),
		numberHint:  make(map[hexmath.Axial]Style),
	}
	for _, opt := range opts {
		opt(board)
	}

	for _, pos := range g.Cells() {
		board.tiles[pos] = &Tile{state: Covered}
	}

	for _, pos := range layout.Blocked {
		if tile, ok := board.tiles[pos]; ok {
			tile.state = Blocked
		}
	}
	for _, pos := range layout.Mines {
		if tile, ok := board.tiles[pos]; ok && tile.playable() {
			tile.isMine = true
		}
	}

	board.computeNumbers()

	for _, pos := range layout.StartRevealed {
		if tile, ok := board.tiles[pos]; ok && tile.playable() && !tile.isMine {
			tile.state = Revealed
		}
	}
	for _, pos := range layout.StartFlagged {
		if tile, ok := board.tiles[pos]; ok && tile.state == Covered {
			tile.state = Flagged
			if tile.isMine {
				board.lockedFlags.Add(pos)
			}
		}
	}

	board.applyNumberHints(layout.HintTight, StyleTight)
	board.applyNumberHints(layout.HintLoose, StyleLoose)
	board.applyNumberHints(layout.HintUnknown, StyleUnknown)

	board.buildEdgeHints(layout.EdgeHintNormal, StyleNormal)
	board.buildEdgeHints(layout.EdgeHintTight, StyleTight)
	board.buildEdgeHints(layout.EdgeHintLoose, StyleLoose)

	board.recomputeCounters()
	board.checkWin()

	return board
}

func (board *Board) computeNumbers() {
	for pos, tile := range board.tiles {
		switch {
		case !tile.playable():
			tile.number = 0
		case tile.isMine:
			tile.number = -1
		default:
			count := 0
			for _, neighbor := range board.grid.Neighbors(pos) {
				if board.tiles[neighbor].isMine {
					count++
				}
			}
			tile.number = count
		}
	}
}

func (board *Board) applyNumberHints(cells []hexmath.Axial, style Style) {
	for _, pos := range cells {
		if tile, ok := board.tiles[pos]; ok && tile.playable() && !tile.isMine {
			board.numberHint[pos] = style
		}
	}
}

func (board *Board) recomputeCounters() {
	board.totalCells, board.totalMines = 0, 0
	board.flagCount, board.revealedCount = 0, 0

	for _, tile := range board.tiles {
		if !tile.playable() {
			continue
		}
		board.totalCells++
		if tile.isMine {
			board.totalMines++
		}
		switch tile.state {
		case Flagged:
			board.flagCount++
		case Revealed:
			if !tile.isMine {
				board.revealedCount++
			}
		}
	}
}

// Reveal opens a covered safe cell, flooding outward from zeros. Revealing a
// mine counts a mistake and leaves the mine covered.
func (board *Board) Reveal(pos hexmath.Axial) Outcome {
	if board.isGameOver {
		return Ignored
	}
	board.lastFloodOpen = nil

	tile, ok := board.tiles[pos]
	if !ok || !tile.canReveal() {
		return Ignored
	}

	if tile.isMine {
		board.mistakes++
		board.emit(Event{Kind: EventMistake, Pos: pos})
		board.checkWin()
		return Mistake
	}

	tile.state = Revealed
	board.revealedCount++
	if tile.number == 0 {
		board.lastFloodOpen = board.floodOpen(pos)
	}
	board.emit(Event{Kind: EventRevealed, Pos: pos, Opened: board.LastFloodOpen()})

	board.checkWin()
	return Applied
}

// ToggleFlag flags a covered mine permanently, or removes a flag that was
// not locked. Flagging a safe cell counts a mistake and places no flag.
func (board *Board) ToggleFlag(pos hexmath.Axial) Outcome {
	if board.isGameOver {
		return Ignored
	}
	tile, ok := board.tiles[pos]
	if !ok || !tile.canToggleFlag() {
		return Ignored
	}

	var outcome Outcome
	switch {
	case tile.state == Flagged && board.lockedFlags.Contains(pos):
		return Rejected
	case tile.state == Flagged:
		tile.state = Covered
		outcome = Applied
		board.emit(Event{Kind: EventUnflagged, Pos: pos})
	case tile.isMine:
		tile.state = Flagged
		board.lockedFlags.Add(pos)
		outcome = Applied
		board.emit(Event{Kind: EventFlagged, Pos: pos})
	default:
		board.mistakes++
		outcome = Mistake
		board.emit(Event{Kind: EventMistake, Pos: pos})
	}

	board.recomputeCounters()
	board.checkWin()
	return outcome
}

func (board *Board) allSafeRevealed() bool {
	for _, tile := range board.tiles {
		if tile.playable() && !tile.isMine && tile.state != Revealed {
			return false
		}
	}
	return true
}

func (board *Board) allMinesFlagged() bool {
	for _, tile := range board.tiles {
		if tile.playable() && tile.isMine && tile.state != Flagged {
			return false
		}
	}
	return true
}

func (board *Board) checkWin() {
	if board.isGameOver {
		return
	}
	if board.allSafeRevealed() && board.allMinesFlagged() {
		board.isGameOver = true
		board.isWin = true
		board.emit(Event{Kind: EventWon})
	}
}

func (board *Board) Grid() *grid.Grid {
	return board.grid
}

// Tile returns a copy of the tile at pos.
func (board *Board) Tile(pos hexmath.Axial) (Tile, bool) {
	tile, ok := board.tiles[pos]
	if !ok {
		return Tile{}, false
	}
	return *tile, true
}

// Tiles returns a copy of every tile keyed by coordinate.
func (board *Board) Tiles() map[hexmath.Axial]Tile {
	out := make(map[hexmath.Axial]Tile, len(board.tiles))
	for pos, tile := range board.tiles {
		out[pos] = *tile
	}
	return out
}

func (board *Board) IsLocked(pos hexmath.Axial) bool {
	return board.lockedFlags.Contains(pos)
}

// NumberHint returns the display style of a cell's number.
func (board *Board) NumberHint(pos hexmath.Axial) Style {
	if style, ok := board.numberHint[pos]; ok {
		return style
	}
	return StyleNormal
}

// LastFloodOpen lists the cells opened by flood fill during the most recent
// reveal, in breadth-first order.
func (board *Board) LastFloodOpen() []hexmath.Axial {
	return append([]hexmath.Axial(nil), board.lastFloodOpen...)
}

func (board *Board) Mistakes() int {
	return board.mistakes
}

func (board *Board) IsGameOver() bool {
	return board.isGameOver
}

func (board *Board) IsWin() bool {
	return board.isWin
}

// TotalCells counts cells that are not blocked.
func (board *Board) TotalCells() int {
	return board.totalCells
}

func (board *Board) TotalMines() int {
	return board.totalMines
}

func (board *Board) FlagCount() int {
	return board.flagCount
}

func (board *Board) RevealedCount() int {
	return board.revealedCount
}

func (board *Board) MinesLeft() int {
	return max(0, board.totalMines-board.flagCount)
}
