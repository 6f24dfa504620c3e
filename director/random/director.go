package random

import (
	"math/rand"

	"github.com/they4kman/hexfield/game"
	"github.com/they4kman/hexfield/hexmath"
)

// Director opens covered cells in a shuffled order. A reveal that turns out
// to be a mine is followed by flagging it, so every step settles one cell.
type Director struct {
	rand  *rand.Rand
	board *game.Board
	cells []hexmath.Axial
}

func New(seed int64) *Director {
	return &Director{rand: rand.New(rand.NewSource(seed))}
}

func (director *Director) Init(board *game.Board) {
	if director.rand == nil {
		director.rand = rand.New(rand.NewSource(1))
	}
	director.board = board

	director.cells = director.cells[:0]
	for _, pos := range board.Grid().Cells() {
		if tile, _ := board.Tile(pos); tile.State() != game.Blocked {
			director.cells = append(director.cells, pos)
		}
	}

	director.rand.Shuffle(len(director.cells), func(i, j int) {
		director.cells[i], director.cells[j] = director.cells[j], director.cells[i]
	})
}

// Act settles the next unsettled cell in the shuffled order. It returns false
// once none is left.
func (director *Director) Act() bool {
	pos, ok := director.Next()
	if !ok {
		return false
	}
	director.Settle(pos)
	return true
}

// Unsettled reports whether pos is covered, or carries a flag that can still
// be removed. Only a locked flag is known to sit on a mine.
func Unsettled(board *game.Board, pos hexmath.Axial) bool {
	tile, ok := board.Tile(pos)
	if !ok {
		return false
	}
	switch tile.State() {
	case game.Covered:
		return true
	case game.Flagged:
		return !board.IsLocked(pos)
	}
	return false
}

// Next returns the next unsettled cell in the shuffled order.
func (director *Director) Next() (hexmath.Axial, bool) {
	for len(director.cells) > 0 {
		pos := director.cells[0]
		director.cells = director.cells[1:]
		if Unsettled(director.board, pos) {
			return pos, true
		}
	}
	return hexmath.Axial{}, false
}

// Settle reveals pos, flagging it instead if it is a mine. A removable flag
// on pos is taken off first.
func (director *Director) Settle(pos hexmath.Axial) game.Outcome {
	if tile, _ := director.board.Tile(pos); tile.State() == game.Flagged {
		director.board.ToggleFlag(pos)
	}
	outcome := director.board.Reveal(pos)
	if outcome == game.Mistake {
		director.board.ToggleFlag(pos)
	}
	return outcome
}

func (director *Director) End() {
	director.board = nil
	director.cells = nil
}
