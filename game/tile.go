package game

import "fmt"

type Tile struct {
	isMine bool
	// -1 for mines, otherwise the count of neighbouring mines
	number int
	state  TileState
}

func (tile Tile) IsMine() bool {
	return tile.isMine
}

func (tile Tile) Number() int {
	return tile.number
}

func (tile Tile) State() TileState {
	return tile.state
}

func (tile Tile) String() string {
	return fmt.Sprintf("Tile(%s, mine=%v, number=%d)", tile.state, tile.isMine, tile.number)
}

// playable reports whether the tile takes part in the puzzle at all.
func (tile *Tile) playable() bool {
	return tile.state != Blocked
}

// canReveal reports whether a reveal command may act on the tile.
func (tile *Tile) canReveal() bool {
	switch tile.state {
	case Covered:
		return true
	case Revealed, Flagged, Blocked:
		return false
	}
	return false
}

// canToggleFlag reports whether a flag command may act on the tile.
func (tile *Tile) canToggleFlag() bool {
	switch tile.state {
	case Covered, Flagged:
		return true
	case Revealed, Blocked:
		return false
	}
	return false
}
