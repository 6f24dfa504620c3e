package game

import (
	"github.com/gammazero/deque"
	"github.com/they4kman/hexfield/hexmath"
)

type NeighborGetter func(hexmath.Axial) []hexmath.Axial

// Visitor is called for every neighbour examined by flood. It returns whether
// the flood should continue outward from that cell.
type Visitor func(hexmath.Axial) bool

// flood runs a breadth-first expansion from start. Each cell is expanded at
// most once, so it terminates on any finite neighbourhood.
func flood(start hexmath.Axial, visit Visitor, getNeighbors NeighborGetter) {
	var queue deque.Deque[hexmath.Axial]
	enqueued := map[hexmath.Axial]struct{}{start: {}}
	queue.PushBack(start)

	for queue.Len() > 0 {
		pos := queue.PopFront()
		for _, neighbor := range getNeighbors(pos) {
			if !visit(neighbor) {
				continue
			}
			if _, seen := enqueued[neighbor]; seen {
				continue
			}
			enqueued[neighbor] = struct{}{}
			queue.PushBack(neighbor)
		}
	}
}

// floodOpen reveals everything reachable from a revealed zero cell through
// other zero cells. Mines, flags and blocked cells are never opened. The
// newly opened cells are returned in discovery order.
func (board *Board) floodOpen(start hexmath.Axial) []hexmath.Axial {
	tile, ok := board.tiles[start]
	if !ok || tile.isMine || tile.state == Blocked || tile.number != 0 {
		return nil
	}

	var opened []hexmath.Axial
	flood(
		start,
		func(pos hexmath.Axial) bool {
			tile := board.tiles[pos]
			switch tile.state {
			case Blocked, Flagged:
				return false
			}
			if tile.isMine {
				return false
			}

			if tile.state != Revealed {
				tile.state = Revealed
				board.revealedCount++
				opened = append(opened, pos)
			}
			return tile.number == 0
		},
		board.grid.Neighbors,
	)
	return opened
}
