package game

import (
	"fmt"

	"github.com/they4kman/hexfield/hexmath"
)

type EventKind int

const (
	EventRevealed EventKind = iota
	EventFlagged
	EventUnflagged
	EventMistake
	EventWon
)

func (kind EventKind) String() string {
	switch kind {
	case EventRevealed:
		return "revealed"
	case EventFlagged:
		return "flagged"
	case EventUnflagged:
		return "unflagged"
	case EventMistake:
		return "mistake"
	case EventWon:
		return "won"
	}
	return fmt.Sprintf("EventKind(%d)", int(kind))
}

// Event is emitted after a command changes the board.
type Event struct {
	Kind EventKind
	Pos  hexmath.Axial
	// Cells opened by flood fill, for EventRevealed
	Opened []hexmath.Axial
}

// EventSink receives board events, e.g. to play sounds or write logs. It is
// called synchronously from inside the command.
type EventSink func(Event)

type Option func(*Board)

func WithEventSink(sink EventSink) Option {
	return func(board *Board) {
		board.sink = sink
	}
}

func (board *Board) emit(event Event) {
	if board.sink != nil {
		board.sink(event)
	}
}
