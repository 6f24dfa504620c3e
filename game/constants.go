package game

import "fmt"

type TileState int

const (
	Covered TileState = iota
	Revealed
	Flagged
	Blocked
)

func (state TileState) String() string {
	switch state {
	case Covered:
		return "covered"
	case Revealed:
		return "revealed"
	case Flagged:
		return "flagged"
	case Blocked:
		return "blocked"
	}
	return fmt.Sprintf("TileState(%d)", int(state))
}

// Style is the author-chosen display format of a number or edge hint. It
// never changes the value being displayed.
type Style int

const (
	StyleNormal Style = iota
	StyleTight
	StyleLoose
	StyleUnknown
)

func (style Style) String() string {
	switch style {
	case StyleNormal:
		return "normal"
	case StyleTight:
		return "tight"
	case StyleLoose:
		return "loose"
	case StyleUnknown:
		return "unknown"
	}
	return fmt.Sprintf("Style(%d)", int(style))
}

// Outcome reports what a command did to the board.
type Outcome int

const (
	// Ignored: the target or board state did not allow the command
	Ignored Outcome = iota
	Applied
	// Mistake: a mine was revealed or a safe cell flagged
	Mistake
	// Rejected: attempt to remove a locked flag
	Rejected
)

func (outcome Outcome) String() string {
	switch outcome {
	case Ignored:
		return "ignored"
	case Applied:
		return "applied"
	case Mistake:
		return "mistake"
	case Rejected:
		return "rejected"
	}
	return fmt.Sprintf("Outcome(%d)", int(outcome))
}

const (
	// DefaultLabelDist is the edge label offset, in cell sizes, used when a
	// hint has no label_dist of its own.
	DefaultLabelDist = 1.25
	minLabelOffset   = 12
)
