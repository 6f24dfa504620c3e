package game

import (
	"math"
	"reflect"
	"testing"

	"github.com/faiface/pixel"
	"github.com/they4kman/hexfield/grid"
	"github.com/they4kman/hexfield/hexmath"
)

func edgeBoard(t *testing.T) *Board {
	layout := Layout{
		Blocked: Coords([2]int{1, 0}),
		Mines:   Coords([2]int{-2, 0}, [2]int{0, 0}, [2]int{1, 0}, [2]int{0, 2}),
		EdgeHintNormal: []EdgeHintEntry{
			{Pos: hexmath.A(-3, 0), Dir: 0},
			{Pos: hexmath.A(0, 0), Dir: 0},
		},
		EdgeHintTight: []EdgeHintEntry{
			{Pos: hexmath.A(0, -3), Dir: 5},
		},
		EdgeHintLoose: []EdgeHintEntry{
			{Pos: hexmath.A(5, 5), Dir: 0},
			{Pos: hexmath.A(3, 0), Dir: -3},
		},
	}
	return NewBoard(mustGrid(t, grid.Hex(2)), layout)
}

func TestEdgeHintCounts(t *testing.T) {
	board := edgeBoard(t)
	hints := board.EdgeHints()

	cases := []struct {
		name  string
		count int
		style Style
		dir   int
	}{
		{"anchor outside steps in", 2, StyleNormal, 0},
		{"anchor inside", 1, StyleNormal, 0},
		{"column through the centre", 2, StyleTight, 5},
		{"ray that misses the grid", 0, StyleLoose, 0},
		{"negative direction wraps", 2, StyleLoose, 3},
	}
	if len(hints) != len(cases) {
		t.Fatalf("got %d hints, want %d", len(hints), len(cases))
	}
	for i, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			hint := hints[i]
			if hint.Count != tc.count || hint.Style != tc.style || hint.Dir != tc.dir {
				t.Fatalf("hint = %+v, want count %d style %v dir %d", hint, tc.count, tc.style, tc.dir)
			}
		})
	}
}

func TestHelperLineSkipsBlocked(t *testing.T) {
	board := edgeBoard(t)

	want := Coords([2]int{-2, 0}, [2]int{-1, 0}, [2]int{0, 0}, [2]int{2, 0})
	if got := board.HelperLine(0); !reflect.DeepEqual(got, want) {
		t.Fatalf("HelperLine = %v, want %v", got, want)
	}
	if board.HelperLine(99) != nil {
		t.Fatalf("out of range helper line should be nil")
	}
}

func TestEdgeHintTogglesLeaveCountAlone(t *testing.T) {
	board := edgeBoard(t)

	if !board.ToggleHelper(0) || !board.ToggleDimmed(0) {
		t.Fatalf("toggles on a valid hint should succeed")
	}
	hint := board.EdgeHints()[0]
	if !hint.HelperOn || !hint.Dimmed || hint.Count != 2 {
		t.Fatalf("hint = %+v", hint)
	}
	board.ToggleHelper(0)
	if board.EdgeHints()[0].HelperOn {
		t.Fatalf("second toggle should turn the helper off")
	}
	if board.ToggleHelper(-1) || board.SetDimmed(5, true) {
		t.Fatalf("toggles out of range should report false")
	}

	// Mutating the returned copy does not reach the board.
	hints := board.EdgeHints()
	hints[1].Count = 42
	if board.EdgeHints()[1].Count != 1 {
		t.Fatalf("EdgeHints leaked internal state")
	}
}

func TestLabels(t *testing.T) {
	layout := Layout{
		Mines:       Coords([2]int{1, 0}, [2]int{1, -1}),
		HintTight:   Coords([2]int{0, 0}),
		HintLoose:   Coords([2]int{0, -1}),
		HintUnknown: Coords([2]int{-1, 1}),
		EdgeHintTight: []EdgeHintEntry{
			{Pos: hexmath.A(-2, 0), Dir: 0},
		},
	}
	board := NewBoard(mustGrid(t, grid.Hex(1)), layout)

	if board.NumberLabel(hexmath.A(0, 0)) != "" {
		t.Fatalf("covered cells have no label")
	}
	for _, pos := range Coords([2]int{0, 0}, [2]int{0, -1}, [2]int{-1, 1}, [2]int{0, 1}, [2]int{-1, 0}) {
		board.Reveal(pos)
	}

	cases := []struct {
		pos  hexmath.Axial
		want string
	}{
		{hexmath.A(0, 0), "{2}"},
		{hexmath.A(0, -1), "-1-"},
		{hexmath.A(-1, 1), "?"},
		{hexmath.A(0, 1), "1"},
		{hexmath.A(-1, 0), ""},
		{hexmath.A(1, 0), ""},
	}
	for _, tc := range cases {
		if got := board.NumberLabel(tc.pos); got != tc.want {
			t.Fatalf("NumberLabel(%v) = %q, want %q", tc.pos, got, tc.want)
		}
	}

	if got := board.EdgeHints()[0].Label(); got != "{1}" {
		t.Fatalf("edge label = %q, want {1}", got)
	}
	if got := (EdgeHint{Count: 3, Style: StyleLoose}).Label(); got != "-3-" {
		t.Fatalf("loose edge label = %q", got)
	}
}

func TestEdgeLabelPlacement(t *testing.T) {
	const size = 20.0
	dist := 2.0
	angle := 15.0
	labelDir := 1
	layout := Layout{
		EdgeHintNormal: []EdgeHintEntry{
			{Pos: hexmath.A(-2, 0), Dir: 0},
			{Pos: hexmath.A(-2, 0), Dir: 0, LabelPos: &hexmath.Axial{Q: 0, R: 0}, LabelDir: &labelDir, LabelDist: &dist, LabelAngle: &angle},
			{Pos: hexmath.A(0, -2), Dir: 5},
		},
	}
	board := NewBoard(mustGrid(t, grid.Hex(1)), layout)

	// Default: outside (-1, 0), away from the ray, 1.25 cells out.
	center, ok := board.EdgeLabelCenter(0, size)
	if !ok {
		t.Fatalf("EdgeLabelCenter(0) not found")
	}
	first := hexmath.AxialToPixel(hexmath.A(-1, 0), size)
	if d := center.Sub(first).Len(); math.Abs(d-25) > 1e-9 {
		t.Fatalf("label offset = %v, want 25", d)
	}
	if center.X >= first.X {
		t.Fatalf("label should sit on the outside of the ray, got %v vs %v", center, first)
	}

	center, _ = board.EdgeLabelCenter(1, size)
	want := pixel.ZV.Add(hexmath.DirectionVec(1, size).Unit().Scaled(40))
	if center.Sub(want).Len() > 1e-9 {
		t.Fatalf("overridden label at %v, want %v", center, want)
	}
	if got := board.EdgeLabelAngle(1, size); got != 15 {
		t.Fatalf("overridden angle = %v", got)
	}

	if got := board.EdgeLabelAngle(0, size); math.Abs(got-(-30)) > 1e-9 {
		t.Fatalf("default angle for dir 0 = %v, want -30", got)
	}
	if got := board.EdgeLabelAngle(2, size); math.Abs(math.Abs(got)-90) > 1e-9 {
		t.Fatalf("default angle for dir 5 = %v, want +-90", got)
	}

	if _, ok := board.EdgeLabelCenter(7, size); ok {
		t.Fatalf("out of range label found")
	}

	// A tiny size falls back to the minimum offset.
	small, _ := board.EdgeLabelCenter(0, 4)
	if d := small.Sub(hexmath.AxialToPixel(hexmath.A(-1, 0), 4)).Len(); math.Abs(d-12) > 1e-9 {
		t.Fatalf("minimum offset = %v, want 12", d)
	}
}

func TestEdgeHintAt(t *testing.T) {
	const size = 20.0
	layout := Layout{
		EdgeHintNormal: []EdgeHintEntry{
			{Pos: hexmath.A(-2, 0), Dir: 0},
			{Pos: hexmath.A(2, 0), Dir: 3},
		},
	}
	board := NewBoard(mustGrid(t, grid.Hex(1)), layout)

	center, _ := board.EdgeLabelCenter(1, size)
	i, ok := board.EdgeHintAt(center.Add(pixel.V(3, -3)), size, 10)
	if !ok || i != 1 {
		t.Fatalf("EdgeHintAt = %d, %v, want 1", i, ok)
	}
	if _, ok := board.EdgeHintAt(pixel.ZV, size, 10); ok {
		t.Fatalf("no label at the board centre")
	}
}
