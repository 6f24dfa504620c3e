package constraint

import (
	"math/rand"
	"testing"

	"github.com/they4kman/hexfield/game"
	"github.com/they4kman/hexfield/grid"
	"github.com/they4kman/hexfield/hexmath"
	"github.com/they4kman/hexfield/util/collections"
)

func mustGrid(t *testing.T, spec grid.Spec) *grid.Grid {
	t.Helper()
	g, err := grid.Build(spec)
	if err != nil {
		t.Fatalf("grid.Build failed: %v", err)
	}
	return g
}

func TestDeducesFromNumbers(t *testing.T) {
	board := game.NewBoard(mustGrid(t, grid.Hex(2)), game.Layout{
		Mines:         game.Coords([2]int{2, 0}),
		StartRevealed: game.Coords([2]int{0, 0}),
	})

	game.Direct(board, New(1), 100)
	if !board.IsWin() || board.Mistakes() != 0 {
		t.Fatalf("win=%v mistakes=%d", board.IsWin(), board.Mistakes())
	}
}

func TestDeducesFromEdgeHints(t *testing.T) {
	board := game.NewBoard(mustGrid(t, grid.Hex(1)), game.Layout{
		Mines:         game.Coords([2]int{1, 0}, [2]int{-1, 0}),
		StartRevealed: game.Coords([2]int{0, 0}),
		EdgeHintNormal: []game.EdgeHintEntry{
			{Pos: hexmath.A(-2, 0), Dir: 0},
		},
	})

	steps := game.Direct(board, New(1), 100)
	if !board.IsWin() || board.Mistakes() != 0 {
		t.Fatalf("win=%v mistakes=%d", board.IsWin(), board.Mistakes())
	}
	if steps != 1 {
		t.Fatalf("took %d steps, want 1", steps)
	}
}

func TestUnknownNumbersAreNotObserved(t *testing.T) {
	board := game.NewBoard(mustGrid(t, grid.Hex(1)), game.Layout{
		Mines:         game.Coords([2]int{1, 0}),
		StartRevealed: game.Coords([2]int{0, 0}),
		HintUnknown:   game.Coords([2]int{0, 0}),
	})

	director := New(1)
	director.Init(board)
	defer director.End()

	director.observe()
	if n := len(director.Observations()); n != 0 {
		t.Fatalf("got %d observations, want none", n)
	}
}

func TestFlagsCountAsKnownMines(t *testing.T) {
	board := game.NewBoard(mustGrid(t, grid.Hex(1)), game.Layout{
		Mines:         game.Coords([2]int{1, 0}),
		StartRevealed: game.Coords([2]int{0, 0}),
		StartFlagged:  game.Coords([2]int{1, 0}),
	})

	director := New(1)
	director.Init(board)
	defer director.End()

	director.observe()
	observations := director.Observations()
	if len(observations) != 1 {
		t.Fatalf("got %d observations", len(observations))
	}
	if observations[0].numMines != 0 || observations[0].cells.Len() != 5 {
		t.Fatalf("observation = %v", observations[0])
	}
}

func TestRemovableFlagIsNotAMine(t *testing.T) {
	// (-1, 0) is safe but starts flagged; only (1, 0) holds a mine.
	board := game.NewBoard(mustGrid(t, grid.Hex(1)), game.Layout{
		Mines:         game.Coords([2]int{1, 0}),
		StartRevealed: game.Coords([2]int{0, 0}, [2]int{1, -1}, [2]int{0, -1}, [2]int{-1, 1}, [2]int{0, 1}),
		StartFlagged:  game.Coords([2]int{-1, 0}),
	})
	if board.IsLocked(hexmath.A(-1, 0)) {
		t.Fatalf("flag on a safe cell should be removable")
	}

	director := New(1)
	director.Init(board)
	director.observe()
	for _, observation := range director.Observations() {
		if observation.numMines < 0 {
			t.Fatalf("negative count in %v", observation)
		}
		if observation.origin == "(0, 0)" && !observation.cells.Equal(collections.NewSet(hexmath.A(1, 0), hexmath.A(-1, 0))) {
			t.Fatalf("flagged cell should stay unknown: %v", observation)
		}
	}
	director.End()

	steps := game.Direct(board, New(1), 100)
	if !board.IsWin() || board.Mistakes() != 0 {
		t.Fatalf("win=%v mistakes=%d after %d steps", board.IsWin(), board.Mistakes(), steps)
	}
	if steps != 1 {
		t.Fatalf("took %d steps, want 1", steps)
	}
}

func TestSimplifySplitsSubsets(t *testing.T) {
	a, b, c := hexmath.A(0, 0), hexmath.A(1, 0), hexmath.A(2, 0)
	director := &Director{}
	director.addObservation(&Observation{origin: "x", numMines: 1, cells: collections.NewSet(a, b)})
	director.addObservation(&Observation{origin: "y", numMines: 2, cells: collections.NewSet(a, b, c)})

	director.simplifyObservations()

	found := false
	for _, observation := range director.Observations() {
		if observation.cells.Equal(collections.NewSet(c)) {
			found = true
			if observation.numMines != 1 {
				t.Fatalf("derived %v, want one mine", observation)
			}
		}
	}
	if !found {
		t.Fatalf("no observation derived for %v: %v", c, director.Observations())
	}
}

func TestSimplifyFindsOccludedCells(t *testing.T) {
	a, b, c, d := hexmath.A(0, 0), hexmath.A(1, 0), hexmath.A(2, 0), hexmath.A(3, 0)
	director := &Director{}
	// One mine among {a, b, d}; two among {a, b, c}: c must be a mine.
	director.addObservation(&Observation{numMines: 1, cells: collections.NewSet(a, b, d)})
	director.addObservation(&Observation{numMines: 2, cells: collections.NewSet(a, b, c)})

	director.simplifyObservations()

	for _, observation := range director.Observations() {
		if observation.cells.Equal(collections.NewSet(c)) && observation.numMines == 1 {
			return
		}
	}
	t.Fatalf("c was not deduced: %v", director.Observations())
}

func TestDirectorWinsRandomBoards(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		g := mustGrid(t, grid.Hex(3))
		rng := rand.New(rand.NewSource(seed))

		var layout game.Layout
		for _, pos := range g.Cells() {
			if rng.Intn(6) == 0 {
				layout.Mines = append(layout.Mines, pos)
			}
		}
		board := game.NewBoard(g, layout)

		steps := game.Direct(board, New(seed), 1000)
		if !board.IsWin() {
			t.Fatalf("seed %d: not won after %d steps", seed, steps)
		}
	}
}
