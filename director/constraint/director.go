package constraint

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strings"

	"github.com/they4kman/hexfield/director/random"
	"github.com/they4kman/hexfield/game"
	"github.com/they4kman/hexfield/hexmath"
	"github.com/they4kman/hexfield/util/collections"
)

const simplifyRounds = 4

// Director deduces moves from revealed numbers and edge hints. When nothing
// is certain it opens the cell least likely to hold a mine, and failing that
// a random one.
type Director struct {
	seed   int64
	rand   *rand.Rand
	board  *game.Board
	random *random.Director

	observations []*Observation
}

// Observation states that exactly numMines of cells are mines.
type Observation struct {
	origin   string
	numMines int
	cells    collections.Set[hexmath.Axial]
}

func (observation Observation) String() string {
	cells := make([]string, 0, len(observation.cells))
	for _, pos := range sortedCells(observation.cells) {
		cells = append(cells, pos.String())
	}

	origin := observation.origin
	if origin == "" {
		origin = "?"
	}
	return fmt.Sprintf("Obs[%8s, %d ε %s]", origin, observation.numMines, strings.Join(cells, ", "))
}

func (observation Observation) MineProbability() float64 {
	return float64(observation.numMines) / float64(len(observation.cells))
}

func New(seed int64) *Director {
	return &Director{seed: seed}
}

func (director *Director) Init(board *game.Board) {
	director.board = board
	director.rand = rand.New(rand.NewSource(director.seed))
	director.random = random.New(director.seed)
	director.random.Init(board)
	director.observations = nil
}

// Act runs the first actor that finds something to do. Deliberate moves are
// applied together; guesses open a single cell.
func (director *Director) Act() bool {
	if director.board.IsGameOver() {
		return false
	}

	director.observe()
	for i := 0; i < simplifyRounds; i++ {
		director.simplifyObservations()
	}

	actors := []func() bool{
		director.actDeliberate,
		director.actLowestProbability,
		director.actRandom,
	}
	for _, actor := range actors {
		if actor() {
			return true
		}
	}
	return false
}

func (director *Director) End() {
	if director.random != nil {
		director.random.End()
	}
	director.board = nil
	director.observations = nil
}

// Observations returns what the director knows after its last step.
func (director *Director) Observations() []Observation {
	out := make([]Observation, len(director.observations))
	for i, observation := range director.observations {
		out[i] = *observation
	}
	return out
}

// observe rebuilds the observations from the board: one per revealed number
// with unknown neighbours, and one per edge hint with unknown cells on its
// line. Only locked flags are known mines; a flag that can still be removed
// may sit on a safe cell, so its cell stays unknown.
func (director *Director) observe() {
	board := director.board
	director.observations = nil

	for pos, tile := range board.Tiles() {
		if tile.State() != game.Revealed || tile.IsMine() {
			continue
		}
		if board.NumberHint(pos) == game.StyleUnknown {
			continue
		}

		observation := &Observation{
			origin:   pos.String(),
			numMines: tile.Number(),
			cells:    make(collections.Set[hexmath.Axial]),
		}
		for _, neighbor := range board.Grid().Neighbors(pos) {
			director.restrict(observation, neighbor)
		}
		director.addObservation(observation)
	}

	for i, hint := range board.EdgeHints() {
		observation := &Observation{
			origin:   fmt.Sprintf("edge %d", i),
			numMines: hint.Count,
			cells:    make(collections.Set[hexmath.Axial]),
		}
		for _, pos := range board.HelperLine(i) {
			director.restrict(observation, pos)
		}
		director.addObservation(observation)
	}
}

func (director *Director) restrict(observation *Observation, pos hexmath.Axial) {
	switch {
	case director.unknown(pos):
		observation.cells.Add(pos)
	case director.board.IsLocked(pos):
		observation.numMines--
	}
}

func (director *Director) addObservation(observation *Observation) {
	// Don't add vacuous observations
	if observation.cells.Len() == 0 {
		return
	}
	// Don't add duplicates
	for _, other := range director.observations {
		if other.cells.Equal(observation.cells) {
			return
		}
	}
	director.observations = append(director.observations, observation)
}

// simplifyObservations derives new observations from overlapping pairs. When
// one observation's cells lie within another's, the rest of the larger one
// holds the difference in mines. When they only overlap, and the larger
// one's private cells are forced to be all mines or all safe, they form an
// observation of their own.
func (director *Director) simplifyObservations() {
	current := director.observations
	for _, observation := range current {
		for _, other := range current {
			if other == observation {
				continue
			}

			shared, isSubset := observation.cells.IntersectionEx(other.cells)
			if len(shared) == 0 {
				continue
			}

			if isSubset {
				director.addObservation(&Observation{
					numMines: other.numMines - observation.numMines,
					cells:    other.cells.Difference(observation.cells),
				})
				continue
			}

			otherOnly := other.cells.Difference(shared)
			occludedMines := other.numMines - min(observation.numMines, len(shared))
			if occludedMines == len(otherOnly) {
				director.addObservation(&Observation{
					numMines: occludedMines,
					cells:    otherOnly,
				})
				continue
			}

			// Mines that observation must place in the shared cells
			sharedMines := observation.numMines - (len(observation.cells) - len(shared))
			if sharedMines > 0 && sharedMines == other.numMines {
				director.addObservation(&Observation{
					numMines: 0,
					cells:    otherOnly,
				})
			}
		}
	}
}

// actDeliberate flags every cell that must be a mine and reveals every cell
// that must be safe.
func (director *Director) actDeliberate() bool {
	flags := make(collections.Set[hexmath.Axial])
	reveals := make(collections.Set[hexmath.Axial])
	for _, observation := range director.observations {
		if observation.numMines == observation.cells.Len() {
			flags.Union(observation.cells)
		} else if observation.numMines == 0 {
			reveals.Union(observation.cells)
		}
	}

	acted := false
	for _, pos := range sortedCells(flags) {
		if director.covered(pos) {
			director.board.ToggleFlag(pos)
			acted = true
		}
	}
	for _, pos := range sortedCells(reveals) {
		if director.unknown(pos) {
			director.random.Settle(pos)
			acted = true
		}
	}
	return acted
}

// actLowestProbability opens the cell with the smallest chance of being a
// mine. A cell's chance is the highest its observations give it. Cells
// outside every observation share the density of the remaining mines, and
// are left to actRandom when that density is lower.
func (director *Director) actLowestProbability() bool {
	cellProbabilities := make(map[hexmath.Axial]float64)
	for _, observation := range director.observations {
		probability := observation.MineProbability()
		for pos := range observation.cells {
			if past, ok := cellProbabilities[pos]; !ok || probability > past {
				cellProbabilities[pos] = probability
			}
		}
	}
	if len(cellProbabilities) == 0 {
		return false
	}

	lowestProbability := math.Inf(1)
	var lowestProbabilityCells []hexmath.Axial
	for _, pos := range sortedKeys(cellProbabilities) {
		probability := cellProbabilities[pos]
		switch {
		case probability < lowestProbability:
			lowestProbability = probability
			lowestProbabilityCells = []hexmath.Axial{pos}
		case probability == lowestProbability:
			lowestProbabilityCells = append(lowestProbabilityCells, pos)
		}
	}

	if density, ok := director.unconstrainedDensity(cellProbabilities); ok && density < lowestProbability {
		return false
	}

	director.rand.Shuffle(len(lowestProbabilityCells), func(i, j int) {
		lowestProbabilityCells[i], lowestProbabilityCells[j] = lowestProbabilityCells[j], lowestProbabilityCells[i]
	})
	director.random.Settle(lowestProbabilityCells[0])
	return true
}

// unconstrainedDensity estimates the mine chance of unknown cells that no
// observation mentions.
func (director *Director) unconstrainedDensity(constrained map[hexmath.Axial]float64) (float64, bool) {
	board := director.board
	unknown, free, knownMines := 0, 0, 0
	for pos := range board.Tiles() {
		if board.IsLocked(pos) {
			knownMines++
		}
		if !director.unknown(pos) {
			continue
		}
		unknown++
		if _, ok := constrained[pos]; !ok {
			free++
		}
	}
	if free == 0 {
		return 0, false
	}
	return float64(board.TotalMines()-knownMines) / float64(unknown), true
}

func (director *Director) actRandom() bool {
	return director.random.Act()
}

func (director *Director) covered(pos hexmath.Axial) bool {
	tile, ok := director.board.Tile(pos)
	return ok && tile.State() == game.Covered
}

// unknown reports whether pos may still be either safe or a mine.
func (director *Director) unknown(pos hexmath.Axial) bool {
	return random.Unsettled(director.board, pos)
}

func sortedCells(cells collections.Set[hexmath.Axial]) []hexmath.Axial {
	out := cells.Slice()
	sortAxials(out)
	return out
}

func sortedKeys(cells map[hexmath.Axial]float64) []hexmath.Axial {
	out := make([]hexmath.Axial, 0, len(cells))
	for pos := range cells {
		out = append(out, pos)
	}
	sortAxials(out)
	return out
}

func sortAxials(cells []hexmath.Axial) {
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].R != cells[j].R {
			return cells[i].R < cells[j].R
		}
		return cells[i].Q < cells[j].Q
	})
}
