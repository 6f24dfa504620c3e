// Package grid builds the finite set of playable cells from a declarative
// shape description.
package grid

import (
	"errors"
	"fmt"
	"sort"

	"github.com/they4kman/hexfield/hexmath"
	"github.com/they4kman/hexfield/util/collections"
)

const (
	ShapeHex           = "hex"
	ShapeRing          = "ring"
	ShapeParallelogram = "parallelogram"
)

var (
	ErrUnknownShape = errors.New("unknown shape")
	ErrMissingKey   = errors.New("missing shape key")
)

// Range is an inclusive bound on one cube axis, written [min, max].
type Range struct {
	Min, Max int
}

func (rng Range) contains(v int) bool {
	return rng.Min <= v && v <= rng.Max
}

func (rng *Range) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var pair []int
	if err := unmarshal(&pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("range must have 2 elements, got %d", len(pair))
	}
	rng.Min, rng.Max = pair[0], pair[1]
	return nil
}

func (rng Range) MarshalYAML() (interface{}, error) {
	return []int{rng.Min, rng.Max}, nil
}

// CellList is an explicit list of cells. An empty but non-nil list is
// still written out, so an explicitly empty grid survives a round trip.
type CellList []hexmath.Axial

func (cells CellList) IsZero() bool {
	return cells == nil
}

// Spec describes a board shape. When Cells is non-nil it is used verbatim
// and Shape is ignored. Include and Exclude are applied last, whatever the
// base shape. The size keys of the chosen shape are required.
type Spec struct {
	Shape  string `yaml:"shape,omitempty"`
	Radius *int   `yaml:"radius,omitempty"`

	// Ring bounds; Inner defaults to Outer-1 (never below 0)
	Inner *int `yaml:"inner,omitempty"`
	Outer *int `yaml:"outer,omitempty"`

	// Parallelogram bands on the q, r and s axes
	Q *Range `yaml:"q,omitempty"`
	R *Range `yaml:"r,omitempty"`
	S *Range `yaml:"s,omitempty"`

	Cells   CellList        `yaml:"cells,omitempty"`
	Include []hexmath.Axial `yaml:"include,omitempty"`
	Exclude []hexmath.Axial `yaml:"exclude,omitempty"`
}

func Hex(radius int) Spec {
	return Spec{Shape: ShapeHex, Radius: &radius}
}

func Ring(inner, outer int) Spec {
	return Spec{Shape: ShapeRing, Inner: &inner, Outer: &outer}
}

func Parallelogram(q, r, s Range) Spec {
	return Spec{Shape: ShapeParallelogram, Q: &q, R: &r, S: &s}
}

func Explicit(cells ...hexmath.Axial) Spec {
	return Spec{Cells: append(CellList{}, cells...)}
}

// Grid is an immutable set of playable coordinates.
type Grid struct {
	cells collections.Set[hexmath.Axial]
	order []hexmath.Axial
}

// Build constructs the grid described by spec. An unrecognised shape name is
// reported as ErrUnknownShape, and a missing size key as ErrMissingKey.
func Build(spec Spec) (*Grid, error) {
	var cells collections.Set[hexmath.Axial]

	if spec.Cells != nil {
		cells = collections.NewSet(spec.Cells...)
	} else {
		switch spec.Shape {
		case ShapeHex, "":
			if spec.Radius == nil {
				return nil, missingKey(ShapeHex, "radius")
			}
			cells = hexCells(*spec.Radius)
		case ShapeRing:
			if spec.Outer == nil {
				return nil, missingKey(ShapeRing, "outer")
			}
			outer := *spec.Outer
			inner := max(0, outer-1)
			if spec.Inner != nil {
				inner = *spec.Inner
			}
			cells = make(collections.Set[hexmath.Axial])
			for cell := range hexCells(outer) {
				if d := cell.Len(); inner <= d && d <= outer {
					cells.Add(cell)
				}
			}
		case ShapeParallelogram:
			for i, rng := range []*Range{spec.Q, spec.R, spec.S} {
				if rng == nil {
					return nil, missingKey(ShapeParallelogram, []string{"q", "r", "s"}[i])
				}
			}
			cells = make(collections.Set[hexmath.Axial])
			for q := spec.Q.Min; q <= spec.Q.Max; q++ {
				for r := spec.R.Min; r <= spec.R.Max; r++ {
					if spec.S.contains(-q - r) {
						cells.Add(hexmath.A(q, r))
					}
				}
			}
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownShape, spec.Shape)
		}
	}

	cells.Union(collections.NewSet(spec.Include...))
	cells.Subtract(collections.NewSet(spec.Exclude...))

	return newGrid(cells), nil
}

func missingKey(shape, key string) error {
	return fmt.Errorf("%w: %s needs %q", ErrMissingKey, shape, key)
}

func newGrid(cells collections.Set[hexmath.Axial]) *Grid {
	order := cells.Slice()
	sort.Slice(order, func(i, j int) bool {
		if order[i].R != order[j].R {
			return order[i].R < order[j].R
		}
		return order[i].Q < order[j].Q
	})
	return &Grid{cells: cells, order: order}
}

func hexCells(radius int) collections.Set[hexmath.Axial] {
	cells := make(collections.Set[hexmath.Axial])
	for q := -radius; q <= radius; q++ {
		for r := -radius; r <= radius; r++ {
			if -radius <= q+r && q+r <= radius {
				cells.Add(hexmath.A(q, r))
			}
		}
	}
	return cells
}

func (grid *Grid) Contains(pos hexmath.Axial) bool {
	return grid.cells.Contains(pos)
}

func (grid *Grid) Len() int {
	return len(grid.order)
}

// Cells returns every coordinate, ordered by r then q.
func (grid *Grid) Cells() []hexmath.Axial {
	return append([]hexmath.Axial(nil), grid.order...)
}

// Neighbors returns the in-grid cells adjacent to pos, in direction order.
func (grid *Grid) Neighbors(pos hexmath.Axial) []hexmath.Axial {
	neighbors := make([]hexmath.Axial, 0, len(hexmath.Directions))
	for _, d := range hexmath.Directions {
		if n := pos.Add(d); grid.Contains(n) {
			neighbors = append(neighbors, n)
		}
	}
	return neighbors
}

// Bounds returns the min and max q and r over all cells.
func (grid *Grid) Bounds() (lo, hi hexmath.Axial) {
	if len(grid.order) == 0 {
		return
	}
	lo, hi = grid.order[0], grid.order[0]
	for _, cell := range grid.order[1:] {
		lo.Q, hi.Q = min(lo.Q, cell.Q), max(hi.Q, cell.Q)
		lo.R, hi.R = min(lo.R, cell.R), max(hi.R, cell.R)
	}
	return
}
