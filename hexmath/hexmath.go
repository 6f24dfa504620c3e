// Package hexmath holds the flat-top hexagon coordinate system: axial and
// cube coordinates, pixel conversions and corner geometry.
package hexmath

import (
	"fmt"
	"math"

	"github.com/faiface/pixel"
)

var sqrt3 = math.Sqrt(3)

// Axial is a (q, r) hex coordinate. It is the key identifying a cell.
type Axial struct {
	Q, R int
}

// Cube is the three-axis form of a coordinate, with X+Y+Z == 0.
type Cube struct {
	X, Y, Z int
}

// Directions are the six unit steps, indexed by direction number.
var Directions = [6]Axial{
	{1, 0}, {1, -1}, {0, -1},
	{-1, 0}, {-1, 1}, {0, 1},
}

func A(q, r int) Axial {
	return Axial{Q: q, R: r}
}

func (a Axial) String() string {
	return fmt.Sprintf("(%d, %d)", a.Q, a.R)
}

// S returns the derived third cube coordinate.
func (a Axial) S() int {
	return -a.Q - a.R
}

func (a Axial) Add(other Axial) Axial {
	return Axial{a.Q + other.Q, a.R + other.R}
}

// Neighbor returns the adjacent coordinate in direction dir.
func (a Axial) Neighbor(dir int) Axial {
	return a.Add(Direction(dir))
}

// Len is the cube distance from the origin, i.e. the ring index.
func (a Axial) Len() int {
	return max(abs(a.Q), abs(a.R), abs(a.S()))
}

func (a Axial) Cube() Cube {
	return Cube{X: a.Q, Y: -a.Q - a.R, Z: a.R}
}

func (c Cube) Axial() Axial {
	return Axial{Q: c.X, R: c.Z}
}

// Direction returns the unit step for dir, wrapping any integer onto 0..5.
func Direction(dir int) Axial {
	return Directions[((dir%6)+6)%6]
}

// Distance is the cube distance between a and b.
func Distance(a, b Axial) int {
	return Axial{a.Q - b.Q, a.R - b.R}.Len()
}

// AxialToPixel maps a coordinate to the centre of its hexagon, relative to
// the origin cell's centre. size is the circumradius.
func AxialToPixel(a Axial, size float64) pixel.Vec {
	q, r := float64(a.Q), float64(a.R)
	return pixel.V(
		size*1.5*q,
		size*sqrt3*(r+q*0.5),
	)
}

// PixelToAxial returns the cell whose hexagon contains p.
func PixelToAxial(p pixel.Vec, size float64) Axial {
	q := (2.0 / 3.0 * p.X) / size
	r := (-1.0/3.0*p.X + sqrt3/3.0*p.Y) / size
	return CubeRound(q, -q-r, r).Axial()
}

// CubeRound rounds fractional cube coordinates to the nearest lattice cell.
// The axis with the largest rounding error is rebuilt from the other two so
// that the result always sums to zero.
func CubeRound(x, y, z float64) Cube {
	rx, ry, rz := math.Round(x), math.Round(y), math.Round(z)
	dx, dy, dz := math.Abs(rx-x), math.Abs(ry-y), math.Abs(rz-z)

	switch {
	case dx > dy && dx > dz:
		rx = -ry - rz
	case dy > dz:
		ry = -rx - rz
	default:
		rz = -rx - ry
	}
	return Cube{X: int(rx), Y: int(ry), Z: int(rz)}
}

// HexCorners returns the vertices of a flat-top hexagon, starting at 0
// degrees and stepping by 60.
func HexCorners(center pixel.Vec, size float64) [6]pixel.Vec {
	var corners [6]pixel.Vec
	for i := range corners {
		angle := float64(i) * math.Pi / 3
		corners[i] = center.Add(pixel.Unit(angle).Scaled(size))
	}
	return corners
}

// DirectionVec is the pixel offset between neighbouring cell centres in
// direction dir.
func DirectionVec(dir int, size float64) pixel.Vec {
	return AxialToPixel(Direction(dir), size).Sub(AxialToPixel(Axial{}, size))
}

// UnmarshalYAML reads a coordinate written as a two element list, [q, r].
func (a *Axial) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var pair []int
	if err := unmarshal(&pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("coordinate must have 2 elements, got %d", len(pair))
	}
	a.Q, a.R = pair[0], pair[1]
	return nil
}

func (a Axial) MarshalYAML() (interface{}, error) {
	return []int{a.Q, a.R}, nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
