// Package region implements axis-aligned cuboid regions of a world, measured in blocks.
package region

import (
	"fmt"
	"iter"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// BlockPos is the position of a block in a world.
type BlockPos [3]int

// Vec3 returns the position of the lower corner of the block.
func (p BlockPos) Vec3() mgl64.Vec3 {
	return mgl64.Vec3{float64(p[0]), float64(p[1]), float64(p[2])}
}

// Direction is a direction in which a Cuboid may be grown, shrunk or shifted.
type Direction uint8

const (
	North Direction = iota
	East
	South
	West
	Up
	Down
	Horizontal
	Vertical
	Both
)

// Opposite returns the opposite of the direction. Horizontal and Vertical are each other's opposite and
// Both is its own opposite.
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case East:
		return West
	case South:
		return North
	case West:
		return East
	case Up:
		return Down
	case Down:
		return Up
	case Horizontal:
		return Vertical
	case Vertical:
		return Horizontal
	}
	return Both
}

// String implements fmt.Stringer.
func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	case Up:
		return "up"
	case Down:
		return "down"
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	case Both:
		return "both"
	}
	return fmt.Sprintf("Direction(%d)", uint8(d))
}

// Cuboid is an axis-aligned box of blocks in a world. Both corners are inclusive. The zero value is a
// single block at the origin of an unnamed world.
type Cuboid struct {
	world    string
	min, max mgl64.Vec3
}

// New returns the Cuboid in the world passed spanning the two corners a and b, in any order.
func New(world string, a, b mgl64.Vec3) Cuboid {
	return Cuboid{
		world: world,
		min:   mgl64.Vec3{math.Min(a[0], b[0]), math.Min(a[1], b[1]), math.Min(a[2], b[2])},
		max:   mgl64.Vec3{math.Max(a[0], b[0]), math.Max(a[1], b[1]), math.Max(a[2], b[2])},
	}
}

// World returns the name of the world of the Cuboid.
func (c Cuboid) World() string {
	return c.world
}

// Min returns the lower corner of the Cuboid.
func (c Cuboid) Min() mgl64.Vec3 {
	return c.min
}

// Max returns the upper corner of the Cuboid.
func (c Cuboid) Max() mgl64.Vec3 {
	return c.max
}

// Size returns the amount of blocks the Cuboid spans along each axis.
func (c Cuboid) Size() mgl64.Vec3 {
	return c.max.Sub(c.min).Add(mgl64.Vec3{1, 1, 1})
}

// Volume returns the amount of blocks in the Cuboid.
func (c Cuboid) Volume() float64 {
	s := c.Size()
	return s[0] * s[1] * s[2]
}

// Center returns the point halfway between the corners of the Cuboid.
func (c Cuboid) Center() mgl64.Vec3 {
	return c.min.Add(c.max).Mul(0.5)
}

// Contains checks if the block at the position passed lies in the Cuboid.
func (c Cuboid) Contains(pos BlockPos) bool {
	v := pos.Vec3()
	return v[0] >= c.min[0] && v[0] <= c.max[0] &&
		v[1] >= c.min[1] && v[1] <= c.max[1] &&
		v[2] >= c.min[2] && v[2] <= c.max[2]
}

// ContainsPoint checks if the block holding the point passed, in the world passed, lies in the Cuboid.
func (c Cuboid) ContainsPoint(world string, p mgl64.Vec3) bool {
	if world != c.world {
		return false
	}
	return c.Contains(BlockPos{int(math.Floor(p[0])), int(math.Floor(p[1])), int(math.Floor(p[2]))})
}

// Expand returns the Cuboid grown by n blocks in one of the directions North, East, South, West, Up or
// Down. A negative n shrinks the Cuboid. Expand panics for any other direction.
func (c Cuboid) Expand(d Direction, n int) Cuboid {
	f := float64(n)
	lo, hi := c.min, c.max
	switch d {
	case North:
		lo[0] -= f
	case South:
		hi[0] += f
	case East:
		lo[2] -= f
	case West:
		hi[2] += f
	case Down:
		lo[1] -= f
	case Up:
		hi[1] += f
	default:
		panic(fmt.Sprintf("region: cannot expand cuboid %v", d))
	}
	return New(c.world, lo, hi)
}

// Shift returns the Cuboid moved n blocks in one of the directions North, East, South, West, Up or Down.
func (c Cuboid) Shift(d Direction, n int) Cuboid {
	return c.Expand(d, n).Expand(d.Opposite(), -n)
}

// Outset returns the Cuboid grown by n blocks on every side in the direction Horizontal, Vertical or
// Both. Outset panics for any other direction.
func (c Cuboid) Outset(d Direction, n int) Cuboid {
	switch d {
	case Horizontal:
		return c.Expand(North, n).Expand(South, n).Expand(East, n).Expand(West, n)
	case Vertical:
		return c.Expand(Down, n).Expand(Up, n)
	case Both:
		return c.Outset(Horizontal, n).Outset(Vertical, n)
	}
	panic(fmt.Sprintf("region: cannot outset cuboid %v", d))
}

// Inset returns the Cuboid shrunk by n blocks on every side in the direction Horizontal, Vertical or
// Both.
func (c Cuboid) Inset(d Direction, n int) Cuboid {
	return c.Outset(d, -n)
}

// Bounding returns the smallest Cuboid holding both c and o. The world of c is kept.
func (c Cuboid) Bounding(o Cuboid) Cuboid {
	lo := mgl64.Vec3{math.Min(c.min[0], o.min[0]), math.Min(c.min[1], o.min[1]), math.Min(c.min[2], o.min[2])}
	hi := mgl64.Vec3{math.Max(c.max[0], o.max[0]), math.Max(c.max[1], o.max[1]), math.Max(c.max[2], o.max[2])}
	return New(c.world, lo, hi)
}

// ShortestSquaredDistance returns the squared distance from p to the nearest face of the Cuboid. It is 0
// for points inside the Cuboid. ok is false if world is not the world of the Cuboid.
func (c Cuboid) ShortestSquaredDistance(world string, p mgl64.Vec3) (dist float64, ok bool) {
	if world != c.world {
		return 0, false
	}
	var d mgl64.Vec3
	for i := range 3 {
		switch {
		case p[i] < c.min[i]:
			d[i] = c.min[i] - p[i]
		case p[i] > c.max[i]:
			d[i] = p[i] - c.max[i]
		}
	}
	return d.Dot(d), true
}

// ShortestDistance returns the distance from p to the nearest face of the Cuboid.
func (c Cuboid) ShortestDistance(world string, p mgl64.Vec3) (dist float64, ok bool) {
	sq, ok := c.ShortestSquaredDistance(world, p)
	return math.Sqrt(sq), ok
}

// InRange checks if p lies within r blocks of the Cuboid.
func (c Cuboid) InRange(world string, p mgl64.Vec3, r float64) bool {
	sq, ok := c.ShortestSquaredDistance(world, p)
	return ok && sq <= r*r
}

// Corners returns the blocks at the eight corners of the Cuboid.
func (c Cuboid) Corners() [8]BlockPos {
	var res [8]BlockPos
	i := 0
	for _, x := range []float64{c.min[0], c.max[0]} {
		for _, y := range []float64{c.min[1], c.max[1]} {
			for _, z := range []float64{c.min[2], c.max[2]} {
				res[i] = BlockPos{int(x), int(y), int(z)}
				i++
			}
		}
	}
	return res
}

// Blocks returns an iterator over the positions of all blocks in the Cuboid. X changes fastest, then Y,
// then Z.
func (c Cuboid) Blocks() iter.Seq[BlockPos] {
	lo, hi := BlockPos{int(c.min[0]), int(c.min[1]), int(c.min[2])}, BlockPos{int(c.max[0]), int(c.max[1]), int(c.max[2])}
	return func(yield func(BlockPos) bool) {
		for z := lo[2]; z <= hi[2]; z++ {
			for y := lo[1]; y <= hi[1]; y++ {
				for x := lo[0]; x <= hi[0]; x++ {
					if !yield(BlockPos{x, y, z}) {
						return
					}
				}
			}
		}
	}
}

// String implements fmt.Stringer.
func (c Cuboid) String() string {
	return fmt.Sprintf("Cuboid(%s, %v..%v)", c.world, c.min, c.max)
}
