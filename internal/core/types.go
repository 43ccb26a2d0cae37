package core

import (
	"fmt"
	"math"
)

// Dims describes the extent of a 3D board.
type Dims struct {
	X int
	Y int
	Z int
}

// Volume returns the number of lattice points X*Y*Z.
func (d Dims) Volume() int { return d.X * d.Y * d.Z }

// String formats the dimensions the way board headers spell them.
func (d Dims) String() string { return fmt.Sprintf("%dx%dx%d", d.X, d.Y, d.Z) }

// ViewIndex returns the flat state index the viewer reads for lattice point
// (i, j, k). The formula mixes X and Y asymmetrically and is only a proper
// bijection onto [0, Volume) when X == Y; boards produced with X != Y can
// yield indices outside the state slice.
func (d Dims) ViewIndex(i, j, k int) int {
	return ((k*d.X)+j)*d.Y + i
}

// Vec3i is an integer lattice coordinate.
type Vec3i struct {
	X, Y, Z int
}

// Vec3 is a point or direction in scene space.
type Vec3 struct {
	X, Y, Z float64
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Scale returns v scaled by s.
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Dot returns the dot product.
func (v Vec3) Dot(o Vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

// Cross returns the cross product v x o.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

// Len returns the Euclidean length.
func (v Vec3) Len() float64 { return math.Sqrt(v.Dot(v)) }

// Normalize returns v scaled to unit length. The zero vector is returned as is.
func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

// Float converts the lattice coordinate into scene space.
func (p Vec3i) Float() Vec3 { return Vec3{float64(p.X), float64(p.Y), float64(p.Z)} }
