package core

// Grid3 stores a 3D grid of integer cell states with x varying fastest.
type Grid3 struct {
	Dims
	data []int
}

// NewGrid3 allocates a grid with the given dimensions. Non-positive extents
// are raised to one.
func NewGrid3(d Dims) *Grid3 {
	if d.X <= 0 {
		d.X = 1
	}
	if d.Y <= 0 {
		d.Y = 1
	}
	if d.Z <= 0 {
		d.Z = 1
	}
	return &Grid3{Dims: d, data: make([]int, d.Volume())}
}

// Cells exposes the backing slice so callers can read/write values directly.
func (g *Grid3) Cells() []int { return g.data }

// Index returns the linear slice index for coordinates (x, y, z).
func (g *Grid3) Index(x, y, z int) int { return (z*g.Y+y)*g.X + x }

// Coords is the inverse of Index.
func (g *Grid3) Coords(idx int) (int, int, int) {
	x := idx % g.X
	y := (idx / g.X) % g.Y
	z := idx / (g.X * g.Y)
	return x, y, z
}

// At returns the state at (x, y, z).
func (g *Grid3) At(x, y, z int) int { return g.data[g.Index(x, y, z)] }

// Set stores v at (x, y, z).
func (g *Grid3) Set(x, y, z, v int) { g.data[g.Index(x, y, z)] = v }

// Wrap applies toroidal wrapping to the provided coordinates.
func (g *Grid3) Wrap(x, y, z int) (int, int, int) {
	x = (x%g.X + g.X) % g.X
	y = (y%g.Y + g.Y) % g.Y
	z = (z%g.Z + g.Z) % g.Z
	return x, y, z
}

// Contains reports whether (x, y, z) lies inside the grid.
func (g *Grid3) Contains(x, y, z int) bool {
	return x >= 0 && x < g.X && y >= 0 && y < g.Y && z >= 0 && z < g.Z
}

// Clear fills the grid with zeros.
func (g *Grid3) Clear() {
	for i := range g.data {
		g.data[i] = 0
	}
}
