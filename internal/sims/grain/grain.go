// Package grain implements a 3D grain growth cellular automaton with Monte
// Carlo boundary smoothing. It is the reference simulator behind
// cmd/grainsim.
package grain

import (
	"math"

	"voxca/internal/board"
	"voxca/internal/core"
)

// Automaton holds the board. State 0 is empty; grains are numbered from 1.
type Automaton struct {
	cfg  Config
	grid *core.Grid3
	prev []int

	// neighbours[offsets[i]:offsets[i+1]] are the cell indices adjacent to i.
	neighbours []int32
	offsets    []int32

	rng   *core.RNG
	seeds int
}

// New builds an empty automaton and precomputes the neighbourhood of every
// cell.
func New(cfg Config) *Automaton {
	a := &Automaton{cfg: cfg, grid: core.NewGrid3(cfg.Dims)}
	a.cfg.Dims = a.grid.Dims
	a.prev = make([]int, len(a.grid.Cells()))
	a.buildNeighbours()
	a.rng = core.NewRNG(cfg.Seed)
	return a
}

func (a *Automaton) buildNeighbours() {
	g := a.grid
	n := len(g.Cells())
	a.offsets = make([]int32, 0, n+1)
	a.offsets = append(a.offsets, 0)
	for idx := 0; idx < n; idx++ {
		x, y, z := g.Coords(idx)
		for dz := -1; dz <= 1; dz++ {
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if dx == 0 && dy == 0 && dz == 0 {
						continue
					}
					if a.cfg.Neighbourhood == VonNeumann && abs(dx)+abs(dy)+abs(dz) != 1 {
						continue
					}
					nx, ny, nz := x+dx, y+dy, z+dz
					if a.cfg.Periodic {
						nx, ny, nz = g.Wrap(nx, ny, nz)
					} else if !g.Contains(nx, ny, nz) {
						continue
					}
					a.neighbours = append(a.neighbours, int32(g.Index(nx, ny, nz)))
				}
			}
		}
		a.offsets = append(a.offsets, int32(len(a.neighbours)))
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Dims returns the board extent.
func (a *Automaton) Dims() core.Dims { return a.grid.Dims }

// Cells exposes the current states.
func (a *Automaton) Cells() []int { return a.grid.Cells() }

// Grains returns how many grains were seeded.
func (a *Automaton) Grains() int { return a.seeds }

// Reset clears the board and drops cfg.Seeds grains at random cells. Two
// seeds landing on one cell leave the later grain number in place.
func (a *Automaton) Reset(seed int64) {
	a.rng = core.NewRNG(seed)
	a.grid.Clear()
	a.seeds = 0
	cells := a.grid.Cells()
	for i := 0; i < a.cfg.Seeds; i++ {
		a.seeds++
		cells[a.rng.IntN(len(cells))] = a.seeds
	}
}

// Step fills every empty cell that has grown neighbours with the most common
// neighbouring grain, lowest grain number winning ties. It reports whether
// any cell changed.
func (a *Automaton) Step() bool {
	cells := a.grid.Cells()
	copy(a.prev, cells)
	changed := false
	var counts []stateCount
	for idx, s := range a.prev {
		if s != 0 {
			continue
		}
		counts = counts[:0]
		for _, n := range a.neighbours[a.offsets[idx]:a.offsets[idx+1]] {
			if v := a.prev[n]; v != 0 {
				counts = bump(counts, v)
			}
		}
		if best := dominant(counts); best != 0 {
			cells[idx] = best
			changed = true
		}
	}
	return changed
}

type stateCount struct {
	state int
	n     int
}

func bump(counts []stateCount, state int) []stateCount {
	for i := range counts {
		if counts[i].state == state {
			counts[i].n++
			return counts
		}
	}
	return append(counts, stateCount{state: state, n: 1})
}

func dominant(counts []stateCount) int {
	best := stateCount{}
	for _, c := range counts {
		if c.n > best.n || (c.n == best.n && c.state < best.state) {
			best = c
		}
	}
	return best.state
}

// Grow steps until no cell changes and calls tick after every step with the
// step number. It returns the number of steps taken.
func (a *Automaton) Grow(tick func(step int)) int {
	steps := 0
	for a.Step() {
		steps++
		if tick != nil {
			tick(steps)
		}
	}
	return steps
}

// MonteCarlo performs one sweep: every cell, in random order, tries to
// adopt a random neighbour's grain. Moves that lower the boundary energy are
// accepted; others with probability exp(-dE/kt).
func (a *Automaton) MonteCarlo(kt float64) {
	cells := a.grid.Cells()
	order := a.rng.Source().Perm(len(cells))
	for _, idx := range order {
		nbrs := a.neighbours[a.offsets[idx]:a.offsets[idx+1]]
		if len(nbrs) == 0 {
			continue
		}
		cur := cells[idx]
		cand := cells[nbrs[a.rng.IntN(len(nbrs))]]
		if cand == cur {
			continue
		}
		before, after := 0, 0
		for _, n := range nbrs {
			if cells[n] != cur {
				before++
			}
			if cells[n] != cand {
				after++
			}
		}
		dE := after - before
		if dE <= 0 || (kt > 0 && a.rng.Float64() < math.Exp(-float64(dE)/kt)) {
			cells[idx] = cand
		}
	}
}

// Board returns the states laid out x-major: x outermost, then y, then z.
func (a *Automaton) Board() *board.Board {
	d := a.grid.Dims
	states := make([]int, 0, d.Volume())
	for x := 0; x < d.X; x++ {
		for y := 0; y < d.Y; y++ {
			for z := 0; z < d.Z; z++ {
				states = append(states, a.grid.At(x, y, z))
			}
		}
	}
	return &board.Board{Dims: d, States: states}
}
