package grain

import (
	"slices"
	"testing"

	"voxca/internal/core"
)

func smallConfig() Config {
	cfg := DefaultConfig()
	cfg.Dims = core.Dims{X: 6, Y: 5, Z: 4}
	cfg.Seeds = 4
	return cfg
}

func TestGrowFillsBoard(t *testing.T) {
	for _, nb := range []string{Moore, VonNeumann} {
		for _, periodic := range []bool{false, true} {
			cfg := smallConfig()
			cfg.Neighbourhood = nb
			cfg.Periodic = periodic

			a := New(cfg)
			a.Reset(11)
			if steps := a.Grow(nil); steps == 0 {
				t.Fatalf("%s periodic=%v: no growth steps", nb, periodic)
			}
			for i, s := range a.Cells() {
				if s < 1 || s > a.Grains() {
					t.Fatalf("%s periodic=%v: cell %d has state %d after growth", nb, periodic, i, s)
				}
			}
		}
	}
}

func TestResetDeterministic(t *testing.T) {
	a := New(smallConfig())
	a.Reset(5)
	a.Grow(nil)
	first := append([]int(nil), a.Cells()...)

	a.Reset(5)
	a.Grow(nil)
	if !slices.Equal(first, a.Cells()) {
		t.Fatal("Reset with the same seed must reproduce the board")
	}
}

func TestNoSeedsStops(t *testing.T) {
	cfg := smallConfig()
	cfg.Seeds = 0
	a := New(cfg)
	a.Reset(1)
	if steps := a.Grow(nil); steps != 0 {
		t.Fatalf("empty board grew for %d steps", steps)
	}
}

func TestNeighbourCounts(t *testing.T) {
	cfg := smallConfig()
	a := New(cfg)
	corner := a.grid.Index(0, 0, 0)
	if n := a.offsets[corner+1] - a.offsets[corner]; n != 7 {
		t.Fatalf("Moore corner neighbours = %d, want 7", n)
	}

	cfg.Periodic = true
	cfg.Neighbourhood = VonNeumann
	a = New(cfg)
	if n := a.offsets[corner+1] - a.offsets[corner]; n != 6 {
		t.Fatalf("periodic von Neumann neighbours = %d, want 6", n)
	}
}

func TestMonteCarloKeepsExistingGrains(t *testing.T) {
	a := New(smallConfig())
	a.Reset(3)
	a.Grow(nil)
	before := make(map[int]bool)
	for _, s := range a.Cells() {
		before[s] = true
	}
	for i := 0; i < 5; i++ {
		a.MonteCarlo(0.6)
	}
	for i, s := range a.Cells() {
		if !before[s] {
			t.Fatalf("cell %d took unknown grain %d", i, s)
		}
	}
}

func TestBoardLayoutIsXMajor(t *testing.T) {
	cfg := smallConfig()
	cfg.Seeds = 0
	a := New(cfg)
	a.grid.Set(1, 2, 3, 9)
	b := a.Board()
	if b.Dims != cfg.Dims {
		t.Fatalf("dims = %v", b.Dims)
	}
	want := (1*cfg.Dims.Y+2)*cfg.Dims.Z + 3
	if b.States[want] != 9 {
		t.Fatalf("state for (1,2,3) not at flat index %d", want)
	}
}

func TestFromFields(t *testing.T) {
	cfg, warnings := FromFields([]core.Field{
		{Key: "x_size", Value: "20"},
		{Key: "y_size", Value: "0"},
		{Key: "periodic", Value: "yes"},
		{Key: "method", Value: "VonNeumann"},
		{Key: "MC_kt", Value: "1.5"},
		{Key: "MC_iterations", Value: "7"},
		{Key: "random_seeds", Value: "3"},
		{Key: "seed", Value: "99"},
		{Key: "colour", Value: "red"},
	})
	if cfg.Dims != (core.Dims{X: 20, Y: 10, Z: 10}) {
		t.Fatalf("dims = %v", cfg.Dims)
	}
	if !cfg.Periodic || cfg.Neighbourhood != VonNeumann || cfg.MCKt != 1.5 || cfg.MCIterations != 7 || cfg.Seeds != 3 {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if !cfg.HasSeed || cfg.Seed != 99 {
		t.Fatalf("seed not applied: %+v", cfg)
	}
	if len(warnings) != 2 {
		t.Fatalf("warnings = %v, want 2", warnings)
	}
}
