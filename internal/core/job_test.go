package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestNewConfigJobDropsEmptyKeysAndMergesRepeats(t *testing.T) {
	job := NewConfigJob([]Field{
		{Key: FieldXSize, Value: "4"},
		{Key: "", Value: "submit"},
		{Key: FieldYSize, Value: "5"},
		{Key: FieldXSize, Value: "6"},
	})

	want := []Field{
		{Key: FieldXSize, Value: "6"},
		{Key: FieldYSize, Value: "5"},
	}
	if diff := cmp.Diff(want, job.Fields); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
	require.NotEmpty(t, job.ID)
	require.False(t, job.Submitted.IsZero())
}

func TestConfigJobSummary(t *testing.T) {
	job := NewConfigJob([]Field{
		{Key: FieldXSize, Value: "10"},
		{Key: FieldYSize, Value: "20"},
		{Key: FieldZSize, Value: "30"},
		{Key: FieldRandomSeeds, Value: "7"},
		{Key: FieldMCIterations, Value: "3"},
		{Key: FieldMCKt, Value: "0.6"},
	})

	require.Equal(t, []string{
		"Board: 10x20x30, 7 random seeds",
		"MC: 3 iterations, kt=0.6",
	}, job.Summary())

	v, ok := job.Get(FieldMCKt)
	require.True(t, ok)
	require.Equal(t, "0.6", v)
	_, ok = job.Get("missing")
	require.False(t, ok)
}

func TestViewIndexCoversCubeOnce(t *testing.T) {
	d := Dims{X: 3, Y: 3, Z: 2}
	seen := make(map[int]int)
	for i := 0; i < d.X; i++ {
		for j := 0; j < d.Y; j++ {
			for k := 0; k < d.Z; k++ {
				seen[d.ViewIndex(i, j, k)]++
			}
		}
	}
	require.Len(t, seen, d.Volume())
	for idx, n := range seen {
		if idx < 0 || idx >= d.Volume() {
			t.Fatalf("index %d outside volume %d", idx, d.Volume())
		}
		if n != 1 {
			t.Fatalf("index %d visited %d times", idx, n)
		}
	}
}

func TestGrid3IndexRoundTrip(t *testing.T) {
	g := NewGrid3(Dims{X: 4, Y: 3, Z: 2})
	for idx := range g.Cells() {
		x, y, z := g.Coords(idx)
		if got := g.Index(x, y, z); got != idx {
			t.Fatalf("Index(Coords(%d)) = %d", idx, got)
		}
	}
	x, y, z := g.Wrap(-1, 3, 5)
	require.Equal(t, [3]int{3, 0, 1}, [3]int{x, y, z})
	require.False(t, g.Contains(4, 0, 0))
	require.True(t, g.Contains(3, 2, 1))
}
