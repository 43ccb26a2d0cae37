package scene

import (
	"errors"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"

	"voxca/internal/board"
	"voxca/internal/core"
	"voxca/internal/palette"
)

func testPalette(n int) *palette.Palette {
	colors := make([]color.RGBA, n)
	for i := range colors {
		colors[i] = color.RGBA{R: uint8(i), G: uint8(2 * i), B: uint8(3 * i), A: 255}
	}
	return palette.FromColors(colors)
}

func TestBuildCubeCoversEveryLatticePoint(t *testing.T) {
	b, err := board.Decode([]byte("2x2x2\n0,1,2,3,4,5,6,7"))
	require.NoError(t, err)
	p := testPalette(8)

	rec := NewRecorder()
	require.NoError(t, Build(rec, b, p))
	require.Len(t, rec.Frames, 1)

	frame := rec.Frames[0]
	require.Len(t, frame.Cubes, 8)
	require.Equal(t, core.Vec3{X: 4, Y: 4, Z: 4}, frame.Eye)
	require.Equal(t, core.Vec3{}, frame.Target)

	positions := make(map[core.Vec3i]bool)
	states := make(map[int]bool)
	for _, c := range frame.Cubes {
		positions[c.Pos] = true
		idx := b.Dims.ViewIndex(c.Pos.X, c.Pos.Y, c.Pos.Z)
		want, _ := p.At(b.States[idx])
		require.Equal(t, want, c.Color, "cube %v", c.Pos)
		states[idx] = true
	}
	require.Len(t, positions, 8)
	for idx := 0; idx < 8; idx++ {
		require.True(t, states[idx], "flat index %d never used", idx)
	}
}

func TestBuildUsesLiteralIndexFormula(t *testing.T) {
	// For (i,j,k) = (1,0,1) on a 2x2x2 board: ((1*2)+0)*2+1 = 5.
	b := &board.Board{Dims: core.Dims{X: 2, Y: 2, Z: 2}, States: []int{0, 0, 0, 0, 0, 9, 0, 0}}
	cubes, err := Resolve(b, testPalette(10))
	require.NoError(t, err)
	for _, c := range cubes {
		if c.Pos == (core.Vec3i{X: 1, Y: 0, Z: 1}) {
			require.Equal(t, 9, c.State)
			continue
		}
		require.Equal(t, 0, c.State, "cube %v", c.Pos)
	}
}

func TestBuildLeavesSceneOnError(t *testing.T) {
	rec := NewRecorder()
	good := &board.Board{Dims: core.Dims{X: 1, Y: 1, Z: 1}, States: []int{1}}
	require.NoError(t, Build(rec, good, testPalette(2)))

	outOfPalette := &board.Board{Dims: core.Dims{X: 1, Y: 1, Z: 2}, States: []int{0, 5}}
	err := Build(rec, outOfPalette, testPalette(2))
	require.True(t, errors.Is(err, palette.ErrOutOfRange), "err = %v", err)

	// X != Y makes the formula step outside the slice.
	skewed := &board.Board{Dims: core.Dims{X: 1, Y: 2, Z: 2}, States: []int{0, 0, 0, 0}}
	err = Build(rec, skewed, testPalette(2))
	require.ErrorIs(t, err, ErrIndexOutOfRange)

	require.Len(t, rec.Frames, 1)
	require.Len(t, rec.cubes, 1)
}

func TestBuildTwiceIsIdentical(t *testing.T) {
	b, err := board.Decode([]byte("2x2x1\n3,2,1,0"))
	require.NoError(t, err)
	p := testPalette(4)
	rec := NewRecorder()
	require.NoError(t, Build(rec, b, p))
	require.NoError(t, Build(rec, b, p))
	require.Len(t, rec.Frames, 2)
	require.Equal(t, rec.Frames[0], rec.Frames[1])
}
