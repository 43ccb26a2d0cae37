// Package scene turns decoded boards into colored unit cubes.
package scene

import (
	"errors"
	"fmt"
	"image/color"

	"voxca/internal/board"
	"voxca/internal/core"
	"voxca/internal/palette"
)

// ErrIndexOutOfRange reports a lattice point whose flat state index falls
// outside the board's state slice.
var ErrIndexOutOfRange = errors.New("scene: state index out of range")

// Scene is the rendering surface the builder populates.
type Scene interface {
	// Clear removes all geometry.
	Clear()
	// AddCube places a unit cube centered on pos.
	AddCube(pos core.Vec3i, c color.RGBA)
	// LookAt positions the camera at eye, aimed at target.
	LookAt(eye, target core.Vec3)
	// Render draws one frame of the current contents.
	Render()
}

// Cube is one resolved voxel.
type Cube struct {
	Pos   core.Vec3i `json:"pos"`
	Color color.RGBA `json:"color"`
	State int        `json:"state"`
}

// CameraEye returns the camera position used for a board: the same offset
// (X+Y+Z)/1.5 along all three axes.
func CameraEye(d core.Dims) core.Vec3 {
	s := float64(d.X+d.Y+d.Z) / 1.5
	return core.Vec3{X: s, Y: s, Z: s}
}

// Resolve computes every cube of b without touching any scene. Cubes are
// ordered by i, then j, then k.
func Resolve(b *board.Board, p *palette.Palette) ([]Cube, error) {
	d := b.Dims
	cubes := make([]Cube, 0, d.Volume())
	for i := 0; i < d.X; i++ {
		for j := 0; j < d.Y; j++ {
			for k := 0; k < d.Z; k++ {
				idx := d.ViewIndex(i, j, k)
				if idx < 0 || idx >= len(b.States) {
					return nil, fmt.Errorf("%w: (%d,%d,%d) -> %d of %d", ErrIndexOutOfRange, i, j, k, idx, len(b.States))
				}
				state := b.States[idx]
				c, err := p.At(state)
				if err != nil {
					return nil, fmt.Errorf("scene: cube (%d,%d,%d): %w", i, j, k, err)
				}
				cubes = append(cubes, Cube{Pos: core.Vec3i{X: i, Y: j, Z: k}, Color: c, State: state})
			}
		}
	}
	return cubes, nil
}

// Build replaces the contents of s with the cubes of b, aims the camera and
// renders one frame. When b cannot be fully resolved s is left untouched.
func Build(s Scene, b *board.Board, p *palette.Palette) error {
	cubes, err := Resolve(b, p)
	if err != nil {
		return err
	}
	s.Clear()
	for _, c := range cubes {
		s.AddCube(c.Pos, c.Color)
	}
	s.LookAt(CameraEye(b.Dims), core.Vec3{})
	s.Render()
	return nil
}
