// Package palette maps small integer cell states to display colors.
package palette

import (
	"errors"
	"fmt"
	"image/color"

	"voxca/internal/core"
)

// DefaultSize is the number of colors generated for a process.
const DefaultSize = 1000

// ErrOutOfRange is returned for state indices that have no color.
var ErrOutOfRange = errors.New("palette: index out of range")

// Palette is an immutable lookup table of opaque colors.
type Palette struct {
	colors []color.RGBA
}

// New generates size random 24-bit colors from seed. A non-positive size
// selects DefaultSize.
func New(seed int64, size int) *Palette {
	if size <= 0 {
		size = DefaultSize
	}
	rng := core.NewRNG(seed)
	colors := make([]color.RGBA, size)
	for i := range colors {
		rgb := rng.Uint32n(1 << 24)
		colors[i] = color.RGBA{
			R: uint8(rgb >> 16),
			G: uint8(rgb >> 8),
			B: uint8(rgb),
			A: 0xff,
		}
	}
	return &Palette{colors: colors}
}

// FromColors wraps an explicit color list.
func FromColors(colors []color.RGBA) *Palette {
	return &Palette{colors: append([]color.RGBA(nil), colors...)}
}

// Len returns the number of colors.
func (p *Palette) Len() int { return len(p.colors) }

// At returns the color for state idx.
func (p *Palette) At(idx int) (color.RGBA, error) {
	if idx < 0 || idx >= len(p.colors) {
		return color.RGBA{}, fmt.Errorf("%w: %d not in [0,%d)", ErrOutOfRange, idx, len(p.colors))
	}
	return p.colors[idx], nil
}
