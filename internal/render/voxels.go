//go:build ebiten

package render

import (
	"image/color"

	"voxca/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
)

// Voxels is an ebiten-backed scene. Render rasterizes the current cubes into
// an offscreen image once; Draw only blits that image.
type Voxels struct {
	cam    *Camera
	voxels []Voxel
	img    *ebiten.Image
	pixel  *ebiten.Image
	bg     color.Color

	verts []ebiten.Vertex
	idx   []uint16
}

// NewVoxels allocates a scene rendering into a w*h image.
func NewVoxels(w, h int) *Voxels {
	v := &Voxels{
		cam:   NewCamera(w, h),
		img:   ebiten.NewImage(w, h),
		pixel: ebiten.NewImage(1, 1),
		bg:    color.RGBA{R: 16, G: 16, B: 20, A: 255},
	}
	v.pixel.Fill(color.White)
	v.img.Fill(v.bg)
	return v
}

// Clear removes all cubes.
func (v *Voxels) Clear() { v.voxels = v.voxels[:0] }

// AddCube places a unit cube at pos.
func (v *Voxels) AddCube(pos core.Vec3i, c color.RGBA) {
	v.voxels = append(v.voxels, Voxel{Pos: pos, Color: c})
}

// LookAt aims the camera.
func (v *Voxels) LookAt(eye, target core.Vec3) { v.cam.LookAt(eye, target) }

// Render rasterizes one frame.
func (v *Voxels) Render() {
	v.img.Fill(v.bg)
	quads := Faces(v.voxels, v.cam)
	op := &ebiten.DrawTrianglesOptions{}
	// Batch in chunks below the uint16 index limit.
	const maxQuads = 16000
	for start := 0; start < len(quads); start += maxQuads {
		end := start + maxQuads
		if end > len(quads) {
			end = len(quads)
		}
		v.verts = v.verts[:0]
		v.idx = v.idx[:0]
		for _, q := range quads[start:end] {
			base := uint16(len(v.verts))
			r := float32(q.Color.R) / 255
			g := float32(q.Color.G) / 255
			b := float32(q.Color.B) / 255
			a := float32(q.Color.A) / 255
			for _, p := range q.Pts {
				v.verts = append(v.verts, ebiten.Vertex{
					DstX: p[0], DstY: p[1],
					SrcX: 0, SrcY: 0,
					ColorR: r, ColorG: g, ColorB: b, ColorA: a,
				})
			}
			v.idx = append(v.idx, base, base+1, base+2, base, base+2, base+3)
		}
		v.img.DrawTriangles(v.verts, v.idx, v.pixel, op)
	}
}

// Draw blits the last rendered frame at (x, y).
func (v *Voxels) Draw(dst *ebiten.Image, x, y int) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	dst.DrawImage(v.img, op)
}

// Size returns the dimensions of the underlying image.
func (v *Voxels) Size() (int, int) { return v.cam.Width, v.cam.Height }
