package render

import (
	"image/color"
	"sort"

	"voxca/internal/core"
)

// Quad is one projected cube face ready to be filled.
type Quad struct {
	Pts   [4][2]float32
	Depth float64
	Color color.RGBA
}

type face struct {
	normal  core.Vec3i
	corners [4]core.Vec3
	shade   float64
}

// Unit cube faces around the origin, counter-clockwise seen from outside.
var cubeFaces = [6]face{
	{core.Vec3i{X: 1}, [4]core.Vec3{{0.5, -0.5, -0.5}, {0.5, 0.5, -0.5}, {0.5, 0.5, 0.5}, {0.5, -0.5, 0.5}}, 0.82},
	{core.Vec3i{X: -1}, [4]core.Vec3{{-0.5, -0.5, 0.5}, {-0.5, 0.5, 0.5}, {-0.5, 0.5, -0.5}, {-0.5, -0.5, -0.5}}, 0.82},
	{core.Vec3i{Y: 1}, [4]core.Vec3{{-0.5, 0.5, -0.5}, {-0.5, 0.5, 0.5}, {0.5, 0.5, 0.5}, {0.5, 0.5, -0.5}}, 1.0},
	{core.Vec3i{Y: -1}, [4]core.Vec3{{-0.5, -0.5, 0.5}, {-0.5, -0.5, -0.5}, {0.5, -0.5, -0.5}, {0.5, -0.5, 0.5}}, 0.5},
	{core.Vec3i{Z: 1}, [4]core.Vec3{{-0.5, -0.5, 0.5}, {0.5, -0.5, 0.5}, {0.5, 0.5, 0.5}, {-0.5, 0.5, 0.5}}, 0.66},
	{core.Vec3i{Z: -1}, [4]core.Vec3{{0.5, -0.5, -0.5}, {-0.5, -0.5, -0.5}, {-0.5, 0.5, -0.5}, {0.5, 0.5, -0.5}}, 0.66},
}

// Voxel is a unit cube at an integer position.
type Voxel struct {
	Pos   core.Vec3i
	Color color.RGBA
}

// Faces projects the camera-facing faces of voxels. Faces shared with an
// occupied neighbour are skipped. The result is sorted far to near so it can
// be painted in order.
func Faces(voxels []Voxel, cam *Camera) []Quad {
	occupied := make(map[core.Vec3i]struct{}, len(voxels))
	for _, v := range voxels {
		occupied[v.Pos] = struct{}{}
	}

	quads := make([]Quad, 0, len(voxels))
	for _, v := range voxels {
		center := v.Pos.Float()
	faces:
		for _, f := range cubeFaces {
			n := f.normal
			if _, ok := occupied[core.Vec3i{X: v.Pos.X + n.X, Y: v.Pos.Y + n.Y, Z: v.Pos.Z + n.Z}]; ok {
				continue
			}
			normal := n.Float()
			faceCenter := center.Add(normal.Scale(0.5))
			if normal.Dot(cam.Eye.Sub(faceCenter)) <= 0 {
				continue
			}
			q := Quad{Depth: cam.Depth(faceCenter), Color: shade(v.Color, f.shade)}
			for i, corner := range f.corners {
				x, y, _, ok := cam.Project(center.Add(corner))
				if !ok {
					continue faces
				}
				q.Pts[i] = [2]float32{float32(x), float32(y)}
			}
			quads = append(quads, q)
		}
	}
	sort.SliceStable(quads, func(i, j int) bool { return quads[i].Depth > quads[j].Depth })
	return quads
}

func shade(c color.RGBA, f float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * f),
		G: uint8(float64(c.G) * f),
		B: uint8(float64(c.B) * f),
		A: c.A,
	}
}
