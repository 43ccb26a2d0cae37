package render

import (
	"math"

	"voxca/internal/core"
)

// Camera is a perspective camera with a vertical field of view.
type Camera struct {
	Eye    core.Vec3
	Target core.Vec3
	Up     core.Vec3
	FovY   float64 // degrees
	Near   float64
	Far    float64
	Width  int
	Height int

	right, up, forward core.Vec3
	focal              float64
}

// NewCamera returns a camera matching the viewer defaults: 75 degree fov,
// near plane 0.1, far plane 1000, +Y up.
func NewCamera(width, height int) *Camera {
	c := &Camera{
		Up:     core.Vec3{Y: 1},
		FovY:   75,
		Near:   0.1,
		Far:    1000,
		Width:  width,
		Height: height,
	}
	c.LookAt(core.Vec3{Z: 5}, core.Vec3{})
	return c
}

// LookAt moves the camera to eye and aims it at target.
func (c *Camera) LookAt(eye, target core.Vec3) {
	c.Eye = eye
	c.Target = target
	c.forward = target.Sub(eye).Normalize()
	up := c.Up
	if math.Abs(c.forward.Dot(up.Normalize())) > 0.999 {
		up = core.Vec3{Z: -1}
	}
	c.right = c.forward.Cross(up).Normalize()
	c.up = c.right.Cross(c.forward)
	c.focal = 1 / math.Tan(c.FovY*math.Pi/360)
}

// Resize updates the viewport size.
func (c *Camera) Resize(width, height int) {
	c.Width = width
	c.Height = height
}

// Depth returns the distance of p along the view direction.
func (c *Camera) Depth(p core.Vec3) float64 {
	return p.Sub(c.Eye).Dot(c.forward)
}

// Project maps p to screen pixels. ok is false when p lies outside the
// near/far range.
func (c *Camera) Project(p core.Vec3) (x, y, depth float64, ok bool) {
	d := p.Sub(c.Eye)
	depth = d.Dot(c.forward)
	if depth < c.Near || depth > c.Far {
		return 0, 0, depth, false
	}
	aspect := 1.0
	if c.Height > 0 {
		aspect = float64(c.Width) / float64(c.Height)
	}
	ndcX := d.Dot(c.right) * c.focal / (depth * aspect)
	ndcY := d.Dot(c.up) * c.focal / depth
	x = (ndcX + 1) / 2 * float64(c.Width)
	y = (1 - ndcY) / 2 * float64(c.Height)
	return x, y, depth, true
}
