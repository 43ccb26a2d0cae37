package scene

import (
	"image/color"

	"voxca/internal/core"
)

// Frame is what a Recorder captured at one Render call.
type Frame struct {
	Cubes  []Cube    `json:"cubes"`
	Eye    core.Vec3 `json:"eye"`
	Target core.Vec3 `json:"target"`
}

// Recorder is a headless Scene that keeps every rendered frame.
type Recorder struct {
	cubes  []Cube
	eye    core.Vec3
	target core.Vec3
	Frames []Frame
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) Clear() { r.cubes = r.cubes[:0] }

func (r *Recorder) AddCube(pos core.Vec3i, c color.RGBA) {
	r.cubes = append(r.cubes, Cube{Pos: pos, Color: c})
}

func (r *Recorder) LookAt(eye, target core.Vec3) {
	r.eye = eye
	r.target = target
}

func (r *Recorder) Render() {
	r.Frames = append(r.Frames, Frame{
		Cubes:  append([]Cube(nil), r.cubes...),
		Eye:    r.eye,
		Target: r.target,
	})
}

// Last returns the most recent frame.
func (r *Recorder) Last() (Frame, bool) {
	if len(r.Frames) == 0 {
		return Frame{}, false
	}
	return r.Frames[len(r.Frames)-1], true
}
