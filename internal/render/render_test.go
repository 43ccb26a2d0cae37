package render

import (
	"image/color"
	"math"
	"testing"

	"voxca/internal/core"
)

func TestProjectTargetLandsInCenter(t *testing.T) {
	cam := NewCamera(800, 600)
	cam.LookAt(core.Vec3{X: 4, Y: 4, Z: 4}, core.Vec3{})

	x, y, depth, ok := cam.Project(core.Vec3{})
	if !ok {
		t.Fatal("target must be visible")
	}
	if math.Abs(x-400) > 1e-9 || math.Abs(y-300) > 1e-9 {
		t.Fatalf("target projected to (%f,%f), want (400,300)", x, y)
	}
	if want := math.Sqrt(48); math.Abs(depth-want) > 1e-9 {
		t.Fatalf("depth = %f, want %f", depth, want)
	}

	if _, _, _, ok := cam.Project(core.Vec3{X: 8, Y: 8, Z: 8}); ok {
		t.Fatal("point behind the camera must not project")
	}
}

func TestProjectUpIsUp(t *testing.T) {
	cam := NewCamera(100, 100)
	cam.LookAt(core.Vec3{Z: 10}, core.Vec3{})
	_, yTop, _, _ := cam.Project(core.Vec3{Y: 1})
	_, yBottom, _, _ := cam.Project(core.Vec3{Y: -1})
	if yTop >= yBottom {
		t.Fatalf("+Y should be drawn above -Y: top=%f bottom=%f", yTop, yBottom)
	}
	xRight, _, _, _ := cam.Project(core.Vec3{X: 1})
	if xRight <= 50 {
		t.Fatalf("+X should be drawn right of center, got %f", xRight)
	}
}

func TestFacesCullsHiddenSides(t *testing.T) {
	cam := NewCamera(640, 480)
	cam.LookAt(core.Vec3{X: 4, Y: 4, Z: 4}, core.Vec3{})
	red := color.RGBA{R: 200, A: 255}

	single := Faces([]Voxel{{Color: red}}, cam)
	if len(single) != 3 {
		t.Fatalf("single cube: %d faces, want 3", len(single))
	}

	var block []Voxel
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			for k := 0; k < 2; k++ {
				block = append(block, Voxel{Pos: core.Vec3i{X: i, Y: j, Z: k}, Color: red})
			}
		}
	}
	quads := Faces(block, cam)
	if len(quads) != 12 {
		t.Fatalf("2x2x2 block: %d faces, want 12", len(quads))
	}
	for i := 1; i < len(quads); i++ {
		if quads[i].Depth > quads[i-1].Depth {
			t.Fatalf("faces not sorted far to near at %d", i)
		}
	}
}
