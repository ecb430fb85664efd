package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/o0olele/detour-go/math32"
)

func TestTriangleClosestPoint(t *testing.T) {
	tri := Triangle{
		A: math32.Vector3{X: 0, Y: 0, Z: 0},
		B: math32.Vector3{X: 10, Y: 0, Z: 0},
		C: math32.Vector3{X: 0, Y: 0, Z: 10},
	}

	tests := []struct {
		name  string
		point math32.Vector3
		want  math32.Vector3
	}{
		{
			name:  "above interior projects onto plane",
			point: math32.Vector3{X: 2, Y: 5, Z: 3},
			want:  math32.Vector3{X: 2, Y: 0, Z: 3},
		},
		{
			name:  "beyond vertex snaps to vertex",
			point: math32.Vector3{X: -1, Y: 0, Z: -1},
			want:  math32.Vector3{X: 0, Y: 0, Z: 0},
		},
		{
			name:  "beyond edge snaps to edge",
			point: math32.Vector3{X: 5, Y: 0, Z: -4},
			want:  math32.Vector3{X: 5, Y: 0, Z: 0},
		},
		{
			name:  "point on triangle stays put",
			point: math32.Vector3{X: 1, Y: 0, Z: 1},
			want:  math32.Vector3{X: 1, Y: 0, Z: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tri.ClosestPoint(tt.point)
			assert.InDelta(t, tt.want.X, got.X, 1e-5)
			assert.InDelta(t, tt.want.Y, got.Y, 1e-5)
			assert.InDelta(t, tt.want.Z, got.Z, 1e-5)
		})
	}
}

func TestTriangleNormal(t *testing.T) {
	tri := Triangle{
		A: math32.Vector3{X: 0, Y: 0, Z: 0},
		B: math32.Vector3{X: 1, Y: 0, Z: 0},
		C: math32.Vector3{X: 0, Y: 0, Z: 1},
	}
	n := tri.GetNormal()
	assert.InDelta(t, 1, math32.Abs(n.Y), 1e-6)
	assert.InDelta(t, 0, n.X, 1e-6)
	assert.InDelta(t, 0, n.Z, 1e-6)
}
