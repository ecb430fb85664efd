package geometry

import (
	"errors"

	"github.com/o0olele/detour-go/math32"
)

// AABB is axis-aligned bounding box
type AABB struct {
	Min math32.Vector3 `json:"min"`
	Max math32.Vector3 `json:"max"`
}

// Contains checks if the point is inside the AABB
func (aabb *AABB) Contains(point math32.Vector3) bool {
	return point.X >= aabb.Min.X && point.X <= aabb.Max.X &&
		point.Y >= aabb.Min.Y && point.Y <= aabb.Max.Y &&
		point.Z >= aabb.Min.Z && point.Z <= aabb.Max.Z
}

// Center returns the center of the AABB
func (aabb *AABB) Center() math32.Vector3 {
	return math32.Vector3{
		X: (aabb.Min.X + aabb.Max.X) / 2,
		Y: (aabb.Min.Y + aabb.Max.Y) / 2,
		Z: (aabb.Min.Z + aabb.Max.Z) / 2,
	}
}

// Size returns the size of the AABB
func (aabb *AABB) Size() math32.Vector3 {
	return aabb.Max.Sub(aabb.Min)
}

// Intersects checks if the AABB intersects with another AABB
func (aabb *AABB) Intersects(other AABB) bool {
	return aabb.Min.X <= other.Max.X && aabb.Max.X >= other.Min.X &&
		aabb.Min.Y <= other.Max.Y && aabb.Max.Y >= other.Min.Y &&
		aabb.Min.Z <= other.Max.Z && aabb.Max.Z >= other.Min.Z
}

// Expand grows the AABB to include the given point
func (aabb *AABB) Expand(point math32.Vector3) {
	aabb.Min = aabb.Min.MinComponents(point)
	aabb.Max = aabb.Max.MaxComponents(point)
}

// ErrNoVertices is returned when a bounding box is requested for an empty
// or malformed vertex list.
var ErrNoVertices = errors.New("vertex list is empty or not a multiple of 3")

// BoundsFromVertices computes the bounding box of a flattened vertex list
// (x0,y0,z0,x1,y1,z1,...) in a single pass.
func BoundsFromVertices(verts []float32) (AABB, error) {
	if len(verts) == 0 || len(verts)%3 != 0 {
		return AABB{}, ErrNoVertices
	}

	bounds := AABB{
		Min: math32.Vector3{X: verts[0], Y: verts[1], Z: verts[2]},
		Max: math32.Vector3{X: verts[0], Y: verts[1], Z: verts[2]},
	}
	for i := 3; i < len(verts); i += 3 {
		bounds.Expand(math32.Vector3{X: verts[i], Y: verts[i+1], Z: verts[i+2]})
	}
	return bounds, nil
}
