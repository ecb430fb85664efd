package geometry

import (
	"github.com/o0olele/detour-go/math32"
)

// Triangle is a triangle geometry
type Triangle struct {
	A math32.Vector3 `json:"a"`
	B math32.Vector3 `json:"b"`
	C math32.Vector3 `json:"c"`
}

// GetBounds returns the bounding box of the triangle
func (t *Triangle) GetBounds() AABB {
	bounds := AABB{Min: t.A, Max: t.A}
	bounds.Expand(t.B)
	bounds.Expand(t.C)
	return bounds
}

// Centroid returns the centroid of the triangle
func (t *Triangle) Centroid() math32.Vector3 {
	return t.A.Add(t.B).Add(t.C).Scale(1.0 / 3.0)
}

// GetNormal returns the normal of the triangle
func (t *Triangle) GetNormal() math32.Vector3 {
	edge1 := t.B.Sub(t.A)
	edge2 := t.C.Sub(t.A)
	return edge1.Cross(edge2).Normalize()
}

// ClosestPoint returns the point on the triangle closest to the given point.
// Standard region test over the triangle's barycentric domains.
func (t *Triangle) ClosestPoint(point math32.Vector3) math32.Vector3 {
	ab := t.B.Sub(t.A)
	ac := t.C.Sub(t.A)
	ap := point.Sub(t.A)

	d1 := ab.Dot(ap)
	d2 := ac.Dot(ap)
	if d1 <= 0 && d2 <= 0 {
		return t.A
	}

	bp := point.Sub(t.B)
	d3 := ab.Dot(bp)
	d4 := ac.Dot(bp)
	if d3 >= 0 && d4 <= d3 {
		return t.B
	}

	vc := d1*d4 - d3*d2
	if vc <= 0 && d1 >= 0 && d3 <= 0 {
		v := d1 / (d1 - d3)
		return t.A.Add(ab.Scale(v))
	}

	cp := point.Sub(t.C)
	d5 := ab.Dot(cp)
	d6 := ac.Dot(cp)
	if d6 >= 0 && d5 <= d6 {
		return t.C
	}

	vb := d5*d2 - d1*d6
	if vb <= 0 && d2 >= 0 && d6 <= 0 {
		w := d2 / (d2 - d6)
		return t.A.Add(ac.Scale(w))
	}

	va := d3*d6 - d5*d4
	if va <= 0 && (d4-d3) >= 0 && (d5-d6) >= 0 {
		w := (d4 - d3) / ((d4 - d3) + (d5 - d6))
		return t.B.Add(t.C.Sub(t.B).Scale(w))
	}

	denom := 1.0 / (va + vb + vc)
	v := vb * denom
	w := vc * denom
	return t.A.Add(ab.Scale(v)).Add(ac.Scale(w))
}
