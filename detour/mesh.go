package detour

import (
	"fmt"

	"github.com/o0olele/detour-go/engine"
	"github.com/o0olele/detour-go/geometry"
	"github.com/o0olele/detour-go/math32"
)

const (
	// maxVertsPerPoly bounds the vertex count of a merged polygon.
	maxVertsPerPoly = 6
	// maxCorridor bounds the length of a returned polygon corridor.
	maxCorridor = 256

	planeEpsilon = 1e-3
)

// poly is one convex walkable polygon of the built mesh.
type poly struct {
	verts  []uint16 // indices into navMesh.verts, consistent winding
	center math32.Vector3
	bounds geometry.AABB
	normal math32.Vector3
	neis   []int32 // indices of adjacent polys
}

// navMesh is the engine-side mesh built from a construction payload.
type navMesh struct {
	verts []math32.Vector3
	polys []*poly

	walkableHeight float32
	walkableRadius float32
	walkableClimb  float32
}

// buildNavMesh dequantizes the payload, turns its triangles into polygons,
// merges coplanar adjacent polygons while they stay convex, and links
// polygons sharing an edge.
func buildNavMesh(m *engine.NavMesh) (*navMesh, error) {
	if m == nil {
		return nil, fmt.Errorf("nil mesh payload")
	}
	if m.VertCount == 0 || uint32(len(m.Verts)) != 3*m.VertCount {
		return nil, fmt.Errorf("vertex data mismatch: %d values for %d vertices", len(m.Verts), m.VertCount)
	}
	if m.TriangleCount == 0 || uint32(len(m.Indices)) != 3*m.TriangleCount {
		return nil, fmt.Errorf("triangle data mismatch: %d indices for %d triangles", len(m.Indices), m.TriangleCount)
	}
	if m.CellSize <= 0 || m.CellHeight <= 0 {
		return nil, fmt.Errorf("cell size %f and cell height %f must be > 0", m.CellSize, m.CellHeight)
	}
	for i, idx := range m.Indices {
		if uint32(idx) >= m.VertCount {
			return nil, fmt.Errorf("index %d at position %d is out of range", idx, i)
		}
	}

	nm := &navMesh{
		verts:          make([]math32.Vector3, m.VertCount),
		walkableHeight: m.WalkableHeight,
		walkableRadius: m.WalkableRadius,
		walkableClimb:  m.WalkableClimb,
	}

	// Cell units back to world units. Quantization used the cell size on
	// every axis, so the inverse does too.
	for i := uint32(0); i < m.VertCount; i++ {
		nm.verts[i] = math32.Vector3{
			X: m.BMin.X + float32(m.Verts[i*3])*m.CellSize,
			Y: m.BMin.Y + float32(m.Verts[i*3+1])*m.CellSize,
			Z: m.BMin.Z + float32(m.Verts[i*3+2])*m.CellSize,
		}
	}

	for t := uint32(0); t < m.TriangleCount; t++ {
		verts := []uint16{m.Indices[t*3], m.Indices[t*3+1], m.Indices[t*3+2]}
		tri := geometry.Triangle{
			A: nm.verts[verts[0]],
			B: nm.verts[verts[1]],
			C: nm.verts[verts[2]],
		}
		normal := tri.B.Sub(tri.A).Cross(tri.C.Sub(tri.A))
		if normal.Length() < 1e-10 {
			return nil, fmt.Errorf("degenerate triangle %d", t)
		}
		nm.polys = append(nm.polys, &poly{
			verts:  verts,
			normal: normal.Normalize(),
		})
	}

	nm.mergePolys()
	nm.buildLinks()

	for _, p := range nm.polys {
		bounds := geometry.AABB{Min: nm.verts[p.verts[0]], Max: nm.verts[p.verts[0]]}
		center := math32.Vector3{}
		for _, vi := range p.verts {
			bounds.Expand(nm.verts[vi])
			center = center.Add(nm.verts[vi])
		}
		p.bounds = bounds
		p.center = center.Scale(1.0 / float32(len(p.verts)))
	}

	return nm, nil
}

// mergePolys repeatedly merges the polygon pair sharing the longest edge,
// as long as the pair is coplanar and the union stays convex and within
// maxVertsPerPoly vertices.
func (nm *navMesh) mergePolys() {
	for {
		bestLen := float32(0)
		bestI, bestJ := -1, -1
		var bestVerts []uint16

		for i := 0; i < len(nm.polys); i++ {
			for j := i + 1; j < len(nm.polys); j++ {
				merged, edgeLen, ok := nm.tryMerge(nm.polys[i], nm.polys[j])
				if ok && edgeLen > bestLen {
					bestLen = edgeLen
					bestI, bestJ = i, j
					bestVerts = merged
				}
			}
		}

		if bestI < 0 {
			return
		}

		nm.polys[bestI].verts = bestVerts
		nm.polys = append(nm.polys[:bestJ], nm.polys[bestJ+1:]...)
	}
}

// tryMerge returns the merged vertex loop of two polygons and the length of
// their shared edge, or ok=false when they cannot be merged.
func (nm *navMesh) tryMerge(pa, pb *poly) ([]uint16, float32, bool) {
	if len(pa.verts)+len(pb.verts)-2 > maxVertsPerPoly {
		return nil, 0, false
	}
	if pa.normal.Dot(pb.normal) < 1-planeEpsilon {
		return nil, 0, false
	}
	// coplanarity: every vertex of pb lies on pa's plane
	origin := nm.verts[pa.verts[0]]
	for _, vi := range pb.verts {
		if math32.Abs(nm.verts[vi].Sub(origin).Dot(pa.normal)) > planeEpsilon {
			return nil, 0, false
		}
	}

	// find the shared edge: consistent winding means it appears reversed
	// in the other polygon
	na, nb := len(pa.verts), len(pb.verts)
	ea, eb := -1, -1
	for i := 0; i < na && ea < 0; i++ {
		a0, a1 := pa.verts[i], pa.verts[(i+1)%na]
		for j := 0; j < nb; j++ {
			b0, b1 := pb.verts[j], pb.verts[(j+1)%nb]
			if a0 == b1 && a1 == b0 {
				ea, eb = i, j
				break
			}
		}
	}
	if ea < 0 {
		return nil, 0, false
	}

	merged := make([]uint16, 0, na+nb-2)
	for i := 0; i < na-1; i++ {
		merged = append(merged, pa.verts[(ea+1+i)%na])
	}
	for i := 0; i < nb-1; i++ {
		merged = append(merged, pb.verts[(eb+1+i)%nb])
	}

	// reject non-simple results (the pair shares more than one edge)
	seen := make(map[uint16]bool, len(merged))
	for _, vi := range merged {
		if seen[vi] {
			return nil, 0, false
		}
		seen[vi] = true
	}

	if !nm.isConvex(merged, pa.normal) {
		return nil, 0, false
	}

	edgeLen := nm.verts[pa.verts[ea]].Distance(nm.verts[pa.verts[(ea+1)%na]])
	return merged, edgeLen, true
}

// isConvex checks that every corner of the vertex loop turns the same way
// around the polygon normal. Collinear corners are allowed.
func (nm *navMesh) isConvex(verts []uint16, normal math32.Vector3) bool {
	n := len(verts)
	for i := 0; i < n; i++ {
		v0 := nm.verts[verts[i]]
		v1 := nm.verts[verts[(i+1)%n]]
		v2 := nm.verts[verts[(i+2)%n]]
		e1 := v1.Sub(v0)
		e2 := v2.Sub(v1)
		if e1.Cross(e2).Dot(normal) < -planeEpsilon {
			return false
		}
	}
	return true
}

// buildLinks connects polygons that share an edge.
func (nm *navMesh) buildLinks() {
	type edge struct{ a, b uint16 }

	edgePolys := make(map[edge][]int32)
	for i, p := range nm.polys {
		n := len(p.verts)
		p.neis = nil
		for k := 0; k < n; k++ {
			a, b := p.verts[k], p.verts[(k+1)%n]
			if a > b {
				a, b = b, a
			}
			edgePolys[edge{a, b}] = append(edgePolys[edge{a, b}], int32(i))
		}
	}

	for _, polys := range edgePolys {
		for _, i := range polys {
			for _, j := range polys {
				if i != j {
					nm.polys[i].neis = append(nm.polys[i].neis, j)
				}
			}
		}
	}
}

// closestOnPoly returns the point on the polygon closest to pos, by fanning
// the polygon into triangles.
func (nm *navMesh) closestOnPoly(p *poly, pos math32.Vector3) math32.Vector3 {
	best := nm.verts[p.verts[0]]
	bestDist := best.DistanceSquared(pos)

	for k := 1; k+1 < len(p.verts); k++ {
		tri := geometry.Triangle{
			A: nm.verts[p.verts[0]],
			B: nm.verts[p.verts[k]],
			C: nm.verts[p.verts[k+1]],
		}
		cp := tri.ClosestPoint(pos)
		if d := cp.DistanceSquared(pos); d < bestDist {
			bestDist = d
			best = cp
		}
	}
	return best
}
