// Package engine defines the capability contract between the navigation
// query layer and a polygon navigation-mesh engine. The rest of the module
// talks to an engine only through these interfaces, so every engine-specific
// translation (diagnostics, sentinel values) happens at this single seam.
package engine

import "github.com/o0olele/detour-go/math32"

// PolyRef identifies a polygon inside a built navigation mesh. A reference
// is only meaningful for the query object that produced it. The zero value
// is reserved and never refers to a real polygon.
type PolyRef uint32

// NullPoly is the reserved "no polygon" reference.
const NullPoly PolyRef = 0

// NavMesh is the construction payload handed to an engine: quantized
// cell-unit vertices plus the original triangle indices, the world-unit
// bounds they were quantized against, and the agent/cell parameters.
type NavMesh struct {
	// Verts holds cell-unit vertices, 3 values per vertex.
	Verts []uint16
	// VertCount is the number of vertices (len(Verts)/3).
	VertCount uint32
	// Indices holds triangle vertex indices, 3 per triangle.
	Indices []uint16
	// TriangleCount is the number of triangles (len(Indices)/3).
	TriangleCount uint32

	// BMin and BMax are the mesh bounds in world units.
	BMin math32.Vector3
	BMax math32.Vector3

	// Agent parameters in world units.
	WalkableHeight float32
	WalkableRadius float32
	WalkableClimb  float32

	// Quantization resolution in world units.
	CellSize   float32
	CellHeight float32
}

// Engine builds query objects from navigation mesh payloads.
type Engine interface {
	// Version returns a stable non-empty engine identifier.
	Version() string

	// CreateQuery builds a query object from the payload. Construction is
	// all-or-nothing: on error no engine-side state is retained.
	CreateQuery(mesh *NavMesh) (Query, error)
}

// Query is one engine-side query object. Read-only query operations are
// expected to be safe for concurrent use on a single Query; Close must not
// race with in-flight queries and is called at most once by the owner.
type Query interface {
	// NearestPoint finds the polygon nearest to center within the box of
	// the given half extents, returning the surface-snapped position and
	// its reference. A nil error with NullPoly means nothing was found in
	// range; that is a valid outcome, not an engine failure.
	NearestPoint(center, halfExtents math32.Vector3) (math32.Vector3, PolyRef, error)

	// PathCorridor returns the ordered polygon corridor from the start
	// polygon to the end polygon. The corridor length is bounded by the
	// engine. A nil error with an empty corridor means the end polygon is
	// unreachable.
	PathCorridor(startPoly PolyRef, startPos math32.Vector3, endPoly PolyRef, endPos math32.Vector3) ([]PolyRef, error)

	// ClosestPoint returns the point on the given polygon closest to pos.
	ClosestPoint(pos math32.Vector3, poly PolyRef) (math32.Vector3, error)

	// Close releases the engine-side resources of this query object.
	Close()
}
