// Package query is the navigation query layer: it converts a walkable
// triangle mesh into an engine query object and answers "next waypoint
// toward a destination" questions along the mesh's polygon corridor.
package query

import (
	"github.com/o0olele/detour-go/builder"
	"github.com/o0olele/detour-go/engine"
	"github.com/o0olele/detour-go/math32"
)

// NavQuery owns exactly one engine-side query object and resolves paths
// against it. A NavQuery may serve concurrent read-only queries if the
// engine documents its query operations as safe for concurrent use;
// Release must happen after all outstanding queries complete.
type NavQuery struct {
	handle   engine.Query
	released bool
}

// NewNavQuery preprocesses the mesh data (bounding box, quantization,
// payload assembly) and asks the engine for a query object. Construction is
// all-or-nothing: on error no engine resource is retained.
func NewNavQuery(eng engine.Engine, data *builder.NavMeshData) (*NavQuery, error) {
	payload, err := builder.BuildPayload(data)
	if err != nil {
		return nil, newError(KindConstruction, err.Error())
	}

	handle, err := eng.CreateQuery(payload)
	if err != nil {
		return nil, newError(KindConstruction, err.Error())
	}

	return &NavQuery{handle: handle}, nil
}

// Release frees the engine-side query object. Only the first call reaches
// the engine; later calls are no-ops. A NavQuery must be released even if
// it never served a query.
func (q *NavQuery) Release() {
	if q.released {
		return
	}
	q.released = true
	q.handle.Close()
}

// FindPath resolves both endpoints to mesh polygons within searchRadius,
// queries the polygon corridor between them, and returns the next waypoint
// toward end: the end's snapped position when both endpoints share one
// polygon, otherwise the projection of the start's snapped position onto
// the second corridor polygon. Callers re-query every movement tick; a
// failure is terminal for the call and may be retried with a larger radius.
func (q *NavQuery) FindPath(start, end math32.Vector3, searchRadius float32) (math32.Vector3, error) {
	startPos, startPoly, err := q.findPoly(start, searchRadius)
	if err != nil {
		return math32.Vector3{}, err
	}
	endPos, endPoly, err := q.findPoly(end, searchRadius)
	if err != nil {
		return math32.Vector3{}, err
	}

	corridor, err := q.handle.PathCorridor(startPoly, startPos, endPoly, endPos)
	if err != nil {
		return math32.Vector3{}, newError(KindPath, err.Error())
	}

	switch len(corridor) {
	case 0:
		return math32.Vector3{}, newError(KindPath, msgNoPath)
	case 1:
		// both endpoints resolved to the same polygon; the snapped end
		// position is already directly reachable
		return endPos, nil
	default:
		return q.findClosest(startPos, corridor[1])
	}
}

// findPoly snaps a position to the nearest polygon within a symmetric
// search box of half-extent r on all three axes.
func (q *NavQuery) findPoly(pos math32.Vector3, r float32) (math32.Vector3, engine.PolyRef, error) {
	if q.released {
		return math32.Vector3{}, engine.NullPoly, newError(KindConstruction, msgReleased)
	}

	half := math32.Vector3{X: r, Y: r, Z: r}
	snapped, ref, err := q.handle.NearestPoint(pos, half)
	if err != nil {
		return math32.Vector3{}, engine.NullPoly, newError(KindPoint, err.Error())
	}
	if ref == engine.NullPoly {
		return math32.Vector3{}, engine.NullPoly, newError(KindPoint, msgNoPolyFound)
	}
	return snapped, ref, nil
}

// findClosest projects a position onto the given polygon.
func (q *NavQuery) findClosest(pos math32.Vector3, target engine.PolyRef) (math32.Vector3, error) {
	if q.released {
		return math32.Vector3{}, newError(KindConstruction, msgReleased)
	}

	point, err := q.handle.ClosestPoint(pos, target)
	if err != nil {
		return math32.Vector3{}, newError(KindPoint, err.Error())
	}
	return point, nil
}
