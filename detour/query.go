// Package detour is the built-in navigation-mesh engine. It implements the
// engine capability contract over a convex-polygon mesh built from the
// caller's walkable triangles.
package detour

import (
	"container/heap"
	"errors"
	"fmt"

	"github.com/o0olele/detour-go/engine"
	"github.com/o0olele/detour-go/geometry"
	"github.com/o0olele/detour-go/math32"
)

const engineVersion = "0.0.1"

// maxIterations bounds the corridor search.
const maxIterations = 20000

// Version returns the engine version, independent of any query object.
func Version() string {
	return engineVersion
}

// Engine builds navQuery objects. The zero value is ready to use.
type Engine struct{}

// New creates the built-in engine.
func New() *Engine {
	return &Engine{}
}

// Version implements engine.Engine.
func (e *Engine) Version() string {
	return engineVersion
}

// CreateQuery builds a query object from the payload.
func (e *Engine) CreateQuery(mesh *engine.NavMesh) (engine.Query, error) {
	nm, err := buildNavMesh(mesh)
	if err != nil {
		return nil, fmt.Errorf("failed to build nav mesh: %v", err)
	}
	return &navQuery{mesh: nm}, nil
}

// navQuery answers queries against one built mesh. Query operations only
// read the mesh, so a single navQuery is safe for concurrent queries; Close
// must not race with them.
type navQuery struct {
	mesh *navMesh
}

var errReleased = errors.New("query has been released")

// Close releases the built mesh.
func (q *navQuery) Close() {
	q.mesh = nil
}

// NearestPoint implements engine.Query. It returns NullPoly with a nil
// error when no polygon produces a snapped point inside the search box.
func (q *navQuery) NearestPoint(center, halfExtents math32.Vector3) (math32.Vector3, engine.PolyRef, error) {
	if q.mesh == nil {
		return math32.Vector3{}, engine.NullPoly, errReleased
	}

	box := geometry.AABB{
		Min: center.Sub(halfExtents),
		Max: center.Add(halfExtents),
	}

	best := engine.NullPoly
	var bestPt math32.Vector3
	bestDist := float32(0)

	for i, p := range q.mesh.polys {
		if !p.bounds.Intersects(box) {
			continue
		}
		cp := q.mesh.closestOnPoly(p, center)
		if !box.Contains(cp) {
			continue
		}
		d := cp.DistanceSquared(center)
		if best == engine.NullPoly || d < bestDist {
			best = engine.PolyRef(i + 1)
			bestPt = cp
			bestDist = d
		}
	}

	return bestPt, best, nil
}

// PathCorridor implements engine.Query. An unreachable end polygon yields an
// empty corridor with a nil error.
func (q *navQuery) PathCorridor(startPoly engine.PolyRef, startPos math32.Vector3, endPoly engine.PolyRef, endPos math32.Vector3) ([]engine.PolyRef, error) {
	if q.mesh == nil {
		return nil, errReleased
	}

	start, err := q.polyIndex(startPoly)
	if err != nil {
		return nil, err
	}
	end, err := q.polyIndex(endPoly)
	if err != nil {
		return nil, err
	}

	if start == end {
		return []engine.PolyRef{startPoly}, nil
	}

	corridor := q.astar(start, end, startPos, endPos)
	if len(corridor) > maxCorridor {
		corridor = corridor[:maxCorridor]
	}
	return corridor, nil
}

// ClosestPoint implements engine.Query.
func (q *navQuery) ClosestPoint(pos math32.Vector3, polyRef engine.PolyRef) (math32.Vector3, error) {
	if q.mesh == nil {
		return math32.Vector3{}, errReleased
	}

	idx, err := q.polyIndex(polyRef)
	if err != nil {
		return math32.Vector3{}, err
	}
	return q.mesh.closestOnPoly(q.mesh.polys[idx], pos), nil
}

func (q *navQuery) polyIndex(ref engine.PolyRef) (int32, error) {
	if ref == engine.NullPoly || int(ref) > len(q.mesh.polys) {
		return 0, fmt.Errorf("invalid polygon reference %d", ref)
	}
	return int32(ref - 1), nil
}

// astar searches the polygon adjacency graph from start to end, returning
// the corridor as polygon references, or nil when the end is unreachable.
func (q *navQuery) astar(start, end int32, startPos, endPos math32.Vector3) []engine.PolyRef {
	openSet := &polyHeap{}
	heap.Init(openSet)

	closedSet := make(map[int32]bool)
	gScore := make(map[int32]float32)
	cameFrom := make(map[int32]int32)
	inOpenSet := make(map[int32]*heapNode)

	gScore[start] = startPos.Distance(q.mesh.polys[start].center)

	startNode := &heapNode{
		poly:   start,
		fScore: gScore[start] + q.mesh.polys[start].center.Distance(endPos),
	}
	heap.Push(openSet, startNode)
	inOpenSet[start] = startNode

	iterations := 0
	for openSet.Len() > 0 && iterations < maxIterations {
		iterations++

		current := heap.Pop(openSet).(*heapNode)
		delete(inOpenSet, current.poly)

		if current.poly == end {
			corridor := make([]engine.PolyRef, 0)
			node := end
			for {
				corridor = append([]engine.PolyRef{engine.PolyRef(node + 1)}, corridor...)
				if node == start {
					break
				}
				node = cameFrom[node]
			}
			return corridor
		}

		closedSet[current.poly] = true

		for _, nei := range q.mesh.polys[current.poly].neis {
			if closedSet[nei] {
				continue
			}

			tentativeG := gScore[current.poly] + q.mesh.polys[current.poly].center.Distance(q.mesh.polys[nei].center)

			if existingG, exists := gScore[nei]; !exists || tentativeG < existingG {
				cameFrom[nei] = current.poly
				gScore[nei] = tentativeG
				fScore := tentativeG + q.mesh.polys[nei].center.Distance(endPos)

				if existingNode, exists := inOpenSet[nei]; exists {
					existingNode.fScore = fScore
					heap.Fix(openSet, existingNode.index)
				} else {
					newNode := &heapNode{poly: nei, fScore: fScore}
					heap.Push(openSet, newNode)
					inOpenSet[nei] = newNode
				}
			}
		}
	}

	return nil
}
