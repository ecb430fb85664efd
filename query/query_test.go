package query_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/o0olele/detour-go/builder"
	"github.com/o0olele/detour-go/engine"
	"github.com/o0olele/detour-go/math32"
	"github.com/o0olele/detour-go/query"
)

// fakeEngine scripts the engine side of the capability contract so the
// path-resolution protocol can be exercised branch by branch.
type fakeEngine struct {
	createErr error
	query     *fakeQuery

	gotPayload *engine.NavMesh
}

func (e *fakeEngine) Version() string { return "fake-engine" }

func (e *fakeEngine) CreateQuery(mesh *engine.NavMesh) (engine.Query, error) {
	e.gotPayload = mesh
	if e.createErr != nil {
		return nil, e.createErr
	}
	return e.query, nil
}

type nearestResult struct {
	pos math32.Vector3
	ref engine.PolyRef
	err error
}

type fakeQuery struct {
	nearest     []nearestResult
	nearestIdx  int
	gotHalf     []math32.Vector3
	corridor    []engine.PolyRef
	corridorErr error
	closest     math32.Vector3
	closestErr  error

	gotClosestPos  math32.Vector3
	gotClosestPoly engine.PolyRef
	closeCount     int
}

func (q *fakeQuery) NearestPoint(center, halfExtents math32.Vector3) (math32.Vector3, engine.PolyRef, error) {
	q.gotHalf = append(q.gotHalf, halfExtents)
	res := q.nearest[q.nearestIdx]
	q.nearestIdx++
	return res.pos, res.ref, res.err
}

func (q *fakeQuery) PathCorridor(startPoly engine.PolyRef, startPos math32.Vector3, endPoly engine.PolyRef, endPos math32.Vector3) ([]engine.PolyRef, error) {
	return q.corridor, q.corridorErr
}

func (q *fakeQuery) ClosestPoint(pos math32.Vector3, poly engine.PolyRef) (math32.Vector3, error) {
	q.gotClosestPos = pos
	q.gotClosestPoly = poly
	return q.closest, q.closestErr
}

func (q *fakeQuery) Close() {
	q.closeCount++
}

func flatSquareData() *builder.NavMeshData {
	return &builder.NavMeshData{
		Vertices: []float32{
			0, 0, 0,
			10, 0, 0,
			10, 0, 10,
			0, 0, 10,
		},
		Indices:        []uint16{0, 1, 2, 0, 2, 3},
		WalkableHeight: 0.2,
		WalkableRadius: 0.2,
		WalkableClimb:  0.2,
		CellSize:       0.1,
		CellHeight:     0.1,
	}
}

func newFake(fq *fakeQuery) (*fakeEngine, *query.NavQuery, error) {
	eng := &fakeEngine{query: fq}
	q, err := query.NewNavQuery(eng, flatSquareData())
	return eng, q, err
}

func TestNewNavQueryEngineFailure(t *testing.T) {
	eng := &fakeEngine{createErr: errors.New("bad mesh topology")}

	_, err := query.NewNavQuery(eng, flatSquareData())
	require.Error(t, err)

	var qe *query.Error
	require.ErrorAs(t, err, &qe)
	assert.Equal(t, query.KindConstruction, qe.Kind)
	assert.Contains(t, qe.Msg, "bad mesh topology")
}

func TestNewNavQueryInvalidDataSkipsEngine(t *testing.T) {
	eng := &fakeEngine{query: &fakeQuery{}}

	data := flatSquareData()
	data.CellSize = 0

	_, err := query.NewNavQuery(eng, data)
	require.Error(t, err)

	var qe *query.Error
	require.ErrorAs(t, err, &qe)
	assert.Equal(t, query.KindConstruction, qe.Kind)
	assert.Nil(t, eng.gotPayload, "engine must not be invoked for invalid input")
}

func TestReleaseExactlyOnce(t *testing.T) {
	fq := &fakeQuery{}
	_, q, err := newFake(fq)
	require.NoError(t, err)

	// released without ever serving a query, and released repeatedly
	q.Release()
	q.Release()
	q.Release()

	assert.Equal(t, 1, fq.closeCount)
}

func TestFindPathAfterRelease(t *testing.T) {
	fq := &fakeQuery{}
	_, q, err := newFake(fq)
	require.NoError(t, err)

	q.Release()

	_, err = q.FindPath(math32.Vector3{}, math32.Vector3{X: 1}, 0.2)
	require.Error(t, err)

	var qe *query.Error
	require.ErrorAs(t, err, &qe)
	assert.Equal(t, query.KindConstruction, qe.Kind)
}

func TestFindPathNoPolyFound(t *testing.T) {
	fq := &fakeQuery{
		nearest: []nearestResult{
			{ref: engine.NullPoly}, // nothing within the search box
		},
	}
	_, q, err := newFake(fq)
	require.NoError(t, err)
	defer q.Release()

	_, err = q.FindPath(math32.Vector3{}, math32.Vector3{X: 1}, 0.2)
	require.Error(t, err)
	assert.True(t, query.IsNoPolyFound(err))

	var qe *query.Error
	require.ErrorAs(t, err, &qe)
	assert.Equal(t, query.KindPoint, qe.Kind)
}

func TestFindPathNearestEngineFailure(t *testing.T) {
	fq := &fakeQuery{
		nearest: []nearestResult{
			{err: errors.New("query node pool exhausted")},
		},
	}
	_, q, err := newFake(fq)
	require.NoError(t, err)
	defer q.Release()

	_, err = q.FindPath(math32.Vector3{}, math32.Vector3{X: 1}, 0.2)
	require.Error(t, err)
	assert.False(t, query.IsNoPolyFound(err), "engine failure is not the not-found outcome")

	var qe *query.Error
	require.ErrorAs(t, err, &qe)
	assert.Equal(t, query.KindPoint, qe.Kind)
	assert.Contains(t, qe.Msg, "node pool exhausted")
}

func TestFindPathSearchBoxIsSymmetric(t *testing.T) {
	fq := &fakeQuery{
		nearest: []nearestResult{
			{pos: math32.Vector3{X: 1}, ref: 1},
			{pos: math32.Vector3{X: 2}, ref: 1},
		},
		corridor: []engine.PolyRef{1},
	}
	_, q, err := newFake(fq)
	require.NoError(t, err)
	defer q.Release()

	_, err = q.FindPath(math32.Vector3{X: 1}, math32.Vector3{X: 2}, 0.7)
	require.NoError(t, err)

	require.Len(t, fq.gotHalf, 2)
	for _, half := range fq.gotHalf {
		assert.Equal(t, math32.Vector3{X: 0.7, Y: 0.7, Z: 0.7}, half)
	}
}

func TestFindPathEmptyCorridor(t *testing.T) {
	fq := &fakeQuery{
		nearest: []nearestResult{
			{pos: math32.Vector3{X: 1}, ref: 1},
			{pos: math32.Vector3{X: 25}, ref: 2},
		},
		corridor: nil, // resolved both endpoints, but no route between them
	}
	_, q, err := newFake(fq)
	require.NoError(t, err)
	defer q.Release()

	_, err = q.FindPath(math32.Vector3{X: 1}, math32.Vector3{X: 25}, 0.2)
	require.Error(t, err)
	assert.True(t, query.IsNoPath(err))

	var qe *query.Error
	require.ErrorAs(t, err, &qe)
	assert.Equal(t, query.KindPath, qe.Kind)
}

func TestFindPathCorridorEngineFailure(t *testing.T) {
	fq := &fakeQuery{
		nearest: []nearestResult{
			{pos: math32.Vector3{X: 1}, ref: 1},
			{pos: math32.Vector3{X: 25}, ref: 2},
		},
		corridorErr: errors.New("corridor overflow"),
	}
	_, q, err := newFake(fq)
	require.NoError(t, err)
	defer q.Release()

	_, err = q.FindPath(math32.Vector3{X: 1}, math32.Vector3{X: 25}, 0.2)
	require.Error(t, err)
	assert.False(t, query.IsNoPath(err))

	var qe *query.Error
	require.ErrorAs(t, err, &qe)
	assert.Equal(t, query.KindPath, qe.Kind)
	assert.Contains(t, qe.Msg, "corridor overflow")
}

func TestFindPathSamePoly(t *testing.T) {
	snappedStart := math32.Vector3{X: 0.2, Z: 0.4}
	snappedEnd := math32.Vector3{X: 0.8, Z: 0.5}

	fq := &fakeQuery{
		nearest: []nearestResult{
			{pos: snappedStart, ref: 1},
			{pos: snappedEnd, ref: 1},
		},
		corridor: []engine.PolyRef{1},
	}
	_, q, err := newFake(fq)
	require.NoError(t, err)
	defer q.Release()

	waypoint, err := q.FindPath(math32.Vector3{X: 0.2, Y: 0.1, Z: 0.4}, math32.Vector3{X: 0.8, Y: 0.1, Z: 0.5}, 0.2)
	require.NoError(t, err)

	// the end's snapped position, not the start's
	assert.Equal(t, snappedEnd, waypoint)
	assert.NotEqual(t, snappedStart, waypoint)
}

func TestFindPathMultiPoly(t *testing.T) {
	snappedStart := math32.Vector3{X: 5, Z: 5}
	projected := math32.Vector3{X: 5, Z: 10}

	fq := &fakeQuery{
		nearest: []nearestResult{
			{pos: snappedStart, ref: 1},
			{pos: math32.Vector3{X: 5, Y: 2.5, Z: 15}, ref: 3},
		},
		corridor: []engine.PolyRef{1, 2, 3},
		closest:  projected,
	}
	_, q, err := newFake(fq)
	require.NoError(t, err)
	defer q.Release()

	waypoint, err := q.FindPath(math32.Vector3{X: 5, Z: 5}, math32.Vector3{X: 5, Y: 2.5, Z: 15}, 0.5)
	require.NoError(t, err)

	// the waypoint is the start's snapped position projected onto the
	// corridor's second polygon
	assert.Equal(t, projected, waypoint)
	assert.Equal(t, snappedStart, fq.gotClosestPos)
	assert.Equal(t, engine.PolyRef(2), fq.gotClosestPoly)
}

func TestFindPathClosestPointFailure(t *testing.T) {
	fq := &fakeQuery{
		nearest: []nearestResult{
			{pos: math32.Vector3{X: 5, Z: 5}, ref: 1},
			{pos: math32.Vector3{X: 5, Z: 15}, ref: 2},
		},
		corridor:   []engine.PolyRef{1, 2},
		closestErr: errors.New("invalid polygon reference 2"),
	}
	_, q, err := newFake(fq)
	require.NoError(t, err)
	defer q.Release()

	_, err = q.FindPath(math32.Vector3{X: 5, Z: 5}, math32.Vector3{X: 5, Z: 15}, 0.5)
	require.Error(t, err)

	var qe *query.Error
	require.ErrorAs(t, err, &qe)
	assert.Equal(t, query.KindPoint, qe.Kind)
}
