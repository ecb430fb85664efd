package builder

import (
	"fmt"

	"github.com/o0olele/detour-go/engine"
	"github.com/o0olele/detour-go/geometry"
)

// worldToCell converts one world-unit coordinate into the engine's cell-unit
// space. The value is clamped to [0, +inf) before truncation so that floating
// point rounding near the minimum bound can never wrap into a huge unsigned
// cell coordinate.
func worldToCell(v, min, cellSize float32) uint16 {
	f := (v - min) / cellSize
	if f < 0 {
		f = 0
	}
	return uint16(f)
}

// BuildPayload validates the mesh data, derives its bounding box and
// quantizes every vertex, assembling the engine construction payload.
func BuildPayload(data *NavMeshData) (*engine.NavMesh, error) {
	if err := data.Validate(); err != nil {
		return nil, fmt.Errorf("invalid nav mesh data: %v", err)
	}

	bounds, err := geometry.BoundsFromVertices(data.Vertices)
	if err != nil {
		return nil, fmt.Errorf("failed to compute bounds: %v", err)
	}

	cellVerts := make([]uint16, 0, len(data.Vertices))
	for i := 0; i < len(data.Vertices); i += 3 {
		for j := 0; j < 3; j++ {
			cellVerts = append(cellVerts, worldToCell(data.Vertices[i+j], bounds.Min.Get(j), data.CellSize))
		}
	}

	return &engine.NavMesh{
		Verts:          cellVerts,
		VertCount:      uint32(data.VertexCount()),
		Indices:        data.Indices,
		TriangleCount:  uint32(data.TriangleCount()),
		BMin:           bounds.Min,
		BMax:           bounds.Max,
		WalkableHeight: data.WalkableHeight,
		WalkableRadius: data.WalkableRadius,
		WalkableClimb:  data.WalkableClimb,
		CellSize:       data.CellSize,
		CellHeight:     data.CellHeight,
	}, nil
}
