package builder

import "fmt"

// NavMeshData is the caller-supplied description of the walkable world:
// a triangulated surface in world units plus agent traversal parameters and
// the quantization resolution. It is consumed once at query construction.
type NavMeshData struct {
	// Vertices in world units, 3 values per vertex.
	Vertices []float32 `json:"vertices"`
	// Indices of triangle vertices, 3 per triangle, referencing Vertices.
	Indices []uint16 `json:"indices"`

	// WalkableHeight is the agent height in world units.
	WalkableHeight float32 `json:"walkable_height"`
	// WalkableRadius is the agent radius in world units.
	WalkableRadius float32 `json:"walkable_radius"`
	// WalkableClimb is the maximum traversable ledge in world units.
	WalkableClimb float32 `json:"walkable_climb"`

	// CellSize is the xz-plane cell size in world units.
	CellSize float32 `json:"cell_size"`
	// CellHeight is the y-axis cell height in world units.
	CellHeight float32 `json:"cell_height"`
}

// Validate checks the structural invariants of the mesh data.
func (d *NavMeshData) Validate() error {
	if len(d.Vertices) == 0 || len(d.Vertices)%3 != 0 {
		return fmt.Errorf("vertices length %d is empty or not a multiple of 3", len(d.Vertices))
	}
	if len(d.Indices) == 0 || len(d.Indices)%3 != 0 {
		return fmt.Errorf("indices length %d is empty or not a multiple of 3", len(d.Indices))
	}

	vertCount := len(d.Vertices) / 3
	for i, idx := range d.Indices {
		if int(idx) >= vertCount {
			return fmt.Errorf("index %d at position %d is out of range (vertex count %d)", idx, i, vertCount)
		}
	}

	if d.CellSize <= 0 {
		return fmt.Errorf("cell size %f must be > 0", d.CellSize)
	}
	if d.CellHeight <= 0 {
		return fmt.Errorf("cell height %f must be > 0", d.CellHeight)
	}
	if d.WalkableHeight <= 0 || d.WalkableRadius <= 0 || d.WalkableClimb <= 0 {
		return fmt.Errorf("walkable parameters must be > 0")
	}
	return nil
}

// VertexCount returns the number of vertices.
func (d *NavMeshData) VertexCount() int {
	return len(d.Vertices) / 3
}

// TriangleCount returns the number of triangles.
func (d *NavMeshData) TriangleCount() int {
	return len(d.Indices) / 3
}
