package physics

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spaghettifunk/exhibit/engine/math"
)

var (
	ErrNoTriangles         = errors.New("index buffer holds no complete triangle list")
	ErrIndexOutOfRange     = errors.New("triangle index out of range")
	ErrDegenerateMesh      = errors.New("mesh has no triangle with a non-zero area")
	ErrNonManifold         = errors.New("edge shared by more than two triangles")
	ErrInconsistentWinding = errors.New("adjacent triangles have inconsistent winding")
)

// TriMeshFlags select the clean-up and checks run while building a trimesh.
type TriMeshFlags uint8

const (
	// MergeDuplicateVertices collapses bit-identical positions into one vertex.
	MergeDuplicateVertices TriMeshFlags = 1 << iota
	// DeleteDegenerateTriangles drops triangles with repeated corners or zero area.
	DeleteDegenerateTriangles
	// DeleteDuplicateTriangles keeps one copy of triangles using the same three vertices.
	DeleteDuplicateTriangles
	// ValidateWinding rejects non-manifold edges and inconsistent orientation.
	ValidateWinding
)

const DefaultTriMeshFlags = MergeDuplicateVertices | DeleteDegenerateTriangles | DeleteDuplicateTriangles | ValidateWinding

// Below this doubled area a triangle counts as degenerate.
const degenerateArea float32 = 1e-10

func (f TriMeshFlags) Has(flag TriMeshFlags) bool {
	return f&flag == flag
}

func (f TriMeshFlags) String() string {
	if f == 0 {
		return "none"
	}
	var parts []string
	if f.Has(MergeDuplicateVertices) {
		parts = append(parts, "merge_duplicate_vertices")
	}
	if f.Has(DeleteDegenerateTriangles) {
		parts = append(parts, "delete_degenerate_triangles")
	}
	if f.Has(DeleteDuplicateTriangles) {
		parts = append(parts, "delete_duplicate_triangles")
	}
	if f.Has(ValidateWinding) {
		parts = append(parts, "validate_winding")
	}
	return strings.Join(parts, "|")
}

// TriMesh is the cleaned triangle soup behind a trimesh collider.
type TriMesh struct {
	vertices  []math.Vec3
	triangles [][3]uint32
	flags     TriMeshFlags
	bounds    math.Extents3D
}

func (m *TriMesh) Vertices() []math.Vec3  { return m.vertices }
func (m *TriMesh) Triangles() [][3]uint32 { return m.triangles }
func (m *TriMesh) Flags() TriMeshFlags    { return m.flags }
func (m *TriMesh) Bounds() math.Extents3D { return m.bounds }
func (m *TriMesh) TriangleCount() int     { return len(m.triangles) }

// NewTriMesh builds a trimesh collider from an indexed triangle list. The
// inputs are copied; the caller keeps ownership of its buffers.
func NewTriMesh(positions []math.Vec3, indices []uint32, flags TriMeshFlags) (*Collider, error) {
	if len(indices) == 0 || len(indices)%3 != 0 {
		return nil, fmt.Errorf("%w: %d indices", ErrNoTriangles, len(indices))
	}
	for i, idx := range indices {
		if int(idx) >= len(positions) {
			return nil, fmt.Errorf("%w: index %d at %d, %d vertices", ErrIndexOutOfRange, idx, i, len(positions))
		}
	}

	vertices := append([]math.Vec3(nil), positions...)
	remapped := append([]uint32(nil), indices...)
	if flags.Has(MergeDuplicateVertices) {
		vertices = math.GeometryDeduplicatePositions(vertices, remapped)
	}

	triangles := make([][3]uint32, 0, len(remapped)/3)
	usable := 0
	for i := 0; i < len(remapped); i += 3 {
		tri := [3]uint32{remapped[i], remapped[i+1], remapped[i+2]}
		if isDegenerate(vertices, tri) {
			if flags.Has(DeleteDegenerateTriangles) {
				continue
			}
		} else {
			usable++
		}
		triangles = append(triangles, tri)
	}
	if usable == 0 {
		return nil, fmt.Errorf("%w: %d triangles", ErrDegenerateMesh, len(remapped)/3)
	}

	if flags.Has(DeleteDuplicateTriangles) {
		triangles = dedupTriangles(triangles)
	}

	if flags.Has(ValidateWinding) {
		if err := validateEdges(triangles); err != nil {
			return nil, err
		}
	}

	mesh := &TriMesh{
		vertices:  vertices,
		triangles: triangles,
		flags:     flags,
		bounds:    math.GeometryExtents(vertices),
	}
	return &Collider{kind: ShapeTriMesh, mesh: mesh}, nil
}

func isDegenerate(vertices []math.Vec3, tri [3]uint32) bool {
	if tri[0] == tri[1] || tri[1] == tri[2] || tri[0] == tri[2] {
		return true
	}
	return math.TriangleDoubleArea(vertices[tri[0]], vertices[tri[1]], vertices[tri[2]]) <= degenerateArea
}

func sortedTriangle(tri [3]uint32) [3]uint32 {
	a, b, c := tri[0], tri[1], tri[2]
	if a > b {
		a, b = b, a
	}
	if b > c {
		b, c = c, b
	}
	if a > b {
		a, b = b, a
	}
	return [3]uint32{a, b, c}
}

func dedupTriangles(triangles [][3]uint32) [][3]uint32 {
	seen := make(map[[3]uint32]struct{}, len(triangles))
	out := triangles[:0]
	for _, tri := range triangles {
		key := sortedTriangle(tri)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, tri)
	}
	return out
}

// validateEdges walks every directed edge. An undirected edge used by more
// than two triangles is non-manifold; a directed edge used twice means two
// neighbours disagree on orientation.
func validateEdges(triangles [][3]uint32) error {
	undirected := make(map[[2]uint32]int, len(triangles)*3)
	directed := make(map[[2]uint32]int, len(triangles)*3)

	for t, tri := range triangles {
		for e := 0; e < 3; e++ {
			a, b := tri[e], tri[(e+1)%3]
			if a == b {
				continue
			}
			key := [2]uint32{a, b}
			if a > b {
				key = [2]uint32{b, a}
			}
			undirected[key]++
			if undirected[key] > 2 {
				return fmt.Errorf("%w: edge (%d, %d) at triangle %d", ErrNonManifold, key[0], key[1], t)
			}
			directed[[2]uint32{a, b}]++
			if directed[[2]uint32{a, b}] > 1 {
				return fmt.Errorf("%w: edge (%d, %d) at triangle %d", ErrInconsistentWinding, a, b, t)
			}
		}
	}
	return nil
}

// ColliderError ties a construction failure to the scene node and primitive
// it came from.
type ColliderError struct {
	Node      string
	Primitive int
	Err       error
}

func (e *ColliderError) Error() string {
	return fmt.Sprintf("collider for node %q primitive %d: %v", e.Node, e.Primitive, e.Err)
}

func (e *ColliderError) Unwrap() error {
	return e.Err
}
