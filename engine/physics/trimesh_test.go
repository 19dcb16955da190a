package physics

import (
	"io"
	"os"
	"testing"

	"github.com/spaghettifunk/exhibit/engine/core"
	"github.com/spaghettifunk/exhibit/engine/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	core.SetLogOutput(io.Discard)
	os.Exit(m.Run())
}

// quadPositions is a unit square on the XZ plane split into two triangles
// with the shared diagonal vertices stored twice, as exporters often do.
func quadPositions() ([]math.Vec3, []uint32) {
	return []math.Vec3{
			{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 1},
			{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 1}, {X: 0, Y: 0, Z: 1},
		},
		[]uint32{0, 2, 1, 3, 5, 4}
}

func TestNewTriMesh(t *testing.T) {
	quadPos, quadIdx := quadPositions()

	cases := []struct {
		name      string
		positions []math.Vec3
		indices   []uint32
		flags     TriMeshFlags
		err       error
		vertices  int
		triangles int
	}{
		{name: "quad_merged", positions: quadPos, indices: quadIdx, flags: DefaultTriMeshFlags, vertices: 4, triangles: 2},
		{name: "quad_unmerged", positions: quadPos, indices: quadIdx, flags: DeleteDegenerateTriangles, vertices: 6, triangles: 2},
		{name: "empty", positions: quadPos, indices: nil, flags: DefaultTriMeshFlags, err: ErrNoTriangles},
		{name: "partial_triangle", positions: quadPos, indices: []uint32{0, 1}, flags: DefaultTriMeshFlags, err: ErrNoTriangles},
		{name: "index_out_of_range", positions: quadPos, indices: []uint32{0, 1, 6}, flags: DefaultTriMeshFlags, err: ErrIndexOutOfRange},
		{
			name:      "zero_area_only",
			positions: []math.Vec3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 2, Y: 0, Z: 0}},
			indices:   []uint32{0, 1, 2, 2, 1, 0},
			flags:     DefaultTriMeshFlags,
			err:       ErrDegenerateMesh,
		},
		{
			name:      "zero_area_kept_without_flag",
			positions: []math.Vec3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 2, Y: 0, Z: 0}},
			indices:   []uint32{0, 1, 2},
			flags:     0,
			err:       ErrDegenerateMesh,
		},
		{
			name:      "repeated_corner_dropped",
			positions: []math.Vec3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 0, Z: 1}},
			indices:   []uint32{0, 2, 1, 0, 0, 1},
			flags:     DefaultTriMeshFlags,
			vertices:  3,
			triangles: 1,
		},
		{
			name:      "duplicate_triangle_dropped",
			positions: []math.Vec3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 0, Z: 1}},
			indices:   []uint32{0, 2, 1, 2, 1, 0},
			flags:     DefaultTriMeshFlags,
			vertices:  3,
			triangles: 1,
		},
		{
			name:      "duplicate_triangle_breaks_winding",
			positions: []math.Vec3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 0, Z: 1}},
			indices:   []uint32{0, 2, 1, 0, 2, 1},
			flags:     ValidateWinding,
			err:       ErrInconsistentWinding,
		},
		{
			name:      "flipped_neighbour",
			positions: []math.Vec3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 1}, {X: 0, Y: 0, Z: 1}},
			indices:   []uint32{0, 2, 1, 0, 2, 3},
			flags:     DefaultTriMeshFlags,
			err:       ErrInconsistentWinding,
		},
		{
			name: "fin_edge",
			positions: []math.Vec3{
				{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 0, Z: 1}, {X: 0, Y: 0, Z: -1}, {X: 0, Y: 1, Z: 0},
			},
			indices: []uint32{0, 1, 2, 1, 0, 3, 0, 1, 4},
			flags:   DefaultTriMeshFlags,
			err:     ErrNonManifold,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			collider, err := NewTriMesh(c.positions, c.indices, c.flags)
			if c.err != nil {
				require.ErrorIs(t, err, c.err)
				assert.Nil(t, collider)
				return
			}
			require.NoError(t, err)
			require.NoError(t, collider.Validate())
			assert.Equal(t, ShapeTriMesh, collider.Kind())

			mesh := collider.TriMesh()
			require.NotNil(t, mesh)
			assert.Len(t, mesh.Vertices(), c.vertices)
			assert.Equal(t, c.triangles, mesh.TriangleCount())
			assert.Equal(t, c.flags, mesh.Flags())
		})
	}
}

func TestNewTriMeshDoesNotTouchInput(t *testing.T) {
	positions, indices := quadPositions()
	before := append([]uint32(nil), indices...)

	collider, err := NewTriMesh(positions, indices, DefaultTriMeshFlags)
	require.NoError(t, err)
	assert.Equal(t, before, indices)
	assert.Len(t, positions, 6)

	bounds := collider.Bounds()
	assert.Equal(t, math.NewVec3(0, 0, 0), bounds.Min)
	assert.Equal(t, math.NewVec3(1, 0, 1), bounds.Max)
}

func TestTriMeshFlagsString(t *testing.T) {
	assert.Equal(t, "none", TriMeshFlags(0).String())
	assert.Equal(t, "merge_duplicate_vertices|validate_winding", (MergeDuplicateVertices | ValidateWinding).String())
	assert.True(t, DefaultTriMeshFlags.Has(DeleteDuplicateTriangles|MergeDuplicateVertices))
	assert.False(t, MergeDuplicateVertices.Has(ValidateWinding))
}

func TestColliderErrorUnwraps(t *testing.T) {
	_, err := NewTriMesh(nil, nil, DefaultTriMeshFlags)
	wrapped := &ColliderError{Node: "bench_collision", Primitive: 2, Err: err}

	assert.ErrorIs(t, wrapped, ErrNoTriangles)
	assert.Contains(t, wrapped.Error(), `"bench_collision"`)
	assert.Contains(t, wrapped.Error(), "primitive 2")
}
