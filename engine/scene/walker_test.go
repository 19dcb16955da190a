package scene

import (
	"testing"

	"github.com/spaghettifunk/exhibit/engine/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func meshIndex(i int) *int {
	return &i
}

func quad() Primitive {
	return Primitive{
		Positions: []math.Vec3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 1}, {X: 0, Y: 0, Z: 1}},
		Indices:   []uint32{0, 1, 2, 0, 2, 3},
	}
}

// room is a small hall: a floor, a decorative statue, a collision proxy for
// the statue nested under it and an empty grouping node.
func room() *Asset {
	return &Asset{
		Name:   "room",
		Scenes: []Scene{{Name: "hall", Roots: []int{0, 1, 4}}},
		Nodes: []Node{
			{Name: "floor", Local: math.TransformCreate(), Mesh: meshIndex(0)},
			{Name: "statue", Local: math.TransformFromPosition(math.NewVec3(1, 2, 3)), Mesh: meshIndex(1), Children: []int{2}},
			{Name: "statue_collision", Local: math.TransformFromPosition(math.NewVec3(0, 1, 0)), Mesh: meshIndex(0)},
			{Name: "orphan", Local: math.TransformCreate(), Mesh: meshIndex(0)},
			{Name: "lights", Local: math.TransformCreate()},
		},
		Meshes: []Mesh{
			{Name: "plane", Primitives: []Primitive{quad()}},
			{Name: "statue", Primitives: []Primitive{quad()}},
		},
	}
}

func names(t *testing.T, w *Walk) []string {
	t.Helper()
	var out []string
	for c := range w.Candidates() {
		out = append(out, c.Node.Name)
	}
	return out
}

func TestWalkFiltersByPolicy(t *testing.T) {
	cases := []struct {
		name     string
		policy   FilterPolicy
		expected []string
		excluded int
	}{
		{"all", AcceptAll(), []string{"floor", "statue", "statue_collision"}, 1},
		{"suffix", SuffixFilter(""), []string{"statue_collision"}, 3},
		{"custom_suffix", SuffixFilter("floor"), []string{"floor"}, 3},
		{"nil_policy_accepts_all", nil, []string{"floor", "statue", "statue_collision"}, 1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w, err := NewWalk(room(), c.policy)
			require.NoError(t, err)
			assert.Equal(t, c.expected, names(t, w))
			assert.Equal(t, c.excluded, w.Excluded())
		})
	}
}

func TestWalkComposesAncestorTransforms(t *testing.T) {
	w, err := NewWalk(room(), AcceptAll())
	require.NoError(t, err)

	worlds := map[string]math.Transform{}
	for c := range w.Candidates() {
		worlds[c.Node.Name] = c.World
	}

	require.Contains(t, worlds, "statue")
	assert.True(t, worlds["statue"].Position.Compare(math.NewVec3(1, 2, 3), 1e-6))
	require.Contains(t, worlds, "statue_collision")
	assert.True(t, worlds["statue_collision"].Position.Compare(math.NewVec3(1, 3, 3), 1e-6))
}

func TestWalkComposesRotationAndScale(t *testing.T) {
	turn := math.NewQuatFromAxisAngle(math.NewVec3Up(), math.K_HALF_PI, true)
	asset := &Asset{
		Scenes: []Scene{{Roots: []int{0}}},
		Nodes: []Node{
			{Name: "pivot", Local: math.TransformFromPositionRotationScale(math.NewVec3(0, 0, 5), turn, math.NewVec3(2, 2, 2)), Children: []int{1}},
			{Name: "arm", Local: math.TransformFromPosition(math.NewVec3(1, 0, 0)), Mesh: meshIndex(0)},
		},
		Meshes: []Mesh{{Primitives: []Primitive{quad()}}},
	}

	w, err := NewWalk(asset, AcceptAll())
	require.NoError(t, err)

	var got []Candidate
	for c := range w.Candidates() {
		got = append(got, c)
	}
	require.Len(t, got, 1)

	// a quarter turn about +Y maps +X to -Z
	assert.True(t, got[0].World.Position.Compare(math.NewVec3(0, 0, 3), 1e-5), "got %v", got[0].World.Position)
	assert.True(t, got[0].World.Scale.Compare(math.NewVec3(2, 2, 2), 1e-6))

	// the composed transform agrees with the matrix product local*parent
	parent := asset.Nodes[0].Local.GetLocal()
	child := asset.Nodes[1].Local.GetLocal()
	p := math.NewVec3(0.5, 0.25, -1)
	expected := p.Transform(child.Mul(parent))
	assert.True(t, got[0].World.TransformPoint(p).Compare(expected, 1e-5))
}

func TestWalkIsSinglePass(t *testing.T) {
	w, err := NewWalk(room(), AcceptAll())
	require.NoError(t, err)

	assert.Len(t, names(t, w), 3)
	assert.Empty(t, names(t, w))
}

func TestWalkStopsEarly(t *testing.T) {
	w, err := NewWalk(room(), AcceptAll())
	require.NoError(t, err)

	for c := range w.Candidates() {
		assert.Equal(t, "floor", c.Node.Name)
		break
	}
	assert.Empty(t, names(t, w))
}

func TestWalkEmptyScene(t *testing.T) {
	asset := room()
	asset.Scenes = nil

	w, err := NewWalk(asset, AcceptAll())
	require.ErrorIs(t, err, ErrEmptyScene)
	require.NotNil(t, w)
	assert.Empty(t, names(t, w))

	w, err = NewWalk(nil, AcceptAll())
	require.ErrorIs(t, err, ErrNilAsset)
	assert.Empty(t, names(t, w))
}

func TestWalkSkipsBrokenReferences(t *testing.T) {
	cases := []struct {
		name  string
		nodes []Node
		want  []string
	}{
		{
			name: "cycle",
			nodes: []Node{
				{Name: "a", Mesh: meshIndex(0), Children: []int{1}},
				{Name: "b", Mesh: meshIndex(0), Children: []int{0}},
			},
			want: []string{"a", "b"},
		},
		{
			name: "shared_child",
			nodes: []Node{
				{Name: "a", Children: []int{2}},
				{Name: "b", Children: []int{2}},
				{Name: "c", Mesh: meshIndex(0)},
			},
			want: []string{"c"},
		},
		{
			name: "dangling_mesh",
			nodes: []Node{
				{Name: "a", Mesh: meshIndex(7)},
				{Name: "b", Mesh: meshIndex(0)},
			},
			want: []string{"b"},
		},
		{
			name: "dangling_child",
			nodes: []Node{
				{Name: "a", Mesh: meshIndex(0), Children: []int{42, -1}},
				{Name: "b", Mesh: meshIndex(0)},
			},
			want: []string{"a", "b"},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			roots := []int{0, 1}
			asset := &Asset{
				Scenes: []Scene{{Roots: roots}},
				Nodes:  c.nodes,
				Meshes: []Mesh{{Primitives: []Primitive{quad()}}},
			}
			for i := range asset.Nodes {
				asset.Nodes[i].Local = math.TransformCreate()
			}
			w, err := NewWalk(asset, AcceptAll())
			require.NoError(t, err)
			assert.Equal(t, c.want, names(t, w))
		})
	}
}

func TestWalkOnlyVisitsFirstScene(t *testing.T) {
	asset := room()
	asset.Scenes = append(asset.Scenes, Scene{Name: "annex", Roots: []int{3}})

	w, err := NewWalk(asset, AcceptAll())
	require.NoError(t, err)
	assert.Equal(t, []string{"floor", "statue", "statue_collision"}, names(t, w))

	// reordering the scene list changes what gets walked
	asset.Scenes[0], asset.Scenes[1] = asset.Scenes[1], asset.Scenes[0]
	w, err = NewWalk(asset, AcceptAll())
	require.NoError(t, err)
	assert.Equal(t, []string{"orphan"}, names(t, w))
}
