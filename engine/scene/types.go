// Package scene holds the decoded form of a streamed scene asset and the
// walk that picks collidable geometry out of it.
package scene

import (
	"github.com/spaghettifunk/exhibit/engine/math"
)

// Asset is a fully decoded scene asset: an ordered list of top-level scenes
// over a shared node table and mesh table. Only the first scene is walked.
type Asset struct {
	// Name is usually the file the asset came from.
	Name   string
	Scenes []Scene
	Nodes  []Node
	Meshes []Mesh
}

// Scene is one top-level scene; Roots index into Asset.Nodes.
type Scene struct {
	Name  string
	Roots []int
}

// Node is one entry of the node hierarchy.
type Node struct {
	Name  string
	Local math.Transform
	// Mesh indexes into Asset.Meshes; nil for nodes without geometry.
	Mesh     *int
	Children []int
}

// Mesh is a named set of primitives.
type Mesh struct {
	Name       string
	Primitives []Primitive
}

// Primitive is an indexed triangle list.
type Primitive struct {
	Positions []math.Vec3
	Indices   []uint32
}

// TriangleCount returns the number of complete triangles in the index buffer.
func (p *Primitive) TriangleCount() int {
	return len(p.Indices) / 3
}

// IsEmpty returns true if the primitive has no geometry.
func (p *Primitive) IsEmpty() bool {
	return len(p.Positions) == 0 || len(p.Indices) == 0
}

// MeshAt resolves a node's mesh reference. The second result is false for
// nodes without a mesh and for references past the end of the mesh table.
func (a *Asset) MeshAt(n *Node) (*Mesh, bool) {
	if a == nil || n == nil || n.Mesh == nil {
		return nil, false
	}
	idx := *n.Mesh
	if idx < 0 || idx >= len(a.Meshes) {
		return nil, false
	}
	return &a.Meshes[idx], true
}

// PrimitiveCount is the total number of primitives across every mesh.
func (a *Asset) PrimitiveCount() int {
	count := 0
	for _, m := range a.Meshes {
		count += len(m.Primitives)
	}
	return count
}
