package scene

import (
	"errors"
	"iter"

	"github.com/spaghettifunk/exhibit/engine/core"
	"github.com/spaghettifunk/exhibit/engine/math"
)

var (
	ErrEmptyScene = errors.New("scene asset has no top-level scenes")
	ErrNilAsset   = errors.New("scene asset is nil")
)

// Candidate is a node that carries mesh data and passed the filter policy.
type Candidate struct {
	// Index is the node's position in Asset.Nodes.
	Index int
	Node  *Node
	// World is the node transform with every ancestor folded in.
	World math.Transform
	Mesh  *Mesh
}

// Walk is a single-pass traversal of one scene of an asset. It reflects the
// asset as it was when the walk started and cannot be restarted.
type Walk struct {
	asset    *Asset
	policy   FilterPolicy
	consumed bool

	visited  map[int]struct{}
	excluded int
}

type walkFrame struct {
	index  int
	parent math.Transform
}

// NewWalk prepares a walk of asset's first scene. The error is
// ErrEmptyScene when the asset has no top-level scenes; the returned walk is
// still usable and yields nothing.
func NewWalk(asset *Asset, policy FilterPolicy) (*Walk, error) {
	if policy == nil {
		policy = AcceptAll()
	}
	w := &Walk{
		asset:   asset,
		policy:  policy,
		visited: make(map[int]struct{}),
	}
	if asset == nil {
		w.consumed = true
		return w, ErrNilAsset
	}
	if len(asset.Scenes) == 0 {
		w.consumed = true
		return w, ErrEmptyScene
	}
	return w, nil
}

// Excluded is the number of visited nodes left out because they had no mesh
// data or failed the policy. It is final once Candidates has been drained.
func (w *Walk) Excluded() int {
	return w.excluded
}

// Candidates yields collidable nodes depth-first in document order. Only the
// first range over the sequence produces values.
func (w *Walk) Candidates() iter.Seq[Candidate] {
	return func(yield func(Candidate) bool) {
		if w.consumed {
			return
		}
		w.consumed = true

		roots := w.asset.Scenes[0].Roots
		stack := make([]walkFrame, 0, len(roots))
		for i := len(roots) - 1; i >= 0; i-- {
			stack = append(stack, walkFrame{index: roots[i], parent: math.TransformCreate()})
		}

		for len(stack) > 0 {
			frame := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			if frame.index < 0 || frame.index >= len(w.asset.Nodes) {
				core.LogDebug("scene walk: node index %d out of range, skipping", frame.index)
				continue
			}
			if _, seen := w.visited[frame.index]; seen {
				core.LogDebug("scene walk: node %d reached twice, skipping", frame.index)
				continue
			}
			w.visited[frame.index] = struct{}{}

			node := &w.asset.Nodes[frame.index]
			world := node.Local.Compose(frame.parent)

			for i := len(node.Children) - 1; i >= 0; i-- {
				stack = append(stack, walkFrame{index: node.Children[i], parent: world})
			}

			mesh, ok := w.asset.MeshAt(node)
			if !ok || !w.policy.Accept(node.Name) {
				w.excluded++
				continue
			}

			if !yield(Candidate{Index: frame.index, Node: node, World: world, Mesh: mesh}) {
				return
			}
		}
	}
}
