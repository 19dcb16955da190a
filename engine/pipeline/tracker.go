package pipeline

import "github.com/spaghettifunk/exhibit/engine/scene"

type LoadState int

const (
	Pending LoadState = iota
	Loaded
)

func (s LoadState) String() string {
	if s == Loaded {
		return "loaded"
	}
	return "pending"
}

// AssetSource is anything that may eventually hand over a decoded scene.
// Resolve must not block.
type AssetSource interface {
	Resolve() (*scene.Asset, bool)
}

// Tracker owns the load flag of one streamed asset. It moves from Pending to
// Loaded at most once and never back; after that the source is not asked
// again.
type Tracker struct {
	source AssetSource
	state  LoadState
	data   *scene.Asset
}

func NewTracker(source AssetSource) *Tracker {
	return &Tracker{source: source}
}

// Poll checks the source without blocking.
func (t *Tracker) Poll() LoadState {
	if t.state == Loaded {
		return Loaded
	}
	if t.source == nil {
		return Pending
	}
	if asset, ok := t.source.Resolve(); ok && asset != nil {
		t.data = asset
		t.state = Loaded
	}
	return t.state
}

func (t *Tracker) State() LoadState {
	return t.state
}

// Data returns the asset once Poll has seen it.
func (t *Tracker) Data() (*scene.Asset, bool) {
	return t.data, t.state == Loaded
}
