package assets

import (
	"sync/atomic"

	"github.com/spaghettifunk/exhibit/engine/core"
	"github.com/spaghettifunk/exhibit/engine/scene"
)

// Handle refers to one streamed scene asset. The loading side publishes the
// decoded asset at most once; readers on other goroutines see either nothing
// or the complete asset.
type Handle struct {
	id   core.Identifier
	path string

	data atomic.Pointer[scene.Asset]
	err  atomic.Pointer[error]
}

func NewHandle(path string) *Handle {
	return &Handle{
		id:   core.NewIdentifier(),
		path: path,
	}
}

func (h *Handle) ID() core.Identifier {
	return h.id
}

func (h *Handle) Path() string {
	return h.path
}

// Resolve returns the asset once it is available. It never blocks.
func (h *Handle) Resolve() (*scene.Asset, bool) {
	asset := h.data.Load()
	return asset, asset != nil
}

// Publish makes asset available. Only the first publish wins; later calls
// and calls after Fail return false.
func (h *Handle) Publish(asset *scene.Asset) bool {
	if asset == nil || h.err.Load() != nil {
		return false
	}
	return h.data.CompareAndSwap(nil, asset)
}

// Fail records why the asset will never become available.
func (h *Handle) Fail(err error) bool {
	if err == nil || h.data.Load() != nil {
		return false
	}
	return h.err.CompareAndSwap(nil, &err)
}

// Err is the load failure, if any.
func (h *Handle) Err() error {
	if p := h.err.Load(); p != nil {
		return *p
	}
	return nil
}
