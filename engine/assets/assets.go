package assets

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spaghettifunk/exhibit/engine/assets/loaders"
	"github.com/spaghettifunk/exhibit/engine/core"
	"github.com/spaghettifunk/exhibit/engine/resources"
	"github.com/spaghettifunk/exhibit/engine/scene"
)

var (
	ErrAssetNotFound     = errors.New("asset not found")
	ErrNoLoader          = errors.New("no loader registered for asset type")
	ErrManagerClosed     = errors.New("asset manager already closed")
	ErrNoAssetsDirectory = errors.New("assets directory does not exist")
)

type AssetInfo struct {
	Path     string
	Type     resources.ResourceType
	Modified time.Time
	// LastLoaded is zero until the asset has been loaded once.
	LastLoaded time.Time
}

// AssetManager indexes the scene files under one directory, keeps the index
// current through fsnotify and loads files with the loader registered for
// their type.
type AssetManager struct {
	root    string
	assets  map[string]AssetInfo
	loaders map[resources.ResourceType]Loader

	mutex sync.RWMutex

	fsnotify *fsnotify.Watcher
	isClosed bool
}

func NewAssetManager(assetsDir string) (*AssetManager, error) {
	s, err := os.Stat(assetsDir)
	if err != nil || !s.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNoAssetsDirectory, assetsDir)
	}
	root, err := filepath.Abs(assetsDir)
	if err != nil {
		return nil, err
	}

	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &AssetManager{
		root:     root,
		assets:   make(map[string]AssetInfo),
		loaders:  make(map[resources.ResourceType]Loader),
		fsnotify: fsWatch,
	}, nil
}

// Initialize registers the scene loaders and indexes the assets directory.
func (am *AssetManager) Initialize() error {
	am.registerLoader(resources.ResourceTypeGLTF, &loaders.GLTFLoader{})
	am.registerLoader(resources.ResourceTypeSceneManifest, &loaders.SceneManifestLoader{})

	if err := am.addRecursive(am.root); err != nil {
		return err
	}
	core.LogInfo("asset manager indexed %d scene files under %s", am.Len(), am.root)
	return nil
}

func (am *AssetManager) Root() string {
	return am.root
}

// Len is the number of indexed assets.
func (am *AssetManager) Len() int {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	return len(am.assets)
}

// Lookup returns the index entry of name, relative to the assets directory.
func (am *AssetManager) Lookup(name string) (AssetInfo, bool) {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	info, ok := am.assets[am.key(name)]
	return info, ok
}

// AddRecursive starts watching the named directory and all sub-directories.
func (am *AssetManager) addRecursive(name string) error {
	if am.isClosed {
		return ErrManagerClosed
	}
	return am.watchRecursive(name)
}

// Register loaders for each asset type
func (am *AssetManager) registerLoader(assetType resources.ResourceType, loader Loader) {
	am.loaders[assetType] = loader
}

// LoadAsset loads the scene file name, relative to the assets directory,
// with the loader registered for its type. It is safe to call from job
// workers.
func (am *AssetManager) LoadAsset(name string) (*scene.Asset, error) {
	path := am.key(name)

	am.mutex.RLock()
	asset, exists := am.assets[path]
	am.mutex.RUnlock()
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrAssetNotFound, name)
	}

	loader, loaderExists := am.loaders[asset.Type]
	if !loaderExists {
		return nil, fmt.Errorf("%w: %s", ErrNoLoader, asset.Type)
	}

	res, err := loader.Load(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := loader.Unload(res); err != nil {
			core.LogWarn("failed to unload resource %s: %s", res.FullPath, err.Error())
		}
	}()

	am.mutex.Lock()
	if info, ok := am.assets[path]; ok {
		info.LastLoaded = time.Now()
		am.assets[path] = info
	}
	am.mutex.Unlock()

	core.LogDebug("loaded %s asset %s (%d bytes, %d nodes, %d meshes)", res.Type, name, res.DataSize, len(res.Data.Nodes), len(res.Data.Meshes))
	return res.Data, nil
}

// Watch keeps the index in sync with the assets directory until ctx is done
// or the manager is shut down. Changes to a scene that was already loaded are
// reported but not applied: the collision world is built once.
func (am *AssetManager) Watch(ctx context.Context) error {
	for {
		select {
		case e, ok := <-am.fsnotify.Events:
			if !ok {
				return nil
			}
			am.handleEvent(e)

		case err, ok := <-am.fsnotify.Errors:
			if !ok {
				return nil
			}
			core.LogError("asset watcher: %s", err.Error())

		case <-ctx.Done():
			return nil
		}
	}
}

func (am *AssetManager) handleEvent(e fsnotify.Event) {
	s, err := os.Stat(e.Name)
	if err == nil && s != nil && s.IsDir() {
		if e.Op&fsnotify.Create != 0 {
			if err := am.watchRecursive(e.Name); err != nil {
				core.LogWarn("failed to watch %s: %s", e.Name, err.Error())
			}
		}
		return
	}
	// Handle create or modify events
	if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
		if info, ok := am.Lookup(e.Name); ok && !info.LastLoaded.IsZero() {
			core.LogWarn("scene %s changed on disk after it was loaded; restart to rebuild its collision", e.Name)
		}
		am.handleFileEvent(e.Name)
	}
	// Can't stat a deleted directory, so just pretend that it's always a
	// directory and try to remove it from the watch list.
	if e.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
		am.removeAsset(e.Name)
		_ = am.fsnotify.Remove(e.Name)
	}
}

// Shutdown stops the watcher.
func (am *AssetManager) Shutdown() error {
	am.mutex.Lock()
	defer am.mutex.Unlock()
	if am.isClosed {
		return nil
	}
	am.isClosed = true
	return am.fsnotify.Close()
}

// watchRecursive adds all directories under the given one to the watch list
// and indexes every file found on the way.
func (am *AssetManager) watchRecursive(path string) error {
	return filepath.WalkDir(path, func(walkPath string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return am.fsnotify.Add(walkPath)
		}
		am.handleFileEvent(walkPath)
		return nil
	})
}

// Handle the creation or modification of a file
func (am *AssetManager) handleFileEvent(path string) {
	assetType := resources.DetermineResourceType(path)
	if assetType == resources.ResourceTypeNone {
		return
	}

	var modified time.Time
	if s, err := os.Stat(path); err == nil {
		modified = s.ModTime()
	}

	am.mutex.Lock()
	defer am.mutex.Unlock()

	key := am.key(path)
	info := am.assets[key]
	info.Path = key
	info.Type = assetType
	info.Modified = modified
	am.assets[key] = info
}

// Remove the asset from the index if it was deleted
func (am *AssetManager) removeAsset(path string) {
	am.mutex.Lock()
	defer am.mutex.Unlock()

	delete(am.assets, am.key(path))
}

// key resolves name against the assets directory.
func (am *AssetManager) key(name string) string {
	if filepath.IsAbs(name) {
		return filepath.Clean(name)
	}
	return filepath.Join(am.root, name)
}
