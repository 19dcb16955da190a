package systems

import (
	"context"

	"github.com/spaghettifunk/exhibit/engine/assets"
)

type SystemManagerConfig struct {
	AssetsDir string
	Workers   int
	QueueSize int
}

type SystemManager struct {
	jobSystem         *JobSystem
	assetManager      *assets.AssetManager
	sceneLoaderSystem *SceneLoaderSystem
}

func NewSystemManager(config SystemManagerConfig) (*SystemManager, error) {
	js, err := NewJobSystem(config.Workers, config.QueueSize)
	if err != nil {
		return nil, err
	}

	am, err := assets.NewAssetManager(config.AssetsDir)
	if err != nil {
		js.Shutdown()
		return nil, err
	}
	if err := am.Initialize(); err != nil {
		am.Shutdown()
		js.Shutdown()
		return nil, err
	}

	sls, err := NewSceneLoaderSystem(js, am)
	if err != nil {
		am.Shutdown()
		js.Shutdown()
		return nil, err
	}

	return &SystemManager{
		jobSystem:         js,
		assetManager:      am,
		sceneLoaderSystem: sls,
	}, nil
}

func (sm *SystemManager) JobSystem() *JobSystem {
	return sm.jobSystem
}

func (sm *SystemManager) AssetManager() *assets.AssetManager {
	return sm.assetManager
}

func (sm *SystemManager) SceneLoader() *SceneLoaderSystem {
	return sm.sceneLoaderSystem
}

// Watch runs the asset watcher until ctx is done.
func (sm *SystemManager) Watch(ctx context.Context) error {
	return sm.assetManager.Watch(ctx)
}

func (sm *SystemManager) Shutdown() error {
	if err := sm.sceneLoaderSystem.Shutdown(); err != nil {
		return err
	}
	if err := sm.jobSystem.Shutdown(); err != nil {
		return err
	}
	if err := sm.assetManager.Shutdown(); err != nil {
		return err
	}
	return nil
}
