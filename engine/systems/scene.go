package systems

import (
	"fmt"

	"github.com/spaghettifunk/exhibit/engine/assets"
	"github.com/spaghettifunk/exhibit/engine/core"
	"github.com/spaghettifunk/exhibit/engine/scene"
)

// SceneLoaderSystem streams scene assets on the job system.
type SceneLoaderSystem struct {
	jobSystem    *JobSystem
	assetManager *assets.AssetManager
}

type sceneLoadParams struct {
	handle *assets.Handle
}

func NewSceneLoaderSystem(js *JobSystem, am *assets.AssetManager) (*SceneLoaderSystem, error) {
	if js == nil || am == nil {
		return nil, fmt.Errorf("scene loader needs a job system and an asset manager")
	}
	return &SceneLoaderSystem{
		jobSystem:    js,
		assetManager: am,
	}, nil
}

func (sls *SceneLoaderSystem) Shutdown() error {
	return nil
}

// LoadScene issues one background load for name and returns its handle at
// once. The handle resolves when the job finishes; if the load fails it never
// does and the failure is logged here once.
func (sls *SceneLoaderSystem) LoadScene(name string) *assets.Handle {
	handle := assets.NewHandle(name)
	err := sls.jobSystem.Submit(JobTask{
		JobType:     JOB_TYPE_RESOURCE_LOAD,
		InputParams: &sceneLoadParams{handle: handle},
		OnStart:     sls.sceneLoadJobStart,
		OnComplete: func(result interface{}) {
			sls.sceneLoadJobSuccess(handle, result)
		},
		OnFailure: func(err error) {
			sls.sceneLoadJobFail(handle, err)
		},
	})
	if err != nil {
		sls.sceneLoadJobFail(handle, err)
	}
	return handle
}

/**
 * @brief Called when a scene loading job begins.
 *
 * @param params Scene loading parameters.
 * @return The decoded scene asset on success.
 */
func (sls *SceneLoaderSystem) sceneLoadJobStart(params interface{}) (interface{}, error) {
	loadParams, ok := params.(*sceneLoadParams)
	if !ok {
		return nil, fmt.Errorf("failed to cast params to `*sceneLoadParams`")
	}
	return sls.assetManager.LoadAsset(loadParams.handle.Path())
}

/**
 * @brief Called when the job completes successfully.
 */
func (sls *SceneLoaderSystem) sceneLoadJobSuccess(handle *assets.Handle, result interface{}) {
	asset, ok := result.(*scene.Asset)
	if !ok || asset == nil {
		sls.sceneLoadJobFail(handle, fmt.Errorf("scene job returned %T", result))
		return
	}
	if handle.Publish(asset) {
		core.LogInfo("Successfully loaded scene '%s' (handle %s).", handle.Path(), handle.ID().Short())
	}
}

/**
 * @brief Called when the job fails.
 */
func (sls *SceneLoaderSystem) sceneLoadJobFail(handle *assets.Handle, err error) {
	if handle.Fail(err) {
		core.LogError("Failed to load scene '%s': %s", handle.Path(), err.Error())
	}
}
