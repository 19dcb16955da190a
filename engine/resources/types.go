package resources

import (
	"path/filepath"
	"strings"

	"github.com/spaghettifunk/exhibit/engine/scene"
)

type ResourceType int

/** @brief Pre-defined resource types. */
const (
	/** @brief Files the engine does not know how to load. */
	ResourceTypeNone ResourceType = iota
	/** @brief glTF 2.0 scene, either .gltf or .glb. */
	ResourceTypeGLTF
	/** @brief Hand written YAML scene manifest (.scene.yaml / .scene.yml). */
	ResourceTypeSceneManifest
)

func (t ResourceType) String() string {
	switch t {
	case ResourceTypeGLTF:
		return "gltf"
	case ResourceTypeSceneManifest:
		return "scene-manifest"
	}
	return "none"
}

// DetermineResourceType maps a file name to the resource type that loads it.
func DetermineResourceType(path string) ResourceType {
	name := strings.ToLower(filepath.Base(path))
	switch {
	case strings.HasSuffix(name, ".scene.yaml"), strings.HasSuffix(name, ".scene.yml"):
		return ResourceTypeSceneManifest
	}
	switch filepath.Ext(name) {
	case ".gltf", ".glb":
		return ResourceTypeGLTF
	}
	return ResourceTypeNone
}

/**
 * @brief A generic structure for a resource. All resource loaders
 * load data into these.
 */
type Resource struct {
	/** @brief The type of the loader which produced this resource. */
	Type ResourceType
	/** @brief The name of the resource. */
	Name string
	/** @brief The full file path of the resource. */
	FullPath string
	/** @brief The size of the source file in bytes. */
	DataSize uint64
	/** @brief The decoded scene. */
	Data *scene.Asset
}
