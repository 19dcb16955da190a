package loaders

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spaghettifunk/exhibit/engine/math"
	"github.com/spaghettifunk/exhibit/engine/resources"
	"github.com/spaghettifunk/exhibit/engine/scene"
	"gopkg.in/yaml.v3"
)

// SceneManifest is the YAML form of a scene: the same tables as glTF with
// inline vertex data. It is meant for blockouts and test fixtures.
type SceneManifest struct {
	Name   string          `yaml:"name"`
	Scenes []ManifestScene `yaml:"scenes"`
	Nodes  []ManifestNode  `yaml:"nodes"`
	Meshes []ManifestMesh  `yaml:"meshes"`
}

type ManifestScene struct {
	Name  string `yaml:"name"`
	Nodes []int  `yaml:"nodes"`
}

type ManifestNode struct {
	Name        string      `yaml:"name"`
	Translation *[3]float32 `yaml:"translation,omitempty"`
	// Rotation is a quaternion in x, y, z, w order.
	Rotation *[4]float32 `yaml:"rotation,omitempty"`
	Scale    *[3]float32 `yaml:"scale,omitempty"`
	Mesh     *int        `yaml:"mesh,omitempty"`
	Children []int       `yaml:"children,omitempty"`
}

type ManifestMesh struct {
	Name       string              `yaml:"name"`
	Primitives []ManifestPrimitive `yaml:"primitives"`
}

type ManifestPrimitive struct {
	Positions [][3]float32 `yaml:"positions"`
	Indices   []uint32     `yaml:"indices"`
}

// SceneManifestLoader reads .scene.yaml files.
type SceneManifestLoader struct{}

func (ml *SceneManifestLoader) Load(path string) (*resources.Resource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	asset, err := ParseSceneManifest(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse scene manifest %s: %w", path, err)
	}
	if asset.Name == "" {
		asset.Name = filepath.Base(path)
	}

	return &resources.Resource{
		Type:     resources.ResourceTypeSceneManifest,
		Name:     asset.Name,
		FullPath: path,
		DataSize: uint64(len(data)),
		Data:     asset,
	}, nil
}

func (ml *SceneManifestLoader) Unload(*resources.Resource) error {
	return nil
}

// ParseSceneManifest decodes a YAML scene manifest.
func ParseSceneManifest(data []byte) (*scene.Asset, error) {
	var manifest SceneManifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, err
	}
	if len(manifest.Scenes) == 0 && len(manifest.Nodes) == 0 && len(manifest.Meshes) == 0 {
		return nil, errors.New("manifest is empty")
	}
	return manifest.Asset(), nil
}

// Asset converts the manifest into the engine's scene representation.
func (m *SceneManifest) Asset() *scene.Asset {
	asset := &scene.Asset{
		Name:   m.Name,
		Scenes: make([]scene.Scene, 0, len(m.Scenes)),
		Nodes:  make([]scene.Node, 0, len(m.Nodes)),
		Meshes: make([]scene.Mesh, 0, len(m.Meshes)),
	}

	for _, s := range m.Scenes {
		asset.Scenes = append(asset.Scenes, scene.Scene{Name: s.Name, Roots: s.Nodes})
	}

	for _, n := range m.Nodes {
		local := math.TransformCreate()
		if n.Translation != nil {
			local.Position = math.NewVec3(n.Translation[0], n.Translation[1], n.Translation[2])
		}
		if n.Rotation != nil {
			local.Rotation = math.Quaternion{X: n.Rotation[0], Y: n.Rotation[1], Z: n.Rotation[2], W: n.Rotation[3]}.Normalize()
		}
		if n.Scale != nil {
			local.Scale = math.NewVec3(n.Scale[0], n.Scale[1], n.Scale[2])
		}
		asset.Nodes = append(asset.Nodes, scene.Node{
			Name:     n.Name,
			Local:    local,
			Mesh:     n.Mesh,
			Children: n.Children,
		})
	}

	for _, mesh := range m.Meshes {
		out := scene.Mesh{Name: mesh.Name}
		for _, p := range mesh.Primitives {
			positions := make([]math.Vec3, len(p.Positions))
			for i, v := range p.Positions {
				positions[i] = math.NewVec3(v[0], v[1], v[2])
			}
			out.Primitives = append(out.Primitives, scene.Primitive{Positions: positions, Indices: p.Indices})
		}
		asset.Meshes = append(asset.Meshes, out)
	}

	return asset
}
