package loaders

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/spaghettifunk/exhibit/engine/core"
	"github.com/spaghettifunk/exhibit/engine/math"
	"github.com/spaghettifunk/exhibit/engine/resources"
	"github.com/spaghettifunk/exhibit/engine/scene"
)

// GLTFLoader decodes .gltf and .glb files. Only node names, transforms and
// triangle positions are kept; materials, skins and animations are ignored.
type GLTFLoader struct{}

func (gl *GLTFLoader) Load(path string) (*resources.Resource, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to decode glTF %s: %w", path, err)
	}

	asset, err := ConvertGLTF(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to convert glTF %s: %w", path, err)
	}
	asset.Name = filepath.Base(path)

	return &resources.Resource{
		Type:     resources.ResourceTypeGLTF,
		Name:     asset.Name,
		FullPath: path,
		DataSize: uint64(info.Size()),
		Data:     asset,
	}, nil
}

func (gl *GLTFLoader) Unload(*resources.Resource) error {
	return nil
}

// ConvertGLTF copies the parts of doc the physics side needs into a
// scene.Asset. Primitives that are not triangle lists or lack positions are
// dropped with a warning.
func ConvertGLTF(doc *gltf.Document) (*scene.Asset, error) {
	asset := &scene.Asset{
		Scenes: make([]scene.Scene, 0, len(doc.Scenes)),
		Nodes:  make([]scene.Node, 0, len(doc.Nodes)),
		Meshes: make([]scene.Mesh, 0, len(doc.Meshes)),
	}
	if doc.Scene != nil && *doc.Scene != 0 {
		core.LogWarn("glTF default scene %d ignored, only scene 0 is used", *doc.Scene)
	}

	for _, s := range doc.Scenes {
		asset.Scenes = append(asset.Scenes, scene.Scene{
			Name:  s.Name,
			Roots: append([]int(nil), s.Nodes...),
		})
	}

	for _, n := range doc.Nodes {
		node := scene.Node{
			Name:     n.Name,
			Local:    nodeTransform(n),
			Children: append([]int(nil), n.Children...),
		}
		if n.Mesh != nil {
			idx := *n.Mesh
			node.Mesh = &idx
		}
		asset.Nodes = append(asset.Nodes, node)
	}

	for i, m := range doc.Meshes {
		mesh := scene.Mesh{Name: m.Name}
		for j, p := range m.Primitives {
			prim, err := readPrimitive(doc, p)
			if err != nil {
				core.LogWarn("glTF mesh %d (%s) primitive %d skipped: %s", i, m.Name, j, err.Error())
				continue
			}
			mesh.Primitives = append(mesh.Primitives, prim)
		}
		asset.Meshes = append(asset.Meshes, mesh)
	}

	return asset, nil
}

func nodeTransform(n *gltf.Node) math.Transform {
	if n.Matrix != [16]float64{} && n.Matrix != gltf.DefaultMatrix {
		m := math.Mat4{}
		for i, v := range n.Matrix {
			m.Data[i] = float32(v)
		}
		return math.TransformFromMat4(m)
	}

	t := n.TranslationOrDefault()
	r := n.RotationOrDefault()
	s := n.ScaleOrDefault()
	return math.TransformFromPositionRotationScale(
		math.NewVec3(float32(t[0]), float32(t[1]), float32(t[2])),
		math.Quaternion{X: float32(r[0]), Y: float32(r[1]), Z: float32(r[2]), W: float32(r[3])}.Normalize(),
		math.NewVec3(float32(s[0]), float32(s[1]), float32(s[2])),
	)
}

func readPrimitive(doc *gltf.Document, p *gltf.Primitive) (scene.Primitive, error) {
	if p.Mode != gltf.PrimitiveTriangles {
		return scene.Primitive{}, fmt.Errorf("primitive mode %v is not a triangle list", p.Mode)
	}
	posIdx, ok := p.Attributes[gltf.POSITION]
	if !ok || posIdx < 0 || posIdx >= len(doc.Accessors) {
		return scene.Primitive{}, fmt.Errorf("primitive has no POSITION accessor")
	}

	raw, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return scene.Primitive{}, err
	}
	positions := make([]math.Vec3, len(raw))
	for i, v := range raw {
		positions[i] = math.NewVec3(v[0], v[1], v[2])
	}

	var indices []uint32
	if p.Indices != nil {
		if *p.Indices < 0 || *p.Indices >= len(doc.Accessors) {
			return scene.Primitive{}, fmt.Errorf("index accessor %d out of range", *p.Indices)
		}
		indices, err = modeler.ReadIndices(doc, doc.Accessors[*p.Indices], nil)
		if err != nil {
			return scene.Primitive{}, err
		}
	} else {
		indices = make([]uint32, len(positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}

	return scene.Primitive{Positions: positions, Indices: indices}, nil
}
