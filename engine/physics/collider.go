package physics

import (
	"errors"
	"fmt"

	"github.com/spaghettifunk/exhibit/engine/math"
)

var ErrInvalidShape = errors.New("invalid collider shape")

type ShapeKind int

const (
	ShapeCuboid ShapeKind = iota
	ShapeBall
	ShapeCylinder
	ShapeTriMesh
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeCuboid:
		return "cuboid"
	case ShapeBall:
		return "ball"
	case ShapeCylinder:
		return "cylinder"
	case ShapeTriMesh:
		return "trimesh"
	}
	return "unknown"
}

// Collider is an immutable collision shape in the local space of its body.
// Cylinders stand along the local Y axis.
type Collider struct {
	kind        ShapeKind
	halfExtents math.Vec3
	radius      float32
	halfHeight  float32
	mesh        *TriMesh
}

// NewCuboid creates a box from its half extents.
func NewCuboid(hx, hy, hz float32) *Collider {
	return &Collider{kind: ShapeCuboid, halfExtents: math.NewVec3(hx, hy, hz)}
}

func NewBall(radius float32) *Collider {
	return &Collider{kind: ShapeBall, radius: radius}
}

// NewCylinder creates an upright cylinder. The full height is twice halfHeight.
func NewCylinder(halfHeight, radius float32) *Collider {
	return &Collider{kind: ShapeCylinder, halfHeight: halfHeight, radius: radius}
}

func (c *Collider) Kind() ShapeKind        { return c.kind }
func (c *Collider) HalfExtents() math.Vec3 { return c.halfExtents }
func (c *Collider) Radius() float32        { return c.radius }
func (c *Collider) HalfHeight() float32    { return c.halfHeight }

// TriMesh returns the mesh data of a trimesh collider and nil otherwise.
func (c *Collider) TriMesh() *TriMesh {
	return c.mesh
}

// Validate reports non-positive dimensions.
func (c *Collider) Validate() error {
	if c == nil {
		return fmt.Errorf("%w: nil collider", ErrInvalidShape)
	}
	switch c.kind {
	case ShapeCuboid:
		if c.halfExtents.X <= 0 || c.halfExtents.Y <= 0 || c.halfExtents.Z <= 0 {
			return fmt.Errorf("%w: cuboid half extents %v", ErrInvalidShape, c.halfExtents)
		}
	case ShapeBall:
		if c.radius <= 0 {
			return fmt.Errorf("%w: ball radius %v", ErrInvalidShape, c.radius)
		}
	case ShapeCylinder:
		if c.radius <= 0 || c.halfHeight <= 0 {
			return fmt.Errorf("%w: cylinder half height %v radius %v", ErrInvalidShape, c.halfHeight, c.radius)
		}
	case ShapeTriMesh:
		if c.mesh == nil || c.mesh.TriangleCount() == 0 {
			return fmt.Errorf("%w: empty trimesh", ErrInvalidShape)
		}
	default:
		return fmt.Errorf("%w: kind %d", ErrInvalidShape, c.kind)
	}
	return nil
}

// Bounds returns the local axis aligned bounds of the shape.
func (c *Collider) Bounds() math.Extents3D {
	var half math.Vec3
	switch c.kind {
	case ShapeCuboid:
		half = c.halfExtents
	case ShapeBall:
		half = math.NewVec3(c.radius, c.radius, c.radius)
	case ShapeCylinder:
		half = math.NewVec3(c.radius, c.halfHeight, c.radius)
	case ShapeTriMesh:
		if c.mesh != nil {
			return c.mesh.Bounds()
		}
	}
	return math.Extents3D{Min: half.MulScalar(-1), Max: half}
}

func (c *Collider) String() string {
	switch c.kind {
	case ShapeCuboid:
		return fmt.Sprintf("cuboid(%g, %g, %g)", c.halfExtents.X, c.halfExtents.Y, c.halfExtents.Z)
	case ShapeBall:
		return fmt.Sprintf("ball(%g)", c.radius)
	case ShapeCylinder:
		return fmt.Sprintf("cylinder(%g, %g)", c.halfHeight, c.radius)
	case ShapeTriMesh:
		if c.mesh != nil {
			return fmt.Sprintf("trimesh(%d vertices, %d triangles)", len(c.mesh.vertices), c.mesh.TriangleCount())
		}
	}
	return c.kind.String()
}
