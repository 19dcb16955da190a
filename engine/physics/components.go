// Package physics is the body registry the scene pipeline populates: fixed
// world geometry, dynamic props and the player, stored as donburi entities.
package physics

import (
	"github.com/spaghettifunk/exhibit/engine/math"
	"github.com/yohamta/donburi"
)

type BodyKind int

const (
	// BodyFixed bodies are immovable world geometry.
	BodyFixed BodyKind = iota
	// BodyDynamic bodies are integrated every step.
	BodyDynamic
)

func (k BodyKind) String() string {
	switch k {
	case BodyFixed:
		return "fixed"
	case BodyDynamic:
		return "dynamic"
	}
	return "unknown"
}

type BodyData struct {
	Kind BodyKind
	Name string
}

type VelocityData struct {
	Linear  math.Vec3
	Angular math.Vec3
}

type ShapeData struct {
	Collider *Collider
}

// DynamicsData holds the per-body solver settings of a dynamic body.
type DynamicsData struct {
	Mass         float32
	GravityScale float32
	LockedAxes   LockedAxes
	CCD          bool
}

var (
	BodyInfo  = donburi.NewComponentType[BodyData]()
	Transform = donburi.NewComponentType[math.Transform]()
	Velocity  = donburi.NewComponentType[VelocityData]()
	Shape     = donburi.NewComponentType[ShapeData]()
	Material  = donburi.NewComponentType[MaterialData]()
	Dynamics  = donburi.NewComponentType[DynamicsData]()

	FixedTag   = donburi.NewTag().SetName("Fixed")
	DynamicTag = donburi.NewTag().SetName("Dynamic")
)
