package physics

import (
	"fmt"

	"github.com/spaghettifunk/exhibit/engine/math"
	"github.com/yohamta/donburi"
)

// DynamicBodyDesc describes a dynamic body to spawn.
type DynamicBodyDesc struct {
	Name      string
	Transform math.Transform
	Collider  *Collider
	Material  MaterialData
	Velocity  VelocityData
	Dynamics  DynamicsData
}

// Spawner creates bodies in a World.
type Spawner struct {
	world *World
}

func NewSpawner(world *World) *Spawner {
	return &Spawner{world: world}
}

func (s *Spawner) World() *World {
	return s.world
}

// SpawnFixed creates exactly one fixed body carrying collider at transform.
// Fixed bodies have no velocity and are never moved afterwards.
func (s *Spawner) SpawnFixed(name string, transform math.Transform, collider *Collider) (donburi.Entity, error) {
	return s.SpawnFixedWithMaterial(name, transform, collider, DefaultMaterial())
}

func (s *Spawner) SpawnFixedWithMaterial(name string, transform math.Transform, collider *Collider, material MaterialData) (donburi.Entity, error) {
	if err := collider.Validate(); err != nil {
		return donburi.Null, fmt.Errorf("fixed body %q: %w", name, err)
	}

	e := s.world.ecs.Create(FixedTag, BodyInfo, Transform, Shape, Material)
	entry := s.world.ecs.Entry(e)
	BodyInfo.SetValue(entry, BodyData{Kind: BodyFixed, Name: name})
	Transform.SetValue(entry, transform)
	Shape.SetValue(entry, ShapeData{Collider: collider})
	Material.SetValue(entry, material)

	logBody(snapshot(entry))
	return e, nil
}

// SpawnDynamic creates a dynamic body and adds it to the dynamic registry.
func (s *Spawner) SpawnDynamic(desc DynamicBodyDesc) (donburi.Entity, error) {
	if err := desc.Collider.Validate(); err != nil {
		return donburi.Null, fmt.Errorf("dynamic body %q: %w", desc.Name, err)
	}
	if desc.Dynamics.Mass <= 0 {
		return donburi.Null, fmt.Errorf("dynamic body %q: mass must be positive, got %v", desc.Name, desc.Dynamics.Mass)
	}

	e := s.world.ecs.Create(DynamicTag, BodyInfo, Transform, Velocity, Shape, Material, Dynamics)
	entry := s.world.ecs.Entry(e)
	BodyInfo.SetValue(entry, BodyData{Kind: BodyDynamic, Name: desc.Name})
	Transform.SetValue(entry, desc.Transform)
	Velocity.SetValue(entry, desc.Velocity)
	Shape.SetValue(entry, ShapeData{Collider: desc.Collider})
	Material.SetValue(entry, desc.Material)
	Dynamics.SetValue(entry, desc.Dynamics)

	s.world.register(e)
	logBody(snapshot(entry))
	return e, nil
}

// SpawnPlayer creates the player body at spawn from a config that must
// satisfy the player contract.
func (s *Spawner) SpawnPlayer(cfg PlayerControllerConfig, spawn math.Vec3) (donburi.Entity, error) {
	if err := cfg.Validate(); err != nil {
		return donburi.Null, err
	}
	return s.SpawnDynamic(DynamicBodyDesc{
		Name:      PlayerBodyName,
		Transform: math.TransformFromPosition(spawn),
		Collider:  cfg.Collider(),
		Material:  cfg.Material(),
		Dynamics:  cfg.Dynamics(),
	})
}
