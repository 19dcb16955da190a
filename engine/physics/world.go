package physics

import (
	"github.com/spaghettifunk/exhibit/engine/core"
	"github.com/spaghettifunk/exhibit/engine/math"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
)

// LockedAxes freezes rotation of a dynamic body about the selected axes.
type LockedAxes uint8

const (
	RotationLockedX LockedAxes = 1 << iota
	RotationLockedY
	RotationLockedZ

	RotationLocked = RotationLockedX | RotationLockedY | RotationLockedZ
)

func (l LockedAxes) Has(axes LockedAxes) bool {
	return l&axes == axes
}

// DefaultGravity points down the Y axis at earth gravity.
var DefaultGravity = math.NewVec3(0, -9.81, 0)

var fixedQuery = donburi.NewQuery(filter.Contains(FixedTag, BodyInfo, Transform))

// World owns every physics body. Dynamic bodies are also kept in an explicit
// registry in creation order; it is the only thing the integrator and the
// respawn monitor iterate.
type World struct {
	ecs     donburi.World
	gravity math.Vec3
	dynamic []donburi.Entity
}

// Body is a read-only snapshot of one body.
type Body struct {
	Entity    donburi.Entity
	Name      string
	Kind      BodyKind
	Transform math.Transform
	Collider  *Collider
	Material  MaterialData
	// Velocity is nil for bodies without a velocity component.
	Velocity *VelocityData
	Dynamics *DynamicsData
}

func NewWorld(gravity math.Vec3) *World {
	return &World{
		ecs:     donburi.NewWorld(),
		gravity: gravity,
	}
}

// ECS exposes the underlying donburi world.
func (w *World) ECS() donburi.World {
	return w.ecs
}

func (w *World) Gravity() math.Vec3 {
	return w.gravity
}

// Len is the number of live bodies.
func (w *World) Len() int {
	return w.ecs.Len()
}

func (w *World) FixedCount() int {
	return fixedQuery.Count(w.ecs)
}

// FixedBodies returns snapshots of every fixed body.
func (w *World) FixedBodies() []Body {
	bodies := make([]Body, 0, fixedQuery.Count(w.ecs))
	fixedQuery.Each(w.ecs, func(entry *donburi.Entry) {
		bodies = append(bodies, snapshot(entry))
	})
	return bodies
}

// DynamicBodies returns the registered dynamic entities in creation order.
// Entities removed from the world are pruned first.
func (w *World) DynamicBodies() []donburi.Entity {
	w.prune()
	out := make([]donburi.Entity, len(w.dynamic))
	copy(out, w.dynamic)
	return out
}

// Body returns a snapshot of entity e.
func (w *World) Body(e donburi.Entity) (Body, bool) {
	if !w.ecs.Valid(e) {
		return Body{}, false
	}
	entry := w.ecs.Entry(e)
	if !entry.HasComponent(BodyInfo) || !entry.HasComponent(Transform) {
		return Body{}, false
	}
	return snapshot(entry), true
}

// Find returns the first body named name, fixed bodies before dynamic ones.
func (w *World) Find(name string) (Body, bool) {
	var found *Body
	fixedQuery.Each(w.ecs, func(entry *donburi.Entry) {
		if found == nil && BodyInfo.Get(entry).Name == name {
			b := snapshot(entry)
			found = &b
		}
	})
	if found != nil {
		return *found, true
	}
	for _, e := range w.DynamicBodies() {
		if b, ok := w.Body(e); ok && b.Name == name {
			return b, true
		}
	}
	return Body{}, false
}

// Remove deletes a body and drops it from the dynamic registry.
func (w *World) Remove(e donburi.Entity) bool {
	if !w.ecs.Valid(e) {
		return false
	}
	w.ecs.Remove(e)
	w.prune()
	return true
}

func (w *World) register(e donburi.Entity) {
	w.dynamic = append(w.dynamic, e)
}

func (w *World) prune() {
	live := w.dynamic[:0]
	for _, e := range w.dynamic {
		if w.ecs.Valid(e) {
			live = append(live, e)
		}
	}
	w.dynamic = live
}

// Step advances every registered dynamic body by dt seconds with
// semi-implicit Euler: velocity picks up gravity scaled per body, then
// position and rotation follow the new velocity. Contacts are not resolved
// here. Fixed bodies are never touched.
func (w *World) Step(dt float32) {
	if dt <= 0 {
		return
	}
	for _, e := range w.DynamicBodies() {
		entry := w.ecs.Entry(e)
		if !entry.HasComponent(Transform) || !entry.HasComponent(Velocity) {
			continue
		}
		tr := Transform.Get(entry)
		vel := Velocity.Get(entry)

		gravityScale := float32(1)
		var locked LockedAxes
		if entry.HasComponent(Dynamics) {
			dyn := Dynamics.Get(entry)
			gravityScale = dyn.GravityScale
			locked = dyn.LockedAxes
		}

		vel.Linear = vel.Linear.Add(w.gravity.MulScalar(gravityScale * dt))
		tr.Position = tr.Position.Add(vel.Linear.MulScalar(dt))

		if locked.Has(RotationLockedX) {
			vel.Angular.X = 0
		}
		if locked.Has(RotationLockedY) {
			vel.Angular.Y = 0
		}
		if locked.Has(RotationLockedZ) {
			vel.Angular.Z = 0
		}
		if vel.Angular.LengthSquared() > 0 {
			tr.Rotation = integrateRotation(tr.Rotation, vel.Angular, dt)
		}
	}
}

// integrateRotation applies q' = q + dt/2 * w * q and renormalizes.
func integrateRotation(q math.Quaternion, angular math.Vec3, dt float32) math.Quaternion {
	spin := math.Quaternion{X: angular.X, Y: angular.Y, Z: angular.Z, W: 0}.Mul(q)
	half := 0.5 * dt
	return math.Quaternion{
		X: q.X + spin.X*half,
		Y: q.Y + spin.Y*half,
		Z: q.Z + spin.Z*half,
		W: q.W + spin.W*half,
	}.Normalize()
}

func snapshot(entry *donburi.Entry) Body {
	info := BodyInfo.Get(entry)
	b := Body{
		Entity:    entry.Entity(),
		Name:      info.Name,
		Kind:      info.Kind,
		Transform: *Transform.Get(entry),
		Material:  DefaultMaterial(),
	}
	if entry.HasComponent(Shape) {
		b.Collider = Shape.Get(entry).Collider
	}
	if entry.HasComponent(Material) {
		b.Material = *Material.Get(entry)
	}
	if entry.HasComponent(Velocity) {
		v := *Velocity.Get(entry)
		b.Velocity = &v
	}
	if entry.HasComponent(Dynamics) {
		d := *Dynamics.Get(entry)
		b.Dynamics = &d
	}
	return b
}

func logBody(b Body) {
	core.LogDebug("spawned %s body %q at (%.3f, %.3f, %.3f)", b.Kind, b.Name, b.Transform.Position.X, b.Transform.Position.Y, b.Transform.Position.Z)
}
