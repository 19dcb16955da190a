package physics

import (
	"github.com/spaghettifunk/exhibit/engine/core"
	"github.com/spaghettifunk/exhibit/engine/math"
)

// DefaultFloorThreshold is the height at or below which a body has fallen
// out of the world.
const DefaultFloorThreshold float32 = -50.0

// DefaultSpawnPoint is where the player starts and where fallen bodies return.
var DefaultSpawnPoint = math.NewVec3(0, 1.625, 0)

// RespawnMonitor moves fallen dynamic bodies back to the spawn point.
type RespawnMonitor struct {
	SpawnPoint     math.Vec3
	FloorThreshold float32
	// Events, when set, receives EVENT_CODE_BODY_RESPAWNED per reset.
	Events *core.EventBus
}

func NewRespawnMonitor(spawn math.Vec3, floor float32, events *core.EventBus) *RespawnMonitor {
	return &RespawnMonitor{
		SpawnPoint:     spawn,
		FloorThreshold: floor,
		Events:         events,
	}
}

// Run checks every registered dynamic body that has both a transform and a
// velocity. A body at or below the floor gets zero velocity and the spawn
// point as position; its rotation is kept. Everything else is left alone.
// It returns the number of bodies reset.
func (m *RespawnMonitor) Run(world *World) int {
	reset := 0
	for _, e := range world.DynamicBodies() {
		entry := world.ecs.Entry(e)
		if !entry.HasComponent(Transform) || !entry.HasComponent(Velocity) {
			continue
		}
		tr := Transform.Get(entry)
		if tr.Position.Y > m.FloorThreshold {
			continue
		}

		fellFrom := tr.Position.Y
		Velocity.SetValue(entry, VelocityData{})
		tr.Position = m.SpawnPoint
		reset++

		name := ""
		if entry.HasComponent(BodyInfo) {
			name = BodyInfo.Get(entry).Name
		}
		core.LogInfo("body %q fell to y=%.2f, respawned at (%.3f, %.3f, %.3f)", name, fellFrom, m.SpawnPoint.X, m.SpawnPoint.Y, m.SpawnPoint.Z)
		m.Events.Fire(core.EventContext{
			Type: core.EVENT_CODE_BODY_RESPAWNED,
			Data: &core.BodyRespawnedEvent{Name: name, FellFrom: fellFrom},
		})
	}
	return reset
}
