package physics

import (
	"testing"

	"github.com/spaghettifunk/exhibit/engine/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPlayerControllerConfig(t *testing.T) {
	cfg := DefaultPlayerControllerConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, float32(3.0), cfg.Height)
	assert.Equal(t, float32(0.5), cfg.Radius)
	assert.Equal(t, float32(1.0), cfg.Mass)
	assert.Equal(t, float32(0), cfg.Friction)
	assert.Equal(t, float32(0), cfg.Restitution)

	collider := cfg.Collider()
	assert.Equal(t, ShapeCylinder, collider.Kind())
	assert.Equal(t, float32(1.5), collider.HalfHeight())
	assert.Equal(t, float32(0.5), collider.Radius())
}

func TestPlayerControllerConfigContract(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*PlayerControllerConfig)
	}{
		{"yaw_unlocked", func(c *PlayerControllerConfig) { c.LockedAxes = RotationLockedX | RotationLockedZ }},
		{"nothing_locked", func(c *PlayerControllerConfig) { c.LockedAxes = 0 }},
		{"ccd_off", func(c *PlayerControllerConfig) { c.CCD = false }},
		{"falls_under_gravity", func(c *PlayerControllerConfig) { c.GravityScale = 1 }},
		{"average_friction", func(c *PlayerControllerConfig) { c.FrictionCombine = CombineAverage }},
		{"max_restitution", func(c *PlayerControllerConfig) { c.RestitutionCombine = CombineMax }},
		{"massless", func(c *PlayerControllerConfig) { c.Mass = 0 }},
		{"flat", func(c *PlayerControllerConfig) { c.Height = 0 }},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := DefaultPlayerControllerConfig()
			c.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrPlayerContract)

			world := NewWorld(DefaultGravity)
			_, err := NewSpawner(world).SpawnPlayer(cfg, DefaultSpawnPoint)
			assert.ErrorIs(t, err, ErrPlayerContract)
			assert.Equal(t, 0, world.Len())
		})
	}
}

func TestSpawnPlayer(t *testing.T) {
	world := NewWorld(DefaultGravity)
	e, err := NewSpawner(world).SpawnPlayer(DefaultPlayerControllerConfig(), DefaultSpawnPoint)
	require.NoError(t, err)

	b, ok := world.Body(e)
	require.True(t, ok)
	assert.Equal(t, BodyDynamic, b.Kind)
	assert.Equal(t, PlayerBodyName, b.Name)
	assert.Equal(t, DefaultSpawnPoint, b.Transform.Position)
	assert.Equal(t, CombineMin, b.Material.FrictionCombine)
	assert.Equal(t, CombineMin, b.Material.RestitutionCombine)
	require.NotNil(t, b.Dynamics)
	assert.True(t, b.Dynamics.CCD)
	assert.True(t, b.Dynamics.LockedAxes.Has(RotationLocked))
	assert.Equal(t, e, world.DynamicBodies()[0])

	// zero gravity scale keeps the player where the controller put it
	world.Step(1)
	b, _ = world.Body(e)
	assert.True(t, b.Transform.Position.Compare(DefaultSpawnPoint, 0))
	assert.True(t, b.Transform.Rotation.Compare(math.NewQuatIdentity(), 0))
}
