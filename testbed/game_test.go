package testbed

import (
	"io"
	"os"
	"testing"

	"github.com/spaghettifunk/exhibit/engine"
	"github.com/spaghettifunk/exhibit/engine/core"
	"github.com/spaghettifunk/exhibit/engine/math"
	"github.com/spaghettifunk/exhibit/engine/physics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	core.SetLogOutput(io.Discard)
	os.Exit(m.Run())
}

func newTestGame(t *testing.T) (*TestGame, *gameState) {
	t.Helper()

	config := engine.DefaultApplicationConfig()
	config.App.AssetsDir = t.TempDir()
	config.Scene.Path = "missing.scene.yaml"

	tg := NewTestGame(config)
	e, err := engine.New(tg.Game)
	require.NoError(t, err)
	require.NoError(t, e.Initialize())
	t.Cleanup(func() { _ = e.Shutdown() })

	return tg, tg.State.(*gameState)
}

func TestBallFallsThroughGround(t *testing.T) {
	tg, state := newTestGame(t)

	require.NoError(t, tg.Update(1.0))
	ball, ok := state.world.Body(state.ball)
	require.True(t, ok)
	assert.Less(t, ball.Transform.Position.Y, groundPosition.Y)
	assert.Equal(t, 0, state.respawns)
}

func TestBallRespawnsAtPlayerSpawn(t *testing.T) {
	tg, state := newTestGame(t)
	spawn := tg.ApplicationConfig.SpawnPoint()

	tr := physics.Transform.Get(state.world.ECS().Entry(state.ball))
	tr.Position = math.NewVec3(3, -60, 1)

	require.NoError(t, tg.Update(1.0/60.0))

	ball, ok := state.world.Body(state.ball)
	require.True(t, ok)
	assert.True(t, ball.Transform.Position.Compare(spawn, 1e-6))
	assert.Equal(t, 1, state.respawns)

	player, ok := state.world.Body(state.player)
	require.True(t, ok)
	assert.True(t, player.Transform.Position.Compare(spawn, 1e-6))
}
