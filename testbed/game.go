package testbed

import (
	"fmt"

	"github.com/spaghettifunk/exhibit/engine"
	"github.com/spaghettifunk/exhibit/engine/assets"
	"github.com/spaghettifunk/exhibit/engine/core"
	"github.com/spaghettifunk/exhibit/engine/math"
	"github.com/spaghettifunk/exhibit/engine/physics"
	"github.com/spaghettifunk/exhibit/engine/pipeline"
	"github.com/yohamta/donburi"
)

const statusInterval = 5.0

// Props spawned at startup, independent of the streamed scene.
var (
	groundPosition    = math.NewVec3(0, -2, 0)
	groundHalfExtents = math.NewVec3(100, 0.1, 100)
	ballPosition      = math.NewVec3(0, 4, 0)
)

type TestGame struct {
	*engine.Game
}

type gameState struct {
	world    *physics.World
	spawner  *physics.Spawner
	handle   *assets.Handle
	pipeline *pipeline.Pipeline

	player donburi.Entity
	ball   donburi.Entity

	sinceStatus float64
	respawns    int
}

func NewTestGame(config *engine.ApplicationConfig) *TestGame {
	tg := &TestGame{
		Game: &engine.Game{
			ApplicationConfig: config,
			State:             &gameState{},
		},
	}

	tg.FnBoot = tg.Boot
	tg.FnInitialize = tg.Initialize
	tg.FnUpdate = tg.Update
	tg.FnShutdown = tg.Shutdown

	return tg
}

func (g *TestGame) Boot(config *engine.ApplicationConfig) error {
	core.LogInfo("booting %s...", config.App.Name)
	return nil
}

func (g *TestGame) Initialize() error {
	core.LogDebug("TestGame Initialize fn....")

	if g.SystemManager == nil {
		return fmt.Errorf("the engine is not yet initialized with all the system managers")
	}

	config := g.ApplicationConfig
	state := g.State.(*gameState)

	state.world = physics.NewWorld(config.Gravity())
	state.spawner = physics.NewSpawner(state.world)

	// Ground plane under the exhibition.
	if _, err := state.spawner.SpawnFixed("ground", math.TransformFromPosition(groundPosition),
		physics.NewCuboid(groundHalfExtents.X, groundHalfExtents.Y, groundHalfExtents.Z)); err != nil {
		return err
	}

	// The world resolves no contacts, so the ball falls through the ground
	// until the respawn monitor puts it back at the player's spawn point.
	ball, err := state.spawner.SpawnDynamic(physics.DynamicBodyDesc{
		Name:      "ball",
		Transform: math.TransformFromPosition(ballPosition),
		Collider:  physics.NewBall(0.5),
		Material:  physics.DefaultMaterial(),
		Dynamics:  physics.DynamicsData{Mass: 1, GravityScale: 1},
	})
	if err != nil {
		return err
	}
	state.ball = ball

	player, err := state.spawner.SpawnPlayer(physics.DefaultPlayerControllerConfig(), config.SpawnPoint())
	if err != nil {
		return err
	}
	state.player = player

	policy, err := config.FilterPolicy()
	if err != nil {
		return err
	}

	state.handle = g.SystemManager.SceneLoader().LoadScene(config.Scene.Path)
	state.pipeline = pipeline.NewPipeline(pipeline.NewTracker(state.handle), state.world, pipeline.Options{
		AssetID: config.Scene.Path,
		Policy:  policy,
		Respawn: physics.NewRespawnMonitor(config.SpawnPoint(), config.World.FloorThreshold, g.Events),
		Events:  g.Events,
	})

	g.Events.Register(core.EVENT_CODE_SCENE_SYNTHESIZED, g, g.onSceneSynthesized)
	g.Events.Register(core.EVENT_CODE_BODY_RESPAWNED, g, g.onBodyRespawned)

	core.LogInfo("streaming scene %s (handle %s), collision filter %s", config.Scene.Path, state.handle.ID().Short(), policy)
	return nil
}

func (g *TestGame) Update(deltaTime float64) error {
	state := g.State.(*gameState)

	state.pipeline.Tick(float32(deltaTime))

	state.sinceStatus += deltaTime
	if state.sinceStatus >= statusInterval {
		state.sinceStatus = 0
		g.logStatus(state)
	}
	return nil
}

func (g *TestGame) Shutdown() error {
	state := g.State.(*gameState)
	if state.pipeline == nil {
		return nil
	}

	if err := state.handle.Err(); err != nil {
		core.LogWarn("scene %s never loaded: %s", state.handle.Path(), err.Error())
	}
	report := state.pipeline.Report()
	core.LogInfo("shutting down: pipeline %s, %d fixed bodies, %d respawns", state.pipeline.State(), report.Spawned, state.respawns)
	return nil
}

func (g *TestGame) logStatus(state *gameState) {
	logger := core.Logger().With("pipeline", state.pipeline.State().String())
	if b, ok := state.world.Body(state.ball); ok {
		logger = logger.With("ball", fmt.Sprintf("%.2f", b.Transform.Position.Y))
	}
	if b, ok := state.world.Body(state.player); ok {
		logger = logger.With("player", fmt.Sprintf("%.2f", b.Transform.Position.Y))
	}
	logger.Info("world status", "bodies", state.world.Len(), "fixed", state.world.FixedCount(), "respawns", state.respawns)
}

func (g *TestGame) onSceneSynthesized(ctx core.EventContext) bool {
	ev, ok := ctx.Data.(*core.SceneSynthesizedEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", ctx.Type)
		return false
	}
	if ev.Failed > 0 {
		core.LogWarn("scene %s built with %d failed primitives", ev.AssetID, ev.Failed)
	}
	return false
}

func (g *TestGame) onBodyRespawned(ctx core.EventContext) bool {
	if _, ok := ctx.Data.(*core.BodyRespawnedEvent); !ok {
		core.LogError("wrong event associated with the event type `%d`", ctx.Type)
		return false
	}
	g.State.(*gameState).respawns++
	return false
}
