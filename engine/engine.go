package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/spaghettifunk/exhibit/engine/core"
	"github.com/spaghettifunk/exhibit/engine/systems"
	"golang.org/x/sync/errgroup"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently booting up
	EngineStageBooting
	// Engine completed boot process and is ready to be initialized
	EngineStageBootComplete
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
)

func (s Stage) String() string {
	switch s {
	case EngineStageUninitialized:
		return "uninitialized"
	case EngineStageBooting:
		return "booting"
	case EngineStageBootComplete:
		return "boot-complete"
	case EngineStageInitializing:
		return "initializing"
	case EngineStageInitialized:
		return "initialized"
	case EngineStageRunning:
		return "running"
	case EngineStageShuttingDown:
		return "shutting-down"
	}
	return "unknown"
}

// metricsLogInterval is how often the tick loop reports its timings.
const metricsLogInterval = 5 * time.Second

type Engine struct {
	mu           sync.Mutex
	currentStage Stage

	gameInstance  *Game
	config        *ApplicationConfig
	systemManager *systems.SystemManager
	events        *core.EventBus

	clock    *core.Clock
	metrics  *core.TickMetrics
	lastTime float64

	quit     chan struct{}
	quitOnce sync.Once
}

// New boots the engine for g: it applies the log level, runs the game's boot
// hook and brings up the job system and the asset manager.
func New(g *Game) (*Engine, error) {
	if g == nil {
		return nil, fmt.Errorf("engine needs a game to run")
	}
	if g.ApplicationConfig == nil {
		g.ApplicationConfig = DefaultApplicationConfig()
	}

	e := &Engine{
		currentStage: EngineStageBooting,
		gameInstance: g,
		config:       g.ApplicationConfig,
		events:       core.NewEventBus(),
		clock:        core.NewClock(),
		metrics:      core.NewTickMetrics(),
		quit:         make(chan struct{}),
	}

	if g.FnBoot != nil {
		if err := g.FnBoot(e.config); err != nil {
			return nil, err
		}
	}
	if err := e.config.Validate(); err != nil {
		return nil, err
	}
	core.SetLogLevel(e.config.Level())

	sm, err := systems.NewSystemManager(systems.SystemManagerConfig{
		AssetsDir: e.config.App.AssetsDir,
		Workers:   e.config.Jobs.Workers,
		QueueSize: e.config.Jobs.QueueSize,
	})
	if err != nil {
		core.LogError("failed to start system manager: %s", err.Error())
		return nil, err
	}
	e.systemManager = sm

	e.events.Register(core.EVENT_CODE_APPLICATION_QUIT, e, e.onEvent)

	g.SystemManager = sm
	g.Events = e.events
	e.currentStage = EngineStageBootComplete

	core.LogInfo("%s booted (tick rate %d, assets %s)", e.config.App.Name, e.config.App.TickRate, sm.AssetManager().Root())
	return e, nil
}

func (e *Engine) Initialize() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.currentStage != EngineStageBootComplete {
		return core.ErrNotInitialized
	}
	e.currentStage = EngineStageInitializing

	if e.gameInstance.FnInitialize != nil {
		if err := e.gameInstance.FnInitialize(); err != nil {
			return err
		}
	}

	e.currentStage = EngineStageInitialized
	return nil
}

func (e *Engine) Stage() Stage {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.currentStage
}

func (e *Engine) Events() *core.EventBus {
	return e.events
}

func (e *Engine) Metrics() *core.TickMetrics {
	return e.metrics
}

// Run ticks the game at the configured rate until ctx is done, the game
// fails an update or EVENT_CODE_APPLICATION_QUIT fires. The asset watcher
// runs next to the loop and stops with it.
func (e *Engine) Run(ctx context.Context) error {
	e.mu.Lock()
	switch e.currentStage {
	case EngineStageInitialized:
	case EngineStageRunning:
		e.mu.Unlock()
		return core.ErrAlreadyRunning
	default:
		e.mu.Unlock()
		return core.ErrNotInitialized
	}
	e.currentStage = EngineStageRunning
	e.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return e.systemManager.Watch(ctx)
	})
	g.Go(func() error {
		defer cancel()
		return e.loop(ctx)
	})
	return g.Wait()
}

func (e *Engine) loop(ctx context.Context) error {
	ticker := time.NewTicker(e.config.TickInterval())
	defer ticker.Stop()

	e.clock.Start()
	e.clock.Update()
	e.lastTime = e.clock.Elapsed()
	lastReport := time.Now()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-e.quit:
			return nil
		case <-ticker.C:
		}
		// a quit request wins over a tick that was ready at the same time
		select {
		case <-e.quit:
			return nil
		default:
		}

		// Update clock and get delta time.
		e.clock.Update()
		currentTime := e.clock.Elapsed()
		delta := currentTime - e.lastTime
		tickStart := time.Now()

		if e.gameInstance.FnUpdate != nil {
			if err := e.gameInstance.FnUpdate(delta); err != nil {
				core.LogError("Game update failed, shutting down: %s", err.Error())
				return err
			}
		}

		e.metrics.Update(time.Since(tickStart).Seconds())
		e.lastTime = currentTime

		if time.Since(lastReport) >= metricsLogInterval {
			tps, avg := e.metrics.Tick()
			core.LogDebug("tick metrics: %.0f tps, %.3f ms average tick", tps, avg)
			lastReport = time.Now()
		}
	}
}

// Quit asks the loop to stop after the current tick.
func (e *Engine) Quit() {
	e.events.Fire(core.EventContext{Type: core.EVENT_CODE_APPLICATION_QUIT})
}

func (e *Engine) Shutdown() error {
	e.mu.Lock()
	e.currentStage = EngineStageShuttingDown
	e.mu.Unlock()

	e.quitOnce.Do(func() { close(e.quit) })

	if e.gameInstance.FnShutdown != nil {
		if err := e.gameInstance.FnShutdown(); err != nil {
			return err
		}
	}
	if err := e.events.Shutdown(); err != nil {
		return err
	}
	if err := e.systemManager.Shutdown(); err != nil {
		return err
	}
	return nil
}

func (e *Engine) onEvent(ev core.EventContext) bool {
	switch ev.Type {
	case core.EVENT_CODE_APPLICATION_QUIT:
		core.LogInfo("EVENT_CODE_APPLICATION_QUIT received, shutting down.")
		e.quitOnce.Do(func() { close(e.quit) })
		return true
	}
	return false
}
