package engine

import (
	"github.com/spaghettifunk/exhibit/engine/core"
	"github.com/spaghettifunk/exhibit/engine/systems"
)

// Game is what the engine runs. SystemManager and Events are filled in by
// the engine before FnInitialize is called.
type Game struct {
	ApplicationConfig *ApplicationConfig
	SystemManager     *systems.SystemManager
	Events            *core.EventBus
	State             interface{}
	FnBoot            Boot
	FnInitialize      Initialize
	FnUpdate          Update
	FnShutdown        Shutdown
}

// Boot runs before any subsystem exists and may adjust the config.
type Boot func(config *ApplicationConfig) error
type Initialize func() error
type Update func(deltaTime float64) error
type Shutdown func() error
