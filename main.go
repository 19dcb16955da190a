/*
Exhibit streams an exhibition scene, builds its collision world and keeps
the simulation ticking until interrupted.
*/
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/exhibit/engine"
	"github.com/spaghettifunk/exhibit/engine/core"
	"github.com/spaghettifunk/exhibit/testbed"
)

func main() {
	configPath := flag.String("config", "exhibit.toml", "Path to the TOML application config")
	scenePath := flag.String("scene", "", "Scene file to stream, overrides [scene] path")
	flag.Parse()

	config, err := engine.LoadApplicationConfig(*configPath)
	if err != nil {
		core.LogFatal("failed to load config: %s", err.Error())
	}
	if *scenePath != "" {
		config.Scene.Path = *scenePath
	}

	tb := testbed.NewTestGame(config)

	e, err := engine.New(tb.Game)
	if err != nil {
		core.LogFatal("failed to boot engine: %s", err.Error())
	}

	if err := e.Initialize(); err != nil {
		core.LogFatal("failed to initialize engine: %s", err.Error())
	}

	// capture sigterm and other system calls
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	runErr := e.Run(ctx)
	if err := e.Shutdown(); err != nil {
		core.LogError("shutdown failed: %s", err.Error())
	}
	if runErr != nil {
		core.LogError("engine stopped: %s", runErr.Error())
		os.Exit(1)
	}
}
