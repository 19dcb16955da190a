package engine

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/spaghettifunk/exhibit/engine/core"
	"github.com/spaghettifunk/exhibit/engine/math"
	"github.com/spaghettifunk/exhibit/engine/physics"
	"github.com/spaghettifunk/exhibit/engine/scene"
)

var ErrInvalidConfig = errors.New("invalid application config")

type ApplicationConfig struct {
	App   AppConfig   `toml:"app"`
	Scene SceneConfig `toml:"scene"`
	World WorldConfig `toml:"world"`
	Jobs  JobsConfig  `toml:"jobs"`
}

type AppConfig struct {
	// The application name used in logs.
	Name string `toml:"name"`
	// Ticks per second of the simulation loop.
	TickRate int    `toml:"tick_rate"`
	LogLevel string `toml:"log_level"`
	// Directory indexed by the asset manager. Relative paths are resolved
	// against the directory of the config file.
	AssetsDir string `toml:"assets_dir"`
}

type SceneConfig struct {
	// Scene file to stream, relative to the assets directory.
	Path string `toml:"path"`
	// "all" or "suffix".
	CollisionFilter string `toml:"collision_filter"`
	CollisionSuffix string `toml:"collision_suffix"`
}

type WorldConfig struct {
	SpawnPoint     [3]float32 `toml:"spawn_point"`
	FloorThreshold float32    `toml:"floor_threshold"`
	Gravity        [3]float32 `toml:"gravity"`
}

type JobsConfig struct {
	Workers   int `toml:"workers"`
	QueueSize int `toml:"queue_size"`
}

func DefaultApplicationConfig() *ApplicationConfig {
	spawn := physics.DefaultSpawnPoint
	gravity := physics.DefaultGravity
	return &ApplicationConfig{
		App: AppConfig{
			Name:      "Exhibit",
			TickRate:  60,
			LogLevel:  "info",
			AssetsDir: "assets",
		},
		Scene: SceneConfig{
			Path:            "exhibition.scene.yaml",
			CollisionFilter: "all",
			CollisionSuffix: scene.DefaultCollisionSuffix,
		},
		World: WorldConfig{
			SpawnPoint:     [3]float32{spawn.X, spawn.Y, spawn.Z},
			FloorThreshold: physics.DefaultFloorThreshold,
			Gravity:        [3]float32{gravity.X, gravity.Y, gravity.Z},
		},
		Jobs: JobsConfig{
			Workers:   2,
			QueueSize: 16,
		},
	}
}

// LoadApplicationConfig reads a TOML file on top of the defaults. Keys left
// out keep their default value; unknown keys are rejected.
func LoadApplicationConfig(path string) (*ApplicationConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	config := DefaultApplicationConfig()
	dec := toml.NewDecoder(f).DisallowUnknownFields()
	if err := dec.Decode(config); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidConfig, strict.String())
		}
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	if !filepath.IsAbs(config.App.AssetsDir) {
		config.App.AssetsDir = filepath.Join(filepath.Dir(path), config.App.AssetsDir)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *ApplicationConfig) Validate() error {
	if c.App.TickRate <= 0 {
		return fmt.Errorf("%w: tick_rate must be positive, got %d", ErrInvalidConfig, c.App.TickRate)
	}
	if _, err := core.ParseLogLevel(c.App.LogLevel); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, err.Error())
	}
	if c.App.AssetsDir == "" {
		return fmt.Errorf("%w: assets_dir is empty", ErrInvalidConfig)
	}
	if c.Scene.Path == "" {
		return fmt.Errorf("%w: scene path is empty", ErrInvalidConfig)
	}
	if _, err := c.FilterPolicy(); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, err.Error())
	}
	if c.Jobs.Workers <= 0 {
		return fmt.Errorf("%w: at least one job worker is required", ErrInvalidConfig)
	}
	if c.Jobs.QueueSize < 0 {
		return fmt.Errorf("%w: queue_size must not be negative", ErrInvalidConfig)
	}
	if c.World.SpawnPoint[1] <= c.World.FloorThreshold {
		return fmt.Errorf("%w: spawn point is below the floor threshold", ErrInvalidConfig)
	}
	return nil
}

func (c *ApplicationConfig) TickInterval() time.Duration {
	return time.Second / time.Duration(c.App.TickRate)
}

func (c *ApplicationConfig) Level() core.LogLevel {
	level, _ := core.ParseLogLevel(c.App.LogLevel)
	return level
}

func (c *ApplicationConfig) FilterPolicy() (scene.FilterPolicy, error) {
	return scene.ParseFilterPolicy(c.Scene.CollisionFilter, c.Scene.CollisionSuffix)
}

func (c *ApplicationConfig) SpawnPoint() math.Vec3 {
	return math.NewVec3(c.World.SpawnPoint[0], c.World.SpawnPoint[1], c.World.SpawnPoint[2])
}

func (c *ApplicationConfig) Gravity() math.Vec3 {
	return math.NewVec3(c.World.Gravity[0], c.World.Gravity[1], c.World.Gravity[2])
}
