// Package pipeline turns a streamed scene asset into fixed collision bodies
// and keeps dynamic bodies inside the world, one tick at a time.
package pipeline

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spaghettifunk/exhibit/engine/core"
	"github.com/spaghettifunk/exhibit/engine/physics"
	"github.com/spaghettifunk/exhibit/engine/scene"
)

type State int

const (
	StatePending State = iota
	StateSynthesizing
	StateDone
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateSynthesizing:
		return "synthesizing"
	case StateDone:
		return "done"
	}
	return "unknown"
}

// Report sums up one synthesis pass.
type Report struct {
	// Spawned counts fixed bodies created, one per usable primitive.
	Spawned int
	// Skipped counts visited nodes without mesh data or rejected by the policy.
	Skipped int
	// Errors holds the empty scene error or one error per failed primitive.
	Errors  []error
	Elapsed time.Duration
}

func (r Report) Failed() int {
	return len(r.Errors)
}

type Options struct {
	// AssetID names the asset in logs and events.
	AssetID string
	// Policy selects collidable nodes. Nil accepts every mesh node.
	Policy scene.FilterPolicy
	// Flags for trimesh construction. Zero means physics.DefaultTriMeshFlags.
	Flags physics.TriMeshFlags
	// Respawn runs after every step when set.
	Respawn *physics.RespawnMonitor
	Events  *core.EventBus
}

// Pipeline drives one scene asset through
//
//	Pending -> Synthesizing -> Done
//
// and steps the physics world every tick. All of it runs on the caller's
// goroutine.
type Pipeline struct {
	tracker *Tracker
	world   *physics.World
	spawner *physics.Spawner
	respawn *physics.RespawnMonitor
	events  *core.EventBus

	assetID string
	policy  scene.FilterPolicy
	flags   physics.TriMeshFlags

	state  State
	report Report
	log    *log.Logger
}

func NewPipeline(tracker *Tracker, world *physics.World, opts Options) *Pipeline {
	if opts.Policy == nil {
		opts.Policy = scene.AcceptAll()
	}
	if opts.Flags == 0 {
		opts.Flags = physics.DefaultTriMeshFlags
	}
	return &Pipeline{
		tracker: tracker,
		world:   world,
		spawner: physics.NewSpawner(world),
		respawn: opts.Respawn,
		events:  opts.Events,
		assetID: opts.AssetID,
		policy:  opts.Policy,
		flags:   opts.Flags,
		log:     core.Logger().With("asset", opts.AssetID),
	}
}

func (p *Pipeline) State() State {
	return p.state
}

// Report is the outcome of the synthesis pass; zero until it ran.
func (p *Pipeline) Report() Report {
	return p.report
}

func (p *Pipeline) World() *physics.World {
	return p.world
}

// Tick runs one frame in a fixed order: poll the asset, build the collision
// world if it just became available, step the simulation, then catch bodies
// that fell out of the world.
func (p *Pipeline) Tick(dt float32) {
	if p.state == StatePending && p.tracker.Poll() == Loaded {
		asset, _ := p.tracker.Data()
		p.Synthesize(asset)
	}

	p.world.Step(dt)

	if p.respawn != nil {
		p.respawn.Run(p.world)
	}
}

// Synthesize walks asset, converts every accepted primitive into a trimesh
// collider and spawns one fixed body for each. It runs once per pipeline;
// later calls return the first report without touching the world. Failures
// are logged and collected in the report, never returned.
func (p *Pipeline) Synthesize(asset *scene.Asset) Report {
	if p.state != StatePending {
		return p.report
	}
	p.state = StateSynthesizing
	start := time.Now()

	report := Report{}
	walk, err := scene.NewWalk(asset, p.policy)
	if err != nil {
		p.log.Error("scene has nothing to build collision from", "err", err)
		report.Errors = append(report.Errors, err)
	}

	for c := range walk.Candidates() {
		for i := range c.Mesh.Primitives {
			prim := &c.Mesh.Primitives[i]
			collider, err := physics.NewTriMesh(prim.Positions, prim.Indices, p.flags)
			if err != nil {
				cerr := &physics.ColliderError{Node: c.Node.Name, Primitive: i, Err: err}
				p.log.Error("collider construction failed, primitive skipped", "node", c.Node.Name, "primitive", i, "err", err)
				report.Errors = append(report.Errors, cerr)
				continue
			}

			if _, err := p.spawner.SpawnFixed(bodyName(c.Node.Name, i, len(c.Mesh.Primitives)), c.World, collider); err != nil {
				p.log.Error("fixed body not spawned", "node", c.Node.Name, "primitive", i, "err", err)
				report.Errors = append(report.Errors, &physics.ColliderError{Node: c.Node.Name, Primitive: i, Err: err})
				continue
			}
			report.Spawned++
		}
	}
	report.Skipped = walk.Excluded()
	report.Elapsed = time.Since(start)

	p.report = report
	p.state = StateDone

	p.log.Info("collision world built", "policy", p.policy.String(), "spawned", report.Spawned, "skipped", report.Skipped, "failed", report.Failed(), "elapsed", report.Elapsed)
	p.events.Fire(core.EventContext{
		Type: core.EVENT_CODE_SCENE_SYNTHESIZED,
		Data: &core.SceneSynthesizedEvent{
			AssetID: p.assetID,
			Spawned: report.Spawned,
			Skipped: report.Skipped,
			Failed:  report.Failed(),
		},
	})
	return report
}

func bodyName(node string, primitive, primitives int) string {
	if primitives == 1 {
		return node
	}
	return fmt.Sprintf("%s#%d", node, primitive)
}
