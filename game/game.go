// Package game wires the ECS world, spatial index, movement resolver and
// the demo scene together, and owns the per-tick update.
package game

import (
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/substep/collide"
	"github.com/pthm-cable/substep/components"
	"github.com/pthm-cable/substep/config"
	"github.com/pthm-cable/substep/physnum"
	"github.com/pthm-cable/substep/systems"
	"github.com/pthm-cable/substep/telemetry"
)

type vec = physnum.Vec[physnum.SubPixel]

// Game holds the complete simulation state.
type Game struct {
	world *ecs.World
	cfg   *config.Config

	entityMapper *ecs.Map3[components.Position, components.Shape, components.Colour]
	renderFilter *ecs.Filter3[components.Position, components.Shape, components.Colour]
	moverFilter  *ecs.Filter2[components.Position, components.Velocity]
	posMap       *ecs.Map1[components.Position]
	velMap       *ecs.Map1[components.Velocity]
	shapeMap     *ecs.Map1[components.Shape]

	index    *systems.SpatialIndex
	resolver *systems.MovementResolver

	collector *telemetry.Collector

	input     InputModel
	playerID  ecs.Entity
	hasPlayer bool

	// Reusable scratch for the per-tick mover sweep.
	movers []moverEntry

	tick        int32
	entityCount int
	paused      bool
	debugPanel  bool
	showAABBs   bool
	speed       float32 // player speed in pixels per tick
}

type moverEntry struct {
	entity   ecs.Entity
	movement vec
}

// NewGame creates a game from the given config and spawns its scene.
func NewGame(cfg *config.Config, collector *telemetry.Collector) *Game {
	g := &Game{
		cfg:       cfg,
		collector: collector,
		speed:     float32(cfg.Input.Speed),
	}
	g.resetWorld()
	return g
}

// resetWorld rebuilds the ECS world, mappers and spatial index, then
// respawns the scene. This is the full reset: all component tables are
// cleared and the entity allocator restarts.
func (g *Game) resetWorld() {
	world := ecs.NewWorld()
	g.world = world
	g.entityMapper = ecs.NewMap3[components.Position, components.Shape, components.Colour](world)
	g.renderFilter = ecs.NewFilter3[components.Position, components.Shape, components.Colour](world)
	g.moverFilter = ecs.NewFilter2[components.Position, components.Velocity](world)
	g.posMap = ecs.NewMap1[components.Position](world)
	g.velMap = ecs.NewMap1[components.Velocity](world)
	g.shapeMap = ecs.NewMap1[components.Shape](world)

	g.index = systems.NewSpatialIndex(
		physnum.FromPixels(float32(g.cfg.World.Width)),
		physnum.FromPixels(float32(g.cfg.World.Height)),
		physnum.FromPixels(float32(g.cfg.Spatial.CellSize)),
	)
	g.resolver = systems.NewMovementResolver(world, g.index)

	g.hasPlayer = false
	g.entityCount = 0
	g.spawnScene()
}

// ResetScene swaps in a new config and rebuilds the world from it.
// Used for config hot-reload and the debug panel's reset button.
func (g *Game) ResetScene(cfg *config.Config) {
	g.cfg = cfg
	g.speed = float32(cfg.Input.Speed)
	g.resetWorld()
	Logf("scene reset: %d entities", g.entityCount)
}

// spawnScene creates the entities described by the scene config.
func (g *Game) spawnScene() {
	for _, e := range g.cfg.Scene.Entities {
		pos := physnum.VFromPixels(float32(e.Pos[0]), float32(e.Pos[1]))
		colour := components.Colour{
			R: float32(e.Colour[0]),
			G: float32(e.Colour[1]),
			B: float32(e.Colour[2]),
		}

		var shape collide.Shape[physnum.SubPixel]
		switch e.Kind {
		case "segment":
			shape = collide.Segment[physnum.SubPixel]{
				End: physnum.VFromPixels(float32(e.End[0]), float32(e.End[1])),
			}
		default: // "rect", enforced by config validation
			shape = collide.Rect[physnum.SubPixel]{
				Size: physnum.VFromPixels(float32(e.Size[0]), float32(e.Size[1])),
			}
		}

		id := g.AddEntity(pos, shape, colour)
		if e.Player {
			g.velMap.Add(id, &components.Velocity{})
			g.playerID = id
			g.hasPlayer = true
		}
	}
}

// AddEntity creates an entity with position, shape and colour, and
// registers its bounding box with the spatial index.
func (g *Game) AddEntity(pos vec, shape collide.Shape[physnum.SubPixel], colour components.Colour) ecs.Entity {
	p := components.Position{X: pos.X, Y: pos.Y}
	sh := components.Shape{Geom: shape}
	e := g.entityMapper.NewEntity(&p, &sh, &colour)
	g.index.Insert(shape.AABB(pos), e)
	g.entityCount++
	return e
}

// Update advances the game one frame in graphical mode.
func (g *Game) Update() {
	g.handleInput()
	if !g.paused {
		g.Step()
	}
}

// UpdateHeadless advances the simulation one tick without any input or
// render plumbing.
func (g *Game) UpdateHeadless() {
	g.Step()
}

// Step runs one simulation tick: map input to the player's velocity, then
// sweep the velocity table through the movement resolver. Movers are
// collected before any resolution so each entity resolves against a
// consistent snapshot-ordered world; resolutions themselves run strictly
// one after another.
func (g *Game) Step() {
	g.tick++

	if g.hasPlayer {
		if vel := g.velMap.Get(g.playerID); vel != nil {
			vel.Set(scaleMovement(g.input.Movement(), g.speed))
		}
	}

	g.movers = g.movers[:0]
	query := g.moverFilter.Query()
	for query.Next() {
		_, vel := query.Get()
		g.movers = append(g.movers, moverEntry{entity: query.Entity(), movement: vel.Vec()})
	}

	for _, mv := range g.movers {
		res, ok := g.resolver.Resolve(mv.entity, mv.movement)
		if !ok {
			continue
		}
		if !mv.movement.IsZero() {
			g.collector.RecordMove(res.Steps, res.Collisions, res.Capped)
		}

		pos := g.posMap.Get(mv.entity)
		old := pos.Vec()
		if res.Position == old {
			continue
		}
		pos.Set(res.Position)
		if shape := g.shapeMap.Get(mv.entity); shape != nil {
			g.index.Update(mv.entity, shape.Geom.AABB(old), shape.Geom.AABB(res.Position))
		}
	}

	if err := g.collector.EndTick(g.tick, g.entityCount); err != nil {
		Logf("telemetry: %v", err)
	}
}

// Tick returns the current tick count.
func (g *Game) Tick() int32 {
	return g.tick
}

// PlayerPosition returns the player's position in pixels, if any.
func (g *Game) PlayerPosition() (x, y float32, ok bool) {
	if !g.hasPlayer {
		return 0, 0, false
	}
	pos := g.posMap.Get(g.playerID)
	if pos == nil {
		return 0, 0, false
	}
	return pos.X.Pixels(), pos.Y.Pixels(), true
}

// scaleMovement scales a unit-clamped input movement by a pixel-per-tick
// speed, truncating back to fixed point.
func scaleMovement(m vec, speed float32) vec {
	return vec{
		X: physnum.SubPixel(math.Trunc(float64(m.X) * float64(speed))),
		Y: physnum.SubPixel(math.Trunc(float64(m.Y) * float64(speed))),
	}
}
