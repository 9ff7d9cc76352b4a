// Package pattern drives the boss's scripted attacks.
//
// The Engine walks a fixed catalog of patterns. Each pattern is a per-frame
// procedure that reads the frame counter, a handful of scratch slots and the
// player position, and answers with spawn descriptors and movement requests.
// The engine never touches live bullets, boss health or collision state.
package pattern

import (
	"math/rand/v2"

	"github.com/tomz197/danmaku/internal/object"
	"github.com/tomz197/danmaku/internal/physics"
)

// Vec is an alias for the physics package's vector type.
type Vec = physics.Vec

const (
	// ApproachSpeed is how fast the boss flies to a pattern's approach point.
	ApproachSpeed = 2.0
	// nearDistance is how close counts as already being at the approach point.
	nearDistance = 1.0
	// arriveDistance is how close the boss must be to a requested destination
	// to count as having reached it.
	arriveDistance = 1e-6
)

// Scratch is the per-pattern working state. It is zeroed whenever a new
// pattern starts.
type Scratch struct {
	I1, I2 int
	F1, F2 float64
	V1, V2 Vec
}

// Context is what a pattern can see of the world on a given frame.
type Context struct {
	Boss   Vec // Boss centre, the origin of every spawn
	Player Vec // Player centre, for aimed shots
}

// Aim returns the angle from the boss to the player.
func (c Context) Aim() float64 {
	return c.Player.Sub(c.Boss).Angle()
}

// Move asks the boss to travel to Dest at Speed units per tick.
type Move struct {
	Dest  Vec
	Speed float64
}

// Output is what one frame of a pattern produced.
// Spawns is only valid until the next call to Step.
type Output struct {
	Spawns  []object.BulletProp
	Move    Move
	HasMove bool
	Arrived bool // The boss reached the last requested destination this frame
}

// Start describes a pattern that has just begun.
type Start struct {
	Index    int
	Name     string
	Health   int
	Duration float64
	Move     Move
	HasMove  bool
}

// Engine steps the boss through the pattern catalog.
type Engine struct {
	catalog     []Pattern
	index       int
	frame       int
	approaching bool
	moving      bool // A requested move has not been reached yet
	dest        Vec
	scratch     Scratch
	rng         *rand.Rand
	out         Output
}

// NewEngine creates an engine over the default catalog seeded with seed.
func NewEngine(seed uint64) *Engine {
	return NewEngineWithCatalog(Catalog, seed)
}

// NewEngineWithCatalog creates an engine over a custom catalog.
func NewEngineWithCatalog(catalog []Pattern, seed uint64) *Engine {
	e := &Engine{catalog: catalog}
	e.Reset(seed)
	return e
}

// Reset rewinds the engine to before the first pattern and reseeds it.
func (e *Engine) Reset(seed uint64) {
	e.index = -1
	e.frame = 0
	e.approaching = false
	e.moving = false
	e.scratch = Scratch{}
	e.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Index returns the current pattern index, -1 before the first pattern.
func (e *Engine) Index() int {
	return e.index
}

// Frame returns the frame counter of the current pattern.
func (e *Engine) Frame() int {
	return e.frame
}

// Count returns the number of patterns in the catalog.
func (e *Engine) Count() int {
	return len(e.catalog)
}

// Scratch returns a copy of the current scratch state.
func (e *Engine) Scratch() Scratch {
	return e.scratch
}

// Approaching reports whether the boss is still flying to the approach point.
func (e *Engine) Approaching() bool {
	return e.approaching
}

// Moving reports whether the boss has yet to reach the last destination the
// engine asked for.
func (e *Engine) Moving() bool {
	return e.moving
}

// Current returns the running pattern.
func (e *Engine) Current() (Pattern, bool) {
	if e.index < 0 || e.index >= len(e.catalog) {
		return Pattern{}, false
	}
	return e.catalog[e.index], true
}

// NextPattern advances to the next pattern. It returns false once the
// catalog is exhausted, which means the boss has been defeated.
func (e *Engine) NextPattern(boss Vec) (Start, bool) {
	e.scratch = Scratch{}
	e.frame = 0
	e.approaching = false
	e.moving = false
	if e.index < len(e.catalog) {
		e.index++
	}

	p, ok := e.Current()
	if !ok {
		return Start{}, false
	}

	start := Start{
		Index:    e.index,
		Name:     p.Name,
		Health:   p.Health,
		Duration: p.Duration,
	}
	if p.HasApproach && boss.DistanceTo(p.Approach) > nearDistance {
		e.approaching = true
		e.moving = true
		e.dest = p.Approach
		start.Move = Move{Dest: p.Approach, Speed: ApproachSpeed}
		start.HasMove = true
	}
	return start, true
}

// Step runs one frame of the current pattern. Output.Arrived reports the
// frame on which the boss reaches a destination the engine requested; a
// pattern with an approach point starts firing on that frame.
func (e *Engine) Step(ctx Context) Output {
	e.out.Spawns = e.out.Spawns[:0]
	e.out.Move = Move{}
	e.out.HasMove = false
	e.out.Arrived = false

	p, ok := e.Current()
	if !ok {
		return e.out
	}
	if e.moving && ctx.Boss.DistanceTo(e.dest) <= arriveDistance {
		e.moving = false
		e.out.Arrived = true
	}
	if e.approaching {
		if !e.out.Arrived {
			return e.out
		}
		e.approaching = false
	}

	p.Fire(e, ctx)
	e.frame++
	return e.out
}

// emit queues a spawn.
func (e *Engine) emit(p object.BulletProp) {
	e.out.Spawns = append(e.out.Spawns, p)
}

// moveTo queues a movement request.
func (e *Engine) moveTo(dest Vec, speed float64) {
	e.out.Move = Move{Dest: dest, Speed: speed}
	e.out.HasMove = true
	e.moving = true
	e.dest = dest
}

// uniform returns a random float in [lo, hi).
func (e *Engine) uniform(lo, hi float64) float64 {
	return lo + e.rng.Float64()*(hi-lo)
}
