package object

import (
	"maps"

	"github.com/tomz197/danmaku/internal/duty"
)

// BossDuty selects the boss lifecycle state.
type BossDuty int

const (
	BossPreIntro BossDuty = iota
	BossIntro
	BossActive
	BossTransition
	BossDeathSequence
	BossKilled
)

func (d BossDuty) String() string {
	switch d {
	case BossPreIntro:
		return "pre-intro"
	case BossIntro:
		return "intro"
	case BossActive:
		return "active"
	case BossTransition:
		return "transition"
	case BossDeathSequence:
		return "death-sequence"
	case BossKilled:
		return "killed"
	}
	return "unknown"
}

// BossDurations holds the length of each boss state in ticks.
// BossActive is filled in per pattern with SetPatternDuration.
var BossDurations = duty.Table[BossDuty]{
	BossPreIntro:      60,
	BossIntro:         120,
	BossActive:        0,
	BossTransition:    90,
	BossDeathSequence: 120,
	BossKilled:        0,
}

// Boss envelope and fixed positions.
const (
	BossWidth  = 48.0
	BossHeight = 48.0

	// BossIntroSpeed is the flight speed from the spawn point to the intro destination.
	BossIntroSpeed = 1.5
)

var (
	BossSpawn     = Vec{X: 192, Y: -48}
	BossIntroDest = Vec{X: 192, Y: 100}
)

// Movement is the boss movement style.
type Movement int

const (
	Stationary Movement = iota
	MovingToDestination
)

// Boss is the scripted enemy.
type Boss struct {
	Entity
	Duty      duty.Timer[BossDuty]
	Health    int
	MaxHealth int
	Movement  Movement
	dest      Vec
	speed     float64
	durations duty.Table[BossDuty]
}

// NewBoss creates a boss waiting off screen at its spawn point.
func NewBoss() *Boss {
	durations := maps.Clone(BossDurations)
	return &Boss{
		Entity:    NewEntity(BossSpawn, BossWidth, BossHeight),
		Duty:      duty.New(durations, BossPreIntro),
		durations: durations,
	}
}

// SetPatternDuration sets how long the next Active state lasts.
func (b *Boss) SetPatternDuration(ticks float64) {
	b.durations[BossActive] = ticks
}

// Snapshot returns a copy of b with its own duration table, so changing the
// copy never touches b.
func (b *Boss) Snapshot() Boss {
	c := *b
	c.durations = maps.Clone(b.durations)
	c.Duty = c.Duty.WithTable(c.durations)
	return c
}

// SetHealth restores the boss to full health at max.
func (b *Boss) SetHealth(max int) {
	b.MaxHealth = max
	b.Health = max
}

// Damage removes n health, clamping at zero.
func (b *Boss) Damage(n int) {
	b.Health -= n
	if b.Health < 0 {
		b.Health = 0
	}
}

// Active reports whether a pattern is running.
func (b Boss) Active() bool {
	return b.Duty.SamePurpose(BossActive)
}

// Present reports whether the boss is on the field and can collide.
func (b Boss) Present() bool {
	return !b.Duty.SamePurpose(BossPreIntro) && !b.Duty.SamePurpose(BossKilled)
}

// MoveTo starts moving the boss towards dest at speed units per tick.
func (b *Boss) MoveTo(dest Vec, speed float64) {
	b.dest = dest
	b.speed = speed
	b.Movement = MovingToDestination
}

// Destination returns the current move target.
func (b Boss) Destination() Vec {
	return b.dest
}

// Stop cancels any movement.
func (b *Boss) Stop() {
	b.Movement = Stationary
}

// UpdateMovement advances a pending move. It returns true on the tick the
// boss reaches its destination.
func (b *Boss) UpdateMovement(dt float64) (arrived bool) {
	if b.Movement != MovingToDestination {
		return false
	}
	step := b.speed * dt
	delta := b.dest.Sub(b.Pos)
	if delta.Len() <= step {
		b.Pos = b.dest
		b.Movement = Stationary
		return true
	}
	b.Pos = b.Pos.Add(delta.Normalize().Scale(step))
	return false
}
