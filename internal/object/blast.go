package object

import (
	"github.com/tomz197/danmaku/internal/duty"
	"github.com/tomz197/danmaku/internal/physics"
)

// BlastDuty selects the phase of a bomb blast.
type BlastDuty int

const (
	BlastGrowing BlastDuty = iota
	BlastHolding
	BlastShrinking
	BlastDone
)

// BlastDurations holds the length of each blast phase in ticks.
var BlastDurations = duty.Table[BlastDuty]{
	BlastGrowing:   20,
	BlastHolding:   60,
	BlastShrinking: 20,
}

// BlastMaxRadius is the blast radius while holding.
const BlastMaxRadius = 120.0

// BombBlast is the circular area left by a bomb. It grows, holds, then shrinks.
type BombBlast struct {
	Center    Vec
	MaxRadius float64
	Duty      duty.Timer[BlastDuty]
	Combo     int // Bullets eaten by this blast
}

// NewBombBlast creates a blast centred at center.
func NewBombBlast(center Vec) *BombBlast {
	return &BombBlast{
		Center:    center,
		MaxRadius: BlastMaxRadius,
		Duty:      duty.New(BlastDurations, BlastGrowing),
	}
}

// CheckTransition moves to the next phase once the current one is over.
func (b *BombBlast) CheckTransition() {
	if !b.Duty.TimeIsUp() {
		return
	}
	switch b.Duty.Purpose() {
	case BlastGrowing:
		b.Duty.Repurpose(BlastHolding)
	case BlastHolding:
		b.Duty.Repurpose(BlastShrinking)
	case BlastShrinking:
		b.Duty.Repurpose(BlastDone)
	}
}

// Tick advances the current phase by dt ticks.
func (b *BombBlast) Tick(dt float64) {
	b.Duty.Tick(dt)
}

// Kill retires the blast immediately.
func (b *BombBlast) Kill() {
	b.Duty.Repurpose(BlastDone)
}

// Active reports whether the blast still affects bullets.
func (b *BombBlast) Active() bool {
	return !b.Duty.SamePurpose(BlastDone)
}

// FinalFrame reports whether this is the last tick the blast is active.
func (b *BombBlast) FinalFrame(dt float64) bool {
	return b.Duty.SamePurpose(BlastShrinking) && b.Duty.Remaining() <= dt
}

// Radius returns the current radius.
func (b *BombBlast) Radius() float64 {
	switch b.Duty.Purpose() {
	case BlastGrowing:
		return b.MaxRadius * b.Duty.PercentCompleted()
	case BlastHolding:
		return b.MaxRadius
	case BlastShrinking:
		return b.MaxRadius * b.Duty.PercentRemaining()
	}
	return 0
}

// Circle returns the current blast area.
func (b *BombBlast) Circle() physics.Circle {
	return physics.Circle{Center: b.Center, Radius: b.Radius()}
}
