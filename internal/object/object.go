// Package object holds the simulation's entities: the player, the boss, bullets,
// the bomb blast and hit sparks. Entities only know how to move themselves and
// answer geometric questions; the gameplay package decides what happens when
// they meet.
package object

import (
	"github.com/tomz197/danmaku/internal/physics"
)

// Vec is an alias for the physics package's vector type.
type Vec = physics.Vec

// Entity is an axis-aligned bounding envelope used for coarse collision.
type Entity struct {
	Pos  Vec // Centre of the envelope
	Size Vec // Full width and height
	half Vec // Cached Size / 2
}

// NewEntity creates an envelope of the given size centred at pos.
func NewEntity(pos Vec, width, height float64) Entity {
	e := Entity{Pos: pos}
	e.SetSize(width, height)
	return e
}

// SetSize changes the envelope size and refreshes the cached half size.
func (e *Entity) SetSize(width, height float64) {
	e.Size = Vec{X: width, Y: height}
	e.half = e.Size.Scale(0.5)
}

// Half returns half of the envelope size.
func (e Entity) Half() Vec {
	return e.half
}

// Rect returns the envelope as a rectangle.
func (e Entity) Rect() physics.Rect {
	return physics.Rect{Center: e.Pos, Half: e.half}
}

// Bounds is the play field, with the origin at its top-left corner.
type Bounds struct {
	Width  float64
	Height float64
}

// Center returns the middle of the field.
func (b Bounds) Center() Vec {
	return Vec{X: b.Width / 2, Y: b.Height / 2}
}

// Outside reports whether p lies more than margin outside the field.
func (b Bounds) Outside(p Vec, margin float64) bool {
	return p.X < -margin || p.X > b.Width+margin ||
		p.Y < -margin || p.Y > b.Height+margin
}

// Clamp keeps a centre point inside the field, inset by half.
func (b Bounds) Clamp(p, half Vec) Vec {
	if p.X < half.X {
		p.X = half.X
	}
	if p.X > b.Width-half.X {
		p.X = b.Width - half.X
	}
	if p.Y < half.Y {
		p.Y = half.Y
	}
	if p.Y > b.Height-half.Y {
		p.Y = b.Height - half.Y
	}
	return p
}

// ShouldRenderBlink returns true if an object with remaining protection/invincibility
// time should be rendered this frame (for blinking effect).
// Returns true always if remainingTicks <= 0 (no protection).
func ShouldRenderBlink(remainingTicks float64, period int) bool {
	if remainingTicks <= 0 || period <= 0 {
		return true
	}
	phase := int(remainingTicks) / period
	return phase%2 != 0
}
