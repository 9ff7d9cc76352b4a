package object

import (
	"github.com/tomz197/danmaku/internal/duty"
	"github.com/tomz197/danmaku/internal/physics"
)

// PlayerDuty selects which player sub-state is active.
type PlayerDuty int

const (
	PlayerNormal PlayerDuty = iota
	PlayerRevivalFlashIn
	PlayerRevivalFlashOut
	PlayerInvincible
	PlayerDeathCountdown
)

func (d PlayerDuty) String() string {
	switch d {
	case PlayerNormal:
		return "normal"
	case PlayerRevivalFlashIn:
		return "revival-flash-in"
	case PlayerRevivalFlashOut:
		return "revival-flash-out"
	case PlayerInvincible:
		return "invincible"
	case PlayerDeathCountdown:
		return "death-countdown"
	}
	return "unknown"
}

// PlayerDurations holds the length of each player sub-state in ticks.
var PlayerDurations = duty.Table[PlayerDuty]{
	PlayerNormal:          0,
	PlayerRevivalFlashIn:  40,
	PlayerRevivalFlashOut: 20,
	PlayerInvincible:      120,
	PlayerDeathCountdown:  30,
}

// Player envelope and collision sizes.
const (
	PlayerWidth        = 16.0
	PlayerHeight       = 24.0
	PlayerHitboxRadius = 2.5
	PlayerGrazeRadius  = 20.0

	// PlayerRiseSpeed is how fast the player flies in while reviving.
	PlayerRiseSpeed = 2.0
)

// Player is the player-controlled ship.
type Player struct {
	Entity
	Duty         duty.Timer[PlayerDuty]
	HitboxRadius float64
	GrazeRadius  float64
	ShotCooldown int // Ticks until the next shot is allowed
}

// NewPlayer creates a player at pos that starts flying in.
func NewPlayer(pos Vec, grazeRadius float64) *Player {
	return &Player{
		Entity:       NewEntity(pos, PlayerWidth, PlayerHeight),
		Duty:         duty.New(PlayerDurations, PlayerRevivalFlashIn),
		HitboxRadius: PlayerHitboxRadius,
		GrazeRadius:  grazeRadius,
	}
}

// Hitbox returns the small circle that bullets must touch to hit the player.
func (p Player) Hitbox() physics.Circle {
	return physics.Circle{Center: p.Pos, Radius: p.HitboxRadius}
}

// GrazeArea returns the circle inside which passing bullets count as grazes.
func (p Player) GrazeArea() physics.Circle {
	return physics.Circle{Center: p.Pos, Radius: p.GrazeRadius}
}

// Reviving reports whether the player is still flying back in.
func (p Player) Reviving() bool {
	return p.Duty.SamePurpose(PlayerRevivalFlashIn) || p.Duty.SamePurpose(PlayerRevivalFlashOut)
}

// Dying reports whether the death countdown is running.
func (p Player) Dying() bool {
	return p.Duty.SamePurpose(PlayerDeathCountdown)
}

// Vulnerable reports whether an enemy bullet or the boss can hit the player.
func (p Player) Vulnerable() bool {
	return p.Duty.SamePurpose(PlayerNormal)
}

// Controllable reports whether movement and shooting are allowed.
func (p Player) Controllable() bool {
	return p.Duty.SamePurpose(PlayerNormal) || p.Duty.SamePurpose(PlayerInvincible)
}

// CanBomb reports whether the player's state allows a bomb.
func (p Player) CanBomb() bool {
	return !p.Reviving() && !p.Dying()
}

// Visible reports whether the player is drawn this tick. The player blinks
// with the given half-period in ticks while reviving or invincible.
func (p Player) Visible(blinkPeriod int) bool {
	switch p.Duty.Purpose() {
	case PlayerRevivalFlashIn, PlayerRevivalFlashOut, PlayerInvincible:
		return ShouldRenderBlink(p.Duty.Remaining(), blinkPeriod)
	}
	return true
}

// Move moves the player along the held direction and keeps it inside the field.
// Diagonal movement is normalized so it is no faster than straight movement.
func (p *Player) Move(dx, dy, speed, dt float64, field Bounds) {
	dir := Vec{X: dx, Y: dy}
	if dir.LenSq() == 0 {
		return
	}
	p.Pos = p.Pos.Add(dir.Normalize().Scale(speed * dt))
	p.Pos = field.Clamp(p.Pos, p.Half())
}

// Respawn puts the player at pos and starts the revival sequence.
func (p *Player) Respawn(pos Vec) {
	p.Pos = pos
	p.ShotCooldown = 0
	p.Duty.Repurpose(PlayerRevivalFlashIn)
}
