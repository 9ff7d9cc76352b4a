package object

import (
	"github.com/tomz197/danmaku/internal/physics"
)

// Shape is a bullet size class.
type Shape int

const (
	ShapeSmall Shape = iota
	ShapeMedium
	ShapeLarge
)

// Radius returns the collision radius of the size class.
func (s Shape) Radius() float64 {
	switch s {
	case ShapeMedium:
		return 5
	case ShapeLarge:
		return 9
	default:
		return 3
	}
}

func (s Shape) String() string {
	switch s {
	case ShapeSmall:
		return "small"
	case ShapeMedium:
		return "medium"
	case ShapeLarge:
		return "large"
	}
	return "unknown"
}

// Color is a bullet colour tag. Renderers map it to an actual colour.
type Color int

const (
	ColorRed Color = iota
	ColorBlue
	ColorPurple
	ColorYellow
	ColorGreen
	ColorWhite
)

// Kind is the type tag of a bullet: its size class and colour.
type Kind struct {
	Shape Shape
	Color Color
}

// PlayerShot is the kind of every player bullet.
var PlayerShot = Kind{Shape: ShapeSmall, Color: ColorWhite}

// BulletProp describes a bullet to be created. Patterns only ever produce
// these; the gameplay package turns them into live bullets.
type BulletProp struct {
	Kind  Kind
	Pos   Vec
	Dir   Vec
	Speed float64
}

// WithAngle returns a copy of p heading along angle.
func (p BulletProp) WithAngle(angle float64) BulletProp {
	p.Dir = physics.FromAngle(angle)
	return p
}

// WithSpeed returns a copy of p with a different speed.
func (p BulletProp) WithSpeed(speed float64) BulletProp {
	p.Speed = speed
	return p
}

// Bullet is a live projectile. Bullets are plain values; copying one and
// changing its direction is how fans are built.
type Bullet struct {
	Kind     Kind
	Pos      Vec
	Speed    float64 // Units per tick, may change at runtime
	Radius   float64
	Lifetime int  // Ticks since spawn
	Grazed   bool // Set once the bullet has grazed the player
	dir      Vec  // Unit heading
	killed   bool
}

// NewBullet creates a live bullet from a spawn descriptor.
func NewBullet(p BulletProp) Bullet {
	b := Bullet{
		Kind:   p.Kind,
		Pos:    p.Pos,
		Speed:  p.Speed,
		Radius: p.Kind.Shape.Radius(),
	}
	b.SetDirection(p.Dir)
	return b
}

// Direction returns the unit heading.
func (b Bullet) Direction() Vec {
	return b.dir
}

// Heading returns the heading angle in radians.
func (b Bullet) Heading() float64 {
	return b.dir.Angle()
}

// SetDirection sets the heading. The vector is always re-normalized; only an
// exactly zero vector is stored as is.
func (b *Bullet) SetDirection(d Vec) {
	b.dir = d.Normalize()
}

// SetHeading sets the heading from an angle in radians.
func (b *Bullet) SetHeading(angle float64) {
	b.dir = physics.FromAngle(angle)
}

// Update advances the bullet by one step of dt ticks.
func (b *Bullet) Update(dt float64) {
	b.Pos = b.Pos.Add(b.dir.Scale(b.Speed * dt))
	b.Lifetime++
}

// Kill marks the bullet for removal.
func (b *Bullet) Kill() {
	b.killed = true
}

// Killed reports whether the bullet was marked for removal.
func (b Bullet) Killed() bool {
	return b.killed
}

// Gone reports whether the bullet should be removed: it was killed or it
// has left the field by more than leniency.
func (b Bullet) Gone(field Bounds, leniency float64) bool {
	return b.killed || field.Outside(b.Pos, leniency)
}

// Circle returns the collision circle.
func (b Bullet) Circle() physics.Circle {
	return physics.Circle{Center: b.Pos, Radius: b.Radius}
}
