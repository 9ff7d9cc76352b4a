package pattern

import (
	"math"

	"github.com/tomz197/danmaku/internal/object"
	"github.com/tomz197/danmaku/internal/physics"
)

// Pattern is one entry of the catalog.
type Pattern struct {
	Name        string
	Health      int
	Duration    float64 // Ticks before the pattern counts as failed
	Approach    Vec     // Where the boss flies before firing
	HasApproach bool
	Fire        func(e *Engine, ctx Context)
}

// Catalog is the boss's fixed sequence of patterns.
var Catalog = []Pattern{
	{
		Name:        "helix + sniper lines",
		Health:      600,
		Duration:    1800,
		Approach:    Vec{X: 192, Y: 120},
		HasApproach: true,
		Fire:        helixSniper,
	},
	{
		Name:        "stand and spray",
		Health:      500,
		Duration:    1500,
		Approach:    Vec{X: 192, Y: 100},
		HasApproach: true,
		Fire:        standAndSpray,
	},
	{
		Name:        "patrol + ring + pincer",
		Health:      700,
		Duration:    1800,
		Approach:    Vec{X: 96, Y: 110},
		HasApproach: true,
		Fire:        patrolRingPincer,
	},
	{
		Name:     "chase + composite fan",
		Health:   800,
		Duration: 2100,
		Fire:     chaseFan,
	},
}

var deg = physics.Radians

// Helix + sniper lines.
const (
	helixPeriod      = 91
	helixSpeed       = 1.5
	sniperWindowLen  = 7
	sniperSpeed      = 4.0
	sniperSideMin    = 0.07 * math.Pi
	sniperSideMax    = 0.13 * math.Pi
	sniperSideEveryN = 10
)

var sniperWindows = [...]int{20, 45, 70}

// helixSniper fires a slow four-way rotating helix and, in three windows per
// cycle, a fast line locked on the player's position at the window start.
//
// Scratch: F1 = locked aim angle.
func helixSniper(e *Engine, ctx Context) {
	s := &e.scratch
	c := e.frame % helixPeriod

	if e.frame%2 == 0 {
		base := deg(float64(e.frame) * 2)
		angles := [4]float64{
			base,
			base + math.Pi,
			math.Pi - 2*base,
			2*math.Pi - 2*base,
		}
		for _, a := range angles {
			e.emit(object.BulletProp{
				Kind:  object.Kind{Shape: object.ShapeSmall, Color: object.ColorBlue},
				Pos:   ctx.Boss,
				Speed: helixSpeed,
			}.WithAngle(a))
		}
	}

	for _, start := range sniperWindows {
		if c < start || c >= start+sniperWindowLen {
			continue
		}
		if c == start {
			s.F1 = ctx.Aim()
		}
		line := object.BulletProp{
			Kind:  object.Kind{Shape: object.ShapeMedium, Color: object.ColorRed},
			Pos:   ctx.Boss,
			Speed: sniperSpeed,
		}
		e.emit(line.WithAngle(s.F1))
		if c%sniperSideEveryN == 0 {
			off := e.uniform(sniperSideMin, sniperSideMax)
			e.emit(line.WithAngle(s.F1 + off))
			e.emit(line.WithAngle(s.F1 - off))
		}
	}
}

// Stand and spray.
const (
	sprayPeriod    = 40
	sprayLockFrame = 30
	spraySpeed     = 3.0
	scatterEvery   = 5
	scatterCount   = 6
	scatterMin     = 1.0
	scatterMax     = 2.5
)

// standAndSpray streams large bullets along a direction locked at frame 30
// of each cycle and periodically scatters small bullets in random directions.
//
// Scratch: F1 = locked spray angle.
func standAndSpray(e *Engine, ctx Context) {
	s := &e.scratch
	c := e.frame % sprayPeriod

	if c == sprayLockFrame {
		s.F1 = ctx.Aim()
	}
	if c >= sprayLockFrame {
		e.emit(object.BulletProp{
			Kind:  object.Kind{Shape: object.ShapeLarge, Color: object.ColorPurple},
			Pos:   ctx.Boss,
			Speed: spraySpeed,
		}.WithAngle(s.F1))
	}

	if e.frame%scatterEvery == 0 {
		for range scatterCount {
			e.emit(object.BulletProp{
				Kind:  object.Kind{Shape: object.ShapeSmall, Color: object.ColorYellow},
				Pos:   ctx.Boss,
				Speed: e.uniform(scatterMin, scatterMax),
			}.WithAngle(e.uniform(0, 2*math.Pi)))
		}
	}
}

// Patrol + ring + pincer.
const (
	patrolPeriod     = 60
	patrolLeft       = 96.0
	patrolRight      = 288.0
	patrolSpeed      = 3.2
	crossEvery       = 4
	crossUntil       = 40
	crossSpeed       = 2.0
	crossStepDegrees = 9
	ringFrame        = 40
	ringCount        = 11
	ringSpeed        = 2.2
	pincerFrom       = 45
	pincerEvery      = 4
	pincerSpeed      = 3.0
	pincerDegrees    = 15
)

// patrolRingPincer sweeps the boss between two x positions. Each cycle it
// drops a rotating cross while travelling, then a ring around the player
// direction, then pincer pairs closing in on the player.
//
// Scratch: I1 = patrol side (0 left, 1 right), F1 = cross base angle.
func patrolRingPincer(e *Engine, ctx Context) {
	s := &e.scratch
	c := e.frame % patrolPeriod

	if c == 0 {
		s.I1 = 1 - s.I1
		x := patrolLeft
		if s.I1 == 1 {
			x = patrolRight
		}
		e.moveTo(Vec{X: x, Y: ctx.Boss.Y}, patrolSpeed)
	}

	if c < crossUntil && c%crossEvery == 0 {
		for k := range 4 {
			e.emit(object.BulletProp{
				Kind:  object.Kind{Shape: object.ShapeSmall, Color: object.ColorGreen},
				Pos:   ctx.Boss,
				Speed: crossSpeed,
			}.WithAngle(s.F1 + float64(k)*math.Pi/2))
		}
		s.F1 += deg(crossStepDegrees)
	}

	if c == ringFrame {
		aim := ctx.Aim()
		for k := range ringCount {
			e.emit(object.BulletProp{
				Kind:  object.Kind{Shape: object.ShapeMedium, Color: object.ColorBlue},
				Pos:   ctx.Boss,
				Speed: ringSpeed,
			}.WithAngle(aim + float64(k)*2*math.Pi/ringCount))
		}
	}

	if c >= pincerFrom && (c-pincerFrom)%pincerEvery == 0 {
		aim := ctx.Aim()
		pair := object.BulletProp{
			Kind:  object.Kind{Shape: object.ShapeSmall, Color: object.ColorRed},
			Pos:   ctx.Boss,
			Speed: pincerSpeed,
		}
		e.emit(pair.WithAngle(aim + deg(pincerDegrees)))
		e.emit(pair.WithAngle(aim - deg(pincerDegrees)))
	}
}

// Chase + composite fan.
const (
	chasePeriod      = 51
	chaseStepEvery   = 30
	chaseMaxStep     = 48.0
	chaseSpeed       = 2.4
	fanEvery         = 15
	fanWidth         = 5
	fanSpread        = 0.3
	stillCrossEvery  = 6
	stillCrossSpeed  = 1.0
	stillCrossDegree = 7
)

var fanTierSpeeds = [...]float64{1.6, 2.2, 2.8}

// chaseFan steps the boss sideways towards the player and fires three-tier
// fans along rotating aim choices. While the boss stands still it also
// leaves a slow rotating cross.
//
// Scratch: I1 = fan counter, F2 = cross base angle.
func chaseFan(e *Engine, ctx Context) {
	s := &e.scratch
	c := e.frame % chasePeriod
	still := !e.moving

	if e.frame%chaseStepEvery == 0 {
		dx := math.Max(-chaseMaxStep, math.Min(chaseMaxStep, ctx.Player.X-ctx.Boss.X))
		if math.Abs(dx) >= 1 {
			e.moveTo(Vec{X: ctx.Boss.X + dx, Y: ctx.Boss.Y}, chaseSpeed)
		}
	}

	if c%fanEvery == 0 {
		choice := s.I1 % 3
		s.I1++
		var aim float64
		switch choice {
		case 0:
			aim = math.Pi / 4
		case 1:
			aim = 3 * math.Pi / 4
		default:
			aim = ctx.Aim()
		}
		fan(e, ctx.Boss, aim)
		if choice < 2 {
			fan(e, ctx.Boss, math.Pi-aim)
		}
	}

	if still && e.frame%stillCrossEvery == 0 {
		for k := range 4 {
			e.emit(object.BulletProp{
				Kind:  object.Kind{Shape: object.ShapeSmall, Color: object.ColorPurple},
				Pos:   ctx.Boss,
				Speed: stillCrossSpeed,
			}.WithAngle(s.F2 + float64(k)*math.Pi/2))
		}
		s.F2 += deg(stillCrossDegree)
	}
}

// fan emits one fan per speed tier centred on aim.
func fan(e *Engine, from Vec, aim float64) {
	step := 2 * fanSpread / (fanWidth - 1)
	for tier, speed := range fanTierSpeeds {
		kind := object.Kind{Shape: object.ShapeMedium, Color: object.Color(tier % 3)}
		for i := range fanWidth {
			e.emit(object.BulletProp{
				Kind:  kind,
				Pos:   from,
				Speed: speed,
			}.WithAngle(aim - fanSpread + float64(i)*step))
		}
	}
}
