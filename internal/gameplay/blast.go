package gameplay

import (
	"math"

	"github.com/tomz197/danmaku/internal/object"
	"github.com/tomz197/danmaku/internal/physics"
)

// Bomb sweep tuning, per tick.
const (
	blastEatSlack    = 0.1
	blastAccel       = 0.5
	blastMaxSpeed    = 4.0
	blastMinSpeed    = 0.1
	blastMaxTurnRate = 0.1 // radians
)

func (m *Manager) updateBlast(dt float64) {
	if m.blast == nil {
		return
	}
	m.blast.CheckTransition()
	if !m.blast.Active() {
		m.blast = nil
		return
	}
	m.sweepBlast(dt)
	m.blast.Tick(dt)
}

// sweepBlast pulls enemy bullets inside the blast towards its centre and
// eats the ones that reach it. On the blast's final frame everything still
// inside is eaten at once, or flung outwards in fun mode.
func (m *Manager) sweepBlast(dt float64) {
	bl := m.blast
	area := bl.Circle()
	final := bl.FinalFrame(dt)

	for i := range m.enemyBullets {
		b := &m.enemyBullets[i]
		if b.Killed() || !physics.CircleTouches(area, b.Circle()) {
			continue
		}

		if final {
			if m.opts.FunMode {
				b.SetDirection(b.Pos.Sub(bl.Center))
				continue
			}
			m.eatBullet(b)
			continue
		}

		toBlast := bl.Center.Sub(b.Pos)
		if toBlast.Len() <= b.Speed+blastEatSlack {
			m.eatBullet(b)
			continue
		}
		pullBullet(b, toBlast.Angle(), dt)
	}
}

// pullBullet speeds up a bullet heading into the blast, slows down one
// heading away, and turns both towards the blast centre.
func pullBullet(b *object.Bullet, towards, dt float64) {
	diff := physics.AngleBetween(b.Heading(), towards)
	if math.Abs(diff) >= math.Pi/2 {
		b.Speed -= blastAccel * dt
		if b.Speed <= 0 {
			b.Speed = blastMinSpeed
			b.SetHeading(towards)
			return
		}
	} else {
		b.Speed = math.Min(b.Speed+blastAccel*dt, blastMaxSpeed)
	}

	turn := blastMaxTurnRate * dt
	diff = max(-turn, min(turn, diff))
	b.SetHeading(b.Heading() + diff)
}

func (m *Manager) eatBullet(b *object.Bullet) {
	b.Kill()
	m.sparks = append(m.sparks, object.NewSpark(*b))
	m.score += BombPoints
	m.blast.Combo++
	m.bombCombo = m.blast.Combo
	if m.bombCombo > m.bestBombCombo {
		m.bestBombCombo = m.bombCombo
	}
}
