package gameplay

import (
	"math"
	"testing"
	"testing/quick"

	"github.com/tomz197/danmaku/internal/object"
	"github.com/tomz197/danmaku/internal/physics"
)

var blastCenter = object.Vec{X: 192, Y: 224}

// holdingBlast returns a manager with a full size blast that is nowhere near
// its final frame.
func holdingBlast(opts Options) *Manager {
	m := New(opts)
	m.Reset()
	m.blast = object.NewBombBlast(blastCenter)
	m.blast.Duty.Repurpose(object.BlastHolding)
	return m
}

// bulletAt places a bullet at distance d from the blast centre, at angle
// pos around it, heading along heading.
func bulletAt(d, pos, heading, speed float64) object.Bullet {
	return object.NewBullet(object.BulletProp{
		Pos:   blastCenter.Add(physics.FromAngle(pos).Scale(d)),
		Dir:   physics.FromAngle(heading),
		Speed: speed,
	})
}

func TestBlastEatsBulletsAtCentre(t *testing.T) {
	m := holdingBlast(DefaultOptions())
	speed := 2.0
	m.enemyBullets = append(m.enemyBullets, bulletAt(speed+blastEatSlack-1e-6, 0.7, 2.5, speed))

	m.updateBlast(1)
	m.updateEnemyBullets(1)

	if len(m.EnemyBullets()) != 0 {
		t.Fatalf("bullet at the eat bound survived: %+v", m.EnemyBullets())
	}
	if m.Score() != BombPoints {
		t.Errorf("Score() = %d, want %d", m.Score(), BombPoints)
	}
	if m.BombCombo() != 1 || m.BestBombCombo() != 1 {
		t.Errorf("combo = %d best = %d, want 1/1", m.BombCombo(), m.BestBombCombo())
	}
	if len(m.Sparks()) != 1 {
		t.Errorf("%d sparks, want 1", len(m.Sparks()))
	}
}

func TestBlastEatProperty(t *testing.T) {
	f := func(speedSeed, distSeed, posSeed, headingSeed uint16) bool {
		speed := 0.2 + float64(speedSeed%380)/100
		d := (speed + blastEatSlack) * float64(distSeed%1000) / 1000
		m := holdingBlast(DefaultOptions())
		m.enemyBullets = append(m.enemyBullets, bulletAt(d, float64(posSeed), float64(headingSeed), speed))

		m.updateBlast(1)
		m.updateEnemyBullets(1)
		return len(m.EnemyBullets()) == 0 && m.Score() == BombPoints
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

func TestBlastPullsIncomingBullets(t *testing.T) {
	f := func(speedSeed, gapSeed, posSeed, offSeed uint16) bool {
		speed := 0.2 + float64(speedSeed%330)/100 // stays below the cap after one pull
		d := speed + blastEatSlack + 0.01 + float64(gapSeed%5000)/100
		pos := float64(posSeed%628) / 100
		towards := pos + math.Pi
		// Heading within (-90°, 90°) of the blast direction, never exactly on it.
		off := (float64(offSeed%1559) - 779) / 500
		if off == 0 {
			off = 0.001
		}

		m := holdingBlast(DefaultOptions())
		m.enemyBullets = append(m.enemyBullets, bulletAt(d, pos, towards+off, speed))
		m.sweepBlast(1)
		b := m.enemyBullets[0]

		if b.Killed() || m.Score() != 0 {
			return false
		}
		if b.Speed <= speed || b.Speed > blastMaxSpeed {
			return false
		}
		before := math.Abs(off)
		after := math.Abs(physics.AngleBetween(b.Heading(), towards))
		turned := before - after
		return turned > 0 && turned <= blastMaxTurnRate+1e-9
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

func TestBlastSpeedCap(t *testing.T) {
	m := holdingBlast(DefaultOptions())
	m.enemyBullets = append(m.enemyBullets, bulletAt(50, 0, math.Pi, 3.8))
	m.sweepBlast(1)
	if got := m.enemyBullets[0].Speed; got != blastMaxSpeed {
		t.Errorf("Speed = %v, want cap %v", got, blastMaxSpeed)
	}
}

func TestBlastSlowsOutgoingBullets(t *testing.T) {
	tests := []struct {
		name      string
		speed     float64
		wantSpeed float64
		reaimed   bool
	}{
		{"slows down", 3, 2.5, false},
		{"reaims once stopped", 0.4, blastMinSpeed, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := holdingBlast(DefaultOptions())
			// Bullet east of the centre heading further east.
			m.enemyBullets = append(m.enemyBullets, bulletAt(60, 0, 0.2, tt.speed))
			m.sweepBlast(1)
			b := m.enemyBullets[0]

			if math.Abs(b.Speed-tt.wantSpeed) > 1e-9 {
				t.Errorf("Speed = %v, want %v", b.Speed, tt.wantSpeed)
			}
			towards := math.Pi
			diff := math.Abs(physics.AngleBetween(b.Heading(), towards))
			if tt.reaimed && diff > 1e-9 {
				t.Errorf("heading %v not aimed at the blast", b.Heading())
			}
			if !tt.reaimed && math.Abs(b.Heading()-0.3) > 1e-9 {
				t.Errorf("heading = %v, want 0.3 after turning 0.1 towards the blast", b.Heading())
			}
		})
	}
}

func TestBlastIgnoresBulletsOutside(t *testing.T) {
	m := holdingBlast(DefaultOptions())
	far := bulletAt(object.BlastMaxRadius+20, 1, 1, 2)
	m.enemyBullets = append(m.enemyBullets, far)
	m.sweepBlast(1)
	if m.enemyBullets[0] != far {
		t.Errorf("bullet outside the blast changed: %+v", m.enemyBullets[0])
	}
}

func TestBlastFinalFrame(t *testing.T) {
	tests := []struct {
		name    string
		funMode bool
	}{
		{"eats everything", false},
		{"fun mode flings", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			opts.FunMode = tt.funMode
			m := holdingBlast(opts)
			m.blast.Duty.Repurpose(object.BlastShrinking)
			m.blast.Duty.Tick(object.BlastDurations[object.BlastShrinking] - 1)
			if !m.blast.FinalFrame(1) {
				t.Fatal("blast not on its final frame")
			}

			for i := range 3 {
				m.enemyBullets = append(m.enemyBullets, bulletAt(1+float64(i), float64(i), 0, 1))
			}
			m.updateBlast(1)
			m.updateEnemyBullets(1)

			if tt.funMode {
				if len(m.EnemyBullets()) != 3 || m.Score() != 0 {
					t.Fatalf("fun mode removed bullets: %d left, score %d", len(m.EnemyBullets()), m.Score())
				}
				for _, b := range m.EnemyBullets() {
					away := b.Pos.Sub(blastCenter).Angle()
					if math.Abs(physics.AngleBetween(b.Heading(), away)) > 1e-9 {
						t.Errorf("bullet heading %v, want away from the blast %v", b.Heading(), away)
					}
				}
				return
			}
			if len(m.EnemyBullets()) != 0 || m.Score() != 3*BombPoints {
				t.Errorf("%d bullets left, score %d", len(m.EnemyBullets()), m.Score())
			}
			if m.BombCombo() != 3 {
				t.Errorf("BombCombo() = %d, want 3", m.BombCombo())
			}
		})
	}
}

func TestBlastRetiresAfterFinalFrame(t *testing.T) {
	m := holdingBlast(DefaultOptions())
	m.blast.Kill()
	m.updateBlast(1)
	if m.blast != nil {
		t.Error("retired blast was kept")
	}
	if _, ok := m.Blast(); ok {
		t.Error("Blast() reports a retired blast")
	}
}

func TestPlayerHitKillsBlast(t *testing.T) {
	m := holdingBlast(DefaultOptions())
	m.hitPlayer()
	if _, ok := m.Blast(); ok {
		t.Error("blast survived the player being hit")
	}
}
