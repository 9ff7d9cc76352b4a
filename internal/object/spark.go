package object

import "github.com/tomz197/danmaku/internal/duty"

// SparkDuty is the single sub-state of a hit spark.
type SparkDuty int

// SparkFading is the only spark state.
const SparkFading SparkDuty = iota

// SparkDurations holds the spark lifetime in ticks.
var SparkDurations = duty.Table[SparkDuty]{
	SparkFading: 12,
}

// sparkDrag is the velocity kept per tick.
const sparkDrag = 0.85

// Spark is a short-lived visual left behind by a cleared bullet.
type Spark struct {
	Pos  Vec
	Vel  Vec
	Kind Kind
	Duty duty.Timer[SparkDuty]
}

// NewSpark creates a spark where b was, drifting along its heading.
func NewSpark(b Bullet) Spark {
	return Spark{
		Pos:  b.Pos,
		Vel:  b.Direction().Scale(b.Speed * 0.5),
		Kind: b.Kind,
		Duty: duty.New(SparkDurations, SparkFading),
	}
}

// Update moves the spark. It returns true once the spark has faded out.
func (s *Spark) Update(dt float64) (remove bool) {
	if s.Duty.TimeIsUp() {
		return true
	}
	s.Pos = s.Pos.Add(s.Vel.Scale(dt))
	s.Vel = s.Vel.Scale(sparkDrag)
	s.Duty.Tick(dt)
	return false
}

// Fade returns how much of the spark is left, from 1 down to 0.
func (s *Spark) Fade() float64 {
	return s.Duty.PercentRemaining()
}
