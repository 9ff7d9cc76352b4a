package object

import (
	"math"
	"slices"
	"testing"
	"testing/quick"
)

var testField = Bounds{Width: 384, Height: 448}

func nearlyEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestBulletSetDirection(t *testing.T) {
	tests := []struct {
		name string
		in   Vec
		want Vec
	}{
		{"already unit", Vec{X: 0, Y: 1}, Vec{X: 0, Y: 1}},
		{"long", Vec{X: -30, Y: 40}, Vec{X: -0.6, Y: 0.8}},
		{"tiny magnitude is normalized", Vec{X: 0, Y: -1e-9}, Vec{X: 0, Y: -1}},
		{"zero is kept", Vec{}, Vec{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b Bullet
			b.SetDirection(tt.in)
			got := b.Direction()
			if !nearlyEqual(got.X, tt.want.X) || !nearlyEqual(got.Y, tt.want.Y) {
				t.Errorf("Direction() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBulletUpdate(t *testing.T) {
	b := NewBullet(BulletProp{
		Kind:  Kind{Shape: ShapeMedium},
		Pos:   Vec{X: 10, Y: 10},
		Dir:   Vec{X: 3, Y: 4},
		Speed: 5,
	})
	if b.Radius != ShapeMedium.Radius() {
		t.Fatalf("Radius = %v, want %v", b.Radius, ShapeMedium.Radius())
	}

	b.Update(1)
	b.Update(1)
	if !nearlyEqual(b.Pos.X, 16) || !nearlyEqual(b.Pos.Y, 18) {
		t.Errorf("Pos = %v, want (16, 18)", b.Pos)
	}
	if b.Lifetime != 2 {
		t.Errorf("Lifetime = %d, want 2", b.Lifetime)
	}
}

func TestBulletCopyFansOut(t *testing.T) {
	base := NewBullet(BulletProp{Pos: Vec{X: 5, Y: 5}, Dir: Vec{X: 1}, Speed: 2})
	fan := base
	fan.SetHeading(math.Pi / 2)

	if !nearlyEqual(base.Direction().X, 1) {
		t.Errorf("base direction changed to %v", base.Direction())
	}
	if !nearlyEqual(fan.Direction().Y, 1) {
		t.Errorf("fan direction = %v, want (0, 1)", fan.Direction())
	}
}

func TestBulletGone(t *testing.T) {
	tests := []struct {
		name     string
		pos      Vec
		leniency float64
		kill     bool
		want     bool
	}{
		{"inside", Vec{X: 100, Y: 100}, 0, false, false},
		{"just outside within leniency", Vec{X: -10, Y: 100}, 16, false, false},
		{"past leniency", Vec{X: -17, Y: 100}, 16, false, true},
		{"below field within enemy slack", Vec{X: 100, Y: 500}, 64, false, false},
		{"killed inside", Vec{X: 100, Y: 100}, 64, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBullet(BulletProp{Pos: tt.pos, Dir: Vec{Y: 1}, Speed: 1})
			if tt.kill {
				b.Kill()
			}
			if got := b.Gone(testField, tt.leniency); got != tt.want {
				t.Errorf("Gone() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRemoveIndices(t *testing.T) {
	tests := []struct {
		name    string
		indices []int
		want    []string
	}{
		{"none", nil, []string{"a", "b", "c", "d", "e"}},
		{"ascending", []int{0, 2, 4}, []string{"b", "d"}},
		{"descending", []int{4, 2, 0}, []string{"b", "d"}},
		{"unordered with duplicates", []int{3, 1, 3, 1}, []string{"a", "c", "e"}},
		{"all", []int{0, 1, 2, 3, 4}, []string{}},
		{"out of range ignored", []int{-1, 9, 2}, []string{"a", "b", "d", "e"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := []string{"a", "b", "c", "d", "e"}
			got := RemoveIndices(s, tt.indices)
			if !slices.Equal(got, tt.want) {
				t.Errorf("RemoveIndices(%v) = %v, want %v", tt.indices, got, tt.want)
			}
		})
	}
}

func TestRemoveIndicesProperty(t *testing.T) {
	f := func(values []int16, picks []uint8) bool {
		if len(values) == 0 {
			return true
		}
		marked := make(map[int]bool)
		var indices []int
		for _, p := range picks {
			i := int(p) % len(values)
			marked[i] = true
			indices = append(indices, i)
		}

		var want []int16
		for i, v := range values {
			if !marked[i] {
				want = append(want, v)
			}
		}

		got := RemoveIndices(slices.Clone(values), indices)
		return slices.Equal(got, want)
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

func TestPlayerMove(t *testing.T) {
	tests := []struct {
		name   string
		start  Vec
		dx, dy float64
		speed  float64
		want   Vec
	}{
		{"straight", Vec{X: 100, Y: 100}, 1, 0, 4, Vec{X: 104, Y: 100}},
		{"diagonal is normalized", Vec{X: 100, Y: 100}, 1, 1, 4, Vec{X: 100 + 4/math.Sqrt2, Y: 100 + 4/math.Sqrt2}},
		{"no input", Vec{X: 100, Y: 100}, 0, 0, 4, Vec{X: 100, Y: 100}},
		{"clamped left", Vec{X: 9, Y: 100}, -1, 0, 4, Vec{X: PlayerWidth / 2, Y: 100}},
		{"clamped bottom", Vec{X: 100, Y: 435}, 0, 1, 4, Vec{X: 100, Y: 448 - PlayerHeight/2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPlayer(tt.start, PlayerGrazeRadius)
			p.Move(tt.dx, tt.dy, tt.speed, 1, testField)
			if !nearlyEqual(p.Pos.X, tt.want.X) || !nearlyEqual(p.Pos.Y, tt.want.Y) {
				t.Errorf("Pos = %v, want %v", p.Pos, tt.want)
			}
		})
	}
}

func TestPlayerStates(t *testing.T) {
	tests := []struct {
		duty         PlayerDuty
		reviving     bool
		dying        bool
		vulnerable   bool
		controllable bool
		canBomb      bool
	}{
		{PlayerNormal, false, false, true, true, true},
		{PlayerRevivalFlashIn, true, false, false, false, false},
		{PlayerRevivalFlashOut, true, false, false, false, false},
		{PlayerInvincible, false, false, false, true, true},
		{PlayerDeathCountdown, false, true, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.duty.String(), func(t *testing.T) {
			p := NewPlayer(Vec{}, PlayerGrazeRadius)
			p.Duty.Repurpose(tt.duty)
			if got := p.Reviving(); got != tt.reviving {
				t.Errorf("Reviving() = %v, want %v", got, tt.reviving)
			}
			if got := p.Dying(); got != tt.dying {
				t.Errorf("Dying() = %v, want %v", got, tt.dying)
			}
			if got := p.Vulnerable(); got != tt.vulnerable {
				t.Errorf("Vulnerable() = %v, want %v", got, tt.vulnerable)
			}
			if got := p.Controllable(); got != tt.controllable {
				t.Errorf("Controllable() = %v, want %v", got, tt.controllable)
			}
			if got := p.CanBomb(); got != tt.canBomb {
				t.Errorf("CanBomb() = %v, want %v", got, tt.canBomb)
			}
		})
	}
}

func TestBossMovement(t *testing.T) {
	b := NewBoss()
	b.MoveTo(Vec{X: 192, Y: -40}, 3)

	if arrived := b.UpdateMovement(1); arrived {
		t.Fatal("arrived after the first step")
	}
	if !nearlyEqual(b.Pos.Y, -45) {
		t.Errorf("Pos.Y = %v, want -45", b.Pos.Y)
	}
	b.UpdateMovement(1)
	if arrived := b.UpdateMovement(1); !arrived {
		t.Fatalf("not arrived at %v", b.Pos)
	}
	if b.Pos != (Vec{X: 192, Y: -40}) || b.Movement != Stationary {
		t.Errorf("Pos = %v, Movement = %v after arrival", b.Pos, b.Movement)
	}
	if b.UpdateMovement(1) {
		t.Error("UpdateMovement reported arrival while stationary")
	}
}

func TestBossDamageClamps(t *testing.T) {
	b := NewBoss()
	b.SetHealth(3)
	b.Damage(2)
	if b.Health != 1 {
		t.Fatalf("Health = %d, want 1", b.Health)
	}
	b.Damage(5)
	if b.Health != 0 {
		t.Errorf("Health = %d, want 0", b.Health)
	}
}

func TestBossPatternDurationIsPerBoss(t *testing.T) {
	a, b := NewBoss(), NewBoss()
	a.SetPatternDuration(1800)
	a.Duty.Repurpose(BossActive)
	b.Duty.Repurpose(BossActive)

	if a.Duty.Remaining() != 1800 {
		t.Errorf("a.Remaining() = %v, want 1800", a.Duty.Remaining())
	}
	if b.Duty.Remaining() != 0 {
		t.Errorf("b.Remaining() = %v, want 0", b.Duty.Remaining())
	}
	if BossDurations[BossActive] != 0 {
		t.Error("SetPatternDuration modified the shared table")
	}
}

func TestBossSnapshotOwnsDurations(t *testing.T) {
	b := NewBoss()
	b.SetPatternDuration(1800)
	b.Duty.Repurpose(BossActive)

	c := b.Snapshot()
	c.SetPatternDuration(5)
	c.Duty.Repurpose(BossActive)

	if b.Duty.Duration() != 1800 {
		t.Errorf("live Duration() = %v after changing the snapshot, want 1800", b.Duty.Duration())
	}
	if c.Duty.Remaining() != 5 {
		t.Errorf("snapshot Remaining() = %v, want 5", c.Duty.Remaining())
	}
	b.Duty.Repurpose(BossActive)
	if b.Duty.Remaining() != 1800 {
		t.Errorf("live Remaining() = %v, want 1800", b.Duty.Remaining())
	}
}

func TestQueriesOnCopies(t *testing.T) {
	playerCopy := func(p *Player) Player { return *p }
	bossCopy := func(b *Boss) Boss { return *b }

	p := NewPlayer(Vec{X: 100, Y: 100}, PlayerGrazeRadius)
	if !playerCopy(p).Reviving() || playerCopy(p).Controllable() || playerCopy(p).Vulnerable() {
		t.Error("new player copy should be reviving and out of control")
	}
	if playerCopy(p).Dying() || playerCopy(p).CanBomb() {
		t.Error("reviving player copy should neither die nor bomb")
	}
	if playerCopy(p).Hitbox().Radius != PlayerHitboxRadius {
		t.Errorf("copy hitbox radius = %v", playerCopy(p).Hitbox().Radius)
	}

	b := NewBoss()
	if bossCopy(b).Present() || bossCopy(b).Active() {
		t.Error("waiting boss copy should be neither present nor active")
	}
	b.MoveTo(BossIntroDest, BossIntroSpeed)
	if bossCopy(b).Destination() != BossIntroDest {
		t.Errorf("copy Destination() = %v, want %v", bossCopy(b).Destination(), BossIntroDest)
	}
}

func TestBombBlastPhases(t *testing.T) {
	b := NewBombBlast(Vec{X: 100, Y: 100})
	total := BlastDurations[BlastGrowing] + BlastDurations[BlastHolding] + BlastDurations[BlastShrinking]

	finalFrames := 0
	ticks := 0
	for b.Active() && ticks < 1000 {
		b.CheckTransition()
		if !b.Active() {
			break
		}
		r := b.Radius()
		if r < 0 || r > BlastMaxRadius {
			t.Fatalf("tick %d: radius %v out of range", ticks, r)
		}
		if b.FinalFrame(1) {
			finalFrames++
		}
		b.Tick(1)
		ticks++
	}

	if ticks != int(total) {
		t.Errorf("blast was active for %d ticks, want %v", ticks, total)
	}
	if finalFrames != 1 {
		t.Errorf("saw %d final frames, want 1", finalFrames)
	}
}

func TestBombBlastRadius(t *testing.T) {
	b := NewBombBlast(Vec{})
	if got := b.Radius(); got != 0 {
		t.Errorf("fresh blast radius = %v, want 0", got)
	}
	b.Tick(10)
	if got := b.Radius(); !nearlyEqual(got, BlastMaxRadius/2) {
		t.Errorf("half grown radius = %v, want %v", got, BlastMaxRadius/2)
	}
	b.Duty.Repurpose(BlastHolding)
	if got := b.Radius(); got != BlastMaxRadius {
		t.Errorf("holding radius = %v, want %v", got, BlastMaxRadius)
	}
	b.Kill()
	if b.Active() || b.Radius() != 0 {
		t.Errorf("killed blast active=%v radius=%v", b.Active(), b.Radius())
	}
}

func TestSparkFadesOut(t *testing.T) {
	s := NewSpark(NewBullet(BulletProp{Pos: Vec{X: 50, Y: 50}, Dir: Vec{X: 1}, Speed: 2}))
	ticks := 0
	for !s.Update(1) {
		ticks++
		if ticks > 100 {
			t.Fatal("spark never faded")
		}
	}
	if ticks != int(SparkDurations[SparkFading]) {
		t.Errorf("spark lived %d ticks, want %v", ticks, SparkDurations[SparkFading])
	}
	if s.Pos.X <= 50 {
		t.Errorf("spark did not drift: %v", s.Pos)
	}
}

func TestShouldRenderBlink(t *testing.T) {
	if !ShouldRenderBlink(0, 4) {
		t.Error("unprotected object should always render")
	}
	visible := 0
	for r := 1.0; r <= 16; r++ {
		if ShouldRenderBlink(r, 4) {
			visible++
		}
	}
	if visible == 0 || visible == 16 {
		t.Errorf("protected object rendered %d of 16 frames, want blinking", visible)
	}
}

func TestPlayerVisible(t *testing.T) {
	p := NewPlayer(Vec{X: 100, Y: 100}, PlayerGrazeRadius)
	p.Duty.Repurpose(PlayerNormal)
	if !p.Visible(4) {
		t.Error("normal player hidden")
	}

	p.Duty.Repurpose(PlayerInvincible)
	hidden := 0
	for range int(PlayerDurations[PlayerInvincible]) {
		if !p.Visible(4) {
			hidden++
		}
		p.Duty.Tick(1)
	}
	if hidden == 0 {
		t.Error("invincible player never blinked")
	}
}
