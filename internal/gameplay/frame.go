package gameplay

import (
	"github.com/tomz197/danmaku/internal/object"
	"github.com/tomz197/danmaku/internal/pattern"
	"github.com/tomz197/danmaku/internal/physics"
)

// NextFrame advances the game by one tick of dt and returns the tick's reaction.
//
// Within a tick the order is fixed: game-level fades, input, player, boss,
// bomb blast, enemy bullets, player bullets, boss contact, sparks, and
// finally pattern scoring.
func (m *Manager) NextFrame(in Input, dt float64) Reaction {
	m.reaction = ReactionNone

	if m.Fading() {
		m.game.Tick(dt)
		if m.game.TimeIsUp() {
			m.finishFade()
		}
		return m.reaction
	}

	switch m.mode {
	case ModeMenu:
		if pressed(in.Confirm) {
			m.Reset()
		}
		return m.reaction
	case ModePaused:
		m.updatePaused(in, dt)
		return m.reaction
	case ModeGameOver, ModeCleared:
		m.updateSparks(dt)
		if pressed(in.Confirm) || pressed(in.Bomb) {
			m.startFadeOut()
		}
		return m.reaction
	}

	if pressed(in.Pause) {
		m.mode = ModePaused
		m.quit.Repurpose(PauseHoldToQuit)
		m.react(ReactionPaused)
		return m.reaction
	}

	m.handleActions(in)
	m.updatePlayer(in, dt)
	if m.mode != ModePlaying {
		return m.reaction
	}
	m.updateBoss(dt)
	m.updateBlast(dt)
	m.updateEnemyBullets(dt)
	m.updatePlayerBullets(dt)
	m.checkBossContact()
	m.updateSparks(dt)
	m.resolvePattern()
	return m.reaction
}

func (m *Manager) finishFade() {
	switch m.game.Purpose() {
	case GameFadeIn:
		m.game.Repurpose(GameIdle)
		m.react(ReactionGameStarted)
		m.log.Debug("game started")
	case GameFadeOut:
		m.game.Repurpose(GameIdle)
		m.mode = ModeMenu
		m.react(ReactionReturnedToMenu)
		m.log.Debug("returned to menu", "score", m.score)
	}
}

func (m *Manager) startFadeOut() {
	m.game.Repurpose(GameFadeOut)
	m.log.Debug("fading out", "mode", m.mode)
}

func (m *Manager) updatePaused(in Input, dt float64) {
	if pressed(in.Pause) {
		m.mode = ModePlaying
		m.react(ReactionResumed)
		return
	}
	if in.Bomb == 0 {
		m.quit.Repurpose(PauseHoldToQuit)
		return
	}
	m.quit.Tick(dt)
	if m.quit.TimeIsUp() {
		m.startFadeOut()
	}
}

// handleActions fires shots and bombs.
func (m *Manager) handleActions(in Input) {
	p := m.player

	if in.Shoot > 0 && p.Controllable() && p.ShotCooldown == 0 {
		for _, dx := range [2]float64{-shotOffsetX, shotOffsetX} {
			m.playerBullets = append(m.playerBullets, object.NewBullet(object.BulletProp{
				Kind:  object.PlayerShot,
				Pos:   p.Pos.Add(object.Vec{X: dx}),
				Dir:   object.Vec{Y: -1},
				Speed: shotSpeed,
			}))
		}
		p.ShotCooldown = m.opts.ShotCooldown
	}

	if pressed(in.Bomb) && m.bombs > 0 && p.CanBomb() && m.blast == nil {
		m.bombs--
		m.blast = object.NewBombBlast(p.Pos)
		m.bombCombo = 0
		p.Duty.Repurpose(object.PlayerInvincible)
		m.react(ReactionBombUsed)
		m.log.Debug("bomb used", "bombs", m.bombs)
	}
}

func (m *Manager) updatePlayer(in Input, dt float64) {
	p := m.player

	if p.Duty.TimeIsUp() {
		switch p.Duty.Purpose() {
		case object.PlayerRevivalFlashIn:
			p.Duty.Repurpose(object.PlayerRevivalFlashOut)
		case object.PlayerRevivalFlashOut:
			p.Duty.Repurpose(object.PlayerInvincible)
		case object.PlayerInvincible:
			p.Duty.Repurpose(object.PlayerNormal)
		case object.PlayerDeathCountdown:
			m.loseLife()
			return
		}
	}

	switch {
	case p.Duty.SamePurpose(object.PlayerRevivalFlashIn):
		p.Pos.Y -= object.PlayerRiseSpeed * dt
	case p.Controllable():
		speed := m.opts.PlayerSpeed
		if in.Focus > 0 || m.blast != nil {
			speed /= 2
		}
		dx, dy := in.direction()
		p.Move(dx, dy, speed, dt, m.field)
	}

	if p.ShotCooldown > 0 {
		p.ShotCooldown--
	}
	p.Duty.Tick(dt)
}

func (m *Manager) loseLife() {
	m.lives--
	if m.lives < 0 {
		m.lives = -1
		m.mode = ModeGameOver
		m.react(ReactionGameOver)
		m.log.Debug("game over", "score", m.score)
		return
	}
	if m.bombs < m.opts.StartBombs {
		m.bombs = m.opts.StartBombs
	}
	m.player.Respawn(ReentryPosition)
	m.react(ReactionLifeLost)
	m.log.Debug("life lost", "lives", m.lives)
}

// hitPlayer starts the death countdown. An active bomb blast dies with the player.
func (m *Manager) hitPlayer() {
	m.player.Duty.Repurpose(object.PlayerDeathCountdown)
	if m.blast != nil {
		m.blast.Kill()
	}
	m.react(ReactionPlayerHit)
}

func (m *Manager) updateBoss(dt float64) {
	b := m.boss

	if b.Duty.TimeIsUp() {
		switch b.Duty.Purpose() {
		case object.BossPreIntro:
			b.Duty.Repurpose(object.BossIntro)
			b.MoveTo(object.BossIntroDest, object.BossIntroSpeed)
		case object.BossIntro, object.BossTransition:
			m.startNextPattern()
		case object.BossActive:
			m.finishPattern(false)
		case object.BossDeathSequence:
			b.Duty.Repurpose(object.BossKilled)
			m.mode = ModeCleared
			m.react(ReactionGameCompleted)
			m.log.Debug("game completed", "score", m.score)
			return
		}
	}

	b.UpdateMovement(dt)
	if b.Active() {
		out := m.engine.Step(pattern.Context{
			Boss:   b.Pos,
			Player: m.player.Pos,
		})
		if out.Arrived {
			m.log.Debug("boss arrived", "pos", b.Pos, "pattern", m.engine.Index(), "frame", m.engine.Frame())
		}
		for _, sp := range out.Spawns {
			m.enemyBullets = append(m.enemyBullets, object.NewBullet(sp))
		}
		if out.HasMove {
			b.MoveTo(out.Move.Dest, out.Move.Speed)
		}
	}
	b.Duty.Tick(dt)
}

func (m *Manager) startNextPattern() {
	b := m.boss
	start, ok := m.engine.NextPattern(b.Pos)
	if !ok {
		b.Stop()
		b.Duty.Repurpose(object.BossDeathSequence)
		m.react(ReactionBossDefeated)
		m.log.Debug("boss defeated", "score", m.score)
		return
	}

	b.SetHealth(start.Health)
	b.SetPatternDuration(start.Duration)
	b.Duty.Repurpose(object.BossActive)
	b.Stop()
	if start.HasMove {
		b.MoveTo(start.Move.Dest, start.Move.Speed)
	}
	m.react(ReactionPatternStarted)
	m.log.Debug("pattern started", "index", start.Index, "name", start.Name, "health", start.Health)
}

// finishPattern scores the running pattern, clears the screen and starts the
// pause before the next one.
func (m *Manager) finishPattern(success bool) {
	if success {
		m.score += PatternSucceededPoints
		m.react(ReactionPatternSucceeded)
	} else {
		m.score += PatternFailedPoints
		m.react(ReactionPatternFailed)
	}
	m.log.Debug("pattern finished", "index", m.engine.Index(), "success", success, "score", m.score)

	m.clearEnemyBullets()
	m.boss.Stop()
	m.boss.Duty.Repurpose(object.BossTransition)
}

// resolvePattern ends the running pattern once the boss runs out of health.
func (m *Manager) resolvePattern() {
	if m.mode == ModePlaying && m.boss.Active() && m.boss.Health == 0 {
		m.finishPattern(true)
	}
}

func (m *Manager) clearEnemyBullets() {
	for _, b := range m.enemyBullets {
		m.sparks = append(m.sparks, object.NewSpark(b))
	}
	m.enemyBullets = m.enemyBullets[:0]
}

func (m *Manager) updateEnemyBullets(dt float64) {
	p := m.player
	hitbox := p.Hitbox()
	graze := p.GrazeArea()

	m.removal = m.removal[:0]
	for i := range m.enemyBullets {
		b := &m.enemyBullets[i]
		if b.Killed() {
			m.removal = append(m.removal, i)
			continue
		}
		b.Update(dt)
		if b.Gone(m.field, EnemyLeniency) {
			m.removal = append(m.removal, i)
			continue
		}

		circle := b.Circle()
		touchesHitbox := physics.CircleTouches(circle, hitbox)
		if touchesHitbox && p.Vulnerable() {
			b.Kill()
			m.removal = append(m.removal, i)
			m.hitPlayer()
			continue
		}
		if !touchesHitbox && !b.Grazed && p.Controllable() && physics.CircleTouches(circle, graze) {
			b.Grazed = true
			m.graze++
			m.score += GrazePoints
			m.react(ReactionGrazed)
		}
	}
	m.enemyBullets = object.RemoveIndices(m.enemyBullets, m.removal)
}

func (m *Manager) updatePlayerBullets(dt float64) {
	boss := m.boss
	envelope := boss.Rect()

	m.removal = m.removal[:0]
	for i := range m.playerBullets {
		b := &m.playerBullets[i]
		b.Update(dt)
		if b.Gone(m.field, PlayerLeniency) {
			m.removal = append(m.removal, i)
			continue
		}
		if !boss.Present() || !physics.RectCircleOverlap(envelope, b.Circle()) {
			continue
		}
		m.removal = append(m.removal, i)
		if boss.Active() && boss.Health > 0 {
			boss.Damage(1)
			m.react(ReactionBossDamaged)
		}
	}
	m.playerBullets = object.RemoveIndices(m.playerBullets, m.removal)
}

// checkBossContact kills a vulnerable player touching the boss.
func (m *Manager) checkBossContact() {
	p := m.player
	if !m.boss.Present() || !p.Vulnerable() {
		return
	}
	envelope := m.boss.Rect()
	if !physics.RectsOverlap(envelope, p.Rect()) {
		return
	}
	if physics.RectCircleOverlap(envelope, p.Hitbox()) {
		m.hitPlayer()
	}
}

func (m *Manager) updateSparks(dt float64) {
	m.removal = m.removal[:0]
	for i := range m.sparks {
		if m.sparks[i].Update(dt) {
			m.removal = append(m.removal, i)
		}
	}
	m.sparks = object.RemoveIndices(m.sparks, m.removal)
}
