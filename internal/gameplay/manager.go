// Package gameplay is the orchestrator of the simulation. A Manager owns the
// player, the boss, every bullet and spark, and advances all of them one
// fixed tick at a time through NextFrame.
//
// Nothing in this package blocks or returns errors. Every timed wait is a
// duty.Timer checked at the top of the next tick, and the outcome of a tick
// is reported as a single Reaction value.
package gameplay

import (
	"github.com/charmbracelet/log"

	"github.com/tomz197/danmaku/internal/duty"
	"github.com/tomz197/danmaku/internal/object"
	"github.com/tomz197/danmaku/internal/pattern"
)

// Field dimensions and bullet leniency, in field units.
const (
	FieldWidth     = 384.0
	FieldHeight    = 448.0
	EnemyLeniency  = 64.0
	PlayerLeniency = 16.0
)

// Scoring.
const (
	GrazePoints            = 200
	BombPoints             = 100
	PatternFailedPoints    = 5000
	PatternSucceededPoints = 30000
)

// Player shot layout.
const (
	shotOffsetX = 6.0
	shotSpeed   = 12.0
)

// ReentryPosition is where the player starts flying in from.
var ReentryPosition = object.Vec{X: FieldWidth / 2, Y: 480}

// GameDuty is the game-level fade state.
type GameDuty int

const (
	GameIdle GameDuty = iota
	GameFadeIn
	GameFadeOut
)

// GameDurations holds the fade lengths in ticks.
var GameDurations = duty.Table[GameDuty]{
	GameIdle:    0,
	GameFadeIn:  30,
	GameFadeOut: 60,
}

// PauseDuty is the pause screen's single timed action.
type PauseDuty int

// PauseHoldToQuit counts how long Bomb is held while paused.
const PauseHoldToQuit PauseDuty = iota

// PauseDurations holds the hold-to-quit length in ticks.
var PauseDurations = duty.Table[PauseDuty]{
	PauseHoldToQuit: 90,
}

// Manager runs one game.
type Manager struct {
	opts    Options
	pending *Options
	log     *log.Logger
	field   object.Bounds

	mode Mode
	game duty.Timer[GameDuty]
	quit duty.Timer[PauseDuty]

	score         int
	lives         int
	bombs         int
	graze         int
	bombCombo     int
	bestBombCombo int

	player *object.Player
	boss   *object.Boss
	blast  *object.BombBlast
	engine *pattern.Engine

	enemyBullets  []object.Bullet
	playerBullets []object.Bullet
	sparks        []object.Spark
	removal       []int

	reaction Reaction
}

// New creates a manager sitting in the menu.
func New(opts Options) *Manager {
	opts = opts.withDefaults()
	m := &Manager{
		opts:  opts,
		log:   opts.logger(),
		field: object.Bounds{Width: FieldWidth, Height: FieldHeight},
		game:  duty.New(GameDurations, GameIdle),
		quit:  duty.New(PauseDurations, PauseHoldToQuit),
	}
	m.engine = pattern.NewEngine(opts.Seed)
	m.resetState()
	m.mode = ModeMenu
	return m
}

// SetOptions replaces the options. They take effect on the next Reset.
func (m *Manager) SetOptions(opts Options) {
	opts = opts.withDefaults()
	m.pending = &opts
}

// Reset starts a fresh game and fades into it.
// Calling it twice in a row leaves the same state as calling it once.
func (m *Manager) Reset() {
	if m.pending != nil {
		m.opts = *m.pending
		m.log = m.opts.logger()
		m.pending = nil
	}
	m.resetState()
	m.mode = ModePlaying
	m.game.Repurpose(GameFadeIn)
	m.log.Debug("game reset", "lives", m.lives, "bombs", m.bombs, "seed", m.opts.Seed)
}

func (m *Manager) resetState() {
	m.score = 0
	m.lives = m.opts.StartLives
	m.bombs = m.opts.StartBombs
	m.graze = 0
	m.bombCombo = 0
	m.bestBombCombo = 0

	m.player = object.NewPlayer(ReentryPosition, m.opts.GrazeRadius)
	m.boss = object.NewBoss()
	m.blast = nil
	m.engine.Reset(m.opts.Seed)

	m.enemyBullets = m.enemyBullets[:0]
	m.playerBullets = m.playerBullets[:0]
	m.sparks = m.sparks[:0]
	m.removal = m.removal[:0]

	m.game.Repurpose(GameIdle)
	m.quit.Repurpose(PauseHoldToQuit)
	m.reaction = ReactionNone
}

func (m *Manager) react(r Reaction) {
	if r.rank() >= m.reaction.rank() {
		m.reaction = r
	}
}

// Reaction returns the event of the last tick.
func (m *Manager) Reaction() Reaction { return m.reaction }

// Mode returns the top-level game state.
func (m *Manager) Mode() Mode { return m.mode }

// Options returns the options in effect.
func (m *Manager) Options() Options { return m.opts }

// Field returns the play field bounds.
func (m *Manager) Field() object.Bounds { return m.field }

func (m *Manager) Score() int         { return m.score }
func (m *Manager) Lives() int         { return m.lives }
func (m *Manager) Bombs() int         { return m.bombs }
func (m *Manager) Graze() int         { return m.graze }
func (m *Manager) BombCombo() int     { return m.bombCombo }
func (m *Manager) BestBombCombo() int { return m.bestBombCombo }

// BossHealth returns the boss's remaining health.
func (m *Manager) BossHealth() int { return m.boss.Health }

// BossMaxHealth returns the health of the current pattern at its start.
func (m *Manager) BossMaxHealth() int { return m.boss.MaxHealth }

// PatternIndex returns the running pattern, -1 before the first one.
func (m *Manager) PatternIndex() int { return m.engine.Index() }

// PatternCount returns the number of patterns.
func (m *Manager) PatternCount() int { return m.engine.Count() }

// PatternTimeLeft returns the ticks left before the running pattern fails,
// or zero when no pattern is running.
func (m *Manager) PatternTimeLeft() float64 {
	if !m.boss.Active() {
		return 0
	}
	return m.boss.Duty.Remaining()
}

// Fading reports whether a fade in or out is running.
func (m *Manager) Fading() bool {
	return !m.game.SamePurpose(GameIdle)
}

// FadeProgress returns how far the running fade is, in [0, 1].
func (m *Manager) FadeProgress() float64 {
	if !m.Fading() {
		return 0
	}
	return m.game.PercentCompleted()
}

// FadingOut reports whether the running fade leads back to the menu.
func (m *Manager) FadingOut() bool {
	return m.game.SamePurpose(GameFadeOut)
}

// QuitProgress returns how far the hold-to-quit is while paused, in [0, 1].
func (m *Manager) QuitProgress() float64 {
	if m.mode != ModePaused {
		return 0
	}
	return m.quit.PercentCompleted()
}

// Player returns a copy of the player.
func (m *Manager) Player() object.Player { return *m.player }

// Boss returns a copy of the boss.
func (m *Manager) Boss() object.Boss { return m.boss.Snapshot() }

// Blast returns the active bomb blast, if any.
func (m *Manager) Blast() (object.BombBlast, bool) {
	if m.blast == nil || !m.blast.Active() {
		return object.BombBlast{}, false
	}
	return *m.blast, true
}

// EnemyBullets returns the live enemy bullets. The slice is owned by the
// manager and must not be modified; it is only valid until the next tick.
func (m *Manager) EnemyBullets() []object.Bullet { return m.enemyBullets }

// PlayerBullets returns the live player bullets, see EnemyBullets.
func (m *Manager) PlayerBullets() []object.Bullet { return m.playerBullets }

// Sparks returns the live hit sparks, see EnemyBullets.
func (m *Manager) Sparks() []object.Spark { return m.sparks }
