// Package window runs the game in a desktop window with ebiten.
package window

import (
	"fmt"
	"image/color"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/tomz197/danmaku/internal/config"
	"github.com/tomz197/danmaku/internal/gameplay"
	"github.com/tomz197/danmaku/internal/loop"
	"github.com/tomz197/danmaku/internal/object"
)

// Screen layout in pixels. One field unit is one pixel.
const (
	ScreenWidth  = 640
	ScreenHeight = 480
	fieldX       = 16
	fieldY       = 16
	hudX         = fieldX + int(gameplay.FieldWidth) + 24
)

// flashTicks is how long the screen flashes after the player is hit.
const flashTicks = 8

// blinkPeriod is the player blink half-period in ticks.
const blinkPeriod = 4

var palette = [...]color.RGBA{
	object.ColorRed:    colornames.Crimson,
	object.ColorBlue:   colornames.Cornflowerblue,
	object.ColorPurple: colornames.Mediumpurple,
	object.ColorYellow: colornames.Gold,
	object.ColorGreen:  colornames.Limegreen,
	object.ColorWhite:  colornames.White,
}

func bulletColor(c object.Color) color.RGBA {
	if c < 0 || int(c) >= len(palette) {
		return colornames.White
	}
	return palette[c]
}

// Options configures a Game.
type Options struct {
	Game      gameplay.Options
	Live      *config.Live
	Logger    *log.Logger
	Observers []loop.Observer
}

// Game implements ebiten.Game on top of a gameplay.Manager.
type Game struct {
	game        *gameplay.Manager
	banner      *loop.Banner
	observers   []loop.Observer
	live        *config.Live
	liveVersion uint64
	flash       int
}

// New creates a window game.
func New(opts Options) *Game {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	gameOpts := opts.Game
	var liveVersion uint64
	if opts.Live != nil {
		var f config.File
		f, liveVersion = opts.Live.Current()
		gameOpts = f.Options()
	}
	if gameOpts.Logger == nil {
		gameOpts.Logger = logger
	}

	g := &Game{
		game:        gameplay.New(gameOpts),
		banner:      &loop.Banner{},
		live:        opts.Live,
		liveVersion: liveVersion,
	}
	g.observers = append([]loop.Observer{
		g.banner,
		loop.ObserverFunc(g.observeHit),
		loop.NewLogObserver(logger, "frontend", "window"),
	}, opts.Observers...)
	return g
}

// Manager returns the running game.
func (g *Game) Manager() *gameplay.Manager {
	return g.game
}

func (g *Game) observeHit(r gameplay.Reaction, _ *gameplay.Manager) {
	if r == gameplay.ReactionPlayerHit {
		g.flash = flashTicks
	} else if g.flash > 0 {
		g.flash--
	}
}

// Update advances the game by one tick.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	g.pollOptions()
	g.step(readInput(inpututil.KeyPressDuration))
	return nil
}

func (g *Game) step(in gameplay.Input) gameplay.Reaction {
	r := g.game.NextFrame(in, 1)
	for _, o := range g.observers {
		o.Observe(r, g.game)
	}
	return r
}

func (g *Game) pollOptions() {
	if g.live == nil {
		return
	}
	f, version := g.live.Current()
	if version == g.liveVersion {
		return
	}
	g.liveVersion = version
	opts := f.Options()
	opts.Logger = g.game.Options().Logger
	g.game.SetOptions(opts)
}

// Layout reports the fixed logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ScreenWidth, ScreenHeight
}

// Draw renders the field and the side panel.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Black)
	vector.DrawFilledRect(screen, fieldX, fieldY, float32(gameplay.FieldWidth), float32(gameplay.FieldHeight), colornames.Midnightblue, false)

	if g.game.Mode() == gameplay.ModeMenu {
		g.drawMenu(screen)
		return
	}

	g.drawField(screen)
	vector.StrokeRect(screen, fieldX, fieldY, float32(gameplay.FieldWidth), float32(gameplay.FieldHeight), 1, colornames.Slategray, false)
	g.drawHUD(screen)
	g.drawOverlay(screen)
}

func fx(x float64) float32 { return float32(x) + fieldX }
func fy(y float64) float32 { return float32(y) + fieldY }

func (g *Game) drawField(screen *ebiten.Image) {
	m := g.game

	for _, sp := range m.Sparks() {
		c := bulletColor(sp.Kind.Color)
		faded := color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(255 * sp.Fade())}
		vector.DrawFilledCircle(screen, fx(sp.Pos.X), fy(sp.Pos.Y), 1.5, faded, true)
	}

	if blast, ok := m.Blast(); ok {
		vector.StrokeCircle(screen, fx(blast.Center.X), fy(blast.Center.Y), float32(blast.Radius()), 2, colornames.Aqua, true)
	}

	boss := m.Boss()
	if boss.Present() {
		c := colornames.Orchid
		if boss.Duty.SamePurpose(object.BossDeathSequence) {
			c = colornames.Gray
		}
		half := boss.Half()
		vector.StrokeRect(screen, fx(boss.Pos.X-half.X), fy(boss.Pos.Y-half.Y), float32(boss.Size.X), float32(boss.Size.Y), 2, c, true)
		vector.DrawFilledCircle(screen, fx(boss.Pos.X), fy(boss.Pos.Y), float32(boss.Size.X/6), c, true)
	}

	player := m.Player()
	if player.Visible(blinkPeriod) {
		c := colornames.White
		if player.Dying() {
			c = colornames.Red
		}
		half := player.Half()
		vector.StrokeRect(screen, fx(player.Pos.X-half.X), fy(player.Pos.Y-half.Y), float32(player.Size.X), float32(player.Size.Y), 1, c, true)
		vector.DrawFilledCircle(screen, fx(player.Pos.X), fy(player.Pos.Y), float32(player.HitboxRadius), colornames.Red, true)
	}

	for _, b := range m.PlayerBullets() {
		vector.DrawFilledRect(screen, fx(b.Pos.X-1), fy(b.Pos.Y-4), 2, 8, colornames.Lightcyan, false)
	}
	for _, b := range m.EnemyBullets() {
		vector.DrawFilledCircle(screen, fx(b.Pos.X), fy(b.Pos.Y), float32(b.Radius), bulletColor(b.Kind.Color), true)
		vector.DrawFilledCircle(screen, fx(b.Pos.X), fy(b.Pos.Y), float32(b.Radius/2), colornames.White, true)
	}
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	m := g.game
	lines := []string{
		"DANMAKU",
		"",
		fmt.Sprintf("Score  %d", m.Score()),
		fmt.Sprintf("Lives  %d", m.Lives()),
		fmt.Sprintf("Bombs  %d", m.Bombs()),
		fmt.Sprintf("Graze  %d", m.Graze()),
		fmt.Sprintf("Combo  %d (best %d)", m.BombCombo(), m.BestBombCombo()),
	}
	if idx := m.PatternIndex(); idx >= 0 && idx < m.PatternCount() {
		lines = append(lines,
			"",
			fmt.Sprintf("Pattern %d/%d", idx+1, m.PatternCount()),
			fmt.Sprintf("Time   %.1fs", m.PatternTimeLeft()/config.TargetFPS),
		)
	}
	lines = append(lines, "", g.banner.Text())
	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, hudX, fieldY+i*16)
	}

	boss := m.Boss()
	if full := m.BossMaxHealth(); full > 0 && boss.Active() {
		w := float32(gameplay.FieldWidth-8) * float32(m.BossHealth()) / float32(full)
		vector.DrawFilledRect(screen, fieldX+4, fieldY+4, w, 4, colornames.Tomato, false)
	}
}

func (g *Game) drawOverlay(screen *ebiten.Image) {
	m := g.game
	centerX := fieldX + int(gameplay.FieldWidth)/2
	centerY := fieldY + int(gameplay.FieldHeight)/2

	switch m.Mode() {
	case gameplay.ModePaused:
		ebitenutil.DebugPrintAt(screen, "PAUSED", centerX-18, centerY-24)
		ebitenutil.DebugPrintAt(screen, "P / Esc to resume", centerX-51, centerY)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("hold X to give up %3.0f%%", 100*m.QuitProgress()), centerX-72, centerY+16)
	case gameplay.ModeGameOver, gameplay.ModeCleared:
		title := "GAME OVER"
		if m.Mode() == gameplay.ModeCleared {
			title = "ALL CLEAR"
		}
		ebitenutil.DebugPrintAt(screen, title, centerX-27, centerY-24)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Score %d", m.Score()), centerX-40, centerY)
		ebitenutil.DebugPrintAt(screen, "Enter for the menu", centerX-54, centerY+24)
	}

	if g.flash > 0 {
		vector.DrawFilledRect(screen, fieldX, fieldY, float32(gameplay.FieldWidth), float32(gameplay.FieldHeight), color.RGBA{R: 48, A: 48}, false)
	}
	if m.Fading() {
		alpha := m.FadeProgress()
		if !m.FadingOut() {
			alpha = 1 - alpha
		}
		vector.DrawFilledRect(screen, 0, 0, ScreenWidth, ScreenHeight, color.RGBA{A: uint8(255 * alpha)}, false)
	}
}

func (g *Game) drawMenu(screen *ebiten.Image) {
	centerX := fieldX + int(gameplay.FieldWidth)/2
	lines := []string{
		"D A N M A K U",
		"",
		"Press ENTER to start",
		"",
		"Move    arrows / WASD",
		"Focus   Shift",
		"Shoot   Z / Space",
		"Bomb    X",
		"Pause   P / Esc",
		"Quit    Q",
	}
	if g.game.Options().FunMode {
		lines = append(lines, "", "fun mode: bombs fling bullets")
	}
	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, centerX-len(line)*3, 160+i*16)
	}
}
