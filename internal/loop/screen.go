package loop

import (
	"fmt"
	"strings"
	"time"

	"github.com/tomz197/danmaku/internal/config"
	"github.com/tomz197/danmaku/internal/draw"
	"github.com/tomz197/danmaku/internal/gameplay"
	"github.com/tomz197/danmaku/internal/object"
)

// blinkPeriod is the player blink half-period in ticks while reviving or invincible.
const blinkPeriod = 4

var bulletColors = [...]draw.Color{
	object.ColorRed:    draw.ColorRed,
	object.ColorBlue:   draw.ColorBlue,
	object.ColorPurple: draw.ColorMagenta,
	object.ColorYellow: draw.ColorYellow,
	object.ColorGreen:  draw.ColorGreen,
	object.ColorWhite:  draw.ColorWhite,
}

func bulletColor(c object.Color) draw.Color {
	if c < 0 || int(c) >= len(bulletColors) {
		return draw.ColorWhite
	}
	return bulletColors[c]
}

func pt(v object.Vec) draw.Point {
	return draw.Point{X: v.X, Y: v.Y}
}

// drawFrame draws the current frame.
func (s *Session) drawFrame() error {
	cw := s.chunkWriter

	// On mode or inactivity transitions, do a full terminal clear
	// so text from the previous screen doesn't persist.
	mode := s.game.Mode()
	if mode != s.prevMode || s.inactive != s.wasInactive {
		s.fullRedraw = true
		s.prevMode = mode
		s.wasInactive = s.inactive
	}
	if s.fullRedraw {
		cw.WriteString("\033[H\033[2J")
		s.canvas.ForceRedraw()
	}

	s.canvas.Clear()
	if mode != gameplay.ModeMenu && !s.inactive {
		s.drawField()
	}
	s.canvas.Render(cw)

	if s.fullRedraw {
		s.canvas.RenderBorder(cw)
		s.fullRedraw = false
	}

	s.drawUI()
	return cw.Flush()
}

// drawField draws every game object onto the canvas.
func (s *Session) drawField() {
	c := s.canvas
	g := s.game

	for _, sp := range g.Sparks() {
		if sp.Fade() > 0.5 {
			c.Set(sp.Pos.X, sp.Pos.Y, bulletColor(sp.Kind.Color))
		} else {
			c.Set(sp.Pos.X, sp.Pos.Y, draw.ColorGray)
		}
	}

	if blast, ok := g.Blast(); ok {
		c.DrawCircle(pt(blast.Center), blast.Radius(), draw.ColorCyan, false)
	}

	boss := g.Boss()
	if boss.Present() {
		clr := draw.ColorMagenta
		if boss.Duty.SamePurpose(object.BossDeathSequence) {
			clr = draw.ColorGray
		}
		c.DrawRect(pt(boss.Pos), pt(boss.Half()), clr, false)
		c.DrawCircle(pt(boss.Pos), boss.Size.X/6, clr, true)
	}

	player := g.Player()
	if player.Visible(blinkPeriod) {
		s.drawPlayer(&player)
	}

	for _, b := range g.PlayerBullets() {
		c.Set(b.Pos.X, b.Pos.Y, draw.ColorWhite)
	}
	for _, b := range g.EnemyBullets() {
		c.DrawCircle(pt(b.Pos), b.Radius, bulletColor(b.Kind.Color), true)
	}
}

// drawPlayer draws the ship as a triangle with its hitbox marked.
func (s *Session) drawPlayer(p *object.Player) {
	clr := draw.ColorWhite
	if p.Dying() {
		clr = draw.ColorRed
	}
	half := p.Half()
	pts := s.canvas.BorrowPoints(3)
	pts[0] = draw.Point{X: p.Pos.X, Y: p.Pos.Y - half.Y}
	pts[1] = draw.Point{X: p.Pos.X + half.X, Y: p.Pos.Y + half.Y}
	pts[2] = draw.Point{X: p.Pos.X - half.X, Y: p.Pos.Y + half.Y}
	s.canvas.DrawPolygon(pts, clr, false)
	s.canvas.DrawCircle(pt(p.Pos), p.HitboxRadius, draw.ColorRed, true)
}

// drawUI draws text on top of the canvas.
func (s *Session) drawUI() {
	centerX := s.canvas.TerminalWidth() / 2
	centerY := s.canvas.TerminalHeight() / 2

	if s.inactive {
		s.drawInactivityScreen(centerX, centerY)
		return
	}

	switch s.game.Mode() {
	case gameplay.ModeMenu:
		s.drawStartScreen(centerX, centerY)
		return
	case gameplay.ModePaused:
		s.drawPauseScreen(centerX, centerY)
	case gameplay.ModeGameOver:
		s.drawEndScreen(centerX, centerY, "GAME OVER")
	case gameplay.ModeCleared:
		s.drawEndScreen(centerX, centerY, "ALL CLEAR")
	}
	s.drawHUD()
}

// writeCentered writes text centred on column centerX.
func (s *Session) writeCentered(centerX, row int, text string) {
	s.chunkWriter.WriteAt(max(centerX-len([]rune(text))/2, 1), row, text)
}

// drawStartScreen draws the title screen.
func (s *Session) drawStartScreen(centerX, centerY int) {
	title := []string{
		` ___   _   _  _ __  __   _   _  ___   _ `,
		`|   \ /_\ | \| |  \/  | /_\ | |/ / | | |`,
		`| |) / _ \| .' | |\/| |/ _ \| ' <| |_| |`,
		`|___/_/ \_\_|\_|_|  |_/_/ \_\_|\_\\___/ `,
	}
	top := centerY - 6
	for i, line := range title {
		s.writeCentered(centerX, top+i, line)
	}

	s.writeCentered(centerX, top+len(title)+1, "~ one boss, four spell patterns ~")
	s.writeCentered(centerX, top+len(title)+3, "Press ENTER to start")

	controls := []string{
		"Move   WASD / HJKL / arrows",
		"Focus  F or Shift + move",
		"Shoot  Z / Space    Bomb  X",
		"Pause  P / Esc      Quit  Q",
	}
	for i, line := range controls {
		s.writeCentered(centerX, top+len(title)+5+i, line)
	}

	if s.game.Options().FunMode {
		s.writeCentered(centerX, top+len(title)+10, "fun mode: bombs fling bullets")
	}
}

// drawPauseScreen draws the pause overlay with the hold-to-quit gauge.
func (s *Session) drawPauseScreen(centerX, centerY int) {
	s.writeCentered(centerX, centerY-1, " PAUSED ")
	s.writeCentered(centerX, centerY+1, " P / Esc to resume ")
	s.writeCentered(centerX, centerY+2, " hold X to give up "+gauge(s.game.QuitProgress(), 10)+" ")
}

// drawEndScreen draws the game over and all clear overlays.
func (s *Session) drawEndScreen(centerX, centerY int, title string) {
	s.writeCentered(centerX, centerY-2, " "+title+" ")
	s.writeCentered(centerX, centerY, fmt.Sprintf(" Score: %d ", s.game.Score()))
	if !s.game.Fading() {
		s.writeCentered(centerX, centerY+2, " Press ENTER for the menu ")
	}
}

// drawInactivityScreen draws the inactivity warning screen.
func (s *Session) drawInactivityScreen(centerX, centerY int) {
	s.writeCentered(centerX, centerY-2, "INACTIVITY WARNING")
	left := int(config.InactivityDisconnectUser - time.Since(s.lastInput).Seconds())
	s.writeCentered(centerX, centerY, fmt.Sprintf("Disconnecting in %d seconds", max(left, 0)))
	s.writeCentered(centerX, centerY+2, "Press any key to continue")
}

// drawShutdown tells the player the server is going away.
func (s *Session) drawShutdown() {
	s.chunkWriter.WriteString("\033[H\033[2J")
	centerX := s.canvas.TerminalWidth() / 2
	centerY := s.canvas.TerminalHeight() / 2
	s.writeCentered(centerX, centerY, "SERVER SHUTTING DOWN")
	s.writeCentered(centerX, centerY+2, fmt.Sprintf("Final score: %d", s.game.Score()))
}

// drawHUD draws the side panel to the right of the field.
func (s *Session) drawHUD() {
	g := s.game
	col := s.canvas.TerminalWidth() + 3
	width := config.HUDCols - 2

	lines := []string{
		"DANMAKU",
		"",
		fmt.Sprintf("Score %*d", width-6, g.Score()),
		"Lives " + strings.Repeat("*", max(g.Lives(), 0)),
		"Bombs " + strings.Repeat("o", max(g.Bombs(), 0)),
		fmt.Sprintf("Graze %d", g.Graze()),
		fmt.Sprintf("Combo %d (best %d)", g.BombCombo(), g.BestBombCombo()),
		"",
	}
	if idx := g.PatternIndex(); idx >= 0 && idx < g.PatternCount() {
		lines = append(lines,
			fmt.Sprintf("Pattern %d/%d", idx+1, g.PatternCount()),
			fmt.Sprintf("Time %5.1fs", g.PatternTimeLeft()/config.TargetFPS),
			"Boss "+gauge(bossHealth(g), width-7),
		)
	} else {
		lines = append(lines, "", "", "")
	}
	lines = append(lines, "")

	for i, line := range lines {
		s.chunkWriter.WriteAt(col, 1+i, fmt.Sprintf("%-*s", width, truncate(line, width)))
	}
	s.chunkWriter.WriteColorAt(col, 1+len(lines), draw.ColorYellow, fmt.Sprintf("%-*s", width, truncate(s.banner.Text(), width)))
}

func bossHealth(g *gameplay.Manager) float64 {
	if g.BossMaxHealth() <= 0 {
		return 0
	}
	return float64(g.BossHealth()) / float64(g.BossMaxHealth())
}

// gauge renders a fraction in [0, 1] as a bar of the given width.
func gauge(fraction float64, width int) string {
	fraction = min(max(fraction, 0), 1)
	filled := int(fraction*float64(width) + 0.5)
	return "[" + strings.Repeat("#", filled) + strings.Repeat(" ", width-filled) + "]"
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
