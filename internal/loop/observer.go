package loop

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/tomz197/danmaku/internal/draw"
	"github.com/tomz197/danmaku/internal/gameplay"
)

// Observer is notified after every tick with the tick's reaction.
type Observer interface {
	Observe(r gameplay.Reaction, g *gameplay.Manager)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(r gameplay.Reaction, g *gameplay.Manager)

// Observe calls f.
func (f ObserverFunc) Observe(r gameplay.Reaction, g *gameplay.Manager) {
	f(r, g)
}

// bannerTicks is how long a banner stays up.
const bannerTicks = 120

// Banner keeps a short message about the latest notable reaction.
type Banner struct {
	text  string
	ticks int
}

// Observe replaces the message on notable reactions and ages it otherwise.
func (b *Banner) Observe(r gameplay.Reaction, g *gameplay.Manager) {
	text := bannerText(r, g)
	if text != "" {
		b.text = text
		b.ticks = bannerTicks
		return
	}
	if b.ticks > 0 {
		b.ticks--
		if b.ticks == 0 {
			b.text = ""
		}
	}
}

// Text returns the current message, empty once it has expired.
func (b *Banner) Text() string {
	return b.text
}

func bannerText(r gameplay.Reaction, g *gameplay.Manager) string {
	switch r {
	case gameplay.ReactionPatternStarted:
		return fmt.Sprintf("Pattern %d/%d", g.PatternIndex()+1, g.PatternCount())
	case gameplay.ReactionPatternSucceeded:
		return fmt.Sprintf("Captured! +%d", gameplay.PatternSucceededPoints)
	case gameplay.ReactionPatternFailed:
		return fmt.Sprintf("Time out +%d", gameplay.PatternFailedPoints)
	case gameplay.ReactionLifeLost:
		return "Life lost"
	case gameplay.ReactionBombUsed:
		return "Bomb!"
	case gameplay.ReactionBossDefeated, gameplay.ReactionGameCompleted:
		return "All patterns cleared"
	case gameplay.ReactionGameOver:
		return "Game over"
	}
	return ""
}

// Bell rings the terminal bell when the player is hit or the game ends.
type Bell struct {
	w io.Writer
}

// NewBell rings on w.
func NewBell(w io.Writer) *Bell {
	return &Bell{w: w}
}

func (b *Bell) Observe(r gameplay.Reaction, _ *gameplay.Manager) {
	if r == gameplay.ReactionPlayerHit || r == gameplay.ReactionGameOver {
		draw.Bell(b.w)
	}
}

// LogObserver writes game milestones to a logger.
type LogObserver struct {
	logger *log.Logger
}

// NewLogObserver logs to logger with the given key/value pairs attached.
func NewLogObserver(logger *log.Logger, keyvals ...any) *LogObserver {
	return &LogObserver{logger: logger.With(keyvals...)}
}

func (o *LogObserver) Observe(r gameplay.Reaction, g *gameplay.Manager) {
	switch r {
	case gameplay.ReactionGameStarted:
		o.logger.Info("game started")
	case gameplay.ReactionPatternSucceeded, gameplay.ReactionPatternFailed:
		o.logger.Debug("pattern finished", "pattern", g.PatternIndex(), "result", r, "score", g.Score())
	case gameplay.ReactionLifeLost:
		o.logger.Debug("life lost", "lives", g.Lives())
	case gameplay.ReactionGameOver, gameplay.ReactionGameCompleted:
		o.logger.Info("game finished", "result", r, "score", g.Score(), "graze", g.Graze(),
			"best_combo", g.BestBombCombo())
	}
}
