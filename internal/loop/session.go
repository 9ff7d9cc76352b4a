// Package loop runs one game in a terminal: it reads keys, advances the
// simulation at a fixed rate, notifies observers and draws the result.
package loop

import (
	"bufio"
	"context"
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/danmaku/internal/config"
	"github.com/tomz197/danmaku/internal/draw"
	"github.com/tomz197/danmaku/internal/gameplay"
	"github.com/tomz197/danmaku/internal/input"
)

// Options configures a Session.
type Options struct {
	TermSizeFunc draw.TermSizeFunc
	Username     string
	Game         gameplay.Options
	Live         *config.Live // Optional; polled every tick for option changes
	Logger       *log.Logger
	Observers    []Observer // Notified after the built-in observers
}

// Session handles rendering and input for a single terminal.
type Session struct {
	game     *gameplay.Manager
	stream   *input.Stream
	counters input.Counters

	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter
	writer       io.Writer
	termSizeFunc draw.TermSizeFunc

	banner    *Banner
	observers []Observer
	logger    *log.Logger
	username  string

	live        *config.Live
	liveVersion uint64

	running     bool
	lastInput   time.Time
	inactive    bool
	wasInactive bool
	prevMode    gameplay.Mode
	fullRedraw  bool
}

// NewSession creates a session reading keys from r and drawing to w.
func NewSession(r *bufio.Reader, w io.Writer, opts Options) *Session {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	termWidth, termHeight, _ := termSizeFunc()
	cols, rows, offsetCol, offsetRow := fieldLayout(termWidth, termHeight)
	canvas := draw.NewScaledCanvas(cols, rows, gameplay.FieldWidth, gameplay.FieldHeight)
	canvas.SetOffset(offsetCol, offsetRow)
	chunkWriter := draw.NewChunkWriter(w, offsetCol, offsetRow)

	gameOpts := opts.Game
	var liveVersion uint64
	if opts.Live != nil {
		var f config.File
		f, liveVersion = opts.Live.Current()
		gameOpts = f.Options()
	}
	if gameOpts.Logger == nil {
		gameOpts.Logger = logger.With("user", opts.Username)
	}

	s := &Session{
		game:         gameplay.New(gameOpts),
		stream:       input.StartStream(r),
		canvas:       canvas,
		chunkWriter:  chunkWriter,
		writer:       w,
		termSizeFunc: termSizeFunc,
		banner:       &Banner{},
		logger:       logger,
		username:     opts.Username,
		live:         opts.Live,
		liveVersion:  liveVersion,
		running:      true,
		lastInput:    time.Now(),
		fullRedraw:   true,
	}
	s.observers = append([]Observer{
		s.banner,
		NewBell(chunkWriter),
		NewLogObserver(logger, "user", opts.Username),
	}, opts.Observers...)
	return s
}

// Game returns the session's game.
func (s *Session) Game() *gameplay.Manager {
	return s.game
}

// Running reports whether the session loop is still going.
func (s *Session) Running() bool {
	return s.running
}

// Run drives the session at a fixed rate until the player quits, goes
// inactive for too long, or ctx is cancelled.
func (s *Session) Run(ctx context.Context) error {
	draw.HideCursor(s.writer)
	defer draw.ShowCursor(s.writer)
	draw.ClearScreen(s.writer)
	s.logger.Info("session started", "user", s.username)

	ticker := time.NewTicker(config.TargetFrameTime)
	defer ticker.Stop()

	for s.running {
		select {
		case <-ctx.Done():
			s.drawShutdown()
			s.logger.Info("session stopped", "user", s.username, "reason", ctx.Err())
			return s.chunkWriter.Flush()
		case now := <-ticker.C:
			s.updateScreen()
			s.Step(input.ReadInput(s.stream), now)
			if err := s.drawFrame(); err != nil {
				return err
			}
		}
	}

	draw.ClearScreen(s.writer)
	s.logger.Info("session ended", "user", s.username, "score", s.game.Score())
	return nil
}

// Step advances the game by one tick with the given key state and notifies
// every observer. It returns the tick's reaction.
func (s *Session) Step(in input.Input, now time.Time) gameplay.Reaction {
	idle := now.Sub(s.lastInput).Seconds()
	switch {
	case len(in.Pressed) > 0:
		s.lastInput = now
		s.inactive = false
	case idle > config.InactivityDisconnectUser:
		s.logger.Info("disconnecting inactive user", "user", s.username)
		s.running = false
		return gameplay.ReactionNone
	case idle > config.InactivityWarnUser:
		s.inactive = true
	}

	if in.Down(input.ActionQuit) {
		s.running = false
		return gameplay.ReactionNone
	}

	s.pollOptions()

	r := s.game.NextFrame(s.counters.Update(in), 1)
	for _, o := range s.observers {
		o.Observe(r, s.game)
	}
	return r
}

// pollOptions hands changed live options to the game. They apply from the
// next game on.
func (s *Session) pollOptions() {
	if s.live == nil {
		return
	}
	f, version := s.live.Current()
	if version == s.liveVersion {
		return
	}
	s.liveVersion = version
	opts := f.Options()
	opts.Logger = s.game.Options().Logger
	s.game.SetOptions(opts)
	s.logger.Debug("options updated", "user", s.username, "version", version)
}

// updateScreen handles terminal resize. On actual size changes it clears
// the terminal to remove residual pixels outside the new canvas area.
func (s *Session) updateScreen() {
	termWidth, termHeight, err := s.termSizeFunc()
	if err != nil {
		return
	}
	cols, rows, offsetCol, offsetRow := fieldLayout(termWidth, termHeight)

	if cols != s.canvas.TerminalWidth() || rows != s.canvas.TerminalHeight() ||
		offsetCol != s.canvas.OffsetCol() || offsetRow != s.canvas.OffsetRow() {
		s.fullRedraw = true
	}

	s.canvas.Resize(cols, rows)
	s.canvas.SetOffset(offsetCol, offsetRow)
	s.chunkWriter.SetOffset(offsetCol, offsetRow)
}

// fieldAspect is the field's width over its height. Terminal cells are
// about twice as tall as wide, so one row holds two square sub-pixels.
const fieldAspect = gameplay.FieldWidth / gameplay.FieldHeight

// fieldLayout fits the field into the terminal next to the side panel,
// keeping its aspect ratio, and returns the canvas size and its 0-based
// offset. The offset leaves room for the border.
func fieldLayout(termWidth, termHeight int) (cols, rows, offsetCol, offsetRow int) {
	availCols := max(min(termWidth-config.HUDCols-2, config.MaxRenderCols), 1)
	availRows := max(min(termHeight-2, config.MaxRenderRows), 1)

	rows = availRows
	cols = max(int(math.Round(float64(rows*2)*fieldAspect)), 1)
	if cols > availCols {
		cols = availCols
		rows = max(int(math.Round(float64(cols)/fieldAspect/2)), 1)
	}

	offsetCol = max((termWidth-config.HUDCols-cols)/2, 1)
	offsetRow = max((termHeight-rows)/2, 1)
	return cols, rows, offsetCol, offsetRow
}
