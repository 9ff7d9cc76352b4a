package gameplay

import (
	"io"

	"github.com/charmbracelet/log"
)

// Options are the difficulty settings injected at construction.
type Options struct {
	FunMode      bool    // Bomb flings bullets away instead of destroying them
	PlayerSpeed  float64 // Units per tick, halved while focused
	ShotCooldown int     // Ticks between player shots
	GrazeRadius  float64
	StartLives   int
	StartBombs   int
	Seed         uint64 // Seeds the pattern engine's random source

	// Logger receives debug messages on state transitions. Nil discards them.
	Logger *log.Logger
}

// DefaultOptions returns the standard difficulty.
func DefaultOptions() Options {
	return Options{
		PlayerSpeed:  4,
		ShotCooldown: 4,
		GrazeRadius:  20,
		StartLives:   2,
		StartBombs:   3,
		Seed:         1,
	}
}

// withDefaults fills unset numeric fields from DefaultOptions.
func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.PlayerSpeed <= 0 {
		o.PlayerSpeed = d.PlayerSpeed
	}
	if o.ShotCooldown <= 0 {
		o.ShotCooldown = d.ShotCooldown
	}
	if o.GrazeRadius <= 0 {
		o.GrazeRadius = d.GrazeRadius
	}
	if o.StartLives < 0 {
		o.StartLives = d.StartLives
	}
	if o.StartBombs < 0 {
		o.StartBombs = d.StartBombs
	}
	return o
}

func (o Options) logger() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return log.New(io.Discard)
}
