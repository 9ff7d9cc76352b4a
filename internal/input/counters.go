package input

import "github.com/tomz197/danmaku/internal/gameplay"

// Counters turns per-frame key state into held-duration counters.
type Counters struct {
	held [actionCount]int
}

// Update advances every counter by one frame: held actions count up,
// released ones drop back to zero.
func (c *Counters) Update(in Input) gameplay.Input {
	for a := range c.held {
		if in.held[a] {
			c.held[a]++
		} else {
			c.held[a] = 0
		}
	}
	return c.Snapshot()
}

// Snapshot returns the current counters without advancing them.
func (c *Counters) Snapshot() gameplay.Input {
	return gameplay.Input{
		Left:    c.held[ActionLeft],
		Right:   c.held[ActionRight],
		Up:      c.held[ActionUp],
		Down:    c.held[ActionDown],
		Focus:   c.held[ActionFocus],
		Shoot:   c.held[ActionShoot],
		Bomb:    c.held[ActionBomb],
		Pause:   c.held[ActionPause],
		Confirm: c.held[ActionConfirm],
	}
}

// Held returns how many frames the action has been held.
func (c *Counters) Held(a Action) int {
	return c.held[a]
}

// Reset releases every action.
func (c *Counters) Reset() {
	c.held = [actionCount]int{}
}
