package gameplay

// Input is a snapshot of how long each action has been held, in ticks.
// Zero means released, one means pressed this tick.
type Input struct {
	Left, Right, Up, Down int
	Focus                 int
	Shoot                 int
	Bomb                  int
	Pause                 int
	Confirm               int
}

// pressed reports whether an action went down this tick.
func pressed(held int) bool {
	return held == 1
}

// direction returns the movement axes from the held keys.
func (in Input) direction() (dx, dy float64) {
	if in.Left > 0 {
		dx--
	}
	if in.Right > 0 {
		dx++
	}
	if in.Up > 0 {
		dy--
	}
	if in.Down > 0 {
		dy++
	}
	return dx, dy
}
