package input

import (
	"bufio"
	"time"
)

// keyHoldDuration is how long a key is considered "held" after its last press.
// Terminals only report key repeats, so a key stays down for a short window
// after every byte it produced.
const keyHoldDuration = 80 * time.Millisecond

// Action is a game action bound to one or more keys.
type Action int

const (
	ActionLeft Action = iota
	ActionRight
	ActionUp
	ActionDown
	ActionFocus
	ActionShoot
	ActionBomb
	ActionPause
	ActionConfirm
	ActionQuit
	actionCount
)

// Input represents the current frame's input state.
type Input struct {
	held    [actionCount]bool
	Pressed []byte // Raw bytes read this frame
}

// Down reports whether the action is held this frame.
func (in Input) Down(a Action) bool {
	return in.held[a]
}

// Held returns an input with exactly the given actions held and no raw bytes.
func Held(actions ...Action) Input {
	var in Input
	for _, a := range actions {
		in.held[a] = true
	}
	return in
}

// keyState tracks the last time each action's key was pressed.
type keyState struct {
	last [actionCount]time.Time
}

func (k *keyState) press(a Action, now time.Time) {
	k.last[a] = now
}

func (k *keyState) snapshot(now time.Time) [actionCount]bool {
	var held [actionCount]bool
	for a := range held {
		held[a] = !k.last[a].IsZero() && now.Sub(k.last[a]) < keyHoldDuration
	}
	return held
}

// Stream delivers input bytes via a channel and tracks key state for combinations.
type Stream struct {
	ch    chan byte
	state keyState
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{ch: make(chan byte, 128)}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// ReadInput drains all available bytes from the stream (non-blocking).
// Handles escape sequences for arrow keys and accumulates all pressed keys.
// Uses key state persistence to allow detecting simultaneous key combinations.
func ReadInput(s *Stream) Input {
	now := time.Now()
	var buf []byte

	// Drain all available bytes
drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	return s.apply(buf, now)
}

// apply updates the key state from buf and returns the input at now.
func (s *Stream) apply(buf []byte, now time.Time) Input {
	for i := 0; i < len(buf); i++ {
		if n := applyEscape(&s.state, buf[i:], now); n > 0 {
			i += n - 1
			continue
		}
		applyByteToState(&s.state, buf[i], now)
	}
	return Input{held: s.state.snapshot(now), Pressed: buf}
}

var arrowActions = map[byte]Action{
	'A': ActionUp,
	'B': ActionDown,
	'C': ActionRight,
	'D': ActionLeft,
}

// applyEscape handles CSI arrow sequences. Plain arrows are ESC [ X; arrows
// with Shift held arrive as ESC [ 1 ; 2 X and also mean focus. It returns
// the number of bytes consumed, or zero if buf does not start with one.
func applyEscape(state *keyState, buf []byte, now time.Time) int {
	if len(buf) < 3 || buf[0] != '\x1b' || buf[1] != '[' {
		return 0
	}
	if a, ok := arrowActions[buf[2]]; ok {
		state.press(a, now)
		return 3
	}
	if len(buf) >= 6 && buf[2] == '1' && buf[3] == ';' {
		if a, ok := arrowActions[buf[5]]; ok {
			state.press(a, now)
			if buf[4] == '2' {
				state.press(ActionFocus, now)
			}
			return 6
		}
	}
	return 0
}

// applyByteToState updates the key state timestamps based on the pressed byte.
// Upper-case movement letters mean Shift is held, which focuses movement.
func applyByteToState(state *keyState, b byte, now time.Time) {
	switch b {
	case 'q', '\x03':
		state.press(ActionQuit, now)
	case 'a', 'h':
		state.press(ActionLeft, now)
	case 'A', 'H':
		state.press(ActionLeft, now)
		state.press(ActionFocus, now)
	case 'd', 'l':
		state.press(ActionRight, now)
	case 'D', 'L':
		state.press(ActionRight, now)
		state.press(ActionFocus, now)
	case 'w', 'k':
		state.press(ActionUp, now)
	case 'W', 'K':
		state.press(ActionUp, now)
		state.press(ActionFocus, now)
	case 's', 'j':
		state.press(ActionDown, now)
	case 'S', 'J':
		state.press(ActionDown, now)
		state.press(ActionFocus, now)
	case 'f', 'F':
		state.press(ActionFocus, now)
	case 'z', 'Z', ' ':
		state.press(ActionShoot, now)
	case 'x', 'X':
		state.press(ActionBomb, now)
	case 'p', 'P', '\x1b':
		state.press(ActionPause, now)
	case '\n', '\r':
		state.press(ActionConfirm, now)
	}
}
