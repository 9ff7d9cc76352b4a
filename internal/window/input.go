package window

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/tomz197/danmaku/internal/gameplay"
)

// Key bindings per action.
var (
	keysLeft    = []ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyA}
	keysRight   = []ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyD}
	keysUp      = []ebiten.Key{ebiten.KeyArrowUp, ebiten.KeyW}
	keysDown    = []ebiten.Key{ebiten.KeyArrowDown, ebiten.KeyS}
	keysFocus   = []ebiten.Key{ebiten.KeyShiftLeft, ebiten.KeyShiftRight}
	keysShoot   = []ebiten.Key{ebiten.KeyZ, ebiten.KeySpace}
	keysBomb    = []ebiten.Key{ebiten.KeyX}
	keysPause   = []ebiten.Key{ebiten.KeyP, ebiten.KeyEscape}
	keysConfirm = []ebiten.Key{ebiten.KeyEnter}
)

// readInput builds the held-duration snapshot from a per-key press duration,
// usually inpututil.KeyPressDuration.
func readInput(duration func(ebiten.Key) int) gameplay.Input {
	held := func(keys []ebiten.Key) int {
		n := 0
		for _, k := range keys {
			n = max(n, duration(k))
		}
		return n
	}
	return gameplay.Input{
		Left:    held(keysLeft),
		Right:   held(keysRight),
		Up:      held(keysUp),
		Down:    held(keysDown),
		Focus:   held(keysFocus),
		Shoot:   held(keysShoot),
		Bomb:    held(keysBomb),
		Pause:   held(keysPause),
		Confirm: held(keysConfirm),
	}
}
