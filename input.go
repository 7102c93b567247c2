package dome

import (
	"slices"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// --- Per-source pointer state ---

type pointerSource uint8

const (
	sourceMouse pointerSource = iota
	sourceTouch
	pointerSources
)

type pointerState struct {
	down  bool
	lastX float64
	lastY float64
}

// KeyAction is a keyboard command understood by the gallery.
type KeyAction uint8

const (
	KeyActivate  KeyAction = iota // Enter or Space: open the focused tile
	KeyClose                      // Escape: close the overlay
	KeyFocusNext                  // Tab
	KeyFocusPrev                  // Shift+Tab
)

// --- Input processing ---

// pollEbitenInput reads mouse, touch, and keyboard state for this tick.
func (g *Gallery) pollEbitenInput(now time.Time) {
	g.processMousePointer(now)
	g.processTouchPointer(now)
	g.processKeys(now)
}

// processMousePointer handles the left mouse button.
func (g *Gallery) processMousePointer(now time.Time) {
	mx, my := ebiten.CursorPosition()
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	g.processPointer(sourceMouse, float64(mx), float64(my), pressed, now)
}

// processTouchPointer follows a single touch. A newer touch replaces the one
// being followed.
func (g *Gallery) processTouchPointer(now time.Time) {
	ids := ebiten.AppendTouchIDs(g.touchBuf[:0])
	g.touchBuf = ids

	if started := inpututil.AppendJustPressedTouchIDs(nil); len(started) > 0 {
		tid := started[len(started)-1]
		g.activeTouch = tid
		g.touchActive = true
		g.pointers[sourceTouch].down = false
		tx, ty := ebiten.TouchPosition(tid)
		g.processPointer(sourceTouch, float64(tx), float64(ty), true, now)
		return
	}
	if !g.touchActive {
		return
	}
	if !ebiten.IsFocused() {
		g.cancelTouch(now)
		return
	}
	if !slices.Contains(ids, g.activeTouch) {
		ps := &g.pointers[sourceTouch]
		g.touchActive = false
		g.processPointer(sourceTouch, ps.lastX, ps.lastY, false, now)
		return
	}
	tx, ty := ebiten.TouchPosition(g.activeTouch)
	g.processPointer(sourceTouch, float64(tx), float64(ty), true, now)
}

// processKeys handles focus traversal, activation, and close.
func (g *Gallery) processKeys(now time.Time) {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyTab):
		if ebiten.IsKeyPressed(ebiten.KeyShift) {
			g.handleKey(KeyFocusPrev, now)
		} else {
			g.handleKey(KeyFocusNext, now)
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter),
		inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter),
		inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.handleKey(KeyActivate, now)
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		g.handleKey(KeyClose, now)
	}
}

// handleKey applies one keyboard command.
func (g *Gallery) handleKey(k KeyAction, now time.Time) {
	switch k {
	case KeyActivate:
		g.dispatch(GestureInput{Kind: InputKeyActivate, Tile: g.focus, At: now})
	case KeyClose:
		g.closeOverlay()
	case KeyFocusNext, KeyFocusPrev:
		if g.overlay.IsOpen() || len(g.tiles) == 0 {
			return
		}
		step := 1
		if k == KeyFocusPrev {
			step = -1
		}
		next := 0
		if g.focus != NoTile {
			next = (g.focus + step + len(g.tiles)) % len(g.tiles)
		} else if step < 0 {
			next = len(g.tiles) - 1
		}
		g.SetFocus(next)
	}
}

// pointerKinds returns the gesture inputs a source produces. Touches only
// take the press-and-hold path on touch-primary devices.
func (g *Gallery) pointerKinds(src pointerSource) (down, move, up InputKind) {
	if src == sourceTouch && g.touchPrimary {
		return InputTouchStart, InputTouchMove, InputTouchEnd
	}
	return InputPointerDown, InputPointerMove, InputPointerUp
}

// processPointer runs the press/move/release state machine for one source.
func (g *Gallery) processPointer(src pointerSource, x, y float64, pressed bool, now time.Time) {
	ps := &g.pointers[src]
	down, move, up := g.pointerKinds(src)

	moved := x != ps.lastX || y != ps.lastY
	if moved || !ps.down {
		g.pointer.set(x, y)
	}

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.lastX, ps.lastY = x, y
		g.scrimPress = g.overlay.OnScrim(x, y)
		g.dispatch(GestureInput{Kind: down, Tile: g.TileAt(x, y), X: x, Y: y, At: now})

	case !pressed && ps.down:
		ps.down = false
		ps.lastX, ps.lastY = x, y
		g.dispatch(GestureInput{Kind: up, Tile: g.gesture.Tile, X: x, Y: y, At: now})
		if g.scrimPress && g.overlay.OnScrim(x, y) {
			g.closeOverlay()
		}
		g.scrimPress = false

	case pressed && ps.down:
		if moved {
			ps.lastX, ps.lastY = x, y
			g.dispatch(GestureInput{Kind: move, Tile: g.gesture.Tile, X: x, Y: y, At: now})
		}

	default:
		ps.lastX, ps.lastY = x, y
	}
}

// cancelTouch abandons the followed touch without activating anything.
func (g *Gallery) cancelTouch(now time.Time) {
	ps := &g.pointers[sourceTouch]
	if !ps.down {
		g.touchActive = false
		return
	}
	ps.down = false
	g.touchActive = false
	g.scrimPress = false
	g.dispatch(GestureInput{Kind: InputTouchCancel, Tile: NoTile, X: ps.lastX, Y: ps.lastY, At: now})
}
