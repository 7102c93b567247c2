package dome

import "time"

// syntheticEvent represents a single injected input. Pointer events use
// surface coordinates, identical to real mouse and touch input.
type syntheticEvent struct {
	source  pointerSource
	x, y    float64
	pressed bool
	cancel  bool
	isKey   bool
	key     KeyAction
}

// InjectPress queues a mouse press at (x, y). The event is consumed on the
// next frame's Update call.
func (g *Gallery) InjectPress(x, y float64) {
	g.injectQueue = append(g.injectQueue, syntheticEvent{source: sourceMouse, x: x, y: y, pressed: true})
}

// InjectMove queues a mouse move at (x, y) with the button held down.
func (g *Gallery) InjectMove(x, y float64) {
	g.injectQueue = append(g.injectQueue, syntheticEvent{source: sourceMouse, x: x, y: y, pressed: true})
}

// InjectRelease queues a mouse release at (x, y).
func (g *Gallery) InjectRelease(x, y float64) {
	g.injectQueue = append(g.injectQueue, syntheticEvent{source: sourceMouse, x: x, y: y})
}

// InjectClick queues a press followed by a release at the same point.
// Consumes two frames.
func (g *Gallery) InjectClick(x, y float64) {
	g.InjectPress(x, y)
	g.InjectRelease(x, y)
}

// InjectDrag queues a full mouse drag: press at (fromX, fromY), linearly
// interpolated moves over frames-2 intermediate frames, and release at
// (toX, toY). Minimum frames is 2.
func (g *Gallery) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	g.injectPath(sourceMouse, fromX, fromY, toX, toY, frames)
}

// InjectTouchStart queues a finger down at (x, y).
func (g *Gallery) InjectTouchStart(x, y float64) {
	g.injectQueue = append(g.injectQueue, syntheticEvent{source: sourceTouch, x: x, y: y, pressed: true})
}

// InjectTouchMove queues a finger move to (x, y).
func (g *Gallery) InjectTouchMove(x, y float64) {
	g.InjectTouchStart(x, y)
}

// InjectTouchEnd queues a finger lift at (x, y).
func (g *Gallery) InjectTouchEnd(x, y float64) {
	g.injectQueue = append(g.injectQueue, syntheticEvent{source: sourceTouch, x: x, y: y})
}

// InjectTouchCancel queues a platform interruption of the current touch.
func (g *Gallery) InjectTouchCancel() {
	g.injectQueue = append(g.injectQueue, syntheticEvent{source: sourceTouch, cancel: true})
}

// InjectTouchDrag is InjectDrag for a finger.
func (g *Gallery) InjectTouchDrag(fromX, fromY, toX, toY float64, frames int) {
	g.injectPath(sourceTouch, fromX, fromY, toX, toY, frames)
}

// InjectKey queues a keyboard command.
func (g *Gallery) InjectKey(k KeyAction) {
	g.injectQueue = append(g.injectQueue, syntheticEvent{isKey: true, key: k})
}

func (g *Gallery) injectPath(src pointerSource, fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	g.injectQueue = append(g.injectQueue, syntheticEvent{source: src, x: fromX, y: fromY, pressed: true})
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		g.injectQueue = append(g.injectQueue, syntheticEvent{
			source:  src,
			x:       fromX + (toX-fromX)*t,
			y:       fromY + (toY-fromY)*t,
			pressed: true,
		})
	}
	g.injectQueue = append(g.injectQueue, syntheticEvent{source: src, x: toX, y: toY})
}

// processInjectedInput pops one event from the inject queue and feeds it
// through the same paths as real input. Returns true if an event was
// consumed (real input should be skipped).
func (g *Gallery) processInjectedInput(now time.Time) bool {
	if len(g.injectQueue) == 0 {
		return false
	}
	evt := g.injectQueue[0]
	copy(g.injectQueue, g.injectQueue[1:])
	g.injectQueue = g.injectQueue[:len(g.injectQueue)-1]

	switch {
	case evt.isKey:
		g.handleKey(evt.key, now)
	case evt.cancel:
		g.cancelTouch(now)
	default:
		if evt.source == sourceTouch {
			g.touchActive = evt.pressed
		}
		g.processPointer(evt.source, evt.x, evt.y, evt.pressed, now)
	}
	return true
}
