package dome

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// panelFrame is the animated geometry of the overlay panel and its scrim.
type panelFrame struct {
	Rect  Rect
	Scrim float64 // scrim opacity in [0, 1]
}

// frameTween animates every field of a panelFrame between two frames.
// Call update(dt) each tick; done reports completion.
type frameTween struct {
	tweens [5]*gween.Tween
	fields [5]*float64
	frame  panelFrame
	done   bool
}

// newFrameTween starts a tween from one frame to another over duration
// seconds using the easing function.
func newFrameTween(from, to panelFrame, duration float32, fn ease.TweenFunc) *frameTween {
	t := &frameTween{frame: from}
	begin := [5]float64{from.Rect.X, from.Rect.Y, from.Rect.Width, from.Rect.Height, from.Scrim}
	end := [5]float64{to.Rect.X, to.Rect.Y, to.Rect.Width, to.Rect.Height, to.Scrim}
	t.fields = [5]*float64{&t.frame.Rect.X, &t.frame.Rect.Y, &t.frame.Rect.Width, &t.frame.Rect.Height, &t.frame.Scrim}
	for i := range t.tweens {
		t.tweens[i] = gween.New(float32(begin[i]), float32(end[i]), duration, fn)
	}
	return t
}

// update advances the tween by dt seconds and returns the current frame.
func (t *frameTween) update(dt float32) panelFrame {
	if t.done {
		return t.frame
	}
	allDone := true
	for i, tw := range t.tweens {
		val, finished := tw.Update(dt)
		*t.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	t.done = allDone
	return t.frame
}
