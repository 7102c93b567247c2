package dome

import (
	"math"
	"time"
)

const (
	// dragThresholdSq is the squared displacement (pixels²) a drag must
	// exceed before it counts as moved.
	dragThresholdSq = 25.0
	// TapSuppressWindow is how long after a moved drag ends a tap is ignored.
	TapSuppressWindow = 100 * time.Millisecond
	// maxSpinVelocity caps inertial spin in degrees per tick.
	maxSpinVelocity = 1.5
)

// exceedsDragThreshold reports whether a cumulative displacement counts as a
// drag rather than a tap.
func exceedsDragThreshold(dx, dy float64) bool {
	return dx*dx+dy*dy > dragThresholdSq
}

// RotationController owns the gallery orientation and applies drag input to
// it. Listeners registered with OnChange run after every orientation change.
type RotationController struct {
	orientation Orientation
	origin      Orientation

	maxPitch    float64
	sensitivity float64

	dragging    bool
	moved       bool
	lastDragEnd time.Time

	// Inertia: velocity is the yaw change of the most recent drag update in
	// degrees per tick.
	inertia   bool
	friction  float64
	stopBelow float64
	velocity  float64
	spinning  bool

	listeners []func(Orientation)
}

// NewRotationController creates a controller at the zero orientation.
// dampening in [0, 1] sets inertia friction; inertia false disables spin.
func NewRotationController(maxPitch, sensitivity, dampening float64, inertia bool) *RotationController {
	d := clamp(dampening, 0, 1)
	return &RotationController{
		maxPitch:    maxPitch,
		sensitivity: sensitivity,
		inertia:     inertia,
		friction:    0.94 + 0.055*d,
		stopBelow:   0.015 - 0.01*d,
	}
}

// Orientation returns the current orientation.
func (r *RotationController) Orientation() Orientation {
	return r.orientation
}

// OnChange registers fn to run after every orientation change.
func (r *RotationController) OnChange(fn func(Orientation)) {
	r.listeners = append(r.listeners, fn)
}

// SetOrientation moves to o, clamping pitch and wrapping yaw.
func (r *RotationController) SetOrientation(o Orientation) {
	r.spinning = false
	r.apply(Orientation{
		Pitch: clamp(o.Pitch, -r.maxPitch, r.maxPitch),
		Yaw:   WrapSigned(o.Yaw),
	})
}

// Reapply notifies listeners with the unchanged orientation. Used after a
// surface resize so size-dependent transforms are re-derived.
func (r *RotationController) Reapply() {
	r.notify()
}

// BeginDrag snapshots the current orientation as the drag origin.
func (r *RotationController) BeginDrag() {
	r.origin = r.orientation
	r.dragging = true
	r.moved = false
	r.velocity = 0
	r.spinning = false
}

// UpdateDrag applies a displacement measured from the drag start.
func (r *RotationController) UpdateDrag(dx, dy float64) {
	if !r.dragging {
		return
	}
	if !r.moved && exceedsDragThreshold(dx, dy) {
		r.moved = true
	}
	next := Orientation{
		Pitch: clamp(r.origin.Pitch-dy/r.sensitivity, -r.maxPitch, r.maxPitch),
		Yaw:   WrapSigned(r.origin.Yaw + dx/r.sensitivity),
	}
	r.velocity = WrapSigned(next.Yaw - r.orientation.Yaw)
	r.apply(next)
}

// EndDrag finishes the drag. A moved drag records now as its end time,
// opening the tap-suppression window, and may start inertial spin.
func (r *RotationController) EndDrag(now time.Time) {
	if !r.dragging {
		return
	}
	r.dragging = false
	if !r.moved {
		r.velocity = 0
		return
	}
	r.lastDragEnd = now
	r.velocity = clamp(r.velocity, -maxSpinVelocity, maxSpinVelocity)
	r.spinning = r.inertia && math.Abs(r.velocity) > r.stopBelow
}

// Dragging reports whether a drag is in progress.
func (r *RotationController) Dragging() bool {
	return r.dragging
}

// Moved reports whether the current or most recent drag exceeded the
// drag threshold.
func (r *RotationController) Moved() bool {
	return r.moved
}

// LastDragEnd returns when the most recent moved drag ended, or the zero time.
func (r *RotationController) LastDragEnd() time.Time {
	return r.lastDragEnd
}

// TapSuppressed reports whether now falls inside the window following the
// end of a moved drag.
func (r *RotationController) TapSuppressed(now time.Time) bool {
	if r.lastDragEnd.IsZero() {
		return false
	}
	return now.Sub(r.lastDragEnd) < TapSuppressWindow
}

// Spinning reports whether inertial rotation is active.
func (r *RotationController) Spinning() bool {
	return r.spinning
}

// Step advances inertial spin by one tick. Returns true if the orientation
// changed.
func (r *RotationController) Step() bool {
	if !r.spinning || r.dragging {
		return false
	}
	r.velocity *= r.friction
	if math.Abs(r.velocity) < r.stopBelow {
		r.velocity = 0
		r.spinning = false
		return false
	}
	r.apply(Orientation{
		Pitch: r.orientation.Pitch,
		Yaw:   WrapSigned(r.orientation.Yaw + r.velocity),
	})
	return true
}

// apply replaces the orientation in a single assignment and notifies.
func (r *RotationController) apply(o Orientation) {
	if o == r.orientation {
		return
	}
	r.orientation = o
	r.notify()
}

func (r *RotationController) notify() {
	for _, fn := range r.listeners {
		fn(r.orientation)
	}
}
