package dome

import "time"

// GesturePhase is the state of the gesture arbiter.
type GesturePhase uint8

const (
	PhaseIdle         GesturePhase = iota // no interaction in progress
	PhaseDragging                         // a pointer or moved touch is being tracked
	PhasePressHolding                     // a motionless touch is waiting on the hold timer
	PhaseDisabled                         // input ignored while an overlay is open
)

// String returns the phase name.
func (p GesturePhase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseDragging:
		return "dragging"
	case PhasePressHolding:
		return "press-holding"
	case PhaseDisabled:
		return "disabled"
	default:
		return "unknown"
	}
}

// InputKind identifies a gesture input.
type InputKind uint8

const (
	InputPointerDown  InputKind = iota // mouse button pressed
	InputPointerMove                   // mouse moved with the button held
	InputPointerUp                     // mouse button released
	InputTouchStart                    // finger down
	InputTouchMove                     // finger moved
	InputTouchEnd                      // finger lifted
	InputTouchCancel                   // press interrupted by the platform
	InputKeyActivate                   // keyboard equivalent of a click
	InputHoldTimer                     // the press-and-hold deadline passed
	InputDisable                       // an overlay opened
	InputEnable                        // the overlay closed
)

// HapticPulse identifies a haptic cue.
type HapticPulse uint8

const (
	PulseNone   HapticPulse = iota
	PulseLight                       // initial touch-down
	PulseStrong                      // hold completed
	PulseOpen                        // content opened
)

// Duration returns the vibration length of the pulse.
func (p HapticPulse) Duration() time.Duration {
	switch p {
	case PulseLight:
		return 10 * time.Millisecond
	case PulseStrong:
		return 50 * time.Millisecond
	case PulseOpen:
		return 20 * time.Millisecond
	default:
		return 0
	}
}

// GestureInput is one input delivered to the arbiter. X and Y are surface
// coordinates; Tile is the tile under the input or NoTile. TapSuppressed is
// filled by the caller from the rotation controller for release inputs.
type GestureInput struct {
	Kind          InputKind
	Tile          int
	X, Y          float64
	At            time.Time
	TapSuppressed bool
}

// Effects lists what the caller must do after a transition.
type Effects struct {
	BeginDrag  bool
	UpdateDrag bool
	DX, DY     float64 // displacement since the drag began, with UpdateDrag
	EndDrag    bool
	Open       int // tile to open, or NoTile
	Pulse      HapticPulse
	ArmHold    time.Time // new hold deadline, zero if none
	CancelHold bool
}

// GestureState is the per-interaction arbiter state. It is reset at the start
// of every interaction; only Interacted carries over.
type GestureState struct {
	Phase GesturePhase
	Touch bool // interaction came from the touch path

	StartX, StartY float64
	DX, DY         float64
	Moved          bool

	HoldDeadline  time.Time // pending hold timer, zero if none
	HoldCompleted bool
	Tile          int

	// Interacted is set once any user input has been seen. Haptics stay
	// silent until then.
	Interacted bool
}

// NewGestureState returns the idle state.
func NewGestureState() GestureState {
	return GestureState{Tile: NoTile}
}

// GestureConfig holds the arbiter timing.
type GestureConfig struct {
	HoldDuration time.Duration
}

// tracking reports whether a press is being followed.
func (s GestureState) tracking() bool {
	return s.Phase == PhaseDragging || s.Phase == PhasePressHolding
}

// holdPending reports whether a hold timer is armed.
func (s GestureState) holdPending() bool {
	return !s.HoldDeadline.IsZero()
}

// idle returns the reset state, keeping the interaction gate.
func (s GestureState) idle() GestureState {
	return GestureState{Tile: NoTile, Interacted: s.Interacted}
}

// Transition computes the next state and effects for one input. It does not
// touch any shared state; the caller applies the returned effects.
func Transition(s GestureState, in GestureInput, cfg GestureConfig) (GestureState, Effects) {
	fx := Effects{Open: NoTile}
	prior := s.Interacted
	pulse := func(p HapticPulse) {
		if prior {
			fx.Pulse = p
		}
	}

	switch in.Kind {
	case InputDisable:
		if s.holdPending() {
			fx.CancelHold = true
		}
		if s.tracking() {
			fx.EndDrag = true
		}
		next := s.idle()
		next.Phase = PhaseDisabled
		return next, fx
	case InputEnable:
		if s.Phase == PhaseDisabled {
			return s.idle(), fx
		}
		return s, fx
	case InputHoldTimer:
		if s.Phase == PhasePressHolding && s.holdPending() && !s.Moved && !in.At.Before(s.HoldDeadline) {
			s.HoldDeadline = time.Time{}
			s.HoldCompleted = true
			pulse(PulseStrong)
		}
		return s, fx
	}

	if s.Phase == PhaseDisabled {
		s.Interacted = true
		return s, fx
	}

	switch in.Kind {
	case InputPointerDown:
		if s.holdPending() {
			fx.CancelHold = true
		}
		s = s.idle()
		s.Phase = PhaseDragging
		s.StartX, s.StartY = in.X, in.Y
		s.Tile = in.Tile
		fx.BeginDrag = true

	case InputTouchStart:
		// A second touch while one is pending replaces it.
		if s.holdPending() {
			fx.CancelHold = true
		}
		s = s.idle()
		s.Phase = PhasePressHolding
		s.Touch = true
		s.StartX, s.StartY = in.X, in.Y
		s.Tile = in.Tile
		s.HoldDeadline = in.At.Add(cfg.HoldDuration)
		fx.ArmHold = s.HoldDeadline
		fx.BeginDrag = true
		pulse(PulseLight)

	case InputPointerMove, InputTouchMove:
		if !s.tracking() || s.Touch != (in.Kind == InputTouchMove) {
			break
		}
		s.DX, s.DY = in.X-s.StartX, in.Y-s.StartY
		fx.UpdateDrag = true
		fx.DX, fx.DY = s.DX, s.DY
		if !s.Moved && exceedsDragThreshold(s.DX, s.DY) {
			s.Moved = true
			s.Phase = PhaseDragging
			if s.holdPending() {
				s.HoldDeadline = time.Time{}
				fx.CancelHold = true
			}
		}

	case InputPointerUp:
		if !s.tracking() || s.Touch {
			break
		}
		fx.EndDrag = true
		if !s.Moved && s.Tile != NoTile && !in.TapSuppressed {
			fx.Open = s.Tile
			pulse(PulseOpen)
		}
		s = s.idle()

	case InputTouchEnd:
		if !s.tracking() || !s.Touch {
			break
		}
		fx.EndDrag = true
		if s.holdPending() {
			// A release at or past the deadline counts as a completed hold.
			if !s.Moved && !in.At.Before(s.HoldDeadline) {
				s.HoldCompleted = true
			} else {
				fx.CancelHold = true
			}
		}
		if s.HoldCompleted && !s.Moved && s.Tile != NoTile {
			fx.Open = s.Tile
			pulse(PulseOpen)
		}
		s = s.idle()

	case InputTouchCancel:
		// Also abandons a touch routed as a pointer.
		if !s.tracking() {
			break
		}
		fx.EndDrag = true
		if s.holdPending() {
			fx.CancelHold = true
		}
		s = s.idle()

	case InputKeyActivate:
		if s.Phase == PhaseIdle && in.Tile != NoTile && !in.TapSuppressed {
			fx.Open = in.Tile
			pulse(PulseOpen)
		}
	}

	s.Interacted = true
	return s, fx
}
