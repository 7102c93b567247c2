package dome

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Haptics delivers vibration cues. Implementations may ignore requests the
// platform cannot honor.
type Haptics interface {
	Vibrate(d time.Duration)
}

// EbitenHaptics vibrates through ebiten.Vibrate, which is a no-op on
// platforms without a vibration motor.
type EbitenHaptics struct {
	Magnitude float64
}

// Vibrate requests a vibration of length d.
func (h EbitenHaptics) Vibrate(d time.Duration) {
	mag := h.Magnitude
	if mag <= 0 {
		mag = 1
	}
	ebiten.Vibrate(&ebiten.VibrateOptions{Duration: d, Magnitude: mag})
}

// pulse fires a haptic cue, swallowing any panic from the backend.
func (g *Gallery) pulse(p HapticPulse) {
	if g.haptics == nil || p == PulseNone {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			g.debugf("haptics unavailable: %v", r)
		}
	}()
	g.haptics.Vibrate(p.Duration())
}
