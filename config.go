package dome

import (
	"runtime"
	"time"
)

// Default configuration values.
const (
	DefaultSegments            = 28
	DefaultFitRatio            = 0.5
	DefaultMinRadius           = 240.0
	DefaultMaxPitch            = 10.0
	DefaultDragSensitivity     = 18.0
	DefaultDragDampening       = 0.6
	DefaultHoldDuration        = 500 * time.Millisecond
	DefaultOverlayWidth        = 400.0
	DefaultOverlayHeight       = 400.0
	DefaultOverlayCornerRadius = 30.0
	DefaultOverlayDuration     = 0.3 // seconds
)

// DefaultBackdropColor is the scrim color behind an open overlay (#060010).
var DefaultBackdropColor = Color{R: 6.0 / 255, G: 0, B: 16.0 / 255, A: 1}

// Config holds the options recognized by a Gallery. Zero-valued fields other
// than DragDampening are replaced by their defaults when the gallery is
// created.
type Config struct {
	// Segments is the number of tile columns around the sphere.
	Segments int
	// FitRatio scales the surface basis dimension into the sphere radius.
	FitRatio float64
	// MinRadius and MaxRadius bound the derived radius. MaxRadius 0 means
	// unbounded.
	MinRadius float64
	MaxRadius float64
	// MaxPitch bounds the vertical rotation in degrees.
	MaxPitch float64
	// DragSensitivity divides pointer displacement (pixels) into degrees.
	DragSensitivity float64
	// DragDampening in [0, 1] controls how long the sphere keeps spinning
	// after a drag is released. Higher values spin longer; 0 is the shortest
	// spin. Negative values take the default.
	DragDampening float64
	// DisableInertia stops the sphere as soon as a drag ends.
	DisableInertia bool
	// HoldDuration is how long a motionless touch must last to open a tile.
	HoldDuration time.Duration

	OverlayWidth        float64
	OverlayHeight       float64
	OverlayCornerRadius float64
	// OverlayDuration is the open/close animation length in seconds.
	OverlayDuration float32
	BackdropColor   Color

	// Grayscale renders sphere tiles without saturation.
	Grayscale bool

	// TouchPrimary forces the touch press-and-hold path on or off. When nil
	// it is decided once from the platform.
	TouchPrimary *bool
}

// DefaultConfig returns a Config populated with every default.
func DefaultConfig() Config {
	return Config{
		Segments:            DefaultSegments,
		FitRatio:            DefaultFitRatio,
		MinRadius:           DefaultMinRadius,
		MaxPitch:            DefaultMaxPitch,
		DragSensitivity:     DefaultDragSensitivity,
		DragDampening:       DefaultDragDampening,
		HoldDuration:        DefaultHoldDuration,
		OverlayWidth:        DefaultOverlayWidth,
		OverlayHeight:       DefaultOverlayHeight,
		OverlayCornerRadius: DefaultOverlayCornerRadius,
		OverlayDuration:     DefaultOverlayDuration,
		BackdropColor:       DefaultBackdropColor,
		Grayscale:           true,
	}
}

// normalize fills zero or out-of-range fields with defaults.
func (c Config) normalize() Config {
	if c.Segments < 1 {
		c.Segments = DefaultSegments
	}
	if c.FitRatio <= 0 {
		c.FitRatio = DefaultFitRatio
	}
	if c.MinRadius <= 0 {
		c.MinRadius = DefaultMinRadius
	}
	if c.MaxRadius < 0 || (c.MaxRadius > 0 && c.MaxRadius < c.MinRadius) {
		c.MaxRadius = 0
	}
	if c.MaxPitch <= 0 {
		c.MaxPitch = DefaultMaxPitch
	}
	if c.DragSensitivity <= 0 {
		c.DragSensitivity = DefaultDragSensitivity
	}
	if c.DragDampening < 0 {
		c.DragDampening = DefaultDragDampening
	}
	c.DragDampening = clamp(c.DragDampening, 0, 1)
	if c.HoldDuration <= 0 {
		c.HoldDuration = DefaultHoldDuration
	}
	if c.OverlayWidth <= 0 {
		c.OverlayWidth = DefaultOverlayWidth
	}
	if c.OverlayHeight <= 0 {
		c.OverlayHeight = DefaultOverlayHeight
	}
	if c.OverlayCornerRadius < 0 {
		c.OverlayCornerRadius = 0
	}
	if c.OverlayDuration <= 0 {
		c.OverlayDuration = DefaultOverlayDuration
	}
	if c.BackdropColor == (Color{}) {
		c.BackdropColor = DefaultBackdropColor
	}
	return c
}

// touchPrimary resolves the input modality once. Hybrid devices that report
// a desktop OS are treated as pointer devices.
func (c Config) touchPrimary() bool {
	if c.TouchPrimary != nil {
		return *c.TouchPrimary
	}
	return runtime.GOOS == "android" || runtime.GOOS == "ios"
}
