package dome

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"
)

// overlayMargin keeps the overlay panel away from the surface edges.
const overlayMargin = 16.0

// Embed is interactive content shown inside an open overlay. It is created
// when the overlay opens and closed when it is torn down.
type Embed interface {
	Update()
	Draw(dst *ebiten.Image)
	Close()
}

// EmbedProvider creates embeds for content of kind KindEmbedded.
type EmbedProvider interface {
	Embed(ref string) Embed
}

// ImageSource resolves content references to images. A nil result renders
// a blank placeholder.
type ImageSource interface {
	Image(ref string) *ebiten.Image
}

// Presentation is the overlay variant chosen for a tile.
type Presentation uint8

const (
	PresentNone  Presentation = iota // no overlay
	PresentImage                     // static image
	PresentEmbed                     // embedded frame
)

// closingPanel is a torn-down overlay animating back to its tile. It does
// not hold the guard.
type closingPanel struct {
	tile    Tile
	variant Presentation
	image   *ebiten.Image
	tween   *frameTween
	frame   panelFrame
}

// OverlayManager is the single-slot modal for enlarged content.
type OverlayManager struct {
	guard   bool // set synchronously on Open, cleared only by Close
	opening bool

	tile    Tile
	variant Presentation
	embed   Embed
	image   *ebiten.Image

	frame  panelFrame
	tween  *frameTween
	origin Rect

	viewport Rect
	width    float64
	height   float64
	corner   float64
	duration float32

	embeds EmbedProvider
	images ImageSource

	closing *closingPanel
}

// NewOverlayManager creates a closed overlay using the overlay options of cfg.
func NewOverlayManager(cfg Config, images ImageSource, embeds EmbedProvider) *OverlayManager {
	cfg = cfg.normalize()
	return &OverlayManager{
		width:    cfg.OverlayWidth,
		height:   cfg.OverlayHeight,
		corner:   cfg.OverlayCornerRadius,
		duration: cfg.OverlayDuration,
		images:   images,
		embeds:   embeds,
		viewport: Rect{Width: 1, Height: 1},
	}
}

// Open shows t enlarged, growing from origin (the tile's screen bounds).
// It is a no-op returning false while an overlay is open or opening.
func (m *OverlayManager) Open(t Tile, origin Rect) bool {
	if m.guard {
		return false
	}
	m.guard = true
	m.opening = true
	m.tile = t
	m.variant = PresentImage
	m.embed = nil
	m.image = nil

	c := t.Content.resolved()
	if c.Kind == KindEmbedded && m.embeds != nil {
		if e := m.embeds.Embed(c.FullRef); e != nil {
			m.embed = e
			m.variant = PresentEmbed
		}
	}
	if m.variant == PresentImage && m.images != nil {
		m.image = m.images.Image(c.FullRef)
		if m.image == nil && c.PreviewRef != c.FullRef {
			m.image = m.images.Image(c.PreviewRef)
		}
	}

	target := m.targetRect()
	if origin.Width <= 0 || origin.Height <= 0 {
		ctr := target.Center()
		origin = Rect{X: ctr.X, Y: ctr.Y, Width: 1, Height: 1}
	}
	m.origin = origin
	m.frame = panelFrame{Rect: origin}
	m.tween = newFrameTween(m.frame, panelFrame{Rect: target, Scrim: 1}, m.duration, ease.OutCubic)
	return true
}

// Close tears down the open overlay and clears the guard. Returns false if
// nothing was open.
func (m *OverlayManager) Close() bool {
	if !m.guard {
		return false
	}
	if m.embed != nil {
		m.embed.Close()
		m.embed = nil
	}
	m.closing = &closingPanel{
		tile:    m.tile,
		variant: m.variant,
		image:   m.image,
		frame:   m.frame,
		tween:   newFrameTween(m.frame, panelFrame{Rect: m.origin}, m.duration, ease.OutCubic),
	}
	m.guard = false
	m.opening = false
	m.variant = PresentNone
	m.image = nil
	m.tween = nil
	m.frame = panelFrame{}
	return true
}

// IsOpen reports whether an overlay is open or opening.
func (m *OverlayManager) IsOpen() bool {
	return m.guard
}

// Opening reports whether the open animation is still running.
func (m *OverlayManager) Opening() bool {
	return m.opening
}

// Tile returns the tile shown by the overlay.
func (m *OverlayManager) Tile() (Tile, bool) {
	return m.tile, m.guard
}

// Variant returns the presentation of the open overlay.
func (m *OverlayManager) Variant() Presentation {
	if !m.guard {
		return PresentNone
	}
	return m.variant
}

// Frame returns the current panel geometry and scrim opacity.
func (m *OverlayManager) Frame() (Rect, float64) {
	return m.frame.Rect, m.frame.Scrim
}

// OnScrim reports whether (x, y) lies on the background outside the panel.
func (m *OverlayManager) OnScrim(x, y float64) bool {
	return m.guard && !m.frame.Rect.Contains(x, y)
}

// Resize updates the surface bounds. An open overlay snaps to the new
// target once its opening animation has finished.
func (m *OverlayManager) Resize(viewport Rect) {
	m.viewport = viewport
	if m.guard && !m.opening {
		m.frame.Rect = m.targetRect()
	}
}

// Update advances animations by dt seconds and ticks an open embed.
func (m *OverlayManager) Update(dt float32) {
	if m.tween != nil {
		m.frame = m.tween.update(dt)
		if m.tween.done {
			m.tween = nil
			m.opening = false
		}
	}
	if m.embed != nil && !m.opening {
		m.embed.Update()
	}
	if m.closing != nil {
		m.closing.frame = m.closing.tween.update(dt)
		if m.closing.tween.done {
			m.closing = nil
		}
	}
}

// targetRect is the centered overlay rectangle, shrunk to fit the surface.
func (m *OverlayManager) targetRect() Rect {
	w := math.Max(1, math.Min(m.width, m.viewport.Width-2*overlayMargin))
	h := math.Max(1, math.Min(m.height, m.viewport.Height-2*overlayMargin))
	return Rect{
		X:      m.viewport.X + (m.viewport.Width-w)/2,
		Y:      m.viewport.Y + (m.viewport.Height-h)/2,
		Width:  w,
		Height: h,
	}
}
