package dome

import (
	"io"
	"os"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
)

// Gallery is the top-level object that owns the tiles, orientation, depth
// order, gesture state, and overlay of one spherical tile gallery. It
// implements ebiten.Game. All methods must be called from the game loop
// goroutine.
type Gallery struct {
	cfg   Config
	tiles []Tile

	rotation *RotationController
	depth    *DepthSorter
	overlay  *OverlayManager

	gesture      GestureState
	gestureCfg   GestureConfig
	touchPrimary bool

	haptics  Haptics
	images   ImageSource
	pointer  PointerTracker
	handlers handlerRegistry
	store    EventStore

	// Surface geometry
	width, height int
	radius        float64
	proj          []TileProjection
	projDirty     bool

	focus int
	hover int

	// Input state
	now          func() time.Time
	pollInput    bool
	pointers     [pointerSources]pointerState
	activeTouch  ebiten.TouchID
	touchActive  bool
	touchBuf     []ebiten.TouchID
	scrimPress   bool
	injectQueue  []syntheticEvent
	scriptRunner *ScriptRunner

	debug    bool
	debugOut io.Writer

	screenshotDir string
	captures      []string
	captureSeq    int

	render renderCache
}

// NewGallery creates a gallery laid out from cfg and the content pool.
// Zero-valued config fields take their defaults (see Config); an empty pool
// produces blank tiles.
func NewGallery(cfg Config, pool []ContentItem) *Gallery {
	cfg = cfg.normalize()
	tiles := BuildGrid(cfg.Segments, pool)

	g := &Gallery{
		cfg:          cfg,
		tiles:        tiles,
		rotation:     NewRotationController(cfg.MaxPitch, cfg.DragSensitivity, cfg.DragDampening, !cfg.DisableInertia),
		depth:        NewDepthSorter(tiles, cfg.Segments),
		overlay:      NewOverlayManager(cfg, nil, nil),
		gesture:      NewGestureState(),
		gestureCfg:   GestureConfig{HoldDuration: cfg.HoldDuration},
		touchPrimary: cfg.touchPrimary(),
		haptics:      EbitenHaptics{},
		proj:         make([]TileProjection, len(tiles)),
		projDirty:    true,
		focus:        NoTile,
		hover:        NoTile,
		now:          time.Now,
		pollInput:    true,
		debugOut:     os.Stderr,
	}
	g.rotation.OnChange(func(o Orientation) {
		g.depth.RequestRecompute(o.Yaw)
		g.projDirty = true
	})
	g.pointer.Subscribe(func(x, y float64) {
		if g.gesture.Phase == PhaseIdle {
			g.hover = g.TileAt(x, y)
		}
	})
	g.resize(1, 1)
	return g
}

// SetImageSource sets the resolver for preview and full content images.
func (g *Gallery) SetImageSource(src ImageSource) {
	g.images = src
	g.overlay.images = src
}

// SetEmbedProvider sets the factory for embedded content.
func (g *Gallery) SetEmbedProvider(p EmbedProvider) {
	g.overlay.embeds = p
}

// SetHaptics replaces the vibration backend. nil disables haptics.
func (g *Gallery) SetHaptics(h Haptics) {
	g.haptics = h
}

// SetClock replaces the time source used for gesture timing.
func (g *Gallery) SetClock(now func() time.Time) {
	if now != nil {
		g.now = now
	}
}

// SetInputPolling enables or disables reading real mouse, touch, and
// keyboard state. Injected input is processed either way.
func (g *Gallery) SetInputPolling(enabled bool) {
	g.pollInput = enabled
}

// Config returns the normalized configuration.
func (g *Gallery) Config() Config {
	return g.cfg
}

// Tiles returns the tile layout. The returned slice MUST NOT be mutated.
func (g *Gallery) Tiles() []Tile {
	return g.tiles
}

// Rotation returns the orientation controller.
func (g *Gallery) Rotation() *RotationController {
	return g.rotation
}

// Depth returns the depth sorter.
func (g *Gallery) Depth() *DepthSorter {
	return g.depth
}

// Overlay returns the overlay manager.
func (g *Gallery) Overlay() *OverlayManager {
	return g.overlay
}

// Pointer returns the gallery's pointer position observable.
func (g *Gallery) Pointer() *PointerTracker {
	return &g.pointer
}

// GestureState returns a copy of the current gesture state.
func (g *Gallery) GestureState() GestureState {
	return g.gesture
}

// TouchPrimary reports whether touches use the press-and-hold path.
func (g *Gallery) TouchPrimary() bool {
	return g.touchPrimary
}

// Orientation returns the current orientation.
func (g *Gallery) Orientation() Orientation {
	return g.rotation.Orientation()
}

// Radius returns the sphere radius derived from the surface size.
func (g *Gallery) Radius() float64 {
	return g.radius
}

// TileTransform returns the full view transform to apply to tile i's visual.
func (g *Gallery) TileTransform(i int) mgl64.Mat4 {
	return SphereTransform(g.radius, g.rotation.Orientation()).
		Mul4(TileTransform(g.tiles[i], g.cfg.Segments, g.radius))
}

// Projection returns the screen footprint of tile i.
func (g *Gallery) Projection(i int) TileProjection {
	g.ensureProjections()
	return g.proj[i]
}

// TileAt returns the topmost visible tile containing (x, y), or NoTile.
func (g *Gallery) TileAt(x, y float64) int {
	g.ensureProjections()
	seq := g.depth.DrawSequence()
	for i := len(seq) - 1; i >= 0; i-- {
		idx := seq[i]
		if g.tileHidden(idx) {
			continue
		}
		p := g.proj[idx]
		if p.Visible && p.Contains(x, y) {
			return idx
		}
	}
	return NoTile
}

// Focus returns the keyboard-focused tile, or NoTile.
func (g *Gallery) Focus() int {
	return g.focus
}

// SetFocus moves keyboard focus to tile i and turns the sphere to face it.
func (g *Gallery) SetFocus(i int) {
	if i < 0 || i >= len(g.tiles) {
		g.focus = NoTile
		return
	}
	g.focus = i
	t := g.tiles[i]
	g.rotation.SetOrientation(Orientation{
		Pitch: g.rotation.Orientation().Pitch,
		Yaw:   tileUnitAngle(g.cfg.Segments) * (float64(t.OffsetX) + float64(TileSize-1)/2),
	})
}

// Hover returns the tile under the idle pointer, or NoTile.
func (g *Gallery) Hover() int {
	return g.hover
}

// Open opens the overlay for tile i as if it had been activated.
func (g *Gallery) Open(i int) bool {
	return g.openTile(i)
}

// Close closes the open overlay.
func (g *Gallery) Close() bool {
	return g.closeOverlay()
}

// Update processes input, fires due timers, advances inertia and overlay
// animation, and runs the pending depth sort.
func (g *Gallery) Update() error {
	now := g.now()
	if g.scriptRunner != nil {
		g.scriptRunner.step(g)
	}
	// A due hold completes before this tick's release is seen.
	if g.gesture.holdPending() && !now.Before(g.gesture.HoldDeadline) {
		g.dispatch(GestureInput{Kind: InputHoldTimer, Tile: g.gesture.Tile, At: now})
	}
	if !g.processInjectedInput(now) && g.pollInput {
		g.pollEbitenInput(now)
	}
	g.rotation.Step()
	g.overlay.Update(float32(1.0 / float64(ebiten.TPS())))
	g.depth.OnFrame()
	return nil
}

// Layout reports the surface size and re-derives size-dependent geometry
// when it changed. Degenerate sizes are clamped to 1.
func (g *Gallery) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := max(1, outsideWidth), max(1, outsideHeight)
	if w != g.width || h != g.height {
		g.resize(w, h)
	}
	return w, h
}

func (g *Gallery) resize(w, h int) {
	g.width, g.height = w, h
	g.radius = DeriveRadius(w, h, g.cfg)
	g.overlay.Resize(Rect{Width: float64(w), Height: float64(h)})
	g.projDirty = true
	g.rotation.Reapply()
	g.debugf("resize %dx%d radius %.1f", w, h, g.radius)
}

func (g *Gallery) ensureProjections() {
	if !g.projDirty {
		return
	}
	pr := newProjector(g.radius, g.rotation.Orientation(), float64(g.width), float64(g.height))
	for i, t := range g.tiles {
		g.proj[i] = pr.project(t, g.cfg.Segments)
	}
	g.projDirty = false
}

// tileHidden reports whether tile i is lifted off the sphere by the overlay.
func (g *Gallery) tileHidden(i int) bool {
	if t, open := g.overlay.Tile(); open && t.Index == i {
		return true
	}
	return g.overlay.closing != nil && g.overlay.closing.tile.Index == i
}

// dispatch runs one gesture transition and applies its effects.
func (g *Gallery) dispatch(in GestureInput) {
	switch in.Kind {
	case InputPointerUp, InputTouchEnd, InputKeyActivate:
		in.TapSuppressed = g.rotation.TapSuppressed(in.At)
	}

	prev := g.gesture
	next, fx := Transition(prev, in, g.gestureCfg)
	g.gesture = next

	if !fx.ArmHold.IsZero() {
		g.debugf("hold armed for tile %d", next.Tile)
	}
	if fx.CancelHold {
		g.debugf("hold cancelled")
	}
	if fx.BeginDrag {
		g.rotation.BeginDrag()
	}
	if fx.UpdateDrag {
		g.rotation.UpdateDrag(fx.DX, fx.DY)
	}
	if !prev.Moved && next.Moved {
		g.emit(EventDragStart, next.Tile)
	}
	if fx.EndDrag {
		moved := g.rotation.Dragging() && g.rotation.Moved()
		g.rotation.EndDrag(in.At)
		if moved {
			g.emit(EventDragEnd, NoTile)
		}
	}
	if !prev.HoldCompleted && next.HoldCompleted {
		g.debugf("hold completed on tile %d", next.Tile)
		g.emit(EventHoldComplete, next.Tile)
	}

	if fx.Open != NoTile {
		if g.openTile(fx.Open) {
			g.pulse(fx.Pulse)
		}
		return
	}
	g.pulse(fx.Pulse)
}

// openTile opens the overlay for tile i. Tiles without content are no-ops.
func (g *Gallery) openTile(i int) bool {
	if i < 0 || i >= len(g.tiles) {
		return false
	}
	t := g.tiles[i]
	if t.Content.IsEmpty() {
		g.debugf("open tile %d ignored: no content", i)
		return false
	}
	var origin Rect
	if p := g.Projection(i); p.Visible {
		origin = p.Bounds()
	}
	if !g.overlay.Open(t, origin) {
		return false
	}
	g.dispatch(GestureInput{Kind: InputDisable, Tile: NoTile, At: g.now()})
	g.debugf("opened tile %d (%s)", i, t.Content.Kind)
	g.fireOpened(t)
	return true
}

func (g *Gallery) closeOverlay() bool {
	t, open := g.overlay.Tile()
	if !open || !g.overlay.Close() {
		return false
	}
	g.scrimPress = false
	g.dispatch(GestureInput{Kind: InputEnable, Tile: NoTile, At: g.now()})
	g.debugf("closed tile %d", t.Index)
	g.fireClosed(t.Index)
	return true
}
