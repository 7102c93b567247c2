package dome

import (
	"slices"
	"testing"
	"time"
)

const frameStep = 16 * time.Millisecond

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

type fakeHaptics struct {
	pulses []time.Duration
}

func (h *fakeHaptics) Vibrate(d time.Duration) {
	h.pulses = append(h.pulses, d)
}

type panicHaptics struct{}

func (panicHaptics) Vibrate(time.Duration) { panic("no vibrator") }

type testGallery struct {
	*Gallery
	clock   *fakeClock
	haptics *fakeHaptics
}

var testPool = []ContentItem{
	{PreviewRef: "a.png", AltText: "A"},
	{PreviewRef: "b.png", FullRef: "b-full.png", AltText: "B"},
	{PreviewRef: "c.png", Kind: KindEmbedded},
}

func newTestGallery(t *testing.T, touch bool, pool []ContentItem, mutate ...func(*Config)) *testGallery {
	t.Helper()
	cfg := DefaultConfig()
	cfg.TouchPrimary = &touch
	cfg.DisableInertia = true
	for _, m := range mutate {
		m(&cfg)
	}
	g := NewGallery(cfg, pool)
	tg := &testGallery{
		Gallery: g,
		clock:   &fakeClock{now: time.Unix(1000, 0)},
		haptics: &fakeHaptics{},
	}
	g.SetClock(tg.clock.Now)
	g.SetHaptics(tg.haptics)
	g.SetInputPolling(false)
	g.Layout(800, 600)
	return tg
}

// step runs n frames, advancing the clock after each.
func (tg *testGallery) step(n int) {
	for i := 0; i < n; i++ {
		if err := tg.Update(); err != nil {
			panic(err)
		}
		tg.clock.now = tg.clock.now.Add(frameStep)
	}
}

// drain runs frames until the inject queue is empty.
func (tg *testGallery) drain() {
	for len(tg.injectQueue) > 0 {
		tg.step(1)
	}
}

// frontTile returns the visible tile nearest the viewer and its center.
func (tg *testGallery) frontTile(t *testing.T) (int, Vec2) {
	t.Helper()
	best, bestDepth := NoTile, 0.0
	for i := range tg.Tiles() {
		p := tg.Projection(i)
		if p.Visible && (best == NoTile || p.Depth > bestDepth) {
			best, bestDepth = i, p.Depth
		}
	}
	if best == NoTile {
		t.Fatal("no visible tile")
	}
	return best, tg.Projection(best).Center
}

func TestGalleryClickOpensAndScrimCloses(t *testing.T) {
	tg := newTestGallery(t, false, testPool)
	var opened []int
	var closed int
	tg.OnContentOpened(func(tl Tile) { opened = append(opened, tl.Index) })
	tg.OnContentClosed(func() { closed++ })

	idx, c := tg.frontTile(t)
	if got := tg.TileAt(c.X, c.Y); got != idx {
		t.Fatalf("TileAt(front center) = %d, want %d", got, idx)
	}

	tg.InjectClick(c.X, c.Y)
	tg.drain()

	if !slices.Equal(opened, []int{idx}) {
		t.Fatalf("opened = %v, want [%d]", opened, idx)
	}
	if tl, open := tg.Overlay().Tile(); !open || tl.Index != idx {
		t.Fatalf("overlay tile = %d open=%v", tl.Index, open)
	}
	if tg.GestureState().Phase != PhaseDisabled {
		t.Errorf("phase = %v, want disabled while open", tg.GestureState().Phase)
	}
	if !slices.Equal(tg.haptics.pulses, []time.Duration{PulseOpen.Duration()}) {
		t.Errorf("pulses = %v, want only the open pulse", tg.haptics.pulses)
	}
	if got := tg.TileAt(c.X, c.Y); got == idx {
		t.Error("open tile should not be hit-testable")
	}

	// Clicks inside the panel are ignored; the sphere does not move.
	before := tg.Orientation()
	tg.InjectDrag(400, 300, 450, 300, 4)
	tg.drain()
	if tg.Orientation() != before || len(opened) != 1 {
		t.Error("input reached the sphere while the overlay was open")
	}
	if closed != 0 {
		t.Fatal("click inside the panel closed the overlay")
	}

	tg.InjectClick(5, 5)
	tg.drain()
	if closed != 1 {
		t.Fatalf("closed = %d, want 1", closed)
	}
	if tg.Overlay().IsOpen() {
		t.Error("overlay still open")
	}
	if tg.GestureState().Phase != PhaseIdle {
		t.Errorf("phase = %v, want idle after close", tg.GestureState().Phase)
	}
}

func TestGalleryDragRotatesWithoutOpening(t *testing.T) {
	tg := newTestGallery(t, false, testPool)
	var opened int
	tg.OnContentOpened(func(Tile) { opened++ })

	_, c := tg.frontTile(t)
	recomputes := tg.Depth().Recomputes()
	tg.InjectDrag(c.X, c.Y, c.X+180, c.Y, 6)
	tg.drain()

	if opened != 0 {
		t.Error("drag opened a tile")
	}
	if got := tg.Orientation().Yaw; got < 9.99 || got > 10.01 {
		t.Errorf("Yaw = %v, want 10 after a 180px drag", got)
	}
	if tg.Depth().Recomputes() <= recomputes {
		t.Error("depth order not recomputed after rotation")
	}
	if tg.Depth().Yaw() != tg.Orientation().Yaw {
		t.Errorf("depth yaw %v lags orientation %v", tg.Depth().Yaw(), tg.Orientation().Yaw)
	}
}

func TestGalleryTapSuppressedAfterDrag(t *testing.T) {
	tg := newTestGallery(t, false, testPool)
	var opened int
	tg.OnContentOpened(func(Tile) { opened++ })

	_, c := tg.frontTile(t)
	tg.InjectDrag(c.X, c.Y, c.X+100, c.Y, 4)
	tg.drain()

	// Within 100ms of the drag end.
	_, c = tg.frontTile(t)
	tg.InjectClick(c.X, c.Y)
	tg.drain()
	if opened != 0 {
		t.Fatal("click right after a drag should be suppressed")
	}

	tg.step(10)
	tg.InjectClick(c.X, c.Y)
	tg.drain()
	if opened != 1 {
		t.Errorf("click after the suppression window should open, opened = %d", opened)
	}
}

func TestGalleryEmptyTileDoesNotOpen(t *testing.T) {
	tg := newTestGallery(t, false, nil)
	var opened int
	tg.OnContentOpened(func(Tile) { opened++ })

	_, c := tg.frontTile(t)
	tg.InjectClick(c.X, c.Y)
	tg.drain()

	if opened != 0 || tg.Overlay().IsOpen() {
		t.Error("empty tile opened an overlay")
	}
	if len(tg.haptics.pulses) != 0 {
		t.Errorf("pulses = %v, want none", tg.haptics.pulses)
	}
	if tg.GestureState().Phase != PhaseIdle {
		t.Errorf("phase = %v, want idle", tg.GestureState().Phase)
	}
}

func TestGalleryTouchHoldOpens(t *testing.T) {
	tg := newTestGallery(t, true, testPool)
	var opened []int
	tg.OnContentOpened(func(tl Tile) { opened = append(opened, tl.Index) })

	idx, c := tg.frontTile(t)
	tg.InjectTouchStart(c.X, c.Y)
	tg.step(1)
	if tg.GestureState().Phase != PhasePressHolding {
		t.Fatalf("phase = %v, want press-holding", tg.GestureState().Phase)
	}

	// 500ms at 16ms per frame.
	tg.step(33)
	if !tg.GestureState().HoldCompleted {
		t.Fatal("hold should complete after the hold duration")
	}
	if len(opened) != 0 {
		t.Fatal("hold should not open before release")
	}

	tg.InjectTouchEnd(c.X, c.Y)
	tg.drain()
	if !slices.Equal(opened, []int{idx}) {
		t.Fatalf("opened = %v, want [%d]", opened, idx)
	}
	want := []time.Duration{PulseStrong.Duration(), PulseOpen.Duration()}
	if !slices.Equal(tg.haptics.pulses, want) {
		t.Errorf("pulses = %v, want %v (no light pulse before first interaction)", tg.haptics.pulses, want)
	}

	// Second interaction gets the light pulse too.
	tg.Close()
	tg.haptics.pulses = nil
	tg.InjectTouchStart(c.X, c.Y)
	tg.step(1)
	if len(tg.haptics.pulses) != 1 || tg.haptics.pulses[0] != PulseLight.Duration() {
		t.Errorf("pulses = %v, want light pulse", tg.haptics.pulses)
	}
}

func TestGalleryTouchReleaseAtHoldDeadline(t *testing.T) {
	tests := []struct {
		name    string
		release time.Duration
	}{
		{"exactly at deadline", 500 * time.Millisecond},
		{"first tick past deadline", 506 * time.Millisecond},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tg := newTestGallery(t, true, testPool)
			var opened []int
			tg.OnContentOpened(func(tl Tile) { opened = append(opened, tl.Index) })

			idx, c := tg.frontTile(t)
			t0 := tg.clock.now
			tg.InjectTouchStart(c.X, c.Y)
			tg.Update()

			tg.clock.now = t0.Add(490 * time.Millisecond)
			tg.Update()
			if tg.GestureState().HoldCompleted {
				t.Fatal("hold completed before the deadline")
			}

			tg.clock.now = t0.Add(tt.release)
			tg.InjectTouchEnd(c.X, c.Y)
			tg.Update()

			if !slices.Equal(opened, []int{idx}) {
				t.Fatalf("opened = %v, want [%d]", opened, idx)
			}
			want := []time.Duration{PulseStrong.Duration(), PulseOpen.Duration()}
			if !slices.Equal(tg.haptics.pulses, want) {
				t.Errorf("pulses = %v, want %v", tg.haptics.pulses, want)
			}
		})
	}
}

func TestGalleryTouchQuickTapDoesNotOpen(t *testing.T) {
	tg := newTestGallery(t, true, testPool)
	var opened int
	tg.OnContentOpened(func(Tile) { opened++ })

	_, c := tg.frontTile(t)
	tg.InjectTouchStart(c.X, c.Y)
	tg.InjectTouchEnd(c.X, c.Y)
	tg.drain()
	tg.step(60)

	if opened != 0 {
		t.Error("quick tap opened on a touch-primary device")
	}
	if tg.GestureState().holdPending() {
		t.Error("hold timer left armed after release")
	}
}

func TestGalleryTouchDragCancelsHold(t *testing.T) {
	tg := newTestGallery(t, true, testPool)
	var opened int
	tg.OnContentOpened(func(Tile) { opened++ })

	_, c := tg.frontTile(t)
	tg.InjectTouchStart(c.X, c.Y)
	tg.InjectTouchMove(c.X+30, c.Y)
	tg.drain()
	tg.step(40)
	tg.InjectTouchEnd(c.X+30, c.Y)
	tg.drain()

	if opened != 0 {
		t.Error("moved touch opened a tile")
	}
	if tg.Orientation().Yaw == 0 {
		t.Error("touch drag should rotate the sphere")
	}
}

func TestGalleryTouchCancel(t *testing.T) {
	tg := newTestGallery(t, true, testPool)
	var opened int
	tg.OnContentOpened(func(Tile) { opened++ })

	_, c := tg.frontTile(t)
	tg.InjectTouchStart(c.X, c.Y)
	tg.drain()
	tg.step(40)
	tg.InjectTouchCancel()
	tg.InjectTouchEnd(c.X, c.Y)
	tg.drain()

	if opened != 0 {
		t.Error("cancelled touch opened a tile")
	}
	if tg.GestureState().Phase != PhaseIdle {
		t.Errorf("phase = %v, want idle", tg.GestureState().Phase)
	}
}

func TestGalleryTouchOnPointerDeviceActsAsClick(t *testing.T) {
	tg := newTestGallery(t, false, testPool)
	var opened int
	tg.OnContentOpened(func(Tile) { opened++ })

	_, c := tg.frontTile(t)
	tg.InjectTouchStart(c.X, c.Y)
	tg.InjectTouchEnd(c.X, c.Y)
	tg.drain()

	if opened != 1 {
		t.Errorf("touch on a pointer-primary device should open like a click, opened = %d", opened)
	}
}

func TestGalleryKeyboard(t *testing.T) {
	tg := newTestGallery(t, false, testPool)
	var opened []int
	var closed int
	tg.OnContentOpened(func(tl Tile) { opened = append(opened, tl.Index) })
	tg.OnContentClosed(func() { closed++ })

	tg.InjectKey(KeyActivate)
	tg.drain()
	if len(opened) != 0 {
		t.Fatal("activate without focus opened a tile")
	}

	tg.InjectKey(KeyFocusNext)
	tg.InjectKey(KeyFocusNext)
	tg.InjectKey(KeyFocusPrev)
	tg.drain()
	if tg.Focus() != 0 {
		t.Fatalf("focus = %d, want 0", tg.Focus())
	}
	p := tg.Projection(0)
	if !p.Visible || p.Center.X < 399 || p.Center.X > 401 {
		t.Errorf("focused tile should be turned to face the viewer, center %+v", p.Center)
	}

	tg.InjectKey(KeyActivate)
	tg.drain()
	if !slices.Equal(opened, []int{0}) {
		t.Fatalf("opened = %v, want [0]", opened)
	}

	tg.InjectKey(KeyClose)
	tg.drain()
	if closed != 1 || tg.Overlay().IsOpen() {
		t.Error("escape should close the overlay")
	}

	tg.SetFocus(0)
	tg.InjectKey(KeyFocusPrev)
	tg.drain()
	if tg.Focus() != len(tg.Tiles())-1 {
		t.Errorf("focus should wrap backward, got %d", tg.Focus())
	}
}

func TestGalleryReentrantOpenIgnored(t *testing.T) {
	tg := newTestGallery(t, false, testPool)
	var opened int
	tg.OnContentOpened(func(Tile) { opened++ })

	if !tg.Open(0) {
		t.Fatal("Open(0) failed")
	}
	if tg.Open(1) {
		t.Error("second Open should be ignored while one is open")
	}
	if opened != 1 {
		t.Errorf("opened = %d, want 1", opened)
	}
	if tg.Open(-1) || tg.Open(len(tg.Tiles())) {
		t.Error("out of range Open should fail")
	}
}

func TestGalleryCallbackRemove(t *testing.T) {
	tg := newTestGallery(t, false, testPool)
	var opened int
	h := tg.OnContentOpened(func(Tile) { opened++ })
	h.Remove()

	tg.Open(0)
	if opened != 0 {
		t.Error("removed callback still fired")
	}
}

func TestGalleryHapticsFailureIsSilent(t *testing.T) {
	tg := newTestGallery(t, false, testPool)
	tg.SetHaptics(panicHaptics{})

	_, c := tg.frontTile(t)
	tg.InjectClick(c.X, c.Y)
	tg.drain()
	if !tg.Overlay().IsOpen() {
		t.Error("haptics failure should not block opening")
	}
}

func TestGalleryLayout(t *testing.T) {
	tg := newTestGallery(t, false, testPool)
	if tg.Radius() != 400 {
		t.Errorf("Radius = %v, want 400 at 800x600", tg.Radius())
	}

	w, h := tg.Layout(0, -5)
	if w != 1 || h != 1 {
		t.Errorf("Layout(0, -5) = %d, %d; want 1, 1", w, h)
	}
	if tg.Radius() != DefaultMinRadius {
		t.Errorf("Radius = %v, want minimum", tg.Radius())
	}

	tg.Layout(800, 600)
	o := tg.Orientation()
	before := tg.Projection(5)
	tg.Layout(800, 600)
	if tg.Orientation() != o || tg.Projection(5) != before {
		t.Error("re-layout with the same size should be idempotent")
	}
}

func TestGalleryDepthRecomputeOncePerFrame(t *testing.T) {
	tg := newTestGallery(t, false, testPool)
	tg.step(1)
	base := tg.Depth().Recomputes()

	for i := 0; i < 5; i++ {
		tg.Rotation().SetOrientation(Orientation{Yaw: float64(i * 10)})
	}
	tg.step(1)
	if got := tg.Depth().Recomputes() - base; got != 1 {
		t.Errorf("recomputes in one frame = %d, want 1", got)
	}
	if tg.Depth().Yaw() != 40 {
		t.Errorf("depth yaw = %v, want latest 40", tg.Depth().Yaw())
	}
}

func TestGalleryPointerTracker(t *testing.T) {
	tg := newTestGallery(t, false, testPool)
	var seen []Vec2
	h := tg.Pointer().Subscribe(func(x, y float64) { seen = append(seen, Vec2{x, y}) })

	tg.InjectPress(10, 20)
	tg.InjectMove(30, 40)
	tg.InjectMove(30, 40)
	tg.InjectRelease(30, 40)
	tg.drain()

	want := []Vec2{{10, 20}, {30, 40}}
	if !slices.Equal(seen, want) {
		t.Errorf("positions = %v, want %v", seen, want)
	}
	if x, y, ok := tg.Pointer().Position(); !ok || x != 30 || y != 40 {
		t.Errorf("Position = %v, %v, %v", x, y, ok)
	}

	h.Remove()
	tg.InjectPress(50, 50)
	tg.drain()
	if len(seen) != 2 {
		t.Error("removed subscriber still notified")
	}
}

func TestGalleryHover(t *testing.T) {
	tg := newTestGallery(t, false, testPool)
	idx, c := tg.frontTile(t)
	tg.InjectRelease(c.X, c.Y)
	tg.drain()
	if tg.Hover() != idx {
		t.Errorf("Hover = %d, want %d", tg.Hover(), idx)
	}
}

type recordingStore struct {
	events []GalleryEvent
}

func (s *recordingStore) EmitEvent(e GalleryEvent) {
	s.events = append(s.events, e)
}

func TestGalleryEventStore(t *testing.T) {
	tg := newTestGallery(t, true, testPool)
	store := &recordingStore{}
	tg.SetEventStore(store)

	_, c := tg.frontTile(t)
	tg.InjectTouchDrag(c.X, c.Y, c.X+90, c.Y, 4)
	tg.drain()

	idx, c := tg.frontTile(t)
	tg.step(10)
	tg.InjectTouchStart(c.X, c.Y)
	tg.drain()
	tg.step(40)
	tg.InjectTouchEnd(c.X, c.Y)
	tg.drain()
	tg.Close()

	var types []EventType
	for _, e := range store.events {
		types = append(types, e.Type)
	}
	want := []EventType{EventDragStart, EventDragEnd, EventHoldComplete, EventContentOpened, EventContentClosed}
	if !slices.Equal(types, want) {
		t.Fatalf("events = %v, want %v", types, want)
	}
	opened := store.events[3]
	if opened.Tile != idx || opened.Content != tg.Tiles()[idx].Content {
		t.Errorf("opened event = %+v", opened)
	}
}
