package dome

// EventType identifies a gallery lifecycle event.
type EventType uint8

const (
	EventContentOpened EventType = iota // an overlay opened for a tile
	EventContentClosed                  // the overlay closed
	EventDragStart                      // a drag exceeded the movement threshold
	EventDragEnd                        // a moved drag was released
	EventHoldComplete                   // a touch press-and-hold completed
	EventPointerMove                    // the ambient pointer position changed
)

// GalleryEvent carries lifecycle data for the optional EventStore bridge.
type GalleryEvent struct {
	Type        EventType
	Tile        int // NoTile when not tile-specific
	Content     ContentItem
	Orientation Orientation
}

// EventStore receives gallery events, e.g. to forward them into an ECS.
type EventStore interface {
	EmitEvent(event GalleryEvent)
}

// --- Handler registry ---

type tileHandler struct {
	id uint32
	fn func(Tile)
}

type closeHandler struct {
	id uint32
	fn func()
}

type pointerHandler struct {
	id uint32
	fn func(x, y float64)
}

type handlerRegistry struct {
	opened  []tileHandler
	closed  []closeHandler
	pointer []pointerHandler
	nextID  uint32
}

// CallbackHandle allows removing a registered callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.event {
	case EventContentOpened:
		h.reg.opened = removeHandler(h.reg.opened, func(e tileHandler) bool { return e.id == h.id })
	case EventContentClosed:
		h.reg.closed = removeHandler(h.reg.closed, func(e closeHandler) bool { return e.id == h.id })
	case EventPointerMove:
		h.reg.pointer = removeHandler(h.reg.pointer, func(e pointerHandler) bool { return e.id == h.id })
	}
}

func removeHandler[T any](s []T, match func(T) bool) []T {
	for i := range s {
		if match(s[i]) {
			var zero T
			copy(s[i:], s[i+1:])
			s[len(s)-1] = zero
			return s[:len(s)-1]
		}
	}
	return s
}

// OnContentOpened registers fn to run after an overlay opens for a tile.
func (g *Gallery) OnContentOpened(fn func(Tile)) CallbackHandle {
	g.handlers.nextID++
	id := g.handlers.nextID
	g.handlers.opened = append(g.handlers.opened, tileHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &g.handlers, event: EventContentOpened}
}

// OnContentClosed registers fn to run after the overlay closes.
func (g *Gallery) OnContentClosed(fn func()) CallbackHandle {
	g.handlers.nextID++
	id := g.handlers.nextID
	g.handlers.closed = append(g.handlers.closed, closeHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &g.handlers, event: EventContentClosed}
}

// SetEventStore sets the optional event bridge.
func (g *Gallery) SetEventStore(store EventStore) {
	g.store = store
}

func (g *Gallery) fireOpened(t Tile) {
	for _, h := range g.handlers.opened {
		h.fn(t)
	}
	g.emit(EventContentOpened, t.Index)
}

func (g *Gallery) fireClosed(tile int) {
	for _, h := range g.handlers.closed {
		h.fn()
	}
	g.emit(EventContentClosed, tile)
}

func (g *Gallery) emit(eventType EventType, tile int) {
	if g.store == nil {
		return
	}
	ev := GalleryEvent{
		Type:        eventType,
		Tile:        tile,
		Orientation: g.rotation.Orientation(),
	}
	if tile >= 0 && tile < len(g.tiles) {
		ev.Content = g.tiles[tile].Content
	}
	g.store.EmitEvent(ev)
}
