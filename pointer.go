package dome

// PointerTracker is an observable of the ambient pointer position. Each
// Gallery owns one; pass it to whichever collaborator needs the position
// (for example a cursor follower) instead of sharing a global.
type PointerTracker struct {
	x, y  float64
	known bool
	reg   handlerRegistry
}

// Position returns the last known pointer position. ok is false until the
// pointer has been seen.
func (p *PointerTracker) Position() (x, y float64, ok bool) {
	return p.x, p.y, p.known
}

// Subscribe registers fn to run whenever the pointer position changes.
func (p *PointerTracker) Subscribe(fn func(x, y float64)) CallbackHandle {
	p.reg.nextID++
	id := p.reg.nextID
	p.reg.pointer = append(p.reg.pointer, pointerHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &p.reg, event: EventPointerMove}
}

// set records a new position and notifies subscribers when it changed.
func (p *PointerTracker) set(x, y float64) {
	if p.known && p.x == x && p.y == y {
		return
	}
	p.x, p.y, p.known = x, y, true
	for _, h := range p.reg.pointer {
		h.fn(x, y)
	}
}
