package ecs

import (
	"github.com/phanxgames/dome"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// GalleryEventType is the Donburi event type for gallery lifecycle events.
// Subscribe to this in your ECS systems to receive open, close, drag, and
// hold events.
var GalleryEventType = events.NewEventType[dome.GalleryEvent]()

type donburiStore struct {
	world donburi.World
}

var _ dome.EventStore = (*donburiStore)(nil)

// NewDonburiStore creates an EventStore backed by a Donburi world.
// Gallery events are published to GalleryEventType and can be consumed
// with events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) dome.EventStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event dome.GalleryEvent) {
	GalleryEventType.Publish(s.world, event)
}
