package ecs

import (
	"testing"

	"github.com/phanxgames/dome"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func TestNewDonburiStore(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)
	if store == nil {
		t.Fatal("NewDonburiStore returned nil")
	}
}

func TestDonburiStore_EmitEvent(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var received []dome.GalleryEvent
	GalleryEventType.Subscribe(world, func(w donburi.World, e dome.GalleryEvent) {
		received = append(received, e)
	})

	store.EmitEvent(dome.GalleryEvent{
		Type:        dome.EventContentOpened,
		Tile:        42,
		Content:     dome.ContentItem{PreviewRef: "a.png"},
		Orientation: dome.Orientation{Pitch: 5, Yaw: -30},
	})
	store.EmitEvent(dome.GalleryEvent{Type: dome.EventDragEnd, Tile: dome.NoTile})

	// Events are queued until processed.
	GalleryEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}

	e0 := received[0]
	if e0.Type != dome.EventContentOpened || e0.Tile != 42 {
		t.Errorf("event 0: %+v", e0)
	}
	if e0.Content.PreviewRef != "a.png" || e0.Orientation.Yaw != -30 {
		t.Errorf("event 0 payload: %+v", e0)
	}
	if received[1].Type != dome.EventDragEnd || received[1].Tile != dome.NoTile {
		t.Errorf("event 1: %+v", received[1])
	}
}

func TestDonburiStore_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var count1, count2 int
	GalleryEventType.Subscribe(world, func(w donburi.World, e dome.GalleryEvent) {
		count1++
	})
	GalleryEventType.Subscribe(world, func(w donburi.World, e dome.GalleryEvent) {
		count2++
	})

	store.EmitEvent(dome.GalleryEvent{Type: dome.EventHoldComplete})
	events.ProcessAllEvents(world)

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both subscribers called once, got %d and %d", count1, count2)
	}
}

func TestDonburiStore_GalleryLifecycle(t *testing.T) {
	world := donburi.NewWorld()
	g := dome.NewGallery(dome.DefaultConfig(), []dome.ContentItem{
		{PreviewRef: "a.png", AltText: "A"},
	})
	g.SetEventStore(NewDonburiStore(world))
	g.Layout(800, 600)

	var types []dome.EventType
	GalleryEventType.Subscribe(world, func(w donburi.World, e dome.GalleryEvent) {
		types = append(types, e.Type)
	})

	if !g.Open(3) {
		t.Fatal("Open(3) = false")
	}
	if !g.Close() {
		t.Fatal("Close() = false")
	}
	GalleryEventType.ProcessEvents(world)

	if len(types) != 2 || types[0] != dome.EventContentOpened || types[1] != dome.EventContentClosed {
		t.Errorf("events = %v, want [opened closed]", types)
	}
}
