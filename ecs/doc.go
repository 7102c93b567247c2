// Package ecs provides ECS adapters for dome's gallery event system.
//
// The primary adapter is [NewDonburiStore], which bridges gallery lifecycle
// events (content opened and closed, drag start and end, hold complete) into
// a [Donburi] world as typed events. Subscribe to [GalleryEventType] in your
// ECS systems to receive them.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	gallery.SetEventStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
