// Package ecs bridges platformer world events into a [Donburi] world.
//
// [NewDonburiStore] publishes every platformer.Event to [GameEventType] and
// keeps a per-run tally in a [Run] component that ECS systems can query.
//
// Usage:
//
//	store := ecs.NewDonburiStore(ecsWorld)
//	world.SetEntityStore(store)
//	// each frame, after world.Update:
//	store.Flush()
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
