// Package ecs provides ECS adapters for qraft scenes.
//
// [NewDonburiStore] bridges per-frame render results into a [Donburi] world
// as typed events; subscribe to [FrameEventType] in your ECS systems to
// receive them. [SpinnerComponent] and [UpdateSpinners] drive scene node
// rotation from ECS entities.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	scene.SetEntityStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
