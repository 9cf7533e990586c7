// Package ecs provides ECS adapters for aevum's animation event stream.
//
// The primary adapter is [NewDonburiSink], which bridges aevum animation
// events (reveal scheduled, started, completed, and reset; entrance started
// and completed; scrub timeline state changes) into a [Donburi] world as
// typed events. Subscribe to [AnimationEventType] in your ECS systems to
// receive them. Set [aevum.Node.EntityID] on animated nodes to correlate
// events with entities.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	engine, err := aevum.NewEngine(scene, aevum.WithEventSink(sink))
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
