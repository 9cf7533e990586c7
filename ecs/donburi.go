// Package ecs provides ECS adapters for aevum.
package ecs

import (
	"github.com/phanxgames/aevum"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// AnimationEventType is the Donburi event type for aevum animation events.
// Subscribe to this in your ECS systems to react to reveals, entrances, and
// scrub timeline state changes.
var AnimationEventType = events.NewEventType[aevum.AnimationEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Animation
// events are published to AnimationEventType and can be consumed with
// events.Subscribe and ProcessEvents. Pass it to aevum.NewEngine with
// aevum.WithEventSink.
func NewDonburiSink(world donburi.World) aevum.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitAnimationEvent(event aevum.AnimationEvent) {
	AnimationEventType.Publish(s.world, event)
}
