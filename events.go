package aevum

import "time"

// AnimationEventType identifies an engine event.
type AnimationEventType uint8

const (
	EventRevealScheduled   AnimationEventType = iota // member became visible; playback queued with its stagger delay
	EventRevealStarted                               // member's delay elapsed; values are being written
	EventRevealCompleted                             // member reached its final style
	EventRevealReset                                 // repeatable member left the viewport and snapped back
	EventTimelineState                               // scrub timeline changed state
	EventEntranceStarted                             // entrance transition began
	EventEntranceCompleted                           // entrance transition finished
)

func (t AnimationEventType) String() string {
	switch t {
	case EventRevealScheduled:
		return "reveal-scheduled"
	case EventRevealStarted:
		return "reveal-started"
	case EventRevealCompleted:
		return "reveal-completed"
	case EventRevealReset:
		return "reveal-reset"
	case EventTimelineState:
		return "timeline-state"
	case EventEntranceStarted:
		return "entrance-started"
	case EventEntranceCompleted:
		return "entrance-completed"
	}
	return "unknown"
}

// AnimationEvent carries engine event data to an EventSink.
type AnimationEvent struct {
	Type     AnimationEventType
	Node     *Node
	EntityID uint32
	// Index is the member's position in its reveal group.
	Index int
	// Delay is the stagger delay for reveal events, the start delay for
	// entrance events.
	Delay time.Duration
	// State and Progress are set for EventTimelineState.
	State    TimelineState
	Progress float64
}

// EventSink receives animation events, for example to bridge them into an
// ECS world. Events are delivered synchronously on the frame goroutine.
type EventSink interface {
	EmitAnimationEvent(event AnimationEvent)
}

// EventSinkFunc adapts a function to EventSink.
type EventSinkFunc func(AnimationEvent)

// EmitAnimationEvent calls f(event).
func (f EventSinkFunc) EmitAnimationEvent(event AnimationEvent) { f(event) }

func (e *Engine) emit(ev AnimationEvent) {
	if e.sink == nil {
		return
	}
	if ev.Node != nil {
		ev.EntityID = ev.Node.EntityID
	}
	e.sink.EmitAnimationEvent(ev)
}
