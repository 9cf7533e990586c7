package ecs

import (
	"os"
	"testing"
	"time"

	"github.com/phanxgames/aevum"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func TestMain(m *testing.M) {
	aevum.Init(aevum.InitConfig{})
	os.Exit(m.Run())
}

func TestNewDonburiSink(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)
	if sink == nil {
		t.Fatal("NewDonburiSink returned nil")
	}
}

func TestDonburiSink_EmitAnimationEvent(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var received []aevum.AnimationEvent
	AnimationEventType.Subscribe(world, func(w donburi.World, e aevum.AnimationEvent) {
		received = append(received, e)
	})

	sink.EmitAnimationEvent(aevum.AnimationEvent{
		Type:     aevum.EventRevealScheduled,
		EntityID: 42,
		Index:    2,
		Delay:    200 * time.Millisecond,
	})
	sink.EmitAnimationEvent(aevum.AnimationEvent{
		Type:     aevum.EventTimelineState,
		State:    aevum.TimelineSettled,
		Progress: 1,
	})

	// Events are queued; process them.
	AnimationEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}

	e0 := received[0]
	if e0.Type != aevum.EventRevealScheduled || e0.EntityID != 42 {
		t.Errorf("event 0: %+v", e0)
	}
	if e0.Index != 2 || e0.Delay != 200*time.Millisecond {
		t.Errorf("event 0 stagger: index %d delay %v", e0.Index, e0.Delay)
	}

	e1 := received[1]
	if e1.Type != aevum.EventTimelineState || e1.State != aevum.TimelineSettled {
		t.Errorf("event 1: %+v", e1)
	}
}

func TestDonburiSink_ImplementsEventSink(t *testing.T) {
	world := donburi.NewWorld()
	var sink aevum.EventSink = NewDonburiSink(world)
	_ = sink // compile-time interface check
}

func TestDonburiSink_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var count1, count2 int
	AnimationEventType.Subscribe(world, func(w donburi.World, e aevum.AnimationEvent) {
		count1++
	})
	AnimationEventType.Subscribe(world, func(w donburi.World, e aevum.AnimationEvent) {
		count2++
	})

	sink.EmitAnimationEvent(aevum.AnimationEvent{Type: aevum.EventEntranceStarted})
	events.ProcessAllEvents(world)

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both subscribers called once, got %d and %d", count1, count2)
	}
}

func TestDonburiSink_EngineEntrance(t *testing.T) {
	world := donburi.NewWorld()
	scene := aevum.NewScene(800, 600)
	box := aevum.NewRect("box", 100, 100, aevum.ColorWhite)
	box.EntityID = 7
	scene.Root().AddChild(box)

	engine, err := aevum.NewEngine(scene, aevum.WithEventSink(NewDonburiSink(world)))
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	var types []aevum.AnimationEventType
	AnimationEventType.Subscribe(world, func(w donburi.World, e aevum.AnimationEvent) {
		if e.EntityID != 7 {
			t.Errorf("EntityID = %d, want 7", e.EntityID)
		}
		types = append(types, e.Type)
	})

	sub, err := engine.PlayEntrance(aevum.Entrance{
		Target: aevum.AnimationTarget{
			Node:    box,
			Initial: aevum.Style{aevum.PropAlpha: 0},
			Final:   aevum.Style{aevum.PropAlpha: 1},
		},
		Duration: 100 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("PlayEntrance: %v", err)
	}
	defer sub.Dispose()

	for i := 0; i < 10; i++ {
		if err := scene.Tick(1.0 / 60); err != nil {
			t.Fatal(err)
		}
	}
	AnimationEventType.ProcessEvents(world)

	if len(types) != 2 || types[0] != aevum.EventEntranceStarted || types[1] != aevum.EventEntranceCompleted {
		t.Errorf("events = %v, want [entrance-started entrance-completed]", types)
	}
	if box.Alpha != 1 {
		t.Errorf("box alpha = %v, want 1", box.Alpha)
	}
}
