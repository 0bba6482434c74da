package ecs

import (
	"math"
	"testing"

	"github.com/phanxgames/qraft"

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

	var received []qraft.FrameEvent
	FrameEventType.Subscribe(world, func(w donburi.World, e qraft.FrameEvent) {
		received = append(received, e)
	})

	store.EmitEvent(qraft.FrameEvent{Frame: 1, Stats: qraft.FrameStats{Instances: 2, Drawn: 5}})
	store.EmitEvent(qraft.FrameEvent{Frame: 2, Stats: qraft.FrameStats{Err: qraft.ErrSingularFrame}})

	// Events are queued; process them.
	FrameEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	if e := received[0]; e.Frame != 1 || e.Stats.Drawn != 5 || e.Stats.Instances != 2 {
		t.Errorf("event 0: %+v", e)
	}
	if e := received[1]; e.Frame != 2 || e.Stats.Err != qraft.ErrSingularFrame {
		t.Errorf("event 1: %+v", e)
	}
}

func TestDonburiStore_ImplementsEntityStore(t *testing.T) {
	world := donburi.NewWorld()
	var store qraft.EntityStore = NewDonburiStore(world)
	_ = store // compile-time interface check
}

func TestDonburiStore_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var count1, count2 int
	FrameEventType.Subscribe(world, func(w donburi.World, e qraft.FrameEvent) {
		count1++
	})
	FrameEventType.Subscribe(world, func(w donburi.World, e qraft.FrameEvent) {
		count2++
	})

	store.EmitEvent(qraft.FrameEvent{Frame: 7})
	events.ProcessAllEvents(world)

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both subscribers called once, got %d and %d", count1, count2)
	}
}

func TestSceneDrawPublishesFrameEvent(t *testing.T) {
	world := donburi.NewWorld()
	scene := qraft.NewScene()
	scene.SetEntityStore(NewDonburiStore(world))
	scene.AddRoot(qraft.NewCuboid("box", qraft.Vec(1, 1, 1), qraft.ColorWhite))

	var got []qraft.FrameEvent
	FrameEventType.Subscribe(world, func(w donburi.World, e qraft.FrameEvent) {
		got = append(got, e)
	})

	scene.Draw(qraft.NewImageSurface(80, 60))
	FrameEventType.ProcessEvents(world)

	if len(got) != 1 {
		t.Fatalf("expected 1 event, got %d", len(got))
	}
	if got[0].Frame != 1 || got[0].Stats.Instances != 1 || got[0].Stats.Drawn == 0 {
		t.Errorf("event: %+v", got[0])
	}
}

func TestUpdateSpinners(t *testing.T) {
	world := donburi.NewWorld()
	box := qraft.NewCuboid("box", qraft.Vec(1, 1, 1), qraft.ColorWhite)
	AddSpinner(world, &box.Entity, qraft.Vec(0, 0, 1), math.Pi)

	// Half a second at pi rad/s turns the x axis onto +y.
	UpdateSpinners(world, 0.25)
	UpdateSpinners(world, 0.25)

	if x := box.Orientation.X(); !x.ApproxEqual(qraft.Vec(0, 1, 0), 1e-6) {
		t.Errorf("x axis = %v, want (0, 1, 0)", x)
	}
}

func TestUpdateSpinnersSkipsNilTarget(t *testing.T) {
	world := donburi.NewWorld()
	AddSpinner(world, nil, qraft.Vec(0, 0, 1), 1)
	UpdateSpinners(world, 1) // must not panic
}
