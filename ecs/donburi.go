package ecs

import (
	"github.com/phanxgames/qraft"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
)

// FrameEventType is the Donburi event type for qraft frame events.
// Subscribe to this in your ECS systems to receive per-frame render stats.
var FrameEventType = events.NewEventType[qraft.FrameEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EntityStore backed by a Donburi world.
// Frame events are published to FrameEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) qraft.EntityStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event qraft.FrameEvent) {
	FrameEventType.Publish(s.world, event)
}

// Spinner turns a scene node about Axis (parent coordinates) at Speed
// radians per second.
type Spinner struct {
	Target *qraft.Entity
	Axis   qraft.Quaternion
	Speed  float64
}

// SpinnerComponent is the Donburi component holding a Spinner.
var SpinnerComponent = donburi.NewComponentType[Spinner]()

var spinnerQuery = donburi.NewQuery(filter.Contains(SpinnerComponent))

// AddSpinner creates an entity carrying a Spinner for target.
func AddSpinner(world donburi.World, target *qraft.Entity, axis qraft.Quaternion, speed float64) donburi.Entity {
	e := world.Create(SpinnerComponent)
	SpinnerComponent.SetValue(world.Entry(e), Spinner{Target: target, Axis: axis, Speed: speed})
	return e
}

// UpdateSpinners rotates every spinner's target by Speed·dt.
func UpdateSpinners(world donburi.World, dt float32) {
	spinnerQuery.Each(world, func(entry *donburi.Entry) {
		sp := SpinnerComponent.Get(entry)
		if sp.Target == nil || sp.Speed == 0 {
			return
		}
		sp.Target.Rotate(sp.Axis, sp.Speed*float64(dt))
	})
}
