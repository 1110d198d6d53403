// Package ecs bridges tumble animation lifecycle events into a [Donburi] world.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	scene.SetEntityStore(store)
//
// Subscribe to [AnimationEventType] to receive every event, or query the
// [Animating] component for per-entity counters.
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs

import (
	"github.com/phanxgames/tumble"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// AnimationEventType is the Donburi event type for tumble animation events.
var AnimationEventType = events.NewEventType[tumble.AnimationEvent]()

// AnimatingData mirrors the animation activity of one tumble entity.
type AnimatingData struct {
	Entity   tumble.EntityID
	Running  int
	Finished int
	Stopped  int
}

// Animating is attached to one Donburi entity per tumble entity that has had
// an animation started on it.
var Animating = donburi.NewComponentType[AnimatingData]()

type donburiStore struct {
	world    donburi.World
	entities map[tumble.EntityID]donburi.Entity
}

// NewDonburiStore creates an EntityStore backed by a Donburi world.
// Animation events are published to AnimationEventType and can be consumed
// with events.Subscribe and ProcessEvents. The Animating component of the
// matching Donburi entity is updated immediately.
func NewDonburiStore(world donburi.World) tumble.EntityStore {
	return &donburiStore{world: world, entities: make(map[tumble.EntityID]donburi.Entity)}
}

func (s *donburiStore) EmitEvent(event tumble.AnimationEvent) {
	s.track(event)
	AnimationEventType.Publish(s.world, event)
}

func (s *donburiStore) track(event tumble.AnimationEvent) {
	ent, ok := s.entities[event.Entity]
	if !ok || !s.world.Valid(ent) {
		ent = s.world.Create(Animating)
		s.entities[event.Entity] = ent
		Animating.SetValue(s.world.Entry(ent), AnimatingData{Entity: event.Entity})
	}
	data := Animating.Get(s.world.Entry(ent))
	switch event.Kind {
	case tumble.AnimationStarted:
		data.Running++
	case tumble.AnimationFinished:
		data.Running--
		data.Finished++
	case tumble.AnimationStopped:
		data.Running--
		data.Stopped++
	}
}

// Lookup returns the Animating data mirrored for a tumble entity from a store
// created by NewDonburiStore.
func Lookup(store tumble.EntityStore, id tumble.EntityID) (AnimatingData, bool) {
	s, ok := store.(*donburiStore)
	if !ok {
		return AnimatingData{}, false
	}
	ent, ok := s.entities[id]
	if !ok || !s.world.Valid(ent) {
		return AnimatingData{}, false
	}
	return *Animating.Get(s.world.Entry(ent)), true
}
