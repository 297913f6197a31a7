package ecs

import (
	"github.com/google/uuid"
	"github.com/phanxgames/platformer"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// GameEventType is the Donburi event type for platformer world events.
// Subscribe to it to react to jumps, pickups, crushes and respawns.
var GameEventType = events.NewEventType[platformer.Event]()

// RunData tallies what happened during the current session of a world.
type RunData struct {
	// Attempt is the player's current attempt, updated on every event.
	Attempt  uuid.UUID
	Attempts int
	Jumps    int
	Crushes  int
	Pickups  map[string]int
	LastTick uint64
}

// Run is the component holding the store's RunData.
var Run = donburi.NewComponentType[RunData]()

// DonburiStore is a platformer.EntityStore backed by a Donburi world.
type DonburiStore struct {
	world donburi.World
	run   donburi.Entity
}

var _ platformer.EntityStore = (*DonburiStore)(nil)

// NewDonburiStore creates the run entity in world and subscribes the tally
// system to GameEventType. Events are queued until Flush.
func NewDonburiStore(world donburi.World) *DonburiStore {
	s := &DonburiStore{world: world}
	s.run = world.Create(Run)
	Run.SetValue(world.Entry(s.run), RunData{Pickups: make(map[string]int)})
	GameEventType.Subscribe(world, s.tally)
	return s
}

// EmitEvent queues the event on GameEventType.
func (s *DonburiStore) EmitEvent(event platformer.Event) {
	GameEventType.Publish(s.world, event)
}

// Flush delivers queued events to every subscriber.
func (s *DonburiStore) Flush() {
	GameEventType.ProcessEvents(s.world)
}

// Run returns the live tally. It reflects events up to the last Flush.
func (s *DonburiStore) Run() *RunData {
	return Run.Get(s.world.Entry(s.run))
}

// Entity returns the entity carrying the Run component.
func (s *DonburiStore) Entity() donburi.Entity { return s.run }

func (s *DonburiStore) tally(w donburi.World, e platformer.Event) {
	rd := Run.Get(w.Entry(s.run))
	if e.Attempt != rd.Attempt {
		rd.Attempt = e.Attempt
		rd.Attempts++
	}
	rd.LastTick = e.Tick

	switch e.Type {
	case platformer.EventJumped, platformer.EventWallJumped:
		rd.Jumps++
	case platformer.EventCrushed:
		rd.Crushes++
	case platformer.EventPickup:
		rd.Pickups[e.Kind]++
	}
}
