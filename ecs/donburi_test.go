package ecs

import (
	"testing"

	"github.com/google/uuid"
	"github.com/phanxgames/platformer"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func floorWorld(t *testing.T) *platformer.World {
	t.Helper()
	level := platformer.Level{
		Name:   "ecs",
		Width:  600,
		Height: 600,
		Spawn:  platformer.Vec2{X: 300, Y: 282.5},
		Obstacles: []platformer.Placement{
			{Kind: platformer.ObstacleWall, Box: platformer.Rect{X: 0, Y: 300, Width: 600, Height: 70}},
		},
		Items: []platformer.ItemPlacement{
			{Kind: "coin", Position: platformer.Vec2{X: 300, Y: 280}},
		},
	}
	w, err := platformer.NewWorld(platformer.DefaultConfig(), level)
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	return w
}

func TestNewDonburiStore(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	if !world.Valid(store.Entity()) {
		t.Fatal("run entity not created")
	}
	rd := store.Run()
	if rd.Attempts != 0 || rd.Pickups == nil {
		t.Errorf("fresh run = %+v", rd)
	}
}

func TestDonburiStore_EmitEvent(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var received []platformer.Event
	GameEventType.Subscribe(world, func(w donburi.World, e platformer.Event) {
		received = append(received, e)
	})

	attempt := uuid.New()
	store.EmitEvent(platformer.Event{Type: platformer.EventPickup, Attempt: attempt, EntityID: 42, Kind: "gem", X: 100, Y: 200})
	store.EmitEvent(platformer.Event{Type: platformer.EventCrushed, Attempt: attempt, Tick: 9})

	if len(received) != 0 {
		t.Fatalf("events delivered before Flush: %d", len(received))
	}
	store.Flush()

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	e0 := received[0]
	if e0.Type != platformer.EventPickup || e0.EntityID != 42 || e0.X != 100 || e0.Y != 200 {
		t.Errorf("event 0: %+v", e0)
	}

	rd := store.Run()
	if rd.Attempt != attempt || rd.Attempts != 1 {
		t.Errorf("attempt = %v (%d), want %v (1)", rd.Attempt, rd.Attempts, attempt)
	}
	if rd.Pickups["gem"] != 1 || rd.Crushes != 1 || rd.LastTick != 9 {
		t.Errorf("tally = %+v", rd)
	}
}

func TestDonburiStore_ImplementsEntityStore(t *testing.T) {
	world := donburi.NewWorld()
	var store platformer.EntityStore = NewDonburiStore(world)
	_ = store
}

func TestDonburiStore_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var count1, count2 int
	GameEventType.Subscribe(world, func(w donburi.World, e platformer.Event) {
		count1++
	})
	GameEventType.Subscribe(world, func(w donburi.World, e platformer.Event) {
		count2++
	})

	store.EmitEvent(platformer.Event{Type: platformer.EventLanded, Attempt: uuid.New()})
	events.ProcessAllEvents(world)

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both subscribers called once, got %d and %d", count1, count2)
	}
	if store.Run().Attempts != 1 {
		t.Errorf("tally not run by ProcessAllEvents")
	}
}

func TestDonburiStore_DrivenByWorld(t *testing.T) {
	w := floorWorld(t)
	store := NewDonburiStore(donburi.NewWorld())
	w.SetEntityStore(store)

	w.Update(1.0/60, platformer.Input{})
	w.Update(1.0/60, platformer.Input{JumpHeld: true, JumpPressed: true})
	store.Flush()

	rd := store.Run()
	if rd.Pickups["coin"] != 1 {
		t.Errorf("coin pickups = %d, want 1", rd.Pickups["coin"])
	}
	if rd.Jumps != 1 {
		t.Errorf("jumps = %d, want 1", rd.Jumps)
	}
	if rd.Attempts != 1 || rd.Attempt != w.Player().Attempt() {
		t.Errorf("attempt = %v (%d), want the player's", rd.Attempt, rd.Attempts)
	}
	if rd.LastTick == 0 {
		t.Error("last tick not recorded")
	}

	w.Respawn()
	store.Flush()
	if rd := store.Run(); rd.Attempts != 2 || rd.Attempt != w.Player().Attempt() {
		t.Errorf("after respawn attempt = %v (%d), want the new attempt", rd.Attempt, rd.Attempts)
	}
}
