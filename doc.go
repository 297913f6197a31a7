// Package platformer is the motion and collision core of a 2D platformer
// for [Ebitengine].
//
// A [World] is built from a [Config] and a [Level] and stepped once per
// frame with the measured frame duration and an [Input] snapshot:
//
//	cfg := platformer.DefaultConfig()
//	w, err := platformer.NewWorld(cfg, level)
//	if err != nil {
//		return err
//	}
//
//	func (g *Game) Update() error {
//		g.world.Update(1.0/float64(ebiten.TPS()), platformer.ReadKeyboard())
//		return nil
//	}
//
// # Motion
//
// The [Player] integrates gravity, input acceleration and linear drag, then
// resolves collisions one axis at a time: horizontally first, then
// vertically. Overlaps always clamp to the outermost edge of everything the
// hit box penetrates. Gravity can be inverted with [World.FlipGravity];
// every rule (floors, ceilings, jumps, wall slide) mirrors with it.
//
// # Obstacles
//
// Static walls never move. Moving walls follow a scripted [Path] of
// [Segment] legs and push the player out of their way; a push that drives
// the player into other solid geometry crushes it and forces a respawn.
// Standing on a moving wall carries the player with it.
//
// # Items
//
// Items bob for display (eased with [gween]) but collide at a fixed
// position. Touching one collects it; collected items are gone for good.
//
// # Integration
//
// Gameplay events can be forwarded to an ECS with [World.SetEntityStore]
// (see the platformer/ecs module for a [Donburi] adapter), sound cues to an
// [AudioCue] (see platformer/audio), and lifecycle logs to a [log/slog]
// logger with [World.SetLogger]. Cameras created with [World.NewCamera]
// follow the player within the level bounds.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package platformer
