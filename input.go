package platformer

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Input is the control snapshot for one tick. The simulation never reads
// devices itself; the driver builds an Input (usually with ReadKeyboard)
// and passes it to World.Update.
type Input struct {
	Left  bool
	Right bool
	// JumpHeld is true while the jump key is down. Holding it on the ground
	// jumps again as soon as the player lands.
	JumpHeld bool
	// JumpPressed is true only on the tick the jump key went down. Wall
	// jumps and air jumps need a fresh press. A press implies held.
	JumpPressed bool
	// Forward and Back thrust along the heading in spin mode, where Left and
	// Right turn instead of walking.
	Forward bool
	Back    bool
	// FlipGravity and Respawn are edge-triggered controls.
	FlipGravity bool
	Respawn     bool
	// SelectJump and SelectSpin switch the move mode. SelectJump wins when
	// both are set.
	SelectJump bool
	SelectSpin bool
}

// mode returns the move mode the input asks for, if any.
func (in Input) mode() (MoveMode, bool) {
	switch {
	case in.SelectJump:
		return MoveJump, true
	case in.SelectSpin:
		return MoveSpin, true
	}
	return 0, false
}

// Idle reports whether no control is active.
func (in Input) Idle() bool {
	return in == Input{}
}

// KeyMap binds keyboard keys to controls. Any key in a list triggers the
// control.
type KeyMap struct {
	Left     []ebiten.Key
	Right    []ebiten.Key
	Jump     []ebiten.Key
	Forward  []ebiten.Key
	Back     []ebiten.Key
	Flip     []ebiten.Key
	Respawn  []ebiten.Key
	JumpMode []ebiten.Key
	SpinMode []ebiten.Key
}

// DefaultKeyMap returns A/D or the arrow keys to move, Space or Up to jump,
// W/S or Up/Down to thrust, G to flip gravity, R to respawn, and 1 or 2 to
// pick the jump or spin move mode.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left:     []ebiten.Key{ebiten.KeyA, ebiten.KeyArrowLeft},
		Right:    []ebiten.Key{ebiten.KeyD, ebiten.KeyArrowRight},
		Jump:     []ebiten.Key{ebiten.KeySpace, ebiten.KeyArrowUp},
		Forward:  []ebiten.Key{ebiten.KeyW, ebiten.KeyArrowUp},
		Back:     []ebiten.Key{ebiten.KeyS, ebiten.KeyArrowDown},
		Flip:     []ebiten.Key{ebiten.KeyG},
		Respawn:  []ebiten.Key{ebiten.KeyR},
		JumpMode: []ebiten.Key{ebiten.Key1},
		SpinMode: []ebiten.Key{ebiten.Key2},
	}
}

// Read samples the keyboard. Call it once per ebiten Update.
func (km KeyMap) Read() Input {
	in := Input{
		Left:        anyPressed(km.Left),
		Right:       anyPressed(km.Right),
		JumpHeld:    anyPressed(km.Jump),
		JumpPressed: anyJustPressed(km.Jump),
		Forward:     anyPressed(km.Forward),
		Back:        anyPressed(km.Back),
		FlipGravity: anyJustPressed(km.Flip),
		Respawn:     anyJustPressed(km.Respawn),
		SelectJump:  anyJustPressed(km.JumpMode),
		SelectSpin:  anyJustPressed(km.SpinMode),
	}
	return in
}

// ReadKeyboard samples the keyboard with DefaultKeyMap.
func ReadKeyboard() Input {
	return DefaultKeyMap().Read()
}

func anyPressed(keys []ebiten.Key) bool {
	for _, k := range keys {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}

func anyJustPressed(keys []ebiten.Key) bool {
	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}
