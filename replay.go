package platformer

import (
	"encoding/json"
	"errors"
	"fmt"
)

// replayStep represents a single action in a replay script.
type replayStep struct {
	Action string   `json:"action"`
	Keys   []string `json:"keys,omitempty"`
	Label  string   `json:"label,omitempty"`
	Frames int      `json:"frames,omitempty"`
}

// replayScript is the top-level JSON structure for a replay script.
type replayScript struct {
	Steps []replayStep `json:"steps"`
}

// ErrInvalidReplay is wrapped by every error returned from LoadReplay.
var ErrInvalidReplay = errors.New("invalid replay")

// Replay sequences scripted inputs across ticks for deterministic headless
// runs. Attach to a World via SetReplay.
//
// Actions:
//
//	hold   keys held for frames ticks (jump/flip/respawn fire on the first)
//	press  keys for a single tick
//	wait   frames idle ticks
//	mark   records the current tick under label
type Replay struct {
	steps  []replayStep
	cursor int
	marks  map[string]uint64
	done   bool
}

// LoadReplay parses a JSON replay script and returns a Replay ready to be
// attached to a World via SetReplay.
func LoadReplay(jsonData []byte) (*Replay, error) {
	var script replayScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse replay: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse replay: %w: no steps", ErrInvalidReplay)
	}
	for i, st := range script.Steps {
		if err := st.validate(); err != nil {
			return nil, fmt.Errorf("parse replay: step %d: %w", i, err)
		}
	}
	return &Replay{steps: script.Steps, marks: make(map[string]uint64)}, nil
}

func (st replayStep) validate() error {
	switch st.Action {
	case "hold", "press":
		if len(st.Keys) == 0 {
			return fmt.Errorf("%w: %s without keys", ErrInvalidReplay, st.Action)
		}
		if _, err := keysInput(st.Keys); err != nil {
			return err
		}
	case "wait":
		if st.Frames < 1 {
			return fmt.Errorf("%w: wait needs frames >= 1", ErrInvalidReplay)
		}
	case "mark":
		if st.Label == "" {
			return fmt.Errorf("%w: mark without label", ErrInvalidReplay)
		}
	default:
		return fmt.Errorf("%w: unknown action %q", ErrInvalidReplay, st.Action)
	}
	return nil
}

// keysInput builds the first-tick input for a list of key names.
func keysInput(keys []string) (Input, error) {
	var in Input
	for _, k := range keys {
		switch k {
		case "left":
			in.Left = true
		case "right":
			in.Right = true
		case "jump":
			in.JumpHeld = true
			in.JumpPressed = true
		case "flip":
			in.FlipGravity = true
		case "respawn":
			in.Respawn = true
		case "forward":
			in.Forward = true
		case "back":
			in.Back = true
		case "jump-mode":
			in.SelectJump = true
		case "spin-mode":
			in.SelectSpin = true
		default:
			return Input{}, fmt.Errorf("%w: unknown key %q", ErrInvalidReplay, k)
		}
	}
	return in, nil
}

// SetReplay attaches a Replay to the world. The replay's step method is
// called from World.Update before input is resolved each tick. nil detaches.
func (w *World) SetReplay(r *Replay) {
	w.replay = r
}

// Done reports whether every step has run and its inputs were consumed.
func (r *Replay) Done() bool {
	return r.done
}

// Mark returns the tick recorded by the mark step with the given label.
func (r *Replay) Mark(label string) (uint64, bool) {
	t, ok := r.marks[label]
	return t, ok
}

// step advances the replay by one tick. Called from World.Update.
func (r *Replay) step(w *World) {
	if r.done {
		return
	}
	// Wait for queued inputs to drain before advancing.
	for len(w.injectQueue) == 0 {
		if r.cursor >= len(r.steps) {
			r.done = true
			return
		}
		st := r.steps[r.cursor]
		r.cursor++

		switch st.Action {
		case "hold":
			in, _ := keysInput(st.Keys)
			frames := st.Frames
			if frames < 1 {
				frames = 1
			}
			w.InjectHold(in, frames)
		case "press":
			in, _ := keysInput(st.Keys)
			w.InjectInput(in)
		case "wait":
			w.InjectHold(Input{}, st.Frames)
		case "mark":
			r.marks[st.Label] = w.tick
			w.logger.Info("replay mark", "label", st.Label, "tick", w.tick)
		}
	}
}
