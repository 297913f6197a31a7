package platformer

// InjectInput queues a synthetic control snapshot. Each queued input replaces
// the live input of exactly one Update call, in FIFO order.
func (w *World) InjectInput(in Input) {
	w.injectQueue = append(w.injectQueue, in)
}

// InjectHold queues in for the given number of ticks. When in holds jump,
// only the first tick reports it as freshly pressed.
func (w *World) InjectHold(in Input, frames int) {
	for i := 0; i < frames; i++ {
		step := in
		if i > 0 {
			step.JumpPressed = false
			step.FlipGravity = false
			step.Respawn = false
			step.SelectJump = false
			step.SelectSpin = false
		}
		w.InjectInput(step)
	}
}

// PendingInputs returns the number of queued inputs not yet consumed.
func (w *World) PendingInputs() int {
	return len(w.injectQueue)
}

// nextInjected pops one input from the inject queue.
// Returns false if the queue is empty and live input should be used.
func (w *World) nextInjected() (Input, bool) {
	if len(w.injectQueue) == 0 {
		return Input{}, false
	}
	in := w.injectQueue[0]
	copy(w.injectQueue, w.injectQueue[1:])
	w.injectQueue = w.injectQueue[:len(w.injectQueue)-1]
	return in, true
}
