package tumble

// Synthetic input is delivered one event per frame, ahead of real input, so
// that a press and its release always land on different frames.

// InjectPress queues a press of b. The event is delivered on the next frame.
func (l *Loop) InjectPress(b Button) {
	l.injectQueue = append(l.injectQueue, PressEvent(b))
}

// InjectRelease queues a release of b.
func (l *Loop) InjectRelease(b Button) {
	l.injectQueue = append(l.injectQueue, ReleaseEvent(b))
}

// InjectTap is a convenience that queues a press followed by a release of b.
// Consumes two frames.
func (l *Loop) InjectTap(b Button) {
	l.InjectPress(b)
	l.InjectRelease(b)
}

// InjectHold queues a press of b, frames-2 frames with b held, and a release.
// The whole sequence consumes frames frames. Minimum frames is 2.
func (l *Loop) InjectHold(b Button, frames int) {
	if frames < 2 {
		frames = 2
	}
	l.InjectPress(b)
	for i := 0; i < frames-2; i++ {
		// Repeated presses are idempotent for InputState.
		l.InjectPress(b)
	}
	l.InjectRelease(b)
}

// Pending returns the number of injected events not yet delivered.
func (l *Loop) Pending() int {
	return len(l.injectQueue)
}

// popInjected removes and returns the oldest injected event.
func (l *Loop) popInjected() (Event, bool) {
	if len(l.injectQueue) == 0 {
		return Event{}, false
	}
	ev := l.injectQueue[0]
	copy(l.injectQueue, l.injectQueue[1:])
	l.injectQueue = l.injectQueue[:len(l.injectQueue)-1]
	return ev, true
}
