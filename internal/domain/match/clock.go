package match

// Clock is an unbounded stopwatch counting elapsed seconds of a live match.
// It is cooperatively driven: a caller ticks it, it never spawns timers. It
// knows nothing about scheduled duration or extra time.
type Clock struct {
	Seconds int
	Running bool
}

// Start begins counting, continuing from the current value when resuming.
func (c Clock) Start() Clock {
	c.Running = true
	return c
}

func (c Clock) Pause() Clock {
	c.Running = false
	return c
}

func (c Clock) Resume() Clock {
	c.Running = true
	return c
}

// Reset forces the elapsed time back to zero, keeping the running state.
func (c Clock) Reset() Clock {
	c.Seconds = 0
	return c
}

// Tick advances the clock by delta seconds. Ticks while paused are dropped,
// so a scheduled ticker can keep firing across a pause.
func (c Clock) Tick(delta int) Clock {
	if !c.Running || delta <= 0 {
		return c
	}
	c.Seconds += delta
	return c
}

// Minute is the wall-clock minute stamped onto new events.
func (c Clock) Minute() int {
	return c.Seconds / 60
}
