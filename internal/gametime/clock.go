// Package gametime provides the fixed-step clock that drives the
// simulation. All gameplay time is derived from tick counts and the
// fixed delta, never from the wall clock, so runs are reproducible.
package gametime

// DefaultTickRate is the simulation step frequency used when the
// configuration doesn't say otherwise.
const DefaultTickRate = 20.0

// Clock counts fixed-length simulation steps. Accessed only from the
// game loop goroutine; no locks needed.
type Clock struct {
	tick    uint64
	delta   float64
	elapsed float64
}

// NewClock creates a clock stepping at the given rate in ticks per
// second. Non-positive rates fall back to DefaultTickRate.
func NewClock(tickRate float64) *Clock {
	if tickRate <= 0 {
		tickRate = DefaultTickRate
	}
	return &Clock{delta: 1 / tickRate}
}

// Step advances the clock one tick and returns the new tick number.
func (c *Clock) Step() uint64 {
	c.tick++
	c.elapsed += c.delta
	return c.tick
}

// Tick returns the number of completed steps.
func (c *Clock) Tick() uint64 {
	return c.tick
}

// Delta returns the fixed step length in seconds.
func (c *Clock) Delta() float64 {
	return c.delta
}

// Elapsed returns total simulated seconds.
func (c *Clock) Elapsed() float64 {
	return c.elapsed
}
