// Package effects implements the camera shake envelope and the
// explosion-spawning helper. Both only produce abstract samples and
// events; rendering and audio pick them up outside the core.
package effects

import (
	"math"
	"math/rand"

	"github.com/quietpond/straycat/internal/geom"
)

// Shaker is a single-slot camera shake: a deadline plus an amplitude
// that decays linearly to zero. Starting a new shake replaces any
// pending one.
type Shaker struct {
	rng *rand.Rand

	amplitude float64
	start     float64
	until     float64
}

// NewShaker creates a shaker. The seed drives the per-tick offsets.
func NewShaker(seed int64) *Shaker {
	return &Shaker{rng: rand.New(rand.NewSource(seed))}
}

// Start begins a shake of the given amplitude lasting duration seconds
// from now. A shake already in flight is superseded.
func (s *Shaker) Start(amplitude, duration, now float64) {
	if amplitude <= 0 || duration <= 0 {
		return
	}
	s.amplitude = amplitude
	s.start = now
	s.until = now + duration
}

// Active reports whether a shake is still running at the given time.
func (s *Shaker) Active(now float64) bool {
	return now < s.until
}

// Offset samples the shake at the given time: a random planar offset
// scaled by the remaining envelope. Returns zero once the shake is over.
func (s *Shaker) Offset(now float64) geom.Vec3 {
	if !s.Active(now) {
		return geom.Vec3{}
	}
	total := s.until - s.start
	if total <= 0 {
		return geom.Vec3{}
	}
	envelope := s.amplitude * (s.until - now) / total

	angle := s.rng.Float64() * 2 * math.Pi
	return geom.Vec3{
		X: math.Cos(angle) * envelope,
		Y: math.Sin(angle) * envelope,
	}
}
