// Package seed implements the deterministic hashing and pseudo-random
// primitives that every affinity prediction is built on.  All functions are
// pure: identical inputs yield bit-identical outputs across calls, processes,
// and hosts, which is what makes prediction results reproducible and cacheable.
//
// The generator is a plain linear congruential step.  It is intentionally not
// cryptographically secure and makes no uniformity guarantee; reproducibility
// is the only requirement.
package seed

// LCG parameters.  Changing any of these changes every prediction the service
// has ever produced, so they are pinned by tests.
const (
	lcgMultiplier = 9301
	lcgIncrement  = 49297
	lcgModulus    = 233280
)

// Hash maps a string to an int32 by the classic multiply-by-31 accumulation
// with two's-complement wraparound.  Different strings spread reasonably but
// collisions are acceptable.
func Hash(s string) int32 {
	var h int32
	for _, r := range s {
		h = h*31 + int32(r)
	}
	return h
}

// Random maps a seed to a float64 in [0, 1).  The same seed always yields the
// same value; 0 and negative seeds are valid inputs.
func Random(seed int32) float64 {
	next := (int64(seed)*lcgMultiplier + lcgIncrement) % lcgModulus
	if next < 0 {
		next += lcgModulus
	}
	return float64(next) / lcgModulus
}

// Derive returns the combined seed for a set of input parts.  Parts are
// concatenated in order before hashing, so Derive("ab", "c") == Derive("abc");
// callers that need boundary sensitivity must include their own separators.
func Derive(parts ...string) int32 {
	var n int
	for _, p := range parts {
		n += len(p)
	}
	buf := make([]byte, 0, n)
	for _, p := range parts {
		buf = append(buf, p...)
	}
	return Hash(string(buf))
}

// Stream yields a deterministic sequence of pseudo-random draws from a base
// seed.  Each draw advances an internal offset, so a Stream rebuilt from the
// same base seed replays the exact same sequence.
type Stream struct {
	base int32
	n    int32
}

// NewStream returns a Stream positioned at the first draw for base.
func NewStream(base int32) *Stream {
	return &Stream{base: base}
}

// Next returns the next value in [0, 1).
func (s *Stream) Next() float64 {
	v := Random(s.base + s.n)
	s.n++
	return v
}

// Float returns the next value scaled into [lo, hi).
func (s *Stream) Float(lo, hi float64) float64 {
	return lo + s.Next()*(hi-lo)
}

// Int returns the next value as an integer in [lo, hi] inclusive.
func (s *Stream) Int(lo, hi int) int {
	return lo + int(s.Next()*float64(hi-lo+1))
}

// Pick returns a deterministic index into a collection of length n.
// n must be positive.
func (s *Stream) Pick(n int) int {
	return int(s.Next() * float64(n))
}
