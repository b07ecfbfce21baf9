package breakout

// RNG is the randomness source used for power-up rolls and particles.
type RNG interface {
	Intn(n int) int
}

// SimpleRNG is a deterministic pseudo-random number generator.
// Uses a 64-bit LCG so runs replay identically from a seed.
type SimpleRNG struct {
	state uint64
}

// NewSimpleRNG creates a new RNG with the given seed.
func NewSimpleRNG(seed int64) *SimpleRNG {
	s := uint64(seed) //#nosec G115 -- intentional conversion for RNG seeding
	if s == 0 {
		s = 1
	}
	return &SimpleRNG{state: s}
}

// Next generates the next random uint64.
func (r *SimpleRNG) Next() uint64 {
	r.state = r.state*6364136223846793005 + 1442695040888963407
	return r.state
}

// Intn returns a random int in [0, n). It returns 0 for n <= 0.
func (r *SimpleRNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	// High bits; the low bits of a power-of-two LCG have short periods.
	return int((r.Next() >> 33) % uint64(n)) //#nosec G115 -- n is always positive
}

// State returns the internal state for snapshots.
func (r *SimpleRNG) State() uint64 {
	return r.state
}

// SetState restores a state captured with State.
func (r *SimpleRNG) SetState(s uint64) {
	r.state = s
}
