package breakout

import (
	"math"
)

// Snapshot contains the gameplay state in primitive types for
// determinism checks and debugging. Floats are stored as their IEEE bits.
type Snapshot struct {
	State     string
	Level     int
	Lives     int
	Score     int
	ShakeTime uint32

	// Ball is X, Y, VX, VY, Stuck, Sticky, PassThrough
	Ball [7]uint32
	// Paddle is X, Y, Width
	Paddle [3]uint32

	// Each brick is 1 when destroyed, else 0
	BrickData []int

	// Each power-up is 6 values: Type, X, Y, Duration, Activated, Destroyed
	PowerUpData []uint32

	Effects [3]bool

	// RNG state, 0 when the game uses an external RNG
	RNGState uint64
}

func boolBits(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

// Snapshot returns the current game state.
func (g *Game) Snapshot() Snapshot {
	bricks := g.levels[g.level].Bricks
	brickData := make([]int, len(bricks))
	for i := range bricks {
		if bricks[i].Destroyed {
			brickData[i] = 1
		}
	}

	powerUpData := make([]uint32, 0, len(g.powerUps)*6)
	for _, p := range g.powerUps {
		powerUpData = append(powerUpData,
			uint32(p.Type), //#nosec G115 -- closed enum
			math.Float32bits(p.Position.X()),
			math.Float32bits(p.Position.Y()),
			math.Float32bits(p.Duration),
			boolBits(p.Activated),
			boolBits(p.Destroyed),
		)
	}

	snap := Snapshot{
		State:     g.state.String(),
		Level:     g.level,
		Lives:     g.lives,
		Score:     g.score,
		ShakeTime: math.Float32bits(g.shakeTime),
		Ball: [7]uint32{
			math.Float32bits(g.ball.Position.X()),
			math.Float32bits(g.ball.Position.Y()),
			math.Float32bits(g.ball.Velocity.X()),
			math.Float32bits(g.ball.Velocity.Y()),
			boolBits(g.ball.Stuck),
			boolBits(g.ball.Sticky),
			boolBits(g.ball.PassThrough),
		},
		Paddle: [3]uint32{
			math.Float32bits(g.player.Position.X()),
			math.Float32bits(g.player.Position.Y()),
			math.Float32bits(g.player.Size.X()),
		},
		BrickData:   brickData,
		PowerUpData: powerUpData,
		Effects:     [3]bool{g.effects.Shake, g.effects.Confuse, g.effects.Chaos},
	}
	if rng, ok := g.rng.(*SimpleRNG); ok {
		snap.RNGState = rng.State()
	}
	return snap
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	var h uint64
	for _, c := range []byte(snap.State) {
		h = h*31 + uint64(c)
	}
	h = h*31 + uint64(snap.Level) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Lives) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Score) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.ShakeTime)

	for _, v := range snap.Ball {
		h = h*31 + uint64(v)
	}
	for _, v := range snap.Paddle {
		h = h*31 + uint64(v)
	}
	for _, v := range snap.BrickData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	for _, v := range snap.PowerUpData {
		h = h*31 + uint64(v)
	}
	for _, e := range snap.Effects {
		h = h*31 + uint64(boolBits(e))
	}

	h = h*31 + snap.RNGState
	return h
}
