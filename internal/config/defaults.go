package config

import (
	_ "embed"
)

//go:embed defaults/breakout.yaml
var defaultBreakoutYAML []byte

// DefaultBreakoutConfig returns the default Breakout configuration.
// It mirrors defaults/breakout.yaml and is used when the embedded file
// cannot be decoded.
func DefaultBreakoutConfig() BreakoutConfig {
	return BreakoutConfig{
		Playfield: BreakoutPlayfield{
			Width:  1200,
			Height: 900,
		},
		Gameplay: BreakoutGameplay{
			Lives:         3,
			BrickPoints:   10,
			ShakeDuration: 0.05,
		},
		Paddle: BreakoutPaddle{
			Width:  200,
			Height: 40,
			Speed:  1000,
		},
		Ball: BreakoutBall{
			Radius:    25,
			VelocityX: 100,
			VelocityY: -600,
			Strength:  3.0,
		},
		PowerUps: BreakoutPowerUps{
			Width:               120,
			Height:              40,
			FallSpeed:           150,
			PositiveChance:      75,
			NegativeChance:      15,
			SpeedMultiplier:     1.2,
			IncreaseAmount:      50,
			DurationSticky:      20,
			DurationPassThrough: 10,
			DurationConfuse:     15,
			DurationChaos:       15,
		},
		Particles: BreakoutParticles{
			Count:    500,
			PerFrame: 2,
			Size:     10,
		},
		Audio: BreakoutAudio{
			Enabled: true,
			Volume:  0,
		},
	}
}

// DefaultBreakoutYAML returns the embedded default YAML.
func DefaultBreakoutYAML() []byte {
	return defaultBreakoutYAML
}
