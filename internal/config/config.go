// Package config provides YAML/TOML configuration loading and difficulty
// presets for Breakout.
package config

import (
	"errors"
	"fmt"
)

// BreakoutConfig contains all tunable parameters of the game.
// Lengths are playfield pixels, speeds are pixels per second and durations
// are seconds.
type BreakoutConfig struct {
	Playfield BreakoutPlayfield `yaml:"playfield" toml:"playfield"`
	Gameplay  BreakoutGameplay  `yaml:"gameplay" toml:"gameplay"`
	Paddle    BreakoutPaddle    `yaml:"paddle" toml:"paddle"`
	Ball      BreakoutBall      `yaml:"ball" toml:"ball"`
	PowerUps  BreakoutPowerUps  `yaml:"powerups" toml:"powerups"`
	Particles BreakoutParticles `yaml:"particles" toml:"particles"`
	Audio     BreakoutAudio     `yaml:"audio" toml:"audio"`
}

// BreakoutPlayfield defines the logical screen the game simulates.
type BreakoutPlayfield struct {
	Width  int `yaml:"width" toml:"width"`
	Height int `yaml:"height" toml:"height"`
}

// BreakoutGameplay defines lives, scoring and screen shake.
type BreakoutGameplay struct {
	Lives         int     `yaml:"lives" toml:"lives"`
	BrickPoints   int     `yaml:"brick_points" toml:"brick_points"`
	ShakeDuration float32 `yaml:"shake_duration" toml:"shake_duration"`
}

// BreakoutPaddle defines the player paddle.
type BreakoutPaddle struct {
	Width  float32 `yaml:"width" toml:"width"`
	Height float32 `yaml:"height" toml:"height"`
	Speed  float32 `yaml:"speed" toml:"speed"`
}

// BreakoutBall defines the ball and its paddle bounce.
type BreakoutBall struct {
	Radius    float32 `yaml:"radius" toml:"radius"`
	VelocityX float32 `yaml:"velocity_x" toml:"velocity_x"`
	VelocityY float32 `yaml:"velocity_y" toml:"velocity_y"`
	Strength  float32 `yaml:"paddle_strength" toml:"paddle_strength"`
}

// BreakoutPowerUps defines pickup spawning and effect parameters.
// Chances are "one in N" rolls per destroyed brick.
type BreakoutPowerUps struct {
	Width           float32 `yaml:"width" toml:"width"`
	Height          float32 `yaml:"height" toml:"height"`
	FallSpeed       float32 `yaml:"fall_speed" toml:"fall_speed"`
	PositiveChance  int     `yaml:"positive_chance" toml:"positive_chance"`
	NegativeChance  int     `yaml:"negative_chance" toml:"negative_chance"`
	SpeedMultiplier float32 `yaml:"speed_multiplier" toml:"speed_multiplier"`
	IncreaseAmount  float32 `yaml:"increase_amount" toml:"increase_amount"`

	DurationSticky      float32 `yaml:"duration_sticky" toml:"duration_sticky"`
	DurationPassThrough float32 `yaml:"duration_pass_through" toml:"duration_pass_through"`
	DurationConfuse     float32 `yaml:"duration_confuse" toml:"duration_confuse"`
	DurationChaos       float32 `yaml:"duration_chaos" toml:"duration_chaos"`
}

// BreakoutParticles defines the ball trail.
type BreakoutParticles struct {
	Count    int     `yaml:"count" toml:"count"`
	PerFrame int     `yaml:"per_frame" toml:"per_frame"`
	Size     float32 `yaml:"size" toml:"size"`
}

// BreakoutAudio defines cue playback.
type BreakoutAudio struct {
	Enabled bool    `yaml:"enabled" toml:"enabled"`
	Volume  float64 `yaml:"volume" toml:"volume"` // Gain in beep's base-2 volume steps, 0 = unchanged
}

// ErrInvalidConfig is returned by Validate for unusable values.
var ErrInvalidConfig = errors.New("config: invalid breakout config")

// Validate checks the invariants the game relies on.
func (c BreakoutConfig) Validate() error {
	switch {
	case c.Playfield.Width <= 0 || c.Playfield.Height <= 0:
		return fmt.Errorf("%w: playfield must be positive, got %dx%d", ErrInvalidConfig, c.Playfield.Width, c.Playfield.Height)
	case c.Gameplay.Lives <= 0:
		return fmt.Errorf("%w: lives must be positive, got %d", ErrInvalidConfig, c.Gameplay.Lives)
	case c.Paddle.Width <= 0 || c.Paddle.Height <= 0:
		return fmt.Errorf("%w: paddle size must be positive", ErrInvalidConfig)
	case c.Ball.Radius <= 0:
		return fmt.Errorf("%w: ball radius must be positive, got %v", ErrInvalidConfig, c.Ball.Radius)
	case c.PowerUps.Width <= 0 || c.PowerUps.Height <= 0:
		return fmt.Errorf("%w: power-up size must be positive", ErrInvalidConfig)
	case c.PowerUps.PositiveChance <= 0 || c.PowerUps.NegativeChance <= 0:
		return fmt.Errorf("%w: power-up chances must be positive", ErrInvalidConfig)
	case c.Particles.Count < 0 || c.Particles.PerFrame < 0:
		return fmt.Errorf("%w: particle counts must not be negative", ErrInvalidConfig)
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParseDifficulty maps a CLI string to a preset. Unknown values map to "".
func ParseDifficulty(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return DifficultyPreset(s)
	default:
		return ""
	}
}
