package core

// RuntimeConfig contains configuration passed to the game host at startup.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Frames per second driving ProcessInput/Update
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// FrameSeconds returns the nominal duration of one frame in seconds.
func (c RuntimeConfig) FrameSeconds() float32 {
	if c.TickRate <= 0 {
		return 1.0 / 60.0
	}
	return 1.0 / float32(c.TickRate)
}
