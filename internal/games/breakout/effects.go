package breakout

// Effects are the post-processing flags the host applies to a frame.
type Effects struct {
	Shake   bool
	Confuse bool
	Chaos   bool
}

// Effects returns the current post-processing flags.
func (g *Game) Effects() Effects {
	return g.effects
}

// startShake triggers a brief screen shake.
func (g *Game) startShake() {
	g.shakeTime = g.cfg.Gameplay.ShakeDuration
	g.effects.Shake = true
}

// updateShake counts the shake down and clears it once elapsed.
func (g *Game) updateShake(dt float32) {
	if g.shakeTime <= 0 {
		return
	}
	g.shakeTime -= dt
	if g.shakeTime <= 0 {
		g.effects.Shake = false
	}
}
