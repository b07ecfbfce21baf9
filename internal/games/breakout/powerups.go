package breakout

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// PowerUpType enumerates the pickups a destroyed brick can drop.
type PowerUpType int

const (
	PowerUpSpeed PowerUpType = iota
	PowerUpSticky
	PowerUpPassThrough
	PowerUpIncrease
	PowerUpConfuse
	PowerUpChaos
	powerUpCount
)

// PowerUpTypes lists every type in spawn roll order.
var PowerUpTypes = [powerUpCount]PowerUpType{
	PowerUpSpeed, PowerUpSticky, PowerUpPassThrough,
	PowerUpIncrease, PowerUpConfuse, PowerUpChaos,
}

// String returns the name of the power-up type.
func (t PowerUpType) String() string {
	switch t {
	case PowerUpSpeed:
		return "speed"
	case PowerUpSticky:
		return "sticky"
	case PowerUpPassThrough:
		return "pass-through"
	case PowerUpIncrease:
		return "pad-size-increase"
	case PowerUpConfuse:
		return "confuse"
	case PowerUpChaos:
		return "chaos"
	default:
		return "unknown"
	}
}

// Negative reports whether the type hinders the player.
func (t PowerUpType) Negative() bool {
	return t == PowerUpConfuse || t == PowerUpChaos
}

// Timed reports whether the type has an effect that expires.
func (t PowerUpType) Timed() bool {
	return t != PowerUpSpeed && t != PowerUpIncrease
}

// Texture returns the asset key drawn for the type.
func (t PowerUpType) Texture() TextureKey {
	switch t {
	case PowerUpSpeed:
		return TexturePowerUpSpeed
	case PowerUpSticky:
		return TexturePowerUpSticky
	case PowerUpPassThrough:
		return TexturePowerUpPassThrough
	case PowerUpIncrease:
		return TexturePowerUpIncrease
	case PowerUpConfuse:
		return TexturePowerUpConfuse
	case PowerUpChaos:
		return TexturePowerUpChaos
	default:
		panic(fmt.Sprintf("breakout: unknown power-up type %d", int(t)))
	}
}

// Tints for pickups and the entities they recolor.
var (
	powerUpColors = [powerUpCount]mgl32.Vec3{
		PowerUpSpeed:       {0.5, 0.5, 1.0},
		PowerUpSticky:      {1.0, 0.5, 1.0},
		PowerUpPassThrough: {0.5, 1.0, 0.5},
		PowerUpIncrease:    {1.0, 0.6, 0.4},
		PowerUpConfuse:     {1.0, 0.3, 0.3},
		PowerUpChaos:       {0.9, 0.25, 0.25},
	}
	stickyPaddleColor = mgl32.Vec3{1.0, 0.5, 1.0}
	passThroughColor  = mgl32.Vec3{1.0, 0.5, 0.5}
)

// PowerUp is a falling pickup. Once caught it stays in the list, activated,
// until its duration runs out.
type PowerUp struct {
	Entity
	Type      PowerUpType
	Duration  float32 // Seconds left once activated
	Activated bool
}

// spawnPowerUps rolls every type independently at a destroyed brick.
func (g *Game) spawnPowerUps(brick *Entity) {
	pc := g.cfg.PowerUps
	for _, t := range PowerUpTypes {
		chance := pc.PositiveChance
		if t.Negative() {
			chance = pc.NegativeChance
		}
		if g.rng.Intn(chance) != 0 {
			continue
		}
		p := PowerUp{
			Entity:   NewEntity(brick.Position, mgl32.Vec2{pc.Width, pc.Height}, g.assets.Texture(t.Texture())),
			Type:     t,
			Duration: g.duration(t),
		}
		p.Color = powerUpColors[t]
		p.Velocity = mgl32.Vec2{0, pc.FallSpeed}
		g.powerUps = append(g.powerUps, p)
		g.log.Debug("power-up spawned", "type", t, "x", brick.Position.X(), "y", brick.Position.Y())
	}
}

func (g *Game) duration(t PowerUpType) float32 {
	pc := g.cfg.PowerUps
	switch t {
	case PowerUpSticky:
		return pc.DurationSticky
	case PowerUpPassThrough:
		return pc.DurationPassThrough
	case PowerUpConfuse:
		return pc.DurationConfuse
	case PowerUpChaos:
		return pc.DurationChaos
	default:
		return 0
	}
}

// activatePowerUp applies the effect of a caught pickup.
func (g *Game) activatePowerUp(p *PowerUp) {
	switch p.Type {
	case PowerUpSpeed:
		g.ball.Velocity = g.ball.Velocity.Mul(g.cfg.PowerUps.SpeedMultiplier)
	case PowerUpSticky:
		g.ball.Sticky = true
		g.player.Color = stickyPaddleColor
	case PowerUpPassThrough:
		g.ball.PassThrough = true
		g.ball.Color = passThroughColor
	case PowerUpIncrease:
		g.player.Size[0] += g.cfg.PowerUps.IncreaseAmount
	case PowerUpConfuse:
		if !g.effects.Chaos {
			g.effects.Confuse = true
		}
	case PowerUpChaos:
		if !g.effects.Confuse {
			g.effects.Chaos = true
		}
	}
	g.log.Debug("power-up activated", "type", p.Type, "duration", p.Duration)
}

// deactivatePowerUp reverts a timed effect.
func (g *Game) deactivatePowerUp(t PowerUpType) {
	switch t {
	case PowerUpSticky:
		g.ball.Sticky = false
		g.player.Color = White
	case PowerUpPassThrough:
		g.ball.PassThrough = false
		g.ball.Color = White
	case PowerUpConfuse:
		g.effects.Confuse = false
	case PowerUpChaos:
		g.effects.Chaos = false
	}
	g.log.Debug("power-up expired", "type", t)
}

// isOtherPowerUpActive reports whether an activated pickup of type t is
// still in the list.
func (g *Game) isOtherPowerUpActive(t PowerUpType) bool {
	for i := range g.powerUps {
		if g.powerUps[i].Activated && g.powerUps[i].Type == t {
			return true
		}
	}
	return false
}

// updatePowerUps moves pickups, runs effect timers and purges spent ones.
// Each timed type is deactivated independently of the others.
func (g *Game) updatePowerUps(dt float32) {
	for i := range g.powerUps {
		p := &g.powerUps[i]
		p.Position = p.Position.Add(p.Velocity.Mul(dt))
		if !p.Activated {
			continue
		}
		p.Duration -= dt
		if p.Duration > 0 {
			continue
		}
		p.Activated = false
		if p.Type.Timed() && !g.isOtherPowerUpActive(p.Type) {
			g.deactivatePowerUp(p.Type)
		}
	}

	kept := g.powerUps[:0]
	for _, p := range g.powerUps {
		if p.Destroyed && !p.Activated {
			continue
		}
		kept = append(kept, p)
	}
	g.powerUps = kept
}

// PowerUps returns the pickups currently falling or in effect.
func (g *Game) PowerUps() []PowerUp {
	return g.powerUps
}
