package breakout

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Particle is one trail sprite. It is dead once Life <= 0.
type Particle struct {
	Position mgl32.Vec2
	Velocity mgl32.Vec2
	Color    mgl32.Vec4
	Life     float32
}

// ParticleGenerator keeps a fixed pool of particles trailing an entity.
type ParticleGenerator struct {
	particles []Particle
	lastUsed  int
	size      mgl32.Vec2
	texture   Texture
	rng       RNG
}

// NewParticleGenerator creates a pool of n dead particles.
func NewParticleGenerator(n int, size float32, tex Texture, rng RNG) *ParticleGenerator {
	return &ParticleGenerator{
		particles: make([]Particle, n),
		size:      mgl32.Vec2{size, size},
		texture:   tex,
		rng:       rng,
	}
}

// Update respawns newParticles at e (shifted by offset) and ages the pool.
func (pg *ParticleGenerator) Update(dt float32, e *Entity, newParticles int, offset mgl32.Vec2) {
	if len(pg.particles) == 0 {
		return
	}
	for range newParticles {
		pg.respawn(&pg.particles[pg.firstUnused()], e, offset)
	}
	for i := range pg.particles {
		p := &pg.particles[i]
		p.Life -= dt
		if p.Life > 0 {
			p.Position = p.Position.Sub(p.Velocity.Mul(dt))
			p.Color[3] -= dt * 2.5
		}
	}
}

// firstUnused returns a dead particle, searching from the last one
// handed out. When all are alive it recycles slot 0.
func (pg *ParticleGenerator) firstUnused() int {
	for i := pg.lastUsed; i < len(pg.particles); i++ {
		if pg.particles[i].Life <= 0 {
			pg.lastUsed = i
			return i
		}
	}
	for i := 0; i < pg.lastUsed; i++ {
		if pg.particles[i].Life <= 0 {
			pg.lastUsed = i
			return i
		}
	}
	pg.lastUsed = 0
	return 0
}

func (pg *ParticleGenerator) respawn(p *Particle, e *Entity, offset mgl32.Vec2) {
	jitter := float32(pg.rng.Intn(100)-50) / 10
	shade := 0.5 + float32(pg.rng.Intn(100))/100
	p.Position = e.Position.Add(mgl32.Vec2{jitter, jitter}).Add(offset)
	p.Color = mgl32.Vec4{shade, shade, shade, 1}
	p.Life = 1
	p.Velocity = e.Velocity.Mul(0.1)
}

// Reset kills every particle.
func (pg *ParticleGenerator) Reset() {
	for i := range pg.particles {
		pg.particles[i] = Particle{}
	}
	pg.lastUsed = 0
}

// Alive returns the number of live particles.
func (pg *ParticleGenerator) Alive() int {
	n := 0
	for i := range pg.particles {
		if pg.particles[i].Life > 0 {
			n++
		}
	}
	return n
}

// Draw renders the live particles.
func (pg *ParticleGenerator) Draw(r Renderer) {
	for i := range pg.particles {
		if p := &pg.particles[i]; p.Life > 0 {
			r.DrawSprite(pg.texture, p.Position, pg.size, 0, p.Color)
		}
	}
}
