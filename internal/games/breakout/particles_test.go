package breakout

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestParticleSpawnAndFade(t *testing.T) {
	pg := NewParticleGenerator(10, 10, TextureParticle, constRNG{v: 50})
	e := NewEntity(mgl32.Vec2{100, 100}, mgl32.Vec2{20, 20}, nil)
	e.Velocity = mgl32.Vec2{100, -200}

	pg.Update(0, &e, 2, mgl32.Vec2{5, 5})
	assert.Equal(t, 2, pg.Alive())

	p := pg.particles[0]
	// Jitter (50-50)/10 = 0, shade 0.5 + 0.5 = 1.
	assert.Equal(t, mgl32.Vec2{105, 105}, p.Position)
	assert.Equal(t, mgl32.Vec4{1, 1, 1, 1}, p.Color)
	assert.Equal(t, mgl32.Vec2{10, -20}, p.Velocity)

	pg.Update(0.1, &e, 0, mgl32.Vec2{})
	p = pg.particles[0]
	assert.InDelta(t, 0.9, p.Life, 1e-5)
	assert.InDelta(t, 0.75, p.Color.W(), 1e-5)
	assert.InDelta(t, 104, p.Position.X(), 1e-4)
	assert.InDelta(t, 107, p.Position.Y(), 1e-4)

	pg.Update(1, &e, 0, mgl32.Vec2{})
	assert.Equal(t, 0, pg.Alive())
}

func TestParticlePoolRecyclesFirstSlot(t *testing.T) {
	pg := NewParticleGenerator(3, 10, nil, constRNG{})
	e := NewEntity(mgl32.Vec2{}, mgl32.Vec2{1, 1}, nil)

	pg.Update(0, &e, 3, mgl32.Vec2{})
	assert.Equal(t, 3, pg.Alive())
	if got := pg.firstUnused(); got != 0 {
		t.Errorf("firstUnused() with full pool = %d, want 0", got)
	}

	pg.particles[1].Life = 0
	if got := pg.firstUnused(); got != 1 {
		t.Errorf("firstUnused() = %d, want 1", got)
	}

	pg.Reset()
	assert.Equal(t, 0, pg.Alive())
}

func TestParticleDrawOnlyAlive(t *testing.T) {
	pg := NewParticleGenerator(5, 10, TextureParticle, constRNG{})
	e := NewEntity(mgl32.Vec2{}, mgl32.Vec2{1, 1}, nil)
	pg.Update(0, &e, 2, mgl32.Vec2{})

	r := &recordingRenderer{}
	pg.Draw(r)
	assert.Len(t, r.sprites, 2)
	assert.Equal(t, mgl32.Vec2{10, 10}, r.sprites[0].size)
}

func TestEmptyParticlePool(t *testing.T) {
	pg := NewParticleGenerator(0, 10, nil, constRNG{})
	e := NewEntity(mgl32.Vec2{}, mgl32.Vec2{1, 1}, nil)
	assert.NotPanics(t, func() { pg.Update(0.1, &e, 2, mgl32.Vec2{}) })
}
