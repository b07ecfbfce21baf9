package breakout

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestNewEntityPanicsOnEmptySize(t *testing.T) {
	assert.Panics(t, func() { NewEntity(mgl32.Vec2{}, mgl32.Vec2{0, 10}, nil) })
	assert.Panics(t, func() { NewEntity(mgl32.Vec2{}, mgl32.Vec2{10, -1}, nil) })
	assert.NotPanics(t, func() { NewEntity(mgl32.Vec2{}, mgl32.Vec2{1, 1}, nil) })
}

func TestNewBall(t *testing.T) {
	assert.Panics(t, func() { NewBall(mgl32.Vec2{}, 0, mgl32.Vec2{}, nil) })

	b := NewBall(mgl32.Vec2{1, 2}, 12.5, mgl32.Vec2{100, -600}, nil)
	if !b.Stuck {
		t.Error("new ball should be stuck")
	}
	if b.Size != (mgl32.Vec2{25, 25}) {
		t.Errorf("ball size = %v, want [25 25]", b.Size)
	}
	if b.Color != White {
		t.Errorf("ball color = %v, want white", b.Color)
	}
}

func TestBallMoveStuck(t *testing.T) {
	b := NewBall(mgl32.Vec2{50, 50}, 10, mgl32.Vec2{100, 100}, nil)
	if got := b.Move(1, 800); got != (mgl32.Vec2{50, 50}) {
		t.Errorf("stuck ball moved to %v", got)
	}
}

func TestBallWallBounce(t *testing.T) {
	tests := []struct {
		name    string
		pos     mgl32.Vec2
		vel     mgl32.Vec2
		wantPos mgl32.Vec2
		wantVel mgl32.Vec2
	}{
		{"left wall", mgl32.Vec2{5, 100}, mgl32.Vec2{-100, 0}, mgl32.Vec2{0, 100}, mgl32.Vec2{100, 0}},
		{"right wall", mgl32.Vec2{75, 100}, mgl32.Vec2{100, 0}, mgl32.Vec2{80, 100}, mgl32.Vec2{-100, 0}},
		{"top wall", mgl32.Vec2{40, 5}, mgl32.Vec2{0, -100}, mgl32.Vec2{40, 0}, mgl32.Vec2{0, 100}},
		{"no bottom wall", mgl32.Vec2{40, 95}, mgl32.Vec2{0, 100}, mgl32.Vec2{40, 105}, mgl32.Vec2{0, 100}},
		{"free flight", mgl32.Vec2{40, 40}, mgl32.Vec2{50, -50}, mgl32.Vec2{45, 35}, mgl32.Vec2{50, -50}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBall(tt.pos, 10, tt.vel, nil)
			b.Stuck = false
			got := b.Move(0.1, 100)
			assert.InDelta(t, tt.wantPos.X(), got.X(), 1e-4)
			assert.InDelta(t, tt.wantPos.Y(), got.Y(), 1e-4)
			assert.InDelta(t, tt.wantVel.X(), b.Velocity.X(), 1e-4)
			assert.InDelta(t, tt.wantVel.Y(), b.Velocity.Y(), 1e-4)
		})
	}
}

func TestBallReset(t *testing.T) {
	b := NewBall(mgl32.Vec2{}, 10, mgl32.Vec2{}, nil)
	b.Stuck = false
	b.Reset(mgl32.Vec2{3, 4}, mgl32.Vec2{5, 6})
	if !b.Stuck || b.Position != (mgl32.Vec2{3, 4}) || b.Velocity != (mgl32.Vec2{5, 6}) {
		t.Errorf("Reset left ball at %v vel %v stuck %v", b.Position, b.Velocity, b.Stuck)
	}
}
