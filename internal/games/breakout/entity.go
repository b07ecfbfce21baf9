package breakout

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// White is the default entity tint.
var White = mgl32.Vec3{1, 1, 1}

// Entity is a positioned, sized and tinted axis-aligned rectangle.
// Position is the top-left corner in playfield pixels; Y grows downward.
type Entity struct {
	Position  mgl32.Vec2
	Size      mgl32.Vec2
	Velocity  mgl32.Vec2
	Color     mgl32.Vec3
	Rotation  float32 // Degrees
	Solid     bool
	Destroyed bool
	Texture   Texture
}

// NewEntity creates a white entity. It panics if size is not positive on
// both axes.
func NewEntity(pos, size mgl32.Vec2, tex Texture) Entity {
	if size.X() <= 0 || size.Y() <= 0 {
		panic(fmt.Sprintf("breakout: entity size must be positive, got %v", size))
	}
	return Entity{
		Position: pos,
		Size:     size,
		Color:    White,
		Texture:  tex,
	}
}

// Center returns the center point of the rectangle.
func (e *Entity) Center() mgl32.Vec2 {
	return e.Position.Add(e.Size.Mul(0.5))
}

// Draw issues a single sprite draw for the entity.
func (e *Entity) Draw(r Renderer) {
	r.DrawSprite(e.Texture, e.Position, e.Size, e.Rotation, e.Color.Vec4(1))
}

// Ball is a circular entity. Its Size is always [2r, 2r].
type Ball struct {
	Entity
	Radius      float32
	Stuck       bool // Glued to the paddle
	Sticky      bool // Re-sticks on the next paddle hit
	PassThrough bool // Ignores non-solid bricks
}

// NewBall creates a ball stuck to the paddle. It panics if radius <= 0.
func NewBall(pos mgl32.Vec2, radius float32, vel mgl32.Vec2, tex Texture) Ball {
	if radius <= 0 {
		panic(fmt.Sprintf("breakout: ball radius must be positive, got %v", radius))
	}
	e := NewEntity(pos, mgl32.Vec2{radius * 2, radius * 2}, tex)
	e.Velocity = vel
	e.Solid = true
	return Ball{Entity: e, Radius: radius, Stuck: true}
}

// Move integrates the ball unless it is stuck, bouncing off the left,
// right and top walls. There is no bottom wall.
func (b *Ball) Move(dt float32, width float32) mgl32.Vec2 {
	if b.Stuck {
		return b.Position
	}

	b.Position = b.Position.Add(b.Velocity.Mul(dt))

	if b.Position.X() <= 0 {
		b.Velocity[0] = -b.Velocity[0]
		b.Position[0] = 0
	} else if b.Position.X()+b.Size.X() >= width {
		b.Velocity[0] = -b.Velocity[0]
		b.Position[0] = width - b.Size.X()
	}

	if b.Position.Y() <= 0 {
		b.Velocity[1] = -b.Velocity[1]
		b.Position[1] = 0
	}

	return b.Position
}

// Reset places the ball at pos with vel and sticks it to the paddle.
func (b *Ball) Reset(pos, vel mgl32.Vec2) {
	b.Position = pos
	b.Velocity = vel
	b.Stuck = true
}
