package breakout

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Direction is the side of a target a ball struck, expressed as the axis
// the collision vector points along.
type Direction int

const (
	DirUp Direction = iota
	DirRight
	DirDown
	DirLeft
)

// compass lists the unit axes in tie-break order.
var compass = [...]mgl32.Vec2{
	DirUp:    {0, 1},
	DirRight: {1, 0},
	DirDown:  {0, -1},
	DirLeft:  {-1, 0},
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirRight:
		return "right"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	default:
		return "unknown"
	}
}

// Collision is the result of a circle-vs-AABB test.
type Collision struct {
	Hit        bool
	Direction  Direction
	Difference mgl32.Vec2 // Closest point on the target minus ball center
}

// VectorDirection returns the compass axis best aligned with target.
// The first axis reaching the running maximum wins, so ties resolve in
// the order up, right, down, left. A zero vector maps to up.
func VectorDirection(target mgl32.Vec2) Direction {
	if target.Len() == 0 {
		return DirUp
	}
	n := target.Normalize()
	var maxDot float32
	best := DirUp
	for i, axis := range compass {
		if dot := n.Dot(axis); dot > maxDot {
			maxDot = dot
			best = Direction(i)
		}
	}
	return best
}

// CheckCollision tests a ball against an axis-aligned entity.
func CheckCollision(ball *Ball, obj *Entity) Collision {
	center := ball.Position.Add(mgl32.Vec2{ball.Radius, ball.Radius})

	half := obj.Size.Mul(0.5)
	aabbCenter := obj.Position.Add(half)

	diff := center.Sub(aabbCenter)
	clamped := mgl32.Vec2{
		mgl32.Clamp(diff.X(), -half.X(), half.X()),
		mgl32.Clamp(diff.Y(), -half.Y(), half.Y()),
	}
	closest := aabbCenter.Add(clamped)

	diff = closest.Sub(center)
	if diff.Len() < ball.Radius {
		return Collision{Hit: true, Direction: VectorDirection(diff), Difference: diff}
	}
	return Collision{Direction: DirUp}
}

// CheckAABB reports whether two rectangles overlap on both axes.
// Touching edges count as overlap.
func CheckAABB(a, b *Entity) bool {
	collisionX := a.Position.X()+a.Size.X() >= b.Position.X() &&
		b.Position.X()+b.Size.X() >= a.Position.X()
	collisionY := a.Position.Y()+a.Size.Y() >= b.Position.Y() &&
		b.Position.Y()+b.Size.Y() >= a.Position.Y()
	return collisionX && collisionY
}

// ResolveBrick reflects the ball off the struck face and pushes it out of
// the brick along that axis.
func ResolveBrick(ball *Ball, c Collision) {
	switch c.Direction {
	case DirLeft, DirRight:
		ball.Velocity[0] = -ball.Velocity[0]
		penetration := ball.Radius - mgl32.Abs(c.Difference.X())
		if c.Direction == DirLeft {
			ball.Position[0] += penetration
		} else {
			ball.Position[0] -= penetration
		}
	case DirUp, DirDown:
		ball.Velocity[1] = -ball.Velocity[1]
		penetration := ball.Radius - mgl32.Abs(c.Difference.Y())
		if c.Direction == DirUp {
			ball.Position[1] -= penetration
		} else {
			ball.Position[1] += penetration
		}
	}
}

// BouncePaddle deflects the ball by where it struck the paddle, keeping
// its speed and forcing it upward. base is the launch velocity and
// strength scales the horizontal deflection.
func BouncePaddle(ball *Ball, paddle *Entity, base mgl32.Vec2, strength float32) {
	centerBoard := paddle.Position.X() + paddle.Size.X()/2
	distance := ball.Position.X() + ball.Radius - centerBoard
	percentage := distance / (paddle.Size.X() / 2)

	speed := ball.Velocity.Len()
	ball.Velocity[0] = base.X() * percentage * strength
	ball.Velocity = ball.Velocity.Normalize().Mul(speed)
	ball.Velocity[1] = -mgl32.Abs(ball.Velocity.Y())
	ball.Stuck = ball.Sticky
}
