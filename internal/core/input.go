package core

import "github.com/go-gl/mathgl/mgl32"

// TouchAction is the last discrete pointer action reported by the host.
type TouchAction int

const (
	TouchNone    TouchAction = iota
	TouchPress               // Finger down / mouse button pressed
	TouchRelease             // Finger up / mouse button released
)

// String returns a human-readable name for the action.
func (a TouchAction) String() string {
	switch a {
	case TouchNone:
		return "None"
	case TouchPress:
		return "Press"
	case TouchRelease:
		return "Release"
	default:
		return "Unknown"
	}
}

// Input tracks the last touch action and its position in playfield pixels.
// The host writes it between frames; the game reads it during ProcessInput
// and clears the latch once it has consumed a release.
type Input struct {
	LastAction TouchAction
	Position   *mgl32.Vec2 // nil when no pointer position is known
}

// NewInput creates an empty input tracker.
func NewInput() *Input {
	return &Input{}
}

// Press records a press at (x, y).
func (in *Input) Press(x, y float32) {
	in.LastAction = TouchPress
	in.Position = &mgl32.Vec2{x, y}
}

// Release records a release at (x, y).
func (in *Input) Release(x, y float32) {
	in.LastAction = TouchRelease
	in.Position = &mgl32.Vec2{x, y}
}

// Clear drops the action latch and the position.
func (in *Input) Clear() {
	in.LastAction = TouchNone
	in.Position = nil
}

// IsPressed reports whether a press is currently held.
func (in *Input) IsPressed() bool {
	return in.LastAction == TouchPress
}

// IsLowerLeft reports whether the position lies in the lower-left quadrant
// of a width x height playfield.
func (in *Input) IsLowerLeft(width, height int) bool {
	if in.Position == nil {
		return false
	}
	return in.Position.X() < float32(width)/2 && in.Position.Y() > float32(height)/2
}

// IsLowerRight reports whether the position lies in the lower-right quadrant
// of a width x height playfield.
func (in *Input) IsLowerRight(width, height int) bool {
	if in.Position == nil {
		return false
	}
	return in.Position.X() > float32(width)/2 && in.Position.Y() > float32(height)/2
}
