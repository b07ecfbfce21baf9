package breakout

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

// TextButton is a text label that acts as a touch button.
// A press inside selects it; a release while selected fires it if the
// release is also inside. Any other input clears both flags.
type TextButton struct {
	Text          string
	Scale         float32
	Color         mgl32.Vec3
	SelectedColor mgl32.Vec3

	min, max mgl32.Vec2
	selected bool
	pressed  bool
}

// NewCenteredButton creates a button horizontally centered on a screen of
// the given width with its top edge at y.
func NewCenteredButton(font Font, text string, y, scale float32, color, selected mgl32.Vec3, screenWidth float32) *TextButton {
	dim := font.Measure(text, scale)
	x := screenWidth/2 - dim.X()/2
	return &TextButton{
		Text:          text,
		Scale:         scale,
		Color:         color,
		SelectedColor: selected,
		min:           mgl32.Vec2{x, y},
		max:           mgl32.Vec2{x + dim.X(), y + dim.Y()},
	}
}

// ProcessInput updates the selection from the last touch action.
func (b *TextButton) ProcessInput(in *core.Input) {
	switch {
	case in.LastAction == core.TouchPress:
		if b.contains(in.Position) {
			b.selected = true
		}
	case in.LastAction == core.TouchRelease && b.selected:
		b.selected = false
		if b.contains(in.Position) {
			b.pressed = true
		}
	default:
		b.selected = false
		b.pressed = false
	}
}

func (b *TextButton) contains(p *mgl32.Vec2) bool {
	if p == nil {
		return false
	}
	return p.X() >= b.min.X() && p.X() <= b.max.X() &&
		p.Y() >= b.min.Y() && p.Y() <= b.max.Y()
}

// Pressed reports whether the button fired.
func (b *TextButton) Pressed() bool {
	return b.pressed
}

// Selected reports whether a press is held on the button.
func (b *TextButton) Selected() bool {
	return b.selected
}

// Reset clears the selection and pressed flags.
func (b *TextButton) Reset() {
	b.selected = false
	b.pressed = false
}

// Bounds returns the top-left and bottom-right corners.
func (b *TextButton) Bounds() (mgl32.Vec2, mgl32.Vec2) {
	return b.min, b.max
}

// Center returns the middle of the button.
func (b *TextButton) Center() mgl32.Vec2 {
	return b.min.Add(b.max).Mul(0.5)
}

// Draw renders the label, highlighted while selected.
func (b *TextButton) Draw(r Renderer) {
	color := b.Color
	if b.selected {
		color = b.SelectedColor
	}
	r.DrawText(b.Text, b.min, b.Scale, color)
}
