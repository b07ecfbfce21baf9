package core

import colorful "github.com/lucasb-eyer/go-colorful"

// Color is a 24-bit terminal color in "#rrggbb" form.
// The zero value keeps the terminal's default color.
type Color string

// ColorDefault leaves the cell in the terminal's default color.
const ColorDefault Color = ""

// RGB builds a Color from float components in [0, 1]. Out-of-range
// components are clamped.
func RGB(r, g, b float64) Color {
	return Color(colorful.Color{R: r, G: g, B: b}.Clamped().Hex())
}

// Scale darkens (or brightens) the color by factor, keeping the hue.
func (c Color) Scale(factor float64) Color {
	if c == ColorDefault {
		return c
	}
	col, err := colorful.Hex(string(c))
	if err != nil {
		return c
	}
	return RGB(col.R*factor, col.G*factor, col.B*factor)
}
