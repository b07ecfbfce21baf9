package tui

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
)

// Sprite is the terminal texture handle: the rune a sprite is filled with
// and an optional label stamped in its middle.
type Sprite struct {
	Rune  rune
	Label string
	Fixed core.Color // Overrides the draw tint when set
}

// Backdrop is the color of the empty playfield.
const Backdrop core.Color = "#0b0b14"

// chaosHueSpeed is the hue rotation in degrees per second while chaos is on.
const chaosHueSpeed = 180

// Sprites maps every texture the game uses to its terminal sprite.
func Sprites() map[breakout.TextureKey]breakout.Texture {
	return map[breakout.TextureKey]breakout.Texture{
		breakout.TextureBackground:         Sprite{Rune: ' ', Fixed: Backdrop},
		breakout.TextureBall:               Sprite{Rune: '●'},
		breakout.TexturePaddle:             Sprite{Rune: '▀'},
		breakout.TextureBlock:              Sprite{Rune: '▓'},
		breakout.TextureBlockSolid:         Sprite{Rune: '█'},
		breakout.TextureParticle:           Sprite{Rune: '·'},
		breakout.TexturePowerUpSpeed:       Sprite{Rune: '░', Label: "S"},
		breakout.TexturePowerUpSticky:      Sprite{Rune: '░', Label: "G"},
		breakout.TexturePowerUpPassThrough: Sprite{Rune: '░', Label: "P"},
		breakout.TexturePowerUpIncrease:    Sprite{Rune: '░', Label: "+"},
		breakout.TexturePowerUpConfuse:     Sprite{Rune: '░', Label: "?"},
		breakout.TexturePowerUpChaos:       Sprite{Rune: '░', Label: "!"},
	}
}

type textOp struct {
	x, y  int
	text  string
	color core.Color
}

// Renderer draws the game onto a core.Screen. Playfield pixels are mapped
// to cells by scaling the field onto the screen. Text is queued and drawn
// after post-processing so effects never scramble the HUD.
//
// Renderer also implements breakout.Font: every rune takes one cell.
type Renderer struct {
	screen         *core.Screen
	fieldW, fieldH float32

	effects breakout.Effects
	elapsed float32
	frame   int
	texts   []textOp
}

// NewRenderer creates a renderer mapping a fieldW x fieldH playfield onto screen.
func NewRenderer(screen *core.Screen, fieldW, fieldH float32) *Renderer {
	return &Renderer{screen: screen, fieldW: fieldW, fieldH: fieldH}
}

// Screen returns the target screen.
func (r *Renderer) Screen() *core.Screen {
	return r.screen
}

// cellSize returns the playfield size of one cell.
func (r *Renderer) cellSize() (float32, float32) {
	w, h := max(r.screen.Width(), 1), max(r.screen.Height(), 1)
	return r.fieldW / float32(w), r.fieldH / float32(h)
}

// ToCell maps a playfield point to the cell containing it.
func (r *Renderer) ToCell(p mgl32.Vec2) (int, int) {
	cw, ch := r.cellSize()
	return int(math.Floor(float64(p.X() / cw))), int(math.Floor(float64(p.Y() / ch)))
}

// ToField maps a cell to the playfield point at its center.
func (r *Renderer) ToField(x, y int) mgl32.Vec2 {
	cw, ch := r.cellSize()
	return mgl32.Vec2{(float32(x) + 0.5) * cw, (float32(y) + 0.5) * ch}
}

// Begin starts a frame with the game's current effects.
func (r *Renderer) Begin(effects breakout.Effects, elapsed float32) {
	r.effects = effects
	r.elapsed = elapsed
	r.texts = r.texts[:0]
	r.screen.FillCell(core.Cell{Rune: ' ', BG: Backdrop})
}

// DrawSprite fills the cells covered by the sprite. Rotation is ignored;
// alpha darkens the tint toward black and near-transparent sprites are skipped.
func (r *Renderer) DrawSprite(tex breakout.Texture, pos, size mgl32.Vec2, _ float32, color mgl32.Vec4) {
	sp, ok := tex.(Sprite)
	if !ok || color.W() <= 0.05 {
		return
	}

	tint := sp.Fixed
	if tint == core.ColorDefault {
		a := float64(color.W())
		tint = core.RGB(float64(color.X())*a, float64(color.Y())*a, float64(color.Z())*a)
	}

	cw, ch := r.cellSize()
	x0 := int(math.Floor(float64(pos.X() / cw)))
	y0 := int(math.Floor(float64(pos.Y() / ch)))
	x1 := max(int(math.Ceil(float64((pos.X()+size.X())/cw)))-1, x0)
	y1 := max(int(math.Ceil(float64((pos.Y()+size.Y())/ch)))-1, y0)

	rect := core.NewRect(x0, y0, x1-x0+1, y1-y0+1)
	if !rect.Intersects(r.screen.Bounds()) {
		return
	}
	if sp.Rune == ' ' {
		r.screen.FillRect(rect, core.Cell{Rune: ' ', BG: tint})
		return
	}

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			cell := r.screen.GetCell(x, y)
			cell.Rune = sp.Rune
			cell.FG = tint
			r.screen.SetCell(x, y, cell)
		}
	}

	if sp.Label != "" {
		cx, cy := rect.Center()
		r.screen.DrawTextColored(cx-len([]rune(sp.Label))/2, cy, sp.Label, tint.Scale(0.4))
	}
}

// DrawText queues text at a playfield position. Scale is ignored.
func (r *Renderer) DrawText(text string, pos mgl32.Vec2, _ float32, color mgl32.Vec3) {
	x, y := r.ToCell(pos)
	r.texts = append(r.texts, textOp{
		x:     x,
		y:     y,
		text:  text,
		color: core.RGB(float64(color.X()), float64(color.Y()), float64(color.Z())),
	})
}

// Measure implements breakout.Font.
func (r *Renderer) Measure(text string, _ float32) mgl32.Vec2 {
	cw, ch := r.cellSize()
	return mgl32.Vec2{float32(len([]rune(text))) * cw, ch}
}

// End applies the post-processing effects and draws the queued text.
func (r *Renderer) End() {
	if r.effects.Chaos {
		r.mapColors(r.rotateHue)
	}
	if r.effects.Confuse {
		r.flip()
		r.mapColors(invert)
	}
	if r.effects.Shake && r.frame%2 == 0 {
		r.shift()
	}
	for _, t := range r.texts {
		r.screen.DrawTextColored(t.x, t.y, t.text, t.color)
	}
	r.frame++
}

func (r *Renderer) mapColors(fn func(core.Color) core.Color) {
	for y := range r.screen.Height() {
		for x := range r.screen.Width() {
			c := r.screen.GetCell(x, y)
			c.FG = fn(c.FG)
			c.BG = fn(c.BG)
			r.screen.SetCell(x, y, c)
		}
	}
}

func (r *Renderer) rotateHue(c core.Color) core.Color {
	col, err := colorful.Hex(string(c))
	if c == core.ColorDefault || err != nil {
		return c
	}
	h, s, v := col.Hsv()
	h = math.Mod(h+float64(r.elapsed)*chaosHueSpeed, 360)
	return core.Color(colorful.Hsv(h, s, v).Clamped().Hex())
}

func invert(c core.Color) core.Color {
	col, err := colorful.Hex(string(c))
	if c == core.ColorDefault || err != nil {
		return c
	}
	return core.RGB(1-col.R, 1-col.G, 1-col.B)
}

// flip mirrors the screen on both axes.
func (r *Renderer) flip() {
	w, h := r.screen.Width(), r.screen.Height()
	for i := range (w*h + 1) / 2 {
		x, y := i%w, i/w
		ox, oy := w-1-x, h-1-y
		a, b := r.screen.GetCell(x, y), r.screen.GetCell(ox, oy)
		r.screen.SetCell(x, y, b)
		r.screen.SetCell(ox, oy, a)
	}
}

// shift moves the picture one cell right, leaving backdrop at the left edge.
func (r *Renderer) shift() {
	w := r.screen.Width()
	for y := range r.screen.Height() {
		for x := w - 1; x > 0; x-- {
			r.screen.SetCell(x, y, r.screen.GetCell(x-1, y))
		}
		r.screen.SetCell(0, y, core.Cell{Rune: ' ', BG: Backdrop})
	}
}
