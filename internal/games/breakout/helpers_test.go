package breakout

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-breakout/internal/config"
)

// fixedFont measures every glyph as 10x20 pixels at scale 1.
type fixedFont struct{}

func (fixedFont) Measure(text string, scale float32) mgl32.Vec2 {
	return mgl32.Vec2{float32(len(text)) * 10 * scale, 20 * scale}
}

type sprite struct {
	tex   Texture
	pos   mgl32.Vec2
	size  mgl32.Vec2
	color mgl32.Vec4
}

type recordingRenderer struct {
	sprites []sprite
	texts   []string
}

func (r *recordingRenderer) DrawSprite(tex Texture, pos, size mgl32.Vec2, _ float32, color mgl32.Vec4) {
	r.sprites = append(r.sprites, sprite{tex: tex, pos: pos, size: size, color: color})
}

func (r *recordingRenderer) DrawText(text string, _ mgl32.Vec2, _ float32, _ mgl32.Vec3) {
	r.texts = append(r.texts, text)
}

type recordingAudio struct {
	cues []Cue
}

func (a *recordingAudio) Play(c Cue) {
	a.cues = append(a.cues, c)
}

// constRNG always returns v, clamped into range.
type constRNG struct {
	v int
}

func (r constRNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return min(r.v, n-1)
}

func testAssets() Assets {
	textures := make(map[TextureKey]Texture)
	for _, k := range TextureKeys() {
		textures[k] = k
	}
	return Assets{Textures: textures, Font: fixedFont{}}
}

func mustLayout(t *testing.T, name, data string) Layout {
	t.Helper()
	l, err := ParseLayoutString(name, data)
	require.NoError(t, err)
	return l
}

func newTestGame(t *testing.T, cfg config.BreakoutConfig, levels []string, opts ...Option) *Game {
	t.Helper()
	layouts := make([]Layout, len(levels))
	for i, data := range levels {
		layouts[i] = mustLayout(t, "level"+string(rune('a'+i)), data)
	}
	g, err := New(cfg, testAssets(), layouts, opts...)
	require.NoError(t, err)
	return g
}

// tap presses and releases at p, running ProcessInput after each.
func tap(g *Game, p mgl32.Vec2) {
	g.Input().Press(p.X(), p.Y())
	g.ProcessInput(0)
	g.Input().Release(p.X(), p.Y())
	g.ProcessInput(0)
}

func startGame(t *testing.T, g *Game) {
	t.Helper()
	start, _, _ := g.Buttons()
	tap(g, start.Center())
	require.Equal(t, StateActive, g.State())
}
