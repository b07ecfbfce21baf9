package breakout

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Texture is an opaque handle owned by the renderer.
type Texture any

// TextureKey names a texture the game draws.
type TextureKey int

const (
	TextureBackground TextureKey = iota
	TextureBall
	TexturePaddle
	TextureBlock
	TextureBlockSolid
	TextureParticle
	TexturePowerUpSpeed
	TexturePowerUpSticky
	TexturePowerUpPassThrough
	TexturePowerUpIncrease
	TexturePowerUpConfuse
	TexturePowerUpChaos
	textureCount
)

func (k TextureKey) String() string {
	switch k {
	case TextureBackground:
		return "background"
	case TextureBall:
		return "face"
	case TexturePaddle:
		return "paddle"
	case TextureBlock:
		return "block"
	case TextureBlockSolid:
		return "block_solid"
	case TextureParticle:
		return "particle"
	case TexturePowerUpSpeed:
		return "powerup_speed"
	case TexturePowerUpSticky:
		return "powerup_sticky"
	case TexturePowerUpPassThrough:
		return "powerup_passthrough"
	case TexturePowerUpIncrease:
		return "powerup_increase"
	case TexturePowerUpConfuse:
		return "powerup_confuse"
	case TexturePowerUpChaos:
		return "powerup_chaos"
	default:
		return fmt.Sprintf("texture(%d)", int(k))
	}
}

// TextureKeys returns every key the game requires.
func TextureKeys() []TextureKey {
	keys := make([]TextureKey, 0, textureCount)
	for k := range textureCount {
		keys = append(keys, k)
	}
	return keys
}

// ErrMissingTexture is returned by Assets.Validate.
var ErrMissingTexture = errors.New("breakout: missing texture")

// Assets holds the resources resolved once at startup.
type Assets struct {
	Textures map[TextureKey]Texture
	Font     Font
}

// Validate checks that every texture key and the font are present.
func (a Assets) Validate() error {
	for _, k := range TextureKeys() {
		if _, ok := a.Textures[k]; !ok {
			return fmt.Errorf("%w: %s", ErrMissingTexture, k)
		}
	}
	if a.Font == nil {
		return errors.New("breakout: missing font")
	}
	return nil
}

// Texture returns the handle for k.
func (a Assets) Texture(k TextureKey) Texture {
	return a.Textures[k]
}

// Renderer draws sprites and text. Positions and sizes are playfield
// pixels; rotation is in degrees.
type Renderer interface {
	DrawSprite(tex Texture, pos, size mgl32.Vec2, rotation float32, color mgl32.Vec4)
	DrawText(text string, pos mgl32.Vec2, scale float32, color mgl32.Vec3)
}

// Font measures text as DrawText would lay it out.
type Font interface {
	Measure(text string, scale float32) mgl32.Vec2
}

// Cue names a sound the game requests.
type Cue int

const (
	CueBleep   Cue = iota // Non-solid brick hit
	CueSolid              // Solid brick hit
	CuePaddle             // Ball off the paddle
	CuePowerUp            // Pickup caught
)

func (c Cue) String() string {
	switch c {
	case CueBleep:
		return "bleep"
	case CueSolid:
		return "solid"
	case CuePaddle:
		return "paddle"
	case CuePowerUp:
		return "powerup"
	default:
		return "unknown"
	}
}

// Audio plays cues fire-and-forget.
type Audio interface {
	Play(c Cue)
}

type nopAudio struct{}

func (nopAudio) Play(Cue) {}
