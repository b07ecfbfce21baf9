package breakout

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
)

// State is the game state machine position.
type State int

const (
	StateMenu   State = iota // Level select, ball stuck
	StateActive              // Playing
	StateWin                 // Level cleared, waiting for retry
)

func (s State) String() string {
	switch s {
	case StateMenu:
		return "menu"
	case StateActive:
		return "active"
	case StateWin:
		return "win"
	default:
		return "unknown"
	}
}

var (
	// ErrNoLevels is returned when a game is created without layouts.
	ErrNoLevels = errors.New("breakout: no levels")
	// ErrNotInMenu is returned when levels are changed outside the menu.
	ErrNotInMenu = errors.New("breakout: levels can only change in the menu")
)

// Menu text colors.
var (
	textColor     = mgl32.Vec3{1, 1, 1}
	selectedColor = mgl32.Vec3{1, 1, 0}
)

// Option configures a Game.
type Option func(*Game)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) {
		if l != nil {
			g.log = l
		}
	}
}

// WithAudio sets the cue sink. The default is silent.
func WithAudio(a Audio) Option {
	return func(g *Game) {
		if a != nil {
			g.audio = a
		}
	}
}

// WithRNG sets the randomness source. The default is a SimpleRNG seeded
// with 1.
func WithRNG(r RNG) Option {
	return func(g *Game) {
		if r != nil {
			g.rng = r
		}
	}
}

// WithInput shares an input tracker with the host.
func WithInput(in *core.Input) Option {
	return func(g *Game) {
		if in != nil {
			g.input = in
		}
	}
}

// Game is the Breakout engine. It is not safe for concurrent use; the host
// calls ProcessInput, Update and Render once per frame in that order.
type Game struct {
	cfg           config.BreakoutConfig
	width, height float32
	assets        Assets

	log   *log.Logger
	audio Audio
	rng   RNG
	input *core.Input

	state     State
	levels    []*Level
	level     int
	lives     int
	score     int
	shakeTime float32
	elapsed   float32
	effects   Effects

	player    Entity
	ball      Ball
	powerUps  []PowerUp
	particles *ParticleGenerator

	startButton *TextButton
	nextButton  *TextButton
	retryButton *TextButton
}

// New creates a game in the menu with the first layout loaded.
func New(cfg config.BreakoutConfig, assets Assets, layouts []Layout, opts ...Option) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := assets.Validate(); err != nil {
		return nil, err
	}
	if len(layouts) == 0 {
		return nil, ErrNoLevels
	}

	g := &Game{
		cfg:    cfg,
		width:  float32(cfg.Playfield.Width),
		height: float32(cfg.Playfield.Height),
		assets: assets,
		log:    log.New(io.Discard),
		audio:  nopAudio{},
		rng:    NewSimpleRNG(1),
		input:  core.NewInput(),
		lives:  cfg.Gameplay.Lives,
	}
	for _, opt := range opts {
		opt(g)
	}

	g.buildLevels(layouts)

	g.player = NewEntity(mgl32.Vec2{}, mgl32.Vec2{cfg.Paddle.Width, cfg.Paddle.Height}, assets.Texture(TexturePaddle))
	g.player.Solid = true
	g.ball = NewBall(mgl32.Vec2{}, cfg.Ball.Radius, g.initialVelocity(), assets.Texture(TextureBall))
	g.particles = NewParticleGenerator(cfg.Particles.Count, cfg.Particles.Size, assets.Texture(TextureParticle), g.rng)

	font := assets.Font
	lineH := font.Measure("Start", 1).Y()
	g.startButton = NewCenteredButton(font, "Start", g.height/2, 1, textColor, selectedColor, g.width)
	g.nextButton = NewCenteredButton(font, "Next level", g.height/2+lineH*2, 1, textColor, selectedColor, g.width)
	g.retryButton = NewCenteredButton(font, "Retry", g.height/2, 1, textColor, selectedColor, g.width)

	g.resetPlayer()
	g.log.Debug("game created", "levels", len(g.levels), "lives", g.lives)
	return g, nil
}

func (g *Game) buildLevels(layouts []Layout) {
	g.levels = make([]*Level, len(layouts))
	for i, l := range layouts {
		lvl := NewLevel(l, g.assets.Texture(TextureBlock), g.assets.Texture(TextureBlockSolid))
		lvl.Load(g.width, g.height/2)
		g.levels[i] = lvl
	}
}

func (g *Game) initialVelocity() mgl32.Vec2 {
	return mgl32.Vec2{g.cfg.Ball.VelocityX, g.cfg.Ball.VelocityY}
}

func (g *Game) setState(s State) {
	if g.state == s {
		return
	}
	g.log.Debug("state changed", "from", g.state, "to", s)
	g.state = s
}

// ProcessInput consumes the input tracker according to the current state.
func (g *Game) ProcessInput(dt float32) {
	switch g.state {
	case StateMenu:
		g.startButton.ProcessInput(g.input)
		g.nextButton.ProcessInput(g.input)
		switch {
		case g.startButton.Pressed():
			g.startButton.Reset()
			g.input.Clear()
			g.lives = g.cfg.Gameplay.Lives
			g.score = 0
			g.setState(StateActive)
		case g.nextButton.Pressed():
			g.nextButton.Reset()
			g.input.Clear()
			g.level = (g.level + 1) % len(g.levels)
			g.resetLevel()
			g.resetPlayer()
			g.log.Debug("level selected", "index", g.level, "name", g.LevelName())
		}

	case StateWin:
		g.retryButton.ProcessInput(g.input)
		if g.retryButton.Pressed() {
			g.retryButton.Reset()
			g.input.Clear()
			g.effects.Chaos = false
			g.setState(StateMenu)
		}

	case StateActive:
		w, h := g.cfg.Playfield.Width, g.cfg.Playfield.Height
		left := g.input.IsLowerLeft(w, h)
		right := g.input.IsLowerRight(w, h)
		if g.input.IsPressed() {
			velocity := g.cfg.Paddle.Speed * dt
			x := g.player.Position.X()
			switch {
			case left && x > 0:
				x = max(x-velocity, 0)
			case right && x < g.width-g.player.Size.X():
				x = min(x+velocity, g.width-g.player.Size.X())
			}
			if moved := x - g.player.Position.X(); moved != 0 {
				g.player.Position[0] = x
				if g.ball.Stuck {
					g.ball.Position[0] += moved
				}
			}
		}
		if g.input.LastAction == core.TouchRelease {
			if g.ball.Stuck && !left && !right {
				g.ball.Stuck = false
				g.log.Debug("ball released")
			}
			g.input.Clear()
		}
	}
}

// Update advances the simulation by dt seconds.
func (g *Game) Update(dt float32) {
	g.elapsed += dt

	g.ball.Move(dt, g.width)
	g.doCollisions()

	offset := g.ball.Radius / 2
	g.particles.Update(dt, &g.ball.Entity, g.cfg.Particles.PerFrame, mgl32.Vec2{offset, offset})
	g.updatePowerUps(dt)
	g.updateShake(dt)

	if g.ball.Position.Y() >= g.height {
		g.loseLife()
	}

	if g.state == StateActive && g.levels[g.level].IsCompleted() {
		g.resetLevel()
		g.resetPlayer()
		g.effects.Chaos = true
		g.setState(StateWin)
		g.log.Info("level completed", "level", g.LevelName(), "score", g.score)
	}
}

func (g *Game) loseLife() {
	g.lives--
	g.log.Debug("life lost", "lives", g.lives)
	if g.lives <= 0 {
		g.lives = 0
		g.resetLevel()
		g.setState(StateMenu)
		g.log.Info("game over", "level", g.LevelName(), "score", g.score)
	}
	g.resetPlayer()
}

func (g *Game) doCollisions() {
	level := g.levels[g.level]
	for i := range level.Bricks {
		brick := &level.Bricks[i]
		if brick.Destroyed {
			continue
		}
		c := CheckCollision(&g.ball, brick)
		if !c.Hit {
			continue
		}
		if brick.Solid {
			g.startShake()
			g.audio.Play(CueSolid)
		} else {
			brick.Destroyed = true
			g.score += g.cfg.Gameplay.BrickPoints
			g.spawnPowerUps(brick)
			g.audio.Play(CueBleep)
		}
		if g.ball.PassThrough && !brick.Solid {
			continue
		}
		ResolveBrick(&g.ball, c)
	}

	for i := range g.powerUps {
		p := &g.powerUps[i]
		if p.Destroyed {
			continue
		}
		if p.Position.Y() >= g.height {
			p.Destroyed = true
		}
		if CheckAABB(&g.player, &p.Entity) {
			g.activatePowerUp(p)
			p.Destroyed = true
			p.Activated = true
			g.audio.Play(CuePowerUp)
		}
	}

	if g.ball.Stuck {
		return
	}
	if c := CheckCollision(&g.ball, &g.player); c.Hit {
		BouncePaddle(&g.ball, &g.player, g.initialVelocity(), g.cfg.Ball.Strength)
		g.audio.Play(CuePaddle)
	}
}

func (g *Game) resetLevel() {
	g.levels[g.level].Load(g.width, g.height/2)
}

// resetPlayer puts the paddle and a stuck ball back at the start and
// clears every power-up effect.
func (g *Game) resetPlayer() {
	pw, ph := g.cfg.Paddle.Width, g.cfg.Paddle.Height
	g.player.Size = mgl32.Vec2{pw, ph}
	g.player.Position = mgl32.Vec2{g.width/2 - pw/2, g.height - ph}
	g.player.Color = White

	r := g.ball.Radius
	g.ball.Reset(g.player.Position.Add(mgl32.Vec2{pw/2 - r, -2 * r}), g.initialVelocity())
	g.ball.Sticky = false
	g.ball.PassThrough = false
	g.ball.Color = White

	g.effects.Chaos = false
	g.effects.Confuse = false
	g.powerUps = g.powerUps[:0]
	g.input.Clear()
}

// Render draws the frame. Post-processing flags are exposed by Effects.
func (g *Game) Render(r Renderer) {
	r.DrawSprite(g.assets.Texture(TextureBackground), mgl32.Vec2{}, mgl32.Vec2{g.width, g.height}, 0, White.Vec4(1))
	g.levels[g.level].Draw(r)
	g.player.Draw(r)
	for i := range g.powerUps {
		if !g.powerUps[i].Destroyed {
			g.powerUps[i].Draw(r)
		}
	}
	g.particles.Draw(r)
	g.ball.Draw(r)

	r.DrawText(fmt.Sprintf("Lives: %d  Score: %d", g.lives, g.score), mgl32.Vec2{5, 5}, 1, textColor)

	switch g.state {
	case StateMenu:
		name := g.LevelName()
		dim := g.assets.Font.Measure(name, 1)
		r.DrawText(name, mgl32.Vec2{g.width/2 - dim.X()/2, g.height/2 - dim.Y()*2}, 1, textColor)
		g.startButton.Draw(r)
		g.nextButton.Draw(r)
	case StateWin:
		msg := "You WON!!!"
		dim := g.assets.Font.Measure(msg, 1)
		r.DrawText(msg, mgl32.Vec2{g.width/2 - dim.X()/2, g.height/2 - dim.Y()*2}, 1, mgl32.Vec3{0, 1, 0})
		g.retryButton.Draw(r)
	}
}

// SetLayouts swaps the level set. It is only allowed in the menu.
func (g *Game) SetLayouts(layouts []Layout) error {
	if len(layouts) == 0 {
		return ErrNoLevels
	}
	if g.state != StateMenu {
		return ErrNotInMenu
	}
	name := g.LevelName()
	g.buildLevels(layouts)
	g.level = 0
	for i, l := range g.levels {
		if l.Name() == name {
			g.level = i
			break
		}
	}
	g.resetPlayer()
	g.log.Debug("levels replaced", "count", len(g.levels), "current", g.LevelName())
	return nil
}

// SelectLevel picks the level to play. It is only allowed in the menu.
func (g *Game) SelectLevel(i int) error {
	if i < 0 || i >= len(g.levels) {
		return fmt.Errorf("breakout: level index %d out of range [0, %d)", i, len(g.levels))
	}
	if g.state != StateMenu {
		return ErrNotInMenu
	}
	g.level = i
	g.resetLevel()
	g.resetPlayer()
	return nil
}

// State returns the current state.
func (g *Game) State() State { return g.state }

// Lives returns the remaining lives.
func (g *Game) Lives() int { return g.lives }

// Score returns the score of the current run.
func (g *Game) Score() int { return g.score }

// LevelIndex returns the index of the current level.
func (g *Game) LevelIndex() int { return g.level }

// LevelCount returns the number of levels.
func (g *Game) LevelCount() int { return len(g.levels) }

// LevelName returns the name of the current level.
func (g *Game) LevelName() string { return g.levels[g.level].Name() }

// LevelNameAt returns the name of level i.
func (g *Game) LevelNameAt(i int) string { return g.levels[i].Name() }

// Level returns the current level.
func (g *Game) Level() *Level { return g.levels[g.level] }

// Ball returns the ball.
func (g *Game) Ball() *Ball { return &g.ball }

// Player returns the paddle.
func (g *Game) Player() *Entity { return &g.player }

// Input returns the tracker the host writes touches into.
func (g *Game) Input() *core.Input { return g.input }

// Size returns the playfield size in pixels.
func (g *Game) Size() (width, height float32) { return g.width, g.height }

// Elapsed returns the seconds simulated so far.
func (g *Game) Elapsed() float32 { return g.elapsed }

// Buttons returns the menu and win buttons: start, next level, retry.
func (g *Game) Buttons() (start, next, retry *TextButton) {
	return g.startButton, g.nextButton, g.retryButton
}
