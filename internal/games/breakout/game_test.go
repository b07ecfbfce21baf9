package breakout

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
)

func TestNewErrors(t *testing.T) {
	cfg := config.DefaultBreakoutConfig()
	layout := mustLayout(t, "a", "2 2")

	if _, err := New(cfg, testAssets(), nil); !errors.Is(err, ErrNoLevels) {
		t.Errorf("New without layouts: err = %v, want ErrNoLevels", err)
	}

	assets := testAssets()
	delete(assets.Textures, TextureParticle)
	if _, err := New(cfg, assets, []Layout{layout}); !errors.Is(err, ErrMissingTexture) {
		t.Errorf("New with missing texture: err = %v, want ErrMissingTexture", err)
	}

	bad := cfg
	bad.Ball.Radius = 0
	if _, err := New(bad, testAssets(), []Layout{layout}); !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("New with bad config: err = %v, want ErrInvalidConfig", err)
	}
}

func TestNewGameStartsInMenu(t *testing.T) {
	cfg := config.DefaultBreakoutConfig()
	g := newTestGame(t, cfg, []string{"2 2"})

	assert.Equal(t, StateMenu, g.State())
	assert.Equal(t, cfg.Gameplay.Lives, g.Lives())
	assert.Equal(t, "levela", g.LevelName())
	assert.True(t, g.Ball().Stuck)
	assert.Equal(t, mgl32.Vec2{500, 860}, g.Player().Position)
	assert.Equal(t, mgl32.Vec2{575, 810}, g.Ball().Position)
}

func TestStartButton(t *testing.T) {
	g := newTestGame(t, config.DefaultBreakoutConfig(), []string{"2 2"})
	startGame(t, g)
	assert.Equal(t, core.TouchNone, g.Input().LastAction)
	assert.Nil(t, g.Input().Position)
}

func TestNextLevelButtonWraps(t *testing.T) {
	g := newTestGame(t, config.DefaultBreakoutConfig(), []string{"2 2", "3 3 3"})
	_, next, _ := g.Buttons()

	tap(g, next.Center())
	assert.Equal(t, 1, g.LevelIndex())
	assert.Equal(t, StateMenu, g.State())
	assert.Len(t, g.Level().Bricks, 3)

	tap(g, next.Center())
	assert.Equal(t, 0, g.LevelIndex())
}

func TestPaddleMovement(t *testing.T) {
	g := newTestGame(t, config.DefaultBreakoutConfig(), []string{"2 2"})

	// Presses in the menu never move the paddle.
	g.Input().Press(100, 800)
	g.ProcessInput(0.1)
	assert.InDelta(t, 500, g.Player().Position.X(), 1e-4)
	g.Input().Clear()

	startGame(t, g)

	g.Input().Press(100, 800)
	g.ProcessInput(0.1)
	assert.InDelta(t, 400, g.Player().Position.X(), 1e-4)
	assert.InDelta(t, 475, g.Ball().Position.X(), 1e-4, "stuck ball follows the paddle")

	g.ProcessInput(10)
	assert.InDelta(t, 0, g.Player().Position.X(), 1e-4)
	assert.InDelta(t, 75, g.Ball().Position.X(), 1e-4)

	g.Input().Press(1100, 800)
	g.ProcessInput(10)
	assert.InDelta(t, 1000, g.Player().Position.X(), 1e-4)
	assert.InDelta(t, 1075, g.Ball().Position.X(), 1e-4)

	// Upper half presses are ignored.
	g.Input().Press(1100, 100)
	g.ProcessInput(10)
	assert.InDelta(t, 1000, g.Player().Position.X(), 1e-4)
}

func TestBallRelease(t *testing.T) {
	g := newTestGame(t, config.DefaultBreakoutConfig(), []string{"2 2"})
	startGame(t, g)

	g.Input().Release(100, 800)
	g.ProcessInput(0)
	assert.True(t, g.Ball().Stuck, "release in a paddle zone must not launch")
	assert.Equal(t, core.TouchNone, g.Input().LastAction)

	g.Input().Release(600, 100)
	g.ProcessInput(0)
	assert.False(t, g.Ball().Stuck)
	assert.Equal(t, core.TouchNone, g.Input().LastAction)

	x := g.Ball().Position.X()
	g.Input().Press(100, 800)
	g.ProcessInput(0.1)
	assert.InDelta(t, x, g.Ball().Position.X(), 1e-4, "free ball ignores paddle movement")
}

func TestLifeLossResetsState(t *testing.T) {
	cfg := config.DefaultBreakoutConfig()
	cfg.Gameplay.Lives = 1
	g := newTestGame(t, cfg, []string{"2 2"})
	startGame(t, g)

	g.levels[0].Bricks[0].Destroyed = true
	catchPowerUp(g, PowerUpSticky, 5)
	g.ball.Stuck = false
	g.ball.Velocity = mgl32.Vec2{}
	g.ball.Position = mgl32.Vec2{0, float32(cfg.Playfield.Height)}

	g.Update(0.01)

	assert.Equal(t, 0, g.Lives())
	assert.Equal(t, StateMenu, g.State())
	for i, b := range g.Level().Bricks {
		assert.False(t, b.Destroyed, "brick %d not reloaded", i)
	}
	assert.True(t, g.Ball().Stuck)
	assert.False(t, g.Ball().Sticky)
	assert.Equal(t, mgl32.Vec2{575, 810}, g.Ball().Position)
	assert.Equal(t, mgl32.Vec2{100, -600}, g.Ball().Velocity)
	assert.Empty(t, g.PowerUps())

	// Starting again restores lives and clears the score.
	startGame(t, g)
	assert.Equal(t, 1, g.Lives())
	assert.Equal(t, 0, g.Score())
}

func TestLifeLossKeepsLevel(t *testing.T) {
	cfg := config.DefaultBreakoutConfig()
	g := newTestGame(t, cfg, []string{"2 2"})
	startGame(t, g)

	g.levels[0].Bricks[0].Destroyed = true
	g.ball.Stuck = false
	g.ball.Velocity = mgl32.Vec2{}
	g.ball.Position = mgl32.Vec2{0, 950}

	g.Update(0.01)

	assert.Equal(t, cfg.Gameplay.Lives-1, g.Lives())
	assert.Equal(t, StateActive, g.State())
	assert.True(t, g.Level().Bricks[0].Destroyed)
	assert.True(t, g.Ball().Stuck)
}

func TestWinAndRetry(t *testing.T) {
	g := newTestGame(t, config.DefaultBreakoutConfig(), []string{"2 2"})
	startGame(t, g)

	for i := range g.levels[0].Bricks {
		g.levels[0].Bricks[i].Destroyed = true
	}
	g.Update(0)

	require.Equal(t, StateWin, g.State())
	assert.True(t, g.Effects().Chaos)
	assert.False(t, g.Level().IsCompleted(), "level should be reloaded on win")
	assert.True(t, g.Ball().Stuck)

	// Menu input is ignored while won.
	_, next, retry := g.Buttons()
	tap(g, next.Center())
	assert.Equal(t, StateWin, g.State())

	tap(g, retry.Center())
	assert.Equal(t, StateMenu, g.State())
	assert.False(t, g.Effects().Chaos)
}

func TestOnlySolidLevelWinsImmediately(t *testing.T) {
	g := newTestGame(t, config.DefaultBreakoutConfig(), []string{"1 1"})
	startGame(t, g)
	g.Update(1.0 / 60)
	assert.Equal(t, StateWin, g.State())
}

func TestUpdateInMenuDoesNotWin(t *testing.T) {
	g := newTestGame(t, config.DefaultBreakoutConfig(), []string{"1 1"})
	g.Update(1.0 / 60)
	assert.Equal(t, StateMenu, g.State())
}

// placeUnderBrick puts a free ball 15px below the first brick of a
// "x x" layout, moving up.
func placeUnderBrick(g *Game) {
	g.ball.Stuck = false
	g.ball.Position = mgl32.Vec2{275, 440}
	g.ball.Velocity = mgl32.Vec2{0, -600}
}

func TestBrickDestroyedWithoutPowerUp(t *testing.T) {
	audio := &recordingAudio{}
	g := newTestGame(t, config.DefaultBreakoutConfig(), []string{"2 2"}, WithRNG(constRNG{v: 1}), WithAudio(audio))
	startGame(t, g)
	placeUnderBrick(g)

	before := len(g.PowerUps())
	g.Update(0)

	assert.True(t, g.Level().Bricks[0].Destroyed)
	assert.False(t, g.Level().Bricks[1].Destroyed)
	assert.Len(t, g.PowerUps(), before)
	assert.Equal(t, 10, g.Score())
	assert.InDelta(t, 600, g.Ball().Velocity.Y(), 1e-4)
	assert.InDelta(t, 450, g.Ball().Position.Y(), 1e-4)
	assert.Equal(t, []Cue{CueBleep}, audio.cues)
	assert.Equal(t, StateActive, g.State())
}

func TestBrickDestroyedSpawnsPowerUps(t *testing.T) {
	g := newTestGame(t, config.DefaultBreakoutConfig(), []string{"2 2"}, WithRNG(constRNG{v: 0}))
	startGame(t, g)
	placeUnderBrick(g)

	g.Update(0)
	assert.Len(t, g.PowerUps(), len(PowerUpTypes))
}

func TestSolidBrickShakes(t *testing.T) {
	audio := &recordingAudio{}
	cfg := config.DefaultBreakoutConfig()
	g := newTestGame(t, cfg, []string{"1 2"}, WithAudio(audio))
	startGame(t, g)
	placeUnderBrick(g)

	g.Update(0)

	assert.False(t, g.Level().Bricks[0].Destroyed)
	assert.True(t, g.Effects().Shake)
	assert.Equal(t, 0, g.Score())
	assert.InDelta(t, 600, g.Ball().Velocity.Y(), 1e-4)
	assert.Equal(t, []Cue{CueSolid}, audio.cues)

	g.ball.Stuck = true
	g.Update(cfg.Gameplay.ShakeDuration / 2)
	assert.True(t, g.Effects().Shake)
	g.Update(cfg.Gameplay.ShakeDuration)
	assert.False(t, g.Effects().Shake)
}

func TestPassThroughKeepsVelocity(t *testing.T) {
	g := newTestGame(t, config.DefaultBreakoutConfig(), []string{"2 2"}, WithRNG(constRNG{v: 1}))
	startGame(t, g)
	placeUnderBrick(g)
	g.ball.PassThrough = true

	g.Update(0)

	assert.True(t, g.Level().Bricks[0].Destroyed)
	assert.Equal(t, mgl32.Vec2{0, -600}, g.Ball().Velocity)
	assert.Equal(t, mgl32.Vec2{275, 440}, g.Ball().Position)
}

func TestPassThroughBouncesOffSolid(t *testing.T) {
	g := newTestGame(t, config.DefaultBreakoutConfig(), []string{"1 2"})
	startGame(t, g)
	placeUnderBrick(g)
	g.ball.PassThrough = true

	g.Update(0)
	assert.InDelta(t, 600, g.Ball().Velocity.Y(), 1e-4)
}

func TestPaddleBounceInUpdate(t *testing.T) {
	audio := &recordingAudio{}
	g := newTestGame(t, config.DefaultBreakoutConfig(), []string{"2 2"}, WithAudio(audio))
	startGame(t, g)
	g.ball.Stuck = false
	g.ball.Position = mgl32.Vec2{575, 820}
	g.ball.Velocity = mgl32.Vec2{100, 600}

	g.Update(0)

	assert.InDelta(t, 0, g.Ball().Velocity.X(), 1e-4)
	assert.Less(t, g.Ball().Velocity.Y(), float32(0))
	assert.Equal(t, []Cue{CuePaddle}, audio.cues)
}

func TestSetLayouts(t *testing.T) {
	g := newTestGame(t, config.DefaultBreakoutConfig(), []string{"2 2", "3"})
	require.NoError(t, g.SelectLevel(1))

	layouts := []Layout{mustLayout(t, "fresh", "4 4 4"), mustLayout(t, "levelb", "5 5")}
	require.NoError(t, g.SetLayouts(layouts))
	assert.Equal(t, 2, g.LevelCount())
	assert.Equal(t, "levelb", g.LevelName(), "current level is kept by name")

	assert.ErrorIs(t, g.SetLayouts(nil), ErrNoLevels)

	startGame(t, g)
	assert.ErrorIs(t, g.SetLayouts(layouts), ErrNotInMenu)
	assert.ErrorIs(t, g.SelectLevel(0), ErrNotInMenu)
}

func TestSelectLevelRange(t *testing.T) {
	g := newTestGame(t, config.DefaultBreakoutConfig(), []string{"2 2"})
	assert.Error(t, g.SelectLevel(1))
	assert.Error(t, g.SelectLevel(-1))
}

func TestRender(t *testing.T) {
	g := newTestGame(t, config.DefaultBreakoutConfig(), []string{"2 2"})

	r := &recordingRenderer{}
	g.Render(r)
	require.NotEmpty(t, r.sprites)
	assert.Equal(t, TextureBackground, r.sprites[0].tex)
	assert.Equal(t, TextureBall, r.sprites[len(r.sprites)-1].tex)
	assert.Contains(t, r.texts, "Start")
	assert.Contains(t, r.texts, "Next level")
	assert.Contains(t, r.texts, "levela")

	startGame(t, g)
	for i := range g.levels[0].Bricks {
		g.levels[0].Bricks[i].Destroyed = true
	}
	g.Update(0)

	r = &recordingRenderer{}
	g.Render(r)
	assert.Contains(t, r.texts, "You WON!!!")
	assert.Contains(t, r.texts, "Retry")
	assert.NotContains(t, r.texts, "Start")
}

func runScript(t *testing.T, frames int) Snapshot {
	t.Helper()
	g := newTestGame(t, config.DefaultBreakoutConfig(), []string{"2 3 4\n5 1 2\n0 2 0"}, WithRNG(NewSimpleRNG(42)))
	startGame(t, g)
	g.Input().Release(600, 100)

	const dt = float32(1.0 / 60)
	for i := range frames {
		switch {
		case i%90 == 30:
			g.Input().Press(100, 800)
		case i%90 == 60:
			g.Input().Press(1100, 800)
		case i%90 == 80:
			g.Input().Release(600, 100)
		}
		g.ProcessInput(dt)
		g.Update(dt)
	}
	return g.Snapshot()
}

func TestGameDeterminism(t *testing.T) {
	snap1 := runScript(t, 1200)
	snap2 := runScript(t, 1200)

	if snap1.Hash() != snap2.Hash() {
		t.Errorf("Determinism failed: hashes differ. Run1=%d, Run2=%d", snap1.Hash(), snap2.Hash())
	}
	if snap1.Score != snap2.Score {
		t.Errorf("Determinism failed: scores differ. Run1=%d, Run2=%d", snap1.Score, snap2.Score)
	}
	assert.NotZero(t, snap1.RNGState)
}

func TestSnapshotHashChanges(t *testing.T) {
	a := runScript(t, 10)
	b := runScript(t, 11)
	if a.Hash() == b.Hash() {
		t.Error("different frame counts should produce different hashes")
	}
}
