package tui

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

// holdFrames is how many frames one key press keeps the paddle moving.
// Terminals report key repeats but no key release, so a hold lapses unless
// the key keeps repeating.
const holdFrames = 8

var (
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
)

// Options configures a Model.
type Options struct {
	Runtime    core.RuntimeConfig
	Store      *storage.Store // nil disables run history
	Logger     *log.Logger    // nil discards
	Audio      breakout.Audio // nil is silent
	Player     string
	Difficulty string
	Level      int
}

type touch struct {
	action core.TouchAction
	pos    mgl32.Vec2
}

// Model is the Bubble Tea model running one Breakout game.
type Model struct {
	game     *breakout.Game
	renderer *Renderer
	store    *storage.Store
	logger   *log.Logger
	runtime  core.RuntimeConfig

	keys KeyMap
	help help.Model

	player     string
	difficulty string

	width, height int
	hold          int
	pending       []touch
	lastState     breakout.State
	runStart      float32
	layouts       []breakout.Layout // waiting for the menu
	status        string
	highScore     int

	scoreboard *ScoreboardModel
	quitting   bool
}

// NewModel creates a model for cfg with the given level set.
func NewModel(cfg config.BreakoutConfig, layouts []breakout.Layout, opts Options) (Model, error) {
	rt := opts.Runtime
	if rt.TickRate <= 0 {
		rt.TickRate = core.DefaultConfig().TickRate
	}
	if rt.Seed == 0 {
		rt.Seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	// Sized for the short footer so menu buttons are measured close to the
	// final cell size; layout fixes it up below.
	screen := core.NewScreen(max(rt.ScreenW, 1), max(rt.ScreenH-2, 1))
	renderer := NewRenderer(screen, float32(cfg.Playfield.Width), float32(cfg.Playfield.Height))

	gameOpts := []breakout.Option{
		breakout.WithLogger(logger),
		breakout.WithRNG(breakout.NewSimpleRNG(rt.Seed)),
	}
	if opts.Audio != nil {
		gameOpts = append(gameOpts, breakout.WithAudio(opts.Audio))
	}

	assets := breakout.Assets{Textures: Sprites(), Font: renderer}
	game, err := breakout.New(cfg, assets, layouts, gameOpts...)
	if err != nil {
		return Model{}, fmt.Errorf("tui: %w", err)
	}
	if opts.Level != 0 {
		if err := game.SelectLevel(opts.Level); err != nil {
			return Model{}, fmt.Errorf("tui: %w", err)
		}
	}

	m := Model{
		game:       game,
		renderer:   renderer,
		store:      opts.Store,
		logger:     logger,
		runtime:    rt,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		player:     opts.Player,
		difficulty: opts.Difficulty,
		width:      rt.ScreenW,
		height:     rt.ScreenH,
		lastState:  game.State(),
	}
	m.help.Width = rt.ScreenW
	m.layout()
	m.refreshHighScore()
	return m, nil
}

// Game returns the hosted game.
func (m Model) Game() *breakout.Game {
	return m.game
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.runtime.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.scoreboard != nil {
		if _, ok := msg.(TickMsg); !ok {
			return m.updateScoreboard(msg)
		}
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.layout()
		return m, nil

	case LevelsChangedMsg:
		if msg.Err != nil {
			m.logger.Warn("level reload failed", "error", msg.Err)
			m.status = "level reload failed: " + msg.Err.Error()
			return m, nil
		}
		m.layouts = msg.Layouts
		m.applyLayouts()
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		if m.game.State() == breakout.StateActive {
			m.saveRun(storage.OutcomeQuit)
		}
		m.quitting = true
		return m, tea.Quit
	}
	if key.Matches(msg, m.keys.Help) {
		m.help.ShowAll = !m.help.ShowAll
		m.layout()
		return m, nil
	}

	start, next, retry := m.game.Buttons()
	w, h := m.game.Size()

	switch m.game.State() {
	case breakout.StateMenu:
		switch {
		case key.Matches(msg, m.keys.Start):
			m.tap(start.Center())
		case key.Matches(msg, m.keys.Next):
			m.tap(next.Center())
		case key.Matches(msg, m.keys.Scores):
			sb := NewScoreboardModel(m.store, m.levelNames(), m.width, m.height)
			sb.embedded = true
			m.scoreboard = &sb
		}

	case breakout.StateWin:
		if key.Matches(msg, m.keys.Retry) {
			m.tap(retry.Center())
		}

	case breakout.StateActive:
		switch {
		case key.Matches(msg, m.keys.Left):
			m.press(mgl32.Vec2{w / 4, h * 3 / 4})
		case key.Matches(msg, m.keys.Right):
			m.press(mgl32.Vec2{w * 3 / 4, h * 3 / 4})
		case key.Matches(msg, m.keys.Launch):
			m.pending = append(m.pending, touch{core.TouchRelease, mgl32.Vec2{w / 2, h / 4}})
		}
	}

	return m, nil
}

// press starts or refreshes a held touch.
func (m *Model) press(p mgl32.Vec2) {
	m.game.Input().Press(p.X(), p.Y())
	m.hold = holdFrames
}

// tap queues a press and a release at p on consecutive frames.
func (m *Model) tap(p mgl32.Vec2) {
	m.pending = append(m.pending, touch{core.TouchPress, p}, touch{core.TouchRelease, p})
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	if msg.Button != tea.MouseButtonLeft && msg.Action != tea.MouseActionRelease {
		return
	}
	screen := m.renderer.Screen()
	x := core.Clamp(msg.X, 0, screen.Width()-1)
	y := core.Clamp(msg.Y, 0, screen.Height()-1)
	p := m.renderer.ToField(x, y)
	in := m.game.Input()
	m.hold = 0
	switch msg.Action {
	case tea.MouseActionPress, tea.MouseActionMotion:
		in.Press(p.X(), p.Y())
	case tea.MouseActionRelease:
		in.Release(p.X(), p.Y())
	}
}

// feedInput writes at most one queued touch into the game input, or lets
// an expired key hold go.
func (m *Model) feedInput() {
	in := m.game.Input()
	if len(m.pending) > 0 {
		t := m.pending[0]
		m.pending = m.pending[1:]
		m.hold = 0
		if t.action == core.TouchPress {
			in.Press(t.pos.X(), t.pos.Y())
		} else {
			in.Release(t.pos.X(), t.pos.Y())
		}
		return
	}
	if m.hold > 0 {
		m.hold--
		if m.hold == 0 && in.IsPressed() {
			in.Release(in.Position.X(), in.Position.Y())
		}
	}
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	dt := m.runtime.FrameSeconds()
	m.step(dt)
	return m, tickCmd(m.runtime.TickRate)
}

// step runs one frame and reacts to the state transitions it caused.
func (m *Model) step(dt float32) {
	m.feedInput()
	m.game.ProcessInput(dt)
	m.game.Update(dt)

	state := m.game.State()
	if state != m.lastState {
		switch {
		case state == breakout.StateActive:
			m.runStart = m.game.Elapsed()
			m.status = ""
		case m.lastState == breakout.StateActive && state == breakout.StateWin:
			m.saveRun(storage.OutcomeWon)
		case m.lastState == breakout.StateActive && state == breakout.StateMenu:
			m.saveRun(storage.OutcomeLost)
		}
		m.lastState = state
	}
	if state == breakout.StateMenu && m.layouts != nil {
		m.applyLayouts()
	}
}

// applyLayouts swaps in a reloaded level set once the game is in the menu.
func (m *Model) applyLayouts() {
	err := m.game.SetLayouts(m.layouts)
	switch {
	case errors.Is(err, breakout.ErrNotInMenu):
		return
	case err != nil:
		m.logger.Warn("level reload rejected", "error", err)
		m.status = "level reload rejected: " + err.Error()
	default:
		m.logger.Info("levels reloaded", "count", len(m.layouts))
		m.status = fmt.Sprintf("reloaded %d levels", len(m.layouts))
		m.refreshHighScore()
	}
	m.layouts = nil
}

func (m *Model) saveRun(outcome storage.Outcome) {
	score := m.game.Score()
	if m.store == nil || (score == 0 && outcome != storage.OutcomeWon) {
		return
	}
	seconds := float64(m.game.Elapsed() - m.runStart)
	id, err := m.store.SaveRun(storage.RunResult{
		Level:      m.game.LevelName(),
		Player:     m.player,
		Score:      score,
		Lives:      m.game.Lives(),
		Outcome:    outcome,
		Duration:   time.Duration(seconds * float64(time.Second)),
		Difficulty: m.difficulty,
	})
	if err != nil {
		m.logger.Warn("could not save run", "error", err)
		return
	}
	m.logger.Info("run saved", "id", id, "level", m.game.LevelName(), "score", score, "outcome", outcome)
	m.refreshHighScore()
}

func (m *Model) refreshHighScore() {
	m.highScore = 0
	if m.store == nil {
		return
	}
	high, err := m.store.HighScore(m.game.LevelName())
	if err != nil {
		m.logger.Warn("could not read high score", "error", err)
		return
	}
	m.highScore = high
}

func (m Model) levelNames() []string {
	names := make([]string, 0, m.game.LevelCount())
	for i := range m.game.LevelCount() {
		names = append(names, m.game.LevelNameAt(i))
	}
	return names
}

func (m Model) updateScoreboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	sb, cmd := m.scoreboard.Update(msg)
	next, ok := sb.(ScoreboardModel)
	if !ok {
		return m, cmd
	}
	switch {
	case next.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case next.IsGoingBack():
		m.scoreboard = nil
		return m, nil
	}
	m.scoreboard = &next
	if _, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = next.width, next.height
		m.help.Width = next.width
		m.layout()
	}
	return m, cmd
}

func (m Model) footer() string {
	status := fmt.Sprintf("%s  ·  level %d/%d  ·  best %d",
		m.game.LevelName(), m.game.LevelIndex()+1, m.game.LevelCount(), m.highScore)
	if m.difficulty != "" {
		status += "  ·  " + m.difficulty
	}
	line := statusStyle.Render(status)
	if m.status != "" {
		line += "  " + warnStyle.Render(m.status)
	}
	return line + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// layout sizes the screen to the space left above the footer.
func (m *Model) layout() {
	h := m.height - lipgloss.Height(m.footer())
	m.renderer.Screen().Resize(max(m.width, 1), max(h, 1))
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.scoreboard != nil {
		return m.scoreboard.View()
	}

	m.renderer.Begin(m.game.Effects(), m.game.Elapsed())
	m.game.Render(m.renderer)
	m.renderer.End()

	var b strings.Builder
	b.WriteString(RenderScreen(m.renderer.Screen()))
	b.WriteString("\n")
	b.WriteString(m.footer())
	return b.String()
}

// NewProgram wraps the model in a full-screen program with mouse support.
func NewProgram(m Model, opts ...tea.ProgramOption) *tea.Program {
	opts = append([]tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}, opts...)
	return tea.NewProgram(m, opts...)
}
