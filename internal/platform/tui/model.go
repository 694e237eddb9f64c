package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/bubblepop/internal/config"
	"github.com/vovakirdan/bubblepop/internal/core"
	"github.com/vovakirdan/bubblepop/internal/games/bubblepop"
	"github.com/vovakirdan/bubblepop/internal/settings"
	"github.com/vovakirdan/bubblepop/internal/storage"
)

// tickGen hands out tick loop generations. Every model gets its own so that
// ticks still in flight from a previous model are ignored.
var tickGen atomic.Int64

func nextGen() int {
	return int(tickGen.Add(1))
}

// Options configures a game model.
type Options struct {
	Runtime   core.RuntimeConfig
	Tuning    config.BubblePopConfig
	Store     *storage.Store
	Settings  *settings.Manager
	Logger    *log.Logger
	SlowMo    bool
	SpawnRate float64 // spawn rate multiplier, 0 keeps 1
}

// ExitReason tells the caller why a game model stopped.
type ExitReason int

const (
	ExitQuit ExitReason = iota
	ExitBack
)

// press is a pointer button held down.
type press struct {
	x, y int
	at   time.Time
}

// GameModel runs one level of Bubble Pop in Bubble Tea.
type GameModel struct {
	game       *bubblepop.Game
	screen     *core.Screen
	recorder   *Recorder
	opts       Options
	config     core.RuntimeConfig
	gen        int
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	help       help.Model
	showHelp   bool
	press      *press
	runID      string
	logger     *log.Logger
	quitting   bool
	backToMenu bool
}

// NewGameModel creates a game model for opts.Runtime.Level.
func NewGameModel(opts Options) GameModel {
	cfg := opts.Runtime
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.Level == 0 {
		cfg.Level = 1
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	game := bubblepop.New(bubblepop.Options{
		Tuning:        opts.Tuning,
		Accessibility: opts.Settings.Accessibility(),
		Logger:        logger,
	})

	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		recorder:   NewRecorder(opts.Store, logger),
		opts:       opts,
		config:     cfg,
		gen:        nextGen(),
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		help:       help.New(),
		logger:     logger,
	}
}

// Init starts the level and the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.reset(time.Now())
	return tickCmd(m.gen, m.config.TickRate)
}

// reset restarts the level. The game is shared by pointer, so this works
// from a value receiver.
func (m *GameModel) reset(now time.Time) {
	if err := m.game.Reset(m.config, now); err != nil {
		m.logger.Error("cannot start level", "level", m.config.Level, "error", err)
		return
	}
	m.applyDebugOptions()
}

func (m *GameModel) applyDebugOptions() {
	s := m.game.Session()
	if s == nil {
		return
	}
	if m.opts.SlowMo {
		s.SetSlowMo(true)
	}
	if m.opts.SpawnRate > 0 {
		s.SetSpawnRateMultiplier(m.opts.SpawnRate)
	}
}

// noteRun tracks a new run once per run id.
func (m *GameModel) noteRun() {
	s := m.game.Session()
	if s == nil || s.RunID() == m.runID || !s.Running() {
		return
	}
	m.runID = s.RunID()
	m.recorder.Started(m.config.Level, m.runID)
}

// Update handles messages.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case tea.WindowSizeMsg:
		return m.handleResize(msg)
	case TickMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		return m.handleTick(msg.Time)
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	case "?":
		m.showHelp = !m.showHelp
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}
	if action, _ := m.keyMapper.MapKey(msg); action == core.ActionBack {
		m.backToMenu = true
		return m, tea.Quit
	}
	return m, nil
}

// handleMouse turns left button presses into pointer events. In long-press
// mode the pop happens on release so the hold time is known.
func (m GameModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Button != tea.MouseButtonLeft && msg.Action != tea.MouseActionRelease {
		return m, nil
	}
	now := time.Now()
	longPress := m.opts.Settings.Accessibility().LongPressMode

	switch msg.Action {
	case tea.MouseActionPress:
		if !longPress {
			m.inputFrame.AddPointer(core.PointerEvent{X: msg.X, Y: msg.Y})
			return m, nil
		}
		m.press = &press{x: msg.X, y: msg.Y, at: now}
	case tea.MouseActionRelease:
		if m.press == nil {
			return m, nil
		}
		m.inputFrame.AddPointer(core.PointerEvent{
			X:    m.press.x,
			Y:    m.press.y,
			Held: now.Sub(m.press.at).Milliseconds(),
		})
		m.press = nil
	}
	return m, nil
}

// handleResize resizes the screen and restarts a level still in play.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	m.help.Width = msg.Width

	if !m.gameState.GameOver {
		m.reset(time.Now())
		m.gameState = m.game.State()
	}
	return m, nil
}

// handleTick advances the simulation and records what happened.
func (m GameModel) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if now.IsZero() {
		now = time.Now()
	}
	restarting := m.inputFrame.Has(core.ActionRestart)

	result := m.game.Step(m.inputFrame, now)
	m.gameState = result.State
	if restarting {
		m.applyDebugOptions()
	}
	m.noteRun()

	m.recorder.Record(m.config.Level, m.game.Events())
	if result.Finished {
		m.logger.Debug("level over", "level", m.config.Level, "score", result.State.Score, "completed", result.State.Completed)
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.gen, m.config.TickRate)
}

// saveScreenshot writes the current screen as text to
// ~/.bubblepop/screenshots.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("cannot save screenshot", "error", err)
		return
	}
	dir := filepath.Join(home, ".bubblepop", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("cannot save screenshot", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_level%02d_%s.txt", m.game.ID(), m.config.Level, timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("cannot save screenshot", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the game.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	if m.game.Session() == nil {
		return fmt.Sprintf("\n  Cannot start level %d.\n\n  Press b to go back or q to quit.\n", m.config.Level)
	}

	m.game.Render(m.screen)
	out := RenderScreen(m.screen)
	if m.showHelp {
		m.help.ShowAll = true
		out += "\n" + m.help.View(m.keyMapper.Keys())
	}
	return out
}

// State returns the last known game state.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if the user asked to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user asked to go back to level select.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Close ends the current run.
func (m GameModel) Close() {
	if s := m.game.Session(); s != nil {
		s.Close()
	}
}

// Run plays one level in its own Bubble Tea program and reports how the
// player left it.
func Run(opts Options) (ExitReason, error) {
	model := NewGameModel(opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	finalModel, err := p.Run()
	model.Close()
	if err != nil {
		return ExitQuit, err
	}
	if m, ok := finalModel.(GameModel); ok && m.BackToMenu() {
		return ExitBack, nil
	}
	return ExitQuit, nil
}
