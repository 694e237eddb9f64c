// Package bubblepop adapts the bubble pop simulation to a terminal grid.
// The simulation works in pixels; the adapter maps every terminal cell to a
// fixed pixel block, draws the run into a core.Screen and turns cursor keys
// and mouse presses into pops.
package bubblepop

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/bubblepop/internal/config"
	platformcore "github.com/vovakirdan/bubblepop/internal/core"
	"github.com/vovakirdan/bubblepop/internal/games/bubblepop/core"
	"github.com/vovakirdan/bubblepop/internal/settings"
)

// Viewport mapping between terminal cells and simulation pixels.
const (
	CellWidthPx  = 12
	CellHeightPx = 24
	HUDRows      = 2
)

// LongPressThreshold is how long a press must be held in long-press mode.
const LongPressThreshold = 400 * time.Millisecond

// Smallest playable terminal.
const (
	MinCols = 40
	MinRows = 12
)

// Options configures a Game.
type Options struct {
	Tuning        config.BubblePopConfig
	Accessibility settings.Accessibility
	Logger        *log.Logger
}

// Game drives one level at a time in a terminal.
type Game struct {
	opts   Options
	cfg    platformcore.RuntimeConfig
	logger *log.Logger

	session *core.Session
	events  []core.Event

	cursorX, cursorY int // playfield cell
	tooSmall         bool
}

// New creates a game. Call Reset before the first Step.
// A zero Tuning uses the built-in defaults.
func New(opts Options) *Game {
	if opts.Tuning.Session.MaxTimeSec == 0 {
		opts.Tuning = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Game{opts: opts, logger: logger}
}

// ID returns the game identifier used for score storage.
func (g *Game) ID() string {
	return "bubblepop"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Bubble Pop"
}

// Reset starts cfg.Level from scratch at now.
func (g *Game) Reset(cfg platformcore.RuntimeConfig, now time.Time) error {
	if g.session != nil {
		g.session.Close()
	}
	g.cfg = cfg
	g.events = nil
	g.session = nil
	g.tooSmall = cfg.ScreenW < MinCols || cfg.ScreenH < MinRows

	w, h := PlayfieldSize(cfg.ScreenW, cfg.ScreenH)
	s, err := core.NewSession(core.SessionOptions{
		Level:         cfg.Level,
		ScreenW:       w,
		ScreenH:       h,
		Tuning:        g.opts.Tuning,
		ReduceMotion:  g.opts.Accessibility.ReduceMotion,
		Seed:          cfg.Seed,
		Deterministic: cfg.Deterministic,
		Logger:        g.logger,
	}, now)
	if err != nil {
		return fmt.Errorf("bubblepop: %w", err)
	}
	g.session = s
	g.cursorX = cfg.ScreenW / 2
	g.cursorY = max(cfg.ScreenH-HUDRows, 0) / 2
	if !g.tooSmall {
		s.Start(now)
	}
	return nil
}

// PlayfieldSize returns the simulation viewport in pixels for a terminal size.
func PlayfieldSize(cols, rows int) (w, h float64) {
	return float64(max(cols, 0) * CellWidthPx), float64(max(rows-HUDRows, 0) * CellHeightPx)
}

// CellCenter returns the pixel at the center of a screen cell.
// row is a screen row, so HUD rows map to negative y.
func CellCenter(col, row int) (x, y float64) {
	return (float64(col) + 0.5) * CellWidthPx, (float64(row-HUDRows) + 0.5) * CellHeightPx
}

// CellAt returns the screen cell containing a pixel.
func CellAt(x, y float64) (col, row int) {
	return int(x / CellWidthPx), int(y/CellHeightPx) + HUDRows
}

// Step applies one frame of input and advances the run to now.
func (g *Game) Step(in platformcore.InputFrame, now time.Time) platformcore.StepResult {
	if g.session == nil {
		return platformcore.StepResult{State: g.State()}
	}

	if in.Has(platformcore.ActionRestart) {
		if err := g.Reset(g.cfg, now); err != nil {
			g.logger.Error("restart failed", "error", err)
		}
		return platformcore.StepResult{State: g.State()}
	}
	if g.tooSmall {
		return platformcore.StepResult{State: g.State()}
	}

	wasRunning := g.session.Outcome() == core.OutcomeRunning

	if in.Has(platformcore.ActionPause) {
		if g.session.Paused() {
			g.session.Resume(now)
		} else {
			g.session.Pause(now)
		}
	}
	g.applyDebug(in, now)
	g.moveCursor(in)

	if in.Has(platformcore.ActionPop) {
		g.session.PopAt(CellCenter(g.cursorX, g.cursorY+HUDRows))
	}
	for _, p := range in.Pointers {
		g.pointerPop(p)
	}

	g.events = append(g.events, g.session.Tick(now)...)

	return platformcore.StepResult{
		State:    g.State(),
		Finished: wasRunning && g.session.Outcome() != core.OutcomeRunning,
	}
}

// applyDebug handles the developer keys.
func (g *Game) applyDebug(in platformcore.InputFrame, now time.Time) {
	s := g.session
	if in.Has(platformcore.ActionSlowMo) {
		s.SetSlowMo(!s.ClockState().SlowMo)
	}
	rate := s.Snapshot().SpawnRate
	switch {
	case in.Has(platformcore.ActionSpawnFaster):
		s.SetSpawnRateMultiplier(rate * 2)
	case in.Has(platformcore.ActionSpawnSlower):
		s.SetSpawnRateMultiplier(rate / 2)
	}
	if in.Has(platformcore.ActionDeterministic) {
		s.SetDeterministic(!s.Snapshot().Deterministic)
	}
	if in.Has(platformcore.ActionFinish) {
		s.Finish(now)
	}
}

func (g *Game) moveCursor(in platformcore.InputFrame) {
	maxX := max(g.cfg.ScreenW-1, 0)
	maxY := max(g.cfg.ScreenH-HUDRows-1, 0)
	switch {
	case in.Has(platformcore.ActionUp):
		g.cursorY--
	case in.Has(platformcore.ActionDown):
		g.cursorY++
	}
	switch {
	case in.Has(platformcore.ActionLeft):
		g.cursorX--
	case in.Has(platformcore.ActionRight):
		g.cursorX++
	}
	g.cursorX = platformcore.Clamp(g.cursorX, 0, maxX)
	g.cursorY = platformcore.Clamp(g.cursorY, 0, maxY)
}

// pointerPop pops at a pointer press. Presses on the HUD are ignored, and in
// long-press mode so are presses released too early.
func (g *Game) pointerPop(p platformcore.PointerEvent) {
	if p.Y < HUDRows || p.X < 0 || p.X >= g.cfg.ScreenW || p.Y >= g.cfg.ScreenH {
		return
	}
	if g.opts.Accessibility.LongPressMode && time.Duration(p.Held)*time.Millisecond < LongPressThreshold {
		return
	}
	g.cursorX, g.cursorY = p.X, p.Y-HUDRows
	g.session.PopAt(CellCenter(p.X, p.Y))
}

// Events returns and clears the events collected since the last call.
func (g *Game) Events() []core.Event {
	out := g.events
	g.events = nil
	return out
}

// Session exposes the running simulation.
func (g *Game) Session() *core.Session {
	return g.session
}

// Config returns the runtime config of the current run.
func (g *Game) Config() platformcore.RuntimeConfig {
	return g.cfg
}

// SetAccessibility changes the accessibility flags. Reduce motion applies
// from the next run.
func (g *Game) SetAccessibility(a settings.Accessibility) {
	g.opts.Accessibility = a
}

// Cursor returns the cursor position in screen cells.
func (g *Game) Cursor() (x, y int) {
	return g.cursorX, g.cursorY + HUDRows
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	if g.session == nil {
		return platformcore.GameState{}
	}
	snap := g.session.Snapshot()
	return platformcore.GameState{
		Score:         snap.Score,
		GameOver:      snap.Outcome != core.OutcomeRunning,
		Completed:     snap.Outcome == core.OutcomeCompleted,
		Paused:        snap.Paused,
		TimeRemaining: snap.TimeRemaining,
	}
}

// Render draws the run into dst.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()
	if g.session == nil {
		return
	}
	if g.tooSmall {
		g.renderOverlay(dst, "Window too small", fmt.Sprintf("Need %dx%d", MinCols, MinRows))
		return
	}

	snap := g.session.Snapshot()
	for _, b := range snap.Bubbles {
		g.renderBubble(dst, b)
	}
	for _, p := range snap.Particles {
		col, row := CellAt(p.X, p.Y)
		r := '·'
		if p.Sparkle {
			r = '*'
		}
		if p.Alpha > 0.1 {
			dst.SetColored(col, row, r, platformcore.ParseColor(string(p.Color)))
		}
	}
	if snap.Outcome == core.OutcomeRunning {
		dst.SetColored(g.cursorX, g.cursorY+HUDRows, '+', platformcore.ColorWhite)
	}

	g.renderHUD(dst, snap)

	switch {
	case snap.Outcome == core.OutcomeCompleted:
		g.renderOverlay(dst, "Level complete! "+starString(g.stars(snap.Score)),
			fmt.Sprintf("Score %d  R: replay  B: levels", snap.Score))
	case snap.Outcome == core.OutcomeFailed:
		g.renderOverlay(dst, "Time's up",
			fmt.Sprintf("Score %d  R: retry  B: levels", snap.Score))
	case snap.Paused:
		g.renderOverlay(dst, "Paused", "P: continue  B: levels")
	}
}

func (g *Game) renderBubble(dst *platformcore.Screen, b core.Bubble) {
	cx := b.X / CellWidthPx
	cy := b.Y/CellHeightPx + HUDRows
	rx := b.Radius / CellWidthPx
	ry := b.Radius / CellHeightPx
	color := BubbleColor(b)

	if !g.opts.Accessibility.ColorAssist {
		dst.FillEllipse(cx, cy, rx, ry, '█', color)
		return
	}
	dst.FillEllipse(cx, cy, rx, ry, '░', color)
	dst.SetColored(int(cx), int(cy), Glyph(b), color)
}

// renderHUD draws the status line and the objectives line.
func (g *Game) renderHUD(dst *platformcore.Screen, snap core.Snapshot) {
	for y := 0; y < HUDRows; y++ {
		dst.DrawHLine(0, y, dst.Width(), ' ')
	}

	secs := int(snap.TimeRemaining.Round(time.Second) / time.Second)
	status := fmt.Sprintf(" %s  Score: %d  Time: %d:%02d", snap.LevelName, snap.Score, secs/60, secs%60)
	dst.DrawText(0, 0, status)

	var flags []string
	if snap.SlowMo {
		flags = append(flags, "SLOW")
	}
	if snap.Deterministic {
		flags = append(flags, "DET")
	}
	if snap.SpawnRate != 1 {
		flags = append(flags, fmt.Sprintf("x%.2g", snap.SpawnRate))
	}
	debug := fmt.Sprintf("%dms ", snap.Interval.Milliseconds())
	if len(flags) > 0 {
		debug = "[" + strings.Join(flags, " ") + "] " + debug
	}
	dst.DrawTextColored(dst.Width()-len([]rune(debug)), 0, debug, platformcore.ColorGray)

	objectives := " " + objectiveText(snap.Primary)
	if snap.HasSecondary {
		objectives += "  |  " + objectiveText(snap.Secondary)
	}
	color := platformcore.ColorDefault
	if snap.Primary.Completed {
		color = platformcore.ColorGreen
	}
	dst.DrawTextColored(0, 1, objectives, color)
}

func objectiveText(o core.Objective) string {
	mark := ""
	if o.Completed {
		mark = " ✓"
	}
	return fmt.Sprintf("%s %d/%d%s", o.Description, o.Current, o.Target, mark)
}

func (g *Game) stars(score int) int {
	return core.Stars(score, g.opts.Tuning.Session.StarThresholds)
}

func starString(n int) string {
	return strings.Repeat("★", n) + strings.Repeat("☆", 3-n)
}

// renderOverlay draws a centered two-line message box.
func (g *Game) renderOverlay(dst *platformcore.Screen, line1, line2 string) {
	width := max(len([]rune(line1)), len([]rune(line2))) + 4
	box := platformcore.NewRect((dst.Width()-width)/2, (dst.Height()-5)/2, width, 5)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	_, cy := box.Center()
	dst.DrawTextCentered(cy-1, line1)
	dst.DrawTextCentered(cy+1, line2)
}
