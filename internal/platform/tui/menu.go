package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/bubblepop/internal/core"
	sim "github.com/vovakirdan/bubblepop/internal/games/bubblepop/core"
	"github.com/vovakirdan/bubblepop/internal/storage"
)

// MenuItem is one level on the level select screen.
type MenuItem struct {
	Level    int
	Name     string
	Theme    sim.Theme
	Unlocked bool
	Stars    int
	Best     int
}

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	menuThemeStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuActiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	menuLockedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	menuHintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// MenuModel is the Bubble Tea model for the level select screen.
// Levels are shown in one column per theme; left and right switch themes.
type MenuModel struct {
	items        []MenuItem
	cursor       int
	width        int
	height       int
	store        *storage.Store
	config       core.RuntimeConfig
	keyMapper    *KeyMapper
	message      string
	quitting     bool
	selected     *MenuItem
	openProgress bool
}

// NewMenuModel creates a level select model with lock state and stars
// loaded from store. A nil store unlocks only level 1.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) MenuModel {
	items := loadMenuItems(store, logger)

	cursor := 0
	for i, it := range items {
		if it.Unlocked {
			cursor = i
		}
	}
	if cfg.Level > 0 && cfg.Level <= len(items) && items[cfg.Level-1].Unlocked {
		cursor = cfg.Level - 1
	}

	return MenuModel{
		items:     items,
		cursor:    cursor,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		store:     store,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

func loadMenuItems(store *storage.Store, logger *log.Logger) []MenuItem {
	var progress map[int]storage.LevelProgress
	if store != nil {
		p, err := store.AllProgress()
		if err != nil && logger != nil {
			logger.Warn("could not load progress", "error", err)
		}
		progress = p
	}
	var completed []int
	for level := range progress {
		completed = append(completed, level)
	}

	levels := sim.AllLevels(0, 0)
	items := make([]MenuItem, 0, len(levels))
	for _, lc := range levels {
		p := progress[lc.Level]
		items = append(items, MenuItem{
			Level:    lc.Level,
			Name:     lc.Name,
			Theme:    lc.Theme,
			Unlocked: sim.IsLevelUnlocked(lc.Level, completed),
			Stars:    p.Stars,
			Best:     p.BestScore,
		})
	}
	return items
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.message = ""
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor%sim.LevelsPerTheme > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor%sim.LevelsPerTheme < sim.LevelsPerTheme-1 && m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionLeft:
		if m.cursor >= sim.LevelsPerTheme {
			m.cursor -= sim.LevelsPerTheme
		}

	case MenuActionRight:
		if m.cursor+sim.LevelsPerTheme < len(m.items) {
			m.cursor += sim.LevelsPerTheme
		}

	case MenuActionSelect:
		if len(m.items) == 0 {
			return m, nil
		}
		item := m.items[m.cursor]
		if !item.Unlocked {
			m.message = fmt.Sprintf("Complete level %d to unlock %s", item.Level-1, item.Name)
			return m, nil
		}
		m.selected = &item
		m.config.Level = item.Level
		return m, tea.Quit // Exit menu to start the level

	case MenuActionProgress:
		m.openProgress = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("B U B B L E   P O P"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a level", m.width))
	b.WriteString("\n\n")

	columns := make([]string, 0, len(sim.Themes()))
	for t, theme := range sim.Themes() {
		var col strings.Builder
		col.WriteString(menuThemeStyle.Render(theme.Title()))
		col.WriteString("\n")
		for i := t * sim.LevelsPerTheme; i < (t+1)*sim.LevelsPerTheme && i < len(m.items); i++ {
			col.WriteString(m.renderItem(i))
			col.WriteString("\n")
		}
		columns = append(columns, lipgloss.NewStyle().MarginRight(3).Render(col.String()))
	}
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center,
		lipgloss.JoinHorizontal(lipgloss.Top, columns...)))
	b.WriteString("\n")

	if m.message != "" {
		b.WriteString(centerText(m.message, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Arrows: Navigate  |  Enter: Play  |  Tab: Progress  |  Q: Quit"
	b.WriteString(centerText(menuHintStyle.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

func (m MenuModel) renderItem(i int) string {
	item := m.items[i]
	line := fmt.Sprintf("%2d %s", item.Level, starString(item.Stars))
	style := lipgloss.NewStyle()
	if !item.Unlocked {
		line = fmt.Sprintf("%2d ---", item.Level)
		style = menuLockedStyle
	}
	if i == m.cursor {
		return menuActiveStyle.Render("> " + line)
	}
	return style.Render("  " + line)
}

// Items returns the levels shown by the menu.
func (m MenuModel) Items() []MenuItem {
	return m.items
}

// Cursor returns the index of the highlighted level.
func (m MenuModel) Cursor() int {
	return m.cursor
}

// Message returns the notice shown under the level grid, if any.
func (m MenuModel) Message() string {
	return m.message
}

// Selected returns the selected level, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsProgress returns true if user requested the progress screen.
func (m MenuModel) WantsProgress() bool {
	return m.openProgress
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// starString renders 0..3 stars.
func starString(n int) string {
	n = min(max(n, 0), 3)
	return strings.Repeat("★", n) + strings.Repeat("☆", 3-n)
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Level         int
	Config        core.RuntimeConfig
	WantsProgress bool
	Quit          bool
}

// RunMenu runs the level select screen and returns the selection result.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) (MenuResult, error) {
	model := NewMenuModel(store, cfg, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{
		Config: m.Config(),
	}

	if m.WantsProgress() {
		result.WantsProgress = true
		return result, nil
	}

	if m.IsQuitting() {
		result.Quit = true
		return result, nil
	}

	if m.Selected() != nil {
		result.Level = m.Selected().Level
	} else {
		result.Quit = true
	}

	return result, nil
}
