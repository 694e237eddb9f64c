package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	sim "github.com/vovakirdan/bubblepop/internal/games/bubblepop/core"
	"github.com/vovakirdan/bubblepop/internal/storage"
)

// ProgressKeyMap defines the key bindings for the progress screen.
type ProgressKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	NextTheme key.Binding
	PrevTheme key.Binding
	Back      key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ProgressKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextTheme, k.PrevTheme, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ProgressKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextTheme, k.PrevTheme},
		{k.Back, k.Quit},
	}
}

// DefaultProgressKeyMap returns default key bindings.
func DefaultProgressKeyMap() ProgressKeyMap {
	return ProgressKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextTheme: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next theme"),
		),
		PrevTheme: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev theme"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ProgressModel shows stars, best score and run counts per level, one
// theme at a time.
type ProgressModel struct {
	themes    []sim.Theme
	themeIdx  int
	store     *storage.Store
	logger    *log.Logger
	progress  map[int]storage.LevelProgress
	stats     map[int]storage.LevelStats
	table     table.Model
	help      help.Model
	keys      ProgressKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewProgressModel creates a progress model.
func NewProgressModel(store *storage.Store, width, height int, logger *log.Logger) ProgressModel {
	h := help.New()
	h.ShowAll = false

	m := ProgressModel{
		themes: sim.Themes(),
		store:  store,
		logger: logger,
		keys:   DefaultProgressKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.load()
	m.table = m.createTable()
	m.updateTableRows()
	return m
}

// load reads progression and run statistics from the store.
func (m *ProgressModel) load() {
	m.progress = map[int]storage.LevelProgress{}
	m.stats = map[int]storage.LevelStats{}
	if m.store == nil {
		return
	}
	if p, err := m.store.AllProgress(); err == nil {
		m.progress = p
	} else if m.logger != nil {
		m.logger.Warn("could not load progress", "error", err)
	}
	if st, err := m.store.AllLevelStats(); err == nil {
		m.stats = st
	} else if m.logger != nil {
		m.logger.Warn("could not load level stats", "error", err)
	}
}

func (m *ProgressModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Level", Width: 6},
		{Title: "Name", Width: 20},
		{Title: "Stars", Width: 6},
		{Title: "Best", Width: 8},
		{Title: "Runs", Width: 6},
	}
	if avail := m.width - 4 - 6 - 6 - 8 - 6 - 10; avail > 20 {
		columns[1].Width = min(avail, 32)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, sim.LevelsPerTheme+1)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// Rows returns the table rows for the current theme.
func (m ProgressModel) Rows() []table.Row {
	if len(m.themes) == 0 {
		return nil
	}
	levels := sim.ThemeLevels(m.themes[m.themeIdx], 0, 0)
	rows := make([]table.Row, 0, len(levels))
	for _, lc := range levels {
		p, done := m.progress[lc.Level]
		stars, best := "-", "-"
		if done {
			stars = starString(p.Stars)
			best = fmt.Sprintf("%d", p.BestScore)
		}
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", lc.Level),
			lc.Name,
			stars,
			best,
			fmt.Sprintf("%d", m.stats[lc.Level].Runs),
		})
	}
	return rows
}

func (m *ProgressModel) updateTableRows() {
	m.table.SetRows(m.Rows())
	m.table.GotoTop()
}

// Init initializes the progress model.
func (m ProgressModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the progress screen.
func (m ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextTheme):
			if len(m.themes) > 0 {
				m.themeIdx = (m.themeIdx + 1) % len(m.themes)
				m.updateTableRows()
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevTheme):
			if len(m.themes) > 0 {
				m.themeIdx = (m.themeIdx - 1 + len(m.themes)) % len(m.themes)
				m.updateTableRows()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the progress screen.
func (m ProgressModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)
	b.WriteString(titleStyle.Render(centerText("PROGRESS", m.width)))
	b.WriteString("\n\n")

	tabStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)
	tabs := make([]string, len(m.themes))
	for i, t := range m.themes {
		if i == m.themeIdx {
			tabs[i] = activeTabStyle.Render(t.Title())
		} else {
			tabs[i] = tabStyle.Render(" " + t.Title() + " ")
		}
	}
	b.WriteString(centerText(strings.Join(tabs, " "), m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, tableStyle.Render(m.table.View())))
	b.WriteString("\n")

	b.WriteString(centerText(m.summary(), m.width))
	b.WriteString("\n\n")

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// summary is the completed-level and star total line.
func (m ProgressModel) summary() string {
	stars := 0
	for _, p := range m.progress {
		stars += p.Stars
	}
	return fmt.Sprintf("%d/%d levels completed  %d/%d stars",
		len(m.progress), storage.MaxLevel, stars, storage.MaxLevel*3)
}

// IsGoingBack returns true if user wants to go back to the menu.
func (m ProgressModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ProgressModel) IsQuitting() bool {
	return m.quitting
}

// RunProgress runs the progress screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunProgress(store *storage.Store, width, height int, logger *log.Logger) (goBack bool, err error) {
	model := NewProgressModel(store, width, height, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ProgressModel)
	if !ok {
		return false, nil
	}

	return m.IsGoingBack(), nil
}
