package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/frogpond/internal/core"
	"github.com/vovakirdan/frogpond/internal/games/frogs/levels"
	"github.com/vovakirdan/frogpond/internal/storage"
)

// LevelPickerModel is the level selection screen.
type LevelPickerModel struct {
	defs         []levels.Definition
	stats        map[string]*storage.LevelStats
	cursor       int
	scrollOffset int
	width        int
	height       int
	theme        Theme
	keyMapper    *KeyMapper
	selected     *levels.Definition
	openResults  bool
	quitting     bool
}

// NewLevelPickerModel creates a picker over defs. Store may be nil.
func NewLevelPickerModel(defs []levels.Definition, store *storage.Store, cfg core.RuntimeConfig, theme Theme) LevelPickerModel {
	m := LevelPickerModel{
		defs:      defs,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		theme:     theme,
		keyMapper: NewKeyMapper(),
	}
	if store != nil {
		if stats, err := store.GetAllLevelStats(); err == nil {
			m.stats = stats
		}
	}
	return m
}

// Init initializes the model.
func (m LevelPickerModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m LevelPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateScroll()
		return m, nil
	}
	return m, nil
}

func (m LevelPickerModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		m.moveCursor(-1)
	case MenuActionDown:
		m.moveCursor(1)
	case MenuActionSelect:
		if len(m.defs) > 0 {
			def := m.defs[m.cursor]
			m.selected = &def
			return m, tea.Quit
		}
	case MenuActionResults:
		m.openResults = true
		return m, tea.Quit
	}
	return m, nil
}

func (m *LevelPickerModel) moveCursor(delta int) {
	m.cursor = core.Clamp(m.cursor+delta, 0, max(len(m.defs)-1, 0))
	m.updateScroll()
}

// visibleItems is the number of level rows that fit the screen.
func (m LevelPickerModel) visibleItems() int {
	return core.Max((m.height-10)/2, 3)
}

// updateScroll adjusts scroll offset to keep cursor visible.
func (m *LevelPickerModel) updateScroll() {
	visible := m.visibleItems()
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	} else if m.cursor >= m.scrollOffset+visible {
		m.scrollOffset = m.cursor - visible + 1
	}
}

// View renders the level list.
func (m LevelPickerModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(m.theme.MenuTitle.Render("F R O G P O N D"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.theme.MenuDescription.Render("Select a level:"), m.width))
	b.WriteString("\n\n")

	if len(m.defs) == 0 {
		b.WriteString(centerText(m.theme.HUDWarning.Render("No levels found"), m.width))
		b.WriteString("\n")
	}

	end := core.Min(m.scrollOffset+m.visibleItems(), len(m.defs))
	if m.scrollOffset > 0 {
		b.WriteString(centerText(m.theme.MenuDescription.Render("... more above ..."), m.width))
		b.WriteString("\n")
	}
	for i := m.scrollOffset; i < end; i++ {
		def := &m.defs[i]
		cursor := "  "
		style := m.theme.MenuItemNormal
		if i == m.cursor {
			cursor = "> "
			style = m.theme.MenuItemActive
		}

		line := fmt.Sprintf("%s%-12s %-16s %2dx%-2d  %s",
			cursor, def.ID, def.Name, def.Level.Width, def.Level.Height, m.statsLine(def.ID))
		b.WriteString(centerText(style.Render(line), m.width))
		b.WriteString("\n")
		if def.Description != "" {
			b.WriteString(centerText(m.theme.MenuDescription.Render(def.Description), m.width))
		}
		b.WriteString("\n")
	}
	if end < len(m.defs) {
		b.WriteString(centerText(m.theme.MenuDescription.Render("... more below ..."), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := m.theme.HUDControls.Render("Up/Down: Navigate  |  Enter: Play  |  Tab: Results  |  Q: Quit")
	b.WriteString(centerText(controls, m.width))
	b.WriteString("\n")

	return b.String()
}

// statsLine summarizes the stored results of a level.
func (m LevelPickerModel) statsLine(levelID string) string {
	st, ok := m.stats[levelID]
	if !ok || st.Plays == 0 {
		return "not played"
	}
	if st.Wins == 0 {
		return fmt.Sprintf("0/%d won", st.Plays)
	}
	return fmt.Sprintf("%d/%d won  best %.1fs", st.Wins, st.Plays, st.BestMs/1000)
}

// Selected returns the chosen level, or nil.
func (m LevelPickerModel) Selected() *levels.Definition {
	return m.selected
}

// WantsResults returns true if the user asked for the results table.
func (m LevelPickerModel) WantsResults() bool {
	return m.openResults
}

// IsQuitting returns true if user wants to quit.
func (m LevelPickerModel) IsQuitting() bool {
	return m.quitting
}

// PickerResult holds the outcome of RunLevelPicker.
type PickerResult struct {
	Level       *levels.Definition
	WantResults bool
	Quit        bool
}

// RunLevelPicker shows the picker and returns the user's choice.
func RunLevelPicker(defs []levels.Definition, store *storage.Store, cfg core.RuntimeConfig) (PickerResult, error) {
	model := NewLevelPickerModel(defs, store, cfg, NewTheme(nil))

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return PickerResult{}, err
	}

	m, ok := finalModel.(LevelPickerModel)
	if !ok {
		return PickerResult{Quit: true}, nil
	}

	switch {
	case m.WantsResults():
		return PickerResult{WantResults: true}, nil
	case m.Selected() != nil:
		return PickerResult{Level: m.Selected()}, nil
	default:
		return PickerResult{Quit: true}, nil
	}
}
