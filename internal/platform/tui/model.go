package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/frogpond/internal/config"
	"github.com/vovakirdan/frogpond/internal/core"
	"github.com/vovakirdan/frogpond/internal/games/frogs"
	"github.com/vovakirdan/frogpond/internal/games/frogs/engine"
	"github.com/vovakirdan/frogpond/internal/storage"
)

// PlayModel is the Bubble Tea model of one frog pond game.
type PlayModel struct {
	session  *frogs.Session
	title    string
	store    *storage.Store
	player   string
	logger   *log.Logger
	theme    Theme
	keys     *KeyMapper
	help     help.Model
	screen   *core.Screen
	config   core.RuntimeConfig
	input    core.InputFrame
	lastTick time.Time
	status   string // Transient message under the title

	quitting   bool
	backToMenu bool
	saved      bool // Whether the result of the current game has been stored
	savedID    int64
}

// PlayOptions configures a PlayModel.
type PlayOptions struct {
	Title  string
	Store  *storage.Store // Optional
	Player string         // SSH user, empty for local play
	Logger *log.Logger    // Optional
	Theme  *Theme         // Optional, defaults to NewTheme(nil)
}

// NewPlayModel creates a play model over an existing session.
func NewPlayModel(session *frogs.Session, cfg core.RuntimeConfig, opts PlayOptions) PlayModel {
	theme := NewTheme(nil)
	if opts.Theme != nil {
		theme = *opts.Theme
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(os.Stderr)
		logger.SetLevel(log.FatalLevel)
	}
	title := opts.Title
	if title == "" {
		title = session.LevelID()
	}

	h := help.New()
	h.Styles.ShortKey = theme.HUDControls
	h.Styles.ShortDesc = theme.HUDControls
	h.Styles.FullKey = theme.HUDControls
	h.Styles.FullDesc = theme.HUDControls

	return PlayModel{
		session: session,
		title:   title,
		store:   opts.Store,
		player:  opts.Player,
		logger:  logger,
		theme:   theme,
		keys:    NewKeyMapper(),
		help:    h,
		screen:  core.NewScreen(cfg.ScreenW, core.Max(cfg.ScreenH-helpRows, 0)),
		config:  cfg,
		input:   core.NewInputFrame(),
	}
}

// helpRows is the space reserved below the board for the help bar.
const helpRows = 3

// Init starts the tick loop.
func (m PlayModel) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m PlayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, core.Max(msg.Height-helpRows, 0))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input. Game actions are queued for the next
// tick; screen actions apply immediately.
func (m PlayModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.keys.MapKeyToFrame(msg, &m.input) {
		m.quitting = true
		return m, tea.Quit
	}

	switch msg.String() {
	case "?":
		m.help.ShowAll = !m.help.ShowAll
	case "ctrl+s":
		m.saveScreenshot()
	}

	if m.input.Has(core.ActionBack) {
		m.backToMenu = true
		m.input.Clear()
	}
	return m, nil
}

// handleTick applies queued actions and advances the simulation by the
// wall-clock time since the previous tick.
func (m PlayModel) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	delta := 1000.0 / float64(core.Max(m.config.TickRate, 1))
	if !m.lastTick.IsZero() {
		delta = float64(now.Sub(m.lastTick)) / float64(time.Millisecond)
	}
	m.lastTick = now

	for _, a := range m.input.Actions() {
		m.apply(a)
	}
	m.input.Clear()

	events := m.session.Step(delta)
	m.logEvents(events)

	if m.session.Done() && !m.saved {
		m.saveResult()
	}

	return m, tickCmd(m.config.TickRate)
}

// apply performs one player action on the session.
func (m *PlayModel) apply(a core.Action) {
	s := m.session
	switch a {
	case core.ActionLeft:
		s.MoveSelection(-1)
	case core.ActionRight:
		s.MoveSelection(1)
	case core.ActionFocus:
		s.ToggleFocus()
	case core.ActionDeploy:
		m.status = ""
		m.logEvents(s.Deploy())
	case core.ActionAuto:
		m.status = ""
		m.logEvents(s.AutoDeploy())
	case core.ActionPause:
		s.TogglePause()
	case core.ActionRestart:
		if err := s.Restart(); err != nil {
			m.status = err.Error()
			return
		}
		m.saved = false
		m.savedID = 0
		m.status = "restarted"
		m.logger.Info("game restarted", "level", s.LevelID(), "seed", s.Seed())
	case core.ActionShare:
		code, err := s.ShareCode()
		if err != nil {
			m.status = err.Error()
			return
		}
		m.status = "share: " + code
		m.logger.Info("share code", "level", s.LevelID(), "code", code)
	}
}

// logEvents reports the outcome events of a batch.
func (m *PlayModel) logEvents(events []engine.Event) {
	for _, ev := range events {
		switch e := ev.(type) {
		case engine.GameWon:
			m.logger.Info("game won", "level", m.session.LevelID(), "elapsed_ms", m.session.State.ElapsedMs)
		case engine.GameLost:
			m.logger.Info("game lost", "level", m.session.LevelID(), "reason", e.Reason)
		case engine.VictoryModeTriggered:
			m.logger.Debug("victory mode", "level", m.session.LevelID())
		}
	}
}

// saveResult stores the finished game once.
func (m *PlayModel) saveResult() {
	m.saved = true
	if m.store == nil {
		return
	}

	o := m.session.Outcome()
	code, err := m.session.ShareCode()
	if err != nil {
		m.logger.Warn("could not encode share code", "error", err)
	}

	outcome := storage.OutcomeLost
	if o.Status == engine.StatusWon {
		outcome = storage.OutcomeWon
	}
	id, err := m.store.SaveResult(storage.Result{
		LevelID:    o.LevelID,
		ShareCode:  code,
		Seed:       o.Seed,
		Outcome:    outcome,
		LostReason: o.LostReason,
		ElapsedMs:  o.ElapsedMs,
		Deploys:    o.Deploys,
		Player:     m.player,
	})
	if err != nil {
		m.logger.Error("could not save result", "error", err)
		return
	}
	m.savedID = id
	m.logger.Info("result saved", "id", id, "level", o.LevelID, "outcome", outcome)
}

// saveScreenshot saves the current board as plain text.
func (m *PlayModel) saveScreenshot() {
	drawSession(m.screen, m.session, m.title, m.status)

	dir := filepath.Join(config.HomeDir(), "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.status = "screenshot failed: " + err.Error()
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.session.LevelID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.status = "screenshot failed: " + err.Error()
		return
	}
	m.status = "saved " + path
}

// View renders the current state to a string for display.
func (m PlayModel) View() string {
	if m.quitting {
		return ""
	}

	drawSession(m.screen, m.session, m.title, m.status)
	board := RenderScreen(m.screen, m.theme)

	if m.session.Done() {
		overlay := m.renderOverlay()
		board = m.theme.Renderer().Place(m.screen.Width(), m.screen.Height(), lipgloss.Center, lipgloss.Center, overlay)
	}

	return board + "\n" + m.help.View(m.keys.Keys())
}

// renderOverlay draws the end of game box.
func (m PlayModel) renderOverlay() string {
	o := m.session.Outcome()

	var title string
	switch o.Status {
	case engine.StatusWon:
		title = m.theme.OverlayWon.Render("POND CLEARED")
	default:
		title = m.theme.OverlayLost.Render("GAME OVER")
	}

	body := fmt.Sprintf("%s\n\ntime %.1fs  deploys %d  pixels left %d",
		title, o.ElapsedMs/1000, o.Deploys, o.RemainingAlive)
	if o.LostReason != "" {
		body += "\n" + o.LostReason
	}
	body += "\n\n" + m.theme.HUDControls.Render("r restart  s share  esc levels  q quit")
	return m.theme.OverlayBorder.Render(m.theme.OverlayText.Render(body))
}

// Session returns the underlying game session.
func (m PlayModel) Session() *frogs.Session {
	return m.session
}

// SavedID returns the stored result id of the finished game, or 0.
func (m PlayModel) SavedID() int64 {
	return m.savedID
}

// IsQuitting returns true if user requested to quit entirely.
func (m PlayModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to the level picker.
func (m PlayModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays a single session until the player quits or goes back.
func Run(session *frogs.Session, cfg core.RuntimeConfig, opts PlayOptions) (PlayModel, error) {
	model := NewPlayModel(session, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	final, err := p.Run()
	if err != nil {
		return model, err
	}
	if fm, ok := final.(PlayModel); ok {
		return fm, nil
	}
	return model, nil
}
