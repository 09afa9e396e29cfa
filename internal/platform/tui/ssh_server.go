package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/frogpond/internal/config"
	"github.com/vovakirdan/frogpond/internal/core"
	"github.com/vovakirdan/frogpond/internal/games/frogs"
	"github.com/vovakirdan/frogpond/internal/games/frogs/level"
	"github.com/vovakirdan/frogpond/internal/games/frogs/levels"
	"github.com/vovakirdan/frogpond/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.frogpond/host_key.
	HostKeyPath string

	// DBPath is the path to the results database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Levels offered by the picker.
	Levels []levels.Definition

	// Rules are applied on top of every level's own rules.
	Rules level.Overrides

	// Runtime holds the tick rate and frame clamp of each session.
	Runtime core.RuntimeConfig

	// LogLevel of the server logger.
	LogLevel log.Level
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.frogpond/results.db",
		IdleTimeout: 30 * time.Minute,
		Runtime:     core.DefaultConfig(),
		LogLevel:    log.InfoLevel,
	}
}

// SSHServer wraps a Wish SSH server serving the frog pond.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	if len(cfg.Levels) == 0 {
		return nil, errors.New("no levels to serve")
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "frogpond-ssh",
		Level:           cfg.LogLevel,
	})

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open results database", "error", err)
		// Continue without storage
		store = nil
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home := config.HomeDir()
		if home == "" {
			return nil, errors.New("cannot get home directory")
		}
		hostKeyPath = filepath.Join(home, "host_key")
	}

	if mkdirErr := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	cfg := s.config.Runtime
	cfg.ScreenW = pty.Window.Width
	cfg.ScreenH = pty.Window.Height

	theme := NewTheme(bubbletea.MakeRenderer(sshSession))
	model := NewSessionModel(SessionConfig{
		Store:   s.store,
		Levels:  s.config.Levels,
		Rules:   s.config.Rules,
		Runtime: cfg,
		Player:  sshSession.User(),
		Theme:   theme,
		Logger:  s.logger.With("user", sshSession.User()),
	})

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address, "levels", len(s.config.Levels))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.store != nil {
		s.store.Close()
	}

	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// SessionConfig configures a SessionModel.
type SessionConfig struct {
	Store   *storage.Store // Optional
	Levels  []levels.Definition
	Rules   level.Overrides
	Runtime core.RuntimeConfig
	Player  string
	Theme   Theme
	Logger  *log.Logger
}

type sessionView int

const (
	viewPicker sessionView = iota
	viewPlay
	viewResults
)

// SessionModel manages the full flow: picker -> game -> picker, plus the
// results table. It is the top-level model of SSH sessions and of the
// local menu.
type SessionModel struct {
	cfg      SessionConfig
	view     sessionView
	picker   LevelPickerModel
	results  ResultsModel
	play     *PlayModel
	quitting bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(cfg SessionConfig) SessionModel {
	if cfg.Logger == nil {
		cfg.Logger = log.New(os.Stderr)
		cfg.Logger.SetLevel(log.FatalLevel)
	}
	if cfg.Theme.Renderer() == nil {
		cfg.Theme = NewTheme(nil)
	}
	m := SessionModel{cfg: cfg}
	m.picker = m.newPicker()
	return m
}

func (m SessionModel) newPicker() LevelPickerModel {
	return NewLevelPickerModel(m.cfg.Levels, m.cfg.Store, m.cfg.Runtime, m.cfg.Theme)
}

func (m SessionModel) levelIDs() []string {
	ids := make([]string, len(m.cfg.Levels))
	for i, def := range m.cfg.Levels {
		ids[i] = def.ID
	}
	return ids
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.picker.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.cfg.Runtime.ScreenW = wsm.Width
		m.cfg.Runtime.ScreenH = wsm.Height
	}

	switch m.view {
	case viewPlay:
		return m.updatePlay(msg)
	case viewResults:
		return m.updateResults(msg)
	default:
		return m.updatePicker(msg)
	}
}

// updatePicker handles updates when the level picker is shown.
func (m SessionModel) updatePicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.picker.Update(msg)
	if pm, ok := next.(LevelPickerModel); ok {
		m.picker = pm
	}

	switch {
	case m.picker.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.picker.WantsResults():
		m.results = NewResultsModel(m.cfg.Store, m.levelIDs(), m.cfg.Runtime.ScreenW, m.cfg.Runtime.ScreenH, m.cfg.Theme)
		m.view = viewResults
		return m, m.results.Init()

	case m.picker.Selected() != nil:
		def := m.picker.Selected()
		session, err := NewLevelSession(*def, m.cfg.Rules, m.cfg.Runtime, frogs.Options{})
		if err != nil {
			m.cfg.Logger.Error("could not start level", "level", def.ID, "error", err)
			m.picker = m.newPicker()
			return m, nil
		}
		m.cfg.Logger.Info("game started", "level", def.ID, "seed", session.Seed())

		play := NewPlayModel(session, m.cfg.Runtime, PlayOptions{
			Title:  def.Name,
			Store:  m.cfg.Store,
			Player: m.cfg.Player,
			Logger: m.cfg.Logger,
			Theme:  &m.cfg.Theme,
		})
		m.play = &play
		m.view = viewPlay
		return m, m.play.Init()
	}

	return m, cmd
}

// updatePlay handles updates when a game is running.
func (m SessionModel) updatePlay(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.play.Update(msg)
	if pm, ok := next.(PlayModel); ok {
		m.play = &pm
	}

	if m.play.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.play.BackToMenu() {
		m.play = nil
		m.view = viewPicker
		// Reload so new results show up
		m.picker = m.newPicker()
		return m, m.picker.Init()
	}

	return m, cmd
}

// updateResults handles updates when the results table is shown.
func (m SessionModel) updateResults(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.results.Update(msg)
	if rm, ok := next.(ResultsModel); ok {
		m.results = rm
	}

	if m.results.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.results.IsGoingBack() {
		m.view = viewPicker
		m.picker = m.newPicker()
		return m, m.picker.Init()
	}

	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.view {
	case viewPlay:
		return m.play.View()
	case viewResults:
		return m.results.View()
	default:
		return m.picker.View()
	}
}

// NewLevelSession starts a session on def with rules applied on top of the
// level's own. A fixed seed in rt is honoured, otherwise a fresh one is drawn.
// opts.OnEvents is kept; the other options are filled from def and rt.
func NewLevelSession(def levels.Definition, rules level.Overrides, rt core.RuntimeConfig, opts frogs.Options) (*frogs.Session, error) {
	l, err := def.Level.WithRules(rules)
	if err != nil {
		return nil, fmt.Errorf("applying rules to %s: %w", def.ID, err)
	}

	seed := rt.Seed
	if !rt.FixedSeed {
		seed = frogs.RandomSeed()
	}

	opts.LevelID = def.ID
	opts.Seed = seed
	opts.MaxDeltaMs = rt.MaxDeltaMs
	return frogs.NewSession(l, opts)
}

// RunSession runs the picker, game and results flow until the user quits.
func RunSession(cfg SessionConfig) error {
	p := tea.NewProgram(NewSessionModel(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
