// Package tui provides the Bubble Tea integration for the arcade platform,
// including SSH server support via Wish.
package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	petname "github.com/dustinkirkland/golang-petname"

	"github.com/tabletop/arcade/internal/audio"
	"github.com/tabletop/arcade/internal/config"
	"github.com/tabletop/arcade/internal/core"
	"github.com/tabletop/arcade/internal/logging"
	"github.com/tabletop/arcade/internal/multiplayer"
	"github.com/tabletop/arcade/internal/registry"
	"github.com/tabletop/arcade/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.arcade/host_key.
	HostKeyPath string

	// DBPath is the path to the scores database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// TickRate is the simulation rate of every session.
	TickRate int
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.arcade/scores.db",
		IdleTimeout: 30 * time.Minute,
		TickRate:    60,
	}
}

// SSHServer wraps a Wish SSH server for the arcade.
type SSHServer struct {
	config   SSHServerConfig
	settings config.Settings
	server   *ssh.Server
	store    *storage.Store
	logger   *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration. Every
// connection gets its own session model; only the store is shared.
func NewSSHServer(cfg SSHServerConfig, settings config.Settings, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "arcade-ssh",
		})
	}

	// Open storage
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		// Continue without storage
		store = nil
	}

	srv := &SSHServer{
		config:   cfg,
		settings: settings,
		store:    store,
		logger:   logger,
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".arcade", "host_key")
	}

	// Ensure host key directory exists
	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	// Create Wish server options
	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	// Create the server
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

// nickname names the player of a session. Anonymous logins get a petname.
func nickname(user string) string {
	switch user {
	case "", "anonymous", "guest":
		return petname.Generate(2, "-")
	}
	return user
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		wish.Fatalln(sshSession, "arcade needs an interactive terminal, try ssh -t")
		return nil, nil
	}

	// Create runtime config from PTY size
	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
		Seed:     time.Now().UnixNano(),
	}

	sessionID := multiplayer.NewSessionID()
	model := NewSessionModel(SessionOptions{
		Store:     s.store,
		Settings:  s.settings,
		Logger:    s.logger.With("session", string(sessionID)[:8]),
		Sound:     audio.NewBell(sshSession),
		Renderer:  NewScreenRenderer(bubbletea.MakeRenderer(sshSession)),
		Player:    nickname(sshSession.User()),
		SessionID: sessionID,
		Owned:     true,
	}, cfg)

	// A dropped connection ends the program without a quit key; release the
	// running game anyway.
	go func() {
		<-sshSession.Context().Done()
		model.live.close()
	}()

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		start := time.Now()
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
			"duration", time.Since(start).Round(time.Second),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	// Setup signal handling for graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	errc := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
			errc <- err
		}
	}()

	select {
	case <-done:
	case err := <-errc:
		s.Shutdown() //nolint:errcheck // already failing
		return err
	}
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.server.Shutdown(ctx)
	if s.store != nil {
		s.store.Close()
	}
	return err
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// liveGame tracks the game a session is running so it can be closed from
// outside the Bubble Tea loop.
type liveGame struct {
	mu     sync.Mutex
	game   registry.Game
	logger *log.Logger
}

func (l *liveGame) set(g registry.Game) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.game = g
}

func (l *liveGame) close() {
	l.mu.Lock()
	g := l.game
	l.game = nil
	l.mu.Unlock()
	if g != nil {
		closeGame(g, l.logger)
	}
}

// SessionOptions carries what a session needs besides its screen size.
type SessionOptions struct {
	Store     *storage.Store
	Settings  config.Settings
	Logger    *log.Logger
	Sound     audio.Player
	Renderer  *ScreenRenderer
	Player    string
	SessionID multiplayer.SessionID
	Owned     bool // beats list shows only this player's recordings
}

type screen int

const (
	screenMenu screen = iota
	screenChess
	screenGame
	screenScores
	screenBeats
)

// SessionModel manages the full arcade session flow: menu -> game -> menu.
// This is the top-level model used for SSH sessions. Sub-screens signal that
// they are done by returning tea.Quit; the session swallows that and moves on.
type SessionModel struct {
	opts      SessionOptions
	config    core.RuntimeConfig
	screen    screen
	menu      MenuModel
	chessMenu ChessModeModel
	scores    ScoreboardModel
	beats     BeatsModel
	gameModel *GameModel
	live      *liveGame
	quitting  bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(opts SessionOptions, cfg core.RuntimeConfig) SessionModel {
	if opts.SessionID == "" {
		opts.SessionID = multiplayer.NewSessionID()
	}
	opts.Logger = logging.OrDiscard(opts.Logger)
	return SessionModel{
		opts:   opts,
		config: cfg,
		menu:   NewMenuModel(cfg),
		live:   &liveGame{logger: opts.Logger},
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenChess:
		return m.updateChessMenu(msg)
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	case screenBeats:
		return m.updateBeats(msg)
	default:
		return m.updateMenu(msg)
	}
}

func (m SessionModel) toMenu() (tea.Model, tea.Cmd) {
	m.screen = screenMenu
	m.menu = NewMenuModel(m.config)
	return m, m.menu.Init()
}

func (m SessionModel) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.live.close()
	return m, tea.Quit
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch {
	case m.menu.IsQuitting():
		return m.quit()

	case m.menu.WantsScoreboard():
		m.screen = screenScores
		m.scores = NewScoreboardModel(m.opts.Store, m.opts.Settings, m.config.ScreenW, m.config.ScreenH)
		return m, m.scores.Init()

	case m.menu.WantsBeats():
		owner := ""
		if m.opts.Owned {
			owner = m.opts.Player
		}
		m.screen = screenBeats
		m.beats = NewBeatsModel(m.opts.Store, owner, m.config.ScreenW, m.config.ScreenH)
		return m, m.beats.Init()

	case m.menu.Selected() != nil:
		selected := m.menu.Selected()
		m.config = m.menu.Config() // Get possibly updated config from resize
		if selected.GameID == "chess" {
			m.screen = screenChess
			m.chessMenu = NewChessModeModel(m.config.ScreenW, m.config.ScreenH)
			return m, m.chessMenu.Init()
		}
		return m.startGame(selected.GameID, "")
	}

	return m, cmd
}

func (m SessionModel) updateChessMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.chessMenu.Update(msg)
	if cm, ok := newModel.(ChessModeModel); ok {
		m.chessMenu = cm
	}

	switch {
	case m.chessMenu.IsQuitting():
		return m.quit()
	case m.chessMenu.WantsBack():
		return m.toMenu()
	case m.chessMenu.Selected() != nil:
		sel := m.chessMenu.Selected()
		return m.startGame(sel.GameID, sel.Preset)
	}
	return m, cmd
}

// startGame creates the game with per-session dependencies and switches to it.
func (m SessionModel) startGame(gameID string, preset config.DifficultyPreset) (tea.Model, tea.Cmd) {
	settings := m.opts.Settings
	if preset != "" {
		settings.ApplyPreset(gameID, preset)
	}

	info, _ := registry.Info(gameID)
	match := multiplayer.NewMatch(multiplayer.NewMatchID(), info.Mode, m.opts.SessionID, m.opts.Player)
	logger := m.opts.Logger.With("game", gameID)

	game, err := registry.Create(gameID, registry.Deps{
		Settings: settings,
		Logger:   logger,
		Sound:    m.opts.Sound,
		Store:    m.opts.Store,
		Match:    match,
	})
	if err != nil {
		// Shouldn't happen since menu only shows registered games
		m.opts.Logger.Error("cannot create game", "game", gameID, "error", err)
		return m.toMenu()
	}
	m.live.set(game)

	gameModel := NewGameModel(game, m.opts.Store, m.config, m.opts.Renderer, logger)
	m.gameModel = &gameModel
	m.screen = screenGame
	logger.Info("game started", "player", m.opts.Player, "mode", info.Mode.String())
	return m, m.gameModel.Init()
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.gameModel.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.gameModel = &gameModel
	}

	// Check if user quit entirely
	if m.gameModel.IsQuitting() {
		return m.quit()
	}

	// Check if user left the game (back to menu)
	if m.gameModel.BackToMenu() {
		m.live.close()
		m.gameModel = nil
		return m.toMenu()
	}

	return m, cmd
}

func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scores.Update(msg)
	if sm, ok := newModel.(ScoreboardModel); ok {
		m.scores = sm
	}
	switch {
	case m.scores.IsQuitting():
		return m.quit()
	case m.scores.IsGoingBack():
		return m.toMenu()
	}
	return m, cmd
}

func (m SessionModel) updateBeats(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.beats.Update(msg)
	if bm, ok := newModel.(BeatsModel); ok {
		m.beats = bm
	}
	switch {
	case m.beats.IsQuitting():
		return m.quit()
	case m.beats.IsGoingBack():
		return m.toMenu()
	}
	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenChess:
		return m.chessMenu.View()
	case screenGame:
		if m.gameModel != nil {
			return m.gameModel.View()
		}
	case screenScores:
		return m.scores.View()
	case screenBeats:
		return m.beats.View()
	}
	return m.menu.View()
}
