package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/tabletop/arcade/internal/core"
	"github.com/tabletop/arcade/internal/logging"
	"github.com/tabletop/arcade/internal/registry"
	"github.com/tabletop/arcade/internal/storage"
)

// GameModel is the Bubble Tea model for running one game. It owns the tick
// loop, maps keys and mouse clicks to input frames, and saves the score once
// per game over.
type GameModel struct {
	game       registry.Game
	tickID     uint64
	screen     *core.Screen
	renderer   *ScreenRenderer
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	paused     bool
	quitting   bool
	backToMenu bool
	standalone bool // quit the program on back instead of returning to a menu
	scoreSaved bool // Whether score has been saved for current game over
	lastTick   time.Time
	pausedFor  time.Duration // wall time spent paused, hidden from the game
}

// NewGameModel creates a new game model. A nil renderer renders for the
// local terminal.
func NewGameModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, renderer *ScreenRenderer, logger *log.Logger) GameModel {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if renderer == nil {
		renderer = NewScreenRenderer(nil)
	}

	return GameModel{
		game:       game,
		tickID:     nextTickID(),
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		renderer:   renderer,
		store:      store,
		logger:     logging.OrDiscard(logger),
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
	}
}

// Init initializes the game and starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate, m.tickID)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.keyMapper.MapMouseToFrame(msg, &m.inputFrame)
		return m, nil

	case tea.WindowSizeMsg:
		// Games lay themselves out on every Render, so a resize never resets
		// a game in progress.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		if msg.ID != m.tickID {
			// a tick scheduled by a game that has since been left
			return m, nil
		}
		return m.handleTick(msg.Time)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame, m.gameState.GameOver) {
		m.quitting = true
		return m, tea.Quit
	}

	if m.inputFrame.Has(core.ActionBack) {
		m.backToMenu = true
		if m.standalone {
			return m, tea.Quit
		}
		return m, nil
	}

	if m.inputFrame.Has(core.ActionPause) && !m.gameState.GameOver {
		m.paused = !m.paused
		m.inputFrame.Clear()
	}

	return m, nil
}

// handleTick processes simulation ticks. at is the wall time of the tick.
func (m GameModel) handleTick(at time.Time) (tea.Model, tea.Cmd) {
	if m.backToMenu || m.quitting {
		return m, nil
	}

	if m.paused && !m.lastTick.IsZero() && at.After(m.lastTick) {
		m.pausedFor += at.Sub(m.lastTick)
	}
	m.lastTick = at

	if m.paused {
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate, m.tickID)
	}

	// Check for restart
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.scoreSaved = false
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate, m.tickID)
	}

	// Run game simulation
	if !at.IsZero() {
		m.inputFrame.Time = at.Add(-m.pausedFor)
	}
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	// Some games leave game over on their own (Simon goes back to idle).
	if !m.gameState.GameOver {
		m.scoreSaved = false
	}

	// Save score on game over (once)
	if m.gameState.GameOver && !m.scoreSaved && m.gameState.Score > 0 {
		if m.store != nil {
			//nolint:errcheck // Best-effort save, game continues regardless
			m.store.SaveScore(m.game.ID(), m.gameState.Score)
		}
		m.logger.Info("game over", "game", m.game.ID(), "score", m.gameState.Score)
		m.scoreSaved = true
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	// Continue ticking
	return m, tickCmd(m.config.TickRate, m.tickID)
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	// Render current state
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	// Generate filename with timestamp
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "path", path, "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	if m.paused {
		renderPaused(m.screen)
	}
	return m.renderer.Render(m.screen)
}

func renderPaused(s *core.Screen) {
	text := " PAUSED  Tab: resume "
	y := s.Height() / 2
	x := (s.Width() - len(text)) / 2
	for i, r := range text {
		s.SetCell(x+i, y, core.Cell{Rune: r, Color: core.ColorBlack, Bg: core.ColorBrightYellow})
	}
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// closeGame releases whatever the game holds open (engine processes).
func closeGame(g registry.Game, logger *log.Logger) {
	c, ok := g.(io.Closer)
	if !ok {
		return
	}
	if err := c.Close(); err != nil {
		logging.OrDiscard(logger).Warn("closing game", "game", g.ID(), "error", err)
	}
}

// Run plays game in the local terminal until the player quits or goes back.
// It reports whether the player asked to return to the menu.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) (back bool, err error) {
	defer closeGame(game, logger)

	model := NewGameModel(game, store, cfg, nil, logger)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Clicks drive chess, pads and buttons
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(GameModel)
	return ok && m.BackToMenu(), nil
}
