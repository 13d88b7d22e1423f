package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tabletop/arcade/internal/config"
	"github.com/tabletop/arcade/internal/core"
)

// ChessSelection holds the user's choice from the chess menu.
type ChessSelection struct {
	GameID string                  // "chess" or "chess_local"
	Preset config.DifficultyPreset // engine strength, vs computer only
}

var chessModes = []string{
	"Play vs Computer",
	"Play Local 2-Player",
}

var chessLevels = []struct {
	preset config.DifficultyPreset
	label  string
}{
	{config.DifficultyEasy, "Easy"},
	{config.DifficultyNormal, "Normal"},
	{config.DifficultyHard, "Hard"},
}

// ChessModeModel lets users choose an opponent and, against the computer,
// its strength.
type ChessModeModel struct {
	cursor        int
	levelCursor   int
	inLevelSelect bool
	width         int
	height        int
	keyMapper     *KeyMapper
	selection     ChessSelection
	choosing      bool
	quitting      bool
	back          bool
	exitOnDone    bool // standalone program: quit once a choice is made
}

// NewChessModeModel creates a new chess mode selection model.
func NewChessModeModel(width, height int) ChessModeModel {
	return ChessModeModel{
		levelCursor: 1,
		width:       width,
		height:      height,
		keyMapper:   NewKeyMapper(),
		choosing:    true,
	}
}

// Init initializes the model.
func (m ChessModeModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m ChessModeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m, cmd := m.handleKey(msg)
		if cmd == nil && m.exitOnDone && (!m.choosing || m.back) {
			cmd = tea.Quit
		}
		return m, cmd
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m ChessModeModel) handleKey(msg tea.KeyMsg) (ChessModeModel, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)

	if m.inLevelSelect {
		return m.handleLevelSelectKey(action)
	}
	return m.handleModeSelectKey(action)
}

func (m ChessModeModel) handleModeSelectKey(action MenuAction) (ChessModeModel, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(chessModes)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		if m.cursor == 0 {
			m.inLevelSelect = true
			return m, nil
		}
		m.choosing = false
		m.selection = ChessSelection{GameID: "chess_local"}
	case MenuActionBack:
		m.back = true
	}
	return m, nil
}

func (m ChessModeModel) handleLevelSelectKey(action MenuAction) (ChessModeModel, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.levelCursor > 0 {
			m.levelCursor--
		}
	case MenuActionDown:
		if m.levelCursor < len(chessLevels)-1 {
			m.levelCursor++
		}
	case MenuActionSelect:
		m.choosing = false
		m.selection = ChessSelection{GameID: "chess", Preset: chessLevels[m.levelCursor].preset}
	case MenuActionBack:
		m.inLevelSelect = false
	}
	return m, nil
}

// View renders the mode or level selection.
func (m ChessModeModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText("C H E S S", m.width))
	b.WriteString("\n\n")

	if m.inLevelSelect {
		b.WriteString(centerText("Computer strength:", m.width))
		b.WriteString("\n\n")
		for i, l := range chessLevels {
			b.WriteString(centerText(cursorLine(i == m.levelCursor, l.label), m.width))
			b.WriteString("\n")
		}
	} else {
		b.WriteString(centerText("Select game mode:", m.width))
		b.WriteString("\n\n")
		for i, mode := range chessModes {
			b.WriteString(centerText(cursorLine(i == m.cursor, mode), m.width))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width))
	return b.String()
}

func cursorLine(active bool, text string) string {
	cursor := "  "
	if active {
		cursor = "> "
	}
	return fmt.Sprintf("%s%s", cursor, text)
}

// Selected returns the selection, or nil if still choosing.
func (m ChessModeModel) Selected() *ChessSelection {
	if m.choosing {
		return nil
	}
	return &m.selection
}

// IsQuitting returns true if user wants to quit.
func (m ChessModeModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m ChessModeModel) WantsBack() bool {
	return m.back
}

// RunChessModeSelector runs the chess menu as its own program. A nil
// selection means the user backed out or quit.
func RunChessModeSelector(cfg core.RuntimeConfig) (sel *ChessSelection, quit bool, err error) {
	model := NewChessModeModel(cfg.ScreenW, cfg.ScreenH)
	model.exitOnDone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, false, err
	}

	m, ok := finalModel.(ChessModeModel)
	if !ok || m.IsQuitting() {
		return nil, true, nil
	}
	if m.WantsBack() {
		return nil, false, nil
	}
	return m.Selected(), false, nil
}
