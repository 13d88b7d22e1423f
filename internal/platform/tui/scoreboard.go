package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tabletop/arcade/internal/config"
	"github.com/tabletop/arcade/internal/registry"
	"github.com/tabletop/arcade/internal/storage"
)

const (
	minWidthForSidebar = 80 // narrower terminals get tabs instead of the sidebar
	sidebarWidth       = 20
	maxScores          = 100
	overviewTitle      = "All games"
)

// unscoredGames never report a score: hot-seat chess has no single winner to
// credit and the drum kit has no game over.
var unscoredGames = map[string]bool{
	"chess_local": true,
	"drums":       true,
}

// scoreFormat says how a game's raw score reads on the board.
type scoreFormat struct {
	title  string
	render func(score int) string
}

// scoreFormatFor returns the column for gameID. Simon scores the level
// reached, rps the rounds won of a session, and chess 200 minus the plies of
// a win against the computer.
func scoreFormatFor(gameID string, settings config.Settings) scoreFormat {
	switch gameID {
	case "simon":
		return scoreFormat{"Level", strconv.Itoa}
	case "rps":
		rounds := settings.RPS.Rounds
		return scoreFormat{"Won", func(s int) string {
			if rounds <= 0 {
				return strconv.Itoa(s)
			}
			return fmt.Sprintf("%d/%d", s, rounds)
		}}
	case "chess":
		return scoreFormat{"Won in", func(s int) string {
			if s <= 1 {
				return "100+ moves"
			}
			return fmt.Sprintf("%d moves", (200-s+1)/2)
		}}
	}
	return scoreFormat{"Score", strconv.Itoa}
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Next key.Binding
	Prev key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Next, k.Prev, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Next, k.Prev}, {k.Back, k.Quit}}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("up/k", "scroll up")),
		Down: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("down/j", "scroll down")),
		Next: key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab/right", "next board")),
		Prev: key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab/left", "prev board")),
		Back: key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel shows an overview of every scored game followed by one
// board per game. Page 0 is the overview; page i is games[i-1].
type ScoreboardModel struct {
	games    []registry.GameInfo
	settings config.Settings
	page     int
	store    *storage.Store

	scores   []storage.ScoreEntry
	stats    *storage.GameStats
	overview map[string]*storage.GameStats

	table       table.Model
	help        help.Model
	keys        ScoreboardKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool
	showSidebar bool
}

// NewScoreboardModel creates a scoreboard opened on the overview page.
// settings supply the session length the rps column is read against.
func NewScoreboardModel(store *storage.Store, settings config.Settings, width, height int) ScoreboardModel {
	var games []registry.GameInfo
	for _, g := range registry.List() {
		if !unscoredGames[g.ID] {
			games = append(games, g)
		}
	}

	m := ScoreboardModel{
		games:       games,
		settings:    settings,
		store:       store,
		keys:        DefaultScoreboardKeyMap(),
		help:        help.New(),
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.load()
	return m
}

// pages is the overview plus one page per game.
func (m ScoreboardModel) pages() int { return len(m.games) + 1 }

// pageTitle names page i.
func (m ScoreboardModel) pageTitle(i int) string {
	if i == 0 {
		return overviewTitle
	}
	return m.games[i-1].Title
}

// load fetches the data of the current page and rebuilds the table.
func (m *ScoreboardModel) load() {
	m.scores, m.stats, m.overview = nil, nil, nil

	if m.store != nil {
		if m.page == 0 {
			if all, err := m.store.GetAllGamesStats(); err == nil {
				m.overview = all
			}
		} else {
			id := m.games[m.page-1].ID
			if scores, err := m.store.TopScores(id, maxScores); err == nil {
				m.scores = scores
			}
			if stats, err := m.store.GetGameStats(id); err == nil {
				m.stats = stats
			}
		}
	}
	m.table = m.buildTable()
}

func (m *ScoreboardModel) tableWidth() int {
	w := m.width - 4
	if m.showSidebar {
		w -= sidebarWidth + 3
	}
	return max(w, 30)
}

// buildTable lays out the columns of the current page and fills the rows.
func (m *ScoreboardModel) buildTable() table.Model {
	var (
		columns []table.Column
		rows    []table.Row
	)

	if m.page == 0 {
		columns = []table.Column{
			{Title: "Game", Width: 20},
			{Title: "Played", Width: 7},
			{Title: "Best", Width: 11},
			{Title: "Last", Width: 13},
		}
		for _, g := range m.games {
			st, ok := m.overview[g.ID]
			if !ok {
				continue
			}
			rows = append(rows, table.Row{
				g.Title,
				strconv.Itoa(st.GamesCount),
				scoreFormatFor(g.ID, m.settings).render(st.HighScore),
				st.LastPlayed.Format("Jan 02 15:04"),
			})
		}
	} else {
		format := scoreFormatFor(m.games[m.page-1].ID, m.settings)
		dateWidth := min(20, max(13, m.tableWidth()-6-12-4))
		columns = []table.Column{
			{Title: "Rank", Width: 6},
			{Title: format.title, Width: 12},
			{Title: "Date", Width: dateWidth},
		}
		for i, s := range m.scores {
			rows = append(rows, table.Row{
				fmt.Sprintf("#%d", i+1),
				format.render(s.Score),
				s.CreatedAt.Format("Jan 02 15:04"),
			})
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-9)),
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

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
		case key.Matches(msg, m.keys.Next):
			m.page = (m.page + 1) % m.pages()
			m.load()
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.page = (m.page + m.pages() - 1) % m.pages()
			m.load()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.help.Width = msg.Width
		m.table = m.buildTable()
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	b.WriteString(title.Render(centerText("HIGH SCORES - "+m.pageTitle(m.page), m.width)))
	b.WriteString("\n\n")

	board := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1).
		Render(m.boardContent())

	if m.showSidebar {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.sidebar(), "  ", board))
	} else {
		b.WriteString(centerText(m.tabs(), m.width))
		b.WriteString("\n\n")
		b.WriteString(board)
	}
	b.WriteString("\n")

	if footer := m.footer(); footer != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Render(centerText(footer, m.width)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render(m.help.View(m.keys)))
	return b.String()
}

func (m ScoreboardModel) sidebar() string {
	var s strings.Builder
	for i := range m.pages() {
		name := truncate(m.pageTitle(i), sidebarWidth-6)
		s.WriteString(cursorLine(i == m.page, name))
		s.WriteString("\n")
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1).
		Render(strings.TrimRight(s.String(), "\n"))
}

// tabs is the narrow-terminal page switcher: the current page between arrows.
func (m ScoreboardModel) tabs() string {
	return fmt.Sprintf("< %s  (%d/%d) >", m.pageTitle(m.page), m.page+1, m.pages())
}

func (m ScoreboardModel) boardContent() string {
	empty := m.page == 0 && len(m.overview) == 0 || m.page > 0 && len(m.scores) == 0
	if !empty {
		return m.table.View()
	}
	msg := "No scores recorded yet.\nPlay a game to set a high score!"
	if m.store == nil {
		msg = "No database available."
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4).
		Render(msg)
}

// footer summarizes the current game's history.
func (m ScoreboardModel) footer() string {
	if m.page == 0 || m.stats == nil || m.stats.GamesCount == 0 {
		return ""
	}
	format := scoreFormatFor(m.games[m.page-1].ID, m.settings)
	return fmt.Sprintf("Played %d  |  Best %s  |  Average %.1f",
		m.stats.GamesCount, format.render(m.stats.HighScore), m.stats.AvgScore)
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, settings config.Settings, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(store, settings, width, height), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := finalModel.(ScoreboardModel)
	return ok && m.IsGoingBack(), nil
}
