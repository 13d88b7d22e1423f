package tui

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tabletop/arcade/internal/storage"
)

const maxBeats = 200

// BeatsKeyMap defines the key bindings for the beats browser.
type BeatsKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Delete key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k BeatsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Delete, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k BeatsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Delete}, {k.Back, k.Quit}}
}

// DefaultBeatsKeyMap returns default key bindings.
func DefaultBeatsKeyMap() BeatsKeyMap {
	return BeatsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "down"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "delete"),
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

// BeatsModel lists the recorded drum beats.
type BeatsModel struct {
	store     *storage.Store
	owner     string // only this owner's beats, empty for all
	beats     []storage.Recording
	table     table.Model
	help      help.Model
	keys      BeatsKeyMap
	status    string
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewBeatsModel creates the beats browser. A non-empty owner limits the list
// to that player's beats.
func NewBeatsModel(store *storage.Store, owner string, width, height int) BeatsModel {
	m := BeatsModel{
		store:  store,
		owner:  owner,
		help:   help.New(),
		keys:   DefaultBeatsKeyMap(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

func (m *BeatsModel) createTable() table.Model {
	pathWidth := max(10, m.width-4-(22+14+9+12+14)-12)
	columns := []table.Column{
		{Title: "Name", Width: 22},
		{Title: "Pads", Width: 14},
		{Title: "Length", Width: 9},
		{Title: "Owner", Width: 12},
		{Title: "Date", Width: 14},
		{Title: "File", Width: pathWidth},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-8)),
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

// load reads the beats from the store.
func (m *BeatsModel) load() {
	m.beats = nil
	if m.store == nil {
		m.status = "No database available."
		m.updateTableRows()
		return
	}

	beats, err := m.store.Recordings(maxBeats)
	if err != nil {
		m.status = err.Error()
	}
	for _, b := range beats {
		if m.owner == "" || b.Owner == m.owner {
			m.beats = append(m.beats, b)
		}
	}
	m.updateTableRows()
}

func (m *BeatsModel) updateTableRows() {
	rows := make([]table.Row, len(m.beats))
	for i, b := range m.beats {
		owner := b.Owner
		if owner == "" {
			owner = "local"
		}
		rows[i] = table.Row{
			b.Name,
			truncate(b.Pads, 14),
			formatLength(b.DurationMS),
			owner,
			b.CreatedAt.Format("Jan 02 15:04"),
			b.Path,
		}
	}
	m.table.SetRows(rows)
}

func formatLength(ms int64) string {
	return (time.Duration(ms) * time.Millisecond).Round(100 * time.Millisecond).String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}

// Init initializes the beats model.
func (m BeatsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the beats browser.
func (m BeatsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
		case key.Matches(msg, m.keys.Delete):
			m.deleteSelected()
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

// deleteSelected drops the highlighted beat from the index and removes its file.
func (m *BeatsModel) deleteSelected() {
	i := m.table.Cursor()
	if m.store == nil || i < 0 || i >= len(m.beats) {
		return
	}
	b := m.beats[i]
	if err := m.store.DeleteRecording(b.ID); err != nil {
		m.status = err.Error()
		return
	}
	if err := os.Remove(b.Path); err != nil && !os.IsNotExist(err) {
		m.status = fmt.Sprintf("Removed %s from the list, file kept: %v", b.Name, err)
	} else {
		m.status = fmt.Sprintf("Deleted %s", b.Name)
	}
	m.load()
}

// View renders the beats browser.
func (m BeatsModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	b.WriteString(titleStyle.Render(centerText(fmt.Sprintf("RECORDED BEATS (%d)", len(m.beats)), m.width)))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	if len(m.beats) == 0 {
		empty := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(2, 4)
		b.WriteString(boxStyle.Render(empty.Render("No beats recorded yet.\nOpen the Drum Kit and press Enter to record!")))
	} else {
		b.WriteString(boxStyle.Render(m.table.View()))
	}
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render(m.help.View(m.keys)))
	return b.String()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m BeatsModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m BeatsModel) IsQuitting() bool {
	return m.quitting
}

// RunBeats runs the beats browser.
// Returns true if user wants to go back to menu, false if quitting.
func RunBeats(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(
		NewBeatsModel(store, "", width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(BeatsModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
