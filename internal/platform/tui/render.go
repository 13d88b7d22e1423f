package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tabletop/arcade/internal/core"
)

// palette maps core colors to ANSI 256 codes.
var palette = map[core.Color]string{
	core.ColorRed:          "1",
	core.ColorGreen:        "2",
	core.ColorYellow:       "3",
	core.ColorBlue:         "4",
	core.ColorMagenta:      "5",
	core.ColorCyan:         "6",
	core.ColorWhite:        "7",
	core.ColorBrightRed:    "9",
	core.ColorBrightGreen:  "10",
	core.ColorBrightYellow: "11",
	core.ColorBrightBlue:   "12",
	core.ColorBrightWhite:  "15",
	core.ColorOrange:       "208",
	core.ColorGray:         "245",
	core.ColorBrown:        "94",
	core.ColorBeige:        "180",
	core.ColorBlack:        "16",
}

type colorPair struct {
	fg, bg core.Color
}

// ScreenRenderer turns Screen buffers into styled strings. Styles are bound
// to a lipgloss renderer so that SSH sessions get their own color profile.
type ScreenRenderer struct {
	renderer *lipgloss.Renderer
	styles   map[colorPair]lipgloss.Style
}

// NewScreenRenderer creates a renderer; nil selects lipgloss' default
// (the local terminal).
func NewScreenRenderer(r *lipgloss.Renderer) *ScreenRenderer {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return &ScreenRenderer{
		renderer: r,
		styles:   make(map[colorPair]lipgloss.Style),
	}
}

func (sr *ScreenRenderer) style(p colorPair) lipgloss.Style {
	if s, ok := sr.styles[p]; ok {
		return s
	}
	s := sr.renderer.NewStyle()
	if code, ok := palette[p.fg]; ok {
		s = s.Foreground(lipgloss.Color(code))
	}
	if code, ok := palette[p.bg]; ok {
		s = s.Background(lipgloss.Color(code))
	}
	sr.styles[p] = s
	return s
}

// Render converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same colors to minimize ANSI escape sequences.
func (sr *ScreenRenderer) Render(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			start := s.GetCell(x, y)
			pair := colorPair{start.Color, start.Bg}

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != pair.fg || cell.Bg != pair.bg {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			if pair == (colorPair{}) {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(sr.style(pair).Render(run.String()))
		}
	}
	return sb.String()
}

// RenderScreen renders with the default renderer.
func RenderScreen(s *core.Screen) string {
	return NewScreenRenderer(nil).Render(s)
}
