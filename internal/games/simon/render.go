package simon

import (
	"fmt"
	"strings"

	"github.com/tabletop/arcade/internal/core"
)

var palette = map[string][2]core.Color{
	"green":  {core.ColorGreen, core.ColorBrightGreen},
	"red":    {core.ColorRed, core.ColorBrightRed},
	"yellow": {core.ColorYellow, core.ColorBrightYellow},
	"blue":   {core.ColorBlue, core.ColorBrightBlue},
}

var fallbackPalette = [][2]core.Color{
	{core.ColorGray, core.ColorWhite},
	{core.ColorBrown, core.ColorOrange},
	{core.ColorMagenta, core.ColorBrightWhite},
	{core.ColorCyan, core.ColorBeige},
}

// colors returns the dim and lit background of a symbol.
func (g *Game) colors(sym int) (dim, lit core.Color) {
	if c, ok := palette[strings.ToLower(g.cfg.Symbols[sym])]; ok {
		return c[0], c[1]
	}
	c := fallbackPalette[sym%len(fallbackPalette)]
	return c[0], c[1]
}

const hudHeight = 3

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	w, h := dst.Width(), dst.Height()

	hud := fmt.Sprintf(" Simon Says  Level: %d  Best: %d", g.round.Level(), max(g.bestSeen, g.round.Level()))
	dst.DrawText(0, 0, hud)
	dst.DrawTextCenteredColor(1, g.message, core.ColorBrightWhite)
	dst.DrawHLine(0, 2, w, '─')

	g.layout(w, h)
	if len(g.pads) == 0 {
		dst.DrawTextCentered(h/2, "Window too small")
		return
	}

	active := g.lit
	if active < 0 && g.pressSym >= 0 && g.now().Before(g.pressEnd) {
		active = g.pressSym
	}

	for i, pad := range g.pads {
		dim, lit := g.colors(i)
		bg := dim
		if i == active {
			bg = lit
		}
		dst.FillRect(pad, core.Cell{Rune: ' ', Bg: bg})

		label := fmt.Sprintf(" %s %s ", g.keyLabel(i), strings.ToUpper(g.cfg.Symbols[i]))
		lx := pad.X + (pad.W-len([]rune(label)))/2
		ly := pad.Y + pad.H/2
		for j, r := range label {
			dst.SetCell(lx+j, ly, core.Cell{Rune: r, Color: core.ColorBlack, Bg: bg})
		}
	}

	footer := " Click a color or press its key   Esc: menu   Q: quit"
	dst.DrawTextColor(0, h-1, footer, core.ColorGray)
}

// layout splits the play area into a grid of click targets, two columns wide.
func (g *Game) layout(w, h int) {
	n := len(g.cfg.Symbols)
	cols := 2
	rows := (n + cols - 1) / cols
	areaH := h - hudHeight - 1
	if w < 20 || areaH < 2*rows {
		g.pads = nil
		return
	}

	cellW := w / cols
	cellH := areaH / rows
	g.pads = make([]core.Rect, n)
	for i := range n {
		col, row := i%cols, i/cols
		g.pads[i] = core.NewRect(col*cellW+1, hudHeight+row*cellH, cellW-2, cellH-1)
	}
}

func (g *Game) keyLabel(sym int) string {
	var keys []string
	for r, s := range g.keys {
		if s == sym {
			keys = append(keys, string(r))
		}
	}
	// digits sort before letters
	if len(keys) == 2 && keys[0] > keys[1] {
		keys[0], keys[1] = keys[1], keys[0]
	}
	return "[" + strings.Join(keys, "/") + "]"
}
