package drums

import (
	"fmt"
	"strings"

	"github.com/tabletop/arcade/internal/core"
)

var padColors = []core.Color{
	core.ColorBlue, core.ColorCyan, core.ColorGreen, core.ColorMagenta,
	core.ColorRed, core.ColorYellow, core.ColorOrange,
}

const hudHeight = 3

// Render draws the pads and the recording status.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	w, h := dst.Width(), dst.Height()

	status := "       "
	if g.recorder.Recording() {
		status = fmt.Sprintf("● REC %d", g.recorder.Len())
	}
	dst.DrawText(0, 0, " Drum Kit  Beats saved: "+fmt.Sprint(g.saved))
	dst.DrawTextColor(w-len([]rune(status))-1, 0, status, core.ColorBrightRed)

	msgColor := core.ColorBrightWhite
	if g.dismiss {
		msgColor = core.ColorBrightRed
	}
	dst.DrawTextCenteredColor(1, g.message, msgColor)
	dst.DrawHLine(0, 2, w, '─')

	g.layout(w, h)
	if len(g.pads) == 0 {
		dst.DrawTextCentered(h/2, "Window too small")
		return
	}

	lit := ""
	if g.now().Before(g.flashEnd) {
		lit = g.flashPad
	}
	for i, rect := range g.pads {
		pad := g.kit.pads[i]
		bg := padColors[i%len(padColors)]
		fg := core.ColorBlack
		if pad.ID == lit {
			bg = core.ColorBrightWhite
		}
		dst.FillRect(rect, core.Cell{Rune: ' ', Bg: bg})
		lines := []string{"[" + strings.ToUpper(pad.ID) + "]", pad.Label}
		if pad.Synthetic {
			lines = append(lines, "(synth)")
		}
		top := rect.Y + (rect.H-len(lines))/2
		for j, line := range lines {
			if top+j >= rect.Bottom() {
				break
			}
			x := rect.X + (rect.W-len([]rune(line)))/2
			for k, r := range line {
				if x+k < rect.Right() {
					dst.SetCell(x+k, top+j, core.Cell{Rune: r, Color: fg, Bg: bg})
				}
			}
		}
	}

	if g.current != "" {
		if pad, ok := g.kit.Pad(g.current); ok {
			dst.DrawText(1, h-2, fmt.Sprintf("Current key: %s (%s)", strings.ToUpper(pad.ID), pad.Label))
		}
	}
	footer := " Pads: " + keyList(g.kit) + "   Enter: record/stop   Esc: menu   Q: quit"
	dst.DrawTextColor(0, h-1, footer, core.ColorGray)
}

func keyList(k *Kit) string {
	var sb strings.Builder
	for _, p := range k.pads {
		sb.WriteRune(p.Key)
	}
	return sb.String()
}

// layout places the pads in two rows: the first half on top, the rest below.
func (g *Game) layout(w, h int) {
	if g.kit == nil {
		return
	}
	n := len(g.kit.pads)
	top := (n + 1) / 2
	areaH := h - hudHeight - 2
	if n == 0 || w < 4*top || areaH < 4 {
		g.pads = nil
		return
	}

	rowH := areaH / 2
	g.pads = make([]core.Rect, n)
	for i := range n {
		row, col, cols := 0, i, top
		if i >= top {
			row, col, cols = 1, i-top, n-top
		}
		cellW := w / cols
		g.pads[i] = core.NewRect(col*cellW+1, hudHeight+row*rowH, cellW-2, rowH-1)
	}
}
