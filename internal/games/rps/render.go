package rps

import (
	"fmt"

	"github.com/tabletop/arcade/internal/core"
)

var hands = map[Choice][]string{
	Rock: {
		"    _____   ",
		"---'   ____)",
		"      (_____)",
		"      (_____)",
		"      (____)",
		"---.__(___) ",
	},
	Paper: {
		"    _____     ",
		"---'   ____)____",
		"          ______)",
		"          _______)",
		"         _______)",
		"---.__________) ",
	},
	Scissors: {
		"    _____     ",
		"---'   ____)____",
		"          ______)",
		"       __________)",
		"      (____)",
		"---.__(___) ",
	},
}

var buttonColors = []core.Color{core.ColorRed, core.ColorBlue, core.ColorGreen}

// Render draws the tally, the last round and the choice buttons.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	w, h := dst.Width(), dst.Height()

	t := g.tally
	hud := fmt.Sprintf(" Rock Paper Scissors  Round %d/%d  You %d - %d CPU  Draws %d",
		min(t.Played()+1, g.cfg.Rounds), g.cfg.Rounds, t.Wins, t.Losses, t.Draws)
	dst.DrawText(0, 0, hud)
	dst.DrawHLine(0, 1, w, '─')

	g.layout(w, h)
	if len(g.buttons) == 0 {
		dst.DrawTextCentered(h/2, "Window too small")
		return
	}

	if g.last != nil {
		g.drawRound(dst, *g.last)
	} else {
		dst.DrawTextCenteredColor(4, "Make your choice!", core.ColorBrightWhite)
	}

	if g.over {
		dst.DrawTextCenteredColor(h-6, g.verdict(), core.ColorBrightYellow)
		dst.DrawTextCenteredColor(h-5, "R: play again   Esc: menu", core.ColorGray)
	}

	for i, b := range g.buttons {
		bg := buttonColors[i]
		if g.over || g.reveal > 0 {
			bg = core.ColorGray
		}
		dst.FillRect(b, core.Cell{Rune: ' ', Bg: bg})
		label := fmt.Sprintf("%d %s", i+1, Choices[i])
		x := b.X + (b.W-len(label))/2
		for k, r := range label {
			dst.SetCell(x+k, b.Y+b.H/2, core.Cell{Rune: r, Color: core.ColorBrightWhite, Bg: bg})
		}
	}

	dst.DrawTextColor(0, h-1, " R/P/S or 1/2/3 or click   Esc: menu   Q: quit", core.ColorGray)
}

func (g *Game) drawRound(dst *core.Screen, r Round) {
	w := dst.Width()
	dst.DrawTextColor(2, 3, "You: "+r.Player.String(), core.ColorCyan)
	right := "Computer: " + r.Computer.String()
	dst.DrawTextColor(w-len(right)-2, 3, right, core.ColorBrightWhite)

	for i, line := range hands[r.Player] {
		dst.DrawText(2, 5+i, line)
	}
	for i, line := range hands[r.Computer] {
		dst.DrawText(w-20, 5+i, mirror(line))
	}

	color := core.ColorYellow
	switch r.Result {
	case PlayerWins:
		color = core.ColorBrightGreen
	case ComputerWins:
		color = core.ColorBrightRed
	}
	dst.DrawTextCenteredColor(12, r.Result.String(), color)
}

// mirror flips an ascii hand so it faces left.
func mirror(s string) string {
	swap := map[rune]rune{'(': ')', ')': '(', '/': '\\', '\\': '/'}
	r := []rune(s)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	for i, c := range r {
		if m, ok := swap[c]; ok {
			r[i] = m
		}
	}
	return string(r)
}

// layout places three buttons along the bottom of the screen.
func (g *Game) layout(w, h int) {
	if w < 36 || h < 20 {
		g.buttons = nil
		return
	}
	bw := w / 3
	g.buttons = make([]core.Rect, len(Choices))
	for i := range Choices {
		g.buttons[i] = core.NewRect(i*bw+1, h-4, bw-2, 3)
	}
}
