package chess

import (
	"fmt"
	"strings"

	nchess "github.com/corentings/chess/v2"

	"github.com/tabletop/arcade/internal/config"
	"github.com/tabletop/arcade/internal/core"
)

var glyphs = map[nchess.PieceType]rune{
	nchess.King:   '♚',
	nchess.Queen:  '♛',
	nchess.Rook:   '♜',
	nchess.Bishop: '♝',
	nchess.Knight: '♞',
	nchess.Pawn:   '♟',
}

const panelWidth = 28

// boardView is the on-screen board geometry. White's first rank is drawn at
// the bottom.
type boardView struct {
	x, y   int // top-left of a8
	sw, sh int // square size in cells
}

func (v boardView) ok() bool {
	return v.sw > 0 && v.sh > 0
}

// layoutBoard fits the board into a w x h screen, shrinking squares from the
// configured size down to 2x1. A zero view means the window is too small.
func layoutBoard(w, h int, cfg config.ChessBoard) boardView {
	sizes := [][2]int{{cfg.SquareWidth, cfg.SquareHeight}, {4, 2}, {2, 1}}
	for _, s := range sizes {
		sw, sh := s[0], s[1]
		if sw < 2 || sh < 1 {
			continue
		}
		bw, bh := 8*sw+2, 8*sh+2
		if bw <= w && bh+1 <= h {
			x := 2
			if bw+panelWidth+2 > w {
				x = (w - bw) / 2
			}
			return boardView{x: x + 1, y: 2, sw: sw, sh: sh}
		}
	}
	return boardView{}
}

// squareOrigin returns the top-left cell of sq.
func (v boardView) squareOrigin(sq nchess.Square) (int, int) {
	file := int(sq.File())
	row := 7 - int(sq.Rank())
	return v.x + file*v.sw, v.y + row*v.sh
}

// squareAt maps a screen cell to the square under it.
func (v boardView) squareAt(p core.Point) (nchess.Square, bool) {
	if !v.ok() {
		return 0, false
	}
	dx, dy := p.X-v.x, p.Y-v.y
	if dx < 0 || dy < 0 || dx >= 8*v.sw || dy >= 8*v.sh {
		return 0, false
	}
	file := dx / v.sw
	rank := 7 - dy/v.sh
	return nchess.NewSquare(nchess.File(file), nchess.Rank(rank)), true
}

// Render draws the board and the side panel.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	w, h := dst.Width(), dst.Height()

	g.view = layoutBoard(w, h, g.cfg.Board)
	dst.DrawText(0, 0, " "+g.Title())
	if !g.view.ok() {
		dst.DrawTextCentered(h/2, "Window too small")
		return
	}

	g.drawBoard(dst)
	g.drawPanel(dst)

	if g.oracle.Finished() {
		g.drawBanner(dst)
	}
}

func (g *Game) drawBoard(dst *core.Screen) {
	v := g.view
	dst.DrawBoxColor(core.NewRect(v.x-1, v.y-1, 8*v.sw+2, 8*v.sh+2), core.ColorGray)

	from, to, moved := g.oracle.LastMove()
	selected, hasSel := g.selector.Selected()

	for rank := 7; rank >= 0; rank-- {
		for file := 0; file < 8; file++ {
			sq := nchess.NewSquare(nchess.File(file), nchess.Rank(rank))
			bg := core.ColorBrown
			if (file+rank)%2 == 1 {
				bg = core.ColorBeige
			}
			switch {
			case hasSel && sq == selected:
				bg = core.ColorYellow
			case sq == g.cursor && !g.engineTurn():
				bg = core.ColorCyan
			case moved && (sq == from || sq == to):
				bg = core.ColorOrange
			}

			x, y := v.squareOrigin(sq)
			dst.FillRect(core.NewRect(x, y, v.sw, v.sh), core.Cell{Rune: ' ', Bg: bg})

			p := g.oracle.PieceAt(sq)
			if p == nchess.NoPiece {
				continue
			}
			fg := core.ColorBrightWhite
			if p.Color() == nchess.Black {
				fg = core.ColorBlack
			}
			dst.SetCell(x+v.sw/2, y+(v.sh-1)/2, core.Cell{Rune: glyphs[p.Type()], Color: fg, Bg: bg})
		}
	}

	// coordinates
	for i := 0; i < 8; i++ {
		dst.SetColor(v.x+i*v.sw+v.sw/2, v.y+8*v.sh+1, rune('a'+i), core.ColorGray)
		dst.SetColor(v.x-2, v.y+(7-i)*v.sh+(v.sh-1)/2, rune('1'+i), core.ColorGray)
	}
}

func (g *Game) drawPanel(dst *core.Screen) {
	v := g.view
	px := v.x + 8*v.sw + 3
	if px+panelWidth > dst.Width() {
		// no room beside the board, keep only the status line
		dst.DrawTextColor(0, dst.Height()-1, g.message, core.ColorBrightWhite)
		return
	}

	y := v.y
	line := func(text string, c core.Color) {
		dst.DrawTextColor(px, y, text, c)
		y++
	}

	line(fmt.Sprintf("White: %s", g.match.Name(core.Player1)), core.ColorBrightWhite)
	line(fmt.Sprintf("Black: %s", g.match.Name(core.Player2)), core.ColorGray)
	y++
	if !g.oracle.Finished() {
		line(sideName(g.oracle.Turn())+" to move", core.ColorBrightYellow)
	}
	line(g.message, core.ColorDefault)
	y++

	line("Moves:", core.ColorGray)
	for _, row := range moveRows(g.oracle.History(), 6) {
		line(row, core.ColorDefault)
	}

	help := []string{"Click or arrows+Space", "Esc: menu   Q: quit"}
	if g.oracle.Finished() {
		help = []string{"R: new game", "Esc: menu   Q: quit"}
	}
	for i, s := range help {
		dst.DrawTextColor(px, v.y+8*v.sh-len(help)+1+i, s, core.ColorGray)
	}
}

func (g *Game) drawBanner(dst *core.Screen) {
	outcome, method := g.oracle.Outcome()
	var result string
	switch outcome {
	case nchess.WhiteWon:
		result = "White wins"
	case nchess.BlackWon:
		result = "Black wins"
	default:
		result = "Draw"
	}
	text := fmt.Sprintf(" %s by %s ", result, method)
	v := g.view
	y := v.y + 4*v.sh - 1
	x := v.x + (8*v.sw-len([]rune(text)))/2
	if x < 0 {
		x = 0
	}
	dst.DrawTextColor(x, y, text, core.ColorBrightYellow)
}

// moveRows numbers the move list and keeps the last n rows.
func moveRows(history []string, n int) []string {
	var rows []string
	for i := 0; i < len(history); i += 2 {
		row := fmt.Sprintf("%3d. %-6s", i/2+1, history[i])
		if i+1 < len(history) {
			row += " " + history[i+1]
		}
		rows = append(rows, strings.TrimRight(row, " "))
	}
	if len(rows) > n {
		rows = rows[len(rows)-n:]
	}
	return rows
}
