package circlepop

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/circlepop/internal/core"
	"github.com/vovakirdan/circlepop/internal/games/circlepop/board"
)

const (
	cellW    = 3 // screen columns per grid cell
	cellH    = 1 // screen rows per grid cell
	boardTop = 4 // first screen row of the board frame

	pieceRune = '●'
	hintRune  = '◎'
	burstRune = '✕'
)

// layout maps between grid cells and screen cells.
// Grid row 0 is drawn at the bottom of the frame.
type layout struct {
	box    core.Rect
	width  int
	height int
}

func (g *Game) layout() layout {
	boxW := g.boardCfg.Width*cellW + 2
	boxH := g.boardCfg.Height*cellH + 2
	return layout{
		box:    core.NewRect((g.screenW-boxW)/2, boardTop, boxW, boxH),
		width:  g.boardCfg.Width,
		height: g.boardCfg.Height,
	}
}

// CellAt projects a screen cell onto grid coordinates. Points off the board
// project to coordinates outside [0, width) x [0, height).
func (l layout) CellAt(sx, sy int) (x, y int) {
	x = core.FloorDiv(sx-(l.box.X+1), cellW)
	row := core.FloorDiv(sy-(l.box.Y+1), cellH)
	return x, l.height - 1 - row
}

// CellOrigin returns the left screen column and the screen row of a grid cell.
func (l layout) CellOrigin(x, y int) (sx, sy int) {
	return l.box.X + 1 + x*cellW, l.box.Y + 1 + (l.height-1-y)*cellH
}

func minScreenSize(width, height int) (w, h int) {
	return width*cellW + 4, boardTop + height*cellH + 4
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	l := g.layout()
	g.renderHUD(dst, l)
	dst.DrawBoxWithColor(l.box, core.ColorGray)
	g.renderPieces(dst, l)
	g.renderCursor(dst, l)

	controls := g.Controls()
	dst.DrawTextWithColor((g.screenW-len([]rune(controls)))/2, l.box.Bottom()+1, controls, core.ColorGray)

	g.renderOverlays(dst, l)
}

func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	w, h := minScreenSize(g.boardCfg.Width, g.boardCfg.Height)
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need at least %dx%d", w, h))
}

func (g *Game) renderHUD(dst *core.Screen, l layout) {
	left, right := l.box.X, l.box.Right()

	title := g.Title()
	dst.DrawText(left+(l.box.W-len([]rune(title)))/2, 0, title)

	dst.DrawText(left, 1, fmt.Sprintf("Score: %d", g.score))
	moves := fmt.Sprintf("Moves: %d", g.movesLeft)
	movesColor := core.ColorDefault
	if g.movesLeft <= 3 {
		movesColor = core.ColorBrightRed
	}
	dst.DrawTextWithColor(right-len(moves), 1, moves, movesColor)

	switch {
	case g.rejectTicks > 0 && g.lastReject != "":
		msg := "✗ " + strings.ReplaceAll(g.lastReject, "_", " ")
		dst.DrawTextWithColor(left, 2, msg, core.ColorYellow)
	case g.showHint:
		dst.DrawTextWithColor(left, 2, fmt.Sprintf("Hint: %d pieces", g.hint.Len()), core.ColorCyan)
	default:
		info := fmt.Sprintf("Pop %d+  Bonus move at %d+", g.rules.MinGroup, g.rules.ExtraMoveAt)
		dst.DrawTextWithColor(left, 2, info, core.ColorGray)
	}
}

func (g *Game) renderPieces(dst *core.Screen, l layout) {
	top := l.box.Y + 1

	if g.timeline.Waiting() {
		for _, p := range g.timeline.Removed() {
			sx, sy := l.CellOrigin(p.X, p.Y)
			dst.SetWithColor(sx+1, sy, burstRune, core.ColorGray)
		}
	}

	for y := 0; y < l.height; y++ {
		for x := 0; x < l.width; x++ {
			c, err := g.session.ColorAt(x, y)
			if err != nil {
				continue
			}
			p := board.P(x, y)
			sx, sy := l.CellOrigin(x, y)
			sy -= int(g.timeline.Offset(p)*cellH + 0.5)
			if sy < top {
				continue
			}

			r := pieceRune
			if g.showHint && g.hint.Contains(p) {
				r = hintRune
			}
			dst.SetWithColor(sx+1, sy, r, core.PieceColor(c))
		}
	}
}

func (g *Game) renderCursor(dst *core.Screen, l layout) {
	if g.gameOver {
		return
	}
	sx, sy := l.CellOrigin(g.cursor.X, g.cursor.Y)
	dst.SetWithColor(sx, sy, '[', core.ColorBrightWhite)
	dst.SetWithColor(sx+2, sy, ']', core.ColorBrightWhite)
}

func (g *Game) renderOverlays(dst *core.Screen, l layout) {
	cx, cy := l.box.Center()

	if g.paused {
		drawOverlay(dst, cx, cy, "PAUSED", "Press P to resume")
		return
	}

	if g.gameOver {
		reason := "Out of moves"
		if g.endReason == EndNoMoves {
			reason = "No groups left"
		}
		drawOverlay(dst, cx, cy, "GAME OVER", reason, fmt.Sprintf("Score: %d", g.score), "Press R to restart")
	}
}

func drawOverlay(dst *core.Screen, cx, cy int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len([]rune(line)))
	}

	box := core.NewRect(cx-(maxLen+4)/2, cy-(len(lines)+2)/2, maxLen+4, len(lines)+2)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box)

	for i, line := range lines {
		dst.DrawText(cx-len([]rune(line))/2, box.Y+1+i, line)
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/WASD/HJKL: Move | Space/Click: Pop | X: Hint | P: Pause | Q: Quit"
}
