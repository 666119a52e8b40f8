package circlepop

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/vovakirdan/circlepop/internal/config"
	"github.com/vovakirdan/circlepop/internal/core"
	"github.com/vovakirdan/circlepop/internal/games/circlepop/board"
	"github.com/vovakirdan/circlepop/internal/registry"
)

// testRows is an 8x10 board in which the only poppable group is the three
// A pieces in the bottom-left corner. No other two neighbours match.
var testRows = []string{
	"BCDBCDBC",
	"DBCDBCDB",
	"CDBCDBCD",
	"BCDBCDBC",
	"DBCDBCDB",
	"CDBCDBCD",
	"BCDBCDBC",
	"DBCDBCDB",
	"CDBCDBCD",
	"AAABCDBC",
}

func newTestGame(t *testing.T, id string, seed int64) *Game {
	t.Helper()
	g := New(id)
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: seed})
	return g
}

// loadRows swaps the game's board for a fixed layout. Refills come from refill.
func loadRows(t *testing.T, g *Game, refill board.ColorGenerator, rows ...string) {
	t.Helper()
	grid, err := board.ParseRows(g.variant.Colors, rows...)
	if err != nil {
		t.Fatalf("ParseRows() failed: %v", err)
	}
	sc := board.SessionConfig{
		Width:        grid.Width(),
		Height:       grid.Height(),
		NumColors:    g.variant.Colors,
		MinGroupSize: g.rules.MinGroup,
	}
	s, err := board.NewSession(sc, board.NewSequenceGenerator(grid.Cells()...), refill)
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}
	g.session = s
	g.gameOver = false
	g.endReason = ""
}

func clickFrame(g *Game, x, y int) core.InputFrame {
	sx, sy := g.layout().CellOrigin(x, y)
	in := core.NewInputFrame()
	in.Click(sx+1, sy)
	return in
}

func settle(t *testing.T, g *Game) {
	t.Helper()
	for i := 0; i < 600 && g.State().Busy; i++ {
		g.Step(core.NewInputFrame())
	}
	if g.State().Busy {
		t.Fatal("animation never finished")
	}
}

func TestVariantsRegistered(t *testing.T) {
	tests := []struct {
		id     string
		colors int
		moves  int
	}{
		{"circlepop3", 3, 25},
		{"circlepop4", 4, 30},
		{"circlepop5", 5, 35},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			if !registry.Exists(tt.id) {
				t.Fatalf("%s is not registered", tt.id)
			}
			rg, err := registry.Create(tt.id)
			if err != nil {
				t.Fatalf("Create() failed: %v", err)
			}
			g := rg.(*Game)
			g.Reset(core.DefaultConfig())

			if g.variant.Colors != tt.colors {
				t.Errorf("colors = %d, want %d", g.variant.Colors, tt.colors)
			}
			if g.MovesLeft() != tt.moves {
				t.Errorf("moves = %d, want %d", g.MovesLeft(), tt.moves)
			}
			grid := g.Grid()
			if grid.Width() != 8 || grid.Height() != 10 {
				t.Errorf("board is %dx%d, want 8x10", grid.Width(), grid.Height())
			}
		})
	}
}

func TestUseConfigRegistersNewVariants(t *testing.T) {
	prev := ActiveConfig()
	t.Cleanup(func() { _ = UseConfig(prev) })

	cfg := config.DefaultCirclePopConfig()
	cfg.Variants = append(cfg.Variants, config.VariantConfig{
		ID: "circlepop_test6", Title: "CirclePop: 6 Colors", Colors: 6,
		StartingMoves: 40, ExtraMoveAt: 8, BonusScale: 2.5,
	})
	if err := UseConfig(cfg); err != nil {
		t.Fatalf("UseConfig() failed: %v", err)
	}

	g, err := registry.Create("circlepop_test6")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.Title() != "CirclePop: 6 Colors" {
		t.Errorf("Title() = %q", g.Title())
	}

	bad := config.DefaultCirclePopConfig()
	bad.Board.MinGroup = 0
	if err := UseConfig(bad); err == nil {
		t.Error("UseConfig() should reject an invalid config")
	}
}

func TestResetDeterministic(t *testing.T) {
	a := newTestGame(t, "circlepop4", 42)
	b := newTestGame(t, "circlepop4", 42)
	c := newTestGame(t, "circlepop4", 43)

	if !a.Grid().Equal(b.Grid()) {
		t.Error("same seed should build the same board")
	}
	if a.Grid().Equal(c.Grid()) {
		t.Error("different seeds should build different boards")
	}
}

func TestSeededGameReplays(t *testing.T) {
	play := func() Snapshot {
		g := newTestGame(t, "circlepop5", 7)
		for i := 0; i < 10 && !g.State().GameOver; i++ {
			r, ok := board.LargestRegion(g.Grid())
			if !ok {
				break
			}
			o := r.Origin()
			g.Play(o.X, o.Y)
			g.SkipAnimation()
		}
		return g.Snapshot()
	}

	first, second := play(), play()
	if !reflect.DeepEqual(first, second) {
		t.Errorf("replay diverged:\n%+v\n%+v", first, second)
	}
}

func TestClickProjection(t *testing.T) {
	g := newTestGame(t, "circlepop4", 1)
	l := g.layout()

	for _, p := range []board.Pos{board.P(0, 0), board.P(7, 0), board.P(3, 5), board.P(7, 9)} {
		sx, sy := l.CellOrigin(p.X, p.Y)
		for dx := 0; dx < cellW; dx++ {
			x, y := l.CellAt(sx+dx, sy)
			if x != p.X || y != p.Y {
				t.Errorf("CellAt(%d, %d) = (%d, %d), want %v", sx+dx, sy, x, y, p)
			}
		}
	}

	// Row 0 is drawn at the bottom of the frame.
	_, bottom := l.CellOrigin(0, 0)
	_, top := l.CellOrigin(0, 9)
	if bottom <= top {
		t.Errorf("row 0 drawn at %d, row 9 at %d", bottom, top)
	}

	// The frame itself is off the board.
	if x, _ := l.CellAt(l.box.X, bottom); x >= 0 {
		t.Errorf("left border projected to column %d", x)
	}
	if _, y := l.CellAt(l.box.X+1, l.box.Bottom()-1); y >= 0 {
		t.Errorf("bottom border projected to row %d", y)
	}
}

func TestClickPopsGroup(t *testing.T) {
	g := newTestGame(t, "circlepop4", 1)
	loadRows(t, g, board.NewSequenceGenerator(0), testRows...)

	var events []MoveEvent
	g.OnMove(func(ev MoveEvent) { events = append(events, ev) })

	g.Step(clickFrame(g, 1, 0))

	if len(events) != 1 || !events[0].Accepted() {
		t.Fatalf("events = %+v, want one accepted move", events)
	}
	ev := events[0]
	if ev.Popped != 3 || ev.Gained != 4 {
		t.Errorf("popped %d for %d points, want 3 for 4", ev.Popped, ev.Gained)
	}
	if g.State().Score != 4 {
		t.Errorf("score = %d, want 4", g.State().Score)
	}
	if g.MovesLeft() != 29 {
		t.Errorf("moves = %d, want 29", g.MovesLeft())
	}
	if !g.State().Busy {
		t.Error("game should be animating after a pop")
	}
	if g.cursor != board.P(1, 0) {
		t.Errorf("cursor = %v, want (1,0)", g.cursor)
	}

	rows := g.Grid().Rows()
	if rows[0][:3] != "AAA" {
		t.Errorf("top row = %q, want refilled AAA", rows[0])
	}
	if rows[9] != "CDBBCDBC" {
		t.Errorf("bottom row = %q", rows[9])
	}
}

func TestClickOutsideBoardIsNoop(t *testing.T) {
	g := newTestGame(t, "circlepop4", 1)
	loadRows(t, g, board.NewSequenceGenerator(0), testRows...)
	before := g.Grid()

	var got MoveEvent
	g.OnMove(func(ev MoveEvent) { got = ev })

	in := core.NewInputFrame()
	in.Click(0, 0)
	g.Step(in)

	if !errors.Is(got.Err, board.ErrOutOfBounds) {
		t.Errorf("err = %v, want ErrOutOfBounds", got.Err)
	}
	if !g.Grid().Equal(before) {
		t.Error("board changed after a click outside it")
	}
	if g.MovesLeft() != 30 || g.State().Score != 0 {
		t.Error("rejected click should not cost a move or score")
	}
	if g.lastReject != "out_of_bounds" {
		t.Errorf("HUD reason = %q", g.lastReject)
	}
}

func TestSmallGroupRejected(t *testing.T) {
	g := newTestGame(t, "circlepop4", 1)
	loadRows(t, g, board.NewSequenceGenerator(0), testRows...)
	before := g.Grid()

	ev := g.Play(5, 5)
	if !errors.Is(ev.Err, board.ErrInsufficientMatch) {
		t.Fatalf("err = %v, want ErrInsufficientMatch", ev.Err)
	}
	if ev.Reason() != "insufficient_match" {
		t.Errorf("Reason() = %q", ev.Reason())
	}
	if !g.Grid().Equal(before) || g.MovesLeft() != 30 {
		t.Error("rejected move should leave the game untouched")
	}
}

func TestSelectionDroppedWhileAnimating(t *testing.T) {
	g := newTestGame(t, "circlepop4", 1)
	loadRows(t, g, board.NewSequenceGenerator(0), testRows...)

	if ev := g.Play(0, 0); !ev.Accepted() {
		t.Fatalf("first move rejected: %v", ev.Err)
	}
	afterFirst := g.Grid()

	// The refilled AAA on the top row is a legal group, but pieces are still falling.
	ev := g.Play(0, 9)
	if !errors.Is(ev.Err, board.ErrBoardBusy) {
		t.Fatalf("err = %v, want ErrBoardBusy", ev.Err)
	}
	if g.Dropped() != 1 {
		t.Errorf("Dropped() = %d, want 1", g.Dropped())
	}
	if !g.Grid().Equal(afterFirst) {
		t.Error("dropped selection changed the board")
	}

	settle(t, g)

	if ev := g.Play(0, 9); !ev.Accepted() {
		t.Errorf("move after the animation rejected: %v", ev.Err)
	}
}

func TestGameOverOutOfMoves(t *testing.T) {
	g := newTestGame(t, "circlepop4", 1)
	loadRows(t, g, board.NewSequenceGenerator(0), testRows...)
	g.movesLeft = 1

	g.Play(0, 0)

	if !g.State().GameOver {
		t.Fatal("game should be over")
	}
	if s := g.Summary(); s.EndReason != EndOutOfMoves || s.MovesUsed != 1 || s.TotalCleared != 3 {
		t.Errorf("Summary() = %+v", s)
	}

	before := g.Grid()
	if ev := g.Play(0, 9); ev.Accepted() {
		t.Error("moves should be refused after game over")
	}
	settle(t, g)
	if !g.Grid().Equal(before) {
		t.Error("board changed after game over")
	}
}

func TestGameOverNoMoves(t *testing.T) {
	g := newTestGame(t, "circlepop4", 1)
	// Refill C, A, C leaves only pairs on the board.
	loadRows(t, g, board.NewSequenceGenerator(2, 0, 2), testRows...)

	g.Play(2, 0)

	if !g.State().GameOver {
		t.Fatal("game should be over with no groups left")
	}
	if g.Summary().EndReason != EndNoMoves {
		t.Errorf("EndReason = %q, want %q", g.Summary().EndReason, EndNoMoves)
	}
}

func TestBonusMoveRefund(t *testing.T) {
	g := newTestGame(t, "circlepop3", 1)
	rows := make([]string, 10)
	for i := range rows {
		rows[i] = "AAAAAAAA"
	}
	loadRows(t, g, board.NewSequenceGenerator(0, 1, 2), rows...)

	ev := g.Play(4, 4)
	if ev.Popped != 80 {
		t.Fatalf("popped %d, want the whole board", ev.Popped)
	}
	if g.MovesLeft() != 26 {
		t.Errorf("moves = %d, want 26 after a bonus pop", g.MovesLeft())
	}
	if g.Summary().LargestGroup != 80 {
		t.Errorf("LargestGroup = %d", g.Summary().LargestGroup)
	}
}

func TestCursorAndHint(t *testing.T) {
	g := newTestGame(t, "circlepop4", 1)
	loadRows(t, g, board.NewSequenceGenerator(0), testRows...)
	g.cursor = board.P(0, 0)

	in := core.NewInputFrame()
	in.Set(core.ActionLeft)
	g.Step(in)
	if g.cursor != board.P(0, 0) {
		t.Errorf("cursor left the board: %v", g.cursor)
	}

	in = core.NewInputFrame()
	in.Set(core.ActionUp)
	g.Step(in)
	if g.cursor != board.P(0, 1) {
		t.Errorf("cursor = %v, want (0,1)", g.cursor)
	}

	in = core.NewInputFrame()
	in.Set(core.ActionHint)
	g.Step(in)
	if !g.showHint || g.hint.Len() != 3 {
		t.Fatalf("hint = %d pieces, shown %v", g.hint.Len(), g.showHint)
	}

	in = core.NewInputFrame()
	in.Set(core.ActionSelect)
	g.Step(in)
	if g.MovesLeft() != 29 {
		t.Error("select on the hinted group should pop it")
	}
}

func TestPauseBlocksInput(t *testing.T) {
	g := newTestGame(t, "circlepop4", 1)
	loadRows(t, g, board.NewSequenceGenerator(0), testRows...)

	in := core.NewInputFrame()
	in.Set(core.ActionPause)
	g.Step(in)
	if !g.State().Paused {
		t.Fatal("game should be paused")
	}

	g.Step(clickFrame(g, 0, 0))
	if g.MovesLeft() != 30 {
		t.Error("paused game accepted a move")
	}
	if g.Snapshot().State != StatePaused {
		t.Errorf("snapshot state = %q", g.Snapshot().State)
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(t, "circlepop4", 1)
	loadRows(t, g, board.NewSequenceGenerator(0), testRows...)

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	out := screen.String()
	for _, want := range []string{"CirclePop: 4 Colors", "Score: 0", "Moves: 30", "●"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q", want)
		}
	}

	sx, sy := g.layout().CellOrigin(0, 0)
	cell := screen.GetCell(sx+1, sy)
	if cell.Rune != pieceRune || cell.Color != core.PieceColor(0) {
		t.Errorf("piece at (0,0) rendered as %q color %d", cell.Rune, cell.Color)
	}
}

func TestRenderTooSmall(t *testing.T) {
	g := New("circlepop4")
	g.Reset(core.RuntimeConfig{ScreenW: 20, ScreenH: 10, TickRate: 60, Seed: 1})

	if g.Snapshot().State != StatePausedSmall {
		t.Fatalf("state = %q, want %q", g.Snapshot().State, StatePausedSmall)
	}

	screen := core.NewScreen(20, 10)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Error("expected a too-small message")
	}
}

func TestResizeKeepsGame(t *testing.T) {
	g := newTestGame(t, "circlepop4", 1)
	loadRows(t, g, board.NewSequenceGenerator(0), testRows...)
	g.Play(0, 0)
	settle(t, g)
	before := g.Snapshot()

	g.Resize(20, 10)
	if g.Snapshot().State != StatePausedSmall {
		t.Error("tiny window should pause the game")
	}

	g.Resize(100, 30)
	after := g.Snapshot()
	if after.Score != before.Score || !reflect.DeepEqual(after.Rows, before.Rows) {
		t.Error("resize should not restart the game")
	}
	if after.State != StatePlaying {
		t.Errorf("state = %q, want %q", after.State, StatePlaying)
	}
}
