// Package circlepop adapts the CirclePop board to the terminal platform.
// It owns the score, the move budget, the cursor and the settle animation;
// the board package owns the grid.
package circlepop

import (
	"errors"
	"fmt"
	"sync"

	"github.com/vovakirdan/circlepop/internal/config"
	"github.com/vovakirdan/circlepop/internal/core"
	"github.com/vovakirdan/circlepop/internal/games/circlepop/board"
	"github.com/vovakirdan/circlepop/internal/registry"
)

// End reasons reported in summaries.
const (
	EndOutOfMoves = "out_of_moves"
	EndNoMoves    = "no_moves"
)

// ErrGameOver rejects moves after the game has ended.
var ErrGameOver = errors.New("circlepop: game over")

// errAnimating rejects a selection made while pieces are still settling.
var errAnimating = fmt.Errorf("%w: animation in progress", board.ErrBoardBusy)

// MoveEvent describes one attempted pop.
type MoveEvent struct {
	GameID    string
	X, Y      int
	Popped    int
	Gained    int
	MovesLeft int
	Err       error
}

// Accepted reports whether the move changed the board.
func (e MoveEvent) Accepted() bool {
	return e.Err == nil
}

// Reason returns the rejection label, or "ok".
func (e MoveEvent) Reason() string {
	if errors.Is(e.Err, ErrGameOver) {
		return "game_over"
	}
	return board.ReasonOf(e.Err)
}

var (
	activeMu sync.RWMutex
	active   = config.DefaultCirclePopConfig()
)

// UseConfig replaces the configuration new games are built from and registers
// any variants it adds. Games already running keep their settings until Reset.
func UseConfig(cfg config.CirclePopConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	activeMu.Lock()
	active = cfg
	activeMu.Unlock()

	for _, v := range cfg.Variants {
		if !registry.Exists(v.ID) {
			register(v.ID)
		}
	}
	return nil
}

// ActiveConfig returns the configuration new games are built from.
func ActiveConfig() config.CirclePopConfig {
	activeMu.RLock()
	defer activeMu.RUnlock()
	return active
}

func init() {
	for _, v := range ActiveConfig().Variants {
		register(v.ID)
	}
}

func register(id string) {
	registry.Register(id, func() registry.Game {
		return New(id)
	})
}

// Game implements one CirclePop variant.
type Game struct {
	id       string
	boardCfg config.BoardConfig
	variant  config.VariantConfig
	rules    Rules

	session  *board.Session
	timeline *Timeline
	onMove   func(MoveEvent)

	tick     uint64
	tickRate int
	seed     int64

	score        int
	movesLeft    int
	movesUsed    int
	largestGroup int
	totalCleared int
	dropped      int

	cursor      board.Pos
	hint        board.Region
	showHint    bool
	lastReject  string
	rejectTicks int

	screenW   int
	screenH   int
	gameOver  bool
	endReason string
	paused    bool
	tooSmall  bool
}

// New creates the game for a variant of the active configuration.
// An unknown id falls back to the first configured variant.
func New(id string) *Game {
	g := &Game{id: id}
	g.loadVariant()
	return g
}

func (g *Game) loadVariant() {
	cfg := ActiveConfig()
	v, ok := cfg.Variant(g.id)
	if !ok {
		v = cfg.Variants[0]
	}
	g.boardCfg = cfg.Board
	g.variant = v
	g.rules = RulesFor(cfg.Board, v)
	g.timeline = NewTimeline(cfg.Animation.Delay(), cfg.Animation.Duration())
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.variant.Title
}

// Description returns a one-line summary for listings.
func (g *Game) Description() string {
	return fmt.Sprintf("Pop groups of %d+ on an %dx%d board, %d colors, %d moves",
		g.rules.MinGroup, g.boardCfg.Width, g.boardCfg.Height, g.variant.Colors, g.variant.StartingMoves)
}

// OnMove installs a callback invoked after every attempted pop.
func (g *Game) OnMove(fn func(MoveEvent)) {
	g.onMove = fn
}

// Reset starts a new game. The board is built from cfg.Seed and refills are
// drawn from a second stream, so a seed always replays the same game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	cfg = cfg.Normalized()
	g.loadVariant()

	g.seed = cfg.Seed
	g.tickRate = cfg.TickRate
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.tick = 0

	sc := board.SessionConfig{
		Width:        g.boardCfg.Width,
		Height:       g.boardCfg.Height,
		NumColors:    g.variant.Colors,
		MinGroupSize: g.boardCfg.MinGroup,
	}
	session, err := board.NewSession(sc, board.NewRandGenerator(cfg.Seed), board.NewRandGenerator(cfg.Seed+1))
	if err != nil {
		// Configurations are validated before they become active.
		panic(fmt.Sprintf("circlepop: %v", err))
	}
	g.session = session
	g.timeline.Finish()

	g.score = 0
	g.movesLeft = g.variant.StartingMoves
	g.movesUsed = 0
	g.largestGroup = 0
	g.totalCleared = 0
	g.dropped = 0

	g.cursor = board.P(g.boardCfg.Width/2, g.boardCfg.Height/2)
	g.hint = board.Region{}
	g.showHint = false
	g.lastReject = ""
	g.rejectTicks = 0

	g.gameOver = false
	g.endReason = ""
	g.paused = false

	g.checkScreenSize()
	if !g.session.HasMove() {
		g.end(EndNoMoves)
	}
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !g.gameOver {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.timeline.Update(1 / float32(g.tickRate))
	if g.rejectTicks > 0 {
		g.rejectTicks--
	}

	// Restart is handled by the platform.
	if g.gameOver {
		return core.StepResult{State: g.State()}
	}

	g.moveCursor(in)

	if in.Has(core.ActionHint) {
		g.toggleHint()
	}

	if x, y, ok := g.selection(in); ok {
		g.Play(x, y)
	}

	return core.StepResult{State: g.State()}
}

func (g *Game) moveCursor(in core.InputFrame) {
	c := g.cursor
	switch {
	case in.Has(core.ActionUp):
		c.Y++
	case in.Has(core.ActionDown):
		c.Y--
	case in.Has(core.ActionLeft):
		c.X--
	case in.Has(core.ActionRight):
		c.X++
	}
	c.X = core.Clamp(c.X, 0, g.boardCfg.Width-1)
	c.Y = core.Clamp(c.Y, 0, g.boardCfg.Height-1)
	g.cursor = c
}

// selection returns the grid cell the player chose this frame. A click wins
// over the keyboard and is projected even when it lands outside the board.
func (g *Game) selection(in core.InputFrame) (x, y int, ok bool) {
	if p, clicked := in.Pointer(); clicked {
		x, y = g.layout().CellAt(p.X, p.Y)
		if x >= 0 && x < g.boardCfg.Width && y >= 0 && y < g.boardCfg.Height {
			g.cursor = board.P(x, y)
		}
		return x, y, true
	}
	if in.Has(core.ActionSelect) {
		return g.cursor.X, g.cursor.Y, true
	}
	return 0, 0, false
}

func (g *Game) toggleHint() {
	if g.showHint {
		g.showHint = false
		return
	}
	r, ok := g.session.Hint()
	if !ok {
		return
	}
	g.hint = r
	g.showHint = true
	g.cursor = r.Origin()
}

// Play attempts to pop the region at grid cell (x, y). While the previous
// move is still animating the selection is dropped.
func (g *Game) Play(x, y int) MoveEvent {
	ev := MoveEvent{GameID: g.id, X: x, Y: y, MovesLeft: g.movesLeft}

	switch {
	case g.gameOver:
		ev.Err = ErrGameOver
	case g.timeline.Busy():
		g.dropped++
		ev.Err = errAnimating
	default:
		res, err := g.session.AttemptMove(x, y)
		if err != nil {
			ev.Err = err
			break
		}
		g.apply(res)
		ev.Popped = res.Popped
		ev.Gained = g.rules.PopScore(res.Popped)
		ev.MovesLeft = g.movesLeft
	}

	if ev.Err != nil {
		g.lastReject = ev.Reason()
		g.rejectTicks = g.tickRate
	}
	if g.onMove != nil {
		g.onMove(ev)
	}
	return ev
}

func (g *Game) apply(res board.MoveResult) {
	g.score += g.rules.PopScore(res.Popped)
	g.movesLeft += g.rules.MoveDelta(res.Popped)
	g.movesUsed++
	g.totalCleared += res.Popped
	g.largestGroup = max(g.largestGroup, res.Popped)

	g.showHint = false
	g.lastReject = ""
	g.rejectTicks = 0
	g.timeline.Start(res, g.boardCfg.Height)

	switch {
	case g.movesLeft <= 0:
		g.end(EndOutOfMoves)
	case !g.session.HasMove():
		g.end(EndNoMoves)
	}
}

func (g *Game) end(reason string) {
	g.gameOver = true
	g.endReason = reason
}

// SkipAnimation settles the board immediately.
func (g *Game) SkipAnimation() {
	g.timeline.Finish()
}

// Resize adapts the layout to a new screen size without restarting.
func (g *Game) Resize(width, height int) {
	g.screenW = width
	g.screenH = height
	g.checkScreenSize()
}

func (g *Game) checkScreenSize() {
	w, h := minScreenSize(g.boardCfg.Width, g.boardCfg.Height)
	g.tooSmall = g.screenW < w || g.screenH < h
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.gameOver,
		Paused:   g.paused || g.tooSmall,
		Busy:     g.timeline.Busy(),
	}
}

// Grid returns a copy of the board.
func (g *Game) Grid() *board.Grid {
	return g.session.Grid()
}

// Rules returns the scoring rules in effect.
func (g *Game) Rules() Rules {
	return g.rules
}

// MovesLeft returns the remaining move budget.
func (g *Game) MovesLeft() int {
	return g.movesLeft
}

// Dropped returns how many selections were dropped during animations.
func (g *Game) Dropped() int {
	return g.dropped
}

// Summary describes the game so far.
func (g *Game) Summary() core.Summary {
	return core.Summary{
		GameID:       g.id,
		Score:        g.score,
		MovesUsed:    g.movesUsed,
		LargestGroup: g.largestGroup,
		TotalCleared: g.totalCleared,
		Seed:         g.seed,
		EndReason:    g.endReason,
	}
}
