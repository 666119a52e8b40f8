package circlepop

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StateAnimating   GameStateType = "animating"
	StatePaused      GameStateType = "paused"
	StateGameOver    GameStateType = "game_over"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the game state for determinism testing and replay.
type Snapshot struct {
	Tick      uint64
	Variant   string
	Seed      int64
	Score     int
	MovesLeft int
	MovesUsed int
	Rows      []string // top row first
	State     GameStateType
	EndReason string
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.gameOver:
		state = StateGameOver
	case g.paused:
		state = StatePaused
	case g.timeline.Busy():
		state = StateAnimating
	}

	return Snapshot{
		Tick:      g.tick,
		Variant:   g.id,
		Seed:      g.seed,
		Score:     g.score,
		MovesLeft: g.movesLeft,
		MovesUsed: g.movesUsed,
		Rows:      g.session.Grid().Rows(),
		State:     state,
		EndReason: g.endReason,
	}
}
