package board

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// State is the move state of a Session.
type State int32

const (
	StateIdle State = iota
	StateEvaluating
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateEvaluating:
		return "evaluating"
	default:
		return "unknown"
	}
}

// SessionConfig describes the board a Session plays on.
type SessionConfig struct {
	Width        int
	Height       int
	NumColors    int
	MinGroupSize int
}

// Session owns one grid and serializes moves against it.
// A move attempted while another is being evaluated is rejected with
// ErrBoardBusy rather than queued. Readers wait for an in-flight move to
// finish and never see a half-collapsed board.
type Session struct {
	cfg    SessionConfig
	state  atomic.Int32
	mu     sync.RWMutex // guards grid and refill
	grid   *Grid
	refill ColorGenerator
}

// NewSession creates a board populated from initGen. Refills after each move
// are drawn from refillGen, so both streams are reproducible on their own.
func NewSession(cfg SessionConfig, initGen, refillGen ColorGenerator) (*Session, error) {
	if cfg.MinGroupSize < 1 {
		return nil, fmt.Errorf("board: min group size must be positive, got %d", cfg.MinGroupSize)
	}
	if initGen == nil || refillGen == nil {
		return nil, ErrNilGenerator
	}
	grid, err := New(cfg.Width, cfg.Height, cfg.NumColors, initGen)
	if err != nil {
		return nil, err
	}
	return &Session{
		cfg:    cfg,
		grid:   grid,
		refill: refillGen,
	}, nil
}

// Config returns the session configuration.
func (s *Session) Config() SessionConfig {
	return s.cfg
}

// State returns the current move state.
func (s *Session) State() State {
	return State(s.state.Load())
}

// Busy reports whether a move is being evaluated.
func (s *Session) Busy() bool {
	return s.State() == StateEvaluating
}

// AttemptMove runs the move state machine for a click at (x, y):
// Idle -> Evaluating -> Idle. The session returns to idle on every path.
func (s *Session) AttemptMove(x, y int) (MoveResult, error) {
	if !s.begin() {
		return MoveResult{}, ErrBoardBusy
	}
	defer s.end()

	return AttemptMove(s.grid, x, y, s.cfg.MinGroupSize, s.refill)
}

// begin moves the session to Evaluating and takes the write lock.
func (s *Session) begin() bool {
	if !s.state.CompareAndSwap(int32(StateIdle), int32(StateEvaluating)) {
		return false
	}
	s.mu.Lock()
	return true
}

func (s *Session) end() {
	s.mu.Unlock()
	s.state.Store(int32(StateIdle))
}

// Reset repopulates the board for a new game, optionally swapping the refill
// generator. A nil refillGen keeps the current one.
func (s *Session) Reset(initGen, refillGen ColorGenerator) error {
	if initGen == nil {
		return ErrNilGenerator
	}
	if !s.begin() {
		return ErrBoardBusy
	}
	defer s.end()

	s.grid.Fill(initGen)
	if refillGen != nil {
		s.refill = refillGen
	}
	return nil
}

// Clear empties the board. Moves fail with ErrBoardCleared until Reset.
func (s *Session) Clear() error {
	if !s.begin() {
		return ErrBoardBusy
	}
	defer s.end()

	s.grid.Clear()
	return nil
}

// Grid returns a copy of the current board.
func (s *Session) Grid() *Grid {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.grid.Clone()
}

// ColorAt reads a single cell of the live board.
func (s *Session) ColorAt(x, y int) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.grid.ColorAt(x, y)
}

// HasMove reports whether any region on the board reaches the minimum size.
func (s *Session) HasMove() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return HasMove(s.grid, s.cfg.MinGroupSize)
}

// Hint returns the largest region on the board, if it is playable.
func (s *Session) Hint() (Region, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := LargestRegion(s.grid)
	if !ok || r.Len() < s.cfg.MinGroupSize {
		return Region{}, false
	}
	return r, true
}
