package circlepop

import (
	"testing"
	"time"

	"github.com/vovakirdan/circlepop/internal/games/circlepop/board"
)

func sampleMove() board.MoveResult {
	// Column 0 of a two-row board: the bottom piece popped, the top one fell
	// and one new piece dropped in.
	return board.MoveResult{
		Popped:  1,
		Removed: []board.Pos{board.P(0, 0)},
		Refill:  map[int][]int{0: {2}},
		Falls:   []board.Fall{{X: 0, FromY: 1, ToY: 0, Color: 1}},
	}
}

func TestTimelineDelayThenFall(t *testing.T) {
	tl := NewTimeline(100*time.Millisecond, 200*time.Millisecond)
	tl.Start(sampleMove(), 2)

	if !tl.Busy() || !tl.Waiting() {
		t.Fatal("timeline should be busy and waiting right after Start")
	}
	if got := tl.Offset(board.P(0, 0)); got != 1 {
		t.Errorf("fallen piece offset = %v, want 1", got)
	}
	if got := tl.Offset(board.P(0, 1)); got != 1 {
		t.Errorf("new piece offset = %v, want 1", got)
	}
	if len(tl.Removed()) != 1 {
		t.Errorf("Removed() = %v", tl.Removed())
	}

	tl.Update(0.05)
	if !tl.Waiting() || tl.Offset(board.P(0, 0)) != 1 {
		t.Error("pieces should not move during the delay")
	}

	tl.Update(0.1)
	if tl.Waiting() {
		t.Error("delay should be over")
	}
	if off := tl.Offset(board.P(0, 0)); off <= 0 || off >= 1 {
		t.Errorf("offset mid-fall = %v, want between 0 and 1", off)
	}

	tl.Update(0.2)
	if tl.Busy() {
		t.Error("timeline should be idle after the fall")
	}
	if off := tl.Offset(board.P(0, 0)); off != 0 {
		t.Errorf("offset after fall = %v, want 0", off)
	}
	if tl.Removed() != nil {
		t.Error("Removed() should be empty once idle")
	}
}

func TestTimelineWithoutTimings(t *testing.T) {
	tl := NewTimeline(0, 0)
	tl.Start(sampleMove(), 2)

	if tl.Busy() {
		t.Error("a timeline with no delay or duration should never be busy")
	}
}

func TestTimelineFinish(t *testing.T) {
	tl := NewTimeline(100*time.Millisecond, 200*time.Millisecond)
	tl.Start(sampleMove(), 2)
	tl.Finish()

	if tl.Busy() {
		t.Error("Finish() should stop the animation")
	}
	if tl.Offset(board.P(0, 1)) != 0 {
		t.Error("Finish() should settle every piece")
	}
}
