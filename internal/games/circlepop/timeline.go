package circlepop

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/vovakirdan/circlepop/internal/games/circlepop/board"
)

// fall animates one piece settling into its final cell.
type fall struct {
	tween  *gween.Tween
	offset float32 // rows above the final cell the piece is drawn at
}

// Timeline plays the settle animation after a move. While it runs the game
// holds back new moves.
type Timeline struct {
	delay    float32
	duration float32

	elapsed float32
	active  bool
	falls   map[board.Pos]*fall
	removed []board.Pos
}

// NewTimeline creates an idle timeline with the given delay and fall duration.
func NewTimeline(delay, duration time.Duration) *Timeline {
	return &Timeline{
		delay:    float32(delay.Seconds()),
		duration: float32(duration.Seconds()),
	}
}

// Start queues the animation for an accepted move. Fallen survivors drop from
// their old row; generated pieces drop in from above the board.
func (t *Timeline) Start(res board.MoveResult, height int) {
	t.elapsed = 0
	t.removed = res.Removed
	t.falls = make(map[board.Pos]*fall, len(res.Falls)+res.Popped)

	for _, f := range res.Falls {
		t.add(board.P(f.X, f.ToY), float32(f.FromY-f.ToY))
	}
	for x, colors := range res.Refill {
		k := len(colors)
		for i := range colors {
			t.add(board.P(x, height-k+i), float32(k))
		}
	}

	t.active = t.delay > 0 || (t.duration > 0 && len(t.falls) > 0)
	if !t.active {
		t.reset()
	}
}

func (t *Timeline) add(p board.Pos, distance float32) {
	f := &fall{offset: distance}
	if t.duration > 0 {
		f.tween = gween.New(distance, 0, t.duration, ease.OutQuad)
	}
	t.falls[p] = f
}

// Update advances the animation by dt seconds.
func (t *Timeline) Update(dt float32) {
	if !t.active {
		return
	}

	before := t.elapsed
	t.elapsed += dt
	if t.elapsed < t.delay {
		return
	}

	// Only the part of this step past the delay moves pieces.
	step := dt
	if before < t.delay {
		step = t.elapsed - t.delay
	}

	for p, f := range t.falls {
		if f.tween == nil {
			delete(t.falls, p)
			continue
		}
		cur, done := f.tween.Update(step)
		f.offset = cur
		if done {
			delete(t.falls, p)
		}
	}

	if len(t.falls) == 0 {
		t.reset()
	}
}

// Finish jumps to the end of the animation.
func (t *Timeline) Finish() {
	t.reset()
}

func (t *Timeline) reset() {
	t.active = false
	t.elapsed = 0
	t.falls = nil
	t.removed = nil
}

// Busy reports whether an animation is still playing.
func (t *Timeline) Busy() bool {
	return t.active
}

// Waiting reports whether the timeline is still inside its initial delay.
func (t *Timeline) Waiting() bool {
	return t.active && t.elapsed < t.delay
}

// Offset returns how many rows above its final cell the piece at p is drawn.
func (t *Timeline) Offset(p board.Pos) float32 {
	if f, ok := t.falls[p]; ok {
		return f.offset
	}
	return 0
}

// Removed returns the cells popped by the move being animated.
func (t *Timeline) Removed() []board.Pos {
	return t.removed
}
