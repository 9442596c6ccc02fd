// Package clock implements the dual-board clock model used by an
// active game: one (anchor, paused) pair per board, plus a 2x2
// remaining-time table indexed by (board, color).
package clock

import "time"

// Board selects one of the two linked boards. True is "board 1".
type Board bool

const (
	BoardOne Board = true
	BoardTwo Board = false
)

// Color selects a side. True is white.
type Color bool

const (
	White Color = true
	Black Color = false
)

// Side is a (board, color) pair identifying one clock cell.
type Side struct {
	Board Board
	Color Color
}

// cell is a single board/clock pair: the instant remaining time was
// last reconciled, and whether the clock is currently paused.
type cell struct {
	anchor time.Time
	paused bool
}

// Clock holds the two board clocks and the four remaining-time cells
// for one game.
type Clock struct {
	boards  [2]cell
	remain  map[Side]time.Duration
	bonus   time.Duration
	initial time.Duration
}

func boardIndex(b Board) int {
	if b {
		return 0
	}
	return 1
}

// New creates a Clock with both boards unpaused as of now and every
// side initialized to duration.
func New(now time.Time, duration, promotionBonus time.Duration) *Clock {
	c := &Clock{
		boards:  [2]cell{{anchor: now}, {anchor: now}},
		remain:  make(map[Side]time.Duration, 4),
		bonus:   promotionBonus,
		initial: duration,
	}
	for _, b := range [2]Board{BoardOne, BoardTwo} {
		for _, col := range [2]Color{White, Black} {
			c.remain[Side{b, col}] = duration
		}
	}
	return c
}

// Remaining returns the remaining time for a (board, color) pair.
func (c *Clock) Remaining(b Board, col Color) time.Duration {
	return c.remain[Side{b, col}]
}

// Paused reports whether the given board's clock is currently paused.
func (c *Clock) Paused(b Board) bool {
	return c.boards[boardIndex(b)].paused
}

// SetPaused pauses or resumes a board's clock.
func (c *Clock) SetPaused(b Board, paused bool) {
	c.boards[boardIndex(b)].paused = paused
}

// Reconcile deducts elapsed time since the board's last anchor from
// the side currently to move (as reported by whiteToMove), saturating
// at zero, then resets the anchor to now. It is a no-op on a paused
// board. This implements spec §4.3 step 1.
func (c *Clock) Reconcile(b Board, now time.Time, whiteToMove bool) {
	idx := boardIndex(b)
	cl := &c.boards[idx]
	if cl.paused {
		return
	}

	side := Side{Board: b, Color: Color(whiteToMove)}
	elapsed := now.Sub(cl.anchor)
	remaining := c.remain[side] - elapsed
	if remaining < 0 {
		remaining = 0
	}
	c.remain[side] = remaining
	cl.anchor = now
}

// ResetAnchor sets a board's anchor to now without touching remaining
// time; used after applying a move so the newly-active side's clock
// starts at the true post-move instant (spec §4.3 step 3).
func (c *Clock) ResetAnchor(b Board, now time.Time) {
	c.boards[boardIndex(b)].anchor = now
}

// CreditPromotionBonus adds the configured bonus duration to the side
// that just moved on the given board (spec §4.3, §9 Open Question 3).
func (c *Clock) CreditPromotionBonus(b Board, moverWasWhite bool) {
	side := Side{Board: b, Color: Color(moverWasWhite)}
	c.remain[side] += c.bonus
}

// Expired reports whether the given side's clock has reached zero.
func (c *Clock) Expired(b Board, col Color) bool {
	return c.remain[Side{b, col}] == 0
}
