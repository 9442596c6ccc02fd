// Package game composes a rules oracle and a dual-board clock into the
// "active game" a session holds while GameState is Started: the
// four-participant tuple, turn/time bookkeeping, and end-condition
// evaluation described in spec §4.3 and §4.8.
package game

import (
	"time"

	"bughouse/internal/clock"
	"bughouse/internal/ids"
	"bughouse/internal/rules"
)

// Participants is the active-participants tuple ((a,b),(c,d)):
// a = board-1 white, b = board-2 black (team 1);
// c = board-1 black, d = board-2 white (team 2).
type Participants struct {
	A, B, C, D ids.UserId
}

// Seat reports the (board, color) a user occupies in the tuple, per
// spec §4.2's membership table, or ok=false if the user isn't active.
func (p Participants) Seat(u ids.UserId) (clock.Board, clock.Color, bool) {
	switch u {
	case p.A:
		return clock.BoardOne, clock.White, true
	case p.B:
		return clock.BoardTwo, clock.Black, true
	case p.C:
		return clock.BoardOne, clock.Black, true
	case p.D:
		return clock.BoardTwo, clock.White, true
	default:
		return false, false, false
	}
}

// Members returns all four participants in tuple order (a, b, c, d).
func (p Participants) Members() [4]ids.UserId {
	return [4]ids.UserId{p.A, p.B, p.C, p.D}
}

// Game is one played-out instance of a pairing: an id, the four active
// participants, a rules oracle, and the dual-board clock driving it.
type Game struct {
	ID           int
	Participants Participants
	Oracle       *rules.Engine
	Clock        *clock.Clock
}

// New starts a fresh game at the given id for the given participants.
func New(id int, participants Participants, now time.Time, duration, promotionBonus time.Duration) *Game {
	return &Game{
		ID:           id,
		Participants: participants,
		Oracle:       rules.New(),
		Clock:        clock.New(now, duration, promotionBonus),
	}
}

func toOracleBoard(b clock.Board) rules.Board {
	if b {
		return rules.BoardOne
	}
	return rules.BoardTwo
}

// reconcileBoth runs clock step 1 (spec §4.3) for both boards: deduct
// elapsed time from the side currently to move, then reset the anchor.
// Called on every tick and before every board-mutating command.
func (g *Game) reconcileBoth(now time.Time) {
	for _, b := range [2]clock.Board{clock.BoardOne, clock.BoardTwo} {
		whiteToMove := g.Oracle.GetWhiteActive(toOracleBoard(b))
		g.Clock.Reconcile(b, now, whiteToMove)
	}
}

// Tick runs the clock-reconciliation half of spec §4.3 with no command
// attached; called on every tick-timer fire.
func (g *Game) Tick(now time.Time) {
	g.reconcileBoth(now)
}

// Deploy places a pooled piece on the board, updating the clock around
// it per spec §4.3: reconcile, apply, reset anchor.
func (g *Game) Deploy(now time.Time, b clock.Board, white bool, p rules.Piece, col, row int) error {
	g.reconcileBoth(now)
	ob := toOracleBoard(b)
	if err := g.Oracle.DeployPiece(ob, white, p, col, row); err != nil {
		return err
	}
	g.Clock.ResetAnchor(b, now)
	return nil
}

// Move executes a board move, updating the clock the same way Deploy
// does.
func (g *Game) Move(now time.Time, b clock.Board, fromCol, fromRow, toCol, toRow int) error {
	g.reconcileBoth(now)
	ob := toOracleBoard(b)
	if err := g.Oracle.Movemaker(ob, fromCol, fromRow, toCol, toRow); err != nil {
		return err
	}
	g.Clock.ResetAnchor(b, now)
	return nil
}

// Promote declares a promotion target, then executes the move that
// consumes it, then credits the promotion bonus to the mover, per the
// Board::Promote contract in spec §4.1.
func (g *Game) Promote(now time.Time, b clock.Board, target rules.Piece, fromCol, fromRow, toCol, toRow int) error {
	g.reconcileBoth(now)
	ob := toOracleBoard(b)

	moverWasWhite := g.Oracle.GetWhiteActive(ob)
	if err := g.Oracle.SetPromotion(ob, target); err != nil {
		return err
	}
	if err := g.Oracle.Movemaker(ob, fromCol, fromRow, toCol, toRow); err != nil {
		return err
	}
	g.Clock.ResetAnchor(b, now)
	g.Clock.CreditPromotionBonus(b, moverWasWhite)
	return nil
}

// Resign records a resignation on the given board/color.
func (g *Game) Resign(b clock.Board, white bool) {
	g.Oracle.Resign(toOracleBoard(b), white)
}

// Outcome is the team-level result of EvaluateEnd.
type Outcome int

const (
	Ongoing Outcome = iota
	Team1Wins
	Team2Wins
	Drawn
)

// EvaluateEnd implements spec §4.8: time-forfeit on either board takes
// priority, then the oracle's own mate/stalemate/resignation verdict.
func (g *Game) EvaluateEnd() Outcome {
	if g.Clock.Expired(clock.BoardOne, clock.White) {
		return sideOutcome(clock.BoardOne, clock.Black)
	}
	if g.Clock.Expired(clock.BoardOne, clock.Black) {
		return sideOutcome(clock.BoardOne, clock.White)
	}
	if g.Clock.Expired(clock.BoardTwo, clock.White) {
		return sideOutcome(clock.BoardTwo, clock.Black)
	}
	if g.Clock.Expired(clock.BoardTwo, clock.Black) {
		return sideOutcome(clock.BoardTwo, clock.White)
	}

	switch g.Oracle.GetWinner(true) {
	case rules.W1, rules.B2:
		return Team1Wins
	case rules.B1, rules.W2:
		return Team2Wins
	case rules.P:
		return Drawn
	default:
		return Ongoing
	}
}

// sideOutcome maps "this (board,color) wins on time" to the team that
// side belongs to, per the a/b/c/d seat assignment.
func sideOutcome(b clock.Board, winningColor clock.Color) Outcome {
	onBoardOne := b == clock.BoardOne
	isTeam1 := onBoardOne == bool(winningColor)
	if isTeam1 {
		return Team1Wins
	}
	return Team2Wins
}
