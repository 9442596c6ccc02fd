// Package rules is the bughouse rules oracle: two linked 8x8 boards,
// a reserve pool per player, and the narrow synchronous operation set
// a session drives it through (new, refresh, deploy, movemaker, set
// promotion, resign, get winner, get pools). Nothing outside this
// package inspects a board directly.
package rules

import "fmt"

// Winner is the outcome of GetWinner: which single side concluded its
// board (by mate or resignation), a draw, or no conclusion yet. The
// session layer maps these to team scores per spec §4.8: W1|B2 is
// team-1, B1|W2 is team-2.
type Winner int

const (
	Continue Winner = iota
	W1
	B1
	W2
	B2
	P // draw
)

// team assignment: white-on-board-1 and black-on-board-2 are partners
// (team W); black-on-board-1 and white-on-board-2 are partners (team
// B). A capture on one board feeds the capturing side's teammate's
// pool on the other board.
func partnerBoard(b Board) Board {
	if b == BoardOne {
		return BoardTwo
	}
	return BoardOne
}

// Board selects one of the two linked boards.
type Board bool

const (
	BoardOne Board = true
	BoardTwo Board = false
)

func boardIndex(b Board) int {
	if b {
		return 0
	}
	return 1
}

// pool is a reserve of pieces available to deploy, counted by kind.
type pool map[PieceKind]int

func (p pool) add(k PieceKind) {
	p[k]++
}

func (p pool) take(k PieceKind) bool {
	if p[k] <= 0 {
		return false
	}
	p[k]--
	return true
}

// Engine is the rules oracle for one game: two boards, four pools (one
// per board per color), and resignation flags.
type Engine struct {
	boards    [2]*board
	pools     map[Side]pool
	resigned  map[Side]bool
	promotion map[Board]PieceKind
}

// Side identifies a player by board and color.
type Side struct {
	Board Board
	White bool
}

// New creates a fresh Engine with both boards in their starting
// position and empty pools, matching spec §6.1's `new`.
func New() *Engine {
	e := &Engine{
		boards:    [2]*board{newBoard(), newBoard()},
		pools:     make(map[Side]pool, 4),
		resigned:  make(map[Side]bool, 4),
		promotion: make(map[Board]PieceKind, 2),
	}
	for _, b := range [2]Board{BoardOne, BoardTwo} {
		for _, white := range [2]bool{true, false} {
			e.pools[Side{b, white}] = make(pool)
		}
	}
	return e
}

// Refresh resets both boards and all pools to a fresh game, matching
// spec §6.1's `refresh`. The session does not call it: each new game
// gets its own Engine from New.
func (e *Engine) Refresh() {
	e.boards[0] = newBoard()
	e.boards[1] = newBoard()
	for k := range e.pools {
		e.pools[k] = make(pool)
	}
	for k := range e.resigned {
		delete(e.resigned, k)
	}
	for k := range e.promotion {
		delete(e.promotion, k)
	}
}

// GetWhiteActive reports whether white is to move on the given board.
func (e *Engine) GetWhiteActive(b Board) bool {
	return e.boards[boardIndex(b)].whiteToMove
}

// DeployPiece places a piece from the side's pool at (col,row). The
// piece must be a plain (non-upgraded, non-empty, non-reserved) kind
// the side actually holds, the destination must be empty, and pawns
// may not be dropped on the first or last rank.
func (e *Engine) DeployPiece(b Board, white bool, p Piece, col, row int) error {
	if !onBoard(col, row) {
		return fmt.Errorf("%w: square out of range", ErrIllegalMove)
	}
	if p.Kind == KindEmpty || p.Kind == KindReserved || p.Upgraded {
		return fmt.Errorf("%w: not a deployable piece", ErrIllegalMove)
	}
	if p.Kind == KindPawn && (row == 0 || row == 7) {
		return fmt.Errorf("%w: pawn cannot deploy to back rank", ErrIllegalMove)
	}
	brd := e.boards[boardIndex(b)]
	if brd.whiteToMove != white {
		return fmt.Errorf("%w: not this side's turn", ErrIllegalMove)
	}
	if !brd.at(col, row).isEmpty() {
		return fmt.Errorf("%w: square occupied", ErrIllegalMove)
	}

	side := Side{b, white}
	if !e.pools[side].take(p.Kind) {
		return fmt.Errorf("%w: piece not held in pool", ErrIllegalMove)
	}

	brd.set(col, row, Piece{Kind: p.Kind, White: white})
	if brd.inCheck(white) {
		// Illegal: dropping can't be used to evade check by exposing
		// the king. Undo and refund.
		brd.set(col, row, empty)
		e.pools[side].add(p.Kind)
		return fmt.Errorf("%w: leaves own king in check", ErrIllegalMove)
	}
	brd.whiteToMove = !white
	return nil
}

// Movemaker moves the piece at (i,j) to (i2,j2) on the given board. A
// capture transfers the captured piece (demoted if it was a promoted
// piece) into the capturing side's partner's pool on the other board.
func (e *Engine) Movemaker(b Board, i, j, i2, j2 int) error {
	brd := e.boards[boardIndex(b)]
	white := brd.whiteToMove

	if !brd.legalMove(i, j, i2, j2, white) {
		return fmt.Errorf("%w: move rejected by board", ErrIllegalMove)
	}

	captured := brd.at(i2, j2)
	mover := brd.at(i, j)
	brd.set(i2, j2, mover)
	brd.set(i, j, empty)
	brd.whiteToMove = !white

	if !captured.isEmpty() {
		// The capturing side's partner plays the opposite color on the
		// other board: board-1-white partners board-2-black, and
		// board-1-black partners board-2-white.
		recipientSide := Side{Board: partnerBoard(b), White: !white}
		e.pools[recipientSide].add(demoted(captured, !white).Kind)
	}

	if mover.Kind == KindPawn && (j2 == 0 || j2 == 7) {
		if target, ok := e.promotion[b]; ok {
			brd.set(i2, j2, Piece{Kind: target, White: white, Upgraded: true})
			delete(e.promotion, b)
		}
	}

	return nil
}

// SetPromotion declares the piece kind a pawn reaching the back rank
// on the given board will become, per spec §6.1: "declare promotion
// target before the move." The declaration is consumed by the next
// Movemaker call that lands a pawn on the back rank; it does not
// require a pawn to already be there.
func (e *Engine) SetPromotion(b Board, target Piece) error {
	if target.Kind == KindEmpty || target.Kind == KindReserved || target.Kind == KindPawn || target.Kind == KindKing {
		return fmt.Errorf("%w: not a valid promotion target", ErrIllegalMove)
	}
	e.promotion[b] = target.Kind
	return nil
}

// Resign marks a side as having resigned its board.
func (e *Engine) Resign(b Board, white bool) {
	e.resigned[Side{b, white}] = true
}

// GetWinner evaluates mate/stalemate/resignation on each board and
// reports the first conclusive one. crossBoard selects whether a
// conclusion on either board alone is reported (true, the session's
// normal per-tick call per spec §4.8 step 3) or whether both boards
// must independently agree before anything but Continue is returned
// (false).
func (e *Engine) GetWinner(crossBoard bool) Winner {
	results := [2]Winner{}
	for i, b := range [2]Board{BoardOne, BoardTwo} {
		results[i] = e.boardResult(b)
	}

	if crossBoard {
		for _, r := range results {
			if r != Continue {
				return r
			}
		}
		return Continue
	}

	if results[0] != Continue && results[0] == results[1] {
		return results[0]
	}
	return Continue
}

func (e *Engine) boardResult(b Board) Winner {
	if e.resigned[Side{b, true}] {
		return sideWinner(b, false)
	}
	if e.resigned[Side{b, false}] {
		return sideWinner(b, true)
	}

	brd := e.boards[boardIndex(b)]
	toMove := brd.whiteToMove
	if brd.hasAnyLegalMove(toMove) {
		return Continue
	}
	if brd.inCheck(toMove) {
		return sideWinner(b, !toMove)
	}
	return P
}

// sideWinner maps "white/black wins board b" to the Winner constant
// naming that board and color.
func sideWinner(b Board, white bool) Winner {
	if b == BoardOne {
		if white {
			return W1
		}
		return B1
	}
	if white {
		return W2
	}
	return B2
}

// GetPools returns a snapshot of every side's current pool, keyed by
// (board, color), piece kind to count.
func (e *Engine) GetPools() map[Side]map[PieceKind]int {
	out := make(map[Side]map[PieceKind]int, len(e.pools))
	for side, p := range e.pools {
		copied := make(map[PieceKind]int, len(p))
		for k, v := range p {
			if v > 0 {
				copied[k] = v
			}
		}
		out[side] = copied
	}
	return out
}

// Render returns the two boards' positions, one compact string per
// board (64 characters, plus one for each promoted piece on it), for
// inclusion in a snapshot payload.
func (e *Engine) Render() (boardOne, boardTwo string) {
	return e.boards[0].render(), e.boards[1].render()
}
