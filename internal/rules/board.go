package rules

// board is one 8x8 chessboard plus the turn flag. Bughouse simplifies
// standard chess slightly: no castling and no en passant, since pieces
// spend most of a bughouse game in the pool rather than maneuvering
// for those rare tactics.
type board struct {
	squares     [8][8]Piece
	whiteToMove bool
}

func newBoard() *board {
	b := &board{whiteToMove: true}
	for col := 0; col < 8; col++ {
		b.squares[1][col] = Piece{Kind: KindPawn, White: true}
		b.squares[6][col] = Piece{Kind: KindPawn, White: false}
	}
	backRank := [8]PieceKind{KindRook, KindKnight, KindBishop, KindQueen, KindKing, KindBishop, KindKnight, KindRook}
	for col, kind := range backRank {
		b.squares[0][col] = Piece{Kind: kind, White: true}
		b.squares[7][col] = Piece{Kind: kind, White: false}
	}
	return b
}

func onBoard(col, row int) bool {
	return col >= 0 && col < 8 && row >= 0 && row < 8
}

func (b *board) at(col, row int) Piece {
	return b.squares[row][col]
}

func (b *board) set(col, row int, p Piece) {
	b.squares[row][col] = p
}

func (b *board) kingSquare(white bool) (int, int, bool) {
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			p := b.squares[row][col]
			if p.Kind == KindKing && p.White == white {
				return col, row, true
			}
		}
	}
	return 0, 0, false
}

// attacks reports whether the side `byWhite` attacks (col,row), using
// pseudo-legal piece movement (no recursive check consideration).
func (b *board) attacks(col, row int, byWhite bool) bool {
	for r := 0; r < 8; r++ {
		for c := 0; c < 8; c++ {
			p := b.squares[r][c]
			if p.isEmpty() || p.White != byWhite {
				continue
			}
			if b.pseudoLegalAttack(c, r, col, row, p) {
				return true
			}
		}
	}
	return false
}

// pseudoLegalAttack reports whether a piece at (fc,fr) threatens
// (tc,tr), ignoring whether moving it would expose its own king.
func (b *board) pseudoLegalAttack(fc, fr, tc, tr int, p Piece) bool {
	dc, dr := tc-fc, tr-fr
	switch p.Kind {
	case KindPawn:
		dir := 1
		if !p.White {
			dir = -1
		}
		return dr == dir && abs(dc) == 1
	case KindKnight:
		return (abs(dc) == 1 && abs(dr) == 2) || (abs(dc) == 2 && abs(dr) == 1)
	case KindBishop:
		return abs(dc) == abs(dr) && dc != 0 && b.clearPath(fc, fr, tc, tr)
	case KindRook:
		return (dc == 0) != (dr == 0) && b.clearPath(fc, fr, tc, tr)
	case KindQueen:
		straight := (dc == 0) != (dr == 0)
		diag := abs(dc) == abs(dr) && dc != 0
		return (straight || diag) && b.clearPath(fc, fr, tc, tr)
	case KindKing:
		return abs(dc) <= 1 && abs(dr) <= 1 && (dc != 0 || dr != 0)
	}
	return false
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func step(d int) int {
	switch {
	case d > 0:
		return 1
	case d < 0:
		return -1
	default:
		return 0
	}
}

// clearPath reports whether every square strictly between (fc,fr) and
// (tc,tr) is empty, for sliding pieces.
func (b *board) clearPath(fc, fr, tc, tr int) bool {
	dc, dr := step(tc-fc), step(tr-fr)
	c, r := fc+dc, fr+dr
	for c != tc || r != tr {
		if !b.at(c, r).isEmpty() {
			return false
		}
		c += dc
		r += dr
	}
	return true
}

// legalMove validates a move of the piece currently at (fc,fr) to
// (tc,tr): the piece exists, belongs to `white`, the movement pattern
// fits its kind, the destination isn't occupied by a friendly piece,
// and the move does not leave the mover's own king in check.
func (b *board) legalMove(fc, fr, tc, tr int, white bool) bool {
	if !onBoard(fc, fr) || !onBoard(tc, tr) {
		return false
	}
	if fc == tc && fr == tr {
		return false
	}
	p := b.at(fc, fr)
	if p.isEmpty() || p.White != white {
		return false
	}
	dest := b.at(tc, tr)
	if !dest.isEmpty() && dest.White == white {
		return false
	}

	if p.Kind == KindPawn {
		if !b.pawnMoveOk(fc, fr, tc, tr, p, dest) {
			return false
		}
	} else if !b.pseudoLegalAttack(fc, fr, tc, tr, p) {
		return false
	}

	return !b.movesIntoCheck(fc, fr, tc, tr, white)
}

func (b *board) pawnMoveOk(fc, fr, tc, tr int, p, dest Piece) bool {
	dir := 1
	startRow := 1
	if !p.White {
		dir = -1
		startRow = 6
	}
	dc, dr := tc-fc, tr-fr

	if dc == 0 && dr == dir && dest.isEmpty() {
		return true
	}
	if dc == 0 && dr == 2*dir && fr == startRow && dest.isEmpty() && b.at(fc, fr+dir).isEmpty() {
		return true
	}
	if abs(dc) == 1 && dr == dir && !dest.isEmpty() && dest.White != p.White {
		return true
	}
	return false
}

func (b *board) movesIntoCheck(fc, fr, tc, tr int, white bool) bool {
	captured := b.at(tc, tr)
	mover := b.at(fc, fr)
	b.set(tc, tr, mover)
	b.set(fc, fr, empty)

	kc, kr, _ := b.kingSquare(white)
	inCheck := b.attacks(kc, kr, !white)

	b.set(fc, fr, mover)
	b.set(tc, tr, captured)

	return inCheck
}

// hasAnyLegalMove reports whether `white` has at least one legal move
// anywhere on the board.
func (b *board) hasAnyLegalMove(white bool) bool {
	for fr := 0; fr < 8; fr++ {
		for fc := 0; fc < 8; fc++ {
			p := b.at(fc, fr)
			if p.isEmpty() || p.White != white {
				continue
			}
			for tr := 0; tr < 8; tr++ {
				for tc := 0; tc < 8; tc++ {
					if b.legalMove(fc, fr, tc, tr, white) {
						return true
					}
				}
			}
		}
	}
	return false
}

func (b *board) inCheck(white bool) bool {
	kc, kr, ok := b.kingSquare(white)
	if !ok {
		return false
	}
	return b.attacks(kc, kr, !white)
}

// render produces a compact rank-by-rank string of the board, one
// character per square and two for a promoted piece ("U" prefix)
// (rank 7 down to 0, as in a FEN board field without the slash
// separators), for use in snapshot payloads.
func (b *board) render() string {
	out := make([]byte, 0, 64)
	for r := 7; r >= 0; r-- {
		for c := 0; c < 8; c++ {
			out = append(out, []byte(b.at(c, r).letter())...)
		}
	}
	return string(out)
}
