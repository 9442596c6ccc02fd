package rules

// PieceKind identifies the shape of a piece, independent of color or
// whether it was produced by a pawn promotion.
type PieceKind byte

const (
	KindEmpty PieceKind = iota
	KindReserved
	KindPawn
	KindKnight
	KindBishop
	KindRook
	KindQueen
	KindKing
)

// Piece is a single board cell or a deploy/promotion target: a kind,
// a color, and whether it is a promoted pawn (so a later capture can
// demote it back to a pawn, per spec §4.5/original_source supplement).
type Piece struct {
	Kind     PieceKind
	White    bool
	Upgraded bool
}

var empty = Piece{Kind: KindEmpty}

// ParsePiece parses the fixed alphabet from spec §6.1:
//
//	b B E k K L n N p P q Q r R
//	Ub UB Un UN Uq UQ Ur UR
//
// "E" (empty) and "L" (reserved) parse successfully but are never a
// legal deploy or promotion target; the oracle rejects them with
// ErrIllegalMove at the point of use, matching the spec's distinction
// between CannotParse and IllegalMove.
func ParsePiece(s string) (Piece, bool) {
	switch s {
	case "b":
		return Piece{Kind: KindBishop, White: false}, true
	case "B":
		return Piece{Kind: KindBishop, White: true}, true
	case "E":
		return Piece{Kind: KindEmpty}, true
	case "k":
		return Piece{Kind: KindKing, White: false}, true
	case "K":
		return Piece{Kind: KindKing, White: true}, true
	case "L":
		return Piece{Kind: KindReserved}, true
	case "n":
		return Piece{Kind: KindKnight, White: false}, true
	case "N":
		return Piece{Kind: KindKnight, White: true}, true
	case "p":
		return Piece{Kind: KindPawn, White: false}, true
	case "P":
		return Piece{Kind: KindPawn, White: true}, true
	case "q":
		return Piece{Kind: KindQueen, White: false}, true
	case "Q":
		return Piece{Kind: KindQueen, White: true}, true
	case "r":
		return Piece{Kind: KindRook, White: false}, true
	case "R":
		return Piece{Kind: KindRook, White: true}, true
	case "Ub":
		return Piece{Kind: KindBishop, White: false, Upgraded: true}, true
	case "UB":
		return Piece{Kind: KindBishop, White: true, Upgraded: true}, true
	case "Un":
		return Piece{Kind: KindKnight, White: false, Upgraded: true}, true
	case "UN":
		return Piece{Kind: KindKnight, White: true, Upgraded: true}, true
	case "Uq":
		return Piece{Kind: KindQueen, White: false, Upgraded: true}, true
	case "UQ":
		return Piece{Kind: KindQueen, White: true, Upgraded: true}, true
	case "Ur":
		return Piece{Kind: KindRook, White: false, Upgraded: true}, true
	case "UR":
		return Piece{Kind: KindRook, White: true, Upgraded: true}, true
	default:
		return Piece{}, false
	}
}

func (p Piece) letter() string {
	var l string
	switch p.Kind {
	case KindEmpty:
		return "E"
	case KindReserved:
		return "L"
	case KindPawn:
		l = "p"
	case KindKnight:
		l = "n"
	case KindBishop:
		l = "b"
	case KindRook:
		l = "r"
	case KindQueen:
		l = "q"
	case KindKing:
		l = "k"
	default:
		l = "?"
	}
	if p.White {
		l = string(l[0] - ('a' - 'A'))
	}
	if p.Upgraded {
		return "U" + l
	}
	return l
}

func (p Piece) String() string {
	return p.letter()
}

func (p Piece) isEmpty() bool {
	return p.Kind == KindEmpty
}

// demoted returns the pool piece a captured piece becomes: a promoted
// piece reverts to a plain pawn of the given color, everything else
// keeps its kind.
func demoted(p Piece, recipientWhite bool) Piece {
	if p.Upgraded {
		return Piece{Kind: KindPawn, White: recipientWhite}
	}
	return Piece{Kind: p.Kind, White: recipientWhite}
}
