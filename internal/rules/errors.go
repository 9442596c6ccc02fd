package rules

import "errors"

// ErrIllegalMove is returned whenever the oracle rejects a move, drop,
// promotion, or resignation as inconsistent with the current position.
var ErrIllegalMove = errors.New("rules: illegal move")

// ErrCannotParse names a token outside the oracle's notation alphabet.
// ParsePiece, ParseSquare and ParseChange report that case with
// ok=false rather than returning this error.
var ErrCannotParse = errors.New("rules: cannot parse")
