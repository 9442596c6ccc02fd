package rules

// ParseSquare parses exactly two ASCII bytes: a column in 'a'..'h' and
// a row in '0'..'7', yielding (col, row) each in 0..8. Byte ranges are
// exact, per original_source/src/session/utils/mod.rs::parse_pos.
func ParseSquare(s string) (col, row int, ok bool) {
	if len(s) != 2 {
		return 0, 0, false
	}
	c, r := s[0], s[1]
	if c < 'a' || c > 'h' || r < '0' || r > '7' {
		return 0, 0, false
	}
	return int(c - 'a'), int(r - '0'), true
}

// Change is the opaque 4-tuple [fromCol, fromRow, toCol, toRow] the
// spec describes as "produced by the oracle's own helper".
type Change [4]int

// ParseChange parses a 4-character "<from><to>" move notation, each
// half a square per ParseSquare.
func ParseChange(s string) (Change, bool) {
	if len(s) != 4 {
		return Change{}, false
	}
	fc, fr, ok := ParseSquare(s[0:2])
	if !ok {
		return Change{}, false
	}
	tc, tr, ok := ParseSquare(s[2:4])
	if !ok {
		return Change{}, false
	}
	return Change{fc, fr, tc, tr}, true
}
