package rules

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePieceAlphabet(t *testing.T) {
	p, ok := ParsePiece("UQ")
	require.True(t, ok)
	assert.Equal(t, KindQueen, p.Kind)
	assert.True(t, p.White)
	assert.True(t, p.Upgraded)

	_, ok = ParsePiece("X")
	assert.False(t, ok)

	empty, ok := ParsePiece("E")
	require.True(t, ok)
	assert.True(t, empty.isEmpty())
}

func TestParseSquareByteRange(t *testing.T) {
	col, row, ok := ParseSquare("a0")
	require.True(t, ok)
	assert.Equal(t, 0, col)
	assert.Equal(t, 0, row)

	_, _, ok = ParseSquare("h7")
	assert.True(t, ok)

	_, _, ok = ParseSquare("i0")
	assert.False(t, ok, "column past h is rejected")

	_, _, ok = ParseSquare("a8")
	assert.False(t, ok, "row past 7 is rejected")
}

func TestParseChange(t *testing.T) {
	c, ok := ParseChange("a1a3")
	require.True(t, ok)
	assert.Equal(t, Change{0, 1, 0, 3}, c)

	_, ok = ParseChange("a1a")
	assert.False(t, ok)
}

func TestDemotedRevertsUpgradedPiece(t *testing.T) {
	queen := Piece{Kind: KindQueen, White: false, Upgraded: true}
	got := demoted(queen, true)
	assert.Equal(t, Piece{Kind: KindPawn, White: true}, got)

	rook := Piece{Kind: KindRook, White: false}
	got = demoted(rook, true)
	assert.Equal(t, Piece{Kind: KindRook, White: true}, got)
}

func TestNewEngineOpeningMove(t *testing.T) {
	e := New()
	assert.True(t, e.GetWhiteActive(BoardOne))

	require.NoError(t, e.Movemaker(BoardOne, 4, 1, 4, 3)) // e2-e4
	assert.False(t, e.GetWhiteActive(BoardOne))
	assert.True(t, e.GetWhiteActive(BoardTwo), "board 2 is untouched")
}

func TestMovemakerRejectsIllegalMove(t *testing.T) {
	e := New()
	err := e.Movemaker(BoardOne, 4, 1, 4, 4) // pawn can't jump 3
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrIllegalMove))
}

func TestCaptureFeedsPartnerPoolOnOtherBoard(t *testing.T) {
	e := New()
	require.NoError(t, e.Movemaker(BoardOne, 4, 1, 4, 3)) // white e2-e4
	require.NoError(t, e.Movemaker(BoardOne, 3, 6, 3, 4)) // black d7-d5
	require.NoError(t, e.Movemaker(BoardOne, 4, 3, 3, 4)) // white exd5, captures black pawn

	pools := e.GetPools()
	// captured piece belongs to black, so it feeds white's partner on
	// board 2, which plays black there.
	assert.Equal(t, 1, pools[Side{BoardTwo, false}][KindPawn])
	assert.Zero(t, pools[Side{BoardOne, true}][KindPawn])
}

func TestDeployPieceFromPool(t *testing.T) {
	e := New()
	require.NoError(t, e.Movemaker(BoardOne, 4, 1, 4, 3))
	require.NoError(t, e.Movemaker(BoardOne, 3, 6, 3, 4))
	require.NoError(t, e.Movemaker(BoardOne, 4, 3, 3, 4)) // white captures black pawn

	require.NoError(t, e.Movemaker(BoardTwo, 1, 0, 2, 2)) // board 2 white: Nb1-c3, so black is on move

	err := e.DeployPiece(BoardTwo, false, Piece{Kind: KindPawn}, 2, 4)
	require.NoError(t, err)

	pools := e.GetPools()
	assert.Zero(t, pools[Side{BoardTwo, false}][KindPawn])
}

func TestDeployPieceRejectsPawnOnBackRank(t *testing.T) {
	e := New()
	e.pools[Side{BoardOne, true}].add(KindPawn)
	err := e.DeployPiece(BoardOne, true, Piece{Kind: KindPawn}, 0, 7)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrIllegalMove))
}

func TestResignGivesOpponentTheBoard(t *testing.T) {
	e := New()
	e.Resign(BoardOne, true)
	assert.Equal(t, B1, e.GetWinner(true))
}

func TestGetWinnerContinuesOnOpenPosition(t *testing.T) {
	e := New()
	assert.Equal(t, Continue, e.GetWinner(true))
}

func TestRenderProducesTwoBoardStrings(t *testing.T) {
	e := New()
	b1, b2 := e.Render()
	assert.Len(t, b1, 64)
	assert.Len(t, b2, 64)
}
