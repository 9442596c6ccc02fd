package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInitializesAllFourCells(t *testing.T) {
	now := time.Now()
	c := New(now, 300*time.Second, 3*time.Second)

	for _, b := range [2]Board{BoardOne, BoardTwo} {
		for _, col := range [2]Color{White, Black} {
			assert.Equal(t, 300*time.Second, c.Remaining(b, col))
		}
	}
}

func TestReconcileDeductsFromSideToMove(t *testing.T) {
	now := time.Now()
	c := New(now, 300*time.Second, 3*time.Second)

	later := now.Add(10 * time.Second)
	c.Reconcile(BoardOne, later, true)

	assert.Equal(t, 290*time.Second, c.Remaining(BoardOne, White))
	assert.Equal(t, 300*time.Second, c.Remaining(BoardOne, Black), "side not to move is untouched")
	assert.Equal(t, 300*time.Second, c.Remaining(BoardTwo, White), "other board is untouched")
}

func TestReconcileSaturatesAtZero(t *testing.T) {
	now := time.Now()
	c := New(now, 2*time.Second, 0)

	later := now.Add(10 * time.Second)
	c.Reconcile(BoardOne, later, true)

	require.True(t, c.Expired(BoardOne, White))
	assert.Equal(t, time.Duration(0), c.Remaining(BoardOne, White))
}

func TestReconcileNoopWhenPaused(t *testing.T) {
	now := time.Now()
	c := New(now, 300*time.Second, 0)
	c.SetPaused(BoardOne, true)

	c.Reconcile(BoardOne, now.Add(10*time.Second), true)

	assert.Equal(t, 300*time.Second, c.Remaining(BoardOne, White))
}

func TestCreditPromotionBonusAddsToMover(t *testing.T) {
	now := time.Now()
	c := New(now, 300*time.Second, 3*time.Second)

	c.CreditPromotionBonus(BoardOne, true)

	assert.Equal(t, 303*time.Second, c.Remaining(BoardOne, White))
	assert.Equal(t, 300*time.Second, c.Remaining(BoardOne, Black))
}

func TestResetAnchorDoesNotChangeRemaining(t *testing.T) {
	now := time.Now()
	c := New(now, 300*time.Second, 0)

	c.ResetAnchor(BoardOne, now.Add(5*time.Second))

	assert.Equal(t, 300*time.Second, c.Remaining(BoardOne, White))
}
