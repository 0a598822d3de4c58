package game

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voyager.com/blackjack/blackjack"
)

func newTestHuman(timeout time.Duration) *Human {
	shoe := blackjack.NewShoe(1, rand.NewSource(1))
	return NewHuman(shoe, timeout)
}

// submitSoon files the move a beat after PlayTurn has started waiting.
// Moves submitted before the turn begins are treated as stale and
// discarded, same as a client acting out of turn.
func submitSoon(t *testing.T, h *Human, move Move) {
	t.Helper()
	go func() {
		time.Sleep(20 * time.Millisecond)
		if err := h.SubmitMove(move); err != nil {
			t.Errorf("SubmitMove failed: %v", err)
		}
	}()
}

func TestHumanPlaysSubmittedMove(t *testing.T) {
	h := newTestHuman(5 * time.Second)
	giveCards(h, 10, 5)

	submitSoon(t, h, MoveStand)
	result, err := h.PlayTurn(context.Background())
	require.NoError(t, err)

	assert.Equal(t, MoveStand, result.Move)
	assert.Equal(t, 15, result.HandValue)
	assert.False(t, result.TimedOut)
	assert.True(t, h.IsStanding())
}

func TestHumanHitDrawsCard(t *testing.T) {
	h := newTestHuman(5 * time.Second)
	giveCards(h, 2, 3)

	submitSoon(t, h, MoveHit)
	result, err := h.PlayTurn(context.Background())
	require.NoError(t, err)

	assert.Equal(t, MoveHit, result.Move)
	assert.Equal(t, 3, h.Hand().Size())
	assert.False(t, h.IsStanding())
}

func TestHumanDiscardsStaleMove(t *testing.T) {
	h := newTestHuman(30 * time.Millisecond)
	giveCards(h, 10, 5)

	// Submitted before the turn started: discarded, so the turn times
	// out instead of playing it.
	require.NoError(t, h.SubmitMove(MoveHit))
	result, err := h.PlayTurn(context.Background())
	require.NoError(t, err)
	assert.True(t, result.TimedOut)
	assert.Equal(t, MoveStand, result.Move)
}

func TestHumanTimeoutStands(t *testing.T) {
	h := newTestHuman(10 * time.Millisecond)
	giveCards(h, 10, 5)

	result, err := h.PlayTurn(context.Background())
	require.NoError(t, err)

	assert.Equal(t, MoveStand, result.Move)
	assert.True(t, result.TimedOut)
	assert.True(t, h.IsStanding())
}

func TestHumanSecondSubmissionRejected(t *testing.T) {
	h := newTestHuman(5 * time.Second)

	require.NoError(t, h.SubmitMove(MoveHit))
	err := h.SubmitMove(MoveStand)
	require.Error(t, err)
	assert.IsType(t, MoveAlreadyPendingError{}, err)
}

func TestHumanTurnCancelled(t *testing.T) {
	h := newTestHuman(5 * time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := h.PlayTurn(ctx)
	require.Error(t, err)
	assert.Equal(t, context.Canceled, err)
}
