package stats

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWinPercentages(t *testing.T) {
	a := NewAggregator()

	// No sealed rounds: all zero, no division by zero.
	assert.Equal(t, []float64{0, 0, 0, 0}, a.WinPercentages())

	a.LogWinners([]string{EntityCroupier})
	a.SealRound()
	a.LogWinners([]string{EntityAI1})
	a.SealRound()
	a.LogWinners([]string{EntityHuman, EntityAI2})
	a.SealRound()

	percentages := a.WinPercentages()
	require.Len(t, percentages, 4)
	for _, pct := range percentages {
		assert.InDelta(t, 100.0/3.0, pct, 0.01)
	}
}

func TestDecisionQualityPercentages(t *testing.T) {
	a := NewAggregator()

	// croupier: one good stand. ai1: a hit that busted (bad) and a good
	// hit. ai2: a stand below 17 (bad). human: two good moves.
	a.LogMove(EntityCroupier, MoveStand, 18)
	a.LogMove(EntityAI1, MoveHit, 25)
	a.LogMove(EntityAI1, MoveHit, 15)
	a.LogMove(EntityAI2, MoveStand, 14)
	a.LogMove(EntityHuman, MoveHit, 19)
	a.LogMove(EntityHuman, MoveStand, 19)
	a.SealRound()

	quality := a.DecisionQualityPercentages()
	require.Len(t, quality, 4)
	assert.InDelta(t, 100.0, quality[0], 0.01)
	assert.InDelta(t, 50.0, quality[1], 0.01)
	assert.InDelta(t, 0.0, quality[2], 0.01)
	assert.InDelta(t, 100.0, quality[3], 0.01)
}

func TestDecisionQualityAllZeroWhenAnyEntitySilent(t *testing.T) {
	a := NewAggregator()
	a.LogMove(EntityCroupier, MoveStand, 18)
	a.LogMove(EntityAI1, MoveStand, 18)
	a.LogMove(EntityAI2, MoveStand, 18)
	// The human never acted.
	a.SealRound()

	assert.Equal(t, []float64{0, 0, 0, 0}, a.DecisionQualityPercentages())
}

func TestStandValueDistributions(t *testing.T) {
	a := NewAggregator()

	// Round 1: croupier stands at 17 after hitting; ai1 busts without
	// ever standing.
	a.LogMove(EntityCroupier, MoveHit, 14)
	a.LogMove(EntityCroupier, MoveStand, 17)
	a.LogMove(EntityAI1, MoveHit, 16)
	a.LogMove(EntityAI1, MoveHit, 24)
	a.SealRound()

	// Round 2: croupier stands immediately at 20; ai1 stands at 18.
	a.LogMove(EntityCroupier, MoveStand, 20)
	a.LogMove(EntityAI1, MoveStand, 18)
	a.SealRound()

	distributions := a.StandValueDistributions()
	expected := [][]int{
		{17, 20}, // croupier
		{24, 18}, // ai1: busted value in round 1, stood at 18 in round 2
		{},       // ai2 logged nothing
		{},       // human logged nothing
	}
	if diff := cmp.Diff(expected, distributions); diff != "" {
		t.Errorf("StandValueDistributions mismatch (-want +got):\n%s", diff)
	}
}

func TestSealEmptyRound(t *testing.T) {
	a := NewAggregator()
	a.SealRound()

	rounds := a.SealedRounds()
	require.Len(t, rounds, 1)
	assert.Empty(t, rounds[0].Moves)
	assert.Empty(t, rounds[0].Winners)

	// Current-round state reset: the next move lands in a new round.
	a.LogMove(EntityAI1, MoveHit, 12)
	a.SealRound()
	rounds = a.SealedRounds()
	require.Len(t, rounds, 2)
	assert.Empty(t, rounds[0].Moves)
	assert.Len(t, rounds[1].Moves[EntityAI1], 1)
}

func TestLogMoveRejectsMalformedInput(t *testing.T) {
	a := NewAggregator()
	a.LogMove("pit-boss", MoveHit, 12)   // unknown entity
	a.LogMove(EntityAI1, "X", 12)        // unknown action
	a.LogMove(EntityAI1, MoveHit, -3)    // negative value
	a.LogMove(EntityAI1, MoveHit, 12)    // valid
	a.SealRound()

	rounds := a.SealedRounds()
	require.Len(t, rounds, 1)
	require.Len(t, rounds[0].Moves, 1)
	assert.Equal(t, []Move{{Action: MoveHit, Value: 12}}, rounds[0].Moves[EntityAI1])
}

func TestLogWinnersValidatesEntities(t *testing.T) {
	a := NewAggregator()
	a.LogWinners([]string{EntityAI1, "pit-boss"})
	a.SealRound()

	rounds := a.SealedRounds()
	require.Len(t, rounds, 1)
	assert.Equal(t, []string{EntityAI1}, rounds[0].Winners)
}
