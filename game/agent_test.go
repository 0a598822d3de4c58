package game

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voyager.com/blackjack/blackjack"
)

func newTestAgent(cfg PolicyConfig, numDecks int, seed int64) *Agent {
	shoe := blackjack.NewShoe(numDecks, rand.NewSource(seed))
	return NewAgent("ai1", shoe, cfg, rand.NewSource(seed))
}

func giveCards(p Participant, ranks ...int) {
	for _, r := range ranks {
		p.ReceiveCard(blackjack.Card{Rank: r})
	}
}

func TestLearnedMoveTieBreaksToStand(t *testing.T) {
	cfg := DefaultPolicyConfig()
	cfg.ExplorationProbability = 0
	a := newTestAgent(cfg, 1, 1)

	// Fresh table: every estimate is zero, so every state ties.
	for state := 0; state < numStates; state++ {
		assert.Equal(t, MoveStand, a.learnedMove(state), "state %d", state)
	}
}

func TestLearnedMoveFollowsTable(t *testing.T) {
	cfg := DefaultPolicyConfig()
	cfg.ExplorationProbability = 0
	a := newTestAgent(cfg, 1, 1)

	var table QTable
	table[12][hitIndex] = 0.5
	table[12][standIndex] = 0.1
	table[19][hitIndex] = -0.3
	table[19][standIndex] = 0.2
	a.Policy().Restore(table)

	assert.Equal(t, MoveHit, a.learnedMove(12))
	assert.Equal(t, MoveStand, a.learnedMove(19))
}

func TestHeuristicMove(t *testing.T) {
	cfg := DefaultPolicyConfig()
	a := newTestAgent(cfg, 1, 1)

	// Hand of 5: every card is safe, well over the 0.6 threshold.
	giveCards(a, 2, 3)
	assert.Equal(t, MoveHit, a.heuristicMove())

	// Hand of 20: nothing is safe.
	a.ResetForRound()
	giveCards(a, 10, 10)
	assert.Equal(t, MoveStand, a.heuristicMove())
}

func TestAgentUpdatesPolicyOnStand(t *testing.T) {
	cfg := DefaultPolicyConfig()
	cfg.ExplorationProbability = 0
	// Blend always takes the learned action so the turn is deterministic.
	cfg.QLWeight = 1
	a := newTestAgent(cfg, 1, 1)

	var table QTable
	table[18][standIndex] = 0.4
	a.Policy().Restore(table)

	giveCards(a, 10, 8)
	result, err := a.PlayTurn(context.Background())
	require.NoError(t, err)

	assert.Equal(t, MoveStand, result.Move)
	assert.Equal(t, 18, result.HandValue)
	assert.True(t, a.IsStanding())

	// Standing leaves the value at 18: reward 0, next state 18.
	// q[18][stand] = 0.4 + 0.75*(0 + 0.75*0.4 - 0.4) = 0.325
	assert.InDelta(t, 0.325, a.Policy().estimate(18, MoveStand), 1e-9)
	assert.Equal(t, 0.0, a.Policy().estimate(18, MoveHit))
}

func TestAgentLearnsFromHittingTo21(t *testing.T) {
	cfg := DefaultPolicyConfig()
	cfg.ExplorationProbability = 0
	cfg.QLWeight = 1
	a := newTestAgent(cfg, 1, 1)

	// Force the learned action to hit at 16.
	var table QTable
	table[16][hitIndex] = 1
	a.Policy().Restore(table)

	giveCards(a, 10, 6)
	// A shoe of only 5s makes the hit land exactly on 21.
	a.shoe = blackjack.NewShoeFromCards([]blackjack.Card{{Rank: 5}, {Rank: 5}}, rand.NewSource(1))

	result, err := a.PlayTurn(context.Background())
	require.NoError(t, err)
	require.Equal(t, MoveHit, result.Move)
	require.Equal(t, 21, result.HandValue)

	// q[16][hit] = 1 + 0.75*(1 + 0.75*0 - 1) = 1.0
	assert.InDelta(t, 1.0, a.Policy().estimate(16, MoveHit), 1e-9)
}

func TestAgentForcedStandOnEmptyShoe(t *testing.T) {
	cfg := DefaultPolicyConfig()
	cfg.ExplorationProbability = 0
	cfg.QLWeight = 1
	a := newTestAgent(cfg, 1, 1)

	var table QTable
	table[16][hitIndex] = 1
	a.Policy().Restore(table)

	giveCards(a, 10, 6)
	drainShoe(a.shoe)

	result, err := a.PlayTurn(context.Background())
	require.NoError(t, err)
	assert.Equal(t, MoveStand, result.Move)
	assert.True(t, result.ForcedStand)
	assert.True(t, a.IsStanding())
	assert.Equal(t, 16, result.HandValue)
}

func TestAgentBlendPrefersHeuristicByDefault(t *testing.T) {
	// With QLWeight 0 a disagreement always goes to the heuristic.
	cfg := DefaultPolicyConfig()
	cfg.ExplorationProbability = 0
	cfg.QLWeight = 0
	a := newTestAgent(cfg, 1, 1)

	// Learned action at 5 is stand (tie); heuristic at 5 is hit.
	giveCards(a, 2, 3)
	result, err := a.PlayTurn(context.Background())
	require.NoError(t, err)
	assert.Equal(t, MoveHit, result.Move)
}

func drainShoe(shoe *blackjack.Shoe) {
	for shoe.Remaining() > 0 {
		if _, err := shoe.Draw(); err != nil {
			return
		}
	}
}
