package game

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voyager.com/blackjack/blackjack"
)

func TestDealerHitsBelowSeventeen(t *testing.T) {
	shoe := blackjack.NewShoe(1, rand.NewSource(1))
	d := NewDealer(shoe)
	giveCards(d, 10, 6)

	result, err := d.PlayTurn(context.Background())
	require.NoError(t, err)
	assert.Equal(t, MoveHit, result.Move)
	assert.Equal(t, 3, d.Hand().Size())
}

func TestDealerStandsAtSeventeen(t *testing.T) {
	shoe := blackjack.NewShoe(1, rand.NewSource(1))
	d := NewDealer(shoe)
	giveCards(d, 10, 7)

	result, err := d.PlayTurn(context.Background())
	require.NoError(t, err)
	assert.Equal(t, MoveStand, result.Move)
	assert.Equal(t, 17, result.HandValue)
	assert.True(t, d.IsStanding())
}

func TestDealerSoftSeventeenStands(t *testing.T) {
	shoe := blackjack.NewShoe(1, rand.NewSource(1))
	d := NewDealer(shoe)
	giveCards(d, 11, 6)

	result, err := d.PlayTurn(context.Background())
	require.NoError(t, err)
	assert.Equal(t, MoveStand, result.Move)
}

func TestDealerHoleCard(t *testing.T) {
	shoe := blackjack.NewShoe(1, rand.NewSource(1))
	d := NewDealer(shoe)

	_, ok := d.HoleCard()
	assert.False(t, ok)

	giveCards(d, 9, 5)
	card, ok := d.HoleCard()
	require.True(t, ok)
	assert.Equal(t, 9, card.Rank)
}
