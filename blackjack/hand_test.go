package blackjack

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func handOf(ranks ...int) *Hand {
	h := &Hand{}
	for _, r := range ranks {
		h.Add(Card{Rank: r})
	}
	return h
}

func TestHandValue(t *testing.T) {
	testCases := []struct {
		ranks    []int
		expected int
	}{
		{ranks: []int{}, expected: 0},
		{ranks: []int{2, 3}, expected: 5},
		{ranks: []int{10, 7}, expected: 17},
		{ranks: []int{11, 10}, expected: 21},
		// One ace softens, the other stays 11.
		{ranks: []int{11, 11}, expected: 12},
		// Naive sum 31; softening one ace gives 21, never both.
		{ranks: []int{11, 11, 9}, expected: 21},
		{ranks: []int{11, 11, 11}, expected: 13},
		{ranks: []int{10, 10, 11}, expected: 21},
		{ranks: []int{10, 10, 5}, expected: 25},
		// Softening happens at most once per ace.
		{ranks: []int{11, 10, 10}, expected: 21},
		{ranks: []int{11, 11, 10, 10}, expected: 22},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.expected, handOf(tc.ranks...).Value(), "ranks %v", tc.ranks)
	}
}

func TestHandValueNeverNegative(t *testing.T) {
	assert.GreaterOrEqual(t, handOf().Value(), 0)
	assert.GreaterOrEqual(t, handOf(11, 11, 11, 11, 11).Value(), 0)
}

func TestIsBlackjack(t *testing.T) {
	assert.True(t, handOf(11, 10).IsBlackjack())
	// A three-card 21 is not blackjack.
	assert.False(t, handOf(11, 5, 5).IsBlackjack())
	assert.False(t, handOf(11, 11, 9).IsBlackjack())
	assert.False(t, handOf(10, 7).IsBlackjack())
}

func TestIsBusted(t *testing.T) {
	assert.False(t, handOf(10, 10).IsBusted())
	assert.False(t, handOf(11, 11, 9).IsBusted())
	assert.True(t, handOf(10, 10, 5).IsBusted())
}

func TestStatus(t *testing.T) {
	assert.Equal(t, StatusStandby, handOf().Status(false))
	assert.Equal(t, StatusStandby, handOf(10).Status(false))
	assert.Equal(t, StatusPlaying, handOf(10, 5).Status(false))
	assert.Equal(t, StatusStanding, handOf(10, 7).Status(true))
	assert.Equal(t, StatusBusted, handOf(10, 10, 5).Status(false))
	// Busted wins over a stale standing flag.
	assert.Equal(t, StatusBusted, handOf(10, 10, 5).Status(true))
	assert.Equal(t, StatusBlackjack, handOf(11, 10).Status(false))
}
