package game

import (
	"context"

	"github.com/rs/zerolog/log"

	"voyager.com/blackjack/blackjack"
	"voyager.com/blackjack/stats"
)

var dealerLogger = log.With().Str("logger_name", "game::dealer").Logger()

// The croupier hits below 17 and stands otherwise. No randomness, no
// learning.
const dealerStandThreshold = 17

type Dealer struct {
	seat
}

func NewDealer(shoe *blackjack.Shoe) *Dealer {
	return &Dealer{
		seat: seat{position: stats.EntityCroupier, shoe: shoe},
	}
}

// HoleCard is the dealer's first dealt card, hidden from observers until
// every other participant has finished.
func (d *Dealer) HoleCard() (blackjack.Card, bool) {
	if d.hand.Size() == 0 {
		return blackjack.Card{}, false
	}
	return d.hand.Cards()[0], true
}

func (d *Dealer) PlayTurn(ctx context.Context) (TurnResult, error) {
	if d.hand.Value() < dealerStandThreshold {
		return d.hit(&dealerLogger), nil
	}
	return d.stand(), nil
}
