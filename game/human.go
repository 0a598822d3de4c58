package game

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"voyager.com/blackjack/blackjack"
	"voyager.com/blackjack/stats"
	"voyager.com/blackjack/util"
)

var humanLogger = log.With().Str("logger_name", "game::human").Logger()

// Human is the seat whose move arrives from outside, over NATS or REST.
// The turn is a cancellable timed wait on the move channel; when the
// timeout elapses the table stands for the player so a silent client can
// never livelock a round.
type Human struct {
	seat
	chMove  chan Move
	timeout time.Duration
}

func NewHuman(shoe *blackjack.Shoe, timeout time.Duration) *Human {
	return &Human{
		seat:    seat{position: stats.EntityHuman, shoe: shoe},
		chMove:  make(chan Move, 1),
		timeout: timeout,
	}
}

// SubmitMove hands the player's move to the turn currently waiting for
// it. A second submission while one is already pending is rejected.
func (h *Human) SubmitMove(move Move) error {
	select {
	case h.chMove <- move:
		return nil
	default:
		return MoveAlreadyPendingError{Position: h.position}
	}
}

func (h *Human) PlayTurn(ctx context.Context) (TurnResult, error) {
	// A move submitted before the turn started belongs to no turn.
	select {
	case <-h.chMove:
		humanLogger.Warn().Msg("Discarding a move submitted outside the player's turn")
	default:
	}

	timer := time.NewTimer(h.timeout)
	defer timer.Stop()

	select {
	case move := <-h.chMove:
		if move == MoveHit {
			return h.hit(&humanLogger), nil
		}
		return h.stand(), nil
	case <-timer.C:
		humanLogger.Warn().
			Float64("timeoutSec", h.timeout.Seconds()).
			Msg("Human did not act in time. Standing for the player.")
		util.Metrics.HumanTimedOut()
		result := h.stand()
		result.TimedOut = true
		return result, nil
	case <-ctx.Done():
		return TurnResult{}, ctx.Err()
	}
}

var _ Participant = (*Human)(nil)
