package game

import (
	"context"
	"math/rand"

	"github.com/rs/zerolog/log"

	"voyager.com/blackjack/blackjack"
	"voyager.com/blackjack/util/random"
)

var agentLogger = log.With().Str("logger_name", "game::agent").Logger()

// Agent is an autonomous seat. Each turn it blends two signals: the
// learned table (long-horizon patterns) and a bust-risk heuristic
// computed over the actual remaining shoe composition (exact early-game
// signal while the table is still unlearned). When they disagree, the
// heuristic wins most of the time because it works on ground truth.
type Agent struct {
	seat
	policy  *Policy
	randGen *rand.Rand
}

func NewAgent(position string, shoe *blackjack.Shoe, cfg PolicyConfig, source rand.Source) *Agent {
	if source == nil {
		source = rand.NewSource(random.NewSeed())
	}
	return &Agent{
		seat:    seat{position: position, shoe: shoe},
		policy:  NewPolicy(cfg),
		randGen: rand.New(source),
	}
}

func (a *Agent) Policy() *Policy {
	return a.policy
}

func (a *Agent) PlayTurn(ctx context.Context) (TurnResult, error) {
	state := clampState(a.hand.Value())
	learned := a.learnedMove(state)
	heuristic := a.heuristicMove()

	move := learned
	if learned != heuristic {
		if a.randGen.Float64() >= a.policy.cfg.QLWeight {
			move = heuristic
		}
	}

	var result TurnResult
	if move == MoveHit {
		result = a.hit(&agentLogger)
	} else {
		result = a.stand()
	}

	// The learning step always runs, on the pre-action state and the
	// action that was actually applied (a forced stand updates stand).
	nextState := clampState(a.hand.Value())
	reward := rewardFor(state, nextState)
	a.policy.Update(state, result.Move, nextState, reward)

	agentLogger.Debug().
		Str("position", a.position).
		Str("move", result.Move.String()).
		Int("handValue", result.HandValue).
		Float64("reward", reward).
		Msg("Agent acted")

	return result, nil
}

// learnedMove explores with the configured probability, otherwise picks
// the action with the higher table estimate. Exact ties resolve to
// stand so equal estimates cannot oscillate.
func (a *Agent) learnedMove(state int) Move {
	if a.randGen.Float64() < a.policy.cfg.ExplorationProbability {
		if a.randGen.Intn(2) == 0 {
			return MoveHit
		}
		return MoveStand
	}
	if a.policy.estimate(state, MoveHit) > a.policy.estimate(state, MoveStand) {
		return MoveHit
	}
	return MoveStand
}

// heuristicMove hits when the fraction of remaining shoe cards that keep
// the hand at 21 or under clears the acceptance threshold.
func (a *Agent) heuristicMove() Move {
	if a.shoe.SafeHitProbability(a.hand.Value()) > a.policy.cfg.HitSafeThreshold {
		return MoveHit
	}
	return MoveStand
}

var _ Participant = (*Agent)(nil)
