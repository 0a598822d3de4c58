package game

import (
	"context"

	"voyager.com/blackjack/util"
)

// RoundPhase is the round state machine position. Observable only at the
// table loop's suspension points.
type RoundPhase string

const (
	PhaseSetup       RoundPhase = "setup"
	PhaseDealing     RoundPhase = "dealing"
	PhasePlayerTurns RoundPhase = "playerTurns"
	PhaseDealerTurn  RoundPhase = "dealerTurn"
	PhaseResolution  RoundPhase = "resolution"
	PhaseLogged      RoundPhase = "logged"
)

func (p RoundPhase) roundInProgress() bool {
	return p == PhaseDealing || p == PhasePlayerTurns || p == PhaseDealerTurn || p == PhaseResolution
}

// Result of one non-dealer seat against the dealer.
type Result int

const (
	ResultWin Result = iota
	ResultDraw
	ResultLose
)

func (r Result) String() string {
	switch r {
	case ResultWin:
		return "win"
	case ResultDraw:
		return "draw"
	default:
		return "lose"
	}
}

const initialCardsPerSeat = 2

// runRound plays one complete round: deal, player turns in seat order,
// dealer turn, resolution, ledger seal.
func (g *Game) runRound(ctx context.Context) {
	util.Metrics.RoundStarted()
	g.lock.Lock()
	g.roundNum++
	roundNum := g.roundNum
	g.lock.Unlock()

	logger := tableLogger.With().
		Str("tableCode", g.config.Code).
		Uint32("roundNo", roundNum).
		Logger()

	g.setPhase(PhaseSetup)
	for _, p := range g.allSeats() {
		p.ResetForRound()
	}
	// The shoe is reset manually as a rule; this guard only fires when
	// it cannot even cover the opening deal.
	if minCards := initialCardsPerSeat * (len(g.players) + 1); g.shoe.Remaining() < minCards {
		logger.Warn().
			Int("remaining", g.shoe.Remaining()).
			Msg("Shoe cannot cover the opening deal. Resetting it.")
		g.shoe.Reset()
	}

	// Opening render so the UI shows empty seats.
	for _, p := range g.players {
		g.broadcastSeat(p, false)
	}
	g.broadcastSeat(g.dealer, true)

	g.setPhase(PhaseDealing)
	for _, p := range g.players {
		for i := 0; i < initialCardsPerSeat; i++ {
			g.dealCard(p)
			g.broadcastSeat(p, false)
			g.delay(g.delays.DealSingleCard)
		}
	}
	for i := 0; i < initialCardsPerSeat; i++ {
		g.dealCard(g.dealer)
		g.broadcastSeat(g.dealer, true)
		g.delay(g.delays.DealSingleCard)
	}

	g.setPhase(PhasePlayerTurns)
	for _, p := range g.players {
		for !p.IsBusted() && !p.IsStanding() {
			result, err := p.PlayTurn(ctx)
			if err != nil {
				logger.Error().
					Str("position", p.Position()).
					Msgf("Turn aborted: %v", err)
				return
			}
			g.aggregator.LogMove(p.Position(), result.Move.Code(), result.HandValue)
			g.broadcastSeat(p, false)
			g.delay(g.delays.PlayerActed)
		}
	}

	// Hole card becomes visible only now.
	g.setPhase(PhaseDealerTurn)
	g.broadcastSeat(g.dealer, false)
	g.delay(g.delays.HoleCardReveal)
	for !g.dealer.IsBusted() && !g.dealer.IsStanding() {
		result, err := g.dealer.PlayTurn(ctx)
		if err != nil {
			logger.Error().Msgf("Dealer turn aborted: %v", err)
			return
		}
		g.aggregator.LogMove(g.dealer.Position(), result.Move.Code(), result.HandValue)
		g.broadcastSeat(g.dealer, false)
		g.delay(g.delays.PlayerActed)
	}

	g.setPhase(PhaseResolution)
	winners, results := g.resolveRound()

	g.aggregator.LogWinners(winners)
	g.aggregator.SealRound()
	util.Metrics.RoundCompleted()

	handValues := make(map[string]int)
	for _, p := range g.allSeats() {
		handValues[p.Position()] = p.Hand().Value()
	}
	g.broadcastRoundResult(&RoundResultMessage{
		TableCode:  g.config.Code,
		RoundNum:   roundNum,
		Winners:    winners,
		HandValues: handValues,
		Results:    results,
	})
	g.delay(g.delays.RoundEnd)

	logger.Info().
		Strs("winners", winners).
		Msg("Round sealed")
	g.setPhase(PhaseLogged)
}

func (g *Game) allSeats() []Participant {
	seats := make([]Participant, 0, len(g.players)+1)
	seats = append(seats, g.players...)
	return append(seats, g.dealer)
}

func (g *Game) dealCard(p Participant) {
	card, err := g.shoe.Draw()
	if err != nil {
		tableLogger.Warn().
			Str("tableCode", g.config.Code).
			Str("position", p.Position()).
			Msg("Tried to deal from an empty shoe. Seat plays short-handed.")
		util.Metrics.EmptyShoeDraw()
		return
	}
	util.Metrics.CardDrawn()
	p.ReceiveCard(card)
}

// resolveRound computes each non-dealer seat's result. The busted check
// runs first: a busted seat loses even when the dealer busts too. If
// nobody beats the dealer, the dealer is the sole winner.
func (g *Game) resolveRound() ([]string, map[string]string) {
	winners := []string{}
	results := make(map[string]string)
	for _, p := range g.players {
		result := resolveOutcome(p, g.dealer)
		results[p.Position()] = result.String()
		if result == ResultWin {
			winners = append(winners, p.Position())
		}
	}
	if len(winners) == 0 {
		winners = []string{g.dealer.Position()}
	}
	return winners, results
}

func resolveOutcome(p Participant, dealer *Dealer) Result {
	if p.IsBusted() {
		return ResultLose
	}
	if dealer.IsBusted() {
		return ResultWin
	}
	playerValue := p.Hand().Value()
	dealerValue := dealer.Hand().Value()
	switch {
	case playerValue > dealerValue:
		return ResultWin
	case playerValue == dealerValue:
		// Equal values draw, blackjack or not; there is no blackjack
		// payout bonus in this game.
		return ResultDraw
	default:
		return ResultLose
	}
}
