package game

import (
	"context"

	"github.com/rs/zerolog"

	"voyager.com/blackjack/blackjack"
	"voyager.com/blackjack/stats"
	"voyager.com/blackjack/util"
)

// Move is a participant's decision for one turn.
type Move int

const (
	MoveHit Move = iota
	MoveStand
)

func (m Move) String() string {
	if m == MoveHit {
		return "hit"
	}
	return "stand"
}

// Code is the one-letter form used by the round ledger.
func (m Move) Code() string {
	if m == MoveHit {
		return stats.MoveHit
	}
	return stats.MoveStand
}

func MoveFromString(action string) (Move, error) {
	switch action {
	case "hit":
		return MoveHit, nil
	case "stand":
		return MoveStand, nil
	default:
		return MoveStand, InvalidMoveError{Action: action}
	}
}

// TurnResult is what one turn actually did: the move applied (a hit that
// found the shoe empty degrades to a forced stand) and the hand value it
// resulted in.
type TurnResult struct {
	Move        Move
	HandValue   int
	TimedOut    bool
	ForcedStand bool
}

// Participant is one seat at the table. The round orchestrator depends
// only on this capability set, never on the concrete kind (dealer,
// human, agent).
type Participant interface {
	Position() string
	Hand() *blackjack.Hand
	IsStanding() bool
	IsBusted() bool
	Status() blackjack.HandStatus
	ReceiveCard(card blackjack.Card)
	ResetForRound()
	PlayTurn(ctx context.Context) (TurnResult, error)
}

// seat carries the state every participant kind shares: the hand, the
// explicit standing flag, and a reference to the table's shared shoe.
type seat struct {
	position string
	shoe     *blackjack.Shoe
	hand     blackjack.Hand
	standing bool
}

func (s *seat) Position() string {
	return s.position
}

func (s *seat) Hand() *blackjack.Hand {
	return &s.hand
}

func (s *seat) IsStanding() bool {
	return s.standing
}

func (s *seat) IsBusted() bool {
	return s.hand.IsBusted()
}

func (s *seat) Status() blackjack.HandStatus {
	return s.hand.Status(s.standing)
}

func (s *seat) ReceiveCard(card blackjack.Card) {
	s.hand.Add(card)
}

func (s *seat) ResetForRound() {
	s.hand.Clear()
	s.standing = false
}

// hit draws one card into the hand. An exhausted shoe is a reportable
// failure that degrades to a forced stand so the turn still terminates.
func (s *seat) hit(logger *zerolog.Logger) TurnResult {
	card, err := s.shoe.Draw()
	if err != nil {
		logger.Warn().
			Str("position", s.position).
			Msg("Tried to hit with an empty shoe. Forcing a stand.")
		util.Metrics.EmptyShoeDraw()
		s.standing = true
		return TurnResult{Move: MoveStand, HandValue: s.hand.Value(), ForcedStand: true}
	}
	util.Metrics.CardDrawn()
	s.standing = false
	s.hand.Add(card)
	return TurnResult{Move: MoveHit, HandValue: s.hand.Value()}
}

func (s *seat) stand() TurnResult {
	s.standing = true
	return TurnResult{Move: MoveStand, HandValue: s.hand.Value()}
}
